package entity

import (
	"sort"

	"github.com/gofrs/uuid/v5"
)

type Role struct {
	ID   uuid.UUID `json:"id"`
	Name RoleName  `json:"role_name"`
}

// RoleName is a closed set: only the names below grant anything. Staff
// records pointing at any other role resolve to no privileges.
type RoleName string

const (
	RoleAdmin           RoleName = "admin"
	RoleGateStaff       RoleName = "gate_staff"
	RoleManagementStaff RoleName = "management_staff"
)

func (r RoleName) Recognized() bool {
	switch r {
	case RoleAdmin, RoleGateStaff, RoleManagementStaff:
		return true
	}

	return false
}

func RecognizedRoleNames() []string {
	return []string{string(RoleAdmin), string(RoleGateStaff), string(RoleManagementStaff)}
}

// RoleSet deduplicates role names: a subject matching the same role through
// several staff records holds it once.
type RoleSet map[RoleName]struct{}

func NewRoleSet(names ...RoleName) RoleSet {
	s := make(RoleSet, len(names))
	for _, n := range names {
		s.Add(n)
	}

	return s
}

func (s RoleSet) Add(name RoleName) {
	s[name] = struct{}{}
}

func (s RoleSet) Has(name RoleName) bool {
	_, ok := s[name]
	return ok
}

func (s RoleSet) Len() int {
	return len(s)
}

// Names returns the members in stable order.
func (s RoleSet) Names() []RoleName {
	names := make([]RoleName, 0, len(s))
	for n := range s {
		names = append(names, n)
	}

	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })

	return names
}
