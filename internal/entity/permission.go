package entity

import (
	"sort"
	"strings"

	"github.com/gofrs/uuid/v5"
)

type Permission struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"permission_name"`
}

// Key is the string-normalized identifier permissions are deduplicated by.
func (p Permission) Key() string {
	return strings.ToLower(p.ID.String())
}

// PermissionSet holds permissions keyed by identifier. Adding the same
// permission twice, through any number of roles, keeps one entry.
type PermissionSet map[string]Permission

func NewPermissionSet() PermissionSet {
	return make(PermissionSet)
}

func (s PermissionSet) Add(p Permission) {
	s[p.Key()] = p
}

func (s PermissionSet) AddAll(perms []Permission) {
	for _, p := range perms {
		s.Add(p)
	}
}

func (s PermissionSet) Has(id uuid.UUID) bool {
	_, ok := s[strings.ToLower(id.String())]
	return ok
}

func (s PermissionSet) Len() int {
	return len(s)
}

// List returns the members ordered by name for stable responses.
func (s PermissionSet) List() []Permission {
	perms := make([]Permission, 0, len(s))
	for _, p := range s {
		perms = append(perms, p)
	}

	sort.Slice(perms, func(i, j int) bool { return perms[i].Name < perms[j].Name })

	return perms
}
