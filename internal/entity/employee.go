package entity

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// Employee links an identity-provider subject to a role. Deactivation is a
// soft delete: the record stays, the resolver ignores it.
type Employee struct {
	ID        uuid.UUID `json:"id"`
	SubjectID string    `json:"subject_id"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	RoleID    uuid.UUID `json:"role_id"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type EmployeesFilter struct {
	ActiveOnly bool
	Search     string
	Page       uint64
	Limit      uint64
}
