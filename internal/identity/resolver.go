package identity

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/stationops/roster-service/internal/entity"
)

//go:generate go run go.uber.org/mock/mockgen@latest -source=resolver.go -destination=../mocks/identity.go -package=mocks

// StaffDirectory answers which recognized roles a subject currently holds
// through active employee records.
type StaffDirectory interface {
	ActiveRoleNames(ctx context.Context, subjectID string) ([]string, error)
}

// PermissionSource expands role names into permissions.
type PermissionSource interface {
	AllPermissions(ctx context.Context) ([]entity.Permission, error)
	PermissionsForRole(ctx context.Context, name entity.RoleName) ([]entity.Permission, error)
}

type expandFunc func(ctx context.Context, src PermissionSource) ([]entity.Permission, error)

// roleRules is the closed set of recognized roles. Adding a role means adding
// an entry here, there is no default branch.
var roleRules = map[entity.RoleName]expandFunc{
	entity.RoleAdmin: func(ctx context.Context, src PermissionSource) ([]entity.Permission, error) {
		return src.AllPermissions(ctx)
	},
	entity.RoleGateStaff: func(ctx context.Context, src PermissionSource) ([]entity.Permission, error) {
		return src.PermissionsForRole(ctx, entity.RoleGateStaff)
	},
	entity.RoleManagementStaff: func(ctx context.Context, src PermissionSource) ([]entity.Permission, error) {
		return src.PermissionsForRole(ctx, entity.RoleManagementStaff)
	},
}

type Resolver struct {
	directory   StaffDirectory
	permissions PermissionSource
}

func NewResolver(directory StaffDirectory, permissions PermissionSource) *Resolver {
	return &Resolver{
		directory:   directory,
		permissions: permissions,
	}
}

// Resolve builds the identity for a verified subject. Role lookup failures
// fail the whole resolution. Permission expansion failures are narrower: a
// role whose expansion fails keeps the role but contributes no permissions.
func (r *Resolver) Resolve(ctx context.Context, subject *entity.Subject) (entity.ResolvedIdentity, error) {
	names, err := r.directory.ActiveRoleNames(ctx, subject.ID)
	if err != nil {
		return entity.ResolvedIdentity{}, fmt.Errorf("resolve roles for subject %s: %w", subject.ID, err)
	}

	roles := entity.NewRoleSet()

	for _, name := range names {
		role := entity.RoleName(name)
		if !role.Recognized() {
			slog.WarnContext(ctx, fmt.Sprintf("ignoring unrecognized role %q for subject %s", name, subject.ID))
			continue
		}

		roles.Add(role)
	}

	permissions := entity.NewPermissionSet()

	for _, role := range roles.Names() {
		expand, ok := roleRules[role]
		if !ok {
			continue
		}

		expanded, err := expand(ctx, r.permissions)
		if err != nil {
			slog.WarnContext(ctx, fmt.Sprintf("expand permissions for role %s: %s", role, err))
			continue
		}

		permissions.AddAll(expanded)
	}

	return entity.ResolvedIdentity{
		SubjectID:   subject.ID,
		Subject:     subject,
		Roles:       roles,
		Permissions: permissions,
	}, nil
}
