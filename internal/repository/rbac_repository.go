package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/stationops/roster-service/internal/entity"
)

func (r *RBACRepository) Roles(ctx context.Context) ([]entity.Role, error) {
	query := `SELECT id, role_name FROM roles ORDER BY role_name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var roles []entity.Role

	for rows.Next() {
		var role entity.Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, err
		}

		roles = append(roles, role)
	}

	return roles, rows.Err()
}

func (r *RBACRepository) RoleByID(ctx context.Context, roleID uuid.UUID) (*entity.Role, error) {
	query := `SELECT id, role_name FROM roles WHERE id = $1`

	var role entity.Role

	err := r.pool.QueryRow(ctx, query, roleID).Scan(&role.ID, &role.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrRoleNotFound
		}

		return nil, err
	}

	return &role, nil
}

func (r *RBACRepository) RoleByName(ctx context.Context, name entity.RoleName) (*entity.Role, error) {
	query := `SELECT id, role_name FROM roles WHERE role_name = $1`

	var role entity.Role

	err := r.pool.QueryRow(ctx, query, name).Scan(&role.ID, &role.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrRoleNotFound
		}

		return nil, err
	}

	return &role, nil
}

// AllPermissions returns the full permission catalog.
func (r *RBACRepository) AllPermissions(ctx context.Context) ([]entity.Permission, error) {
	query := `SELECT id, permission_name FROM permissions ORDER BY permission_name`

	return r.scanPermissions(ctx, query)
}

// PermissionsForRole returns the permissions explicitly attached to the role.
// An unknown role name yields an empty slice, not an error.
func (r *RBACRepository) PermissionsForRole(ctx context.Context, name entity.RoleName) ([]entity.Permission, error) {
	query := `SELECT p.id, p.permission_name
	          FROM permissions p
	          JOIN role_permissions rp ON rp.permission_id = p.id
	          JOIN roles r ON r.id = rp.role_id
	          WHERE r.role_name = $1
	          ORDER BY p.permission_name`

	return r.scanPermissions(ctx, query, name)
}

func (r *RBACRepository) scanPermissions(ctx context.Context, query string, args ...any) ([]entity.Permission, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrLookupFailed, err)
	}

	defer rows.Close()

	var permissions []entity.Permission

	for rows.Next() {
		var permission entity.Permission
		if err := rows.Scan(&permission.ID, &permission.Name); err != nil {
			return nil, fmt.Errorf("%w: %w", entity.ErrLookupFailed, err)
		}

		permissions = append(permissions, permission)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrLookupFailed, err)
	}

	return permissions, nil
}
