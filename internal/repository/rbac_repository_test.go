package repository_test

import (
	"context"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/suite"

	"github.com/stationops/roster-service/internal/entity"
	"github.com/stationops/roster-service/internal/repository"
)

type RBACRepositoryTestSuite struct {
	suite.Suite
	repo *repository.RBACRepository
}

func (ts *RBACRepositoryTestSuite) SetupTest() {
	ts.repo = repository.NewRBACRepository(repository.SetupTestDatabase(ts.T()))
}

func TestRBACRepositoryTestSuite(t *testing.T) { //nolint:paralleltest
	suite.Run(t, new(RBACRepositoryTestSuite))
}

func (ts *RBACRepositoryTestSuite) TestRoles() {
	roles, err := ts.repo.Roles(context.Background())
	ts.Require().NoError(err)
	ts.Require().Len(roles, 3)

	names := make([]entity.RoleName, 0, len(roles))
	for _, role := range roles {
		names = append(names, role.Name)
	}

	ts.Require().Equal([]entity.RoleName{
		entity.RoleAdmin,
		entity.RoleGateStaff,
		entity.RoleManagementStaff,
	}, names)
}

func (ts *RBACRepositoryTestSuite) TestRoleByName() {
	ctx := context.Background()

	role, err := ts.repo.RoleByName(ctx, entity.RoleAdmin)
	ts.Require().NoError(err)
	ts.Require().Equal(entity.RoleAdmin, role.Name)

	_, err = ts.repo.RoleByName(ctx, "ghost_role")
	ts.Require().ErrorIs(err, entity.ErrRoleNotFound)
}

func (ts *RBACRepositoryTestSuite) TestRoleByID() {
	ctx := context.Background()

	want, err := ts.repo.RoleByName(ctx, entity.RoleGateStaff)
	ts.Require().NoError(err)

	got, err := ts.repo.RoleByID(ctx, want.ID)
	ts.Require().NoError(err)
	ts.Require().Equal(want.Name, got.Name)

	_, err = ts.repo.RoleByID(ctx, uuid.Must(uuid.NewV4()))
	ts.Require().ErrorIs(err, entity.ErrRoleNotFound)
}

func (ts *RBACRepositoryTestSuite) TestAllPermissions() {
	permissions, err := ts.repo.AllPermissions(context.Background())
	ts.Require().NoError(err)
	ts.Require().NotEmpty(permissions)

	for _, p := range permissions {
		ts.Require().NotEmpty(p.Name)
	}
}

func (ts *RBACRepositoryTestSuite) TestPermissionsForRole() {
	ctx := context.Background()

	gate, err := ts.repo.PermissionsForRole(ctx, entity.RoleGateStaff)
	ts.Require().NoError(err)
	ts.Require().NotEmpty(gate)

	all, err := ts.repo.AllPermissions(ctx)
	ts.Require().NoError(err)
	ts.Require().Less(len(gate), len(all))

	// Admin has no explicit rows, expansion happens at resolution time.
	admin, err := ts.repo.PermissionsForRole(ctx, entity.RoleAdmin)
	ts.Require().NoError(err)
	ts.Require().Empty(admin)

	unknown, err := ts.repo.PermissionsForRole(ctx, "ghost_role")
	ts.Require().NoError(err)
	ts.Require().Empty(unknown)
}
