package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gofrs/uuid/v5"

	"github.com/stationops/roster-service/internal/entity"
)

//go:generate go run go.uber.org/mock/mockgen@latest -source=service.go -destination=../mocks/service.go -package=mocks

type EmployeeStore interface {
	Create(ctx context.Context, employee *entity.Employee) error
	GetByID(ctx context.Context, employeeID uuid.UUID) (*entity.Employee, error)
	List(ctx context.Context, filter entity.EmployeesFilter) ([]entity.Employee, int, error)
	Update(ctx context.Context, employee *entity.Employee) error
	Deactivate(ctx context.Context, employeeID uuid.UUID) error
}

type RoleStore interface {
	Roles(ctx context.Context) ([]entity.Role, error)
	RoleByID(ctx context.Context, roleID uuid.UUID) (*entity.Role, error)
	AllPermissions(ctx context.Context) ([]entity.Permission, error)
}

// Notifier publishes onboarding notifications. Failures stay inside the
// notifier, employee creation never depends on it.
type Notifier interface {
	SendOnboardingEmail(ctx context.Context, email, fullName string)
}

type Service struct {
	employees EmployeeStore
	rbac      RoleStore
	notifier  Notifier
}

func New(employees EmployeeStore, rbac RoleStore, notifier Notifier) *Service {
	return &Service{
		employees: employees,
		rbac:      rbac,
		notifier:  notifier,
	}
}

type CreateEmployeeParams struct {
	SubjectID string
	FullName  string
	Phone     string
	Email     string
	RoleID    uuid.UUID
}

func (s *Service) CreateEmployee(ctx context.Context, params CreateEmployeeParams) (*entity.Employee, error) {
	if params.SubjectID == "" {
		return nil, fmt.Errorf("%w: subject_id", entity.ErrMissingRequired)
	}

	if err := ValidateFullName(params.FullName); err != nil {
		return nil, err
	}

	if err := ValidatePhone(params.Phone); err != nil {
		return nil, err
	}

	email, err := NormalizeEmail(params.Email)
	if err != nil {
		return nil, err
	}

	role, err := s.rbac.RoleByID(ctx, params.RoleID)
	if err != nil {
		return nil, fmt.Errorf("check role: %w", err)
	}

	employee := &entity.Employee{
		ID:        uuid.Must(uuid.NewV4()),
		SubjectID: params.SubjectID,
		FullName:  params.FullName,
		Phone:     normalizePhone(params.Phone),
		Email:     email,
		RoleID:    role.ID,
		IsActive:  true,
	}

	err = s.employees.Create(ctx, employee)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, fmt.Sprintf("created employee %s with role %s", employee.ID, role.Name))

	s.notifier.SendOnboardingEmail(ctx, employee.Email, employee.FullName)

	return employee, nil
}

func (s *Service) Employee(ctx context.Context, employeeID uuid.UUID) (*entity.Employee, error) {
	return s.employees.GetByID(ctx, employeeID)
}

func (s *Service) Employees(ctx context.Context, filter entity.EmployeesFilter) ([]entity.Employee, int, error) {
	if filter.Page == 0 {
		filter.Page = 1
	}

	if filter.Limit == 0 {
		filter.Limit = 20
	}

	return s.employees.List(ctx, filter)
}

type UpdateEmployeeParams struct {
	FullName *string
	Phone    *string
	Email    *string
	RoleID   *uuid.UUID
	IsActive *bool
}

func (s *Service) UpdateEmployee(ctx context.Context, employeeID uuid.UUID, params UpdateEmployeeParams) (*entity.Employee, error) {
	employee, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	if params.FullName != nil {
		if err := ValidateFullName(*params.FullName); err != nil {
			return nil, err
		}

		employee.FullName = *params.FullName
	}

	if params.Phone != nil {
		if err := ValidatePhone(*params.Phone); err != nil {
			return nil, err
		}

		employee.Phone = normalizePhone(*params.Phone)
	}

	if params.Email != nil {
		email, err := NormalizeEmail(*params.Email)
		if err != nil {
			return nil, err
		}

		employee.Email = email
	}

	if params.RoleID != nil {
		role, err := s.rbac.RoleByID(ctx, *params.RoleID)
		if err != nil {
			return nil, fmt.Errorf("check role: %w", err)
		}

		employee.RoleID = role.ID
	}

	if params.IsActive != nil {
		employee.IsActive = *params.IsActive
	}

	err = s.employees.Update(ctx, employee)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, fmt.Sprintf("updated employee %s", employee.ID))

	return employee, nil
}

func (s *Service) DeactivateEmployee(ctx context.Context, employeeID uuid.UUID) error {
	err := s.employees.Deactivate(ctx, employeeID)
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, fmt.Sprintf("deactivated employee %s", employeeID))

	return nil
}

func (s *Service) Roles(ctx context.Context) ([]entity.Role, error) {
	return s.rbac.Roles(ctx)
}

func (s *Service) Permissions(ctx context.Context) ([]entity.Permission, error) {
	return s.rbac.AllPermissions(ctx)
}
