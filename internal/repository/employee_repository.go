package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/stationops/roster-service/internal/entity"
)

const uniqueViolationCode = "23505"

func (r *EmployeeRepository) Create(ctx context.Context, employee *entity.Employee) error {
	query := `INSERT INTO employees (id, subject_id, full_name, phone, email, role_id, is_active)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		employee.ID,
		employee.SubjectID,
		employee.FullName,
		employee.Phone,
		employee.Email,
		employee.RoleID,
		employee.IsActive,
	).Scan(&employee.CreatedAt, &employee.UpdatedAt)

	if err != nil {
		return mapUniqueViolation(err)
	}

	return nil
}

func (r *EmployeeRepository) GetByID(ctx context.Context, employeeID uuid.UUID) (*entity.Employee, error) {
	query := `SELECT id, subject_id, full_name, phone, email, role_id, is_active, created_at, updated_at
	          FROM employees
	          WHERE id = $1`

	var employee entity.Employee

	err := r.pool.QueryRow(ctx, query, employeeID).Scan(
		&employee.ID,
		&employee.SubjectID,
		&employee.FullName,
		&employee.Phone,
		&employee.Email,
		&employee.RoleID,
		&employee.IsActive,
		&employee.CreatedAt,
		&employee.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrEmployeeNotFound
		}

		return nil, err
	}

	return &employee, nil
}

func (r *EmployeeRepository) List(ctx context.Context, filter entity.EmployeesFilter) ([]entity.Employee, int, error) {
	countStmt := sq.Select("count(*)").From("employees").PlaceholderFormat(sq.Dollar)
	countStmt = applyEmployeesWhere(countStmt, filter)

	sqlQuery, args, err := countStmt.ToSql()
	if err != nil {
		return nil, 0, err
	}

	var count int

	err = r.pool.QueryRow(ctx, sqlQuery, args...).Scan(&count)
	if err != nil {
		return nil, 0, err
	}

	if count == 0 {
		return []entity.Employee{}, 0, nil
	}

	stmt := sq.Select(
		"id",
		"subject_id",
		"full_name",
		"phone",
		"email",
		"role_id",
		"is_active",
		"created_at",
		"updated_at",
	).From("employees").PlaceholderFormat(sq.Dollar)

	stmt = applyEmployeesWhere(stmt, filter)
	stmt = stmt.OrderBy("full_name ASC").
		Limit(filter.Limit).
		Offset((filter.Page - 1) * filter.Limit)

	sqlQuery, args, err = stmt.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, sqlQuery, args...)
	if err != nil {
		return nil, 0, err
	}

	defer rows.Close()

	employees := make([]entity.Employee, 0, filter.Limit)

	for rows.Next() {
		var employee entity.Employee

		err = rows.Scan(
			&employee.ID,
			&employee.SubjectID,
			&employee.FullName,
			&employee.Phone,
			&employee.Email,
			&employee.RoleID,
			&employee.IsActive,
			&employee.CreatedAt,
			&employee.UpdatedAt,
		)
		if err != nil {
			return nil, 0, err
		}

		employees = append(employees, employee)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return employees, count, nil
}

func applyEmployeesWhere(stmt sq.SelectBuilder, filter entity.EmployeesFilter) sq.SelectBuilder {
	if filter.ActiveOnly {
		stmt = stmt.Where(sq.Eq{"is_active": true})
	}

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		stmt = stmt.Where(sq.Or{
			sq.Like{"lower(full_name)": pattern},
			sq.Like{"lower(email)": pattern},
		})
	}

	return stmt
}

func (r *EmployeeRepository) Update(ctx context.Context, employee *entity.Employee) error {
	query := `UPDATE employees
	          SET full_name = $2, phone = $3, email = $4, role_id = $5, is_active = $6, updated_at = now()
	          WHERE id = $1
	          RETURNING updated_at`

	err := r.pool.QueryRow(ctx, query,
		employee.ID,
		employee.FullName,
		employee.Phone,
		employee.Email,
		employee.RoleID,
		employee.IsActive,
	).Scan(&employee.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.ErrEmployeeNotFound
		}

		return mapUniqueViolation(err)
	}

	return nil
}

// Deactivate is the only delete this table gets.
func (r *EmployeeRepository) Deactivate(ctx context.Context, employeeID uuid.UUID) error {
	query := `UPDATE employees SET is_active = false, updated_at = now() WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, employeeID)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return entity.ErrEmployeeNotFound
	}

	return nil
}

// ActiveRoleNames returns the distinct recognized role names held by the
// subject through active employee records. Zero rows is a valid answer.
func (r *EmployeeRepository) ActiveRoleNames(ctx context.Context, subjectID string) ([]string, error) {
	query := `SELECT DISTINCT r.role_name
	          FROM employees e
	          JOIN roles r ON r.id = e.role_id
	          WHERE e.subject_id = $1 AND e.is_active AND r.role_name = ANY($2)`

	rows, err := r.pool.Query(ctx, query, subjectID, entity.RecognizedRoleNames())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrLookupFailed, err)
	}

	defer rows.Close()

	var names []string

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("%w: %w", entity.ErrLookupFailed, err)
		}

		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrLookupFailed, err)
	}

	return names, nil
}

func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		switch {
		case strings.Contains(pgErr.ConstraintName, "subject"):
			return entity.ErrDuplicateSubject
		case strings.Contains(pgErr.ConstraintName, "email"):
			return entity.ErrDuplicateEmail
		}
	}

	return err
}
