package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid/v5"

	"github.com/stationops/roster-service/internal/entity"
	"github.com/stationops/roster-service/internal/service"
)

//go:generate go run go.uber.org/mock/mockgen@latest -source=handler.go -destination=../mocks/handler.go -package=mocks

type Service interface {
	CreateEmployee(ctx context.Context, params service.CreateEmployeeParams) (*entity.Employee, error)
	Employee(ctx context.Context, employeeID uuid.UUID) (*entity.Employee, error)
	Employees(ctx context.Context, filter entity.EmployeesFilter) ([]entity.Employee, int, error)
	UpdateEmployee(ctx context.Context, employeeID uuid.UUID, params service.UpdateEmployeeParams) (*entity.Employee, error)
	DeactivateEmployee(ctx context.Context, employeeID uuid.UUID) error
	Roles(ctx context.Context) ([]entity.Role, error)
	Permissions(ctx context.Context) ([]entity.Permission, error)
}

type DBHealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// @title Roster API
// @version 1.0
// @description Staffing roster backend: employee records, role based access.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

type Handler struct {
	s  Service
	db DBHealthChecker
}

func NewHandler(s Service, db DBHealthChecker) *Handler {
	return &Handler{
		s:  s,
		db: db,
	}
}

// Health godoc
// @Summary      Service health
// @Description  Reports service and database availability
// @Tags         health
// @Success      200 {string} string "OK"
// @Failure      500 {object} ResponseError "Database unreachable"
// @Router       /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	err := h.db.HealthCheck(ctx)
	if err != nil {
		SendErr(ctx, w, http.StatusInternalServerError, err, "Database unreachable")
		return
	}

	_, err = w.Write([]byte("OK\n"))
	if err != nil {
		SendErr(ctx, w, http.StatusInternalServerError, err, entity.ErrMsgInternal)
	}
}

// Me godoc
// @Summary      Current identity
// @Description  Returns the resolved identity of the caller: subject, roles, permissions
// @Tags         identity
// @Produce      json
// @Success      200 {object} entity.ResolvedIdentity
// @Failure      401 {object} ResponseError "Not authenticated"
// @Security     BearerAuth
// @Router       /v1/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, err := entity.IdentityFromContext(ctx)
	if err != nil {
		SendErr(ctx, w, http.StatusUnauthorized, err, entity.ErrMsgVerifyFailed)
		return
	}

	SendJSON(ctx, w, http.StatusOK, identity)
}

type CreateEmployeeRequest struct {
	SubjectID string    `json:"subject_id"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	RoleID    uuid.UUID `json:"role_id"`
}

type EmployeeResponse struct {
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

// CreateEmployee godoc
// @Summary      Create employee
// @Description  Creates an employee record and sends the onboarding email
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        request body CreateEmployeeRequest true "Employee attributes"
// @Success      201 {object} EmployeeResponse
// @Failure      400 {object} ResponseError "Validation error"
// @Failure      403 {object} ResponseError "Insufficient permission"
// @Failure      409 {object} ResponseError "Email or subject already in use"
// @Failure      500 {object} ResponseError "Server error"
// @Security     BearerAuth
// @Router       /v1/employees [post]
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateEmployeeRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, entity.ErrMsgBadRequest)
		return
	}

	employee, err := h.s.CreateEmployee(ctx, service.CreateEmployeeParams{
		SubjectID: req.SubjectID,
		FullName:  req.FullName,
		Phone:     req.Phone,
		Email:     req.Email,
		RoleID:    req.RoleID,
	})
	if err != nil {
		h.sendEmployeeErr(ctx, w, err)
		return
	}

	SendJSON(ctx, w, http.StatusCreated, employeeToAPI(employee))
}

// EmployeeByID godoc
// @Summary      Employee details
// @Description  Returns a single employee record
// @Tags         employees
// @Produce      json
// @Param        id path string true "Employee ID"
// @Success      200 {object} EmployeeResponse
// @Failure      400 {object} ResponseError "Invalid ID"
// @Failure      404 {object} ResponseError "Employee not found"
// @Failure      500 {object} ResponseError "Server error"
// @Security     BearerAuth
// @Router       /v1/employees/{id} [get]
func (h *Handler) EmployeeByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	employeeID, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, entity.ErrMsgBadRequest)
		return
	}

	employee, err := h.s.Employee(ctx, employeeID)
	if err != nil {
		h.sendEmployeeErr(ctx, w, err)
		return
	}

	SendJSON(ctx, w, http.StatusOK, employeeToAPI(employee))
}

type EmployeesListResponse struct {
	TotalEmployees int                `json:"total_employees"`
	Employees      []EmployeeResponse `json:"employees"`
}

// EmployeesList godoc
// @Summary      List employees
// @Description  Returns employees matching the filter, paginated
// @Tags         employees
// @Produce      json
// @Param        active_only query bool false "Only active employees"
// @Param        search query string false "Substring match on name or email"
// @Param        page query int false "Page number"
// @Param        limit query int false "Page size, max 100"
// @Success      200 {object} EmployeesListResponse
// @Failure      500 {object} ResponseError "Server error"
// @Security     BearerAuth
// @Router       /v1/employees [get]
func (h *Handler) EmployeesList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter := parseEmployeesFilter(r.URL.Query())

	employees, total, err := h.s.Employees(ctx, filter)
	if err != nil {
		SendErr(ctx, w, http.StatusInternalServerError, err, entity.ErrMsgInternal)
		return
	}

	resp := EmployeesListResponse{
		TotalEmployees: total,
		Employees:      make([]EmployeeResponse, 0, len(employees)),
	}

	for i := range employees {
		resp.Employees = append(resp.Employees, employeeToAPI(&employees[i]))
	}

	SendJSON(ctx, w, http.StatusOK, resp)
}

type UpdateEmployeeRequest struct {
	FullName *string    `json:"full_name"`
	Phone    *string    `json:"phone"`
	Email    *string    `json:"email"`
	RoleID   *uuid.UUID `json:"role_id"`
	IsActive *bool      `json:"is_active"`
}

// UpdateEmployee godoc
// @Summary      Update employee
// @Description  Applies a partial update to an employee record
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        id path string true "Employee ID"
// @Param        request body UpdateEmployeeRequest true "Fields to change"
// @Success      200 {object} EmployeeResponse
// @Failure      400 {object} ResponseError "Validation error"
// @Failure      404 {object} ResponseError "Employee not found"
// @Failure      409 {object} ResponseError "Email already in use"
// @Failure      500 {object} ResponseError "Server error"
// @Security     BearerAuth
// @Router       /v1/employees/{id} [put]
func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	employeeID, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, entity.ErrMsgBadRequest)
		return
	}

	var req UpdateEmployeeRequest

	err = json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, entity.ErrMsgBadRequest)
		return
	}

	employee, err := h.s.UpdateEmployee(ctx, employeeID, service.UpdateEmployeeParams{
		FullName: req.FullName,
		Phone:    req.Phone,
		Email:    req.Email,
		RoleID:   req.RoleID,
		IsActive: req.IsActive,
	})
	if err != nil {
		h.sendEmployeeErr(ctx, w, err)
		return
	}

	SendJSON(ctx, w, http.StatusOK, employeeToAPI(employee))
}

// DeactivateEmployee godoc
// @Summary      Deactivate employee
// @Description  Soft-deletes an employee: the record stays, access ends
// @Tags         employees
// @Param        id path string true "Employee ID"
// @Success      204 {string} string "Deactivated"
// @Failure      400 {object} ResponseError "Invalid ID"
// @Failure      404 {object} ResponseError "Employee not found"
// @Failure      500 {object} ResponseError "Server error"
// @Security     BearerAuth
// @Router       /v1/employees/{id} [delete]
func (h *Handler) DeactivateEmployee(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	employeeID, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, entity.ErrMsgBadRequest)
		return
	}

	err = h.s.DeactivateEmployee(ctx, employeeID)
	if err != nil {
		h.sendEmployeeErr(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RolesList godoc
// @Summary      List roles
// @Tags         rbac
// @Produce      json
// @Success      200 {array} entity.Role
// @Failure      500 {object} ResponseError "Server error"
// @Security     BearerAuth
// @Router       /v1/roles [get]
func (h *Handler) RolesList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	roles, err := h.s.Roles(ctx)
	if err != nil {
		SendErr(ctx, w, http.StatusInternalServerError, err, entity.ErrMsgInternal)
		return
	}

	SendJSON(ctx, w, http.StatusOK, roles)
}

// PermissionsList godoc
// @Summary      List permissions
// @Tags         rbac
// @Produce      json
// @Success      200 {array} entity.Permission
// @Failure      500 {object} ResponseError "Server error"
// @Security     BearerAuth
// @Router       /v1/permissions [get]
func (h *Handler) PermissionsList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	permissions, err := h.s.Permissions(ctx)
	if err != nil {
		SendErr(ctx, w, http.StatusInternalServerError, err, entity.ErrMsgInternal)
		return
	}

	SendJSON(ctx, w, http.StatusOK, permissions)
}

func (h *Handler) sendEmployeeErr(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrEmployeeNotFound):
		SendErr(ctx, w, http.StatusNotFound, err, entity.ErrMsgNotFound)
	case errors.Is(err, entity.ErrRoleNotFound):
		SendErr(ctx, w, http.StatusBadRequest, err, entity.ErrMsgValidation)
	case errors.Is(err, entity.ErrDuplicateEmail):
		SendErr(ctx, w, http.StatusConflict, err, entity.ErrMsgEmailTaken)
	case errors.Is(err, entity.ErrDuplicateSubject):
		SendErr(ctx, w, http.StatusConflict, err, entity.ErrMsgSubjectTaken)
	case errors.Is(err, entity.ErrMissingRequired),
		errors.Is(err, entity.ErrInvalidName),
		errors.Is(err, entity.ErrInvalidPhone),
		errors.Is(err, entity.ErrInvalidEmail),
		errors.Is(err, entity.ErrValidationFailed):
		SendErr(ctx, w, http.StatusBadRequest, err, entity.ErrMsgValidation)
	default:
		SendErr(ctx, w, http.StatusInternalServerError, err, entity.ErrMsgInternal)
	}
}

func employeeToAPI(e *entity.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:        e.ID,
		SubjectID: e.SubjectID,
		FullName:  e.FullName,
		Phone:     e.Phone,
		Email:     e.Email,
		RoleID:    e.RoleID,
		IsActive:  e.IsActive,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
