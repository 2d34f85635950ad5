package corehandler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"hrm/internal/domain/audit"
	"hrm/internal/domain/auth"
	"hrm/internal/domain/core"
	"hrm/internal/domain/evaluation"
	"hrm/internal/transport/http/api"
	"hrm/internal/transport/http/middleware"
	"hrm/internal/transport/http/shared"
)

// ViewerResolver maps the caller to the department scope they may see.
type ViewerResolver interface {
	ResolveViewer(ctx context.Context, tenantID, userID, role string) (evaluation.Viewer, error)
}

type Handler struct {
	Service *core.Service
	Perms   middleware.PermissionStore
	Viewers ViewerResolver
	Audit   audit.Recorder
}

func NewHandler(service *core.Service, perms middleware.PermissionStore, viewers ViewerResolver, recorder audit.Recorder) *Handler {
	return &Handler{Service: service, Perms: perms, Viewers: viewers, Audit: recorder}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermEmployeesRead, h.Perms)).Get("/", h.handleListEmployees)
		r.With(middleware.RequirePermission(auth.PermEmployeesWrite, h.Perms)).Post("/", h.handleCreateEmployee)
	})
	r.Route("/departments", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermOrgRead, h.Perms)).Get("/", h.handleListDepartments)
		r.With(middleware.RequirePermission(auth.PermOrgWrite, h.Perms)).Post("/", h.handleCreateDepartment)
	})
	r.Route("/positions", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermOrgRead, h.Perms)).Get("/", h.handleListPositions)
		r.With(middleware.RequirePermission(auth.PermOrgWrite, h.Perms)).Post("/", h.handleCreatePosition)
	})
}

type employeeRequest struct {
	UserID         string   `json:"userId"`
	EmployeeNumber string   `json:"employeeNumber"`
	FirstName      string   `json:"firstName"`
	LastName       string   `json:"lastName"`
	Email          string   `json:"email"`
	PositionID     string   `json:"positionId"`
	DepartmentIDs  []string `json:"departmentIds"`
}

type nameRequest struct {
	Name string `json:"name"`
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	requestID := middleware.GetRequestID(r.Context())

	department := r.URL.Query().Get("department")
	if user.RoleName == auth.RoleCoordinator {
		viewer, err := h.Viewers.ResolveViewer(r.Context(), user.TenantID, user.UserID, user.RoleName)
		if err != nil {
			api.Fail(w, http.StatusForbidden, "scope_unavailable", "no department assigned", requestID)
			return
		}
		department = viewer.Scope()
	}

	employees, err := h.Service.ListEmployees(r.Context(), user.TenantID, department)
	if err != nil {
		slog.Error("list employees failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "employee_list_failed", "failed to list employees", requestID)
		return
	}
	api.Success(w, employees, requestID)
}

func (h *Handler) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	requestID := middleware.GetRequestID(r.Context())

	var payload employeeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	v := shared.NewValidator()
	v.Required("firstName", payload.FirstName)
	v.Required("lastName", payload.LastName)
	v.MaxItems("departmentIds", len(payload.DepartmentIDs), core.MaxDepartmentsPerEmployee)
	v.UUIDs("departmentIds", payload.DepartmentIDs)
	v.UUID("userId", payload.UserID)
	v.UUID("positionId", payload.PositionID)
	if v.Reject(w, requestID) {
		return
	}

	emp := core.Employee{
		UserID:         payload.UserID,
		EmployeeNumber: payload.EmployeeNumber,
		FirstName:      payload.FirstName,
		LastName:       payload.LastName,
		Email:          payload.Email,
		PositionID:     payload.PositionID,
		DepartmentIDs:  payload.DepartmentIDs,
	}
	id, err := h.Service.CreateEmployee(r.Context(), user.TenantID, emp)
	if err != nil {
		h.failWrite(w, err, "employee", requestID)
		return
	}

	h.record(r, audit.ActionEmployeeCreate, "employee", id, payload)
	api.Created(w, map[string]string{"id": id}, requestID)
}

func (h *Handler) handleListDepartments(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	departments, err := h.Service.ListDepartments(r.Context(), user.TenantID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "department_list_failed", "failed to list departments", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, departments, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateDepartment(w http.ResponseWriter, r *http.Request) {
	h.createNamed(w, r, "department", audit.ActionDepartmentCreate, h.Service.CreateDepartment)
}

func (h *Handler) handleListPositions(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	positions, err := h.Service.ListPositions(r.Context(), user.TenantID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "position_list_failed", "failed to list positions", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, positions, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreatePosition(w http.ResponseWriter, r *http.Request) {
	h.createNamed(w, r, "position", audit.ActionPositionCreate, h.Service.CreatePosition)
}

func (h *Handler) createNamed(w http.ResponseWriter, r *http.Request, entity, action string, create func(context.Context, string, string) (string, error)) {
	user, _ := middleware.GetUser(r.Context())
	requestID := middleware.GetRequestID(r.Context())

	var payload nameRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	v := shared.NewValidator()
	v.Required("name", payload.Name)
	if v.Reject(w, requestID) {
		return
	}

	id, err := create(r.Context(), user.TenantID, payload.Name)
	if err != nil {
		h.failWrite(w, err, entity, requestID)
		return
	}
	h.record(r, action, entity, id, payload)
	api.Created(w, map[string]string{"id": id}, requestID)
}

func (h *Handler) failWrite(w http.ResponseWriter, err error, entity, requestID string) {
	var pgErr *pgconn.PgError
	switch {
	case errors.As(err, &pgErr) && pgErr.Code == "23505":
		api.Fail(w, http.StatusConflict, entity+"_exists", entity+" already exists", requestID)
	case errors.As(err, &pgErr) && pgErr.Code == "23503":
		api.Fail(w, http.StatusBadRequest, "invalid_reference", "referenced record does not exist", requestID)
	case errors.Is(err, core.ErrTooManyDepartments),
		errors.Is(err, core.ErrDuplicateDepartment),
		errors.Is(err, core.ErrEmployeeNameRequired),
		errors.Is(err, core.ErrNameRequired):
		api.Fail(w, http.StatusBadRequest, "invalid_"+entity, err.Error(), requestID)
	default:
		slog.Error("create failed", "entity", entity, "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, entity+"_create_failed", "failed to create "+entity, requestID)
	}
}

func (h *Handler) record(r *http.Request, action, entity, id string, after any) {
	if h.Audit == nil {
		return
	}
	user, _ := middleware.GetUser(r.Context())
	entry := audit.Entry{
		TenantID:   user.TenantID,
		ActorID:    user.UserID,
		Action:     action,
		EntityType: entity,
		EntityID:   id,
		RequestID:  middleware.GetRequestID(r.Context()),
		IP:         shared.ClientIP(r),
		After:      after,
	}
	if err := h.Audit.Record(r.Context(), entry); err != nil {
		slog.Warn("audit record failed", "action", action, "err", err)
	}
}
