package evaluationhandler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"hrm/internal/domain/audit"
	"hrm/internal/domain/auth"
	"hrm/internal/domain/evaluation"
	"hrm/internal/transport/http/api"
	"hrm/internal/transport/http/middleware"
	"hrm/internal/transport/http/shared"
)

type Handler struct {
	Service     *evaluation.Service
	Perms       middleware.PermissionStore
	Audit       audit.Recorder
	Idempotency middleware.IdempotencyStore
}

func NewHandler(service *evaluation.Service, perms middleware.PermissionStore, recorder audit.Recorder, idem middleware.IdempotencyStore) *Handler {
	return &Handler{Service: service, Perms: perms, Audit: recorder, Idempotency: idem}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/evaluations", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermEvaluationsRead, h.Perms)).Get("/departments", h.handleDepartments)
		r.With(middleware.RequirePermission(auth.PermEvaluationsRead, h.Perms)).Get("/periods", h.handlePeriods)
		r.With(middleware.RequirePermission(auth.PermEvaluationsRead, h.Perms)).Get("/totals", h.handleTotals)
		r.With(middleware.RequirePermission(auth.PermEvaluationsRead, h.Perms)).Get("/eligibility", h.handleEligibility)
		r.With(middleware.RequirePermission(auth.PermReportsRead, h.Perms)).Get("/eligibility/report.pdf", h.handleEligibilityReport)
		r.With(
			middleware.RequirePermission(auth.PermEvaluationsWrite, h.Perms),
			middleware.Idempotent(h.Idempotency),
		).Post("/", h.handleSubmit)
		r.With(middleware.RequirePermission(auth.PermEvaluationsReset, h.Perms)).Delete("/", h.handleReset)
	})
}

type submitRequest struct {
	EmployeeID  string  `json:"employeeId"`
	EvaluatorID string  `json:"evaluatorId"`
	Date        string  `json:"date"`
	FinalScore  float64 `json:"finalScore"`
}

// viewer resolves the caller's evaluation scope and writes the failure itself.
func (h *Handler) viewer(w http.ResponseWriter, r *http.Request) (auth.UserContext, evaluation.Viewer, bool) {
	requestID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return auth.UserContext{}, evaluation.Viewer{}, false
	}
	viewer, err := h.Service.ResolveViewer(r.Context(), user.TenantID, user.UserID, user.RoleName)
	switch {
	case errors.Is(err, evaluation.ErrScopeRequired), errors.Is(err, evaluation.ErrUnknownRole):
		slog.Warn("evaluation viewer unresolved", "userId", user.UserID, "role", user.RoleName, "err", err)
		api.Fail(w, http.StatusForbidden, "scope_unavailable", "no evaluation scope for this account", requestID)
		return auth.UserContext{}, evaluation.Viewer{}, false
	case err != nil:
		writeError(w, r, err)
		return auth.UserContext{}, evaluation.Viewer{}, false
	}
	return user, viewer, true
}

func (h *Handler) handleDepartments(w http.ResponseWriter, r *http.Request) {
	user, viewer, ok := h.viewer(w, r)
	if !ok {
		return
	}
	names, err := h.Service.Departments(r.Context(), user.TenantID, viewer)
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Success(w, names, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePeriods(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	v := shared.NewValidator()
	raw := r.URL.Query().Get("regime")
	if v.Required("regime", raw) {
		raw = v.OneOf("regime", raw, string(evaluation.RegimeQuarter), string(evaluation.RegimeSemester))
	}
	if v.Reject(w, requestID) {
		return
	}
	regime, _ := evaluation.ParseRegime(raw)

	user, viewer, ok := h.viewer(w, r)
	if !ok {
		return
	}
	view, err := h.Service.PeriodHistory(r.Context(), user.TenantID, viewer, regime, r.URL.Query().Get("department"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Success(w, view, requestID)
}

func (h *Handler) handleTotals(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	v := shared.NewValidator()
	year := v.Year("year", r.URL.Query().Get("year"))
	if v.Reject(w, requestID) {
		return
	}

	user, viewer, ok := h.viewer(w, r)
	if !ok {
		return
	}
	report, err := h.Service.YearlyTotals(r.Context(), user.TenantID, viewer, year)
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Success(w, report, requestID)
}

func (h *Handler) handleEligibility(w http.ResponseWriter, r *http.Request) {
	user, viewer, ok := h.viewer(w, r)
	if !ok {
		return
	}
	result, err := h.Service.Eligibility(r.Context(), user.TenantID, viewer)
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Success(w, map[string]any{
		"threshold":   h.Service.Threshold,
		"eligible":    result.Eligible,
		"notEligible": result.NotEligible,
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleEligibilityReport(w http.ResponseWriter, r *http.Request) {
	user, viewer, ok := h.viewer(w, r)
	if !ok {
		return
	}
	result, err := h.Service.Eligibility(r.Context(), user.TenantID, viewer)
	if err != nil {
		writeError(w, r, err)
		return
	}

	now := h.Service.Now()
	var buf bytes.Buffer
	if err := evaluation.RenderEligibilityReport(&buf, result, h.Service.Threshold, now); err != nil {
		slog.Error("eligibility report render failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to render report", middleware.GetRequestID(r.Context()))
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=bonus-eligibility-%s.pdf", shared.FormatDate(now)))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload submitRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	v := shared.NewValidator()
	if v.Required("employeeId", payload.EmployeeID) {
		v.UUID("employeeId", payload.EmployeeID)
	}
	v.UUID("evaluatorId", payload.EvaluatorID)
	date, _ := v.Date("date", payload.Date)
	v.Score("finalScore", payload.FinalScore, evaluation.MinScore, evaluation.MaxScore)
	if v.Reject(w, requestID) {
		return
	}

	user, viewer, ok := h.viewer(w, r)
	if !ok {
		return
	}
	evaluatorID := payload.EvaluatorID
	if evaluatorID == "" {
		if id, err := h.Service.EmployeeIDByUserID(r.Context(), user.TenantID, user.UserID); err == nil {
			evaluatorID = id
		}
	}
	submission := evaluation.Submission{
		EmployeeID:  payload.EmployeeID,
		EvaluatorID: evaluatorID,
		Date:        date,
		FinalScore:  payload.FinalScore,
	}
	id, err := h.Service.Submit(r.Context(), user.TenantID, viewer, submission)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.record(r, audit.ActionEvaluationSubmit, id, submission)
	api.Created(w, map[string]string{"id": id}, requestID)
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	user, viewer, ok := h.viewer(w, r)
	if !ok {
		return
	}
	deleted, err := h.Service.Reset(r.Context(), user.TenantID, viewer)
	if err != nil {
		writeError(w, r, err)
		return
	}
	slog.Info("evaluations reset", "tenantId", user.TenantID, "userId", user.UserID, "deleted", deleted)
	h.record(r, audit.ActionEvaluationReset, user.TenantID, map[string]int64{"deleted": deleted})
	api.Success(w, map[string]int64{"deleted": deleted}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) record(r *http.Request, action, entityID string, after any) {
	if h.Audit == nil {
		return
	}
	user, _ := middleware.GetUser(r.Context())
	entry := audit.Entry{
		TenantID:   user.TenantID,
		ActorID:    user.UserID,
		Action:     action,
		EntityType: "evaluation",
		EntityID:   entityID,
		RequestID:  middleware.GetRequestID(r.Context()),
		IP:         shared.ClientIP(r),
		After:      after,
	}
	if err := h.Audit.Record(r.Context(), entry); err != nil {
		slog.Warn("audit record failed", "action", action, "err", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())
	var pgErr *pgconn.PgError
	switch {
	case errors.Is(err, evaluation.ErrForbidden):
		api.Fail(w, http.StatusForbidden, "forbidden", "insufficient permissions", requestID)
	case errors.Is(err, evaluation.ErrInvalidSubmission):
		api.Fail(w, http.StatusBadRequest, "invalid_evaluation", err.Error(), requestID)
	case errors.As(err, &pgErr) && pgErr.Code == "23503":
		api.Fail(w, http.StatusBadRequest, "invalid_reference", "employee or evaluator does not exist", requestID)
	default:
		slog.Error("evaluation request failed", "err", err, "path", r.URL.Path, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "evaluation_failed", "failed to process evaluations", requestID)
	}
}
