package authhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"hrm/internal/domain/auth"
	"hrm/internal/requestctx"
	"hrm/internal/transport/http/api"
	"hrm/internal/transport/http/middleware"
)

type Handler struct {
	Service *auth.Service
}

func NewHandler(service *auth.Service) *Handler {
	return &Handler{Service: service}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID          string   `json:"id"`
	TenantID    string   `json:"tenantId"`
	RoleID      string   `json:"roleId"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions,omitempty"`
}

type loginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      userResponse `json:"user"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	issued := h.Service.Now()
	token, user, err := h.Service.Login(r.Context(), payload.Email, payload.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", requestID)
		return
	}
	if err != nil {
		requestctx.Logger(r.Context()).Error("login failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "token_error", "failed to issue token", requestID)
		return
	}

	api.Success(w, loginResponse{
		Token:     token,
		ExpiresAt: issued.Add(h.Service.TokenTTL).UTC(),
		User:      userResponse{ID: user.ID, TenantID: user.TenantID, RoleID: user.RoleID, Role: user.RoleName},
	}, requestID)
}

// HandleMe echoes the token's identity along with the role's current grants.
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}
	perms, err := h.Service.Permissions(r.Context(), user.RoleID)
	if err != nil {
		requestctx.Logger(r.Context()).Error("permission lookup failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "permission_error", "failed to load permissions", requestID)
		return
	}
	api.Success(w, userResponse{
		ID:          user.UserID,
		TenantID:    user.TenantID,
		RoleID:      user.RoleID,
		Role:        user.RoleName,
		Permissions: perms,
	}, requestID)
}
