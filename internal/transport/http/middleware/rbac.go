package middleware

import (
	"context"
	"net/http"

	"hrm/internal/requestctx"
	"hrm/internal/transport/http/api"
)

type PermissionStore interface {
	HasPermission(ctx context.Context, roleID, permission string) (bool, error)
}

func RequirePermission(permission string, store PermissionStore) func(http.Handler) http.Handler {
	return RequireAnyPermission(store, permission)
}

// RequireAnyPermission admits the caller when their role holds at least one
// of permissions. Lookups stop at the first grant.
func RequireAnyPermission(store PermissionStore, permissions ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := GetRequestID(ctx)
			user, ok := GetUser(ctx)
			if !ok {
				api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
				return
			}

			for _, permission := range permissions {
				allowed, err := store.HasPermission(ctx, user.RoleID, permission)
				if err != nil {
					requestctx.Logger(ctx).Error("permission lookup failed", "permission", permission, "err", err)
					api.Fail(w, http.StatusInternalServerError, "permission_error", "permission check failed", requestID)
					return
				}
				if allowed {
					next.ServeHTTP(w, r)
					return
				}
			}

			requestctx.Logger(ctx).Info("permission denied", "userId", user.UserID, "role", user.RoleName, "required", permissions)
			api.Fail(w, http.StatusForbidden, "forbidden", "insufficient permissions", requestID)
		})
	}
}
