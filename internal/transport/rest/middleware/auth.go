package middleware

import (
	"context"
	"net/http"
	"strings"

	"flagarena/internal/service"
)

type contextKey string

const (
	AccountIDKey contextKey = "accountId"
	AdminKey     contextKey = "admin"
)

// AuthMiddleware provides JWT authentication middleware
type AuthMiddleware struct {
	authSvc *service.AuthService
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(authSvc *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authSvc: authSvc}
}

// RequireAccount validates an account JWT from the Authorization header
func (m *AuthMiddleware) RequireAccount(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			http.Error(w, `{"error":"missing authorization header"}`, http.StatusUnauthorized)
			return
		}

		claims, err := m.authSvc.ValidateToken(token)
		if err != nil {
			http.Error(w, `{"error":"invalid or expired token"}`, http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		ctx = context.WithValue(ctx, AccountIDKey, claims.AccountID)
		ctx = context.WithValue(ctx, AdminKey, claims.Admin)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin validates an account JWT and requires the admin claim
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return m.RequireAccount(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsAdmin(r.Context()) {
			http.Error(w, `{"error":"admin access required"}`, http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	}))
}

// GetAccountID extracts the account ID from context
func GetAccountID(ctx context.Context) string {
	if v := ctx.Value(AccountIDKey); v != nil {
		return v.(string)
	}
	return ""
}

// IsAdmin reports whether the request carries the admin claim
func IsAdmin(ctx context.Context) bool {
	if v := ctx.Value(AdminKey); v != nil {
		return v.(bool)
	}
	return false
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
