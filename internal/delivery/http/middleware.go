package http

import (
	"context"
	"net/http"
	"strings"

	"campusbuddy/internal/entity"
	"campusbuddy/internal/usecase"
	"campusbuddy/pkg/apperror"
)

type contextKey string

const UserContextKey contextKey = "user"

// CurrentUser returns the profile stored by AuthMiddleware.
func CurrentUser(r *http.Request) entity.User {
	user, _ := r.Context().Value(UserContextKey).(entity.User)
	return user
}

func WithUser(ctx context.Context, user entity.User) context.Context {
	return context.WithValue(ctx, UserContextKey, user)
}

type AuthMiddleware struct {
	authUc    usecase.AuthUsecase
	responder *Responder
}

func NewAuthMiddleware(authUc usecase.AuthUsecase, responder *Responder) *AuthMiddleware {
	return &AuthMiddleware{
		authUc:    authUc,
		responder: responder,
	}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			m.responder.Error(w, r, apperror.Unauthenticated(apperror.ReasonMalformed, "authorization header required"))
			return
		}

		token, ok := usecase.BearerToken(authHeader)
		if !ok {
			m.responder.Error(w, r, apperror.Unauthenticated(apperror.ReasonMalformed, "invalid authorization header format"))
			return
		}

		user, err := m.authUc.Authenticate(r.Context(), token)
		if err != nil {
			m.responder.Error(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// RequireRoles rejects callers whose role is not listed.
func (m *AuthMiddleware) RequireRoles(roles ...entity.Role) func(http.Handler) http.Handler {
	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, string(role))
	}
	message := "requires role " + strings.Join(names, " or ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !CurrentUser(r).HasRole(roles...) {
				m.responder.Error(w, r, apperror.Forbidden(message))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// CORS answers preflight requests and reflects allowed origins.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	wildcard := false
	for _, origin := range allowedOrigins {
		if origin == "*" {
			wildcard = true
		}
		allowed[origin] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && (wildcard || allowed[origin]) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Add("Vary", "Origin")
			}

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
				w.Header().Set("Access-Control-Max-Age", "600")
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
