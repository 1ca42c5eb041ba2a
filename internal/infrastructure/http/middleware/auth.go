package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/rezkam/todolist/internal/application/auth"
	"github.com/rezkam/todolist/internal/domain"
	"github.com/rezkam/todolist/internal/infrastructure/http/response"
)

// KeyValidator resolves a presented API key to its stored record.
type KeyValidator interface {
	ValidateAPIKey(ctx context.Context, apiKey string) (*domain.APIKey, error)
}

// Auth is HTTP middleware for API key authentication.
type Auth struct {
	validator KeyValidator
}

// NewAuth creates a new auth middleware.
func NewAuth(validator KeyValidator) *Auth {
	return &Auth{validator: validator}
}

// Validate checks "Authorization: Bearer <api-key>" and stores the key's
// account in the request context for handlers to read with
// auth.AccountIDFromContext.
func (a *Auth) Validate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			slog.WarnContext(r.Context(), "authentication failed: missing Authorization header",
				"path", r.URL.Path,
				"method", r.Method)
			response.Unauthorized(w, "missing Authorization header")
			return
		}

		apiKey, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			slog.WarnContext(r.Context(), "authentication failed: invalid Authorization header format",
				"path", r.URL.Path,
				"method", r.Method)
			response.Unauthorized(w, "invalid Authorization header format, expected: Bearer <token>")
			return
		}

		key, err := a.validator.ValidateAPIKey(r.Context(), apiKey)
		if err != nil {
			if errors.Is(err, domain.ErrUnauthorized) {
				slog.WarnContext(r.Context(), "authentication failed: invalid or expired API key",
					"path", r.URL.Path,
					"method", r.Method)
			} else {
				slog.ErrorContext(r.Context(), "authentication failed: unexpected error",
					"path", r.URL.Path,
					"method", r.Method,
					"error", err)
			}
			response.Unauthorized(w, "invalid or expired API key")
			return
		}

		slog.DebugContext(r.Context(), "authentication successful",
			"key_id", key.ID,
			"key_name", key.Name)

		next.ServeHTTP(w, r.WithContext(auth.WithAccountID(r.Context(), key.AccountID)))
	})
}
