// Package auth validates the identity provider's bearer tokens and
// exposes the authenticated user id to handlers through the request
// context.
//
// Tokens are HS256 JWTs signed with a shared secret; the subject claim
// carries the user id. Every row the API reads or writes is scoped to
// that id.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Vill-8/nursery-scout/internal/api"
)

type contextKey struct{}

// UserID returns the authenticated user id stored by Middleware, or ""
// when the request was not authenticated.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}

// WithUserID returns a context carrying the given user id. Intended for
// tests and internal callers that bypass the HTTP middleware.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, contextKey{}, userID)
}

// Validator validates bearer tokens and extracts the user id.
type Validator struct {
	secret []byte
}

// NewValidator creates a Validator for the given HS256 shared secret.
func NewValidator(secret string) *Validator {
	return &Validator{secret: []byte(secret)}
}

// Validate parses and validates a token string and returns the subject
// (user id).
func (v *Validator) Validate(tokenStr string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return v.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("token validation failed: %w", err)
	}
	if !token.Valid {
		return "", fmt.Errorf("invalid token")
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("token subject is required")
	}
	return claims.Subject, nil
}

// publicPaths are endpoints that do not require authentication.
var publicPaths = []string{
	"/health",
}

func isPublicPath(path string) bool {
	for _, p := range publicPaths {
		if path == p {
			return true
		}
	}
	return false
}

// Middleware returns HTTP middleware that rejects unauthenticated
// requests with 401 and stores the user id in the request context
// otherwise.
func Middleware(validator *Validator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			if header == "" {
				api.WriteError(w, "missing Authorization header", http.StatusUnauthorized)
				return
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				api.WriteError(w, "invalid Authorization header format (expected 'Bearer <token>')", http.StatusUnauthorized)
				return
			}

			userID, err := validator.Validate(parts[1])
			if err != nil {
				api.WriteError(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}
