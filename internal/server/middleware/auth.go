// Package middleware provides HTTP middleware for authentication.
package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// teacherIDKey is the context key for storing the authenticated teacher ID.
const teacherIDKey ContextKey = "teacherID"

// TokenValidator validates bearer tokens. The server's JWT service implements it.
type TokenValidator interface {
	ValidateToken(tokenString string) (TeacherIDGetter, error)
}

// TeacherIDGetter is implemented by token claims that identify a teacher.
type TeacherIDGetter interface {
	GetTeacherID() uuid.UUID
}

// AuthMiddleware rejects requests without a valid bearer token and puts the teacher ID in the
// request context.
func AuthMiddleware(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				unauthorized(w, "missing bearer token")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				unauthorized(w, "invalid or expired token")
				return
			}

			teacherID := claims.GetTeacherID()
			if teacherID == uuid.Nil {
				unauthorized(w, "token has no teacher id")
				return
			}

			ctx := context.WithValue(r.Context(), teacherIDKey, teacherID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken parses "Bearer <token>", case-insensitive on the scheme.
func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="groepsplan"`)
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message, "code": "UNAUTHORIZED"})
}

// GetTeacherID extracts the authenticated teacher ID from the request context.
func GetTeacherID(r *http.Request) (uuid.UUID, error) {
	teacherID, ok := r.Context().Value(teacherIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, fmt.Errorf("teacher ID not found in request context")
	}
	return teacherID, nil
}

// WithTeacherID returns a copy of ctx carrying teacherID, as AuthMiddleware does.
func WithTeacherID(ctx context.Context, teacherID uuid.UUID) context.Context {
	return context.WithValue(ctx, teacherIDKey, teacherID)
}
