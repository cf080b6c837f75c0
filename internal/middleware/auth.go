package middleware

import (
	"context"
	"net/http"
	"strings"

	"codecanvas/backend/internal/auth"
)

type contextKey string

const UserIDKey contextKey = "userID"
const EmailKey contextKey = "email"

// Auth validates the bearer token and places the session identity into the
// request context. Handlers compare it against the userId named in the body,
// so a valid token only ever operates as the account it was issued for.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			unauthorized(w, "Authorization header required")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := auth.ValidateJWTAndGetClaims(tokenString)
		if err != nil {
			unauthorized(w, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, EmailKey, claims.Email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionUserID returns the authenticated user id placed by Auth.
func SessionUserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(UserIDKey).(string)
	return id, ok
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"success":false,"message":"` + message + `"}`))
}
