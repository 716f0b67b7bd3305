package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Sapuran-Berperan/bus-admin-backend/internal/auth"
)

type contextKey string

const (
	ClaimsKey   contextKey = "claims"
	ClientIDKey contextKey = "client_id"
)

// JWTAuth creates a middleware that validates JWT access tokens
func JWTAuth(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				respondStatus(w, http.StatusUnauthorized, "Authorization header required")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				respondStatus(w, http.StatusUnauthorized, "Invalid authorization header format")
				return
			}

			tokenString := parts[1]
			claims, err := jwtManager.ValidateAccessToken(tokenString)
			if err != nil {
				if err == auth.ErrExpiredToken {
					respondStatus(w, http.StatusUnauthorized, "Token has expired")
					return
				}
				respondStatus(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			// Store claims in context
			ctx := context.WithValue(r.Context(), ClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole rejects requests whose claims do not carry role.
// Must run after JWTAuth.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := GetClaims(r.Context())
			if !ok {
				respondStatus(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			if !strings.EqualFold(claims.Role, role) {
				respondStatus(w, http.StatusForbidden, "Insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetClaims retrieves the JWT claims from the request context
func GetClaims(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(*auth.Claims)
	return claims, ok
}

// respondStatus sends an error response with the standard format
func respondStatus(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"meta":{"success":false,"message":"` + message + `"},"data":null}`))
}
