package middleware

import (
	"context"
	"net/http"
	"strings"
)

const clientIDHeader = "X-Client-ID"

// ClientID identifies the admin session a request belongs to, so that a newer
// listing request from the same session can supersede an older one. The JWT
// subject wins over the X-Client-ID header.
func ClientID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(clientIDHeader))
		if claims, ok := GetClaims(r.Context()); ok && claims.UserID != "" {
			id = claims.UserID
		}
		if id != "" {
			r = r.WithContext(context.WithValue(r.Context(), ClientIDKey, id))
		}
		next.ServeHTTP(w, r)
	})
}

// GetClientID returns the session identifier, or "" when the request has none
func GetClientID(ctx context.Context) string {
	id, _ := ctx.Value(ClientIDKey).(string)
	return id
}
