package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// VisitorCookie names the cookie that ties a browser to its page state.
const VisitorCookie = "rescue_visitor"

// Visitor assigns every browser a stable visitor ID. Missing or malformed
// cookies are replaced with a fresh UUID.
func Visitor(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := ""
			if c, err := r.Cookie(VisitorCookie); err == nil {
				if parsed, err := uuid.Parse(c.Value); err == nil {
					id = parsed.String()
				}
			}
			if id == "" {
				id = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     VisitorCookie,
					Value:    id,
					Path:     "/",
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}
			ctx := context.WithValue(r.Context(), visitorIDKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func VisitorIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(visitorIDKey).(string); ok {
		return v
	}
	return ""
}
