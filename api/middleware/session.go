package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/vaporvista/storefront-backend/pkg/logger"
)

const sessionHeader = "X-Cart-Session"

type sessionCtxKey struct{}

// CartSession resolves the cart session ID from the cookie or header,
// minting a fresh one for first-time visitors. The ID scopes the cart slot;
// two tabs sharing the cookie share the slot with last-write-wins.
func CartSession(cookieName string, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := ""
			if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
				sessionID = cookie.Value
			}
			if sessionID == "" {
				sessionID = r.Header.Get(sessionHeader)
			}
			if sessionID == "" {
				sessionID = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     cookieName,
					Value:    sessionID,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}
			w.Header().Set(sessionHeader, sessionID)

			ctx := context.WithValue(r.Context(), sessionCtxKey{}, sessionID)
			if logg != nil {
				ctx = logg.WithCartSession(ctx, sessionID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CartSessionFromContext returns the session ID resolved by CartSession.
func CartSessionFromContext(ctx context.Context) string {
	if value, ok := ctx.Value(sessionCtxKey{}).(string); ok {
		return value
	}
	return ""
}
