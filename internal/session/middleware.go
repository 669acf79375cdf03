package session

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const CookieName = "inventory_session"

type ctxKey struct{}

// Middleware makes sure every request carries a signed session id, issuing a
// fresh cookie when the incoming one is missing or does not verify.
func Middleware(secret []byte, maxAge time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if c, err := r.Cookie(CookieName); err == nil {
				if sid, err := Parse(secret, c.Value); err == nil {
					next.ServeHTTP(w, r.WithContext(WithID(r.Context(), sid)))
					return
				}
			}

			sid := uuid.NewString()
			token, err := Issue(secret, sid, maxAge)
			if err != nil {
				zap.L().Error("could not issue session", zap.Error(err))
				http.Error(w, "could not start session", http.StatusInternalServerError)
				return
			}
			http.SetCookie(w, &http.Cookie{
				Name:     CookieName,
				Value:    token,
				Path:     "/",
				MaxAge:   int(maxAge.Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
			next.ServeHTTP(w, r.WithContext(WithID(r.Context(), sid)))
		})
	}
}

func WithID(ctx context.Context, sid string) context.Context {
	return context.WithValue(ctx, ctxKey{}, sid)
}

// ID returns the session id attached by Middleware, or "".
func ID(ctx context.Context) string {
	sid, _ := ctx.Value(ctxKey{}).(string)
	return sid
}
