package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/cutiefy/cutiefy-backend/pkg/config"
	"github.com/cutiefy/cutiefy-backend/pkg/logger"
)

// CartSession assigns every browser a stable session cookie; the cart lives
// under that id in Redis. The cookie is HttpOnly so only the backend ever
// sees it.
func CartSession(cfg *config.Config, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := ""
			if cookie, err := r.Cookie(cfg.Session.CookieName); err == nil && cookie.Value != "" {
				if _, err := uuid.Parse(cookie.Value); err == nil {
					sessionID = cookie.Value
				}
			}

			if sessionID == "" {
				sessionID = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     cfg.Session.CookieName,
					Value:    sessionID,
					Path:     "/",
					MaxAge:   int(cfg.Session.TTL.Seconds()),
					HttpOnly: true,
					Secure:   cfg.Session.Secure || cfg.App.IsProd(),
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := WithSessionID(r.Context(), sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
