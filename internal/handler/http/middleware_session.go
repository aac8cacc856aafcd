package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"

	"github.com/apmod1/password-manager/internal/logger"
)

const sessionCookieName = "session_id"

// sessionCtxKey is the private context key for the anonymous session key.
type sessionCtxKey struct{}

// withSession guarantees every request on the enrollment and login routes
// carries a session key. An existing cookie is reused so a multi-step flow
// stays pinned to its transactions; otherwise a fresh random key is minted
// and set as an HttpOnly cookie.
func (h *Handler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		var sessionKey string
		if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
			sessionKey = cookie.Value
		} else {
			raw := make([]byte, 16)
			if _, err := rand.Read(raw); err != nil {
				log.Err(err).Msg("minting session key failed")
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			sessionKey = hex.EncodeToString(raw)

			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookieName,
				Value:    sessionKey,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteStrictMode,
			})
		}

		ctx := context.WithValue(r.Context(), sessionCtxKey{}, sessionKey)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionKeyFromContext retrieves the session key placed by withSession.
func sessionKeyFromContext(ctx context.Context) (string, bool) {
	sessionKey, ok := ctx.Value(sessionCtxKey{}).(string)
	return sessionKey, ok
}
