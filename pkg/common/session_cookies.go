package common

import (
	"net/http"
	"strings"

	"github.com/Await-0x/RealmsWorld/pkg/types"
	"github.com/google/uuid"
)

const sessionCookie = "sid"

func setSessionCookie(w http.ResponseWriter, r *http.Request, sessionId string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sessionId,
		Domain:   strings.TrimPrefix(hostname(r.Host), "."),
		SameSite: http.SameSiteLaxMode,
		HttpOnly: true,
		MaxAge:   60 * 60 * 24 * 365,
		Path:     "/",
	})
}

func hostname(host string) string {
	if i := strings.LastIndex(host, ":"); i > 0 && !strings.HasSuffix(host, "]") {
		return host[:i]
	}
	return host
}

// HandleSessionCookie returns the session id of the request, starting and
// tracking a new session when the cookie is missing or not a uuid.
func HandleSessionCookie(tracking types.Tracking, w http.ResponseWriter, r *http.Request) string {
	c, err := r.Cookie(sessionCookie)
	if err == nil {
		if _, parseErr := uuid.Parse(c.Value); parseErr == nil {
			return c.Value
		}
	}
	sessionId := uuid.New().String()
	if tracking != nil {
		go tracking.TrackSession(sessionId, r.Clone(r.Context()))
	}
	setSessionCookie(w, r, sessionId)
	return sessionId
}
