package security

import (
	"net/http"
	"strings"
	"time"

	"github.com/graphauth/graphauth/internal/domain"
)

// The session token travels in a cookie named after the Authorization
// header convention, with the same "Bearer " value prefix.
const (
	AuthCookieName = "authorization"
	bearerPrefix   = "Bearer "
)

// CookieWriter sets and clears the session cookie with a fixed lifetime and
// security profile. Secure should be on everywhere except dev.
type CookieWriter struct {
	TTL    time.Duration
	Secure bool
}

func (c CookieWriter) Set(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    bearerPrefix + token,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(c.TTL.Seconds()),
	})
}

// Clear removes the session cookie. Clearing an absent cookie is fine.
func (c CookieWriter) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// ReadAuthToken extracts the raw token from the session cookie, splitting
// off the "Bearer " prefix. Callers treat any error as "no identity".
func ReadAuthToken(r *http.Request) (string, error) {
	c, err := r.Cookie(AuthCookieName)
	if err != nil {
		return "", domain.ErrTokenInvalid()
	}

	raw, ok := strings.CutPrefix(c.Value, bearerPrefix)
	if !ok || raw == "" {
		return "", domain.ErrTokenInvalid()
	}
	return raw, nil
}
