package auth

import (
	"net/http"
	"time"
)

const SessionCookieName = "admin_session"

// CookieConfig controls the attributes of the admin_session cookie.
// SameSite is one of "strict", "lax" or "none"; anything else leaves the
// browser default.
type CookieConfig struct {
	Domain   string
	Secure   bool
	SameSite string
}

func (c CookieConfig) cookie(value string) *http.Cookie {
	sameSite := http.SameSiteDefaultMode
	switch c.SameSite {
	case "strict":
		sameSite = http.SameSiteStrictMode
	case "lax":
		sameSite = http.SameSiteLaxMode
	case "none":
		sameSite = http.SameSiteNoneMode
	}
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		Path:     "/",
		Domain:   c.Domain,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: sameSite,
	}
}

// SetSessionCookie stores token until expiresAt.
func SetSessionCookie(w http.ResponseWriter, token string, expiresAt time.Time, config CookieConfig) {
	c := config.cookie(token)
	c.Expires = expiresAt
	c.MaxAge = int(time.Until(expiresAt).Seconds())
	http.SetCookie(w, c)
}

func ClearSessionCookie(w http.ResponseWriter, config CookieConfig) {
	c := config.cookie("")
	c.MaxAge = -1
	http.SetCookie(w, c)
}

func GetSessionCookie(r *http.Request) (string, error) {
	c, err := r.Cookie(SessionCookieName)
	if err != nil {
		return "", err
	}
	return c.Value, nil
}
