package httpx

import (
	"net/http"
	"time"
)

// Cookie names used for the session pair. Login sets them, the session gate
// reads them and logout clears them; no other names are ever written.
const (
	AccessCookie  = "accessToken"
	RefreshCookie = "refreshToken"
)

// CookieConfig controls the attributes of session cookies.
type CookieConfig struct {
	// Secure sets the Secure attribute. Off by default for plain-HTTP development.
	Secure bool
	// Path scopes the cookies, "/" when empty.
	Path string
}

func (c CookieConfig) path() string {
	if c.Path == "" {
		return "/"
	}
	return c.Path
}

// SetAccess writes the access token cookie.
func (c CookieConfig) SetAccess(w http.ResponseWriter, token string, ttl time.Duration) {
	c.set(w, AccessCookie, token, ttl)
}

// SetRefresh writes the refresh token cookie.
func (c CookieConfig) SetRefresh(w http.ResponseWriter, token string, ttl time.Duration) {
	c.set(w, RefreshCookie, token, ttl)
}

// Clear expires both session cookies.
func (c CookieConfig) Clear(w http.ResponseWriter) {
	for _, name := range []string{AccessCookie, RefreshCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     c.path(),
			MaxAge:   -1,
			Expires:  time.Unix(0, 0),
			HttpOnly: true,
			Secure:   c.Secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
}

func (c CookieConfig) set(w http.ResponseWriter, name, value string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     c.path(),
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ReadCookie returns the value of the named cookie or "" when absent.
func ReadCookie(r *http.Request, name string) string {
	ck, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return ck.Value
}
