// Package admin serves the token-protected generation history dashboard.
package admin

import (
	cryptorand "crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
)

// Authenticator guards the dashboard with a random path and a random token.
//
// The token is exchanged once via the login URL for an HttpOnly cookie
// scoped to the dashboard path.
type Authenticator struct {
	token    string
	path     string
	useHTTPS bool
}

const (
	pathLength   = 32
	tokenLength  = 32
	cookieName   = "genpass_admin_token"
	cookieMaxAge = 86400 // 24 hours in seconds
)

// NewAuthenticator creates a new authenticator with a fresh token and path.
// useHTTPS marks the cookie Secure and switches generated URLs to https.
func NewAuthenticator(useHTTPS bool) (*Authenticator, error) {
	token, err := randomString(tokenLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate admin token: %w", err)
	}

	path, err := randomString(pathLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate admin path: %w", err)
	}

	return &Authenticator{
		token:    token,
		path:     "/" + path,
		useHTTPS: useHTTPS,
	}, nil
}

// randomString returns length URL-safe base64 characters from crypto/rand.
func randomString(length int) (string, error) {
	b := make([]byte, (length*6+7)/8)
	if _, err := cryptorand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b)[:length], nil
}

// Token returns the authentication token.
func (a *Authenticator) Token() string {
	return a.token
}

// Path returns the dashboard path.
func (a *Authenticator) Path() string {
	return a.path
}

// ValidateToken compares token with the admin token in constant time.
func (a *Authenticator) ValidateToken(token string) bool {
	return subtle.ConstantTimeCompare([]byte(token), []byte(a.token)) == 1
}

// IsAuthenticated reports whether the request carries a valid admin cookie.
func (a *Authenticator) IsAuthenticated(r *http.Request) bool {
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return false
	}
	return a.ValidateToken(cookie.Value)
}

// SetCookie sets the admin authentication cookie.
func (a *Authenticator) SetCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    a.token,
		Path:     a.path,
		MaxAge:   cookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   a.useHTTPS,
	})
}

func (a *Authenticator) scheme() string {
	if a.useHTTPS {
		return "https"
	}
	return "http"
}

// LoginURL returns the one-time login URL for host, e.g. "localhost:8000".
func (a *Authenticator) LoginURL(host string) string {
	return fmt.Sprintf("%s://%s%s/login?token=%s", a.scheme(), host, a.path, url.QueryEscape(a.token))
}

// AdminURL returns the dashboard URL for host, without the token.
func (a *Authenticator) AdminURL(host string) string {
	return fmt.Sprintf("%s://%s%s", a.scheme(), host, a.path)
}
