// Package cookie carries the token pair for browser clients. The refresh token cookie is
// scoped to the auth routes so it never travels with ordinary API calls.
package cookie

import (
	"net/http"
	"strings"
	"time"

	"github.com/bruceg7333/water-shop-api/internal/pkg/config"
)

const (
	AccessTokenCookieName  = "access_token"
	RefreshTokenCookieName = "refresh_token"

	accessTokenPath  = "/"
	RefreshTokenPath = "/api/auth"
)

type Jar struct {
	domain   string
	secure   bool
	sameSite http.SameSite
}

func NewJar(cfg config.CookieConfig) *Jar {
	return &Jar{
		domain:   cfg.Domain,
		secure:   cfg.Secure,
		sameSite: parseSameSite(cfg.SameSite),
	}
}

func (j *Jar) SetTokens(w http.ResponseWriter, accessToken, refreshToken string, accessTTL, refreshTTL time.Duration) {
	http.SetCookie(w, j.cookie(AccessTokenCookieName, accessToken, accessTokenPath, accessTTL))
	http.SetCookie(w, j.cookie(RefreshTokenCookieName, refreshToken, RefreshTokenPath, refreshTTL))
}

// Clear expires both cookies; the paths must match the ones they were set with.
func (j *Jar) Clear(w http.ResponseWriter) {
	http.SetCookie(w, j.cookie(AccessTokenCookieName, "", accessTokenPath, -1))
	http.SetCookie(w, j.cookie(RefreshTokenCookieName, "", RefreshTokenPath, -1))
}

func (j *Jar) cookie(name, value, path string, ttl time.Duration) *http.Cookie {
	maxAge := int(ttl / time.Second)
	if ttl < 0 {
		maxAge = -1
	}
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Domain:   j.domain,
		MaxAge:   maxAge,
		Secure:   j.secure || j.sameSite == http.SameSiteNoneMode,
		HttpOnly: true,
		SameSite: j.sameSite,
	}
}

func AccessToken(r *http.Request) string {
	return value(r, AccessTokenCookieName)
}

func RefreshToken(r *http.Request) string {
	return value(r, RefreshTokenCookieName)
}

func value(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}

func parseSameSite(s string) http.SameSite {
	switch strings.ToLower(s) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
