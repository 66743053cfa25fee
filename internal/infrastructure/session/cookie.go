package session

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the browser cookie carrying the signed web-session ID.
const CookieName = "mp_session"

// EncodeCookie wraps a web-session ID in a signed HS256 token. The cookie
// value is opaque to the browser; all payload lives server-side in Redis.
func EncodeCookie(secret, sid string) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sid": sid})
	return t.SignedString([]byte(secret))
}

// DecodeCookie verifies the signature and extracts the web-session ID. Any
// malformed or tampered value yields ok=false; the caller treats that the
// same as no cookie at all.
func DecodeCookie(secret, value string) (sid string, ok bool) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(value, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !tkn.Valid {
		return "", false
	}
	sid, _ = claims["sid"].(string)
	return sid, sid != ""
}

// NewCookie builds the session cookie: httpOnly, SameSite=Lax, Secure outside
// development.
func NewCookie(value string, maxAge time.Duration, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ExpiredCookie builds a cookie that instructs the browser to drop the
// session cookie immediately.
func ExpiredCookie(secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}
