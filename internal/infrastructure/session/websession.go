package session

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// EnsureSID returns the verified web-session ID from the request cookie, or
// mints a fresh ID and sets the signed cookie on the response. Each browser
// gets its own ID, which is what scopes the pending redirect to a single
// device.
func EnsureSID(c echo.Context, secret string, secure bool, ttl time.Duration) (string, error) {
	if cookie, err := c.Cookie(CookieName); err == nil {
		if sid, ok := DecodeCookie(secret, cookie.Value); ok {
			return sid, nil
		}
	}

	sid := uuid.NewString()
	value, err := EncodeCookie(secret, sid)
	if err != nil {
		return "", err
	}
	c.SetCookie(NewCookie(value, ttl, secure))
	return sid, nil
}
