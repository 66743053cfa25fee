package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/crewdesk/member-portal/internal/core/domain"
)

const (
	ctxAuthState = "auth_state"
	ctxWebSID    = "web_sid"
)

// AuthState returns the per-request auth state resolved by the Resolve
// middleware. The zero value means the middleware did not run (or the caller
// is anonymous with no cookie at all).
func AuthState(c echo.Context) domain.AuthState {
	state, _ := c.Get(ctxAuthState).(domain.AuthState)
	return state
}

// WebSID returns the verified web-session ID for the request, or "" when the
// request carried no valid session cookie.
func WebSID(c echo.Context) string {
	sid, _ := c.Get(ctxWebSID).(string)
	return sid
}
