package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/crewdesk/member-portal/internal/api/metrics"
	apimw "github.com/crewdesk/member-portal/internal/api/middleware"
	"github.com/crewdesk/member-portal/internal/core/domain"
	"github.com/crewdesk/member-portal/internal/core/ports"
	"github.com/crewdesk/member-portal/internal/core/service"
	"github.com/crewdesk/member-portal/internal/infrastructure/session"
)

// AuthHandler owns the login/register/logout routes and the OAuth round trip.
type AuthHandler struct {
	identity  ports.IdentityBackend
	sessions  ports.WebSessionStore
	events    ports.EventSink
	secret    string
	secure    bool
	cookieTTL time.Duration
}

func NewAuthHandler(identity ports.IdentityBackend, sessions ports.WebSessionStore, events ports.EventSink, secret string, secure bool, cookieTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		identity:  identity,
		sessions:  sessions,
		events:    events,
		secret:    secret,
		secure:    secure,
		cookieTTL: cookieTTL,
	}
}

type loginRequest struct {
	Email      string `json:"email" form:"email" validate:"required,email"`
	Password   string `json:"password" form:"password" validate:"required"`
	RedirectTo string `json:"redirectTo,omitempty" form:"redirectTo"`
}

type registerRequest struct {
	Email      string `json:"email" form:"email" validate:"required,email"`
	Password   string `json:"password" form:"password" validate:"required,min=8"`
	Name       string `json:"name,omitempty" form:"name"`
	RedirectTo string `json:"redirectTo,omitempty" form:"redirectTo"`
}

type pageResponse struct {
	Page       string `json:"page"`
	RedirectTo string `json:"redirectTo,omitempty"`
}

// LoginPage renders the login page descriptor.
//
// @Summary      Login page
// @Tags         auth
// @Produce      json
// @Param        redirectTo  query     string  false  "Destination after successful login"
// @Success      200         {object}  pageResponse
// @Router       /login [get]
func (h *AuthHandler) LoginPage(c echo.Context) error {
	return c.JSON(http.StatusOK, pageResponse{
		Page:       "login",
		RedirectTo: service.SafeReturnPath(c.QueryParam("redirectTo"), ""),
	})
}

// Login authenticates with email and password and redirects to the caller's
// original destination.
//
// @Summary      Sign in with password
// @Tags         auth
// @Accept       json
// @Param        body  body  loginRequest  true  "Credentials"
// @Success      302
// @Failure      401  {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	user, sess, err := h.identity.SignIn(ctx, req.Email, req.Password, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		return err
	}

	if err := h.attachSession(c, sess.Token); err != nil {
		return err
	}
	metrics.SessionsIssuedTotal.WithLabelValues("password").Inc()
	h.events.Enqueue(domain.AuthEvent{
		UserID:    user.ID,
		Action:    domain.EventSignIn,
		Timestamp: time.Now().UTC(),
		IPAddress: c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	})

	return c.Redirect(http.StatusFound, service.SafeReturnPath(req.RedirectTo, domain.PathDashboard))
}

// RegisterPage renders the registration page descriptor.
//
// @Summary      Registration page
// @Tags         auth
// @Produce      json
// @Success      200  {object}  pageResponse
// @Router       /register [get]
func (h *AuthHandler) RegisterPage(c echo.Context) error {
	return c.JSON(http.StatusOK, pageResponse{Page: "register"})
}

// Register creates an account and signs the caller in. The gate decides where
// they actually land: a fresh unapproved account bounces to /approval-needed.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Param        body  body  registerRequest  true  "Account details"
// @Success      302
// @Failure      409  {object}  map[string]string
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	user, sess, err := h.identity.SignUp(ctx, req.Email, req.Password, req.Name, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		return err
	}

	if err := h.attachSession(c, sess.Token); err != nil {
		return err
	}
	metrics.SessionsIssuedTotal.WithLabelValues("password").Inc()
	h.events.Enqueue(domain.AuthEvent{
		UserID:    user.ID,
		Action:    domain.EventSignUp,
		Timestamp: time.Now().UTC(),
		IPAddress: c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	})

	return c.Redirect(http.StatusFound, service.SafeReturnPath(req.RedirectTo, domain.PathDashboard))
}

// ResetPasswordPage renders the reset-password page descriptor.
//
// @Summary      Reset-password page
// @Tags         auth
// @Produce      json
// @Success      200  {object}  pageResponse
// @Router       /reset-password [get]
func (h *AuthHandler) ResetPasswordPage(c echo.Context) error {
	return c.JSON(http.StatusOK, pageResponse{Page: "reset-password"})
}

// Logout revokes the durable session, drops the whole web-session record
// (pending redirect included, so a stale destination cannot leak into the
// next principal's session on this device) and expires the cookie.
//
// @Summary      Sign out
// @Tags         auth
// @Success      302
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	state := apimw.AuthState(c)

	if sid := apimw.WebSID(c); sid != "" {
		data, err := h.sessions.Get(ctx, sid)
		if err == nil && data.SessionToken != "" {
			if err := h.identity.SignOut(ctx, data.SessionToken); err != nil {
				return err
			}
		}
		if err := h.sessions.Clear(ctx, sid); err != nil {
			return err
		}
	}
	c.SetCookie(session.ExpiredCookie(h.secure))

	if state.User != nil {
		h.events.Enqueue(domain.AuthEvent{
			UserID:    state.User.ID,
			Action:    domain.EventSignOut,
			Timestamp: time.Now().UTC(),
		})
	}

	return c.Redirect(http.StatusFound, domain.PathLogin)
}

// OAuthStart begins the external provider round trip. The caller's intended
// destination is pushed into the web session first: the provider's callback
// URL is fixed, so the query string would not survive the hop.
//
// @Summary      Start OAuth sign-in
// @Tags         auth
// @Param        redirectTo  query  string  false  "Destination after the round trip"
// @Success      302
// @Router       /auth/oauth [get]
func (h *AuthHandler) OAuthStart(c echo.Context) error {
	sid, err := session.EnsureSID(c, h.secret, h.secure, h.cookieTTL)
	if err != nil {
		return err
	}

	state := uuid.NewString()
	dest := service.SafeReturnPath(c.QueryParam("redirectTo"), "")
	if err := h.sessions.Update(c.Request().Context(), sid, func(d *domain.SessionData) {
		d.OAuthState = state
		if dest != "" {
			d.PendingRedirect = dest
		}
	}); err != nil {
		return err
	}

	return c.Redirect(http.StatusFound, h.identity.AuthCodeURL(state))
}

// OAuthCallback completes the round trip: verifies state, exchanges the code,
// attaches the fresh durable session and sends the caller to the destination
// preserved before the hop — exactly once.
//
// @Summary      OAuth callback
// @Tags         auth
// @Param        code   query  string  true   "Authorization code"
// @Param        state  query  string  true   "CSRF state"
// @Success      302
// @Failure      401  {object}  map[string]string
// @Router       /auth/callback [get]
func (h *AuthHandler) OAuthCallback(c echo.Context) error {
	ctx := c.Request().Context()

	sid := apimw.WebSID(c)
	if sid == "" {
		return domain.ErrInvalidCredentials
	}

	data, err := h.sessions.Get(ctx, sid)
	if err != nil {
		return err
	}
	if data.OAuthState == "" || data.OAuthState != c.QueryParam("state") {
		return domain.ErrInvalidCredentials
	}

	user, sess, err := h.identity.ExchangeCode(ctx, c.QueryParam("code"), c.RealIP(), c.Request().UserAgent())
	if err != nil {
		return err
	}

	if err := h.sessions.Update(ctx, sid, func(d *domain.SessionData) {
		d.SessionToken = sess.Token
		d.OAuthState = ""
	}); err != nil {
		return err
	}
	metrics.SessionsIssuedTotal.WithLabelValues("oauth").Inc()
	h.events.Enqueue(domain.AuthEvent{
		UserID:    user.ID,
		Action:    domain.EventOAuthCallback,
		Timestamp: time.Now().UTC(),
		IPAddress: c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	})

	dest, err := h.sessions.ConsumePendingRedirect(ctx, sid)
	if err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, service.SafeReturnPath(dest, domain.PathDashboard))
}

// attachSession stores the durable session token in the web session, minting
// the signed cookie when the browser has none yet.
func (h *AuthHandler) attachSession(c echo.Context, token string) error {
	sid, err := session.EnsureSID(c, h.secret, h.secure, h.cookieTTL)
	if err != nil {
		return err
	}
	return h.sessions.Update(c.Request().Context(), sid, func(d *domain.SessionData) {
		d.SessionToken = token
	})
}
