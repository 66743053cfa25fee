package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/crewdesk/member-portal/internal/api/metrics"
	"github.com/crewdesk/member-portal/internal/core/domain"
	"github.com/crewdesk/member-portal/internal/core/ports"
	"github.com/crewdesk/member-portal/internal/core/service"
	"github.com/crewdesk/member-portal/internal/infrastructure/session"
)

// Gate drives the access pipeline once per navigation: Resolve loads the
// AuthState into the request context, Protect/RequireRole/PublicOnly turn
// pipeline decisions into redirects.
type Gate struct {
	pipeline   *service.Gate
	identity   ports.IdentityBackend
	onboarding ports.OnboardingRepository
	sessions   ports.WebSessionStore
	events     ports.EventSink
	secret     string
	log        zerolog.Logger
}

func NewGate(pipeline *service.Gate, identity ports.IdentityBackend, onboarding ports.OnboardingRepository, sessions ports.WebSessionStore, events ports.EventSink, secret string, log zerolog.Logger) *Gate {
	return &Gate{
		pipeline:   pipeline,
		identity:   identity,
		onboarding: onboarding,
		sessions:   sessions,
		events:     events,
		secret:     secret,
		log:        log,
	}
}

// Resolve loads the AuthState for the request: verified cookie → web session
// → durable session → user + onboarding flag. A missing cookie, a bad
// signature or an expired durable session all resolve to the anonymous state;
// only infrastructure failures surface as errors.
func (g *Gate) Resolve() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			state := domain.AuthState{RequestPath: c.Request().URL.Path}

			sid := ""
			if cookie, err := c.Cookie(session.CookieName); err == nil {
				if decoded, ok := session.DecodeCookie(g.secret, cookie.Value); ok {
					sid = decoded
				}
			}

			if sid != "" {
				data, err := g.sessions.Get(ctx, sid)
				if err != nil {
					// A broken session store read degrades to anonymous
					// rather than failing the navigation.
					g.log.Warn().Err(err).Msg("web session read failed")
					data = domain.SessionData{}
				}

				if data.SessionToken != "" {
					user, sess, err := g.identity.GetSession(ctx, data.SessionToken)
					if err != nil {
						return err
					}
					if user != nil {
						state.User = user
						state.Session = sess

						onboarded, err := g.onboarding.Exists(ctx, user.ID)
						if err != nil {
							return err
						}
						state.Onboarded = onboarded
					}
				}
			}

			c.Set(ctxAuthState, state)
			c.Set(ctxWebSID, sid)
			return next(c)
		}
	}
}

// Protect runs the gate pipeline and converts the first non-allow decision
// into a 302. On allow it consumes any leftover pending redirect, so a
// destination preserved across an identity-provider hop is honored exactly
// once and never resurrects.
func (g *Gate) Protect() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			state := AuthState(c)

			d := g.pipeline.Evaluate(state)
			metrics.GateDecisionsTotal.WithLabelValues(d.Stage).Inc()
			if !d.Allow {
				return c.Redirect(http.StatusFound, service.RedirectLocation(d, state.RequestPath))
			}

			if sid := WebSID(c); sid != "" {
				dest, err := g.sessions.ConsumePendingRedirect(c.Request().Context(), sid)
				if err != nil {
					g.log.Warn().Err(err).Msg("pending redirect consume failed")
				} else if dest != "" && service.IsSafeRelativePath(dest) && dest != state.RequestPath {
					return c.Redirect(http.StatusFound, dest)
				}
			}

			return next(c)
		}
	}
}

// RequireRole adds the role stage for restricted sub-areas. Mismatches are
// soft denials: a 302 to fallback, so the restricted area's existence is not
// revealed. It re-runs the full pipeline first, so it is safe to use on a
// route that skipped Protect.
func (g *Gate) RequireRole(role, fallback string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			state := AuthState(c)

			d := g.pipeline.RequireRole(state, role, fallback)
			if !d.Allow {
				if d.Stage == domain.StageRole {
					metrics.GateDecisionsTotal.WithLabelValues(domain.StageRole).Inc()
					g.events.Enqueue(domain.AuthEvent{
						UserID:    state.User.ID,
						Action:    domain.EventRoleDenied,
						Timestamp: time.Now().UTC(),
						Detail:    state.RequestPath,
					})
					g.log.Debug().
						Str("user_id", state.User.ID).
						Str("path", state.RequestPath).
						Msg("role denied, redirecting to fallback")
				}
				return c.Redirect(http.StatusFound, service.RedirectLocation(d, state.RequestPath))
			}

			return next(c)
		}
	}
}

// PublicOnly is the inverse guard for login/register/reset-password: an
// authenticated caller is sent away. It re-runs the same pipeline instead of
// hand-rolling an "if authenticated" check, so an approved-but-not-onboarded
// user lands on /onboarding, not blindly on the authorized area.
func (g *Gate) PublicOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			state := AuthState(c)
			if state.Session == nil || state.User == nil {
				return next(c)
			}

			d := g.pipeline.Evaluate(state)
			if !d.Allow {
				return c.Redirect(http.StatusFound, d.Target)
			}

			dest := service.SafeReturnPath(c.QueryParam("redirectTo"), domain.PathDashboard)
			return c.Redirect(http.StatusFound, dest)
		}
	}
}
