package service

import (
	"net/url"
	"strings"

	"github.com/crewdesk/member-portal/internal/core/domain"
)

// Gate is the ordered, short-circuiting decision pipeline for protected
// navigations. It is a pure function of AuthState: the first matching stage
// wins and later stages are never evaluated.
type Gate struct {
	requireApproval bool
}

func NewGate(requireApproval bool) *Gate {
	return &Gate{requireApproval: requireApproval}
}

// Evaluate runs the pipeline:
//
//	1. no session        → /login (carry return path)
//	2. no access         → /approval-needed
//	3. not onboarded     → /onboarding (carry return path)
//	4. allow
//
// Stage 2 runs before stage 3 so an unapproved user can never complete
// onboarding. Stage 3 lets a request for /onboarding itself through, since
// that is where the pending user has to land.
func (g *Gate) Evaluate(state domain.AuthState) domain.Decision {
	if state.Session == nil || state.User == nil {
		return domain.RedirectTo(domain.StageAnonymous, domain.PathLogin, true)
	}
	if !state.User.HasAccess(g.requireApproval) {
		return domain.RedirectTo(domain.StageApproval, domain.PathApprovalNeeded, false)
	}
	if !state.Onboarded && state.RequestPath != domain.PathOnboarding {
		return domain.RedirectTo(domain.StageOnboarding, domain.PathOnboarding, true)
	}
	return domain.Allowed()
}

// RequireRole is the extra stage for role-restricted sub-areas, evaluated
// only after Evaluate allows. Mismatches are soft denials: the caller is sent
// to fallback instead of an error page, so restricted routes stay invisible.
func (g *Gate) RequireRole(state domain.AuthState, requiredRole, fallback string) domain.Decision {
	if d := g.Evaluate(state); !d.Allow {
		return d
	}
	if state.User.Role != requiredRole {
		return domain.RedirectTo(domain.StageRole, fallback, false)
	}
	return domain.Allowed()
}

// AuthorizeAction is the non-navigational counterpart of RequireRole. Server
// actions have no page to redirect to, so any failure is a hard
// ErrNotAuthorized. The generic error deliberately does not reveal whether
// the target exists.
func (g *Gate) AuthorizeAction(state domain.AuthState, requiredRole string) error {
	if d := g.Evaluate(state); !d.Allow {
		return domain.ErrNotAuthorized
	}
	if requiredRole != "" && state.User.Role != requiredRole {
		return domain.ErrNotAuthorized
	}
	return nil
}

// IsSafeRelativePath reports whether p may be honored as a redirect target.
// Only same-origin relative paths pass: a single leading slash, no
// backslashes, no scheme. Everything else is an open-redirect vector and is
// rejected.
func IsSafeRelativePath(p string) bool {
	if p == "" || p[0] != '/' {
		return false
	}
	if strings.HasPrefix(p, "//") {
		return false
	}
	if strings.ContainsAny(p, "\\\r\n") {
		return false
	}
	if strings.Contains(p, "://") {
		return false
	}
	return true
}

// SafeReturnPath returns p when it is safe to honor, otherwise fallback.
func SafeReturnPath(p, fallback string) string {
	if IsSafeRelativePath(p) {
		return p
	}
	return fallback
}

// RedirectLocation renders a decision into a Location value, attaching the
// original request path as redirectTo when the stage carries it.
func RedirectLocation(d domain.Decision, requestPath string) string {
	if !d.CarryReturnPath || !IsSafeRelativePath(requestPath) {
		return d.Target
	}
	q := url.Values{"redirectTo": {requestPath}}
	return d.Target + "?" + q.Encode()
}
