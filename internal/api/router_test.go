package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/crewdesk/member-portal/internal/core/domain"
	"github.com/crewdesk/member-portal/internal/core/ports"
	"github.com/crewdesk/member-portal/internal/core/service"
	"github.com/crewdesk/member-portal/internal/infrastructure/config"
	"github.com/crewdesk/member-portal/internal/infrastructure/session"
)

const testSecret = "router-test-secret"

type memStore struct {
	data map[string]domain.SessionData
}

func (s *memStore) Get(_ context.Context, sid string) (domain.SessionData, error) {
	return s.data[sid], nil
}

func (s *memStore) Update(_ context.Context, sid string, mutate func(*domain.SessionData)) error {
	d := s.data[sid]
	mutate(&d)
	if d.IsZero() {
		delete(s.data, sid)
		return nil
	}
	s.data[sid] = d
	return nil
}

func (s *memStore) Clear(_ context.Context, sid string) error {
	delete(s.data, sid)
	return nil
}

func (s *memStore) ConsumePendingRedirect(ctx context.Context, sid string) (string, error) {
	d := s.data[sid]
	path := d.PendingRedirect
	if path != "" {
		_ = s.Update(ctx, sid, func(d *domain.SessionData) { d.PendingRedirect = "" })
	}
	return path, nil
}

type memIdentity struct {
	user *domain.User
	sess *domain.Session
}

func (f *memIdentity) SignUp(context.Context, string, string, string, string, string) (*domain.User, *domain.Session, error) {
	return f.user, f.sess, nil
}

func (f *memIdentity) SignIn(context.Context, string, string, string, string) (*domain.User, *domain.Session, error) {
	return f.user, f.sess, nil
}

func (f *memIdentity) GetSession(_ context.Context, token string) (*domain.User, *domain.Session, error) {
	if f.sess != nil && f.sess.Token == token {
		return f.user, f.sess, nil
	}
	return nil, nil, nil
}

func (f *memIdentity) SignOut(context.Context, string) error { return nil }

func (f *memIdentity) RevokeUserSessions(context.Context, string) (int64, error) { return 0, nil }

func (f *memIdentity) AuthCodeURL(state string) string {
	return "https://provider.example.com/authorize?state=" + state
}

func (f *memIdentity) ExchangeCode(context.Context, string, string, string) (*domain.User, *domain.Session, error) {
	return f.user, f.sess, nil
}

type memOnboarding struct {
	onboarded map[string]bool
}

func (o *memOnboarding) Exists(_ context.Context, userID string) (bool, error) {
	return o.onboarded[userID], nil
}

func (o *memOnboarding) Create(_ context.Context, info *domain.OnboardingInfo) error {
	o.onboarded[info.UserID] = true
	return nil
}

type memSink struct{}

func (memSink) Enqueue(domain.AuthEvent) {}

type memProfile struct {
	onboarding *memOnboarding
}

func (p *memProfile) Complete(ctx context.Context, userID string, _ ports.ProfileInput) error {
	return p.onboarding.Create(ctx, &domain.OnboardingInfo{UserID: userID})
}

// The full provider round trip against the real router and middleware chain:
// an anonymous navigation is bounced to login with its destination preserved,
// survives the provider hop through the web session, and is honored exactly
// once after the callback.
func TestRouter_OAuthRoundTrip(t *testing.T) {
	user := &domain.User{ID: "u1", Email: "a@example.com", Role: domain.RoleMember, Approved: true}
	sess := &domain.Session{ID: "s1", Token: "durable-token", UserID: "u1", ExpiresAt: time.Now().Add(time.Hour)}

	store := &memStore{data: make(map[string]domain.SessionData)}
	identity := &memIdentity{user: user, sess: sess}
	onboarding := &memOnboarding{onboarded: map[string]bool{"u1": true}}

	e := NewRouter(Deps{
		Cfg: &config.Config{
			Port:            "0",
			Env:             "development",
			SessionSecret:   testSecret,
			SessionTTL:      time.Hour,
			RequireApproval: true,
		},
		Log:        zerolog.Nop(),
		Identity:   identity,
		Onboarding: onboarding,
		Profile:    &memProfile{onboarding: onboarding},
		Sessions:   store,
		Events:     memSink{},
		Pipeline:   service.NewGate(true),
	})

	do := func(method, target string, cookies []*http.Cookie) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, target, nil)
		for _, c := range cookies {
			req.AddCookie(c)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	// 1. Anonymous navigation to a protected page.
	rec := do(http.MethodGet, "/dashboard/settings", nil)
	if rec.Code != http.StatusFound {
		t.Fatalf("step 1: expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login?redirectTo=%2Fdashboard%2Fsettings" {
		t.Fatalf("step 1: unexpected location: %s", loc)
	}

	// 2. The login page offers OAuth; starting it preserves the destination.
	rec = do(http.MethodGet, "/auth/oauth?redirectTo=%2Fdashboard%2Fsettings", nil)
	if rec.Code != http.StatusFound {
		t.Fatalf("step 2: expected 302 to the provider, got %d", rec.Code)
	}
	cookies := rec.Result().Cookies()
	var sid string
	for _, ck := range cookies {
		if ck.Name == session.CookieName {
			if decoded, ok := session.DecodeCookie(testSecret, ck.Value); ok {
				sid = decoded
			}
		}
	}
	if sid == "" {
		t.Fatalf("step 2: no verifiable session cookie minted")
	}
	state := store.data[sid].OAuthState
	if state == "" || store.data[sid].PendingRedirect != "/dashboard/settings" {
		t.Fatalf("step 2: round-trip state not stored: %+v", store.data[sid])
	}
	if loc := rec.Header().Get("Location"); loc != "https://provider.example.com/authorize?state="+state {
		t.Fatalf("step 2: unexpected provider URL: %s", loc)
	}

	// 3. The provider calls back; the preserved destination wins.
	rec = do(http.MethodGet, "/auth/callback?code=abc&state="+state, cookies)
	if rec.Code != http.StatusFound {
		t.Fatalf("step 3: expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/dashboard/settings" {
		t.Fatalf("step 3: unexpected location: %s", loc)
	}
	if store.data[sid].PendingRedirect != "" {
		t.Fatalf("step 3: pending redirect must be consumed")
	}

	// 4. The destination now renders: the gate resolves the durable session.
	rec = do(http.MethodGet, "/dashboard/settings", cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("step 4: expected 200, got %d (location %s)", rec.Code, rec.Header().Get("Location"))
	}

	// 5. A replayed callback fails: the state nonce was single-use.
	rec = do(http.MethodGet, "/auth/callback?code=abc&state="+state, cookies)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("step 5: expected 401 for a replayed state, got %d", rec.Code)
	}

	// 6. The restricted sub-area soft-denies the non-admin.
	rec = do(http.MethodGet, "/admin", cookies)
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != domain.PathDashboard {
		t.Fatalf("step 6: expected soft denial to %s, got %d %s", domain.PathDashboard, rec.Code, rec.Header().Get("Location"))
	}
}
