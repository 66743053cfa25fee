package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/crewdesk/member-portal/internal/core/domain"
	"github.com/crewdesk/member-portal/internal/core/ports"
	"github.com/crewdesk/member-portal/internal/infrastructure/session"
)

const testSecret = "test-secret"

type fakeStore struct {
	data map[string]domain.SessionData
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: make(map[string]domain.SessionData)}
}

func (s *fakeStore) Get(_ context.Context, sid string) (domain.SessionData, error) {
	return s.data[sid], nil
}

func (s *fakeStore) Update(_ context.Context, sid string, mutate func(*domain.SessionData)) error {
	d := s.data[sid]
	mutate(&d)
	if d.IsZero() {
		delete(s.data, sid)
		return nil
	}
	s.data[sid] = d
	return nil
}

func (s *fakeStore) Clear(_ context.Context, sid string) error {
	delete(s.data, sid)
	return nil
}

func (s *fakeStore) ConsumePendingRedirect(ctx context.Context, sid string) (string, error) {
	d := s.data[sid]
	path := d.PendingRedirect
	if path != "" {
		_ = s.Update(ctx, sid, func(d *domain.SessionData) { d.PendingRedirect = "" })
	}
	return path, nil
}

type fakeIdentity struct {
	user *domain.User
	sess *domain.Session

	signInErr   error
	signUpErr   error
	exchangeErr error

	signedOut   []string
	revokedUser string
	revoked     int64
}

func (f *fakeIdentity) SignUp(_ context.Context, email, _, name, _, _ string) (*domain.User, *domain.Session, error) {
	if f.signUpErr != nil {
		return nil, nil, f.signUpErr
	}
	return f.user, f.sess, nil
}

func (f *fakeIdentity) SignIn(_ context.Context, email, _, _, _ string) (*domain.User, *domain.Session, error) {
	if f.signInErr != nil {
		return nil, nil, f.signInErr
	}
	return f.user, f.sess, nil
}

func (f *fakeIdentity) GetSession(_ context.Context, token string) (*domain.User, *domain.Session, error) {
	if f.sess != nil && f.sess.Token == token {
		return f.user, f.sess, nil
	}
	return nil, nil, nil
}

func (f *fakeIdentity) SignOut(_ context.Context, token string) error {
	f.signedOut = append(f.signedOut, token)
	return nil
}

func (f *fakeIdentity) RevokeUserSessions(_ context.Context, userID string) (int64, error) {
	f.revokedUser = userID
	return f.revoked, nil
}

func (f *fakeIdentity) AuthCodeURL(state string) string {
	return "https://provider.example.com/authorize?state=" + state
}

func (f *fakeIdentity) ExchangeCode(_ context.Context, _, _, _ string) (*domain.User, *domain.Session, error) {
	if f.exchangeErr != nil {
		return nil, nil, f.exchangeErr
	}
	return f.user, f.sess, nil
}

type captureEvents struct {
	events []domain.AuthEvent
}

func (s *captureEvents) Enqueue(event domain.AuthEvent) {
	s.events = append(s.events, event)
}

type stubOnboardingService struct {
	calls []ports.ProfileInput
	err   error
}

func (s *stubOnboardingService) Complete(_ context.Context, _ string, profile ports.ProfileInput) error {
	if s.err != nil {
		return s.err
	}
	s.calls = append(s.calls, profile)
	return nil
}

// newTestContext builds an echo context with the validator wired, mirroring
// what the router sets up.
func newTestContext(method, target string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, body)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// responseSID extracts and verifies the web-session ID minted on the response.
func responseSID(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == session.CookieName {
			sid, ok := session.DecodeCookie(testSecret, cookie.Value)
			if !ok {
				t.Fatalf("response cookie did not verify")
			}
			return sid
		}
	}
	t.Fatalf("no session cookie on response")
	return ""
}
