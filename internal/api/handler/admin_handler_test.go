package handler

import (
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/crewdesk/member-portal/internal/core/domain"
	"github.com/crewdesk/member-portal/internal/core/service"
)

func adminState() domain.AuthState {
	return domain.AuthState{
		Session:     &domain.Session{ID: "s1", Token: "tok", UserID: "admin1", ExpiresAt: time.Now().Add(time.Hour)},
		User:        &domain.User{ID: "admin1", Email: "ops@example.com", Role: domain.RoleAdmin, Approved: true},
		Onboarded:   true,
		RequestPath: "/admin/users/u2/revoke-sessions",
	}
}

func TestRevokeSessions(t *testing.T) {
	identity := &fakeIdentity{revoked: 3}
	sink := &captureEvents{}
	h := NewAdminHandler(service.NewGate(true), identity, sink)

	c, rec := newTestContext(http.MethodPost, "/admin/users/u2/revoke-sessions", nil)
	c.SetParamNames("id")
	c.SetParamValues("u2")
	c.Set("auth_state", adminState())

	if err := h.RevokeSessions(c); err != nil {
		t.Fatalf("RevokeSessions failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"revoked":3`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
	if identity.revokedUser != "u2" {
		t.Fatalf("unexpected target: %s", identity.revokedUser)
	}
	if len(sink.events) != 1 || sink.events[0].Action != domain.EventSessionsRevoked {
		t.Fatalf("expected a revocation event, got %+v", sink.events)
	}
	if sink.events[0].Detail != "revoked by admin1" {
		t.Fatalf("unexpected detail: %s", sink.events[0].Detail)
	}
}

func TestRevokeSessions_NonAdmin(t *testing.T) {
	identity := &fakeIdentity{}
	h := NewAdminHandler(service.NewGate(true), identity, &captureEvents{})

	state := adminState()
	state.User.Role = domain.RoleMember

	c, _ := newTestContext(http.MethodPost, "/admin/users/u2/revoke-sessions", nil)
	c.SetParamNames("id")
	c.SetParamValues("u2")
	c.Set("auth_state", state)

	if err := h.RevokeSessions(c); !errors.Is(err, domain.ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized, got %v", err)
	}
	if identity.revokedUser != "" {
		t.Fatalf("revocation must not run for non-admins")
	}
}

func TestRevokeSessions_Anonymous(t *testing.T) {
	h := NewAdminHandler(service.NewGate(true), &fakeIdentity{}, &captureEvents{})

	c, _ := newTestContext(http.MethodPost, "/admin/users/u2/revoke-sessions", nil)
	c.SetParamNames("id")
	c.SetParamValues("u2")

	if err := h.RevokeSessions(c); !errors.Is(err, domain.ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized, got %v", err)
	}
}
