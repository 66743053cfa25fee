package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/crewdesk/member-portal/internal/core/domain"
)

func TestOnboardingShow_Pending(t *testing.T) {
	h := NewOnboardingHandler(&stubOnboardingService{})

	c, rec := newTestContext(http.MethodGet, "/onboarding?redirectTo=%2Fdashboard%2Fsettings", nil)
	c.Set("auth_state", domain.AuthState{
		User:        &domain.User{ID: "u1", Approved: true},
		Onboarded:   false,
		RequestPath: "/onboarding",
	})

	if err := h.Show(c); err != nil {
		t.Fatalf("Show failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"onboarding"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestOnboardingShow_AlreadyOnboarded(t *testing.T) {
	h := NewOnboardingHandler(&stubOnboardingService{})

	c, rec := newTestContext(http.MethodGet, "/onboarding?redirectTo=%2Fdashboard%2Fsettings", nil)
	c.Set("auth_state", domain.AuthState{
		User:        &domain.User{ID: "u1", Approved: true},
		Onboarded:   true,
		RequestPath: "/onboarding",
	})

	if err := h.Show(c); err != nil {
		t.Fatalf("Show failed: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/dashboard/settings" {
		t.Fatalf("unexpected location: %s", loc)
	}
}

func TestOnboardingComplete(t *testing.T) {
	svc := &stubOnboardingService{}
	h := NewOnboardingHandler(svc)

	form := url.Values{
		"display_name": {"Alice"},
		"company":      {"Acme"},
		"redirectTo":   {"/dashboard/settings"},
	}
	c, rec := newTestContext(http.MethodPost, "/onboarding", strings.NewReader(form.Encode()))
	c.Request().Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	c.Set("auth_state", domain.AuthState{
		User:        &domain.User{ID: "u1", Approved: true},
		RequestPath: "/onboarding",
	})

	if err := h.Complete(c); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/dashboard/settings" {
		t.Fatalf("unexpected location: %s", loc)
	}
	if len(svc.calls) != 1 || svc.calls[0].DisplayName != "Alice" || svc.calls[0].Company != "Acme" {
		t.Fatalf("unexpected service calls: %+v", svc.calls)
	}
}

func TestOnboardingComplete_MissingDisplayName(t *testing.T) {
	h := NewOnboardingHandler(&stubOnboardingService{})

	form := url.Values{"company": {"Acme"}}
	c, _ := newTestContext(http.MethodPost, "/onboarding", strings.NewReader(form.Encode()))
	c.Request().Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	c.Set("auth_state", domain.AuthState{User: &domain.User{ID: "u1"}})

	err := h.Complete(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestOnboardingComplete_Anonymous(t *testing.T) {
	h := NewOnboardingHandler(&stubOnboardingService{})

	form := url.Values{"display_name": {"Alice"}}
	c, _ := newTestContext(http.MethodPost, "/onboarding", strings.NewReader(form.Encode()))
	c.Request().Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)

	if err := h.Complete(c); !errors.Is(err, domain.ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized, got %v", err)
	}
}
