package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apimw "github.com/crewdesk/member-portal/internal/api/middleware"
	"github.com/crewdesk/member-portal/internal/core/domain"
	"github.com/crewdesk/member-portal/internal/core/ports"
	"github.com/crewdesk/member-portal/internal/core/service"
)

// OnboardingHandler owns the one-time profile-completion step.
type OnboardingHandler struct {
	onboarding ports.OnboardingService
}

func NewOnboardingHandler(onboarding ports.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{onboarding: onboarding}
}

type onboardingRequest struct {
	DisplayName string `json:"display_name" form:"display_name" validate:"required,min=2"`
	Company     string `json:"company,omitempty" form:"company"`
	RedirectTo  string `json:"redirectTo,omitempty" form:"redirectTo"`
}

// Show renders the onboarding form descriptor. An already-onboarded user is
// bounced straight to their destination; the marker row is never recreated.
//
// @Summary      Onboarding page
// @Tags         onboarding
// @Produce      json
// @Param        redirectTo  query     string  false  "Destination after completion"
// @Success      200         {object}  pageResponse
// @Success      302
// @Router       /onboarding [get]
func (h *OnboardingHandler) Show(c echo.Context) error {
	state := apimw.AuthState(c)
	if state.Onboarded {
		return c.Redirect(http.StatusFound, service.SafeReturnPath(c.QueryParam("redirectTo"), domain.PathDashboard))
	}
	return c.JSON(http.StatusOK, pageResponse{
		Page:       "onboarding",
		RedirectTo: service.SafeReturnPath(c.QueryParam("redirectTo"), ""),
	})
}

// Complete records the onboarding marker and forwards to the preserved
// destination. Idempotent: a repeat submit changes nothing and redirects the
// same way.
//
// @Summary      Complete onboarding
// @Tags         onboarding
// @Accept       json
// @Param        body  body  onboardingRequest  true  "Profile fields"
// @Success      302
// @Failure      400  {object}  map[string]string
// @Router       /onboarding [post]
func (h *OnboardingHandler) Complete(c echo.Context) error {
	var req onboardingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	state := apimw.AuthState(c)
	if state.User == nil {
		return domain.ErrNotAuthorized
	}

	err := h.onboarding.Complete(c.Request().Context(), state.User.ID, ports.ProfileInput{
		DisplayName: req.DisplayName,
		Company:     req.Company,
	})
	if err != nil {
		return err
	}

	return c.Redirect(http.StatusFound, service.SafeReturnPath(req.RedirectTo, domain.PathDashboard))
}
