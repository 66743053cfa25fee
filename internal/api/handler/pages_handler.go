package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apimw "github.com/crewdesk/member-portal/internal/api/middleware"
	"github.com/crewdesk/member-portal/internal/core/domain"
)

// PagesHandler serves the protected page descriptors. Rendering proper is out
// of this service's hands; these endpoints prove which side of the gate the
// caller landed on.
type PagesHandler struct{}

func NewPagesHandler() *PagesHandler {
	return &PagesHandler{}
}

type protectedPageResponse struct {
	Page  string `json:"page"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// Dashboard is the default authorized area.
//
// @Summary      Dashboard
// @Tags         pages
// @Produce      json
// @Success      200  {object}  protectedPageResponse
// @Router       /dashboard [get]
func (h *PagesHandler) Dashboard(c echo.Context) error {
	return pageFor(c, "dashboard")
}

// Settings is a nested protected area under the dashboard.
//
// @Summary      Dashboard settings
// @Tags         pages
// @Produce      json
// @Success      200  {object}  protectedPageResponse
// @Router       /dashboard/settings [get]
func (h *PagesHandler) Settings(c echo.Context) error {
	return pageFor(c, "settings")
}

// Admin is the role-restricted sub-area.
//
// @Summary      Admin area
// @Tags         pages
// @Produce      json
// @Success      200  {object}  protectedPageResponse
// @Router       /admin [get]
func (h *PagesHandler) Admin(c echo.Context) error {
	return pageFor(c, "admin")
}

// ApprovalNeeded is shown to authenticated users still waiting on admin
// approval. It sits outside the gate (the gate would loop it back here) but
// still demands a session of its own.
//
// @Summary      Approval pending page
// @Tags         pages
// @Produce      json
// @Success      200  {object}  protectedPageResponse
// @Success      302
// @Router       /approval-needed [get]
func (h *PagesHandler) ApprovalNeeded(c echo.Context) error {
	state := apimw.AuthState(c)
	if state.Session == nil || state.User == nil {
		return c.Redirect(http.StatusFound, domain.PathLogin)
	}
	return pageFor(c, "approval-needed")
}

func pageFor(c echo.Context, name string) error {
	state := apimw.AuthState(c)
	resp := protectedPageResponse{Page: name}
	if state.User != nil {
		resp.Email = state.User.Email
		resp.Role = state.User.Role
	}
	return c.JSON(http.StatusOK, resp)
}
