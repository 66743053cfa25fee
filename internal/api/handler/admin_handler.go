package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apimw "github.com/crewdesk/member-portal/internal/api/middleware"
	"github.com/crewdesk/member-portal/internal/core/domain"
	"github.com/crewdesk/member-portal/internal/core/ports"
	"github.com/crewdesk/member-portal/internal/core/service"
)

// AdminHandler owns non-navigable admin actions. Every action re-checks
// authorization itself: the page gate protects navigation, not the mutation,
// and an action has no page to redirect to — failures are hard errors.
type AdminHandler struct {
	gate     *service.Gate
	identity ports.IdentityBackend
	events   ports.EventSink
}

func NewAdminHandler(gate *service.Gate, identity ports.IdentityBackend, events ports.EventSink) *AdminHandler {
	return &AdminHandler{gate: gate, identity: identity, events: events}
}

type revokeResponse struct {
	Revoked int64 `json:"revoked"`
}

// RevokeSessions invalidates every durable session of the target user.
//
// @Summary      Revoke all sessions of a user
// @Tags         admin
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  revokeResponse
// @Failure      403  {object}  map[string]string
// @Router       /admin/users/{id}/revoke-sessions [post]
func (h *AdminHandler) RevokeSessions(c echo.Context) error {
	state := apimw.AuthState(c)
	if err := h.gate.AuthorizeAction(state, domain.RoleAdmin); err != nil {
		return err
	}

	userID := c.Param("id")
	if userID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing user id")
	}

	n, err := h.identity.RevokeUserSessions(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	h.events.Enqueue(domain.AuthEvent{
		UserID:    userID,
		Action:    domain.EventSessionsRevoked,
		Timestamp: time.Now().UTC(),
		Detail:    "revoked by " + state.User.ID,
	})

	return c.JSON(http.StatusOK, revokeResponse{Revoked: n})
}
