package ports

import (
	"context"

	"github.com/crewdesk/member-portal/internal/core/domain"
)

// IdentityBackend authenticates principals and owns durable sessions. The
// gate consumes it read-only through GetSession; handlers drive the rest.
type IdentityBackend interface {
	SignUp(ctx context.Context, email, password, name, ip, userAgent string) (*domain.User, *domain.Session, error)
	SignIn(ctx context.Context, email, password, ip, userAgent string) (*domain.User, *domain.Session, error)
	// GetSession resolves a durable session token. Missing, malformed and
	// expired tokens all yield (nil, nil, nil): anonymous, not an error.
	GetSession(ctx context.Context, token string) (*domain.User, *domain.Session, error)
	SignOut(ctx context.Context, token string) error
	RevokeUserSessions(ctx context.Context, userID string) (int64, error)

	// AuthCodeURL builds the external provider authorize URL for a round trip.
	AuthCodeURL(state string) string
	// ExchangeCode completes the provider round trip: exchanges the code,
	// upserts the user and issues a fresh durable session.
	ExchangeCode(ctx context.Context, code, ip, userAgent string) (*domain.User, *domain.Session, error)
}
