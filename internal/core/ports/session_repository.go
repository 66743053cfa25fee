package ports

import (
	"context"

	"github.com/crewdesk/member-portal/internal/core/domain"
)

// SessionRepository persists durable identity sessions.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	FindByToken(ctx context.Context, token string) (*domain.Session, error)
	DeleteByToken(ctx context.Context, token string) error
	DeleteByUser(ctx context.Context, userID string) (int64, error)
}
