package ports

import (
	"context"

	"github.com/crewdesk/member-portal/internal/core/domain"
)

// UserRepository defines the persistence contract for portal accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	SetRole(ctx context.Context, id, role string) error
}
