package ports

import (
	"context"

	"github.com/crewdesk/member-portal/internal/core/domain"
)

// OnboardingRepository stores the one-time profile-completion marker.
// Presence is the signal; rows are never deleted in normal operation.
type OnboardingRepository interface {
	Exists(ctx context.Context, userID string) (bool, error)
	Create(ctx context.Context, info *domain.OnboardingInfo) error
}
