package ports

import "context"

// ProfileInput carries the fields collected by the onboarding form.
type ProfileInput struct {
	DisplayName string
	Company     string
}

// OnboardingService completes the one-time onboarding step for a user.
// Completion is idempotent and may promote configured admin emails.
type OnboardingService interface {
	Complete(ctx context.Context, userID string, profile ProfileInput) error
}
