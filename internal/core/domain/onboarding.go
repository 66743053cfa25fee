package domain

import "time"

// OnboardingInfo marks a user as having completed the one-time profile step.
// Its existence is what matters; the transition is one-way.
type OnboardingInfo struct {
	UserID      string    `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Company     string    `json:"company,omitempty"`
	CompletedAt time.Time `json:"completed_at"`
}
