package domain

import "time"

// Auth event actions recorded in the audit trail.
const (
	EventSignIn              = "sign_in"
	EventSignUp              = "sign_up"
	EventSignOut             = "sign_out"
	EventOAuthCallback       = "oauth_callback"
	EventOnboardingCompleted = "onboarding_completed"
	EventSessionsRevoked     = "sessions_revoked"
	EventRoleDenied          = "role_denied"
)

// AuthEvent is a single entry in the auth audit trail.
type AuthEvent struct {
	UserID    string
	Action    string
	Timestamp time.Time
	IPAddress string
	UserAgent string
	Detail    string
}
