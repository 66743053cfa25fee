package domain

import "time"

// Session is the durable identity-backend session. The browser never sees the
// token directly; the web-session record references it server-side.
type Session struct {
	ID             string    `json:"id"`
	Token          string    `json:"-"`
	UserID         string    `json:"user_id"`
	ExpiresAt      time.Time `json:"expires_at"`
	IPAddress      string    `json:"ip_address,omitempty"`
	UserAgent      string    `json:"user_agent,omitempty"`
	ImpersonatedBy string    `json:"impersonated_by,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// IsExpired reports whether the session has passed its expiry. An expired
// session is equivalent to no session for every downstream decision.
func (s *Session) IsExpired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
