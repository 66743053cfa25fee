package domain

// SessionData is the server-held web-session payload keyed by the browser
// cookie. A closed struct on purpose: unknown or garbage keys from a tampered
// record can never flow through the gate.
type SessionData struct {
	// SessionToken references the durable identity-backend session.
	SessionToken string `json:"session_token,omitempty"`
	Locale       string `json:"locale,omitempty"`
	Theme        string `json:"theme,omitempty"`
	// PendingRedirect carries the intended destination through an external
	// identity-provider round trip. Write-once-read-once.
	PendingRedirect string `json:"pending_redirect,omitempty"`
	// OAuthState is the CSRF token for an in-flight provider round trip.
	OAuthState string `json:"oauth_state,omitempty"`
}

// IsZero reports whether the payload carries nothing worth persisting.
func (d SessionData) IsZero() bool {
	return d == SessionData{}
}
