package domain

import "time"

const (
	RoleAdmin  = "admin"
	RoleMember = "user"
)

// User models a portal account. The gate only ever reads users; all writes
// happen through the identity backend.
type User struct {
	ID            string     `json:"id"`
	Email         string     `json:"email"`
	Name          string     `json:"name,omitempty"`
	PasswordHash  string     `json:"-"`
	Role          string     `json:"role,omitempty"`
	Approved      bool       `json:"approved"`
	Banned        bool       `json:"banned,omitempty"`
	BanReason     string     `json:"ban_reason,omitempty"`
	BanExpires    *time.Time `json:"ban_expires,omitempty"`
	EmailVerified bool       `json:"email_verified"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// HasAccess reports whether the user has cleared admin approval. Approval can
// be disabled instance-wide, admins always pass, everyone else needs the
// explicit flag set by an admin.
func (u *User) HasAccess(requireApproval bool) bool {
	if !requireApproval {
		return true
	}
	if u.Role == RoleAdmin {
		return true
	}
	return u.Approved
}

// IsBanned reports whether a ban is currently in force. Expired bans count as
// lifted even before the row is updated.
func (u *User) IsBanned(now time.Time) bool {
	if !u.Banned {
		return false
	}
	if u.BanExpires != nil && now.After(*u.BanExpires) {
		return false
	}
	return true
}
