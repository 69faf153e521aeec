package domain

import "time"

// Session represents a refresh-token session for a user.
// Only the SHA-256 hash of the refresh token is stored.
type Session struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	RefreshTokenHash string    `json:"-"`
	UserAgent        string    `json:"user_agent,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	ExpiresAt        time.Time `json:"expires_at"`
	RevokedAt        time.Time `json:"revoked_at,omitempty"`
}

// IsExpired reports whether the session has passed its expiry.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// IsRevoked reports whether the session has been explicitly revoked.
func (s *Session) IsRevoked() bool {
	return !s.RevokedAt.IsZero()
}

// IsValid reports whether the session can still be used to refresh tokens.
func (s *Session) IsValid() bool {
	return !s.IsExpired() && !s.IsRevoked()
}
