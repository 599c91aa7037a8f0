package domain

import "time"

// Session is the server-side record behind a session cookie. Its ID is the
// token's sid claim.
type Session struct {
	ID        string
	UserID    string
	IP        string
	UserAgent string
	CreatedAt time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time
}

// Active reports whether the session is neither revoked nor expired at now.
func (s Session) Active(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}

// RequestMeta is the request origin handed explicitly to every workflow.
type RequestMeta struct {
	IP        string
	UserAgent string
}

// Identity is the acting user of an authenticated request.
type Identity struct {
	UserID    string
	SessionID string
}
