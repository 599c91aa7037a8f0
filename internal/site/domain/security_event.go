package domain

import "time"

// SecurityEvent is an immutable record of one login or signup attempt.
// UserID is nil when the submitted email matched no account.
type SecurityEvent struct {
	ID        string
	UserID    *string
	Email     string
	IP        string
	UserAgent string
	Success   bool
	Reason    string // empty on success
	CreatedAt time.Time
}
