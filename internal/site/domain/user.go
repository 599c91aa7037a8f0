package domain

import (
	"strings"
	"time"
)

// User is the account identity. Email is stored case-folded.
type User struct {
	ID           string
	Handle       string
	Email        string
	PasswordHash string // argon2id PHC string
	FirstName    string
	LastName     string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastLoginAt  *time.Time
}

// FullName joins the name parts, skipping an empty last name.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Profile is the one-to-one extension of a User carrying verification,
// preferences and the lockout counters.
type Profile struct {
	ID             string
	UserID         string
	EmailVerified  bool
	Newsletter     bool
	Phone          string // empty when unset
	LastLoginIP    string
	FailedAttempts int
	LockoutUntil   *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
