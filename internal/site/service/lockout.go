package service

import (
	"time"

	"github.com/AkshatMishra0/Derivity-ai/internal/site/domain"
)

// LockoutPolicy decides when repeated password failures lock an account.
type LockoutPolicy struct {
	Threshold int
	Window    time.Duration
}

var DefaultLockoutPolicy = LockoutPolicy{Threshold: 5, Window: 30 * time.Minute}

func (p LockoutPolicy) withDefaults() LockoutPolicy {
	if p.Threshold <= 0 {
		p.Threshold = DefaultLockoutPolicy.Threshold
	}
	if p.Window <= 0 {
		p.Window = DefaultLockoutPolicy.Window
	}
	return p
}

// IsLocked reports whether prof rejects every attempt at now.
func (p LockoutPolicy) IsLocked(prof domain.Profile, now time.Time) bool {
	return prof.LockoutUntil != nil && prof.LockoutUntil.After(now)
}

// RecordFailure counts one failed password and starts a lockout window once
// the counter reaches the threshold. The counter survives an expired window,
// so the first failure after it locks the account again. Reports whether the
// account is now locked.
func (p LockoutPolicy) RecordFailure(prof *domain.Profile, now time.Time) bool {
	p = p.withDefaults()
	prof.FailedAttempts++
	if prof.FailedAttempts >= p.Threshold {
		until := now.Add(p.Window)
		prof.LockoutUntil = &until
		return true
	}
	return false
}

// RecordSuccess clears the counter and any lockout.
func (p LockoutPolicy) RecordSuccess(prof *domain.Profile) {
	prof.FailedAttempts = 0
	prof.LockoutUntil = nil
}
