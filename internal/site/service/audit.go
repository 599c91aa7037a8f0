package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/AkshatMishra0/Derivity-ai/internal/site/domain"
	"github.com/AkshatMishra0/Derivity-ai/internal/site/store"
	"github.com/AkshatMishra0/Derivity-ai/pkg/idx"
	"github.com/AkshatMishra0/Derivity-ai/pkg/slogx"
)

// Attempt describes one login or signup attempt for the security event log.
type Attempt struct {
	UserID  *string
	Email   string
	Meta    domain.RequestMeta
	Success bool
	Reason  string
}

func (a Attempt) event(now time.Time) domain.SecurityEvent {
	reason := a.Reason
	if a.Success {
		reason = ""
	}
	return domain.SecurityEvent{
		ID:        idx.NewAt(now).String(),
		UserID:    a.UserID,
		Email:     a.Email,
		IP:        a.Meta.IP,
		UserAgent: a.Meta.UserAgent,
		Success:   a.Success,
		Reason:    reason,
		CreatedAt: now,
	}
}

// SecurityLog appends attempts to the security event log.
type SecurityLog struct {
	Store store.Store
}

// Record writes the attempt outside any transaction. A write failure is
// logged and swallowed so an audit outage never changes the outcome.
func (l *SecurityLog) Record(ctx context.Context, a Attempt, now time.Time) {
	e := a.event(now)
	if err := l.Store.SecurityEvents().CreateSecurityEvent(ctx, e); err != nil {
		slogx.FromContext(ctx).Error("failed to record security event",
			slog.String("email", a.Email),
			slog.Bool("success", a.Success),
			slog.String("reason", a.Reason),
			slog.Any("error", err),
		)
	}
}

// recordTx writes the attempt as part of tx; the caller decides what a failure means.
func (l *SecurityLog) recordTx(ctx context.Context, tx store.Tx, a Attempt, now time.Time) error {
	return tx.SecurityEvents().CreateSecurityEvent(ctx, a.event(now))
}
