package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/AkshatMishra0/Derivity-ai/internal/site/domain"
	"github.com/AkshatMishra0/Derivity-ai/internal/site/store"
	"github.com/AkshatMishra0/Derivity-ai/internal/site/validate"
	"github.com/AkshatMishra0/Derivity-ai/pkg/idx"
	"github.com/AkshatMishra0/Derivity-ai/pkg/slogx"
)

const MaxContactMessageLength = 5000

type ContactService struct {
	Store store.Store
	Now   func() time.Time
}

// Submit validates and stores a contact form message.
func (s *ContactService) Submit(ctx context.Context, name, email, message string) error {
	name = strings.TrimSpace(name)
	message = strings.TrimSpace(message)

	if err := validate.Name(name); err != nil {
		return err
	}
	if err := validate.Email(email); err != nil {
		return err
	}
	switch n := utf8.RuneCountInString(message); {
	case n == 0:
		return &ValidationError{Field: "message", Message: "Message is required"}
	case n > MaxContactMessageLength:
		return &ValidationError{
			Field:   "message",
			Message: fmt.Sprintf("Message is too long (maximum %d characters)", MaxContactMessageLength),
		}
	}

	now := time.Now().UTC()
	if s.Now != nil {
		now = s.Now().UTC()
	}

	msg := domain.ContactMessage{
		ID:        idx.NewAt(now).String(),
		Name:      name,
		Email:     validate.NormalizeEmail(email),
		Message:   message,
		CreatedAt: now,
	}
	if err := s.Store.ContactMessages().CreateContactMessage(ctx, msg); err != nil {
		slogx.FromContext(ctx).Error("failed to store contact message", slog.Any("error", err))
		return persistence("store contact message", err)
	}
	return nil
}
