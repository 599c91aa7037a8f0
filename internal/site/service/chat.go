package service

import (
	"context"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/AkshatMishra0/Derivity-ai/internal/site/domain"
	"github.com/AkshatMishra0/Derivity-ai/internal/site/store"
	"github.com/AkshatMishra0/Derivity-ai/pkg/idx"
	"github.com/AkshatMishra0/Derivity-ai/pkg/slogx"
	"github.com/google/uuid"
)

// MaxChatMessageLength caps the characters of a chat message kept in the log.
const MaxChatMessageLength = MaxContactMessageLength

// ChatResponse is the only reply the assistant gives until a model is wired in.
const ChatResponse = "Thank you for your interest in Derivity AI! We're currently in development and will be launching soon. Stay tuned for updates!"

type ChatService struct {
	Store store.Store
	Now   func() time.Time
}

// Reply answers message with ChatResponse and logs the exchange. identity
// is nil for anonymous visitors. Logging is best-effort and keeps at most
// MaxChatMessageLength characters of message.
func (s *ChatService) Reply(ctx context.Context, identity *domain.Identity, message string, meta domain.RequestMeta) string {
	now := time.Now().UTC()
	if s.Now != nil {
		now = s.Now().UTC()
	}

	conv := domain.Conversation{
		ID:        idx.NewAt(now).String(),
		SessionID: uuid.NewString(),
		Message:   truncateRunes(message, MaxChatMessageLength),
		Response:  ChatResponse,
		IP:        meta.IP,
		CreatedAt: now,
	}
	if identity != nil {
		userID := identity.UserID
		conv.UserID = &userID
	}

	if err := s.Store.Conversations().CreateConversation(ctx, conv); err != nil {
		slogx.FromContext(ctx).Warn("failed to store conversation", slog.Any("error", err))
	}
	return ChatResponse
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
