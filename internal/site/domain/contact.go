package domain

import "time"

type ContactMessage struct {
	ID        string
	Name      string
	Email     string
	Message   string
	Responded bool
	CreatedAt time.Time
}

// Conversation is one exchange with the placeholder chat endpoint.
type Conversation struct {
	ID        string
	SessionID string // UUID
	UserID    *string
	Message   string
	Response  string
	IP        string
	CreatedAt time.Time
}
