package http

import (
	"net/http"

	"github.com/AkshatMishra0/Derivity-ai/internal/site/domain"
	"github.com/AkshatMishra0/Derivity-ai/internal/site/service"
	"github.com/AkshatMishra0/Derivity-ai/pkg/httpx"
)

const msgContactReceived = "Thank you for your message! We'll get back to you soon."

type ContactHandler struct {
	ContactService *service.ContactService
}

// ServeHTTP stores a contact form submission.
//
//	@Summary		Contact form
//	@Tags			Site
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ContactRequest	true	"Message"
//	@Success		200		{object}	Envelope
//	@Failure		400		{object}	Envelope	"Validation error"
//	@Failure		429		{object}	Envelope	"Too many requests"
//	@Failure		500		{object}	Envelope	"Internal server error"
//	@Router			/api/contact [post].
func (h *ContactHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.ContactService.Submit(r.Context(), req.Name, req.Email, req.Message); err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, msgContactReceived, nil)
}

type ChatHandler struct {
	ChatService *service.ChatService
}

// ServeHTTP answers the assistant widget with a fixed notice.
//
//	@Summary		Assistant chat
//	@Description	The assistant is not launched yet; every message gets the same informational reply.
//	@Tags			Site
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ChatRequest	true	"Message"
//	@Success		200		{object}	Envelope	"status, message, response"
//	@Failure		400		{object}	Envelope	"Invalid data format"
//	@Failure		429		{object}	Envelope	"Too many requests"
//	@Router			/api/ai-chat [post].
func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	var identity *domain.Identity
	if userID, ok := httpx.UserIDFromContext(r.Context()); ok {
		sid, _ := httpx.SessionIDFromContext(r.Context())
		identity = &domain.Identity{UserID: userID, SessionID: sid}
	}

	reply := h.ChatService.Reply(r.Context(), identity, req.Message, requestMeta(r))
	httpx.WriteSuccess(w, http.StatusOK, reply, map[string]any{
		"response": reply,
	})
}
