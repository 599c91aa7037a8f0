package http

import (
	"net/http"
	"strconv"

	"github.com/AkshatMishra0/Derivity-ai/internal/site/service"
	"github.com/AkshatMishra0/Derivity-ai/pkg/httpx"
)

const msgProfileUpdated = "Profile updated successfully"

// ProfileHandler serves the signed-in user's own account.
type ProfileHandler struct {
	AccountService *service.AccountService
}

// HandleGet returns the caller's account.
//
//	@Summary		Get profile
//	@Tags			Profile
//	@Produce		json
//	@Success		200	{object}	Envelope	"status, message, user, profile"
//	@Failure		401	{object}	Envelope	"Authentication required"
//	@Failure		500	{object}	Envelope	"Internal server error"
//	@Router			/api/profile [get].
func (h *ProfileHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, _ := httpx.UserIDFromContext(r.Context())

	view, err := h.AccountService.Profile(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, "Profile loaded", map[string]any{
		"user":    newUserView(view.User, view.Profile),
		"profile": newProfileDetails(view),
	})
}

// HandleUpdate applies a partial update to the caller's account.
//
//	@Summary		Update profile
//	@Description	Only the fields present in the body are changed. Changing the email clears its verified flag; an empty phone removes it.
//	@Tags			Profile
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ProfileUpdateRequest	true	"Fields to change"
//	@Success		200		{object}	Envelope				"status, message, user"
//	@Failure		400		{object}	Envelope				"Validation error"
//	@Failure		401		{object}	Envelope				"Authentication required"
//	@Failure		409		{object}	Envelope				"Email already taken"
//	@Failure		500		{object}	Envelope				"Internal server error"
//	@Router			/api/profile/update [post].
func (h *ProfileHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, _ := httpx.UserIDFromContext(r.Context())

	var req ProfileUpdateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	view, err := h.AccountService.UpdateProfile(r.Context(), userID, service.ProfilePatch{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Newsletter: req.Newsletter,
		Phone:      req.Phone,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, msgProfileUpdated, map[string]any{
		"user": newUserView(view.User, view.Profile),
	})
}

// HandleEvents lists the caller's recent login and signup attempts.
//
//	@Summary		Recent account activity
//	@Tags			Profile
//	@Produce		json
//	@Param			limit	query		int			false	"Maximum number of events (default 20, max 100)"
//	@Success		200		{object}	Envelope	"status, message, events"
//	@Failure		401		{object}	Envelope	"Authentication required"
//	@Failure		500		{object}	Envelope	"Internal server error"
//	@Router			/api/profile/security-events [get].
func (h *ProfileHandler) HandleEvents(w http.ResponseWriter, r *http.Request) {
	userID, _ := httpx.UserIDFromContext(r.Context())
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	events, err := h.AccountService.RecentSecurityEvents(r.Context(), userID, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}

	views := make([]SecurityEventView, 0, len(events))
	for _, e := range events {
		views = append(views, SecurityEventView{
			Success:   e.Success,
			Reason:    e.Reason,
			IP:        e.IP,
			UserAgent: e.UserAgent,
			CreatedAt: e.CreatedAt,
		})
	}

	httpx.WriteSuccess(w, http.StatusOK, "Security events loaded", map[string]any{
		"events": views,
	})
}
