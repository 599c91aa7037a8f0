package http

import (
	"log/slog"
	"net/http"

	"github.com/AkshatMishra0/Derivity-ai/internal/site/service"
	"github.com/AkshatMishra0/Derivity-ai/pkg/httpx"
	"github.com/AkshatMishra0/Derivity-ai/pkg/slogx"
)

const (
	msgLoginSuccess  = "Login successful!"
	msgSignupSuccess = "Account created successfully! Welcome to Derivity AI."
	msgLogoutSuccess = "Logged out successfully"
)

// AuthHandler serves login, signup, logout and the session status probe.
type AuthHandler struct {
	AuthService    *service.AuthService
	AccountService *service.AccountService
	SessionService *service.SessionService
	Cookie         CookieConfig
}

// HandleLogin signs a user in.
//
//	@Summary		Log in
//	@Description	Checks an email and password and opens a session. The session token is returned in an HttpOnly cookie.
//	@Description	Five consecutive wrong passwords lock the account for 30 minutes.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LoginRequest	true	"Credentials"
//	@Success		200		{object}	Envelope		"status, message, user"
//	@Failure		400		{object}	Envelope		"Missing credentials or malformed email"
//	@Failure		401		{object}	Envelope		"Invalid email or password"
//	@Failure		423		{object}	Envelope		"Account locked"
//	@Failure		429		{object}	Envelope		"Too many requests"
//	@Failure		500		{object}	Envelope		"Internal server error"
//	@Router			/api/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.AuthService.Authenticate(r.Context(), req.Email, req.Password, requestMeta(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.Cookie.set(w, res.Token, res.Session.ExpiresAt)
	httpx.WriteSuccess(w, http.StatusOK, msgLoginSuccess, map[string]any{
		"user": newUserView(res.User, res.Profile),
	})
}

// HandleSignup creates an account and signs the new user in.
//
//	@Summary		Sign up
//	@Description	Creates an account from a full name, email and password. A unique handle is derived from the email.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		SignupRequest	true	"Registration"
//	@Success		200		{object}	Envelope		"status, message, user"
//	@Failure		400		{object}	Envelope		"Validation error"
//	@Failure		409		{object}	Envelope		"Email or username already taken"
//	@Failure		429		{object}	Envelope		"Too many requests"
//	@Failure		500		{object}	Envelope		"Internal server error"
//	@Router			/api/signup [post].
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.AccountService.Register(r.Context(), service.Registration{
		FullName:   req.FullName,
		Email:      req.Email,
		Password:   req.Password,
		Newsletter: req.Newsletter,
	}, requestMeta(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.Cookie.set(w, res.Token, res.Session.ExpiresAt)
	httpx.WriteSuccess(w, http.StatusOK, msgSignupSuccess, map[string]any{
		"user": newUserView(res.User, res.Profile),
	})
}

// HandleLogout ends the current session, if any, and clears the cookie.
//
//	@Summary		Log out
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	Envelope	"status, message"
//	@Router			/api/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if sid, ok := httpx.SessionIDFromContext(r.Context()); ok {
		if err := h.SessionService.Revoke(r.Context(), sid); err != nil {
			slogx.FromContext(r.Context()).Error("failed to revoke session",
				slog.String("session_id", sid), slog.Any("error", err))
		}
	}

	h.Cookie.clear(w)
	httpx.WriteSuccess(w, http.StatusOK, msgLogoutSuccess, nil)
}

// AuthStatusResponse reports whether the request carries a live session.
type AuthStatusResponse struct {
	Status        string    `json:"status" example:"success"`
	Authenticated bool      `json:"authenticated"`
	User          *UserView `json:"user"`
}

// HandleStatus reports the session state of the caller.
//
//	@Summary		Session status
//	@Description	Returns authenticated=false and a null user when there is no live session.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	AuthStatusResponse
//	@Router			/api/auth-status [get].
func (h *AuthHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	resp := AuthStatusResponse{Status: httpx.StatusSuccess}

	if userID, ok := httpx.UserIDFromContext(r.Context()); ok {
		view, err := h.AccountService.Profile(r.Context(), userID)
		if err != nil {
			slogx.FromContext(r.Context()).Warn("failed to load session user",
				slog.String("user_id", userID), slog.Any("error", err))
		} else {
			user := newUserView(view.User, view.Profile)
			resp.Authenticated, resp.User = true, &user
		}
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}
