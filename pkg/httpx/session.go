package httpx

import (
	"context"
	"net/http"

	"github.com/AkshatMishra0/Derivity-ai/pkg/slogx"
)

// SessionResolver maps a session token to the user and session it belongs to.
// ok is false when the token is unknown, expired or revoked.
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (userID, sessionID string, ok bool, err error)
}

// SessionMiddleware reads the session cookie and, when it resolves, stores the
// user and session ids in the request context. Requests without a valid
// session pass through unchanged; use RequireSession to enforce one.
func SessionMiddleware(cookieName string, resolver SessionResolver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			userID, sessionID, ok, err := resolver.ResolveSession(r.Context(), cookie.Value)
			if err != nil {
				slogx.FromContext(r.Context()).Error("failed to resolve session", "error", err)
				next.ServeHTTP(w, r)
				return
			}
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			ctx := WithSession(r.Context(), userID, sessionID)
			ctx = slogx.WithContext(ctx, slogx.FromContext(ctx).With("user_id", userID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSession rejects requests that carry no resolved session with 401.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserIDFromContext(r.Context()); !ok {
			WriteError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
