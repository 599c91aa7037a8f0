package sitesdk

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"
)

// Client talks to the site API and keeps the session cookie between calls.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient returns a client with an empty cookie jar.
func NewClient(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("sitesdk: cookie jar: %w", err)
	}
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
			Jar:     jar,
		},
	}, nil
}

// SessionCookie returns the named cookie the server set for BaseURL, if any.
func (c *Client) SessionCookie(name string) (*http.Cookie, bool) {
	if c.HTTPClient.Jar == nil {
		return nil, false
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, false
	}
	for _, ck := range c.HTTPClient.Jar.Cookies(u) {
		if ck.Name == name {
			return ck, true
		}
	}
	return nil, false
}

type userResponse struct {
	User User `json:"user"`
}

// Login signs in and stores the session cookie.
func (c *Client) Login(ctx context.Context, email, password string) (User, error) {
	var out userResponse
	err := c.do(ctx, http.MethodPost, "/api/login", map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	return out.User, err
}

// Signup creates an account and stores the new session cookie.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (User, error) {
	var out userResponse
	err := c.do(ctx, http.MethodPost, "/api/signup", req, &out)
	return out.User, err
}

// Logout ends the session. It succeeds without a session too.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/logout", nil, nil)
}

// AuthStatus reports whether the client holds a live session.
func (c *Client) AuthStatus(ctx context.Context) (AuthStatus, error) {
	var out AuthStatus
	err := c.do(ctx, http.MethodGet, "/api/auth-status", nil, &out)
	return out, err
}

// Profile returns the signed-in user's account.
func (c *Client) Profile(ctx context.Context) (User, ProfileDetails, error) {
	var out struct {
		User    User           `json:"user"`
		Profile ProfileDetails `json:"profile"`
	}
	err := c.do(ctx, http.MethodGet, "/api/profile", nil, &out)
	return out.User, out.Profile, err
}

// UpdateProfile applies a partial update and returns the updated user.
func (c *Client) UpdateProfile(ctx context.Context, patch ProfileUpdate) (User, error) {
	var out userResponse
	err := c.do(ctx, http.MethodPost, "/api/profile/update", patch, &out)
	return out.User, err
}

// SecurityEvents lists recent login and signup attempts, newest first.
// limit <= 0 uses the server default.
func (c *Client) SecurityEvents(ctx context.Context, limit int) ([]SecurityEvent, error) {
	path := "/api/profile/security-events"
	if limit > 0 {
		path += fmt.Sprintf("?limit=%d", limit)
	}
	var out struct {
		Events []SecurityEvent `json:"events"`
	}
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out.Events, err
}

// Contact submits the contact form and returns the confirmation message.
func (c *Client) Contact(ctx context.Context, req ContactRequest) (string, error) {
	var out envelope
	err := c.do(ctx, http.MethodPost, "/api/contact", req, &out)
	return out.Message, err
}

// Chat sends a message to the assistant and returns its reply.
func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	var out struct {
		Response string `json:"response"`
	}
	err := c.do(ctx, http.MethodPost, "/api/ai-chat", map[string]string{"message": message}, &out)
	return out.Response, err
}

// Liveness calls GET /livez.
func (c *Client) Liveness(ctx context.Context) (HealthResponse, error) {
	var out HealthResponse
	err := c.do(ctx, http.MethodGet, "/livez", nil, &out)
	return out, err
}

// Readiness calls GET /readyz. A degraded service is returned as *APIError
// with status 503.
func (c *Client) Readiness(ctx context.Context) (HealthResponse, error) {
	var out HealthResponse
	err := c.do(ctx, http.MethodGet, "/readyz", nil, &out)
	return out, err
}
