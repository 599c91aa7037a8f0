package http

import (
	"time"

	"github.com/AkshatMishra0/Derivity-ai/internal/site/domain"
	"github.com/AkshatMishra0/Derivity-ai/internal/site/service"
)

// Envelope is the body of every response.
type Envelope struct {
	Status  string `json:"status" example:"error"`
	Message string `json:"message" example:"Invalid data format"`
}

// UserView is the public view of an account.
type UserView struct {
	ID         string `json:"id" example:"01JTB1T7Q8X3Y2K5M9N0P4R6S8"`
	Handle     string `json:"handle" example:"jane"`
	Email      string `json:"email" example:"jane@example.com"`
	FirstName  string `json:"firstName" example:"Jane"`
	LastName   string `json:"lastName" example:"Doe"`
	FullName   string `json:"fullName" example:"Jane Doe"`
	Newsletter bool   `json:"newsletter"`
}

func newUserView(u domain.User, p domain.Profile) UserView {
	return UserView{
		ID:         u.ID,
		Handle:     u.Handle,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		FullName:   u.FullName(),
		Newsletter: p.Newsletter,
	}
}

// ProfileDetails are the profile fields shown to the account owner.
type ProfileDetails struct {
	EmailVerified bool       `json:"emailVerified"`
	Newsletter    bool       `json:"newsletter"`
	Phone         string     `json:"phone"`
	LastLoginIP   string     `json:"lastLoginIp"`
	LastLoginAt   *time.Time `json:"lastLoginAt"`
	CreatedAt     time.Time  `json:"createdAt"`
}

func newProfileDetails(v service.ProfileView) ProfileDetails {
	return ProfileDetails{
		EmailVerified: v.Profile.EmailVerified,
		Newsletter:    v.Profile.Newsletter,
		Phone:         v.Profile.Phone,
		LastLoginIP:   v.Profile.LastLoginIP,
		LastLoginAt:   v.User.LastLoginAt,
		CreatedAt:     v.User.CreatedAt,
	}
}

// SecurityEventView is one entry of the account activity log.
type SecurityEventView struct {
	Success   bool      `json:"success"`
	Reason    string    `json:"reason"`
	IP        string    `json:"ip"`
	UserAgent string    `json:"userAgent"`
	CreatedAt time.Time `json:"createdAt"`
}

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	Email    string `json:"email" example:"jane@example.com"`
	Password string `json:"password" example:"Abcdefg1"`
}

// SignupRequest is the body of POST /api/signup.
type SignupRequest struct {
	FullName   string `json:"fullName" example:"Jane Doe"`
	Email      string `json:"email" example:"jane@example.com"`
	Password   string `json:"password" example:"Abcdefg1"`
	Newsletter bool   `json:"newsletter"`
}

// ProfileUpdateRequest is a partial patch; omitted fields are left unchanged.
type ProfileUpdateRequest struct {
	FirstName  *string `json:"firstName,omitempty"`
	LastName   *string `json:"lastName,omitempty"`
	Email      *string `json:"email,omitempty"`
	Newsletter *bool   `json:"newsletter,omitempty"`
	Phone      *string `json:"phone,omitempty"`
}

// ContactRequest is the body of POST /api/contact.
type ContactRequest struct {
	Name    string `json:"name" example:"Jane Doe"`
	Email   string `json:"email" example:"jane@example.com"`
	Message string `json:"message" example:"Hello!"`
}

// ChatRequest is the body of POST /api/ai-chat.
type ChatRequest struct {
	Message string `json:"message" example:"What can you do?"`
}

// HealthResponse is returned by the health probes.
type HealthResponse struct {
	Status  string        `json:"status" example:"ok"`
	Uptime  string        `json:"uptime" example:"1h2m3s"`
	Version string        `json:"version" example:"dev"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the readiness of each dependency.
type HealthChecks struct {
	Database string `json:"database" example:"ok"`
	Signer   string `json:"signer" example:"ok"`
}
