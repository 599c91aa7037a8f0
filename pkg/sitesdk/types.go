package sitesdk

import "time"

// User is the public view of an account.
type User struct {
	ID         string `json:"id"`
	Handle     string `json:"handle"`
	Email      string `json:"email"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	FullName   string `json:"fullName"`
	Newsletter bool   `json:"newsletter"`
}

// ProfileDetails are the account fields only the owner sees.
type ProfileDetails struct {
	EmailVerified bool       `json:"emailVerified"`
	Newsletter    bool       `json:"newsletter"`
	Phone         string     `json:"phone"`
	LastLoginIP   string     `json:"lastLoginIp"`
	LastLoginAt   *time.Time `json:"lastLoginAt"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// SecurityEvent is one login or signup attempt on the account.
type SecurityEvent struct {
	Success   bool      `json:"success"`
	Reason    string    `json:"reason"`
	IP        string    `json:"ip"`
	UserAgent string    `json:"userAgent"`
	CreatedAt time.Time `json:"createdAt"`
}

type SignupRequest struct {
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Newsletter bool   `json:"newsletter"`
}

// ProfileUpdate is a partial update; nil fields are left unchanged.
type ProfileUpdate struct {
	FirstName  *string `json:"firstName,omitempty"`
	LastName   *string `json:"lastName,omitempty"`
	Email      *string `json:"email,omitempty"`
	Newsletter *bool   `json:"newsletter,omitempty"`
	Phone      *string `json:"phone,omitempty"`
}

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type AuthStatus struct {
	Authenticated bool  `json:"authenticated"`
	User          *User `json:"user"`
}

type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}

// envelope is the common part of every API response.
type envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
