package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is the lifetime of a browser session cookie.
const DefaultSessionTTL = 14 * 24 * time.Hour

// Claims are the claims carried by a session token. The subject is the user
// id; SID points at the server-side session row, which remains the source of
// truth for revocation.
type Claims struct {
	jwt.RegisteredClaims

	// Session ID
	SID string `json:"sid"`
}

// NewSessionClaims builds claims for a session that expires at expiresAt.
func NewSessionClaims(subject, sid, issuer string, issuedAt, expiresAt time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        NewJTI(),
		},
		SID: sid,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateExpiry ensures the token hasn't expired (exp) and isn't used before
// nbf, allowing leeway for clock skew in both directions.
func (c *Claims) ValidateExpiry(now time.Time, leeway time.Duration) error {
	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}
	return nil
}

// ValidateSession requires the claims a session token cannot work without.
func (c *Claims) ValidateSession() error {
	if c.Subject == "" || c.SID == "" || c.ExpiresAt == nil {
		return ErrInvalidClaim
	}
	return nil
}
