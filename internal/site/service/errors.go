package service

import (
	"errors"
	"strings"

	"github.com/AkshatMishra0/Derivity-ai/internal/site/validate"
)

// ValidationError is a user-correctable input problem. Its Message is shown verbatim.
type ValidationError = validate.Error

// Reason is the internal code of an authentication rejection.
type Reason string

const (
	ReasonMissingCredentials Reason = "missing_credentials"
	ReasonInvalidEmailFormat Reason = "invalid_email_format"
	ReasonAccountNotFound    Reason = "account_not_found"
	ReasonAccountLocked      Reason = "account_locked"
	ReasonInvalidPassword    Reason = "invalid_password"
)

// EventText is the reason as written to the security event log.
func (r Reason) EventText() string {
	return strings.ReplaceAll(string(r), "_", " ")
}

const (
	msgInvalidCredentials = "Invalid email or password"
	msgAccountLocked      = "Account temporarily locked due to too many failed login attempts. Please try again later."

	// PersistenceMessage is shown for every store failure.
	PersistenceMessage = "Something went wrong. Please try again later."
)

// RejectedError is an expected authentication failure. Reason never leaves
// the server; callers show Message instead.
type RejectedError struct {
	Reason Reason
}

func (e *RejectedError) Error() string {
	return "authentication rejected: " + string(e.Reason)
}

// Message returns the user-facing text. Unknown accounts and wrong passwords
// share one message so the response does not reveal which emails exist.
func (e *RejectedError) Message() string {
	switch e.Reason {
	case ReasonMissingCredentials:
		return "Email and password are required"
	case ReasonInvalidEmailFormat:
		return "Please enter a valid email address"
	case ReasonAccountLocked:
		return msgAccountLocked
	default:
		return msgInvalidCredentials
	}
}

func reject(r Reason) *RejectedError {
	return &RejectedError{Reason: r}
}

// ConflictError reports a unique field that is already held by another account.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return e.Field + " already exists"
}

func (e *ConflictError) Message() string {
	if e.Field == "handle" {
		return "That username is already taken. Please try again."
	}
	return "An account with this email already exists"
}

var (
	ErrEmailTaken  = &ConflictError{Field: "email"}
	ErrHandleTaken = &ConflictError{Field: "handle"}
)

// PersistenceError wraps a store failure. The wrapped error is logged, never shown.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	var pe *PersistenceError
	if errors.As(err, &pe) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}

var (
	// ErrProfileMissing marks a User without its Profile. It is a data
	// integrity fault: it is logged and surfaced as a persistence failure.
	ErrProfileMissing = errors.New("service: user has no profile")

	// ErrUnknownUser is returned when a session refers to a user that no longer exists.
	ErrUnknownUser = errors.New("service: unknown user")
)
