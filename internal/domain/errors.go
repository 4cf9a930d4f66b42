package domain

import (
	"errors"
	"fmt"
)

// ErrKind is the high-level error category used to map domain errors to
// transport-level codes consistently.
type ErrKind string

const (
	KindValidation     ErrKind = "validation"
	KindAuth           ErrKind = "auth"
	KindConflict       ErrKind = "conflict"
	KindNotFound       ErrKind = "not_found"
	KindInfrastructure ErrKind = "infrastructure"
	KindInternal       ErrKind = "internal"
)

// Error is a structured domain error.
// - Kind: high-level category for transport mapping
// - Code: stable machine code (do not change casually)
// - Message: safe summary for clients (avoid leaking sensitive details)
// - Cause: wrapped internal error for logging/diagnostics
type Error struct {
	Kind    ErrKind
	Code    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Kind, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Kind, e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

func New(kind ErrKind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

func Wrap(kind ErrKind, code, msg string, cause error) *Error {
	return &Error{Kind: kind, Code: code, Message: msg, Cause: cause}
}

func Is(err error, code string) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// ----------------------
// Validation errors
// ----------------------

func ErrInvalidJSON(cause error) *Error {
	return Wrap(KindValidation, "invalid_json", "invalid JSON body", cause)
}

func ErrMissingField(field string) *Error {
	return New(KindValidation, "missing_field", fmt.Sprintf("%q is not allowed to be empty", field))
}

func ErrInvalidEmail() *Error {
	return New(KindValidation, "invalid_email", `"email" must be a valid email`)
}

// ErrPolicyViolation carries the full password requirement set as a single
// fixed message; callers surface it verbatim.
func ErrPolicyViolation(msg string) *Error {
	return New(KindValidation, "weak_password", msg)
}

// ----------------------
// Auth errors
// ----------------------

// ErrAuthFailed is the single generic authentication failure. Login failures
// must use it regardless of whether the email was unknown or the password
// wrong, to avoid user enumeration.
func ErrAuthFailed() *Error {
	return New(KindAuth, "auth_failed", "Auth failed")
}

func ErrTokenInvalid() *Error {
	return New(KindAuth, "token_invalid", "invalid token")
}

func ErrTokenExpired() *Error {
	return New(KindAuth, "token_expired", "token is expired")
}

// ----------------------
// Conflict
// ----------------------

func ErrEmailAlreadyExists() *Error {
	return New(KindConflict, "email_already_registered", "User with such email is already registered")
}

// ----------------------
// Not found
// ----------------------

func ErrUserNotFound() *Error {
	return New(KindNotFound, "user_not_found", "user not found")
}

// ----------------------
// Infrastructure / internal
// ----------------------

func ErrDBUnavailable(cause error) *Error {
	return Wrap(KindInfrastructure, "db_unavailable", "database unavailable", cause)
}

func ErrHashFailed(cause error) *Error {
	return Wrap(KindInternal, "hash_failed", "password hashing failed", cause)
}

func ErrTokenSignFailed(cause error) *Error {
	return Wrap(KindInternal, "token_sign_failed", "token signing failed", cause)
}

func ErrInternal(cause error) *Error {
	return Wrap(KindInternal, "internal_error", "internal error", cause)
}
