package domain

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrSessionNotFound = errors.New("session not found")
var ErrRoleNotHeld = errors.New("role not held by principal")
var ErrDraftNotFound = errors.New("order draft not found")
var ErrMenuItemNotFound = errors.New("menu item not found")
var ErrOrderNotFound = errors.New("order not found")
var ErrUserNotFound = errors.New("user not found")
var ErrPaymentRequired = errors.New("payment has not been confirmed")
var ErrPaymentDeclined = errors.New("card details rejected")
var ErrForbidden = errors.New("access forbidden")

// FieldError is a single validation failure tied to one draft field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Field + " " + e.Message
}

// ValidationError aggregates the field errors found on a draft. It is caught
// before any network call and surfaced inline, never sent to the backend.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, fe := range e.Fields {
		msgs[i] = fe.Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// BackendError carries a backend rejection (4xx/5xx) with the error payload's
// message when the backend provided one. The message is surfaced verbatim.
type BackendError struct {
	StatusCode int
	Message    string
}

func (e *BackendError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend rejected request (status %d)", e.StatusCode)
}
