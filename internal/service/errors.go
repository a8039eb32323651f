package service

import (
	"errors"
	"fmt"
	"time"
)

// Kind classifies a failure so the transport layer can pick a status code
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindConflict
	KindUnauthorized
	KindBadRequest
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	case KindBadRequest:
		return "bad_request"
	default:
		return "unknown"
	}
}

// Message keys identify user-facing messages independent of their wording
const (
	MsgUserNotFound        = "user.not_found"
	MsgEmailTaken          = "user.email_taken"
	MsgWrongPassword       = "auth.wrong_password"
	MsgAccountLocked       = "auth.account_locked"
	MsgSessionInvalid      = "auth.session_invalid"
	MsgActivationNotFound  = "user.activation_link_not_found"
	MsgProjectNotFound     = "project.not_found"
	MsgTaskNotFound        = "task.not_found"
	MsgInvalidID           = "request.invalid_id"
	MsgInvalidStatus       = "task.invalid_status"
	MsgInvalidSort         = "request.invalid_sort"
	MsgAccessTokenRequired = "auth.access_token_required"
)

// Error is the typed failure returned by services for expected outcomes.
// Anything else returned by a service is an infrastructure failure.
type Error struct {
	Kind    Kind
	Key     string
	Message string
	// LockedUntil is set on lockout failures
	LockedUntil *time.Time
	Err         error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, key, message string) *Error {
	return &Error{Kind: kind, Key: key, Message: message}
}

func wrapError(kind Kind, key, message string, err error) *Error {
	return &Error{Kind: kind, Key: key, Message: message, Err: err}
}

// AsError extracts a service error from err's chain
func AsError(err error) (*Error, bool) {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr, true
	}
	return nil, false
}

// IsKind reports whether err is a service error of the given kind
func IsKind(err error, kind Kind) bool {
	svcErr, ok := AsError(err)
	return ok && svcErr.Kind == kind
}
