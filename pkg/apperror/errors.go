package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for transport mapping.
type Kind string

const (
	KindAuthentication Kind = "authentication"
	KindAuthorization  Kind = "authorization"
	KindValidation     Kind = "validation"
	KindNotFound       Kind = "not_found"
	KindConflict       Kind = "conflict"
	KindUnavailable    Kind = "unavailable"
	KindInternal       Kind = "internal"
)

// Authentication sub-reasons.
const (
	ReasonExpired   = "expired"
	ReasonRevoked   = "revoked"
	ReasonMalformed = "malformed"
	ReasonUnknown   = "unknown"
)

// Error is a typed application error carrying its HTTP status.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Status  int
	Reason  string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches on Kind so errors.Is(err, apperror.ErrNotFound) works for clones.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && (t.Reason == "" || e.Reason == t.Reason)
}

var (
	ErrUnauthenticated = &Error{Kind: KindAuthentication, Code: "UNAUTHENTICATED", Status: http.StatusUnauthorized, Message: "authentication required", Reason: ReasonUnknown}
	ErrForbidden       = &Error{Kind: KindAuthorization, Code: "FORBIDDEN", Status: http.StatusForbidden, Message: "forbidden"}
	ErrValidation      = &Error{Kind: KindValidation, Code: "VALIDATION_ERROR", Status: http.StatusBadRequest, Message: "validation failed"}
	ErrNotFound        = &Error{Kind: KindNotFound, Code: "NOT_FOUND", Status: http.StatusNotFound, Message: "resource not found"}
	ErrConflict        = &Error{Kind: KindConflict, Code: "CONFLICT", Status: http.StatusConflict, Message: "conflict"}
	ErrUnavailable     = &Error{Kind: KindUnavailable, Code: "DEPENDENCY_UNAVAILABLE", Status: http.StatusServiceUnavailable, Message: "dependency unavailable"}
	ErrInternal        = &Error{Kind: KindInternal, Code: "INTERNAL_ERROR", Status: http.StatusInternalServerError, Message: "internal server error"}
)

// Clone copies a predefined error with a new message.
func Clone(base *Error, message string) *Error {
	clone := *base
	if message != "" {
		clone.Message = message
	}
	return &clone
}

// Wrap attaches a cause to a copy of base.
func Wrap(err error, base *Error, message string) *Error {
	clone := Clone(base, message)
	clone.Err = err
	return clone
}

func Unauthenticated(reason, message string) *Error {
	e := Clone(ErrUnauthenticated, message)
	if reason == "" {
		reason = ReasonUnknown
	}
	e.Reason = reason
	return e
}

func Forbidden(message string) *Error  { return Clone(ErrForbidden, message) }
func Validation(message string) *Error { return Clone(ErrValidation, message) }
func NotFound(message string) *Error   { return Clone(ErrNotFound, message) }
func Conflict(message string) *Error   { return Clone(ErrConflict, message) }

// From normalises any error into an *Error, defaulting to internal.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal, ErrInternal.Message)
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
