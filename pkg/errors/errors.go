package errors

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so that transport layers can map it onto a
// response without inspecting error strings.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindBadRequest
	KindConflict
	KindConfiguration
)

// Error carries a Kind alongside a message and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is makes two kinded errors with the same Kind and Message comparable
// via errors.Is, so services can export sentinel values.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

// NotFound builds a KindNotFound error. Missing rows and rows owned by
// another user are reported identically so that existence of other
// users' data is not leaked.
func NotFound(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

// BadRequest builds a KindBadRequest error.
func BadRequest(message string) error {
	return &Error{Kind: KindBadRequest, Message: message}
}

// Conflict builds a KindConflict error (constraint violation surfaced by
// the store).
func Conflict(message string) error {
	return &Error{Kind: KindConflict, Message: message}
}

// Configuration builds a KindConfiguration error (e.g. an unrecognized
// IANA timezone identifier).
func Configuration(message string) error {
	return &Error{Kind: KindConfiguration, Message: message}
}

// Wrap attaches a Kind and message to an underlying cause.
func Wrap(kind Kind, message string, err error) error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the Kind from an error chain; KindUnknown if none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func IsNotFound(err error) bool      { return KindOf(err) == KindNotFound }
func IsBadRequest(err error) bool    { return KindOf(err) == KindBadRequest }
func IsConflict(err error) bool      { return KindOf(err) == KindConflict }
func IsConfiguration(err error) bool { return KindOf(err) == KindConfiguration }
