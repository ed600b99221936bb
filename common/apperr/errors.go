package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an application error for callers and the HTTP boundary.
type Kind string

const (
	KindValidation    Kind = "validation"
	KindDuplicateName Kind = "duplicate_name"
	KindNotFound      Kind = "not_found"
	KindAccessDenied  Kind = "access_denied"
	KindImport        Kind = "import"
	KindConflict      Kind = "conflict"
	KindStorage       Kind = "storage"
)

// Error is a typed application error carrying a kind, a human-readable
// message and an optional wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error

	// FeatureIndex is the zero-based index of the offending feature for
	// KindImport errors, -1 otherwise.
	FeatureIndex int
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation reports a missing or malformed caller-supplied field.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...), FeatureIndex: -1}
}

// DuplicateName reports a unique-name collision.
func DuplicateName(format string, args ...any) *Error {
	return &Error{Kind: KindDuplicateName, Message: fmt.Sprintf(format, args...), FeatureIndex: -1}
}

// NotFound reports an absent network, map or version.
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...), FeatureIndex: -1}
}

// AccessDenied reports a failed read or write policy check.
func AccessDenied(format string, args ...any) *Error {
	return &Error{Kind: KindAccessDenied, Message: fmt.Sprintf(format, args...), FeatureIndex: -1}
}

// Import reports a malformed document or geometry. index is the position of
// the offending feature in the uploaded feature sequence.
func Import(index int, err error) *Error {
	return &Error{
		Kind:         KindImport,
		Message:      fmt.Sprintf("feature %d: invalid geometry", index),
		Err:          err,
		FeatureIndex: index,
	}
}

// Conflict reports a retryable concurrent-write race.
func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...), FeatureIndex: -1}
}

// Storage wraps an unexpected store failure, non-retryable from the
// service's point of view.
func Storage(err error) *Error {
	return &Error{Kind: KindStorage, Message: "storage failure", Err: err, FeatureIndex: -1}
}

// KindOf returns the kind of err, or KindStorage when err carries no
// application kind. A nil err has no kind.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindStorage
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}
