package errs

import (
	"errors"
	"fmt"
)

// Kind classifies an operation failure so the HTTP boundary can pick a
// status code without string-matching messages.
type Kind string

const (
	KindInvalidCredential    Kind = "invalid_credential"
	KindAccountDisabled      Kind = "account_disabled"
	KindDuplicateUsername    Kind = "duplicate_username"
	KindWeakCredential       Kind = "weak_credential"
	KindPayloadTooLarge      Kind = "payload_too_large"
	KindUnsupportedMediaType Kind = "unsupported_media_type"
	KindStorageWriteFailed   Kind = "storage_write_failed"
	KindMetadataWriteFailed  Kind = "metadata_write_failed"
	KindNotFound             Kind = "not_found"
	KindInvalidState         Kind = "invalid_state"
	KindUnauthenticated      Kind = "unauthenticated"
	KindForbidden            Kind = "forbidden"
	KindInternal             Kind = "internal"
)

// Error is a failure with a machine kind and a human-readable message.
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

// New creates a typed error with a message.
func New(kind Kind, message string) error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches a kind and message to an underlying cause.
func Wrap(kind Kind, message string, err error) error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind from err, or KindInternal for untyped errors.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool { return KindOf(err) == kind }
