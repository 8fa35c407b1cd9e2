// Package pipeline defines the error taxonomy shared by the analysis stages.
package pipeline

import (
	"errors"
	"fmt"
)

type Kind string

const (
	// KindInvalidImage marks a bad or empty upload. Not retryable, the
	// caller must resubmit.
	KindInvalidImage Kind = "invalid_image"
	// KindSchemaValidation marks model output that failed schema checks.
	KindSchemaValidation Kind = "schema_validation"
	// KindModelUnavailable marks a network or service failure talking to
	// the model.
	KindModelUnavailable Kind = "model_unavailable"
	// KindIncompleteInput marks a contract violation between stages. Always
	// a bug, never retried.
	KindIncompleteInput Kind = "incomplete_input"
	// KindNotFound marks a session store miss. A valid empty result, not a
	// failure of the pipeline.
	KindNotFound Kind = "not_found"
)

// Error is a tagged stage failure: a kind the caller can branch on plus a
// human-readable message.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Errorf builds a tagged error with a formatted message.
func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap tags an underlying error with a kind and message.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf extracts the kind from an error chain. Untagged errors report an
// empty kind.
func KindOf(err error) Kind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}

// IsKind reports whether any error in the chain carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
