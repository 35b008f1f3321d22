// Package joinerr defines the structured error envelope the join engine
// raises for every validation failure: a typed kind, a message, and an
// optional correlation id rather than a bare error string.
package joinerr

import (
	"fmt"

	"github.com/google/uuid"
)

// Kind enumerates the validation failures the engine raises before the
// core runs.
type Kind string

const (
	InvalidInputTable       Kind = "InvalidInputTable"
	UnknownAttribute        Kind = "UnknownAttribute"
	NonTextualJoinAttribute Kind = "NonTextualJoinAttribute"
	InvalidTokenizer        Kind = "InvalidTokenizer"
	InvalidThreshold        Kind = "InvalidThreshold"
	InvalidComparisonOp     Kind = "InvalidComparisonOperator"
	InvalidOutputAttribute  Kind = "InvalidOutputAttribute"
	NonUniqueOrMissingKey   Kind = "NonUniqueOrMissingKey"
)

// Error is the envelope carried by every core-rejecting validation
// failure. CorrelationID ties a failure back to the Join call that
// produced it, matching the run-id attached to that call's log lines
// (see internal/obslog).
type Error struct {
	Kind          Kind
	Message       string
	CorrelationID string
	Context       map[string]any
}

func (e *Error) Error() string {
	if e.CorrelationID != "" {
		return fmt.Sprintf("simjoin: %s: %s (correlation_id=%s)", e.Kind, e.Message, e.CorrelationID)
	}
	return fmt.Sprintf("simjoin: %s: %s", e.Kind, e.Message)
}

// New creates an envelope for kind with a formatted message.
func New(kind Kind, correlationID string, format string, args ...any) *Error {
	return &Error{
		Kind:          kind,
		Message:       fmt.Sprintf(format, args...),
		CorrelationID: correlationID,
	}
}

// WithContext attaches diagnostic key/value pairs and returns the same
// envelope for chaining.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// NewCorrelationID mints a fresh correlation id for one Join call.
func NewCorrelationID() string {
	return uuid.NewString()
}
