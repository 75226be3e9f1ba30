package recommend

import (
	"errors"
	"fmt"
)

// ErrEmptyCollection signals that a collection-mode request cannot be
// analyzed because the user owns no books. It is terminal: the orchestrator
// surfaces it instead of fabricating a fallback from nothing.
var ErrEmptyCollection = errors.New("recommend: collection is empty")

// FailureKind classifies a recoverable pipeline failure.
type FailureKind string

const (
	// FailureTransport covers unreachable endpoints, non-2xx statuses and
	// unusable response bodies.
	FailureTransport FailureKind = "transport"
	// FailureParse covers unparseable or schema-invalid model output.
	FailureParse FailureKind = "parse"
)

// RecoverableError is a failure the orchestrator resolves locally by running
// the fallback generator. Anything not carrying this type propagates to the
// caller unchanged.
type RecoverableError struct {
	Kind   FailureKind
	Reason string
	Err    error
}

func (e *RecoverableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("recommend: %s failure: %s: %v", e.Kind, e.Reason, e.Err)
	}
	return fmt.Sprintf("recommend: %s failure: %s", e.Kind, e.Reason)
}

func (e *RecoverableError) Unwrap() error {
	return e.Err
}

func transportFailure(reason string, err error) *RecoverableError {
	return &RecoverableError{Kind: FailureTransport, Reason: reason, Err: err}
}

func parseFailure(reason string, err error) *RecoverableError {
	return &RecoverableError{Kind: FailureParse, Reason: reason, Err: err}
}
