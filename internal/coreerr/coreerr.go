// Package coreerr defines the error taxonomy shared by the encoders,
// selectors, and assembler: a stable code, a human message, and a
// structured details map, per spec.md section 7.
package coreerr

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Sentinel errors. Wrap these with fmt.Errorf("%w: ...", ...) or attach
// them to an *Error via errors.Is-compatible Unwrap.
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrNoSolution        = errors.New("no solution found")
	ErrSizeExceeded      = errors.New("size exceeded")
	ErrEncoding          = errors.New("encoding error")
)

// Selection failure codes, verbatim from spec.md section 6.
const (
	CodeNoUTXOsAvailable = "NO_UTXOS_AVAILABLE"
	CodeInsufficientFund = "INSUFFICIENT_FUNDS"
	CodeNoSolutionFound  = "NO_SOLUTION_FOUND"
	CodeInvalidOptions   = "INVALID_OPTIONS"
	CodeSelectionFailed  = "SELECTION_FAILED"
)

// Error is the structured error every core operation returns on
// failure. It never appears half-filled: Code and Message are always
// set when non-nil.
type Error struct {
	Code    string
	Message string
	Details map[string]any

	// TraceID uniquely identifies this failure occurrence, so a caller
	// can correlate a returned Error with the corresponding log line
	// (see pkg/logging) without re-deriving it from Code+Message.
	TraceID string

	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New builds an *Error, optionally wrapping a sentinel or lower-level
// cause so callers can still errors.Is against it.
func New(code, message string, cause error, details map[string]any) *Error {
	return &Error{Code: code, Message: message, Details: details, TraceID: uuid.New().String(), cause: cause}
}

// WithDetail returns a copy of e with a single detail key set.
func (e *Error) WithDetail(key string, value any) *Error {
	out := *e
	out.Details = make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		out.Details[k] = v
	}
	out.Details[key] = value
	return &out
}
