package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidName         = errors.New("invalid name: need at least two CJK ideographs")
	ErrResourceUnavailable = errors.New("resource unavailable")
	ErrComputation         = errors.New("computation error")
	ErrNotFound            = errors.New("not found")
	ErrInvalidConfig       = errors.New("invalid config")
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindInvalidInput        ErrorKind = "invalid_input"
	KindResourceUnavailable ErrorKind = "resource_unavailable"
	KindTimezoneFallback    ErrorKind = "timezone_fallback"
	KindComputation         ErrorKind = "computation"
	KindNotFound            ErrorKind = "not_found"
	KindInvalidConfig       ErrorKind = "invalid_config"
	KindExecution           ErrorKind = "execution"
)

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op   string
	Kind ErrorKind
	Path string // Optional: relevant file path
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind helps callers classify errors without depending on infra packages.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}

// InvalidInput builds an invalid_input OpError with a formatted reason.
func InvalidInput(op string, format string, args ...any) error {
	return &OpError{
		Op:   op,
		Kind: KindInvalidInput,
		Err:  fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidInput),
	}
}

// Severity is what a caller shows the user: fix your input, data is degraded, or try again.
type Severity int

const (
	SeverityNone Severity = iota
	SeverityInput
	SeverityDegraded
	SeverityInternal
)

func (s Severity) String() string {
	switch s {
	case SeverityNone:
		return "none"
	case SeverityInput:
		return "input"
	case SeverityDegraded:
		return "degraded"
	default:
		return "internal"
	}
}

// Classify maps an error onto the three user-visible categories.
func Classify(err error) Severity {
	if err == nil {
		return SeverityNone
	}
	switch {
	case errors.Is(err, ErrInvalidName), errors.Is(err, ErrInvalidInput), IsKind(err, KindInvalidInput):
		return SeverityInput
	case errors.Is(err, ErrResourceUnavailable), IsKind(err, KindResourceUnavailable), IsKind(err, KindTimezoneFallback):
		return SeverityDegraded
	default:
		return SeverityInternal
	}
}
