package domain

import "errors"

// Common domain errors
var (
	// Input data errors
	ErrValidation = errors.New("invalid input data")
	ErrFormat     = errors.New("unexpected input format")
	ErrIO         = errors.New("file unreadable")

	// LLM errors
	ErrLLMUnavailable   = errors.New("LLM service unavailable")
	ErrLLMRequestFailed = errors.New("LLM request failed")

	// Optimizer errors
	ErrOptimizationFailed = errors.New("optimization failed")
	ErrNoBestCandidate    = errors.New("optimizer produced no best candidate")
)

// DomainError wraps a domain error with additional context
type DomainError struct {
	Err     error
	Message string
}

func (e *DomainError) Error() string {
	if e.Message != "" {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func NewDomainError(err error, message string) *DomainError {
	return &DomainError{
		Err:     err,
		Message: message,
	}
}

// Validation builds a DomainError wrapping ErrValidation.
func Validation(message string) *DomainError {
	return NewDomainError(ErrValidation, message)
}

// Format builds a DomainError wrapping ErrFormat.
func Format(message string) *DomainError {
	return NewDomainError(ErrFormat, message)
}
