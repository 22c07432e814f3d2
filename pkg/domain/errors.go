package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is wrapped by every registration error so callers can
// match it with errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")

// SupportCodeError is the base error type with context.
type SupportCodeError struct {
	Phase      string // "config", "register", "report"
	Method     string // builder method that rejected the input, e.g. "After"
	File       string
	LineNumber int
	Message    string
	Suggestion string
	Cause      error
}

func (e *SupportCodeError) Error() string {
	s := fmt.Sprintf("[%s]", e.Phase)
	if e.Method != "" {
		s += fmt.Sprintf(" %s", e.Method)
	}
	if e.File != "" {
		s += fmt.Sprintf(" %s", e.File)
	}
	if e.LineNumber > 0 {
		s += fmt.Sprintf(":%d", e.LineNumber)
	}
	s += fmt.Sprintf(": %s", e.Message)
	if e.Cause != nil {
		s += fmt.Sprintf(": %v", e.Cause)
	}
	if e.Suggestion != "" {
		s += fmt.Sprintf(" (hint: %s)", e.Suggestion)
	}
	return s
}

func (e *SupportCodeError) Unwrap() error {
	return e.Cause
}

// NewError creates a new SupportCodeError.
func NewError(phase, file string, line int, message string, cause error) *SupportCodeError {
	return &SupportCodeError{
		Phase:      phase,
		File:       file,
		LineNumber: line,
		Message:    message,
		Cause:      cause,
	}
}

// NewErrorWithSuggestion creates a SupportCodeError carrying a hint for the user.
func NewErrorWithSuggestion(phase, file string, line int, message, suggestion string, cause error) *SupportCodeError {
	e := NewError(phase, file, line, message, cause)
	e.Suggestion = suggestion
	return e
}

// NewInvalidArgument creates a registration error for the named builder
// method at the given call site.
func NewInvalidArgument(method string, loc Location, message string) *SupportCodeError {
	return &SupportCodeError{
		Phase:      "register",
		Method:     method,
		File:       loc.URI,
		LineNumber: loc.Line,
		Message:    message,
		Cause:      ErrInvalidArgument,
	}
}
