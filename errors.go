package mathsolve

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned for blank input.
var ErrEmptyInput = errors.New("empty input")

// ParseError reports input that could not be turned into an expression.
// It is the only error that aborts a request.
type ParseError struct {
	// Message is the human-readable reason.
	Message string
	// Original is the request text as the user typed it.
	Original string
	// Input is the text handed to the failing step, after any
	// normalization.
	Input string
	Cause error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s (input %q): %v", e.Message, e.Input, e.Cause)
	}
	return fmt.Sprintf("parse error: %s (input %q)", e.Message, e.Input)
}

func (e *ParseError) Unwrap() error { return e.Cause }

// SimplificationError reports a single failed strategy. It is kept in
// SimplifyStage.Failures and never returned.
type SimplificationError struct {
	Strategy Strategy
	Cause    error
}

func (e *SimplificationError) Error() string {
	return fmt.Sprintf("simplification %s failed: %v", e.Strategy, e.Cause)
}

func (e *SimplificationError) Unwrap() error { return e.Cause }

// SolveError reports a failed solve step. The classifier recovers from
// it by falling back to generic simplification.
type SolveError struct {
	Category Category
	Cause    error
}

func (e *SolveError) Error() string {
	return fmt.Sprintf("solve (%s) failed: %v", e.Category, e.Cause)
}

func (e *SolveError) Unwrap() error { return e.Cause }

// FormatError reports a rendering failure for one output field.
type FormatError struct {
	Field string
	Cause error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("format %s failed: %v", e.Field, e.Cause)
}

func (e *FormatError) Unwrap() error { return e.Cause }

// recovered turns a recovered panic value into an error.
func recovered(r interface{}) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("panic: %v", r)
}
