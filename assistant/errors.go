package assistant

import (
	"errors"
	"fmt"
	"net"
)

var (
	// ErrUnavailable means the backend could not be reached.
	ErrUnavailable = errors.New("assistant unavailable")
	// ErrModelUnavailable means the backend does not serve the model.
	ErrModelUnavailable = errors.New("model unavailable")
)

// Replies a Session gives instead of an error.
const (
	ReplyUnavailable      = "Assistant unavailable"
	ReplyModelUnavailable = "Model unavailable"
)

// ErrorKind classifies an assistant failure.
type ErrorKind string

const (
	ErrorUnavailable ErrorKind = "unavailable"
	ErrorModel       ErrorKind = "model"
	ErrorTransport   ErrorKind = "transport"
)

// Error is a classified provider failure.
type Error struct {
	Kind  ErrorKind
	Cause error
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrorUnavailable:
		return fmt.Sprintf("%v: %v", ErrUnavailable, e.Cause)
	case ErrorModel:
		return fmt.Sprintf("%v: %v", ErrModelUnavailable, e.Cause)
	}
	return fmt.Sprintf("assistant error: %v", e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches ErrUnavailable and ErrModelUnavailable by kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrUnavailable:
		return e.Kind == ErrorUnavailable
	case ErrModelUnavailable:
		return e.Kind == ErrorModel
	}
	return false
}

// transportError classifies err as unreachable or generic.
func transportError(err error) error {
	var ae *Error
	if errors.As(err, &ae) {
		return err
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return &Error{Kind: ErrorUnavailable, Cause: err}
	}
	return &Error{Kind: ErrorTransport, Cause: err}
}

// sentinel is the text a Session answers with instead of an error.
func sentinel(err error) string {
	switch {
	case errors.Is(err, ErrUnavailable):
		return ReplyUnavailable
	case errors.Is(err, ErrModelUnavailable):
		return ReplyModelUnavailable
	}
	var ae *Error
	if errors.As(err, &ae) {
		err = ae.Cause
	}
	return fmt.Sprintf("Assistant error: %v", err)
}
