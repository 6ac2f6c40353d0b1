package gateway

import (
	"errors"
	"fmt"
)

// Error is an upstream fault. Status is zero when the request never got an
// answer (transport failure, open breaker, caller cancellation).
type Error struct {
	Status  int
	Message string
	Err     error

	// abandoned marks a call whose own context ended first.
	abandoned bool
}

func (e *Error) Error() string {
	switch {
	case e.Status > 0 && e.Message != "":
		return fmt.Sprintf("gateway: upstream %d: %s", e.Status, e.Message)
	case e.Status > 0:
		return fmt.Sprintf("gateway: upstream status %d", e.Status)
	case e.Err != nil:
		return "gateway: " + e.Err.Error()
	default:
		return "gateway: upstream unavailable"
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Message returns the server-provided message carried by err, or fallback
// when there is none.
func Message(err error, fallback string) string {
	var gerr *Error
	if errors.As(err, &gerr) && gerr.Message != "" {
		return gerr.Message
	}
	return fallback
}

// Status returns the upstream HTTP status carried by err, or zero.
func Status(err error) int {
	var gerr *Error
	if errors.As(err, &gerr) {
		return gerr.Status
	}
	return 0
}
