package network

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// TransportError wraps network failures, timeouts and non-2xx statuses.
type TransportError struct {
	Operation  string
	StatusCode int
	Err        error

	timeout bool
}

// Failed wraps err returned while performing operation.
func Failed(operation string, err error) *TransportError {
	var netErr net.Error
	timeout := errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout())

	return &TransportError{Operation: operation, Err: err, timeout: timeout}
}

// Status reports an unexpected status code answered to operation.
func Status(operation string, code int) *TransportError {
	return &TransportError{
		Operation:  operation,
		StatusCode: code,
		Err:        errors.New(http.StatusText(code)),
	}
}

func (e *TransportError) Error() string {
	switch {
	case e.timeout:
		return fmt.Sprintf("%s: request timed out: %v", e.Operation, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: unexpected status code %d", e.Operation, e.StatusCode)
	default:
		return fmt.Sprintf("%s: %v", e.Operation, e.Err)
	}
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the request exceeded its deadline.
func (e *TransportError) Timeout() bool {
	return e.timeout
}

// IsTimeout reports whether err is a TransportError caused by a timeout.
func IsTimeout(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr) && transportErr.Timeout()
}
