// Package errors provides the error taxonomy used across userenum.
// It extends the standard errors package with sentinels and context wrapping.
package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
)

// Sentinel errors for the failure classes a run can hit.
var (
	// ErrSourceUnreadable indicates the candidate source could not be opened or read.
	// It is the only failure that aborts a run.
	ErrSourceUnreadable = errors.New("candidate source unreadable")

	// ErrInvalidConfig indicates the run configuration was rejected before dispatch.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrTimeout indicates a probe exceeded its per-request deadline.
	ErrTimeout = errors.New("operation timed out")

	// ErrConnectionFailed indicates the endpoint could not be reached.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrUnexpectedStatus indicates the endpoint answered with a status outside the probe policy.
	ErrUnexpectedStatus = errors.New("unexpected status")

	// ErrInvalidResponse indicates a response body could not be interpreted.
	ErrInvalidResponse = errors.New("invalid response")

	// ErrInterrupted indicates the run was canceled before the source was exhausted.
	ErrInterrupted = errors.New("run interrupted")
)

// wrappedError wraps an error with additional context
type wrappedError struct {
	msg   string
	cause error
}

func (e *wrappedError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.cause)
	}
	return e.msg
}

func (e *wrappedError) Unwrap() error {
	return e.cause
}

// Wrap wraps an error with additional context message.
// If err is nil, Wrap returns nil.
//
// Example:
//
//	f, err := os.Open(path)
//	if err != nil {
//	    return errors.Wrap(err, "open wordlist")
//	}
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{msg: msg, cause: err}
}

// Wrapf wraps an error with a formatted context message.
// If err is nil, Wrapf returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &wrappedError{msg: fmt.Sprintf(format, args...), cause: err}
}

// Mark attaches a sentinel to err so that Is(err, sentinel) holds while
// the original cause stays reachable through errors.As.
func Mark(err, sentinel error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target type.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// New creates a new error with the given message.
func New(msg string) error {
	return errors.New(msg)
}

// Errorf formats according to a format specifier and returns the string as a value that satisfies error.
func Errorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// Join returns an error that wraps the given errors.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// ClassifyTransport tags a net/http client failure with ErrTimeout or
// ErrConnectionFailed. Context cancellation is returned untouched.
func ClassifyTransport(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return Mark(err, ErrTimeout)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return Mark(err, ErrTimeout)
	}

	var opErr *net.OpError
	var dnsErr *net.DNSError
	if errors.As(err, &opErr) || errors.As(err, &dnsErr) {
		return Mark(err, ErrConnectionFailed)
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return Mark(err, ErrConnectionFailed)
	}
	return err
}

// IsTimeout reports whether the error is a timeout error
func IsTimeout(err error) bool {
	return Is(err, ErrTimeout)
}

// IsSourceUnreadable reports whether the error aborted a run at the candidate source.
func IsSourceUnreadable(err error) bool {
	return Is(err, ErrSourceUnreadable)
}

// IsInvalidConfig reports whether the error is a configuration error
func IsInvalidConfig(err error) bool {
	return Is(err, ErrInvalidConfig)
}

// IsInterrupted reports whether the run was canceled.
func IsInterrupted(err error) bool {
	return Is(err, ErrInterrupted) || Is(err, context.Canceled)
}
