package errors

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"testing"

	"userenum/internal/testutil"
)

func TestWrap(t *testing.T) {
	t.Run("wraps error with context", func(t *testing.T) {
		baseErr := New("base error")
		wrapped := Wrap(baseErr, "additional context")

		testutil.AssertTrue(t, Is(wrapped, baseErr), "should unwrap to base error")
		testutil.AssertEqual(t, wrapped.Error(), "additional context: base error", "message should include context")
	})

	t.Run("returns nil when wrapping nil", func(t *testing.T) {
		testutil.AssertTrue(t, Wrap(nil, "context") == nil, "wrapping nil should return nil")
		testutil.AssertTrue(t, Wrapf(nil, "context %d", 1) == nil, "wrapping nil should return nil")
	})

	t.Run("multiple wraps preserve chain", func(t *testing.T) {
		wrapped := Wrapf(Wrap(ErrSourceUnreadable, "layer 1"), "layer %d", 2)

		testutil.AssertTrue(t, IsSourceUnreadable(wrapped), "should unwrap to sentinel")
		testutil.AssertEqual(t, wrapped.Error(), "layer 2: layer 1: candidate source unreadable", "should show full chain")
	})
}

func TestMark(t *testing.T) {
	cause := &net.DNSError{Err: "no such host", Name: "gitlab.invalid"}
	marked := Mark(cause, ErrSourceUnreadable)

	testutil.AssertTrue(t, Is(marked, ErrSourceUnreadable), "sentinel should match")

	var dnsErr *net.DNSError
	testutil.AssertTrue(t, As(marked, &dnsErr), "cause should stay reachable")
	testutil.AssertTrue(t, Mark(nil, ErrTimeout) == nil, "marking nil should return nil")
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestClassifyTransport(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		timeout bool
		conn    bool
	}{
		{
			name:    "deadline exceeded",
			err:     fmt.Errorf("get: %w", context.DeadlineExceeded),
			timeout: true,
		},
		{
			name:    "client timeout url error",
			err:     &url.Error{Op: "Get", URL: "http://x", Err: timeoutErr{}},
			timeout: true,
		},
		{
			name: "connection refused",
			err:  &url.Error{Op: "Get", URL: "http://x", Err: &net.OpError{Op: "dial", Err: New("connection refused")}},
			conn: true,
		},
		{
			name: "dns failure",
			err:  &net.DNSError{Err: "no such host", Name: "x"},
			conn: true,
		},
		{
			name: "canceled stays untouched",
			err:  context.Canceled,
		},
		{
			name: "unknown error stays untouched",
			err:  New("weird"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyTransport(tt.err)
			testutil.AssertEqual(t, IsTimeout(got), tt.timeout, "timeout classification")
			testutil.AssertEqual(t, Is(got, ErrConnectionFailed), tt.conn, "connection classification")
			testutil.AssertTrue(t, Is(got, tt.err), "original error should stay in the chain")
		})
	}

	testutil.AssertTrue(t, ClassifyTransport(nil) == nil, "nil in, nil out")
}

func TestIsInterrupted(t *testing.T) {
	testutil.AssertTrue(t, IsInterrupted(Mark(context.Canceled, ErrInterrupted)), "marked cancel")
	testutil.AssertTrue(t, IsInterrupted(Wrap(context.Canceled, "dispatch")), "plain cancel")
	testutil.AssertFalse(t, IsInterrupted(ErrSourceUnreadable), "source failure is not an interruption")
}

func TestIsInvalidConfig(t *testing.T) {
	err := Wrapf(ErrInvalidConfig, "--threads must be positive")
	testutil.AssertTrue(t, IsInvalidConfig(err), "should match sentinel")
	testutil.AssertFalse(t, IsInvalidConfig(ErrTimeout), "should not match other sentinels")
}
