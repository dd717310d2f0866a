package helpers

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"stock-dashboard/src/logger"
)

func TestErrorWrapping(t *testing.T) {
	inner := errors.New("connection refused")
	err := &NetworkError{DashboardError{Message: "fetch failed", Cause: inner}}

	if !errors.Is(err, inner) {
		t.Error("wrapped cause not reachable through errors.Is")
	}

	var netErr *NetworkError
	if !errors.As(error(err), &netErr) {
		t.Error("errors.As failed to match NetworkError")
	}

	want := "fetch failed: connection refused"
	if err.Error() != want {
		t.Errorf("message = %q, want %q", err.Error(), want)
	}
}

func TestValidationErrorFormat(t *testing.T) {
	err := NewValidationError("window %d outside [%d, %d]", 1, 5, 50)
	if err.Error() != "window 1 outside [5, 50]" {
		t.Errorf("message = %q", err.Error())
	}
}

// -----------------------------------------------------------------------------

func TestRetryWithBackoffSucceedsAfterFailures(t *testing.T) {
	log := logger.NewLogger("ERROR", "test")

	attempts := 0
	res, err := RetryWithBackoff(log, "fetch", 3, time.Millisecond, func() (interface{}, error) {
		attempts++
		if attempts < 3 {
			return nil, errors.New("transient")
		}
		return "ok", nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res != "ok" || attempts != 3 {
		t.Errorf("res=%v attempts=%d, want ok after 3", res, attempts)
	}
}

func TestRetryWithBackoffExhausted(t *testing.T) {
	log := logger.NewLogger("ERROR", "test")

	attempts := 0
	_, err := RetryWithBackoff(log, "fetch", 3, time.Millisecond, func() (interface{}, error) {
		attempts++
		return nil, errors.New("still down")
	})

	if err == nil || attempts != 3 {
		t.Errorf("err=%v attempts=%d, want failure after 3 attempts", err, attempts)
	}
}

func TestRetryWithBackoffTerminalErrors(t *testing.T) {
	log := logger.NewLogger("ERROR", "test")

	for _, sentinel := range []error{ErrUnknownSymbol, ErrNoData} {
		attempts := 0
		_, err := RetryWithBackoff(log, "fetch", 5, time.Millisecond, func() (interface{}, error) {
			attempts++
			return nil, fmt.Errorf("lookup: %w", sentinel)
		})

		if !errors.Is(err, sentinel) {
			t.Errorf("got %v, want %v", err, sentinel)
		}
		if attempts != 1 {
			t.Errorf("%v retried %d times, want terminal after 1", sentinel, attempts)
		}
	}
}
