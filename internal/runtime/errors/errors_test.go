package errors

import (
	"errors"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{"ErrTrackerRequired", ErrTrackerRequired, "tagflow: tracker is required"},
		{"ErrConfigRequired", ErrConfigRequired, "tagflow: configuration is required"},
		{"ErrLoggerRequired", ErrLoggerRequired, "tagflow: logger is required"},
		{"ErrMeasurementIDRequired", ErrMeasurementIDRequired, "tagflow: measurement id is required"},
		{"ErrReporterRequired", ErrReporterRequired, "tagflow: reporter is required"},
		{"ErrItemsRequired", ErrItemsRequired, "tagflow: at least one item is required"},
		{"ErrValueRequired", ErrValueRequired, "tagflow: a non-zero value is required"},
		{"ErrTransactionIDRequired", ErrTransactionIDRequired, "tagflow: transaction id is required"},
		{"ErrCreativeNameRequired", ErrCreativeNameRequired, "tagflow: creative name is required"},
		{"ErrEventNameRequired", ErrEventNameRequired, "tagflow: event name is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestConfigError(t *testing.T) {
	inner := errors.New("invalid measurement id")
	err := ConfigError{Err: inner}

	want := "tagflow: invalid configuration: invalid measurement id"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	if unwrapped := err.Unwrap(); unwrapped != inner {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, inner)
	}
}

func TestNewConfigError(t *testing.T) {
	t.Run("nil error returns nil", func(t *testing.T) {
		if err := NewConfigError(nil); err != nil {
			t.Errorf("NewConfigError(nil) = %v, want nil", err)
		}
	})

	t.Run("wraps error correctly", func(t *testing.T) {
		inner := errors.New("bad config")
		err := NewConfigError(inner)

		var cfgErr ConfigError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("expected ConfigError, got %T", err)
		}
		if cfgErr.Err != inner {
			t.Errorf("wrapped error = %v, want %v", cfgErr.Err, inner)
		}
	})

	t.Run("errors.Is works with wrapped error", func(t *testing.T) {
		inner := errors.New("specific error")
		err := NewConfigError(inner)

		if !errors.Is(err, inner) {
			t.Error("errors.Is should match wrapped error")
		}
	})
}

func TestInvalidArgumentError(t *testing.T) {
	err := InvalidArgumentError{Field: "items", Reason: "must not be empty"}
	want := `tagflow: invalid argument "items": must not be empty`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestUnsupportedActionError(t *testing.T) {
	err := UnsupportedActionError{Kind: "cart", Value: "destroy"}
	want := `tagflow: unsupported cart action "destroy"`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestInitError(t *testing.T) {
	inner := errors.New("connection refused")
	err := InitError{Stage: "sink build", Err: inner}

	want := "tagflow: initialization failed during sink build: connection refused"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, inner) {
		t.Error("errors.Is should match the wrapped cause")
	}
}
