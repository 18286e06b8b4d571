package errors

import (
	"fmt"

	sterrors "errors"
)

var (
	ErrTrackerRequired       = sterrors.New("tagflow: tracker is required")
	ErrConfigRequired        = sterrors.New("tagflow: configuration is required")
	ErrLoggerRequired        = sterrors.New("tagflow: logger is required")
	ErrMeasurementIDRequired = sterrors.New("tagflow: measurement id is required")
	ErrReporterRequired      = sterrors.New("tagflow: reporter is required")
	ErrPublisherRequired     = sterrors.New("tagflow: publisher is required")
	ErrItemsRequired         = sterrors.New("tagflow: at least one item is required")
	ErrValueRequired         = sterrors.New("tagflow: a non-zero value is required")
	ErrTransactionIDRequired = sterrors.New("tagflow: transaction id is required")
	ErrCreativeNameRequired  = sterrors.New("tagflow: creative name is required")
	ErrEventNameRequired     = sterrors.New("tagflow: event name is required")
)

// ConfigError wraps the validation failures that make a configuration
// unusable. It is returned (or panicked, via NewTracker) at construction time
// and is never produced by the tracking methods themselves.
type ConfigError struct {
	Err error
}

func (e ConfigError) Error() string {
	return fmt.Sprintf("tagflow: invalid configuration: %v", e.Err)
}

func (e ConfigError) Unwrap() error { return e.Err }

// NewConfigError wraps err in a ConfigError. Returns nil when err is nil.
func NewConfigError(err error) error {
	if err == nil {
		return nil
	}
	return ConfigError{Err: err}
}

// InvalidArgumentError reports caller misuse of a tracking method: a missing
// or malformed required field. It is returned synchronously, before any
// dispatch attempt.
type InvalidArgumentError struct {
	Field  string
	Reason string
}

func (e InvalidArgumentError) Error() string {
	return fmt.Sprintf("tagflow: invalid argument %q: %s", e.Field, e.Reason)
}

// UnsupportedActionError reports an unrecognized discriminator value for an
// action family (for example an unknown cart action). This is a programmer
// error and is never silently absorbed.
type UnsupportedActionError struct {
	Kind  string
	Value string
}

func (e UnsupportedActionError) Error() string {
	return fmt.Sprintf("tagflow: unsupported %s action %q", e.Kind, e.Value)
}

// InitError carries the underlying cause of a failed backend load. The
// lifecycle state moves to Failed and the error is surfaced to every caller
// joined on the same Init operation.
type InitError struct {
	Stage string
	Err   error
}

func (e InitError) Error() string {
	return fmt.Sprintf("tagflow: initialization failed during %s: %v", e.Stage, e.Err)
}

func (e InitError) Unwrap() error { return e.Err }
