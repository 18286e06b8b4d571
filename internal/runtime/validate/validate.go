// Package validate holds the pure shape checks for measurement ids, currency
// codes, event names, and parameter bags. The functions here are advisory
// predicates with no side effects; the tracking surface enforces its own
// stricter per-action contracts on top of them.
package validate

import (
	"fmt"
	"regexp"
)

const (
	// MaxEventNameLength is the longest accepted event name.
	MaxEventNameLength = 40

	// MaxParameterCount is the ceiling on keys in a single parameter bag.
	MaxParameterCount = 200
)

var (
	measurementIDPattern = regexp.MustCompile(`^G-[A-Z0-9]{10}$`)
	currencyPattern      = regexp.MustCompile(`^[A-Z]{3}$`)
	eventNamePattern     = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]{0,39}$`)
)

// MeasurementID reports whether id has the G-XXXXXXXXXX shape.
func MeasurementID(id string) bool {
	return measurementIDPattern.MatchString(id)
}

// CurrencyCode reports whether code is a three-letter uppercase currency code.
func CurrencyCode(code string) bool {
	return currencyPattern.MatchString(code)
}

// EventName returns nil when name is a valid event name: non-empty, at most
// MaxEventNameLength characters, starting with a letter and containing only
// letters, digits, and underscores.
func EventName(name string) error {
	if name == "" {
		return fmt.Errorf("event name must not be empty")
	}
	if len(name) > MaxEventNameLength {
		return fmt.Errorf("event name %q exceeds %d characters", name, MaxEventNameLength)
	}
	if !eventNamePattern.MatchString(name) {
		return fmt.Errorf("event name %q must start with a letter and contain only letters, digits, and underscores", name)
	}
	return nil
}

// ParameterCount returns nil when params carries at most MaxParameterCount keys.
func ParameterCount(params map[string]any) error {
	if len(params) > MaxParameterCount {
		return fmt.Errorf("parameter bag has %d keys, limit is %d", len(params), MaxParameterCount)
	}
	return nil
}
