// Package event defines the canonical event record every tracking method
// produces, the category taxonomy, the fixed event-name vocabulary, and the
// e-commerce item model with its normalization rules.
package event

import (
	"time"

	idspkg "github.com/drblury/tagflow/internal/runtime/ids"
)

// Category tags a canonical event with its reporting family.
type Category string

const (
	CategoryEngagement  Category = "engagement"
	CategoryEcommerce   Category = "ecommerce"
	CategoryNavigation  Category = "navigation"
	CategoryInteraction Category = "interaction"
	CategoryConversion  Category = "conversion"
	CategoryError       Category = "error"
	CategoryPerformance Category = "performance"
	CategoryCustom      Category = "custom"
)

// Event is the canonical representation of a trackable action, independent of
// which tracking method produced it. Events are value types: constructed once
// via New, copied by value, and never mutated after construction. An Event is
// discarded after dispatch; the runtime does not retain it.
type Event struct {
	// ID uniquely identifies the event. Stamped with a ULID at build time.
	ID string

	// Name is the event name, from the fixed vocabulary in names.go or a
	// validated free-form custom name.
	Name string

	// Category is the reporting family the event belongs to.
	Category Category

	// Params is the merged parameter bag sent to the reporting channel.
	Params map[string]any

	// Time is the build timestamp.
	Time time.Time
}

// New builds a canonical event from a name, a parameter bag, and a category.
// The bag is copied so later caller mutations cannot reach the event.
// Building never fails and never consults readiness state.
func New(name string, params map[string]any, category Category) Event {
	copied := make(map[string]any, len(params))
	for k, v := range params {
		copied[k] = v
	}
	return Event{
		ID:       idspkg.NewEventID(),
		Name:     name,
		Category: category,
		Params:   copied,
		Time:     time.Now().UTC(),
	}
}

// Clone returns a deep copy of the event with its own parameter bag.
func (e Event) Clone() Event {
	cloned := e
	if e.Params != nil {
		cloned.Params = make(map[string]any, len(e.Params))
		for k, v := range e.Params {
			cloned.Params[k] = v
		}
	}
	return cloned
}

// Param returns the named parameter or nil when absent.
func (e Event) Param(key string) any {
	if e.Params == nil {
		return nil
	}
	return e.Params[key]
}
