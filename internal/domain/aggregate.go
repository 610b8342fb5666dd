package domain

import "go-promoter/internal/domain/event"

// AggregateRoot is the interface for domain aggregates that can raise events.
type AggregateRoot interface {
	// Events returns all uncommitted domain events.
	Events() []event.Event
	// ClearEvents clears all domain events after dispatch.
	ClearEvents()
}

// eventRecorder holds the uncommitted events of an aggregate.
type eventRecorder struct {
	events []event.Event
}

func (r *eventRecorder) addEvent(e event.Event) {
	r.events = append(r.events, e)
}

// Events returns all uncommitted domain events.
func (r *eventRecorder) Events() []event.Event {
	return r.events
}

// ClearEvents clears all domain events after they have been stored.
func (r *eventRecorder) ClearEvents() {
	r.events = nil
}
