// Package shared holds the domain building blocks common to all aggregates.
package shared

import "time"

// DomainEvent represents an event that has occurred in the domain.
type DomainEvent interface {
	EventName() string
	OccurredAt() time.Time
}

// AggregateRoot is the base type for aggregate roots. Events accumulate on
// the aggregate and are drained by the application layer after each use
// case completes.
type AggregateRoot struct {
	events []DomainEvent
}

// AddEvent adds a domain event to be dispatched.
func (a *AggregateRoot) AddEvent(event DomainEvent) {
	a.events = append(a.events, event)
}

// Events returns and clears pending domain events.
func (a *AggregateRoot) Events() []DomainEvent {
	events := a.events
	a.events = nil
	return events
}
