package memory

import (
	"context"
	"sync"

	"tracking/internal/core/domain/model/shipment"
	"tracking/internal/core/ports"
)

var _ ports.EventPublisher = (*EventLog)(nil)

// EventLog records published shipment events instead of sending them anywhere.
type EventLog struct {
	mu     sync.Mutex
	events []shipment.ChangedEvent
}

func NewEventLog() *EventLog {
	return &EventLog{}
}

func (l *EventLog) Publish(_ context.Context, event shipment.ChangedEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, event)
	return nil
}

// Events returns a copy of everything published so far.
func (l *EventLog) Events() []shipment.ChangedEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]shipment.ChangedEvent, len(l.events))
	copy(out, l.events)
	return out
}
