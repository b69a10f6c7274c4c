// Package status provides a fire-and-forget publish channel for
// capability lifecycle events, consumed by an external observer.
// Delivery is at-most-once; publishing never blocks the pipeline.
package status

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Status is a capability lifecycle state.
type Status string

const (
	StatusStarted   Status = "STARTED"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
)

// Event is one capability lifecycle event.
type Event struct {
	ID         string    `json:"id"`
	Capability string    `json:"capability"`
	Status     Status    `json:"status"`
	ClaimRef   string    `json:"claim_ref,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	Detail     string    `json:"detail,omitempty"`
}

// CustomerIdentified is the one-way notice published once the policy
// lookup resolves the customer behind an event.
type CustomerIdentified struct {
	ID        string    `json:"id"`
	ClaimRef  string    `json:"claim_ref"`
	PolicyID  string    `json:"policy_id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Sink accepts pipeline status events. Implementations must be safe for
// concurrent publish from multiple tasks and must never block.
type Sink interface {
	Publish(ev Event)
	PublishCustomerIdentified(notice CustomerIdentified)
}

// BroadcastSink fans events out to subscriber channels. When a
// subscriber's buffer is full the event is dropped for that subscriber;
// there is no backpressure onto the pipeline.
type BroadcastSink struct {
	mu        sync.RWMutex
	subs      []chan Event
	customers []chan CustomerIdentified
	buffer    int
	closed    bool
}

// NewBroadcastSink creates a sink with the given per-subscriber buffer.
func NewBroadcastSink(buffer int) *BroadcastSink {
	if buffer <= 0 {
		buffer = 64
	}
	return &BroadcastSink{buffer: buffer}
}

// Subscribe returns a channel receiving lifecycle events.
func (s *BroadcastSink) Subscribe() <-chan Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan Event, s.buffer)
	s.subs = append(s.subs, ch)
	return ch
}

// SubscribeCustomers returns a channel receiving customer notices.
func (s *BroadcastSink) SubscribeCustomers() <-chan CustomerIdentified {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan CustomerIdentified, s.buffer)
	s.customers = append(s.customers, ch)
	return ch
}

// Publish delivers ev to every subscriber that has buffer room.
func (s *BroadcastSink) Publish(ev Event) {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now().UTC()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return
	}
	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default: // subscriber is behind, drop
		}
	}
}

// PublishCustomerIdentified delivers the notice to customer subscribers.
func (s *BroadcastSink) PublishCustomerIdentified(notice CustomerIdentified) {
	if notice.ID == "" {
		notice.ID = uuid.NewString()
	}
	if notice.Timestamp.IsZero() {
		notice.Timestamp = time.Now().UTC()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return
	}
	for _, ch := range s.customers {
		select {
		case ch <- notice:
		default:
		}
	}
}

// Close closes all subscriber channels. Publishes after Close are
// silently discarded.
func (s *BroadcastSink) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	for _, ch := range s.subs {
		close(ch)
	}
	for _, ch := range s.customers {
		close(ch)
	}
}

// NopSink discards every event.
type NopSink struct{}

// Publish discards ev.
func (NopSink) Publish(Event) {}

// PublishCustomerIdentified discards the notice.
func (NopSink) PublishCustomerIdentified(CustomerIdentified) {}
