package events

import "sync"

// SubscriberID identifies a subscriber on a Bus.
type SubscriberID uint64

// Subscriber receives events through a buffered channel.
type Subscriber struct {
	id       SubscriberID
	events   chan Event
	done     chan struct{}
	doneOnce sync.Once
}

// NewSubscriber creates a subscriber. bufferSize controls how many events can
// be buffered before the oldest ones are dropped.
func NewSubscriber(id SubscriberID, bufferSize int) *Subscriber {
	if bufferSize < 1 {
		bufferSize = 64
	}
	return &Subscriber{
		id:     id,
		events: make(chan Event, bufferSize),
		done:   make(chan struct{}),
	}
}

// ID returns the subscriber identifier.
func (s *Subscriber) ID() SubscriberID {
	return s.id
}

// Send delivers an event without blocking.
// If the buffer is full, the oldest event is dropped.
func (s *Subscriber) Send(e Event) {
	select {
	case <-s.done:
		return
	default:
	}

	select {
	case s.events <- e:
	default:
		// Buffer full, drop oldest and retry
		select {
		case <-s.events:
		default:
		}
		select {
		case s.events <- e:
		default:
		}
	}
}

// Events returns the channel to receive events from.
func (s *Subscriber) Events() <-chan Event {
	return s.events
}

// Done returns a channel that closes when the subscriber is closed.
func (s *Subscriber) Done() <-chan struct{} {
	return s.done
}

// Close stops delivery. Safe to call multiple times.
func (s *Subscriber) Close() {
	s.doneOnce.Do(func() {
		close(s.done)
	})
}
