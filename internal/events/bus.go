package events

import "sync"

// Bus fans published events out to every subscriber.
// Thread-safe for concurrent access.
type Bus struct {
	mu          sync.RWMutex
	nextID      SubscriberID
	subscribers map[SubscriberID]*Subscriber
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{
		subscribers: make(map[SubscriberID]*Subscriber),
	}
}

// Subscribe registers a new subscriber with the given buffer size.
func (b *Bus) Subscribe(bufferSize int) *Subscriber {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	s := NewSubscriber(b.nextID, bufferSize)
	b.subscribers[s.ID()] = s
	return s
}

// Unsubscribe removes and closes a subscriber.
func (b *Bus) Unsubscribe(id SubscriberID) {
	b.mu.Lock()
	s, ok := b.subscribers[id]
	delete(b.subscribers, id)
	b.mu.Unlock()

	if ok {
		s.Close()
	}
}

// Publish sends e to every subscriber.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, s := range b.subscribers {
		s.Send(e)
	}
}

// Count returns the number of subscribers.
func (b *Bus) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
