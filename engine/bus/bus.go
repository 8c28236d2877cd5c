// Package bus is the publish/subscribe boundary between the camera core and UI chrome outside it.
// The core publishes EnterMonitor and LeftMonitor and consumes FreeCamToggle and LoadingScreenDone.
package bus

import (
	"sync"

	"github.com/google/uuid"
)

// Topic names a signal crossing the UI boundary.
type Topic string

const (
	// EnterMonitor is published when the camera starts moving into the monitor view. No payload.
	EnterMonitor Topic = "enterMonitor"
	// LeftMonitor is published when the camera starts leaving the monitor view. No payload.
	LeftMonitor Topic = "leftMonitor"
	// FreeCamToggle requests free-look on or off. Payload: bool.
	FreeCamToggle Topic = "freeCamToggle"
	// LoadingScreenDone signals that asset loading finished. No payload.
	LoadingScreenDone Topic = "loadingScreenDone"
)

// Event is one published signal.
type Event struct {
	Topic   Topic
	Payload any
}

// Handler receives events for a subscribed topic.
type Handler func(e Event)

// Subscription identifies one registered handler.
type Subscription struct {
	ID    uuid.UUID
	Topic Topic
}

type entry struct {
	id      uuid.UUID
	handler Handler
}

// Bus dispatches events synchronously to the handlers of their topic, in subscription order.
// Handlers run outside the bus lock and may publish or subscribe themselves.
// Thread-safe for concurrent access.
type Bus interface {
	// Subscribe registers a handler for a topic.
	//
	// Parameters:
	//   - topic: the topic to listen on
	//   - h: the handler
	//
	// Returns:
	//   - Subscription: handle for Unsubscribe
	Subscribe(topic Topic, h Handler) Subscription

	// Unsubscribe removes a handler. Unknown subscriptions are ignored.
	//
	// Parameters:
	//   - sub: the subscription to remove
	Unsubscribe(sub Subscription)

	// Publish delivers the event to every handler subscribed to its topic at the time of the call.
	//
	// Parameters:
	//   - e: the event
	Publish(e Event)

	// Count returns the number of handlers subscribed to topic.
	Count(topic Topic) int
}

type bus struct {
	mu       sync.RWMutex
	handlers map[Topic][]entry
}

var _ Bus = &bus{}

// NewBus creates an empty Bus.
//
// Returns:
//   - Bus: the new bus
func NewBus() Bus {
	return &bus{
		handlers: make(map[Topic][]entry),
	}
}

func (b *bus) Subscribe(topic Topic, h Handler) Subscription {
	sub := Subscription{ID: uuid.New(), Topic: topic}
	if h == nil {
		return sub
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[topic] = append(b.handlers[topic], entry{id: sub.ID, handler: h})
	return sub
}

func (b *bus) Unsubscribe(sub Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	list := b.handlers[sub.Topic]
	for i, e := range list {
		if e.id == sub.ID {
			b.handlers[sub.Topic] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

func (b *bus) Publish(e Event) {
	b.mu.RLock()
	list := b.handlers[e.Topic]
	snapshot := make([]Handler, len(list))
	for i, en := range list {
		snapshot[i] = en.handler
	}
	b.mu.RUnlock()

	for _, h := range snapshot {
		h(e)
	}
}

func (b *bus) Count(topic Topic) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[topic])
}
