// Package bus provides the in-process message channel between the callback
// receiver and authorization window sessions. It stands in for
// window.postMessage: publishers never learn who is listening, and listeners
// only receive the message types they subscribed to.
package bus

import (
	"sync"

	"github.com/google/uuid"

	"github.com/pulseboard/pulseboard-cli/internal/core/domain"
	"github.com/pulseboard/pulseboard-cli/internal/core/ports/driven"
)

// Ensure MemoryBus implements the interface.
var _ driven.MessageBus = (*MemoryBus)(nil)

// subscriberBuffer sizes each listener channel. A session consumes promptly;
// the buffer only absorbs a burst between select iterations.
const subscriberBuffer = 8

type subscriber struct {
	types map[string]struct{}
	ch    chan domain.AuthMessage
}

// MemoryBus is the in-memory MessageBus implementation.
type MemoryBus struct {
	mu   sync.RWMutex
	subs map[string]*subscriber
}

// New creates an empty bus.
func New() *MemoryBus {
	return &MemoryBus{
		subs: make(map[string]*subscriber),
	}
}

// Subscribe registers a listener for the given message types.
func (b *MemoryBus) Subscribe(types ...string) driven.Subscription {
	sub := &subscriber{
		types: make(map[string]struct{}, len(types)),
		ch:    make(chan domain.AuthMessage, subscriberBuffer),
	}
	for _, t := range types {
		sub.types[t] = struct{}{}
	}

	token := uuid.New().String()
	b.mu.Lock()
	b.subs[token] = sub
	b.mu.Unlock()

	return driven.Subscription{Token: token, C: sub.ch}
}

// Unsubscribe removes a listener. The channel is left open so a receiver
// blocked on it is not woken with zero values; it becomes garbage once the
// session drops its reference.
func (b *MemoryBus) Unsubscribe(token string) {
	b.mu.Lock()
	delete(b.subs, token)
	b.mu.Unlock()
}

// Publish delivers the message to every listener subscribed to its type and
// returns the delivery count. Sends never block: a listener that stopped
// draining forfeits the message.
func (b *MemoryBus) Publish(msg domain.AuthMessage) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	delivered := 0
	for _, sub := range b.subs {
		if _, ok := sub.types[msg.Type]; !ok {
			continue
		}
		select {
		case sub.ch <- msg:
			delivered++
		default:
		}
	}
	return delivered
}
