// Package events provides the in-process notification channel between the
// master-data registries and whatever presentation layer sits on top of the
// API. A successful registry save publishes an event so dependent selection
// lists can refresh without a full reload cycle.
package events

import (
	"sync"
)

// Event names published by the registries.
const (
	ProductRegistered  = "ProductRegistered"
	SupplierRegistered = "SupplierRegistered"
	CustomerRegistered = "CustomerRegistered"
)

// Event is one registry notification. Payload carries the natural key of
// the new entry (SKU for products, name for suppliers and customers).
type Event struct {
	Name    string
	UserID  uint
	Payload string
}

// Handler consumes published events. Handlers run synchronously on the
// publishing goroutine, so they must not block.
type Handler func(Event)

// Bus is a minimal in-process publish/subscribe hub.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[string][]Handler)}
}

// Subscribe registers a handler for the named event.
func (b *Bus) Subscribe(name string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[name] = append(b.handlers[name], h)
}

// SubscribeAll registers a handler for every registry event.
func (b *Bus) SubscribeAll(h Handler) {
	for _, name := range []string{ProductRegistered, SupplierRegistered, CustomerRegistered} {
		b.Subscribe(name, h)
	}
}

// Publish delivers the event to all handlers subscribed to its name.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	handlers := b.handlers[e.Name]
	b.mu.RUnlock()

	for _, h := range handlers {
		h(e)
	}
}
