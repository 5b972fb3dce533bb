package bus

import "github.com/zeusync/skyloop/internal/core/events"

// EventBus fans published step events out to interested parties outside the
// engine: the spectator feed, mission scripts, tests.
//
// Key characteristics:
// - Mask-based fan-out: handlers subscribe to a bitmask of events.Type and
//   receive every event sharing at least one flag with it.
// - Synchronous delivery: PublishBatch calls handlers in the caller goroutine,
//   in subscription order.
// - Error aggregation: handler errors are joined and returned, never dropped.
// - Optional observability: metrics are produced only when observers are
//   registered.
//
// All methods are safe for concurrent use. Handlers run while the engine is
// between steps, so they should return quickly.
type EventBus interface {
	// Subscribe registers a handler for events matching mask.
	Subscribe(mask events.Type, handler EventHandler) (Subscription, error)
	// Unsubscribe cancels the given Subscription. Safe to call with nil.
	Unsubscribe(Subscription) error

	// Publish delivers a single event.
	Publish(event events.Event) error
	// PublishBatch delivers events in order and aggregates errors across them.
	PublishBatch(batch []events.Event) error

	// AddObserver registers an observer to receive delivery callbacks.
	AddObserver(obs EventBusObserver)
	// RemoveObserver unregisters a previously added observer.
	RemoveObserver(obs EventBusObserver)
	// GetMetrics returns a snapshot of counters. Counters only move while at
	// least one observer is registered.
	GetMetrics() EventBusMetrics
}

// EventHandler is invoked per delivered event.
type EventHandler func(event events.Event) error

// Subscription represents a registered handler.
type Subscription interface {
	// ID is a unique identifier for this subscription.
	ID() string
	// Mask returns the event types this subscription listens to.
	Mask() events.Type
	// IsActive reports whether this subscription is still registered.
	IsActive() bool
	// Cancel de-registers the handler. Multiple calls are safe.
	Cancel() error
}

// EventBusObserver is notified about deliveries. Observers should return
// quickly.
type EventBusObserver interface {
	OnDelivered(event events.Event, handlers int, err error)
}

type EventBusMetrics struct {
	Published         uint64
	DeliveredHandlers uint64
	Errors            uint64
	SubscribersActive uint64
}
