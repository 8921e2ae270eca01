package bus

import "time"

// EventBus is an in-process pub/sub bus for simulation events.
//
// Delivery is synchronous and in subscription order, so a turn's events reach
// every handler before the next key is dispatched. All methods are safe for
// concurrent use; handlers run on the publisher's goroutine.
type EventBus interface {
	// Publish delivers event to every active subscriber of event.Type(). Handler
	// errors are joined and returned.
	Publish(event Event) error
	// PublishAsync publishes on a new goroutine. The returned channel receives the
	// joined handler error (or nil) and is then closed.
	PublishAsync(event Event) <-chan error

	// Subscribe registers handler for eventType. The wildcard type "*" receives every event.
	Subscribe(eventType string, handler EventHandler) (Subscription, error)
	// Unsubscribe cancels sub. A nil sub is ignored.
	Unsubscribe(sub Subscription) error

	AddObserver(obs EventBusObserver)
	RemoveObserver(obs EventBusObserver)
	// GetMetrics is a snapshot of counters. Counters only move while an observer is registered.
	GetMetrics() EventBusMetrics
}

// Wildcard subscribes to every event type.
const Wildcard = "*"

// Event is an immutable message. Source names the publisher, Data is the payload.
type Event interface {
	Type() string
	Source() string
	Timestamp() time.Time
	Data() any
}

type (
	// EventHandler is invoked once per delivered event.
	EventHandler func(event Event) error
)

// Subscription is a registered handler.
type Subscription interface {
	ID() string
	EventType() string
	IsActive() bool
	// Cancel de-registers the handler. Repeated calls are safe.
	Cancel() error
}

// EventBusObserver is told about every publish and its delivery. Observers should return quickly.
type EventBusObserver interface {
	OnPublish(event Event)
	OnDelivered(event Event, handlers int, err error)
}

type EventBusMetrics struct {
	Published         uint64
	DeliveredHandlers uint64
	Errors            uint64
	SubscribersActive uint64
}
