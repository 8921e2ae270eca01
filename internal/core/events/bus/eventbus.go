package bus

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

type simpleEvent struct {
	typeStr string
	source  string
	ts      time.Time
	data    any
}

func (e simpleEvent) Type() string         { return e.typeStr }
func (e simpleEvent) Source() string       { return e.source }
func (e simpleEvent) Timestamp() time.Time { return e.ts }
func (e simpleEvent) Data() any            { return e.data }

// NewEvent creates an Event stamped with the current time.
func NewEvent(typ, src string, data any) Event {
	return simpleEvent{typeStr: typ, source: src, ts: time.Now(), data: data}
}

type subscription struct {
	mu        sync.Mutex
	id        string
	eventType string
	handler   EventHandler
	active    bool
	cancel    func()
}

func (s *subscription) ID() string        { return s.id }
func (s *subscription) EventType() string { return s.eventType }

func (s *subscription) IsActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *subscription) Cancel() error {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return nil
	}
	s.active = false
	s.mu.Unlock()
	s.cancel()
	return nil
}

type inMemoryBus struct {
	mu sync.RWMutex
	// handlers: eventType -> subscriptions in registration order
	handlers  map[string][]*subscription
	observers []EventBusObserver
	metrics   EventBusMetrics
}

// New creates an empty bus.
func New() EventBus {
	return &inMemoryBus{handlers: make(map[string][]*subscription)}
}

func (b *inMemoryBus) Publish(event Event) error {
	b.mu.RLock()
	etype := event.Type()
	subs := make([]*subscription, 0, len(b.handlers[etype])+len(b.handlers[Wildcard]))
	subs = append(subs, b.handlers[etype]...)
	if etype != Wildcard {
		subs = append(subs, b.handlers[Wildcard]...)
	}
	observers := append([]EventBusObserver(nil), b.observers...)
	b.mu.RUnlock()

	for _, obs := range observers {
		obs.OnPublish(event)
	}

	var all error
	delivered := 0
	for _, s := range subs {
		if !s.IsActive() {
			continue
		}
		delivered++
		if err := s.handler(event); err != nil {
			all = errors.Join(all, err)
		}
	}

	if len(observers) > 0 {
		for _, obs := range observers {
			obs.OnDelivered(event, delivered, all)
		}
		b.mu.Lock()
		b.metrics.Published++
		b.metrics.DeliveredHandlers += uint64(delivered)
		if all != nil {
			b.metrics.Errors++
		}
		b.mu.Unlock()
	}
	return all
}

func (b *inMemoryBus) PublishAsync(event Event) <-chan error {
	ch := make(chan error, 1)
	go func() {
		ch <- b.Publish(event)
		close(ch)
	}()
	return ch
}

func (b *inMemoryBus) Subscribe(eventType string, handler EventHandler) (Subscription, error) {
	if handler == nil {
		return nil, errors.New("bus: nil handler")
	}
	s := &subscription{id: uuid.NewString(), eventType: eventType, handler: handler, active: true}
	s.cancel = func() { b.remove(s) }

	b.mu.Lock()
	b.handlers[eventType] = append(b.handlers[eventType], s)
	b.mu.Unlock()
	return s, nil
}

func (b *inMemoryBus) Unsubscribe(sub Subscription) error {
	if sub == nil {
		return nil
	}
	return sub.Cancel()
}

func (b *inMemoryBus) remove(s *subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := b.handlers[s.eventType]
	for i, candidate := range subs {
		if candidate == s {
			b.handlers[s.eventType] = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	if len(b.handlers[s.eventType]) == 0 {
		delete(b.handlers, s.eventType)
	}
}

func (b *inMemoryBus) AddObserver(obs EventBusObserver) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, existing := range b.observers {
		if existing == obs {
			return
		}
	}
	b.observers = append(b.observers, obs)
}

func (b *inMemoryBus) RemoveObserver(obs EventBusObserver) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, existing := range b.observers {
		if existing == obs {
			b.observers = append(b.observers[:i:i], b.observers[i+1:]...)
			return
		}
	}
}

func (b *inMemoryBus) GetMetrics() EventBusMetrics {
	b.mu.RLock()
	defer b.mu.RUnlock()
	m := b.metrics
	for _, subs := range b.handlers {
		m.SubscribersActive += uint64(len(subs))
	}
	return m
}
