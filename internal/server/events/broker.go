package events

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Broker distributes events to every registered subscriber.
type Broker struct {
	subscribers []Subscriber
	events      chan Event
	register    chan Subscriber
	unregister  chan Subscriber
	mu          sync.RWMutex
	logger      *zerolog.Logger
}

// NewBroker creates a broker. Subscribe may be called before Run.
func NewBroker(logger *zerolog.Logger) *Broker {
	return &Broker{
		subscribers: make([]Subscriber, 0),
		events:      make(chan Event, 256),
		register:    make(chan Subscriber, 16),
		unregister:  make(chan Subscriber, 16),
		logger:      logger,
	}
}

// Run processes registrations and events until ctx is cancelled.
func (b *Broker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			b.mu.Lock()
			for _, sub := range b.subscribers {
				_ = sub.Close()
			}
			b.subscribers = nil
			b.mu.Unlock()
			b.logger.Info().Msg("Event broker shut down")
			return

		case sub := <-b.register:
			b.mu.Lock()
			b.subscribers = append(b.subscribers, sub)
			total := len(b.subscribers)
			b.mu.Unlock()
			b.logger.Debug().Int("total_subscribers", total).Msg("Subscriber registered")

		case sub := <-b.unregister:
			b.mu.Lock()
			for i, s := range b.subscribers {
				if s == sub {
					b.subscribers = append(b.subscribers[:i], b.subscribers[i+1:]...)
					_ = s.Close()
					break
				}
			}
			total := len(b.subscribers)
			b.mu.Unlock()
			b.logger.Debug().Int("total_subscribers", total).Msg("Subscriber unregistered")

		case event := <-b.events:
			b.mu.RLock()
			subs := make([]Subscriber, len(b.subscribers))
			copy(subs, b.subscribers)
			b.mu.RUnlock()

			for _, sub := range subs {
				if err := sub.Send(event); err != nil {
					b.logger.Warn().
						Err(err).
						Str("event_type", string(event.Type)).
						Msg("Failed to send event to subscriber")
				}
			}
		}
	}
}

// Publish queues an event. Events are dropped when the queue is full.
func (b *Broker) Publish(eventType EventType, data any) {
	event := Event{
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}

	select {
	case b.events <- event:
	default:
		b.logger.Warn().
			Str("event_type", string(eventType)).
			Msg("Event channel full, event dropped")
	}
}

// Subscribe registers sub.
func (b *Broker) Subscribe(sub Subscriber) {
	b.register <- sub
}

// Unsubscribe removes and closes sub.
func (b *Broker) Unsubscribe(sub Subscriber) {
	b.unregister <- sub
}

// SubscriberCount returns the number of registered subscribers.
func (b *Broker) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
