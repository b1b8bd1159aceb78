package events

import (
	"slices"
	"strconv"
	"sync"

	"github.com/rs/zerolog"
)

// EventBus delivers events synchronously. Subscribers are called in the
// order they subscribed, then the function handlers for the event type, so
// a replayed level logs its events in the same order every time.
type EventBus struct {
	mu           sync.RWMutex
	subscribers  []Subscriber
	funcHandlers map[string][]EventHandler
	logger       zerolog.Logger
}

// NewEventBus creates an empty bus
func NewEventBus(logger zerolog.Logger) *EventBus {
	return &EventBus{
		funcHandlers: make(map[string][]EventHandler),
		logger:       logger.With().Str("component", "event_bus").Logger(),
	}
}

// Subscribe adds a subscriber, replacing any earlier one with the same ID
func (eb *EventBus) Subscribe(subscriber Subscriber) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.subscribers = slices.DeleteFunc(eb.subscribers, func(s Subscriber) bool {
		return s.ID() == subscriber.ID()
	})
	eb.subscribers = append(eb.subscribers, subscriber)
	eb.logger.Debug().Str("subscriber_id", subscriber.ID()).Msg("Subscriber added")
}

// Unsubscribe removes the subscriber with the given ID, if present
func (eb *EventBus) Unsubscribe(subscriberID string) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.subscribers = slices.DeleteFunc(eb.subscribers, func(s Subscriber) bool {
		return s.ID() == subscriberID
	})
	eb.logger.Debug().Str("subscriber_id", subscriberID).Msg("Subscriber removed")
}

// SubscribeFunc registers handler for one event type and returns its ID
func (eb *EventBus) SubscribeFunc(eventType string, handler EventHandler) string {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.funcHandlers[eventType] = append(eb.funcHandlers[eventType], handler)
	handlerID := eventType + "_func_" + strconv.Itoa(len(eb.funcHandlers[eventType]))
	eb.logger.Debug().Str("handler_id", handlerID).Msg("Function handler added")
	return handlerID
}

// Publish delivers event to every interested subscriber and handler. A
// panicking receiver is logged and skipped. Receivers are called without the
// lock held, so they may subscribe or unsubscribe; such changes apply from
// the next Publish.
func (eb *EventBus) Publish(event Event) {
	eventType := event.Type()

	eb.mu.RLock()
	subs := slices.Clone(eb.subscribers)
	handlers := slices.Clone(eb.funcHandlers[eventType])
	eb.mu.RUnlock()

	log := eb.logger.With().
		Str("event_type", eventType).
		Str("game_id", event.GameID()).
		Logger()
	log.Trace().Msg("Publishing event")

	for _, s := range subs {
		if s.InterestedIn(eventType) {
			deliver(log, s.ID(), s.HandleEvent, event)
		}
	}
	for i, h := range handlers {
		deliver(log, eventType+"_func_"+strconv.Itoa(i+1), h, event)
	}
}

func deliver(log zerolog.Logger, receiver string, handle EventHandler, event Event) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Str("receiver", receiver).
				Interface("panic", r).
				Msg("Event receiver panicked")
		}
	}()
	handle(event)
}

// GetSubscriberCount returns the number of subscribers
func (eb *EventBus) GetSubscriberCount() int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return len(eb.subscribers)
}

// GetFuncHandlerCount returns the number of function handlers for eventType
func (eb *EventBus) GetFuncHandlerCount(eventType string) int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return len(eb.funcHandlers[eventType])
}
