package events

import (
	"time"
)

// Event is something that happened during a level. Events are published
// synchronously from the goroutine driving the model.
type Event interface {
	Type() string
	Timestamp() time.Time
	GameID() string
}

// BaseEvent carries the fields every event shares
type BaseEvent struct {
	EventType string    `json:"type"`
	Time      time.Time `json:"timestamp"`
	Game      string    `json:"game_id"`
}

func (e BaseEvent) Type() string         { return e.EventType }
func (e BaseEvent) Timestamp() time.Time { return e.Time }
func (e BaseEvent) GameID() string       { return e.Game }

// EventMetadata places an event in the level: the turn it happened on and
// the snapshot record of the unit involved, if any
type EventMetadata struct {
	Turn int    `json:"turn,omitempty"`
	Unit string `json:"unit,omitempty"`
}

// EventHandler is a function that processes events
type EventHandler func(Event)

// Subscriber receives the events it is interested in
type Subscriber interface {
	ID() string
	HandleEvent(Event)
	InterestedIn(eventType string) bool
}

// Publisher is the side of the bus the model and state machine see
type Publisher interface {
	Publish(Event)
}

// Bus is a Publisher that subscribers can attach to
type Bus interface {
	Publisher
	Subscribe(Subscriber)
	Unsubscribe(subscriberID string)
	SubscribeFunc(eventType string, handler EventHandler) string
}

// TypeFilter is a set of event types. A nil filter matches every event.
type TypeFilter map[string]bool

// NewTypeFilter builds a filter from event types; with no types it returns
// nil so that everything matches
func NewTypeFilter(eventTypes ...string) TypeFilter {
	if len(eventTypes) == 0 {
		return nil
	}
	f := make(TypeFilter, len(eventTypes))
	for _, t := range eventTypes {
		f[t] = true
	}
	return f
}

// Matches reports whether eventType passes the filter
func (f TypeFilter) Matches(eventType string) bool {
	return f == nil || f[eventType]
}
