package events

import (
	"time"
)

// Event is something that happened in a session. Engines publish events in
// the order they happen; subscribers see them in that order.
type Event interface {
	Type() string
	Timestamp() time.Time
	GameID() string
}

// BaseEvent carries the fields every session event shares
type BaseEvent struct {
	EventType string    `json:"type"`
	Time      time.Time `json:"timestamp"`
	Game      string    `json:"game_id"`
}

func (e BaseEvent) Type() string         { return e.EventType }
func (e BaseEvent) Timestamp() time.Time { return e.Time }
func (e BaseEvent) GameID() string       { return e.Game }

// AllEvents subscribes a function handler to every event type
const AllEvents = "*"

// EventHandler handles one event
type EventHandler func(Event)

// Subscriber receives the event types it is interested in
type Subscriber interface {
	ID() string
	HandleEvent(Event)
	InterestedIn(eventType string) bool
}

// Publisher is what an engine needs to announce events
type Publisher interface {
	Publish(Event)
}

// Bus fans events out to subscribers and function handlers
type Bus interface {
	Publisher
	Subscribe(Subscriber)
	Unsubscribe(subscriberID string)
	// SubscribeFunc registers handler for eventType or AllEvents and returns its id
	SubscribeFunc(eventType string, handler EventHandler) string
	UnsubscribeFunc(handlerID string)
}

// NopPublisher drops every event
type NopPublisher struct{}

func (NopPublisher) Publish(Event) {}
