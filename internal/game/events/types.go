package events

import "time"

// Event is anything published on the bus. Every selection notification and
// phase change embeds BaseEvent to satisfy it.
type Event interface {
	Type() string
	Timestamp() time.Time
	// SessionID names the client selection session that produced the event
	SessionID() string
}

// BaseEvent carries the fields shared by every event
type BaseEvent struct {
	EventType string    `json:"type"`
	Time      time.Time `json:"timestamp"`
	Session   string    `json:"session_id"`
}

func newBase(eventType, sessionID string) BaseEvent {
	return BaseEvent{EventType: eventType, Time: time.Now(), Session: sessionID}
}

func (e BaseEvent) Type() string         { return e.EventType }
func (e BaseEvent) Timestamp() time.Time { return e.Time }
func (e BaseEvent) SessionID() string    { return e.Session }

// EventMetadata is the game context at the moment an event fired.
// PlayerID is empty for spectators.
type EventMetadata struct {
	PlayerID string `json:"player_id,omitempty"`
	Round    int    `json:"round,omitempty"`
}

// EventHandler receives events of the type it was registered for
type EventHandler func(Event)

// Subscriber receives every event type it reports interest in
type Subscriber interface {
	ID() string
	HandleEvent(Event)
	InterestedIn(eventType string) bool
}

// Publisher is all a session needs from the bus
type Publisher interface {
	Publish(Event)
}

// Bus adds subscription management to Publisher. Function handlers are
// addressed by the id SubscribeFunc returns.
type Bus interface {
	Publisher
	Subscribe(Subscriber)
	Unsubscribe(subscriberID string)
	SubscribeFunc(eventType string, handler EventHandler) string
	UnsubscribeFunc(handlerID string)
}
