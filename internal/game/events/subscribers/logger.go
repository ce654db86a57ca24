package subscribers

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/bridgefront/internal/game/events"
)

// LoggerSubscriber logs events to structured logs
type LoggerSubscriber struct {
	id              string
	logger          zerolog.Logger
	logLevel        zerolog.Level
	eventTypeFilter map[string]bool // If non-nil, only log these event types
	devMode         bool            // If true, log full event details
}

// NewLoggerSubscriber creates a new logger subscriber
func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

// ID returns the subscriber's unique identifier
func (ls *LoggerSubscriber) ID() string {
	return ls.id
}

// SetEventFilter sets which event types to log (nil means log all)
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.eventTypeFilter = nil
		return
	}

	ls.eventTypeFilter = make(map[string]bool)
	for _, eventType := range eventTypes {
		ls.eventTypeFilter[eventType] = true
	}
}

// SetDevMode enables or disables logging of the full event body
func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.devMode = enabled
}

// InterestedIn returns true if the subscriber wants to receive this event type
func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	if ls.eventTypeFilter == nil {
		return true
	}
	return ls.eventTypeFilter[eventType]
}

// HandleEvent processes an event by logging it
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	logEvent := ls.logger.WithLevel(ls.level()).
		Str("event_type", event.Type()).
		Str("session_id", event.SessionID()).
		Time("timestamp", event.Timestamp())

	switch e := event.(type) {
	case *events.SelectionBegunEvent:
		withMeta(logEvent, e.Metadata).
			Str("card_id", e.CardID).
			Str("kind", e.Kind)

	case *events.SelectionChangedEvent:
		withMeta(logEvent, e.Metadata).
			Str("card_id", e.CardID).
			Str("kind", e.Kind).
			Str("picked", e.Picked).
			Bool("ready", e.Ready).
			Int("path_steps", e.PathSteps).
			Int("edges", e.Edges)

	case *events.SelectionCompletedEvent:
		withMeta(logEvent, e.Metadata).
			Str("card_id", e.CardID).
			Str("kind", e.Kind)
		if payload, err := json.Marshal(e.Payload); err == nil {
			logEvent.RawJSON("payload", payload)
		}

	case *events.SelectionResetEvent:
		withMeta(logEvent, e.Metadata).
			Str("card_id", e.CardID).
			Str("reason", e.Reason)

	case *events.ActionSubmittedEvent:
		withMeta(logEvent, e.Metadata).
			Str("request_id", e.RequestID).
			Str("card_id", e.CardID).
			Str("kind", e.Kind)

	case *events.StateTransitionEvent:
		logEvent.
			Str("from_phase", e.FromPhase).
			Str("to_phase", e.ToPhase).
			Int("from_round", e.FromRound).
			Int("to_round", e.ToRound).
			Bool("expected", e.Expected)
	}

	if ls.devMode {
		if jsonData, err := json.Marshal(event); err == nil {
			logEvent.RawJSON("event_data", jsonData)
		}
	}

	logEvent.Msg("Session event")
}

func (ls *LoggerSubscriber) level() zerolog.Level {
	switch ls.logLevel {
	case zerolog.DebugLevel, zerolog.InfoLevel, zerolog.WarnLevel, zerolog.ErrorLevel:
		return ls.logLevel
	default:
		return zerolog.InfoLevel
	}
}

func withMeta(e *zerolog.Event, meta events.EventMetadata) *zerolog.Event {
	if meta.PlayerID != "" {
		e.Str("player_id", meta.PlayerID)
	}
	if meta.Round > 0 {
		e.Int("round", meta.Round)
	}
	return e
}
