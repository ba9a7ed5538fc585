package subscribers

import (
	"encoding/json"

	"github.com/mitchelldurbincs/battleship/internal/game/events"
	"github.com/rs/zerolog"
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

// SetDevMode enables or disables development mode logging
func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.devMode = enabled
}

// InterestedIn returns true if the subscriber wants to receive this event type
func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	// If no filter is set, interested in all events
	if ls.eventTypeFilter == nil {
		return true
	}
	return ls.eventTypeFilter[eventType]
}

// HandleEvent processes an event by logging it
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	eventLogger := ls.logger.With().
		Str("event_type", event.Type()).
		Str("game_id", event.GameID()).
		Time("timestamp", event.Timestamp()).
		Logger()

	// Create the base event log
	var logEvent *zerolog.Event
	switch ls.logLevel {
	case zerolog.DebugLevel:
		logEvent = eventLogger.Debug()
	case zerolog.InfoLevel:
		logEvent = eventLogger.Info()
	case zerolog.WarnLevel:
		logEvent = eventLogger.Warn()
	case zerolog.ErrorLevel:
		logEvent = eventLogger.Error()
	default:
		logEvent = eventLogger.Info()
	}

	// Add event-specific fields based on type
	switch e := event.(type) {
	case *events.GameStartedEvent:
		logEvent.
			Str("username", e.Username).
			Str("opponent", e.OpponentName)

	case *events.GameEndedEvent:
		logEvent.
			Str("winner", e.Winner.String()).
			Dur("duration", e.Duration).
			Int("score", e.Score).
			Int("shots_fired", e.ShotsFired).
			Int("ships_sunk", e.ShipsSunk)

	case *events.ShipPlacedEvent:
		logEvent.
			Str("ship_id", e.ShipID).
			Str("ship_type", e.ShipType.String()).
			Str("origin", e.Origin.Label()).
			Str("orientation", e.Orientation.String()).
			Int("remaining", e.Remaining)

	case *events.PlacementRejectedEvent:
		logEvent.
			Str("ship_type", e.ShipType.String()).
			Str("origin", e.Origin.Label()).
			Str("orientation", e.Orientation.String()).
			Str("reason", e.Reason)

	case *events.ShotFiredEvent:
		logEvent.
			Str("shooter", e.Shooter.String()).
			Str("target", e.Target.Label()).
			Str("outcome", e.Outcome.String())
		if e.ShipID != "" {
			logEvent.Str("ship_id", e.ShipID)
		}

	case *events.ShipSunkEvent:
		logEvent.
			Str("shooter", e.Shooter.String()).
			Str("ship_id", e.ShipID).
			Str("ship_type", e.ShipType.String()).
			Int("size", e.Size)

	case *events.ScoreChangedEvent:
		logEvent.
			Int("delta", e.Delta).
			Int("score", e.Score).
			Str("reason", e.Reason)

	case *events.TurnChangedEvent:
		logEvent.Str("turn", e.Turn.String())

	case *events.StateTransitionEvent:
		logEvent.
			Str("from", e.FromPhase).
			Str("to", e.ToPhase).
			Str("reason", e.Reason)

	case *events.ResultSubmittedEvent:
		logEvent.
			Str("username", e.Username).
			Bool("success", e.Success)
		if e.ProofHash != "" {
			logEvent.Str("proof_hash", e.ProofHash)
		}
		if e.Error != "" {
			logEvent.Str("error", e.Error)
		}
	}

	// In dev mode, also log the full event as JSON
	if ls.devMode {
		if jsonData, err := json.Marshal(event); err == nil {
			logEvent.RawJSON("event_data", jsonData)
		}
	}

	// Send the log
	logEvent.Msg("Game event")
}
