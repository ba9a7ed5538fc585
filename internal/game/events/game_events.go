package events

import (
	"time"

	"github.com/mitchelldurbincs/battleship/internal/game/core"
)

// Event type constants
const (
	TypeGameStarted       = "game.started"
	TypeGameEnded         = "game.ended"
	TypeShipPlaced        = "ship.placed"
	TypePlacementRejected = "placement.rejected"
	TypeShotFired         = "shot.fired"
	TypeShipSunk          = "ship.sunk"
	TypeScoreChanged      = "score.changed"
	TypeTurnChanged       = "turn.changed"
	TypeStateTransition   = "state.transition"
	TypeResultSubmitted   = "result.submitted"
)

func newBase(eventType, gameID string) BaseEvent {
	return BaseEvent{
		EventType: eventType,
		Time:      time.Now(),
		Game:      gameID,
	}
}

// GameStartedEvent is published when a new session begins
type GameStartedEvent struct {
	BaseEvent
	Username     string
	OpponentName string
}

// NewGameStartedEvent creates a new GameStartedEvent
func NewGameStartedEvent(gameID, username, opponentName string) *GameStartedEvent {
	return &GameStartedEvent{
		BaseEvent:    newBase(TypeGameStarted, gameID),
		Username:     username,
		OpponentName: opponentName,
	}
}

// GameEndedEvent is published when either fleet is destroyed
type GameEndedEvent struct {
	BaseEvent
	Winner     core.Side
	Duration   time.Duration
	Score      int
	ShotsFired int
	ShipsSunk  int
}

// NewGameEndedEvent creates a new GameEndedEvent
func NewGameEndedEvent(gameID string, winner core.Side, duration time.Duration, score, shotsFired, shipsSunk int) *GameEndedEvent {
	return &GameEndedEvent{
		BaseEvent:  newBase(TypeGameEnded, gameID),
		Winner:     winner,
		Duration:   duration,
		Score:      score,
		ShotsFired: shotsFired,
		ShipsSunk:  shipsSunk,
	}
}

// ShipPlacedEvent is published when the player places a ship during setup
type ShipPlacedEvent struct {
	BaseEvent
	ShipID      string
	ShipType    core.ShipType
	Origin      core.Coordinate
	Orientation core.Orientation
	Remaining   int // ships of every type still to place
}

// NewShipPlacedEvent creates a new ShipPlacedEvent
func NewShipPlacedEvent(gameID string, ship *core.Ship, o core.Orientation, remaining int) *ShipPlacedEvent {
	return &ShipPlacedEvent{
		BaseEvent:   newBase(TypeShipPlaced, gameID),
		ShipID:      ship.ID,
		ShipType:    ship.Type,
		Origin:      ship.Positions[0],
		Orientation: o,
		Remaining:   remaining,
	}
}

// PlacementRejectedEvent is published when a placement command is refused
type PlacementRejectedEvent struct {
	BaseEvent
	ShipType    core.ShipType
	Origin      core.Coordinate
	Orientation core.Orientation
	Reason      string
}

// NewPlacementRejectedEvent creates a new PlacementRejectedEvent
func NewPlacementRejectedEvent(gameID string, t core.ShipType, origin core.Coordinate, o core.Orientation, reason string) *PlacementRejectedEvent {
	return &PlacementRejectedEvent{
		BaseEvent:   newBase(TypePlacementRejected, gameID),
		ShipType:    t,
		Origin:      origin,
		Orientation: o,
		Reason:      reason,
	}
}

// ShotFiredEvent is published for every committed shot of either side
type ShotFiredEvent struct {
	BaseEvent
	Shooter core.Side
	Target  core.Coordinate
	Outcome core.ShotOutcome
	ShipID  string
}

// NewShotFiredEvent creates a new ShotFiredEvent
func NewShotFiredEvent(gameID string, shooter core.Side, shot core.ShotResult) *ShotFiredEvent {
	return &ShotFiredEvent{
		BaseEvent: newBase(TypeShotFired, gameID),
		Shooter:   shooter,
		Target:    shot.Target,
		Outcome:   shot.Outcome,
		ShipID:    shot.ShipID,
	}
}

// ShipSunkEvent is published when a shot sinks a ship
type ShipSunkEvent struct {
	BaseEvent
	Shooter  core.Side
	ShipID   string
	ShipType core.ShipType
	Size     int
}

// NewShipSunkEvent creates a new ShipSunkEvent
func NewShipSunkEvent(gameID string, shooter core.Side, shot core.ShotResult) *ShipSunkEvent {
	return &ShipSunkEvent{
		BaseEvent: newBase(TypeShipSunk, gameID),
		Shooter:   shooter,
		ShipID:    shot.ShipID,
		ShipType:  shot.ShipType,
		Size:      shot.ShipSize,
	}
}

// ScoreChangedEvent is published whenever the player's score moves
type ScoreChangedEvent struct {
	BaseEvent
	Delta  int
	Score  int
	Reason string
}

// NewScoreChangedEvent creates a new ScoreChangedEvent
func NewScoreChangedEvent(gameID string, delta, score int, reason string) *ScoreChangedEvent {
	return &ScoreChangedEvent{
		BaseEvent: newBase(TypeScoreChanged, gameID),
		Delta:     delta,
		Score:     score,
		Reason:    reason,
	}
}

// TurnChangedEvent is published when the turn passes to the other side
type TurnChangedEvent struct {
	BaseEvent
	Turn core.Side
}

// NewTurnChangedEvent creates a new TurnChangedEvent
func NewTurnChangedEvent(gameID string, turn core.Side) *TurnChangedEvent {
	return &TurnChangedEvent{
		BaseEvent: newBase(TypeTurnChanged, gameID),
		Turn:      turn,
	}
}

// StateTransitionEvent is published when the game state machine transitions between phases
type StateTransitionEvent struct {
	BaseEvent
	FromPhase string
	ToPhase   string
	Reason    string
}

// NewStateTransitionEvent creates a new StateTransitionEvent
func NewStateTransitionEvent(gameID, fromPhase, toPhase, reason string) *StateTransitionEvent {
	return &StateTransitionEvent{
		BaseEvent: newBase(TypeStateTransition, gameID),
		FromPhase: fromPhase,
		ToPhase:   toPhase,
		Reason:    reason,
	}
}

// ResultSubmittedEvent is published after a result was sent to the verifier
type ResultSubmittedEvent struct {
	BaseEvent
	Username  string
	Success   bool
	ProofHash string
	Error     string
}

// NewResultSubmittedEvent creates a new ResultSubmittedEvent. A nil err marks success.
func NewResultSubmittedEvent(gameID, username, proofHash string, err error) *ResultSubmittedEvent {
	e := &ResultSubmittedEvent{
		BaseEvent: newBase(TypeResultSubmitted, gameID),
		Username:  username,
		Success:   err == nil,
		ProofHash: proofHash,
	}
	if err != nil {
		e.Error = err.Error()
	}
	return e
}
