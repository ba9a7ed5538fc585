package states

import (
	"time"

	"github.com/mitchelldurbincs/battleship/internal/game/core"
	"github.com/rs/zerolog"
)

// GameContext provides session information to states for making decisions
type GameContext struct {
	// GameID uniquely identifies this session
	GameID string

	// Logger for state-specific logging
	Logger zerolog.Logger

	// Now is the session clock
	Now func() time.Time

	// ShipsToPlace is how many player ships are still waiting for placement
	ShipsToPlace int

	// StartTime is when PhasePlaying was entered
	StartTime time.Time

	// EndTime is when PhaseGameOver was entered
	EndTime time.Time

	// Winner is set once a fleet is destroyed
	Winner core.Side
}

// NewGameContext creates a new game context. A nil clock means time.Now.
func NewGameContext(gameID string, logger zerolog.Logger, now func() time.Time) *GameContext {
	if now == nil {
		now = time.Now
	}
	return &GameContext{
		GameID:       gameID,
		Logger:       logger.With().Str("game_id", gameID).Logger(),
		Now:          now,
		ShipsToPlace: core.FleetShipCount(),
		Winner:       core.SideNone,
	}
}

// GetElapsedTime returns the time since play began, frozen once the game is over
func (gc *GameContext) GetElapsedTime() time.Duration {
	if gc.StartTime.IsZero() {
		return 0
	}
	if !gc.EndTime.IsZero() {
		return gc.EndTime.Sub(gc.StartTime)
	}
	return gc.Now().Sub(gc.StartTime)
}

func (gc *GameContext) clear() {
	gc.ShipsToPlace = core.FleetShipCount()
	gc.StartTime = time.Time{}
	gc.EndTime = time.Time{}
	gc.Winner = core.SideNone
}
