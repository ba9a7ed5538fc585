package states

import (
	"fmt"

	"github.com/mitchelldurbincs/battleship/internal/game/core"
)

// SetupState is the placement phase
type SetupState struct{}

func NewSetupState() State {
	return &SetupState{}
}

func (s *SetupState) Phase() GamePhase {
	return PhaseSetup
}

func (s *SetupState) Enter(ctx *GameContext) error {
	ctx.Logger.Debug().Int("ships_to_place", ctx.ShipsToPlace).Msg("Entering Setup state")
	return nil
}

func (s *SetupState) Exit(ctx *GameContext) error {
	ctx.Logger.Debug().Msg("Fleet placed, leaving Setup state")
	return nil
}

func (s *SetupState) Validate(ctx *GameContext) error {
	return nil
}

// PlayingState represents active gameplay
type PlayingState struct{}

func NewPlayingState() State {
	return &PlayingState{}
}

func (s *PlayingState) Phase() GamePhase {
	return PhasePlaying
}

func (s *PlayingState) Enter(ctx *GameContext) error {
	ctx.StartTime = ctx.Now()
	ctx.Logger.Info().
		Time("start_time", ctx.StartTime).
		Msg("Game started")
	return nil
}

func (s *PlayingState) Exit(ctx *GameContext) error {
	ctx.Logger.Debug().Msg("Exiting Playing state")
	return nil
}

func (s *PlayingState) Validate(ctx *GameContext) error {
	if ctx.ShipsToPlace != 0 {
		return fmt.Errorf("%d ships still to place", ctx.ShipsToPlace)
	}
	return nil
}

// GameOverState is the terminal phase
type GameOverState struct{}

func NewGameOverState() State {
	return &GameOverState{}
}

func (s *GameOverState) Phase() GamePhase {
	return PhaseGameOver
}

func (s *GameOverState) Enter(ctx *GameContext) error {
	ctx.EndTime = ctx.Now()
	ctx.Logger.Info().
		Str("winner", ctx.Winner.String()).
		Dur("duration", ctx.GetElapsedTime()).
		Msg("Game over")
	return nil
}

func (s *GameOverState) Exit(ctx *GameContext) error {
	return nil
}

func (s *GameOverState) Validate(ctx *GameContext) error {
	if ctx.Winner != core.SidePlayer && ctx.Winner != core.SideOpponent {
		return fmt.Errorf("game cannot end without a winner")
	}
	return nil
}
