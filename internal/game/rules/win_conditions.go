package rules

import (
	"github.com/mitchelldurbincs/battleship/internal/game/core"
	"github.com/rs/zerolog"
)

// WinConditionChecker handles game over detection and winner determination
type WinConditionChecker struct {
	logger zerolog.Logger
}

// NewWinConditionChecker creates a new win condition checker
func NewWinConditionChecker(logger zerolog.Logger) *WinConditionChecker {
	return &WinConditionChecker{
		logger: logger.With().Str("component", "WinConditionChecker").Logger(),
	}
}

// CheckGameOver reports whether either fleet is destroyed.
// The winner is the side whose opponent's fleet is fully sunk; SideNone while both float.
// Shots alternate, so at most one fleet can be destroyed by a single shot.
func (wc *WinConditionChecker) CheckGameOver(player, opponent *core.Fleet) (bool, core.Side) {
	playerSunk := player.AllSunk()
	opponentSunk := opponent.AllSunk()

	wc.logger.Debug().
		Int("player_ships_sunk", player.SunkCount()).
		Int("opponent_ships_sunk", opponent.SunkCount()).
		Msg("Checking game over conditions")

	var winner core.Side
	switch {
	case opponentSunk && playerSunk:
		// Only reachable through a broken fleet; treat the player as first to finish
		wc.logger.Warn().Msg("Both fleets destroyed")
		winner = core.SidePlayer
	case opponentSunk:
		winner = core.SidePlayer
	case playerSunk:
		winner = core.SideOpponent
	default:
		return false, core.SideNone
	}

	wc.logger.Info().Str("winner", winner.String()).Msg("Winner determined")
	return true, winner
}
