package game

import (
	"errors"
	"fmt"

	"github.com/mitchelldurbincs/battleship/internal/game/core"
)

const msgPlaceShips = "Place your ships on the board"

func msgYourTurn(opponent string) string {
	return fmt.Sprintf("Your turn! Choose a cell on %s's grid to fire.", opponent)
}

func msgShipPlaced(t core.ShipType, at core.Coordinate, remaining int) string {
	return fmt.Sprintf("%s placed at %s. %d ships left to place.", t.DisplayName(), at.Label(), remaining)
}

// msgPlacementRejected explains a rejected placement the way a player reads it
func msgPlacementRejected(err *PlacementError) string {
	switch {
	case errors.Is(err, ErrAlreadyFullyPlaced):
		return fmt.Sprintf("All your %s ships are already on the board.", err.ShipType.DisplayName())
	case errors.Is(err, core.ErrUnknownShipType):
		return "First select a ship to place."
	case errors.Is(err, core.ErrUnknownOrientation):
		return "Choose a horizontal or vertical orientation."
	case errors.Is(err, core.ErrOutOfBounds) && err.Orientation == core.Horizontal:
		return fmt.Sprintf("Ship is too wide! Cannot place %s horizontally here.", err.ShipType.DisplayName())
	case errors.Is(err, core.ErrOutOfBounds):
		return fmt.Sprintf("Ship is too tall! Cannot place %s vertically here.", err.ShipType.DisplayName())
	default:
		return "Cannot place ship here. It might overlap with another ship or be too close."
	}
}

func msgPlayerShot(shot core.ShotResult, opponent string) string {
	switch shot.Outcome {
	case core.OutcomeAlreadyTargeted:
		return "You already fired at this position. Choose another."
	case core.OutcomeHitAndSunk:
		return fmt.Sprintf("You sank %s's %s!", opponent, shot.ShipType.DisplayName())
	case core.OutcomeHit:
		return fmt.Sprintf("Hit at %s! Wait for %s's turn.", shot.Target.Label(), opponent)
	default:
		return fmt.Sprintf("Miss at %s! Wait for %s's turn.", shot.Target.Label(), opponent)
	}
}

func msgOpponentShot(shot core.ShotResult, opponent string) string {
	switch shot.Outcome {
	case core.OutcomeHitAndSunk:
		return fmt.Sprintf("%s sank your %s!", opponent, shot.ShipType.DisplayName())
	case core.OutcomeHit:
		return fmt.Sprintf("%s hit your ship at position %s!", opponent, shot.Target.Label())
	default:
		return fmt.Sprintf("%s missed at position %s. Your turn!", opponent, shot.Target.Label())
	}
}

func msgPlayerWon(timeBonus int) string {
	return fmt.Sprintf("Congratulations! You won with a time bonus of %d points!", timeBonus)
}

func msgOpponentWon(opponent string) string {
	return fmt.Sprintf("Game over! %s won.", opponent)
}
