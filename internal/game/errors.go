package game

import (
	"errors"
	"fmt"

	"github.com/mitchelldurbincs/battleship/internal/game/core"
)

var (
	ErrWrongPhase         = errors.New("action not allowed in the current phase")
	ErrNotYourTurn        = errors.New("not your turn")
	ErrAlreadyFullyPlaced = errors.New("all ships of this type are already placed")
)

// PlacementError is returned when a placement command is rejected.
// Reason is one of core.ErrOutOfBounds, core.ErrOverlapOrAdjacent,
// core.ErrUnknownShipType, core.ErrUnknownOrientation or ErrAlreadyFullyPlaced.
type PlacementError struct {
	ShipType    core.ShipType
	Origin      core.Coordinate
	Orientation core.Orientation
	Reason      error
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("cannot place %s at %s: %v", e.ShipType.DisplayName(), e.Origin.Label(), e.Reason)
}

func (e *PlacementError) Unwrap() error { return e.Reason }
