package fleetgen

import (
	"errors"
	"fmt"

	"github.com/mitchelldurbincs/battleship/internal/game/core"
)

// ErrInvalidFleet wraps every failure reported by Validate
var ErrInvalidFleet = errors.New("invalid fleet")

// Validate checks that board and fleet hold exactly the standard fleet,
// agree with each other, and that no two ships touch.
func Validate(b *core.Board, f *core.Fleet) error {
	want := core.FleetCounts()
	got := f.CountByType()
	for _, t := range core.AllShipTypes {
		if got[t] != want[t] {
			return fmt.Errorf("%w: %d %s(s), want %d", ErrInvalidFleet, got[t], t, want[t])
		}
	}

	occupied := make(map[core.Coordinate]string, core.FleetCellCount())
	for _, s := range f.Ships {
		if len(s.Positions) != s.Size || s.Size != s.Type.Size() {
			return fmt.Errorf("%w: ship %s has %d cells, want %d", ErrInvalidFleet, s.ID, len(s.Positions), s.Type.Size())
		}
		for _, p := range s.Positions {
			cell := b.Cell(p)
			if cell == nil {
				return fmt.Errorf("%w: ship %s off the board at %s", ErrInvalidFleet, s.ID, p)
			}
			if cell.ShipID != s.ID {
				return fmt.Errorf("%w: cell %s belongs to %q, fleet says %s", ErrInvalidFleet, p, cell.ShipID, s.ID)
			}
			occupied[p] = s.ID
		}
	}

	if len(occupied) != core.FleetCellCount() {
		return fmt.Errorf("%w: %d occupied cells, want %d", ErrInvalidFleet, len(occupied), core.FleetCellCount())
	}

	for r := 0; r < core.BoardSize; r++ {
		for c := 0; c < core.BoardSize; c++ {
			cell := b.Cells[r][c]
			if cell.ShipID != "" && occupied[cell.Pos] != cell.ShipID {
				return fmt.Errorf("%w: cell %s marked for unknown ship %q", ErrInvalidFleet, cell.Pos, cell.ShipID)
			}
		}
	}

	for i, a := range f.Ships {
		for _, b := range f.Ships[i+1:] {
			if shipsTouch(a, b) {
				return fmt.Errorf("%w: %s and %s touch", ErrInvalidFleet, a.ID, b.ID)
			}
		}
	}

	return nil
}

func shipsTouch(a, b *core.Ship) bool {
	for _, p := range a.Positions {
		for _, q := range b.Positions {
			if p.ChebyshevDistance(q) < 2 {
				return true
			}
		}
	}
	return false
}
