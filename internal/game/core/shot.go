package core

import "fmt"

// ShotOutcome is the result of resolving a single shot
type ShotOutcome int

const (
	OutcomeAlreadyTargeted ShotOutcome = iota
	OutcomeMiss
	OutcomeHit
	OutcomeHitAndSunk
)

func (o ShotOutcome) String() string {
	switch o {
	case OutcomeAlreadyTargeted:
		return "already-targeted"
	case OutcomeMiss:
		return "miss"
	case OutcomeHit:
		return "hit"
	case OutcomeHitAndSunk:
		return "hit-and-sunk"
	default:
		return fmt.Sprintf("unknown(%d)", int(o))
	}
}

// IsHit reports whether the shot struck a ship
func (o ShotOutcome) IsHit() bool {
	return o == OutcomeHit || o == OutcomeHitAndSunk
}

// ShotResult describes what a shot did. Ship fields are set only for hits.
type ShotResult struct {
	Target   Coordinate
	Outcome  ShotOutcome
	ShipID   string
	ShipType ShipType
	ShipSize int
}

// Committed reports whether the shot changed the board
func (r ShotResult) Committed() bool {
	return r.Outcome != OutcomeAlreadyTargeted
}

// ResolveShot applies a shot at target to the board and fleet in place.
// Firing at a cell that is already hit or miss changes nothing.
// A ship cell whose id is not in the fleet means board and fleet disagree,
// which is a programming error and panics.
func ResolveShot(b *Board, f *Fleet, target Coordinate) (ShotResult, error) {
	cell := b.Cell(target)
	if cell == nil {
		return ShotResult{Target: target}, fmt.Errorf("shot at %s: %w", target, ErrInvalidCoordinates)
	}

	res := ShotResult{Target: target}

	switch cell.Status {
	case CellHit, CellMiss:
		res.Outcome = OutcomeAlreadyTargeted
		return res, nil

	case CellShip:
		ship := f.ByID(cell.ShipID)
		if ship == nil {
			panic(fmt.Sprintf("board cell %s references ship %q missing from fleet", target, cell.ShipID))
		}
		cell.Status = CellHit
		res.ShipID = ship.ID
		res.ShipType = ship.Type
		res.ShipSize = ship.Size
		if ship.registerHit() {
			res.Outcome = OutcomeHitAndSunk
		} else {
			res.Outcome = OutcomeHit
		}
		return res, nil

	default:
		cell.Status = CellMiss
		res.Outcome = OutcomeMiss
		return res, nil
	}
}
