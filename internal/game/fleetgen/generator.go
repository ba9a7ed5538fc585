package fleetgen

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/mitchelldurbincs/battleship/internal/game/core"
)

// ErrPlacementFailed is returned when no legal fleet layout was found
var ErrPlacementFailed = errors.New("unable to place fleet")

// Config holds configuration for fleet generation
type Config struct {
	Owner              string // prefix of generated ship ids
	MaxAttemptsPerShip int    // random draws before falling back to enumeration
	MaxRestarts        int    // full-board retries when a ship has nowhere to go
}

// DefaultConfig returns a sensible default configuration
func DefaultConfig(owner string) Config {
	return Config{
		Owner:              owner,
		MaxAttemptsPerShip: 1000,
		MaxRestarts:        5,
	}
}

// Generator places fleets with a deterministic RNG
type Generator struct {
	config Config
	rng    *rand.Rand
}

// NewGenerator creates a new fleet generator
func NewGenerator(config Config, rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if config.MaxAttemptsPerShip <= 0 {
		config.MaxAttemptsPerShip = 1
	}
	if config.MaxRestarts < 0 {
		config.MaxRestarts = 0
	}
	return &Generator{
		config: config,
		rng:    rng,
	}
}

// GenerateFleet creates a new board with the full standard fleet on it
func (g *Generator) GenerateFleet() (*core.Board, *core.Fleet, error) {
	board := core.NewBoard()
	fleet, err := g.PlaceFleet(board)
	if err != nil {
		return nil, nil, err
	}
	return board, fleet, nil
}

// PlaceFleet places the standard fleet on board, which must not hold ships yet.
// The board is only modified on success.
func (g *Generator) PlaceFleet(board *core.Board) (*core.Fleet, error) {
	ships, err := g.PlaceShips(board, core.FleetCounts(), nil)
	if err != nil {
		return nil, err
	}
	fleet := core.NewFleet()
	for _, s := range ships {
		fleet.Add(s)
	}
	return fleet, nil
}

// PlaceShips places counts[t] ships of each type around whatever board already
// holds, largest first. Ids are numbered from next[t] so they do not collide
// with ships placed earlier. The board is only modified on success.
func (g *Generator) PlaceShips(board *core.Board, counts map[core.ShipType]int, next map[core.ShipType]int) ([]*core.Ship, error) {
	for restart := 0; restart <= g.config.MaxRestarts; restart++ {
		work := board.Clone()
		ships, ok := g.tryPlaceShips(work, counts, next)
		if ok {
			*board = *work
			return ships, nil
		}
	}
	return nil, fmt.Errorf("%w after %d restarts", ErrPlacementFailed, g.config.MaxRestarts)
}

func (g *Generator) tryPlaceShips(b *core.Board, counts map[core.ShipType]int, next map[core.ShipType]int) ([]*core.Ship, bool) {
	var ships []*core.Ship

	for _, t := range core.AllShipTypes {
		for i := 0; i < counts[t]; i++ {
			placement, ok := g.findPlacement(b, t.Size())
			if !ok {
				return nil, false
			}

			ship := core.NewShip(core.ShipID(g.config.Owner, t, next[t]+i), t, placement.Origin, placement.Orientation)
			b.PlaceShip(ship)
			ships = append(ships, ship)
		}
	}

	return ships, true
}

// Placement is a candidate origin and orientation for one ship
type Placement struct {
	Origin      core.Coordinate
	Orientation core.Orientation
}

func (g *Generator) findPlacement(b *core.Board, size int) (Placement, bool) {
	for attempts := 0; attempts < g.config.MaxAttemptsPerShip; attempts++ {
		o := core.Horizontal
		if g.rng.Intn(2) == 1 {
			o = core.Vertical
		}
		origin := core.NewCoordinate(g.rng.Intn(core.BoardSize), g.rng.Intn(core.BoardSize))

		if core.CanPlace(b, origin, size, o) {
			return Placement{Origin: origin, Orientation: o}, true
		}
	}

	// Fallback: pick uniformly among every legal spot left
	candidates := LegalPlacements(b, size)
	if len(candidates) == 0 {
		return Placement{}, false
	}
	return candidates[g.rng.Intn(len(candidates))], true
}

// LegalPlacements lists every legal placement of a ship of the given size, in
// row-major order with horizontal before vertical at each origin.
func LegalPlacements(b *core.Board, size int) []Placement {
	var out []Placement
	for idx := 0; idx < core.BoardSize*core.BoardSize; idx++ {
		origin := core.FromIndex(idx)
		for _, o := range []core.Orientation{core.Horizontal, core.Vertical} {
			if size == 1 && o == core.Vertical {
				continue // same footprint as horizontal
			}
			if core.CanPlace(b, origin, size, o) {
				out = append(out, Placement{Origin: origin, Orientation: o})
			}
		}
	}
	return out
}
