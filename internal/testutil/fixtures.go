package testutil

import (
	"github.com/mitchelldurbincs/battleship/internal/game/core"
)

// ShipPlacement is one ship of a hand-built layout
type ShipPlacement struct {
	Type        core.ShipType
	Origin      core.Coordinate
	Orientation core.Orientation
}

// StandardLayout is a legal standard fleet packed into the top five rows:
//
//	row 0: battleship A1-D1, cruiser F1-H1
//	row 2: cruiser A3-C3, destroyers E3-F3 and H3-I3
//	row 4: destroyer A5-B5, submarines D5 F5 H5 J5
var StandardLayout = []ShipPlacement{
	{core.Battleship, core.Coordinate{Row: 0, Col: 0}, core.Horizontal},
	{core.Cruiser, core.Coordinate{Row: 0, Col: 5}, core.Horizontal},
	{core.Cruiser, core.Coordinate{Row: 2, Col: 0}, core.Horizontal},
	{core.Destroyer, core.Coordinate{Row: 2, Col: 4}, core.Horizontal},
	{core.Destroyer, core.Coordinate{Row: 2, Col: 7}, core.Horizontal},
	{core.Destroyer, core.Coordinate{Row: 4, Col: 0}, core.Horizontal},
	{core.Submarine, core.Coordinate{Row: 4, Col: 3}, core.Horizontal},
	{core.Submarine, core.Coordinate{Row: 4, Col: 5}, core.Horizontal},
	{core.Submarine, core.Coordinate{Row: 4, Col: 7}, core.Horizontal},
	{core.Submarine, core.Coordinate{Row: 4, Col: 9}, core.Horizontal},
}

// BuildLayout places layout on a fresh board with ids owner-type-n
func BuildLayout(owner string, layout []ShipPlacement) (*core.Board, *core.Fleet) {
	board := core.NewBoard()
	fleet := core.NewFleet()
	counts := make(map[core.ShipType]int)
	for _, p := range layout {
		ship := core.NewShip(core.ShipID(owner, p.Type, counts[p.Type]), p.Type, p.Origin, p.Orientation)
		counts[p.Type]++
		board.PlaceShip(ship)
		fleet.Add(ship)
	}
	return board, fleet
}

// ShipCells lists every cell of layout, ships in layout order
func ShipCells(layout []ShipPlacement) []core.Coordinate {
	var cells []core.Coordinate
	for _, p := range layout {
		cells = append(cells, core.Footprint(p.Origin, p.Type.Size(), p.Orientation)...)
	}
	return cells
}

// FixedFleet hands out fresh copies of the same layout, standing in for the
// random generator wherever a test needs to know where the ships are
type FixedFleet struct {
	Owner  string
	Layout []ShipPlacement
}

// NewFixedFleet returns a source of StandardLayout fleets
func NewFixedFleet(owner string) *FixedFleet {
	return &FixedFleet{Owner: owner, Layout: StandardLayout}
}

// GenerateFleet builds the layout
func (f *FixedFleet) GenerateFleet() (*core.Board, *core.Fleet, error) {
	board, fleet := BuildLayout(f.Owner, f.Layout)
	return board, fleet, nil
}
