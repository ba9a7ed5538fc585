package core

import (
	"fmt"
	"strings"
)

// ShipType identifies one of the four hull classes in the fleet
type ShipType int

const (
	Battleship ShipType = iota
	Cruiser
	Destroyer
	Submarine
)

// AllShipTypes lists ship types from largest to smallest
var AllShipTypes = []ShipType{Battleship, Cruiser, Destroyer, Submarine}

// Size returns the number of cells the ship occupies, 0 for an unknown type
func (t ShipType) Size() int {
	switch t {
	case Battleship:
		return 4
	case Cruiser:
		return 3
	case Destroyer:
		return 2
	case Submarine:
		return 1
	default:
		return 0
	}
}

// IsValid reports whether t is one of the known ship types
func (t ShipType) IsValid() bool { return t.Size() > 0 }

// String returns the wire name of the ship type
func (t ShipType) String() string {
	switch t {
	case Battleship:
		return "battleship"
	case Cruiser:
		return "cruiser"
	case Destroyer:
		return "destroyer"
	case Submarine:
		return "submarine"
	default:
		return fmt.Sprintf("unknown(%d)", int(t))
	}
}

// DisplayName returns the capitalized name used in messages
func (t ShipType) DisplayName() string {
	if !t.IsValid() {
		return "ship"
	}
	s := t.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParseShipType converts a wire name to a ShipType
func ParseShipType(s string) (ShipType, error) {
	for _, t := range AllShipTypes {
		if strings.EqualFold(strings.TrimSpace(s), t.String()) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownShipType, s)
}

// FleetEntry is one line of the fleet composition
type FleetEntry struct {
	Type  ShipType
	Count int
}

// StandardFleet is the required fleet, in placement order
var StandardFleet = []FleetEntry{
	{Type: Battleship, Count: 1},
	{Type: Cruiser, Count: 2},
	{Type: Destroyer, Count: 3},
	{Type: Submarine, Count: 4},
}

// FleetCounts returns a fresh count-by-type map of the standard fleet
func FleetCounts() map[ShipType]int {
	counts := make(map[ShipType]int, len(StandardFleet))
	for _, e := range StandardFleet {
		counts[e.Type] = e.Count
	}
	return counts
}

// FleetShipCount returns the number of ships in the standard fleet
func FleetShipCount() int {
	n := 0
	for _, e := range StandardFleet {
		n += e.Count
	}
	return n
}

// FleetCellCount returns the number of cells the standard fleet occupies
func FleetCellCount() int {
	n := 0
	for _, e := range StandardFleet {
		n += e.Count * e.Type.Size()
	}
	return n
}

// ShipID builds the identifier for the n-th ship of a type, e.g. "computer-cruiser-1"
func ShipID(owner string, t ShipType, n int) string {
	return fmt.Sprintf("%s-%s-%d", owner, t, n)
}

// Ship is a placed vessel. Hits <= Size; Sunk iff Hits == Size.
type Ship struct {
	ID        string
	Type      ShipType
	Size      int
	Positions []Coordinate
	Hits      int
	Sunk      bool
}

// NewShip creates a ship occupying the footprint at origin
func NewShip(id string, t ShipType, origin Coordinate, o Orientation) *Ship {
	return &Ship{
		ID:        id,
		Type:      t,
		Size:      t.Size(),
		Positions: Footprint(origin, t.Size(), o),
	}
}

// Occupies reports whether c is one of the ship's cells
func (s *Ship) Occupies(c Coordinate) bool {
	for _, p := range s.Positions {
		if p.Equal(c) {
			return true
		}
	}
	return false
}

// registerHit records a hit and returns true when it sinks the ship
func (s *Ship) registerHit() bool {
	if s.Sunk {
		return false
	}
	s.Hits++
	if s.Hits >= s.Size {
		s.Hits = s.Size
		s.Sunk = true
	}
	return s.Sunk
}

// Fleet is the set of ships belonging to one side
type Fleet struct {
	Ships []*Ship
}

// NewFleet returns an empty fleet
func NewFleet() *Fleet {
	return &Fleet{Ships: make([]*Ship, 0, FleetShipCount())}
}

// Add appends a ship to the fleet
func (f *Fleet) Add(s *Ship) {
	f.Ships = append(f.Ships, s)
}

// ByID returns the ship with the given id, nil if none
func (f *Fleet) ByID(id string) *Ship {
	for _, s := range f.Ships {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// Len returns the number of ships
func (f *Fleet) Len() int { return len(f.Ships) }

// CellCount returns the number of cells the fleet occupies
func (f *Fleet) CellCount() int {
	n := 0
	for _, s := range f.Ships {
		n += len(s.Positions)
	}
	return n
}

// AllSunk reports whether every ship is sunk. An empty fleet is never destroyed.
func (f *Fleet) AllSunk() bool {
	if len(f.Ships) == 0 {
		return false
	}
	for _, s := range f.Ships {
		if !s.Sunk {
			return false
		}
	}
	return true
}

// SunkCount returns the number of sunk ships
func (f *Fleet) SunkCount() int {
	n := 0
	for _, s := range f.Ships {
		if s.Sunk {
			n++
		}
	}
	return n
}

// CountByType returns how many ships of each type the fleet holds
func (f *Fleet) CountByType() map[ShipType]int {
	counts := make(map[ShipType]int, len(AllShipTypes))
	for _, s := range f.Ships {
		counts[s.Type]++
	}
	return counts
}

// Clone returns a deep copy of the fleet
func (f *Fleet) Clone() *Fleet {
	cp := &Fleet{Ships: make([]*Ship, len(f.Ships))}
	for i, s := range f.Ships {
		ship := *s
		ship.Positions = append([]Coordinate(nil), s.Positions...)
		cp.Ships[i] = &ship
	}
	return cp
}
