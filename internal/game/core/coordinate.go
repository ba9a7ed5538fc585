package core

import (
	"fmt"
	"strconv"
	"strings"
)

// BoardSize is the width and height of every board.
const BoardSize = 10

// Coordinate represents a cell position on a board
type Coordinate struct {
	Row, Col int
}

// NewCoordinate creates a new coordinate with the given row and column
func NewCoordinate(row, col int) Coordinate {
	return Coordinate{Row: row, Col: col}
}

// FromIndex creates a coordinate from a row-major board index
func FromIndex(idx int) Coordinate {
	return Coordinate{
		Row: idx / BoardSize,
		Col: idx % BoardSize,
	}
}

// IsValid checks if the coordinate is on the board
func (c Coordinate) IsValid() bool {
	return c.Row >= 0 && c.Row < BoardSize && c.Col >= 0 && c.Col < BoardSize
}

// ToIndex converts the coordinate to a row-major board index
func (c Coordinate) ToIndex() int {
	return c.Row*BoardSize + c.Col
}

// IsAdjacentTo checks if this coordinate is orthogonally adjacent to another
func (c Coordinate) IsAdjacentTo(other Coordinate) bool {
	dr := c.Row - other.Row
	dc := c.Col - other.Col

	return (dr == 0 && (dc == 1 || dc == -1)) || (dc == 0 && (dr == 1 || dr == -1))
}

// ChebyshevDistance returns the king-move distance to another coordinate
func (c Coordinate) ChebyshevDistance(other Coordinate) int {
	dr := abs(c.Row - other.Row)
	dc := abs(c.Col - other.Col)
	if dr > dc {
		return dr
	}
	return dc
}

// Neighbors returns the four orthogonal neighbors in up, down, left, right order.
// The order is the follow-up order used by the opponent after a hit.
func (c Coordinate) Neighbors() []Coordinate {
	return []Coordinate{
		{Row: c.Row - 1, Col: c.Col},
		{Row: c.Row + 1, Col: c.Col},
		{Row: c.Row, Col: c.Col - 1},
		{Row: c.Row, Col: c.Col + 1},
	}
}

// ValidNeighbors returns only the neighbors that are on the board
func (c Coordinate) ValidNeighbors() []Coordinate {
	neighbors := c.Neighbors()
	valid := make([]Coordinate, 0, 4)

	for _, n := range neighbors {
		if n.IsValid() {
			valid = append(valid, n)
		}
	}

	return valid
}

// Add returns the sum of this coordinate and another
func (c Coordinate) Add(other Coordinate) Coordinate {
	return Coordinate{
		Row: c.Row + other.Row,
		Col: c.Col + other.Col,
	}
}

// Equal checks if two coordinates are equal
func (c Coordinate) Equal(other Coordinate) bool {
	return c.Row == other.Row && c.Col == other.Col
}

// IsCheckerboard reports whether the cell belongs to the even parity class.
func (c Coordinate) IsCheckerboard() bool {
	return (c.Row+c.Col)%2 == 0
}

// Label returns the human form of the coordinate: column letter then 1-based row ("B3").
func (c Coordinate) Label() string {
	if !c.IsValid() {
		return c.String()
	}
	return fmt.Sprintf("%c%d", 'A'+rune(c.Col), c.Row+1)
}

// String returns a string representation of the coordinate
func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// ParseCoordinate parses a label such as "B3" or "j10".
func ParseCoordinate(s string) (Coordinate, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) < 2 {
		return Coordinate{}, fmt.Errorf("parse coordinate %q: %w", s, ErrInvalidCoordinates)
	}

	col := int(s[0] - 'A')
	row, err := strconv.Atoi(s[1:])
	if err != nil {
		return Coordinate{}, fmt.Errorf("parse coordinate %q: %w", s, ErrInvalidCoordinates)
	}

	c := Coordinate{Row: row - 1, Col: col}
	if !c.IsValid() {
		return Coordinate{}, fmt.Errorf("parse coordinate %q: %w", s, ErrInvalidCoordinates)
	}
	return c, nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
