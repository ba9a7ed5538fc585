package core

import (
	"fmt"
	"strings"
)

// Orientation is the direction a ship extends from its origin.
// Horizontal ships extend along columns, vertical ones along rows.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return fmt.Sprintf("unknown(%d)", int(o))
	}
}

// ParseOrientation accepts "horizontal"/"h" and "vertical"/"v"
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "horizontal", "h":
		return Horizontal, nil
	case "vertical", "v":
		return Vertical, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownOrientation, s)
	}
}

// Footprint returns the cells a ship of the given size covers from origin
func Footprint(origin Coordinate, size int, o Orientation) []Coordinate {
	cells := make([]Coordinate, size)
	for i := 0; i < size; i++ {
		if o == Horizontal {
			cells[i] = Coordinate{Row: origin.Row, Col: origin.Col + i}
		} else {
			cells[i] = Coordinate{Row: origin.Row + i, Col: origin.Col}
		}
	}
	return cells
}

// CheckPlacement reports why a ship cannot go at origin, or nil when it can.
// Every cell in the footprint's bounding box padded by one in all directions
// must be free of ships, so distinct ships never touch, not even diagonally.
func CheckPlacement(b *Board, origin Coordinate, size int, o Orientation) error {
	if size <= 0 || !origin.IsValid() {
		return ErrOutOfBounds
	}
	if o != Horizontal && o != Vertical {
		return ErrUnknownOrientation
	}
	if o == Horizontal && origin.Col+size > BoardSize {
		return ErrOutOfBounds
	}
	if o == Vertical && origin.Row+size > BoardSize {
		return ErrOutOfBounds
	}

	for i := -1; i <= size; i++ {
		for j := -1; j <= 1; j++ {
			check := Coordinate{Row: origin.Row + j, Col: origin.Col + i}
			if o == Vertical {
				check = Coordinate{Row: origin.Row + i, Col: origin.Col + j}
			}
			if check.IsValid() && b.Cells[check.Row][check.Col].Status == CellShip {
				return ErrOverlapOrAdjacent
			}
		}
	}

	return nil
}

// CanPlace checks if a ship of the given size fits at origin without touching another ship
func CanPlace(b *Board, origin Coordinate, size int, o Orientation) bool {
	return CheckPlacement(b, origin, size, o) == nil
}
