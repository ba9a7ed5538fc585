package core

import "fmt"

// CellStatus is the state of a single cell.
// Empty -> Ship happens at placement; Ship -> Hit and Empty -> Miss on a shot.
// Hit and Miss are terminal.
type CellStatus int

const (
	CellEmpty CellStatus = iota
	CellShip
	CellHit
	CellMiss
)

func (s CellStatus) String() string {
	switch s {
	case CellEmpty:
		return "empty"
	case CellShip:
		return "ship"
	case CellHit:
		return "hit"
	case CellMiss:
		return "miss"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// Cell represents a single cell on the board.
// ShipID references the occupying ship; it is empty for water.
type Cell struct {
	Pos    Coordinate
	Status CellStatus
	ShipID string
}

// IsTargeted reports whether a shot already landed here.
func (c *Cell) IsTargeted() bool { return c.Status == CellHit || c.Status == CellMiss }

// HasShip reports whether an unhit ship segment occupies the cell.
func (c *Cell) HasShip() bool { return c.Status == CellShip }

// Board is the 10x10 grid for one side, indexed [row][col].
type Board struct {
	Cells [BoardSize][BoardSize]Cell
}

// NewBoard returns a board with every cell empty
func NewBoard() *Board {
	b := &Board{}
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			b.Cells[r][c] = Cell{Pos: Coordinate{Row: r, Col: c}, Status: CellEmpty}
		}
	}
	return b
}

// InBounds checks if coordinates are within board boundaries
func (b *Board) InBounds(c Coordinate) bool {
	return c.IsValid()
}

// Cell safely returns a cell pointer if the coordinate is valid, nil otherwise
func (b *Board) Cell(c Coordinate) *Cell {
	if !c.IsValid() {
		return nil
	}
	return &b.Cells[c.Row][c.Col]
}

// Status returns the status at c, or CellEmpty when c is off the board.
func (b *Board) Status(c Coordinate) CellStatus {
	cell := b.Cell(c)
	if cell == nil {
		return CellEmpty
	}
	return cell.Status
}

// Untargeted returns every cell not yet marked hit or miss, in row-major order
func (b *Board) Untargeted() []Coordinate {
	out := make([]Coordinate, 0, BoardSize*BoardSize)
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			if !b.Cells[r][c].IsTargeted() {
				out = append(out, Coordinate{Row: r, Col: c})
			}
		}
	}
	return out
}

// CountStatus returns how many cells have the given status
func (b *Board) CountStatus(status CellStatus) int {
	n := 0
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			if b.Cells[r][c].Status == status {
				n++
			}
		}
	}
	return n
}

// PlaceShip marks the ship's positions on the board.
// Callers validate with CheckPlacement first.
func (b *Board) PlaceShip(s *Ship) {
	for _, p := range s.Positions {
		cell := &b.Cells[p.Row][p.Col]
		cell.Status = CellShip
		cell.ShipID = s.ID
	}
}

// Clone returns an independent copy of the board
func (b *Board) Clone() *Board {
	cp := *b
	return &cp
}

// Masked returns a copy with unhit ship segments shown as water and ship ids
// removed, which is how the board looks to the other side.
func (b *Board) Masked() *Board {
	cp := b.Clone()
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			cell := &cp.Cells[r][c]
			if cell.Status == CellShip {
				cell.Status = CellEmpty
			}
			cell.ShipID = ""
		}
	}
	return cp
}
