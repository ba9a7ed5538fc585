package game

import (
	"fmt"
	"strings"

	"github.com/mitchelldurbincs/battleship/internal/game/core"
)

// ANSI color codes
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorCyan   = "\033[36m"
	ColorGray   = "\033[90m"
)

const (
	WaterSymbol = "·"
	ShipSymbol  = "■"
	HitSymbol   = "X"
	MissSymbol  = "o"
)

// RenderOptions controls terminal rendering
type RenderOptions struct {
	Color       bool // wrap symbols in ANSI colors
	RevealShips bool // draw unhit ship cells
}

// RenderBoard returns a text grid with column letters across the top and
// 1-based row numbers down the side
func RenderBoard(b *core.Board, opts RenderOptions) string {
	var sb strings.Builder
	sb.Grow((core.BoardSize*12 + 6) * (core.BoardSize + 1))

	sb.WriteString("   ")
	for c := 0; c < core.BoardSize; c++ {
		sb.WriteByte(' ')
		sb.WriteByte(byte('A' + c))
	}
	sb.WriteByte('\n')

	for r := 0; r < core.BoardSize; r++ {
		fmt.Fprintf(&sb, "%2d ", r+1)
		for c := 0; c < core.BoardSize; c++ {
			sb.WriteByte(' ')
			writeCell(&sb, b.Cells[r][c].Status, opts)
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}

func writeCell(sb *strings.Builder, status core.CellStatus, opts RenderOptions) {
	symbol, color := WaterSymbol, ColorBlue
	switch status {
	case core.CellShip:
		if opts.RevealShips {
			symbol, color = ShipSymbol, ColorGray
		}
	case core.CellHit:
		symbol, color = HitSymbol, ColorRed
	case core.CellMiss:
		symbol, color = MissSymbol, ColorCyan
	}

	if !opts.Color {
		sb.WriteString(symbol)
		return
	}
	sb.WriteString(color)
	sb.WriteString(symbol)
	sb.WriteString(ColorReset)
}

// RenderView draws both boards side by side with the status line underneath
func RenderView(v SessionView, color bool) string {
	own := strings.Split(strings.TrimRight(RenderBoard(v.PlayerBoard, RenderOptions{Color: color, RevealShips: true}), "\n"), "\n")
	enemy := strings.Split(strings.TrimRight(RenderBoard(v.OpponentBoard, RenderOptions{Color: color}), "\n"), "\n")

	// Plain width of one rendered row: 3 for the row label, 2 per cell
	const rowWidth = 3 + 2*core.BoardSize
	const gap = "     "

	var sb strings.Builder
	fmt.Fprintf(&sb, "%-*s%s%s\n", rowWidth, "Your fleet", gap, v.OpponentName+"'s waters")
	for i := range own {
		sb.WriteString(own[i])
		sb.WriteString(gap)
		sb.WriteString(enemy[i])
		sb.WriteByte('\n')
	}

	sb.WriteByte('\n')
	switch {
	case v.Phase.CanPlaceShips():
		fmt.Fprintf(&sb, "Ships to place: %d", v.RemainingTotal())
		for _, t := range core.AllShipTypes {
			if n := v.Remaining[t]; n > 0 {
				fmt.Fprintf(&sb, "  %s x%d", t.DisplayName(), n)
			}
		}
		sb.WriteByte('\n')
	default:
		fmt.Fprintf(&sb, "Score: %d  Time: %s  Shots: %d\n", v.Score, v.ElapsedLabel(), v.Result.TotalShots)
	}

	if v.Message != "" {
		msg := v.Message
		if color {
			msg = ColorYellow + msg + ColorReset
		}
		sb.WriteString(msg)
		sb.WriteByte('\n')
	}

	return sb.String()
}
