package game

import (
	"fmt"
	"time"

	"github.com/mitchelldurbincs/battleship/internal/game/core"
	"github.com/mitchelldurbincs/battleship/internal/game/states"
)

// ShipSummary is what a view shows about one ship
type ShipSummary struct {
	ID   string
	Type core.ShipType
	Size int
	Hits int
	Sunk bool
}

// SessionView is a read-only snapshot of a session. Boards are copies; the
// opponent board has its ships hidden.
type SessionView struct {
	GameID        string
	Username      string
	OpponentName  string
	Phase         states.GamePhase
	Turn          core.Side
	PlayerBoard   *core.Board
	OpponentBoard *core.Board
	Remaining     map[core.ShipType]int
	PlayerFleet   []ShipSummary
	OpponentFleet []ShipSummary // hit counts hidden, only sunk ships are known
	Score         int
	Elapsed       time.Duration
	Message       string
	Result        GameResult
	Winner        core.Side
}

// RemainingTotal is the number of ships still to place
func (v SessionView) RemainingTotal() int {
	total := 0
	for _, n := range v.Remaining {
		total += n
	}
	return total
}

// ElapsedLabel formats the elapsed play time as mm:ss
func (v SessionView) ElapsedLabel() string {
	return FormatElapsed(v.Elapsed)
}

// FormatElapsed formats d as mm:ss, truncating to whole seconds
func FormatElapsed(d time.Duration) string {
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

func summarize(f *core.Fleet, hideHits bool) []ShipSummary {
	out := make([]ShipSummary, 0, f.Len())
	for _, s := range f.Ships {
		sum := ShipSummary{ID: s.ID, Type: s.Type, Size: s.Size, Hits: s.Hits, Sunk: s.Sunk}
		if hideHits && !s.Sunk {
			sum.Hits = 0
		}
		out = append(out, sum)
	}
	return out
}
