package game

import (
	"time"

	"github.com/mitchelldurbincs/battleship/internal/game/core"
)

// Score values
const (
	HitPoints          = 10
	SinkPointsPerCell  = 20
	OpponentHitPenalty = 20
)

// timeBonuses are checked in order; the first bound the elapsed time is under wins
var timeBonuses = []struct {
	under time.Duration
	bonus int
}{
	{60 * time.Second, 500},
	{120 * time.Second, 300},
	{180 * time.Second, 200},
	{240 * time.Second, 100},
}

const slowBonus = 50

// ShotScore is the score change for a shot fired by the player.
// The sinking shot pays size×20 in place of the hit reward.
func ShotScore(shot core.ShotResult) int {
	switch shot.Outcome {
	case core.OutcomeHitAndSunk:
		return shot.ShipSize * SinkPointsPerCell
	case core.OutcomeHit:
		return HitPoints
	default:
		return 0
	}
}

// OpponentShotScore is the score change for a shot fired at the player
func OpponentShotScore(shot core.ShotResult) int {
	if shot.Outcome.IsHit() {
		return -OpponentHitPenalty
	}
	return 0
}

// TimeBonus is the one-time reward for winning after elapsed time of play
func TimeBonus(elapsed time.Duration) int {
	for _, tb := range timeBonuses {
		if elapsed < tb.under {
			return tb.bonus
		}
	}
	return slowBonus
}
