package game

import "github.com/mitchelldurbincs/battleship/internal/game/core"

// GameResult summarises the player's shooting. It is the payload sent to the
// verification service.
type GameResult struct {
	ShipsSunk     int     `json:"ships_sunk"`
	TotalShots    int     `json:"total_shots"`
	HitPercentage float64 `json:"hit_percentage"`
	Winner        bool    `json:"winner"`
}

// recordPlayerShot tallies one committed player shot. The percentage is
// computed before a sinking shot bumps ShipsSunk, so mid-game it lags by one
// sink until settle runs.
func (r *GameResult) recordPlayerShot(shot core.ShotResult) {
	r.TotalShots++
	r.HitPercentage = percentage(r.ShipsSunk, r.TotalShots)
	if shot.Outcome == core.OutcomeHitAndSunk {
		r.ShipsSunk++
	}
}

// settle fixes the final figures once the game is over
func (r *GameResult) settle(playerWon bool) {
	r.HitPercentage = percentage(r.ShipsSunk, r.TotalShots)
	r.Winner = playerWon
}

func percentage(sunk, shots int) float64 {
	if shots == 0 {
		return 0
	}
	return float64(sunk) / float64(shots) * 100
}
