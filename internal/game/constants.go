package game

import (
	"github.com/mitchelldurbincs/battleship/internal/config"
	"github.com/mitchelldurbincs/battleship/internal/game/fleetgen"
	"github.com/mitchelldurbincs/battleship/internal/game/targeting"
)

// Ship id prefixes of the two sides
const (
	PlayerOwner   = "player"
	OpponentOwner = "computer"
)

// OpponentName is the display name of the computer opponent
func OpponentName() string {
	return config.Get().Game.OpponentName
}

// PlacementConfig returns the fleet generation limits for owner
func PlacementConfig(owner string) fleetgen.Config {
	p := config.Get().Game.Placement
	return fleetgen.Config{
		Owner:              owner,
		MaxAttemptsPerShip: p.MaxAttemptsPerShip,
		MaxRestarts:        p.MaxRestarts,
	}
}

// TargetingOptions returns the opponent strategy settings
func TargetingOptions() targeting.Options {
	return targeting.Options{FollowUpHits: config.Get().Game.Targeting.FollowUpHits}
}
