package rules

import (
	"testing"

	"github.com/mitchelldurbincs/battleship/internal/game/core"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func fleetOf(sunk ...bool) *core.Fleet {
	f := core.NewFleet()
	for i, s := range sunk {
		ship := core.NewShip(core.ShipID("x", core.Submarine, i), core.Submarine, core.NewCoordinate(0, i*2), core.Horizontal)
		ship.Sunk = s
		if s {
			ship.Hits = ship.Size
		}
		f.Add(ship)
	}
	return f
}

func TestCheckGameOver(t *testing.T) {
	checker := NewWinConditionChecker(zerolog.Nop())

	tests := []struct {
		name     string
		player   *core.Fleet
		opponent *core.Fleet
		wantOver bool
		winner   core.Side
	}{
		{"both afloat", fleetOf(false, true), fleetOf(true, false), false, core.SideNone},
		{"opponent destroyed", fleetOf(false, false), fleetOf(true, true), true, core.SidePlayer},
		{"player destroyed", fleetOf(true, true), fleetOf(false, true), true, core.SideOpponent},
		{"empty fleets never finish", core.NewFleet(), core.NewFleet(), false, core.SideNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			over, winner := checker.CheckGameOver(tt.player, tt.opponent)
			assert.Equal(t, tt.wantOver, over)
			assert.Equal(t, tt.winner, winner)
		})
	}
}

func TestSide(t *testing.T) {
	assert.Equal(t, core.SideOpponent, core.SidePlayer.Other())
	assert.Equal(t, core.SidePlayer, core.SideOpponent.Other())
	assert.Equal(t, core.SideNone, core.SideNone.Other())
	assert.Equal(t, "player", core.SidePlayer.String())
}
