package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTwoShipSetup() (*Board, *Fleet) {
	board := NewBoard()
	fleet := NewFleet()

	cruiser := NewShip("computer-cruiser-0", Cruiser, Coordinate{2, 2}, Horizontal)
	sub := NewShip("computer-submarine-0", Submarine, Coordinate{7, 7}, Horizontal)
	for _, s := range []*Ship{cruiser, sub} {
		board.PlaceShip(s)
		fleet.Add(s)
	}
	return board, fleet
}

func TestResolveShot_Miss(t *testing.T) {
	board, fleet := newTwoShipSetup()

	res, err := ResolveShot(board, fleet, Coordinate{0, 0})
	require.NoError(t, err)
	assert.Equal(t, OutcomeMiss, res.Outcome)
	assert.Equal(t, CellMiss, board.Cells[0][0].Status)
	assert.Empty(t, res.ShipID)
	assert.True(t, res.Committed())
}

func TestResolveShot_HitThenSink(t *testing.T) {
	board, fleet := newTwoShipSetup()
	cruiser := fleet.ByID("computer-cruiser-0")

	res, err := ResolveShot(board, fleet, Coordinate{2, 2})
	require.NoError(t, err)
	assert.Equal(t, OutcomeHit, res.Outcome)
	assert.Equal(t, "computer-cruiser-0", res.ShipID)
	assert.Equal(t, Cruiser, res.ShipType)
	assert.Equal(t, 3, res.ShipSize)
	assert.Equal(t, 1, cruiser.Hits)
	assert.False(t, cruiser.Sunk)

	res, err = ResolveShot(board, fleet, Coordinate{2, 3})
	require.NoError(t, err)
	assert.Equal(t, OutcomeHit, res.Outcome)

	res, err = ResolveShot(board, fleet, Coordinate{2, 4})
	require.NoError(t, err)
	assert.Equal(t, OutcomeHitAndSunk, res.Outcome)
	assert.Equal(t, 3, cruiser.Hits)
	assert.True(t, cruiser.Sunk)

	assert.False(t, fleet.AllSunk(), "submarine still afloat")
	assert.Equal(t, 1, fleet.SunkCount())
}

func TestResolveShot_SubmarineSinksInOneShot(t *testing.T) {
	board, fleet := newTwoShipSetup()

	res, err := ResolveShot(board, fleet, Coordinate{7, 7})
	require.NoError(t, err)
	assert.Equal(t, OutcomeHitAndSunk, res.Outcome)
	assert.True(t, fleet.ByID("computer-submarine-0").Sunk)
}

func TestResolveShot_AlreadyTargeted(t *testing.T) {
	board, fleet := newTwoShipSetup()

	_, err := ResolveShot(board, fleet, Coordinate{2, 2})
	require.NoError(t, err)
	_, err = ResolveShot(board, fleet, Coordinate{5, 5})
	require.NoError(t, err)

	boardBefore := *board
	fleetBefore := fleet.Clone()

	for _, c := range []Coordinate{{2, 2}, {5, 5}} {
		res, err := ResolveShot(board, fleet, c)
		require.NoError(t, err)
		assert.Equal(t, OutcomeAlreadyTargeted, res.Outcome)
		assert.False(t, res.Committed())
	}

	assert.Equal(t, boardBefore, *board)
	assert.Equal(t, fleetBefore, fleet)
}

func TestResolveShot_InvalidCoordinates(t *testing.T) {
	board, fleet := newTwoShipSetup()
	before := *board

	_, err := ResolveShot(board, fleet, Coordinate{10, 0})
	assert.ErrorIs(t, err, ErrInvalidCoordinates)
	assert.Equal(t, before, *board)
}

func TestResolveShot_FleetMismatchPanics(t *testing.T) {
	board, _ := newTwoShipSetup()

	assert.Panics(t, func() {
		_, _ = ResolveShot(board, NewFleet(), Coordinate{2, 2})
	})
}

func TestShotOutcome(t *testing.T) {
	assert.Equal(t, "already-targeted", OutcomeAlreadyTargeted.String())
	assert.Equal(t, "miss", OutcomeMiss.String())
	assert.Equal(t, "hit", OutcomeHit.String())
	assert.Equal(t, "hit-and-sunk", OutcomeHitAndSunk.String())

	assert.True(t, OutcomeHit.IsHit())
	assert.True(t, OutcomeHitAndSunk.IsHit())
	assert.False(t, OutcomeMiss.IsHit())
	assert.False(t, OutcomeAlreadyTargeted.IsHit())
}
