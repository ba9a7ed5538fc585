package targeting

import (
	"math/rand"
	"testing"

	"github.com/mitchelldurbincs/battleship/internal/game/core"
	"github.com/mitchelldurbincs/battleship/internal/game/fleetgen"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRNG() *rand.Rand {
	return rand.New(rand.NewSource(12345))
}

func hit(r, c int) core.ShotResult {
	return core.ShotResult{Target: core.NewCoordinate(r, c), Outcome: core.OutcomeHit}
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "random", ModeRandom.String())
	assert.Equal(t, "target", ModeTarget.String())
	assert.Equal(t, "unknown(7)", Mode(7).String())
}

func TestNext_RandomPrefersCheckerboard(t *testing.T) {
	board := core.NewBoard()
	rng := newTestRNG()

	for i := 0; i < 50; i++ {
		target, state := Next(NewState(), board, rng)
		assert.True(t, target.IsValid())
		assert.True(t, target.IsCheckerboard(), "random mode must draw from the even parity class while it has cells")
		assert.Equal(t, ModeRandom, state.Mode)
	}

	// Once every even cell is targeted the odd class is used
	for r := 0; r < core.BoardSize; r++ {
		for c := 0; c < core.BoardSize; c++ {
			if (r+c)%2 == 0 {
				board.Cells[r][c].Status = core.CellMiss
			}
		}
	}
	for i := 0; i < 20; i++ {
		target, _ := Next(NewState(), board, rng)
		assert.False(t, target.IsCheckerboard())
		assert.Equal(t, core.CellEmpty, board.Status(target))
	}
}

func TestNext_FullBoardFallsBack(t *testing.T) {
	board := core.NewBoard()
	for r := 0; r < core.BoardSize; r++ {
		for c := 0; c < core.BoardSize; c++ {
			board.Cells[r][c].Status = core.CellMiss
		}
	}

	target, state := Next(NewState(), board, newTestRNG())
	assert.True(t, target.IsValid())
	assert.Equal(t, ModeRandom, state.Mode)
}

func TestObserve_RandomHitSeedsQueue(t *testing.T) {
	board := core.NewBoard()
	board.Cells[5][5].Status = core.CellHit

	state := Observe(NewState(), ModeRandom, hit(5, 5), board, Options{})

	assert.Equal(t, ModeTarget, state.Mode)
	require.NotNil(t, state.LastHit)
	assert.Equal(t, core.NewCoordinate(5, 5), *state.LastHit)
	assert.Equal(t, []core.Coordinate{{Row: 4, Col: 5}, {Row: 6, Col: 5}, {Row: 5, Col: 4}, {Row: 5, Col: 6}}, state.Queue)
}

func TestObserve_FiltersNeighbors(t *testing.T) {
	tests := []struct {
		name   string
		hitAt  core.Coordinate
		misses []core.Coordinate
		want   []core.Coordinate
	}{
		{
			name:  "corner",
			hitAt: core.NewCoordinate(0, 0),
			want:  []core.Coordinate{{Row: 1, Col: 0}, {Row: 0, Col: 1}},
		},
		{
			name:   "edge with a miss",
			hitAt:  core.NewCoordinate(9, 4),
			misses: []core.Coordinate{{Row: 9, Col: 3}},
			want:   []core.Coordinate{{Row: 8, Col: 4}, {Row: 9, Col: 5}},
		},
		{
			name:   "boxed in",
			hitAt:  core.NewCoordinate(0, 9),
			misses: []core.Coordinate{{Row: 1, Col: 9}, {Row: 0, Col: 8}},
			want:   []core.Coordinate{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := core.NewBoard()
			board.Cells[tt.hitAt.Row][tt.hitAt.Col].Status = core.CellHit
			for _, m := range tt.misses {
				board.Cells[m.Row][m.Col].Status = core.CellMiss
			}

			state := Observe(NewState(), ModeRandom, core.ShotResult{Target: tt.hitAt, Outcome: core.OutcomeHit}, board, Options{})
			assert.Equal(t, tt.want, state.Queue)
			if len(tt.want) == 0 {
				assert.Equal(t, ModeRandom, state.Mode)
			} else {
				assert.Equal(t, ModeTarget, state.Mode)
			}
		})
	}
}

func TestNext_DrainsQueueInOrder(t *testing.T) {
	board := core.NewBoard()
	board.Cells[5][5].Status = core.CellHit
	state := Observe(NewState(), ModeRandom, hit(5, 5), board, Options{})
	queued := append([]core.Coordinate{}, state.Queue...)

	rng := newTestRNG()
	for i, want := range queued {
		var target core.Coordinate
		target, state = Next(state, board, rng)
		assert.Equal(t, want, target, "shot %d", i)
		board.Cells[target.Row][target.Col].Status = core.CellMiss

		if i < len(queued)-1 {
			assert.Equal(t, ModeTarget, state.Mode)
		} else {
			assert.Equal(t, ModeRandom, state.Mode, "empty queue reverts to random")
		}
	}
	assert.Empty(t, state.Queue)
}

func TestNext_SkipsStaleQueueEntries(t *testing.T) {
	board := core.NewBoard()
	last := core.NewCoordinate(5, 5)
	state := State{
		Mode:    ModeTarget,
		LastHit: &last,
		Queue:   []core.Coordinate{{Row: 4, Col: 5}, {Row: 6, Col: 5}},
	}
	board.Cells[4][5].Status = core.CellMiss

	target, next := Next(state, board, newTestRNG())
	assert.Equal(t, core.NewCoordinate(6, 5), target)
	assert.Equal(t, ModeRandom, next.Mode)

	// The input state is not mutated
	assert.Len(t, state.Queue, 2)
}

func TestObserve_TargetModeHitKeepsQueue(t *testing.T) {
	board := core.NewBoard()
	board.Cells[5][5].Status = core.CellHit
	state := Observe(NewState(), ModeRandom, hit(5, 5), board, Options{})

	target, state := Next(state, board, newTestRNG())
	require.Equal(t, core.NewCoordinate(4, 5), target)
	board.Cells[4][5].Status = core.CellHit

	after := Observe(state, ModeTarget, hit(4, 5), board, Options{})
	assert.Equal(t, state.Queue, after.Queue, "a second hit does not re-expand the queue")
	assert.Equal(t, core.NewCoordinate(5, 5), *after.LastHit)
}

func TestObserve_FollowUpHits(t *testing.T) {
	board := core.NewBoard()
	board.Cells[5][5].Status = core.CellHit
	opts := Options{FollowUpHits: true}
	state := Observe(NewState(), ModeRandom, hit(5, 5), board, opts)

	target, state := Next(state, board, newTestRNG())
	require.Equal(t, core.NewCoordinate(4, 5), target)
	board.Cells[4][5].Status = core.CellHit

	after := Observe(state, ModeTarget, hit(4, 5), board, opts)
	assert.Equal(t, ModeTarget, after.Mode)
	assert.Equal(t, core.NewCoordinate(4, 5), *after.LastHit)
	assert.Equal(t, []core.Coordinate{
		{Row: 6, Col: 5}, {Row: 5, Col: 4}, {Row: 5, Col: 6},
		{Row: 3, Col: 5}, {Row: 4, Col: 4}, {Row: 4, Col: 6},
	}, after.Queue)
}

func TestObserve_SunkResets(t *testing.T) {
	board := core.NewBoard()
	board.Cells[5][5].Status = core.CellHit
	state := Observe(NewState(), ModeRandom, hit(5, 5), board, Options{})
	require.Equal(t, ModeTarget, state.Mode)

	sunk := core.ShotResult{Target: core.NewCoordinate(4, 5), Outcome: core.OutcomeHitAndSunk}
	after := Observe(state, ModeTarget, sunk, board, Options{})
	assert.Equal(t, NewState(), after)

	// A submarine sunk from random mode never enters target mode
	after = Observe(NewState(), ModeRandom, core.ShotResult{Target: core.NewCoordinate(0, 0), Outcome: core.OutcomeHitAndSunk}, board, Options{})
	assert.Equal(t, ModeRandom, after.Mode)
}

func TestObserve_MissLeavesState(t *testing.T) {
	board := core.NewBoard()
	board.Cells[5][5].Status = core.CellHit
	state := Observe(NewState(), ModeRandom, hit(5, 5), board, Options{})

	miss := core.ShotResult{Target: core.NewCoordinate(4, 5), Outcome: core.OutcomeMiss}
	assert.Equal(t, state, Observe(state, ModeTarget, miss, board, Options{}))
}

func TestStrategy_NeverRepeatsAndFinishesFleet(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		board, fleet, err := fleetgen.NewGenerator(fleetgen.DefaultConfig("player"), rng).GenerateFleet()
		require.NoError(t, err)

		strategy := NewStrategy(Options{}, rng, zerolog.Nop())
		seen := make(map[core.Coordinate]bool)

		for shots := 0; shots < core.BoardSize*core.BoardSize && !fleet.AllSunk(); shots++ {
			target := strategy.NextTarget(board)
			require.False(t, seen[target], "seed %d: %s fired twice", seed, target.Label())
			seen[target] = true

			result, err := core.ResolveShot(board, fleet, target)
			require.NoError(t, err)
			require.True(t, result.Committed())
			strategy.Observe(result, board)
		}

		assert.True(t, fleet.AllSunk(), "seed %d: fleet must be sunk within 100 shots", seed)
	}
}

func TestStrategy_Reset(t *testing.T) {
	board := core.NewBoard()
	board.Cells[5][5].Status = core.CellHit
	strategy := NewStrategy(Options{}, nil, zerolog.Nop())

	strategy.Observe(hit(5, 5), board)
	assert.Equal(t, ModeTarget, strategy.State().Mode)

	snapshot := strategy.State()
	snapshot.Queue[0] = core.NewCoordinate(0, 0)
	assert.Equal(t, core.NewCoordinate(4, 5), strategy.State().Queue[0], "State returns a copy")

	strategy.Reset()
	assert.Equal(t, NewState(), strategy.State())
}
