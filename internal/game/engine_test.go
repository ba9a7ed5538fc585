package game

import (
	"testing"
	"time"

	"github.com/mitchelldurbincs/battleship/internal/game/core"
	"github.com/mitchelldurbincs/battleship/internal/game/events"
	"github.com/mitchelldurbincs/battleship/internal/game/fleetgen"
	"github.com/mitchelldurbincs/battleship/internal/game/states"
	"github.com/mitchelldurbincs/battleship/internal/game/targeting"
	"github.com/mitchelldurbincs/battleship/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder keeps every published event in order
type recorder struct {
	events []events.Event
}

func (r *recorder) Publish(e events.Event) { r.events = append(r.events, e) }

func (r *recorder) types() []string {
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type())
	}
	return out
}

func (r *recorder) reset() { r.events = nil }

// scriptedTargeter fires at a fixed list of cells
type scriptedTargeter struct {
	shots    []core.Coordinate
	next     int
	observed []core.ShotResult
}

func (s *scriptedTargeter) NextTarget(*core.Board) core.Coordinate {
	c := s.shots[s.next%len(s.shots)]
	s.next++
	return c
}

func (s *scriptedTargeter) Observe(shot core.ShotResult, _ *core.Board) {
	s.observed = append(s.observed, shot)
}

func (s *scriptedTargeter) State() targeting.State { return targeting.NewState() }

func (s *scriptedTargeter) Reset() { s.next = 0 }

// emptyCells are the rows StandardLayout leaves free, in reading order
func emptyCells() []core.Coordinate {
	var out []core.Coordinate
	for r := 6; r < core.BoardSize; r++ {
		for c := 0; c < core.BoardSize; c++ {
			out = append(out, core.NewCoordinate(r, c))
		}
	}
	return out
}

type testGame struct {
	engine   *Engine
	clock    *testutil.FakeClock
	events   *recorder
	opponent *scriptedTargeter
}

func newTestGame(t *testing.T, opponentShots []core.Coordinate) *testGame {
	t.Helper()
	if opponentShots == nil {
		opponentShots = emptyCells()
	}

	tg := &testGame{
		clock:    testutil.NewFakeClock(),
		events:   &recorder{},
		opponent: &scriptedTargeter{shots: opponentShots},
	}

	e, err := NewEngine(EngineConfig{
		GameID:        "test-game",
		Username:      "alice",
		OpponentName:  "Ferris",
		Rng:           testutil.NewTestRNG(12345),
		Logger:        testutil.NopLogger(),
		Publisher:     tg.events,
		Clock:         tg.clock.Now,
		OpponentFleet: testutil.NewFixedFleet(OpponentOwner),
		Targeter:      tg.opponent,
	})
	require.NoError(t, err)
	tg.engine = e
	return tg
}

func (tg *testGame) placeFleet(t *testing.T) {
	t.Helper()
	for _, p := range testutil.StandardLayout {
		require.NoError(t, tg.engine.PlaceShip(p.Type, p.Origin, p.Orientation))
	}
	require.Equal(t, states.PhasePlaying, tg.engine.Phase())
}

func TestNewEngine(t *testing.T) {
	tg := newTestGame(t, nil)
	e := tg.engine

	assert.Equal(t, "test-game", e.GameID())
	assert.Equal(t, "alice", e.Username())
	assert.Equal(t, states.PhaseSetup, e.Phase())
	assert.Equal(t, core.SidePlayer, e.Turn())
	assert.Equal(t, 0, e.Score())
	assert.Equal(t, msgPlaceShips, e.Message())
	assert.Equal(t, core.SideNone, e.Winner())
	assert.Equal(t, time.Duration(0), e.Elapsed())

	view := e.View()
	assert.Equal(t, 10, view.RemainingTotal())
	assert.Equal(t, 0, view.PlayerBoard.CountStatus(core.CellShip))
	assert.Equal(t, 0, view.OpponentBoard.CountStatus(core.CellShip), "opponent ships are hidden")
	assert.Len(t, view.OpponentFleet, 10)

	assert.Equal(t, []string{events.TypeGameStarted}, tg.events.types())
}

func TestNewEngine_Defaults(t *testing.T) {
	e, err := NewEngine(EngineConfig{Logger: testutil.NopLogger(), Rng: testutil.NewTestRNG(1)})
	require.NoError(t, err)

	assert.NotEmpty(t, e.GameID())
	assert.Equal(t, "Ferris", e.View().OpponentName)
	assert.NoError(t, fleetgen.Validate(e.opponentBoard, e.opponentFleet))
	assert.Equal(t, OpponentOwner+"-battleship-0", e.opponentFleet.Ships[0].ID)
}

func TestPlaceShip_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		setup   []testutil.ShipPlacement
		place   testutil.ShipPlacement
		wantErr error
		wantMsg string
	}{
		{
			name:    "too wide",
			place:   testutil.ShipPlacement{Type: core.Battleship, Origin: core.NewCoordinate(0, 7), Orientation: core.Horizontal},
			wantErr: core.ErrOutOfBounds,
			wantMsg: "Ship is too wide! Cannot place Battleship horizontally here.",
		},
		{
			name:    "too tall",
			place:   testutil.ShipPlacement{Type: core.Cruiser, Origin: core.NewCoordinate(8, 0), Orientation: core.Vertical},
			wantErr: core.ErrOutOfBounds,
			wantMsg: "Ship is too tall! Cannot place Cruiser vertically here.",
		},
		{
			name:    "diagonal neighbor",
			setup:   []testutil.ShipPlacement{{Type: core.Submarine, Origin: core.NewCoordinate(0, 0), Orientation: core.Horizontal}},
			place:   testutil.ShipPlacement{Type: core.Submarine, Origin: core.NewCoordinate(1, 1), Orientation: core.Horizontal},
			wantErr: core.ErrOverlapOrAdjacent,
			wantMsg: "Cannot place ship here. It might overlap with another ship or be too close.",
		},
		{
			name:    "overlap",
			setup:   []testutil.ShipPlacement{{Type: core.Battleship, Origin: core.NewCoordinate(3, 3), Orientation: core.Vertical}},
			place:   testutil.ShipPlacement{Type: core.Cruiser, Origin: core.NewCoordinate(4, 2), Orientation: core.Horizontal},
			wantErr: core.ErrOverlapOrAdjacent,
		},
		{
			name:    "type exhausted",
			setup:   []testutil.ShipPlacement{{Type: core.Battleship, Origin: core.NewCoordinate(0, 0), Orientation: core.Horizontal}},
			place:   testutil.ShipPlacement{Type: core.Battleship, Origin: core.NewCoordinate(5, 0), Orientation: core.Horizontal},
			wantErr: ErrAlreadyFullyPlaced,
			wantMsg: "All your Battleship ships are already on the board.",
		},
		{
			name:    "unknown type",
			place:   testutil.ShipPlacement{Type: core.ShipType(42), Origin: core.NewCoordinate(5, 5), Orientation: core.Horizontal},
			wantErr: core.ErrUnknownShipType,
			wantMsg: "First select a ship to place.",
		},
		{
			name:    "unknown orientation",
			place:   testutil.ShipPlacement{Type: core.Destroyer, Origin: core.NewCoordinate(5, 5), Orientation: core.Orientation(9)},
			wantErr: core.ErrUnknownOrientation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tg := newTestGame(t, nil)
			e := tg.engine
			for _, p := range tt.setup {
				require.NoError(t, e.PlaceShip(p.Type, p.Origin, p.Orientation))
			}
			cellsBefore := e.playerBoard.CountStatus(core.CellShip)
			placedBefore := e.playerFleet.Len()
			tg.events.reset()

			err := e.PlaceShip(tt.place.Type, tt.place.Origin, tt.place.Orientation)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			var perr *PlacementError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.place.Origin, perr.Origin)

			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, e.Message())
			}
			assert.Equal(t, cellsBefore, e.playerBoard.CountStatus(core.CellShip), "board untouched")
			assert.Equal(t, placedBefore, e.playerFleet.Len())
			assert.Equal(t, states.PhaseSetup, e.Phase())
			assert.Equal(t, []string{events.TypePlacementRejected}, tg.events.types())
		})
	}
}

func TestPlaceShip_FullFleetStartsGame(t *testing.T) {
	tg := newTestGame(t, nil)
	e := tg.engine

	require.NoError(t, e.PlaceShip(core.Battleship, core.NewCoordinate(0, 0), core.Horizontal))
	assert.Equal(t, "Battleship placed at A1. 9 ships left to place.", e.Message())
	assert.Equal(t, 0, e.View().Remaining[core.Battleship])
	assert.Equal(t, 2, e.View().Remaining[core.Cruiser])

	for _, p := range testutil.StandardLayout[1:] {
		require.Equal(t, states.PhaseSetup, e.Phase())
		require.NoError(t, e.PlaceShip(p.Type, p.Origin, p.Orientation))
	}

	assert.Equal(t, states.PhasePlaying, e.Phase())
	assert.Equal(t, core.SidePlayer, e.Turn())
	assert.Equal(t, "Your turn! Choose a cell on Ferris's grid to fire.", e.Message())
	assert.Equal(t, 20, e.playerBoard.CountStatus(core.CellShip))
	assert.NotNil(t, e.playerFleet.ByID("player-submarine-3"))

	assert.Contains(t, tg.events.types(), events.TypeStateTransition)
	assert.Contains(t, tg.events.types(), events.TypeTurnChanged)

	// The clock starts with play, not with the session
	tg.clock.Advance(42 * time.Second)
	assert.Equal(t, 42*time.Second, e.Elapsed())
	assert.Equal(t, "00:42", e.View().ElapsedLabel())

	err := e.PlaceShip(core.Submarine, core.NewCoordinate(9, 9), core.Horizontal)
	assert.ErrorIs(t, err, ErrWrongPhase)
}

func TestAutoPlace(t *testing.T) {
	tg := newTestGame(t, nil)
	e := tg.engine

	require.NoError(t, e.PlaceShip(core.Battleship, core.NewCoordinate(0, 0), core.Horizontal))
	require.NoError(t, e.PlaceShip(core.Submarine, core.NewCoordinate(9, 9), core.Horizontal))
	require.NoError(t, e.AutoPlace())

	assert.Equal(t, states.PhasePlaying, e.Phase())
	assert.Equal(t, 10, e.playerFleet.Len())
	assert.NoError(t, fleetgen.Validate(e.playerBoard, e.playerFleet))
	assert.NotNil(t, e.playerFleet.ByID("player-submarine-0"))
	assert.NotNil(t, e.playerFleet.ByID("player-submarine-3"))
	assert.Equal(t, 0, e.View().RemainingTotal())

	assert.ErrorIs(t, e.AutoPlace(), ErrWrongPhase)
}

func TestFire_BeforePlay(t *testing.T) {
	tg := newTestGame(t, nil)

	_, err := tg.engine.Fire(core.NewCoordinate(0, 0))
	assert.ErrorIs(t, err, ErrWrongPhase)

	_, err = tg.engine.OpponentTurn()
	assert.ErrorIs(t, err, ErrWrongPhase)
}

func TestFire_ScoringAndTurns(t *testing.T) {
	playerShipCell := testutil.StandardLayout[0].Origin
	tg := newTestGame(t, []core.Coordinate{core.NewCoordinate(9, 9), playerShipCell})
	tg.placeFleet(t)
	e := tg.engine
	tg.events.reset()

	// Submarine at D5 sinks in one shot: 1 x 20
	res, err := e.Fire(core.NewCoordinate(4, 3))
	require.NoError(t, err)
	assert.Equal(t, core.OutcomeHitAndSunk, res.Shot.Outcome)
	assert.Equal(t, 20, res.ScoreDelta)
	assert.Equal(t, 20, e.Score())
	assert.Equal(t, "You sank Ferris's Submarine!", res.Message)
	assert.Equal(t, core.SideOpponent, e.Turn())
	assert.Equal(t, []string{
		events.TypeShotFired,
		events.TypeShipSunk,
		events.TypeScoreChanged,
		events.TypeTurnChanged,
	}, tg.events.types())

	// The percentage is taken before the sink is counted
	assert.Equal(t, GameResult{ShipsSunk: 1, TotalShots: 1, HitPercentage: 0}, e.Result())

	_, err = e.Fire(core.NewCoordinate(4, 5))
	assert.ErrorIs(t, err, ErrNotYourTurn)

	res, err = e.OpponentTurn()
	require.NoError(t, err)
	assert.Equal(t, core.SideOpponent, res.Side)
	assert.Equal(t, core.OutcomeMiss, res.Shot.Outcome)
	assert.Equal(t, 0, res.ScoreDelta)
	assert.Equal(t, "Ferris missed at position J10. Your turn!", res.Message)
	assert.Equal(t, core.SidePlayer, e.Turn())

	_, err = e.OpponentTurn()
	assert.ErrorIs(t, err, ErrNotYourTurn)

	// Battleship hit: 10
	res, err = e.Fire(core.NewCoordinate(0, 0))
	require.NoError(t, err)
	assert.Equal(t, core.OutcomeHit, res.Shot.Outcome)
	assert.Equal(t, 10, res.ScoreDelta)
	assert.Equal(t, "Hit at A1! Wait for Ferris's turn.", res.Message)
	assert.Equal(t, 30, e.Score())
	assert.Equal(t, GameResult{ShipsSunk: 1, TotalShots: 2, HitPercentage: 50}, e.Result())

	// Opponent hit costs 20
	res, err = e.OpponentTurn()
	require.NoError(t, err)
	assert.Equal(t, core.OutcomeHit, res.Shot.Outcome)
	assert.Equal(t, -20, res.ScoreDelta)
	assert.Equal(t, "Ferris hit your ship at position A1!", res.Message)
	assert.Equal(t, 10, e.Score())
	require.Len(t, tg.opponent.observed, 2)
	assert.Equal(t, core.OutcomeHit, tg.opponent.observed[1].Outcome)

	// Cruiser at F1-H1: 10 + 10 + 3 x 20
	cruiser := []core.Coordinate{core.NewCoordinate(0, 5), core.NewCoordinate(0, 6), core.NewCoordinate(0, 7)}
	deltas := []int{}
	for _, c := range cruiser {
		require.Equal(t, core.SidePlayer, e.Turn())
		res, err := e.Fire(c)
		require.NoError(t, err)
		deltas = append(deltas, res.ScoreDelta)
		_, err = e.OpponentTurn()
		require.NoError(t, err)
	}
	assert.Equal(t, []int{10, 10, 60}, deltas)
}

func TestFire_AlreadyTargeted(t *testing.T) {
	tg := newTestGame(t, nil)
	tg.placeFleet(t)
	e := tg.engine

	_, err := e.Fire(core.NewCoordinate(9, 9))
	require.NoError(t, err)
	_, err = e.OpponentTurn()
	require.NoError(t, err)

	score, result := e.Score(), e.Result()
	tg.events.reset()

	res, err := e.Fire(core.NewCoordinate(9, 9))
	require.NoError(t, err)
	assert.Equal(t, core.OutcomeAlreadyTargeted, res.Shot.Outcome)
	assert.Equal(t, "You already fired at this position. Choose another.", res.Message)
	assert.Equal(t, core.SidePlayer, e.Turn(), "the turn stays with the player")
	assert.Equal(t, score, e.Score())
	assert.Equal(t, result, e.Result())
	assert.Empty(t, tg.events.events)
}

func TestFire_InvalidCoordinate(t *testing.T) {
	tg := newTestGame(t, nil)
	tg.placeFleet(t)

	_, err := tg.engine.Fire(core.NewCoordinate(10, 0))
	assert.ErrorIs(t, err, core.ErrInvalidCoordinates)
	assert.Equal(t, core.SidePlayer, tg.engine.Turn())
}

func TestOpponentTurn_RepeatedCellHandsTurnBack(t *testing.T) {
	tg := newTestGame(t, []core.Coordinate{core.NewCoordinate(9, 9)})
	tg.placeFleet(t)
	e := tg.engine

	_, err := e.Fire(core.NewCoordinate(9, 9))
	require.NoError(t, err)
	_, err = e.OpponentTurn()
	require.NoError(t, err)
	_, err = e.Fire(core.NewCoordinate(9, 8))
	require.NoError(t, err)

	res, err := e.OpponentTurn()
	require.NoError(t, err)
	assert.Equal(t, core.OutcomeAlreadyTargeted, res.Shot.Outcome)
	assert.Equal(t, core.SidePlayer, e.Turn())
	assert.Len(t, tg.opponent.observed, 1, "uncommitted shots are not observed")
}

func TestPlayerWins(t *testing.T) {
	tg := newTestGame(t, nil)
	tg.placeFleet(t)
	e := tg.engine

	targets := testutil.ShipCells(testutil.StandardLayout)
	require.Len(t, targets, 20)

	var last FireResult
	for i, c := range targets {
		tg.clock.Advance(2 * time.Second)
		res, err := e.Fire(c)
		require.NoError(t, err)
		require.True(t, res.Shot.Outcome.IsHit(), "shot %d at %s", i, c.Label())
		last = res
		if res.GameOver {
			break
		}
		_, err = e.OpponentTurn()
		require.NoError(t, err)
	}

	require.True(t, last.GameOver)
	assert.Equal(t, core.SidePlayer, last.Winner)
	assert.Equal(t, 500, last.TimeBonus, "40 seconds of play")
	assert.Equal(t, "Congratulations! You won with a time bonus of 500 points!", last.Message)

	// 110 battleship + 160 cruisers + 150 destroyers + 80 submarines + bonus
	assert.Equal(t, 1000, e.Score())
	assert.Equal(t, GameResult{ShipsSunk: 10, TotalShots: 20, HitPercentage: 50, Winner: true}, e.Result())

	assert.Equal(t, states.PhaseGameOver, e.Phase())
	assert.True(t, e.IsGameOver())
	assert.Equal(t, core.SidePlayer, e.Winner())
	assert.Equal(t, core.SideNone, e.Turn())

	tg.clock.Advance(time.Minute)
	assert.Equal(t, 40*time.Second, e.Elapsed(), "elapsed freezes at game over")

	_, err := e.Fire(core.NewCoordinate(9, 9))
	assert.ErrorIs(t, err, ErrWrongPhase)

	ended, ok := tg.events.events[len(tg.events.events)-1].(*events.GameEndedEvent)
	require.True(t, ok)
	assert.Equal(t, core.SidePlayer, ended.Winner)
	assert.Equal(t, 1000, ended.Score)

	history := e.History()
	require.Len(t, history, 2)
	assert.Equal(t, states.PhaseGameOver, history[1].To)
}

func TestOpponentWins(t *testing.T) {
	tg := newTestGame(t, testutil.ShipCells(testutil.StandardLayout))
	tg.placeFleet(t)
	e := tg.engine

	misses := emptyCells()
	var last FireResult
	for i := 0; i < 20; i++ {
		tg.clock.Advance(30 * time.Second)
		_, err := e.Fire(misses[i])
		require.NoError(t, err)

		last, err = e.OpponentTurn()
		require.NoError(t, err)
		if last.GameOver {
			break
		}
	}

	require.True(t, last.GameOver)
	assert.Equal(t, core.SideOpponent, last.Winner)
	assert.Equal(t, 0, last.TimeBonus)
	assert.Equal(t, "Game over! Ferris won.", last.Message)
	assert.Equal(t, -400, e.Score())
	assert.Equal(t, GameResult{ShipsSunk: 0, TotalShots: 20, HitPercentage: 0, Winner: false}, e.Result())
	assert.Equal(t, core.SideOpponent, e.Winner())
}

func TestTimeBonusThroughEngine(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		want    int
	}{
		{"fast", 59 * time.Second, 500},
		{"two minutes", 119 * time.Second, 300},
		{"three minutes", 179 * time.Second, 200},
		{"four minutes", 239 * time.Second, 100},
		{"slow", 10 * time.Minute, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tg := newTestGame(t, nil)
			tg.placeFleet(t)
			e := tg.engine

			targets := testutil.ShipCells(testutil.StandardLayout)
			for i, c := range targets {
				if i == len(targets)-1 {
					tg.clock.Advance(tt.elapsed)
				}
				res, err := e.Fire(c)
				require.NoError(t, err)
				if res.GameOver {
					assert.Equal(t, tt.want, res.TimeBonus)
					return
				}
				_, err = e.OpponentTurn()
				require.NoError(t, err)
			}
			t.Fatal("game did not end")
		})
	}
}

func TestView(t *testing.T) {
	tg := newTestGame(t, nil)
	tg.placeFleet(t)
	e := tg.engine

	_, err := e.Fire(core.NewCoordinate(0, 0))
	require.NoError(t, err)

	view := e.View()
	assert.Equal(t, states.PhasePlaying, view.Phase)
	assert.Equal(t, core.SideOpponent, view.Turn)
	assert.Equal(t, 0, view.OpponentBoard.CountStatus(core.CellShip))
	assert.Equal(t, core.CellHit, view.OpponentBoard.Status(core.NewCoordinate(0, 0)))
	assert.Equal(t, 20, view.PlayerBoard.CountStatus(core.CellShip))

	require.Equal(t, core.Battleship, view.OpponentFleet[0].Type)
	assert.Zero(t, view.OpponentFleet[0].Hits, "hits on unsunk opponent ships are hidden")
	assert.Equal(t, 0, view.PlayerFleet[0].Hits)

	// Views are copies
	view.PlayerBoard.Cells[9][9].Status = core.CellHit
	view.Remaining[core.Battleship] = 7
	assert.Equal(t, core.CellEmpty, e.playerBoard.Status(core.NewCoordinate(9, 9)))
	assert.Equal(t, 0, e.View().Remaining[core.Battleship])
}

func TestReset(t *testing.T) {
	tg := newTestGame(t, nil)
	tg.placeFleet(t)
	e := tg.engine

	_, err := e.Fire(core.NewCoordinate(0, 0))
	require.NoError(t, err)
	_, err = e.OpponentTurn()
	require.NoError(t, err)
	tg.events.reset()

	require.NoError(t, e.Reset())

	assert.Equal(t, states.PhaseSetup, e.Phase())
	assert.Equal(t, core.SidePlayer, e.Turn())
	assert.Equal(t, 0, e.Score())
	assert.Equal(t, GameResult{}, e.Result())
	assert.Equal(t, msgPlaceShips, e.Message())
	assert.Equal(t, time.Duration(0), e.Elapsed())
	assert.Equal(t, 10, e.View().RemainingTotal())
	assert.Equal(t, 0, e.playerBoard.CountStatus(core.CellShip))
	assert.Equal(t, 0, e.opponentBoard.CountStatus(core.CellHit))
	assert.Equal(t, 0, tg.opponent.next)
	assert.Len(t, e.History(), 1)
	assert.Contains(t, tg.events.types(), events.TypeGameStarted)

	// A reset session can be played again
	tg.placeFleet(t)
	_, err = e.Fire(core.NewCoordinate(4, 3))
	require.NoError(t, err)
	assert.Equal(t, 20, e.Score())
}

func TestRenderBoard(t *testing.T) {
	board, fleet := testutil.BuildLayout(PlayerOwner, testutil.StandardLayout)
	_, err := core.ResolveShot(board, fleet, core.NewCoordinate(0, 0))
	require.NoError(t, err)
	_, err = core.ResolveShot(board, fleet, core.NewCoordinate(9, 9))
	require.NoError(t, err)

	out := RenderBoard(board, RenderOptions{RevealShips: true})
	lines := splitLines(out)
	require.Len(t, lines, 11)
	assert.Equal(t, "    A B C D E F G H I J", lines[0])
	assert.Equal(t, " 1  X ■ ■ ■ · ■ ■ ■ · ·", lines[1])
	assert.Equal(t, "10  · · · · · · · · · o", lines[10])

	hidden := splitLines(RenderBoard(board, RenderOptions{}))
	assert.Equal(t, " 1  X · · · · · · · · ·", hidden[1])

	colored := RenderBoard(board, RenderOptions{Color: true})
	assert.Contains(t, colored, ColorRed+HitSymbol+ColorReset)
}

func TestRenderView(t *testing.T) {
	tg := newTestGame(t, nil)
	out := RenderView(tg.engine.View(), false)
	assert.Contains(t, out, "Your fleet")
	assert.Contains(t, out, "Ferris's waters")
	assert.Contains(t, out, "Ships to place: 10")
	assert.Contains(t, out, msgPlaceShips)

	tg.placeFleet(t)
	out = RenderView(tg.engine.View(), false)
	assert.Contains(t, out, "Score: 0  Time: 00:00  Shots: 0")
}

func splitLines(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	return out
}
