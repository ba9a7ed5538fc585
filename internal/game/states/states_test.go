package states

import (
	"testing"
	"time"

	"github.com/mitchelldurbincs/battleship/internal/game/core"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestStateImplementations(t *testing.T) {
	logger := zerolog.New(zerolog.NewConsoleWriter()).Level(zerolog.DebugLevel)

	t.Run("SetupState", func(t *testing.T) {
		state := NewSetupState()
		ctx := NewGameContext("test", logger, nil)

		assert.Equal(t, PhaseSetup, state.Phase())
		assert.NoError(t, state.Enter(ctx))
		assert.NoError(t, state.Exit(ctx))
		assert.NoError(t, state.Validate(ctx))
	})

	t.Run("PlayingState", func(t *testing.T) {
		state := NewPlayingState()
		clock := newFakeClock()
		ctx := NewGameContext("test", logger, clock.Now)

		assert.Equal(t, PhasePlaying, state.Phase())

		ctx.ShipsToPlace = 3
		err := state.Validate(ctx)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "3 ships still to place")

		ctx.ShipsToPlace = 0
		assert.NoError(t, state.Validate(ctx))
		assert.NoError(t, state.Enter(ctx))
		assert.Equal(t, clock.Now(), ctx.StartTime)
		assert.NoError(t, state.Exit(ctx))
	})

	t.Run("GameOverState", func(t *testing.T) {
		state := NewGameOverState()
		clock := newFakeClock()
		ctx := NewGameContext("test", logger, clock.Now)
		ctx.StartTime = clock.Now()
		clock.Advance(time.Minute)

		assert.Equal(t, PhaseGameOver, state.Phase())
		assert.Error(t, state.Validate(ctx))

		ctx.Winner = core.SideOpponent
		assert.NoError(t, state.Validate(ctx))
		assert.NoError(t, state.Enter(ctx))
		assert.Equal(t, clock.Now(), ctx.EndTime)
		assert.NoError(t, state.Exit(ctx))
	})
}
