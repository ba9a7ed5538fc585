package targeting

import (
	"math/rand"
	"time"

	"github.com/mitchelldurbincs/battleship/internal/game/core"
	"github.com/rs/zerolog"
)

// Targeter chooses where the opponent fires next
type Targeter interface {
	// NextTarget picks a cell on the board being attacked
	NextTarget(b *core.Board) core.Coordinate
	// Observe records the outcome of the shot returned by the last NextTarget
	Observe(shot core.ShotResult, b *core.Board)
	// State returns a snapshot of the search memory
	State() State
	// Reset clears the memory for a new session
	Reset()
}

// Strategy is the hunt/target opponent
type Strategy struct {
	opts     Options
	rng      *rand.Rand
	logger   zerolog.Logger
	state    State
	chosenIn Mode
}

var _ Targeter = (*Strategy)(nil)

// NewStrategy creates a strategy in random mode. A nil rng is seeded from the clock.
func NewStrategy(opts Options, rng *rand.Rand, logger zerolog.Logger) *Strategy {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Strategy{
		opts:   opts,
		rng:    rng,
		logger: logger.With().Str("component", "Targeting").Logger(),
		state:  NewState(),
	}
}

func (s *Strategy) NextTarget(b *core.Board) core.Coordinate {
	s.chosenIn = s.state.Mode
	target, next := Next(s.state, b, s.rng)
	s.state = next

	s.logger.Debug().
		Str("mode", s.chosenIn.String()).
		Str("target", target.Label()).
		Int("queued", len(s.state.Queue)).
		Msg("Target chosen")

	return target
}

func (s *Strategy) Observe(shot core.ShotResult, b *core.Board) {
	before := s.state.Mode
	s.state = Observe(s.state, s.chosenIn, shot, b, s.opts)

	if before != s.state.Mode || shot.Outcome == core.OutcomeHitAndSunk {
		s.logger.Debug().
			Str("outcome", shot.Outcome.String()).
			Str("from", before.String()).
			Str("to", s.state.Mode.String()).
			Int("queued", len(s.state.Queue)).
			Msg("Targeting mode updated")
	}
}

func (s *Strategy) State() State {
	return s.state.Clone()
}

func (s *Strategy) Reset() {
	s.state = NewState()
	s.chosenIn = ModeRandom
}
