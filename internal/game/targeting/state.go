package targeting

import (
	"fmt"
	"math/rand"

	"github.com/mitchelldurbincs/battleship/internal/game/core"
)

// Mode is the search phase of the opponent
type Mode int

const (
	// ModeRandom scans the board, preferring the checkerboard parity class
	ModeRandom Mode = iota
	// ModeTarget works through the neighbors of a recent hit
	ModeTarget
)

func (m Mode) String() string {
	switch m {
	case ModeRandom:
		return "random"
	case ModeTarget:
		return "target"
	default:
		return fmt.Sprintf("unknown(%d)", int(m))
	}
}

// State is the opponent's search memory between shots
type State struct {
	Mode    Mode
	LastHit *core.Coordinate
	Queue   []core.Coordinate
}

// NewState returns the initial state: random mode, no hit, empty queue
func NewState() State {
	return State{Mode: ModeRandom, Queue: []core.Coordinate{}}
}

// Clone returns a copy that shares nothing with s
func (s State) Clone() State {
	cp := State{Mode: s.Mode, Queue: append([]core.Coordinate{}, s.Queue...)}
	if s.LastHit != nil {
		hit := *s.LastHit
		cp.LastHit = &hit
	}
	return cp
}

// Options tunes the follow-up behavior
type Options struct {
	// FollowUpHits appends the neighbors of a hit made while already in
	// target mode to the back of the queue. Off by default: only the hit that
	// starts target mode seeds the queue.
	FollowUpHits bool
}

// Next chooses the next cell to fire at and returns the updated state.
// It never returns a cell that is already hit or miss while one remains.
func Next(s State, b *core.Board, rng *rand.Rand) (core.Coordinate, State) {
	s = s.Clone()

	if s.Mode == ModeTarget && s.LastHit != nil {
		for len(s.Queue) > 0 {
			target := s.Queue[0]
			s.Queue = s.Queue[1:]
			if b.Status(target) == core.CellHit || b.Status(target) == core.CellMiss {
				continue
			}
			if len(s.Queue) == 0 {
				s.Mode = ModeRandom
			}
			return target, s
		}
	}

	untargeted := b.Untargeted()
	if len(untargeted) == 0 {
		// Nothing left to shoot; only reachable after the game is over
		return core.NewCoordinate(rng.Intn(core.BoardSize), rng.Intn(core.BoardSize)), s
	}

	preferred := make([]core.Coordinate, 0, len(untargeted))
	for _, c := range untargeted {
		if c.IsCheckerboard() {
			preferred = append(preferred, c)
		}
	}

	var target core.Coordinate
	if len(preferred) > 0 {
		target = preferred[rng.Intn(len(preferred))]
	} else {
		target = untargeted[rng.Intn(len(untargeted))]
	}

	return target, NewState()
}

// Observe folds the result of the shot chosen from prev into the state.
// chosenIn is the mode the shot was chosen in, since Next may already have
// moved the state back to random mode when it drained the queue.
func Observe(s State, chosenIn Mode, shot core.ShotResult, b *core.Board, opts Options) State {
	s = s.Clone()

	switch {
	case shot.Outcome == core.OutcomeHitAndSunk:
		// The buffer rule guarantees water around a sunk ship
		return NewState()

	case shot.Outcome == core.OutcomeHit && chosenIn == ModeRandom:
		hit := shot.Target
		s.Mode = ModeTarget
		s.LastHit = &hit
		s.Queue = followUps(hit, b, nil)
		if len(s.Queue) == 0 {
			s.Mode = ModeRandom
		}
		return s

	case shot.Outcome == core.OutcomeHit && opts.FollowUpHits:
		hit := shot.Target
		s.Mode = ModeTarget
		s.LastHit = &hit
		s.Queue = append(s.Queue, followUps(hit, b, s.Queue)...)
		if len(s.Queue) == 0 {
			s.Mode = ModeRandom
		}
		return s

	default:
		return s
	}
}

// followUps returns the untargeted orthogonal neighbors of hit that are not already queued
func followUps(hit core.Coordinate, b *core.Board, queued []core.Coordinate) []core.Coordinate {
	out := make([]core.Coordinate, 0, 4)
	for _, n := range hit.ValidNeighbors() {
		status := b.Status(n)
		if status == core.CellHit || status == core.CellMiss {
			continue
		}
		if contains(queued, n) {
			continue
		}
		out = append(out, n)
	}
	return out
}

func contains(cs []core.Coordinate, c core.Coordinate) bool {
	for _, x := range cs {
		if x.Equal(c) {
			return true
		}
	}
	return false
}
