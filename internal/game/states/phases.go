package states

import "fmt"

// GamePhase represents the current phase of a session
type GamePhase int

const (
	// PhaseSetup - player is placing the fleet, only placement commands accepted
	PhaseSetup GamePhase = iota

	// PhasePlaying - shots alternate between the player and the opponent
	PhasePlaying

	// PhaseGameOver - one fleet is destroyed, nothing more is accepted
	PhaseGameOver
)

// String returns the string representation of a GamePhase
func (p GamePhase) String() string {
	switch p {
	case PhaseSetup:
		return "Setup"
	case PhasePlaying:
		return "Playing"
	case PhaseGameOver:
		return "GameOver"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// IsTerminal returns true if the phase represents a terminal state
func (p GamePhase) IsTerminal() bool {
	return p == PhaseGameOver
}

// CanPlaceShips returns true if placement commands are accepted in this phase
func (p GamePhase) CanPlaceShips() bool {
	return p == PhaseSetup
}

// CanFire returns true if shots are accepted in this phase
func (p GamePhase) CanFire() bool {
	return p == PhasePlaying
}

// AllowedTransitions returns the valid phases this phase can transition to.
// Going back to Setup is only possible through StateMachine.Reset.
func (p GamePhase) AllowedTransitions() []GamePhase {
	switch p {
	case PhaseSetup:
		return []GamePhase{PhasePlaying}
	case PhasePlaying:
		return []GamePhase{PhaseGameOver}
	default:
		return []GamePhase{}
	}
}

// CanTransitionTo checks if a transition from this phase to the target phase is allowed
func (p GamePhase) CanTransitionTo(target GamePhase) bool {
	for _, phase := range p.AllowedTransitions() {
		if phase == target {
			return true
		}
	}
	return false
}

// ParsePhase converts a string to a GamePhase
func ParsePhase(s string) (GamePhase, error) {
	switch s {
	case "Setup":
		return PhaseSetup, nil
	case "Playing":
		return PhasePlaying, nil
	case "GameOver":
		return PhaseGameOver, nil
	default:
		return PhaseSetup, fmt.Errorf("unknown game phase %q", s)
	}
}
