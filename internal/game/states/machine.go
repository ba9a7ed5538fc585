package states

import (
	"fmt"
	"sync"
	"time"

	"github.com/mitchelldurbincs/battleship/internal/game/events"
)

// State represents a game state with lifecycle callbacks
type State interface {
	// Phase returns the GamePhase this state represents
	Phase() GamePhase

	// Enter is called when transitioning into this state
	Enter(ctx *GameContext) error

	// Exit is called when transitioning out of this state
	Exit(ctx *GameContext) error

	// Validate checks if the state is valid given the context
	Validate(ctx *GameContext) error
}

// Transition represents a state transition in the history
type Transition struct {
	From      GamePhase
	To        GamePhase
	Timestamp time.Time
	Reason    string
}

// StateMachine manages game state transitions and history
type StateMachine struct {
	mu             sync.RWMutex
	currentPhase   GamePhase
	states         map[GamePhase]State
	context        *GameContext
	history        []Transition
	maxHistorySize int
	publisher      events.Publisher
}

// NewStateMachine creates a new state machine in PhaseSetup
func NewStateMachine(ctx *GameContext, publisher events.Publisher) *StateMachine {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	sm := &StateMachine{
		currentPhase:   PhaseSetup,
		states:         make(map[GamePhase]State),
		context:        ctx,
		history:        make([]Transition, 0, 4),
		maxHistorySize: 100,
		publisher:      publisher,
	}

	sm.RegisterState(NewSetupState())
	sm.RegisterState(NewPlayingState())
	sm.RegisterState(NewGameOverState())

	return sm
}

// RegisterState registers a state implementation
func (sm *StateMachine) RegisterState(state State) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.states[state.Phase()] = state
}

// CurrentPhase returns the current game phase
func (sm *StateMachine) CurrentPhase() GamePhase {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.currentPhase
}

// TransitionTo attempts to transition to the specified phase
func (sm *StateMachine) TransitionTo(targetPhase GamePhase, reason string) error {
	sm.mu.Lock()

	if !sm.currentPhase.CanTransitionTo(targetPhase) {
		from := sm.currentPhase
		sm.mu.Unlock()
		return fmt.Errorf("invalid transition from %s to %s", from, targetPhase)
	}

	previousPhase := sm.currentPhase
	if err := sm.enterLocked(targetPhase, reason); err != nil {
		sm.mu.Unlock()
		return err
	}
	sm.mu.Unlock()

	sm.announce(previousPhase, targetPhase, reason)
	return nil
}

// Reset returns the machine to PhaseSetup from any phase and clears the history
func (sm *StateMachine) Reset(reason string) error {
	sm.mu.Lock()

	previousPhase := sm.currentPhase
	sm.history = sm.history[:0]
	sm.context.clear()
	if err := sm.enterLocked(PhaseSetup, reason); err != nil {
		sm.mu.Unlock()
		return err
	}
	sm.mu.Unlock()

	sm.announce(previousPhase, PhaseSetup, reason)
	return nil
}

// enterLocked runs validate, exit, enter for a move to targetPhase. Callers hold mu.
func (sm *StateMachine) enterLocked(targetPhase GamePhase, reason string) error {
	currentState, hasCurrentState := sm.states[sm.currentPhase]
	targetState, hasTargetState := sm.states[targetPhase]

	if !hasTargetState {
		return fmt.Errorf("no state implementation for phase %s", targetPhase)
	}

	if err := targetState.Validate(sm.context); err != nil {
		return fmt.Errorf("target state validation failed: %w", err)
	}

	if hasCurrentState {
		if err := currentState.Exit(sm.context); err != nil {
			sm.context.Logger.Error().
				Err(err).
				Str("from_phase", sm.currentPhase.String()).
				Str("to_phase", targetPhase.String()).
				Msg("Error exiting state")
			// Continue with transition despite exit error
		}
	}

	previousPhase := sm.currentPhase
	sm.currentPhase = targetPhase

	if err := targetState.Enter(sm.context); err != nil {
		// Rollback on enter failure
		sm.currentPhase = previousPhase
		return fmt.Errorf("failed to enter state %s: %w", targetPhase, err)
	}

	sm.addToHistory(Transition{
		From:      previousPhase,
		To:        targetPhase,
		Timestamp: sm.context.Now(),
		Reason:    reason,
	})
	return nil
}

// announce publishes and logs a completed transition outside the lock
func (sm *StateMachine) announce(from, to GamePhase, reason string) {
	sm.publisher.Publish(events.NewStateTransitionEvent(
		sm.context.GameID,
		from.String(),
		to.String(),
		reason,
	))

	sm.context.Logger.Info().
		Str("from_phase", from.String()).
		Str("to_phase", to.String()).
		Str("reason", reason).
		Msg("State transition completed")
}

// addToHistory adds a transition to the history, maintaining max size
func (sm *StateMachine) addToHistory(transition Transition) {
	sm.history = append(sm.history, transition)

	if len(sm.history) > sm.maxHistorySize {
		sm.history = sm.history[len(sm.history)-sm.maxHistorySize:]
	}
}

// GetHistory returns a copy of the transition history
func (sm *StateMachine) GetHistory() []Transition {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	history := make([]Transition, len(sm.history))
	copy(history, sm.history)
	return history
}

// GetContext returns the game context
func (sm *StateMachine) GetContext() *GameContext {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.context
}

// CanTransitionTo checks if a transition to the target phase is allowed
func (sm *StateMachine) CanTransitionTo(targetPhase GamePhase) bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.currentPhase.CanTransitionTo(targetPhase)
}
