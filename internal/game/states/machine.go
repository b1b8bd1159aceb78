package states

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mitchelldurbincs/IntoTheBreach/internal/game/events"
)

var (
	// ErrInvalidTransition is returned for a move the phase graph forbids
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrUnknownPhase is returned when no State is registered for a phase
	ErrUnknownPhase = errors.New("no state registered for phase")
)

// State is the behaviour attached to one TurnPhase. Validate runs before
// anything changes; Enter may refuse and the machine stays where it was.
type State interface {
	Phase() TurnPhase
	Enter(ctx *GameContext) error
	Exit(ctx *GameContext) error
	Validate(ctx *GameContext) error
}

// Transition is one entry of the machine's history
type Transition struct {
	From      TurnPhase
	To        TurnPhase
	Turn      int
	Timestamp time.Time
	Reason    string
}

// DefaultMaxHistory bounds the transition history kept by a StateMachine
const DefaultMaxHistory = 256

// StateMachine walks a level through its turn phases. A successful
// transition is recorded in the history and published on the event bus.
type StateMachine struct {
	mu         sync.RWMutex
	phase      TurnPhase
	states     map[TurnPhase]State
	context    *GameContext
	history    []Transition
	maxHistory int
	eventBus   events.Publisher
}

// NewStateMachine starts in PhaseAwaitingOrders with the four built-in
// states. eventBus may be nil.
func NewStateMachine(ctx *GameContext, eventBus events.Publisher) *StateMachine {
	sm := &StateMachine{
		phase:      PhaseAwaitingOrders,
		states:     make(map[TurnPhase]State, 4),
		context:    ctx,
		maxHistory: DefaultMaxHistory,
		eventBus:   eventBus,
	}
	for _, s := range []State{
		NewAwaitingOrdersState(),
		NewResolvingState(),
		NewVictoryState(),
		NewDefeatState(),
	} {
		sm.states[s.Phase()] = s
	}
	return sm
}

// RegisterState replaces the state for its phase
func (sm *StateMachine) RegisterState(state State) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.states[state.Phase()] = state
}

// SetMaxHistory changes how many transitions are retained; at least one is
func (sm *StateMachine) SetMaxHistory(n int) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.maxHistory = max(n, 1)
	sm.trimHistory()
}

func (sm *StateMachine) CurrentPhase() TurnPhase {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.phase
}

// TransitionTo moves to target. An Exit error is logged and does not stop
// the transition.
func (sm *StateMachine) TransitionTo(target TurnPhase, reason string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	from := sm.phase
	if !from.CanTransitionTo(target) {
		return fmt.Errorf("%w from %s to %s", ErrInvalidTransition, from, target)
	}
	next, ok := sm.states[target]
	if !ok {
		return fmt.Errorf("%w %s", ErrUnknownPhase, target)
	}
	if err := next.Validate(sm.context); err != nil {
		return fmt.Errorf("%s validation failed: %w", target, err)
	}

	if cur, ok := sm.states[from]; ok {
		if err := cur.Exit(sm.context); err != nil {
			sm.context.Logger.Error().Err(err).
				Stringer("from_phase", from).
				Stringer("to_phase", target).
				Msg("Error exiting state")
		}
	}

	sm.phase = target
	if err := next.Enter(sm.context); err != nil {
		sm.phase = from
		return fmt.Errorf("failed to enter %s: %w", target, err)
	}

	sm.history = append(sm.history, Transition{
		From:      from,
		To:        target,
		Turn:      sm.context.Turn,
		Timestamp: time.Now(),
		Reason:    reason,
	})
	sm.trimHistory()

	if sm.eventBus != nil {
		sm.eventBus.Publish(events.NewStateTransitionEvent(
			sm.context.GameID, from.String(), target.String(), reason))
	}
	sm.context.Logger.Debug().
		Stringer("from_phase", from).
		Stringer("to_phase", target).
		Str("reason", reason).
		Msg("State transition completed")
	return nil
}

func (sm *StateMachine) trimHistory() {
	if over := len(sm.history) - sm.maxHistory; over > 0 {
		sm.history = sm.history[over:]
	}
}

// GetHistory returns a copy of the retained transitions, oldest first
func (sm *StateMachine) GetHistory() []Transition {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return append([]Transition(nil), sm.history...)
}

func (sm *StateMachine) GetContext() *GameContext {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.context
}

// CanTransitionTo reports whether the phase graph allows target next
func (sm *StateMachine) CanTransitionTo(target TurnPhase) bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.phase.CanTransitionTo(target)
}
