package states

import "fmt"

// TurnPhase represents where a level is in its turn cycle
type TurnPhase int

const (
	// PhaseAwaitingOrders - the player may move mechs, save, or end the turn
	PhaseAwaitingOrders TurnPhase = iota

	// PhaseResolving - attacks, enemy planning and enemy movement are applied
	PhaseResolving

	// PhaseVictory - every enemy is destroyed; terminal
	PhaseVictory

	// PhaseDefeat - every building or every mech is destroyed; terminal
	PhaseDefeat
)

// String returns the string representation of a TurnPhase
func (p TurnPhase) String() string {
	switch p {
	case PhaseAwaitingOrders:
		return "AwaitingOrders"
	case PhaseResolving:
		return "Resolving"
	case PhaseVictory:
		return "Victory"
	case PhaseDefeat:
		return "Defeat"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// IsTerminal returns true once the level has been decided
func (p TurnPhase) IsTerminal() bool {
	return p == PhaseVictory || p == PhaseDefeat
}

// CanReceiveOrders returns true if the player may move units in this phase
func (p TurnPhase) CanReceiveOrders() bool {
	return p == PhaseAwaitingOrders
}

// AllowedTransitions returns the valid phases this phase can transition to
func (p TurnPhase) AllowedTransitions() []TurnPhase {
	switch p {
	case PhaseAwaitingOrders:
		return []TurnPhase{PhaseResolving}
	case PhaseResolving:
		return []TurnPhase{PhaseAwaitingOrders, PhaseVictory, PhaseDefeat}
	default:
		return []TurnPhase{}
	}
}

// CanTransitionTo checks if a transition from this phase to the target phase is allowed
func (p TurnPhase) CanTransitionTo(target TurnPhase) bool {
	for _, phase := range p.AllowedTransitions() {
		if phase == target {
			return true
		}
	}
	return false
}

// ParsePhase converts a string to a TurnPhase
func ParsePhase(s string) (TurnPhase, bool) {
	switch s {
	case "AwaitingOrders":
		return PhaseAwaitingOrders, true
	case "Resolving":
		return PhaseResolving, true
	case "Victory":
		return PhaseVictory, true
	case "Defeat":
		return PhaseDefeat, true
	default:
		return PhaseAwaitingOrders, false
	}
}
