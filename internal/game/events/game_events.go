package events

import (
	"time"

	"github.com/mitchelldurbincs/IntoTheBreach/internal/game/core"
)

// Event type constants
const (
	TypeGameStarted       = "game.started"
	TypeGameEnded         = "game.ended"
	TypeTurnStarted       = "turn.started"
	TypeTurnEnded         = "turn.ended"
	TypeMoveExecuted      = "move.executed"
	TypeMoveRejected      = "move.rejected"
	TypeAttackResolved    = "attack.resolved"
	TypeEntityDestroyed   = "entity.destroyed"
	TypeBuildingDestroyed = "building.destroyed"
	TypeObjectiveAssigned = "objective.assigned"
	TypeStateTransition   = "state.transition"
)

func newBase(eventType, gameID string) BaseEvent {
	return BaseEvent{
		EventType: eventType,
		Time:      time.Now(),
		Game:      gameID,
	}
}

// GameStartedEvent is published when a level is loaded into a model
type GameStartedEvent struct {
	BaseEvent
	Metadata  EventMetadata
	Rows      int
	Cols      int
	Friendly  int
	Hostile   int
	Buildings int
}

// NewGameStartedEvent creates a new GameStartedEvent
func NewGameStartedEvent(gameID string, rows, cols, friendly, hostile, buildings int) *GameStartedEvent {
	return &GameStartedEvent{
		BaseEvent: newBase(TypeGameStarted, gameID),
		Rows:      rows,
		Cols:      cols,
		Friendly:  friendly,
		Hostile:   hostile,
		Buildings: buildings,
	}
}

// GameEndedEvent is published when the level is won or lost
type GameEndedEvent struct {
	BaseEvent
	Metadata  EventMetadata
	Outcome   string
	Duration  time.Duration
	FinalTurn int
}

// NewGameEndedEvent creates a new GameEndedEvent
func NewGameEndedEvent(gameID, outcome string, duration time.Duration, finalTurn int) *GameEndedEvent {
	return &GameEndedEvent{
		BaseEvent: newBase(TypeGameEnded, gameID),
		Metadata:  EventMetadata{Turn: finalTurn},
		Outcome:   outcome,
		Duration:  duration,
		FinalTurn: finalTurn,
	}
}

// TurnStartedEvent is published when end-of-turn resolution begins
type TurnStartedEvent struct {
	BaseEvent
	Metadata   EventMetadata
	TurnNumber int
}

// NewTurnStartedEvent creates a new TurnStartedEvent
func NewTurnStartedEvent(gameID string, turn int) *TurnStartedEvent {
	return &TurnStartedEvent{
		BaseEvent:  newBase(TypeTurnStarted, gameID),
		Metadata:   EventMetadata{Turn: turn},
		TurnNumber: turn,
	}
}

// TurnEndedEvent is published once a turn has been fully resolved
type TurnEndedEvent struct {
	BaseEvent
	Metadata      EventMetadata
	TurnNumber    int
	Attacks       int
	Destroyed     int
	EnemiesMoved  int
	ProcessedTime time.Duration
}

// NewTurnEndedEvent creates a new TurnEndedEvent
func NewTurnEndedEvent(gameID string, turn, attacks, destroyed, enemiesMoved int, processedTime time.Duration) *TurnEndedEvent {
	return &TurnEndedEvent{
		BaseEvent:     newBase(TypeTurnEnded, gameID),
		Metadata:      EventMetadata{Turn: turn},
		TurnNumber:    turn,
		Attacks:       attacks,
		Destroyed:     destroyed,
		EnemiesMoved:  enemiesMoved,
		ProcessedTime: processedTime,
	}
}

// MoveExecutedEvent is published when a unit is relocated
type MoveExecutedEvent struct {
	BaseEvent
	Metadata EventMetadata
	UnitName string
	From     core.Position
	To       core.Position
}

// NewMoveExecutedEvent creates a new MoveExecutedEvent
func NewMoveExecutedEvent(gameID string, turn int, unit core.Entity, from, to core.Position) *MoveExecutedEvent {
	return &MoveExecutedEvent{
		BaseEvent: newBase(TypeMoveExecuted, gameID),
		Metadata:  EventMetadata{Turn: turn, Unit: unit.String()},
		UnitName:  unit.Name(),
		From:      from,
		To:        to,
	}
}

// MoveRejectedEvent is published when a requested move is not legal
type MoveRejectedEvent struct {
	BaseEvent
	Metadata EventMetadata
	UnitName string
	From     core.Position
	To       core.Position
	Reason   string
}

// NewMoveRejectedEvent creates a new MoveRejectedEvent
func NewMoveRejectedEvent(gameID string, turn int, unit core.Entity, to core.Position, reason string) *MoveRejectedEvent {
	return &MoveRejectedEvent{
		BaseEvent: newBase(TypeMoveRejected, gameID),
		Metadata:  EventMetadata{Turn: turn, Unit: unit.String()},
		UnitName:  unit.Name(),
		From:      unit.Position(),
		To:        to,
		Reason:    reason,
	}
}

// Attack target kinds
const (
	TargetUnit     = "unit"
	TargetBuilding = "building"
)

// AttackResolvedEvent is published for every target cell an attack affected
type AttackResolvedEvent struct {
	BaseEvent
	Metadata     EventMetadata
	AttackerName string
	From         core.Position
	Target       core.Position
	TargetKind   string
	Amount       int
	HealthAfter  int
}

// NewAttackResolvedEvent creates a new AttackResolvedEvent
func NewAttackResolvedEvent(gameID string, turn int, attacker core.Entity, target core.Position, targetKind string, healthAfter int) *AttackResolvedEvent {
	return &AttackResolvedEvent{
		BaseEvent:    newBase(TypeAttackResolved, gameID),
		Metadata:     EventMetadata{Turn: turn, Unit: attacker.String()},
		AttackerName: attacker.Name(),
		From:         attacker.Position(),
		Target:       target,
		TargetKind:   targetKind,
		Amount:       attacker.Strength(),
		HealthAfter:  healthAfter,
	}
}

// EntityDestroyedEvent is published when a dead unit is removed from play
type EntityDestroyedEvent struct {
	BaseEvent
	Metadata EventMetadata
	UnitName string
	Friendly bool
	Position core.Position
}

// NewEntityDestroyedEvent creates a new EntityDestroyedEvent
func NewEntityDestroyedEvent(gameID string, turn int, unit core.Entity) *EntityDestroyedEvent {
	return &EntityDestroyedEvent{
		BaseEvent: newBase(TypeEntityDestroyed, gameID),
		Metadata:  EventMetadata{Turn: turn, Unit: unit.String()},
		UnitName:  unit.Name(),
		Friendly:  unit.IsFriendly(),
		Position:  unit.Position(),
	}
}

// BuildingDestroyedEvent is published when a building's health reaches zero
type BuildingDestroyedEvent struct {
	BaseEvent
	Metadata EventMetadata
	Position core.Position
}

// NewBuildingDestroyedEvent creates a new BuildingDestroyedEvent
func NewBuildingDestroyedEvent(gameID string, turn int, pos core.Position) *BuildingDestroyedEvent {
	return &BuildingDestroyedEvent{
		BaseEvent: newBase(TypeBuildingDestroyed, gameID),
		Metadata:  EventMetadata{Turn: turn},
		Position:  pos,
	}
}

// ObjectiveAssignedEvent is published when a hostile unit picks its objective
type ObjectiveAssignedEvent struct {
	BaseEvent
	Metadata     EventMetadata
	UnitName     string
	Position     core.Position
	Objective    core.Position
	HasObjective bool
}

// NewObjectiveAssignedEvent creates a new ObjectiveAssignedEvent
func NewObjectiveAssignedEvent(gameID string, turn int, unit core.Hostile) *ObjectiveAssignedEvent {
	objective, ok := unit.Objective()
	return &ObjectiveAssignedEvent{
		BaseEvent:    newBase(TypeObjectiveAssigned, gameID),
		Metadata:     EventMetadata{Turn: turn, Unit: unit.String()},
		UnitName:     unit.Name(),
		Position:     unit.Position(),
		Objective:    objective,
		HasObjective: ok,
	}
}

// StateTransitionEvent is published when the turn state machine transitions between phases
type StateTransitionEvent struct {
	BaseEvent
	FromPhase string
	ToPhase   string
	Reason    string
}

// NewStateTransitionEvent creates a new StateTransitionEvent
func NewStateTransitionEvent(gameID, fromPhase, toPhase, reason string) *StateTransitionEvent {
	return &StateTransitionEvent{
		BaseEvent: newBase(TypeStateTransition, gameID),
		FromPhase: fromPhase,
		ToPhase:   toPhase,
		Reason:    reason,
	}
}
