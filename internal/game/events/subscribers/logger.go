package subscribers

import (
	"encoding/json"

	"github.com/mitchelldurbincs/IntoTheBreach/internal/game/events"
	"github.com/rs/zerolog"
)

// LoggerSubscriber writes one structured line per game event
type LoggerSubscriber struct {
	id       string
	logger   zerolog.Logger
	logLevel zerolog.Level
	filter   events.TypeFilter
	// devMode attaches the whole event as JSON
	devMode bool
}

// NewLoggerSubscriber logs every event at logLevel until a filter is set
func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

func (ls *LoggerSubscriber) ID() string { return ls.id }

// SetEventFilter restricts logging to the given event types; no types logs
// everything again
func (ls *LoggerSubscriber) SetEventFilter(eventTypes ...string) {
	ls.filter = events.NewTypeFilter(eventTypes...)
}

func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.devMode = enabled
}

func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	return ls.filter.Matches(eventType)
}

// HandleEvent logs the common event fields plus the fields of the concrete
// event type
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	line := ls.logger.WithLevel(ls.logLevel).
		Str("event_type", event.Type()).
		Str("game_id", event.GameID()).
		Time("timestamp", event.Timestamp())

	addEventFields(line, event)

	if ls.devMode {
		if data, err := json.Marshal(event); err == nil {
			line.RawJSON("event_data", data)
		}
	}
	line.Msg("Game event")
}

func addEventFields(line *zerolog.Event, event events.Event) {
	switch e := event.(type) {
	case *events.GameStartedEvent:
		line.Int("rows", e.Rows).
			Int("cols", e.Cols).
			Int("friendly", e.Friendly).
			Int("hostile", e.Hostile).
			Int("buildings", e.Buildings)
	case *events.GameEndedEvent:
		line.Str("outcome", e.Outcome).
			Dur("duration", e.Duration).
			Int("final_turn", e.FinalTurn)
	case *events.TurnStartedEvent:
		line.Int("turn", e.TurnNumber)
	case *events.TurnEndedEvent:
		line.Int("turn", e.TurnNumber).
			Int("attacks", e.Attacks).
			Int("destroyed", e.Destroyed).
			Int("enemies_moved", e.EnemiesMoved).
			Dur("process_time", e.ProcessedTime)
	case *events.MoveExecutedEvent:
		line.Str("unit", e.UnitName).Stringer("from", e.From).Stringer("to", e.To)
	case *events.MoveRejectedEvent:
		line.Str("unit", e.UnitName).
			Stringer("from", e.From).
			Stringer("to", e.To).
			Str("reason", e.Reason)
	case *events.AttackResolvedEvent:
		line.Str("attacker", e.AttackerName).
			Stringer("from", e.From).
			Stringer("target", e.Target).
			Str("target_kind", e.TargetKind).
			Int("amount", e.Amount).
			Int("health_after", e.HealthAfter)
	case *events.EntityDestroyedEvent:
		line.Str("unit", e.UnitName).Bool("friendly", e.Friendly).Stringer("position", e.Position)
	case *events.BuildingDestroyedEvent:
		line.Stringer("position", e.Position)
	case *events.ObjectiveAssignedEvent:
		line.Str("unit", e.UnitName).
			Stringer("position", e.Position).
			Bool("has_objective", e.HasObjective)
		if e.HasObjective {
			line.Stringer("objective", e.Objective)
		}
	case *events.StateTransitionEvent:
		line.Str("from_phase", e.FromPhase).Str("to_phase", e.ToPhase).Str("reason", e.Reason)
	}
}
