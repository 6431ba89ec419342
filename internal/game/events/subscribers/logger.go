package subscribers

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/HexTactics/internal/game/events"
)

// LoggerSubscriber logs events to structured logs
type LoggerSubscriber struct {
	id              string
	logger          zerolog.Logger
	logLevel        zerolog.Level
	eventTypeFilter map[string]bool // If non-nil, only log these event types
	devMode         bool            // If true, log full event details
}

// NewLoggerSubscriber creates a new logger subscriber
func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

// ID returns the subscriber's unique identifier
func (ls *LoggerSubscriber) ID() string {
	return ls.id
}

// SetEventFilter sets which event types to log (nil means log all)
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.eventTypeFilter = nil
		return
	}

	ls.eventTypeFilter = make(map[string]bool)
	for _, eventType := range eventTypes {
		ls.eventTypeFilter[eventType] = true
	}
}

// SetDevMode enables or disables development mode logging
func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.devMode = enabled
}

// InterestedIn returns true if the subscriber wants to receive this event type
func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	if ls.eventTypeFilter == nil {
		return true
	}
	return ls.eventTypeFilter[eventType]
}

func (ls *LoggerSubscriber) levelEvent(l zerolog.Logger) *zerolog.Event {
	switch ls.logLevel {
	case zerolog.DebugLevel:
		return l.Debug()
	case zerolog.WarnLevel:
		return l.Warn()
	case zerolog.ErrorLevel:
		return l.Error()
	default:
		return l.Info()
	}
}

// HandleEvent processes an event by logging it
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	eventLogger := ls.logger.With().
		Str("event_type", event.Type()).
		Str("game_id", event.GameID()).
		Time("timestamp", event.Timestamp()).
		Logger()

	logEvent := ls.levelEvent(eventLogger)

	switch e := event.(type) {
	case *events.MatchStartedEvent:
		logEvent.
			Int("teams", e.Teams).
			Int("units", e.Units).
			Int("board_radius", e.BoardRadius)

	case *events.MatchEndedEvent:
		logEvent.
			Int("winner", e.Winner).
			Str("reason", e.Reason).
			Dur("duration", e.Duration).
			Int("final_turn", e.Turn)

	case *events.TurnStartedEvent:
		logEvent.Int("turn", e.Turn).Int("player_id", e.PlayerID)

	case *events.TurnEndedEvent:
		logEvent.
			Int("turn", e.Turn).
			Int("player_id", e.PlayerID).
			Bool("forced", e.Forced).
			Int("actions", e.Actions)

	case *events.UnitSelectedEvent:
		logEvent.
			Int("player_id", e.PlayerID).
			Int("unit_id", int(e.Unit)).
			Int("moves", e.Moves).
			Int("commands", e.Commands)

	case *events.SelectionCancelledEvent:
		logEvent.
			Int("unit_id", int(e.Unit)).
			Str("from_phase", e.FromPhase).
			Str("to_phase", e.ToPhase)

	case *events.MoveExecutedEvent:
		logEvent.
			Int("player_id", e.PlayerID).
			Int("unit_id", int(e.Unit)).
			Stringer("from", e.From).
			Stringer("to", e.To).
			Int("hops", e.Hops).
			Int("attacks", e.Attacks).
			Bool("victory", e.Victory)

	case *events.CommandExecutedEvent:
		logEvent.
			Int("player_id", e.PlayerID).
			Int("unit_id", int(e.Unit)).
			Str("ability", e.Ability)
		if e.HasTarget {
			logEvent.Stringer("target", e.Target)
		}

	case *events.ActionRejectedEvent:
		logEvent.
			Int("player_id", e.PlayerID).
			Str("action", e.Action).
			Str("reason", e.Reason)

	case *events.UnitKnockedOutEvent:
		logEvent.
			Int("unit_id", int(e.Unit)).
			Int("team", e.Team).
			Bool("leader", e.Leader).
			Stringer("at", e.At).
			Int("by", int(e.By))

	case *events.UnitQueuedEvent:
		logEvent.Int("player_id", e.PlayerID).Int("unit_id", int(e.Unit))

	case *events.TeamEliminatedEvent:
		logEvent.Int("team", e.Team).Str("reason", e.Reason)

	case *events.StatusExpiredEvent:
		logEvent.
			Int("unit_id", int(e.Unit)).
			Str("status", e.Status).
			Int("source", int(e.Source))

	case *events.AbilityCompletedEvent:
		logEvent.Int("unit_id", int(e.Unit)).Str("ability", e.Ability)

	case *events.StateTransitionEvent:
		logEvent.
			Str("from_phase", e.FromPhase).
			Str("to_phase", e.ToPhase).
			Str("reason", e.Reason)
	}

	if ls.devMode {
		if jsonData, err := json.Marshal(event); err == nil {
			logEvent.RawJSON("event_data", jsonData)
		}
	}

	logEvent.Msg("Match event")
}
