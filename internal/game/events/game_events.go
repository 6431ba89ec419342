package events

import (
	"time"

	"github.com/mitchelldurbincs/HexTactics/internal/game/core"
)

// Event type constants
const (
	TypeMatchStarted       = "match.started"
	TypeMatchEnded         = "match.ended"
	TypeTurnStarted        = "turn.started"
	TypeTurnEnded          = "turn.ended"
	TypeUnitSelected       = "unit.selected"
	TypeSelectionCancelled = "selection.cancelled"
	TypeMoveExecuted       = "move.executed"
	TypeCommandExecuted    = "command.executed"
	TypeActionRejected     = "action.rejected"
	TypeUnitKnockedOut     = "unit.knocked_out"
	TypeUnitQueued         = "unit.queued"
	TypeTeamEliminated     = "team.eliminated"
	TypeStatusExpired      = "status.expired"
	TypeAbilityCompleted   = "ability.completed"
	TypeStateTransition    = "state.transition"
)

// MatchStartedEvent is published when a match begins
type MatchStartedEvent struct {
	BaseEvent
	Teams       int
	Units       int
	BoardRadius int
}

// NewMatchStartedEvent creates a new MatchStartedEvent
func NewMatchStartedEvent(gameID string, teams, units, radius int) *MatchStartedEvent {
	return &MatchStartedEvent{
		BaseEvent:   newBase(TypeMatchStarted, gameID, 0),
		Teams:       teams,
		Units:       units,
		BoardRadius: radius,
	}
}

// MatchEndedEvent is published when a match ends
type MatchEndedEvent struct {
	BaseEvent
	Winner   int
	Reason   string
	Duration time.Duration
}

// NewMatchEndedEvent creates a new MatchEndedEvent
func NewMatchEndedEvent(gameID string, winner int, reason string, duration time.Duration, finalTurn int) *MatchEndedEvent {
	return &MatchEndedEvent{
		BaseEvent: newBase(TypeMatchEnded, gameID, finalTurn),
		Winner:    winner,
		Reason:    reason,
		Duration:  duration,
	}
}

// TurnStartedEvent is published when a player's turn begins
type TurnStartedEvent struct {
	BaseEvent
	PlayerID int
}

// NewTurnStartedEvent creates a new TurnStartedEvent
func NewTurnStartedEvent(gameID string, turn, playerID int) *TurnStartedEvent {
	return &TurnStartedEvent{
		BaseEvent: newBase(TypeTurnStarted, gameID, turn),
		PlayerID:  playerID,
	}
}

// TurnEndedEvent is published when a player's turn ends
type TurnEndedEvent struct {
	BaseEvent
	PlayerID int
	Forced   bool
	Actions  int
}

// NewTurnEndedEvent creates a new TurnEndedEvent
func NewTurnEndedEvent(gameID string, turn, playerID int, forced bool, actions int) *TurnEndedEvent {
	return &TurnEndedEvent{
		BaseEvent: newBase(TypeTurnEnded, gameID, turn),
		PlayerID:  playerID,
		Forced:    forced,
		Actions:   actions,
	}
}

// UnitSelectedEvent is published when the current player selects a unit
type UnitSelectedEvent struct {
	BaseEvent
	PlayerID int
	Unit     core.UnitID
	Moves    int
	Commands int
}

// NewUnitSelectedEvent creates a new UnitSelectedEvent
func NewUnitSelectedEvent(gameID string, turn, playerID int, unit core.UnitID, moves, commands int) *UnitSelectedEvent {
	return &UnitSelectedEvent{
		BaseEvent: newBase(TypeUnitSelected, gameID, turn),
		PlayerID:  playerID,
		Unit:      unit,
		Moves:     moves,
		Commands:  commands,
	}
}

// SelectionCancelledEvent is published when a selection is rolled back
type SelectionCancelledEvent struct {
	BaseEvent
	PlayerID  int
	Unit      core.UnitID
	FromPhase string
	ToPhase   string
}

// NewSelectionCancelledEvent creates a new SelectionCancelledEvent
func NewSelectionCancelledEvent(gameID string, turn, playerID int, unit core.UnitID, from, to string) *SelectionCancelledEvent {
	return &SelectionCancelledEvent{
		BaseEvent: newBase(TypeSelectionCancelled, gameID, turn),
		PlayerID:  playerID,
		Unit:      unit,
		FromPhase: from,
		ToPhase:   to,
	}
}

// MoveExecutedEvent is published after a move chain is applied
type MoveExecutedEvent struct {
	BaseEvent
	PlayerID int
	Unit     core.UnitID
	From     core.Hex
	To       core.Hex
	Hops     int
	Attacks  int
	Victory  bool
}

// NewMoveExecutedEvent creates a new MoveExecutedEvent
func NewMoveExecutedEvent(gameID string, turn, playerID int, unit core.UnitID, from, to core.Hex, hops, attacks int, victory bool) *MoveExecutedEvent {
	return &MoveExecutedEvent{
		BaseEvent: newBase(TypeMoveExecuted, gameID, turn),
		PlayerID:  playerID,
		Unit:      unit,
		From:      from,
		To:        to,
		Hops:      hops,
		Attacks:   attacks,
		Victory:   victory,
	}
}

// CommandExecutedEvent is published after an ability command is applied
type CommandExecutedEvent struct {
	BaseEvent
	PlayerID  int
	Unit      core.UnitID
	Ability   string
	Target    core.Hex
	HasTarget bool
}

// NewCommandExecutedEvent creates a new CommandExecutedEvent
func NewCommandExecutedEvent(gameID string, turn, playerID int, unit core.UnitID, ability string, target core.Hex, hasTarget bool) *CommandExecutedEvent {
	return &CommandExecutedEvent{
		BaseEvent: newBase(TypeCommandExecuted, gameID, turn),
		PlayerID:  playerID,
		Unit:      unit,
		Ability:   ability,
		Target:    target,
		HasTarget: hasTarget,
	}
}

// ActionRejectedEvent is published when controller input is refused
type ActionRejectedEvent struct {
	BaseEvent
	PlayerID int
	Action   string
	Reason   string
}

// NewActionRejectedEvent creates a new ActionRejectedEvent
func NewActionRejectedEvent(gameID string, turn, playerID int, action, reason string) *ActionRejectedEvent {
	return &ActionRejectedEvent{
		BaseEvent: newBase(TypeActionRejected, gameID, turn),
		PlayerID:  playerID,
		Action:    action,
		Reason:    reason,
	}
}

// UnitKnockedOutEvent is published when a unit leaves play
type UnitKnockedOutEvent struct {
	BaseEvent
	Unit   core.UnitID
	Team   int
	Leader bool
	At     core.Hex
	By     core.UnitID
}

// NewUnitKnockedOutEvent creates a new UnitKnockedOutEvent
func NewUnitKnockedOutEvent(gameID string, turn int, unit core.UnitID, team int, leader bool, at core.Hex, by core.UnitID) *UnitKnockedOutEvent {
	return &UnitKnockedOutEvent{
		BaseEvent: newBase(TypeUnitKnockedOut, gameID, turn),
		Unit:      unit,
		Team:      team,
		Leader:    leader,
		At:        at,
		By:        by,
	}
}

// UnitQueuedEvent is published when a unit is granted an extra action
type UnitQueuedEvent struct {
	BaseEvent
	PlayerID int
	Unit     core.UnitID
}

// NewUnitQueuedEvent creates a new UnitQueuedEvent
func NewUnitQueuedEvent(gameID string, turn, playerID int, unit core.UnitID) *UnitQueuedEvent {
	return &UnitQueuedEvent{
		BaseEvent: newBase(TypeUnitQueued, gameID, turn),
		PlayerID:  playerID,
		Unit:      unit,
	}
}

// TeamEliminatedEvent is published when a team is out of the match
type TeamEliminatedEvent struct {
	BaseEvent
	Team   int
	Reason string
}

// NewTeamEliminatedEvent creates a new TeamEliminatedEvent
func NewTeamEliminatedEvent(gameID string, turn, team int, reason string) *TeamEliminatedEvent {
	return &TeamEliminatedEvent{
		BaseEvent: newBase(TypeTeamEliminated, gameID, turn),
		Team:      team,
		Reason:    reason,
	}
}

// StatusExpiredEvent is published when a timed status effect runs out
type StatusExpiredEvent struct {
	BaseEvent
	Unit   core.UnitID
	Status string
	Source core.UnitID
}

// NewStatusExpiredEvent creates a new StatusExpiredEvent
func NewStatusExpiredEvent(gameID string, turn int, unit core.UnitID, kind string, source core.UnitID) *StatusExpiredEvent {
	return &StatusExpiredEvent{
		BaseEvent: newBase(TypeStatusExpired, gameID, turn),
		Unit:      unit,
		Status:    kind,
		Source:    source,
	}
}

// AbilityCompletedEvent is published when an ability's duration runs out
type AbilityCompletedEvent struct {
	BaseEvent
	Unit    core.UnitID
	Ability string
}

// NewAbilityCompletedEvent creates a new AbilityCompletedEvent
func NewAbilityCompletedEvent(gameID string, turn int, unit core.UnitID, ability string) *AbilityCompletedEvent {
	return &AbilityCompletedEvent{
		BaseEvent: newBase(TypeAbilityCompleted, gameID, turn),
		Unit:      unit,
		Ability:   ability,
	}
}

// StateTransitionEvent is published when the selection phase changes
type StateTransitionEvent struct {
	BaseEvent
	FromPhase string
	ToPhase   string
	Reason    string
}

// NewStateTransitionEvent creates a new StateTransitionEvent
func NewStateTransitionEvent(gameID, fromPhase, toPhase, reason string) *StateTransitionEvent {
	return &StateTransitionEvent{
		BaseEvent: newBase(TypeStateTransition, gameID, 0),
		FromPhase: fromPhase,
		ToPhase:   toPhase,
		Reason:    reason,
	}
}
