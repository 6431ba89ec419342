package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/HexTactics/internal/config"
	"github.com/mitchelldurbincs/HexTactics/internal/game/ability"
	"github.com/mitchelldurbincs/HexTactics/internal/game/core"
	"github.com/mitchelldurbincs/HexTactics/internal/game/effects"
	"github.com/mitchelldurbincs/HexTactics/internal/game/events"
	"github.com/mitchelldurbincs/HexTactics/internal/game/processor"
	"github.com/mitchelldurbincs/HexTactics/internal/game/rules"
	"github.com/mitchelldurbincs/HexTactics/internal/game/states"
)

// KnockoutObserver is told about every unit that leaves play
type KnockoutObserver func(u *rules.Unit, by core.UnitID)

// Engine is the turn controller. It owns the selection phase machine, the
// unit queue and every board mutation of a match. It is not safe for
// concurrent use; one resolution is in flight at a time.
type Engine struct {
	gs        *GameState
	gameID    string
	match     config.MatchConfig
	logger    zerolog.Logger
	startTime time.Time

	gen             *rules.Generator
	evaluator       *rules.Evaluator
	actionProcessor *processor.ActionProcessor
	winCondition    *rules.WinConditionChecker
	legalMoves      *rules.LegalMoveCalculator
	eventBus        *events.EventBus
	stateMachine    *states.StateMachine
	turnProcessor   *TurnProcessor
	effectPlayer    effects.Player

	observers []KnockoutObserver
	// abilities whose effects are being played back
	playing []*ability.State
	// teams whose leader fell during the resolution in flight
	fallen   []int
	gameOver bool
}

// SelectUnit picks one of the current player's units and generates its
// move tree. While a queued unit is pending only that unit may be picked.
// A unit whose only moves are conflicted is selectable; SelectMove takes a
// choice for those.
func (e *Engine) SelectUnit(playerID int, id core.UnitID) error {
	action := &core.Action{PlayerID: playerID, Type: core.ActionSelectUnit, Unit: id}
	if err := e.checkPhase(action, states.PhaseNoSelection, states.PhaseUnitSelected); err != nil {
		return err
	}
	if playerID != e.gs.CurrentPlayer {
		return e.reject(action, core.ErrInvalidPlayer)
	}
	u, ok := e.gs.Units.Unit(id)
	if !ok {
		return e.reject(action, core.ErrNoSuchUnit)
	}
	if u.Team != playerID {
		return e.reject(action, core.ErrNotYourUnit)
	}
	if head, ok := e.queueHead(); ok {
		if head != id {
			return e.reject(action, fmt.Errorf("unit %d is queued: %w", head, core.ErrQueuedUnitPending))
		}
	} else if e.gs.ActionUsed {
		return e.reject(action, fmt.Errorf("turn action already used: %w", core.ErrUnitHasNoActions))
	}
	if e.gs.Acted[id] {
		return e.reject(action, fmt.Errorf("unit already acted: %w", core.ErrUnitHasNoActions))
	}

	e.gen.FindMoves(u, u.Hex, rules.NoNode, false)
	commands := e.gen.Commands(u)
	if u.Tree.Empty() && len(commands) == 0 {
		return e.reject(action, core.ErrUnitHasNoActions)
	}
	return e.enterUnitSelected(u, commands, "unit selected")
}

// SelectMove picks the move to hex among the children of the current
// selection. Conflicted destinations need choice, counted from 1 in
// generation order; choice 0 means no disambiguation.
func (e *Engine) SelectMove(hex core.Hex, choice int) error {
	action := &core.Action{
		PlayerID: e.gs.CurrentPlayer,
		Type:     core.ActionSelectMove,
		Target:   hex,
		HasHex:   true,
		Choice:   choice,
	}
	if err := e.checkPhase(action, states.PhaseUnitSelected, states.PhaseMoveSelected); err != nil {
		return err
	}
	sc := e.stateMachine.GetContext()
	u, err := e.selectedUnit()
	if err != nil {
		return e.reject(action, err)
	}

	candidates := u.Tree.Candidates(sc.Move, hex)
	switch {
	case len(candidates) == 0:
		return e.reject(action, core.ErrNoSuchMove)
	case len(candidates) > 1 && choice == 0:
		return e.reject(action, fmt.Errorf("%d moves reach %s: %w", len(candidates), hex, core.ErrAmbiguousMove))
	case choice < 0 || choice > len(candidates):
		return e.reject(action, fmt.Errorf("choice %d of %d: %w", choice, len(candidates), core.ErrNoSuchMove))
	}
	id := candidates[0]
	if choice > 0 {
		id = candidates[choice-1]
	}

	if n := u.Tree.Node(id); !n.Expanded {
		e.gen.FindMoves(u, n.Dest, id, true)
	}
	sc.Move = id
	return e.stateMachine.TransitionTo(states.PhaseMoveSelected, "move selected")
}

// SelectCommand picks an ability command of the selected unit
func (e *Engine) SelectCommand(slot int) error {
	action := &core.Action{PlayerID: e.gs.CurrentPlayer, Type: core.ActionSelectCommand, Slot: slot}
	if err := e.checkPhase(action, states.PhaseUnitSelected); err != nil {
		return err
	}
	u, err := e.selectedUnit()
	if err != nil {
		return e.reject(action, err)
	}
	s := u.Slot(slot)
	if s == nil || s.Behavior == nil || !s.Behavior.Kind().IsCommand() {
		return e.reject(action, core.ErrNoSuchCommand)
	}
	if !s.State.Enabled {
		return e.reject(action, core.ErrAbilityDisabled)
	}
	if !s.Behavior.Available(e.gen.Context(u, slot, u.Hex)) {
		return e.reject(action, fmt.Errorf("%s is %s: %w", s.State.Name, s.State.Phase(), core.ErrAbilityNotReady))
	}

	e.stateMachine.GetContext().Command = slot
	return e.stateMachine.TransitionTo(states.PhaseCommandSelected, "command selected")
}

// ExecuteMove commits the selected move chain
func (e *Engine) ExecuteMove(ctx context.Context) error {
	action := &core.Action{PlayerID: e.gs.CurrentPlayer, Type: core.ActionExecuteMove}
	if err := e.checkPhase(action, states.PhaseMoveSelected); err != nil {
		return err
	}
	if err := e.turnProcessor.checkContext(ctx, "execute move"); err != nil {
		return err
	}
	u, err := e.selectedUnit()
	if err != nil {
		return e.reject(action, err)
	}
	node := e.stateMachine.GetContext().Move
	path := u.Tree.Path(node)
	attacks := 0
	hops := make([]core.Hex, 0, len(path))
	var used []*ability.State
	for _, id := range path {
		n := u.Tree.Node(id)
		attacks += len(n.AttackTargets)
		hops = append(hops, n.Dest)
		if slot := u.Slot(n.Ability); slot != nil {
			used = append(used, slot.State)
		}
	}
	from := u.Hex

	e.gs.Acted[u.ID] = true
	res, err := e.actionProcessor.ApplyMove(ctx, u, node)
	if res == nil || res.Timeline.Empty() {
		delete(e.gs.Acted, u.ID)
		if err == nil {
			err = core.ErrNoSuchMove
		}
		return e.reject(action, err)
	}

	e.logger.Debug().
		Int("unit", int(u.ID)).
		Str("from", from.String()).
		Str("hops", core.FormatHexes(hops)).
		Int("attacks", attacks).
		Msg("Move executed")
	e.eventBus.Publish(events.NewMoveExecutedEvent(e.gameID, e.gs.Turn, e.gs.CurrentPlayer,
		u.ID, from, res.Final, len(path), attacks, res.Victory))
	for _, st := range used {
		e.play(st)
	}
	e.commit(u, res)
	if err != nil {
		return core.WrapActionError(action, err)
	}
	return nil
}

// ExecuteCommand activates the selected command. Untargeted commands ignore
// target.
func (e *Engine) ExecuteCommand(ctx context.Context, target core.Hex) error {
	action := &core.Action{PlayerID: e.gs.CurrentPlayer, Type: core.ActionExecuteCommand, Target: target}
	if err := e.checkPhase(action, states.PhaseCommandSelected); err != nil {
		return err
	}
	if err := e.turnProcessor.checkContext(ctx, "execute command"); err != nil {
		return err
	}
	u, err := e.selectedUnit()
	if err != nil {
		return e.reject(action, err)
	}
	slot := e.stateMachine.GetContext().Command
	s := u.Slot(slot)
	if s == nil {
		return e.reject(action, core.ErrNoSuchCommand)
	}
	action.HasHex = s.Behavior.Targeted()

	e.gs.Acted[u.ID] = true
	res, err := e.actionProcessor.ApplyCommand(ctx, e.gen.Context(u, slot, u.Hex), target)
	if res == nil {
		delete(e.gs.Acted, u.ID)
		return e.reject(action, err)
	}

	e.eventBus.Publish(events.NewCommandExecutedEvent(e.gameID, e.gs.Turn, e.gs.CurrentPlayer,
		u.ID, s.State.Name, target, action.HasHex))
	e.play(s.State)
	e.commit(u, res)
	if err != nil {
		return core.WrapActionError(action, err)
	}
	return nil
}

// CancelSelection steps the selection back by one level: a chained move
// returns to its prior node, a root move or a command returns to the unit,
// and a unit returns to no selection.
func (e *Engine) CancelSelection() error {
	action := &core.Action{PlayerID: e.gs.CurrentPlayer, Type: core.ActionCancel}
	if err := e.checkInput(action); err != nil {
		return err
	}
	from := e.stateMachine.CurrentPhase()
	if !from.Cancellable() {
		return e.reject(action, core.ErrInvalidPhase)
	}
	sc := e.stateMachine.GetContext()
	unit := sc.Unit

	var err error
	switch from {
	case states.PhaseMoveSelected:
		u, uerr := e.selectedUnit()
		if uerr != nil {
			return e.reject(action, uerr)
		}
		if prior := u.Tree.Node(sc.Move).Prior; prior != rules.NoNode {
			sc.Move = prior
			err = e.stateMachine.TransitionTo(states.PhaseMoveSelected, "move cancelled")
		} else {
			err = e.stateMachine.TransitionTo(states.PhaseUnitSelected, "move cancelled")
		}
	case states.PhaseCommandSelected:
		err = e.stateMachine.TransitionTo(states.PhaseUnitSelected, "command cancelled")
	default:
		err = e.stateMachine.TransitionTo(states.PhaseNoSelection, "unit deselected")
	}
	if err != nil {
		return err
	}
	e.eventBus.Publish(events.NewSelectionCancelledEvent(e.gameID, e.gs.Turn, e.gs.CurrentPlayer,
		unit, from.String(), e.stateMachine.CurrentPhase().String()))
	return nil
}

// AcknowledgeEffects ends playback of the last committed action
func (e *Engine) AcknowledgeEffects() error {
	if e.stateMachine.CurrentPhase() != states.PhaseAnimating {
		return core.WrapTurnError(e.gs.Turn, e.stateMachine.CurrentPhase().String(), core.ErrInvalidPhase)
	}
	e.stopPlaying()
	if e.gameOver {
		return e.stateMachine.TransitionTo(states.PhaseGameOver, "effects acknowledged")
	}
	return e.stateMachine.TransitionTo(states.PhaseNoSelection, "effects acknowledged")
}

// play flags an ability as mid-animation until the effects are acknowledged
func (e *Engine) play(s *ability.State) {
	s.SetActive(true)
	e.playing = append(e.playing, s)
}

func (e *Engine) stopPlaying() {
	for _, s := range e.playing {
		s.SetActive(false)
	}
	e.playing = nil
}

// ContinueTurn selects the next queued unit, skipping stale entries. With
// an empty queue the turn ends. Called while animating it also
// acknowledges the pending effects.
func (e *Engine) ContinueTurn() error {
	if e.gameOver {
		if e.stateMachine.CurrentPhase() == states.PhaseAnimating {
			_ = e.AcknowledgeEffects()
		}
		return core.WrapTurnError(e.gs.Turn, e.stateMachine.CurrentPhase().String(), core.ErrGameOver)
	}
	phase := e.stateMachine.CurrentPhase()
	if phase != states.PhaseAnimating && phase != states.PhaseNoSelection {
		return core.WrapTurnError(e.gs.Turn, phase.String(), core.ErrInvalidPhase)
	}
	e.stopPlaying()

	if head, ok := e.queueHead(); ok {
		u, _ := e.gs.Units.Unit(head)
		e.gen.FindMoves(u, u.Hex, rules.NoNode, false)
		return e.enterUnitSelected(u, e.gen.Commands(u), "queued unit")
	}

	if phase == states.PhaseAnimating {
		if err := e.stateMachine.TransitionTo(states.PhaseNoSelection, "effects acknowledged"); err != nil {
			return err
		}
	}
	return e.turnProcessor.EndTurn(false)
}

// EndTurn passes play to the next team. A forced end is recorded as such
// on the turn-ended event.
func (e *Engine) EndTurn(forced bool) error {
	action := &core.Action{PlayerID: e.gs.CurrentPlayer, Type: core.ActionEndTurn}
	if err := e.checkInput(action); err != nil {
		return err
	}
	if phase := e.stateMachine.CurrentPhase(); phase != states.PhaseNoSelection {
		if err := e.stateMachine.TransitionTo(states.PhaseNoSelection, "turn ended"); err != nil {
			return err
		}
	}
	return e.turnProcessor.EndTurn(forced)
}

// TimerExpired reports whether the current turn ran out of time at now
func (e *Engine) TimerExpired(now time.Time) bool {
	if !e.match.Timer.Enabled || e.gameOver {
		return false
	}
	limit := time.Duration(e.match.Timer.TurnSeconds) * time.Second
	return now.Sub(e.gs.TurnStart) >= limit
}

// CheckTimer force-ends the current turn when its timer expired. Pending
// effects are acknowledged first.
func (e *Engine) CheckTimer(now time.Time) (bool, error) {
	if !e.TimerExpired(now) {
		return false, nil
	}
	e.logger.Info().
		Int("turn", e.gs.Turn).
		Int("player_id", e.gs.CurrentPlayer).
		Msg("Turn timer expired")
	if e.stateMachine.CurrentPhase() == states.PhaseAnimating {
		if err := e.AcknowledgeEffects(); err != nil {
			return false, err
		}
	}
	return true, e.EndTurn(true)
}

// commit records a resolved action, settles eliminations and the win check,
// and starts effect playback
func (e *Engine) commit(u *rules.Unit, res *processor.Result) {
	if len(e.gs.UnitQueue) > 0 && e.gs.UnitQueue[0] == u.ID {
		e.gs.UnitQueue = e.gs.UnitQueue[1:]
	} else {
		e.gs.ActionUsed = true
	}
	e.gs.Actions++
	e.gs.IsStartOfTurn = false

	e.settleEliminations(res.Timeline)
	e.updatePlayerStats()
	if res.Victory {
		e.declareGameOver(u.Team, rules.WinObjective)
	} else {
		e.checkGameOver()
	}

	e.gs.Pending = res.Timeline
	if err := e.stateMachine.TransitionTo(states.PhaseAnimating, "action committed"); err != nil {
		e.logger.Error().Err(err).Msg("Failed to enter animation phase")
	}
	if e.effectPlayer != nil {
		e.effectPlayer.Play(res.Timeline.Steps())
	}
}

// onKnockedOut is the processor hook for every knockout
func (e *Engine) onKnockedOut(u *rules.Unit, by core.UnitID) {
	e.eventBus.Publish(events.NewUnitKnockedOutEvent(e.gameID, e.gs.Turn, u.ID, u.Team,
		u.Role == rules.Leader, u.Hex, by))
	for _, obs := range e.observers {
		obs(u, by)
	}
	if u.Role == rules.Leader {
		e.fallen = append(e.fallen, u.Team)
	}
}

// onQueue is the processor hook for extra actions
func (e *Engine) onQueue(id core.UnitID) bool {
	u, ok := e.gs.Units.Unit(id)
	if !ok || u.Team != e.gs.CurrentPlayer || e.gs.Acted[id] {
		return false
	}
	for _, q := range e.gs.UnitQueue {
		if q == id {
			return false
		}
	}
	e.gs.UnitQueue = append(e.gs.UnitQueue, id)
	e.eventBus.Publish(events.NewUnitQueuedEvent(e.gameID, e.gs.Turn, e.gs.CurrentPlayer, id))
	return true
}

// settleEliminations removes the teams whose leader fell, appending their
// knockouts to tl
func (e *Engine) settleEliminations(tl *effects.Timeline) {
	for len(e.fallen) > 0 {
		team := e.fallen[0]
		e.fallen = e.fallen[1:]
		e.eliminate(team, "leader knocked out", tl)
	}
}

// eliminate takes a team out of the match and knocks out its remaining units
func (e *Engine) eliminate(team int, reason string, tl *effects.Timeline) {
	p := e.gs.player(team)
	if p == nil || p.Reason != "" {
		return
	}
	p.Reason = reason
	for _, u := range e.gs.Units.Team(team) {
		res := e.actionProcessor.KnockOut(u.ID, core.NoUnit)
		if tl != nil {
			tl.Extend(res.Timeline)
		}
	}
	// the leader's own knockout marked the team as fallen again
	remaining := e.fallen[:0]
	for _, t := range e.fallen {
		if t != team {
			remaining = append(remaining, t)
		}
	}
	e.fallen = remaining
	e.eventBus.Publish(events.NewTeamEliminatedEvent(e.gameID, e.gs.Turn, team, reason))
	e.logger.Info().Int("team", team).Str("reason", reason).Msg("Team eliminated")
}

// checkGameOver ends the match when at most one team is left
func (e *Engine) checkGameOver() {
	if e.gameOver {
		return
	}
	over, winner, reason := e.winCondition.CheckGameOver(e.gs.rulesPlayers())
	if over {
		e.declareGameOver(winner, reason)
	}
}

func (e *Engine) declareGameOver(winner int, reason rules.WinReason) {
	if e.gameOver {
		return
	}
	e.gameOver = true
	e.gs.Winner = winner
	e.gs.Reason = reason
	sc := e.stateMachine.GetContext()
	sc.Winner = winner
	sc.Reason = string(reason)

	e.eventBus.Publish(events.NewMatchEndedEvent(e.gameID, winner, string(reason),
		time.Since(e.startTime), e.gs.Turn))
	e.logger.Info().
		Int("winner", winner).
		Str("reason", string(reason)).
		Int("turn", e.gs.Turn).
		Msg("Match decided")
}

// queueHead drops stale queue entries and returns the first unit that can
// still act
func (e *Engine) queueHead() (core.UnitID, bool) {
	for len(e.gs.UnitQueue) > 0 {
		id := e.gs.UnitQueue[0]
		u, ok := e.gs.Units.Unit(id)
		if ok && !u.KnockedOut && !e.gs.Acted[id] && e.gen.HasAction(u) {
			return id, true
		}
		e.logger.Debug().Int("unit_id", int(id)).Msg("Skipping stale queued unit")
		e.gs.UnitQueue = e.gs.UnitQueue[1:]
	}
	return core.NoUnit, false
}

func (e *Engine) enterUnitSelected(u *rules.Unit, commands []int, reason string) error {
	if !e.stateMachine.CanTransitionTo(states.PhaseUnitSelected) {
		return core.WrapTurnError(e.gs.Turn, e.stateMachine.CurrentPhase().String(), core.ErrInvalidPhase)
	}
	sc := e.stateMachine.GetContext()
	sc.Unit = u.ID
	sc.PlayerID = e.gs.CurrentPlayer
	sc.Turn = e.gs.Turn
	if err := e.stateMachine.TransitionTo(states.PhaseUnitSelected, reason); err != nil {
		return err
	}
	e.eventBus.Publish(events.NewUnitSelectedEvent(e.gameID, e.gs.Turn, e.gs.CurrentPlayer,
		u.ID, len(u.Tree.Children(rules.NoNode)), len(commands)))
	return nil
}

func (e *Engine) selectedUnit() (*rules.Unit, error) {
	sc := e.stateMachine.GetContext()
	u, ok := e.gs.Units.Unit(sc.Unit)
	if !ok || u.Tree == nil {
		return nil, core.ErrNoSuchUnit
	}
	return u, nil
}

// checkInput rejects input once the match is over or while effects play
func (e *Engine) checkInput(action *core.Action) error {
	if e.gameOver {
		return e.reject(action, core.ErrGameOver)
	}
	if !e.stateMachine.CurrentPhase().AcceptsInput() {
		return e.reject(action, core.ErrInvalidPhase)
	}
	return nil
}

func (e *Engine) checkPhase(action *core.Action, allowed ...states.Phase) error {
	if err := e.checkInput(action); err != nil {
		return err
	}
	current := e.stateMachine.CurrentPhase()
	for _, p := range allowed {
		if p == current {
			return nil
		}
	}
	return e.reject(action, core.ErrInvalidPhase)
}

// reject logs and publishes refused input and wraps err with its context
func (e *Engine) reject(action *core.Action, err error) error {
	phase := e.stateMachine.CurrentPhase().String()
	e.logger.Debug().
		Err(err).
		Int("turn", e.gs.Turn).
		Str("phase", phase).
		Str("action", action.Describe()).
		Msg("Action rejected")
	e.eventBus.Publish(events.NewActionRejectedEvent(e.gameID, e.gs.Turn, action.PlayerID,
		action.Describe(), err.Error()))
	return core.WrapTurnError(e.gs.Turn, phase, core.WrapActionError(action, err))
}

// SetEffectPlayer installs the presentation layer that receives every
// committed timeline
func (e *Engine) SetEffectPlayer(p effects.Player) { e.effectPlayer = p }

// OnKnockout registers an observer for unit knockouts
func (e *Engine) OnKnockout(obs KnockoutObserver) {
	e.observers = append(e.observers, obs)
}

// Public accessors
func (e *Engine) GameID() string { return e.gameID }
func (e *Engine) Turn() int { return e.gs.Turn }
func (e *Engine) CurrentPlayer() int { return e.gs.CurrentPlayer }
func (e *Engine) Phase() states.Phase { return e.stateMachine.CurrentPhase() }
func (e *Engine) IsGameOver() bool { return e.gameOver }
func (e *Engine) IsStartOfTurn() bool { return e.gs.IsStartOfTurn }
func (e *Engine) Board() *core.Board { return e.gs.Board }
func (e *Engine) EventBus() *events.EventBus { return e.eventBus }
func (e *Engine) Match() config.MatchConfig { return e.match }
func (e *Engine) Evaluator() *rules.Evaluator { return e.evaluator }
func (e *Engine) PendingEffects() *effects.Timeline { return e.gs.Pending }

// GetWinner returns the winning team, or -1 if the match isn't over or
// nobody survived
func (e *Engine) GetWinner() int {
	if !e.gameOver {
		return -1
	}
	return e.gs.Winner
}

// WinReason returns why the match ended
func (e *Engine) WinReason() rules.WinReason { return e.gs.Reason }

// Players returns a copy of every team's standing
func (e *Engine) Players() []Player {
	return append([]Player(nil), e.gs.Players...)
}

// Unit looks up a unit still in play
func (e *Engine) Unit(id core.UnitID) (*rules.Unit, bool) { return e.gs.Units.Unit(id) }

// Units returns every unit still in play sorted by ID
func (e *Engine) Units() []*rules.Unit { return e.gs.Units.All() }

// UnitQueue returns a copy of the pending extra actions
func (e *Engine) UnitQueue() []core.UnitID {
	return append([]core.UnitID(nil), e.gs.UnitQueue...)
}

// HasActed reports whether a unit already acted this turn
func (e *Engine) HasActed(id core.UnitID) bool { return e.gs.Acted[id] }

// Selection returns the selected unit, move node and command slot
func (e *Engine) Selection() (core.UnitID, rules.NodeID, int) {
	sc := e.stateMachine.GetContext()
	return sc.Unit, sc.Move, sc.Command
}

// SelectedTree returns the move tree of the selected unit
func (e *Engine) SelectedTree() *rules.MoveTree {
	u, err := e.selectedUnit()
	if err != nil {
		return nil
	}
	return u.Tree
}

// SelectableUnits lists the current player's units that may be selected now
func (e *Engine) SelectableUnits() []core.UnitID {
	if e.gameOver {
		return nil
	}
	// probing regenerates trees, keep the one being selected from
	if sel, err := e.selectedUnit(); err == nil {
		tree := sel.Tree
		defer func() { sel.Tree = tree }()
	}
	if head, ok := e.queueHead(); ok {
		return []core.UnitID{head}
	}
	if e.gs.ActionUsed {
		return nil
	}
	var candidates []*rules.Unit
	for _, u := range e.gs.Units.Team(e.gs.CurrentPlayer) {
		if !e.gs.Acted[u.ID] {
			candidates = append(candidates, u)
		}
	}
	return e.legalMoves.SelectableUnits(candidates)
}

// LegalDestinations lists the distinct destinations reachable from the
// current selection
func (e *Engine) LegalDestinations() []core.Hex {
	u, err := e.selectedUnit()
	if err != nil {
		return nil
	}
	return e.legalMoves.GetLegalDestinations(u, e.stateMachine.GetContext().Move)
}

// LegalDestinationMask flags every tile reachable from the current selection
func (e *Engine) LegalDestinationMask() []bool {
	u, err := e.selectedUnit()
	if err != nil {
		return make([]bool, e.gs.Board.Grid.Size())
	}
	return e.legalMoves.GetLegalDestinationMask(e.gs.Board, u, e.stateMachine.GetContext().Move)
}

// AvailableCommands lists the command slots the selected unit may use
func (e *Engine) AvailableCommands() []int {
	u, err := e.selectedUnit()
	if err != nil {
		return nil
	}
	return e.gen.Commands(u)
}

// CommandTargets lists the hexes a targeted command slot may aim at
func (e *Engine) CommandTargets(slot int) []core.Hex {
	u, err := e.selectedUnit()
	if err != nil {
		return nil
	}
	s := u.Slot(slot)
	if s == nil || s.Behavior == nil {
		return nil
	}
	return s.Behavior.Targets(e.gen.Context(u, slot, u.Hex))
}

// IsRejection reports whether err is refused player input rather than an
// engine failure
func IsRejection(err error) bool {
	for _, target := range []error{
		core.ErrNoSuchUnit, core.ErrNotYourUnit, core.ErrUnitHasNoActions,
		core.ErrQueuedUnitPending, core.ErrNoSuchMove, core.ErrAmbiguousMove,
		core.ErrNoSuchCommand, core.ErrNoSuchTarget, core.ErrInvalidPhase,
		core.ErrGameOver, core.ErrInvalidPlayer, core.ErrAbilityDisabled,
		core.ErrAbilityNotReady,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
