package processor

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/HexTactics/internal/game/core"
	"github.com/mitchelldurbincs/HexTactics/internal/game/effects"
	"github.com/mitchelldurbincs/HexTactics/internal/game/rules"
	"github.com/mitchelldurbincs/HexTactics/internal/game/status"
)

// Hooks lets the turn controller observe resolution side effects
type Hooks struct {
	// Queue grants an extra action. It returns false when the unit may not
	// act again this turn.
	Queue func(id core.UnitID) bool
	// KnockedOut runs once per knockout after the unit left the board
	KnockedOut func(u *rules.Unit, by core.UnitID)
}

// Result is everything one committed action produced
type Result struct {
	Timeline   *effects.Timeline
	KnockedOut []core.UnitID
	Queued     []core.UnitID
	Victory    bool
	// Final is the acting unit's hex after resolution
	Final core.Hex
}

type knockout struct {
	id core.UnitID
	by core.UnitID
}

// ActionProcessor applies committed moves and commands to the board. It is
// the only writer of cell occupancy during a match.
type ActionProcessor struct {
	board  *core.Board
	units  *rules.Roster
	hooks  Hooks
	logger zerolog.Logger
}

// NewActionProcessor creates a new action processor
func NewActionProcessor(board *core.Board, units *rules.Roster, logger zerolog.Logger) *ActionProcessor {
	return &ActionProcessor{
		board:  board,
		units:  units,
		logger: logger.With().Str("component", "ActionProcessor").Logger(),
	}
}

// SetHooks replaces the controller callbacks
func (ap *ActionProcessor) SetHooks(h Hooks) {
	ap.hooks = h
}

// resolution carries the state of one committed action and implements
// rules.Applier for the behaviors it runs
type resolution struct {
	ap     *ActionProcessor
	actor  core.UnitID
	res    *Result
	queue  []knockout
	queued map[core.UnitID]bool
}

func (ap *ActionProcessor) begin(actor core.UnitID) *resolution {
	return &resolution{
		ap:     ap,
		actor:  actor,
		res:    &Result{Timeline: effects.NewTimeline()},
		queued: make(map[core.UnitID]bool),
	}
}

// ApplyMove commits the chain ending at node of u's current move tree.
// Every step is applied in root-to-leaf order and knockouts are drained
// after each step.
func (ap *ActionProcessor) ApplyMove(ctx context.Context, u *rules.Unit, node rules.NodeID) (*Result, error) {
	if u == nil || u.Tree == nil || u.Tree.Node(node) == nil {
		return nil, core.ErrNoSuchMove
	}
	tree := u.Tree
	path := tree.Path(node)

	for _, id := range path {
		n := tree.Node(id)
		if n.Ability < 0 {
			continue
		}
		slot := u.Slot(n.Ability)
		if slot == nil {
			return nil, fmt.Errorf("move %d references slot %d: %w", id, n.Ability, core.ErrNoSuchCommand)
		}
		if !slot.State.IsReady() {
			return nil, fmt.Errorf("%s is %s: %w", slot.State.Name, slot.State.Phase(), core.ErrAbilityNotReady)
		}
	}

	// a committed chain runs to completion
	if err := ctx.Err(); err != nil {
		ap.logger.Warn().Err(err).Int("unit_id", int(u.ID)).Msg("Move cancelled before commit")
		return nil, err
	}

	r := ap.begin(u.ID)
	from := u.Hex
	for _, id := range path {
		n := tree.Node(id)
		if err := r.step(u, n); err != nil {
			ap.logger.Error().Err(err).
				Int("unit_id", int(u.ID)).
				Int("node", int(id)).
				Str("kind", n.Kind.String()).
				Msg("Failed to apply move step")
			return r.res, err
		}
		r.drain()
		if u.KnockedOut {
			break
		}
	}

	u.Tree = nil
	r.res.Final = u.Hex
	ap.logger.Debug().
		Int("unit_id", int(u.ID)).
		Stringer("from", from).
		Stringer("to", u.Hex).
		Int("steps", len(path)).
		Bool("victory", r.res.Victory).
		Msg("Move applied")
	return r.res, nil
}

func (r *resolution) step(u *rules.Unit, n *rules.MoveNode) error {
	from := u.Hex
	if err := r.ap.board.MoveUnit(from, n.Dest); err != nil {
		return fmt.Errorf("%s %s->%s: %w", n.Kind, from, n.Dest, err)
	}
	u.Hex = n.Dest

	tl := r.res.Timeline
	switch n.Kind {
	case rules.Move:
		tl.Append(effects.Effect{Kind: effects.Step, Unit: u.ID, From: from, To: n.Dest})
	case rules.Special, rules.SpecialAttack:
		tl.Append(effects.Effect{Kind: effects.Teleport, Unit: u.ID, From: from, To: n.Dest})
	default:
		tl.Append(effects.Effect{Kind: effects.Hop, Unit: u.ID, From: from, To: n.Dest})
	}

	if slot := u.Slot(n.Ability); slot != nil {
		if err := slot.State.Use(); err != nil {
			return err
		}
		tl.Join(effects.Effect{Kind: effects.AbilityUsed, Unit: u.ID, Ability: slot.State.Name})
	}

	for _, h := range n.AttackTargets {
		target, ok := r.unitAt(h)
		if !ok {
			continue
		}
		tl.Join(effects.Effect{Kind: effects.Strike, Unit: u.ID, Target: target.ID, To: h})
		r.KnockOut(target.ID)
	}
	for _, h := range n.AssistTargets {
		ally, ok := r.unitAt(h)
		if !ok {
			continue
		}
		tl.Join(effects.Effect{Kind: effects.Assist, Unit: u.ID, Target: ally.ID, To: h})
		r.Queue(ally.ID)
	}
	if n.Victory {
		tl.Join(effects.Effect{Kind: effects.Victory, Unit: u.ID, To: n.Dest})
		r.res.Victory = true
	}
	return nil
}

// ApplyCommand activates the command in bctx's slot. Targeted commands
// need target to be one of the behavior's targets.
func (ap *ActionProcessor) ApplyCommand(ctx context.Context, bctx *rules.Context, target core.Hex) (*Result, error) {
	if bctx == nil || bctx.Unit == nil {
		return nil, core.ErrNoSuchCommand
	}
	slot := bctx.Unit.Slot(bctx.Slot)
	if slot == nil || !slot.Behavior.Kind().IsCommand() {
		return nil, core.ErrNoSuchCommand
	}
	b := slot.Behavior
	if !b.Available(bctx) {
		return nil, fmt.Errorf("%s: %w", b.Name(), core.ErrAbilityNotReady)
	}
	if b.Targeted() && !core.ContainsHex(b.Targets(bctx), target) {
		return nil, fmt.Errorf("%s at %s: %w", b.Name(), target, core.ErrNoSuchTarget)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	u := bctx.Unit
	r := ap.begin(u.ID)
	r.res.Timeline.Append(effects.Effect{Kind: effects.AbilityUsed, Unit: u.ID, Ability: b.Name()})

	if err := b.Activate(bctx, target, r); err != nil {
		ap.logger.Error().Err(err).
			Int("unit_id", int(u.ID)).
			Str("ability", b.Name()).
			Msg("Command activation failed")
		r.drain()
		return r.res, err
	}
	// toggles manage their own cooldown
	if b.Kind() == rules.Command {
		if err := slot.State.Use(); err != nil {
			return r.res, err
		}
	}
	r.drain()

	u.Tree = nil
	r.res.Final = u.Hex
	ap.logger.Debug().
		Int("unit_id", int(u.ID)).
		Str("ability", b.Name()).
		Int("knockouts", len(r.res.KnockedOut)).
		Msg("Command applied")
	return r.res, nil
}

// ApplyPassive runs a passive ability once, at match start
func (ap *ActionProcessor) ApplyPassive(bctx *rules.Context) (*Result, error) {
	slot := bctx.Unit.Slot(bctx.Slot)
	if slot == nil || slot.Behavior.Kind() != rules.Passive {
		return nil, core.ErrNoSuchCommand
	}
	r := ap.begin(bctx.Unit.ID)
	if err := slot.Behavior.Activate(bctx, bctx.From, r); err != nil {
		return r.res, fmt.Errorf("passive %s: %w", slot.Behavior.Name(), err)
	}
	r.drain()
	return r.res, nil
}

// KnockOut removes a unit outside any committed action, e.g. on forfeit
func (ap *ActionProcessor) KnockOut(id core.UnitID, by core.UnitID) *Result {
	r := ap.begin(by)
	r.queue = append(r.queue, knockout{id: id, by: by})
	r.drain()
	return r.res
}

// Expired is a status effect that ran out during a tick
type Expired struct {
	Unit   core.UnitID
	Effect status.Effect
}

// Completed is an ability whose duration reached zero during a tick
type Completed struct {
	Unit    core.UnitID
	Ability string
}

// TickReport summarises one team's turn-start tick
type TickReport struct {
	Expired   []Expired
	Completed []Completed
}

// Tick advances the status effects and ability timers of units by one turn
func (ap *ActionProcessor) Tick(units []*rules.Unit) TickReport {
	var report TickReport
	for _, u := range units {
		if u.KnockedOut {
			continue
		}
		for _, slot := range u.Abilities {
			if slot.State.Tick() {
				report.Completed = append(report.Completed, Completed{Unit: u.ID, Ability: slot.State.Name})
			}
		}
		for _, e := range u.Status.Tick() {
			report.Expired = append(report.Expired, Expired{Unit: u.ID, Effect: e})
		}
	}
	ap.logger.Debug().
		Int("units", len(units)).
		Int("expired", len(report.Expired)).
		Int("completed", len(report.Completed)).
		Msg("Ticked units")
	return report
}

func (r *resolution) unitAt(h core.Hex) (*rules.Unit, bool) {
	id, ok := r.ap.board.Occupant(h)
	if !ok {
		return nil, false
	}
	return r.ap.units.Unit(id)
}

// Push moves id one hex along dir. Units in the way are pushed first,
// farthest first. A unit pushed off the board is knocked out.
func (r *resolution) Push(id core.UnitID, dir core.Direction) error {
	first, ok := r.ap.units.Unit(id)
	if !ok {
		return core.ErrNoSuchUnit
	}
	grid := r.ap.board.Grid

	var chain []*rules.Unit
	h := first.Hex
	offBoard := false
	for {
		u, ok := r.unitAt(h)
		if !ok {
			break
		}
		if !u.Status.CanBeMoved() {
			return fmt.Errorf("unit %d is anchored: %w", u.ID, core.ErrPushBlocked)
		}
		chain = append(chain, u)
		next, ok := grid.Neighbor(h, dir)
		if !ok {
			offBoard = true
			break
		}
		h = next
	}
	if !offBoard && r.ap.board.IsBlocked(h) {
		return fmt.Errorf("%s: %w", h, core.ErrPushBlocked)
	}

	tl := r.res.Timeline
	if offBoard {
		last := chain[len(chain)-1]
		r.ap.board.RemoveUnit(last.Hex)
		tl.Join(effects.Effect{Kind: effects.Push, Unit: last.ID, From: last.Hex, To: last.Hex.Step(dir)})
		r.KnockOut(last.ID)
		chain = chain[:len(chain)-1]
	}
	for i := len(chain) - 1; i >= 0; i-- {
		u := chain[i]
		to := u.Hex.Step(dir)
		if err := r.ap.board.MoveUnit(u.Hex, to); err != nil {
			return err
		}
		tl.Join(effects.Effect{Kind: effects.Push, Unit: u.ID, From: u.Hex, To: to})
		u.Hex = to
	}
	return nil
}

func (r *resolution) ApplyStatus(target core.UnitID, kind status.Kind, duration int, source core.UnitID) {
	u, ok := r.ap.units.Unit(target)
	if !ok {
		return
	}
	u.Status.Add(kind, duration, source)
	r.res.Timeline.Join(effects.Effect{Kind: effects.StatusApplied, Unit: source, Target: target, Status: kind})
}

func (r *resolution) RemoveStatus(target core.UnitID, kind status.Kind, source core.UnitID) bool {
	u, ok := r.ap.units.Unit(target)
	if !ok || !u.Status.Remove(kind, source) {
		return false
	}
	r.res.Timeline.Join(effects.Effect{Kind: effects.StatusRemoved, Unit: source, Target: target, Status: kind})
	return true
}

func (r *resolution) Queue(id core.UnitID) bool {
	if r.queued[id] || r.ap.hooks.Queue == nil || !r.ap.hooks.Queue(id) {
		return false
	}
	r.queued[id] = true
	r.res.Queued = append(r.res.Queued, id)
	r.res.Timeline.Join(effects.Effect{Kind: effects.ExtraAction, Unit: id})
	return true
}

func (r *resolution) KnockOut(id core.UnitID) {
	r.queue = append(r.queue, knockout{id: id, by: r.actor})
}

// drain removes queued knockouts from play as one new timeline step.
// Hooks may queue further knockouts, which are drained in the same pass.
func (r *resolution) drain() {
	first := true
	for len(r.queue) > 0 {
		ko := r.queue[0]
		r.queue = r.queue[1:]

		u, ok := r.ap.units.Unit(ko.id)
		if !ok || u.KnockedOut {
			continue
		}
		if occ, ok := r.ap.board.Occupant(u.Hex); ok && occ == u.ID {
			r.ap.board.RemoveUnit(u.Hex)
		}
		u.KnockedOut = true
		u.Tree = nil
		r.ap.units.Remove(u.ID)
		r.res.KnockedOut = append(r.res.KnockedOut, u.ID)

		e := effects.Effect{Kind: effects.KnockOut, Unit: u.ID, From: u.Hex, Target: ko.by}
		if first {
			r.res.Timeline.Append(e)
			first = false
		} else {
			r.res.Timeline.Join(e)
		}
		r.retractFrom(u.ID)
		r.ap.logger.Info().
			Int("unit_id", int(u.ID)).
			Int("team", u.Team).
			Str("role", u.Role.String()).
			Int("by", int(ko.by)).
			Msg("Unit knocked out")
		if r.ap.hooks.KnockedOut != nil {
			r.ap.hooks.KnockedOut(u, ko.by)
		}
	}
}

// retractFrom lifts every status effect source applied to units still in
// play. A knocked out unit can no longer end its own effects.
func (r *resolution) retractFrom(source core.UnitID) {
	for _, u := range r.ap.units.All() {
		for _, e := range u.Status.RemoveSource(source) {
			r.res.Timeline.Join(effects.Effect{Kind: effects.StatusRemoved, Unit: source, Target: u.ID, Status: e.Kind})
		}
	}
}
