package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/HexTactics/internal/game/core"
	"github.com/mitchelldurbincs/HexTactics/internal/game/rules"
	"github.com/mitchelldurbincs/HexTactics/internal/game/status"
	"github.com/mitchelldurbincs/HexTactics/internal/testutil"
)

// recordingApplier applies status changes directly and records the rest
type recordingApplier struct {
	units  *rules.Roster
	pushes []core.UnitID
	dirs   []core.Direction
	queued []core.UnitID
	kos    []core.UnitID
}

func (r *recordingApplier) Push(id core.UnitID, dir core.Direction) error {
	r.pushes = append(r.pushes, id)
	r.dirs = append(r.dirs, dir)
	return nil
}

func (r *recordingApplier) ApplyStatus(target core.UnitID, kind status.Kind, duration int, source core.UnitID) {
	if u, ok := r.units.Unit(target); ok {
		u.Status.Add(kind, duration, source)
	}
}

func (r *recordingApplier) RemoveStatus(target core.UnitID, kind status.Kind, source core.UnitID) bool {
	if u, ok := r.units.Unit(target); ok {
		return u.Status.Remove(kind, source)
	}
	return false
}

func (r *recordingApplier) Queue(id core.UnitID) bool {
	r.queued = append(r.queued, id)
	return true
}

func (r *recordingApplier) KnockOut(id core.UnitID) {
	r.kos = append(r.kos, id)
}

func TestBehaviorRegistry(t *testing.T) {
	names := rules.RegisteredBehaviors()
	for _, want := range []string{
		rules.BehaviorBlink, rules.BehaviorCatapult, rules.BehaviorLunge, rules.BehaviorShockwave,
		rules.BehaviorStunBolt, rules.BehaviorRally, rules.BehaviorGuard, rules.BehaviorStalwart,
	} {
		assert.Contains(t, names, want)
	}

	_, err := rules.NewBehavior("meteor")
	assert.ErrorIs(t, err, rules.ErrUnknownBehavior)

	err = rules.RegisterBehavior(rules.BehaviorBlink, func() rules.Behavior { return rules.BehaviorFuncs{} })
	assert.ErrorIs(t, err, rules.ErrDuplicateBehavior)
	assert.ErrorIs(t, rules.RegisterBehavior("nil", nil), rules.ErrNilBehaviorFactory)
}

func TestBehaviorKinds(t *testing.T) {
	tests := map[string]rules.BehaviorKind{
		rules.BehaviorBlink:     rules.SpecialMove,
		rules.BehaviorCatapult:  rules.SpecialMove,
		rules.BehaviorLunge:     rules.SpecialMove,
		rules.BehaviorShockwave: rules.Command,
		rules.BehaviorStunBolt:  rules.Command,
		rules.BehaviorRally:     rules.Command,
		rules.BehaviorGuard:     rules.ToggleCommand,
		rules.BehaviorStalwart:  rules.Passive,
	}
	for name, kind := range tests {
		b, err := rules.NewBehavior(name)
		require.NoError(t, err)
		assert.Equal(t, kind, b.Kind(), name)
		assert.Equal(t, name, b.Name())
	}
}

func TestBlink(t *testing.T) {
	s := testutil.NewScenario(3)
	hero := s.Hero(0, core.NewHex(0, 0), rules.BehaviorBlink)
	s.Pawn(1, core.NewHex(2, 0))

	s.Generator().FindMoves(hero, hero.Hex, rules.NoNode, false)

	specials := testutil.NodesOfKind(hero.Tree, rules.Special)
	assert.Len(t, specials, 11, "twelve ring-two hexes minus the occupied one")
	for _, n := range specials {
		assert.Equal(t, 2, core.Distance(hero.Hex, n.Dest))
	}

	t.Run("dormant ability contributes nothing", func(t *testing.T) {
		require.NoError(t, hero.Abilities[0].State.Use())
		s.Generator().FindMoves(hero, hero.Hex, rules.NoNode, false)
		assert.Empty(t, testutil.NodesOfKind(hero.Tree, rules.Special))
	})
}

func TestCatapult(t *testing.T) {
	s := testutil.NewScenario(3)
	inner := s.Hero(0, core.NewHex(0, 0), rules.BehaviorCatapult)
	edge := s.Hero(0, core.NewHex(-3, 0), rules.BehaviorCatapult)
	gen := s.Generator()

	gen.FindMoves(inner, inner.Hex, rules.NoNode, false)
	assert.Empty(t, testutil.NodesOfKind(inner.Tree, rules.Special), "only from an edge")

	gen.FindMoves(edge, edge.Hex, rules.NoNode, false)
	specials := testutil.NodesOfKind(edge.Tree, rules.Special)
	require.Len(t, specials, 3, "east, north-east and south-east stay on the board")
	for _, n := range specials {
		assert.Equal(t, 0, n.Ability)
		assert.Equal(t, 2, core.Distance(edge.Hex, n.Dest), "range perk is 2")
		assert.Equal(t, n.Dest, edge.Hex.Add(n.Direction.Vector().Scale(2)), "straight line")
	}
}

func TestLunge(t *testing.T) {
	s := testutil.NewScenario(3)
	hero := s.Hero(0, core.NewHex(0, 0), rules.BehaviorLunge)
	s.Pawn(1, core.NewHex(3, 0))
	s.Pawn(1, core.NewHex(0, 2))
	gen := s.Generator()

	gen.FindMoves(hero, hero.Hex, rules.NoNode, false)
	lunges := testutil.NodesOfKind(hero.Tree, rules.SpecialAttack)
	require.Len(t, lunges, 2)

	byDest := map[core.Hex][]core.Hex{}
	for _, n := range lunges {
		byDest[n.Dest] = n.AttackTargets
	}
	assert.Equal(t, []core.Hex{core.NewHex(3, 0)}, byDest[core.NewHex(2, 0)])
	assert.Equal(t, []core.Hex{core.NewHex(0, 2)}, byDest[core.NewHex(0, 1)])

	t.Run("dash is stopped by a blocker", func(t *testing.T) {
		s.Boulder(core.NewHex(1, 0))
		gen.FindMoves(hero, hero.Hex, rules.NoNode, false)
		lunges := testutil.NodesOfKind(hero.Tree, rules.SpecialAttack)
		require.Len(t, lunges, 1)
		assert.Equal(t, core.NewHex(0, 1), lunges[0].Dest)
	})
}

func TestShockwave(t *testing.T) {
	s := testutil.NewScenario(3)
	hero := s.Hero(0, core.NewHex(0, 0), rules.BehaviorShockwave)
	enemy := s.Pawn(1, core.NewHex(1, 0))
	anchored := s.Pawn(1, core.NewHex(0, 1))
	anchored.Status.Add(status.Anchored, 0, anchored.ID)
	gen := s.Generator()

	assert.Equal(t, []int{0}, gen.Commands(hero))

	fx := &recordingApplier{units: s.Units}
	slot := hero.Abilities[0]
	require.NoError(t, slot.Behavior.Activate(gen.Context(hero, 0, hero.Hex), core.Hex{}, fx))

	assert.Equal(t, []core.UnitID{enemy.ID}, fx.pushes)
	assert.Equal(t, []core.Direction{core.East}, fx.dirs)

	t.Run("nothing to push", func(t *testing.T) {
		lone := testutil.NewScenario(2)
		h := lone.Hero(0, core.NewHex(0, 0), rules.BehaviorShockwave)
		assert.Empty(t, lone.Generator().Commands(h))
	})
}

func TestStunBolt(t *testing.T) {
	s := testutil.NewScenario(3)
	caster := s.Hero(0, core.NewHex(0, 0), rules.BehaviorStunBolt)
	victim := s.Pawn(1, core.NewHex(2, 0))
	s.Pawn(1, core.NewHex(-3, 0))
	gen := s.Generator()

	slot := caster.Abilities[0]
	ctx := gen.Context(caster, 0, caster.Hex)
	assert.Equal(t, []core.Hex{core.NewHex(2, 0)}, slot.Behavior.Targets(ctx), "range perk is 2")

	fx := &recordingApplier{units: s.Units}
	require.NoError(t, slot.Behavior.Activate(ctx, victim.Hex, fx))
	require.NoError(t, slot.State.Use())
	assert.True(t, victim.Status.Has(status.Stunned, caster.ID))
	assert.False(t, victim.Status.CanMove())

	assert.True(t, slot.State.Tick(), "duration 1 completes on the first tick")
	assert.False(t, victim.Status.Has(status.Stunned, caster.ID))
	assert.True(t, victim.Status.CanMove())

	t.Run("warded enemies are not targets", func(t *testing.T) {
		victim.Status.Add(status.Warded, 0, victim.ID)
		assert.Empty(t, slot.Behavior.Targets(ctx))
	})
}

func TestStunBolt_VictimRemovedBeforeCompletion(t *testing.T) {
	s := testutil.NewScenario(3)
	caster := s.Hero(0, core.NewHex(0, 0), rules.BehaviorStunBolt)
	victim := s.Pawn(1, core.NewHex(1, 0))
	gen := s.Generator()

	slot := caster.Abilities[0]
	fx := &recordingApplier{units: s.Units}
	require.NoError(t, slot.Behavior.Activate(gen.Context(caster, 0, caster.Hex), victim.Hex, fx))
	require.NoError(t, slot.State.Use())

	s.Units.Remove(victim.ID)
	assert.NotPanics(t, func() { slot.State.Tick() })
}

func TestRally(t *testing.T) {
	s := testutil.NewScenario(2)
	leader := s.Leader(0, core.NewHex(0, 0))
	testutil.Equip(leader, rules.BehaviorRally, 0, 2, 1)
	fresh := s.Pawn(0, core.NewHex(1, 0))
	tired := s.Pawn(0, core.NewHex(-1, 0))
	s.Pawn(1, core.NewHex(0, 1))

	gen := s.Generator()
	gen.HasActed = func(id core.UnitID) bool { return id == tired.ID }

	slot := leader.Abilities[0]
	ctx := gen.Context(leader, 0, leader.Hex)
	assert.Equal(t, []core.Hex{fresh.Hex}, slot.Behavior.Targets(ctx))

	fx := &recordingApplier{units: s.Units}
	require.NoError(t, slot.Behavior.Activate(ctx, fresh.Hex, fx))
	assert.Equal(t, []core.UnitID{fresh.ID}, fx.queued)

	assert.ErrorIs(t, slot.Behavior.Activate(ctx, core.NewHex(2, -2), fx), core.ErrNoSuchTarget)
}

func TestGuard(t *testing.T) {
	s := testutil.NewScenario(2)
	hero := s.Hero(0, core.NewHex(0, 0), rules.BehaviorGuard)
	gen := s.Generator()
	slot := hero.Abilities[0]
	fx := &recordingApplier{units: s.Units}
	ctx := gen.Context(hero, 0, hero.Hex)

	require.NoError(t, slot.Behavior.Activate(ctx, core.Hex{}, fx))
	assert.False(t, hero.Status.CanBeAttacked())
	assert.False(t, hero.Status.CanMove())
	assert.Equal(t, []int{0}, gen.Commands(hero), "toggle-off stays available")

	require.NoError(t, slot.Behavior.Activate(ctx, core.Hex{}, fx))
	assert.True(t, hero.Status.CanBeAttacked())
	assert.True(t, hero.Status.CanMove())
	assert.Equal(t, 2, slot.State.Cooldown)
	assert.Empty(t, gen.Commands(hero))
}

func TestStalwart(t *testing.T) {
	s := testutil.NewScenario(2)
	hero := s.Hero(0, core.NewHex(0, 0), rules.BehaviorStalwart)
	gen := s.Generator()
	slot := hero.Abilities[0]

	assert.Empty(t, gen.Commands(hero))
	assert.False(t, slot.Behavior.Available(gen.Context(hero, 0, hero.Hex)))

	fx := &recordingApplier{units: s.Units}
	require.NoError(t, slot.Behavior.Activate(gen.Context(hero, 0, hero.Hex), core.Hex{}, fx))
	assert.False(t, hero.Status.CanBeMoved())
	assert.Empty(t, hero.Status.Tick())
	assert.False(t, hero.Status.CanBeMoved())
}

func TestCommandsRespectSilence(t *testing.T) {
	s := testutil.NewScenario(2)
	hero := s.Hero(0, core.NewHex(0, 0), rules.BehaviorStunBolt)
	s.Pawn(1, core.NewHex(1, 0))
	gen := s.Generator()

	assert.Equal(t, []int{0}, gen.Commands(hero))
	hero.Status.Add(status.Silenced, 1, 5)
	assert.Empty(t, gen.Commands(hero))
}
