package rules

import (
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/HexTactics/internal/game/core"
)

// Generator builds move trees from the current board
type Generator struct {
	board  *core.Board
	units  UnitLookup
	logger zerolog.Logger

	// Verify runs VerifyTree after every generation
	Verify bool
	// HasActed is forwarded to behavior contexts
	HasActed func(core.UnitID) bool
}

// NewGenerator creates a generator over board and units
func NewGenerator(board *core.Board, units UnitLookup, logger zerolog.Logger) *Generator {
	return &Generator{
		board:  board,
		units:  units,
		logger: logger.With().Str("component", "MoveGenerator").Logger(),
	}
}

// FindMoves populates u.Tree. With prerequisite == NoNode the old tree is
// discarded and a fresh one is generated from hex. Otherwise continuations
// of the prerequisite node are added; expanding a node twice is a no-op.
func (g *Generator) FindMoves(u *Unit, hex core.Hex, prerequisite NodeID, jumpsOnly bool) {
	if prerequisite == NoNode {
		u.Tree = NewMoveTree(u.ID, hex)
	} else {
		n := u.Tree.Node(prerequisite)
		if n == nil || n.Expanded {
			return
		}
		n.Expanded = true
	}

	g.expand(u, hex, prerequisite, jumpsOnly)
	if prerequisite == NoNode {
		g.contributeAbilities(u, hex)
	}
	conflicts := u.Tree.MarkConflicts()

	g.logger.Debug().
		Int("unit_id", int(u.ID)).
		Str("from", hex.String()).
		Int("prerequisite", int(prerequisite)).
		Bool("jumps_only", jumpsOnly).
		Int("nodes", u.Tree.Len()).
		Int("conflicted", conflicts).
		Msg("Move tree generated")

	if g.Verify {
		VerifyTree(g.board, u)
	}
}

func (g *Generator) expand(u *Unit, from core.Hex, prior NodeID, jumpsOnly bool) {
	if !u.Status.CanMove() {
		return
	}

	visited := make(map[core.Hex]struct{})
	for _, h := range u.Tree.Visited(prior) {
		visited[h] = struct{}{}
	}
	struck := make(map[core.Hex]struct{})
	for _, id := range u.Tree.Path(prior) {
		for _, h := range u.Tree.Node(id).AttackTargets {
			struck[h] = struct{}{}
		}
	}

	for _, d := range core.Directions {
		next, ok := g.board.Grid.Neighbor(from, d)
		if !ok {
			continue
		}
		_, seen := visited[next]

		if !jumpsOnly && !seen && !g.board.IsBlocked(next) {
			u.Tree.add(MoveNode{
				Dest:      next,
				Kind:      Move,
				Direction: d,
				Prior:     prior,
				Ability:   -1,
				Victory:   g.isVictory(u, next),
				Expanded:  true,
			})
		}

		if _, ok := struck[next]; ok {
			continue
		}
		kind, ok := g.jumpKind(u, next)
		if !ok {
			continue
		}
		beyond, ok := g.board.Grid.Neighbor(next, d)
		if !ok || g.board.IsBlocked(beyond) {
			continue
		}
		if _, seen := visited[beyond]; seen {
			continue
		}

		node := MoveNode{
			Dest:      beyond,
			Kind:      kind,
			Direction: d,
			Prior:     prior,
			Ability:   -1,
			Victory:   g.isVictory(u, beyond),
			Expanded:  true,
		}
		switch kind {
		case JumpAttack:
			node.AttackTargets = []core.Hex{next}
		case JumpAssist:
			node.AssistTargets = []core.Hex{next}
		}
		id := u.Tree.add(node)
		g.expand(u, beyond, id, true)
	}
}

// jumpKind decides whether the cell at h can be jumped and how
func (g *Generator) jumpKind(u *Unit, h core.Hex) (MoveKind, bool) {
	if id, ok := g.board.Occupant(h); ok {
		if id == u.ID {
			return 0, false
		}
		other, ok := g.units.Unit(id)
		if !ok {
			return 0, false
		}
		if other.Team != u.Team {
			if CanAttack(u, other) {
				return JumpAttack, true
			}
			return 0, false
		}
		if CanAssist(u, other) {
			return JumpAssist, true
		}
		return Jump, true
	}
	if obj := g.board.ObjectAt(h); obj != nil && obj.CanBeJumped {
		return Jump, true
	}
	return 0, false
}

func (g *Generator) contributeAbilities(u *Unit, from core.Hex) {
	for i, slot := range u.Abilities {
		if slot.Behavior == nil || slot.Behavior.Kind() != SpecialMove {
			continue
		}
		ctx := g.Context(u, i, from)
		if !slot.Behavior.Available(ctx) {
			continue
		}
		for _, c := range slot.Behavior.ContributeMoves(ctx) {
			if !g.acceptCandidate(u, from, c) {
				continue
			}
			u.Tree.add(MoveNode{
				Dest:          c.Dest,
				Kind:          c.Kind,
				Direction:     c.Direction,
				Prior:         NoNode,
				AttackTargets: append([]core.Hex(nil), c.AttackTargets...),
				Ability:       i,
				Victory:       g.isVictory(u, c.Dest),
				Expanded:      true,
			})
		}
	}
}

func (g *Generator) acceptCandidate(u *Unit, from core.Hex, c Candidate) bool {
	if c.Dest == from || !g.board.InBounds(c.Dest) || g.board.IsBlocked(c.Dest) {
		return false
	}
	if c.Kind != Special && c.Kind != SpecialAttack {
		return false
	}
	if c.Kind == SpecialAttack && len(c.AttackTargets) == 0 {
		return false
	}
	return true
}

func (g *Generator) isVictory(u *Unit, h core.Hex) bool {
	return u.Role == Leader && g.board.IsObjective(h)
}

// Context builds the behavior context for slot i of u standing on from
func (g *Generator) Context(u *Unit, slot int, from core.Hex) *Context {
	ctx := &Context{
		Unit:     u,
		Slot:     slot,
		Board:    g.board,
		Units:    g.units,
		From:     from,
		HasActed: g.HasActed,
	}
	if s := u.Slot(slot); s != nil {
		ctx.State = s.State
	}
	return ctx
}

// Commands returns the slots of u whose command behavior is usable now
func (g *Generator) Commands(u *Unit) []int {
	var out []int
	for i, slot := range u.Abilities {
		if slot.Behavior == nil || !slot.Behavior.Kind().IsCommand() {
			continue
		}
		if slot.Behavior.Available(g.Context(u, i, u.Hex)) {
			out = append(out, i)
		}
	}
	return out
}

// HasAction regenerates u's tree and reports whether u has any move or
// usable command. Conflicted moves count since a disambiguating choice can
// still select them.
func (g *Generator) HasAction(u *Unit) bool {
	g.FindMoves(u, u.Hex, NoNode, false)
	return !u.Tree.Empty() || len(g.Commands(u)) > 0
}
