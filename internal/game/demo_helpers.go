package game

import (
	"context"
	"math/rand"

	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/HexTactics/internal/game/core"
	"github.com/mitchelldurbincs/HexTactics/internal/game/rules"
	"github.com/mitchelldurbincs/HexTactics/internal/game/states"
)

// These helpers drive the controller for demos, tests and simple baseline
// agents. Each call performs at most one controller step.

// PlayGreedyAction makes the current player take the evaluator's best
// action. Pending effects are acknowledged and an exhausted turn is ended.
func PlayGreedyAction(ctx context.Context, e *Engine) error {
	return playAction(ctx, e, func(u *rules.Unit) rules.NodeID {
		e.evaluator.Score(u)
		return rules.Best(u.Tree)
	}, func(u *rules.Unit, prior rules.NodeID) rules.NodeID {
		e.evaluator.Score(u)
		next := rules.BestContinuation(u.Tree, prior)
		if next == rules.NoNode || u.Tree.Node(next).FinalValue <= 0 {
			return rules.NoNode
		}
		return next
	}, nil)
}

// PlayRandomAction makes the current player take a uniformly random action
func PlayRandomAction(ctx context.Context, e *Engine, rng *rand.Rand) error {
	pick := func(ids []rules.NodeID) rules.NodeID {
		if len(ids) == 0 {
			return rules.NoNode
		}
		return ids[rng.Intn(len(ids))]
	}
	return playAction(ctx, e, func(u *rules.Unit) rules.NodeID {
		return pick(u.Tree.Children(rules.NoNode))
	}, func(u *rules.Unit, prior rules.NodeID) rules.NodeID {
		if rng.Float32() < 0.5 {
			return rules.NoNode
		}
		return pick(u.Tree.Children(prior))
	}, rng)
}

type (
	firstHop func(u *rules.Unit) rules.NodeID
	nextHop  func(u *rules.Unit, prior rules.NodeID) rules.NodeID
)

func playAction(ctx context.Context, e *Engine, first firstHop, next nextHop, rng *rand.Rand) error {
	if e.IsGameOver() {
		if e.Phase() == states.PhaseAnimating {
			return e.AcknowledgeEffects()
		}
		return nil
	}
	switch e.Phase() {
	case states.PhaseAnimating:
		return e.ContinueTurn()
	case states.PhaseNoSelection:
	default:
		for e.Phase().Cancellable() {
			if err := e.CancelSelection(); err != nil {
				return err
			}
		}
	}

	player := e.CurrentPlayer()
	candidates := e.SelectableUnits()
	if len(candidates) == 0 {
		return e.EndTurn(false)
	}

	var id core.UnitID
	if rng != nil {
		id = candidates[rng.Intn(len(candidates))]
	} else {
		id = bestUnit(e, candidates, first)
	}
	if err := e.SelectUnit(player, id); err != nil {
		return err
	}
	u, _ := e.Unit(id)

	node := first(u)
	if node == rules.NoNode {
		return playCommand(ctx, e, u, rng)
	}
	for node != rules.NoNode {
		if err := e.SelectMove(u.Tree.Node(node).Dest, choiceOf(u.Tree, node)); err != nil {
			return err
		}
		node = next(u, node)
	}

	log.Debug().
		Int("player_id", player).
		Int("unit_id", int(id)).
		Int("hops", u.Tree.Depth(e.stateMachine.GetContext().Move)).
		Msg("Agent executing move")
	return e.ExecuteMove(ctx)
}

// bestUnit scores every candidate's tree and returns the unit with the
// best root move
func bestUnit(e *Engine, candidates []core.UnitID, first firstHop) core.UnitID {
	best, bestValue := candidates[0], 0
	for i, id := range candidates {
		u, ok := e.Unit(id)
		if !ok {
			continue
		}
		e.gen.FindMoves(u, u.Hex, rules.NoNode, false)
		n := u.Tree.Node(first(u))
		if n == nil {
			continue
		}
		if i == 0 || n.FinalValue > bestValue {
			best, bestValue = id, n.FinalValue
		}
	}
	return best
}

func playCommand(ctx context.Context, e *Engine, u *rules.Unit, rng *rand.Rand) error {
	commands := e.AvailableCommands()
	if len(commands) == 0 {
		return e.CancelSelection()
	}
	slot := commands[0]
	if rng != nil {
		slot = commands[rng.Intn(len(commands))]
	}
	if err := e.SelectCommand(slot); err != nil {
		return err
	}
	var target core.Hex
	if u.Slot(slot).Behavior.Targeted() {
		targets := e.CommandTargets(slot)
		if len(targets) == 0 {
			return e.CancelSelection()
		}
		target = targets[0]
		if rng != nil {
			target = targets[rng.Intn(len(targets))]
		}
	}
	log.Debug().
		Int("unit_id", int(u.ID)).
		Str("ability", u.Slot(slot).State.Name).
		Stringer("target", target).
		Msg("Agent executing command")
	return e.ExecuteCommand(ctx, target)
}

// choiceOf returns the disambiguating choice that selects node
func choiceOf(t *rules.MoveTree, node rules.NodeID) int {
	n := t.Node(node)
	candidates := t.Candidates(n.Prior, n.Dest)
	if len(candidates) < 2 {
		return 0
	}
	for i, id := range candidates {
		if id == node {
			return i + 1
		}
	}
	return 0
}
