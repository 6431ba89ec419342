package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/HexTactics/internal/game/core"
	"github.com/mitchelldurbincs/HexTactics/internal/game/rules"
	"github.com/mitchelldurbincs/HexTactics/internal/testutil"
)

func TestEvaluator_PrefersVictory(t *testing.T) {
	s := testutil.NewScenario(2)
	require.NoError(t, s.Board.AddObjective(core.NewHex(-1, 0)))
	leader := s.Leader(0, core.NewHex(0, 0))
	s.Pawn(1, core.NewHex(1, 0))

	s.Generator().FindMoves(leader, leader.Hex, rules.NoNode, false)
	rules.NewEvaluator(s.Board, s.Units).Score(leader)

	best := rules.Best(leader.Tree)
	require.NotEqual(t, rules.NoNode, best)
	n := leader.Tree.Node(best)
	assert.True(t, n.Victory)
	assert.Equal(t, core.NewHex(-1, 0), n.Dest)
}

func TestEvaluator_AttackBeatsStep(t *testing.T) {
	s := testutil.NewScenario(3)
	a := s.Pawn(0, core.NewHex(0, 0))
	s.Pawn(1, core.NewHex(1, 0))

	s.Generator().FindMoves(a, a.Hex, rules.NoNode, false)
	rules.NewEvaluator(s.Board, s.Units).Score(a)

	best := a.Tree.Node(rules.Best(a.Tree))
	assert.Equal(t, rules.JumpAttack, best.Kind)
	assert.Greater(t, best.BaseValue, 0)
}

func TestEvaluator_FinalValueIncludesBestContinuation(t *testing.T) {
	s := testutil.NewScenario(4)
	a := s.Pawn(0, core.NewHex(0, 0))
	s.Pawn(1, core.NewHex(1, 0))
	s.Pawn(1, core.NewHex(2, 1))

	s.Generator().FindMoves(a, a.Hex, rules.NoNode, false)
	rules.NewEvaluator(s.Board, s.Units).Score(a)

	first := a.Tree.Candidates(rules.NoNode, core.NewHex(2, 0))[0]
	next := rules.BestContinuation(a.Tree, first)
	require.NotEqual(t, rules.NoNode, next)

	root := a.Tree.Node(first)
	child := a.Tree.Node(next)
	assert.Equal(t, root.BaseValue+child.FinalValue, root.FinalValue)
	assert.Equal(t, rules.JumpAttack, child.Kind)
}

func TestEvaluator_EmptyTree(t *testing.T) {
	s := testutil.NewScenario(0)
	u := s.Pawn(0, core.NewHex(0, 0))
	s.Generator().FindMoves(u, u.Hex, rules.NoNode, false)
	rules.NewEvaluator(s.Board, s.Units).Score(u)
	assert.Equal(t, rules.NoNode, rules.Best(u.Tree))
}

type testPlayer struct {
	id    int
	alive bool
}

func (p testPlayer) GetID() int { return p.id }
func (p testPlayer) IsAlive() bool { return p.alive }

func TestWinConditionChecker(t *testing.T) {
	wc := rules.NewWinConditionChecker(testutil.NopLogger(), 2)

	over, winner, reason := wc.CheckGameOver([]rules.Player{testPlayer{0, true}, testPlayer{1, true}})
	assert.False(t, over)
	assert.Equal(t, -1, winner)
	assert.Equal(t, rules.WinNone, reason)

	over, winner, reason = wc.CheckGameOver([]rules.Player{testPlayer{0, false}, testPlayer{1, true}})
	assert.True(t, over)
	assert.Equal(t, 1, winner)
	assert.Equal(t, rules.WinLastTeam, reason)

	over, winner, reason = wc.CheckGameOver([]rules.Player{testPlayer{0, false}, testPlayer{1, false}})
	assert.True(t, over)
	assert.Equal(t, -1, winner)
	assert.Equal(t, rules.WinNoSurvivor, reason)
}

func TestWinConditionChecker_Objective(t *testing.T) {
	s := testutil.NewScenario(2)
	require.NoError(t, s.Board.AddObjective(core.NewHex(1, 0)))
	leader := s.Leader(0, core.NewHex(1, 0))
	pawn := s.Pawn(0, core.NewHex(0, 0))
	wc := rules.NewWinConditionChecker(testutil.NopLogger(), 2)

	assert.True(t, wc.CheckObjective(s.Board, leader))
	assert.False(t, wc.CheckObjective(s.Board, pawn))
	assert.False(t, wc.CheckObjective(s.Board, nil))
}
