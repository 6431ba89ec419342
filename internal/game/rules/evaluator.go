package rules

import (
	"github.com/mitchelldurbincs/HexTactics/internal/game/core"
)

// VictoryValue dominates every other score
const VictoryValue = 1 << 20

// Evaluator annotates move trees with AI scores. It only reads the board.
type Evaluator struct {
	board *core.Board
	units UnitLookup
}

// NewEvaluator creates an evaluator
func NewEvaluator(board *core.Board, units UnitLookup) *Evaluator {
	return &Evaluator{board: board, units: units}
}

// Score fills BaseValue and FinalValue for every node of u.Tree.
// FinalValue is the node's own value plus the best continuation.
func (e *Evaluator) Score(u *Unit) {
	t := u.Tree
	if t == nil {
		return
	}
	for i := range t.nodes {
		n := &t.nodes[i]
		from := t.Origin
		if p := t.Node(n.Prior); p != nil {
			from = p.Dest
		}
		n.BaseValue = e.baseValue(u, n, u.PositionValue(e.board, from))
		n.FinalValue = n.BaseValue
	}
	// children always have larger IDs than their prior
	best := make(map[NodeID]int)
	for i := len(t.nodes) - 1; i >= 0; i-- {
		n := &t.nodes[i]
		if b, ok := best[n.ID]; ok && b > 0 {
			n.FinalValue += b
		}
		if n.Prior != NoNode {
			if b, ok := best[n.Prior]; !ok || n.FinalValue > b {
				best[n.Prior] = n.FinalValue
			}
		}
	}
}

func (e *Evaluator) baseValue(u *Unit, n *MoveNode, from int) int {
	v := u.PositionValue(e.board, n.Dest) - from
	for _, h := range n.AttackTargets {
		if id, ok := e.board.Occupant(h); ok {
			if target, ok := e.units.Unit(id); ok {
				v += target.AttackValue
				if target.Role == Leader {
					v += VictoryValue / 2
				}
			}
		}
	}
	v += u.AssistValue * len(n.AssistTargets)
	if n.Victory {
		v += VictoryValue
	}
	return v
}

// Best returns the highest-FinalValue root-level node, or NoNode.
// Ties go to the earliest generated node.
func Best(t *MoveTree) NodeID {
	return BestContinuation(t, NoNode)
}

// BestContinuation returns the highest-FinalValue child of prior, or NoNode
func BestContinuation(t *MoveTree, prior NodeID) NodeID {
	best := NoNode
	for _, id := range t.Children(prior) {
		if best == NoNode || t.nodes[id].FinalValue > t.nodes[best].FinalValue {
			best = id
		}
	}
	return best
}
