package rules

import (
	"fmt"

	"github.com/mitchelldurbincs/HexTactics/internal/game/core"
)

// NodeID indexes a node in a MoveTree
type NodeID int

// NoNode is the parent of root-level nodes
const NoNode NodeID = -1

// MoveKind tags how a node's destination is reached
type MoveKind int

const (
	Move MoveKind = iota
	Jump
	JumpAttack
	JumpAssist
	Special
	SpecialAttack
)

func (k MoveKind) String() string {
	switch k {
	case Move:
		return "Move"
	case Jump:
		return "Jump"
	case JumpAttack:
		return "JumpAttack"
	case JumpAssist:
		return "JumpAssist"
	case Special:
		return "Special"
	case SpecialAttack:
		return "SpecialAttack"
	default:
		return fmt.Sprintf("MoveKind(%d)", int(k))
	}
}

// IsJump reports whether k hops over an adjacent cell
func (k MoveKind) IsJump() bool {
	return k == Jump || k == JumpAttack || k == JumpAssist
}

// MoveNode is one candidate hop. Prior links it to the hop before it.
type MoveNode struct {
	ID            NodeID
	Dest          core.Hex
	Kind          MoveKind
	Direction     core.Direction
	Prior         NodeID
	AttackTargets []core.Hex
	AssistTargets []core.Hex
	Conflicted    bool
	Victory       bool
	Ability       int // slot index for Special kinds, -1 otherwise

	BaseValue  int
	FinalValue int

	// Expanded is set once continuations from Dest have been generated
	Expanded bool
}

// MoveTree is an arena of move nodes for one unit's action
type MoveTree struct {
	Unit   core.UnitID
	Origin core.Hex
	nodes  []MoveNode
}

// NewMoveTree creates an empty tree rooted at origin
func NewMoveTree(unit core.UnitID, origin core.Hex) *MoveTree {
	return &MoveTree{Unit: unit, Origin: origin}
}

// Len returns the number of nodes
func (t *MoveTree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.nodes)
}

// Empty reports whether the tree has no nodes
func (t *MoveTree) Empty() bool {
	return t.Len() == 0
}

// Node returns the node with id, or nil
func (t *MoveTree) Node(id NodeID) *MoveNode {
	if t == nil || id < 0 || int(id) >= len(t.nodes) {
		return nil
	}
	return &t.nodes[id]
}

// Nodes returns every node in generation order. The slice is the arena
// itself and must not be appended to.
func (t *MoveTree) Nodes() []MoveNode {
	if t == nil {
		return nil
	}
	return t.nodes
}

// Children returns the nodes whose Prior is prior, in generation order
func (t *MoveTree) Children(prior NodeID) []NodeID {
	if t == nil {
		return nil
	}
	var out []NodeID
	for i := range t.nodes {
		if t.nodes[i].Prior == prior {
			out = append(out, t.nodes[i].ID)
		}
	}
	return out
}

// Candidates returns the children of prior that end on dest
func (t *MoveTree) Candidates(prior NodeID, dest core.Hex) []NodeID {
	var out []NodeID
	for _, id := range t.Children(prior) {
		if t.nodes[id].Dest == dest {
			out = append(out, id)
		}
	}
	return out
}

// Path returns the chain from the root-level node down to id
func (t *MoveTree) Path(id NodeID) []NodeID {
	var rev []NodeID
	for n := t.Node(id); n != nil; n = t.Node(n.Prior) {
		rev = append(rev, n.ID)
		if len(rev) > len(t.nodes) {
			panic(fmt.Sprintf("move tree for unit %d has a cycle through node %d", t.Unit, id))
		}
	}
	out := make([]NodeID, len(rev))
	for i, n := range rev {
		out[len(rev)-1-i] = n
	}
	return out
}

// Visited returns the hexes used on the way to and including id,
// starting with the origin
func (t *MoveTree) Visited(id NodeID) []core.Hex {
	out := []core.Hex{t.Origin}
	for _, n := range t.Path(id) {
		out = append(out, t.nodes[n].Dest)
	}
	return out
}

// Depth is the number of hops from the origin to id
func (t *MoveTree) Depth(id NodeID) int {
	return len(t.Path(id))
}

func (t *MoveTree) add(n MoveNode) NodeID {
	n.ID = NodeID(len(t.nodes))
	t.nodes = append(t.nodes, n)
	return n.ID
}

// MarkConflicts flags every sibling group sharing a destination.
// Nothing is merged or removed.
func (t *MoveTree) MarkConflicts() int {
	type key struct {
		prior NodeID
		dest  core.Hex
	}
	groups := make(map[key]int, len(t.nodes))
	for i := range t.nodes {
		groups[key{t.nodes[i].Prior, t.nodes[i].Dest}]++
	}
	flagged := 0
	for i := range t.nodes {
		n := &t.nodes[i]
		n.Conflicted = groups[key{n.Prior, n.Dest}] > 1
		if n.Conflicted {
			flagged++
		}
	}
	return flagged
}
