package rules

import (
	"fmt"

	"github.com/mitchelldurbincs/HexTactics/internal/game/core"
)

// TreeViolation describes a broken move tree invariant
type TreeViolation struct {
	Unit   core.UnitID
	Node   NodeID
	Reason string
}

func (v TreeViolation) Error() string {
	return fmt.Sprintf("unit %d node %d: %s", v.Unit, v.Node, v.Reason)
}

// CheckTree returns every invariant violation in u's tree
func CheckTree(b *core.Board, u *Unit) []TreeViolation {
	t := u.Tree
	if t == nil {
		return nil
	}
	var out []TreeViolation
	bad := func(id NodeID, format string, args ...any) {
		out = append(out, TreeViolation{Unit: u.ID, Node: id, Reason: fmt.Sprintf(format, args...)})
	}

	type key struct {
		prior NodeID
		dest  core.Hex
	}
	groups := make(map[key][]NodeID)

	for i := range t.nodes {
		n := &t.nodes[i]
		if n.ID != NodeID(i) {
			bad(n.ID, "stored at index %d", i)
		}
		if n.Prior != NoNode && (n.Prior < 0 || n.Prior >= n.ID) {
			bad(n.ID, "prior %d does not precede it", n.Prior)
			continue
		}
		if n.Dest == t.Origin {
			bad(n.ID, "destination is the origin %s", n.Dest)
		}
		if !b.InBounds(n.Dest) {
			bad(n.ID, "destination %s is off the board", n.Dest)
		} else if b.IsBlocked(n.Dest) {
			bad(n.ID, "destination %s is blocked", n.Dest)
		}
		for p := t.Node(n.Prior); p != nil; p = t.Node(p.Prior) {
			if p.Dest == n.Dest {
				bad(n.ID, "revisits %s already reached by node %d", n.Dest, p.ID)
			}
		}
		groups[key{n.Prior, n.Dest}] = append(groups[key{n.Prior, n.Dest}], n.ID)
	}

	for _, ids := range groups {
		for _, id := range ids {
			if want := len(ids) > 1; t.nodes[id].Conflicted != want {
				bad(id, "conflicted=%v but sibling group has %d members", t.nodes[id].Conflicted, len(ids))
			}
		}
	}
	return out
}

// VerifyTree panics on the first invariant violation. A broken tree means
// the generator itself is wrong.
func VerifyTree(b *core.Board, u *Unit) {
	if v := CheckTree(b, u); len(v) > 0 {
		panic(v[0].Error())
	}
}
