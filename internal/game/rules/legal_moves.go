package rules

import "github.com/mitchelldurbincs/HexTactics/internal/game/core"

// LegalMoveCalculator answers "what may be selected next" questions
type LegalMoveCalculator struct {
	gen *Generator
}

// NewLegalMoveCalculator creates a new legal move calculator
func NewLegalMoveCalculator(gen *Generator) *LegalMoveCalculator {
	return &LegalMoveCalculator{gen: gen}
}

// SelectableUnits regenerates trees for units and returns the IDs of the
// ones with any move or usable command, in input order
func (lmc *LegalMoveCalculator) SelectableUnits(units []*Unit) []core.UnitID {
	var out []core.UnitID
	for _, u := range units {
		if u.KnockedOut {
			continue
		}
		if lmc.gen.HasAction(u) {
			out = append(out, u.ID)
		}
	}
	return out
}

// GetLegalDestinationMask returns a boolean mask indexed by TileID marking
// hexes reachable by one more hop after prior in u's current tree.
// Conflicted destinations are included.
func (lmc *LegalMoveCalculator) GetLegalDestinationMask(board *core.Board, u *Unit, prior NodeID) []bool {
	mask := make([]bool, board.Grid.Size())
	if u == nil || u.Tree == nil {
		return mask
	}
	for _, id := range u.Tree.Children(prior) {
		if tid := board.Grid.TileID(u.Tree.Node(id).Dest); tid != core.NoTile {
			mask[tid] = true
		}
	}
	return mask
}

// GetLegalDestinations lists the distinct destinations after prior in
// generation order
func (lmc *LegalMoveCalculator) GetLegalDestinations(u *Unit, prior NodeID) []core.Hex {
	if u == nil || u.Tree == nil {
		return nil
	}
	var out []core.Hex
	for _, id := range u.Tree.Children(prior) {
		if d := u.Tree.Node(id).Dest; !core.ContainsHex(out, d) {
			out = append(out, d)
		}
	}
	return out
}
