package game

import (
	"strings"

	"github.com/mitchelldurbincs/HexTactics/internal/common"
	"github.com/mitchelldurbincs/HexTactics/internal/game/core"
	"github.com/mitchelldurbincs/HexTactics/internal/game/rules"
)

// This file contains all board rendering functionality for the game engine.

const (
	emptySymbol     = "·"
	objectiveSymbol = "◎"
	blockSymbol     = "▲"
	floorSymbol     = "~"
	targetSymbol    = "*"
	teamSymbols     = "ABCDEFGH"

	// every cell is this many runes wide, rows are shifted by half of it
	cellWidth = 4
)

// RenderOptions controls the text rendering of the board
type RenderOptions struct {
	Color       bool
	Coordinates bool
	// Highlight marks tiles by TileID, e.g. a legal destination mask
	Highlight []bool
}

// Render returns the board as pointy-top hex rows. When a unit is
// selected its legal destinations are highlighted.
func (e *Engine) Render(opts RenderOptions) string {
	if opts.Highlight == nil {
		if _, err := e.selectedUnit(); err == nil {
			opts.Highlight = e.LegalDestinationMask()
		}
	}
	return RenderBoard(e.gs.Board, e.gs.Units, opts)
}

// RenderBoard draws board with the units found in lookup
func RenderBoard(board *core.Board, lookup rules.UnitLookup, opts RenderOptions) string {
	radius := board.Grid.Radius

	var sb strings.Builder
	sb.Grow((2*radius + 1) * (2*radius + 1) * (cellWidth + 12))

	for r := -radius; r <= radius; r++ {
		if opts.Coordinates {
			sb.WriteString(core.IntToStringFixedWidth(r, 3))
			sb.WriteString(" ")
		}
		sb.WriteString(strings.Repeat(" ", common.Abs(r)*cellWidth/2))

		qMin := common.Max(-radius, -r-radius)
		qMax := common.Min(radius, -r+radius)
		for q := qMin; q <= qMax; q++ {
			writeCell(&sb, board, lookup, core.Hex{Q: q, R: r}, opts)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString("A-H=teams L=leader H=hero P=pawn ")
	sb.WriteString(objectiveSymbol + "=objective ")
	sb.WriteString(blockSymbol + "=obstacle ")
	sb.WriteString(floorSymbol + "=passable object ")
	sb.WriteString(targetSymbol + "=destination\n")
	return sb.String()
}

// writeCell writes one padded cell
func writeCell(sb *strings.Builder, board *core.Board, lookup rules.UnitLookup, h core.Hex, opts RenderOptions) {
	symbol, color := cellDisplay(board, lookup, h)

	tid := board.Grid.TileID(h)
	highlighted := tid != core.NoTile && int(tid) < len(opts.Highlight) && opts.Highlight[tid]
	if highlighted && symbol == emptySymbol {
		symbol, color = targetSymbol, common.ColorYellow
	}
	if board.IsObjective(h) && opts.Color && symbol != objectiveSymbol {
		color = common.BgYellow + color
	}

	sb.WriteString(common.Colorize(symbol, color, opts.Color))
	sb.WriteString(strings.Repeat(" ", cellWidth-len([]rune(symbol))))
}

// cellDisplay picks the symbol and color for h
func cellDisplay(board *core.Board, lookup rules.UnitLookup, h core.Hex) (string, string) {
	if id, ok := board.Occupant(h); ok {
		if u, ok := lookup.Unit(id); ok {
			return unitSymbol(u), common.TeamColor(u.Team)
		}
		return "??", common.ColorWhite
	}
	if obj := board.ObjectAt(h); obj != nil {
		if obj.CanBeOccupied {
			return floorSymbol, common.ColorCyan
		}
		return blockSymbol, common.ColorGray
	}
	if board.IsObjective(h) {
		return objectiveSymbol, common.ColorYellow
	}
	return emptySymbol, common.ColorGray
}

// unitSymbol is the team letter followed by the role letter
func unitSymbol(u *rules.Unit) string {
	team := string(teamSymbols[u.Team%len(teamSymbols)])
	switch u.Role {
	case rules.Leader:
		return team + "L"
	case rules.Hero:
		return team + "H"
	default:
		return team + "P"
	}
}
