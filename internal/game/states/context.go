package states

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/HexTactics/internal/game/core"
	"github.com/mitchelldurbincs/HexTactics/internal/game/rules"
)

// NoCommand marks an empty command selection
const NoCommand = -1

// SelectionContext is the turn controller's selection state that phases
// read and reset on entry
type SelectionContext struct {
	// GameID uniquely identifies this match
	GameID string

	Logger zerolog.Logger

	Turn     int
	PlayerID int

	Unit    core.UnitID
	Move    rules.NodeID
	Command int

	// AnimationStart is when the current Animating phase was entered
	AnimationStart time.Time

	// Winner is the winning team, -1 until the match is over
	Winner int
	Reason string
}

// NewSelectionContext creates an empty selection context
func NewSelectionContext(gameID string, logger zerolog.Logger) *SelectionContext {
	return &SelectionContext{
		GameID:  gameID,
		Logger:  logger.With().Str("game_id", gameID).Logger(),
		Move:    rules.NoNode,
		Command: NoCommand,
		Winner:  -1,
	}
}

// HasUnit reports whether a unit is selected
func (sc *SelectionContext) HasUnit() bool {
	return sc.Unit != core.NoUnit
}

// HasMove reports whether a move node is selected
func (sc *SelectionContext) HasMove() bool {
	return sc.Move != rules.NoNode
}

// HasCommand reports whether a command slot is selected
func (sc *SelectionContext) HasCommand() bool {
	return sc.Command != NoCommand
}

// Clear drops the whole selection
func (sc *SelectionContext) Clear() {
	sc.Unit = core.NoUnit
	sc.Move = rules.NoNode
	sc.Command = NoCommand
}
