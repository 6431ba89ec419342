package states

import (
	"fmt"
	"time"

	"github.com/mitchelldurbincs/HexTactics/internal/game/rules"
)

// NoSelectionState waits for a unit to be picked
type NoSelectionState struct{}

func NewNoSelectionState() State {
	return &NoSelectionState{}
}

func (s *NoSelectionState) Phase() Phase {
	return PhaseNoSelection
}

func (s *NoSelectionState) Enter(ctx *SelectionContext) error {
	ctx.Clear()
	ctx.Logger.Debug().Int("player_id", ctx.PlayerID).Msg("Waiting for unit selection")
	return nil
}

func (s *NoSelectionState) Exit(ctx *SelectionContext) error {
	return nil
}

func (s *NoSelectionState) Validate(ctx *SelectionContext) error {
	return nil
}

// UnitSelectedState holds a picked unit with no move or command yet
type UnitSelectedState struct{}

func NewUnitSelectedState() State {
	return &UnitSelectedState{}
}

func (s *UnitSelectedState) Phase() Phase {
	return PhaseUnitSelected
}

func (s *UnitSelectedState) Enter(ctx *SelectionContext) error {
	ctx.Move = rules.NoNode
	ctx.Command = NoCommand
	ctx.Logger.Debug().Int("unit_id", int(ctx.Unit)).Msg("Unit selected")
	return nil
}

func (s *UnitSelectedState) Exit(ctx *SelectionContext) error {
	return nil
}

func (s *UnitSelectedState) Validate(ctx *SelectionContext) error {
	if !ctx.HasUnit() {
		return fmt.Errorf("unit selection requires a unit")
	}
	return nil
}

// MoveSelectedState holds a picked move node
type MoveSelectedState struct{}

func NewMoveSelectedState() State {
	return &MoveSelectedState{}
}

func (s *MoveSelectedState) Phase() Phase {
	return PhaseMoveSelected
}

func (s *MoveSelectedState) Enter(ctx *SelectionContext) error {
	ctx.Command = NoCommand
	ctx.Logger.Debug().
		Int("unit_id", int(ctx.Unit)).
		Int("move", int(ctx.Move)).
		Msg("Move selected")
	return nil
}

func (s *MoveSelectedState) Exit(ctx *SelectionContext) error {
	return nil
}

func (s *MoveSelectedState) Validate(ctx *SelectionContext) error {
	if !ctx.HasUnit() || !ctx.HasMove() {
		return fmt.Errorf("move selection requires a unit and a move, have unit %d move %d", ctx.Unit, ctx.Move)
	}
	return nil
}

// CommandSelectedState holds a picked ability command
type CommandSelectedState struct{}

func NewCommandSelectedState() State {
	return &CommandSelectedState{}
}

func (s *CommandSelectedState) Phase() Phase {
	return PhaseCommandSelected
}

func (s *CommandSelectedState) Enter(ctx *SelectionContext) error {
	ctx.Move = rules.NoNode
	ctx.Logger.Debug().
		Int("unit_id", int(ctx.Unit)).
		Int("slot", ctx.Command).
		Msg("Command selected")
	return nil
}

func (s *CommandSelectedState) Exit(ctx *SelectionContext) error {
	return nil
}

func (s *CommandSelectedState) Validate(ctx *SelectionContext) error {
	if !ctx.HasUnit() || !ctx.HasCommand() {
		return fmt.Errorf("command selection requires a unit and a slot, have unit %d slot %d", ctx.Unit, ctx.Command)
	}
	return nil
}

// AnimatingState blocks input until the effect timeline is acknowledged
type AnimatingState struct{}

func NewAnimatingState() State {
	return &AnimatingState{}
}

func (s *AnimatingState) Phase() Phase {
	return PhaseAnimating
}

func (s *AnimatingState) Enter(ctx *SelectionContext) error {
	ctx.AnimationStart = time.Now()
	return nil
}

func (s *AnimatingState) Exit(ctx *SelectionContext) error {
	if !ctx.AnimationStart.IsZero() {
		ctx.Logger.Debug().
			Dur("animation", time.Since(ctx.AnimationStart)).
			Msg("Effects acknowledged")
	}
	return nil
}

func (s *AnimatingState) Validate(ctx *SelectionContext) error {
	return nil
}

// GameOverState is the terminal phase
type GameOverState struct{}

func NewGameOverState() State {
	return &GameOverState{}
}

func (s *GameOverState) Phase() Phase {
	return PhaseGameOver
}

func (s *GameOverState) Enter(ctx *SelectionContext) error {
	ctx.Clear()
	ctx.Logger.Info().
		Int("winner", ctx.Winner).
		Str("reason", ctx.Reason).
		Int("turn", ctx.Turn).
		Msg("Match over")
	return nil
}

func (s *GameOverState) Exit(ctx *SelectionContext) error {
	return nil
}

func (s *GameOverState) Validate(ctx *SelectionContext) error {
	if ctx.Winner < 0 && ctx.Reason == "" {
		return fmt.Errorf("game over requires a winner or a reason")
	}
	return nil
}
