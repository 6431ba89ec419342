package core

import (
	"errors"
	"fmt"
)

var (
	ErrOffBoard          = errors.New("hex is off the board")
	ErrCellOccupied      = errors.New("cell is occupied")
	ErrCellEmpty         = errors.New("cell has no unit")
	ErrNoSuchUnit        = errors.New("no such unit")
	ErrNotYourUnit       = errors.New("unit does not belong to the current player")
	ErrUnitHasNoActions  = errors.New("unit has no legal action")
	ErrQueuedUnitPending = errors.New("a queued unit must act first")
	ErrNoSuchMove        = errors.New("no matching move")
	ErrAmbiguousMove     = errors.New("move is conflicted and needs a disambiguating choice")
	ErrNoSuchCommand     = errors.New("no such command")
	ErrNoSuchTarget      = errors.New("no such command target")
	ErrInvalidPhase      = errors.New("not allowed in current selection phase")
	ErrGameOver          = errors.New("match is over")
	ErrInvalidPlayer     = errors.New("invalid player ID")
	ErrAbilityDisabled   = errors.New("ability is disabled")
	ErrAbilityNotReady   = errors.New("ability is not ready")
	ErrPushBlocked       = errors.New("push is blocked")
)

// WrapActionError adds the acting player and the controller input to err
func WrapActionError(action *Action, err error) error {
	if err == nil {
		return nil
	}
	if action == nil {
		return fmt.Errorf("player action: %w", err)
	}
	return fmt.Errorf("player %d: %s: %w", action.PlayerID, action.Describe(), err)
}

// WrapTurnError adds the turn number and controller phase to err
func WrapTurnError(turn int, phase string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("turn %d [%s]: %w", turn, phase, err)
}

// WrapPlayerError adds player context to err
func WrapPlayerError(playerID int, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("player %d %s: %w", playerID, operation, err)
}

// GameError is a structured error carrying turn and player context
type GameError struct {
	Turn      int
	PlayerID  int
	Operation string
	Err       error
}

// NewGameError creates a GameError. A negative playerID omits the player.
func NewGameError(turn, playerID int, operation string, err error) *GameError {
	return &GameError{Turn: turn, PlayerID: playerID, Operation: operation, Err: err}
}

func (e *GameError) Error() string {
	if e.PlayerID >= 0 {
		return fmt.Sprintf("turn %d: player %d %s: %v", e.Turn, e.PlayerID, e.Operation, e.Err)
	}
	return fmt.Sprintf("turn %d: %s: %v", e.Turn, e.Operation, e.Err)
}

func (e *GameError) Unwrap() error {
	return e.Err
}
