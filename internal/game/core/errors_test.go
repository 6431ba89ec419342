package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapActionError(t *testing.T) {
	tests := []struct {
		name     string
		action   *Action
		err      error
		expected string
		isNil    bool
	}{
		{
			name:   "nil error returns nil",
			action: &Action{PlayerID: 1, Type: ActionSelectUnit, Unit: 3},
			err:    nil,
			isNil:  true,
		},
		{
			name:     "select unit",
			action:   &Action{PlayerID: 1, Type: ActionSelectUnit, Unit: 3},
			err:      ErrNotYourUnit,
			expected: "player 1: select unit 3: unit does not belong to the current player",
		},
		{
			name:     "select move with choice",
			action:   &Action{PlayerID: 0, Type: ActionSelectMove, Target: NewHex(2, -1), Choice: 2},
			err:      ErrNoSuchMove,
			expected: "player 0: select move to (2,-1) (choice 2): no matching move",
		},
		{
			name:     "ambiguous move",
			action:   &Action{PlayerID: 0, Type: ActionSelectMove, Target: NewHex(0, 2)},
			err:      ErrAmbiguousMove,
			expected: "player 0: select move to (0,2): move is conflicted and needs a disambiguating choice",
		},
		{
			name:     "targeted command",
			action:   &Action{PlayerID: 1, Type: ActionExecuteCommand, Target: NewHex(1, 1), HasHex: true},
			err:      ErrNoSuchTarget,
			expected: "player 1: execute command at (1,1): no such command target",
		},
		{
			name:     "generic action fallback",
			action:   nil,
			err:      ErrGameOver,
			expected: "player action: match is over",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := WrapActionError(tt.action, tt.err)
			if tt.isNil {
				assert.Nil(t, wrapped)
				return
			}
			require.NotNil(t, wrapped)
			assert.Equal(t, tt.expected, wrapped.Error())
			assert.True(t, errors.Is(wrapped, tt.err))
		})
	}
}

func TestWrapTurnError(t *testing.T) {
	assert.Nil(t, WrapTurnError(3, "end turn", nil))

	wrapped := WrapTurnError(12, "UnitSelected", ErrInvalidPhase)
	assert.Equal(t, "turn 12 [UnitSelected]: not allowed in current selection phase", wrapped.Error())
	assert.ErrorIs(t, wrapped, ErrInvalidPhase)
}

func TestWrapPlayerError(t *testing.T) {
	assert.Nil(t, WrapPlayerError(1, "forfeit", nil))

	wrapped := WrapPlayerError(2, "select unit", ErrNoSuchUnit)
	assert.Equal(t, "player 2 select unit: no such unit", wrapped.Error())
	assert.ErrorIs(t, wrapped, ErrNoSuchUnit)
}

func TestGameError(t *testing.T) {
	t.Run("with player ID", func(t *testing.T) {
		err := NewGameError(15, 1, "execute move", ErrCellOccupied)
		assert.Equal(t, "turn 15: player 1 execute move: cell is occupied", err.Error())
		assert.True(t, errors.Is(err, ErrCellOccupied))
	})

	t.Run("without player ID", func(t *testing.T) {
		err := NewGameError(20, -1, "win check", ErrGameOver)
		assert.Equal(t, "turn 20: win check: match is over", err.Error())
	})

	t.Run("errors.As functionality", func(t *testing.T) {
		gameErr := NewGameError(5, 0, "push chain", fmt.Errorf("stale unit"))

		var extracted *GameError
		require.True(t, errors.As(gameErr, &extracted))
		assert.Equal(t, 5, extracted.Turn)
		assert.Equal(t, 0, extracted.PlayerID)
		assert.Equal(t, "push chain", extracted.Operation)
	})
}
