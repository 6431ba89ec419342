package ability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/HexTactics/internal/game/core"
)

func TestState_Phases(t *testing.T) {
	s := NewState("stun_bolt", 2, 4, nil)
	assert.Equal(t, Ready, s.Phase())

	require.NoError(t, s.Use())
	assert.Equal(t, Active, s.Phase())

	s.Tick()
	s.Tick()
	assert.Equal(t, Dormant, s.Phase())

	s.Tick()
	s.Tick()
	assert.Equal(t, Ready, s.Phase())

	s.Enabled = false
	assert.Equal(t, Disabled, s.Phase())
	assert.ErrorIs(t, s.Use(), core.ErrAbilityDisabled)
}

func TestState_StartCooldownOnlyFromReady(t *testing.T) {
	s := NewState("blink", 0, 3, nil)
	require.NoError(t, s.StartCooldown(0, 3))
	assert.Equal(t, Dormant, s.Phase())

	err := s.StartCooldown(0, 3)
	assert.ErrorIs(t, err, core.ErrAbilityNotReady)
	assert.Equal(t, 3, s.Cooldown, "rejected use leaves state alone")
}

func TestState_TickLaw(t *testing.T) {
	tests := []struct {
		duration int
		cooldown int
	}{
		{0, 0},
		{1, 1},
		{2, 5},
		{3, 1},
		{4, 4},
	}

	for _, tt := range tests {
		s := NewState("x", tt.duration, tt.cooldown, nil)
		fired := 0
		s.OnDurationComplete = func() { fired++ }
		require.NoError(t, s.StartCooldown(tt.duration, tt.cooldown))

		for i := 0; i < tt.duration; i++ {
			s.Tick()
		}
		assert.Equal(t, 0, s.Duration)
		if tt.duration > 0 {
			assert.Equal(t, 1, fired, "D=%d C=%d", tt.duration, tt.cooldown)
		} else {
			assert.Equal(t, 0, fired)
		}

		for i := tt.duration; i < tt.cooldown; i++ {
			s.Tick()
		}
		assert.Equal(t, 0, s.Cooldown, "D=%d C=%d", tt.duration, tt.cooldown)

		for i := 0; i < 3; i++ {
			s.Tick()
		}
		assert.Equal(t, 0, s.Duration)
		assert.Equal(t, 0, s.Cooldown)
		if tt.duration > 0 {
			assert.Equal(t, 1, fired, "ticking past zero never refires")
		}
	}
}

func TestState_CallbackSeesUndecrementedCooldown(t *testing.T) {
	s := NewState("x", 1, 3, nil)
	seen := -1
	s.OnDurationComplete = func() { seen = s.Cooldown }
	require.NoError(t, s.Use())

	assert.True(t, s.Tick())
	assert.Equal(t, 3, seen)
	assert.Equal(t, 2, s.Cooldown)
}

func TestState_Toggle(t *testing.T) {
	s := NewState("guard", 0, 2, nil)

	on, err := s.Toggle()
	require.NoError(t, err)
	assert.True(t, on)
	assert.Equal(t, Ready, s.Phase(), "toggling on does not start the cooldown")

	on, err = s.Toggle()
	require.NoError(t, err)
	assert.False(t, on)
	assert.Equal(t, Dormant, s.Phase())

	_, err = s.Toggle()
	assert.ErrorIs(t, err, core.ErrAbilityNotReady)
}

func TestState_PerksAndOverrides(t *testing.T) {
	perks := map[string]int{PerkRange: 3}
	s := NewState("blink", 0, 2, perks)
	perks[PerkRange] = 9

	assert.Equal(t, 3, s.Perk(PerkRange, 1), "perks are copied")
	assert.Equal(t, 1, s.Perk(PerkSlotCost, 1))

	off := false
	cd := 5
	s.Apply(Override{Enabled: &off, Cooldown: &cd})
	assert.Equal(t, Disabled, s.Phase())
	assert.Equal(t, 5, s.BaseCooldown)
	assert.Equal(t, 0, s.BaseDuration)
}

func TestState_Clone(t *testing.T) {
	s := NewState("rally", 0, 1, map[string]int{PerkRange: 1})
	s.OnDurationComplete = func() {}
	c := s.Clone()
	c.Perks[PerkRange] = 4
	require.NoError(t, c.Use())

	assert.Nil(t, c.OnDurationComplete)
	assert.Equal(t, 1, s.Perk(PerkRange, 0))
	assert.Equal(t, Ready, s.Phase())
}
