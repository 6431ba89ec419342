package common

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTeamColor(t *testing.T) {
	tests := []struct {
		team     int
		expected string
	}{
		{0, ColorRed},
		{1, ColorBlue},
		{2, ColorGreen},
		{3, ColorYellow},
		{-1, ColorWhite},
		{len(TeamColors), ColorWhite},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, TeamColor(tt.team), "team %d", tt.team)
	}
}

func TestTeamColorsAreDistinct(t *testing.T) {
	seen := make(map[string]bool)
	for i, c := range TeamColors {
		assert.False(t, seen[c], "team %d reuses a color", i)
		assert.True(t, strings.HasPrefix(c, "\033["), "team %d is not an ANSI sequence", i)
		seen[c] = true
	}
}

func TestColorize(t *testing.T) {
	assert.Equal(t, ColorRed+"A"+ColorReset, Colorize("A", ColorRed, true))
	assert.Equal(t, "A", Colorize("A", ColorRed, false))
	assert.Equal(t, "A", Colorize("A", "", true))
}
