package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGrid_Size(t *testing.T) {
	tests := []struct {
		radius   int
		expected int
	}{
		{0, 1},
		{1, 7},
		{2, 19},
		{3, 37},
		{4, 61},
	}

	for _, tt := range tests {
		g := NewGrid(tt.radius)
		assert.Equal(t, tt.expected, g.Size(), "radius %d", tt.radius)
		assert.Len(t, g.All(), tt.expected)
	}
}

func TestGrid_Neighbor(t *testing.T) {
	g := NewGrid(2)
	origin := NewHex(0, 0)

	t.Run("all six neighbors of the centre", func(t *testing.T) {
		expected := map[Direction]Hex{
			East:      {1, 0},
			NorthEast: {1, -1},
			NorthWest: {0, -1},
			West:      {-1, 0},
			SouthWest: {-1, 1},
			SouthEast: {0, 1},
		}
		for d, want := range expected {
			got, ok := g.Neighbor(origin, d)
			require.True(t, ok, "direction %s", d)
			assert.Equal(t, want, got, "direction %s", d)
		}
	})

	t.Run("edge neighbor is absent", func(t *testing.T) {
		_, ok := g.Neighbor(NewHex(2, 0), East)
		assert.False(t, ok)
	})

	t.Run("off-board origin", func(t *testing.T) {
		_, ok := g.Neighbor(NewHex(5, 5), East)
		assert.False(t, ok)
	})

	t.Run("invalid direction", func(t *testing.T) {
		_, ok := g.Neighbor(origin, NoDirection)
		assert.False(t, ok)
	})
}

func TestGrid_Diagonal(t *testing.T) {
	g := NewGrid(2)

	got, ok := g.Diagonal(NewHex(0, 0), East)
	require.True(t, ok)
	assert.Equal(t, NewHex(2, -1), got)
	assert.Equal(t, 2, Distance(NewHex(0, 0), got))

	_, ok = g.Diagonal(NewHex(1, 0), East)
	assert.False(t, ok, "(3,-1) is off a radius-2 board")
}

func TestGrid_NeighborAtDistance(t *testing.T) {
	g := NewGrid(3)

	got, ok := g.NeighborAtDistance(NewHex(0, 0), SouthEast, 3)
	require.True(t, ok)
	assert.Equal(t, NewHex(0, 3), got)

	got, ok = g.NeighborAtDistance(NewHex(1, 1), West, 0)
	require.True(t, ok)
	assert.Equal(t, NewHex(1, 1), got)

	_, ok = g.NeighborAtDistance(NewHex(0, 0), SouthEast, 4)
	assert.False(t, ok, "fourth step falls off the board")

	_, ok = g.NeighborAtDistance(NewHex(0, 0), East, -1)
	assert.False(t, ok)
}

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b     Hex
		expected int
	}{
		{NewHex(0, 0), NewHex(0, 0), 0},
		{NewHex(0, 0), NewHex(1, 0), 1},
		{NewHex(0, 0), NewHex(2, -1), 2},
		{NewHex(-2, 1), NewHex(2, -1), 4},
		{NewHex(0, -3), NewHex(0, 3), 6},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, Distance(tt.a, tt.b), "%s -> %s", tt.a, tt.b)
		assert.Equal(t, tt.expected, Distance(tt.b, tt.a), "symmetry %s -> %s", tt.b, tt.a)
	}
}

func TestGrid_Range(t *testing.T) {
	g := NewGrid(3)

	t.Run("interior radius 1 has six hexes", func(t *testing.T) {
		r := g.Range(NewHex(0, 0), 1)
		assert.Len(t, r, 6)
		assert.NotContains(t, r, NewHex(0, 0))
	})

	t.Run("interior radius 2 has eighteen hexes", func(t *testing.T) {
		assert.Len(t, g.Range(NewHex(0, 0), 2), 18)
	})

	t.Run("corner is clipped to the board", func(t *testing.T) {
		corner := NewHex(3, 0)
		r := g.Range(corner, 1)
		assert.Len(t, r, 3)
		for _, h := range r {
			assert.True(t, g.Contains(h))
			assert.Equal(t, 1, Distance(corner, h))
		}
	})

	t.Run("zero radius is empty", func(t *testing.T) {
		assert.Empty(t, g.Range(NewHex(0, 0), 0))
	})
}

func TestGrid_IsEdge(t *testing.T) {
	g := NewGrid(2)
	assert.False(t, g.IsEdge(NewHex(0, 0)))
	assert.False(t, g.IsEdge(NewHex(1, 0)))
	assert.True(t, g.IsEdge(NewHex(2, 0)))
	assert.True(t, g.IsEdge(NewHex(-2, 2)))
	assert.False(t, g.IsEdge(NewHex(9, 9)))
}

func TestDirection(t *testing.T) {
	for _, d := range Directions {
		assert.Equal(t, d, d.Opposite().Opposite())
		assert.Equal(t, Hex{}, d.Vector().Add(d.Opposite().Vector()))
		assert.Equal(t, d, DirectionTo(NewHex(0, 0), NewHex(0, 0).Step(d)))
	}
	assert.Equal(t, NoDirection, DirectionTo(NewHex(0, 0), NewHex(2, 0)))
	assert.Equal(t, "NE", NorthEast.String())
	assert.Equal(t, NoDirection, NoDirection.Opposite())
}
