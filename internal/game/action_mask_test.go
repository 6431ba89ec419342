package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/HexTactics/internal/config"
	"github.com/mitchelldurbincs/HexTactics/internal/game/core"
)

func countTrue(mask []bool) int {
	n := 0
	for _, b := range mask {
		if b {
			n++
		}
	}
	return n
}

func wall(q, r int) config.ObjectConfig {
	return config.ObjectConfig{Kind: "wall", Q: q, R: r}
}

func TestLegalDestinationMask_NoSelection(t *testing.T) {
	e, _ := newTestEngine(t, skirmish(
		team(at(warden, 0, 2)),
		team(at(warden, 0, -2)),
	))

	mask := e.LegalDestinationMask()
	assert.Len(t, mask, e.Board().Grid.Size())
	assert.Zero(t, countTrue(mask))
	assert.Empty(t, e.LegalDestinations())
}

func TestLegalDestinationMask_BasicScenario(t *testing.T) {
	e, _ := newTestEngine(t, skirmish(
		team(at(warden, 0, 2), at(footman, 1, 1)),
		team(at(warden, 0, -2)),
	))
	require.NoError(t, e.SelectUnit(0, 1))

	mask := e.LegalDestinationMask()
	grid := e.Board().Grid
	require.Len(t, mask, grid.Size())

	for _, h := range []core.Hex{hex(1, 2), hex(0, 1), hex(-1, 2), hex(-1, 3), hex(0, 3), hex(2, 0)} {
		assert.True(t, mask[grid.TileID(h)], "expected %s to be reachable", h)
	}
	assert.False(t, mask[grid.TileID(hex(1, 1))], "occupied hex is never a destination")
	assert.False(t, mask[grid.TileID(hex(0, 2))], "start hex is never a destination")
	assert.Equal(t, 6, countTrue(mask))
	assert.Len(t, e.LegalDestinations(), 6)
}

func TestLegalDestinationMask_EdgeTiles(t *testing.T) {
	e, _ := newTestEngine(t, skirmish(
		team(at(warden, -3, 3)),
		team(at(warden, 0, -2)),
	))
	require.NoError(t, e.SelectUnit(0, 1))

	dests := e.LegalDestinations()
	assert.ElementsMatch(t, []core.Hex{hex(-2, 3), hex(-2, 2), hex(-3, 2)}, dests)
	for _, h := range dests {
		assert.True(t, e.Board().InBounds(h))
	}
	assert.Equal(t, 3, countTrue(e.LegalDestinationMask()))
}

func TestLegalDestinationMask_Walls(t *testing.T) {
	m := skirmish(
		team(at(warden, -3, 3)),
		team(at(warden, 0, -2)),
	)
	m.Objects = []config.ObjectConfig{wall(-2, 3), wall(-2, 2)}
	e, _ := newTestEngine(t, m)
	require.NoError(t, e.SelectUnit(0, 1))

	assert.Equal(t, []core.Hex{hex(-3, 2)}, e.LegalDestinations())
}

func TestLegalDestinationMask_FollowsChain(t *testing.T) {
	m := skirmish(
		team(at(warden, 0, 2)),
		team(at(warden, 3, -3)),
	)
	m.Objects = []config.ObjectConfig{
		{Kind: "boulder", Q: 0, R: 1, CanBeJumped: true},
		{Kind: "boulder", Q: 0, R: -1, CanBeJumped: true},
	}
	e, _ := newTestEngine(t, m)
	require.NoError(t, e.SelectUnit(0, 1))
	require.NoError(t, e.SelectMove(hex(0, 0), 0))

	dests := e.LegalDestinations()
	assert.Contains(t, dests, hex(0, -2), "second hop over the far boulder")
	assert.NotContains(t, dests, hex(0, 2), "no return to a hex on the chain")
	assert.Equal(t, len(dests), countTrue(e.LegalDestinationMask()))
}

func TestSelectableUnits(t *testing.T) {
	m := skirmish(
		team(at(warden, -3, 3), at(footman, 3, 0)),
		team(at(warden, 0, -2)),
	)
	// wall the footman into its corner
	m.Objects = []config.ObjectConfig{wall(2, 0), wall(3, -1), wall(2, 1)}
	e, _ := newTestEngine(t, m)

	assert.Equal(t, []core.UnitID{1}, e.SelectableUnits())
	assert.ErrorIs(t, e.SelectUnit(0, 2), core.ErrUnitHasNoActions)
}

func TestSelectableUnits_KeepsSelectedTree(t *testing.T) {
	e, _ := newTestEngine(t, skirmish(
		team(at(warden, 0, 2), at(footman, 1, 1)),
		team(at(warden, 0, -2)),
	))
	require.NoError(t, e.SelectUnit(0, 1))
	before := e.SelectedTree()

	ids := e.SelectableUnits()
	assert.ElementsMatch(t, []core.UnitID{1, 2}, ids)
	assert.Same(t, before, e.SelectedTree())
}

func TestSelectableUnits_NoneAfterFreeAction(t *testing.T) {
	e, _ := newTestEngine(t, skirmish(
		team(at(warden, 0, 2), at(footman, -2, 2)),
		team(at(warden, 0, -2)),
	))
	require.NoError(t, e.SelectUnit(0, 2))
	require.NoError(t, e.SelectMove(hex(-2, 1), 0))
	require.NoError(t, e.ExecuteMove(context.Background()))
	require.NoError(t, e.AcknowledgeEffects())

	assert.Empty(t, e.SelectableUnits())
}
