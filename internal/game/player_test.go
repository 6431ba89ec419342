package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/HexTactics/internal/game/core"
	"github.com/mitchelldurbincs/HexTactics/internal/game/events"
	"github.com/mitchelldurbincs/HexTactics/internal/game/rules"
)

func TestPlayer_InitialState(t *testing.T) {
	e, _ := newTestEngine(t, skirmish(
		team(at(warden, 0, 2), at(footman, 1, 1), at(footman, -1, 2)),
		team(at(footman, 0, -2)),
	))

	players := e.Players()
	require.Len(t, players, 2)

	assert.Equal(t, 0, players[0].GetID())
	assert.True(t, players[0].IsAlive())
	assert.Equal(t, 3, players[0].Units)
	assert.Equal(t, core.UnitID(1), players[0].Leader)
	assert.Empty(t, players[0].Reason)

	assert.Equal(t, 1, players[1].GetID())
	assert.Equal(t, 1, players[1].Units)
	assert.Equal(t, core.NoUnit, players[1].Leader, "a leaderless team reports NoUnit")
}

func TestPlayer_PlayersReturnsCopy(t *testing.T) {
	e, _ := newTestEngine(t, skirmish(
		team(at(warden, 0, 2)),
		team(at(warden, 0, -2)),
	))

	players := e.Players()
	players[1].Alive = false

	assert.True(t, e.Players()[1].Alive)
}

func TestPlayer_Elimination(t *testing.T) {
	e, rec := newTestEngine(t, skirmish(
		team(at(warden, 0, 2), at(footman, 1, 1)),
		team(at(warden, 0, -2), at(footman, -1, -1)),
		team(at(warden, 3, -1)),
	))

	e.eliminate(1, "conceded", nil)
	e.updatePlayerStats()

	p := e.Players()[1]
	assert.False(t, p.Alive)
	assert.Equal(t, "conceded", p.Reason)
	assert.Zero(t, p.Units)
	assert.Empty(t, e.gs.Units.Team(1))
	_, occupied := e.Board().Occupant(hex(0, -2))
	assert.False(t, occupied, "knocked out units leave the board")

	eliminated := rec.ofType(events.TypeTeamEliminated)
	require.Len(t, eliminated, 1)
	assert.Equal(t, 1, eliminated[0].(*events.TeamEliminatedEvent).Team)

	// eliminating twice is a no-op
	e.eliminate(1, "again", nil)
	assert.Equal(t, "conceded", e.Players()[1].Reason)
	assert.Len(t, rec.ofType(events.TypeTeamEliminated), 1)

	// two teams are still standing
	e.checkGameOver()
	assert.False(t, e.IsGameOver())
}

func TestPlayer_LastTeamStandingWins(t *testing.T) {
	e, _ := newTestEngine(t, skirmish(
		team(at(warden, 0, 2)),
		team(at(warden, 0, -2)),
	))

	e.eliminate(1, "conceded", nil)
	e.updatePlayerStats()
	e.checkGameOver()

	assert.True(t, e.IsGameOver())
	assert.Equal(t, 0, e.GetWinner())
	assert.Equal(t, rules.WinLastTeam, e.WinReason())
}

func TestPlayer_UnitCounts(t *testing.T) {
	e, _ := newTestEngine(t, skirmish(
		team(at(warden, 0, 2), at(footman, 1, 1), at(adept, -1, 2)),
		team(at(warden, 0, -2)),
	))

	require.True(t, e.gs.Units.Remove(2))
	require.Equal(t, core.UnitID(2), e.Board().RemoveUnit(hex(1, 1)))
	e.updatePlayerStats()

	p := e.Players()[0]
	assert.True(t, p.Alive)
	assert.Equal(t, 2, p.Units)
	assert.Equal(t, core.UnitID(1), p.Leader)

	require.True(t, e.gs.Units.Remove(1))
	e.updatePlayerStats()
	p = e.Players()[0]
	assert.True(t, p.Alive, "a leaderless team with units is still in the match")
	assert.Equal(t, core.NoUnit, p.Leader)
}

func TestPlayer_MultipleTeams(t *testing.T) {
	e, _ := newTestEngine(t, skirmish(
		team(at(warden, 0, 2)),
		team(at(warden, 0, -2)),
		team(at(warden, 3, -1)),
	))

	for i, p := range e.Players() {
		assert.Equal(t, i, p.ID)
		assert.True(t, p.Alive)
		assert.Equal(t, 1, p.Units)
	}

	e.eliminate(0, "conceded", nil)
	e.updatePlayerStats()
	e.checkGameOver()
	assert.False(t, e.IsGameOver())
	assert.Equal(t, -1, e.GetWinner())

	e.eliminate(2, "conceded", nil)
	e.updatePlayerStats()
	e.checkGameOver()
	assert.True(t, e.IsGameOver())
	assert.Equal(t, 1, e.GetWinner())
}
