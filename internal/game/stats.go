package game

import (
	"github.com/mitchelldurbincs/HexTactics/internal/game/core"
	"github.com/mitchelldurbincs/HexTactics/internal/game/rules"
)

// updatePlayerStats recounts every team's units from the roster. A team with
// no units left, or one that was eliminated, is marked dead.
func (e *Engine) updatePlayerStats() {
	for pid := range e.gs.Players {
		e.gs.Players[pid].Units = 0
		e.gs.Players[pid].Leader = core.NoUnit
	}

	for _, u := range e.gs.Units.All() {
		p := e.gs.player(u.Team)
		if p == nil {
			continue
		}
		p.Units++
		if u.Role == rules.Leader {
			p.Leader = u.ID
		}
	}

	for pid := range e.gs.Players {
		p := &e.gs.Players[pid]
		wasAlive := p.Alive
		p.Alive = p.Units > 0 && p.Reason == ""
		if wasAlive && !p.Alive {
			e.logger.Info().
				Int("player_id", pid).
				Str("reason", p.Reason).
				Msg("Team is out of the match")
		}
	}
	e.logger.Debug().Msg("Player stats updated")
}

// teamHasAction reports whether any unit of team can move or use a command
func (e *Engine) teamHasAction(team int) bool {
	for _, u := range e.gs.Units.Team(team) {
		if e.gen.HasAction(u) {
			return true
		}
	}
	return false
}
