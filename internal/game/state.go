package game

import (
	"time"

	"github.com/mitchelldurbincs/HexTactics/internal/game/core"
	"github.com/mitchelldurbincs/HexTactics/internal/game/effects"
	"github.com/mitchelldurbincs/HexTactics/internal/game/rules"
)

// Player is one team's standing in the match
type Player struct {
	ID     int
	Alive  bool
	Units  int         // cached after every resolution
	Leader core.UnitID // NoUnit when the team fields no leader
	Reason string      // why the team was eliminated
}

func (p Player) GetID() int { return p.ID }
func (p Player) IsAlive() bool { return p.Alive }

// GameState is the turn controller's view of the match
type GameState struct {
	Turn    int
	Board   *core.Board
	Units   *rules.Roster
	Players []Player

	CurrentPlayer int
	// UnitQueue holds units granted an extra action this turn, in grant order
	UnitQueue     []core.UnitID
	IsStartOfTurn bool
	// ActionUsed is set once the current player's free action is spent
	ActionUsed bool
	Acted      map[core.UnitID]bool
	Actions    int
	TurnStart  time.Time

	// Pending is the timeline of the last committed action
	Pending *effects.Timeline

	Winner int
	Reason rules.WinReason
}

func (gs *GameState) player(team int) *Player {
	if team < 0 || team >= len(gs.Players) {
		return nil
	}
	return &gs.Players[team]
}

func (gs *GameState) rulesPlayers() []rules.Player {
	out := make([]rules.Player, len(gs.Players))
	for i, p := range gs.Players {
		out[i] = p
	}
	return out
}
