package rules

import (
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/HexTactics/internal/game/core"
)

// WinReason says why a match ended
type WinReason string

const (
	WinNone       WinReason = ""
	WinObjective  WinReason = "objective"
	WinLastTeam   WinReason = "last_team_standing"
	WinNoSurvivor WinReason = "no_survivor"
)

// WinConditionChecker handles game over detection and winner determination
type WinConditionChecker struct {
	logger          zerolog.Logger
	originalPlayers int
}

// NewWinConditionChecker creates a new win condition checker
func NewWinConditionChecker(logger zerolog.Logger, originalPlayers int) *WinConditionChecker {
	return &WinConditionChecker{
		logger:          logger.With().Str("component", "WinConditionChecker").Logger(),
		originalPlayers: originalPlayers,
	}
}

// CheckObjective reports whether u is a Leader standing on an objective hex
func (wc *WinConditionChecker) CheckObjective(board *core.Board, u *Unit) bool {
	if u == nil || u.KnockedOut || u.Role != Leader || !board.IsObjective(u.Hex) {
		return false
	}
	wc.logger.Info().
		Int("unit_id", int(u.ID)).
		Int("team", u.Team).
		Str("hex", u.Hex.String()).
		Msg("Leader reached objective")
	return true
}

// CheckGameOver determines if the game is over based on the number of alive players
// Returns (isGameOver, winnerID, reason)
func (wc *WinConditionChecker) CheckGameOver(players []Player) (bool, int, WinReason) {
	wc.logger.Debug().Msg("Checking game over conditions")
	aliveCount := 0
	var alivePlayers []int
	var lastAliveID int

	for _, p := range players {
		if p.IsAlive() {
			aliveCount++
			playerID := p.GetID()
			alivePlayers = append(alivePlayers, playerID)
			lastAliveID = playerID
		}
	}

	// A single-player sandbox only ends when everything is gone
	var gameOver bool
	if wc.originalPlayers > 1 {
		gameOver = aliveCount <= 1
	} else {
		gameOver = aliveCount == 0
	}

	winnerID := -1
	reason := WinNone
	if gameOver && aliveCount == 1 {
		winnerID = lastAliveID
		reason = WinLastTeam
		wc.logger.Info().Int("winner_player_id", winnerID).Msg("Winner determined")
	} else if gameOver {
		reason = WinNoSurvivor
		wc.logger.Info().Msg("No winner found (all teams eliminated simultaneously)")
	}

	wc.logger.Debug().Bool("is_game_over", gameOver).Int("alive_player_count", aliveCount).Interface("alive_players_ids", alivePlayers).Msg("Game over check complete")

	return gameOver, winnerID, reason
}

// Player interface to avoid circular imports
type Player interface {
	GetID() int
	IsAlive() bool
}
