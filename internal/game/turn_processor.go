package game

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/HexTactics/internal/game/core"
	"github.com/mitchelldurbincs/HexTactics/internal/game/events"
	"github.com/mitchelldurbincs/HexTactics/internal/game/rules"
	"github.com/mitchelldurbincs/HexTactics/internal/game/states"
)

// TurnProcessor handles the hand-over between teams
type TurnProcessor struct {
	engine *Engine
	logger zerolog.Logger
}

// NewTurnProcessor creates a new turn processor
func NewTurnProcessor(engine *Engine) *TurnProcessor {
	return &TurnProcessor{
		engine: engine,
		logger: engine.logger,
	}
}

// StartMatch begins turn 1 with the first living team
func (tp *TurnProcessor) StartMatch() error {
	first := tp.nextPlayer(-1)
	if first < 0 {
		return core.WrapTurnError(0, "start", core.ErrGameOver)
	}
	return tp.beginTurn(first)
}

// EndTurn closes the current turn and starts the next living team's turn
func (tp *TurnProcessor) EndTurn(forced bool) error {
	e := tp.engine
	gs := e.gs

	e.eventBus.Publish(events.NewTurnEndedEvent(e.gameID, gs.Turn, gs.CurrentPlayer, forced, gs.Actions))
	tp.logger.Debug().
		Int("turn", gs.Turn).
		Int("player_id", gs.CurrentPlayer).
		Bool("forced", forced).
		Int("actions", gs.Actions).
		Dur("elapsed", time.Since(gs.TurnStart)).
		Msg("Turn ended")

	next := tp.nextPlayer(gs.CurrentPlayer)
	if next < 0 {
		e.checkGameOver()
		return tp.enterGameOver("no team left")
	}
	return tp.beginTurn(next)
}

// beginTurn resets per-turn state, ticks the incoming team's timers and
// forfeits the turn when the team cannot act
func (tp *TurnProcessor) beginTurn(player int) error {
	e := tp.engine
	gs := e.gs

	gs.Turn++
	gs.CurrentPlayer = player
	for id := range gs.Acted {
		delete(gs.Acted, id)
	}
	gs.UnitQueue = gs.UnitQueue[:0]
	gs.ActionUsed = false
	gs.Actions = 0
	gs.IsStartOfTurn = true
	gs.TurnStart = time.Now()

	sc := e.stateMachine.GetContext()
	sc.Turn = gs.Turn
	sc.PlayerID = player

	turnLogger := tp.logger.With().Int("turn", gs.Turn).Int("player_id", player).Logger()

	report := e.actionProcessor.Tick(gs.Units.Team(player))
	for _, ex := range report.Expired {
		e.eventBus.Publish(events.NewStatusExpiredEvent(e.gameID, gs.Turn, ex.Unit,
			ex.Effect.Kind.String(), ex.Effect.Source))
	}
	for _, c := range report.Completed {
		e.eventBus.Publish(events.NewAbilityCompletedEvent(e.gameID, gs.Turn, c.Unit, c.Ability))
	}

	e.eventBus.Publish(events.NewTurnStartedEvent(e.gameID, gs.Turn, player))
	turnLogger.Debug().Msg("Turn started")

	if e.teamHasAction(player) {
		return nil
	}

	turnLogger.Info().Msg("Team has no legal action, forfeiting")
	e.eliminate(player, "forfeit", nil)
	e.updatePlayerStats()
	e.checkGameOver()
	if e.gameOver {
		return tp.enterGameOver("forfeit")
	}
	return tp.EndTurn(true)
}

// nextPlayer returns the first living team after from in turn order, or -1
func (tp *TurnProcessor) nextPlayer(from int) int {
	players := tp.engine.gs.Players
	n := len(players)
	for i := 1; i <= n; i++ {
		p := (from + i + n) % n
		if players[p].Alive {
			return p
		}
	}
	return -1
}

func (tp *TurnProcessor) enterGameOver(reason string) error {
	e := tp.engine
	if !e.gameOver {
		e.declareGameOver(-1, rules.WinNoSurvivor)
	}
	if e.stateMachine.CurrentPhase() == states.PhaseGameOver {
		return nil
	}
	return e.stateMachine.TransitionTo(states.PhaseGameOver, reason)
}

// checkContext checks if the context is cancelled
func (tp *TurnProcessor) checkContext(ctx context.Context, phase string) error {
	select {
	case <-ctx.Done():
		tp.logger.Warn().
			Err(ctx.Err()).
			Int("turn", tp.engine.gs.Turn).
			Str("phase", phase).
			Msg("Action cancelled or timed out")
		return core.WrapTurnError(tp.engine.gs.Turn, phase, ctx.Err())
	default:
		return nil
	}
}
