package game

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/HexTactics/internal/catalog"
	"github.com/mitchelldurbincs/HexTactics/internal/config"
	"github.com/mitchelldurbincs/HexTactics/internal/game/ability"
	"github.com/mitchelldurbincs/HexTactics/internal/game/core"
	"github.com/mitchelldurbincs/HexTactics/internal/game/effects"
	"github.com/mitchelldurbincs/HexTactics/internal/game/events"
	"github.com/mitchelldurbincs/HexTactics/internal/game/processor"
	"github.com/mitchelldurbincs/HexTactics/internal/game/rules"
	"github.com/mitchelldurbincs/HexTactics/internal/game/states"
)

// GameConfig holds everything needed to start a match
type GameConfig struct {
	Match   config.MatchConfig
	Catalog *catalog.Catalog
	Logger  zerolog.Logger
	GameID  string
	// Verify checks every generated move tree against the board
	Verify bool
	// EffectPlayer receives every committed timeline, may be nil
	EffectPlayer effects.Player
	// Subscribers are attached before the match starts
	Subscribers []events.Subscriber
}

// EngineInitializer handles the complex initialization of a game engine
type EngineInitializer struct {
	config GameConfig
	logger zerolog.Logger
}

// NewEngineInitializer creates a new engine initializer
func NewEngineInitializer(cfg GameConfig) *EngineInitializer {
	logger := cfg.Logger.With().Str("component", "TurnController").Logger()
	return &EngineInitializer{
		config: cfg,
		logger: logger,
	}
}

// NewEngine builds and starts a match
func NewEngine(ctx context.Context, cfg GameConfig) (*Engine, error) {
	return NewEngineInitializer(cfg).Initialize(ctx)
}

// Initialize creates the board and units, wires the engine components and
// starts turn 1
func (ei *EngineInitializer) Initialize(ctx context.Context) (*Engine, error) {
	select {
	case <-ctx.Done():
		ei.logger.Error().Err(ctx.Err()).Msg("Engine creation cancelled or timed out during initial phase")
		return nil, ctx.Err()
	default:
	}

	if ei.config.Catalog == nil {
		return nil, fmt.Errorf("engine needs a unit catalog")
	}
	// later config reloads must not leak into a running match
	ei.config.Match = ei.config.Match.Snapshot()
	if err := ei.config.Match.Validate(); err != nil {
		return nil, fmt.Errorf("invalid match: %w", err)
	}
	if ei.config.GameID == "" {
		ei.config.GameID = uuid.New().String()
	}

	board, err := ei.buildBoard()
	if err != nil {
		return nil, fmt.Errorf("board setup failed: %w", err)
	}

	roster, err := ei.buildUnits(board)
	if err != nil {
		return nil, fmt.Errorf("unit setup failed: %w", err)
	}

	gs := ei.initializeGameState(board, roster)
	engine := ei.createEngine(gs)
	ei.setupHooks(engine)

	if err := ei.applyPassives(engine); err != nil {
		return nil, err
	}
	engine.updatePlayerStats()

	m := ei.config.Match
	engine.eventBus.Publish(events.NewMatchStartedEvent(engine.gameID, len(m.Teams), roster.Len(), m.BoardRadius))

	if err := engine.turnProcessor.StartMatch(); err != nil {
		return nil, fmt.Errorf("match start failed: %w", err)
	}

	ei.logger.Info().
		Str("game_id", engine.gameID).
		Int("radius", m.BoardRadius).
		Int("teams", len(m.Teams)).
		Int("units", roster.Len()).
		Msg("Engine created successfully")

	return engine, nil
}

// buildBoard places objects and objectives
func (ei *EngineInitializer) buildBoard() (*core.Board, error) {
	m := ei.config.Match
	board := core.NewBoard(m.BoardRadius)
	for _, o := range m.Objects {
		obj := core.TileObject{Kind: o.Kind, CanBeOccupied: o.CanBeOccupied, CanBeJumped: o.CanBeJumped}
		if _, err := board.AddObject(obj, core.Hex{Q: o.Q, R: o.R}); err != nil {
			return nil, fmt.Errorf("object %s at (%d,%d): %w", o.Kind, o.Q, o.R, err)
		}
	}
	for _, o := range m.Objectives {
		if err := board.AddObjective(core.Hex{Q: o.Q, R: o.R}); err != nil {
			return nil, fmt.Errorf("objective (%d,%d): %w", o.Q, o.R, err)
		}
	}
	return board, nil
}

// buildUnits instantiates every placement from the catalog. Unit IDs are
// handed out in placement order starting at 1.
func (ei *EngineInitializer) buildUnits(board *core.Board) (*rules.Roster, error) {
	m := ei.config.Match
	roster := rules.NewRoster()
	next := core.UnitID(1)

	for team, tc := range m.Teams {
		for _, p := range tc.Units {
			def, err := ei.config.Catalog.Unit(p.Unit)
			if err != nil {
				return nil, fmt.Errorf("team %d: %w", team, err)
			}
			role, ok := rules.ParseRole(def.Role)
			if !ok {
				return nil, fmt.Errorf("unit %q: unknown role %q: %w", def.Name, def.Role, catalog.ErrInvalidEntry)
			}

			h := core.Hex{Q: p.Q, R: p.R}
			u := rules.NewUnit(next, team, role, h, m.AbilityStacking)
			u.DefID = def.ID
			u.Name = def.Name
			u.AttackValue = def.AttackValue
			u.AssistValue = def.AssistValue
			u.PositionWeight = def.PositionWeight

			for _, aid := range def.Abilities {
				if err := ei.equip(u, aid); err != nil {
					return nil, fmt.Errorf("unit %q: %w", def.Name, err)
				}
			}

			if err := board.PlaceUnit(u.ID, h); err != nil {
				return nil, fmt.Errorf("unit %q at %s: %w", def.Name, h, err)
			}
			roster.Add(u)
			next++
		}
	}
	return roster, nil
}

// equip adds catalog ability aid to u with the match overrides applied
func (ei *EngineInitializer) equip(u *rules.Unit, aid int) error {
	def, err := ei.config.Catalog.Ability(aid)
	if err != nil {
		return err
	}
	b, err := rules.NewBehavior(def.Behavior)
	if err != nil {
		return fmt.Errorf("ability %q: %w", def.Name, err)
	}
	state := def.NewState()
	if o, ok := ei.config.Match.AbilityOverrides[def.Name]; ok {
		state.Apply(ability.Override{Enabled: o.Enabled, Duration: o.Duration, Cooldown: o.Cooldown})
	}
	_, err = u.AddAbility(state, b)
	return err
}

// initializeGameState creates the initial game state
func (ei *EngineInitializer) initializeGameState(board *core.Board, roster *rules.Roster) *GameState {
	gs := &GameState{
		Board:   board,
		Units:   roster,
		Players: make([]Player, len(ei.config.Match.Teams)),
		Acted:   make(map[core.UnitID]bool),
		Pending: effects.NewTimeline(),
		Winner:  -1,
	}
	for i := range gs.Players {
		gs.Players[i] = Player{ID: i, Alive: true, Leader: core.NoUnit}
	}
	return gs
}

// createEngine creates the engine with all its components
func (ei *EngineInitializer) createEngine(gs *GameState) *Engine {
	eventBus := events.NewEventBus(ei.logger)
	for _, sub := range ei.config.Subscribers {
		eventBus.Subscribe(sub)
	}
	selection := states.NewSelectionContext(ei.config.GameID, ei.logger)
	stateMachine := states.NewStateMachine(selection, eventBus)

	gen := rules.NewGenerator(gs.Board, gs.Units, ei.logger)
	gen.Verify = ei.config.Verify
	gen.HasActed = func(id core.UnitID) bool { return gs.Acted[id] }

	engine := &Engine{
		gs:              gs,
		gameID:          ei.config.GameID,
		match:           ei.config.Match,
		logger:          ei.logger,
		startTime:       time.Now(),
		gen:             gen,
		evaluator:       rules.NewEvaluator(gs.Board, gs.Units),
		actionProcessor: processor.NewActionProcessor(gs.Board, gs.Units, ei.logger),
		winCondition:    rules.NewWinConditionChecker(ei.logger, len(ei.config.Match.Teams)),
		legalMoves:      rules.NewLegalMoveCalculator(gen),
		eventBus:        eventBus,
		stateMachine:    stateMachine,
		effectPlayer:    ei.config.EffectPlayer,
	}
	engine.turnProcessor = NewTurnProcessor(engine)
	return engine
}

// setupHooks connects the action processor to the controller
func (ei *EngineInitializer) setupHooks(engine *Engine) {
	engine.actionProcessor.SetHooks(processor.Hooks{
		Queue:      engine.onQueue,
		KnockedOut: engine.onKnockedOut,
	})
}

// applyPassives runs every passive ability once before turn 1
func (ei *EngineInitializer) applyPassives(engine *Engine) error {
	for _, u := range engine.gs.Units.All() {
		for i, slot := range u.Abilities {
			if slot.Behavior.Kind() != rules.Passive || !slot.State.Enabled {
				continue
			}
			if _, err := engine.actionProcessor.ApplyPassive(engine.gen.Context(u, i, u.Hex)); err != nil {
				return fmt.Errorf("unit %d: %w", u.ID, err)
			}
		}
	}
	return nil
}
