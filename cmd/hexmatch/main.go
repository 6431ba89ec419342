package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/HexTactics/internal/catalog"
	"github.com/mitchelldurbincs/HexTactics/internal/config"
	"github.com/mitchelldurbincs/HexTactics/internal/game"
	"github.com/mitchelldurbincs/HexTactics/internal/game/effects"
	"github.com/mitchelldurbincs/HexTactics/internal/game/events"
	"github.com/mitchelldurbincs/HexTactics/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/HexTactics/internal/game/mapgen"
	"github.com/mitchelldurbincs/HexTactics/internal/game/states"
	"github.com/mitchelldurbincs/HexTactics/internal/monitoring"
)

func main() {
	// Command line flags
	configPath := flag.String("config", "", "Path to config file")
	env := flag.String("env", os.Getenv("APP_ENV"), "Environment overlay (loads config.<env>.yaml)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	matches := flag.Int("matches", 1, "Number of matches to play")
	workers := flag.Int("workers", 1, "Matches played concurrently")
	policy := flag.String("policy", "greedy", "Agent policy for every team (greedy, random)")
	seed := flag.Int64("seed", 0, "Base RNG seed (0 uses the clock)")
	maxSteps := flag.Int("max-steps", 2000, "Controller steps before a match is abandoned")
	generate := flag.Bool("generate-map", false, "Scatter generated scenery over the configured match")
	render := flag.Bool("render", false, "Print the board after every action (single worker only)")
	color := flag.Bool("color", true, "Use ANSI colors when rendering")
	watch := flag.Bool("watch", false, "Reload the config file for matches started later")
	flag.Parse()

	// Initialize configuration
	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	if err := config.LoadEnvironmentConfig(*env); err != nil {
		log.Fatal().Err(err).Str("env", *env).Msg("Failed to load environment config")
	}
	cfg := config.Get()

	if *logLevel == "" {
		*logLevel = cfg.Logging.Level
	}
	if cfg.Development.VerboseLogging {
		*logLevel = "debug"
	}
	setupLogging(*logLevel, cfg.Logging.Format)

	if *policy != "greedy" && *policy != "random" {
		log.Fatal().Str("policy", *policy).Msg("Unknown policy")
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	if *workers < 1 {
		*workers = 1
	}
	if *render && *workers > 1 {
		log.Warn().Int("workers", *workers).Msg("Rendering needs a single worker, disabling it")
		*render = false
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	cat, err := catalog.Open(ctx, cfg.Catalog.Source, cfg.Catalog.Path)
	if err != nil {
		log.Fatal().Err(err).
			Str("source", cfg.Catalog.Source).
			Str("path", cfg.Catalog.Path).
			Msg("Failed to load unit catalog")
	}

	source := newMatchSource(cfg)
	if *watch {
		config.WatchConfig(func(next *config.Config, err error) {
			if err != nil {
				log.Error().Err(err).Msg("Ignoring invalid config reload")
				return
			}
			source.update(next)
			log.Info().Str("file", config.ConfigFilePath()).Msg("Config reloaded, applies to new matches")
		})
	}

	log.Info().
		Int("matches", *matches).
		Int("workers", *workers).
		Str("policy", *policy).
		Int64("seed", *seed).
		Bool("generate_map", *generate).
		Msg("Starting match runner")

	monitor := monitoring.NewMatchMonitor(log.Logger, 10*time.Second)
	monitor.Start(ctx)

	r := &runner{
		catalog:  cat,
		source:   source,
		monitor:  monitor,
		policy:   *policy,
		maxSteps: *maxSteps,
		generate: *generate,
		render:   *render,
		color:    *color,
	}
	r.run(ctx, *matches, *workers, *seed)

	m := monitor.GetMetrics()
	log.Info().
		Int("completed", m.Completed).
		Int("decided", m.Decided).
		Int("failed", m.Failed).
		Float64("avg_turns", m.AvgTurns).
		Interface("wins", m.Wins).
		Int("peak_goroutines", m.Peak).
		Msg("Match runner finished")
}

// matchSource hands out match snapshots; a config reload swaps it
type matchSource struct {
	mu      sync.RWMutex
	match   config.MatchConfig
	verify  bool
	devMode bool
}

func newMatchSource(cfg *config.Config) *matchSource {
	s := &matchSource{}
	s.update(cfg)
	return s
}

func (s *matchSource) update(cfg *config.Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.match = cfg.Match.Snapshot()
	s.verify = cfg.Development.VerifyMoveTrees
	s.devMode = cfg.Development.VerboseLogging
}

func (s *matchSource) get() (config.MatchConfig, bool, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.match.Snapshot(), s.verify, s.devMode
}

type runner struct {
	catalog  *catalog.Catalog
	source   *matchSource
	monitor  *monitoring.MatchMonitor
	policy   string
	maxSteps int
	generate bool
	render   bool
	color    bool
}

// run plays n matches on a pool of workers
func (r *runner) run(ctx context.Context, n, workers int, seed int64) {
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				r.playMatch(ctx, i, seed+int64(i))
			}
		}()
	}

dispatch:
	for i := 0; i < n; i++ {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()
}

func (r *runner) playMatch(ctx context.Context, index int, seed int64) {
	r.monitor.MatchStarted()
	logger := log.Logger.With().Int("match", index).Int64("seed", seed).Logger()
	rng := rand.New(rand.NewSource(seed))

	e, err := r.newEngine(ctx, logger, rng)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create match")
		r.monitor.MatchFinished(0, -1, false, err)
		return
	}

	err = r.drive(ctx, e, rng)
	switch {
	case err != nil:
		logger.Error().Err(err).Int("turn", e.Turn()).Msg("Match stopped")
	case !e.IsGameOver():
		logger.Warn().Int("turn", e.Turn()).Int("max_steps", r.maxSteps).Msg("Match abandoned")
	default:
		logger.Info().
			Int("winner", e.GetWinner()).
			Str("reason", string(e.WinReason())).
			Int("turn", e.Turn()).
			Msg("Match finished")
	}
	if r.render {
		fmt.Println(e.Render(game.RenderOptions{Color: r.color, Coordinates: true}))
	}
	r.monitor.MatchFinished(e.Turn(), e.GetWinner(), e.IsGameOver(), err)
}

func (r *runner) newEngine(ctx context.Context, logger zerolog.Logger, rng *rand.Rand) (*game.Engine, error) {
	match, verify, devMode := r.source.get()
	if r.generate {
		gen := mapgen.NewGenerator(mapgen.DefaultMapConfig(match.BoardRadius), rng)
		generated, err := gen.Generate(match)
		if err != nil {
			return nil, fmt.Errorf("map generation: %w", err)
		}
		match = generated
	}

	eventLogger := subscribers.NewLoggerSubscriber("event-logger", logger, zerolog.DebugLevel)
	eventLogger.SetDevMode(devMode)
	if !devMode {
		eventLogger.SetEventFilter([]string{
			events.TypeMatchStarted,
			events.TypeTeamEliminated,
			events.TypeUnitKnockedOut,
			events.TypeMatchEnded,
		})
	}

	var player effects.Player
	if r.render {
		player = effects.PlayerFunc(func(steps []effects.Batch) {
			for i, b := range steps {
				fmt.Printf("  step %d: %v\n", i+1, b)
			}
		})
	}

	return game.NewEngine(ctx, game.GameConfig{
		Match:        match,
		Catalog:      r.catalog,
		Logger:       logger,
		Verify:       verify,
		EffectPlayer: player,
		Subscribers:  []events.Subscriber{eventLogger},
	})
}

// drive runs agent steps until the match ends, the step budget runs out or
// ctx is cancelled
func (r *runner) drive(ctx context.Context, e *game.Engine, rng *rand.Rand) error {
	timed := e.Match().Timer.Enabled
	for step := 0; step < r.maxSteps && !e.IsGameOver(); step++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if timed {
			if _, err := e.CheckTimer(time.Now()); err != nil {
				return err
			}
		}

		before := e.Phase()
		var err error
		if r.policy == "random" {
			err = game.PlayRandomAction(ctx, e, rng)
		} else {
			err = game.PlayGreedyAction(ctx, e)
		}
		if err != nil {
			if game.IsRejection(err) {
				// agents only pick legal input
				return fmt.Errorf("agent input rejected: %w", err)
			}
			return err
		}

		if r.render && before != states.PhaseAnimating && e.Phase() == states.PhaseAnimating {
			fmt.Printf("Turn %d, team %d:\n%s\n", e.Turn(), e.CurrentPlayer(),
				e.Render(game.RenderOptions{Color: r.color, Coordinates: true}))
		}
	}
	if e.Phase() == states.PhaseAnimating {
		return e.AcknowledgeEffects()
	}
	return nil
}

func setupLogging(level, format string) {
	// Parse log level
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	// Check if we're in production
	if os.Getenv("APP_ENV") == "production" || format == "json" {
		// JSON output for production
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		// Pretty console output for development
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}
}
