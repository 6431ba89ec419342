package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/HexTactics/internal/catalog"
)

const usage = `catalogtool manages unit and ability catalogs.

Usage:
  catalogtool import   -yaml catalog.yaml -db catalog.db
  catalogtool export   -db catalog.db [-yaml out.yaml]
  catalogtool validate -source yaml|sqlite -path FILE
  catalogtool list     -source yaml|sqlite -path FILE
`

func main() {
	setupLogging()
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := run(ctx, os.Args[1], os.Args[2:], os.Stdout); err != nil {
		log.Fatal().Err(err).Str("command", os.Args[1]).Msg("catalogtool failed")
	}
}

func run(ctx context.Context, command string, args []string, out io.Writer) error {
	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	yamlPath := fs.String("yaml", "", "YAML catalog file")
	dbPath := fs.String("db", "", "SQLite catalog database")
	source := fs.String("source", catalog.SourceYAML, "Catalog source (yaml, sqlite)")
	path := fs.String("path", "", "Catalog file for -source")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch command {
	case "import":
		if *yamlPath == "" || *dbPath == "" {
			return fmt.Errorf("import needs -yaml and -db")
		}
		return importYAML(ctx, *yamlPath, *dbPath)
	case "export":
		if *dbPath == "" {
			return fmt.Errorf("export needs -db")
		}
		return exportYAML(ctx, *dbPath, *yamlPath, out)
	case "validate":
		c, err := catalog.Open(ctx, *source, *path)
		if err != nil {
			return err
		}
		log.Info().
			Str("path", *path).
			Int("units", len(c.Units())).
			Int("abilities", len(c.Abilities())).
			Msg("Catalog is valid")
		return nil
	case "list":
		c, err := catalog.Open(ctx, *source, *path)
		if err != nil {
			return err
		}
		return list(c, out)
	default:
		return fmt.Errorf("unknown command %q\n%s", command, usage)
	}
}

// importYAML validates a YAML catalog and replaces the database contents
// with it
func importYAML(ctx context.Context, yamlPath, dbPath string) error {
	c, err := catalog.Open(ctx, catalog.SourceYAML, yamlPath)
	if err != nil {
		return err
	}

	store, err := catalog.OpenStore(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Save(ctx, c); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}
	log.Info().
		Str("from", yamlPath).
		Str("to", dbPath).
		Int("units", len(c.Units())).
		Int("abilities", len(c.Abilities())).
		Msg("Catalog imported")
	return nil
}

// exportYAML writes the database catalog as YAML to yamlPath, or to out
// when yamlPath is empty
func exportYAML(ctx context.Context, dbPath, yamlPath string, out io.Writer) error {
	c, err := catalog.Open(ctx, catalog.SourceSQLite, dbPath)
	if err != nil {
		return err
	}
	if yamlPath == "" {
		return c.WriteYAML(out)
	}

	f, err := os.Create(yamlPath)
	if err != nil {
		return err
	}
	if err := c.WriteYAML(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func list(c *catalog.Catalog, out io.Writer) error {
	for _, a := range c.Abilities() {
		if _, err := fmt.Fprintf(out, "ability %3d  %-12s behavior=%-10s duration=%d cooldown=%d perks=%v\n",
			a.ID, a.Name, a.Behavior, a.Duration, a.Cooldown, a.Perks); err != nil {
			return err
		}
	}
	for _, u := range c.Units() {
		if _, err := fmt.Fprintf(out, "unit    %3d  %-12s role=%-6s attack=%d assist=%d weight=%d abilities=%v\n",
			u.ID, u.Name, u.Role, u.AttackValue, u.AssistValue, u.PositionWeight, u.Abilities); err != nil {
			return err
		}
	}
	return nil
}

func setupLogging() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if os.Getenv("APP_ENV") == "production" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	})
}
