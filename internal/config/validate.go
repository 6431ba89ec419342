package config

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/HexTactics/internal/common"
)

// Catalog sources
const (
	CatalogYAML   = "yaml"
	CatalogSQLite = "sqlite"
)

// Validate validates the configuration values
func Validate(c *Config) error {
	if err := c.Match.Validate(); err != nil {
		return err
	}

	switch c.Catalog.Source {
	case CatalogYAML, CatalogSQLite:
	default:
		return fmt.Errorf("catalog.source must be %q or %q, got %q", CatalogYAML, CatalogSQLite, c.Catalog.Source)
	}
	if c.Catalog.Path == "" {
		return fmt.Errorf("catalog.path must be set")
	}

	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	if c.Logging.Format != "console" && c.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}

// Validate checks that the match fits on its board
func (m *MatchConfig) Validate() error {
	if m.BoardRadius < 1 {
		return fmt.Errorf("match.board_radius must be at least 1")
	}
	if len(m.Teams) < 2 {
		return fmt.Errorf("match.teams needs at least 2 teams, got %d", len(m.Teams))
	}
	if m.Timer.Enabled && m.Timer.TurnSeconds <= 0 {
		return fmt.Errorf("match.timer.turn_seconds must be positive when the timer is enabled")
	}

	type hex struct{ q, r int }
	onBoard := func(q, r int) bool { return common.IsValidAxial(q, r, m.BoardRadius) }

	for i, o := range m.Objectives {
		if !onBoard(o.Q, o.R) {
			return fmt.Errorf("match.objectives[%d] (%d,%d) is off the board", i, o.Q, o.R)
		}
	}

	solid := make(map[hex]bool)
	for i, o := range m.Objects {
		if o.Kind == "" {
			return fmt.Errorf("match.objects[%d] needs a kind", i)
		}
		if !onBoard(o.Q, o.R) {
			return fmt.Errorf("match.objects[%d] (%d,%d) is off the board", i, o.Q, o.R)
		}
		if _, dup := solid[hex{o.Q, o.R}]; dup {
			return fmt.Errorf("match.objects[%d] (%d,%d) already holds an object", i, o.Q, o.R)
		}
		solid[hex{o.Q, o.R}] = !o.CanBeOccupied
	}

	taken := make(map[hex]string)
	for t, team := range m.Teams {
		if len(team.Units) == 0 {
			return fmt.Errorf("match.teams[%d] has no units", t)
		}
		for i, u := range team.Units {
			where := fmt.Sprintf("match.teams[%d].units[%d]", t, i)
			if u.Unit <= 0 {
				return fmt.Errorf("%s needs a catalog unit id", where)
			}
			h := hex{u.Q, u.R}
			if !onBoard(u.Q, u.R) {
				return fmt.Errorf("%s (%d,%d) is off the board", where, u.Q, u.R)
			}
			if other, ok := taken[h]; ok {
				return fmt.Errorf("%s (%d,%d) is already taken by %s", where, u.Q, u.R, other)
			}
			if solid[h] {
				return fmt.Errorf("%s (%d,%d) is covered by an object", where, u.Q, u.R)
			}
			taken[h] = where
		}
	}

	for name, o := range m.AbilityOverrides {
		if o.Duration != nil && *o.Duration < 0 {
			return fmt.Errorf("match.ability_overrides.%s.duration must be non-negative", name)
		}
		if o.Cooldown != nil && *o.Cooldown < 0 {
			return fmt.Errorf("match.ability_overrides.%s.cooldown must be non-negative", name)
		}
	}
	return nil
}

// UnitCount is the number of units placed across all teams
func (m *MatchConfig) UnitCount() int {
	n := 0
	for _, t := range m.Teams {
		n += len(t.Units)
	}
	return n
}
