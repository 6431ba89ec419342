package catalog

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Store is a SQLite catalog database
type Store struct {
	conn *sqlx.DB
}

// OpenStore opens or creates a catalog database at path
func OpenStore(path string) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open catalog db: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS abilities (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		behavior TEXT NOT NULL,
		duration INTEGER NOT NULL,
		cooldown INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS ability_perks (
		ability_id INTEGER NOT NULL REFERENCES abilities(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		value INTEGER NOT NULL,
		PRIMARY KEY (ability_id, name)
	);

	CREATE TABLE IF NOT EXISTS units (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		role TEXT NOT NULL,
		attack_value INTEGER NOT NULL,
		assist_value INTEGER NOT NULL,
		position_weight INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS unit_abilities (
		unit_id INTEGER NOT NULL REFERENCES units(id) ON DELETE CASCADE,
		slot INTEGER NOT NULL,
		ability_id INTEGER NOT NULL,
		PRIMARY KEY (unit_id, slot)
	);
	`
	_, err := s.conn.Exec(schema)
	return err
}

type perkRow struct {
	AbilityID int    `db:"ability_id"`
	Name      string `db:"name"`
	Value     int    `db:"value"`
}

type slotRow struct {
	UnitID    int `db:"unit_id"`
	Slot      int `db:"slot"`
	AbilityID int `db:"ability_id"`
}

// Load reads the whole catalog
func (s *Store) Load(ctx context.Context) (*Catalog, error) {
	var abilities []AbilityDef
	if err := s.conn.SelectContext(ctx, &abilities,
		"SELECT id, name, behavior, duration, cooldown FROM abilities ORDER BY id"); err != nil {
		return nil, fmt.Errorf("load abilities: %w", err)
	}
	var perks []perkRow
	if err := s.conn.SelectContext(ctx, &perks,
		"SELECT ability_id, name, value FROM ability_perks ORDER BY ability_id, name"); err != nil {
		return nil, fmt.Errorf("load perks: %w", err)
	}
	byID := make(map[int]*AbilityDef, len(abilities))
	for i := range abilities {
		byID[abilities[i].ID] = &abilities[i]
	}
	for _, p := range perks {
		a, ok := byID[p.AbilityID]
		if !ok {
			continue
		}
		if a.Perks == nil {
			a.Perks = make(map[string]int)
		}
		a.Perks[p.Name] = p.Value
	}

	var units []UnitDef
	if err := s.conn.SelectContext(ctx, &units,
		"SELECT id, name, role, attack_value, assist_value, position_weight FROM units ORDER BY id"); err != nil {
		return nil, fmt.Errorf("load units: %w", err)
	}
	var slots []slotRow
	if err := s.conn.SelectContext(ctx, &slots,
		"SELECT unit_id, slot, ability_id FROM unit_abilities ORDER BY unit_id, slot"); err != nil {
		return nil, fmt.Errorf("load unit abilities: %w", err)
	}
	unitIdx := make(map[int]int, len(units))
	for i, u := range units {
		unitIdx[u.ID] = i
	}
	for _, sr := range slots {
		if i, ok := unitIdx[sr.UnitID]; ok {
			units[i].Abilities = append(units[i].Abilities, sr.AbilityID)
		}
	}

	return New(units, abilities)
}

// Save replaces the stored catalog with c
func (s *Store) Save(ctx context.Context, c *Catalog) error {
	tx, err := s.conn.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"unit_abilities", "units", "ability_perks", "abilities"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, a := range c.Abilities() {
		if _, err := tx.NamedExecContext(ctx, `INSERT INTO abilities (id, name, behavior, duration, cooldown)
			VALUES (:id, :name, :behavior, :duration, :cooldown)`, a); err != nil {
			return fmt.Errorf("insert ability %d: %w", a.ID, err)
		}
		for name, value := range a.Perks {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO ability_perks (ability_id, name, value) VALUES (?, ?, ?)",
				a.ID, name, value); err != nil {
				return fmt.Errorf("insert perk %s of ability %d: %w", name, a.ID, err)
			}
		}
	}

	for _, u := range c.Units() {
		if _, err := tx.NamedExecContext(ctx, `INSERT INTO units (id, name, role, attack_value, assist_value, position_weight)
			VALUES (:id, :name, :role, :attack_value, :assist_value, :position_weight)`, u); err != nil {
			return fmt.Errorf("insert unit %d: %w", u.ID, err)
		}
		for slot, abilityID := range u.Abilities {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO unit_abilities (unit_id, slot, ability_id) VALUES (?, ?, ?)",
				u.ID, slot, abilityID); err != nil {
				return fmt.Errorf("insert slot %d of unit %d: %w", slot, u.ID, err)
			}
		}
	}

	return tx.Commit()
}
