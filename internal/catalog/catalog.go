// Package catalog holds the read-only unit and ability definitions a match
// is built from.
package catalog

import (
	"errors"
	"fmt"
	"sort"

	"github.com/mitchelldurbincs/HexTactics/internal/game/ability"
	"github.com/mitchelldurbincs/HexTactics/internal/game/rules"
)

var (
	ErrUnknownUnit    = errors.New("unknown catalog unit")
	ErrUnknownAbility = errors.New("unknown catalog ability")
	ErrInvalidEntry   = errors.New("invalid catalog entry")
)

// UnitDef describes one kind of unit
type UnitDef struct {
	ID             int    `yaml:"id" db:"id"`
	Name           string `yaml:"name" db:"name"`
	Role           string `yaml:"role" db:"role"`
	AttackValue    int    `yaml:"attack_value" db:"attack_value"`
	AssistValue    int    `yaml:"assist_value" db:"assist_value"`
	PositionWeight int    `yaml:"position_weight" db:"position_weight"`
	Abilities      []int  `yaml:"abilities,omitempty" db:"-"`
}

// AbilityDef describes one ability and the behavior implementing it
type AbilityDef struct {
	ID       int            `yaml:"id" db:"id"`
	Name     string         `yaml:"name" db:"name"`
	Behavior string         `yaml:"behavior" db:"behavior"`
	Duration int            `yaml:"duration" db:"duration"`
	Cooldown int            `yaml:"cooldown" db:"cooldown"`
	Perks    map[string]int `yaml:"perks,omitempty" db:"-"`
}

// NewState creates the runtime ability state for one unit
func (a *AbilityDef) NewState() *ability.State {
	return ability.NewState(a.Name, a.Duration, a.Cooldown, a.Perks)
}

// SlotCost is how many ability slots the ability occupies
func (a *AbilityDef) SlotCost() int {
	if c, ok := a.Perks[ability.PerkSlotCost]; ok {
		return c
	}
	return 1
}

// Catalog is an immutable set of definitions keyed by ID
type Catalog struct {
	units     map[int]*UnitDef
	abilities map[int]*AbilityDef
}

// New builds a catalog. Duplicate IDs are rejected.
func New(units []UnitDef, abilities []AbilityDef) (*Catalog, error) {
	c := &Catalog{
		units:     make(map[int]*UnitDef, len(units)),
		abilities: make(map[int]*AbilityDef, len(abilities)),
	}
	for i := range units {
		u := units[i]
		if _, dup := c.units[u.ID]; dup {
			return nil, fmt.Errorf("unit %d defined twice: %w", u.ID, ErrInvalidEntry)
		}
		u.Abilities = append([]int(nil), u.Abilities...)
		c.units[u.ID] = &u
	}
	for i := range abilities {
		a := abilities[i]
		if _, dup := c.abilities[a.ID]; dup {
			return nil, fmt.Errorf("ability %d defined twice: %w", a.ID, ErrInvalidEntry)
		}
		perks := make(map[string]int, len(a.Perks))
		for k, v := range a.Perks {
			perks[k] = v
		}
		a.Perks = perks
		c.abilities[a.ID] = &a
	}
	return c, nil
}

// Unit returns the unit definition with the given ID
func (c *Catalog) Unit(id int) (*UnitDef, error) {
	u, ok := c.units[id]
	if !ok {
		return nil, fmt.Errorf("unit %d: %w", id, ErrUnknownUnit)
	}
	return u, nil
}

// Ability returns the ability definition with the given ID
func (c *Catalog) Ability(id int) (*AbilityDef, error) {
	a, ok := c.abilities[id]
	if !ok {
		return nil, fmt.Errorf("ability %d: %w", id, ErrUnknownAbility)
	}
	return a, nil
}

// AbilityByName finds an ability by its unique name
func (c *Catalog) AbilityByName(name string) (*AbilityDef, bool) {
	for _, a := range c.abilities {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}

// Units returns every unit definition sorted by ID
func (c *Catalog) Units() []UnitDef {
	out := make([]UnitDef, 0, len(c.units))
	for _, u := range c.units {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Abilities returns every ability definition sorted by ID
func (c *Catalog) Abilities() []AbilityDef {
	out := make([]AbilityDef, 0, len(c.abilities))
	for _, a := range c.abilities {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Validate checks every cross reference and every value the engine relies on
func (c *Catalog) Validate() error {
	names := make(map[string]int)
	for _, a := range c.Abilities() {
		if a.ID <= 0 {
			return fmt.Errorf("ability %q has id %d: %w", a.Name, a.ID, ErrInvalidEntry)
		}
		if a.Name == "" {
			return fmt.Errorf("ability %d has no name: %w", a.ID, ErrInvalidEntry)
		}
		if other, dup := names[a.Name]; dup {
			return fmt.Errorf("ability name %q used by %d and %d: %w", a.Name, other, a.ID, ErrInvalidEntry)
		}
		names[a.Name] = a.ID
		if _, err := rules.NewBehavior(a.Behavior); err != nil {
			return fmt.Errorf("ability %d: %w", a.ID, err)
		}
		if a.Duration < 0 || a.Cooldown < 0 {
			return fmt.Errorf("ability %d has negative duration or cooldown: %w", a.ID, ErrInvalidEntry)
		}
		if a.SlotCost() < 1 {
			return fmt.Errorf("ability %d has slot cost %d: %w", a.ID, a.SlotCost(), ErrInvalidEntry)
		}
	}

	for _, u := range c.Units() {
		if u.ID <= 0 {
			return fmt.Errorf("unit %q has id %d: %w", u.Name, u.ID, ErrInvalidEntry)
		}
		role, ok := rules.ParseRole(u.Role)
		if !ok {
			return fmt.Errorf("unit %d has role %q: %w", u.ID, u.Role, ErrInvalidEntry)
		}
		slots := 0
		for _, id := range u.Abilities {
			a, err := c.Ability(id)
			if err != nil {
				return fmt.Errorf("unit %d: %w", u.ID, err)
			}
			slots += a.SlotCost()
		}
		if slots > role.MaxSlots() {
			return fmt.Errorf("unit %d needs %d ability slots, a %s has %d: %w", u.ID, slots, role, role.MaxSlots(), ErrInvalidEntry)
		}
	}
	return nil
}
