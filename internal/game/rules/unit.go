package rules

import (
	"fmt"
	"sort"

	"github.com/mitchelldurbincs/HexTactics/internal/game/ability"
	"github.com/mitchelldurbincs/HexTactics/internal/game/core"
	"github.com/mitchelldurbincs/HexTactics/internal/game/status"
)

// Role decides how many ability slots a unit has and whether its
// knockout ends the match for its team
type Role int

const (
	Pawn Role = iota
	Leader
	Hero
)

func (r Role) String() string {
	switch r {
	case Pawn:
		return "pawn"
	case Leader:
		return "leader"
	case Hero:
		return "hero"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// ParseRole converts a catalog role name
func ParseRole(s string) (Role, bool) {
	switch s {
	case "pawn":
		return Pawn, true
	case "leader":
		return Leader, true
	case "hero":
		return Hero, true
	}
	return 0, false
}

// MaxSlots is the number of ability slots a role may carry
func (r Role) MaxSlots() int {
	switch r {
	case Leader:
		return 1
	case Hero:
		return 3
	default:
		return 0
	}
}

// Slot pairs runtime ability state with the behavior that implements it
type Slot struct {
	State    *ability.State
	Behavior Behavior
}

// Unit is one piece on the board
type Unit struct {
	ID    core.UnitID
	Team  int
	Role  Role
	DefID int
	Name  string
	Hex   core.Hex

	Status    *status.Stack
	Abilities []*Slot

	// AI scoring values
	AttackValue    int
	AssistValue    int
	PositionWeight int

	// Tree is replaced on every fresh generation
	Tree *MoveTree

	KnockedOut bool
}

// NewUnit creates a unit with an empty status stack
func NewUnit(id core.UnitID, team int, role Role, h core.Hex, stacking bool) *Unit {
	return &Unit{
		ID:     id,
		Team:   team,
		Role:   role,
		Hex:    h,
		Status: status.NewStack(stacking),
	}
}

// Slot returns ability slot i or nil
func (u *Unit) Slot(i int) *Slot {
	if i < 0 || i >= len(u.Abilities) {
		return nil
	}
	return u.Abilities[i]
}

// AddAbility appends a slot and returns its index
func (u *Unit) AddAbility(state *ability.State, b Behavior) (int, error) {
	if len(u.Abilities) >= u.Role.MaxSlots() {
		return -1, fmt.Errorf("%s %d already has %d ability slots", u.Role, u.ID, len(u.Abilities))
	}
	u.Abilities = append(u.Abilities, &Slot{State: state, Behavior: b})
	return len(u.Abilities) - 1, nil
}

// PositionValue scores standing on h. Leaders value closeness to an
// objective, everybody else values the board centre.
func (u *Unit) PositionValue(b *core.Board, h core.Hex) int {
	if !b.InBounds(h) {
		return 0
	}
	reach := 2 * b.Grid.Radius
	if u.Role == Leader {
		if objectives := b.Objectives(); len(objectives) > 0 {
			best := reach
			for _, o := range objectives {
				best = min(best, core.Distance(h, o))
			}
			return u.PositionWeight * (reach - best)
		}
	}
	return u.PositionWeight * (b.Grid.Radius - core.Distance(h, core.Hex{}))
}

// Clone copies the unit for lookahead. Behaviors are shared, trees are not.
func (u *Unit) Clone() *Unit {
	c := *u
	c.Status = u.Status.Clone()
	c.Abilities = make([]*Slot, len(u.Abilities))
	for i, s := range u.Abilities {
		c.Abilities[i] = &Slot{State: s.State.Clone(), Behavior: s.Behavior}
	}
	c.Tree = nil
	return &c
}

// UnitLookup resolves unit IDs found on board cells
type UnitLookup interface {
	Unit(id core.UnitID) (*Unit, bool)
}

// Roster owns every unit still in play
type Roster struct {
	units map[core.UnitID]*Unit
}

// NewRoster creates an empty roster
func NewRoster() *Roster {
	return &Roster{units: make(map[core.UnitID]*Unit)}
}

// Add registers u
func (r *Roster) Add(u *Unit) {
	r.units[u.ID] = u
}

// Remove drops u from play and reports whether it was present
func (r *Roster) Remove(id core.UnitID) bool {
	if _, ok := r.units[id]; !ok {
		return false
	}
	delete(r.units, id)
	return true
}

// Unit implements UnitLookup
func (r *Roster) Unit(id core.UnitID) (*Unit, bool) {
	u, ok := r.units[id]
	return u, ok
}

// Len returns the number of units in play
func (r *Roster) Len() int {
	return len(r.units)
}

// All returns every unit sorted by ID
func (r *Roster) All() []*Unit {
	out := make([]*Unit, 0, len(r.units))
	for _, u := range r.units {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Team returns the units of one team sorted by ID
func (r *Roster) Team(team int) []*Unit {
	var out []*Unit
	for _, u := range r.All() {
		if u.Team == team {
			out = append(out, u)
		}
	}
	return out
}

// Teams returns the distinct teams that still have units, ascending
func (r *Roster) Teams() []int {
	seen := make(map[int]struct{})
	var out []int
	for _, u := range r.units {
		if _, ok := seen[u.Team]; !ok {
			seen[u.Team] = struct{}{}
			out = append(out, u.Team)
		}
	}
	sort.Ints(out)
	return out
}

// Clone deep copies every unit
func (r *Roster) Clone() *Roster {
	c := NewRoster()
	for id, u := range r.units {
		c.units[id] = u.Clone()
	}
	return c
}
