package testutil

import (
	"fmt"

	"github.com/mitchelldurbincs/HexTactics/internal/game/ability"
	"github.com/mitchelldurbincs/HexTactics/internal/game/core"
	"github.com/mitchelldurbincs/HexTactics/internal/game/rules"
)

// Scenario is a board plus roster that tests populate unit by unit
type Scenario struct {
	Board *core.Board
	Units *rules.Roster
	next  core.UnitID
}

// NewScenario creates an empty board of the given radius
func NewScenario(radius int) *Scenario {
	return &Scenario{
		Board: core.NewBoard(radius),
		Units: rules.NewRoster(),
		next:  1,
	}
}

// Add places a unit with no abilities. It panics on an invalid hex so
// broken fixtures fail loudly.
func (s *Scenario) Add(team int, role rules.Role, h core.Hex) *rules.Unit {
	u := rules.NewUnit(s.next, team, role, h, true)
	u.Name = fmt.Sprintf("%s-%d", role, s.next)
	u.AttackValue = 10
	u.AssistValue = 2
	u.PositionWeight = 1
	if err := s.Board.PlaceUnit(u.ID, h); err != nil {
		panic(fmt.Sprintf("fixture unit at %s: %v", h, err))
	}
	s.Units.Add(u)
	s.next++
	return u
}

// Pawn places a pawn
func (s *Scenario) Pawn(team int, h core.Hex) *rules.Unit {
	return s.Add(team, rules.Pawn, h)
}

// Leader places a leader
func (s *Scenario) Leader(team int, h core.Hex) *rules.Unit {
	return s.Add(team, rules.Leader, h)
}

// Hero places a hero carrying the named built-in behaviors with the given
// duration, cooldown and range
func (s *Scenario) Hero(team int, h core.Hex, behaviors ...string) *rules.Unit {
	u := s.Add(team, rules.Hero, h)
	for _, name := range behaviors {
		Equip(u, name, 1, 2, 2)
	}
	return u
}

// Equip adds a built-in behavior to u
func Equip(u *rules.Unit, name string, duration, cooldown, reach int) int {
	b, err := rules.NewBehavior(name)
	if err != nil {
		panic(err)
	}
	st := ability.NewState(name, duration, cooldown, map[string]int{ability.PerkRange: reach})
	slot, err := u.AddAbility(st, b)
	if err != nil {
		panic(err)
	}
	return slot
}

// Boulder places an unoccupiable, jumpable object
func (s *Scenario) Boulder(h core.Hex) {
	if _, err := s.Board.AddObject(core.TileObject{Kind: "boulder", CanBeJumped: true}, h); err != nil {
		panic(err)
	}
}

// Wall places an unoccupiable object that cannot be jumped
func (s *Scenario) Wall(h core.Hex) {
	if _, err := s.Board.AddObject(core.TileObject{Kind: "wall"}, h); err != nil {
		panic(err)
	}
}

// Generator returns a verifying generator over the scenario
func (s *Scenario) Generator() *rules.Generator {
	g := rules.NewGenerator(s.Board, s.Units, NopLogger())
	g.Verify = true
	return g
}

// Dests lists the destinations of the children of prior
func Dests(t *rules.MoveTree, prior rules.NodeID) []core.Hex {
	var out []core.Hex
	for _, id := range t.Children(prior) {
		out = append(out, t.Node(id).Dest)
	}
	return out
}

// NodesOfKind returns every node of kind k
func NodesOfKind(t *rules.MoveTree, k rules.MoveKind) []rules.MoveNode {
	var out []rules.MoveNode
	for _, n := range t.Nodes() {
		if n.Kind == k {
			out = append(out, n)
		}
	}
	return out
}
