package mapgen

import (
	"fmt"
	"math/rand"

	"github.com/mitchelldurbincs/HexTactics/internal/common"
	"github.com/mitchelldurbincs/HexTactics/internal/config"
	"github.com/mitchelldurbincs/HexTactics/internal/game/core"
)

// Object kinds placed by the generator
const (
	KindBoulder = "boulder"
	KindWall    = "wall"
	KindShallow = "shallows"
)

// MapConfig holds configuration for skirmish layout generation
type MapConfig struct {
	BoulderRatio        int // 1 boulder per N hexes, 0 disables
	ShallowRatio        int // 1 shallow per N hexes, 0 disables
	NumWallVeins        int
	MinVeinLength       int
	MaxVeinLength       int
	MinObjectiveSpacing int
}

// DefaultMapConfig returns a sensible default configuration for radius
func DefaultMapConfig(radius int) MapConfig {
	return MapConfig{
		BoulderRatio:        12,
		ShallowRatio:        20,
		NumWallVeins:        radius / 2,
		MinVeinLength:       2,
		MaxVeinLength:       common.Max(2, radius-1),
		MinObjectiveSpacing: radius,
	}
}

// Generator fills a match layout with scenery using a deterministic RNG
type Generator struct {
	config MapConfig
	rng    *rand.Rand
}

// NewGenerator creates a new layout generator
func NewGenerator(config MapConfig, rng *rand.Rand) *Generator {
	return &Generator{
		config: config,
		rng:    rng,
	}
}

// Generate returns a copy of match with objects added and, when match has
// none, one objective per team. Unit placements are never covered and every
// unit keeps at least one open neighbor.
func (g *Generator) Generate(match config.MatchConfig) (config.MatchConfig, error) {
	out := match.Snapshot()
	board := core.NewBoard(out.BoardRadius)

	units := make(map[core.Hex]bool, out.UnitCount())
	for _, t := range out.Teams {
		for _, p := range t.Units {
			h := core.Hex{Q: p.Q, R: p.R}
			if !board.InBounds(h) {
				return match, fmt.Errorf("unit %d at %s: %w", p.Unit, h, core.ErrOffBoard)
			}
			units[h] = true
		}
	}
	for _, o := range out.Objects {
		if _, err := board.AddObject(objectFor(o), core.Hex{Q: o.Q, R: o.R}); err != nil {
			return match, fmt.Errorf("existing object %s: %w", o.Kind, err)
		}
	}

	l := &layout{board: board, units: units, reserved: make(map[core.Hex]bool)}
	for _, o := range out.Objectives {
		l.reserved[core.Hex{Q: o.Q, R: o.R}] = true
	}
	if len(out.Objectives) == 0 {
		for _, h := range g.placeObjectives(l, len(out.Teams)) {
			out.Objectives = append(out.Objectives, config.HexConfig{Q: h.Q, R: h.R})
		}
	}

	out.Objects = append(out.Objects, g.placeWallVeins(l)...)
	out.Objects = append(out.Objects, g.scatter(l, g.config.BoulderRatio, KindBoulder)...)
	out.Objects = append(out.Objects, g.scatter(l, g.config.ShallowRatio, KindShallow)...)
	return out, nil
}

type layout struct {
	board    *core.Board
	units    map[core.Hex]bool
	reserved map[core.Hex]bool
}

func objectFor(o config.ObjectConfig) core.TileObject {
	return core.TileObject{Kind: o.Kind, CanBeOccupied: o.CanBeOccupied, CanBeJumped: o.CanBeJumped}
}

func newObject(kind string, h core.Hex) config.ObjectConfig {
	o := config.ObjectConfig{Kind: kind, Q: h.Q, R: h.R}
	switch kind {
	case KindBoulder:
		o.CanBeJumped = true
	case KindShallow:
		o.CanBeOccupied = true
	}
	return o
}

// free reports whether an object of kind may go on h
func (l *layout) free(h core.Hex, kind string) bool {
	if !l.board.InBounds(h) || l.units[h] || l.reserved[h] || l.board.ObjectAt(h) != nil {
		return false
	}
	if kind == KindShallow {
		return true
	}
	// a blocking object must not wall in an adjacent unit
	for _, d := range core.Directions {
		n, ok := l.board.Grid.Neighbor(h, d)
		if !ok || !l.units[n] {
			continue
		}
		if l.openNeighbors(n, h) == 0 {
			return false
		}
	}
	return true
}

// openNeighbors counts the neighbors of h a unit could step to, treating
// skip as blocked
func (l *layout) openNeighbors(h, skip core.Hex) int {
	open := 0
	for _, d := range core.Directions {
		n, ok := l.board.Grid.Neighbor(h, d)
		if !ok || n == skip || l.units[n] {
			continue
		}
		if obj := l.board.ObjectAt(n); obj != nil && !obj.CanBeOccupied {
			continue
		}
		open++
	}
	return open
}

func (l *layout) place(kind string, h core.Hex) (config.ObjectConfig, bool) {
	o := newObject(kind, h)
	if _, err := l.board.AddObject(objectFor(o), h); err != nil {
		return o, false
	}
	return o, true
}

// placeObjectives picks edge hexes at least MinObjectiveSpacing apart and
// away from every unit
func (g *Generator) placeObjectives(l *layout, want int) []core.Hex {
	var edges []core.Hex
	for _, h := range l.board.Grid.All() {
		if l.board.Grid.IsEdge(h) && l.free(h, KindShallow) {
			edges = append(edges, h)
		}
	}

	var placed []core.Hex
	maxAttempts := len(edges) * 4
	for attempts := 0; len(placed) < want && attempts < maxAttempts && len(edges) > 0; attempts++ {
		h := edges[g.rng.Intn(len(edges))]
		if !g.objectiveFits(l, h, placed) {
			continue
		}
		if err := l.board.AddObjective(h); err != nil {
			continue
		}
		l.reserved[h] = true
		placed = append(placed, h)
	}
	return placed
}

func (g *Generator) objectiveFits(l *layout, h core.Hex, placed []core.Hex) bool {
	if l.reserved[h] {
		return false
	}
	for _, other := range placed {
		if core.Distance(h, other) < g.config.MinObjectiveSpacing {
			return false
		}
	}
	for u := range l.units {
		if core.Distance(h, u) < 2 {
			return false
		}
	}
	return true
}

// placeWallVeins lays short random walks of walls
func (g *Generator) placeWallVeins(l *layout) []config.ObjectConfig {
	var out []config.ObjectConfig
	if g.config.NumWallVeins <= 0 || g.config.MaxVeinLength <= 0 {
		return out
	}
	all := l.board.Grid.All()

	for v := 0; v < g.config.NumWallVeins; v++ {
		start := all[g.rng.Intn(len(all))]
		if !l.free(start, KindWall) {
			continue
		}
		length := g.config.MinVeinLength
		if spread := g.config.MaxVeinLength - g.config.MinVeinLength; spread > 0 {
			length += g.rng.Intn(spread + 1)
		}
		dir := core.Directions[g.rng.Intn(len(core.Directions))]

		cur := start
		for i := 0; i < length; i++ {
			if !l.free(cur, KindWall) {
				break
			}
			o, ok := l.place(KindWall, cur)
			if !ok {
				break
			}
			out = append(out, o)

			// veins bend at most one step off their heading
			if g.rng.Intn(3) == 0 {
				dir = core.Directions[(int(dir)+1+4*g.rng.Intn(2))%len(core.Directions)]
			}
			next, ok := l.board.Grid.Neighbor(cur, dir)
			if !ok {
				break
			}
			cur = next
		}
	}
	return out
}

// scatter places roughly one object of kind per ratio hexes
func (g *Generator) scatter(l *layout, ratio int, kind string) []config.ObjectConfig {
	var out []config.ObjectConfig
	if ratio <= 0 {
		return out
	}
	all := l.board.Grid.All()
	want := len(all) / ratio

	// Use a maximum attempt counter to avoid infinite loops
	maxAttempts := want * 10
	for attempts := 0; len(out) < want && attempts < maxAttempts; attempts++ {
		h := all[g.rng.Intn(len(all))]
		if !l.free(h, kind) {
			continue
		}
		if o, ok := l.place(kind, h); ok {
			out = append(out, o)
		}
	}
	return out
}
