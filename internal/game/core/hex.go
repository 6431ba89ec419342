package core

import (
	"fmt"

	"github.com/mitchelldurbincs/HexTactics/internal/common"
)

// Hex is a board position in axial coordinates. The implicit third cube
// coordinate is S = -Q - R.
type Hex struct {
	Q, R int
}

// NewHex creates a hex at the given axial coordinates
func NewHex(q, r int) Hex {
	return Hex{Q: q, R: r}
}

// S returns the implicit third cube coordinate
func (h Hex) S() int {
	return -h.Q - h.R
}

// Add returns the component-wise sum of two hexes
func (h Hex) Add(other Hex) Hex {
	return Hex{Q: h.Q + other.Q, R: h.R + other.R}
}

// Sub returns the component-wise difference of two hexes
func (h Hex) Sub(other Hex) Hex {
	return Hex{Q: h.Q - other.Q, R: h.R - other.R}
}

// Scale multiplies both components by n
func (h Hex) Scale(n int) Hex {
	return Hex{Q: h.Q * n, R: h.R * n}
}

// Step returns the adjacent position in the given direction without any
// bounds check. Use Grid.Neighbor for board-aware lookups.
func (h Hex) Step(d Direction) Hex {
	if !d.Valid() {
		return h
	}
	return h.Add(directionVectors[d])
}

// String returns a string representation of the hex
func (h Hex) String() string {
	return fmt.Sprintf("(%d,%d)", h.Q, h.R)
}

// Distance returns the number of steps between two hexes on an unbounded grid
func Distance(a, b Hex) int {
	return common.AxialDistance(a.Q, a.R, b.Q, b.R)
}

// Direction is one of the six hex edges, counted counter-clockwise from east.
type Direction int

const (
	East Direction = iota
	NorthEast
	NorthWest
	West
	SouthWest
	SouthEast

	// NoDirection marks moves that are not a single-direction step (e.g. teleports)
	NoDirection Direction = -1
)

// Directions lists the six directions in generation order
var Directions = [6]Direction{East, NorthEast, NorthWest, West, SouthWest, SouthEast}

var directionVectors = [6]Hex{
	{Q: 1, R: 0},
	{Q: 1, R: -1},
	{Q: 0, R: -1},
	{Q: -1, R: 0},
	{Q: -1, R: 1},
	{Q: 0, R: 1},
}

// Diagonal i sits between direction i and direction i+1.
var diagonalVectors = [6]Hex{
	{Q: 2, R: -1},
	{Q: 1, R: -2},
	{Q: -1, R: -1},
	{Q: -2, R: 1},
	{Q: -1, R: 2},
	{Q: 1, R: 1},
}

// Valid reports whether d is one of the six directions
func (d Direction) Valid() bool {
	return d >= East && d <= SouthEast
}

// Opposite returns the direction pointing the other way
func (d Direction) Opposite() Direction {
	if !d.Valid() {
		return NoDirection
	}
	return (d + 3) % 6
}

// Vector returns the axial offset of one step in this direction
func (d Direction) Vector() Hex {
	if !d.Valid() {
		return Hex{}
	}
	return directionVectors[d]
}

func (d Direction) String() string {
	switch d {
	case East:
		return "E"
	case NorthEast:
		return "NE"
	case NorthWest:
		return "NW"
	case West:
		return "W"
	case SouthWest:
		return "SW"
	case SouthEast:
		return "SE"
	case NoDirection:
		return "-"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// DirectionTo returns the direction from a to an adjacent hex b.
// Returns NoDirection if the hexes are not adjacent.
func DirectionTo(a, b Hex) Direction {
	delta := b.Sub(a)
	for i, v := range directionVectors {
		if v == delta {
			return Direction(i)
		}
	}
	return NoDirection
}

// TileID indexes a tile inside a Grid
type TileID int

// NoTile is the neighbor entry for positions that fall off the board
const NoTile TileID = -1

// Tile is an on-board hex with its precomputed adjacency
type Tile struct {
	Coord     Hex
	Neighbors [6]TileID
	Diagonals [6]TileID
}

// Grid is a hexagon-shaped board of the given radius centred on (0,0).
// It is pure geometry and never changes after construction.
type Grid struct {
	Radius int
	tiles  []Tile
	index  map[Hex]TileID
}

// NewGrid builds a grid containing every hex within radius of the origin
func NewGrid(radius int) *Grid {
	if radius < 0 {
		radius = 0
	}
	count := common.HexCount(radius)
	g := &Grid{
		Radius: radius,
		tiles:  make([]Tile, 0, count),
		index:  make(map[Hex]TileID, count),
	}

	// Row-major by R then Q so iteration order is deterministic
	for r := -radius; r <= radius; r++ {
		for q := max(-radius, -r-radius); q <= min(radius, -r+radius); q++ {
			h := Hex{Q: q, R: r}
			g.index[h] = TileID(len(g.tiles))
			g.tiles = append(g.tiles, Tile{Coord: h})
		}
	}

	for i := range g.tiles {
		t := &g.tiles[i]
		for d := 0; d < 6; d++ {
			t.Neighbors[d] = g.lookup(t.Coord.Add(directionVectors[d]))
			t.Diagonals[d] = g.lookup(t.Coord.Add(diagonalVectors[d]))
		}
	}
	return g
}

func (g *Grid) lookup(h Hex) TileID {
	if id, ok := g.index[h]; ok {
		return id
	}
	return NoTile
}

// Size returns the number of hexes on the board
func (g *Grid) Size() int {
	return len(g.tiles)
}

// Contains reports whether h is on the board
func (g *Grid) Contains(h Hex) bool {
	_, ok := g.index[h]
	return ok
}

// TileID returns the tile index for h, or NoTile if it is off the board
func (g *Grid) TileID(h Hex) TileID {
	return g.lookup(h)
}

// Tile returns the tile with the given index
func (g *Grid) Tile(id TileID) (Tile, bool) {
	if id < 0 || int(id) >= len(g.tiles) {
		return Tile{}, false
	}
	return g.tiles[id], true
}

// All returns every on-board hex in deterministic order
func (g *Grid) All() []Hex {
	out := make([]Hex, len(g.tiles))
	for i, t := range g.tiles {
		out[i] = t.Coord
	}
	return out
}

// Neighbor returns the adjacent hex in direction d
func (g *Grid) Neighbor(h Hex, d Direction) (Hex, bool) {
	id := g.lookup(h)
	if id == NoTile || !d.Valid() {
		return Hex{}, false
	}
	n := g.tiles[id].Neighbors[d]
	if n == NoTile {
		return Hex{}, false
	}
	return g.tiles[n].Coord, true
}

// Diagonal returns the hex two steps away between direction d and d+1
func (g *Grid) Diagonal(h Hex, d Direction) (Hex, bool) {
	id := g.lookup(h)
	if id == NoTile || !d.Valid() {
		return Hex{}, false
	}
	n := g.tiles[id].Diagonals[d]
	if n == NoTile {
		return Hex{}, false
	}
	return g.tiles[n].Coord, true
}

// NeighborAtDistance walks n steps in direction d. It reports false if any
// step leaves the board.
func (g *Grid) NeighborAtDistance(h Hex, d Direction, n int) (Hex, bool) {
	if n < 0 || !g.Contains(h) {
		return Hex{}, false
	}
	cur := h
	for i := 0; i < n; i++ {
		next, ok := g.Neighbor(cur, d)
		if !ok {
			return Hex{}, false
		}
		cur = next
	}
	return cur, true
}

// Distance returns the step distance between two hexes
func (g *Grid) Distance(a, b Hex) int {
	return Distance(a, b)
}

// Range returns all on-board hexes within radius of h, excluding h itself
func (g *Grid) Range(h Hex, radius int) []Hex {
	if radius <= 0 {
		return nil
	}
	out := make([]Hex, 0, 3*radius*(radius+1))
	for dr := -radius; dr <= radius; dr++ {
		for dq := max(-radius, -dr-radius); dq <= min(radius, -dr+radius); dq++ {
			if dq == 0 && dr == 0 {
				continue
			}
			c := Hex{Q: h.Q + dq, R: h.R + dr}
			if g.Contains(c) {
				out = append(out, c)
			}
		}
	}
	return out
}

// IsEdge reports whether h is on the board and has fewer than six on-board neighbors
func (g *Grid) IsEdge(h Hex) bool {
	id := g.lookup(h)
	if id == NoTile {
		return false
	}
	for _, n := range g.tiles[id].Neighbors {
		if n == NoTile {
			return true
		}
	}
	return false
}
