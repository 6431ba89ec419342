package core

import "sort"

// UnitID identifies a unit for the lifetime of a match. Zero means "no unit".
type UnitID int

// NoUnit is the empty occupant value
const NoUnit UnitID = 0

// TileObjectID identifies a tile object. Zero means "no object".
type TileObjectID int

// NoObject is the empty object value
const NoObject TileObjectID = 0

// TileObject is static scenery placed on a cell (boulders, bridges, pits...).
type TileObject struct {
	ID            TileObjectID
	Kind          string
	CanBeOccupied bool // a unit may stand on the same cell
	CanBeJumped   bool // a unit may jump over the cell
}

// Cell holds the occupancy of one hex.
// At most one unit and, independently, at most one object.
type Cell struct {
	Occupant UnitID
	Object   TileObjectID
}

// Board is the grid geometry plus the only shared mutable state of a match:
// cell occupancy.
type Board struct {
	Grid       *Grid
	cells      []Cell // indexed by TileID
	objects    map[TileObjectID]*TileObject
	objectives map[Hex]struct{}
	nextObject TileObjectID
}

// NewBoard creates an empty board of the given radius
func NewBoard(radius int) *Board {
	g := NewGrid(radius)
	return &Board{
		Grid:       g,
		cells:      make([]Cell, g.Size()),
		objects:    make(map[TileObjectID]*TileObject),
		objectives: make(map[Hex]struct{}),
		nextObject: 1,
	}
}

// InBounds reports whether h is on the board
func (b *Board) InBounds(h Hex) bool {
	return b.Grid.Contains(h)
}

// Cell returns the cell at h, or nil if h is off the board
func (b *Board) Cell(h Hex) *Cell {
	id := b.Grid.TileID(h)
	if id == NoTile {
		return nil
	}
	return &b.cells[id]
}

// Occupant returns the unit standing on h
func (b *Board) Occupant(h Hex) (UnitID, bool) {
	c := b.Cell(h)
	if c == nil || c.Occupant == NoUnit {
		return NoUnit, false
	}
	return c.Occupant, true
}

// ObjectAt returns the tile object on h, or nil
func (b *Board) ObjectAt(h Hex) *TileObject {
	c := b.Cell(h)
	if c == nil || c.Object == NoObject {
		return nil
	}
	return b.objects[c.Object]
}

// IsBlocked reports whether a unit may not end a step on h: off-board,
// occupied by a unit, or holding an object that cannot be occupied.
func (b *Board) IsBlocked(h Hex) bool {
	c := b.Cell(h)
	if c == nil {
		return true
	}
	if c.Occupant != NoUnit {
		return true
	}
	if c.Object != NoObject {
		if obj := b.objects[c.Object]; obj != nil && !obj.CanBeOccupied {
			return true
		}
	}
	return false
}

// PlaceUnit puts a unit on an unblocked cell
func (b *Board) PlaceUnit(id UnitID, h Hex) error {
	c := b.Cell(h)
	if c == nil {
		return ErrOffBoard
	}
	if b.IsBlocked(h) {
		return ErrCellOccupied
	}
	c.Occupant = id
	return nil
}

// MoveUnit relocates the unit on from to the unblocked cell to
func (b *Board) MoveUnit(from, to Hex) error {
	src := b.Cell(from)
	dst := b.Cell(to)
	if src == nil || dst == nil {
		return ErrOffBoard
	}
	if src.Occupant == NoUnit {
		return ErrCellEmpty
	}
	if from == to {
		return nil
	}
	if b.IsBlocked(to) {
		return ErrCellOccupied
	}
	dst.Occupant = src.Occupant
	src.Occupant = NoUnit
	return nil
}

// RemoveUnit vacates h and returns the unit that stood there
func (b *Board) RemoveUnit(h Hex) UnitID {
	c := b.Cell(h)
	if c == nil {
		return NoUnit
	}
	id := c.Occupant
	c.Occupant = NoUnit
	return id
}

// AddObject places a copy of obj on h and returns its assigned ID
func (b *Board) AddObject(obj TileObject, h Hex) (TileObjectID, error) {
	c := b.Cell(h)
	if c == nil {
		return NoObject, ErrOffBoard
	}
	if c.Object != NoObject {
		return NoObject, ErrCellOccupied
	}
	obj.ID = b.nextObject
	b.nextObject++
	b.objects[obj.ID] = &obj
	c.Object = obj.ID
	return obj.ID, nil
}

// AddObjective marks h as part of the objective area
func (b *Board) AddObjective(h Hex) error {
	if !b.InBounds(h) {
		return ErrOffBoard
	}
	b.objectives[h] = struct{}{}
	return nil
}

// IsObjective reports whether h is inside the objective area
func (b *Board) IsObjective(h Hex) bool {
	_, ok := b.objectives[h]
	return ok
}

// Objectives returns the objective hexes in deterministic order
func (b *Board) Objectives() []Hex {
	out := make([]Hex, 0, len(b.objectives))
	for h := range b.objectives {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].R != out[j].R {
			return out[i].R < out[j].R
		}
		return out[i].Q < out[j].Q
	})
	return out
}

// Clone returns an independent copy for lookahead. The grid is shared since
// it is immutable.
func (b *Board) Clone() *Board {
	nb := &Board{
		Grid:       b.Grid,
		cells:      make([]Cell, len(b.cells)),
		objects:    make(map[TileObjectID]*TileObject, len(b.objects)),
		objectives: make(map[Hex]struct{}, len(b.objectives)),
		nextObject: b.nextObject,
	}
	copy(nb.cells, b.cells)
	for id, obj := range b.objects {
		o := *obj
		nb.objects[id] = &o
	}
	for h := range b.objectives {
		nb.objectives[h] = struct{}{}
	}
	return nb
}
