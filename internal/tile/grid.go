package tile

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/something/internal/core"
)

// Room dimensions in tiles. A room is the unit of save and load.
const (
	RoomWidth  = 16
	RoomHeight = 9
	RoomSize   = RoomWidth * RoomHeight
)

var (
	// ErrLockOutOfBounds is returned when a room block does not fit in the grid.
	ErrLockOutOfBounds = errors.New("tile: room lock out of grid bounds")
	// ErrRoomSize is returned when a room tile sequence has the wrong length.
	ErrRoomSize = errors.New("tile: wrong room size")
	// ErrUnknownTile is returned when room data holds an id with no metadata.
	ErrUnknownTile = errors.New("tile: unknown tile id")
)

// Grid is a fixed-size 2D array of tile ids.
// All coordinates passed to Get and Set must be in bounds; the grid never clamps.
type Grid struct {
	width  int
	height int
	cells  []ID
}

// NewGrid creates an all-Empty grid. Panics on non-positive dimensions.
func NewGrid(width, height int) *Grid {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("tile: invalid grid size %dx%d", width, height))
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]ID, width*height),
	}
}

// Width returns the grid width in tiles.
func (g *Grid) Width() int { return g.width }

// Height returns the grid height in tiles.
func (g *Grid) Height() int { return g.height }

// Bounds returns the grid extent as a rectangle at the origin.
func (g *Grid) Bounds() core.Rect {
	return core.NewRect(0, 0, g.width, g.height)
}

// InBounds reports whether (x, y) addresses a cell.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

func (g *Grid) index(x, y int) int {
	if !g.InBounds(x, y) {
		panic(fmt.Sprintf("tile: cell (%d, %d) out of bounds %dx%d", x, y, g.width, g.height))
	}
	return y*g.width + x
}

// Get returns the tile at (x, y). Panics when out of bounds.
func (g *Grid) Get(x, y int) ID {
	return g.cells[g.index(x, y)]
}

// Set overwrites the tile at (x, y). Panics when out of bounds.
func (g *Grid) Set(x, y int, id ID) {
	g.cells[g.index(x, y)] = id
}

// Fill sets every cell of r to id. Panics if r leaves the grid.
func (g *Grid) Fill(r core.Rect, id ID) {
	if !r.Within(g.Bounds()) {
		panic(fmt.Sprintf("tile: fill %+v out of bounds %dx%d", r, g.width, g.height))
	}
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			g.cells[y*g.width+x] = id
		}
	}
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{width: g.width, height: g.height, cells: make([]ID, len(g.cells))}
	copy(c.cells, g.cells)
	return c
}

// Equal reports whether both grids have the same size and contents.
func (g *Grid) Equal(other *Grid) bool {
	if g.width != other.width || g.height != other.height {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// RoomBlock returns the room-sized block anchored at the lock origin.
func RoomBlock(lock core.Rect) core.Rect {
	return core.NewRect(lock.X, lock.Y, RoomWidth, RoomHeight)
}

func (g *Grid) checkLock(lock core.Rect) error {
	if !RoomBlock(lock).Within(g.Bounds()) || !lock.Within(g.Bounds()) {
		return fmt.Errorf("%w: lock %+v in %dx%d grid", ErrLockOutOfBounds, lock, g.width, g.height)
	}
	return nil
}

// ExtractRoom copies the room anchored at lock in row-major order.
func (g *Grid) ExtractRoom(lock core.Rect) ([]ID, error) {
	if err := g.checkLock(lock); err != nil {
		return nil, err
	}
	tiles := make([]ID, 0, RoomSize)
	for y := lock.Y; y < lock.Y+RoomHeight; y++ {
		row := y*g.width + lock.X
		tiles = append(tiles, g.cells[row:row+RoomWidth]...)
	}
	return tiles, nil
}

// LoadRoom overwrites the room anchored at lock with tiles.
// Everything is validated against table before the first write, so a failed
// load leaves the grid untouched.
func (g *Grid) LoadRoom(lock core.Rect, tiles []ID, table Table) error {
	if err := g.checkLock(lock); err != nil {
		return err
	}
	if len(tiles) != RoomSize {
		return fmt.Errorf("%w: got %d tiles, expected %d", ErrRoomSize, len(tiles), RoomSize)
	}
	for i, id := range tiles {
		if !table.Valid(id) {
			return fmt.Errorf("%w: %d at offset %d", ErrUnknownTile, id, i)
		}
	}
	for dy := 0; dy < RoomHeight; dy++ {
		row := (lock.Y+dy)*g.width + lock.X
		copy(g.cells[row:row+RoomWidth], tiles[dy*RoomWidth:(dy+1)*RoomWidth])
	}
	return nil
}

// LockAt returns the first lock whose pixel-space extent contains p.
func LockAt(locks []core.Rect, tileSize float64, p core.Vec2) (core.Rect, bool) {
	for _, l := range locks {
		if l.Scale(tileSize).ContainsPoint(p) {
			return l, true
		}
	}
	return core.Rect{}, false
}

// Solidity adapts a grid and its metadata table to the collision resolver.
type Solidity struct {
	Grid  *Grid
	Table Table
}

func (s Solidity) Width() int  { return s.Grid.width }
func (s Solidity) Height() int { return s.Grid.height }

// Solid reports whether (x, y) blocks movement. The caller bounds-checks.
func (s Solidity) Solid(x, y int) bool {
	return s.Table.Solid(s.Grid.Get(x, y))
}
