// Package tile implements the terrain model: tile identifiers, their static
// metadata, the fixed-size grid, and the room save/load format.
package tile

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/something/internal/anim"
	"github.com/vovakirdan/something/internal/core"
)

// ID identifies a terrain type. It is the byte stored in room files.
type ID uint8

const (
	Empty ID = iota
	Wall
	Dirt
	Ice
)

// Def is the immutable metadata for one tile ID.
type Def struct {
	Name      string
	Top       anim.Sprite
	Fill      rune
	Solid     bool
	Breakable bool
	Cost      int // blocks consumed per placement
}

// Table maps tile IDs to their metadata.
type Table []Def

// Standard returns the metadata table for all built-in tiles.
func Standard() Table {
	return Table{
		Empty: {Name: "empty", Fill: ' ', Top: anim.Sprite{Sheet: "tiles", Glyph: ' '}},
		Wall: {
			Name: "wall", Fill: '█', Solid: true,
			Top: anim.Sprite{Sheet: "tiles", Src: core.NewRect(1, 0, 1, 1), Glyph: '▀', Color: core.ColorGray},
		},
		Dirt: {
			Name: "dirt", Fill: '▓', Solid: true, Breakable: true, Cost: 1,
			Top: anim.Sprite{Sheet: "tiles", Src: core.NewRect(2, 0, 1, 1), Glyph: '▀', Color: core.ColorGreen},
		},
		Ice: {
			Name: "ice", Fill: '▒', Solid: true, Breakable: true, Cost: 1,
			Top: anim.Sprite{Sheet: "tiles", Src: core.NewRect(3, 0, 1, 1), Glyph: '▀', Color: core.ColorBrightCyan},
		},
	}
}

// Valid reports whether id has an entry in t.
func (t Table) Valid(id ID) bool {
	return int(id) < len(t)
}

// Def returns the metadata for id. Panics on an unknown id.
func (t Table) Def(id ID) Def {
	if !t.Valid(id) {
		panic(fmt.Sprintf("tile: unknown tile id %d", id))
	}
	return t[id]
}

// Solid reports whether id blocks movement.
func (t Table) Solid(id ID) bool {
	return t.Def(id).Solid
}

// Lookup finds a tile by name.
func (t Table) Lookup(name string) (ID, bool) {
	name = strings.ToLower(name)
	for i, d := range t {
		if d.Name == name {
			return ID(i), true
		}
	}
	return Empty, false
}

// Color returns the color used to draw the tile.
func (d Def) Color() core.Color {
	return d.Top.Color
}
