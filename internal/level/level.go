// Package level builds tile grids, camera locks and spawn points from level
// files. This package depends on tile but tile does not depend on level.
package level

import (
	"fmt"

	"github.com/vovakirdan/something/internal/core"
	"github.com/vovakirdan/something/internal/tile"
)

// Point is a tile coordinate.
type Point struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Level is a parsed level ready to seed a world.
type Level struct {
	ID       string
	Name     string
	Grid     *tile.Grid
	Locks    []core.Rect
	Player   Point
	Enemies  []Point
	FilePath string
}

// Legend characters for level rows.
const (
	RuneEmpty  = '.'
	RuneWall   = '#'
	RuneDirt   = 'd'
	RuneIce    = 'i'
	RunePlayer = 'P'
	RuneEnemy  = 'E'
)

var legend = map[rune]tile.ID{
	RuneEmpty: tile.Empty,
	' ':       tile.Empty,
	RuneWall:  tile.Wall,
	RuneDirt:  tile.Dirt,
	RuneIce:   tile.Ice,
}

// Rune returns the legend character for a tile id.
func Rune(id tile.ID) rune {
	switch id {
	case tile.Wall:
		return RuneWall
	case tile.Dirt:
		return RuneDirt
	case tile.Ice:
		return RuneIce
	default:
		return RuneEmpty
	}
}

// Build parses ASCII rows into a level. Rows shorter than the widest row are
// padded with empty tiles. P marks the player spawn, E an enemy spawn.
func Build(id string, rows []string) (*Level, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("level %s: no rows", id)
	}
	width := 0
	for _, r := range rows {
		width = max(width, len([]rune(r)))
	}
	if width == 0 {
		return nil, fmt.Errorf("level %s: empty rows", id)
	}

	lvl := &Level{ID: id, Name: id, Grid: tile.NewGrid(width, len(rows))}
	havePlayer := false
	for y, row := range rows {
		x := 0
		for _, r := range row {
			switch r {
			case RunePlayer:
				if havePlayer {
					return nil, fmt.Errorf("level %s: second player spawn at (%d, %d)", id, x, y)
				}
				lvl.Player = Point{X: x, Y: y}
				havePlayer = true
			case RuneEnemy:
				lvl.Enemies = append(lvl.Enemies, Point{X: x, Y: y})
			default:
				tid, ok := legend[r]
				if !ok {
					return nil, fmt.Errorf("level %s: unknown tile %q at (%d, %d)", id, r, x, y)
				}
				lvl.Grid.Set(x, y, tid)
			}
			x++
		}
	}
	if !havePlayer {
		return nil, fmt.Errorf("level %s: missing player spawn %q", id, RunePlayer)
	}
	lvl.Locks = AutoLocks(lvl.Grid)
	return lvl, nil
}

// AutoLocks tiles the grid with room-sized camera locks where they fit.
func AutoLocks(g *tile.Grid) []core.Rect {
	var locks []core.Rect
	for y := 0; y+tile.RoomHeight <= g.Height(); y += tile.RoomHeight {
		for x := 0; x+tile.RoomWidth <= g.Width(); x += tile.RoomWidth {
			locks = append(locks, core.NewRect(x, y, tile.RoomWidth, tile.RoomHeight))
		}
	}
	return locks
}

// Rows renders the grid back into legend rows.
func Rows(g *tile.Grid) []string {
	rows := make([]string, g.Height())
	for y := range rows {
		buf := make([]rune, g.Width())
		for x := range buf {
			buf[x] = Rune(g.Get(x, y))
		}
		rows[y] = string(buf)
	}
	return rows
}
