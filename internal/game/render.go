package game

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/something/internal/core"
	"github.com/vovakirdan/something/internal/tile"
)

// A tile is drawn as cellWidth terminal columns by one row.
const cellWidth = 2

// View maps world space onto a screen region. OX and OY are the tile
// coordinates drawn at the top-left screen cell.
type View struct {
	OX, OY   int
	Cols     int
	Rows     int
	TileSize float64
}

// TileToScreen returns the screen cell of the left half of tile (x, y).
func (v View) TileToScreen(x, y int) (int, int) {
	return (x - v.OX) * cellWidth, y - v.OY
}

// ToScreen returns the screen cell containing world point p.
func (v View) ToScreen(p core.Vec2) (int, int) {
	sx := int(math.Floor((p.X/v.TileSize - float64(v.OX)) * cellWidth))
	sy := int(math.Floor(p.Y/v.TileSize - float64(v.OY)))
	return sx, sy
}

// ToWorld returns the world point at the center of screen cell (sx, sy).
func (v View) ToWorld(sx, sy int) core.Vec2 {
	return core.V2(
		((float64(sx)+0.5)/cellWidth+float64(v.OX))*v.TileSize,
		(float64(sy)+0.5+float64(v.OY))*v.TileSize,
	)
}

// Camera returns the view for a cols x rows screen region. When the player
// stands in a camera lock the room is centered on screen, otherwise the view
// follows the player and stops at the grid edges.
func (w *World) Camera(cols, rows int) View {
	v := View{Cols: cols, Rows: rows, TileSize: w.Vars.TileSize}
	tilesW := cols / cellWidth

	if lock, ok := w.CurrentRoom(); ok {
		v.OX = lock.X - (tilesW-lock.W)/2
		v.OY = lock.Y - (rows-lock.H)/2
		return v
	}

	fx, fy := w.Grid.Width()/2, w.Grid.Height()/2
	if p, ok := w.PlayerEntity(); ok {
		c := p.Hitbox().Center()
		fx = int(c.X / v.TileSize)
		fy = int(c.Y / v.TileSize)
	}
	v.OX = follow(fx, tilesW, w.Grid.Width())
	v.OY = follow(fy, rows, w.Grid.Height())
	return v
}

func follow(focus, span, size int) int {
	if size <= span {
		return -(span - size) / 2
	}
	return core.Clamp(focus-span/2, 0, size-span)
}

// Render draws the world into dst. The last row holds the HUD. Render never
// mutates the grid or the arena.
func (w *World) Render(dst *core.Screen) {
	dst.Clear()
	rows := dst.Height() - 1
	if rows <= 0 {
		return
	}
	view := w.Camera(dst.Width(), rows)

	w.renderTiles(dst, view)

	for _, e := range w.Entities.All() {
		sx, sy := view.ToScreen(e.Hitbox().Center())
		if sy < 0 || sy >= rows {
			continue
		}
		sprite := e.Sprite()
		color := sprite.Color
		switch {
		case e.Frozen > 0:
			color = core.ColorBrightCyan
		case e.Burning > 0:
			color = core.ColorBrightRed
		}
		dst.SetColored(sx, sy, sprite.Glyph, color)
	}

	if p, ok := w.PlayerEntity(); ok {
		if wp := p.Weapon(); wp != nil {
			wp.Render(w, w.Player, dst, view)
		}
	}

	if w.Debug {
		for _, e := range w.Entities.All() {
			w.renderHitbox(dst, view, e)
		}
	}

	w.renderHUD(dst, rows)
}

func (w *World) renderTiles(dst *core.Screen, view View) {
	for sy := 0; sy < view.Rows; sy++ {
		y := view.OY + sy
		for col := 0; col < view.Cols/cellWidth; col++ {
			x := view.OX + col
			if !w.Grid.InBounds(x, y) {
				continue
			}
			id := w.Grid.Get(x, y)
			if id == tile.Empty {
				continue
			}
			def := w.Tiles.Def(id)
			glyph := def.Fill
			if y == 0 || !w.Tiles.Solid(w.Grid.Get(x, y-1)) {
				glyph = def.Top.Glyph
			}
			for i := range cellWidth {
				dst.SetColored(col*cellWidth+i, sy, glyph, def.Color())
			}
		}
	}
}

func (w *World) renderHitbox(dst *core.Screen, view View, e *Entity) {
	hb := e.Hitbox()
	x0, y0 := view.ToScreen(hb.Pos())
	x1, y1 := view.ToScreen(core.V2(hb.Right(), hb.Bottom()))
	for sy := y0; sy <= y1 && sy < view.Rows; sy++ {
		for sx := x0; sx <= x1; sx++ {
			if dst.Get(sx, sy) == ' ' {
				dst.Set(sx, sy, '·')
			}
			dst.Tint(sx, sy, w.Vars.Colors.Hitbox)
		}
	}
}

func (w *World) renderHUD(dst *core.Screen, y int) {
	var b strings.Builder
	if p, ok := w.PlayerEntity(); ok {
		fmt.Fprintf(&b, "HP %d", p.HP)
		for i := range p.Weapons {
			wp := &p.Weapons[i]
			if i == p.Current {
				fmt.Fprintf(&b, "  [%c %s]", wp.Icon().Glyph, wp.Label())
			} else {
				fmt.Fprintf(&b, "  %c", wp.Icon().Glyph)
			}
		}
	}
	if w.Paused {
		b.WriteString("  PAUSED")
	}
	if w.Debug {
		fmt.Fprintf(&b, "  entities:%d", w.Entities.Len())
	}
	dst.DrawTextColored(0, y, b.String(), w.Vars.Colors.HUD)
}
