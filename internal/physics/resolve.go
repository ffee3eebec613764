// Package physics resolves axis-aligned boxes against a tile grid.
//
// Motion is applied in two passes, vertical first. On each axis only the
// cells the box newly enters are tested, nearest first along the motion and
// in increasing order across it; the first solid cell clamps the box to its
// boundary and zeroes that velocity component. Cells outside the grid are
// solid, which keeps every grid read in bounds.
package physics

import (
	"math"

	"github.com/vovakirdan/something/internal/core"
)

// Solidity is the view of the grid the resolver needs.
// Solid is only called with in-bounds coordinates.
type Solidity interface {
	Width() int
	Height() int
	Solid(x, y int) bool
}

// Cell is a grid coordinate.
type Cell struct {
	X, Y int
}

// Result is the corrected state after one step.
type Result struct {
	Hitbox   core.Rectf
	Vel      core.Vec2
	Grounded bool // landed on something while moving down
	Ceiling  bool // bumped into something while moving up

	HitY  bool // the vertical pass clamped
	CellY Cell // first solid cell of the vertical pass
	HitX  bool // the horizontal pass clamped
	CellX Cell // first solid cell of the horizontal pass
}

// Hit reports whether either pass clamped.
func (r Result) Hit() bool {
	return r.HitX || r.HitY
}

// FirstHit returns the vertical hit cell when there is one, otherwise the
// horizontal one.
func (r Result) FirstHit() (Cell, bool) {
	switch {
	case r.HitY:
		return r.CellY, true
	case r.HitX:
		return r.CellX, true
	}
	return Cell{}, false
}

func solidAt(g Solidity, x, y int) bool {
	if x < 0 || y < 0 || x >= g.Width() || y >= g.Height() {
		return true
	}
	return g.Solid(x, y)
}

// Resolve moves hitbox by vel*dt against g with cells of size tileSize.
func Resolve(g Solidity, tileSize float64, hitbox core.Rectf, vel core.Vec2, dt float64) Result {
	if !(tileSize > 0) {
		panic("physics: non-positive tile size")
	}
	res := Result{Hitbox: hitbox, Vel: vel}

	if dy := vel.Y * dt; dy != 0 {
		if cell, ok := sweepY(g, tileSize, res.Hitbox, dy); ok {
			res.HitY, res.CellY = true, cell
			if dy > 0 {
				res.Hitbox.Y = float64(cell.Y)*tileSize - res.Hitbox.H
				res.Grounded = true
			} else {
				res.Hitbox.Y = float64(cell.Y+1) * tileSize
				res.Ceiling = true
			}
			res.Vel.Y = 0
		} else {
			res.Hitbox.Y += dy
		}
	}

	if dx := vel.X * dt; dx != 0 {
		if cell, ok := sweepX(g, tileSize, res.Hitbox, dx); ok {
			res.HitX, res.CellX = true, cell
			if dx > 0 {
				res.Hitbox.X = float64(cell.X)*tileSize - res.Hitbox.W
			} else {
				res.Hitbox.X = float64(cell.X+1) * tileSize
			}
			res.Vel.X = 0
		} else {
			res.Hitbox.X += dx
		}
	}

	return res
}

// sweepY scans the rows box enters when moved by dy.
func sweepY(g Solidity, ts float64, box core.Rectf, dy float64) (Cell, bool) {
	x0, x1 := core.SpanCells(box.X, box.W, ts)
	if dy > 0 {
		from := int(math.Ceil(box.Bottom() / ts))
		to := int(math.Ceil((box.Bottom()+dy)/ts)) - 1
		for y := from; y <= to; y++ {
			for x := x0; x <= x1; x++ {
				if solidAt(g, x, y) {
					return Cell{X: x, Y: y}, true
				}
			}
		}
		return Cell{}, false
	}

	from := int(math.Floor(box.Y/ts)) - 1
	to := int(math.Floor((box.Y + dy) / ts))
	for y := from; y >= to; y-- {
		for x := x0; x <= x1; x++ {
			if solidAt(g, x, y) {
				return Cell{X: x, Y: y}, true
			}
		}
	}
	return Cell{}, false
}

// sweepX scans the columns box enters when moved by dx.
func sweepX(g Solidity, ts float64, box core.Rectf, dx float64) (Cell, bool) {
	y0, y1 := core.SpanCells(box.Y, box.H, ts)
	if dx > 0 {
		from := int(math.Ceil(box.Right() / ts))
		to := int(math.Ceil((box.Right()+dx)/ts)) - 1
		for x := from; x <= to; x++ {
			for y := y0; y <= y1; y++ {
				if solidAt(g, x, y) {
					return Cell{X: x, Y: y}, true
				}
			}
		}
		return Cell{}, false
	}

	from := int(math.Floor(box.X/ts)) - 1
	to := int(math.Floor((box.X + dx) / ts))
	for x := from; x >= to; x-- {
		for y := y0; y <= y1; y++ {
			if solidAt(g, x, y) {
				return Cell{X: x, Y: y}, true
			}
		}
	}
	return Cell{}, false
}
