package game

import (
	"math"

	"github.com/vovakirdan/something/internal/core"
	"github.com/vovakirdan/something/internal/tile"
)

// Targeter decides where wielder would place a block. The returned tile is
// always inside the grid; ok reports whether placing there is allowed.
type Targeter interface {
	Target(w *World, wielder *Entity) (x, y int, ok bool)
}

// ReachTargeter targets the tile under the aim point, or the tile in front
// of the wielder when there is no aim. A target is valid when it is empty,
// within Tunables.Combat.PlaceReach tiles of the wielder and not occupied by
// any live entity.
type ReachTargeter struct{}

// Target implements Targeter.
func (ReachTargeter) Target(w *World, wielder *Entity) (int, int, bool) {
	ts := w.Vars.TileSize
	center := wielder.Hitbox().Center()

	aim := center.Add(core.V2(float64(wielder.Facing)*ts, 0))
	if w.Input.HasAim {
		aim = w.Input.Aim
	}
	x := int(math.Floor(aim.X / ts))
	y := int(math.Floor(aim.Y / ts))
	if !w.Grid.InBounds(x, y) {
		return core.Clamp(x, 0, w.Grid.Width()-1), core.Clamp(y, 0, w.Grid.Height()-1), false
	}
	if w.Grid.Get(x, y) != tile.Empty {
		return x, y, false
	}

	cell := core.NewRect(x, y, 1, 1).Scale(ts)
	if cell.Center().Sub(center).Len() > w.Vars.Combat.PlaceReach*ts {
		return x, y, false
	}
	for _, e := range w.Entities.All() {
		if e.Hitbox().Overlaps(cell) {
			return x, y, false
		}
	}
	return x, y, true
}
