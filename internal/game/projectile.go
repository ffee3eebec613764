package game

import (
	"github.com/vovakirdan/something/internal/physics"
	"github.com/vovakirdan/something/internal/tile"
)

// updateProjectile moves a projectile and applies at most one impact.
func (w *World) updateProjectile(idx Index, e *Entity, dt float64) {
	e.Projectile.Age += dt
	if e.Projectile.Age >= w.Vars.Projectile.Lifetime {
		w.kill(idx)
		return
	}

	res := physics.Resolve(w.solidity(), w.Vars.TileSize, e.Hitbox(), e.Vel, dt)
	e.Pos = res.Hitbox.Pos()
	if cell, ok := res.FirstHit(); ok {
		w.impactTile(e.Projectile.Kind, cell.X, cell.Y)
		w.kill(idx)
		return
	}

	hb := e.Hitbox()
	for oi, other := range w.Entities.All() {
		if oi == idx || oi == e.Projectile.Shooter || other.Kind == KindProjectile {
			continue
		}
		if hb.Overlaps(other.Hitbox()) {
			w.impactEntity(e, oi, other)
			w.kill(idx)
			return
		}
	}

	e.Animat().Advance(dt)
}

// impactTile applies the kind's effect to the struck cell. Cells outside the
// grid are the world border and never change.
func (w *World) impactTile(k ProjectileKind, x, y int) {
	if !w.Grid.InBounds(x, y) {
		return
	}
	cur := w.Grid.Get(x, y)
	next := cur
	switch k {
	case ProjectileWater:
	case ProjectileFire:
		if cur == tile.Ice {
			next = tile.Empty
		}
	case ProjectileRock:
		if cur == tile.Dirt {
			next = tile.Empty
		}
	case ProjectileIce:
		if cur == tile.Dirt {
			next = tile.Ice
		}
	default:
		panic("game: unknown projectile kind")
	}
	if next != cur {
		w.setTile(x, y, next)
	}
}

// impactEntity applies damage and status from projectile p to target.
func (w *World) impactEntity(p *Entity, idx Index, target *Entity) {
	c := w.Vars.Combat
	switch p.Projectile.Kind {
	case ProjectileWater:
		kb := p.Vel.Normalize().Scale(c.Knockback)
		target.Push += kb.X
		target.Vel.Y += kb.Y
		w.damage(idx, target, c.WaterDamage)
	case ProjectileFire:
		target.Burning = c.BurnTime
		w.damage(idx, target, c.FireDamage)
	case ProjectileRock:
		w.damage(idx, target, c.RockDamage)
	case ProjectileIce:
		target.Frozen = c.FreezeTime
		w.damage(idx, target, c.IceDamage)
	default:
		panic("game: unknown projectile kind")
	}
}
