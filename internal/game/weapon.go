package game

import (
	"fmt"
	"math"

	"github.com/vovakirdan/something/internal/anim"
	"github.com/vovakirdan/something/internal/core"
	"github.com/vovakirdan/something/internal/tile"
)

// WeaponKind tags the active variant of a Weapon.
type WeaponKind uint8

const (
	WeaponGun WeaponKind = iota
	WeaponPlacer
	WeaponStomp
)

func (k WeaponKind) String() string {
	switch k {
	case WeaponGun:
		return "gun"
	case WeaponPlacer:
		return "placer"
	case WeaponStomp:
		return "stomp"
	default:
		return "unknown"
	}
}

// Gun fires projectiles built from its template.
type Gun struct {
	Projectile ProjectileKind
	Frames     []anim.Sprite // projectile animation, never empty
	Sound      string        // emitted on every shot; empty for silent guns
}

// Placer puts tiles into the grid while it has blocks left.
type Placer struct {
	Tile   tile.ID
	Amount int
	Top    anim.Sprite
}

// Stomp breaks the ground under the wielder.
type Stomp struct {
	Sprite anim.Sprite
}

// Weapon is a closed union of Gun, Placer and Stomp selected by Kind.
// Only the field matching Kind is meaningful. Weapons are values: equipping
// a preset copies it.
type Weapon struct {
	Kind   WeaponKind
	Name   string
	Gun    Gun
	Placer Placer
	Stomp  Stomp
}

// Shoot fires the weapon on behalf of shooter.
func (wp *Weapon) Shoot(w *World, shooter Index) {
	e := w.Entities.MustGet(shooter)

	switch wp.Kind {
	case WeaponGun:
		if e.AimDir.IsZero() {
			return
		}
		vel := e.AimDir.Normalize().Scale(w.Vars.Projectile.Speed)
		idx := w.SpawnProjectile(wp.Gun, e.Pos, vel, shooter)
		w.emit(Event{Kind: EventShot, Entity: idx, Sound: wp.Gun.Sound})

	case WeaponPlacer:
		x, y, ok := w.Targeter.Target(w, e)
		cost := w.placeCost(wp.Placer.Tile)
		if !ok || wp.Placer.Amount < cost {
			return
		}
		w.setTile(x, y, wp.Placer.Tile)
		wp.Placer.Amount -= cost

	case WeaponStomp:
		w.stomp(e)

	default:
		panic(fmt.Sprintf("game: unreachable weapon kind %d", wp.Kind))
	}
}

// Render draws the weapon's preview for wielder. It never mutates w.
func (wp *Weapon) Render(w *World, wielder Index, dst *core.Screen, view View) {
	switch wp.Kind {
	case WeaponGun, WeaponStomp:
	case WeaponPlacer:
		e, err := w.Entities.Get(wielder)
		if err != nil {
			return
		}
		x, y, ok := w.Targeter.Target(w, e)
		color := w.Vars.Colors.CanPlace
		if !ok || wp.Placer.Amount < w.placeCost(wp.Placer.Tile) {
			color = w.Vars.Colors.CannotPlace
		}
		glyph := w.Tiles.Def(wp.Placer.Tile).Fill
		sx, sy := view.TileToScreen(x, y)
		if sy < 0 || sy >= view.Rows {
			return
		}
		for i := range cellWidth {
			dst.SetColored(sx+i, sy, glyph, color)
		}
	default:
		panic(fmt.Sprintf("game: unreachable weapon kind %d", wp.Kind))
	}
}

// Icon returns the sprite shown in the HUD.
func (wp *Weapon) Icon() anim.Sprite {
	switch wp.Kind {
	case WeaponGun:
		return wp.Gun.Frames[0]
	case WeaponPlacer:
		return wp.Placer.Top
	case WeaponStomp:
		return wp.Stomp.Sprite
	}
	panic(fmt.Sprintf("game: unreachable weapon kind %d", wp.Kind))
}

// Label returns a short HUD description such as "dirt x12".
func (wp *Weapon) Label() string {
	if wp.Kind == WeaponPlacer {
		return fmt.Sprintf("%s x%d", wp.Name, wp.Placer.Amount)
	}
	return wp.Name
}

func (w *World) placeCost(id tile.ID) int {
	return max(1, w.Tiles.Def(id).Cost)
}

// stomp clears breakable tiles in the row under e's feet.
func (w *World) stomp(e *Entity) {
	ts := w.Vars.TileSize
	hb := e.Hitbox()
	y := int(math.Floor(hb.Bottom() / ts))
	if y < 0 || y >= w.Grid.Height() {
		return
	}
	x0, x1 := core.SpanCells(hb.X, hb.W, ts)
	for x := max(x0, 0); x <= min(x1, w.Grid.Width()-1); x++ {
		if w.Tiles.Def(w.Grid.Get(x, y)).Breakable {
			w.setTile(x, y, tile.Empty)
		}
	}
}

// Armory builds weapon presets from an asset provider. Every preset it
// returns has a non-empty icon.
type Armory struct {
	guns  map[ProjectileKind][]anim.Sprite
	tiles tile.Table
	stomp anim.Sprite
}

// Sounds played by gun presets.
const (
	SoundSplash   = "splash"
	SoundFireball = "fireball"
)

// NewArmory loads the sheets the presets need.
func NewArmory(p anim.Provider, tiles tile.Table) (*Armory, error) {
	a := &Armory{guns: make(map[ProjectileKind][]anim.Sprite), tiles: tiles}
	for _, k := range []ProjectileKind{ProjectileWater, ProjectileFire, ProjectileRock, ProjectileIce} {
		frames, err := p.Frames(k.Sheet())
		if err != nil {
			return nil, fmt.Errorf("armory: %w", err)
		}
		a.guns[k] = frames
	}
	golem, err := p.Frames(anim.SheetDirtGolem)
	if err != nil {
		return nil, fmt.Errorf("armory: %w", err)
	}
	a.stomp = golem[0]
	return a, nil
}

func (a *Armory) gun(name string, k ProjectileKind, sound string) Weapon {
	return Weapon{Kind: WeaponGun, Name: name, Gun: Gun{Projectile: k, Frames: a.guns[k], Sound: sound}}
}

func (a *Armory) placer(name string, id tile.ID, amount int) Weapon {
	return Weapon{Kind: WeaponPlacer, Name: name, Placer: Placer{Tile: id, Amount: amount, Top: a.tiles.Def(id).Top}}
}

func (a *Armory) WaterGun() Weapon { return a.gun("water gun", ProjectileWater, SoundSplash) }
func (a *Armory) FireGun() Weapon  { return a.gun("fire gun", ProjectileFire, SoundFireball) }
func (a *Armory) RockGun() Weapon  { return a.gun("rock gun", ProjectileRock, "") }
func (a *Armory) IceGun() Weapon   { return a.gun("ice gun", ProjectileIce, "") }

func (a *Armory) DirtBlockPlacer(amount int) Weapon {
	return a.placer("dirt", tile.Dirt, amount)
}

func (a *Armory) IceBlockPlacer(amount int) Weapon {
	return a.placer("ice", tile.Ice, amount)
}

func (a *Armory) StompMove() Weapon {
	return Weapon{Kind: WeaponStomp, Name: "stomp", Stomp: Stomp{Sprite: a.stomp}}
}

// Loadout is the player's starting set of weapons.
func (a *Armory) Loadout() []Weapon {
	return []Weapon{
		a.WaterGun(),
		a.FireGun(),
		a.RockGun(),
		a.IceGun(),
		a.DirtBlockPlacer(20),
		a.IceBlockPlacer(20),
		a.StompMove(),
	}
}
