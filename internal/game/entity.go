package game

import (
	"github.com/vovakirdan/something/internal/anim"
	"github.com/vovakirdan/something/internal/arena"
	"github.com/vovakirdan/something/internal/core"
)

// Index refers to an entity owned by a World's arena.
type Index = arena.Index[Entity]

// Kind discriminates entities.
type Kind uint8

const (
	KindPlayer Kind = iota
	KindEnemy
	KindProjectile
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindEnemy:
		return "enemy"
	case KindProjectile:
		return "projectile"
	default:
		return "unknown"
	}
}

// ProjectileKind selects a projectile's sprite and impact effect.
type ProjectileKind uint8

const (
	ProjectileWater ProjectileKind = iota
	ProjectileFire
	ProjectileRock
	ProjectileIce
)

func (k ProjectileKind) String() string {
	switch k {
	case ProjectileWater:
		return "water"
	case ProjectileFire:
		return "fire"
	case ProjectileRock:
		return "rock"
	case ProjectileIce:
		return "ice"
	default:
		return "unknown"
	}
}

// Sheet returns the sprite sheet the projectile flies with.
func (k ProjectileKind) Sheet() string {
	switch k {
	case ProjectileWater:
		return anim.SheetWater
	case ProjectileFire:
		return anim.SheetFire
	case ProjectileRock:
		return anim.SheetRock
	case ProjectileIce:
		return anim.SheetIce
	}
	panic("game: unknown projectile kind")
}

// Projectile is the projectile-only part of an entity.
type Projectile struct {
	Kind    ProjectileKind
	Shooter Index // may be stale once the shooter dies
	Age     float64
}

// Entity is a simulation actor. Pos is the top-left corner of the hitbox in
// pixels and Size its extent.
type Entity struct {
	Kind     Kind
	Pos      core.Vec2
	Vel      core.Vec2
	Size     core.Vec2
	Facing   int       // -1 left, 1 right
	AimDir   core.Vec2 // not normalized
	Grounded bool
	HP       int

	// Status timers in seconds.
	Frozen  float64
	Burning float64
	burnAcc float64

	// Push is horizontal knockback in px/s added on top of walking. It
	// decays each frame and stops at walls.
	Push float64

	Weapons []Weapon
	Current int

	Idle    anim.Animat
	Walking anim.Animat
	walking bool

	Projectile Projectile
}

// Hitbox returns the pixel-space collision box.
func (e *Entity) Hitbox() core.Rectf {
	return core.Rectf{X: e.Pos.X, Y: e.Pos.Y, W: e.Size.X, H: e.Size.Y}
}

// Weapon returns the selected weapon, or nil when the entity is unarmed.
func (e *Entity) Weapon() *Weapon {
	if len(e.Weapons) == 0 {
		return nil
	}
	return &e.Weapons[e.Current]
}

// CycleWeapon selects the next (delta > 0) or previous weapon.
func (e *Entity) CycleWeapon(delta int) {
	n := len(e.Weapons)
	if n == 0 {
		return
	}
	e.Current = ((e.Current+delta)%n + n) % n
}

// Animat returns the animation currently driving the entity.
func (e *Entity) Animat() *anim.Animat {
	if e.walking {
		return &e.Walking
	}
	return &e.Idle
}

// SetWalking switches between idle and walking animations. The newly
// selected animation restarts from its first frame.
func (e *Entity) SetWalking(walking bool) {
	if e.walking == walking || (walking && e.Walking.FrameCount() == 0) {
		return
	}
	e.walking = walking
	e.Animat().Reset()
}

// IsWalking reports whether the walking animation is selected.
func (e *Entity) IsWalking() bool { return e.walking }

// Sprite returns the frame to draw.
func (e *Entity) Sprite() anim.Sprite {
	return e.Animat().Sprite()
}
