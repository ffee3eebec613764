package config

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/vovakirdan/something/internal/core"
)

// ErrUnknownVar is returned when a named tunable does not exist.
var ErrUnknownVar = errors.New("config: unknown variable")

// VarKind is the value type of a named tunable.
type VarKind int

const (
	VarFloat VarKind = iota
	VarInt
	VarColor
)

func (k VarKind) String() string {
	switch k {
	case VarFloat:
		return "float"
	case VarInt:
		return "int"
	case VarColor:
		return "color"
	default:
		return "unknown"
	}
}

// Var is a named, typed handle to one field of a Tunables value.
type Var struct {
	Name string
	Kind VarKind

	f *float64
	i *int
	c *core.Color
}

// Value formats the current value.
func (v Var) Value() string {
	switch v.Kind {
	case VarFloat:
		return strconv.FormatFloat(*v.f, 'g', -1, 64)
	case VarInt:
		return strconv.Itoa(*v.i)
	case VarColor:
		return v.c.String()
	}
	panic(fmt.Sprintf("config: unreachable var kind %d", v.Kind))
}

func (v Var) set(s string) error {
	switch v.Kind {
	case VarFloat:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("%s expects a float: %w", v.Name, err)
		}
		*v.f = f
	case VarInt:
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("%s expects an int: %w", v.Name, err)
		}
		*v.i = n
	case VarColor:
		c, err := core.ParseColor(s)
		if err != nil {
			return fmt.Errorf("%s expects a color: %w", v.Name, err)
		}
		*v.c = c
	default:
		panic(fmt.Sprintf("config: unreachable var kind %d", v.Kind))
	}
	return nil
}

// Vars returns handles to every tunable of t, sorted by name.
func (t *Tunables) Vars() []Var {
	f := func(name string, p *float64) Var { return Var{Name: name, Kind: VarFloat, f: p} }
	i := func(name string, p *int) Var { return Var{Name: name, Kind: VarInt, i: p} }
	c := func(name string, p *core.Color) Var { return Var{Name: name, Kind: VarColor, c: p} }

	vars := []Var{
		f("tile_size", &t.TileSize),
		f("physics.gravity", &t.Physics.Gravity),
		f("physics.jump_impulse", &t.Physics.JumpImpulse),
		f("physics.walk_speed", &t.Physics.WalkSpeed),
		f("physics.max_fall_speed", &t.Physics.MaxFallSpeed),
		f("physics.enemy_speed", &t.Physics.EnemySpeed),
		f("projectile.speed", &t.Projectile.Speed),
		f("projectile.lifetime", &t.Projectile.Lifetime),
		f("projectile.size", &t.Projectile.Size),
		i("combat.player_hp", &t.Combat.PlayerHP),
		i("combat.enemy_hp", &t.Combat.EnemyHP),
		i("combat.water_damage", &t.Combat.WaterDamage),
		i("combat.fire_damage", &t.Combat.FireDamage),
		i("combat.rock_damage", &t.Combat.RockDamage),
		i("combat.ice_damage", &t.Combat.IceDamage),
		f("combat.knockback", &t.Combat.Knockback),
		f("combat.freeze_time", &t.Combat.FreezeTime),
		f("combat.burn_time", &t.Combat.BurnTime),
		f("combat.place_reach", &t.Combat.PlaceReach),
		f("anim.frame_duration", &t.Anim.FrameDuration),
		c("colors.can_place", &t.Colors.CanPlace),
		c("colors.cannot_place", &t.Colors.CannotPlace),
		c("colors.hitbox", &t.Colors.Hitbox),
		c("colors.hud", &t.Colors.HUD),
	}
	sort.Slice(vars, func(a, b int) bool { return vars[a].Name < vars[b].Name })
	return vars
}

// Lookup returns the named variable.
func (t *Tunables) Lookup(name string) (Var, error) {
	for _, v := range t.Vars() {
		if v.Name == name {
			return v, nil
		}
	}
	return Var{}, fmt.Errorf("%w: %q", ErrUnknownVar, name)
}

// Set parses value according to the variable's kind and stores it.
// A value that would make the tunables invalid is rejected and the previous
// value kept.
func (t *Tunables) Set(name, value string) error {
	v, err := t.Lookup(name)
	if err != nil {
		return err
	}
	prev := *t
	if err := v.set(value); err != nil {
		return err
	}
	if err := t.Validate(); err != nil {
		*t = prev
		return err
	}
	return nil
}
