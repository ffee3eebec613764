// Package config provides YAML-based tunables for the simulation and the
// TOML server configuration.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/something/internal/core"
)

// Tunables holds every live-tunable value the simulation reads each frame.
// Distances are in pixels, times in seconds.
type Tunables struct {
	TileSize   float64          `yaml:"tile_size"`
	Physics    PhysicsTunables  `yaml:"physics"`
	Projectile ProjectileConfig `yaml:"projectile"`
	Combat     CombatConfig     `yaml:"combat"`
	Anim       AnimConfig       `yaml:"anim"`
	Colors     ColorConfig      `yaml:"colors"`
}

// PhysicsTunables defines movement parameters.
type PhysicsTunables struct {
	Gravity      float64 `yaml:"gravity"`
	JumpImpulse  float64 `yaml:"jump_impulse"`
	WalkSpeed    float64 `yaml:"walk_speed"`
	MaxFallSpeed float64 `yaml:"max_fall_speed"`
	EnemySpeed   float64 `yaml:"enemy_speed"`
}

// ProjectileConfig defines projectile motion.
type ProjectileConfig struct {
	Speed    float64 `yaml:"speed"`
	Lifetime float64 `yaml:"lifetime"`
	Size     float64 `yaml:"size"`
}

// CombatConfig defines hit points, damage and status effects.
type CombatConfig struct {
	PlayerHP    int     `yaml:"player_hp"`
	EnemyHP     int     `yaml:"enemy_hp"`
	WaterDamage int     `yaml:"water_damage"`
	FireDamage  int     `yaml:"fire_damage"`
	RockDamage  int     `yaml:"rock_damage"`
	IceDamage   int     `yaml:"ice_damage"`
	Knockback   float64 `yaml:"knockback"`
	FreezeTime  float64 `yaml:"freeze_time"`
	BurnTime    float64 `yaml:"burn_time"`
	PlaceReach  float64 `yaml:"place_reach"` // in tiles
}

// AnimConfig defines animation timing.
type AnimConfig struct {
	FrameDuration float64 `yaml:"frame_duration"`
}

// ColorConfig defines overlay colors.
type ColorConfig struct {
	CanPlace    core.Color `yaml:"can_place"`
	CannotPlace core.Color `yaml:"cannot_place"`
	Hitbox      core.Color `yaml:"hitbox"`
	HUD         core.Color `yaml:"hud"`
}

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("config: invalid tunables")

// Validate checks values the simulation relies on.
func (t Tunables) Validate() error {
	switch {
	case t.TileSize <= 0:
		return fmt.Errorf("%w: tile_size must be positive, got %v", ErrInvalid, t.TileSize)
	case t.Projectile.Size <= 0:
		return fmt.Errorf("%w: projectile.size must be positive, got %v", ErrInvalid, t.Projectile.Size)
	case t.Anim.FrameDuration <= 0:
		return fmt.Errorf("%w: anim.frame_duration must be positive, got %v", ErrInvalid, t.Anim.FrameDuration)
	case t.Combat.PlayerHP <= 0 || t.Combat.EnemyHP <= 0:
		return fmt.Errorf("%w: hit points must be positive", ErrInvalid)
	}
	return nil
}
