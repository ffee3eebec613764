package config

import (
	_ "embed"

	"github.com/vovakirdan/something/internal/core"
)

//go:embed defaults/tunables.yaml
var defaultTunablesYAML []byte

// DefaultTunables returns the built-in tunables.
func DefaultTunables() Tunables {
	return Tunables{
		TileSize: 16,
		Physics: PhysicsTunables{
			Gravity:      900,
			JumpImpulse:  300,
			WalkSpeed:    96,
			MaxFallSpeed: 480,
			EnemySpeed:   40,
		},
		Projectile: ProjectileConfig{
			Speed:    320,
			Lifetime: 2,
			Size:     6,
		},
		Combat: CombatConfig{
			PlayerHP:    10,
			EnemyHP:     3,
			WaterDamage: 0,
			FireDamage:  1,
			RockDamage:  2,
			IceDamage:   1,
			Knockback:   160,
			FreezeTime:  2,
			BurnTime:    1.5,
			PlaceReach:  4,
		},
		Anim: AnimConfig{
			FrameDuration: 0.15,
		},
		Colors: ColorConfig{
			CanPlace:    core.ColorBrightGreen,
			CannotPlace: core.ColorBrightRed,
			Hitbox:      core.ColorMagenta,
			HUD:         core.ColorBrightYellow,
		},
	}
}
