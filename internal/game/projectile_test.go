package game

import (
	"strings"
	"testing"

	"github.com/vovakirdan/something/internal/anim"
	"github.com/vovakirdan/something/internal/core"
	"github.com/vovakirdan/something/internal/tile"
)

func gunOf(k ProjectileKind) Gun {
	return Gun{Projectile: k, Frames: anim.Builtin()[k.Sheet()]}
}

func TestProjectileGridImpact(t *testing.T) {
	tests := []struct {
		name   string
		kind   ProjectileKind
		ground rune
		want   tile.ID
	}{
		{"rock digs dirt", ProjectileRock, 'd', tile.Empty},
		{"ice freezes dirt", ProjectileIce, 'd', tile.Ice},
		{"fire melts ice", ProjectileFire, 'i', tile.Empty},
		{"water is inert", ProjectileWater, 'd', tile.Dirt},
		{"rock bounces off walls", ProjectileRock, '#', tile.Wall},
		{"fire leaves dirt", ProjectileFire, 'd', tile.Dirt},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rows := openRows(8, 8)
			rows[5] = strings.Repeat(string(tc.ground), 8)
			w := newWorld(t, rows)
			before := w.Grid.Clone()

			idx := w.SpawnProjectile(gunOf(tc.kind), core.V2(40, 60), core.V2(0, 320), w.Player)
			w.Step(core.NewInputFrame(), 0.1)

			if got := w.Grid.Get(2, 5); got != tc.want {
				t.Errorf("tile (2, 5) = %d, expected %d", got, tc.want)
			}
			changed := 0
			if tc.want != before.Get(2, 5) {
				changed = 1
			}
			if n := diffCells(before, w.Grid); n != changed {
				t.Errorf("%d cells changed, expected %d", n, changed)
			}
			if _, err := w.Entities.Get(idx); err == nil {
				t.Error("projectile should be reaped after hitting the grid")
			}

			after := w.Grid.Clone()
			w.Step(core.NewInputFrame(), 0.1)
			if !w.Grid.Equal(after) {
				t.Error("a dead projectile must not affect the grid again")
			}
		})
	}
}

func TestProjectileHitsEnemy(t *testing.T) {
	w := newWorld(t, openRows(20, 12))
	enemy := w.SpawnEnemyAt(core.V2(200, 40))
	shot := w.SpawnProjectile(gunOf(ProjectileRock), core.V2(190, 36), core.V2(320, 0), w.Player)

	w.Step(core.NewInputFrame(), frame)

	e := w.Entities.MustGet(enemy)
	if want := w.Vars.Combat.EnemyHP - w.Vars.Combat.RockDamage; e.HP != want {
		t.Errorf("enemy HP = %d, expected %d", e.HP, want)
	}
	if w.Entities.Alive(shot) {
		t.Error("projectile should die on impact")
	}
}

func TestProjectileKillsEnemy(t *testing.T) {
	w := newWorld(t, openRows(20, 12))
	enemy := w.SpawnEnemyAt(core.V2(200, 40))
	w.Entities.MustGet(enemy).HP = 1
	w.SpawnProjectile(gunOf(ProjectileIce), core.V2(190, 36), core.V2(320, 0), w.Player)

	w.Step(core.NewInputFrame(), frame)

	if _, err := w.Entities.Get(enemy); err == nil {
		t.Error("enemy should be reaped")
	}
	found := false
	for _, ev := range w.Events {
		if ev.Kind == EventKilled && ev.Entity == enemy {
			found = true
		}
	}
	if !found {
		t.Errorf("Events = %+v, expected a kill event", w.Events)
	}
}

func TestProjectileStatusEffects(t *testing.T) {
	tests := []struct {
		kind  ProjectileKind
		check func(t *testing.T, w *World, e *Entity)
	}{
		{ProjectileIce, func(t *testing.T, w *World, e *Entity) {
			if e.Frozen <= 0 {
				t.Error("ice should freeze")
			}
		}},
		{ProjectileFire, func(t *testing.T, w *World, e *Entity) {
			if e.Burning <= 0 {
				t.Error("fire should burn")
			}
		}},
		{ProjectileWater, func(t *testing.T, w *World, e *Entity) {
			if e.Push <= 0 {
				t.Errorf("water should push the target along the shot, Push = %v", e.Push)
			}
		}},
	}

	for _, tc := range tests {
		t.Run(tc.kind.String(), func(t *testing.T) {
			w := newWorld(t, openRows(20, 12))
			enemy := w.SpawnEnemyAt(core.V2(200, 40))
			w.Entities.MustGet(enemy).HP = 100
			w.SpawnProjectile(gunOf(tc.kind), core.V2(190, 36), core.V2(320, 0), w.Player)

			w.Step(core.NewInputFrame(), frame)

			tc.check(t, w, w.Entities.MustGet(enemy))
		})
	}
}

func TestWaterKnockbackMovesTarget(t *testing.T) {
	w := newWorld(t, openRows(20, 12))
	idx := w.SpawnEnemyAt(core.V2(200, 40))
	w.Entities.MustGet(idx).HP = 100
	w.Entities.MustGet(idx).Facing = -1
	w.SpawnProjectile(gunOf(ProjectileWater), core.V2(190, 36), core.V2(320, 0), w.Player)

	w.Step(core.NewInputFrame(), frame)
	if push := w.Entities.MustGet(idx).Push; push <= 0 {
		t.Fatalf("Push = %v after the hit, expected positive", push)
	}

	// The enemy walks left, the shot travelled right.
	x := w.Entities.MustGet(idx).Pos.X
	w.Step(core.NewInputFrame(), frame)
	if got := w.Entities.MustGet(idx).Pos.X; got <= x {
		t.Errorf("enemy X = %v after the hit, expected more than %v", got, x)
	}

	for range 120 {
		w.Step(core.NewInputFrame(), frame)
	}
	if push := w.Entities.MustGet(idx).Push; push != 0 {
		t.Errorf("Push = %v after two seconds, expected 0", push)
	}
}

func TestProjectileIgnoresShooter(t *testing.T) {
	w := newWorld(t, openRows(20, 12))
	p, _ := w.PlayerEntity()
	hp := p.HP
	shot := w.SpawnProjectile(gunOf(ProjectileRock), p.Pos.Add(core.V2(2, 2)), core.V2(1, 0), w.Player)

	w.Step(core.NewInputFrame(), frame)

	if !w.Entities.Alive(shot) {
		t.Error("projectile overlapping only its shooter should survive")
	}
	if p.HP != hp {
		t.Errorf("shooter HP = %d, expected %d", p.HP, hp)
	}
}

func TestProjectileHitsOtherShootersTarget(t *testing.T) {
	w := newWorld(t, openRows(20, 12))
	enemy := w.SpawnEnemyAt(core.V2(200, 40))
	p, _ := w.PlayerEntity()
	hp := p.HP
	w.SpawnProjectile(gunOf(ProjectileRock), p.Pos.Add(core.V2(2, 2)), core.V2(1, 0), enemy)

	w.Step(core.NewInputFrame(), frame)

	if want := hp - w.Vars.Combat.RockDamage; p.HP != want {
		t.Errorf("player HP = %d, expected %d", p.HP, want)
	}
}

func TestProjectileExpires(t *testing.T) {
	w := newWorld(t, openRows(20, 12))
	shot := w.SpawnProjectile(gunOf(ProjectileWater), core.V2(150, 50), core.V2(0, 0), w.Player)

	steps := int(w.Vars.Projectile.Lifetime/0.1) + 2
	for range steps {
		w.Step(core.NewInputFrame(), 0.1)
	}
	if w.Entities.Alive(shot) {
		t.Error("projectile should expire after its lifetime")
	}
}
