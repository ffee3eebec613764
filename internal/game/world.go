// Package game is the real-time simulation: entities stored in a
// generational arena, the tile grid they collide with, weapons and
// projectiles. A World is driven one frame at a time by Step and drawn by
// Render; it is not safe for concurrent use.
package game

import (
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/something/internal/anim"
	"github.com/vovakirdan/something/internal/arena"
	"github.com/vovakirdan/something/internal/config"
	"github.com/vovakirdan/something/internal/core"
	"github.com/vovakirdan/something/internal/level"
	"github.com/vovakirdan/something/internal/physics"
	"github.com/vovakirdan/something/internal/tile"
)

// Fraction of a tile covered by player and enemy hitboxes.
const bodyScale = 0.75

// pushDecay is the fraction of knockback lost per second.
const pushDecay = 6.0

// EventKind classifies frame events.
type EventKind int

const (
	EventShot EventKind = iota
	EventTileChanged
	EventKilled
	EventPlayerDied
)

// Event is something the frontend may react to (sound, log line, HUD).
type Event struct {
	Kind   EventKind
	Entity Index
	Sound  string
	X, Y   int
	Tile   tile.ID
}

// World owns the grid and the entity arena for one running level.
type World struct {
	Grid     *tile.Grid
	Tiles    tile.Table
	Entities *arena.Arena[Entity]
	Vars     *config.Tunables
	Locks    []core.Rect
	Player   Index
	Targeter Targeter
	Armory   *Armory

	// Input is the frame input stored at the start of Step.
	Input  core.InputFrame
	Events []Event
	Debug  bool
	Paused bool
	Time   float64

	assets anim.Provider
	sheets map[string][]anim.Sprite
	level  *level.Level
	logger *log.Logger
}

// Option configures a World.
type Option func(*World)

// WithLogger sets the world logger.
func WithLogger(l *log.Logger) Option {
	return func(w *World) { w.logger = l }
}

// WithTargeter replaces the default placement target resolver.
func WithTargeter(t Targeter) Option {
	return func(w *World) { w.Targeter = t }
}

// WithAssets replaces the built-in glyph atlas.
func WithAssets(p anim.Provider) Option {
	return func(w *World) { w.assets = p }
}

// NewWorld builds a world from a level and spawns its entities. vars is
// read every frame and may be changed between frames.
func NewWorld(lvl *level.Level, vars *config.Tunables, opts ...Option) (*World, error) {
	w := &World{
		Grid:     lvl.Grid.Clone(),
		Tiles:    tile.Standard(),
		Entities: arena.New[Entity](),
		Vars:     vars,
		Locks:    lvl.Locks,
		Targeter: ReachTargeter{},
		Input:    core.NewInputFrame(),
		assets:   anim.Builtin(),
		sheets:   make(map[string][]anim.Sprite),
		level:    lvl,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(w)
	}

	for _, sheet := range []string{anim.SheetPlayerIdle, anim.SheetPlayerWalking, anim.SheetDirtGolem} {
		frames, err := w.assets.Frames(sheet)
		if err != nil {
			return nil, fmt.Errorf("world %s: %w", lvl.ID, err)
		}
		w.sheets[sheet] = frames
	}
	armory, err := NewArmory(w.assets, w.Tiles)
	if err != nil {
		return nil, fmt.Errorf("world %s: %w", lvl.ID, err)
	}
	w.Armory = armory

	w.spawnLevel()
	w.logger.Debug("world created", "level", lvl.ID, "size", fmt.Sprintf("%dx%d", w.Grid.Width(), w.Grid.Height()))
	return w, nil
}

// Level returns the level the world was built from.
func (w *World) Level() *level.Level { return w.level }

// Step advances the simulation by dt seconds.
func (w *World) Step(in core.InputFrame, dt float64) {
	w.Input = in.Clone()
	w.Events = w.Events[:0]
	if w.Input.Has(core.ActionDebug) {
		w.Debug = !w.Debug
	}
	if w.Input.Has(core.ActionPause) {
		w.Paused = !w.Paused
	}
	if w.Paused || dt <= 0 {
		return
	}
	w.Time += dt

	for idx, e := range w.Entities.All() {
		switch e.Kind {
		case KindPlayer:
			w.updatePlayer(idx, e, dt)
		case KindEnemy:
			w.updateEnemy(idx, e, dt)
		case KindProjectile:
			w.updateProjectile(idx, e, dt)
		default:
			panic(fmt.Sprintf("game: unknown entity kind %d", e.Kind))
		}
	}

	w.Entities.Reap()

	if !w.Entities.Alive(w.Player) {
		w.SpawnPlayer()
	}
}

func (w *World) updatePlayer(idx Index, e *Entity, dt float64) {
	in := w.Input
	p := w.Vars.Physics

	intent := 0
	if in.Has(core.ActionMoveLeft) {
		intent--
	}
	if in.Has(core.ActionMoveRight) {
		intent++
	}
	if e.Frozen > 0 {
		intent = 0
	}
	if intent != 0 {
		e.Facing = intent
	}
	if in.HasAim {
		e.AimDir = in.Aim.Sub(e.Hitbox().Center())
	} else {
		e.AimDir = core.V2(float64(e.Facing), 0)
	}
	if in.Has(core.ActionNextWeapon) {
		e.CycleWeapon(1)
	}
	if in.Has(core.ActionPrevWeapon) {
		e.CycleWeapon(-1)
	}

	e.Vel.X = float64(intent) * p.WalkSpeed
	if in.Has(core.ActionJump) && e.Grounded && e.Frozen <= 0 {
		e.Vel.Y = -p.JumpImpulse
	}
	w.move(e, dt)

	if in.Has(core.ActionShoot) {
		if wp := e.Weapon(); wp != nil {
			wp.Shoot(w, idx)
		}
	}

	w.tickStatus(idx, e, dt)
	e.SetWalking(intent != 0)
	e.Animat().Advance(dt)
}

// updateEnemy walks the enemy along its facing and turns it at walls.
func (w *World) updateEnemy(idx Index, e *Entity, dt float64) {
	if e.Frozen > 0 {
		e.Vel.X = 0
	} else {
		e.Vel.X = float64(e.Facing) * w.Vars.Physics.EnemySpeed
	}
	if res := w.move(e, dt); res.HitX {
		e.Facing = -e.Facing
	}
	w.tickStatus(idx, e, dt)
	if e.Frozen <= 0 {
		e.Animat().Advance(dt)
	}
}

// move applies gravity and resolves e against the grid.
func (w *World) move(e *Entity, dt float64) physics.Result {
	p := w.Vars.Physics
	e.Vel.Y = min(e.Vel.Y+p.Gravity*dt, p.MaxFallSpeed)
	vel := e.Vel
	vel.X += e.Push
	res := physics.Resolve(w.solidity(), w.Vars.TileSize, e.Hitbox(), vel, dt)
	e.Pos = res.Hitbox.Pos()
	e.Vel = res.Vel
	e.Grounded = res.Grounded

	if res.HitX {
		e.Push = 0
	} else if e.Push != 0 {
		e.Push *= max(0, 1-pushDecay*dt)
		if math.Abs(e.Push) < 1 {
			e.Push = 0
		}
	}
	return res
}

func (w *World) tickStatus(idx Index, e *Entity, dt float64) {
	e.Frozen = max(0, e.Frozen-dt)
	if e.Burning <= 0 {
		return
	}
	e.burnAcc += dt
	for e.burnAcc >= 1 {
		e.burnAcc--
		w.damage(idx, e, w.Vars.Combat.FireDamage)
	}
	e.Burning -= dt
	if e.Burning <= 0 {
		e.Burning, e.burnAcc = 0, 0
	}
}

func (w *World) damage(idx Index, e *Entity, n int) {
	if n <= 0 || !w.Entities.Alive(idx) {
		return
	}
	e.HP -= n
	if e.HP > 0 {
		return
	}
	w.kill(idx)
	if e.Kind == KindPlayer {
		w.emit(Event{Kind: EventPlayerDied, Entity: idx})
		w.logger.Info("player died")
	} else {
		w.emit(Event{Kind: EventKilled, Entity: idx})
	}
}

func (w *World) kill(idx Index) {
	if err := w.Entities.Kill(idx); err != nil {
		panic(err)
	}
}

func (w *World) setTile(x, y int, id tile.ID) {
	w.Grid.Set(x, y, id)
	w.emit(Event{Kind: EventTileChanged, X: x, Y: y, Tile: id})
}

func (w *World) emit(ev Event) {
	w.Events = append(w.Events, ev)
}

func (w *World) solidity() tile.Solidity {
	return tile.Solidity{Grid: w.Grid, Table: w.Tiles}
}

func (w *World) animat(sheet string) anim.Animat {
	return anim.New(w.sheets[sheet], w.Vars.Anim.FrameDuration)
}

// bodyAt returns the top-left corner of a body hitbox standing on the bottom
// edge of tile (x, y), horizontally centered.
func (w *World) bodyAt(x, y int) (pos, size core.Vec2) {
	ts := w.Vars.TileSize
	size = core.V2(ts*bodyScale, ts*bodyScale)
	pos = core.V2(float64(x)*ts+(ts-size.X)/2, float64(y+1)*ts-size.Y)
	return pos, size
}

func (w *World) spawnLevel() {
	w.SpawnPlayer()
	for _, p := range w.level.Enemies {
		pos, size := w.bodyAt(p.X, p.Y)
		w.SpawnEnemyAt(pos.Add(size.Scale(0.5)))
	}
}

// SpawnPlayer creates the player at the level spawn with a fresh loadout.
func (w *World) SpawnPlayer() Index {
	pos, size := w.bodyAt(w.level.Player.X, w.level.Player.Y)
	w.Player = w.Entities.Spawn(Entity{
		Kind:    KindPlayer,
		Pos:     pos,
		Size:    size,
		Facing:  1,
		HP:      w.Vars.Combat.PlayerHP,
		Weapons: w.Armory.Loadout(),
		Idle:    w.animat(anim.SheetPlayerIdle),
		Walking: w.animat(anim.SheetPlayerWalking),
	})
	w.logger.Debug("player spawned", "index", w.Player)
	return w.Player
}

// SpawnEnemyAt creates an enemy whose hitbox is centered on pos.
func (w *World) SpawnEnemyAt(pos core.Vec2) Index {
	ts := w.Vars.TileSize
	size := core.V2(ts*bodyScale, ts*bodyScale)
	idx := w.Entities.Spawn(Entity{
		Kind:   KindEnemy,
		Pos:    pos.Sub(size.Scale(0.5)),
		Size:   size,
		Facing: -1,
		HP:     w.Vars.Combat.EnemyHP,
		Idle:   w.animat(anim.SheetDirtGolem),
	})
	w.logger.Debug("enemy spawned", "index", idx, "x", pos.X, "y", pos.Y)
	return idx
}

// SpawnProjectile creates a projectile from gun's template.
func (w *World) SpawnProjectile(gun Gun, pos, vel core.Vec2, shooter Index) Index {
	s := w.Vars.Projectile.Size
	return w.Entities.Spawn(Entity{
		Kind:       KindProjectile,
		Pos:        pos,
		Vel:        vel,
		Size:       core.V2(s, s),
		Facing:     1,
		HP:         1,
		Idle:       anim.New(gun.Frames, w.Vars.Anim.FrameDuration),
		Projectile: Projectile{Kind: gun.Projectile, Shooter: shooter},
	})
}

// ResetEntities removes every entity and respawns the level's player and
// enemies. It must not be called from inside Step.
func (w *World) ResetEntities() {
	w.Entities.KillAll()
	n := w.Entities.Reap()
	w.spawnLevel()
	w.logger.Info("entities reset", "removed", n)
}

// PlayerEntity returns the live player, if any.
func (w *World) PlayerEntity() (*Entity, bool) {
	if !w.Entities.Alive(w.Player) {
		return nil, false
	}
	return w.Entities.MustGet(w.Player), true
}

// CurrentRoom returns the camera lock containing the player's center.
func (w *World) CurrentRoom() (core.Rect, bool) {
	p, ok := w.PlayerEntity()
	if !ok {
		return core.Rect{}, false
	}
	return tile.LockAt(w.Locks, w.Vars.TileSize, p.Hitbox().Center())
}
