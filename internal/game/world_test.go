package game

import (
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/something/internal/anim"
	"github.com/vovakirdan/something/internal/arena"
	"github.com/vovakirdan/something/internal/config"
	"github.com/vovakirdan/something/internal/core"
	"github.com/vovakirdan/something/internal/level"
	"github.com/vovakirdan/something/internal/tile"
)

const frame = 1.0 / 60

// fixedTargeter always returns the same answer.
type fixedTargeter struct {
	x, y int
	ok   bool
}

func (f fixedTargeter) Target(*World, *Entity) (int, int, bool) {
	return f.x, f.y, f.ok
}

// openRows returns a w x h empty level with the player at (1, 1).
func openRows(w, h int) []string {
	rows := make([]string, h)
	for y := range rows {
		rows[y] = strings.Repeat(".", w)
	}
	rows[1] = "." + "P" + strings.Repeat(".", w-2)
	return rows
}

func newWorld(t *testing.T, rows []string, opts ...Option) *World {
	t.Helper()
	lvl, err := level.Build("test", rows)
	if err != nil {
		t.Fatalf("level.Build() error = %v", err)
	}
	vars := config.DefaultTunables()
	w, err := NewWorld(lvl, &vars, opts...)
	if err != nil {
		t.Fatalf("NewWorld() error = %v", err)
	}
	return w
}

func projectiles(w *World) []*Entity {
	var out []*Entity
	for _, e := range w.Entities.All() {
		if e.Kind == KindProjectile {
			out = append(out, e)
		}
	}
	return out
}

func diffCells(a, b *tile.Grid) int {
	n := 0
	for y := 0; y < a.Height(); y++ {
		for x := 0; x < a.Width(); x++ {
			if a.Get(x, y) != b.Get(x, y) {
				n++
			}
		}
	}
	return n
}

func TestNewWorldSpawnsLevel(t *testing.T) {
	w := newWorld(t, []string{
		"......",
		"#E..P#",
		"######",
	})

	if w.Entities.Len() != 2 {
		t.Fatalf("Len() = %d, expected 2", w.Entities.Len())
	}
	p, ok := w.PlayerEntity()
	if !ok {
		t.Fatal("player not spawned")
	}
	if p.HP != w.Vars.Combat.PlayerHP {
		t.Errorf("player HP = %d, expected %d", p.HP, w.Vars.Combat.PlayerHP)
	}
	if got := p.Hitbox().Bottom(); got != 2*w.Vars.TileSize {
		t.Errorf("player bottom = %v, expected %v", got, 2*w.Vars.TileSize)
	}
	if len(p.Weapons) != len(w.Armory.Loadout()) {
		t.Errorf("player has %d weapons, expected full loadout", len(p.Weapons))
	}
}

func TestNewWorldMissingSheet(t *testing.T) {
	lvl, err := level.Build("test", openRows(4, 4))
	if err != nil {
		t.Fatal(err)
	}
	vars := config.DefaultTunables()
	_, err = NewWorld(lvl, &vars, WithAssets(anim.Sheets{}))
	if !errors.Is(err, anim.ErrMissingSheet) {
		t.Errorf("NewWorld() error = %v, expected ErrMissingSheet", err)
	}
}

func TestPlayerLandsOnFloor(t *testing.T) {
	rows := openRows(5, 6)
	rows[5] = "#####"
	w := newWorld(t, rows)

	in := core.NewInputFrame()
	for range 120 {
		w.Step(in, frame)
	}

	p, _ := w.PlayerEntity()
	if !p.Grounded {
		t.Error("player should be grounded")
	}
	if got := p.Pos.Y + p.Size.Y; got != 5*w.Vars.TileSize {
		t.Errorf("player bottom = %v, expected %v", got, 5*w.Vars.TileSize)
	}
	if p.Vel.Y != 0 {
		t.Errorf("Vel.Y = %v, expected 0", p.Vel.Y)
	}
}

func TestPlayerWalksAndJumps(t *testing.T) {
	rows := openRows(10, 6)
	rows[5] = "##########"
	w := newWorld(t, rows)

	idle := core.NewInputFrame()
	for range 60 {
		w.Step(idle, frame)
	}
	p, _ := w.PlayerEntity()
	startX := p.Pos.X

	right := core.NewInputFrame()
	right.Set(core.ActionMoveRight)
	w.Step(right, frame)
	if p.Pos.X <= startX {
		t.Errorf("Pos.X = %v, expected > %v", p.Pos.X, startX)
	}
	if !p.IsWalking() || p.Facing != 1 {
		t.Error("player should be walking right")
	}

	jump := core.NewInputFrame()
	jump.Set(core.ActionJump)
	w.Step(jump, frame)
	if p.Vel.Y >= 0 {
		t.Errorf("Vel.Y = %v after jump, expected upward velocity", p.Vel.Y)
	}
}

func TestEnemyTurnsAtWall(t *testing.T) {
	w := newWorld(t, []string{
		"......",
		"#E...P",
		"######",
	})

	var enemy *Entity
	for _, e := range w.Entities.All() {
		if e.Kind == KindEnemy {
			enemy = e
		}
	}
	if enemy.Facing != -1 {
		t.Fatalf("enemy Facing = %d, expected -1", enemy.Facing)
	}

	in := core.NewInputFrame()
	for range 30 {
		w.Step(in, frame)
	}
	if enemy.Facing != 1 {
		t.Errorf("enemy Facing = %d, expected 1 after hitting the wall", enemy.Facing)
	}
	if enemy.Pos.X < w.Vars.TileSize {
		t.Errorf("enemy X = %v, entered the wall", enemy.Pos.X)
	}
}

func TestResetEntities(t *testing.T) {
	w := newWorld(t, []string{
		"......",
		"#E..P#",
		"######",
	})
	oldPlayer := w.Player

	extra := w.SpawnEnemyAt(core.V2(40, 8))
	if w.Entities.Len() != 3 {
		t.Fatalf("Len() = %d after SpawnEnemyAt, expected 3", w.Entities.Len())
	}
	e := w.Entities.MustGet(extra)
	if c := e.Hitbox().Center(); c != core.V2(40, 8) {
		t.Errorf("enemy center = %v, expected (40, 8)", c)
	}

	w.ResetEntities()

	if w.Entities.Len() != 2 {
		t.Errorf("Len() = %d after reset, expected 2", w.Entities.Len())
	}
	if _, err := w.Entities.Get(extra); !errors.Is(err, arena.ErrStale) {
		t.Errorf("Get(extra) error = %v, expected ErrStale", err)
	}
	if _, err := w.Entities.Get(oldPlayer); !errors.Is(err, arena.ErrStale) {
		t.Errorf("Get(oldPlayer) error = %v, expected ErrStale", err)
	}
	if !w.Entities.Alive(w.Player) {
		t.Error("player should be respawned")
	}
}

func TestPlayerRespawnsAfterDeath(t *testing.T) {
	w := newWorld(t, openRows(6, 6))
	old := w.Player
	p, _ := w.PlayerEntity()
	p.HP = 1
	p.Burning = 5
	p.burnAcc = 0.999

	w.Step(core.NewInputFrame(), frame)

	if w.Player == old {
		t.Fatal("player index should change after respawn")
	}
	if _, err := w.Entities.Get(old); err == nil {
		t.Error("old player index should be stale")
	}
	np, ok := w.PlayerEntity()
	if !ok || np.HP != w.Vars.Combat.PlayerHP {
		t.Error("respawned player should have full HP")
	}
}

func TestPauseStopsSimulation(t *testing.T) {
	w := newWorld(t, openRows(6, 6))
	p, _ := w.PlayerEntity()
	y := p.Pos.Y

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	w.Step(pause, frame)
	w.Step(core.NewInputFrame(), frame)

	if !w.Paused {
		t.Fatal("world should be paused")
	}
	if p.Pos.Y != y {
		t.Errorf("Pos.Y = %v while paused, expected %v", p.Pos.Y, y)
	}
}

func TestSwitchingAnimationResetsIt(t *testing.T) {
	w := newWorld(t, openRows(6, 6))
	p, _ := w.PlayerEntity()

	p.Idle.Advance(0.1)
	p.SetWalking(true)
	p.Walking.Advance(0.1)
	p.SetWalking(false)

	if p.Idle.Current() != 0 || p.Idle.Cooldown() != w.Vars.Anim.FrameDuration {
		t.Errorf("idle = frame %d cooldown %v, expected a fresh animation", p.Idle.Current(), p.Idle.Cooldown())
	}
	p.SetWalking(true)
	if p.Walking.Cooldown() != w.Vars.Anim.FrameDuration {
		t.Errorf("walking cooldown = %v, expected %v", p.Walking.Cooldown(), w.Vars.Anim.FrameDuration)
	}
}

func TestRenderIsPure(t *testing.T) {
	rows := openRows(12, 8)
	rows[7] = "#dddddddddd#"
	w := newWorld(t, rows)
	w.Debug = true
	p, _ := w.PlayerEntity()
	p.Current = 4 // dirt placer
	w.SpawnEnemyAt(core.V2(100, 40))

	grid := w.Grid.Clone()
	pos := p.Pos
	amount := p.Weapon().Placer.Amount
	count := w.Entities.Len()

	screen := core.NewScreen(80, 24)
	w.Render(screen)
	w.Render(screen)

	if !w.Grid.Equal(grid) {
		t.Error("Render() changed the grid")
	}
	if p.Pos != pos || p.Weapon().Placer.Amount != amount || w.Entities.Len() != count {
		t.Error("Render() changed entity state")
	}
	if !strings.Contains(screen.String(), "@") {
		t.Error("player glyph not drawn")
	}
	if !strings.Contains(screen.Row(23), "HP 10") {
		t.Errorf("HUD row = %q, expected HP", screen.Row(23))
	}
}

func TestCameraCentersLockedRoom(t *testing.T) {
	lvl, err := level.Builtin("caves")
	if err != nil {
		t.Fatal(err)
	}
	vars := config.DefaultTunables()
	w, err := NewWorld(lvl, &vars)
	if err != nil {
		t.Fatal(err)
	}

	room, ok := w.CurrentRoom()
	if !ok {
		t.Fatal("player should start inside a camera lock")
	}
	v := w.Camera(80, 23)
	sx, sy := v.TileToScreen(room.X, room.Y)
	if sx != (80-room.W*cellWidth)/2 || sy != (23-room.H)/2 {
		t.Errorf("room origin drawn at (%d, %d)", sx, sy)
	}

	p := core.V2(100, 50)
	back := v.ToWorld(v.ToScreen(p))
	if int(back.X/vars.TileSize) != int(p.X/vars.TileSize) || int(back.Y/vars.TileSize) != int(p.Y/vars.TileSize) {
		t.Errorf("ToWorld(ToScreen(%v)) = %v, expected the same tile", p, back)
	}
}
