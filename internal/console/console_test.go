package console

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/vovakirdan/something/internal/config"
	"github.com/vovakirdan/something/internal/core"
	"github.com/vovakirdan/something/internal/game"
	"github.com/vovakirdan/something/internal/level"
	"github.com/vovakirdan/something/internal/storage"
	"github.com/vovakirdan/something/internal/tile"
)

func newConsole(t *testing.T) (*Console, *Env) {
	t.Helper()
	lvl, err := level.Builtin("caves")
	if err != nil {
		t.Fatalf("Builtin() failed: %v", err)
	}
	vars := config.DefaultTunables()
	w, err := game.NewWorld(lvl, &vars)
	if err != nil {
		t.Fatalf("NewWorld() failed: %v", err)
	}
	env := &Env{World: w, Vars: &vars, RoomDir: filepath.Join(t.TempDir(), "rooms")}
	c := New(*env, nil)
	t.Cleanup(c.Close)
	return c, env
}

func lastLine(c *Console) string {
	lines := c.Lines()
	if len(lines) == 0 {
		return ""
	}
	return lines[len(lines)-1]
}

func TestExecUnknownCommand(t *testing.T) {
	c, _ := newConsole(t)

	err := c.Exec("frobnicate now")
	if !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("Exec() error = %v, expected ErrUnknownCommand", err)
	}
	if got := lastLine(c); got != "Unknown command `frobnicate`" {
		t.Errorf("last line = %q", got)
	}
	if !slices.Equal(c.History(), []string{"frobnicate now"}) {
		t.Errorf("History() = %v", c.History())
	}
}

func TestExecBlankLine(t *testing.T) {
	c, _ := newConsole(t)
	if err := c.Exec("   "); err != nil {
		t.Errorf("Exec() error = %v", err)
	}
	if len(c.Lines()) != 0 || len(c.History()) != 0 {
		t.Error("a blank line should not be recorded")
	}
}

func TestHelpListsCommands(t *testing.T) {
	c, _ := newConsole(t)
	if err := c.Exec("help"); err != nil {
		t.Fatal(err)
	}
	out := strings.Join(c.Lines(), "\n")
	for _, cmd := range Commands() {
		if !strings.Contains(out, cmd.Name+" ") {
			t.Errorf("help output is missing %s", cmd.Name)
		}
	}
	if !strings.Contains(out, "quit - exit the game") {
		t.Errorf("help output = %q", out)
	}
}

func TestSet(t *testing.T) {
	tests := []struct {
		line    string
		wantErr string
	}{
		{"set physics.gravity 100", ""},
		{"set nope 1", "Variable `nope` does not exist!"},
		{"set combat.player_hp abc", "`abc` is not an int"},
		{"set physics.walk_speed fast", "`fast` is not a float"},
		{"set colors.hud plaid", "`plaid` is not a color"},
		{"set physics.gravity", "usage: set <var> <value>"},
	}

	for _, tc := range tests {
		t.Run(tc.line, func(t *testing.T) {
			c, env := newConsole(t)
			err := c.Exec(tc.line)
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("Exec() error = %v", err)
				}
				if env.Vars.Physics.Gravity != 100 {
					t.Errorf("Gravity = %v, expected 100", env.Vars.Physics.Gravity)
				}
				return
			}
			if err == nil || err.Error() != tc.wantErr {
				t.Errorf("Exec() error = %v, expected %q", err, tc.wantErr)
			}
			if got := lastLine(c); got != tc.wantErr {
				t.Errorf("last line = %q, expected %q", got, tc.wantErr)
			}
		})
	}
}

func TestSetRejectsInvalidTunables(t *testing.T) {
	c, env := newConsole(t)
	before := env.Vars.TileSize

	err := c.Exec("set tile_size 0")
	if !errors.Is(err, config.ErrInvalid) {
		t.Errorf("Exec() error = %v, expected ErrInvalid", err)
	}
	if env.Vars.TileSize != before {
		t.Errorf("TileSize = %v, expected %v", env.Vars.TileSize, before)
	}
}

func TestVarsListsTunables(t *testing.T) {
	c, env := newConsole(t)
	if err := c.Exec("vars"); err != nil {
		t.Fatal(err)
	}
	if got, want := len(c.Lines()), len(env.Vars.Vars())+1; got != want {
		t.Errorf("vars printed %d lines, expected %d", got, want)
	}
}

func TestReload(t *testing.T) {
	c, env := newConsole(t)
	path := filepath.Join(t.TempDir(), "tunables.yaml")
	if err := os.WriteFile(path, []byte("physics:\n  gravity: 123\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c.env.ConfigPath = path
	env.Vars.Projectile.Speed = 1

	if err := c.Exec("reload"); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if env.Vars.Physics.Gravity != 123 {
		t.Errorf("Gravity = %v, expected 123", env.Vars.Physics.Gravity)
	}
	if env.Vars.Projectile.Speed == 1 {
		t.Error("reload should restore values missing from the file to defaults")
	}
	if got := lastLine(c); got != "Reloaded config file `"+path+"`" {
		t.Errorf("last line = %q", got)
	}
}

func TestReloadKeepsTunablesOnError(t *testing.T) {
	c, env := newConsole(t)
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("tile_size: [\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c.env.ConfigPath = path
	env.Vars.Physics.Gravity = 7

	if err := c.Exec("reload"); err == nil {
		t.Fatal("reload of a broken file should fail")
	}
	if env.Vars.Physics.Gravity != 7 {
		t.Error("a failed reload must keep the current tunables")
	}
}

func TestSpawnEnemyAndReset(t *testing.T) {
	c, env := newConsole(t)
	w := env.World
	n := w.Entities.Len()

	if err := c.Exec("spawn_enemy 100 50"); err != nil {
		t.Fatal(err)
	}
	if w.Entities.Len() != n+1 {
		t.Errorf("Len() = %d, expected %d", w.Entities.Len(), n+1)
	}

	w.Input.AimAt(core.V2(60, 40))
	if err := c.Exec("spawn_enemy"); err != nil {
		t.Fatal(err)
	}
	if err := c.Exec("spawn_enemy 1"); err == nil {
		t.Error("spawn_enemy with one argument should fail")
	}

	if err := c.Exec("reset"); err != nil {
		t.Fatal(err)
	}
	if w.Entities.Len() != n {
		t.Errorf("Len() after reset = %d, expected %d", w.Entities.Len(), n)
	}
}

func TestQuitAndClose(t *testing.T) {
	c, _ := newConsole(t)
	var quit, toggled bool
	c.env.Quit = func() { quit = true }
	c.env.Toggle = func() { toggled = true }

	if err := c.Exec("quit"); err != nil || !quit {
		t.Errorf("quit: err = %v, called = %v", err, quit)
	}
	if err := c.Exec("close"); err != nil || !toggled {
		t.Errorf("close: err = %v, called = %v", err, toggled)
	}
}

func TestSaveAndLoadRoom(t *testing.T) {
	c, env := newConsole(t)
	store, err := storage.Open(filepath.Join(t.TempDir(), "rooms.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()
	c.env.Store = store
	w := env.World

	lock, ok := w.CurrentRoom()
	if !ok {
		t.Fatal("player should start inside a room")
	}
	saved, _ := w.Grid.ExtractRoom(lock)

	if err := c.Exec("save_room entry"); err != nil {
		t.Fatalf("save_room failed: %v", err)
	}
	path := filepath.Join(env.RoomDir, "room-0.bin")
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("room file not written: %v", err)
	}
	if info.Size() != tile.RoomSize {
		t.Errorf("room file size = %d, expected %d", info.Size(), tile.RoomSize)
	}
	if !strings.HasPrefix(lastLine(c), "New room is saved") {
		t.Errorf("last line = %q", lastLine(c))
	}

	// Scribble over the room, then load both copies back.
	w.Grid.Fill(tile.RoomBlock(lock), tile.Ice)
	if err := c.Exec("load_room entry"); err != nil {
		t.Fatalf("load_room from the library failed: %v", err)
	}
	if got, _ := w.Grid.ExtractRoom(lock); !slices.Equal(got, saved) {
		t.Error("load_room did not restore the library copy")
	}

	w.Grid.Fill(tile.RoomBlock(lock), tile.Ice)
	if err := c.Exec("load_room " + path); err != nil {
		t.Fatalf("load_room from file failed: %v", err)
	}
	if got, _ := w.Grid.ExtractRoom(lock); !slices.Equal(got, saved) {
		t.Error("load_room did not restore the file copy")
	}

	if err := c.Exec("save_room"); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(env.RoomDir, "room-1.bin")); err != nil {
		t.Errorf("second save should use the next free path: %v", err)
	}
	if err := c.Exec("rooms"); err != nil {
		t.Fatal(err)
	}
	out := strings.Join(c.Lines(), "\n")
	if !strings.Contains(out, "entry  caves") || !strings.Contains(out, "room-1  caves") {
		t.Errorf("rooms output = %q", out)
	}
}

func TestSaveRoomWithoutPlayer(t *testing.T) {
	c, env := newConsole(t)
	env.World.Entities.KillAll()
	env.World.Entities.Reap()

	err := c.Exec("save_room")
	if err == nil || err.Error() != "Can't find a room with Player in it" {
		t.Errorf("save_room error = %v", err)
	}
}

func TestRoomsWithoutStore(t *testing.T) {
	c, _ := newConsole(t)
	if err := c.Exec("rooms"); err == nil {
		t.Error("rooms without a library should fail")
	}
	if err := c.Exec("load_room entry"); err == nil {
		t.Error("load_room by name without a library should fail")
	}
}

func TestLua(t *testing.T) {
	c, env := newConsole(t)
	w := env.World
	n := w.Entities.Len()

	code := `
set("physics.gravity", 50)
print("gravity", get("physics.gravity"))
spawn_enemy(100, 50)
place(1, 1, "dirt")
print(tile(1, 1), tile(-1, -1))
local x, y, hp = player()
print(hp)
`
	if err := c.Exec("lua " + strings.ReplaceAll(code, "\n", " ")); err != nil {
		t.Fatalf("lua failed: %v", err)
	}
	if env.Vars.Physics.Gravity != 50 {
		t.Errorf("Gravity = %v, expected 50", env.Vars.Physics.Gravity)
	}
	if w.Entities.Len() != n+1 {
		t.Errorf("Len() = %d, expected %d", w.Entities.Len(), n+1)
	}
	if w.Grid.Get(1, 1) != tile.Dirt {
		t.Errorf("tile (1, 1) = %d, expected dirt", w.Grid.Get(1, 1))
	}

	lines := c.Lines()
	want := []string{"gravity\t50", "dirt\tnil", "10"}
	if got := lines[len(lines)-3:]; !slices.Equal(got, want) {
		t.Errorf("printed %q, expected %q", got, want)
	}
}

func TestLuaErrors(t *testing.T) {
	c, env := newConsole(t)
	tests := []string{
		`set("nope", 1)`,
		`set("combat.player_hp", "many")`,
		`place(1, 1, "lava")`,
		`place(-5, 0, "dirt")`,
		`this is not lua`,
	}
	for _, code := range tests {
		if err := c.RunLua(code); err == nil {
			t.Errorf("RunLua(%q) should fail", code)
		}
	}
	if env.Vars.Combat.PlayerHP != config.DefaultTunables().Combat.PlayerHP {
		t.Error("a failed set must not change the tunable")
	}
}

func TestLuaExecAndRunFile(t *testing.T) {
	c, env := newConsole(t)
	script := filepath.Join(t.TempDir(), "setup.lua")
	src := `
ok = exec("set physics.jump_impulse 42")
bad = exec("nope")
print(ok, bad)
`
	if err := os.WriteFile(script, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := c.Exec("run " + script); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if env.Vars.Physics.JumpImpulse != 42 {
		t.Errorf("JumpImpulse = %v, expected 42", env.Vars.Physics.JumpImpulse)
	}
	if got := lastLine(c); got != "true\tfalse" {
		t.Errorf("last line = %q", got)
	}
	if err := c.Exec("run " + filepath.Join(t.TempDir(), "missing.lua")); err == nil {
		t.Error("running a missing script should fail")
	}
}

func TestScrollbackIsBounded(t *testing.T) {
	c, _ := newConsole(t)
	for i := 0; i < maxLines+50; i++ {
		c.Printf("line %d", i)
	}
	if len(c.Lines()) != maxLines {
		t.Errorf("len(Lines()) = %d, expected %d", len(c.Lines()), maxLines)
	}
	if got := lastLine(c); got != "line 249" {
		t.Errorf("last line = %q", got)
	}
}
