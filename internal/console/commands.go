package console

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vovakirdan/something/internal/config"
	"github.com/vovakirdan/something/internal/core"
	"github.com/vovakirdan/something/internal/registry"
	"github.com/vovakirdan/something/internal/tile"
)

// Command is a named console operation. args is the trimmed rest of the line.
type Command struct {
	Name        string
	Usage       string
	Description string
	Run         func(c *Console, args string) error
}

var commands = registry.New[Command]("command")

func init() {
	for _, cmd := range []Command{
		{"help", "", "list commands", cmdHelp},
		{"quit", "", "exit the game", cmdQuit},
		{"reset", "", "respawn the player and enemies", cmdReset},
		{"spawn_enemy", "[x y]", "spawn an enemy at the aim point or pixel position", cmdSpawnEnemy},
		{"close", "", "close the console", cmdClose},
		{"set", "<var> <value>", "set a tunable variable", cmdSet},
		{"vars", "", "list tunable variables", cmdVars},
		{"reload", "", "reload the tunables file", cmdReload},
		{"save_room", "[name]", "save the room containing the player", cmdSaveRoom},
		{"load_room", "<name|file.bin>", "load a saved room into the player's room", cmdLoadRoom},
		{"rooms", "", "list the room library", cmdRooms},
		{"lua", "<code>", "run a Lua chunk", cmdLua},
		{"run", "<file.lua>", "run a Lua script", cmdRun},
	} {
		commands.Register(cmd.Name, cmd)
	}
}

// Commands returns every registered command, sorted by name.
func Commands() []Command {
	names := commands.Names()
	out := make([]Command, 0, len(names))
	for _, name := range names {
		cmd, _ := commands.Get(name)
		out = append(out, cmd)
	}
	return out
}

func cmdHelp(c *Console, _ string) error {
	for _, cmd := range Commands() {
		if cmd.Usage != "" {
			c.Printf("%s %s - %s", cmd.Name, cmd.Usage, cmd.Description)
		} else {
			c.Printf("%s - %s", cmd.Name, cmd.Description)
		}
	}
	return nil
}

func cmdQuit(c *Console, _ string) error {
	if c.env.Quit != nil {
		c.env.Quit()
	}
	return nil
}

func cmdClose(c *Console, _ string) error {
	if c.env.Toggle != nil {
		c.env.Toggle()
	}
	return nil
}

func cmdReset(c *Console, _ string) error {
	c.env.World.ResetEntities()
	c.Println("Entities reset")
	return nil
}

func cmdSpawnEnemy(c *Console, args string) error {
	w := c.env.World
	var pos core.Vec2
	switch fields := strings.Fields(args); len(fields) {
	case 0:
		if w.Input.HasAim {
			pos = w.Input.Aim
		} else if p, ok := w.PlayerEntity(); ok {
			ts := w.Vars.TileSize
			pos = p.Hitbox().Center().Add(core.V2(float64(p.Facing)*2*ts, 0))
		} else {
			return errors.New("No aim position to spawn at")
		}
	case 2:
		x, errX := strconv.ParseFloat(fields[0], 64)
		y, errY := strconv.ParseFloat(fields[1], 64)
		if errX != nil || errY != nil {
			return fmt.Errorf("`%s` is not a position", args)
		}
		pos = core.V2(x, y)
	default:
		return errors.New("usage: spawn_enemy [x y]")
	}

	idx := w.SpawnEnemyAt(pos)
	c.Printf("Spawned enemy %v at (%.0f, %.0f)", idx, pos.X, pos.Y)
	return nil
}

func cmdSet(c *Console, args string) error {
	name, value, ok := strings.Cut(args, " ")
	value = strings.TrimSpace(value)
	if !ok || name == "" || value == "" {
		return errors.New("usage: set <var> <value>")
	}

	v, err := c.env.Vars.Lookup(name)
	if err != nil {
		return fmt.Errorf("Variable `%s` does not exist!", name)
	}
	if err := c.env.Vars.Set(name, value); err != nil {
		if errors.Is(err, config.ErrInvalid) {
			return err
		}
		article := "a"
		if v.Kind == config.VarInt {
			article = "an"
		}
		return fmt.Errorf("`%s` is not %s %s", value, article, v.Kind)
	}
	c.Printf("%s = %s", name, value)
	return nil
}

func cmdVars(c *Console, _ string) error {
	for _, v := range c.env.Vars.Vars() {
		c.Printf("%s (%s) = %s", v.Name, v.Kind, v.Value())
	}
	return nil
}

func cmdReload(c *Console, _ string) error {
	t, err := config.LoadTunables(c.env.ConfigPath)
	if err != nil {
		return err
	}
	*c.env.Vars = t

	source := c.env.ConfigPath
	if source == "" {
		source = "default search path"
	}
	c.Printf("Reloaded config file `%s`", source)
	return nil
}

func cmdSaveRoom(c *Console, args string) error {
	w := c.env.World
	lock, ok := w.CurrentRoom()
	if !ok {
		return errors.New("Can't find a room with Player in it")
	}
	tiles, err := w.Grid.ExtractRoom(lock)
	if err != nil {
		return err
	}

	path := tile.NextRoomPath(c.env.RoomDir)
	if err := tile.WriteRoomFile(path, tiles); err != nil {
		return fmt.Errorf("Could not save room: %w", err)
	}

	name := args
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if c.env.Store != nil {
		if err := c.env.Store.SaveRoom(context.Background(), name, w.Level().ID, tiles); err != nil {
			return err
		}
	}
	c.Printf("New room is saved: %s (%s)", name, path)
	return nil
}

func cmdLoadRoom(c *Console, args string) error {
	if args == "" {
		return errors.New("usage: load_room <name|file.bin>")
	}
	w := c.env.World
	lock, ok := w.CurrentRoom()
	if !ok {
		return errors.New("Can't find a room with Player in it")
	}

	var tiles []tile.ID
	if _, statErr := os.Stat(args); statErr == nil || strings.HasSuffix(args, ".bin") {
		t, err := tile.ReadRoomFile(args)
		if err != nil {
			return err
		}
		tiles = t
	} else {
		if c.env.Store == nil {
			return errors.New("Room library is not available")
		}
		room, err := c.env.Store.LoadRoom(context.Background(), args)
		if err != nil {
			return err
		}
		tiles = room.Tiles
	}

	if err := w.Grid.LoadRoom(lock, tiles, w.Tiles); err != nil {
		return err
	}
	c.Printf("Loaded room `%s`", args)
	return nil
}

func cmdRooms(c *Console, _ string) error {
	if c.env.Store == nil {
		return errors.New("Room library is not available")
	}
	rooms, err := c.env.Store.ListRooms(context.Background())
	if err != nil {
		return err
	}
	if len(rooms) == 0 {
		c.Println("No saved rooms")
	}
	for _, r := range rooms {
		c.Printf("%s  %s  %s", r.Name, r.Level, r.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func cmdLua(c *Console, args string) error {
	if args == "" {
		return errors.New("usage: lua <code>")
	}
	return c.RunLua(args)
}

func cmdRun(c *Console, args string) error {
	if args == "" {
		return errors.New("usage: run <file.lua>")
	}
	return c.RunFile(args)
}
