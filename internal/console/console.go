// Package console implements the in-game developer console: a registry of
// text commands that drive a running world and a Lua bridge for scripts.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	lua "github.com/yuin/gopher-lua"

	"github.com/vovakirdan/something/internal/config"
	"github.com/vovakirdan/something/internal/game"
	"github.com/vovakirdan/something/internal/storage"
	"github.com/vovakirdan/something/internal/tile"
)

// maxLines bounds the scrollback.
const maxLines = 200

// ErrUnknownCommand is returned by Exec for unregistered command names.
var ErrUnknownCommand = errors.New("console: unknown command")

// RoomStore is the subset of the room library the console uses.
type RoomStore interface {
	SaveRoom(ctx context.Context, name, level string, tiles []tile.ID) error
	LoadRoom(ctx context.Context, name string) (*storage.Room, error)
	ListRooms(ctx context.Context) ([]storage.RoomInfo, error)
}

// Env is everything commands act on. Store, Quit and Toggle may be nil.
type Env struct {
	World      *game.World
	Vars       *config.Tunables
	ConfigPath string // tunables file re-read by reload
	RoomDir    string // directory save_room writes room files to
	Store      RoomStore
	Quit       func()
	Toggle     func()
}

// Console executes command lines against an Env and keeps a scrollback.
// Not safe for concurrent use.
type Console struct {
	env     Env
	lines   []string
	history []string
	vm      *lua.LState
	logger  *log.Logger
}

// New creates a console. A nil logger discards output.
func New(env Env, logger *log.Logger) *Console {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if env.RoomDir == "" {
		env.RoomDir = "rooms"
	}
	return &Console{env: env, logger: logger}
}

// Close releases the Lua state, if one was created.
func (c *Console) Close() {
	if c.vm != nil {
		c.vm.Close()
		c.vm = nil
	}
}

// Println appends a line to the scrollback.
func (c *Console) Println(a ...any) {
	line := fmt.Sprint(a...)
	for _, l := range strings.Split(line, "\n") {
		c.lines = append(c.lines, l)
	}
	if over := len(c.lines) - maxLines; over > 0 {
		c.lines = c.lines[over:]
	}
}

// Printf appends a formatted line to the scrollback.
func (c *Console) Printf(format string, a ...any) {
	c.Println(fmt.Sprintf(format, a...))
}

// Lines returns the scrollback, oldest first.
func (c *Console) Lines() []string { return c.lines }

// History returns previously executed lines, oldest first.
func (c *Console) History() []string { return c.history }

// Exec runs one command line. Errors are also written to the scrollback.
func (c *Console) Exec(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	c.history = append(c.history, line)
	c.Println("> ", line)

	name, args, _ := strings.Cut(line, " ")
	cmd, err := commands.Get(name)
	if err != nil {
		err = fmt.Errorf("%w: %s", ErrUnknownCommand, name)
		c.Printf("Unknown command `%s`", name)
		return err
	}

	c.logger.Debug("console command", "name", name, "args", args)
	if err := cmd.Run(c, strings.TrimSpace(args)); err != nil {
		c.Println(err.Error())
		return err
	}
	return nil
}
