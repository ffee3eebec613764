package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/something/internal/config"
	"github.com/vovakirdan/something/internal/core"
	"github.com/vovakirdan/something/internal/level"
	"github.com/vovakirdan/something/internal/platform/tui"
	"github.com/vovakirdan/something/internal/storage"
)

var (
	flagRoomsDir  string
	flagLogFile   string
	flagNoConsole bool
	flagPlayRoom  string
	flagScript    string
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level",
	Long: `Start playing a built-in level or a level file. Without an
argument a menu lists every available level.

Controls:
  A/D, Left/Right  - Walk
  Space/W/Up       - Jump
  Mouse            - Aim
  Click/F/Enter    - Use weapon
  Tab/E, wheel     - Next weapon (Shift+Tab: previous)
  P/Esc            - Pause (B while paused: back to menu)
  F1               - Debug overlay
  ` + "`" + `                - Developer console
  Ctrl+S           - Screenshot
  Q/Ctrl+C         - Quit

Examples:
  something play
  something play caves
  something play ./levels/arena.yaml --rooms-dir ./rooms
  something play caves --room entry --script ./setup.lua`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagRoomsDir, "rooms-dir", "rooms", "Directory save_room writes room files to")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (logs are discarded when empty)")
	playCmd.Flags().BoolVar(&flagNoConsole, "no-console", false, "Disable the developer console")
	playCmd.Flags().StringVar(&flagPlayRoom, "room", "", "Saved room (or .bin file) loaded into the starting room")
	playCmd.Flags().StringVar(&flagScript, "script", "", "Lua script run once the level starts")
}

func runPlay(_ *cobra.Command, args []string) error {
	if flagNoConsole && (flagPlayRoom != "" || flagScript != "") {
		return fmt.Errorf("--room and --script need the console, drop --no-console")
	}

	logger, closeLog, err := playLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	vars, err := config.LoadTunables(flagTunables)
	if err != nil {
		return err
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open room database", "error", err)
		// Continue without storage - the game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	opts := tui.Options{
		Vars:       &vars,
		ConfigPath: flagTunables,
		RoomDir:    flagRoomsDir,
		Store:      store,
		Console:    !flagNoConsole,
		Room:       flagPlayRoom,
		Script:     flagScript,
		Logger:     logger,
	}

	if len(args) == 1 {
		lvl, err := level.Resolve(args[0])
		if err != nil {
			return fmt.Errorf("unknown level %q (run 'something levels' to list them): %w", args[0], err)
		}
		opts.Level = lvl
		_, err = tui.Run(opts, cfg)
		return err
	}

	for {
		levels, err := availableLevels()
		if err != nil {
			return err
		}
		result, err := tui.RunMenu(levels, cfg)
		if err != nil {
			return err
		}
		cfg = result.Config

		switch {
		case result.Quit:
			return nil
		case result.WantsRooms:
			back, err := tui.RunRooms(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !back {
				return nil
			}
			continue
		}

		opts.Level = result.Level
		back, err := tui.Run(opts, cfg)
		if err != nil {
			return err
		}
		if !back {
			return nil
		}
	}
}

// playLogger logs to --log-file, since stderr belongs to the game screen.
func playLogger() (*log.Logger, func(), error) {
	if flagLogFile == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logger, err := newLogger(f, "something")
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, func() { f.Close() }, nil
}

// availableLevels returns the built-in levels followed by --levels-dir files.
func availableLevels() ([]*level.Level, error) {
	var levels []*level.Level
	for _, id := range level.BuiltinIDs() {
		lvl, err := level.Builtin(id)
		if err != nil {
			return nil, err
		}
		levels = append(levels, lvl)
	}
	if flagLevelsDir != "" {
		extra, err := level.NewLoader(flagLevelsDir).LoadAll()
		if err != nil {
			return nil, err
		}
		levels = append(levels, extra...)
	}
	return levels, nil
}
