// something is a terminal platformer sandbox: dig, build and fight through
// tile levels, save rooms to a library, and tune the simulation live from a
// developer console.
//
// Usage:
//
//	something play [level]      - Play a level (menu when omitted)
//	something serve             - Start SSH server for remote play
//	something rooms <command>   - Manage the saved room library
//	something levels            - List available levels
//	something tiles             - List tile types
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--db <path>           - Set room database path (default: ~/.something/rooms.db)
//	--tunables <path>     - Simulation tunables YAML
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS       int
	flagDBPath    string
	flagTunables  string
	flagLevelsDir string
	flagLogLevel  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "something",
	Short: "Something - a tile platformer sandbox in your terminal",
	Long: `Something is a terminal platformer with destructible tiles,
elemental guns, block placers and a developer console.

Available commands:
  play     - Play a level, or pick one from the menu
  serve    - Start SSH server for remote play
  rooms    - List, export, import and delete saved rooms
  levels   - Show available levels
  tiles    - Show tile types

Examples:
  something play
  something play caves
  something play ./my-level.yaml --tunables ./tunables.yaml
  something serve --config ./server.toml
  something rooms list`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.something/rooms.db", "Path to room database")
	rootCmd.PersistentFlags().StringVar(&flagTunables, "tunables", "", "Path to tunables YAML (default search path when empty)")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels-dir", "", "Directory with extra level files")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(roomsCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(tilesCmd)
}

// newLogger builds the command logger in the style used everywhere else.
func newLogger(w *os.File, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}
