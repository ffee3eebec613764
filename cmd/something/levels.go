package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/something/internal/level"
	"github.com/vovakirdan/something/internal/tile"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List available levels",
	Long: `Shows the built-in levels and any level files found in --levels-dir.

Examples:
  something levels
  something levels --levels-dir ./levels
  something levels show caves`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

var levelsShowCmd = &cobra.Command{
	Use:   "show <level>",
	Short: "Print a level as YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		lvl, err := level.Resolve(args[0])
		if err != nil {
			return err
		}
		data, err := level.MarshalYAML(lvl)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	},
}

var tilesCmd = &cobra.Command{
	Use:   "tiles",
	Short: "List tile types",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("  %-3s  %-6s  %-4s  %-5s  %-9s  %s\n", "ID", "Name", "Rune", "Solid", "Breakable", "Cost")
		fmt.Printf("  %-3s  %-6s  %-4s  %-5s  %-9s  %s\n", "--", "----", "----", "-----", "---------", "----")
		for i, def := range tile.Standard() {
			id := tile.ID(i)
			fmt.Printf("  %-3d  %-6s  %-4c  %-5t  %-9t  %d\n", id, def.Name, level.Rune(id), def.Solid, def.Breakable, def.Cost)
		}
	},
}

func init() {
	levelsCmd.AddCommand(levelsShowCmd)
}

func runLevels(_ *cobra.Command, _ []string) error {
	levels, err := availableLevels()
	if err != nil {
		return err
	}
	if len(levels) == 0 {
		fmt.Println("No levels available.")
		return nil
	}

	fmt.Println("Available levels:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, lvl := range levels {
		maxIDLen = max(maxIDLen, len(lvl.ID))
	}

	fmt.Printf("  %-*s  %-16s  %-7s  %-5s  %s\n", maxIDLen, "ID", "Name", "Size", "Rooms", "Enemies")
	fmt.Printf("  %-*s  %-16s  %-7s  %-5s  %s\n", maxIDLen, "--", "----", "----", "-----", "-------")
	for _, lvl := range levels {
		size := fmt.Sprintf("%dx%d", lvl.Grid.Width(), lvl.Grid.Height())
		fmt.Printf("  %-*s  %-16s  %-7s  %-5d  %d\n", maxIDLen, lvl.ID, lvl.Name, size, len(lvl.Locks), len(lvl.Enemies))
	}

	fmt.Println()
	fmt.Println("Run 'something play <id>' to play a level.")
	return nil
}
