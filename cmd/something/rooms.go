package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/something/internal/platform/tui"
	"github.com/vovakirdan/something/internal/storage"
	"github.com/vovakirdan/something/internal/tile"
)

var flagImportLevel string

var roomsCmd = &cobra.Command{
	Use:   "rooms",
	Short: "Manage the saved room library",
	Long: `Rooms are 16x9 tile blocks saved from a running level with the
save_room console command. They live in the room database and can be
exported to and imported from .bin room files.

Examples:
  something rooms list
  something rooms export entry ./entry.bin
  something rooms import ./rooms/room-0.bin entry
  something rooms delete entry
  something rooms browse`,
}

var roomsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved rooms",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return withStore(func(ctx context.Context, store *storage.Store) error {
			rooms, err := store.ListRooms(ctx)
			if err != nil {
				return err
			}
			if len(rooms) == 0 {
				fmt.Println("No rooms saved yet.")
				return nil
			}

			maxName := len("Name")
			for _, r := range rooms {
				maxName = max(maxName, len(r.Name))
			}
			fmt.Printf("  %-*s  %-10s  %s\n", maxName, "Name", "Level", "Updated")
			fmt.Printf("  %-*s  %-10s  %s\n", maxName, "----", "-----", "-------")
			for _, r := range rooms {
				fmt.Printf("  %-*s  %-10s  %s\n", maxName, r.Name, r.Level, r.UpdatedAt.Format("2006-01-02 15:04"))
			}
			return nil
		})
	},
}

var roomsExportCmd = &cobra.Command{
	Use:   "export <name> <file.bin>",
	Short: "Write a saved room to a room file",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, store *storage.Store) error {
			room, err := store.LoadRoom(ctx, args[0])
			if err != nil {
				return err
			}
			if err := tile.WriteRoomFile(args[1], room.Tiles); err != nil {
				return err
			}
			fmt.Printf("Exported %s to %s\n", room.Name, args[1])
			return nil
		})
	},
}

var roomsImportCmd = &cobra.Command{
	Use:   "import <file.bin> [name]",
	Short: "Add a room file to the library",
	Long:  `Add a room file to the library. The name defaults to the file name without extension.`,
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(_ *cobra.Command, args []string) error {
		tiles, err := tile.ReadRoomFile(args[0])
		if err != nil {
			return err
		}
		table := tile.Standard()
		for i, id := range tiles {
			if !table.Valid(id) {
				return fmt.Errorf("%s: unknown tile id %d at offset %d", args[0], id, i)
			}
		}

		name := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
		if len(args) == 2 {
			name = args[1]
		}
		return withStore(func(ctx context.Context, store *storage.Store) error {
			if err := store.SaveRoom(ctx, name, flagImportLevel, tiles); err != nil {
				return err
			}
			fmt.Printf("Imported %s as %s\n", args[0], name)
			return nil
		})
	},
}

var roomsDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a saved room",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, store *storage.Store) error {
			if err := store.DeleteRoom(ctx, args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted %s\n", args[0])
			return nil
		})
	},
}

var roomsBrowseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse saved rooms with a preview",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return withStore(func(_ context.Context, store *storage.Store) error {
			width, height := 80, 24
			if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
				width, height = w, h
			}
			_, err := tui.RunRooms(store, width, height)
			return err
		})
	},
}

func init() {
	roomsImportCmd.Flags().StringVar(&flagImportLevel, "level", "", "Level the room belongs to")

	roomsCmd.AddCommand(roomsListCmd)
	roomsCmd.AddCommand(roomsExportCmd)
	roomsCmd.AddCommand(roomsImportCmd)
	roomsCmd.AddCommand(roomsDeleteCmd)
	roomsCmd.AddCommand(roomsBrowseCmd)
}

// withStore opens the room database for the duration of fn.
func withStore(fn func(ctx context.Context, store *storage.Store) error) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening room database: %w", err)
	}
	defer store.Close()
	return fn(context.Background(), store)
}
