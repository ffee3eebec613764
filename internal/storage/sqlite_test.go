package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/vovakirdan/something/internal/core"
	"github.com/vovakirdan/something/internal/tile"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleRoom(fill tile.ID) []tile.ID {
	tiles := make([]tile.ID, tile.RoomSize)
	for i := range tiles {
		if i%3 == 0 {
			tiles[i] = fill
		}
	}
	return tiles
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsRooms(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := store.SaveRoom(ctx, "a", "caves", sampleRoom(tile.Dirt)); err != nil {
		t.Fatalf("SaveRoom() failed: %v", err)
	}
	store.Close()

	// Migrations must be idempotent.
	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	n, err := store.CountRooms(ctx)
	if err != nil || n != 1 {
		t.Errorf("CountRooms() = %d, %v; expected 1", n, err)
	}
}

func TestStoreSaveAndLoad(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	tiles := sampleRoom(tile.Wall)

	if err := store.SaveRoom(ctx, "entry", "caves", tiles); err != nil {
		t.Fatalf("SaveRoom() failed: %v", err)
	}

	room, err := store.LoadRoom(ctx, "entry")
	if err != nil {
		t.Fatalf("LoadRoom() failed: %v", err)
	}
	if room.Name != "entry" || room.Level != "caves" {
		t.Errorf("room = %s/%s, expected entry/caves", room.Name, room.Level)
	}
	if !slices.Equal(room.Tiles, tiles) {
		t.Error("tiles changed across save and load")
	}
	if room.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}

func TestStoreSaveReplaces(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.SaveRoom(ctx, "r", "", sampleRoom(tile.Wall)); err != nil {
		t.Fatal(err)
	}
	replacement := sampleRoom(tile.Ice)
	if err := store.SaveRoom(ctx, "r", "prototype", replacement); err != nil {
		t.Fatal(err)
	}

	room, err := store.LoadRoom(ctx, "r")
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(room.Tiles, replacement) || room.Level != "prototype" {
		t.Error("SaveRoom() should replace a room with the same name")
	}
	if n, _ := store.CountRooms(ctx); n != 1 {
		t.Errorf("CountRooms() = %d, expected 1", n)
	}
}

func TestStoreRejectsBadRooms(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.SaveRoom(ctx, "", "", sampleRoom(tile.Wall)); err == nil {
		t.Error("SaveRoom() should reject an empty name")
	}
	if err := store.SaveRoom(ctx, "short", "", make([]tile.ID, 10)); !errors.Is(err, tile.ErrRoomSize) {
		t.Errorf("SaveRoom() error = %v, expected ErrRoomSize", err)
	}
}

func TestStoreListAndDelete(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"b", "a", "c"} {
		if err := store.SaveRoom(ctx, name, "", sampleRoom(tile.Dirt)); err != nil {
			t.Fatal(err)
		}
	}

	rooms, err := store.ListRooms(ctx)
	if err != nil {
		t.Fatalf("ListRooms() failed: %v", err)
	}
	var names []string
	for _, r := range rooms {
		names = append(names, r.Name)
	}
	slices.Sort(names)
	if !slices.Equal(names, []string{"a", "b", "c"}) {
		t.Errorf("ListRooms() names = %v, expected [a b c]", names)
	}

	if err := store.DeleteRoom(ctx, "b"); err != nil {
		t.Fatalf("DeleteRoom() failed: %v", err)
	}
	if _, err := store.LoadRoom(ctx, "b"); !errors.Is(err, ErrRoomNotFound) {
		t.Errorf("LoadRoom() after delete error = %v, expected ErrRoomNotFound", err)
	}
	if err := store.DeleteRoom(ctx, "b"); !errors.Is(err, ErrRoomNotFound) {
		t.Errorf("second DeleteRoom() error = %v, expected ErrRoomNotFound", err)
	}
}

func TestStoreRoomRoundTripThroughGrid(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	table := tile.Standard()

	src := tile.NewGrid(tile.RoomWidth*2, tile.RoomHeight)
	for x := 0; x < src.Width(); x++ {
		src.Set(x, tile.RoomHeight-1, tile.Wall)
		src.Set(x, x%tile.RoomHeight, tile.Dirt)
	}
	lock := core.NewRect(tile.RoomWidth, 0, tile.RoomWidth, tile.RoomHeight)
	extracted, err := src.ExtractRoom(lock)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.SaveRoom(ctx, "right", "", extracted); err != nil {
		t.Fatal(err)
	}

	room, err := store.LoadRoom(ctx, "right")
	if err != nil {
		t.Fatal(err)
	}
	scratch := tile.NewGrid(tile.RoomWidth, tile.RoomHeight)
	origin := core.NewRect(0, 0, tile.RoomWidth, tile.RoomHeight)
	if err := scratch.LoadRoom(origin, room.Tiles, table); err != nil {
		t.Fatalf("LoadRoom() into grid failed: %v", err)
	}
	again, err := scratch.ExtractRoom(origin)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(again, extracted) {
		t.Error("room changed across grid -> store -> grid")
	}
}
