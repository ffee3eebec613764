package tile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/something/internal/core"
)

func patterned(w, h int) *Grid {
	g := NewGrid(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g.Set(x, y, ID((x*7+y*3)%4))
		}
	}
	return g
}

func TestGridGetSet(t *testing.T) {
	g := NewGrid(5, 5)
	g.Set(4, 4, Wall)
	if got := g.Get(4, 4); got != Wall {
		t.Errorf("Get(4, 4) = %v, expected %v", got, Wall)
	}
	if got := g.Get(0, 0); got != Empty {
		t.Errorf("Get(0, 0) = %v, expected %v", got, Empty)
	}
}

func TestGridOutOfBoundsPanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func(g *Grid)
	}{
		{"get negative", func(g *Grid) { g.Get(-1, 0) }},
		{"get past width", func(g *Grid) { g.Get(5, 2) }},
		{"set past height", func(g *Grid) { g.Set(0, 5, Wall) }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tc.fn(NewGrid(5, 5))
		})
	}
}

func TestExtractRoomBounds(t *testing.T) {
	g := NewGrid(RoomWidth*2, RoomHeight)

	if _, err := g.ExtractRoom(core.NewRect(RoomWidth, 0, RoomWidth, RoomHeight)); err != nil {
		t.Errorf("ExtractRoom(second room) error = %v", err)
	}

	_, err := g.ExtractRoom(core.NewRect(RoomWidth+1, 0, RoomWidth, RoomHeight))
	if !errors.Is(err, ErrLockOutOfBounds) {
		t.Errorf("ExtractRoom(overhanging) error = %v, expected ErrLockOutOfBounds", err)
	}
}

func TestLoadRoomValidatesBeforeWriting(t *testing.T) {
	g := patterned(RoomWidth, RoomHeight)
	before := g.Clone()
	lock := core.NewRect(0, 0, RoomWidth, RoomHeight)

	short := make([]ID, RoomSize-1)
	if err := g.LoadRoom(lock, short, Standard()); !errors.Is(err, ErrRoomSize) {
		t.Errorf("LoadRoom(short) error = %v, expected ErrRoomSize", err)
	}

	bad := make([]ID, RoomSize)
	bad[RoomSize-1] = 200
	if err := g.LoadRoom(lock, bad, Standard()); !errors.Is(err, ErrUnknownTile) {
		t.Errorf("LoadRoom(unknown id) error = %v, expected ErrUnknownTile", err)
	}

	if !g.Equal(before) {
		t.Error("failed LoadRoom must not modify the grid")
	}
}

func TestRoomRoundTrip(t *testing.T) {
	src := patterned(RoomWidth*2, RoomHeight*2)
	lock := core.NewRect(RoomWidth, RoomHeight, RoomWidth, RoomHeight)

	tiles, err := src.ExtractRoom(lock)
	if err != nil {
		t.Fatalf("ExtractRoom() failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "rooms", "room-0.bin")
	if err := WriteRoomFile(path, tiles); err != nil {
		t.Fatalf("WriteRoomFile() failed: %v", err)
	}

	loaded, err := ReadRoomFile(path)
	if err != nil {
		t.Fatalf("ReadRoomFile() failed: %v", err)
	}

	scratch := NewGrid(RoomWidth, RoomHeight)
	origin := core.NewRect(0, 0, RoomWidth, RoomHeight)
	if err := scratch.LoadRoom(origin, loaded, Standard()); err != nil {
		t.Fatalf("LoadRoom() failed: %v", err)
	}
	again, err := scratch.ExtractRoom(origin)
	if err != nil {
		t.Fatalf("ExtractRoom() failed: %v", err)
	}

	want, _ := RoomBytes(tiles)
	got, _ := RoomBytes(again)
	if string(got) != string(want) {
		t.Errorf("round trip mismatch:\n got %v\nwant %v", got, want)
	}
	data, _ := os.ReadFile(path)
	if len(data) != RoomSize {
		t.Errorf("file size = %d, expected %d", len(data), RoomSize)
	}
}

func TestReadRoomFileShort(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.bin")
	if err := os.WriteFile(path, make([]byte, 10), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := ReadRoomFile(path)
	if !errors.Is(err, ErrShortRoom) {
		t.Fatalf("ReadRoomFile() error = %v, expected ErrShortRoom", err)
	}
	for _, want := range []string{path, "read 10 bytes", "expected 144"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q should mention %q", err, want)
		}
	}
}

func TestNextRoomPath(t *testing.T) {
	dir := t.TempDir()
	if got := NextRoomPath(dir); filepath.Base(got) != "room-0.bin" {
		t.Errorf("NextRoomPath() = %s, expected room-0.bin", got)
	}
	if err := os.WriteFile(filepath.Join(dir, "room-0.bin"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if got := NextRoomPath(dir); filepath.Base(got) != "room-1.bin" {
		t.Errorf("NextRoomPath() = %s, expected room-1.bin", got)
	}
}

func TestLockAt(t *testing.T) {
	locks := []core.Rect{
		core.NewRect(0, 0, RoomWidth, RoomHeight),
		core.NewRect(RoomWidth, 0, RoomWidth, RoomHeight),
	}

	lock, ok := LockAt(locks, 16, core.V2(RoomWidth*16+5, 10))
	if !ok || lock != locks[1] {
		t.Errorf("LockAt() = %v, %v, expected second lock", lock, ok)
	}
	if _, ok := LockAt(locks, 16, core.V2(-1, 0)); ok {
		t.Error("LockAt() outside every lock should report false")
	}
}

func TestTableLookup(t *testing.T) {
	table := Standard()
	id, ok := table.Lookup("ICE")
	if !ok || id != Ice {
		t.Errorf("Lookup(ICE) = %v, %v, expected Ice", id, ok)
	}
	if !table.Solid(Dirt) || table.Solid(Empty) {
		t.Error("solidity flags mismatch")
	}
}
