package level

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/vovakirdan/something/internal/tile"
)

func TestBuild(t *testing.T) {
	lvl, err := Build("t", []string{
		"#P.E",
		"did",
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if lvl.Grid.Width() != 4 || lvl.Grid.Height() != 2 {
		t.Errorf("grid = %dx%d, expected 4x2", lvl.Grid.Width(), lvl.Grid.Height())
	}
	if lvl.Player != (Point{1, 0}) {
		t.Errorf("Player = %+v, expected {1 0}", lvl.Player)
	}
	if len(lvl.Enemies) != 1 || lvl.Enemies[0] != (Point{3, 0}) {
		t.Errorf("Enemies = %+v, expected [{3 0}]", lvl.Enemies)
	}
	if lvl.Grid.Get(1, 1) != tile.Ice || lvl.Grid.Get(3, 1) != tile.Empty {
		t.Error("tiles not parsed per legend or short row not padded")
	}
	if len(lvl.Locks) != 0 {
		t.Errorf("Locks = %v, expected none for a grid smaller than a room", lvl.Locks)
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		rows []string
	}{
		{"no rows", nil},
		{"no player", []string{"..#"}},
		{"two players", []string{"P.P"}},
		{"unknown rune", []string{"P?"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Build("bad", tc.rows); err == nil {
				t.Error("Build() should fail")
			}
		})
	}
}

func TestBuiltinLevels(t *testing.T) {
	ids := BuiltinIDs()
	if !slices.Contains(ids, "caves") || !slices.Contains(ids, "prototype") {
		t.Fatalf("BuiltinIDs() = %v, expected caves and prototype", ids)
	}
	for _, id := range ids {
		lvl, err := Builtin(id)
		if err != nil {
			t.Errorf("Builtin(%q) error = %v", id, err)
			continue
		}
		for _, lock := range lvl.Locks {
			if _, err := lvl.Grid.ExtractRoom(lock); err != nil {
				t.Errorf("level %s lock %+v: %v", id, lock, err)
			}
		}
	}

	caves, _ := Builtin("caves")
	if len(caves.Locks) != 4 {
		t.Errorf("caves has %d locks, expected 4", len(caves.Locks))
	}
}

func TestParseYAMLLockOutOfBounds(t *testing.T) {
	data := []byte("id: x\nrows:\n  - \"P...\"\nlocks:\n  - {x: 0, y: 0}\n")
	if _, err := ParseYAML(data); !errors.Is(err, tile.ErrLockOutOfBounds) {
		t.Errorf("ParseYAML() error = %v, expected ErrLockOutOfBounds", err)
	}
}

func TestMarshalYAMLRoundTrip(t *testing.T) {
	lvl, err := Builtin("caves")
	if err != nil {
		t.Fatal(err)
	}
	data, err := MarshalYAML(lvl)
	if err != nil {
		t.Fatalf("MarshalYAML() error = %v", err)
	}
	again, err := ParseYAML(data)
	if err != nil {
		t.Fatalf("ParseYAML() error = %v", err)
	}
	if !again.Grid.Equal(lvl.Grid) || again.Player != lvl.Player || !slices.Equal(again.Enemies, lvl.Enemies) {
		t.Error("level changed across a YAML round trip")
	}
}

func TestLoaderSkipsInvalidFiles(t *testing.T) {
	dir := t.TempDir()
	good := []byte("id: b\nrows:\n  - \"P#\"\n")
	second := []byte("id: a\nrows:\n  - \"#P\"\n")
	if err := os.WriteFile(filepath.Join(dir, "b.yaml"), good, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "a.yml"), second, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("rows: ["), 0o644); err != nil {
		t.Fatal(err)
	}

	levels, err := NewLoader(dir).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(levels) != 2 || levels[0].ID != "a" || levels[1].ID != "b" {
		t.Errorf("LoadAll() returned %d levels, expected a and b", len(levels))
	}
}
