package level

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/something/internal/registry"
)

//go:embed levels/*.yaml
var builtinFS embed.FS

var builtins = registry.New[[]byte]("level")

func init() {
	entries, err := fs.ReadDir(builtinFS, "levels")
	if err != nil {
		panic(err)
	}
	for _, e := range entries {
		data, err := builtinFS.ReadFile(path.Join("levels", e.Name()))
		if err != nil {
			panic(err)
		}
		builtins.Register(strings.TrimSuffix(e.Name(), ".yaml"), data)
	}
}

// Builtin returns a fresh copy of a built-in level.
func Builtin(id string) (*Level, error) {
	data, err := builtins.Get(id)
	if err != nil {
		return nil, err
	}
	return ParseYAML(data)
}

// BuiltinIDs lists the built-in level ids, sorted.
func BuiltinIDs() []string {
	return builtins.Names()
}

// Resolve loads a level by built-in id or file path.
func Resolve(ref string) (*Level, error) {
	if builtins.Exists(ref) {
		return Builtin(ref)
	}
	return LoadFile(ref)
}

// LoadFile loads a single level file.
func LoadFile(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	lvl, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("parsing file %s: %w", path, err)
	}
	lvl.FilePath = path
	return lvl, nil
}

// Loader handles loading levels from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new level loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all level files.
// Invalid files are skipped. Returns levels sorted by ID.
func (l *Loader) LoadAll() ([]*Level, error) {
	var levels []*Level

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		lvl, err := LoadFile(path)
		if err != nil {
			// Skip invalid files
			return nil
		}
		levels = append(levels, lvl)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
	return levels, nil
}
