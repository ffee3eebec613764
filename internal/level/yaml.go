package level

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/something/internal/core"
	"github.com/vovakirdan/something/internal/tile"
)

// YAMLLevel is the on-disk structure of a level file.
type YAMLLevel struct {
	ID    string   `yaml:"id"`
	Name  string   `yaml:"name"`
	Rows  []string `yaml:"rows"`
	Locks []Point  `yaml:"locks,omitempty"` // room origins; derived from the grid when empty
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (*Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yl.ID == "" {
		return nil, fmt.Errorf("yaml level: missing id")
	}

	lvl, err := Build(yl.ID, yl.Rows)
	if err != nil {
		return nil, err
	}
	if yl.Name != "" {
		lvl.Name = yl.Name
	}

	if len(yl.Locks) > 0 {
		lvl.Locks = lvl.Locks[:0]
		for _, p := range yl.Locks {
			lock := core.NewRect(p.X, p.Y, tile.RoomWidth, tile.RoomHeight)
			if !lock.Within(lvl.Grid.Bounds()) {
				return nil, fmt.Errorf("level %s: lock at (%d, %d): %w", yl.ID, p.X, p.Y, tile.ErrLockOutOfBounds)
			}
			lvl.Locks = append(lvl.Locks, lock)
		}
	}
	return lvl, nil
}

// MarshalYAML encodes lvl back into the file format.
func MarshalYAML(lvl *Level) ([]byte, error) {
	yl := YAMLLevel{ID: lvl.ID, Name: lvl.Name, Rows: Rows(lvl.Grid)}
	rows := make([][]rune, len(yl.Rows))
	for i, r := range yl.Rows {
		rows[i] = []rune(r)
	}
	rows[lvl.Player.Y][lvl.Player.X] = RunePlayer
	for _, e := range lvl.Enemies {
		rows[e.Y][e.X] = RuneEnemy
	}
	for i := range rows {
		yl.Rows[i] = string(rows[i])
	}
	for _, l := range lvl.Locks {
		yl.Locks = append(yl.Locks, Point{X: l.X, Y: l.Y})
	}
	return yaml.Marshal(yl)
}
