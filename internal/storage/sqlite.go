// Package storage provides the SQLite room library: named room blocks that
// can be saved from a running world and loaded back into any grid.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"bytes"
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/something/internal/tile"
)

//go:embed migrations/*.sql
var migrations embed.FS

// goose keeps its base FS and dialect in package state.
var migrateMu sync.Mutex

// ErrRoomNotFound is returned when no room has the requested name.
var ErrRoomNotFound = errors.New("storage: room not found")

// Store manages the SQLite database connection for the room library.
type Store struct {
	db *sql.DB
}

// Room is a stored room block.
type Room struct {
	ID        int64
	Name      string
	Level     string // level the room was captured from, may be empty
	Tiles     []tile.ID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RoomInfo is a room listing entry without the tile payload.
type RoomInfo struct {
	Name      string
	Level     string
	UpdatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate applies the embedded goose migrations.
func (s *Store) migrate(ctx context.Context) error {
	migrateMu.Lock()
	defer migrateMu.Unlock()

	goose.SetLogger(goose.NopLogger())
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}
	if err := goose.UpContext(ctx, s.db, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRoom stores tiles under name, replacing any room with the same name.
func (s *Store) SaveRoom(ctx context.Context, name, level string, tiles []tile.ID) error {
	if name == "" {
		return fmt.Errorf("storage: room name is empty")
	}
	data, err := tile.RoomBytes(tiles)
	if err != nil {
		return fmt.Errorf("storage: cannot encode room %s: %w", name, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO rooms (name, level, tiles) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
		     level = excluded.level,
		     tiles = excluded.tiles,
		     updated_at = CURRENT_TIMESTAMP`,
		name, level, data,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save room %s: %w", name, err)
	}
	return nil
}

// LoadRoom returns the named room.
func (s *Store) LoadRoom(ctx context.Context, name string) (*Room, error) {
	var r Room
	var data []byte
	var createdAt, updatedAt any

	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, level, tiles, created_at, updated_at
		 FROM rooms
		 WHERE name = ?`,
		name,
	).Scan(&r.ID, &r.Name, &r.Level, &data, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRoomNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query room %s: %w", name, err)
	}

	if len(data) != tile.RoomSize {
		return nil, fmt.Errorf("storage: room %s has %d bytes, expected %d", name, len(data), tile.RoomSize)
	}
	r.Tiles, err = tile.DecodeRoom(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("storage: cannot decode room %s: %w", name, err)
	}
	r.CreatedAt = parseTime(createdAt)
	r.UpdatedAt = parseTime(updatedAt)
	return &r, nil
}

// ListRooms returns every stored room, most recently updated first.
func (s *Store) ListRooms(ctx context.Context) ([]RoomInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, level, updated_at
		 FROM rooms
		 ORDER BY updated_at DESC, name ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rooms: %w", err)
	}
	defer rows.Close()

	var rooms []RoomInfo
	for rows.Next() {
		var r RoomInfo
		var updatedAt any
		if err := rows.Scan(&r.Name, &r.Level, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.UpdatedAt = parseTime(updatedAt)
		rooms = append(rooms, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return rooms, nil
}

// DeleteRoom removes the named room.
func (s *Store) DeleteRoom(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM rooms WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("storage: cannot delete room %s: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot delete room %s: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrRoomNotFound, name)
	}
	return nil
}

// CountRooms returns the number of stored rooms.
func (s *Store) CountRooms(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM rooms").Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: cannot count rooms: %w", err)
	}
	return n, nil
}

// parseTime handles both time.Time and string column values.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
