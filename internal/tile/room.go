package tile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrShortRoom is returned when a room file holds fewer than RoomSize bytes.
var ErrShortRoom = errors.New("tile: short room file")

// EncodeRoom writes tiles as raw bytes, row-major, with no header.
func EncodeRoom(w io.Writer, tiles []ID) error {
	if len(tiles) != RoomSize {
		return fmt.Errorf("%w: got %d tiles, expected %d", ErrRoomSize, len(tiles), RoomSize)
	}
	buf := make([]byte, RoomSize)
	for i, id := range tiles {
		buf[i] = byte(id)
	}
	_, err := w.Write(buf)
	return err
}

// DecodeRoom reads exactly RoomSize tile bytes from r.
func DecodeRoom(r io.Reader) ([]ID, error) {
	buf := make([]byte, RoomSize)
	n, err := io.ReadFull(r, buf)
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: read %d bytes, expected %d", ErrShortRoom, n, RoomSize)
		}
		return nil, err
	}
	tiles := make([]ID, RoomSize)
	for i, b := range buf {
		tiles[i] = ID(b)
	}
	return tiles, nil
}

// RoomBytes returns the file encoding of tiles.
func RoomBytes(tiles []ID) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeRoom(&buf, tiles); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteRoomFile saves tiles to path, creating parent directories.
func WriteRoomFile(path string, tiles []ID) error {
	data, err := RoomBytes(tiles)
	if err != nil {
		return fmt.Errorf("tile: write room %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("tile: write room %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("tile: write room %s: %w", path, err)
	}
	return nil
}

// ReadRoomFile loads a room file. A short file is an error naming the path.
// Trailing bytes after the room are ignored.
func ReadRoomFile(path string) ([]ID, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("tile: read room %s: %w", path, err)
	}
	defer f.Close()

	tiles, err := DecodeRoom(f)
	if err != nil {
		return nil, fmt.Errorf("tile: read room %s: %w", path, err)
	}
	return tiles, nil
}

// NextRoomPath returns the first unused dir/room-N.bin path.
func NextRoomPath(dir string) string {
	for n := 0; ; n++ {
		path := filepath.Join(dir, fmt.Sprintf("room-%d.bin", n))
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return path
		}
	}
}
