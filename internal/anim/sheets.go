package anim

import (
	"errors"
	"fmt"
	"sort"

	"github.com/vovakirdan/something/internal/core"
)

// ErrMissingSheet is returned when a provider has no frames for a sheet.
var ErrMissingSheet = errors.New("anim: missing sprite sheet")

// Provider resolves a sprite-sheet identifier into its frame regions.
type Provider interface {
	Frames(sheet string) ([]Sprite, error)
}

// Sheets is an in-memory Provider keyed by sheet name.
type Sheets map[string][]Sprite

// Frames implements Provider.
func (s Sheets) Frames(sheet string) ([]Sprite, error) {
	frames, ok := s[sheet]
	if !ok || len(frames) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingSheet, sheet)
	}
	return frames, nil
}

// Names returns the sheet names in sorted order.
func (s Sheets) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load builds an Animat for sheet from p.
func Load(p Provider, sheet string, frameDuration float64) (Animat, error) {
	frames, err := p.Frames(sheet)
	if err != nil {
		return Animat{}, err
	}
	return New(frames, frameDuration), nil
}

// Sheet names shipped with the built-in glyph atlas.
const (
	SheetPlayerIdle    = "player-idle"
	SheetPlayerWalking = "player-walking"
	SheetDirtGolem     = "dirt-golem"
	SheetWater         = "water"
	SheetFire          = "fire"
	SheetRock          = "rock"
	SheetIce           = "ice"
)

func strip(sheet string, c core.Color, glyphs ...rune) []Sprite {
	frames := make([]Sprite, len(glyphs))
	for i, g := range glyphs {
		frames[i] = Sprite{Sheet: sheet, Src: core.NewRect(i, 0, 1, 1), Glyph: g, Color: c}
	}
	return frames
}

// Builtin returns the glyph atlas used by the terminal frontend.
func Builtin() Sheets {
	return Sheets{
		SheetPlayerIdle:    strip(SheetPlayerIdle, core.ColorBrightWhite, '@', '@', 'ô'),
		SheetPlayerWalking: strip(SheetPlayerWalking, core.ColorBrightWhite, '@', 'ö', '@', 'ò'),
		SheetDirtGolem:     strip(SheetDirtGolem, core.ColorOrange, 'G', 'g'),
		SheetWater:         strip(SheetWater, core.ColorBrightBlue, 'o', 'O'),
		SheetFire:          strip(SheetFire, core.ColorBrightRed, '*', '+', 'x'),
		SheetRock:          strip(SheetRock, core.ColorGray, '•'),
		SheetIce:           strip(SheetIce, core.ColorBrightCyan, '◇', '◆'),
	}
}
