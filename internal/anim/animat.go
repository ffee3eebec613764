// Package anim holds the frame-cycling animation state that drives sprite
// selection for entities, independent of physics.
package anim

import (
	"github.com/vovakirdan/something/internal/core"
)

// Sprite is one drawable frame: a region of a named sheet plus the glyph and
// color used when drawing it into a terminal screen.
type Sprite struct {
	Sheet string
	Src   core.Rect
	Glyph rune
	Color core.Color
}

// Animat cycles through a fixed sequence of frames.
//
// The zero value is not usable; construct with New.
type Animat struct {
	frames        []Sprite
	frameDuration float64
	cooldown      float64
	current       int
}

// New returns an Animat positioned at its first frame with a full cooldown.
// Panics if frames is empty.
func New(frames []Sprite, frameDuration float64) Animat {
	if len(frames) == 0 {
		panic("anim: animat needs at least one frame")
	}
	return Animat{
		frames:        frames,
		frameDuration: frameDuration,
		cooldown:      frameDuration,
	}
}

// Advance moves the animation forward by elapsed seconds.
// Non-positive elapsed time leaves the state untouched. At most one frame is
// advanced per call.
func (a *Animat) Advance(elapsed float64) {
	if elapsed <= 0 || len(a.frames) == 0 {
		return
	}
	if elapsed < a.cooldown {
		a.cooldown -= elapsed
		return
	}
	a.current = (a.current + 1) % len(a.frames)
	a.cooldown = a.frameDuration
}

// Reset returns the animat to its first frame with a full cooldown.
func (a *Animat) Reset() {
	a.current = 0
	a.cooldown = a.frameDuration
}

// Sprite returns the current frame.
func (a Animat) Sprite() Sprite {
	return a.frames[a.current]
}

// Current returns the index of the current frame.
func (a Animat) Current() int { return a.current }

// FrameCount returns the number of frames.
func (a Animat) FrameCount() int { return len(a.frames) }

// Cooldown returns the time left before the next frame change.
func (a Animat) Cooldown() float64 { return a.cooldown }

// First returns the first frame, used for icons.
func (a Animat) First() Sprite {
	return a.frames[0]
}
