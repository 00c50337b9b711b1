// Package orient describes the eight symmetries of a rectangular grid.
//
// Each Factor selects a closed form mapping from a destination coordinate
// back to the source coordinate it reads, so transforms cost O(1) per
// pixel and never iterate over intermediate grids.
package orient

import (
	"errors"
	"fmt"
	"strings"
)

type Factor uint8

const (
	Identity Factor = iota
	// Rotate90 rotates clockwise by 90 degrees.
	Rotate90
	Rotate180
	// Rotate270 rotates clockwise by 270 degrees.
	Rotate270
	// MirrorVertical mirrors across the vertical axis, swapping left and
	// right.
	MirrorVertical
	// MirrorHorizontal mirrors across the horizontal axis, swapping top and
	// bottom.
	MirrorHorizontal
	// Rotate90Mirror rotates clockwise by 90 degrees, then mirrors across the
	// vertical axis. The result is the transpose.
	Rotate90Mirror
	// Rotate270Mirror rotates clockwise by 270 degrees, then mirrors across
	// the vertical axis.
	Rotate270Mirror
)

const (
	None       = Identity
	FlipX      = MirrorVertical
	FlipY      = MirrorHorizontal
	Transpose  = Rotate90Mirror
	Transverse = Rotate270Mirror
)

var ErrUnknownFactor = errors.New("unknown rotation factor")

// MapFunc maps destination coordinate (x, y) to a source coordinate for a
// source grid of width w and height h.
type MapFunc func(x, y, w, h int) (int, int)

var mappers = [...]MapFunc{
	Identity:         func(x, y, w, h int) (int, int) { return x, y },
	Rotate90:         func(x, y, w, h int) (int, int) { return y, h - 1 - x },
	Rotate180:        func(x, y, w, h int) (int, int) { return w - 1 - x, h - 1 - y },
	Rotate270:        func(x, y, w, h int) (int, int) { return w - 1 - y, x },
	MirrorVertical:   func(x, y, w, h int) (int, int) { return w - 1 - x, y },
	MirrorHorizontal: func(x, y, w, h int) (int, int) { return x, h - 1 - y },
	Rotate90Mirror:   func(x, y, w, h int) (int, int) { return y, x },
	Rotate270Mirror:  func(x, y, w, h int) (int, int) { return w - 1 - y, h - 1 - x },
}

var names = [...][]string{
	Identity:         {"identity", "none"},
	Rotate90:         {"rotate90", "cw90"},
	Rotate180:        {"rotate180"},
	Rotate270:        {"rotate270", "ccw90"},
	MirrorVertical:   {"mirrorv", "flipx"},
	MirrorHorizontal: {"mirrorh", "flipy"},
	Rotate90Mirror:   {"rotate90mirror", "transpose"},
	Rotate270Mirror:  {"rotate270mirror", "transverse"},
}

// Factors lists every symmetry once.
func Factors() []Factor {
	return []Factor{Identity, Rotate90, Rotate180, Rotate270, MirrorVertical, MirrorHorizontal, Rotate90Mirror, Rotate270Mirror}
}

func (f Factor) Valid() bool {
	return int(f) < len(mappers)
}

// Mapper returns the coordinate mapping of f. Invalid factors map like
// Identity.
func (f Factor) Mapper() MapFunc {
	if !f.Valid() {
		return mappers[Identity]
	}
	return mappers[f]
}

// Map returns the source coordinate read by destination (x, y).
func (f Factor) Map(x, y, w, h int) (int, int) {
	return f.Mapper()(x, y, w, h)
}

// Swaps reports whether f exchanges width and height.
func (f Factor) Swaps() bool {
	switch f {
	case Rotate90, Rotate270, Rotate90Mirror, Rotate270Mirror:
		return true
	}
	return false
}

// Size returns the destination dimensions for a w by h source.
func (f Factor) Size(w, h int) (int, int) {
	if f.Swaps() {
		return h, w
	}
	return w, h
}

func (f Factor) String() string {
	if !f.Valid() {
		return fmt.Sprintf("Factor(%d)", f)
	}
	return names[f][0]
}

func ParseFactor(s string) (Factor, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for f, aliases := range names {
		for _, alias := range aliases {
			if s == alias {
				return Factor(f), nil
			}
		}
	}
	return Identity, fmt.Errorf("%w: %q", ErrUnknownFactor, s)
}

func (f *Factor) UnmarshalText(text []byte) error {
	v, err := ParseFactor(string(text))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

func (f Factor) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownFactor, f)
	}
	return []byte(f.String()), nil
}

// FromEXIF returns the factor that displays an image stored with the given
// EXIF orientation tag (1 to 8) upright.
func FromEXIF(tag int) (Factor, bool) {
	switch tag {
	case 1:
		return Identity, true
	case 2:
		return MirrorVertical, true
	case 3:
		return Rotate180, true
	case 4:
		return MirrorHorizontal, true
	case 5:
		return Transpose, true
	case 6:
		return Rotate90, true
	case 7:
		return Transverse, true
	case 8:
		return Rotate270, true
	}
	return Identity, false
}
