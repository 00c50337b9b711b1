// Package colormap maps 8-bit intensities to RGB colours.
//
// A Table is built either from breakpoints joined by linear segments or
// from a literal list of 256 colours. Tables are immutable once built. The
// per-channel and packed lookup arrays derived from a table are computed on
// first use and published with a single atomic pointer store: concurrent
// first calls may compute the same array twice but never observe a partial
// one.
package colormap

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync/atomic"

	"falsecolor/okcolor"
	"falsecolor/pixel"
)

// Size is the number of entries of every table.
const Size = 256

var (
	ErrTableSize = errors.New("colour table must have exactly 256 entries")
	ErrHexColour = errors.New("invalid hex colour")
)

// Colour is an interpolation endpoint with components in [0, 1].
type Colour struct {
	R, G, B float64
}

// RGB is a quantized table entry.
type RGB struct {
	R, G, B uint8
}

// ColourOf returns the Colour whose quantization is c.
func ColourOf(c RGB) Colour {
	return Colour{float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255}
}

func (c Colour) RGB() RGB {
	return RGB{quantize(c.R), quantize(c.G), quantize(c.B)}
}

func quantize(v float64) uint8 {
	return uint8(math.Round(min(max(v, 0), 1) * 255))
}

// Breakpoint anchors Colour at fraction At of the intensity range.
type Breakpoint struct {
	At     float64
	Colour Colour
}

type Interpolation uint8

const (
	// Linear interpolates each sRGB channel independently.
	Linear Interpolation = iota
	// OKLab interpolates in the perceptual OKLab space.
	OKLab
)

func (i Interpolation) String() string {
	if i == OKLab {
		return "oklab"
	}
	return "linear"
}

func (i *Interpolation) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "", "linear":
		*i = Linear
	case "oklab":
		*i = OKLab
	default:
		return fmt.Errorf("unknown interpolation %q", text)
	}
	return nil
}

type Option func(*options)

type options struct {
	interp Interpolation
}

func WithInterpolation(i Interpolation) Option {
	return func(o *options) {
		o.interp = i
	}
}

type channels struct {
	r, g, b [Size]uint8
}

type Table struct {
	entries [Size]RGB

	chans atomic.Pointer[channels]
	argb  atomic.Pointer[[Size]uint32]
	abgr  atomic.Pointer[[Size]uint32]
}

// NewBreakpoints builds a table from ascending, contiguous breakpoints.
// Consecutive breakpoints form one segment each. The sequence is not
// validated: an intensity outside every segment maps to black.
func NewBreakpoints(bps []Breakpoint, opts ...Option) *Table {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	t := new(Table)
	for i := range t.entries {
		t.entries[i] = interpolate(bps, float64(i)/(Size-1), o.interp)
	}
	return t
}

func interpolate(bps []Breakpoint, f float64, interp Interpolation) RGB {
	for i := 0; i+1 < len(bps); i++ {
		start, end := bps[i], bps[i+1]
		if f < start.At || f > end.At {
			continue
		}
		var t float64
		if span := end.At - start.At; span > 0 {
			t = (f - start.At) / span
		}
		if interp == OKLab {
			a := okcolor.FromSRGB(start.Colour.R, start.Colour.G, start.Colour.B)
			b := okcolor.FromSRGB(end.Colour.R, end.Colour.G, end.Colour.B)
			r, g, b2 := okcolor.Lerp(a, b, t).SRGB()
			return Colour{r, g, b2}.RGB()
		}
		return Colour{
			R: start.Colour.R + t*(end.Colour.R-start.Colour.R),
			G: start.Colour.G + t*(end.Colour.G-start.Colour.G),
			B: start.Colour.B + t*(end.Colour.B-start.Colour.B),
		}.RGB()
	}
	return RGB{}
}

// NewLiteral builds a table from exactly 256 entries.
func NewLiteral(entries []RGB) (*Table, error) {
	if len(entries) != Size {
		return nil, fmt.Errorf("%w: got %d", ErrTableSize, len(entries))
	}
	t := new(Table)
	copy(t.entries[:], entries)
	return t, nil
}

// ParseHexTable builds a literal table from 256 six digit hex strings.
func ParseHexTable(hex []string) (*Table, error) {
	if len(hex) != Size {
		return nil, fmt.Errorf("%w: got %d", ErrTableSize, len(hex))
	}
	entries := make([]RGB, Size)
	for i, s := range hex {
		c, err := ParseHex(s)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		entries[i] = c
	}
	return NewLiteral(entries)
}

func MustParseHexTable(hex []string) *Table {
	t, err := ParseHexTable(hex)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseHex parses "RRGGBB", optionally prefixed by '#'.
func ParseHex(s string) (RGB, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return RGB{}, fmt.Errorf("%w: %q (expected 6 hex digits)", ErrHexColour, s)
	}
	var rgb [3]uint8
	for i := range 3 {
		val, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return RGB{}, fmt.Errorf("%w: %q", ErrHexColour, s)
		}
		rgb[i] = uint8(val)
	}
	return RGB{rgb[0], rgb[1], rgb[2]}, nil
}

func (c RGB) Hex() string {
	return fmt.Sprintf("%02x%02x%02x", c.R, c.G, c.B)
}

// Colour returns the entry for intensity i.
func (t *Table) Colour(i uint8) RGB {
	return t.entries[i]
}

// Entries returns a copy of all entries.
func (t *Table) Entries() []RGB {
	return append([]RGB(nil), t.entries[:]...)
}

// Channels returns per-channel lookup arrays. The arrays are shared and
// must not be modified.
func (t *Table) Channels() (r, g, b *[Size]uint8) {
	c := t.chans.Load()
	if c == nil {
		c = new(channels)
		for i, e := range t.entries {
			c.r[i], c.g[i], c.b[i] = e.R, e.G, e.B
		}
		t.chans.Store(c)
	}
	return &c.r, &c.g, &c.b
}

// ARGB returns the opaque entries packed in layout A.
func (t *Table) ARGB() *[Size]uint32 {
	lut := t.argb.Load()
	if lut == nil {
		lut = new([Size]uint32)
		for i, e := range t.entries {
			lut[i] = pixel.PackARGB(e.R, e.G, e.B, pixel.Opaque)
		}
		t.argb.Store(lut)
	}
	return lut
}

// ABGR returns the opaque entries packed in layout B.
func (t *Table) ABGR() *[Size]uint32 {
	lut := t.abgr.Load()
	if lut == nil {
		lut = new([Size]uint32)
		for i, c := range t.ARGB() {
			lut[i] = pixel.ARGBToABGR(c)
		}
		t.abgr.Store(lut)
	}
	return lut
}
