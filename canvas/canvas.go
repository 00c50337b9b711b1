// Package canvas implements the coloured pixel buffer: an RGBA rendering of
// an intensity grid through a colour table, with pixel accessors used to
// draw overlays on top.
//
// The buffer holds width*height*4 bytes in R, G, B, A order with alpha
// always 0xFF. Out of range coordinates are never an error: writes are
// dropped and reads report false.
package canvas

import (
	"image"
	"image/color"

	"falsecolor/colormap"
	"falsecolor/intensity"
	"falsecolor/pixel"
)

type Buffer struct {
	width, height int
	pix           []byte
	strategy      Strategy
	enc           Encoder
}

type Option func(*Buffer)

// WithStrategy selects one of the built-in write strategies. The default
// is WordPointer.
func WithStrategy(s Strategy) Option {
	return func(b *Buffer) {
		b.strategy = s
		b.enc = EncoderFor(s)
	}
}

// New returns a zero filled buffer.
func New(width, height int, opts ...Option) *Buffer {
	b := &Buffer{
		width:    width,
		height:   height,
		pix:      make([]byte, width*height*4),
		strategy: WordPointer,
		enc:      EncoderFor(WordPointer),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// FromGrid renders g through t into a new buffer.
func FromGrid[T intensity.Sample](g *intensity.Grid[T], t *colormap.Table, opts ...Option) *Buffer {
	b := New(g.Width(), g.Height(), opts...)
	encode(b, g, t)
	return b
}

// Reload renders g through t into b, reusing b's memory when the
// dimensions match.
func Reload[T intensity.Sample](b *Buffer, g *intensity.Grid[T], t *colormap.Table) {
	if b.width != g.Width() || b.height != g.Height() {
		b.width, b.height = g.Width(), g.Height()
		b.pix = make([]byte, b.width*b.height*4)
	}
	encode(b, g, t)
}

func encode[T intensity.Sample](b *Buffer, g *intensity.Grid[T], t *colormap.Table) {
	switch s := any(g.Samples()).(type) {
	case []uint8:
		b.enc.Encode8(b.pix, s, t)
	case []uint16:
		b.enc.Encode16(b.pix, s, t)
	}
}

func (b *Buffer) Width() int {
	return b.width
}

func (b *Buffer) Height() int {
	return b.height
}

func (b *Buffer) Strategy() Strategy {
	return b.strategy
}

// Pix returns the backing RGBA bytes.
func (b *Buffer) Pix() []byte {
	return b.pix
}

func (b *Buffer) In(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

func (b *Buffer) offset(x, y int) int {
	return (x + y*b.width) * 4
}

// SetPixel writes c with alpha forced opaque.
func (b *Buffer) SetPixel(x, y int, c color.RGBA) bool {
	return b.SetPacked(x, y, pixel.PackABGR(c.R, c.G, c.B, pixel.Opaque))
}

// SetPacked writes a colour packed in layout B. The alpha byte of c is
// ignored and stored opaque.
func (b *Buffer) SetPacked(x, y int, c uint32) bool {
	if !b.In(x, y) {
		return false
	}
	b.enc.Put(b.pix, b.offset(x, y), c|uint32(pixel.Opaque)<<24)
	return true
}

// SetThick writes the 3x3 block centred on (x, y). It reports whether
// any pixel of the block was inside the buffer.
func (b *Buffer) SetThick(x, y int, c color.RGBA) bool {
	return b.SetPackedThick(x, y, pixel.PackABGR(c.R, c.G, c.B, pixel.Opaque))
}

func (b *Buffer) SetPackedThick(x, y int, c uint32) bool {
	hit := false
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if b.SetPacked(x+dx, y+dy, c) {
				hit = true
			}
		}
	}
	return hit
}

// Plot writes a single or thick pixel.
func (b *Buffer) Plot(x, y int, c uint32, thick bool) bool {
	if thick {
		return b.SetPackedThick(x, y, c)
	}
	return b.SetPacked(x, y, c)
}

func (b *Buffer) Pixel(x, y int) (color.RGBA, bool) {
	if !b.In(x, y) {
		return color.RGBA{}, false
	}
	o := b.offset(x, y)
	p := b.pix[o : o+4 : o+4]
	return color.RGBA{R: p[0], G: p[1], B: p[2], A: p[3]}, true
}

func (b *Buffer) SetAll(c color.RGBA) {
	b.enc.Fill(b.pix, pixel.PackABGR(c.R, c.G, c.B, pixel.Opaque))
}

// RGBA returns an *image.RGBA sharing the buffer's memory.
func (b *Buffer) RGBA() *image.RGBA {
	return &image.RGBA{
		Pix:    b.pix,
		Stride: 4 * b.width,
		Rect:   image.Rect(0, 0, b.width, b.height),
	}
}

// Bounds, ColorModel, At and Set implement draw.Image.

func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.width, b.height)
}

func (b *Buffer) ColorModel() color.Model {
	return color.RGBAModel
}

func (b *Buffer) At(x, y int) color.Color {
	c, _ := b.Pixel(x, y)
	return c
}

func (b *Buffer) Set(x, y int, c color.Color) {
	b.SetPacked(x, y, pixel.FromColor(c))
}
