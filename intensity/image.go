package intensity

import (
	"fmt"
	"image"
	"image/color"

	"falsecolor/unpack"
)

// FromImage8 converts img to an 8-bit grid.
func FromImage8(img image.Image) *Grid[uint8] {
	b := img.Bounds()
	g := New[uint8](b.Dx(), b.Dy())
	if src, ok := img.(*image.Gray); ok {
		for y := range g.height {
			off := src.PixOffset(b.Min.X, b.Min.Y+y)
			copy(g.samples[y*g.width:(y+1)*g.width], src.Pix[off:off+g.width])
		}
		return g
	}
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			g.samples[i] = color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y
			i++
		}
	}
	return g
}

// FromImage16 converts img to a 16-bit grid.
func FromImage16(img image.Image) *Grid[uint16] {
	b := img.Bounds()
	g := New[uint16](b.Dx(), b.Dy())
	if src, ok := img.(*image.Gray16); ok {
		i := 0
		for y := b.Min.Y; y < b.Max.Y; y++ {
			off := src.PixOffset(b.Min.X, y)
			for x := range g.width {
				g.samples[i] = uint16(src.Pix[off+2*x])<<8 | uint16(src.Pix[off+2*x+1])
				i++
			}
		}
		return g
	}
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			g.samples[i] = color.Gray16Model.Convert(img.At(x, y)).(color.Gray16).Y
			i++
		}
	}
	return g
}

// Wide reports whether img carries more than 8 bits per sample.
func Wide(img image.Image) bool {
	switch img.(type) {
	case *image.Gray16, *image.RGBA64, *image.NRGBA64:
		return true
	}
	return false
}

// Image returns a copy of g as an *image.Gray or *image.Gray16.
func (g *Grid[T]) Image() image.Image {
	r := image.Rect(0, 0, g.width, g.height)
	switch s := any(g.samples).(type) {
	case []uint8:
		img := image.NewGray(r)
		copy(img.Pix, s)
		return img
	case []uint16:
		img := image.NewGray16(r)
		for i, v := range s {
			img.Pix[2*i] = uint8(v >> 8)
			img.Pix[2*i+1] = uint8(v)
		}
		return img
	}
	panic("unreachable")
}

// FromRaw decodes a raw sensor frame. Samples are shifted to occupy the
// full 16-bit range. Padding left by the pack unit beyond width*height
// samples is discarded.
func FromRaw(data []byte, width, height int, f unpack.Format) (*Grid[uint16], error) {
	samples, err := f.Decode(data)
	if err != nil {
		return nil, err
	}
	if len(samples) < width*height {
		return nil, fmt.Errorf("%w: %s frame holds %d samples, want %dx%d", ErrSampleCount, f, len(samples), width, height)
	}
	samples = samples[:width*height]
	if shift := 16 - f.Bits(); shift > 0 {
		for i, v := range samples {
			samples[i] = v << shift
		}
	}
	return FromSamples(width, height, samples)
}
