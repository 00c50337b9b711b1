package intensity

import (
	"image"

	"falsecolor/orient"
)

// Clone returns a deep copy.
func (g *Grid[T]) Clone() *Grid[T] {
	return &Grid[T]{
		width:   g.width,
		height:  g.height,
		samples: append([]T(nil), g.samples...),
	}
}

// Rotate returns a new grid transformed by f. Factors that swap axes
// produce a height x width grid.
func (g *Grid[T]) Rotate(f orient.Factor) *Grid[T] {
	w, h := f.Size(g.width, g.height)
	dst := New[T](w, h)
	src := f.Mapper()
	i := 0
	for y := range h {
		for x := range w {
			sx, sy := src(x, y, g.width, g.height)
			dst.samples[i] = g.samples[sx+sy*g.width]
			i++
		}
	}
	return dst
}

// Resize returns a nearest neighbour copy of size width x height. Source
// column sx = floor(x * srcWidth / width) and likewise for rows, so
// enlarging repeats samples and shrinking skips them.
func (g *Grid[T]) Resize(width, height int) *Grid[T] {
	if width == g.width && height == g.height {
		return g.Clone()
	}
	dst := New[T](width, height)
	if g.width == 0 || g.height == 0 {
		return dst
	}
	cols := make([]int, width)
	for x := range cols {
		cols[x] = x * g.width / width
	}
	i := 0
	for y := range height {
		row := g.samples[(y*g.height/height)*g.width:]
		for _, sx := range cols {
			dst.samples[i] = row[sx]
			i++
		}
	}
	return dst
}

// Normalize scales every sample by MaxValue/ref in place, clamping at
// MaxValue. A zero reference saturates every sample.
func (g *Grid[T]) Normalize(ref T) {
	top := g.MaxValue()
	if ref == 0 {
		g.SetAll(top)
		return
	}
	for i, v := range g.samples {
		g.samples[i] = T(min(uint64(v)*uint64(top)/uint64(ref), uint64(top)))
	}
}

// Normalized is the copying form of Normalize.
func (g *Grid[T]) Normalized(ref T) *Grid[T] {
	c := g.Clone()
	c.Normalize(ref)
	return c
}

// Region copies the window r. The window is trusted: it must lie within
// the grid.
func (g *Grid[T]) Region(r image.Rectangle) *Grid[T] {
	dst := New[T](r.Dx(), r.Dy())
	for y := range dst.height {
		off := g.Offset(r.Min.X, r.Min.Y+y)
		copy(dst.samples[y*dst.width:(y+1)*dst.width], g.samples[off:off+dst.width])
	}
	return dst
}
