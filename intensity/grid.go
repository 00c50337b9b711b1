// Package intensity implements single channel sample grids as captured by
// an imaging sensor.
package intensity

import (
	"errors"
	"fmt"
	"math"
)

// Sample is the element type of a grid.
type Sample interface {
	uint8 | uint16
}

var ErrSampleCount = errors.New("sample count does not match grid size")

// Grid is a row-major width x height buffer of samples. The sample at
// (x, y) is stored at Samples()[x+y*width].
type Grid[T Sample] struct {
	width, height int
	samples       []T
}

// New returns a zero filled grid.
func New[T Sample](width, height int) *Grid[T] {
	return &Grid[T]{
		width:   width,
		height:  height,
		samples: make([]T, width*height),
	}
}

// NewFunc returns a grid whose samples are produced by f.
func NewFunc[T Sample](width, height int, f func(x, y int) T) *Grid[T] {
	g := New[T](width, height)
	i := 0
	for y := range height {
		for x := range width {
			g.samples[i] = f(x, y)
			i++
		}
	}
	return g
}

// FromSamples takes ownership of samples.
func FromSamples[T Sample](width, height int, samples []T) (*Grid[T], error) {
	if width < 0 || height < 0 || len(samples) != width*height {
		return nil, fmt.Errorf("%w: %d samples for %dx%d", ErrSampleCount, len(samples), width, height)
	}
	return &Grid[T]{
		width:   width,
		height:  height,
		samples: samples,
	}, nil
}

func MustFromSamples[T Sample](width, height int, samples []T) *Grid[T] {
	g, err := FromSamples(width, height, samples)
	if err != nil {
		panic(err)
	}
	return g
}

func (g *Grid[T]) Width() int {
	return g.width
}

func (g *Grid[T]) Height() int {
	return g.height
}

// Samples returns the backing store.
func (g *Grid[T]) Samples() []T {
	return g.samples
}

func (g *Grid[T]) Offset(x, y int) int {
	return x + y*g.width
}

func (g *Grid[T]) In(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// MaxValue is the largest representable sample.
func (g *Grid[T]) MaxValue() T {
	return ^T(0)
}

func (g *Grid[T]) Get(x, y int) (T, bool) {
	if !g.In(x, y) {
		return 0, false
	}
	return g.samples[g.Offset(x, y)], true
}

// At returns the sample at an offset the caller already validated.
func (g *Grid[T]) At(off int) T {
	return g.samples[off]
}

func (g *Grid[T]) Set(x, y int, v T) bool {
	if !g.In(x, y) {
		return false
	}
	g.samples[g.Offset(x, y)] = v
	return true
}

func (g *Grid[T]) SetAll(v T) {
	for i := range g.samples {
		g.samples[i] = v
	}
}

// Row returns a copy of row y.
func (g *Grid[T]) Row(y int) ([]T, bool) {
	if y < 0 || y >= g.height {
		return nil, false
	}
	off := g.Offset(0, y)
	return append([]T(nil), g.samples[off:off+g.width]...), true
}

// Column returns a copy of column x.
func (g *Grid[T]) Column(x int) ([]T, bool) {
	if x < 0 || x >= g.width {
		return nil, false
	}
	col := make([]T, g.height)
	for y := range col {
		col[y] = g.samples[g.Offset(x, y)]
	}
	return col, true
}

// Histogram counts samples by value over the full representable range.
func (g *Grid[T]) Histogram() []int {
	h := make([]int, int(g.MaxValue())+1)
	for _, v := range g.samples {
		h[int(v)]++
	}
	return h
}

// Max returns the largest sample, or zero for an empty grid.
func (g *Grid[T]) Max() T {
	var m T
	for _, v := range g.samples {
		m = max(m, v)
	}
	return m
}

// Level reduces the sample at off to 8 bits by keeping its most
// significant byte.
func (g *Grid[T]) Level(off int) uint8 {
	v := g.samples[off]
	if uint64(g.MaxValue()) > math.MaxUint8 {
		return uint8(uint16(v) >> 8)
	}
	return uint8(v)
}

func (g *Grid[T]) Equal(o *Grid[T]) bool {
	if g.width != o.width || g.height != o.height {
		return false
	}
	for i, v := range g.samples {
		if o.samples[i] != v {
			return false
		}
	}
	return true
}
