// Package raster generates the integer pixel coordinates of lines and
// circles.
package raster

import (
	"image"
	"iter"
)

// Stepper walks a line with the Bresenham algorithm.
type Stepper struct {
	// d is the minor axis error, doubled.
	d int
	// dmajor, dminor is the line vector.
	dmajor, dminor int
	// sx, sy are the step directions.
	sx, sy int
	// swap is set when the major axis is y.
	swap bool
}

// Reset the stepper with a signed distance. It returns the number of
// steps to reach it.
func (s *Stepper) Reset(dist image.Point) int {
	s.sx, s.sy = 1, 1
	if dist.X < 0 {
		s.sx = -1
		dist.X = -dist.X
	}
	if dist.Y < 0 {
		s.sy = -1
		dist.Y = -dist.Y
	}
	s.swap = dist.Y > dist.X
	if s.swap {
		dist.X, dist.Y = dist.Y, dist.X
	}
	s.dmajor, s.dminor = dist.X, dist.Y
	s.d = 2*s.dminor - s.dmajor
	return s.dmajor
}

// Step returns the offset from the previous pixel to the next one.
func (s *Stepper) Step() image.Point {
	maj, mnr := 1, 0
	if s.d > 0 {
		mnr = 1
		s.d -= 2 * s.dmajor
	}
	s.d += 2 * s.dminor
	if s.swap {
		maj, mnr = mnr, maj
	}
	return image.Pt(maj*s.sx, mnr*s.sy)
}

// Line yields every pixel from p0 to p1, both included, in order. It
// yields max(|dx|, |dy|)+1 points.
func Line(p0, p1 image.Point) iter.Seq[image.Point] {
	return func(yield func(image.Point) bool) {
		var s Stepper
		steps := s.Reset(p1.Sub(p0))
		p := p0
		if !yield(p) {
			return
		}
		for range steps {
			p = p.Add(s.Step())
			if !yield(p) {
				return
			}
		}
	}
}
