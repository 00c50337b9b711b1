package raster

import (
	"image"
	"iter"
)

// Circle yields the boundary of the circle centred on c with radius r,
// using the midpoint algorithm. Each point of the first octant is
// reflected into the other seven, so points on the octant boundaries are
// yielded more than once. A negative radius yields nothing.
func Circle(c image.Point, r int) iter.Seq[image.Point] {
	return func(yield func(image.Point) bool) {
		if r < 0 {
			return
		}
		x, y := r, 0
		e := 1 - r
		for x >= y {
			octants := [8]image.Point{
				{c.X + x, c.Y + y},
				{c.X + y, c.Y + x},
				{c.X - y, c.Y + x},
				{c.X - x, c.Y + y},
				{c.X - x, c.Y - y},
				{c.X - y, c.Y - x},
				{c.X + y, c.Y - x},
				{c.X + x, c.Y - y},
			}
			for _, p := range octants {
				if !yield(p) {
					return
				}
			}
			y++
			if e < 0 {
				e += 2*y + 1
			} else {
				x--
				e += 2*(y-x) + 1
			}
		}
	}
}
