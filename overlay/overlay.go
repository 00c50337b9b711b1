// Package overlay draws diagnostic shapes on top of a coloured pixel
// buffer.
//
// Shapes are plain values: drawing one walks its geometry and writes
// through the buffer's bounds-checked setters, so any part of a shape
// outside the buffer is silently clipped. Pixels shared by two strokes
// are written twice.
package overlay

import (
	"image"
	"image/color"

	"falsecolor/canvas"
	"falsecolor/pixel"
	"falsecolor/raster"
)

// Overlay is a shape that can be drawn onto a buffer.
type Overlay interface {
	Draw(b *canvas.Buffer)
}

// Style is shared by all shapes. Alpha is ignored: overlays are always
// drawn opaque.
type Style struct {
	Colour color.RGBA
	// Thick replaces every pixel with the 3x3 block around it.
	Thick bool
}

func (s Style) packed() uint32 {
	return pixel.PackABGR(s.Colour.R, s.Colour.G, s.Colour.B, pixel.Opaque)
}

func (s Style) segment(b *canvas.Buffer, c uint32, p0, p1 image.Point) {
	for p := range raster.Line(p0, p1) {
		b.Plot(p.X, p.Y, c, s.Thick)
	}
}

func (s Style) path(b *canvas.Buffer, pts []image.Point, closed bool) {
	c := s.packed()
	switch len(pts) {
	case 0:
		return
	case 1:
		b.Plot(pts[0].X, pts[0].Y, c, s.Thick)
		return
	}
	for i := 1; i < len(pts); i++ {
		s.segment(b, c, pts[i-1], pts[i])
	}
	if closed {
		s.segment(b, c, pts[len(pts)-1], pts[0])
	}
}

// Line is a straight segment, both ends included.
type Line struct {
	Style
	From, To image.Point
}

func (l Line) Draw(b *canvas.Buffer) {
	l.segment(b, l.packed(), l.From, l.To)
}

// HLine spans the full width of the buffer at row Y.
type HLine struct {
	Style
	Y int
}

func (l HLine) Draw(b *canvas.Buffer) {
	if b.Width() == 0 {
		return
	}
	l.segment(b, l.packed(), image.Pt(0, l.Y), image.Pt(b.Width()-1, l.Y))
}

// VLine spans the full height of the buffer at column X.
type VLine struct {
	Style
	X int
}

func (l VLine) Draw(b *canvas.Buffer) {
	if b.Height() == 0 {
		return
	}
	l.segment(b, l.packed(), image.Pt(l.X, 0), image.Pt(l.X, b.Height()-1))
}

// Box outlines Rect. Its edges are the outermost pixels inside Rect.
type Box struct {
	Style
	Rect image.Rectangle
}

func (x Box) Draw(b *canvas.Buffer) {
	r := x.Rect.Canon()
	if r.Empty() {
		return
	}
	x0, y0, x1, y1 := r.Min.X, r.Min.Y, r.Max.X-1, r.Max.Y-1
	x.path(b, []image.Point{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}, true)
}

// Cross is a plus sign centred on Center with arms Size pixels long.
type Cross struct {
	Style
	Center image.Point
	Size   int
}

func (x Cross) Draw(b *canvas.Buffer) {
	c := x.packed()
	d := max(x.Size, 0)
	x.segment(b, c, x.Center.Sub(image.Pt(d, 0)), x.Center.Add(image.Pt(d, 0)))
	x.segment(b, c, x.Center.Sub(image.Pt(0, d)), x.Center.Add(image.Pt(0, d)))
}

type Circle struct {
	Style
	Center image.Point
	Radius int
}

func (x Circle) Draw(b *canvas.Buffer) {
	c := x.packed()
	for p := range raster.Circle(x.Center, x.Radius) {
		b.Plot(p.X, p.Y, c, x.Thick)
	}
}

// Polyline connects consecutive points. It is left open.
type Polyline struct {
	Style
	Points []image.Point
}

func (x Polyline) Draw(b *canvas.Buffer) {
	x.path(b, x.Points, false)
}

// Polygon is a Polyline whose last point connects back to the first.
type Polygon struct {
	Style
	Points []image.Point
}

func (x Polygon) Draw(b *canvas.Buffer) {
	x.path(b, x.Points, true)
}

// Points draws each point on its own.
type Points struct {
	Style
	Points []image.Point
}

func (x Points) Draw(b *canvas.Buffer) {
	c := x.packed()
	for _, p := range x.Points {
		b.Plot(p.X, p.Y, c, x.Thick)
	}
}

// List draws its overlays in order.
type List []Overlay

func (l List) Draw(b *canvas.Buffer) {
	for _, o := range l {
		o.Draw(b)
	}
}
