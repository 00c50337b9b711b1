package canvas

import (
	"bytes"
	"image"
	"image/color"
	"math/rand/v2"
	"testing"

	"golang.org/x/image/draw"

	"falsecolor/colormap"
	"falsecolor/intensity"
	"falsecolor/pixel"
)

var strategies = []Strategy{Indexed, BytePointer, WordPointer}

var (
	red   = color.RGBA{0xFF, 0, 0, 0xFF}
	green = color.RGBA{0, 0xFF, 0, 0xFF}
	blue  = color.RGBA{0, 0, 0xFF, 0xFF}
	black = color.RGBA{0, 0, 0, 0xFF}
	grey  = color.RGBA{0x80, 0x80, 0x80, 0xFF}
	white = color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}
)

func sixColourTable(t *testing.T) *colormap.Table {
	t.Helper()
	entries := make([]colormap.RGB, colormap.Size)
	for i, c := range []color.RGBA{red, green, blue, black, grey, white} {
		entries[i] = colormap.RGB{R: c.R, G: c.G, B: c.B}
	}
	tab, err := colormap.NewLiteral(entries)
	if err != nil {
		t.Fatal(err)
	}
	return tab
}

func TestEndToEnd(t *testing.T) {
	tab := sixColourTable(t)
	g := intensity.MustFromSamples(3, 2, []uint8{0, 1, 2, 3, 4, 5})
	for _, s := range strategies {
		b := FromGrid(g, tab, WithStrategy(s))
		if len(b.Pix()) != 3*2*4 {
			t.Fatalf("%v: buffer holds %d bytes", s, len(b.Pix()))
		}
		if c, ok := b.Pixel(0, 0); !ok || c != red {
			t.Errorf("%v: Pixel(0, 0) = %v, %v, want red", s, c, ok)
		}
		if c, ok := b.Pixel(2, 1); !ok || c != white {
			t.Errorf("%v: Pixel(2, 1) = %v, %v, want white", s, c, ok)
		}
		if c, _ := b.Pixel(1, 1); c != grey {
			t.Errorf("%v: Pixel(1, 1) = %v, want grey", s, c)
		}
		for _, p := range []image.Point{{-1, 0}, {3, 0}, {0, 2}} {
			if _, ok := b.Pixel(p.X, p.Y); ok {
				t.Errorf("%v: Pixel(%v) reported success", s, p)
			}
			if b.SetPixel(p.X, p.Y, blue) {
				t.Errorf("%v: SetPixel(%v) reported success", s, p)
			}
		}
	}
}

func randomGrid8(r *rand.Rand, w, h int) *intensity.Grid[uint8] {
	return intensity.NewFunc(w, h, func(int, int) uint8 { return uint8(r.Uint32()) })
}

func randomGrid16(r *rand.Rand, w, h int) *intensity.Grid[uint16] {
	return intensity.NewFunc(w, h, func(int, int) uint16 { return uint16(r.Uint32()) })
}

func TestStrategiesAgree(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	sizes := []image.Point{{0, 0}, {1, 1}, {3, 2}, {17, 5}, {64, 48}}
	for _, name := range colormap.Names() {
		tab, _ := colormap.Lookup(name)
		for _, size := range sizes {
			g8 := randomGrid8(r, size.X, size.Y)
			g16 := randomGrid16(r, size.X, size.Y)
			want8 := FromGrid(g8, tab, WithStrategy(Indexed)).Pix()
			want16 := FromGrid(g16, tab, WithStrategy(Indexed)).Pix()
			for _, s := range strategies[1:] {
				if got := FromGrid(g8, tab, WithStrategy(s)).Pix(); !bytes.Equal(got, want8) {
					t.Errorf("%s %v: 8-bit %v output differs from indexed", name, size, s)
				}
				if got := FromGrid(g16, tab, WithStrategy(s)).Pix(); !bytes.Equal(got, want16) {
					t.Errorf("%s %v: 16-bit %v output differs from indexed", name, size, s)
				}
			}
		}
	}
}

func TestWritesAgree(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	bufs := make([]*Buffer, len(strategies))
	for i, s := range strategies {
		bufs[i] = New(13, 7, WithStrategy(s))
	}
	for range 200 {
		x, y := r.IntN(17)-2, r.IntN(11)-2
		c := color.RGBA{uint8(r.Uint32()), uint8(r.Uint32()), uint8(r.Uint32()), uint8(r.Uint32())}
		thick := r.IntN(2) == 0
		for _, b := range bufs {
			if thick {
				b.SetThick(x, y, c)
			} else {
				b.SetPixel(x, y, c)
			}
		}
	}
	for i, b := range bufs[1:] {
		if !bytes.Equal(b.Pix(), bufs[0].Pix()) {
			t.Errorf("%v pixel writes differ from indexed", strategies[i+1])
		}
	}
	for _, b := range bufs {
		b.SetAll(color.RGBA{1, 2, 3, 0})
	}
	for i, b := range bufs[1:] {
		if !bytes.Equal(b.Pix(), bufs[0].Pix()) {
			t.Errorf("%v SetAll differs from indexed", strategies[i+1])
		}
	}
	if c, _ := bufs[0].Pixel(12, 6); c != (color.RGBA{1, 2, 3, 0xFF}) {
		t.Errorf("after SetAll Pixel = %v", c)
	}
}

func TestSetPixel(t *testing.T) {
	for _, s := range strategies {
		b := New(4, 4, WithStrategy(s))
		if !b.SetPixel(1, 2, color.RGBA{10, 20, 30, 0}) {
			t.Fatalf("%v: SetPixel failed", s)
		}
		if c, ok := b.Pixel(1, 2); !ok || c != (color.RGBA{10, 20, 30, 0xFF}) {
			t.Errorf("%v: Pixel = %v, %v", s, c, ok)
		}
		if !b.SetPacked(3, 3, pixel.PackABGR(1, 2, 3, pixel.Opaque)) {
			t.Fatalf("%v: SetPacked failed", s)
		}
		if got := b.Pix()[len(b.Pix())-4:]; !bytes.Equal(got, []byte{1, 2, 3, 0xFF}) {
			t.Errorf("%v: last pixel bytes = % x", s, got)
		}
		if c, _ := b.Pixel(0, 0); c != (color.RGBA{}) {
			t.Errorf("%v: untouched pixel = %v", s, c)
		}
	}
}

func TestSetPackedForcesAlpha(t *testing.T) {
	for _, s := range strategies {
		b := New(2, 2, WithStrategy(s))
		b.SetPackedThick(1, 0, pixel.PackABGR(4, 5, 6, 0))
		b.SetPacked(0, 1, pixel.PackABGR(9, 8, 7, 0x10))
		if c, _ := b.Pixel(0, 1); c != (color.RGBA{9, 8, 7, 0xFF}) {
			t.Errorf("%v: SetPacked stored %v", s, c)
		}
		if c, _ := b.Pixel(0, 0); c != (color.RGBA{4, 5, 6, 0xFF}) {
			t.Errorf("%v: SetPackedThick stored %v", s, c)
		}
	}
}

func TestThick(t *testing.T) {
	b := New(5, 5)
	if !b.SetThick(0, 0, white) {
		t.Fatal("SetThick at corner reported no write")
	}
	want := map[image.Point]bool{{0, 0}: true, {1, 0}: true, {0, 1}: true, {1, 1}: true}
	for y := range 5 {
		for x := range 5 {
			c, _ := b.Pixel(x, y)
			if set := c == white; set != want[image.Pt(x, y)] {
				t.Errorf("Pixel(%d, %d) = %v", x, y, c)
			}
		}
	}
	if b.SetThick(-2, 2, white) {
		t.Error("SetThick fully outside reported a write")
	}
	if !b.Plot(4, 4, pixel.FromColor(red), false) {
		t.Error("Plot failed")
	}
	if c, _ := b.Pixel(3, 3); c == red {
		t.Error("thin Plot wrote a neighbour")
	}
}

func TestReload(t *testing.T) {
	tab := sixColourTable(t)
	g := intensity.MustFromSamples(3, 2, []uint8{0, 1, 2, 3, 4, 5})
	b := FromGrid(g, tab)
	before := &b.Pix()[0]

	g.Set(0, 0, 5)
	Reload(b, g, tab)
	if &b.Pix()[0] != before {
		t.Error("Reload reallocated a matching buffer")
	}
	if c, _ := b.Pixel(0, 0); c != white {
		t.Errorf("Pixel(0, 0) after Reload = %v, want white", c)
	}

	big := intensity.New[uint16](4, 4)
	Reload(b, big, tab)
	if b.Width() != 4 || b.Height() != 4 || len(b.Pix()) != 64 {
		t.Fatalf("Reload to 4x4 = %dx%d with %d bytes", b.Width(), b.Height(), len(b.Pix()))
	}
	if c, _ := b.Pixel(3, 3); c != red {
		t.Errorf("Pixel(3, 3) = %v, want red", c)
	}
	if b.Strategy() != WordPointer {
		t.Errorf("default strategy = %v", b.Strategy())
	}
}

func TestDrawImage(t *testing.T) {
	var _ draw.Image = (*Buffer)(nil)

	b := New(4, 3, WithStrategy(BytePointer))
	draw.Draw(b, image.Rect(1, 1, 3, 2), image.NewUniform(green), image.Point{}, draw.Src)
	if c, _ := b.Pixel(2, 1); c != green {
		t.Errorf("Pixel(2, 1) = %v, want green", c)
	}
	if c, _ := b.Pixel(0, 0); c != (color.RGBA{}) {
		t.Errorf("Pixel(0, 0) = %v, want untouched", c)
	}

	img := b.RGBA()
	if img.RGBAAt(2, 1) != green {
		t.Errorf("RGBA view = %v", img.RGBAAt(2, 1))
	}
	img.SetRGBA(0, 0, blue)
	if c, _ := b.Pixel(0, 0); c != blue {
		t.Error("RGBA view does not share memory")
	}

	dst := image.NewRGBA(image.Rect(0, 0, 8, 6))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), b, b.Bounds(), draw.Src, nil)
	if dst.RGBAAt(5, 3) != green {
		t.Errorf("scaled pixel = %v, want green", dst.RGBAAt(5, 3))
	}
}

func TestParseStrategy(t *testing.T) {
	for _, s := range strategies {
		got, err := ParseStrategy(s.String())
		if err != nil || got != s {
			t.Errorf("ParseStrategy(%q) = %v, %v", s.String(), got, err)
		}
	}
	if _, err := ParseStrategy("simd"); err == nil {
		t.Error("ParseStrategy(simd) succeeded")
	}
}

func BenchmarkEncode(b *testing.B) {
	tab, _ := colormap.Lookup("turbo")
	r := rand.New(rand.NewPCG(5, 6))
	g := randomGrid16(r, 640, 480)
	for _, s := range strategies {
		b.Run(s.String(), func(b *testing.B) {
			buf := New(640, 480, WithStrategy(s))
			b.SetBytes(int64(len(buf.Pix())))
			for b.Loop() {
				Reload(buf, g, tab)
			}
		})
	}
}
