package intensity

import (
	"errors"
	"image"
	"image/color"
	"slices"
	"testing"

	"falsecolor/orient"
	"falsecolor/unpack"
)

func seq8(w, h int) *Grid[uint8] {
	return NewFunc(w, h, func(x, y int) uint8 { return uint8(x + y*w) })
}

func seq16(w, h int) *Grid[uint16] {
	return NewFunc(w, h, func(x, y int) uint16 { return uint16(x+y*w) * 257 })
}

func TestFromSamples(t *testing.T) {
	samples := []uint8{0, 1, 2, 3, 4, 5}
	g, err := FromSamples(3, 2, samples)
	if err != nil {
		t.Fatal(err)
	}
	if v, ok := g.Get(2, 1); !ok || v != 5 {
		t.Errorf("Get(2, 1) = %d, %v, want 5, true", v, ok)
	}
	samples[0] = 9
	if v, _ := g.Get(0, 0); v != 9 {
		t.Errorf("grid does not own the supplied samples: Get(0, 0) = %d", v)
	}
	for _, n := range []int{5, 7, 0} {
		if _, err := FromSamples(3, 2, make([]uint16, n)); !errors.Is(err, ErrSampleCount) {
			t.Errorf("FromSamples with %d samples error = %v, want ErrSampleCount", n, err)
		}
	}
	defer func() {
		if recover() == nil {
			t.Error("MustFromSamples did not panic")
		}
	}()
	MustFromSamples(2, 2, []uint8{1})
}

func TestAccessors(t *testing.T) {
	g := New[uint16](4, 3)
	if g.Width() != 4 || g.Height() != 3 || len(g.Samples()) != 12 {
		t.Fatalf("New(4, 3) = %dx%d with %d samples", g.Width(), g.Height(), len(g.Samples()))
	}
	for _, p := range []image.Point{{-1, 0}, {4, 0}, {0, -1}, {0, 3}} {
		if g.Set(p.X, p.Y, 1) {
			t.Errorf("Set(%v) succeeded", p)
		}
		if _, ok := g.Get(p.X, p.Y); ok {
			t.Errorf("Get(%v) succeeded", p)
		}
	}
	if !g.Set(3, 2, 700) {
		t.Fatal("Set(3, 2) failed")
	}
	if off := g.Offset(3, 2); off != 11 || g.At(off) != 700 {
		t.Errorf("Offset(3, 2) = %d, At = %d", off, g.At(off))
	}
	g.SetAll(5)
	if g.Max() != 5 {
		t.Errorf("Max after SetAll(5) = %d", g.Max())
	}
	if g.MaxValue() != 0xFFFF || New[uint8](1, 1).MaxValue() != 0xFF {
		t.Error("unexpected MaxValue")
	}
}

func TestRowColumn(t *testing.T) {
	g := seq8(3, 2)
	if row, ok := g.Row(1); !ok || !slices.Equal(row, []uint8{3, 4, 5}) {
		t.Errorf("Row(1) = %v, %v", row, ok)
	}
	if col, ok := g.Column(2); !ok || !slices.Equal(col, []uint8{2, 5}) {
		t.Errorf("Column(2) = %v, %v", col, ok)
	}
	if _, ok := g.Row(2); ok {
		t.Error("Row(2) succeeded")
	}
	if _, ok := g.Column(-1); ok {
		t.Error("Column(-1) succeeded")
	}
	row, _ := g.Row(0)
	row[0] = 99
	if v, _ := g.Get(0, 0); v != 0 {
		t.Error("Row returned an alias of the grid")
	}
}

func TestHistogram(t *testing.T) {
	g := MustFromSamples(2, 2, []uint8{0, 7, 7, 255})
	h := g.Histogram()
	if len(h) != 256 || h[0] != 1 || h[7] != 2 || h[255] != 1 {
		t.Errorf("Histogram = len %d, h[0]=%d h[7]=%d h[255]=%d", len(h), h[0], h[7], h[255])
	}
	if h16 := New[uint16](1, 1).Histogram(); len(h16) != 65536 || h16[0] != 1 {
		t.Errorf("16-bit histogram len %d", len(h16))
	}
}

func TestLevel(t *testing.T) {
	g8 := MustFromSamples(2, 1, []uint8{0x12, 0xFF})
	if g8.Level(0) != 0x12 || g8.Level(1) != 0xFF {
		t.Errorf("8-bit levels = %x %x", g8.Level(0), g8.Level(1))
	}
	g16 := MustFromSamples(2, 1, []uint16{0x12FF, 0xFF00})
	if g16.Level(0) != 0x12 || g16.Level(1) != 0xFF {
		t.Errorf("16-bit levels = %x %x", g16.Level(0), g16.Level(1))
	}
}

func TestRotateComposition(t *testing.T) {
	for _, size := range []image.Point{{1, 1}, {3, 2}, {2, 5}, {4, 4}} {
		g := seq16(size.X, size.Y)
		r90 := g.Rotate(orient.Rotate90)
		if !r90.Rotate(orient.Rotate90).Equal(g.Rotate(orient.Rotate180)) {
			t.Errorf("%v: Rotate90 twice != Rotate180", size)
		}
		if !r90.Rotate(orient.Rotate270).Equal(g) {
			t.Errorf("%v: Rotate90 then Rotate270 != identity", size)
		}
		r := g
		for range 4 {
			r = r.Rotate(orient.Rotate90)
		}
		if !r.Equal(g) {
			t.Errorf("%v: four Rotate90 != identity", size)
		}
		for _, f := range []orient.Factor{orient.MirrorVertical, orient.MirrorHorizontal, orient.Transpose, orient.Transverse, orient.Rotate180} {
			if !g.Rotate(f).Rotate(f).Equal(g) {
				t.Errorf("%v: %v is not an involution", size, f)
			}
		}
		if !r90.Rotate(orient.MirrorVertical).Equal(g.Rotate(orient.Rotate90Mirror)) {
			t.Errorf("%v: Rotate90Mirror != MirrorVertical after Rotate90", size)
		}
		if !g.Rotate(orient.Rotate270).Rotate(orient.MirrorVertical).Equal(g.Rotate(orient.Rotate270Mirror)) {
			t.Errorf("%v: Rotate270Mirror != MirrorVertical after Rotate270", size)
		}
		if !g.Rotate(orient.Identity).Equal(g) {
			t.Errorf("%v: identity changed the grid", size)
		}
	}
}

func TestRotate90Literal(t *testing.T) {
	// 0 1 2      3 0
	// 3 4 5  =>  4 1
	//            5 2
	g := seq8(3, 2)
	got := g.Rotate(orient.Rotate90)
	want := MustFromSamples(2, 3, []uint8{3, 0, 4, 1, 5, 2})
	if !got.Equal(want) {
		t.Errorf("Rotate90 = %v, want %v", got.Samples(), want.Samples())
	}
	if g.Width() != 3 || g.Samples()[1] != 1 {
		t.Error("Rotate mutated its source")
	}
}

func TestResize(t *testing.T) {
	g := seq8(4, 3)
	same := g.Resize(4, 3)
	if same == g || !same.Equal(g) {
		t.Error("same size Resize must return an equal clone")
	}
	for k := 1; k <= 4; k++ {
		up := g.Resize(4*k, 3*k)
		if up.Width() != 4*k || up.Height() != 3*k {
			t.Fatalf("Resize up by %d = %dx%d", k, up.Width(), up.Height())
		}
		if down := up.Resize(4, 3); !down.Equal(g) {
			t.Errorf("Resize up then down by %d = %v, want %v", k, down.Samples(), g.Samples())
		}
	}
	down := seq8(4, 4).Resize(2, 2)
	if want := []uint8{0, 2, 8, 10}; !slices.Equal(down.Samples(), want) {
		t.Errorf("Resize(4x4 -> 2x2) = %v, want %v", down.Samples(), want)
	}
	up := MustFromSamples(2, 1, []uint8{1, 2}).Resize(5, 2)
	if want := []uint8{1, 1, 1, 2, 2, 1, 1, 1, 2, 2}; !slices.Equal(up.Samples(), want) {
		t.Errorf("Resize(2x1 -> 5x2) = %v, want %v", up.Samples(), want)
	}
	// Independent axes.
	wide := seq8(4, 2).Resize(2, 4)
	if want := []uint8{0, 2, 0, 2, 4, 6, 4, 6}; !slices.Equal(wide.Samples(), want) {
		t.Errorf("Resize(4x2 -> 2x4) = %v, want %v", wide.Samples(), want)
	}
}

func TestNormalize(t *testing.T) {
	g := MustFromSamples(4, 1, []uint8{0, 50, 100, 200})
	n := g.Normalized(100)
	if want := []uint8{0, 127, 255, 255}; !slices.Equal(n.Samples(), want) {
		t.Errorf("Normalized(100) = %v, want %v", n.Samples(), want)
	}
	if g.Samples()[3] != 200 {
		t.Error("Normalized mutated its source")
	}
	g.Normalize(0)
	for _, v := range g.Samples() {
		if v != 255 {
			t.Fatalf("Normalize(0) left %d", v)
		}
	}
	g16 := MustFromSamples(2, 1, []uint16{1000, 4000})
	g16.Normalize(4000)
	if want := []uint16{16383, 65535}; !slices.Equal(g16.Samples(), want) {
		t.Errorf("16-bit Normalize = %v, want %v", g16.Samples(), want)
	}
}

func TestRegion(t *testing.T) {
	g := seq8(4, 3)
	r := g.Region(image.Rect(1, 1, 3, 3))
	if want := []uint8{5, 6, 9, 10}; r.Width() != 2 || r.Height() != 2 || !slices.Equal(r.Samples(), want) {
		t.Errorf("Region = %dx%d %v, want 2x2 %v", r.Width(), r.Height(), r.Samples(), want)
	}
	r.Set(0, 0, 99)
	if v, _ := g.Get(1, 1); v != 5 {
		t.Error("Region aliases its source")
	}
	if full := g.Region(image.Rect(0, 0, 4, 3)); !full.Equal(g) {
		t.Error("full Region != source")
	}
}

func TestImageAdapters(t *testing.T) {
	g16 := seq16(3, 2)
	img := g16.Image()
	if _, ok := img.(*image.Gray16); !ok || !Wide(img) {
		t.Fatalf("Image() of 16-bit grid = %T", img)
	}
	if back := FromImage16(img); !back.Equal(g16) {
		t.Errorf("16-bit image roundtrip = %v, want %v", back.Samples(), g16.Samples())
	}
	g8 := seq8(3, 2)
	img8 := g8.Image()
	if Wide(img8) {
		t.Error("Wide(*image.Gray) = true")
	}
	if back := FromImage8(img8); !back.Equal(g8) {
		t.Errorf("8-bit image roundtrip = %v", back.Samples())
	}
	sub := img8.(*image.Gray).SubImage(image.Rect(1, 0, 3, 2))
	if got := FromImage8(sub).Samples(); !slices.Equal(got, []uint8{1, 2, 4, 5}) {
		t.Errorf("FromImage8(sub image) = %v", got)
	}
	rgba := image.NewRGBA(image.Rect(0, 0, 1, 1))
	rgba.Set(0, 0, color.White)
	if got := FromImage16(rgba).Samples()[0]; got != 0xFFFF {
		t.Errorf("FromImage16(white) = %#x", got)
	}
}

func TestFromRaw(t *testing.T) {
	data := unpack.Pack12([]uint16{0x321, 0x654, 0xFFF})
	g, err := FromRaw(data, 3, 1, unpack.Raw12)
	if err != nil {
		t.Fatal(err)
	}
	if want := []uint16{0x3210, 0x6540, 0xFFF0}; !slices.Equal(g.Samples(), want) {
		t.Errorf("FromRaw raw12 = %#x, want %#x", g.Samples(), want)
	}
	if _, err := FromRaw(data, 4, 4, unpack.Raw12); !errors.Is(err, ErrSampleCount) {
		t.Errorf("short frame error = %v", err)
	}
	g, err = FromRaw([]byte{0x01, 0x02}, 1, 1, unpack.Raw16BE)
	if err != nil || g.Samples()[0] != 0x0102 {
		t.Errorf("FromRaw raw16be = %v, %v", g, err)
	}
}
