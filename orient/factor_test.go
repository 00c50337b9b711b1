package orient

import (
	"errors"
	"image"
	"testing"
)

func TestMapIsBijection(t *testing.T) {
	const w, h = 5, 3
	for _, f := range Factors() {
		dw, dh := f.Size(w, h)
		seen := make(map[image.Point]bool)
		for y := range dh {
			for x := range dw {
				sx, sy := f.Map(x, y, w, h)
				p := image.Pt(sx, sy)
				if !p.In(image.Rect(0, 0, w, h)) {
					t.Fatalf("%v: (%d,%d) maps outside source to %v", f, x, y, p)
				}
				if seen[p] {
					t.Fatalf("%v: source %v read twice", f, p)
				}
				seen[p] = true
			}
		}
		if len(seen) != w*h {
			t.Errorf("%v: read %d source pixels, want %d", f, len(seen), w*h)
		}
	}
}

func TestCorners(t *testing.T) {
	const w, h = 4, 2
	tests := []struct {
		f    Factor
		want image.Point // source of destination (0, 0)
	}{
		{Identity, image.Pt(0, 0)},
		{Rotate90, image.Pt(0, h-1)},
		{Rotate180, image.Pt(w-1, h-1)},
		{Rotate270, image.Pt(w-1, 0)},
		{MirrorVertical, image.Pt(w-1, 0)},
		{MirrorHorizontal, image.Pt(0, h-1)},
		{Rotate90Mirror, image.Pt(0, 0)},
		{Rotate270Mirror, image.Pt(w-1, h-1)},
	}
	for _, test := range tests {
		if x, y := test.f.Map(0, 0, w, h); image.Pt(x, y) != test.want {
			t.Errorf("%v.Map(0, 0) = (%d,%d), want %v", test.f, x, y, test.want)
		}
	}
}

func TestSize(t *testing.T) {
	for _, f := range Factors() {
		w, h := f.Size(7, 3)
		if f.Swaps() && (w != 3 || h != 7) {
			t.Errorf("%v.Size(7, 3) = %d, %d, want 3, 7", f, w, h)
		}
		if !f.Swaps() && (w != 7 || h != 3) {
			t.Errorf("%v.Size(7, 3) = %d, %d, want 7, 3", f, w, h)
		}
	}
}

func TestParse(t *testing.T) {
	for _, f := range Factors() {
		got, err := ParseFactor(f.String())
		if err != nil || got != f {
			t.Errorf("ParseFactor(%q) = %v, %v", f.String(), got, err)
		}
		text, err := f.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var back Factor
		if err := back.UnmarshalText(text); err != nil || back != f {
			t.Errorf("text roundtrip of %v = %v, %v", f, back, err)
		}
	}
	aliases := map[string]Factor{
		"none":       Identity,
		"FlipX":      MirrorVertical,
		"flipy":      MirrorHorizontal,
		"transpose":  Rotate90Mirror,
		"transverse": Rotate270Mirror,
		" ccw90 ":    Rotate270,
	}
	for s, want := range aliases {
		if got, err := ParseFactor(s); err != nil || got != want {
			t.Errorf("ParseFactor(%q) = %v, %v, want %v", s, got, err, want)
		}
	}
	if _, err := ParseFactor("rotate45"); !errors.Is(err, ErrUnknownFactor) {
		t.Errorf("ParseFactor(rotate45) error = %v", err)
	}
	if _, err := Factor(9).MarshalText(); !errors.Is(err, ErrUnknownFactor) {
		t.Errorf("Factor(9).MarshalText error = %v", err)
	}
}

func TestFromEXIF(t *testing.T) {
	seen := make(map[Factor]bool)
	for tag := 1; tag <= 8; tag++ {
		f, ok := FromEXIF(tag)
		if !ok {
			t.Fatalf("FromEXIF(%d) not ok", tag)
		}
		seen[f] = true
	}
	if len(seen) != 8 {
		t.Errorf("EXIF tags map to %d distinct factors, want 8", len(seen))
	}
	if _, ok := FromEXIF(0); ok {
		t.Error("FromEXIF(0) ok")
	}
}
