package overlay

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
)

var ErrUnknownKind = errors.New("unknown overlay kind")

// Spec is the TOML form of a single overlay:
//
//	[[overlay]]
//	kind = "box"
//	colour = "#ff0000"
//	thick = true
//	points = [[10, 10], [40, 30]]
//
// Which fields are read depends on kind. Box corners are inclusive.
type Spec struct {
	Kind   string   `toml:"kind"`
	Colour string   `toml:"colour"`
	Thick  bool     `toml:"thick"`
	Points [][2]int `toml:"points"`
	Center [2]int   `toml:"center"`
	Radius int      `toml:"radius"`
	Size   int      `toml:"size"`
	X      int      `toml:"x"`
	Y      int      `toml:"y"`
}

func pt(p [2]int) image.Point {
	return image.Pt(p[0], p[1])
}

func (s Spec) points() []image.Point {
	pts := make([]image.Point, len(s.Points))
	for i, p := range s.Points {
		pts[i] = pt(p)
	}
	return pts
}

func (s Spec) needPoints(n int) error {
	if len(s.Points) != n {
		return fmt.Errorf("%s needs %d points, got %d", s.Kind, n, len(s.Points))
	}
	return nil
}

// Overlay builds the shape described by s.
func (s Spec) Overlay() (Overlay, error) {
	st := Style{Colour: color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}, Thick: s.Thick}
	if s.Colour != "" {
		c, err := ParseColour(s.Colour)
		if err != nil {
			return nil, err
		}
		st.Colour = c
	}

	switch strings.ToLower(s.Kind) {
	case "line":
		if err := s.needPoints(2); err != nil {
			return nil, err
		}
		return Line{Style: st, From: pt(s.Points[0]), To: pt(s.Points[1])}, nil
	case "hline":
		return HLine{Style: st, Y: s.Y}, nil
	case "vline":
		return VLine{Style: st, X: s.X}, nil
	case "box":
		if err := s.needPoints(2); err != nil {
			return nil, err
		}
		r := image.Rectangle{pt(s.Points[0]), pt(s.Points[1])}.Canon()
		r.Max = r.Max.Add(image.Pt(1, 1))
		return Box{Style: st, Rect: r}, nil
	case "cross":
		return Cross{Style: st, Center: pt(s.Center), Size: s.Size}, nil
	case "circle":
		return Circle{Style: st, Center: pt(s.Center), Radius: s.Radius}, nil
	case "polyline":
		return Polyline{Style: st, Points: s.points()}, nil
	case "polygon":
		return Polygon{Style: st, Points: s.points()}, nil
	case "points":
		return Points{Style: st, Points: s.points()}, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownKind, s.Kind)
}

// Build converts specs into a List, stopping at the first invalid one.
func Build(specs []Spec) (List, error) {
	l := make(List, 0, len(specs))
	for i, s := range specs {
		o, err := s.Overlay()
		if err != nil {
			return nil, fmt.Errorf("overlay %d: %w", i, err)
		}
		l = append(l, o)
	}
	return l, nil
}

type document struct {
	Overlay []Spec `toml:"overlay"`
}

// Decode reads the [[overlay]] tables of a TOML document.
func Decode(r io.Reader) (List, error) {
	specs, err := DecodeSpecs(r)
	if err != nil {
		return nil, err
	}
	return Build(specs)
}

func DecodeSpecs(r io.Reader) ([]Spec, error) {
	var doc document
	if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("could not decode overlays: %w", err)
	}
	return doc.Overlay, nil
}

func Load(path string) (List, error) {
	specs, err := LoadSpecs(path)
	if err != nil {
		return nil, err
	}
	return Build(specs)
}

func LoadSpecs(path string) ([]Spec, error) {
	var doc document
	if _, err := toml.DecodeFile(path, &doc); err != nil {
		return nil, fmt.Errorf("could not read overlays %q: %w", path, err)
	}
	return doc.Overlay, nil
}

// ParseColour reads #RGB, #RGBA, #RRGGBB or #RRGGBBAA.
func ParseColour(s string) (color.RGBA, error) {
	var c color.RGBA
	var n int
	var err error
	switch len(s) {
	case 4:
		n, err = fmt.Sscanf(s, "#%1x%1x%1x", &c.R, &c.G, &c.B)
		c.R |= c.R << 4
		c.G |= c.G << 4
		c.B |= c.B << 4
		c.A = 0xFF
	case 5:
		n, err = fmt.Sscanf(s, "#%1x%1x%1x%1x", &c.R, &c.G, &c.B, &c.A)
		c.R |= c.R << 4
		c.G |= c.G << 4
		c.B |= c.B << 4
		c.A |= c.A << 4
	case 7:
		n, err = fmt.Sscanf(s, "#%2x%2x%2x", &c.R, &c.G, &c.B)
		c.A = 0xFF
	case 9:
		n, err = fmt.Sscanf(s, "#%2x%2x%2x%2x", &c.R, &c.G, &c.B, &c.A)
	default:
		return c, fmt.Errorf("invalid colour %q, should be #RGB, #RGBA, #RRGGBB or #RRGGBBAA", s)
	}
	if err != nil {
		return color.RGBA{}, fmt.Errorf("could not read colour %q: %w", s, err)
	} else if n < 3 {
		return color.RGBA{}, fmt.Errorf("insufficient colour fields in %q: %d", s, n)
	}
	return c, nil
}
