// Package render implements the falsecolor commands: batch rendering of
// intensity pictures, watching folders for new ones, and colour table
// export.
package render

import (
	"cmp"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"

	"falsecolor/canvas"
	"falsecolor/colormap"
	"falsecolor/intensity"
	"falsecolor/orient"
	"falsecolor/overlay"
	"falsecolor/unpack"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/vp8l"
	_ "golang.org/x/image/webp"
)

// Options is a fully resolved rendering pipeline. It is shared read-only
// between jobs.
type Options struct {
	Table    *colormap.Table
	Strategy canvas.Strategy
	Rotate   orient.Factor
	// Width and Height resize the rotated grid. 0 keeps that dimension.
	Width, Height int
	// Normalize is the level mapped to full scale. 0 disables it.
	Normalize int
	Overlays  overlay.List
	// Scale enlarges the coloured picture by an integer factor.
	Scale  int
	Smooth bool
	Format string

	// Raw frames are read instead of decoded pictures when RawWidth is set.
	Raw                 unpack.Format
	RawWidth, RawHeight int
}

// Frame runs g through the pipeline. g is not modified.
func Frame[T intensity.Sample](g *intensity.Grid[T], o *Options) *canvas.Buffer {
	src := g
	if o.Rotate != orient.Identity {
		g = g.Rotate(o.Rotate)
	}
	if o.Width > 0 || o.Height > 0 {
		g = g.Resize(cmp.Or(o.Width, g.Width()), cmp.Or(o.Height, g.Height()))
	}
	if o.Normalize > 0 {
		ref := T(min(uint64(o.Normalize), uint64(g.MaxValue())))
		if g == src {
			g = g.Normalized(ref)
		} else {
			g.Normalize(ref)
		}
	}

	b := canvas.FromGrid(g, o.Table, canvas.WithStrategy(o.Strategy))
	o.Overlays.Draw(b)
	return b
}

// Picture renders a decoded picture. Pictures with 16-bit samples keep
// their full precision up to the colour lookup.
func (o *Options) Picture(img image.Image) *canvas.Buffer {
	if intensity.Wide(img) {
		return Frame(intensity.FromImage16(img), o)
	}
	return Frame(intensity.FromImage8(img), o)
}

// RawFrame renders a raw sensor frame.
func (o *Options) RawFrame(data []byte) (*canvas.Buffer, error) {
	g, err := intensity.FromRaw(data, o.RawWidth, o.RawHeight, o.Raw)
	if err != nil {
		return nil, err
	}
	return Frame(g, o), nil
}

// Scaled returns b enlarged by the scale factor, or b itself.
func (o *Options) Scaled(b *canvas.Buffer) image.Image {
	if o.Scale <= 1 {
		return b.RGBA()
	}
	dst := image.NewRGBA(image.Rect(0, 0, b.Width()*o.Scale, b.Height()*o.Scale))
	var scaler draw.Scaler = draw.NearestNeighbor
	if o.Smooth {
		scaler = draw.CatmullRom
	}
	scaler.Scale(dst, dst.Bounds(), b, b.Bounds(), draw.Src, nil)
	return dst
}

// File renders the picture or raw frame at path. It returns the picture
// to save and the source type.
func (o *Options) File(logger *slog.Logger, path string) (image.Image, string, error) {
	var b *canvas.Buffer
	var srcType string
	if o.RawWidth > 0 {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, "", fmt.Errorf("could not read raw frame: %w", err)
		}
		if b, err = o.RawFrame(data); err != nil {
			return nil, "", fmt.Errorf("could not decode raw frame: %w", err)
		}
		srcType = "raw"
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, "", fmt.Errorf("could not open image: %w", err)
		}
		defer f.Close()

		img, imgType, err := image.Decode(f)
		if err != nil {
			return nil, "", fmt.Errorf("could not decode image: %w", err)
		}
		b = o.Picture(img)
		srcType = imgType
	}

	logger.Debug("rendered", "type", srcType, "width", b.Width(), "height", b.Height(),
		"strategy", o.Strategy)
	return o.Scaled(b), srcType, nil
}

// Strip renders t as a 256 pixel wide horizontal gradient.
func Strip(t *colormap.Table, height int, s canvas.Strategy) *canvas.Buffer {
	g := intensity.NewFunc(colormap.Size, height, func(x, _ int) uint8 { return uint8(x) })
	return canvas.FromGrid(g, t, canvas.WithStrategy(s))
}
