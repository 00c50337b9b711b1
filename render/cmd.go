package render

import (
	"cmp"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync/atomic"

	"falsecolor/canvas"
	"falsecolor/config"
	"falsecolor/orient"
	"falsecolor/overlay"
	"falsecolor/parallel"
	"falsecolor/unpack"

	"github.com/alecthomas/kong"
)

// Params are the rendering flags shared by the render and watch commands.
// Unset flags fall back to the [render] section of the config file.
type Params struct {
	Dest        string `help:"Destination folder for rendered pictures. Relative to the source folder if not absolute." default:"rendered"`
	Table       string `help:"Colour table: a built-in name or one defined in the config file" group:"colour"`
	Strategy    string `help:"Pixel write strategy (indexed, byte, word)" group:"colour"`
	Normalize   int    `help:"Intensity level mapped to full scale" group:"colour"`
	Rotate      string `help:"Rotation factor applied before rendering (rotate90, flipx, transpose, ...)" group:"geometry"`
	Orientation int    `help:"EXIF orientation (1-8) of the sources, overrides --rotate" group:"geometry"`
	Width       int    `help:"Output width before scaling" group:"geometry"`
	Height      int    `help:"Output height before scaling" group:"geometry"`
	Scale       int    `help:"Integer scale factor applied after rendering" group:"geometry"`
	Smooth      bool   `help:"Scale with Catmull-Rom instead of nearest neighbour" default:"false" group:"geometry"`
	Overlays    string `help:"TOML file with [[overlay]] tables drawn on every picture" group:"overlay"`
	Thick       bool   `help:"Draw overlays with thick strokes" default:"false" group:"overlay"`
	Raw         string `help:"Read sources as raw frames of this sample format (raw8, raw12, raw16le, raw16be)" group:"raw"`
	RawWidth    int    `help:"Raw frame width" group:"raw"`
	RawHeight   int    `help:"Raw frame height" group:"raw"`
	Format      string `help:"Output format (same, png, bmp, tiff, gif, jpeg). 'same' keeps the source format when it can be written."`
	NoClobber   bool   `help:"Skip sources whose destination already exists" default:"false"`
}

func (p *Params) validate() error {
	switch {
	case p.Width < 0:
		return fmt.Errorf("invalid width: %d", p.Width)
	case p.Height < 0:
		return fmt.Errorf("invalid height: %d", p.Height)
	case p.Normalize < 0:
		return fmt.Errorf("invalid normalize level: %d", p.Normalize)
	case p.Scale < 0:
		return fmt.Errorf("invalid scale: %d", p.Scale)
	}
	if p.Strategy != "" {
		if _, err := canvas.ParseStrategy(p.Strategy); err != nil {
			return err
		}
	}
	if p.Rotate != "" {
		if _, err := orient.ParseFactor(p.Rotate); err != nil {
			return err
		}
	}
	if p.Orientation != 0 {
		if _, ok := orient.FromEXIF(p.Orientation); !ok {
			return fmt.Errorf("invalid EXIF orientation: %d", p.Orientation)
		}
	}
	if p.Raw != "" {
		if _, err := unpack.ParseFormat(p.Raw); err != nil {
			return err
		}
		if p.RawWidth <= 0 || p.RawHeight <= 0 {
			return fmt.Errorf("raw frames need --raw-width and --raw-height")
		}
	}
	if !validFormat(p.Format) {
		return fmt.Errorf("unsupported output format: %s", p.Format)
	}
	return nil
}

// options merges the flags over cfg.
func (p *Params) options(cfg *config.Config) (*Options, error) {
	r := cfg.Render
	t, err := cfg.Table(cmp.Or(p.Table, r.Table))
	if err != nil {
		return nil, err
	}

	o := &Options{
		Table:     t,
		Strategy:  r.Strategy,
		Rotate:    r.Rotate,
		Width:     cmp.Or(p.Width, r.Width),
		Height:    cmp.Or(p.Height, r.Height),
		Normalize: cmp.Or(p.Normalize, r.Normalize),
		Scale:     cmp.Or(p.Scale, r.Scale),
		Smooth:    p.Smooth,
		Format:    cmp.Or(p.Format, r.Format),
		RawWidth:  p.RawWidth,
		RawHeight: p.RawHeight,
	}
	if p.Strategy != "" {
		o.Strategy, _ = canvas.ParseStrategy(p.Strategy)
	}
	if p.Rotate != "" {
		o.Rotate, _ = orient.ParseFactor(p.Rotate)
	}
	if p.Orientation != 0 {
		o.Rotate, _ = orient.FromEXIF(p.Orientation)
	}
	if p.Raw != "" {
		o.Raw, _ = unpack.ParseFormat(p.Raw)
	} else {
		o.RawWidth, o.RawHeight = 0, 0
	}

	merged := *cfg
	merged.Render.Thick = p.Thick || r.Thick
	if p.Overlays != "" {
		specs, err := overlay.LoadSpecs(p.Overlays)
		if err != nil {
			return nil, err
		}
		merged.Overlay = append(slices.Clip(cfg.Overlay), specs...)
	}
	if o.Overlays, err = merged.Overlays(); err != nil {
		return nil, err
	}
	return o, nil
}

// job renders one source into destDir, logging any failure.
func (p *Params) job(o *Options, logger *slog.Logger, srcPath, destDir string) error {
	outType := outputType(o.Format, typeFromExt(srcPath))
	name := destName(filepath.Base(srcPath), outType)
	if p.NoClobber {
		if err := checkDest(filepath.Join(destDir, name)); err != nil {
			logger.Info("skipping", "reason", err)
			return nil
		}
	}

	img, srcType, err := o.File(logger, srcPath)
	if err != nil {
		logger.Error("could not render image", "error", err)
		return err
	}
	if t := outputType(o.Format, srcType); t != outType {
		outType, name = t, destName(filepath.Base(srcPath), t)
	}

	if err := save(img, outType, destDir, name); err != nil {
		logger.Error("could not save image", "dir", destDir, "error", err)
		return err
	}
	logger.Info("saved", "dest", filepath.Join(destDir, name))
	return nil
}

type CLICmd struct {
	Scan string `help:"Source folder to scan" default:"."`
	Params
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	scanDir, err := filepath.Abs(c.Scan)
	var info os.FileInfo
	if err == nil {
		if info, err = os.Stat(scanDir); err == nil && !info.IsDir() {
			err = fmt.Errorf("not a directory")
		}
	}
	if err != nil {
		return fmt.Errorf("invalid scan path %q: %w", c.Scan, err)
	}
	c.Scan = scanDir

	if !filepath.IsAbs(c.Dest) {
		c.Dest = filepath.Join(scanDir, c.Dest)
	}

	return c.validate()
}

func (c *CLICmd) Run(cfg *config.Config, pool *parallel.Pool) error {
	opts, err := c.options(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(c.Dest, 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", c.Dest, err)
	}

	files, err := os.ReadDir(c.Scan)
	if err != nil {
		return fmt.Errorf("unable to read folder %q: %w", c.Scan, err)
	}

	var processedCount, errCount atomic.Uint64
	for _, file := range files {
		if file.IsDir() {
			continue
		}

		filePath := filepath.Join(c.Scan, file.Name())
		pool.Go(func() {
			logger := slog.Default().With("file", filePath)
			if err := c.job(opts, logger, filePath, c.Dest); err != nil {
				errCount.Add(1)
				return
			}
			processedCount.Add(1)
		})
	}

	pool.Wait()

	processed := processedCount.Load()
	errors := errCount.Load()
	slog.Info("stats", "processed", processed, "errors", errors,
		"total", processed+errors)

	if errors > 0 {
		return fmt.Errorf("error processing %d files", errors)
	}
	return nil
}
