package render

import (
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"

	"falsecolor/canvas"
	"falsecolor/colormap"
	"falsecolor/config"
	"falsecolor/palette"

	"github.com/alecthomas/kong"
)

type TableCmd struct {
	Name   string `arg:"" optional:"" help:"Table to export. Lists the available tables when omitted."`
	Pal    string `help:"Write the table as a RIFF PAL file" type:"path"`
	Strip  string `help:"Write the table as a PNG colour strip" type:"path"`
	Height int    `help:"Height of the colour strip" default:"16"`
	Hex    bool   `help:"Print the 256 entries as hex colours" default:"false"`
}

func (c *TableCmd) Validate(kctx *kong.Context) error {
	if c.Height < 1 {
		return fmt.Errorf("invalid strip height: %d", c.Height)
	}
	if c.Name == "" && (c.Pal != "" || c.Strip != "" || c.Hex) {
		return fmt.Errorf("exporting needs a table name")
	}
	return nil
}

func (c *TableCmd) Run(cfg *config.Config) error {
	return c.run(cfg, os.Stdout)
}

func (c *TableCmd) run(cfg *config.Config, out io.Writer) error {
	if c.Name == "" {
		for _, name := range tableNames(cfg) {
			fmt.Fprintln(out, name)
		}
		return nil
	}

	t, err := cfg.Table(c.Name)
	if err != nil {
		return err
	}

	if c.Hex {
		for i, e := range t.Entries() {
			fmt.Fprintf(out, "%3d #%s\n", i, e.Hex())
		}
	}

	if c.Pal != "" {
		if err := writeFile(c.Pal, func(w io.Writer) error {
			_, err := palette.WriteTable(w, t)
			return err
		}); err != nil {
			return err
		}
		slog.Info("exported palette", "table", c.Name, "file", c.Pal)
	}

	if c.Strip != "" {
		b := Strip(t, c.Height, canvas.WordPointer)
		if err := writeFile(c.Strip, func(w io.Writer) error {
			return encode(w, b.RGBA(), "png")
		}); err != nil {
			return err
		}
		slog.Info("exported strip", "table", c.Name, "file", c.Strip)
	}
	return nil
}

// tableNames lists the built-in and configured tables, sorted.
func tableNames(cfg *config.Config) []string {
	names := colormap.Names()
	for name := range maps.Keys(cfg.Tables) {
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create %q: %w", path, err)
	}
	defer func() {
		if defErr := f.Close(); defErr != nil && err == nil {
			err = fmt.Errorf("could not close %q: %w", path, defErr)
		}
	}()

	if err := write(f); err != nil {
		return fmt.Errorf("could not write %q: %w", path, err)
	}
	return nil
}
