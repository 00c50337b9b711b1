package main

import (
	"log/slog"
	"os"

	"falsecolor/config"
	"falsecolor/parallel"
	"falsecolor/render"

	"github.com/alecthomas/kong"
)

var cli struct {
	LogLevel string `help:"Log level" enum:"debug,info,warn,error" default:"info"`
	Config   string `help:"Configuration file (TOML). A missing file leaves the defaults." default:"falsecolor.toml"`
	Workers  int    `help:"Number of parallel workers, 0 for one per CPU" default:"0"`

	Render render.CLICmd   `cmd:"" help:"Render a folder of intensity pictures in false colour"`
	Watch  render.WatchCmd `cmd:"" help:"Render pictures as they appear in watched folders"`
	Table  render.TableCmd `cmd:"" help:"List or export colour tables"`
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("falsecolor"),
		kong.Description("Colour mapping for single channel sensor pictures."),
		kong.UsageOnError(),
	)

	var level slog.Level
	if err := level.UnmarshalText([]byte(cli.LogLevel)); err != nil {
		kctx.FatalIfErrorf(err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := config.LoadConfig(cli.Config)
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	pool := parallel.Start(cli.Workers)
	err = kctx.Run(cfg, pool)
	pool.Close()
	kctx.FatalIfErrorf(err)
}
