package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/cwbudde/room-raider/internal/tool"
	"github.com/cwbudde/room-raider/version"
)

func main() {
	ctx := context.Background()

	appl := &cli.Command{
		Name:    version.Name(),
		Usage:   "Generate measurement sweeps and recover room impulse responses",
		Version: version.Version() + " " + version.Commit(),
		Flags:   flags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			setupLogging(cmd.Bool("debug"))

			cfg, err := configFromFlags(cmd)
			if err != nil {
				return err
			}

			slog.DebugContext(ctx, "roomraider", "mode", cfg.Mode.String(), "rate", cfg.SampleRate, "out", cfg.OutFile)

			return tool.Run(ctx, cfg)
		},
	}

	if err := appl.Run(ctx, os.Args); err != nil {
		slog.Error("failed to run", "error", err)
		os.Exit(1)
	}
}

func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
