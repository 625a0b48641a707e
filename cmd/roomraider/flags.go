package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/cwbudde/room-raider/dsp/conv"
	"github.com/cwbudde/room-raider/dsp/core"
	"github.com/cwbudde/room-raider/dsp/oversample"
	"github.com/cwbudde/room-raider/internal/config"
)

var errModeConflict = fmt.Errorf("%w: --sweep and --deconvolve are mutually exclusive", core.ErrInvalidValue)

func flags() []cli.Flag {
	def := config.Default()

	modeNames := make([]string, 0, len(oversample.Modes()))
	for _, m := range oversample.Modes() {
		modeNames = append(modeNames, m.String())
	}

	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "sweep",
			Aliases: []string{"s"},
			Usage:   "generate a sweep into --out-file",
		},
		&cli.BoolFlag{
			Name:    "deconvolve",
			Aliases: []string{"d"},
			Usage:   "recover the impulse response of --in-file against --reference",
		},
		&cli.FloatFlag{
			Name:    "start-freq",
			Aliases: []string{"sf"},
			Usage:   "sweep start frequency in Hz",
			Value:   def.StartFreq,
		},
		&cli.FloatFlag{
			Name:    "end-freq",
			Aliases: []string{"ef"},
			Usage:   "sweep end frequency in Hz",
			Value:   def.EndFreq,
		},
		&cli.FloatFlag{
			Name:    "gain",
			Aliases: []string{"g"},
			Usage:   "sweep gain in dB, capped at 0 dBFS",
			Value:   def.Gain,
		},
		&cli.FloatFlag{
			Name:    "sweep-length",
			Aliases: []string{"sl"},
			Usage:   "sweep length in milliseconds",
			Value:   millis(def.SweepLength),
		},
		&cli.FloatFlag{
			Name:    "chirp-delay",
			Aliases: []string{"cd"},
			Usage:   "silence before the sweep in milliseconds",
			Value:   millis(def.ChirpDelay),
		},
		&cli.FloatFlag{
			Name:  "fade",
			Usage: "fade-in and fade-out length of the sweep in milliseconds",
		},
		&cli.StringFlag{
			Name:    "in-file",
			Aliases: []string{"i"},
			Usage:   "captured recording (WAV)",
		},
		&cli.StringFlag{
			Name:    "out-file",
			Aliases: []string{"o"},
			Usage:   "output file (WAV)",
		},
		&cli.StringFlag{
			Name:    "reference",
			Aliases: []string{"r"},
			Usage:   "reference sweep (mono WAV)",
		},
		&cli.IntFlag{
			Name:    "srate",
			Aliases: []string{"sr"},
			Usage:   "processing sample rate in Hz",
			Value:   def.SampleRate,
		},
		&cli.FloatFlag{
			Name:  "ir-length",
			Usage: "impulse response length in milliseconds (0 keeps the full causal response)",
		},
		&cli.StringFlag{
			Name:  "engine",
			Usage: "convolution engine (" + strings.Join(conv.Names(), ", ") + ")",
			Value: def.Engine,
		},
		&cli.StringFlag{
			Name:  "oversampling",
			Usage: "sweep oversampling mode (" + strings.Join(modeNames, ", ") + ")",
			Value: def.Oversampling,
		},
		&cli.IntFlag{
			Name:  "workers",
			Usage: "channels deconvolved concurrently",
			Value: def.Workers,
		},
		&cli.IntFlag{
			Name:  "bit-depth",
			Usage: "output sample width in bits (8, 16, 24)",
			Value: def.BitDepth,
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "enable debug logging",
		},
	}
}

func configFromFlags(cmd *cli.Command) (config.Config, error) {
	cfg := config.Default()

	sweep, deconvolve := cmd.Bool("sweep"), cmd.Bool("deconvolve")

	switch {
	case sweep && deconvolve:
		return cfg, errModeConflict
	case sweep:
		cfg.Mode = config.ModeSweep
	case deconvolve:
		cfg.Mode = config.ModeDeconvolve
	}

	if cmd.NArg() > 0 {
		return cfg, fmt.Errorf("%w: unexpected arguments %v", core.ErrInvalidValue, cmd.Args().Slice())
	}

	cfg.SampleRate = cmd.Int("srate")
	cfg.StartFreq = cmd.Float("start-freq")
	cfg.EndFreq = cmd.Float("end-freq")
	cfg.Gain = cmd.Float("gain")
	cfg.SweepLength = core.MillisToDuration(cmd.Float("sweep-length"))
	cfg.ChirpDelay = core.MillisToDuration(cmd.Float("chirp-delay"))
	cfg.Fade = core.MillisToDuration(cmd.Float("fade"))
	cfg.InFile = cmd.String("in-file")
	cfg.OutFile = cmd.String("out-file")
	cfg.Reference = cmd.String("reference")
	cfg.IRLength = core.MillisToDuration(cmd.Float("ir-length"))
	cfg.Engine = cmd.String("engine")
	cfg.Oversampling = cmd.String("oversampling")
	cfg.Workers = cmd.Int("workers")
	cfg.BitDepth = cmd.Int("bit-depth")

	return cfg, nil
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
