// Package tool runs the sweep generation and deconvolution jobs described
// by a config.Config against files on disk.
package tool

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cwbudde/room-raider/dsp/buffer"
	"github.com/cwbudde/room-raider/dsp/conv"
	"github.com/cwbudde/room-raider/dsp/core"
	"github.com/cwbudde/room-raider/dsp/oversample"
	"github.com/cwbudde/room-raider/dsp/resample"
	"github.com/cwbudde/room-raider/internal/audiofile"
	"github.com/cwbudde/room-raider/internal/config"
	"github.com/cwbudde/room-raider/measure/deconv"
	"github.com/cwbudde/room-raider/measure/ir"
	"github.com/cwbudde/room-raider/measure/sweep"
)

// Run validates cfg and dispatches to the job its mode selects.
func Run(ctx context.Context, cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	switch cfg.Mode {
	case config.ModeSweep:
		return GenerateSweep(ctx, cfg)
	case config.ModeDeconvolve:
		return Deconvolve(ctx, cfg)
	default:
		return config.ErrNoMode
	}
}

// SweepParams maps the sweep settings of cfg onto synthesizer parameters.
func SweepParams(cfg config.Config) sweep.Params {
	return sweep.Params{
		SampleRate: cfg.SampleRate,
		StartFreq:  cfg.StartFreq,
		EndFreq:    cfg.EndFreq,
		GainDB:     cfg.Gain,
		Length:     cfg.SweepLength,
		Fade:       cfg.Fade,
	}
}

// BuildSweep synthesizes the sweep of cfg preceded by the chirp delay and
// followed by a silent margin as long as the sweep itself.
func BuildSweep(ctx context.Context, cfg config.Config) (*buffer.Buffer, error) {
	mode, err := oversample.ParseMode(cfg.Oversampling)
	if err != nil {
		return nil, err
	}

	p := SweepParams(cfg)
	opts := []sweep.Option{sweep.WithMode(mode)}

	n, err := sweep.DecimatedLen(p, opts...)
	if err != nil {
		return nil, err
	}

	delay := core.DurationToSamples(cfg.ChirpDelay, float64(cfg.SampleRate))
	total := delay + 2*n

	slog.DebugContext(ctx, "tool.GenerateSweep", "stage", "synthesize",
		"mode", mode.String(), "samples", n, "delay", delay, "total", total)

	out, err := buffer.New(1, total, cfg.SampleRate)
	if err != nil {
		return nil, err
	}

	view, err := out.View(delay)
	if err != nil {
		return nil, err
	}

	if err := sweep.Synthesize(p, view, opts...); err != nil {
		return nil, err
	}

	return out, nil
}

// GenerateSweep writes the sweep of cfg to cfg.OutFile. Nothing is written
// when synthesis fails.
func GenerateSweep(ctx context.Context, cfg config.Config) error {
	out, err := BuildSweep(ctx, cfg)
	if err != nil {
		return fmt.Errorf("generate sweep: %w", err)
	}

	slog.DebugContext(ctx, "tool.GenerateSweep", "stage", "save", "file", cfg.OutFile)

	if err := audiofile.Save(cfg.OutFile, out, audiofile.WithBitDepth(cfg.BitDepth)); err != nil {
		return err
	}

	slog.InfoContext(ctx, "sweep written",
		"file", cfg.OutFile,
		"samples", out.Len(),
		"duration", out.Duration(),
		"rate", out.SampleRate(),
		"start", cfg.StartFreq,
		"end", cfg.EndFreq,
	)

	return nil
}

// Deconvolve loads the captured and reference files of cfg, recovers the
// impulse response of every captured channel and writes it to cfg.OutFile.
func Deconvolve(ctx context.Context, cfg config.Config) error {
	captured, err := load(ctx, cfg.InFile, cfg.SampleRate)
	if err != nil {
		return fmt.Errorf("deconvolve: input: %w", err)
	}

	reference, err := load(ctx, cfg.Reference, cfg.SampleRate)
	if err != nil {
		return fmt.Errorf("deconvolve: reference: %w", err)
	}

	out, err := Recover(ctx, cfg, captured, reference)
	if err != nil {
		return fmt.Errorf("deconvolve: %w", err)
	}

	metrics, err := ir.AnalyzeBuffer(out, 0)
	if err != nil {
		slog.WarnContext(ctx, "impulse response analysis failed", "error", err)
	} else {
		slog.InfoContext(ctx, "impulse response", "metrics", metrics)
	}

	slog.DebugContext(ctx, "tool.Deconvolve", "stage", "save", "file", cfg.OutFile)

	if err := audiofile.Save(cfg.OutFile, out, audiofile.WithBitDepth(cfg.BitDepth)); err != nil {
		return err
	}

	slog.InfoContext(ctx, "impulse response written",
		"file", cfg.OutFile,
		"channels", out.Channels(),
		"samples", out.Len(),
		"rate", out.SampleRate(),
	)

	return nil
}

// Recover runs the deconvolution of cfg on buffers already at
// cfg.SampleRate. The result has one channel per captured channel and
// cfg.IRLength samples, or the full causal length when IRLength is zero.
func Recover(ctx context.Context, cfg config.Config, captured, reference *buffer.Buffer) (*buffer.Buffer, error) {
	factory, err := conv.FactoryByName(cfg.Engine)
	if err != nil {
		return nil, err
	}

	layout := deconv.NewLayout(captured.Len(), reference.Len())

	length := layout.CausalLen()
	if cfg.IRLength > 0 {
		length = max(core.DurationToSamples(cfg.IRLength, float64(cfg.SampleRate)), 1)
	}

	slog.DebugContext(ctx, "tool.Deconvolve", "stage", "process",
		"engine", cfg.Engine,
		"workers", cfg.Workers,
		"channels", captured.Channels(),
		"buffer", layout.BufferSize,
		"kernel", layout.KernelSize,
		"length", length,
	)

	out, err := buffer.New(captured.Channels(), length, cfg.SampleRate)
	if err != nil {
		return nil, err
	}

	if err := deconv.Deconvolve(captured, reference, out,
		deconv.WithEngine(factory),
		deconv.WithWorkers(cfg.Workers),
	); err != nil {
		return nil, err
	}

	return out, nil
}

func load(ctx context.Context, path string, rate int) (*buffer.Buffer, error) {
	slog.DebugContext(ctx, "tool.Deconvolve", "stage", "load", "file", path)

	b, err := audiofile.Load(path)
	if err != nil {
		return nil, err
	}

	if b.SampleRate() == rate {
		return b, nil
	}

	slog.DebugContext(ctx, "tool.Deconvolve", "stage", "resample", "file", path, "from", b.SampleRate(), "to", rate)

	return resample.Buffer(b, rate)
}
