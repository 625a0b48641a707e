package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/cwbudde/room-raider/dsp/core"
	"github.com/cwbudde/room-raider/internal/config"
)

func parse(t *testing.T, args ...string) (config.Config, error) {
	t.Helper()

	var (
		cfg    config.Config
		cfgErr error
	)

	cmd := &cli.Command{
		Name:  "roomraider",
		Flags: flags(),
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg, cfgErr = configFromFlags(cmd)
			return nil
		},
	}

	require.NoError(t, cmd.Run(context.Background(), append([]string{"roomraider"}, args...)))

	return cfg, cfgErr
}

func TestFlagsDefaults(t *testing.T) {
	cfg, err := parse(t, "-s", "-o", "sweep.wav")
	require.NoError(t, err)

	want := config.Default()
	want.Mode = config.ModeSweep
	want.OutFile = "sweep.wav"
	assert.Equal(t, want, cfg)
	require.NoError(t, cfg.Validate())
}

func TestFlagsShortAliases(t *testing.T) {
	cfg, err := parse(t,
		"-d",
		"-sf", "20",
		"-ef", "18000",
		"-g=-6",
		"-sl", "500",
		"-cd", "12.5",
		"-i", "capture.wav",
		"-r", "sweep.wav",
		"-o", "ir.wav",
		"-sr", "44100",
	)
	require.NoError(t, err)

	assert.Equal(t, config.ModeDeconvolve, cfg.Mode)
	assert.InDelta(t, 20.0, cfg.StartFreq, 0)
	assert.InDelta(t, 18000.0, cfg.EndFreq, 0)
	assert.InDelta(t, -6.0, cfg.Gain, 0)
	assert.Equal(t, 500*time.Millisecond, cfg.SweepLength)
	assert.Equal(t, 12500*time.Microsecond, cfg.ChirpDelay)
	assert.Equal(t, "capture.wav", cfg.InFile)
	assert.Equal(t, "sweep.wav", cfg.Reference)
	assert.Equal(t, "ir.wav", cfg.OutFile)
	assert.Equal(t, 44100, cfg.SampleRate)
}

func TestFlagsLongOptions(t *testing.T) {
	cfg, err := parse(t,
		"--deconvolve",
		"--in-file", "a.wav",
		"--reference", "b.wav",
		"--out-file", "c.wav",
		"--fade", "2",
		"--ir-length", "250",
		"--engine", "fourier",
		"--oversampling", "lanczos-4x3",
		"--workers", "4",
		"--bit-depth", "16",
	)
	require.NoError(t, err)

	assert.Equal(t, 2*time.Millisecond, cfg.Fade)
	assert.Equal(t, 250*time.Millisecond, cfg.IRLength)
	assert.Equal(t, "fourier", cfg.Engine)
	assert.Equal(t, "lanczos-4x3", cfg.Oversampling)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, 16, cfg.BitDepth)
	require.NoError(t, cfg.Validate())
}

func TestFlagsModeConflict(t *testing.T) {
	_, err := parse(t, "-s", "-d", "-o", "x.wav")
	require.ErrorIs(t, err, errModeConflict)
	assert.ErrorIs(t, err, core.ErrInvalidValue)
}

func TestFlagsRejectPositionalArguments(t *testing.T) {
	_, err := parse(t, "-s", "-o", "x.wav", "extra")
	require.ErrorIs(t, err, core.ErrInvalidValue)
}

func TestFlagsNoMode(t *testing.T) {
	cfg, err := parse(t, "-o", "x.wav")
	require.NoError(t, err)
	assert.Equal(t, config.ModeNone, cfg.Mode)
	require.ErrorIs(t, cfg.Validate(), config.ErrNoMode)
}
