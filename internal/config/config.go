// Package config holds the validated run configuration of the roomraider
// tool.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/cwbudde/room-raider/dsp/conv"
	"github.com/cwbudde/room-raider/dsp/core"
	"github.com/cwbudde/room-raider/dsp/oversample"
)

// Sample rate bounds accepted for processing.
const (
	MinSampleRate = 8000
	MaxSampleRate = 192000
)

var (
	// ErrNoMode is returned when no processing mode was selected.
	ErrNoMode = fmt.Errorf("%w: config: no mode selected", core.ErrInvalidValue)
	// ErrMissingPath is returned when a required file path is empty.
	ErrMissingPath = fmt.Errorf("%w: config: missing file path", core.ErrInvalidValue)
	// ErrOutOfRange is returned for numeric settings outside their domain.
	ErrOutOfRange = fmt.Errorf("%w: config: value out of range", core.ErrInvalidValue)
)

// Mode selects what the tool does.
type Mode int

const (
	ModeNone Mode = iota
	ModeSweep
	ModeDeconvolve
)

func (m Mode) String() string {
	switch m {
	case ModeSweep:
		return "sweep"
	case ModeDeconvolve:
		return "deconvolve"
	default:
		return "none"
	}
}

// Config is the complete run configuration.
type Config struct {
	Mode       Mode
	SampleRate int

	// Sweep generation.
	StartFreq   float64 // Hz
	EndFreq     float64 // Hz
	Gain        float64 // dB
	SweepLength time.Duration
	ChirpDelay  time.Duration
	Fade        time.Duration

	// Deconvolution.
	InFile    string
	Reference string
	IRLength  time.Duration // 0 keeps the full causal response
	Engine    string
	Workers   int

	OutFile      string
	Oversampling string
	BitDepth     int
}

// Default returns the configuration used when no option overrides a field.
func Default() Config {
	return Config{
		Mode:         ModeNone,
		SampleRate:   48000,
		StartFreq:    10,
		EndFreq:      20000,
		Gain:         0,
		SweepLength:  20 * time.Millisecond,
		ChirpDelay:   5 * time.Millisecond,
		Engine:       conv.DefaultEngine,
		Workers:      1,
		Oversampling: oversample.DefaultMode.String(),
		BitDepth:     24,
	}
}

// Validate reports every problem with c, joined into one error. All
// failures wrap core.ErrInvalidValue.
func (c Config) Validate() error {
	var errs []error

	if c.Mode != ModeSweep && c.Mode != ModeDeconvolve {
		errs = append(errs, ErrNoMode)
	}

	if c.OutFile == "" {
		errs = append(errs, fmt.Errorf("%w: output file", ErrMissingPath))
	}

	if c.SampleRate < MinSampleRate || c.SampleRate > MaxSampleRate {
		errs = append(errs, fmt.Errorf("%w: sample rate %d not in [%d, %d]",
			ErrOutOfRange, c.SampleRate, MinSampleRate, MaxSampleRate))
	}

	switch c.BitDepth {
	case 8, 16, 24:
	default:
		errs = append(errs, fmt.Errorf("%w: bit depth %d (want 8, 16 or 24)", ErrOutOfRange, c.BitDepth))
	}

	switch c.Mode {
	case ModeSweep:
		errs = append(errs, c.validateSweep()...)
	case ModeDeconvolve:
		errs = append(errs, c.validateDeconvolve()...)
	}

	return errors.Join(errs...)
}

func (c Config) validateSweep() []error {
	var errs []error

	nyquist := float64(c.SampleRate) / 2

	if c.StartFreq < 0 || c.StartFreq >= nyquist {
		errs = append(errs, fmt.Errorf("%w: start frequency %g Hz not in [0, %g)", ErrOutOfRange, c.StartFreq, nyquist))
	}

	if c.EndFreq >= nyquist {
		errs = append(errs, fmt.Errorf("%w: end frequency %g Hz not below %g", ErrOutOfRange, c.EndFreq, nyquist))
	}

	if c.EndFreq < c.StartFreq {
		errs = append(errs, fmt.Errorf("%w: end frequency %g Hz below start %g Hz", ErrOutOfRange, c.EndFreq, c.StartFreq))
	}

	if c.SweepLength <= 0 {
		errs = append(errs, fmt.Errorf("%w: sweep length %v", ErrOutOfRange, c.SweepLength))
	}

	if c.ChirpDelay < 0 {
		errs = append(errs, fmt.Errorf("%w: chirp delay %v", ErrOutOfRange, c.ChirpDelay))
	}

	if c.Fade < 0 {
		errs = append(errs, fmt.Errorf("%w: fade %v", ErrOutOfRange, c.Fade))
	}

	if _, err := oversample.ParseMode(c.Oversampling); err != nil {
		errs = append(errs, err)
	}

	return errs
}

func (c Config) validateDeconvolve() []error {
	var errs []error

	if c.InFile == "" {
		errs = append(errs, fmt.Errorf("%w: input file", ErrMissingPath))
	}

	if c.Reference == "" {
		errs = append(errs, fmt.Errorf("%w: reference file", ErrMissingPath))
	}

	if c.IRLength < 0 {
		errs = append(errs, fmt.Errorf("%w: impulse response length %v", ErrOutOfRange, c.IRLength))
	}

	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("%w: workers %d", ErrOutOfRange, c.Workers))
	}

	if _, err := conv.FactoryByName(c.Engine); err != nil {
		errs = append(errs, err)
	}

	return errs
}
