package sweep

import (
	"fmt"
	"time"

	"github.com/cwbudde/room-raider/dsp/core"
)

// Errors returned by sweep functions.
var (
	ErrInvalidFrequency  = fmt.Errorf("%w: sweep: frequency must be non-negative", core.ErrInvalidValue)
	ErrInvalidDuration   = fmt.Errorf("%w: sweep: length must be positive", core.ErrInvalidValue)
	ErrInvalidSampleRate = fmt.Errorf("%w: sweep: sample rate must be positive", core.ErrInvalidValue)
	ErrFrequencyOrder    = fmt.Errorf("%w: sweep: start frequency must not exceed end frequency", core.ErrInvalidValue)
	ErrInvalidFade       = fmt.Errorf("%w: sweep: fade must be non-negative", core.ErrInvalidValue)
	ErrDestination       = fmt.Errorf("%w: sweep: unusable destination", core.ErrProcessingFailed)
)

// Params describes a linear sweep.
type Params struct {
	SampleRate int           // output sample rate in Hz
	StartFreq  float64       // start frequency in Hz
	EndFreq    float64       // end frequency in Hz
	GainDB     float64       // level in dB, capped at 0 dB
	Length     time.Duration // sweep duration
	Fade       time.Duration // fade-in and fade-out ramp length, 0 disables
}

// Validate checks that the parameters describe a sweep. start == end is
// valid and yields a pure tone.
func (p Params) Validate() error {
	if p.SampleRate <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSampleRate, p.SampleRate)
	}

	if p.StartFreq < 0 || p.EndFreq < 0 {
		return fmt.Errorf("%w: %g..%g", ErrInvalidFrequency, p.StartFreq, p.EndFreq)
	}

	if p.StartFreq > p.EndFreq {
		return fmt.Errorf("%w: %g > %g", ErrFrequencyOrder, p.StartFreq, p.EndFreq)
	}

	if p.Length <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidDuration, p.Length)
	}

	if p.Fade < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidFade, p.Fade)
	}

	return nil
}

// Gain returns the linear amplitude, never above 1.
func (p Params) Gain() float64 {
	return min(core.DBToLinear(p.GainDB), 1)
}

// Slope returns the frequency increase rate in Hz per second.
func (p Params) Slope() float64 {
	return (p.EndFreq - p.StartFreq) / p.Length.Seconds()
}

// FrequencyAt returns the instantaneous frequency at time t.
func (p Params) FrequencyAt(t time.Duration) float64 {
	return p.StartFreq + p.Slope()*t.Seconds()
}

// Lengths returns the number of samples at the oversampled working rate
// and after decimation by factor.
func Lengths(p Params, factor int) (oversampled, decimated int) {
	if factor <= 0 || p.SampleRate <= 0 {
		return 0, 0
	}

	oversampled = core.DurationToSamples(p.Length, float64(p.SampleRate*factor))

	return oversampled, oversampled / factor
}
