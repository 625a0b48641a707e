package sweep

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/room-raider/dsp/buffer"
	"github.com/cwbudde/room-raider/dsp/core"
	"github.com/cwbudde/room-raider/dsp/oversample"
	"github.com/cwbudde/room-raider/dsp/window"
)

// Decimator reduces an oversampled signal by an integer factor.
// [oversample.Oversampler] satisfies it.
type Decimator interface {
	Factor() int
	Downsample(dst, src []float64) error
	Close() error
}

// DecimatorFactory creates a decimator whose output runs at sampleRate.
type DecimatorFactory func(sampleRate int) (Decimator, error)

type config struct {
	decimator DecimatorFactory
	pool      *buffer.Pool
	fadeShape window.Shape
}

// Option configures synthesis.
type Option func(*config)

// WithDecimator replaces the decimation stage.
func WithDecimator(f DecimatorFactory) Option {
	return func(cfg *config) {
		if f != nil {
			cfg.decimator = f
		}
	}
}

// WithMode selects the oversampling mode of the default decimator.
func WithMode(m oversample.Mode) Option {
	return WithDecimator(OversamplerFactory(m))
}

// WithPool sets the scratch memory pool.
func WithPool(p *buffer.Pool) Option {
	return func(cfg *config) {
		if p != nil {
			cfg.pool = p
		}
	}
}

// WithFadeShape sets the taper used when Params.Fade is positive.
func WithFadeShape(s window.Shape) Option {
	return func(cfg *config) {
		cfg.fadeShape = s
	}
}

// OversamplerFactory returns a DecimatorFactory backed by [oversample.New].
func OversamplerFactory(m oversample.Mode) DecimatorFactory {
	return func(sampleRate int) (Decimator, error) {
		o, err := oversample.New(sampleRate, m)
		if err != nil {
			return nil, err
		}

		return o, nil
	}
}

func buildConfig(opts []Option) config {
	cfg := config{
		decimator: OversamplerFactory(oversample.DefaultMode),
		pool:      buffer.Scratch,
		fadeShape: window.ShapeHann,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// DecimatedLen returns the number of samples Synthesize writes for p.
func DecimatedLen(p Params, opts ...Option) (int, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}

	cfg := buildConfig(opts)

	dec, err := cfg.decimator(p.SampleRate)
	if err != nil {
		return 0, fmt.Errorf("%w: sweep: decimator: %w", core.ErrProcessingFailed, err)
	}

	factor := dec.Factor()
	_ = dec.Close()

	_, n := Lengths(p, factor)

	return n, nil
}

// Oscillate fills dst with the sweep described by p sampled at rate,
// scaled by p.Gain(). The phase is evaluated in closed form per sample.
func Oscillate(dst []float64, p Params, rate float64) {
	slope := p.Slope()
	gain := p.Gain()

	for n := range dst {
		t := float64(n) / rate
		phase := 2 * math.Pi * (0.5*slope*t*t + p.StartFreq*t)
		dst[n] = gain * math.Sin(core.WrapPhase(phase))
	}
}

// Synthesize writes the decimated sweep to channel 0 of out and zero-fills
// the rest of it. out must have exactly one channel and hold at least
// DecimatedLen(p) samples; otherwise ErrDestination is returned and out is
// left untouched.
func Synthesize(p Params, out *buffer.Buffer, opts ...Option) error {
	if err := p.Validate(); err != nil {
		return err
	}

	if out == nil || out.Channels() != 1 {
		return fmt.Errorf("%w: need a single-channel buffer", ErrDestination)
	}

	cfg := buildConfig(opts)

	dec, err := cfg.decimator(p.SampleRate)
	if err != nil {
		return fmt.Errorf("%w: sweep: decimator: %w", core.ErrProcessingFailed, err)
	}
	defer dec.Close()

	factor := dec.Factor()
	nOver, nDown := Lengths(p, factor)

	if nDown == 0 {
		return fmt.Errorf("%w: %v yields no samples", ErrInvalidDuration, p.Length)
	}

	if out.Len() < nDown {
		return fmt.Errorf("%w: holds %d samples, need %d", ErrDestination, out.Len(), nDown)
	}

	over, err := cfg.pool.Get(nOver)
	if err != nil {
		return err
	}
	defer cfg.pool.Put(over)

	down, err := cfg.pool.Get(nDown)
	if err != nil {
		return err
	}
	defer cfg.pool.Put(down)

	overRate := float64(p.SampleRate * factor)
	Oscillate(over.Samples(), p, overRate)

	if p.Fade > 0 {
		n := core.DurationToSamples(p.Fade, overRate)
		if err := window.Fade(over.Samples(), n, n, cfg.fadeShape); err != nil {
			return err
		}
	}

	if err := dec.Downsample(down.Samples(), over.Samples()); err != nil {
		return fmt.Errorf("%w: sweep: decimate: %w", core.ErrProcessingFailed, err)
	}

	// The decimation filter may overshoot near full scale.
	if peak := floats.Norm(down.Samples(), math.Inf(1)); peak > 1 {
		floats.Scale(1/peak, down.Samples())
	}

	ch := out.Channel(0)
	clear(ch)
	copy(ch, down.Samples())

	return nil
}

// Generate allocates a buffer of DecimatedLen(p) samples and synthesizes
// the sweep into it.
func Generate(p Params, opts ...Option) (*buffer.Buffer, error) {
	n, err := DecimatedLen(p, opts...)
	if err != nil {
		return nil, err
	}

	out, err := buffer.New(1, n, p.SampleRate)
	if err != nil {
		return nil, err
	}

	if err := Synthesize(p, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}
