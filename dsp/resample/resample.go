package resample

import (
	"fmt"
	"math"

	"github.com/cwbudde/room-raider/dsp/core"
)

var (
	// ErrInvalidRatio indicates an invalid up/down ratio.
	ErrInvalidRatio = fmt.Errorf("%w: resample: invalid ratio", core.ErrInvalidValue)
	// ErrInvalidRate indicates an invalid input/output sample rate.
	ErrInvalidRate = fmt.Errorf("%w: resample: invalid sample rate", core.ErrInvalidValue)
)

// Quality controls default anti-aliasing filter settings.
type Quality int

const (
	// QualityFast prioritizes lower CPU usage.
	QualityFast Quality = iota
	// QualityBalanced is the default quality/performance trade-off.
	QualityBalanced
	// QualityBest prioritizes stopband attenuation and passband flatness.
	QualityBest
)

// Profile exposes default filter parameters for each quality mode.
type Profile struct {
	TapsPerPhase      int
	CutoffScale       float64
	KaiserBeta        float64
	NominalStopbandDB float64
}

// QualityProfile returns the default profile used by quality mode q.
func QualityProfile(q Quality) Profile {
	switch q {
	case QualityFast:
		return Profile{TapsPerPhase: 16, CutoffScale: 0.88, KaiserBeta: 5.0, NominalStopbandDB: 55}
	case QualityBest:
		return Profile{TapsPerPhase: 64, CutoffScale: 0.96, KaiserBeta: 9.0, NominalStopbandDB: 90}
	default:
		return Profile{TapsPerPhase: 32, CutoffScale: 0.92, KaiserBeta: 7.5, NominalStopbandDB: 75}
	}
}

type config struct {
	quality      Quality
	tapsPerPhase int
	cutoffScale  float64
	kaiserBeta   float64
	maxDen       int
}

// Option configures the resampler.
type Option func(*config)

// WithQuality selects a predefined anti-aliasing quality mode.
func WithQuality(q Quality) Option {
	return func(cfg *config) {
		cfg.quality = q
	}
}

// WithTapsPerPhase overrides taps per polyphase branch.
func WithTapsPerPhase(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.tapsPerPhase = n
		}
	}
}

// WithCutoffScale overrides normalized cutoff scaling in range (0, 1].
// 1.0 equals the theoretical anti-aliasing cutoff.
func WithCutoffScale(v float64) Option {
	return func(cfg *config) {
		if v > 0 && v <= 1 {
			cfg.cutoffScale = v
		}
	}
}

// WithKaiserBeta overrides the Kaiser window beta parameter.
func WithKaiserBeta(beta float64) Option {
	return func(cfg *config) {
		if beta > 0 {
			cfg.kaiserBeta = beta
		}
	}
}

// WithMaxDenominator caps denominator size for rate-ratio approximation.
func WithMaxDenominator(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.maxDen = n
		}
	}
}

func defaultConfig() config {
	return config{
		quality: QualityBalanced,
		maxDen:  4096,
	}
}

func (c config) finalized() config {
	p := QualityProfile(c.quality)
	if c.tapsPerPhase <= 0 {
		c.tapsPerPhase = p.TapsPerPhase
	}

	if c.cutoffScale <= 0 || c.cutoffScale > 1 {
		c.cutoffScale = p.CutoffScale
	}

	if c.kaiserBeta <= 0 {
		c.kaiserBeta = p.KaiserBeta
	}

	if c.maxDen <= 0 {
		c.maxDen = 4096
	}

	return c
}

func buildConfig(opts []Option) config {
	cfg := defaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg.finalized()
}

// Resampler performs zero-delay rational sample-rate conversion of whole
// signals. It holds no streaming state; one instance can convert any
// number of independent signals.
type Resampler struct {
	up   int
	down int

	quality Quality
	taps    []float64
	delay   int // group delay of taps, in samples at the up-rate
}

// NewRational creates a resampler for ratio up/down.
func NewRational(up, down int, opts ...Option) (*Resampler, error) {
	if up <= 0 || down <= 0 {
		return nil, ErrInvalidRatio
	}

	g := gcd(up, down)
	up /= g
	down /= g

	cfg := buildConfig(opts)

	taps, err := designPrototype(up, down, cfg)
	if err != nil {
		return nil, err
	}

	return &Resampler{
		up:      up,
		down:    down,
		quality: cfg.quality,
		taps:    taps,
		delay:   (len(taps) - 1) / 2,
	}, nil
}

// NewForRates creates a resampler by approximating outRate/inRate as a ratio.
func NewForRates(inRate, outRate float64, opts ...Option) (*Resampler, error) {
	if inRate <= 0 || outRate <= 0 || math.IsNaN(inRate) || math.IsNaN(outRate) {
		return nil, ErrInvalidRate
	}

	cfg := buildConfig(opts)
	up, down := approximateRatio(outRate/inRate, cfg.maxDen)

	return NewRational(up, down, opts...)
}

// Resample converts input using ratio up/down as a one-shot helper.
func Resample(input []float64, up, down int, opts ...Option) ([]float64, error) {
	r, err := NewRational(up, down, opts...)
	if err != nil {
		return nil, err
	}

	return r.Process(input), nil
}

// OutputLen returns the number of samples Process produces for n input samples.
func (r *Resampler) OutputLen(n int) int {
	if n <= 0 {
		return 0
	}

	return (n*r.up + r.down - 1) / r.down
}

// Process converts input and returns a new slice of OutputLen(len(input))
// samples. Output sample j is aligned with input time j*down/up.
func (r *Resampler) Process(input []float64) []float64 {
	nOut := r.OutputLen(len(input))
	if nOut == 0 {
		return nil
	}

	out := make([]float64, nOut)
	nTaps := len(r.taps)
	last := len(input) - 1

	for j := range out {
		// Position of this output on the up-rate grid, shifted by the
		// filter delay so the result is zero-phase.
		pos := j*r.down + r.delay

		hi := min(pos/r.up, last)
		lo := max(0, ceilDiv(pos-nTaps+1, r.up))

		var y float64
		for n := lo; n <= hi; n++ {
			y += r.taps[pos-n*r.up] * input[n]
		}

		out[j] = y
	}

	return out
}

// Ratio returns reduced up/down conversion factors.
func (r *Resampler) Ratio() (up, down int) {
	return r.up, r.down
}

// Quality returns the configured quality mode.
func (r *Resampler) Quality() Quality {
	return r.quality
}

// TapsPerPhase returns the longest polyphase branch length.
func (r *Resampler) TapsPerPhase() int {
	return (len(r.taps) + r.up - 1) / r.up
}

// Prototype returns a copy of the underlying prototype FIR taps.
func (r *Resampler) Prototype() []float64 {
	out := make([]float64, len(r.taps))
	copy(out, r.taps)

	return out
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return -((-a) / b)
	}

	return (a + b - 1) / b
}
