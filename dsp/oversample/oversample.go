package oversample

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/room-raider/dsp/core"
)

var (
	// ErrUnknownMode is returned for an unsupported oversampling mode.
	ErrUnknownMode = fmt.Errorf("%w: oversample: unknown mode", core.ErrInvalidValue)
	// ErrInvalidRate is returned for a non-positive base sample rate.
	ErrInvalidRate = fmt.Errorf("%w: oversample: invalid sample rate", core.ErrInvalidValue)
	// ErrShortBuffer is returned when a destination slice cannot hold the result.
	ErrShortBuffer = fmt.Errorf("%w: oversample: destination too short", core.ErrInvalidValue)
	// ErrClosed is returned when an oversampler is used after Close.
	ErrClosed = fmt.Errorf("%w: oversample: closed", core.ErrProcessingFailed)
)

// Mode selects an oversampling factor and Lanczos kernel order.
type Mode int

const (
	ModeLanczos2x2 Mode = iota
	ModeLanczos2x3
	ModeLanczos3x2
	ModeLanczos3x3
	ModeLanczos4x2
	ModeLanczos4x3
	ModeLanczos6x2
	ModeLanczos6x3
	ModeLanczos8x2
	ModeLanczos8x3
)

// DefaultMode is the mode used by the sweep synthesizer.
const DefaultMode = ModeLanczos8x3

type modeSpec struct {
	name   string
	factor int
	lobes  int
}

var modes = map[Mode]modeSpec{
	ModeLanczos2x2: {"lanczos-2x2", 2, 2},
	ModeLanczos2x3: {"lanczos-2x3", 2, 3},
	ModeLanczos3x2: {"lanczos-3x2", 3, 2},
	ModeLanczos3x3: {"lanczos-3x3", 3, 3},
	ModeLanczos4x2: {"lanczos-4x2", 4, 2},
	ModeLanczos4x3: {"lanczos-4x3", 4, 3},
	ModeLanczos6x2: {"lanczos-6x2", 6, 2},
	ModeLanczos6x3: {"lanczos-6x3", 6, 3},
	ModeLanczos8x2: {"lanczos-8x2", 8, 2},
	ModeLanczos8x3: {"lanczos-8x3", 8, 3},
}

// String returns the canonical mode name, e.g. "lanczos-8x3".
func (m Mode) String() string {
	if s, ok := modes[m]; ok {
		return s.name
	}

	return fmt.Sprintf("Mode(%d)", int(m))
}

// Factor returns the rate multiplier of m, or 0 for an unknown mode.
func (m Mode) Factor() int {
	return modes[m].factor
}

// ParseMode resolves a mode name as returned by [Mode.String].
func ParseMode(name string) (Mode, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for m, s := range modes {
		if s.name == name {
			return m, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, name)
}

// Modes lists every supported mode in ascending order.
func Modes() []Mode {
	out := make([]Mode, 0, len(modes))
	for m := ModeLanczos2x2; m <= ModeLanczos8x3; m++ {
		out = append(out, m)
	}

	return out
}

// Oversampler converts between a base rate and Factor() times that rate.
type Oversampler struct {
	mode       Mode
	factor     int
	sampleRate int

	// kernel holds h[k] for k in [-half, half], stored at kernel[k+half].
	kernel []float64
	half   int
}

// New creates an oversampler for base rate sampleRate.
func New(sampleRate int, mode Mode) (*Oversampler, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRate, sampleRate)
	}

	spec, ok := modes[mode]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(mode))
	}

	half := spec.factor*spec.lobes - 1

	return &Oversampler{
		mode:       mode,
		factor:     spec.factor,
		sampleRate: sampleRate,
		kernel:     lanczosKernel(spec.factor, spec.lobes),
		half:       half,
	}, nil
}

// Mode returns the configured mode.
func (o *Oversampler) Mode() Mode { return o.mode }

// Factor returns the oversampling factor.
func (o *Oversampler) Factor() int { return o.factor }

// SampleRate returns the base sample rate.
func (o *Oversampler) SampleRate() int { return o.sampleRate }

// Rate returns the oversampled rate.
func (o *Oversampler) Rate() int { return o.sampleRate * o.factor }

// Kernel returns a copy of the symmetric filter taps.
func (o *Oversampler) Kernel() []float64 {
	out := make([]float64, len(o.kernel))
	copy(out, o.kernel)

	return out
}

// Upsample writes len(src)*Factor() samples to dst.
func (o *Oversampler) Upsample(dst, src []float64) error {
	if o.kernel == nil {
		return ErrClosed
	}

	n := len(src) * o.factor
	if len(dst) < n {
		return fmt.Errorf("%w: need %d, have %d", ErrShortBuffer, n, len(dst))
	}

	gain := float64(o.factor)

	for i := range n {
		// Only input samples whose zero-stuffed position lies within
		// the kernel support contribute.
		lo := max(0, ceilDiv(i-o.half, o.factor))
		hi := min(len(src)-1, (i+o.half)/o.factor)

		var y float64
		for m := lo; m <= hi; m++ {
			y += o.kernel[i-m*o.factor+o.half] * src[m]
		}

		dst[i] = gain * y
	}

	return nil
}

// Downsample low-pass filters src and writes len(src)/Factor() samples to dst.
func (o *Oversampler) Downsample(dst, src []float64) error {
	if o.kernel == nil {
		return ErrClosed
	}

	n := len(src) / o.factor
	if len(dst) < n {
		return fmt.Errorf("%w: need %d, have %d", ErrShortBuffer, n, len(dst))
	}

	last := len(src) - 1

	for j := range n {
		c := j * o.factor
		lo := max(0, c-o.half)
		hi := min(last, c+o.half)

		var y float64
		for k := lo; k <= hi; k++ {
			y += o.kernel[k-c+o.half] * src[k]
		}

		dst[j] = y
	}

	return nil
}

// Close releases the filter state. Further calls fail with ErrClosed.
func (o *Oversampler) Close() error {
	o.kernel = nil

	return nil
}

// lanczosKernel returns sinc(n/M) * sinc(n/(M*a)) / M for |n| < M*a,
// normalized to unit DC gain.
func lanczosKernel(factor, lobes int) []float64 {
	half := factor*lobes - 1
	out := make([]float64, 2*half+1)
	scale := float64(factor)
	width := float64(factor * lobes)

	var sum float64

	for i := range out {
		n := float64(i - half)
		out[i] = sinc(n/scale) * sinc(n/width) / scale
		sum += out[i]
	}

	for i := range out {
		out[i] /= sum
	}

	return out
}

func sinc(x float64) float64 {
	if math.Abs(x) < 1e-12 {
		return 1
	}

	pix := math.Pi * x

	return math.Sin(pix) / pix
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return -((-a) / b)
	}

	return (a + b - 1) / b
}
