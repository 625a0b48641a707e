package deconv

import (
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/room-raider/dsp/buffer"
	"github.com/cwbudde/room-raider/dsp/conv"
	"github.com/cwbudde/room-raider/dsp/core"
)

// Errors returned by Deconvolve.
var (
	ErrReferenceChannels = fmt.Errorf("%w: deconv: reference must have exactly one channel", core.ErrProcessingFailed)
	ErrOutputChannels    = fmt.Errorf("%w: deconv: output channel count must match input", core.ErrProcessingFailed)
	ErrEmptyInput        = fmt.Errorf("%w: deconv: empty input", core.ErrProcessingFailed)
	ErrSampleRate        = fmt.Errorf("%w: deconv: sample rates differ", core.ErrInvalidValue)
)

type config struct {
	engine  conv.Factory
	workers int
	pool    *buffer.Pool
}

// Option configures Deconvolve.
type Option func(*config)

// WithEngine selects the convolution backend. A fresh engine is created
// for every channel.
func WithEngine(f conv.Factory) Option {
	return func(cfg *config) {
		if f != nil {
			cfg.engine = f
		}
	}
}

// WithWorkers processes up to n channels concurrently. n <= 1 is sequential.
func WithWorkers(n int) Option {
	return func(cfg *config) {
		cfg.workers = max(n, 1)
	}
}

// WithPool sets the scratch memory pool.
func WithPool(p *buffer.Pool) Option {
	return func(cfg *config) {
		if p != nil {
			cfg.pool = p
		}
	}
}

// Deconvolve writes the normalized causal matched-filter response of every
// captured channel against reference channel 0 into the corresponding
// output channel. Output channels are zero-filled beyond the causal length.
// On error out is left untouched.
func Deconvolve(captured, reference, out *buffer.Buffer, opts ...Option) error {
	if captured == nil || reference == nil || out == nil {
		return fmt.Errorf("%w: nil buffer", ErrEmptyInput)
	}

	if reference.Channels() != 1 {
		return fmt.Errorf("%w: got %d", ErrReferenceChannels, reference.Channels())
	}

	if captured.Len() == 0 || reference.Len() == 0 || captured.Channels() == 0 {
		return ErrEmptyInput
	}

	if out.Channels() != captured.Channels() {
		return fmt.Errorf("%w: input %d, output %d", ErrOutputChannels, captured.Channels(), out.Channels())
	}

	if captured.SampleRate() != reference.SampleRate() {
		return fmt.Errorf("%w: input %d Hz, reference %d Hz", ErrSampleRate, captured.SampleRate(), reference.SampleRate())
	}

	cfg := config{
		engine:  conv.OverlapAddFactory(0),
		workers: 1,
		pool:    buffer.Scratch,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	layout := NewLayout(captured.Len(), reference.Len())

	kernel, err := cfg.pool.Get(layout.BufferSize)
	if err != nil {
		return err
	}
	defer cfg.pool.Put(kernel)

	buildKernel(kernel.Samples(), reference.Channel(0))

	n := layout.Extract(out.Len())
	results := make([]*buffer.Block, captured.Channels())

	defer func() {
		for _, r := range results {
			cfg.pool.Put(r)
		}
	}()

	for ch := range results {
		results[ch], err = cfg.pool.Get(n)
		if err != nil {
			return err
		}
	}

	var g errgroup.Group
	g.SetLimit(cfg.workers)

	for ch := range results {
		g.Go(func() error {
			return processChannel(cfg, layout, kernel.Samples(), captured.Channel(ch), results[ch].Samples())
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	for ch, r := range results {
		dst := out.Channel(ch)
		clear(dst)
		copy(dst, r.Samples())
	}

	return nil
}

// buildKernel zero-pads ref to len(kernel) and reverses the padded buffer,
// so the reversed reference occupies the tail of kernel.
func buildKernel(kernel, ref []float64) {
	b := len(kernel)
	clear(kernel)

	for j := range kernel {
		if m := b - 1 - j; m < len(ref) {
			kernel[j] = ref[m]
		}
	}
}

func processChannel(cfg config, layout Layout, kernel, in, dst []float64) error {
	work, err := cfg.pool.Get(layout.KernelSize)
	if err != nil {
		return err
	}
	defer cfg.pool.Put(work)

	buf := work.Samples()
	copy(buf, in)

	engine, err := cfg.engine(kernel)
	if err != nil {
		return fmt.Errorf("%w: deconv: engine: %w", core.ErrOutOfMemory, err)
	}
	defer engine.Close()

	if err := engine.Process(buf, buf); err != nil {
		return fmt.Errorf("%w: deconv: convolve: %w", core.ErrProcessingFailed, err)
	}

	Normalize(buf)
	copy(dst, buf[layout.Origin:])

	return nil
}

// Normalize scales x so its largest magnitude is 1. All-zero input is left
// unchanged.
func Normalize(x []float64) {
	if len(x) == 0 {
		return
	}

	if peak := floats.Norm(x, math.Inf(1)); peak > 0 {
		floats.Scale(1/peak, x)
	}
}
