package conv

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/room-raider/dsp/core"
)

// Errors returned by convolution functions.
var (
	ErrEmptyInput       = fmt.Errorf("%w: conv: empty input", core.ErrInvalidValue)
	ErrEmptyKernel      = fmt.Errorf("%w: conv: empty kernel", core.ErrInvalidValue)
	ErrLengthMismatch   = fmt.Errorf("%w: conv: buffer length mismatch", core.ErrInvalidValue)
	ErrInvalidBlockSize = fmt.Errorf("%w: conv: invalid block size", core.ErrInvalidValue)
	ErrUnknownEngine    = fmt.Errorf("%w: conv: unknown engine", core.ErrInvalidValue)
	ErrClosed           = fmt.Errorf("%w: conv: engine closed", core.ErrProcessingFailed)
)

// Engine convolves signals with a fixed kernel.
type Engine interface {
	// Process writes the first len(src) samples of src convolved with the
	// kernel into dst. dst must hold at least len(src) samples.
	Process(dst, src []float64) error
	// KernelLen returns the length of the bound kernel.
	KernelLen() int
	// Close releases the engine. Process fails afterwards.
	Close() error
}

// Factory creates an engine bound to kernel.
type Factory func(kernel []float64) (Engine, error)

// Direct performs direct time-domain linear convolution of a and b.
// Returns a new slice of length len(a) + len(b) - 1.
//
// This is an O(N*M) algorithm suitable for short kernels and as a
// reference for the FFT engines.
func Direct(a, b []float64) ([]float64, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}

	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	n := len(a)
	m := len(b)
	result := make([]float64, n+m-1)

	for i := range n {
		floats.AddScaled(result[i:i+m], a[i], b)
	}

	return result, nil
}

func checkProcess(dst, src []float64, closed bool) error {
	if closed {
		return ErrClosed
	}

	if len(src) == 0 {
		return ErrEmptyInput
	}

	if len(dst) < len(src) {
		return fmt.Errorf("%w: dst holds %d, need %d", ErrLengthMismatch, len(dst), len(src))
	}

	return nil
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p *= 2
	}

	return p
}
