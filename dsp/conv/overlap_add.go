package conv

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/room-raider/dsp/core"
)

// OverlapAdd implements FFT-based convolution using the overlap-add method.
// This is efficient for convolving long signals with long kernels.
//
// The algorithm:
// 1. Divide input signal into non-overlapping blocks
// 2. Zero-pad each block to FFT size
// 3. Convolve via FFT multiplication in frequency domain
// 4. Overlap-add the results, emitting one block of output per input block
type OverlapAdd struct {
	kernelFFT []complex128

	kernelLen int
	blockSize int
	fftSize   int // blockSize + kernelLen - 1, rounded to power of 2

	plan *algofft.Plan[complex128]

	spectrum []complex128
	overlap  []float64 // pending tail of previous blocks, fftSize long
	closed   bool
}

// NewOverlapAdd creates a new overlap-add convolver for the given kernel.
// blockSize determines how the input signal is segmented.
// If blockSize is 0, an automatic size is chosen based on kernel length.
func NewOverlapAdd(kernel []float64, blockSize int) (*OverlapAdd, error) {
	if len(kernel) == 0 {
		return nil, ErrEmptyKernel
	}

	if blockSize < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBlockSize, blockSize)
	}

	kernelLen := len(kernel)

	if blockSize == 0 {
		// Block size roughly equal to the kernel keeps the FFT about
		// twice the kernel length.
		blockSize = max(nextPowerOf2(kernelLen), 256)
	}

	fftSize := nextPowerOf2(blockSize + kernelLen - 1)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("%w: conv: failed to create FFT plan: %w", core.ErrOutOfMemory, err)
	}

	oa := &OverlapAdd{
		kernelFFT: make([]complex128, fftSize),
		kernelLen: kernelLen,
		blockSize: blockSize,
		fftSize:   fftSize,
		plan:      plan,
		spectrum:  make([]complex128, fftSize),
		overlap:   make([]float64, fftSize),
	}

	for i, v := range kernel {
		oa.spectrum[i] = complex(v, 0)
	}

	if err := plan.Forward(oa.kernelFFT, oa.spectrum); err != nil {
		return nil, fmt.Errorf("%w: conv: failed to compute kernel FFT: %w", core.ErrProcessingFailed, err)
	}

	return oa, nil
}

// OverlapAddFactory returns a [Factory] producing overlap-add engines with
// the given block size (0 selects automatically).
func OverlapAddFactory(blockSize int) Factory {
	return func(kernel []float64) (Engine, error) {
		oa, err := NewOverlapAdd(kernel, blockSize)
		if err != nil {
			return nil, err
		}

		return oa, nil
	}
}

// BlockSize returns the input block size.
func (oa *OverlapAdd) BlockSize() int {
	return oa.blockSize
}

// FFTSize returns the FFT size used internally.
func (oa *OverlapAdd) FFTSize() int {
	return oa.fftSize
}

// KernelLen returns the kernel length.
func (oa *OverlapAdd) KernelLen() int {
	return oa.kernelLen
}

// Process implements [Engine].
func (oa *OverlapAdd) Process(dst, src []float64) error {
	if err := checkProcess(dst, src, oa.closed); err != nil {
		return err
	}

	clear(oa.overlap)

	for start := 0; start < len(src); start += oa.blockSize {
		end := min(start+oa.blockSize, len(src))
		blockLen := end - start

		clear(oa.spectrum)

		for i := range blockLen {
			oa.spectrum[i] = complex(src[start+i], 0)
		}

		if err := oa.plan.Forward(oa.spectrum, oa.spectrum); err != nil {
			return fmt.Errorf("%w: conv: forward FFT failed: %w", core.ErrProcessingFailed, err)
		}

		for i := range oa.spectrum {
			oa.spectrum[i] *= oa.kernelFFT[i]
		}

		if err := oa.plan.Inverse(oa.spectrum, oa.spectrum); err != nil {
			return fmt.Errorf("%w: conv: inverse FFT failed: %w", core.ErrProcessingFailed, err)
		}

		// src[start:end] has been consumed, so dst may alias it.
		resultLen := blockLen + oa.kernelLen - 1
		for i := range resultLen {
			oa.overlap[i] += real(oa.spectrum[i])
		}

		copy(dst[start:end], oa.overlap[:blockLen])
		copy(oa.overlap, oa.overlap[blockLen:])
		clear(oa.overlap[oa.fftSize-blockLen:])
	}

	return nil
}

// Close implements [Engine].
func (oa *OverlapAdd) Close() error {
	oa.closed = true
	oa.plan = nil
	oa.kernelFFT = nil
	oa.spectrum = nil
	oa.overlap = nil

	return nil
}
