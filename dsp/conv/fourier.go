package conv

import (
	"fmt"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Fourier convolves each signal in a single real FFT block sized to the
// full linear convolution. Plans and kernel spectra are cached per size, so
// repeated calls with equal signal lengths transform the kernel once.
type Fourier struct {
	kernel []float64

	size     int
	fft      *fourier.FFT
	scale    float64
	kernelFT []complex128
	signalFT []complex128
	seq      []float64
	closed   bool
}

// NewFourier creates a gonum FFT convolution engine. It satisfies [Factory].
func NewFourier(kernel []float64) (Engine, error) {
	if len(kernel) == 0 {
		return nil, ErrEmptyKernel
	}

	k := make([]float64, len(kernel))
	copy(k, kernel)

	return &Fourier{kernel: k}, nil
}

// KernelLen returns the kernel length.
func (f *Fourier) KernelLen() int {
	return len(f.kernel)
}

// Process implements [Engine].
func (f *Fourier) Process(dst, src []float64) error {
	if err := checkProcess(dst, src, f.closed); err != nil {
		return err
	}

	f.prepare(nextPowerOf2(max(2, len(src)+len(f.kernel)-1)))

	clear(f.seq)
	copy(f.seq, src)

	f.signalFT = f.fft.Coefficients(f.signalFT, f.seq)
	for i := range f.signalFT {
		f.signalFT[i] *= f.kernelFT[i]
	}

	f.seq = f.fft.Sequence(f.seq, f.signalFT)

	for i := range src {
		dst[i] = f.seq[i] * f.scale
	}

	return nil
}

func (f *Fourier) prepare(size int) {
	if f.size == size {
		return
	}

	f.size = size
	f.fft = fourier.NewFFT(size)
	f.seq = make([]float64, size)
	f.signalFT = make([]complex128, size/2+1)
	f.kernelFT = make([]complex128, size/2+1)

	// Measure the round-trip gain of the transform pair on a unit impulse
	// instead of assuming a normalization convention.
	f.seq[0] = 1
	f.kernelFT = f.fft.Coefficients(f.kernelFT, f.seq)
	f.seq = f.fft.Sequence(f.seq, f.kernelFT)
	f.scale = 1 / f.seq[0]

	clear(f.seq)
	copy(f.seq, f.kernel)
	f.kernelFT = f.fft.Coefficients(f.kernelFT, f.seq)
}

// Close implements [Engine].
func (f *Fourier) Close() error {
	f.closed = true
	f.kernel = nil
	f.fft = nil
	f.kernelFT = nil
	f.signalFT = nil
	f.seq = nil
	f.size = 0

	return nil
}

// String describes the engine for logging.
func (f *Fourier) String() string {
	return fmt.Sprintf("fourier(kernel=%d, size=%d)", len(f.kernel), f.size)
}
