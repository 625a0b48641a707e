// Package conv provides block convolution engines for fully-buffered signals.
//
// Every backend implements [Engine]: it is bound to one kernel at
// construction and convolves whole signals with it,
//
//	dst[i] = sum_j kernel[j] * src[i-j],   0 <= i < len(src)
//
// i.e. the causal part of the linear convolution truncated to the input
// length. No latency is introduced; dst and src may alias.
//
// Available backends:
//
//   - direct: O(N*M) time-domain convolution, exact, for short kernels
//   - overlap-add: FFT block convolution on github.com/MeKo-Christian/algo-fft
//   - fourier: single-block real FFT convolution on gonum.org/v1/gonum/dsp/fourier
//
// Backends are selected by name with [FactoryByName]; the block size of the
// overlap-add engine is its latency/quality knob and can be set with
// [OverlapAddFactory].
//
// # Usage
//
//	factory, err := conv.FactoryByName("overlap-add")
//	engine, err := factory(kernel)
//	defer engine.Close()
//	err = engine.Process(dst, src)
//
// For one-shot full linear convolution, use [Direct].
package conv
