// Package ir summarizes recovered impulse responses with ISO 3382 room
// acoustic parameters derived from the Schroeder backward integral:
//
//   - EDT, T20, T30: decay times from the 0..-10, -5..-25 and -5..-35 dB
//     ranges of the decay curve, extrapolated to 60 dB
//   - RT60: T30 when available, T20 otherwise
//   - C50, C80: early-to-late energy ratio in dB
//   - D50, D80: early energy fraction
//   - center time: energy centroid
//
// All metrics are measured from the absolute peak of the response. A decay
// time that the response is too short or too noisy to support is reported
// as zero.
//
// # Usage
//
//	a, err := ir.NewAnalyzer(48000)
//	m, err := a.Analyze(samples)
//	slog.Info("impulse response", "metrics", m)
package ir
