// Package deconv recovers impulse responses from captured recordings by
// matched filtering against the excitation signal.
//
// Each captured channel is convolved with the time-reversed reference
// (channel 0 of the reference buffer), the result is normalized to unit
// peak, and its causal part, starting at zero lag, is written to the
// output. With a linear sweep as reference the matched-filter output
// approximates the band-limited impulse response of the measured system.
//
// Lengths follow a fixed layout (see [Layout]): with B = max(len(captured),
// len(reference)) the kernel holds B samples, processing runs on K = 2B
// samples and zero lag lies at index B-1.
package deconv
