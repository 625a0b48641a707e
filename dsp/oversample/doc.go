// Package oversample provides integer-factor sample-rate multiplication and
// decimation with zero-phase Lanczos windowed-sinc filters.
//
// An [Oversampler] is bound to a base sample rate and a [Mode]. Upsample
// produces Factor() samples per input sample; Downsample low-pass filters
// and keeps every Factor()-th sample. Filters are symmetric and centered,
// so neither direction adds latency.
package oversample
