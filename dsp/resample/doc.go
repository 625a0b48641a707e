// Package resample provides offline rational sample-rate conversion using
// polyphase FIR filtering with anti-aliasing defaults.
//
// The prototype filter has an odd tap count so its group delay is an
// integer number of samples at the intermediate rate; [Resampler.Process]
// removes that delay, which keeps every converted buffer time-aligned with
// its source. The measurement pipeline relies on this: a captured signal and
// its reference resampled separately must still line up sample for sample.
//
// Quality modes:
//   - QualityFast: lower CPU, lower attenuation
//   - QualityBalanced: default mode
//   - QualityBest: higher attenuation and flatter passband
//
// Default quality/performance matrix:
//
//	mode            taps/phase   nominal stopband
//	QualityFast     16           ~55 dB
//	QualityBalanced 32           ~75 dB
//	QualityBest     64           ~90 dB
//
// Common workflows:
//   - NewRational(up, down, opts...)
//   - NewForRates(inRate, outRate, opts...)
//   - Resample(input, up, down, opts...)
//   - Buffer(src, rate, opts...) for multi-channel buffers
package resample
