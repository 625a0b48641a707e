// Package sweep synthesizes linear swept-sine excitation signals for
// impulse response measurement.
//
// The sweep is computed at an oversampled working rate and decimated to the
// target rate, which keeps aliasing of the upper sweep end below the
// decimation filter's stopband. The instantaneous frequency rises linearly
// from StartFreq to EndFreq over Length:
//
//	f(t)     = f1 + slope*t,  slope = (f2 - f1) / T
//	phase(t) = 2π (slope*t²/2 + f1*t)
//
// # Usage
//
//	p := sweep.Params{SampleRate: 48000, StartFreq: 10, EndFreq: 20000, Length: 20 * time.Millisecond}
//	n, _ := sweep.DecimatedLen(p)
//	out, _ := buffer.New(1, n, p.SampleRate)
//	err := sweep.Synthesize(p, out)
//
// The decimation stage is pluggable through [WithDecimator]; the default is
// [oversample.ModeLanczos8x3].
package sweep
