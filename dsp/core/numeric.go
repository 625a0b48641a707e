package core

import (
	"math"
	"time"
)

const defaultEpsilon = 1e-12

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}

// WrapPhase reduces phase into [-π, π) with a symmetric modulo.
// sin(WrapPhase(x)) equals sin(x) but keeps the argument small, which
// preserves precision for long quadratic phase ramps.
func WrapPhase(phase float64) float64 {
	p := math.Mod(phase+math.Pi, 2*math.Pi)
	if p >= 0 {
		return p - math.Pi
	}

	return p + math.Pi
}

// DurationToSamples returns the number of samples spanned by d at
// sampleRate, rounded to the nearest integer. Negative results clamp to 0.
func DurationToSamples(d time.Duration, sampleRate float64) int {
	n := math.Round(d.Seconds() * sampleRate)
	if n <= 0 || math.IsNaN(n) {
		return 0
	}

	return int(n)
}

// SamplesToDuration converts a sample count at sampleRate to a duration.
func SamplesToDuration(n int, sampleRate float64) time.Duration {
	if sampleRate <= 0 {
		return 0
	}

	return time.Duration(float64(n) / sampleRate * float64(time.Second))
}

// MillisToDuration converts fractional milliseconds to a duration.
func MillisToDuration(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}
