// Package testutil holds signal generators and assertions shared by the
// package tests.
package testutil

import (
	"math"
	"math/rand/v2"
)

// DeterministicSine returns length samples of amplitude*sin(2*pi*freqHz*n/sampleRate).
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	for n := range out {
		out[n] = amplitude * math.Sin(2*math.Pi*freqHz*float64(n)/sampleRate)
	}
	return out
}

// DeterministicNoise returns uniform white noise in [-amplitude, amplitude)
// drawn from a PCG source seeded with seed.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	rng := rand.New(rand.NewPCG(uint64(seed), 0x9e3779b97f4a7c15))
	out := make([]float64, length)
	for n := range out {
		out[n] = amplitude * (2*rng.Float64() - 1)
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// ImpulseTrain returns length samples with a unit impulse every period
// samples, starting at index 0.
func ImpulseTrain(length, period int) []float64 {
	out := make([]float64, length)
	if period <= 0 {
		return out
	}
	for i := 0; i < length; i += period {
		out[i] = 1
	}
	return out
}

// Delayed returns x preceded by d zero samples.
func Delayed(x []float64, d int) []float64 {
	out := make([]float64, len(x)+d)
	copy(out[d:], x)
	return out
}

// Fill sets every element of x to v.
func Fill(x []float64, v float64) {
	for i := range x {
		x[i] = v
	}
}

// PeakIndex returns the index of the first sample with the largest
// magnitude, or 0 for an empty slice.
func PeakIndex(x []float64) int {
	best := 0
	for i, v := range x {
		if math.Abs(v) > math.Abs(x[best]) {
			best = i
		}
	}
	return best
}

// ZeroCrossings counts sign changes in x.
func ZeroCrossings(x []float64) int {
	count := 0
	for i := 1; i < len(x); i++ {
		if (x[i-1] < 0) != (x[i] < 0) {
			count++
		}
	}
	return count
}
