package resample

import (
	"fmt"
	"math"

	"github.com/cwbudde/room-raider/dsp/core"
)

// designPrototype builds a Kaiser-windowed sinc low-pass running at the
// up-rate. The tap count is odd so the filter center is an exact sample.
func designPrototype(up, down int, cfg config) ([]float64, error) {
	if up <= 0 || down <= 0 {
		return nil, ErrInvalidRatio
	}

	if cfg.tapsPerPhase <= 0 {
		return nil, fmt.Errorf("%w: resample: taps per phase must be > 0", core.ErrInvalidValue)
	}

	if cfg.cutoffScale <= 0 || cfg.cutoffScale > 1 {
		return nil, fmt.Errorf("%w: resample: cutoff scale must be in (0,1]", core.ErrInvalidValue)
	}

	nTaps := cfg.tapsPerPhase*up + 1

	fc := (0.5 / float64(max(up, down))) * cfg.cutoffScale
	if fc <= 0 || fc >= 0.5 {
		return nil, fmt.Errorf("%w: resample: invalid cutoff %.6f", core.ErrInvalidValue, fc)
	}

	taps := make([]float64, nTaps)
	center := (nTaps - 1) / 2

	var sum float64

	for n := range nTaps {
		t := float64(n - center)
		taps[n] = 2 * fc * sinc(2*fc*t) * kaiserWindow(n, nTaps, cfg.kaiserBeta)
		sum += taps[n]
	}

	if sum == 0 {
		return nil, fmt.Errorf("%w: resample: designed zero-sum filter", core.ErrProcessingFailed)
	}

	// Interpolation by up needs a gain of up to restore the level lost to
	// zero stuffing.
	scale := float64(up) / sum
	for i := range taps {
		taps[i] *= scale
	}

	return taps, nil
}

func approximateRatio(v float64, maxDen int) (num, den int) {
	if maxDen <= 0 {
		maxDen = 4096
	}

	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 1, 1
	}

	a0 := math.Floor(v)
	p0, q0 := 1.0, 0.0
	p1, q1 := a0, 1.0
	x := v

	for {
		frac := x - math.Floor(x)
		if frac == 0 {
			break
		}

		x = 1 / frac
		a := math.Floor(x)
		p2 := a*p1 + p0

		q2 := a*q1 + q0
		if q2 > float64(maxDen) {
			break
		}

		p0, q0 = p1, q1
		p1, q1 = p2, q2
	}

	num = int(math.Round(p1))

	den = int(math.Round(q1))
	if den <= 0 {
		return 1, 1
	}

	g := gcd(num, den)

	return num / g, den / g
}

func gcd(a, b int) int {
	if a < 0 {
		a = -a
	}

	if b < 0 {
		b = -b
	}

	for b != 0 {
		a, b = b, a%b
	}

	if a == 0 {
		return 1
	}

	return a
}

func sinc(x float64) float64 {
	if math.Abs(x) < 1e-12 {
		return 1
	}

	pix := math.Pi * x

	return math.Sin(pix) / pix
}

func kaiserWindow(i, n int, beta float64) float64 {
	if n <= 1 || beta == 0 {
		return 1
	}

	t := 2*float64(i)/float64(n-1) - 1
	a := math.Sqrt(math.Max(0, 1-t*t))

	return i0(beta*a) / i0(beta)
}

func i0(x float64) float64 {
	// Power series approximation.
	sum := 1.0
	term := 1.0

	x2 := (x * x) / 4
	for k := 1; k < 64; k++ {
		term *= x2 / float64(k*k)

		sum += term
		if term < 1e-16*sum {
			break
		}
	}

	return sum
}
