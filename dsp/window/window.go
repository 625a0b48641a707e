package window

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/room-raider/dsp/core"
)

// ErrInvalidLength is returned for negative or oversized ramp lengths.
var ErrInvalidLength = fmt.Errorf("%w: window: invalid ramp length", core.ErrInvalidValue)

// Shape identifies the taper used for a ramp.
type Shape int

const (
	// ShapeHann is the rising half of a Hann window.
	ShapeHann Shape = iota
	// ShapeLinear is a straight line from 0 to 1.
	ShapeLinear
	// ShapeCosine is the rising quarter of a sine.
	ShapeCosine
	// ShapeBlackman is the rising half of a Blackman window.
	ShapeBlackman
)

var shapeNames = map[Shape]string{
	ShapeHann:     "hann",
	ShapeLinear:   "linear",
	ShapeCosine:   "cosine",
	ShapeBlackman: "blackman",
}

func (s Shape) String() string {
	if name, ok := shapeNames[s]; ok {
		return name
	}

	return fmt.Sprintf("Shape(%d)", int(s))
}

// ParseShape resolves a shape by its String name.
func ParseShape(name string) (Shape, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for s, n := range shapeNames {
		if n == name {
			return s, nil
		}
	}

	return 0, fmt.Errorf("%w: window: unknown shape %q", core.ErrInvalidValue, name)
}

// Ramp returns n rising taper coefficients. The first coefficient is 0 and
// the sequence approaches 1 without reaching it, so a ramp followed by
// unity gain is continuous.
func Ramp(s Shape, n int) ([]float64, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, n)
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = rampAt(s, float64(i)/float64(n))
	}

	return out, nil
}

// Fade tapers the first fadeIn samples of buf with a rising ramp and the
// last fadeOut samples with a falling ramp. Both lengths are clamped to
// half of buf so the ramps never overlap.
func Fade(buf []float64, fadeIn, fadeOut int, s Shape) error {
	if fadeIn < 0 || fadeOut < 0 {
		return fmt.Errorf("%w: in=%d out=%d", ErrInvalidLength, fadeIn, fadeOut)
	}

	half := len(buf) / 2
	fadeIn = min(fadeIn, half)
	fadeOut = min(fadeOut, half)

	if fadeIn > 0 {
		ramp, err := Ramp(s, fadeIn)
		if err != nil {
			return err
		}

		vecmath.MulBlockInPlace(buf[:fadeIn], ramp)
	}

	if fadeOut > 0 {
		ramp, err := Ramp(s, fadeOut)
		if err != nil {
			return err
		}

		reverse(ramp)
		vecmath.MulBlockInPlace(buf[len(buf)-fadeOut:], ramp)
	}

	return nil
}

// rampAt evaluates the taper at x in [0, 1).
func rampAt(s Shape, x float64) float64 {
	switch s {
	case ShapeLinear:
		return x
	case ShapeCosine:
		return math.Sin(0.5 * math.Pi * x)
	case ShapeBlackman:
		return 0.42 - 0.5*math.Cos(math.Pi*x) + 0.08*math.Cos(2*math.Pi*x)
	default:
		return 0.5 * (1 - math.Cos(math.Pi*x))
	}
}

func reverse(x []float64) {
	for i, j := 0, len(x)-1; i < j; i, j = i+1, j-1 {
		x[i], x[j] = x[j], x[i]
	}
}
