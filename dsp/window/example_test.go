package window_test

import (
	"fmt"

	"github.com/cwbudde/room-raider/dsp/window"
)

func ExampleFade() {
	buf := []float64{1, 1, 1, 1, 1, 1, 1, 1}
	_ = window.Fade(buf, 2, 2, window.ShapeHann)

	fmt.Printf("%.2f\n", buf)
	// Output:
	// [0.00 0.50 1.00 1.00 1.00 1.00 0.50 0.00]
}
