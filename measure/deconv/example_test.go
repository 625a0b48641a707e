package deconv_test

import (
	"fmt"

	"github.com/cwbudde/room-raider/dsp/buffer"
	"github.com/cwbudde/room-raider/dsp/conv"
	"github.com/cwbudde/room-raider/measure/deconv"
)

func ExampleDeconvolve() {
	ref, _ := buffer.FromChannels(48000, []float64{1, 0.5, 0.25})
	captured, _ := buffer.FromChannels(48000, []float64{0, 0, 1, 0.5, 0.25})
	out, _ := buffer.New(1, 4, 48000)

	_ = deconv.Deconvolve(captured, ref, out, deconv.WithEngine(conv.NewDirect))

	fmt.Printf("%.3f\n", out.Channel(0))
	// Output:
	// [0.190 0.476 1.000 0.476]
}
