package conv_test

import (
	"fmt"

	"github.com/cwbudde/room-raider/dsp/conv"
)

func ExampleDirect() {
	// Simple moving average filter
	signal := []float64{1, 2, 3, 4, 5, 4, 3, 2, 1}
	kernel := []float64{0.25, 0.5, 0.25}

	result, _ := conv.Direct(signal, kernel)

	fmt.Printf("Output length: %d\n", len(result))
	fmt.Printf("First few values: %.2f, %.2f, %.2f\n", result[0], result[1], result[2])

	// Output:
	// Output length: 11
	// First few values: 0.25, 1.00, 2.00
}

func ExampleFactoryByName() {
	factory, _ := conv.FactoryByName(conv.EngineDirect)

	// A delayed impulse shifts the signal by two samples.
	engine, _ := factory([]float64{0, 0, 1})
	defer engine.Close()

	src := []float64{1, 2, 3, 4, 5}
	dst := make([]float64, len(src))
	_ = engine.Process(dst, src)

	fmt.Printf("%.1f\n", dst)

	// Output:
	// [0.0 0.0 1.0 2.0 3.0]
}
