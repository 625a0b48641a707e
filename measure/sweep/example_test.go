package sweep_test

import (
	"fmt"
	"time"

	"github.com/cwbudde/room-raider/measure/sweep"
)

func ExampleGenerate() {
	p := sweep.Params{
		SampleRate: 48000,
		StartFreq:  10,
		EndFreq:    20000,
		Length:     20 * time.Millisecond,
	}

	out, err := sweep.Generate(p)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("channels=%d samples=%d rate=%d\n", out.Channels(), out.Len(), out.SampleRate())
	// Output:
	// channels=1 samples=960 rate=48000
}
