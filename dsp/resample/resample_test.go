package resample

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/room-raider/dsp/buffer"
	"github.com/cwbudde/room-raider/dsp/core"
	"github.com/cwbudde/room-raider/internal/testutil"
)

func TestNewRationalValidation(t *testing.T) {
	if _, err := NewRational(0, 1); !errors.Is(err, ErrInvalidRatio) {
		t.Fatalf("up=0: err = %v, want ErrInvalidRatio", err)
	}

	if _, err := NewRational(1, 0); !errors.Is(err, core.ErrInvalidValue) {
		t.Fatalf("down=0: err = %v, want ErrInvalidValue", err)
	}

	if _, err := NewForRates(0, 48000); !errors.Is(err, ErrInvalidRate) {
		t.Fatalf("inRate=0: err = %v, want ErrInvalidRate", err)
	}
}

func TestRatioReduction(t *testing.T) {
	r, err := NewRational(320, 294)
	if err != nil {
		t.Fatalf("NewRational() error = %v", err)
	}

	up, down := r.Ratio()
	if up != 160 || down != 147 {
		t.Fatalf("ratio = %d/%d, want 160/147", up, down)
	}
}

func TestPrototypeIsOddAndSymmetric(t *testing.T) {
	r, err := NewRational(3, 2)
	if err != nil {
		t.Fatalf("NewRational() error = %v", err)
	}

	taps := r.Prototype()
	if len(taps)%2 != 1 {
		t.Fatalf("len(taps) = %d, want odd", len(taps))
	}

	for i := range taps {
		if diff := math.Abs(taps[i] - taps[len(taps)-1-i]); diff > 1e-12 {
			t.Fatalf("taps[%d] asymmetric by %g", i, diff)
		}
	}
}

func TestOutputLenMatchesProcess(t *testing.T) {
	r, err := NewRational(3, 2)
	if err != nil {
		t.Fatalf("NewRational() error = %v", err)
	}

	for _, n := range []int{0, 1, 2, 257, 1000} {
		in := testutil.DeterministicSine(1000, 48000, 1, n)

		want := r.OutputLen(n)
		if got := len(r.Process(in)); got != want {
			t.Fatalf("n=%d: len(out) = %d, want %d", n, got, want)
		}
	}
}

func TestStandardRatios_Length(t *testing.T) {
	tests := []struct {
		inRate  float64
		outRate float64
	}{
		{44100, 48000},
		{48000, 44100},
		{48000, 96000},
		{96000, 48000},
	}
	for _, tc := range tests {
		r, err := NewForRates(tc.inRate, tc.outRate, WithQuality(QualityBalanced))
		if err != nil {
			t.Fatalf("NewForRates(%v,%v) error = %v", tc.inRate, tc.outRate, err)
		}

		in := testutil.DeterministicSine(1000, tc.inRate, 1, 4096)
		out := r.Process(in)

		expected := int(math.Round(float64(len(in)) * tc.outRate / tc.inRate))
		if d := absInt(len(out) - expected); d > 1 {
			t.Fatalf("%v->%v len=%d expected~%d", tc.inRate, tc.outRate, len(out), expected)
		}
	}
}

func TestProcessIsZeroDelay(t *testing.T) {
	tests := []struct {
		name     string
		up, down int
		at, want int
	}{
		{name: "upsample", up: 2, down: 1, at: 100, want: 200},
		{name: "downsample", up: 1, down: 2, at: 200, want: 100},
		{name: "identity-ratio", up: 3, down: 3, at: 50, want: 50},
	}

	for _, tc := range tests {
		r, err := NewRational(tc.up, tc.down)
		if err != nil {
			t.Fatalf("%s: NewRational() error = %v", tc.name, err)
		}

		in := make([]float64, 512)
		in[tc.at] = 1

		if got := testutil.PeakIndex(r.Process(in)); got != tc.want {
			t.Fatalf("%s: peak at %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestProcessAlignsSineAcrossRates(t *testing.T) {
	r, err := NewForRates(44100, 48000)
	if err != nil {
		t.Fatalf("NewForRates() error = %v", err)
	}

	out := r.Process(testutil.DeterministicSine(1000, 44100, 1, 8192))
	ref := testutil.DeterministicSine(1000, 48000, 1, len(out))

	for i := 512; i < len(out)-512; i++ {
		if diff := math.Abs(out[i] - ref[i]); diff > 1e-2 {
			t.Fatalf("sample %d: got %.5f want %.5f", i, out[i], ref[i])
		}
	}
}

func TestProcessIsStateless(t *testing.T) {
	r, err := NewRational(160, 147)
	if err != nil {
		t.Fatalf("NewRational() error = %v", err)
	}

	in := testutil.DeterministicSine(1000, 44100, 1, 2048)
	first := r.Process(in)
	second := r.Process(in)

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("sample %d differs between calls", i)
		}
	}
}

func TestBuffer(t *testing.T) {
	left := testutil.DeterministicSine(1000, 48000, 1, 4800)
	right := testutil.DeterministicSine(500, 48000, 1, 4800)

	src, err := buffer.FromChannels(48000, left, right)
	if err != nil {
		t.Fatalf("FromChannels() error = %v", err)
	}

	out, err := Buffer(src, 96000)
	if err != nil {
		t.Fatalf("Buffer() error = %v", err)
	}

	if out.SampleRate() != 96000 || out.Channels() != 2 || out.Len() != 9600 {
		t.Fatalf("got rate=%d channels=%d len=%d", out.SampleRate(), out.Channels(), out.Len())
	}

	same, err := Buffer(src, 48000)
	if err != nil {
		t.Fatalf("Buffer(same rate) error = %v", err)
	}

	same.Channel(0)[0] = 42
	if src.Channel(0)[0] == 42 {
		t.Fatal("same-rate Buffer shares memory with source")
	}

	if _, err := Buffer(src, 0); !errors.Is(err, core.ErrInvalidValue) {
		t.Fatalf("rate=0: err = %v, want ErrInvalidValue", err)
	}
}

func rms(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}

	var s float64
	for _, v := range x {
		s += v * v
	}

	return math.Sqrt(s / float64(len(x)))
}

func dbRatio(out, in float64) float64 {
	if in == 0 || out == 0 {
		return -300
	}

	return 20 * math.Log10(out/in)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}

	return v
}
