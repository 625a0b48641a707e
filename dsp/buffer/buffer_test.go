package buffer

import (
	"errors"
	"testing"
	"time"

	"github.com/cwbudde/room-raider/dsp/core"
)

func TestNewZeroFilled(t *testing.T) {
	b, err := New(2, 8, 48000)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if b.Channels() != 2 || b.Len() != 8 || b.SampleRate() != 48000 {
		t.Fatalf("layout = %d ch x %d @ %d, want 2 x 8 @ 48000", b.Channels(), b.Len(), b.SampleRate())
	}

	for ch := range b.Channels() {
		for i, v := range b.Channel(ch) {
			if v != 0 {
				t.Fatalf("Channel(%d)[%d] = %v, want 0", ch, i, v)
			}
		}
	}
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name     string
		channels int
		length   int
		want     error
	}{
		{"zero channels", 0, 8, core.ErrInvalidValue},
		{"negative length", 1, -1, core.ErrInvalidValue},
		{"too long", 1, MaxLength + 1, core.ErrOutOfMemory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.channels, tt.length, 48000)
			if !errors.Is(err, tt.want) {
				t.Fatalf("New() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestChannelsDoNotAlias(t *testing.T) {
	b, err := New(2, 4, 48000)
	if err != nil {
		t.Fatal(err)
	}

	// Appending to channel 0 must not spill into channel 1.
	c0 := append(b.Channel(0), 99)
	_ = c0

	if b.Channel(1)[0] != 0 {
		t.Fatal("channel 0 capacity overlaps channel 1")
	}
}

func TestFromChannelsSharesMemory(t *testing.T) {
	s := []float64{1, 2, 3}

	b, err := FromChannels(44100, s)
	if err != nil {
		t.Fatal(err)
	}

	b.Channel(0)[0] = 99
	if s[0] != 99 {
		t.Fatal("FromChannels should share underlying memory")
	}
}

func TestFromChannelsLengthMismatch(t *testing.T) {
	_, err := FromChannels(44100, []float64{1, 2}, []float64{1})
	if !errors.Is(err, core.ErrInvalidValue) {
		t.Fatalf("error = %v, want ErrInvalidValue", err)
	}

	_, err = FromChannels(44100)
	if !errors.Is(err, core.ErrInvalidValue) {
		t.Fatalf("error = %v, want ErrInvalidValue", err)
	}
}

func TestCopyIsDeep(t *testing.T) {
	b, err := FromChannels(48000, []float64{1, 2}, []float64{3, 4})
	if err != nil {
		t.Fatal(err)
	}

	c := b.Copy()
	c.Channel(1)[0] = 42

	if b.Channel(1)[0] != 3 {
		t.Fatal("Copy shares memory with the original")
	}

	if c.Channels() != 2 || c.Len() != 2 || c.SampleRate() != 48000 {
		t.Fatal("Copy changed the layout")
	}
}

func TestViewSharesMemory(t *testing.T) {
	b, err := New(1, 10, 48000)
	if err != nil {
		t.Fatal(err)
	}

	v, err := b.View(4)
	if err != nil {
		t.Fatal(err)
	}

	if v.Len() != 6 {
		t.Fatalf("view Len() = %d, want 6", v.Len())
	}

	v.Channel(0)[0] = 1
	if b.Channel(0)[4] != 1 {
		t.Fatal("write through view not visible in parent")
	}

	if _, err := b.View(11); !errors.Is(err, core.ErrInvalidValue) {
		t.Fatalf("View(11) error = %v, want ErrInvalidValue", err)
	}
}

func TestZeroAndDuration(t *testing.T) {
	b, err := FromChannels(1000, []float64{1, 2, 3, 4})
	if err != nil {
		t.Fatal(err)
	}

	if b.Duration() != 4*time.Millisecond {
		t.Fatalf("Duration() = %v, want 4ms", b.Duration())
	}

	b.Zero()

	for i, v := range b.Channel(0) {
		if v != 0 {
			t.Fatalf("Channel(0)[%d] = %v after Zero", i, v)
		}
	}

	b.SetSampleRate(2000)
	if b.SampleRate() != 2000 {
		t.Fatalf("SampleRate() = %d, want 2000", b.SampleRate())
	}
}
