package buffer

import (
	"fmt"
	"time"

	"github.com/cwbudde/room-raider/dsp/core"
)

// MaxLength caps the per-channel length of any buffer or scratch block.
// Larger requests fail with core.ErrOutOfMemory instead of attempting the
// allocation.
const MaxLength = 1 << 28

// Buffer is a fixed-size multi-channel sample container.
// Channel count and length never change after construction.
type Buffer struct {
	channels   [][]float64
	length     int
	sampleRate int
}

// New returns a zero-filled Buffer with the given layout.
func New(channels, length, sampleRate int) (*Buffer, error) {
	if channels < 1 {
		return nil, fmt.Errorf("%w: buffer: channel count must be >= 1, got %d", core.ErrInvalidValue, channels)
	}

	if length < 0 {
		return nil, fmt.Errorf("%w: buffer: length must be >= 0, got %d", core.ErrInvalidValue, length)
	}

	if length > MaxLength {
		return nil, fmt.Errorf("%w: buffer: %d samples exceeds limit of %d", core.ErrOutOfMemory, length, MaxLength)
	}

	data := make([]float64, channels*length)

	b := &Buffer{
		channels:   make([][]float64, channels),
		length:     length,
		sampleRate: sampleRate,
	}

	for ch := range b.channels {
		b.channels[ch] = data[ch*length : (ch+1)*length : (ch+1)*length]
	}

	return b, nil
}

// FromChannels wraps existing channel slices without copying.
// All channels must have the same length.
func FromChannels(sampleRate int, channels ...[]float64) (*Buffer, error) {
	if len(channels) == 0 {
		return nil, fmt.Errorf("%w: buffer: no channels", core.ErrInvalidValue)
	}

	length := len(channels[0])
	if length > MaxLength {
		return nil, fmt.Errorf("%w: buffer: %d samples exceeds limit of %d", core.ErrOutOfMemory, length, MaxLength)
	}

	for ch, c := range channels {
		if len(c) != length {
			return nil, fmt.Errorf("%w: buffer: channel %d has %d samples, want %d",
				core.ErrInvalidValue, ch, len(c), length)
		}
	}

	return &Buffer{channels: channels, length: length, sampleRate: sampleRate}, nil
}

// Channels returns the channel count.
func (b *Buffer) Channels() int {
	return len(b.channels)
}

// Len returns the per-channel length in samples.
func (b *Buffer) Len() int {
	return b.length
}

// SampleRate returns the sample-rate tag in Hz.
func (b *Buffer) SampleRate() int {
	return b.sampleRate
}

// SetSampleRate changes the sample-rate tag without touching the samples.
func (b *Buffer) SetSampleRate(rate int) {
	b.sampleRate = rate
}

// Duration returns the buffer length as time at its sample rate.
func (b *Buffer) Duration() time.Duration {
	return core.SamplesToDuration(b.length, float64(b.sampleRate))
}

// Channel returns the raw samples of channel ch. It panics if ch is out of range.
func (b *Buffer) Channel(ch int) []float64 {
	return b.channels[ch]
}

// Zero clears every channel.
func (b *Buffer) Zero() {
	for _, c := range b.channels {
		core.Zero(c)
	}
}

// Copy returns a deep copy of the buffer.
func (b *Buffer) Copy() *Buffer {
	out := &Buffer{
		channels:   make([][]float64, len(b.channels)),
		length:     b.length,
		sampleRate: b.sampleRate,
	}

	for ch, c := range b.channels {
		out.channels[ch] = append([]float64(nil), c...)
	}

	return out
}

// View returns a buffer sharing memory with b that starts at sample offset.
// Writes through the view are visible in b.
func (b *Buffer) View(offset int) (*Buffer, error) {
	if offset < 0 || offset > b.length {
		return nil, fmt.Errorf("%w: buffer: view offset %d outside [0, %d]", core.ErrInvalidValue, offset, b.length)
	}

	v := &Buffer{
		channels:   make([][]float64, len(b.channels)),
		length:     b.length - offset,
		sampleRate: b.sampleRate,
	}

	for ch, c := range b.channels {
		v.channels[ch] = c[offset:]
	}

	return v, nil
}
