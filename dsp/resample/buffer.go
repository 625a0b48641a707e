package resample

import (
	"fmt"

	"github.com/cwbudde/room-raider/dsp/buffer"
)

// Buffer converts every channel of src to rate and returns a new buffer.
// When src already runs at rate, a deep copy is returned.
func Buffer(src *buffer.Buffer, rate int, opts ...Option) (*buffer.Buffer, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil buffer", ErrInvalidRate)
	}

	if rate <= 0 || src.SampleRate() <= 0 {
		return nil, fmt.Errorf("%w: %d -> %d", ErrInvalidRate, src.SampleRate(), rate)
	}

	if src.SampleRate() == rate {
		return src.Copy(), nil
	}

	r, err := NewForRates(float64(src.SampleRate()), float64(rate), opts...)
	if err != nil {
		return nil, err
	}

	channels := make([][]float64, src.Channels())
	for ch := range channels {
		channels[ch] = r.Process(src.Channel(ch))
	}

	out, err := buffer.FromChannels(rate, channels...)
	if err != nil {
		return nil, fmt.Errorf("resample: %w", err)
	}

	return out, nil
}
