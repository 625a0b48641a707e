// Package audiofile loads and saves WAV files as dsp buffers.
package audiofile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
	"github.com/farcloser/primordium/fault"

	"github.com/cwbudde/room-raider/dsp/buffer"
	"github.com/cwbudde/room-raider/dsp/core"
)

// MaxChannels is the largest channel count a WAV file may carry here.
const MaxChannels = 2

// DefaultPrecision is the sample width in bytes written by Save.
const DefaultPrecision = 3

var (
	// ErrChannels is returned for buffers that WAV output cannot represent.
	ErrChannels = fmt.Errorf("%w: audiofile: unsupported channel count", core.ErrInvalidValue)
	// ErrPrecision is returned for sample widths other than 1, 2 or 3 bytes.
	ErrPrecision = fmt.Errorf("%w: audiofile: unsupported precision", core.ErrInvalidValue)
)

// chunk is the number of frames pulled from a decoder per call.
const chunk = 4096

type saveConfig struct {
	precision int
}

// Option configures Save.
type Option func(*saveConfig)

// WithPrecision sets the sample width in bytes (1, 2 or 3).
func WithPrecision(bytes int) Option {
	return func(c *saveConfig) {
		c.precision = bytes
	}
}

// WithBitDepth sets the sample width in bits (8, 16 or 24).
func WithBitDepth(bits int) Option {
	return WithPrecision(bits / 8)
}

// Load decodes the WAV file at path into a buffer with one slice per
// channel. Mono files yield one channel.
func Load(path string) (*buffer.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w: %w", core.ErrIO, fault.ErrReadFailure, err)
	}
	defer f.Close()

	stream, format, err := wav.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %w: decode %s: %w", core.ErrIO, fault.ErrReadFailure, path, err)
	}
	defer stream.Close()

	channels := format.NumChannels
	if channels < 1 || channels > MaxChannels {
		return nil, fmt.Errorf("%w: %s has %d channels", ErrChannels, path, channels)
	}

	data := make([][]float64, channels)
	for ch := range data {
		data[ch] = make([]float64, 0, stream.Len())
	}

	frames := make([][2]float64, chunk)

	for {
		n, ok := stream.Stream(frames)
		for _, frame := range frames[:n] {
			for ch := range data {
				data[ch] = append(data[ch], frame[ch])
			}
		}

		if !ok {
			break
		}
	}

	if err := stream.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w: read %s: %w", core.ErrIO, fault.ErrReadFailure, path, err)
	}

	if len(data[0]) == 0 {
		return nil, fmt.Errorf("%w: %w: %s holds no samples", core.ErrIO, fault.ErrReadFailure, path)
	}

	return buffer.FromChannels(int(format.SampleRate), data...)
}

// Save encodes buf as a WAV file at path. The file is written next to its
// destination and renamed into place, so path is never left half written.
func Save(path string, buf *buffer.Buffer, opts ...Option) (err error) {
	cfg := saveConfig{precision: DefaultPrecision}
	for _, opt := range opts {
		opt(&cfg)
	}

	if buf == nil || buf.Channels() < 1 || buf.Channels() > MaxChannels {
		return ErrChannels
	}

	if cfg.precision < 1 || cfg.precision > 3 {
		return fmt.Errorf("%w: %d bytes", ErrPrecision, cfg.precision)
	}

	format := beep.Format{
		SampleRate:  beep.SampleRate(buf.SampleRate()),
		NumChannels: buf.Channels(),
		Precision:   cfg.precision,
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("%w: create %s: %w", core.ErrIO, path, err)
	}

	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if err := wav.Encode(tmp, newStreamer(buf), format); err != nil {
		return errors.Join(fmt.Errorf("%w: encode %s: %w", core.ErrIO, path, err), tmp.Close())
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", core.ErrIO, path, err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: rename %s: %w", core.ErrIO, path, err)
	}

	return nil
}
