package audiofile

import (
	"github.com/faiface/beep"

	"github.com/cwbudde/room-raider/dsp/buffer"
)

// bufferStreamer plays a buffer once. Mono buffers feed both beep lanes.
type bufferStreamer struct {
	buf *buffer.Buffer
	pos int
}

var _ beep.Streamer = (*bufferStreamer)(nil)

func newStreamer(buf *buffer.Buffer) *bufferStreamer {
	return &bufferStreamer{buf: buf}
}

func (s *bufferStreamer) Stream(samples [][2]float64) (int, bool) {
	remaining := s.buf.Len() - s.pos
	if remaining <= 0 {
		return 0, false
	}

	n := min(len(samples), remaining)
	left := s.buf.Channel(0)
	right := left

	if s.buf.Channels() > 1 {
		right = s.buf.Channel(1)
	}

	for i := range n {
		samples[i][0] = left[s.pos+i]
		samples[i][1] = right[s.pos+i]
	}

	s.pos += n

	return n, true
}

func (s *bufferStreamer) Err() error {
	return nil
}
