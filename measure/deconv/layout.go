package deconv

// Layout holds the buffer geometry of one deconvolution.
type Layout struct {
	BufferSize int // B: padded length of the reference kernel
	KernelSize int // K = 2B: length of padded input and result
	Origin     int // index of zero lag in the result
}

// NewLayout computes the layout for the given captured and reference lengths.
func NewLayout(inLen, refLen int) Layout {
	b := max(inLen, refLen, 0)

	return Layout{
		BufferSize: b,
		KernelSize: 2 * b,
		Origin:     b - 1,
	}
}

// CausalLen returns the number of result samples at or after zero lag.
func (l Layout) CausalLen() int {
	return max(l.KernelSize-l.Origin, 0)
}

// Extract returns how many samples are copied into an output channel of
// length outLen.
func (l Layout) Extract(outLen int) int {
	return max(min(outLen, l.CausalLen()), 0)
}
