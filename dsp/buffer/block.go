package buffer

// Block wraps a float64 slice with reuse-friendly semantics.
// DSP functions accept raw []float64; use Samples() to bridge.
type Block struct {
	samples []float64
}

// Samples returns the underlying slice.
func (b *Block) Samples() []float64 {
	return b.samples
}

// Len returns the current number of samples.
func (b *Block) Len() int {
	return len(b.samples)
}

// Cap returns the current capacity of the backing slice.
func (b *Block) Cap() int {
	return cap(b.samples)
}

// Resize sets the length to n, reusing existing capacity when possible.
// New elements beyond the previous length are zeroed.
func (b *Block) Resize(n int) {
	if n < 0 {
		n = 0
	}

	oldLen := len(b.samples)
	if n <= cap(b.samples) {
		b.samples = b.samples[:n]
	} else {
		s := make([]float64, n)
		copy(s, b.samples)
		b.samples = s
	}

	// The backing array may hold data from a previous use.
	if n > oldLen {
		clear(b.samples[oldLen:])
	}
}

// Zero sets all samples to 0.
func (b *Block) Zero() {
	clear(b.samples)
}
