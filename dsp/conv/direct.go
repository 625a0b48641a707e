package conv

import "gonum.org/v1/gonum/floats"

// DirectEngine is the time-domain [Engine].
type DirectEngine struct {
	// reversed holds the kernel back to front so each output sample is a
	// single dot product with a contiguous input window.
	reversed []float64
	scratch  []float64
	closed   bool
}

// NewDirect creates a direct convolution engine. It satisfies [Factory].
func NewDirect(kernel []float64) (Engine, error) {
	if len(kernel) == 0 {
		return nil, ErrEmptyKernel
	}

	m := len(kernel)
	reversed := make([]float64, m)

	for i, v := range kernel {
		reversed[m-1-i] = v
	}

	return &DirectEngine{reversed: reversed}, nil
}

// KernelLen returns the kernel length.
func (d *DirectEngine) KernelLen() int {
	return len(d.reversed)
}

// Process implements [Engine].
func (d *DirectEngine) Process(dst, src []float64) error {
	if err := checkProcess(dst, src, d.closed); err != nil {
		return err
	}

	// Outputs depend on earlier inputs only. Work on a copy so dst may
	// alias src.
	if cap(d.scratch) < len(src) {
		d.scratch = make([]float64, len(src))
	}

	in := d.scratch[:len(src)]
	copy(in, src)

	m := len(d.reversed)
	for i := range in {
		j := min(i, m-1)
		dst[i] = floats.Dot(d.reversed[m-1-j:], in[i-j:i+1])
	}

	return nil
}

// Close implements [Engine].
func (d *DirectEngine) Close() error {
	d.closed = true
	d.reversed = nil
	d.scratch = nil

	return nil
}
