package core

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}

	if cap(buf) >= n {
		return buf[:n]
	}

	return make([]float64, n)
}

// Zero sets all values in buf to 0.
func Zero(buf []float64) {
	clear(buf)
}

// CopyInto copies src into dst and returns the number of copied elements.
func CopyInto(dst, src []float64) int {
	return copy(dst, src)
}

// ReverseInto writes src into dst backwards in time: dst[i] = src[len(src)-1-i].
// dst must be at least len(src) long; elements past len(src) are left untouched.
func ReverseInto(dst, src []float64) {
	n := len(src)
	for i := range n {
		dst[i] = src[n-1-i]
	}
}
