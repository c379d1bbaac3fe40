package buffer

import "github.com/cwbudde/spectral-extract/dsp/core"

// Bins wraps a complex128 slice with reuse-friendly semantics.
// Spectral functions accept raw []complex128; use Data() to bridge.
type Bins struct {
	data []complex128
}

// New returns a zero-filled Bins of the given length.
func New(length int) *Bins {
	if length < 0 {
		length = 0
	}
	return &Bins{data: make([]complex128, length)}
}

// Data returns the underlying slice.
func (b *Bins) Data() []complex128 {
	return b.data
}

// Len returns the current number of bins.
func (b *Bins) Len() int {
	return len(b.data)
}

// Resize sets the length to n, reusing existing capacity when possible.
// Elements beyond the previous length are zeroed.
func (b *Bins) Resize(n int) {
	oldLen := len(b.data)
	grown := core.EnsureLen(b.data, n)
	if cap(grown) != cap(b.data) {
		copy(grown, b.data)
	}
	b.data = grown
	if n > oldLen {
		core.Zero(b.data[oldLen:])
	}
}

// Zero sets all bins to 0.
func (b *Bins) Zero() {
	core.Zero(b.data)
}
