package transform

import "testing"

func BenchmarkForward64K(b *testing.B) {
	n := 65536
	src := randomSequence(1, n)
	dst := make([]complex128, n)

	for _, name := range Names() {
		tr, _ := New(name)
		b.Run(name, func(b *testing.B) {
			b.SetBytes(int64(n * 16))
			b.ResetTimer()
			for range b.N {
				_ = tr.Forward(dst, src)
			}
		})
	}
}
