package spectrum

import (
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n:need], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

func unpack(in []complex128) (re, im []float64, buf *scratchBuf) {
	re, im, buf = getScratch(len(in))
	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}
	return re, im, buf
}

// Magnitude returns |X[k]| for each complex spectrum bin.
//
// This function uses SIMD-optimized implementations when available (AVX2, SSE2, NEON).
// Scratch buffers are pooled internally, so in steady state this allocates only the
// output slice.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := unpack(in)
	vecmath.Magnitude(out, re, im)
	putScratch(buf)
	return out
}

// Power returns |X[k]|^2 for each complex spectrum bin.
func Power(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := unpack(in)
	vecmath.Power(out, re, im)
	putScratch(buf)
	return out
}

// OneSided returns the non-negative-frequency half of an n-point spectrum,
// bins [0, n/2]. The returned slice aliases in.
func OneSided(in []complex128) []complex128 {
	if len(in) < 2 {
		return in
	}
	return in[:len(in)/2+1]
}

// BandEnergy sums |X[k]|^2 over the one-sided bins whose frequency lies
// strictly inside r. bins is the full n-point spectrum.
func BandEnergy(bins []complex128, sampleRate float64, r FrequencyRange) float64 {
	n := len(bins)
	pow := Power(OneSided(bins))
	sum := 0.0
	for k, p := range pow {
		if r.Contains(BinFrequency(k, n, sampleRate)) {
			sum += p
		}
	}
	return sum
}

// TotalEnergy sums |X[k]|^2 over the one-sided bins of an n-point spectrum.
func TotalEnergy(bins []complex128) float64 {
	sum := 0.0
	for _, p := range Power(OneSided(bins)) {
		sum += p
	}
	return sum
}

// EnergyRatio returns the share of one-sided energy inside r, in [0, 1].
// A silent spectrum yields 0.
func EnergyRatio(bins []complex128, sampleRate float64, r FrequencyRange) float64 {
	total := TotalEnergy(bins)
	if total == 0 {
		return 0
	}
	return BandEnergy(bins, sampleRate, r) / total
}
