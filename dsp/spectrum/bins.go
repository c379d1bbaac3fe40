package spectrum

import (
	"fmt"
	"math"
	"strconv"

	"github.com/cwbudde/spectral-extract/dsp/core"
)

// FrequencyRange is an analysis target in Hz. Bin frequencies are tested
// against it as an open interval: Low < f < High.
type FrequencyRange struct {
	Low  float64
	High float64
}

// Validate reports whether r is a usable range.
func (r FrequencyRange) Validate() error {
	if math.IsNaN(r.Low) || math.IsNaN(r.High) || math.IsInf(r.Low, 0) || math.IsInf(r.High, 0) {
		return fmt.Errorf("frequency range bounds must be finite: [%v, %v]", r.Low, r.High)
	}
	if r.Low >= r.High {
		return fmt.Errorf("frequency range low must be < high: [%v, %v]", r.Low, r.High)
	}
	return nil
}

// Contains reports whether frequency lies strictly inside r.
func (r FrequencyRange) Contains(frequency float64) bool {
	return frequency > r.Low && frequency < r.High
}

// Label renders the literal bounds as "{low}-{high}", e.g. "900-1100".
func (r FrequencyRange) Label() string {
	return formatHz(r.Low) + "-" + formatHz(r.High)
}

// String implements fmt.Stringer.
func (r FrequencyRange) String() string {
	return "[" + formatHz(r.Low) + ", " + formatHz(r.High) + "]"
}

func formatHz(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// BinFrequency maps bin index k of an n-point transform to Hz:
//
//	f_k = k * (sampleRate / n)
func BinFrequency(k, n int, sampleRate float64) float64 {
	binWidth := sampleRate / float64(n)
	return float64(k) * binWidth
}

// FullSpectrum returns the default range [f_0, f_{n/2}] covering DC to Nyquist.
func FullSpectrum(n int, sampleRate float64) FrequencyRange {
	return FrequencyRange{
		Low:  BinFrequency(0, n, sampleRate),
		High: BinFrequency(n/2, n, sampleRate),
	}
}

// BinLevelDB estimates the single-sided amplitude level of a bin in dB:
//
//	magnitude = 2 * sqrt(re^2 + im^2) / (n / 2)
//	level     = 20 * log10(magnitude)
//
// A zero bin yields -Inf.
func BinLevelDB(bin complex128, n int) float64 {
	re := real(bin)
	im := imag(bin)
	magnitude := 2 * math.Sqrt(re*re+im*im) / (float64(n) / 2)
	return core.LinearToDB(magnitude)
}

// DynamicFilter returns 0 when the bin level is below thresholdDB and the
// bin unchanged otherwise.
func DynamicFilter(bin complex128, n int, thresholdDB float64) complex128 {
	if BinLevelDB(bin, n) < thresholdDB {
		return 0
	}
	return bin
}

// InRanges reports whether frequency lies strictly inside any of ranges.
// Ranges form a union; an empty list contains nothing.
func InRanges(frequency float64, ranges []FrequencyRange) bool {
	for _, r := range ranges {
		if r.Contains(frequency) {
			return true
		}
	}
	return false
}

// FreqFilter returns the bin when frequency lies inside one of ranges and 0
// otherwise.
func FreqFilter(bin complex128, frequency float64, ranges []FrequencyRange) complex128 {
	if InRanges(frequency, ranges) {
		return bin
	}
	return 0
}
