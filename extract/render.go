package extract

import (
	"fmt"

	"github.com/cwbudde/spectral-extract/dsp/spectrum"
	"github.com/cwbudde/spectral-extract/dsp/transform"
)

// FilterBins writes the filtered copy of the shared spectrum src into dst.
// For each bin the dB gate runs first when threshold is non-nil, then the
// band filter. dst must be at least len(src) long and must not alias src.
func FilterBins(dst, src []complex128, sampleRate int, ranges []spectrum.FrequencyRange, threshold *float64) {
	n := len(src)
	sr := float64(sampleRate)
	for i, bin := range src {
		if threshold != nil {
			bin = spectrum.DynamicFilter(bin, n, *threshold)
		}
		dst[i] = spectrum.FreqFilter(bin, spectrum.BinFrequency(i, n, sr), ranges)
	}
}

// Reconstruct inverse-transforms bins and returns 2*real(x[i]). The factor
// restores the amplitude of the one-sided spectrum kept by the band filter.
func Reconstruct(t transform.Transform, bins []complex128) ([]float64, error) {
	x := make([]complex128, len(bins))
	if err := t.Inverse(x, bins); err != nil {
		return nil, fmt.Errorf("%w: inverse: %w", ErrTransform, err)
	}

	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = 2 * real(v)
	}
	return out, nil
}
