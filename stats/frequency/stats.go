// Package frequency describes the spectral shape of a rendered signal.
package frequency

import (
	"math"

	"github.com/cwbudde/spectral-extract/dsp/spectrum"
)

// Shape holds the spectral descriptors reported for an output.
type Shape struct {
	Centroid      float64 // magnitude-weighted mean frequency (Hz)
	Spread        float64 // magnitude-weighted deviation around Centroid (Hz)
	PeakFrequency float64 // frequency of the strongest bin (Hz)
}

// Describe computes the shape of a full n-point complex spectrum from its
// one-sided magnitudes.
func Describe(bins []complex128, sampleRate float64) Shape {
	mag := spectrum.Magnitude(spectrum.OneSided(bins))
	c, s := moments(mag, sampleRate)
	return Shape{
		Centroid:      c,
		Spread:        s,
		PeakFrequency: PeakFrequency(mag, sampleRate),
	}
}

// Centroid returns the spectral centroid in Hz of a one-sided magnitude
// spectrum of length n/2+1:
//
//	centroid = sum(f_k * |X_k|) / sum(|X_k|)
func Centroid(magnitude []float64, sampleRate float64) float64 {
	c, _ := moments(magnitude, sampleRate)
	return c
}

// PeakFrequency returns the frequency of the largest bin of a one-sided
// magnitude spectrum. Ties resolve to the lowest bin; silence yields 0.
func PeakFrequency(magnitude []float64, sampleRate float64) float64 {
	if len(magnitude) < 2 {
		return 0
	}
	peak := 0
	for k, v := range magnitude {
		if v > magnitude[peak] {
			peak = k
		}
	}
	if magnitude[peak] == 0 {
		return 0
	}
	return oneSidedFrequency(peak, len(magnitude), sampleRate)
}

// moments returns the first moment and the square root of the second
// central moment of the magnitude distribution over frequency.
func moments(magnitude []float64, sampleRate float64) (centroid, spread float64) {
	bins := len(magnitude)
	if bins < 2 {
		return 0, 0
	}

	var total, first float64
	for k, v := range magnitude {
		total += v
		first += v * oneSidedFrequency(k, bins, sampleRate)
	}
	if total == 0 {
		return 0, 0
	}
	centroid = first / total

	var second float64
	for k, v := range magnitude {
		d := oneSidedFrequency(k, bins, sampleRate) - centroid
		second += v * d * d
	}
	return centroid, math.Sqrt(second / total)
}

// oneSidedFrequency maps bin k of a bins-long one-sided spectrum to Hz.
func oneSidedFrequency(k, bins int, sampleRate float64) float64 {
	return spectrum.BinFrequency(k, 2*(bins-1), sampleRate)
}
