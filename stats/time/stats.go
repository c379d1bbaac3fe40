// Package time summarises the level of a rendered signal in the time domain.
package time

import (
	"math"

	"github.com/cwbudde/spectral-extract/dsp/core"
)

// Summary holds the level statistics reported for a rendered output.
type Summary struct {
	Length      int
	Peak        float64 // max |x|
	PeakDB      float64
	PeakPos     int
	RMS         float64
	RMSDB       float64
	CrestFactor float64 // peak / RMS (linear), 0 for silence
	Clipped     int     // samples with |x| > 1, which integer formats saturate
}

func emptySummary() Summary {
	return Summary{
		PeakDB: math.Inf(-1),
		RMSDB:  math.Inf(-1),
	}
}

// Calculate computes the summary in a single pass.
func Calculate(signal []float64) Summary {
	n := len(signal)
	if n == 0 {
		return emptySummary()
	}

	var (
		sumSq   float64
		peak    float64
		peakPos int
		clipped int
	)

	for i, x := range signal {
		sumSq += x * x

		a := math.Abs(x)
		if a > peak {
			peak = a
			peakPos = i
		}
		if a > 1 {
			clipped++
		}
	}

	rms := math.Sqrt(sumSq / float64(n))

	var crest float64
	if rms > 0 {
		crest = peak / rms
	}

	return Summary{
		Length:      n,
		Peak:        peak,
		PeakDB:      core.LinearToDB(peak),
		PeakPos:     peakPos,
		RMS:         rms,
		RMSDB:       core.LinearToDB(rms),
		CrestFactor: crest,
		Clipped:     clipped,
	}
}

// RMS returns the root-mean-square of the signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	var sumSq float64
	for _, x := range signal {
		sumSq += x * x
	}

	return math.Sqrt(sumSq / float64(len(signal)))
}

// Peak returns the peak absolute amplitude of the signal.
func Peak(signal []float64) float64 {
	var peak float64
	for _, x := range signal {
		if a := math.Abs(x); a > peak {
			peak = a
		}
	}

	return peak
}
