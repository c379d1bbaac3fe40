package frequency_test

import (
	"fmt"

	"github.com/cwbudde/spectral-extract/stats/frequency"
)

func ExampleCentroid() {
	// One-sided magnitudes of an 8-point FFT at 8 Hz: 1 Hz per bin.
	mag := []float64{0, 1, 0, 1, 0}
	fmt.Printf("%.1f Hz\n", frequency.Centroid(mag, 8))

	// Output:
	// 2.0 Hz
}
