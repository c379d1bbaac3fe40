package transform_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/spectral-extract/dsp/transform"
)

func ExampleNew() {
	tr, err := transform.New(transform.GoDSP)
	if err != nil {
		panic(err)
	}

	// One cycle of a cosine over eight samples lands in bins 1 and 7.
	src := make([]complex128, 8)
	for i := range src {
		src[i] = complex(math.Cos(2*math.Pi*float64(i)/8), 0)
	}
	dst := make([]complex128, 8)
	if err := tr.Forward(dst, src); err != nil {
		panic(err)
	}
	fmt.Printf("%.1f %.1f %.1f\n", math.Abs(real(dst[0])), real(dst[1]), real(dst[7]))
	// Output: 0.0 4.0 4.0
}
