package dither_test

import (
	"fmt"

	"github.com/cwbudde/spectral-extract/dsp/dither"
)

func ExampleQuantizer_Quantize() {
	q, err := dither.NewQuantizer(16)
	if err != nil {
		panic(err)
	}
	fmt.Println(q.Quantize(0.5), q.Quantize(1.5), q.Quantize(-1))

	// Output:
	// 16384 32767 -32767
}
