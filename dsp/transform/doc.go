// Package transform adapts FFT backends to a single forward/inverse pair
// over power-of-two length complex sequences.
//
// Three backends are registered:
//
//	algofft  github.com/cwbudde/algo-fft (default)
//	godsp    github.com/mjibson/go-dsp/fft
//	gonum    gonum.org/v1/gonum/dsp/fourier
//
// All backends follow the standard convention: Forward is unscaled and
// Inverse is normalised by 1/n, so Inverse(Forward(x)) == x. Every backend
// is safe for concurrent use.
package transform
