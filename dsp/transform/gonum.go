package transform

import "gonum.org/v1/gonum/dsp/fourier"

// GonumFFT runs transforms through gonum's fourier.CmplxFFT. A CmplxFFT
// carries work buffers, so one is built per call.
type GonumFFT struct{}

// Forward computes the unscaled forward DFT of src into dst.
func (GonumFFT) Forward(dst, src []complex128) error {
	if err := Check(dst, src); err != nil {
		return err
	}
	fourier.NewCmplxFFT(len(src)).Coefficients(dst, src)
	return nil
}

// Inverse computes the 1/n-normalised inverse DFT of src into dst.
// gonum's Sequence is unnormalised.
func (GonumFFT) Inverse(dst, src []complex128) error {
	if err := Check(dst, src); err != nil {
		return err
	}
	fourier.NewCmplxFFT(len(src)).Sequence(dst, src)
	scale := complex(1/float64(len(src)), 0)
	for i := range dst {
		dst[i] *= scale
	}
	return nil
}
