package transform

import "github.com/mjibson/go-dsp/fft"

// GoDSPFFT runs transforms through github.com/mjibson/go-dsp/fft.
type GoDSPFFT struct{}

// Forward computes the unscaled forward DFT of src into dst.
func (GoDSPFFT) Forward(dst, src []complex128) error {
	if err := Check(dst, src); err != nil {
		return err
	}
	copy(dst, fft.FFT(src))
	return nil
}

// Inverse computes the 1/n-normalised inverse DFT of src into dst.
func (GoDSPFFT) Inverse(dst, src []complex128) error {
	if err := Check(dst, src); err != nil {
		return err
	}
	copy(dst, fft.IFFT(src))
	return nil
}
