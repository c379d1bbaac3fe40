package extract

import (
	"fmt"

	"github.com/cwbudde/spectral-extract/codec"
	"github.com/cwbudde/spectral-extract/dsp/core"
)

// Analysis is a decoded source reduced to a mono power-of-two buffer.
type Analysis struct {
	SampleRate int
	// Samples is the downmixed buffer; its length is a power of two.
	Samples []complex128
	// Discarded counts trailing source samples dropped by quantization.
	Discarded      int
	SourceChannels int
}

// Quantize returns the largest power of two not exceeding n, or 0 for n < 1.
// Samples past that length are truncated, never padded.
func Quantize(n int) int {
	return core.FloorPowerOfTwo(n)
}

// Downmix averages the channels of src into a mono complex buffer of length
// Quantize(src.Len()). Imaginary parts are zero.
func Downmix(src *codec.Source) ([]complex128, error) {
	if err := src.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIngestion, err)
	}
	q := Quantize(src.Len())
	if q == 0 {
		return nil, fmt.Errorf("%w: source has no samples", ErrIngestion)
	}

	out := make([]complex128, q)
	scale := 1 / float64(src.NumChannels())
	for _, ch := range src.Channels {
		for i, v := range ch[:q] {
			out[i] += complex(v, 0)
		}
	}
	for i := range out {
		out[i] = complex(real(out[i])*scale, 0)
	}
	return out, nil
}

// Analyze downmixes and quantizes a decoded source.
func Analyze(src *codec.Source) (*Analysis, error) {
	samples, err := Downmix(src)
	if err != nil {
		return nil, err
	}
	return &Analysis{
		SampleRate:     src.SampleRate,
		Samples:        samples,
		Discarded:      src.Len() - len(samples),
		SourceChannels: src.NumChannels(),
	}, nil
}

// Ingest decodes the recording at path and analyzes it.
func Ingest(path string) (*Analysis, error) {
	src, err := codec.DecodeFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIngestion, err)
	}
	a, err := Analyze(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}
