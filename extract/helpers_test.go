package extract

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/cwbudde/spectral-extract/codec"
	"github.com/cwbudde/spectral-extract/dsp/transform"
	"github.com/cwbudde/spectral-extract/internal/testutil"
)

const (
	toneRate    = 44100
	toneLength  = 65536
	toneFreq    = 1000.0
	toneBase    = "tone"
	toneFixture = toneBase + ".wav"
)

// writeToneFixture writes a stereo full-scale 1000 Hz tone as float WAV.
func writeToneFixture(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, toneFixture)
	tone := testutil.DeterministicSine(toneFreq, toneRate, 1, toneLength)
	testutil.WriteFloatWAV(t, path, toneRate, tone, tone)
	return path
}

// decodeMono decodes a written output and checks it is mono.
func decodeMono(t *testing.T, path string) *codec.Source {
	t.Helper()
	src, err := codec.DecodeFile(path)
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	if src.NumChannels() != 1 {
		t.Fatalf("%s has %d channels, want 1", path, src.NumChannels())
	}
	return src
}

// spectrumOf returns the forward transform of a real signal.
func spectrumOf(t *testing.T, samples []float64) []complex128 {
	t.Helper()
	in := toComplex(samples)
	out := make([]complex128, len(in))
	if err := transform.NewAlgoFFT().Forward(out, in); err != nil {
		t.Fatalf("forward: %v", err)
	}
	return out
}

func toComplex(samples []float64) []complex128 {
	out := make([]complex128, len(samples))
	for i, v := range samples {
		out[i] = complex(v, 0)
	}
	return out
}

var errInjected = errors.New("injected failure")

// failingTransform fails the direction selected by its flags and delegates
// otherwise.
type failingTransform struct {
	forward bool
	inverse bool
}

func (f failingTransform) Forward(dst, src []complex128) error {
	if f.forward {
		return errInjected
	}
	return transform.GoDSPFFT{}.Forward(dst, src)
}

func (f failingTransform) Inverse(dst, src []complex128) error {
	if f.inverse {
		return errInjected
	}
	return transform.GoDSPFFT{}.Inverse(dst, src)
}
