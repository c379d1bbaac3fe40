package testutil

import (
	"io"
	"os"
	"testing"

	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
	"github.com/mewkiz/flac/meta"
)

// flacBlockSize is the number of samples per channel in each written frame.
const flacBlockSize = 4096

// writeSeeker hides Close so the FLAC encoder leaves the file open.
type writeSeeker struct {
	io.WriteSeeker
}

// WriteFLAC writes channels as a verbatim-coded FLAC file at bitDepth (8, 16
// or 24). Samples are clamped to [-1, 1] and scaled by 2^(bitDepth-1)-1. The
// length must leave a final frame of at least 16 samples.
func WriteFLAC(t testing.TB, path string, sampleRate, bitDepth int, channels ...[]float64) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	nch := len(channels)
	frames := frameCount(channels)
	info := &meta.StreamInfo{
		BlockSizeMin:  flacBlockSize,
		BlockSizeMax:  flacBlockSize,
		SampleRate:    uint32(sampleRate),
		NChannels:     uint8(nch),
		BitsPerSample: uint8(bitDepth),
		NSamples:      uint64(frames),
	}
	enc, err := flac.NewEncoder(writeSeeker{f}, info)
	if err != nil {
		t.Fatalf("flac encoder %s: %v", path, err)
	}

	data := quantizeInterleaved(channels, bitDepth)
	for start := 0; start < frames; start += flacBlockSize {
		n := min(flacBlockSize, frames-start)
		subframes := make([]*frame.Subframe, nch)
		for ch := range subframes {
			samples := make([]int32, n)
			for i := range samples {
				samples[i] = int32(data[(start+i)*nch+ch])
			}
			subframes[ch] = &frame.Subframe{
				SubHeader: frame.SubHeader{Pred: frame.PredVerbatim},
				Samples:   samples,
				NSamples:  n,
			}
		}
		fr := &frame.Frame{
			Header: frame.Header{
				HasFixedBlockSize: true,
				BlockSize:         uint16(n),
				SampleRate:        uint32(sampleRate),
				Channels:          frame.Channels(nch - 1),
				BitsPerSample:     uint8(bitDepth),
			},
			Subframes: subframes,
		}
		if err := enc.WriteFrame(fr); err != nil {
			t.Fatalf("encode frame at %d: %v", start, err)
		}
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("finalise %s: %v", path, err)
	}
}
