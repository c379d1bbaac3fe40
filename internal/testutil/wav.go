package testutil

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	wavFormatPCM   = 1
	wavFormatFloat = 3
)

// WriteWAV writes channels as an interleaved integer PCM file at bitDepth
// (8, 16, 24 or 32). Samples are clamped to [-1, 1]; 8-bit output is offset
// to unsigned.
func WriteWAV(t testing.TB, path string, sampleRate, bitDepth int, channels ...[]float64) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	offset := 0
	if bitDepth == 8 {
		offset = 128
	}
	data := quantizeInterleaved(channels, bitDepth)
	for i := range data {
		data[i] += offset
	}

	enc := wav.NewEncoder(f, sampleRate, bitDepth, len(channels), wavFormatPCM)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: len(channels), SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("finalise %s: %v", path, err)
	}
}

// WriteFloatWAV writes channels as an interleaved 32-bit IEEE float file.
func WriteFloatWAV(t testing.TB, path string, sampleRate int, channels ...[]float64) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	frames := frameCount(channels)
	data := make([]int, 0, frames*len(channels))
	for i := range frames {
		for _, ch := range channels {
			// Raw float32 bits go through the 32-bit integer writer unchanged.
			data = append(data, int(int32(math.Float32bits(float32(ch[i])))))
		}
	}

	enc := wav.NewEncoder(f, sampleRate, 32, len(channels), wavFormatFloat)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: len(channels), SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 32,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("finalise %s: %v", path, err)
	}
}

// WriteFloat64WAV writes channels as an interleaved 64-bit IEEE float file.
// The header is written by hand because the WAV encoder has no 64-bit path.
func WriteFloat64WAV(t testing.TB, path string, sampleRate int, channels ...[]float64) {
	t.Helper()

	frames := frameCount(channels)
	nch := len(channels)
	dataSize := frames * nch * 8

	var b bytes.Buffer
	le := binary.LittleEndian
	b.WriteString("RIFF")
	_ = binary.Write(&b, le, uint32(36+dataSize))
	b.WriteString("WAVEfmt ")
	for _, field := range []any{
		uint32(16),
		uint16(wavFormatFloat),
		uint16(nch),
		uint32(sampleRate),
		uint32(sampleRate * nch * 8),
		uint16(nch * 8),
		uint16(64),
	} {
		_ = binary.Write(&b, le, field)
	}
	b.WriteString("data")
	_ = binary.Write(&b, le, uint32(dataSize))
	for i := range frames {
		for _, ch := range channels {
			_ = binary.Write(&b, le, ch[i])
		}
	}

	if err := os.WriteFile(path, b.Bytes(), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// quantizeInterleaved rounds channels to signed bitDepth integers in frame
// order. Samples are clamped to [-1, 1].
func quantizeInterleaved(channels [][]float64, bitDepth int) []int {
	scale := float64(int64(1)<<(bitDepth-1) - 1)
	frames := frameCount(channels)
	data := make([]int, 0, frames*len(channels))
	for i := range frames {
		for _, ch := range channels {
			v := math.Max(-1, math.Min(1, ch[i]))
			data = append(data, int(math.Round(v*scale)))
		}
	}
	return data
}

func frameCount(channels [][]float64) int {
	if len(channels) == 0 {
		return 0
	}
	return len(channels[0])
}
