package codec

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var (
	// ErrUnsupportedFormat is returned for containers, encodings or bit depths
	// the decoder cannot read or the encoder cannot write.
	ErrUnsupportedFormat = errors.New("codec: unsupported format")
	// ErrInvalidSource is returned when a Source fails validation.
	ErrInvalidSource = errors.New("codec: invalid source")
)

// Format identifies a container format.
type Format string

const (
	// FormatUnknown is reported when neither magic bytes nor extension match.
	FormatUnknown Format = ""
	// FormatWAV is a RIFF/WAVE file.
	FormatWAV Format = "wav"
	// FormatFLAC is a native FLAC stream.
	FormatFLAC Format = "flac"
)

// Sniff identifies a container by its first four bytes.
func Sniff(header []byte) Format {
	switch {
	case len(header) < 4:
		return FormatUnknown
	case string(header[:4]) == "RIFF":
		return FormatWAV
	case string(header[:4]) == "fLaC":
		return FormatFLAC
	default:
		return FormatUnknown
	}
}

// FormatFromPath identifies a container by file extension.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".wave":
		return FormatWAV
	case ".flac":
		return FormatFLAC
	default:
		return FormatUnknown
	}
}

// SampleFormat selects the sample encoding of written WAV files.
type SampleFormat int

const (
	// Float32 writes 32-bit IEEE float samples (WAVE format 3).
	Float32 SampleFormat = iota
	// PCM16 writes 16-bit signed integer samples.
	PCM16
	// PCM24 writes 24-bit signed integer samples.
	PCM24
)

// String returns the canonical name accepted by ParseSampleFormat.
func (f SampleFormat) String() string {
	switch f {
	case Float32:
		return "float32"
	case PCM16:
		return "pcm16"
	case PCM24:
		return "pcm24"
	default:
		return fmt.Sprintf("SampleFormat(%d)", int(f))
	}
}

// BitDepth returns the bits per sample written for f, or 0 if f is unknown.
func (f SampleFormat) BitDepth() int {
	switch f {
	case Float32:
		return 32
	case PCM16:
		return 16
	case PCM24:
		return 24
	default:
		return 0
	}
}

// ParseSampleFormat parses a sample format name. An empty name selects Float32.
func ParseSampleFormat(name string) (SampleFormat, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "float32", "f32", "float":
		return Float32, nil
	case "pcm16", "s16", "int16":
		return PCM16, nil
	case "pcm24", "s24", "int24":
		return PCM24, nil
	default:
		return 0, fmt.Errorf("%w: sample format %q", ErrUnsupportedFormat, name)
	}
}
