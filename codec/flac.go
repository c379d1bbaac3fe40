package codec

import (
	"errors"
	"fmt"
	"io"

	"github.com/mewkiz/flac"
)

// DecodeFLAC decodes a native FLAC stream.
func DecodeFLAC(r io.Reader) (*Source, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid FLAC stream: %v", ErrUnsupportedFormat, err)
	}

	info := stream.Info
	channels := int(info.NChannels)
	bitDepth := int(info.BitsPerSample)
	if channels == 0 || bitDepth == 0 || bitDepth > 32 {
		return nil, fmt.Errorf("%w: FLAC with %d channels at %d bits", ErrUnsupportedFormat, channels, bitDepth)
	}
	scale := 1 / float64(int64(1)<<(bitDepth-1))

	planar := make([][]float64, channels)
	for ch := range planar {
		planar[ch] = make([]float64, 0, info.NSamples)
	}

	for {
		fr, err := stream.ParseNext()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("codec: failed to decode FLAC frame: %w", err)
		}
		if len(fr.Subframes) != channels {
			return nil, fmt.Errorf("codec: FLAC frame has %d subframes, stream has %d channels",
				len(fr.Subframes), channels)
		}
		for ch, sub := range fr.Subframes {
			for _, s := range sub.Samples {
				planar[ch] = append(planar[ch], float64(s)*scale)
			}
		}
	}

	src := &Source{
		SampleRate: int(info.SampleRate),
		Channels:   planar,
		BitDepth:   bitDepth,
		Format:     FormatFLAC,
	}
	if err := src.Validate(); err != nil {
		return nil, err
	}
	return src, nil
}
