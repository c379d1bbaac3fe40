package codec

import "fmt"

// Source is a decoded recording in planar layout.
type Source struct {
	SampleRate int
	// Channels holds one slice per channel, all of equal length.
	Channels [][]float64
	// BitDepth is the bits per sample of the encoded input.
	BitDepth int
	Format   Format
}

// NumChannels returns the number of channels.
func (s *Source) NumChannels() int {
	return len(s.Channels)
}

// Len returns the number of samples per channel.
func (s *Source) Len() int {
	if len(s.Channels) == 0 {
		return 0
	}
	return len(s.Channels[0])
}

// Validate reports whether s is usable: a positive sample rate and at least
// one channel, with all channels the same length.
func (s *Source) Validate() error {
	if s.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrInvalidSource, s.SampleRate)
	}
	if len(s.Channels) == 0 {
		return fmt.Errorf("%w: no channels", ErrInvalidSource)
	}
	n := len(s.Channels[0])
	for i, ch := range s.Channels[1:] {
		if len(ch) != n {
			return fmt.Errorf("%w: channel %d has %d samples, channel 0 has %d",
				ErrInvalidSource, i+1, len(ch), n)
		}
	}
	return nil
}

// deinterleave splits interleaved frames into per-channel slices, scaling
// each sample by scale.
func deinterleave[T int | int32 | float32 | float64](data []T, channels int, scale float64) [][]float64 {
	frames := len(data) / channels
	out := make([][]float64, channels)
	for ch := range out {
		out[ch] = make([]float64, frames)
	}
	for i := range frames {
		for ch := range channels {
			out[ch][i] = float64(data[i*channels+ch]) * scale
		}
	}
	return out
}
