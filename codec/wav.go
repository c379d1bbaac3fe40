package codec

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/spectral-extract/dsp/dither"
)

// WAVE format tags.
const (
	wavFormatPCM   = 1
	wavFormatFloat = 3
)

// intDivisor returns the full-scale divisor for integer PCM at bitDepth.
func intDivisor(bitDepth int) (float64, error) {
	switch bitDepth {
	case 8:
		return 128.0, nil
	case 16:
		return 32768.0, nil
	case 24:
		return 8388608.0, nil
	case 32:
		return 2147483648.0, nil
	default:
		return 0, fmt.Errorf("%w: %d-bit PCM", ErrUnsupportedFormat, bitDepth)
	}
}

// DecodeWAV decodes a RIFF/WAVE stream holding 8, 16, 24 or 32-bit integer
// PCM or 32 or 64-bit IEEE float samples.
func DecodeWAV(r io.ReadSeeker) (*Source, error) {
	d := wav.NewDecoder(r)
	if !d.IsValidFile() {
		if err := d.Err(); err != nil {
			return nil, fmt.Errorf("%w: invalid WAV file: %v", ErrUnsupportedFormat, err)
		}
		return nil, fmt.Errorf("%w: invalid WAV file", ErrUnsupportedFormat)
	}

	channels := int(d.NumChans)
	bitDepth := int(d.BitDepth)

	var (
		planar [][]float64
		err    error
	)
	switch d.WavAudioFormat {
	case wavFormatPCM:
		planar, err = decodeIntPCM(d, channels, bitDepth)
	case wavFormatFloat:
		planar, err = decodeFloatPCM(d, channels, bitDepth)
	default:
		err = fmt.Errorf("%w: WAVE format tag %d", ErrUnsupportedFormat, d.WavAudioFormat)
	}
	if err != nil {
		return nil, err
	}

	src := &Source{
		SampleRate: int(d.SampleRate),
		Channels:   planar,
		BitDepth:   bitDepth,
		Format:     FormatWAV,
	}
	if err := src.Validate(); err != nil {
		return nil, err
	}
	return src, nil
}

func decodeIntPCM(d *wav.Decoder, channels, bitDepth int) ([][]float64, error) {
	divisor, err := intDivisor(bitDepth)
	if err != nil {
		return nil, err
	}

	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("codec: failed to read PCM data: %w", err)
	}
	if bitDepth == 8 {
		// 8-bit PCM is unsigned with silence at 128.
		for i := range buf.Data {
			buf.Data[i] -= 128
		}
	}
	return deinterleave(buf.Data, channels, 1/divisor), nil
}

func decodeFloatPCM(d *wav.Decoder, channels, bitDepth int) ([][]float64, error) {
	if bitDepth != 32 && bitDepth != 64 {
		return nil, fmt.Errorf("%w: %d-bit float", ErrUnsupportedFormat, bitDepth)
	}
	if err := d.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("codec: failed to locate PCM data: %w", err)
	}

	if bitDepth == 64 {
		data := make([]float64, d.PCMSize/8)
		if err := binary.Read(d.PCMChunk, binary.LittleEndian, data); err != nil {
			return nil, fmt.Errorf("codec: failed to read float data: %w", err)
		}
		return deinterleave(data, channels, 1), nil
	}

	data := make([]float32, d.PCMSize/4)
	if err := binary.Read(d.PCMChunk, binary.LittleEndian, data); err != nil {
		return nil, fmt.Errorf("codec: failed to read float data: %w", err)
	}
	return deinterleave(data, channels, 1), nil
}

// EncodeOption configures EncodeWAV.
type EncodeOption func(*encodeConfig)

type encodeConfig struct {
	dither dither.Type
	seed   *uint64
}

// WithDither adds dither noise of type t before integer quantization. It has
// no effect on Float32 output.
func WithDither(t dither.Type) EncodeOption {
	return func(c *encodeConfig) { c.dither = t }
}

// WithDitherSeed makes dither noise reproducible.
func WithDitherSeed(seed uint64) EncodeOption {
	return func(c *encodeConfig) { c.seed = &seed }
}

// EncodeWAV writes samples as a mono WAV file in the given sample format.
// Integer formats clamp samples to [-1, 1].
func EncodeWAV(w io.WriteSeeker, samples []float64, sampleRate int, format SampleFormat, opts ...EncodeOption) error {
	if sampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrInvalidSource, sampleRate)
	}
	bitDepth := format.BitDepth()
	if bitDepth == 0 {
		return fmt.Errorf("%w: sample format %v", ErrUnsupportedFormat, format)
	}

	var cfg encodeConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	var data []int
	audioFormat := wavFormatPCM
	if format == Float32 {
		audioFormat = wavFormatFloat
		data = make([]int, len(samples))
		// float32 bit patterns pass through the 32-bit integer path unchanged.
		for i, v := range samples {
			data[i] = int(int32(math.Float32bits(float32(v))))
		}
	} else {
		qopts := []dither.Option{dither.WithType(cfg.dither)}
		if cfg.seed != nil {
			qopts = append(qopts, dither.WithSeed(*cfg.seed))
		}
		q, err := dither.NewQuantizer(bitDepth, qopts...)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
		}
		data = q.QuantizeAll(samples)
	}

	enc := wav.NewEncoder(w, sampleRate, bitDepth, 1, audioFormat)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("codec: failed to encode samples: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("codec: failed to finalise WAV file: %w", err)
	}
	return nil
}
