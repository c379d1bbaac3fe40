package dither

import (
	"fmt"
	"math"
	"math/rand/v2"
)

const (
	minBitDepth = 2
	maxBitDepth = 32
)

// Quantizer maps samples in [-1, 1] onto the symmetric integer range
// [-(2^(bits-1)-1), 2^(bits-1)-1]. A Quantizer holds RNG state and is not safe
// for concurrent use.
type Quantizer struct {
	bitDepth   int
	ditherType Type
	rng        *rand.Rand

	scale float64
	limit int
}

// Option configures a Quantizer.
type Option func(*Quantizer) error

// WithType sets the dither noise PDF (default None).
func WithType(t Type) Option {
	return func(q *Quantizer) error {
		if !t.Valid() {
			return fmt.Errorf("dither: invalid dither type: %d", t)
		}
		q.ditherType = t
		return nil
	}
}

// WithSeed makes the dither noise reproducible.
func WithSeed(seed uint64) Option {
	return func(q *Quantizer) error {
		q.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
		return nil
	}
}

// NewQuantizer returns a Quantizer for bitDepth (2 to 32).
func NewQuantizer(bitDepth int, opts ...Option) (*Quantizer, error) {
	if bitDepth < minBitDepth || bitDepth > maxBitDepth {
		return nil, fmt.Errorf("dither: bit depth must be in [%d, %d]: %d", minBitDepth, maxBitDepth, bitDepth)
	}

	q := &Quantizer{bitDepth: bitDepth}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(q); err != nil {
			return nil, err
		}
	}
	if q.rng == nil {
		q.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	q.limit = int(int64(1)<<(bitDepth-1) - 1)
	q.scale = float64(q.limit)
	return q, nil
}

// BitDepth returns the target bit depth.
func (q *Quantizer) BitDepth() int { return q.bitDepth }

// Type returns the dither noise type.
func (q *Quantizer) Type() Type { return q.ditherType }

// Quantize scales input to the integer range, adds dither, rounds and limits.
func (q *Quantizer) Quantize(input float64) int {
	v := math.Round(q.scale*input + q.noise())
	switch {
	case math.IsNaN(v):
		return 0
	case v > float64(q.limit):
		return q.limit
	case v < -float64(q.limit):
		return -q.limit
	default:
		return int(v)
	}
}

// QuantizeAll quantizes every sample of in into a new slice.
func (q *Quantizer) QuantizeAll(in []float64) []int {
	out := make([]int, len(in))
	for i, v := range in {
		out[i] = q.Quantize(v)
	}
	return out
}

func (q *Quantizer) noise() float64 {
	switch q.ditherType {
	case Rectangular:
		return q.rng.Float64() - 0.5
	case Triangular:
		return q.rng.Float64() - q.rng.Float64()
	default:
		return 0
	}
}
