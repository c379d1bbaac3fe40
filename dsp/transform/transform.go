package transform

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/cwbudde/spectral-extract/dsp/core"
)

var (
	// ErrNotPowerOfTwo is returned when a sequence length is not a power of two.
	ErrNotPowerOfTwo = errors.New("transform: length must be a power of two")
	// ErrLengthMismatch is returned when dst and src lengths differ.
	ErrLengthMismatch = errors.New("transform: dst and src must have same length")
	// ErrUnknownBackend is returned by New for an unregistered backend name.
	ErrUnknownBackend = errors.New("transform: unknown backend")
)

// Transform is a forward/inverse discrete Fourier transform pair.
//
// dst and src must have the same power-of-two length and must not overlap.
type Transform interface {
	Forward(dst, src []complex128) error
	Inverse(dst, src []complex128) error
}

// Backend names accepted by New.
const (
	AlgoFFT = "algofft"
	GoDSP   = "godsp"
	Gonum   = "gonum"

	Default = AlgoFFT
)

var constructors = map[string]func() Transform{
	AlgoFFT: func() Transform { return NewAlgoFFT() },
	GoDSP:   func() Transform { return GoDSPFFT{} },
	Gonum:   func() Transform { return GonumFFT{} },
}

// New returns the backend registered under name. An empty name selects Default.
func New(name string) (Transform, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = Default
	}
	ctor, ok := constructors[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownBackend, name, strings.Join(Names(), ", "))
	}
	return ctor(), nil
}

// Names returns the registered backend names in sorted order.
func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Check validates a dst/src pair for a transform call.
func Check(dst, src []complex128) error {
	if len(dst) != len(src) {
		return fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(dst), len(src))
	}
	if !core.IsPowerOfTwo(len(src)) {
		return fmt.Errorf("%w: %d", ErrNotPowerOfTwo, len(src))
	}
	return nil
}
