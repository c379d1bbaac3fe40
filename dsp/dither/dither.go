// Package dither quantizes normalised samples to signed integers with
// optional dither noise.
package dither

import (
	"fmt"
	"strings"
)

// Type selects the probability distribution used for dither noise.
type Type int

const (
	// None applies no dither (plain rounding).
	None Type = iota
	// Rectangular uses a uniform PDF spanning one LSB.
	Rectangular
	// Triangular uses a triangular PDF (TPDF) spanning two LSB, the common choice.
	Triangular

	typeCount // sentinel for validation
)

var typeNames = [typeCount]string{"none", "rpdf", "tpdf"}

// String returns the name accepted by ParseType.
func (t Type) String() string {
	if t.Valid() {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Valid reports whether t is a known dither type.
func (t Type) Valid() bool {
	return t >= 0 && t < typeCount
}

// ParseType parses a dither name. An empty name selects None.
func ParseType(name string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none", "off":
		return None, nil
	case "rpdf", "rectangular":
		return Rectangular, nil
	case "tpdf", "triangular":
		return Triangular, nil
	default:
		return 0, fmt.Errorf("dither: unknown dither type %q", name)
	}
}
