package extract

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/spectral-extract/codec"
	"github.com/cwbudde/spectral-extract/dsp/dither"
	"github.com/cwbudde/spectral-extract/dsp/spectrum"
	"github.com/cwbudde/spectral-extract/dsp/transform"
)

// Mode selects how ranges are rendered.
type Mode int

const (
	// ModeSingle renders one output holding the union of all ranges.
	ModeSingle Mode = iota
	// ModeMulti renders one output per range, concurrently.
	ModeMulti
)

// SingleLabel is the output label of a ModeSingle pass.
const SingleLabel = "extract"

func (m Mode) String() string {
	switch m {
	case ModeSingle:
		return "single"
	case ModeMulti:
		return "multi"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses "single" or "multi", ignoring case. An empty string
// selects ModeSingle.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "single":
		return ModeSingle, nil
	case "multi":
		return ModeMulti, nil
	default:
		return 0, fmt.Errorf("%w: unknown mode %q", ErrConfiguration, s)
	}
}

// Config holds the resolved settings of an Extractor.
type Config struct {
	Mode Mode
	// Ranges to keep. Empty selects the full spectrum of the analysed buffer.
	Ranges []spectrum.FrequencyRange
	// Threshold is the dB gate level; nil disables gating.
	Threshold    *float64
	OutputDir    string
	SampleFormat codec.SampleFormat
	// Dither applies to integer sample formats only.
	Dither dither.Type
	// Backend names the transform used when Transform is nil.
	Backend   string
	Transform transform.Transform
	Logger    logrus.FieldLogger
}

// Defaults.
const (
	DefaultOutputDir = "out"
	DefaultBackend   = transform.Default
)

// DefaultConfig returns the configuration used when no options are given:
// single mode, full spectrum, no gate, float32 output under "out".
func DefaultConfig() Config {
	return Config{
		Mode:         ModeSingle,
		OutputDir:    DefaultOutputDir,
		SampleFormat: codec.Float32,
		Backend:      DefaultBackend,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Mode != ModeSingle && c.Mode != ModeMulti {
		return fmt.Errorf("%w: unknown mode %v", ErrConfiguration, c.Mode)
	}
	for i, r := range c.Ranges {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("%w: range %d: %v", ErrConfiguration, i, err)
		}
	}
	if c.Mode == ModeMulti {
		seen := make(map[string]int, len(c.Ranges))
		for i, r := range c.Ranges {
			label := r.Label()
			if j, ok := seen[label]; ok {
				return fmt.Errorf("%w: ranges %d and %d share output label %q", ErrConfiguration, j, i, label)
			}
			seen[label] = i
		}
	}
	if c.Threshold != nil && math.IsNaN(*c.Threshold) {
		return fmt.Errorf("%w: threshold is NaN", ErrConfiguration)
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		return fmt.Errorf("%w: empty output directory", ErrConfiguration)
	}
	if c.SampleFormat.BitDepth() == 0 {
		return fmt.Errorf("%w: sample format %v", ErrConfiguration, c.SampleFormat)
	}
	if !c.Dither.Valid() {
		return fmt.Errorf("%w: dither type %v", ErrConfiguration, c.Dither)
	}
	return nil
}

// Option configures an Extractor.
type Option func(*Config)

// WithConfig replaces the whole configuration. Later options still apply.
func WithConfig(cfg Config) Option {
	return func(c *Config) {
		*c = cfg
	}
}

// WithMode sets the processing mode.
func WithMode(m Mode) Option {
	return func(c *Config) {
		c.Mode = m
	}
}

// WithRanges sets the frequency ranges to keep.
func WithRanges(ranges ...spectrum.FrequencyRange) Option {
	return func(c *Config) {
		c.Ranges = append([]spectrum.FrequencyRange(nil), ranges...)
	}
}

// WithThreshold enables the dB gate at db.
func WithThreshold(db float64) Option {
	return func(c *Config) {
		c.Threshold = &db
	}
}

// WithOutputDir sets the directory outputs are written to.
func WithOutputDir(dir string) Option {
	return func(c *Config) {
		c.OutputDir = dir
	}
}

// WithSampleFormat sets the sample encoding of written files.
func WithSampleFormat(f codec.SampleFormat) Option {
	return func(c *Config) {
		c.SampleFormat = f
	}
}

// WithDither sets the dither applied before integer quantization.
func WithDither(t dither.Type) Option {
	return func(c *Config) {
		c.Dither = t
	}
}

// WithBackend selects a registered transform backend by name.
func WithBackend(name string) Option {
	return func(c *Config) {
		c.Backend = name
	}
}

// WithTransform injects a transform, overriding the backend name.
func WithTransform(t transform.Transform) Option {
	return func(c *Config) {
		c.Transform = t
	}
}

// WithLogger sets the logger for job and pass events.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

// fileConfig is the JSON job file layout.
type fileConfig struct {
	Mode             string      `json:"mode"`
	FrequencyFilters [][]float64 `json:"frequencyFilters"`
	Threshold        *float64    `json:"threshold"`
	OutputDir        string      `json:"outputDir"`
	Format           string      `json:"format"`
	Dither           string      `json:"dither"`
	FFT              string      `json:"fft"`
}

// LoadConfig reads a JSON job file. Absent fields keep their defaults.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w: %w", ErrConfiguration, ErrJobFile, err)
	}
	defer f.Close()

	cfg, err := ReadConfig(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ReadConfig decodes a JSON job description from r.
func ReadConfig(r io.Reader) (Config, error) {
	var fc fileConfig
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&fc); err != nil {
		return Config{}, fmt.Errorf("%w: %w: %v", ErrConfiguration, ErrJobFile, err)
	}

	cfg := DefaultConfig()

	mode, err := ParseMode(fc.Mode)
	if err != nil {
		return Config{}, err
	}
	cfg.Mode = mode

	for i, pair := range fc.FrequencyFilters {
		if len(pair) != 2 {
			return Config{}, fmt.Errorf("%w: frequencyFilters[%d] has %d values, want [low, high]",
				ErrConfiguration, i, len(pair))
		}
		cfg.Ranges = append(cfg.Ranges, spectrum.FrequencyRange{Low: pair[0], High: pair[1]})
	}

	cfg.Threshold = fc.Threshold
	if fc.OutputDir != "" {
		cfg.OutputDir = fc.OutputDir
	}

	format, err := codec.ParseSampleFormat(fc.Format)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	cfg.SampleFormat = format

	dt, err := dither.ParseType(fc.Dither)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	cfg.Dither = dt

	if fc.FFT != "" {
		cfg.Backend = fc.FFT
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
