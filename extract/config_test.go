package extract

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/spectral-extract/codec"
	"github.com/cwbudde/spectral-extract/dsp/dither"
	"github.com/cwbudde/spectral-extract/dsp/spectrum"
	"github.com/cwbudde/spectral-extract/dsp/transform"
)

func TestParseMode(t *testing.T) {
	tests := map[string]Mode{"": ModeSingle, "single": ModeSingle, "Multi": ModeMulti, " MULTI ": ModeMulti}
	for in, want := range tests {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Fatalf("ParseMode(%q)=%v,%v want=%v", in, got, err, want)
		}
	}
	if _, err := ParseMode("parallel"); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("ParseMode(parallel) error=%v want ErrConfiguration", err)
	}
	if ModeMulti.String() != "multi" || Mode(5).String() != "Mode(5)" {
		t.Fatalf("unexpected mode strings %q %q", ModeMulti, Mode(5))
	}
}

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	if c.Mode != ModeSingle || c.OutputDir != "out" || c.SampleFormat != codec.Float32 ||
		c.Backend != transform.AlgoFFT || c.Threshold != nil || len(c.Ranges) != 0 {
		t.Fatalf("DefaultConfig()=%+v", c)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate()=%v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name string
		mod  func(*Config)
	}{
		{"bad mode", func(c *Config) { c.Mode = Mode(3) }},
		{"inverted range", func(c *Config) { c.Ranges = []spectrum.FrequencyRange{{Low: 500, High: 100}} }},
		{"empty range", func(c *Config) { c.Ranges = []spectrum.FrequencyRange{{Low: 100, High: 100}} }},
		{"infinite range", func(c *Config) { c.Ranges = []spectrum.FrequencyRange{{Low: 0, High: math.Inf(1)}} }},
		{"nan threshold", func(c *Config) { c.Threshold = &nan }},
		{"empty output dir", func(c *Config) { c.OutputDir = " " }},
		{"bad format", func(c *Config) { c.SampleFormat = codec.SampleFormat(9) }},
		{"bad dither", func(c *Config) { c.Dither = dither.Type(-1) }},
		{"duplicate multi labels", func(c *Config) {
			c.Mode = ModeMulti
			c.Ranges = []spectrum.FrequencyRange{{Low: 0, High: 500}, {Low: 0, High: 500}}
		}},
	}
	for _, tt := range tests {
		c := DefaultConfig()
		tt.mod(&c)
		if err := c.Validate(); !errors.Is(err, ErrConfiguration) {
			t.Fatalf("%s: Validate()=%v want ErrConfiguration", tt.name, err)
		}
	}

	c := DefaultConfig()
	c.Ranges = []spectrum.FrequencyRange{{Low: 0, High: 500}, {Low: 0, High: 500}}
	if err := c.Validate(); err != nil {
		t.Fatalf("duplicate ranges in single mode: %v", err)
	}
}

func TestOptions(t *testing.T) {
	ranges := []spectrum.FrequencyRange{{Low: 1, High: 2}}
	e, err := New(
		WithMode(ModeMulti),
		WithRanges(ranges...),
		WithThreshold(0),
		WithOutputDir("elsewhere"),
		WithSampleFormat(codec.PCM16),
		WithBackend("gonum"),
		WithDither(dither.Triangular),
	)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	ranges[0].High = 99

	c := e.Config()
	if c.Mode != ModeMulti || c.OutputDir != "elsewhere" || c.SampleFormat != codec.PCM16 || c.Backend != "gonum" {
		t.Fatalf("config=%+v", c)
	}
	if c.Threshold == nil || *c.Threshold != 0 {
		t.Fatalf("threshold=%v want 0", c.Threshold)
	}
	if c.Dither != dither.Triangular || e.writer.Dither != dither.Triangular {
		t.Fatalf("dither=%v writer=%v want tpdf", c.Dither, e.writer.Dither)
	}
	if c.Ranges[0].High != 2 {
		t.Fatal("WithRanges must copy its arguments")
	}
	if _, ok := e.transform.(transform.GonumFFT); !ok {
		t.Fatalf("transform=%T want GonumFFT", e.transform)
	}
}

func TestNewRejectsUnknownBackend(t *testing.T) {
	_, err := New(WithBackend("fftw"))
	if !errors.Is(err, ErrConfiguration) || !errors.Is(err, transform.ErrUnknownBackend) {
		t.Fatalf("New error=%v want ErrConfiguration and ErrUnknownBackend", err)
	}

	// An injected transform bypasses the backend lookup.
	if _, err := New(WithBackend("fftw"), WithTransform(transform.GoDSPFFT{})); err != nil {
		t.Fatalf("New with injected transform: %v", err)
	}
}

func TestReadConfig(t *testing.T) {
	js := `{
		"mode": "multi",
		"frequencyFilters": [[0, 500], [900, 1100]],
		"threshold": 0,
		"outputDir": "bands",
		"format": "pcm16",
		"dither": "tpdf",
		"fft": "godsp"
	}`
	c, err := ReadConfig(strings.NewReader(js))
	if err != nil {
		t.Fatalf("ReadConfig error: %v", err)
	}
	if c.Mode != ModeMulti || c.OutputDir != "bands" || c.SampleFormat != codec.PCM16 || c.Backend != "godsp" {
		t.Fatalf("config=%+v", c)
	}
	if c.Dither != dither.Triangular {
		t.Fatalf("dither=%v want tpdf", c.Dither)
	}
	if len(c.Ranges) != 2 || c.Ranges[1] != (spectrum.FrequencyRange{Low: 900, High: 1100}) {
		t.Fatalf("ranges=%v", c.Ranges)
	}
	if c.Threshold == nil || *c.Threshold != 0 {
		t.Fatalf("threshold=%v want explicit 0", c.Threshold)
	}
}

func TestReadConfigDefaults(t *testing.T) {
	c, err := ReadConfig(strings.NewReader(`{}`))
	if err != nil {
		t.Fatalf("ReadConfig error: %v", err)
	}
	d := DefaultConfig()
	if c.Mode != d.Mode || c.OutputDir != d.OutputDir || c.Backend != d.Backend || c.Threshold != nil || c.Ranges != nil {
		t.Fatalf("config=%+v want defaults", c)
	}
}

func TestReadConfigErrors(t *testing.T) {
	tests := []struct {
		js        string
		malformed bool
	}{
		{`{"mode": "both"}`, false},
		{`{"frequencyFilters": [[1, 2, 3]]}`, false},
		{`{"frequencyFilters": [[500, 100]]}`, false},
		{`{"format": "pcm8"}`, false},
		{`{"dither": "gaussian"}`, false},
		{`{"treshold": -20}`, true},
		{`not json`, true},
	}
	for _, tt := range tests {
		_, err := ReadConfig(strings.NewReader(tt.js))
		if !errors.Is(err, ErrConfiguration) {
			t.Fatalf("ReadConfig(%s) error=%v want ErrConfiguration", tt.js, err)
		}
		if got := errors.Is(err, ErrJobFile); got != tt.malformed {
			t.Fatalf("ReadConfig(%s) ErrJobFile=%v want=%v", tt.js, got, tt.malformed)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.json")
	if err := os.WriteFile(path, []byte(`{"mode":"single","frequencyFilters":[[900,1100]],"threshold":-90}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	c, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if c.Threshold == nil || *c.Threshold != -90 || len(c.Ranges) != 1 {
		t.Fatalf("config=%+v", c)
	}

	_, err = LoadConfig(filepath.Join(t.TempDir(), "none.json"))
	if !errors.Is(err, ErrConfiguration) || !errors.Is(err, ErrJobFile) || !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("LoadConfig(missing) error=%v want ErrConfiguration, ErrJobFile and ErrNotExist", err)
	}
}
