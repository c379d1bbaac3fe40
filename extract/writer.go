package extract

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/spectral-extract/codec"
	"github.com/cwbudde/spectral-extract/dsp/dither"
)

// EnsureDir creates dir and any missing parents. An existing directory is
// not an error; any other failure is wrapped in ErrWrite.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: create output directory %s: %w", ErrWrite, dir, err)
	}
	return nil
}

// OutputPath returns {dir}/{base}_{label}.wav.
func OutputPath(dir, base, label string) string {
	return filepath.Join(dir, base+"_"+label+".wav")
}

// BaseName returns the file name of path without its extension.
func BaseName(path string) string {
	name := filepath.Base(path)
	if stem := strings.TrimSuffix(name, filepath.Ext(name)); stem != "" {
		return stem
	}
	return name
}

// Writer encodes rendered passes into a directory.
type Writer struct {
	Dir    string
	Format codec.SampleFormat
	Dither dither.Type
}

// Write encodes samples to OutputPath(w.Dir, base, label), replacing any
// existing file, and returns the path. A partially written file is removed.
func (w Writer) Write(samples []float64, sampleRate int, base, label string) (string, error) {
	path := OutputPath(w.Dir, base, label)

	f, err := os.Create(path)
	if err != nil {
		return path, fmt.Errorf("%w: %w", ErrWrite, err)
	}

	encErr := codec.EncodeWAV(f, samples, sampleRate, w.Format, codec.WithDither(w.Dither))
	closeErr := f.Close()
	if err := errors.Join(encErr, closeErr); err != nil {
		_ = os.Remove(path)
		return path, fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	return path, nil
}
