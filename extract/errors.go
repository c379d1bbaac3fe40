package extract

import (
	"errors"
	"fmt"
)

var (
	// ErrIngestion is returned when the source cannot be decoded or is empty.
	ErrIngestion = errors.New("extract: ingestion failed")
	// ErrConfiguration is returned for invalid modes, ranges or options.
	ErrConfiguration = errors.New("extract: invalid configuration")
	// ErrJobFile is returned alongside ErrConfiguration when a job file cannot
	// be opened or is not well-formed JSON.
	ErrJobFile = errors.New("extract: unreadable job file")
	// ErrTransform is returned when the forward or inverse transform fails.
	ErrTransform = errors.New("extract: transform failed")
	// ErrWrite is returned when the output directory or a file cannot be written.
	ErrWrite = errors.New("extract: write failed")
)

// PassError reports the failure of one render pass.
type PassError struct {
	Label string
	Path  string
	Err   error
}

func (e *PassError) Error() string {
	return fmt.Sprintf("extract: pass %q (%s): %v", e.Label, e.Path, e.Err)
}

func (e *PassError) Unwrap() error {
	return e.Err
}
