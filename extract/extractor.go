package extract

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/spectral-extract/dsp/buffer"
	"github.com/cwbudde/spectral-extract/dsp/spectrum"
	"github.com/cwbudde/spectral-extract/dsp/transform"
	"github.com/cwbudde/spectral-extract/stats/frequency"
	timestats "github.com/cwbudde/spectral-extract/stats/time"
)

// Pass is one planned render: an output label and the ranges it keeps.
type Pass struct {
	Label  string
	Ranges []spectrum.FrequencyRange
}

// Result describes one written output.
type Result struct {
	Label         string
	Path          string
	Ranges        []spectrum.FrequencyRange
	SampleRate    int
	Samples       int
	Level         timestats.Summary
	Centroid      float64 // spectral centroid of the kept bins (Hz)
	PeakFrequency float64 // strongest kept bin (Hz)
}

// Extractor runs extraction jobs with a fixed configuration. It is safe for
// concurrent use.
type Extractor struct {
	cfg       Config
	transform transform.Transform
	writer    Writer
	pool      *buffer.Pool
	log       logrus.FieldLogger
}

// New returns an Extractor configured by opts on top of DefaultConfig.
func New(opts ...Option) (*Extractor, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tr := cfg.Transform
	if tr == nil {
		var err error
		tr, err = transform.New(cfg.Backend)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
		}
	}

	log := cfg.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}

	return &Extractor{
		cfg:       cfg,
		transform: tr,
		writer:    Writer{Dir: cfg.OutputDir, Format: cfg.SampleFormat, Dither: cfg.Dither},
		pool:      buffer.NewPool(),
		log:       log,
	}, nil
}

// Config returns the resolved configuration.
func (e *Extractor) Config() Config {
	return e.cfg
}

// Plan returns the passes Run would render for an n-sample buffer at
// sampleRate.
func (e *Extractor) Plan(sampleRate, n int) []Pass {
	ranges := e.cfg.Ranges
	if len(ranges) == 0 {
		ranges = []spectrum.FrequencyRange{spectrum.FullSpectrum(n, float64(sampleRate))}
	}

	if e.cfg.Mode == ModeSingle {
		return []Pass{{Label: SingleLabel, Ranges: ranges}}
	}

	passes := make([]Pass, len(ranges))
	for i, r := range ranges {
		passes[i] = Pass{Label: r.Label(), Ranges: []spectrum.FrequencyRange{r}}
	}
	return passes
}

// Run extracts the configured bands from the recording at path.
//
// Ingestion, directory and forward-transform failures abort the job. Pass
// failures do not: Run returns the results of every pass that succeeded, in
// plan order, together with the joined *PassError values of those that did not.
func (e *Extractor) Run(path string) ([]Result, error) {
	a, err := Ingest(path)
	if err != nil {
		return nil, err
	}
	e.log.WithFields(logrus.Fields{
		"source":     path,
		"sampleRate": a.SampleRate,
		"channels":   a.SourceChannels,
		"samples":    len(a.Samples),
		"discarded":  a.Discarded,
	}).Debug("source analysed")

	return e.Process(a, BaseName(path))
}

// Process renders an already analysed source, naming outputs after base.
func (e *Extractor) Process(a *Analysis, base string) ([]Result, error) {
	start := time.Now()

	if err := EnsureDir(e.cfg.OutputDir); err != nil {
		return nil, err
	}

	shared := make([]complex128, len(a.Samples))
	if err := e.transform.Forward(shared, a.Samples); err != nil {
		return nil, fmt.Errorf("%w: forward: %w", ErrTransform, err)
	}

	passes := e.Plan(a.SampleRate, len(shared))
	log := e.log.WithFields(logrus.Fields{
		"base":   base,
		"mode":   e.cfg.Mode.String(),
		"passes": len(passes),
	})
	log.Info("extraction started")

	results := make([]Result, len(passes))
	errs := make([]error, len(passes))

	if e.cfg.Mode == ModeSingle {
		results[0], errs[0] = e.render(shared, a.SampleRate, base, passes[0])
	} else {
		var wg sync.WaitGroup
		for i, p := range passes {
			wg.Add(1)
			go func() {
				defer wg.Done()
				results[i], errs[i] = e.render(shared, a.SampleRate, base, p)
			}()
		}
		wg.Wait()
	}

	ok := make([]Result, 0, len(passes))
	for i := range passes {
		if errs[i] == nil {
			ok = append(ok, results[i])
		}
	}
	err := errors.Join(errs...)

	log.WithFields(logrus.Fields{
		"written":  len(ok),
		"failed":   len(passes) - len(ok),
		"duration": time.Since(start),
	}).Info("extraction finished")

	return ok, err
}

// render runs one pass against the shared spectrum, which it never writes.
func (e *Extractor) render(shared []complex128, sampleRate int, base string, p Pass) (Result, error) {
	path := OutputPath(e.cfg.OutputDir, base, p.Label)
	log := e.log.WithFields(logrus.Fields{"pass": p.Label, "path": path})

	work := e.pool.Get(len(shared))
	defer e.pool.Put(work)

	bins := work.Data()
	FilterBins(bins, shared, sampleRate, p.Ranges, e.cfg.Threshold)
	shape := frequency.Describe(bins, float64(sampleRate))

	samples, err := Reconstruct(e.transform, bins)
	if err != nil {
		log.WithError(err).Debug("pass aborted")
		return Result{}, &PassError{Label: p.Label, Path: path, Err: err}
	}

	if _, err := e.writer.Write(samples, sampleRate, base, p.Label); err != nil {
		log.WithError(err).Debug("pass aborted")
		return Result{}, &PassError{Label: p.Label, Path: path, Err: err}
	}

	level := timestats.Calculate(samples)
	log.WithFields(logrus.Fields{
		"rmsDB":    level.RMSDB,
		"peakDB":   level.PeakDB,
		"centroid": shape.Centroid,
	}).Debug("pass written")

	return Result{
		Label:         p.Label,
		Path:          path,
		Ranges:        p.Ranges,
		SampleRate:    sampleRate,
		Samples:       len(samples),
		Level:         level,
		Centroid:      shape.Centroid,
		PeakFrequency: shape.PeakFrequency,
	}, nil
}
