package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/spectral-extract/codec"
	"github.com/cwbudde/spectral-extract/dsp/dither"
	"github.com/cwbudde/spectral-extract/dsp/spectrum"
	"github.com/cwbudde/spectral-extract/dsp/transform"
	"github.com/cwbudde/spectral-extract/extract"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// usageError marks bad command-line input.
type usageError struct {
	msg string
}

func (e usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return usageError{msg: fmt.Sprintf(format, args...)}
}

// rangeList collects repeated -range low:high flags.
type rangeList []spectrum.FrequencyRange

func (l rangeList) String() string {
	parts := make([]string, len(l))
	for i, r := range l {
		parts[i] = r.String()
	}
	return strings.Join(parts, " ")
}

func (l *rangeList) Set(s string) error {
	lowStr, highStr, ok := strings.Cut(s, ":")
	if !ok {
		return fmt.Errorf("range %q: want low:high", s)
	}
	r, err := parseRange(lowStr, highStr)
	if err != nil {
		return err
	}
	*l = append(*l, r)
	return nil
}

func parseRange(lowStr, highStr string) (spectrum.FrequencyRange, error) {
	low, err := strconv.ParseFloat(strings.TrimSpace(lowStr), 64)
	if err != nil {
		return spectrum.FrequencyRange{}, fmt.Errorf("low bound %q: %w", lowStr, err)
	}
	high, err := strconv.ParseFloat(strings.TrimSpace(highStr), 64)
	if err != nil {
		return spectrum.FrequencyRange{}, fmt.Errorf("high bound %q: %w", highStr, err)
	}
	r := spectrum.FrequencyRange{Low: low, High: high}
	if err := r.Validate(); err != nil {
		return spectrum.FrequencyRange{}, err
	}
	return r, nil
}

// invocation is a parsed command line.
type invocation struct {
	source  string
	cfg     extract.Config
	dryRun  bool
	verbose bool
}

func parseArgs(args []string, stderr io.Writer) (*invocation, error) {
	fs := flag.NewFlagSet("spectral-extract", flag.ContinueOnError)
	fs.SetOutput(stderr)

	mode := fs.String("mode", "single", "processing mode: single|multi")
	var ranges rangeList
	fs.Var(&ranges, "range", "frequency range low:high in Hz (repeatable; default full spectrum)")
	threshold := fs.Float64("threshold", 0, "dB gate level; bins below it are dropped (default no gate)")
	out := fs.String("out", extract.DefaultOutputDir, "output directory")
	format := fs.String("format", codec.Float32.String(), "output sample format: float32|pcm16|pcm24")
	ditherName := fs.String("dither", dither.None.String(), "dither for integer formats: none|rpdf|tpdf")
	fft := fs.String("fft", extract.DefaultBackend, "transform backend: "+strings.Join(transform.Names(), "|"))
	configPath := fs.String("config", "", "JSON job file; flags override its fields")
	dryRun := fs.Bool("dry-run", false, "print the planned passes without writing")
	verbose := fs.Bool("v", false, "verbose logging")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: spectral-extract [flags] <file> [<low> <high> [threshold [outputDir]]]\n\n")
		fmt.Fprintf(stderr, "Renders frequency bands of a recording into mono WAV files.\n\nFlags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	cfg := extract.DefaultConfig()
	if *configPath != "" {
		loaded, err := extract.LoadConfig(*configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if set["mode"] {
		m, err := extract.ParseMode(*mode)
		if err != nil {
			return nil, usagef("-mode: %v", err)
		}
		cfg.Mode = m
	}
	if set["range"] {
		cfg.Ranges = ranges
	}
	if set["threshold"] {
		cfg.Threshold = threshold
	}
	if set["out"] {
		cfg.OutputDir = *out
	}
	if set["format"] {
		f, err := codec.ParseSampleFormat(*format)
		if err != nil {
			return nil, usagef("-format: %v", err)
		}
		cfg.SampleFormat = f
	}
	if set["dither"] {
		dt, err := dither.ParseType(*ditherName)
		if err != nil {
			return nil, usagef("-dither: %v", err)
		}
		cfg.Dither = dt
	}
	if set["fft"] {
		cfg.Backend = *fft
	}

	pos := fs.Args()
	switch {
	case len(pos) == 0:
		return nil, usagef("missing input file")
	case len(pos) == 2:
		return nil, usagef("positional range needs both <low> and <high>")
	case len(pos) > 5:
		return nil, usagef("too many arguments")
	}

	// Legacy form: <file> <low> <high> [threshold [outputDir]].
	if len(pos) >= 3 {
		r, err := parseRange(pos[1], pos[2])
		if err != nil {
			return nil, usagef("positional range: %v", err)
		}
		cfg.Ranges = append(cfg.Ranges, r)
	}
	if len(pos) >= 4 {
		th, err := strconv.ParseFloat(pos[3], 64)
		if err != nil {
			return nil, usagef("positional threshold %q: %v", pos[3], err)
		}
		cfg.Threshold = &th
	}
	if len(pos) == 5 {
		cfg.OutputDir = pos[4]
	}

	if err := cfg.Validate(); err != nil {
		return nil, usagef("%v", err)
	}

	return &invocation{
		source:  pos[0],
		cfg:     cfg,
		dryRun:  *dryRun,
		verbose: *verbose,
	}, nil
}

func newLogger(w io.Writer, verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	log.SetLevel(logrus.InfoLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

func run(args []string, stdout, stderr io.Writer) int {
	inv, err := parseArgs(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		fmt.Fprintf(stderr, "spectral-extract: %v\n", err)
		// A job file that cannot be read is a failure; an invalid one is a
		// usage error like a bad flag.
		if errors.Is(err, extract.ErrJobFile) {
			return exitFailure
		}
		return exitUsage
	}

	log := newLogger(stderr, inv.verbose)
	inv.cfg.Logger = log

	e, err := extract.New(extract.WithConfig(inv.cfg))
	if err != nil {
		log.WithError(err).Error("invalid configuration")
		return exitUsage
	}

	if inv.dryRun {
		return dryRun(e, inv.source, stdout, log)
	}

	results, err := e.Run(inv.source)
	printResults(stdout, results)
	if err != nil {
		logErrors(log, err)
		return exitFailure
	}
	return exitOK
}

func dryRun(e *extract.Extractor, source string, stdout io.Writer, log logrus.FieldLogger) int {
	a, err := extract.Ingest(source)
	if err != nil {
		log.WithError(err).Error("ingestion failed")
		return exitFailure
	}

	cfg := e.Config()
	base := extract.BaseName(source)
	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "SampleRate:\t%d Hz\n", a.SampleRate)
	fmt.Fprintf(tw, "Samples:\t%d (%d discarded)\n", len(a.Samples), a.Discarded)
	fmt.Fprintf(tw, "Mode:\t%s\n", cfg.Mode)
	for _, p := range e.Plan(a.SampleRate, len(a.Samples)) {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Label, rangeList(p.Ranges),
			extract.OutputPath(cfg.OutputDir, base, p.Label))
	}
	if err := tw.Flush(); err != nil {
		return exitFailure
	}
	return exitOK
}

func printResults(w io.Writer, results []extract.Result) {
	if len(results) == 0 {
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Label\tPath\tRMS dB\tPeak dB\tCentroid Hz")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%.1f\t%.1f\t%.1f\n", r.Label, r.Path, r.Level.RMSDB, r.Level.PeakDB, r.Centroid)
	}
	_ = tw.Flush()
}

func logErrors(log logrus.FieldLogger, err error) {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			logErrors(log, e)
		}
		return
	}
	var pe *extract.PassError
	if errors.As(err, &pe) {
		log.WithFields(logrus.Fields{"pass": pe.Label, "path": pe.Path}).WithError(pe.Err).Error("pass failed")
		return
	}
	log.WithError(err).Error("extraction failed")
}
