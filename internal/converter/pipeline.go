package converter

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/deckpeek/deckpeek/internal/scratch"
)

// DefaultConvertTimeout bounds a single spawn-to-exit window
const DefaultConvertTimeout = 30 * time.Second

// rasterFormat is the page-image output format. LibreOffice zero-pads page
// numbers, so lexical filename order is slide order.
const rasterFormat = "png"

// Config holds configuration for the conversion pipeline
type Config struct {
	Runner         Runner        // Optional: defaults to the os/exec runner
	Binary         string        // Optional: defaults to the platform-resolved soffice
	Scratch        *scratch.Dir  // Required: cache and output directory
	ProbeTimeout   time.Duration // Optional: defaults to DefaultProbeTimeout
	ConvertTimeout time.Duration // Optional: defaults to DefaultConvertTimeout
	Logger         *slog.Logger  // Optional: defaults to discard
}

// Pipeline turns a presentation file into a displayable PDF or a page-image
// sequence by shelling out to LibreOffice. Conversions are cached in the
// scratch directory and short-circuited while the output is newer than the
// source.
type Pipeline struct {
	runner         Runner
	binary         string
	scratch        *scratch.Dir
	prober         *Prober
	convertTimeout time.Duration
	logger         *slog.Logger
}

// NewPipeline creates a conversion pipeline
func NewPipeline(config Config) *Pipeline {
	if config.Runner == nil {
		config.Runner = NewRunner()
	}
	if config.Binary == "" {
		config.Binary = Resolve()
	}
	if config.ConvertTimeout <= 0 {
		config.ConvertTimeout = DefaultConvertTimeout
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Pipeline{
		runner:         config.Runner,
		binary:         config.Binary,
		scratch:        config.Scratch,
		prober:         NewProber(config.Runner, config.Binary, config.ProbeTimeout, config.Logger),
		convertTimeout: config.ConvertTimeout,
		logger:         config.Logger,
	}
}

// Binary returns the converter command the pipeline invokes
func (p *Pipeline) Binary() string {
	return p.binary
}

// CheckInstalled runs a fresh availability probe
func (p *Pipeline) CheckInstalled(ctx context.Context) bool {
	return p.prober.CheckInstalled(ctx)
}

// ConvertToPDF converts a presentation file to a PDF in the scratch
// directory and returns the output path. The probe always completes before
// any conversion process is spawned. A cached output newer than the source
// is returned without spawning anything.
func (p *Pipeline) ConvertToPDF(ctx context.Context, source string) (string, error) {
	if !p.prober.CheckInstalled(ctx) {
		return "", &NotInstalledError{Path: p.binary}
	}

	if err := p.scratch.Ensure(); err != nil {
		return "", err
	}

	output := p.scratch.PDFPath(source)
	if p.scratch.IsFresh(output, source) {
		// Cache key is the bare basename: sources in different directories
		// sharing a name share this slot
		p.logger.DebugContext(ctx, "serving cached conversion",
			"source", source,
			"output", output,
		)
		return output, nil
	}

	p.logger.InfoContext(ctx, "converting to pdf",
		"source", source,
		"output", output,
	)

	if err := p.run(ctx, "pdf", source); err != nil {
		return "", err
	}

	if !p.scratch.Exists(output) {
		return "", &OutputMissingError{Output: output}
	}

	p.logPageCount(ctx, output)
	return output, nil
}

// ConvertToImages converts a presentation file to an ordered sequence of
// page images. The PDF is produced (or served from cache) first, then
// rasterized into the scratch directory. Stale page images for the same
// basename are removed before the raster pass so a lower page count cannot
// be mixed with leftovers.
func (p *Pipeline) ConvertToImages(ctx context.Context, source string) ([]string, error) {
	pdfPath, err := p.ConvertToPDF(ctx, source)
	if err != nil {
		return nil, err
	}

	if err := p.scratch.RemoveImages(source, "."+rasterFormat); err != nil {
		return nil, err
	}

	p.logger.InfoContext(ctx, "converting to images",
		"source", source,
		"pdf", pdfPath,
	)

	if err := p.run(ctx, rasterFormat, pdfPath); err != nil {
		return nil, err
	}

	images, err := p.scratch.ListImages(source, "."+rasterFormat)
	if err != nil {
		return nil, err
	}
	if len(images) == 0 {
		return nil, &NoOutputFilesError{
			Pattern: scratch.Basename(source) + "*." + rasterFormat,
		}
	}

	p.warnOnPageMismatch(ctx, pdfPath, len(images))
	return images, nil
}

// run executes one headless conversion under the wall-clock bound. The bound
// races against the normal exit: on expiry the runner terminates the child
// and a late exit is discarded.
func (p *Pipeline) run(ctx context.Context, format, source string) error {
	ctx, cancel := context.WithTimeout(ctx, p.convertTimeout)
	defer cancel()

	res, err := p.runner.Run(ctx, p.binary,
		"--headless",
		"--convert-to", format,
		"--outdir", p.scratch.Root(),
		source,
	)
	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{Timeout: p.convertTimeout}
	}
	if err != nil {
		return &SpawnError{Path: p.binary, Err: err}
	}
	if res.ExitCode != 0 {
		return &ExitError{Code: res.ExitCode, Stderr: res.Stderr}
	}
	return nil
}
