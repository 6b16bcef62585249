package application

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/eugenenazirov/lintrunner/internal/config"
	"github.com/eugenenazirov/lintrunner/internal/discovery"
	"github.com/eugenenazirov/lintrunner/internal/lint"
	"github.com/eugenenazirov/lintrunner/internal/loader"
	"github.com/eugenenazirov/lintrunner/internal/output"
	"github.com/eugenenazirov/lintrunner/internal/report"
	"github.com/eugenenazirov/lintrunner/internal/runner"
)

// Option configures New.
type Option func(*deps)

type deps struct {
	out    *output.Stream
	errOut io.Writer
	source loader.Source
	linter lint.Linter
	exit   runner.ExitFunc
}

// WithStreams overrides where reports and per-file problems are written.
func WithStreams(out *output.Stream, errOut io.Writer) Option {
	return func(d *deps) {
		d.out = out
		d.errOut = errOut
	}
}

// WithSource overrides where file contents are read from.
func WithSource(source loader.Source) Option {
	return func(d *deps) {
		d.source = source
	}
}

// WithLinter overrides the lint engine.
func WithLinter(linter lint.Linter) Option {
	return func(d *deps) {
		d.linter = linter
	}
}

// WithExitFunc overrides process termination (tests).
func WithExitFunc(exit runner.ExitFunc) Option {
	return func(d *deps) {
		d.exit = exit
	}
}

// App encapsulates the application dependencies.
type App struct {
	runner  *runner.Runner
	linter  lint.Linter
	options lint.Options
}

// New initializes the application with all dependencies from the provided configuration.
func New(cfg config.Config, logger *zap.Logger, opts ...Option) (*App, error) {
	d := deps{
		errOut: os.Stderr,
		source: loader.OSSource{},
		linter: lint.New(),
		exit:   os.Exit,
	}
	for _, opt := range opts {
		opt(&d)
	}
	if d.out == nil {
		d.out = output.New(os.Stdout)
	}

	filter, err := discovery.NewPathFilter(cfg.ExcludeMarkers, cfg.Exclude)
	if err != nil {
		return nil, fmt.Errorf("failed to build path filter: %w", err)
	}

	expander := discovery.IdentityExpander
	if cfg.Glob {
		expander = discovery.NewGlobExpander(logger)
	}

	var reporter report.Reporter
	if cfg.JSON {
		reporter = report.NewJSON(d.out, d.errOut)
	} else {
		reporter = report.NewText(d.out, d.errOut, cfg.Terse)
	}

	ld := loader.New(d.source, loader.WithRateLimit(cfg.LoadRate, cfg.LoadBurst))
	r := runner.New(ld, d.linter, reporter, d.out, logger,
		runner.WithExpander(expander),
		runner.WithFilter(filter),
		runner.WithDrainTimeout(cfg.DrainTimeout),
		runner.WithExitFunc(d.exit),
	)

	logger.Debug("application initialised",
		zap.Bool("glob", cfg.Glob),
		zap.Bool("interactive", d.out.Interactive()),
		zap.Strings("exclude_markers", cfg.ExcludeMarkers),
		zap.Duration("drain_timeout", cfg.DrainTimeout),
	)

	return &App{
		runner:  r,
		linter:  d.linter,
		options: cfg.Lint,
	}, nil
}

// Run lints the files named by patterns. The configured exit function is
// called once the run completes; the status is also returned.
func (a *App) Run(ctx context.Context, patterns []string) (int, error) {
	return a.runner.Run(ctx, patterns, a.options)
}

// Version describes the tool and lint engine versions.
func (a *App) Version(version string) string {
	return fmt.Sprintf("lintrunner version: %s  lint edition %s", version, a.linter.Edition())
}
