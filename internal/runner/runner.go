package runner

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/eugenenazirov/lintrunner/internal/discovery"
	"github.com/eugenenazirov/lintrunner/internal/lint"
	"github.com/eugenenazirov/lintrunner/internal/loader"
	"github.com/eugenenazirov/lintrunner/internal/report"
)

// Option configures a Runner.
type Option func(*Runner)

// WithExpander overrides the pattern expander (defaults to glob expansion).
func WithExpander(expander discovery.Expander) Option {
	return func(r *Runner) {
		r.expander = expander
	}
}

// WithFilter sets the path filter applied after expansion.
func WithFilter(filter discovery.Filter) Option {
	return func(r *Runner) {
		r.filter = filter
	}
}

// WithExitFunc overrides process termination, primarily for tests.
func WithExitFunc(exit ExitFunc) Option {
	return func(r *Runner) {
		r.exit = exit
	}
}

// WithDrainTimeout bounds the wait for output to drain. Zero waits forever.
func WithDrainTimeout(timeout time.Duration) Option {
	return func(r *Runner) {
		r.drainTimeout = timeout
	}
}

// Runner wires the lint pipeline together. A Runner may be reused; every
// Run owns its own state.
type Runner struct {
	expander     discovery.Expander
	filter       discovery.Filter
	loader       loader.Loader
	linter       lint.Linter
	reporter     report.Reporter
	output       Output
	exit         ExitFunc
	drainTimeout time.Duration
	logger       *zap.Logger
}

// New constructs a Runner with the provided dependencies.
func New(ld loader.Loader, linter lint.Linter, reporter report.Reporter, output Output, logger *zap.Logger, opts ...Option) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Runner{
		expander: discovery.NewGlobExpander(logger),
		loader:   ld,
		linter:   linter,
		reporter: reporter,
		output:   output,
		exit:     os.Exit,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run lints every file named by patterns, forwarding opts to the linter
// untouched. Once every file has completed it calls the exit function exactly
// once with the run status and returns that status. Without patterns it
// returns ErrNoPatterns and does no work.
func (r *Runner) Run(ctx context.Context, patterns []string, opts lint.Options) (int, error) {
	if len(patterns) == 0 {
		return ExitFailure, ErrNoPatterns
	}

	start := time.Now()
	files := discovery.Files(patterns, r.expander, r.filter)
	r.logger.Debug("files discovered", zap.Int("patterns", len(patterns)), zap.Int("files", len(files)))

	coord := newCoordinator(len(files), r.output, r.drainTimeout, r.loggedExit(start, len(files)), r.logger)
	for _, path := range files {
		go r.lintFile(ctx, path, opts, coord)
	}

	return coord.wait(ctx), nil
}

func (r *Runner) loggedExit(start time.Time, files int) ExitFunc {
	return func(status int) {
		r.logger.Info("lint run finished",
			zap.Int("files", files),
			zap.Int("status", status),
			zap.Duration("duration", time.Since(start)),
		)
		_ = r.logger.Sync()
		r.exit(status)
	}
}

// lintFile runs one file's pipeline and always reports exactly one completion.
func (r *Runner) lintFile(ctx context.Context, path string, opts lint.Options, coord *coordinator) {
	text, err := r.loader.Load(ctx, path)
	if err != nil {
		r.logger.Info("read failed", zap.String("path", path), zap.Error(err))
		if reportErr := r.reporter.ReadError(path, err); reportErr != nil {
			r.logger.Error("report failed", zap.String("path", path), zap.Error(reportErr))
		}
		coord.complete(completion{path: path, kind: outcomeReadFailed})
		return
	}

	verdict, err := r.invoke(text, opts)
	if err != nil {
		r.logger.Warn("lint failed", zap.String("path", path), zap.Error(err))
		if reportErr := r.reporter.Fault(path, err); reportErr != nil {
			r.logger.Error("report failed", zap.String("path", path), zap.Error(reportErr))
		}
		coord.complete(completion{path: path, kind: outcomeLintFault})
		return
	}

	if reportErr := r.reporter.Report(path, verdict); reportErr != nil {
		r.logger.Error("report failed", zap.String("path", path), zap.Error(reportErr))
	}
	coord.complete(completion{path: path, kind: outcomeLinted, ok: verdict.OK})
}

func (r *Runner) invoke(text string, opts lint.Options) (verdict lint.Verdict, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", ErrLintPanic, rec)
		}
	}()
	return r.linter.Lint(text, opts)
}
