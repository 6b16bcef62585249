package runner

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type coordinator struct {
	state        runState
	completions  chan completion
	output       Output
	drainTimeout time.Duration
	exit         ExitFunc
	logger       *zap.Logger
}

func newCoordinator(total int, output Output, drainTimeout time.Duration, exit ExitFunc, logger *zap.Logger) *coordinator {
	return &coordinator{
		state:        runState{remaining: total, allOK: true},
		completions:  make(chan completion, total),
		output:       output,
		drainTimeout: drainTimeout,
		exit:         exit,
		logger:       logger,
	}
}

// complete never blocks: the channel holds one slot per file.
func (c *coordinator) complete(done completion) {
	c.completions <- done
}

// wait folds completions until none remain, then terminates. It runs the
// exit decision exactly once, including when the run started with no files.
func (c *coordinator) wait(ctx context.Context) int {
	for c.state.remaining > 0 {
		done := <-c.completions
		c.state.fold(done)
		c.logger.Debug("file completed",
			zap.String("path", done.path),
			zap.Stringer("outcome", done.kind),
			zap.Int("remaining", c.state.remaining),
		)
	}

	status := c.state.status()
	c.terminate(ctx, status)
	return status
}

func (c *coordinator) terminate(ctx context.Context, status int) {
	if !c.output.Interactive() {
		drainCtx := ctx
		if c.drainTimeout > 0 {
			var cancel context.CancelFunc
			drainCtx, cancel = context.WithTimeout(ctx, c.drainTimeout)
			defer cancel()
		}

		start := time.Now()
		if err := c.output.Drain(drainCtx); err != nil {
			c.logger.Warn("output drain incomplete", zap.Duration("waited", time.Since(start)), zap.Error(err))
		}
	}

	c.exit(status)
}
