package loader

import (
	"context"

	"golang.org/x/time/rate"
)

type throttle interface {
	Wait(ctx context.Context) error
}

type limiterAdapter struct {
	limiter *rate.Limiter
}

// newTokenBucketThrottle returns nil when ratePerSecond is not positive,
// which leaves loads unthrottled.
func newTokenBucketThrottle(ratePerSecond float64, burst int) throttle {
	if ratePerSecond <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = 1
	}

	return &limiterAdapter{
		limiter: rate.NewLimiter(rate.Limit(ratePerSecond), burst),
	}
}

func (l *limiterAdapter) Wait(ctx context.Context) error {
	if l == nil || l.limiter == nil {
		return nil
	}
	return l.limiter.Wait(ctx)
}
