package providers

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/i474232898/astrodash/internal/forecast"
)

// RateLimitedSource wraps a forecast.Source with a token bucket limiter.
type RateLimitedSource struct {
	source  forecast.Source
	limiter *rate.Limiter
	name    string
}

// NewRateLimitedSource allows rps requests per second with the given burst.
// rps may be fractional.
func NewRateLimitedSource(source forecast.Source, rps float64, burst int) *RateLimitedSource {
	if burst < 1 {
		burst = 1
	}
	return &RateLimitedSource{
		source:  source,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		name:    fmt.Sprintf("%s [Rate Limited]", source.Name()),
	}
}

// FetchDaily waits for the limiter, then forwards to the wrapped source.
func (r *RateLimitedSource) FetchDaily(ctx context.Context, city string, days int) ([]forecast.RawRecord, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.source.FetchDaily(ctx, city, days)
}

// Name returns the wrapped source name with a rate limit marker.
func (r *RateLimitedSource) Name() string {
	return r.name
}

var _ forecast.Source = (*RateLimitedSource)(nil)
