package geocoding

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/ports"
)

type counter interface {
	Inc()
}

// RetryConfig describes how RetryingGeocoder retries an unavailable provider.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

func DefaultRetryConfig() RetryConfig {
	return RetryConfig{MaxAttempts: 1, BaseDelay: 200 * time.Millisecond, MaxDelay: 2 * time.Second}
}

// RetryingGeocoder retries ports.ErrGeocoderUnavailable with exponential
// backoff. An unknown address is never retried.
type RetryingGeocoder struct {
	next    ports.Geocoder
	logger  *slog.Logger
	retries counter
	cfg     RetryConfig
	wait    func(context.Context, time.Duration) bool
}

func NewRetryingGeocoder(next ports.Geocoder, logger *slog.Logger, retries counter, cfg RetryConfig) *RetryingGeocoder {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &RetryingGeocoder{
		next:    next,
		logger:  logger,
		retries: retries,
		cfg:     cfg,
		wait:    sleepWithContext,
	}
}

func (g *RetryingGeocoder) Geocode(ctx context.Context, address string) (kernel.Coordinates, error) {
	var lastErr error
	for attempt := 1; attempt <= g.cfg.MaxAttempts; attempt++ {
		coords, err := g.next.Geocode(ctx, address)
		if err == nil {
			return coords, nil
		}
		lastErr = err

		if ctx.Err() != nil || attempt == g.cfg.MaxAttempts || !isRetryable(err) {
			break
		}

		delay := backoff(g.cfg.BaseDelay, g.cfg.MaxDelay, attempt)
		if g.retries != nil {
			g.retries.Inc()
		}
		g.logger.Warn("geocoder retry",
			"attempt", attempt,
			"delay", delay,
			"error", err,
		)
		if !g.wait(ctx, delay) {
			break
		}
	}
	return kernel.Coordinates{}, lastErr
}

func isRetryable(err error) bool {
	return errors.Is(err, ports.ErrGeocoderUnavailable)
}

func backoff(base, max time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	if d > max || d <= 0 {
		return max
	}
	return d
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
