package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultPollInterval = 30 * time.Second
	maxBackoff          = 5 * time.Minute
)

// authRefresher is the part of the syncer the poller drives.
type authRefresher interface {
	CheckAuthStatus(ctx context.Context) bool
}

// StartPoller launches a background goroutine that refreshes the session
// state every interval, backing off while the backend is unreachable. It
// returns immediately; the first refresh happens after one interval.
func StartPoller(ctx context.Context, refresher authRefresher, interval time.Duration, logger zerolog.Logger) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		failures := 0
		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}

			if refresher.CheckAuthStatus(ctx) {
				if failures > 0 {
					logger.Info().Int("failures", failures).Msg("backend reachable again")
				}
				failures = 0
			} else {
				failures++
				logger.Warn().Int("failures", failures).Dur("next", calculateBackoff(failures, interval)).Msg("auth refresh failed")
			}
			timer.Reset(calculateBackoff(failures, interval))
		}
	}()
}

// calculateBackoff doubles base for every consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	d := base
	for i := 0; i < failures; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}
