package app

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 30 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 30 * time.Second},
		{"negative failures", -1, 30 * time.Second},
		{"one failure", 1, time.Minute},
		{"two failures", 2, 2 * time.Minute},
		{"three failures", 3, 4 * time.Minute},
		{"four failures capped", 4, 5 * time.Minute}, // Would be 8m, capped to 5m
		{"many failures capped", 40, 5 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	baseInterval := 2 * time.Second
	for failures := 0; failures <= 64; failures++ {
		got := calculateBackoff(failures, baseInterval)
		if got > maxBackoff || got <= 0 {
			t.Errorf("calculateBackoff(%d, %v) = %v, outside (0, %v]", failures, baseInterval, got, maxBackoff)
		}
	}
}

type countingRefresher struct {
	calls atomic.Int32
	ok    bool
}

func (r *countingRefresher) CheckAuthStatus(context.Context) bool {
	r.calls.Add(1)
	return r.ok
}

func TestStartPoller_RefreshesUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	refresher := &countingRefresher{ok: true}

	StartPoller(ctx, refresher, 5*time.Millisecond, zerolog.Nop())

	deadline := time.Now().Add(2 * time.Second)
	for refresher.calls.Load() < 3 {
		if time.Now().After(deadline) {
			t.Fatalf("poller made %d refreshes, want at least 3", refresher.calls.Load())
		}
		time.Sleep(time.Millisecond)
	}

	cancel()
	time.Sleep(20 * time.Millisecond)
	settled := refresher.calls.Load()
	time.Sleep(50 * time.Millisecond)
	if got := refresher.calls.Load(); got != settled {
		t.Fatalf("poller kept refreshing after cancel: %d -> %d", settled, got)
	}
}
