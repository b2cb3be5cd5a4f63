package app

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/reviewdesk/internal/metrics"
)

func TestServeMetrics(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	collector := metrics.NewCollector(nil)
	collector.ObserveRequest(http.MethodGet, "/api/products", http.StatusOK, 20*time.Millisecond)

	addr, err := serveMetrics(ctx, "127.0.0.1:0", collector.Handler(), zerolog.Nop())
	if err != nil {
		t.Fatalf("serveMetrics: %v", err)
	}

	resp, err := http.Get("http://" + addr + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), "reviewdesk_api_requests_total") {
		t.Fatalf("metrics output missing request counter:\n%s", body)
	}

	resp, err = http.Get("http://" + addr + "/other")
	if err != nil {
		t.Fatalf("GET /other: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unexpected status for unknown path: %d", resp.StatusCode)
	}
}

func TestServeMetricsStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	addr, err := serveMetrics(ctx, "127.0.0.1:0", http.NotFoundHandler(), zerolog.Nop())
	if err != nil {
		t.Fatalf("serveMetrics: %v", err)
	}
	cancel()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := http.Get("http://" + addr + "/metrics")
		if err != nil {
			return
		}
		_ = resp.Body.Close()
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("metrics server still serving after cancel")
}

func TestServeMetricsRejectsBadAddr(t *testing.T) {
	if _, err := serveMetrics(context.Background(), "127.0.0.1:notaport", http.NotFoundHandler(), zerolog.Nop()); err == nil {
		t.Fatal("expected listen error")
	}
}
