package dukascopy

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/akal0/profitabledge-sub000/internal/domain/models"
	domrepo "github.com/akal0/profitabledge-sub000/internal/domain/repository"
	xlogger "github.com/akal0/profitabledge-sub000/pkg/logger"
)

func window(from, to time.Time) models.TimeWindow {
	return models.TimeWindow{OpenAt: from, CloseAt: to}
}

func TestFetchBarsParsesAndSorts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/bars" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("instrument") != "eurusd" || q.Get("offerSide") != "bid" || q.Get("timeframe") != "1m" {
			t.Errorf("unexpected query %v", q)
		}
		_ = json.NewEncoder(w).Encode(feedBarsResponse{
			Instrument: "eurusd",
			Bars: []feedBar{
				{T: 1709287260000, O: 1.1005, H: 1.1008, L: 1.1001, C: 1.1006},
			},
		})
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, BatchSize: 10, PauseBetweenBatches: time.Millisecond}, xlogger.Nop())
	from := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	bars, err := c.FetchBars(context.Background(), "eurusd", models.QuoteBid, window(from, from.Add(10*time.Minute)), domrepo.TF1m)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(bars) != 1 {
		t.Fatalf("got %d bars", len(bars))
	}
	if !bars[0].Time.Equal(time.UnixMilli(1709287260000).UTC()) {
		t.Fatalf("bar time = %v", bars[0].Time)
	}
}

func TestFetchTicksSplitsLongWindows(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		_ = json.NewEncoder(w).Encode(feedTicksResponse{Instrument: "eurusd"})
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, BatchSize: 10, PauseBetweenBatches: time.Millisecond}, xlogger.Nop())
	from := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	_, err := c.FetchTicks(context.Background(), "eurusd", window(from, from.Add(3*time.Hour+time.Minute)))
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	// 3h1m of ticks at one-hour chunks = 4 requests.
	if got := atomic.LoadInt32(&calls); got != 4 {
		t.Fatalf("calls = %d, want 4", got)
	}
}

func TestFetchBarsPropagatesCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_ = json.NewEncoder(w).Encode(feedBarsResponse{})
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, BatchSize: 1, PauseBetweenBatches: time.Millisecond}, xlogger.Nop())
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	from := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	_, err := c.FetchBars(ctx, "eurusd", models.QuoteBid, window(from, from.Add(time.Minute)), domrepo.TF1m)
	if err == nil {
		t.Fatalf("expected cancellation error")
	}
}

func TestSplitWindowExactBoundary(t *testing.T) {
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	chunks := splitWindow(window(from, from.Add(2*time.Hour)), time.Hour)
	if len(chunks) != 2 {
		t.Fatalf("chunks = %d, want 2", len(chunks))
	}
	if !chunks[1].CloseAt.Equal(from.Add(2 * time.Hour)) {
		t.Fatalf("last chunk end = %v", chunks[1].CloseAt)
	}
}
