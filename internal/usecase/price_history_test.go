package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/akal0/profitabledge-sub000/internal/domain/models"
	domrepo "github.com/akal0/profitabledge-sub000/internal/domain/repository"
	"github.com/akal0/profitabledge-sub000/pkg/cache"
	xlogger "github.com/akal0/profitabledge-sub000/pkg/logger"
)

func testWindow() models.TimeWindow {
	return models.TimeWindow{
		OpenAt:  time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		CloseAt: time.Date(2024, 3, 1, 11, 0, 0, 0, time.UTC),
	}
}

func TestFetchBarsEmptyRetriesWithPaddedWindow(t *testing.T) {
	src := &fakePriceSource{}
	ph := NewPriceHistory(src, nil, 0, nopMetrics{}, xlogger.Nop())

	w := testWindow()
	bars, queried := ph.FetchBars(context.Background(), "eurusd", models.QuoteBid, w, domrepo.TF1m)
	if len(bars) != 0 {
		t.Fatalf("bars = %d, want 0", len(bars))
	}
	if src.barCalls != 2 {
		t.Fatalf("barCalls = %d, want 2", src.barCalls)
	}
	want := w.Pad(retryPad)
	if !queried.OpenAt.Equal(want.OpenAt) || !queried.CloseAt.Equal(want.CloseAt) {
		t.Fatalf("queried window = %+v, want padded %+v", queried, want)
	}
}

func TestFetchBarsFirstHitSkipsRetry(t *testing.T) {
	src := &fakePriceSource{bars: []models.PriceBar{{
		Time: time.Date(2024, 3, 1, 10, 1, 0, 0, time.UTC),
		Open: 1.1, High: 1.2, Low: 1.0, Close: 1.1,
	}}}
	ph := NewPriceHistory(src, nil, 0, nopMetrics{}, xlogger.Nop())

	w := testWindow()
	bars, queried := ph.FetchBars(context.Background(), "eurusd", models.QuoteBid, w, domrepo.TF1m)
	if len(bars) != 1 || src.barCalls != 1 {
		t.Fatalf("bars = %d calls = %d, want 1/1", len(bars), src.barCalls)
	}
	if !queried.OpenAt.Equal(w.OpenAt) {
		t.Fatalf("queried window should be the original, got %+v", queried)
	}
}

func TestFetchTicksCachesNonEmptySeries(t *testing.T) {
	src := &fakePriceSource{ticks: []models.Tick{
		{Time: time.Date(2024, 3, 1, 10, 0, 5, 0, time.UTC), BidPrice: 1.1, AskPrice: 1.1002},
	}}
	mem := cache.NewMemoryCache()
	defer mem.Close()
	ph := NewPriceHistory(src, mem, time.Minute, nopMetrics{}, xlogger.Nop())

	w := testWindow()
	first := ph.FetchTicks(context.Background(), "eurusd", w)
	second := ph.FetchTicks(context.Background(), "eurusd", w)
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("tick counts = %d/%d, want 1/1", len(first), len(second))
	}
	if src.tickCalls != 1 {
		t.Fatalf("tickCalls = %d, want 1 (second read served from cache)", src.tickCalls)
	}
	if !second[0].Time.Equal(first[0].Time) || second[0].BidPrice != first[0].BidPrice {
		t.Fatalf("cached series differs: %+v vs %+v", first[0], second[0])
	}
}

func TestFetchTicksEmptySeriesNotCached(t *testing.T) {
	src := &fakePriceSource{}
	mem := cache.NewMemoryCache()
	defer mem.Close()
	ph := NewPriceHistory(src, mem, time.Minute, nopMetrics{}, xlogger.Nop())

	w := testWindow()
	ph.FetchTicks(context.Background(), "eurusd", w)
	ph.FetchTicks(context.Background(), "eurusd", w)
	if src.tickCalls != 2 {
		t.Fatalf("tickCalls = %d, want 2 (empty answers are re-asked)", src.tickCalls)
	}
}
