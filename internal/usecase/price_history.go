package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/akal0/profitabledge-sub000/internal/domain/models"
	domrepo "github.com/akal0/profitabledge-sub000/internal/domain/repository"
	"github.com/akal0/profitabledge-sub000/pkg/cache"
	xlogger "github.com/akal0/profitabledge-sub000/pkg/logger"
)

// retryPad widens an empty first minute-bar fetch by this much on each end
// before giving up on bars.
const retryPad = 60 * time.Second

// PriceHistory fetches bar and tick series for a trade window. Provider
// failures are degraded to empty series so the classifier can widen the
// window or fall back to ticks instead of erroring out.
type PriceHistory struct {
	source   domrepo.PriceSource
	cache    cache.Service // nil: every call re-fetches from the provider
	cacheTTL time.Duration
	metrics  domrepo.Metrics
	logger   *xlogger.Logger
}

// NewPriceHistory creates the fetcher. cacheSvc may be nil, in which case
// the read-through price cache is disabled and freshness wins over reuse.
func NewPriceHistory(source domrepo.PriceSource, cacheSvc cache.Service, cacheTTL time.Duration, metrics domrepo.Metrics, logger *xlogger.Logger) *PriceHistory {
	return &PriceHistory{
		source:   source,
		cache:    cacheSvc,
		cacheTTL: cacheTTL,
		metrics:  metrics,
		logger:   logger,
	}
}

// FetchBars pulls OHLC bars for the window. An empty first fetch is retried
// once with the window padded by retryPad on both ends. The returned window
// is the one actually queried, for provenance.
func (ph *PriceHistory) FetchBars(ctx context.Context, instrument string, quote models.QuoteSide, window models.TimeWindow, tf domrepo.Timeframe) ([]models.PriceBar, models.TimeWindow) {
	bars := ph.fetchBarsOnce(ctx, instrument, quote, window, tf)
	if len(bars) > 0 {
		return bars, window
	}
	if ctx.Err() != nil {
		return nil, window
	}

	padded := window.Pad(retryPad)
	bars = ph.fetchBarsOnce(ctx, instrument, quote, padded, tf)
	return bars, padded
}

// FetchTicks pulls raw bid/ask ticks over the full window.
func (ph *PriceHistory) FetchTicks(ctx context.Context, instrument string, window models.TimeWindow) []models.Tick {
	key := fmt.Sprintf("ticks:%s:%d:%d", instrument, window.OpenAt.Unix(), window.CloseAt.Unix())

	var ticks []models.Tick
	if ph.cacheGet(ctx, key, &ticks) {
		ph.metrics.RecordFetch("ticks", "cache")
		return ticks
	}

	ticks, err := ph.source.FetchTicks(ctx, instrument, window)
	if err != nil {
		ph.metrics.RecordFetch("ticks", "error")
		ph.logger.Warn("tick fetch failed",
			xlogger.String("instrument", instrument),
			xlogger.Error(err))
		return nil
	}
	ph.metrics.RecordFetch("ticks", outcomeFor(len(ticks)))
	if len(ticks) > 0 {
		ph.cacheSet(ctx, key, ticks)
	}
	return ticks
}

func (ph *PriceHistory) fetchBarsOnce(ctx context.Context, instrument string, quote models.QuoteSide, window models.TimeWindow, tf domrepo.Timeframe) []models.PriceBar {
	key := fmt.Sprintf("bars:%s:%s:%s:%d:%d", instrument, quote, tf, window.OpenAt.Unix(), window.CloseAt.Unix())

	var bars []models.PriceBar
	if ph.cacheGet(ctx, key, &bars) {
		ph.metrics.RecordFetch("bars", "cache")
		return bars
	}

	bars, err := ph.source.FetchBars(ctx, instrument, quote, window, tf)
	if err != nil {
		ph.metrics.RecordFetch("bars", "error")
		ph.logger.Warn("bar fetch failed",
			xlogger.String("instrument", instrument),
			xlogger.Error(err))
		return nil
	}
	ph.metrics.RecordFetch("bars", outcomeFor(len(bars)))
	if len(bars) > 0 {
		ph.cacheSet(ctx, key, bars)
	}
	return bars
}

// cacheGet loads a cached series into dest. Series are stored as JSON
// strings so both the memory and redis layers handle them uniformly.
func (ph *PriceHistory) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if ph.cache == nil {
		return false
	}
	raw, err := ph.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			ph.logger.Debug("price cache get failed", xlogger.String("key", key), xlogger.Error(err))
		}
		return false
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false
	}
	return true
}

func (ph *PriceHistory) cacheSet(ctx context.Context, key string, v interface{}) {
	if ph.cache == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := ph.cache.Set(ctx, key, string(b), ph.cacheTTL); err != nil {
		ph.logger.Debug("price cache set failed", xlogger.String("key", key), xlogger.Error(err))
	}
}

func outcomeFor(n int) string {
	if n == 0 {
		return "empty"
	}
	return "ok"
}
