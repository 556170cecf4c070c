package dukascopy

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/akal0/profitabledge-sub000/internal/domain/models"
	domrepo "github.com/akal0/profitabledge-sub000/internal/domain/repository"
	"github.com/akal0/profitabledge-sub000/internal/service/ratelimit"
	xhttp "github.com/akal0/profitabledge-sub000/pkg/http"
	xlogger "github.com/akal0/profitabledge-sub000/pkg/logger"
)

// chunk sizes for range splitting: one request per day of bars, one per
// hour of ticks. Trade windows are usually minutes to hours, so most
// analyses need a single chunk.
const (
	barChunk  = 24 * time.Hour
	tickChunk = time.Hour
)

// Config holds provider connection and pacing settings. BatchSize and
// PauseBetweenBatches are a backpressure contract with the upstream feed,
// not an internal lock.
type Config struct {
	BaseURL             string
	BatchSize           int
	PauseBetweenBatches time.Duration
	UTCOffset           int // signed minutes passed through to the feed
	Timeout             time.Duration
}

// Client implements a PriceSource backed by the Dukascopy historical feed.
type Client struct {
	cfg     Config
	http    *xhttp.Client
	limiter *ratelimit.Limiter
	logger  *xlogger.Logger
}

// New creates a new historical price feed client.
func New(cfg Config, logger *xlogger.Logger) domrepo.PriceSource {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 10
	}
	if cfg.PauseBetweenBatches <= 0 {
		cfg.PauseBetweenBatches = time.Second
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{
		cfg:     cfg,
		http:    xhttp.NewClient(xhttp.WithTimeout(cfg.Timeout)),
		limiter: ratelimit.New(),
		logger:  logger,
	}
}

type feedBar struct {
	T int64   `json:"t"` // ms
	O float64 `json:"o"`
	H float64 `json:"h"`
	L float64 `json:"l"`
	C float64 `json:"c"`
}

type feedBarsResponse struct {
	Instrument string    `json:"instrument"`
	Bars       []feedBar `json:"bars"`
}

type feedTick struct {
	T   int64   `json:"t"` // ms
	Bid float64 `json:"bid"`
	Ask float64 `json:"ask"`
}

type feedTicksResponse struct {
	Instrument string     `json:"instrument"`
	Ticks      []feedTick `json:"ticks"`
}

// FetchBars pulls OHLC bars for the window, quoted on the requested side.
func (c *Client) FetchBars(ctx context.Context, instrument string, side models.QuoteSide, window models.TimeWindow, tf domrepo.Timeframe) ([]models.PriceBar, error) {
	chunks := splitWindow(window, barChunk)

	results := make([][]models.PriceBar, len(chunks))
	err := c.runBatched(ctx, instrument, len(chunks), func(ctx context.Context, i int) error {
		var resp feedBarsResponse
		err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
			Method: xhttp.MethodGet,
			URL:    c.cfg.BaseURL + "/v1/bars",
			QueryParams: map[string][]string{
				"instrument": {instrument},
				"offerSide":  {string(side)},
				"timeframe":  {string(tf)},
				"from":       {strconv.FormatInt(chunks[i].OpenAt.UnixMilli(), 10)},
				"to":         {strconv.FormatInt(chunks[i].CloseAt.UnixMilli(), 10)},
				"utcOffset":  {strconv.Itoa(c.cfg.UTCOffset)},
			},
		}, &resp)
		if err != nil {
			return fmt.Errorf("bars chunk %d: %w", i, err)
		}
		bars := make([]models.PriceBar, 0, len(resp.Bars))
		for _, b := range resp.Bars {
			bars = append(bars, models.PriceBar{
				Time:  time.UnixMilli(b.T).UTC(),
				Open:  b.O,
				High:  b.H,
				Low:   b.L,
				Close: b.C,
			})
		}
		results[i] = bars
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := flatten(results)
	sort.Slice(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
	c.logger.Debug("bars fetched",
		xlogger.String("instrument", instrument),
		xlogger.Int("chunks", len(chunks)),
		xlogger.Int("bars", len(out)))
	return out, nil
}

// FetchTicks pulls raw bid/ask ticks for the window.
func (c *Client) FetchTicks(ctx context.Context, instrument string, window models.TimeWindow) ([]models.Tick, error) {
	chunks := splitWindow(window, tickChunk)

	results := make([][]models.Tick, len(chunks))
	err := c.runBatched(ctx, instrument, len(chunks), func(ctx context.Context, i int) error {
		var resp feedTicksResponse
		err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
			Method: xhttp.MethodGet,
			URL:    c.cfg.BaseURL + "/v1/ticks",
			QueryParams: map[string][]string{
				"instrument": {instrument},
				"from":       {strconv.FormatInt(chunks[i].OpenAt.UnixMilli(), 10)},
				"to":         {strconv.FormatInt(chunks[i].CloseAt.UnixMilli(), 10)},
				"utcOffset":  {strconv.Itoa(c.cfg.UTCOffset)},
			},
		}, &resp)
		if err != nil {
			return fmt.Errorf("ticks chunk %d: %w", i, err)
		}
		ticks := make([]models.Tick, 0, len(resp.Ticks))
		for _, tk := range resp.Ticks {
			ticks = append(ticks, models.Tick{
				Time:     time.UnixMilli(tk.T).UTC(),
				BidPrice: tk.Bid,
				AskPrice: tk.Ask,
			})
		}
		results[i] = ticks
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := flatten(results)
	sort.Slice(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
	c.logger.Debug("ticks fetched",
		xlogger.String("instrument", instrument),
		xlogger.Int("chunks", len(chunks)),
		xlogger.Int("ticks", len(out)))
	return out, nil
}

// runBatched executes n chunk fetches in batches of BatchSize, pausing
// between batches. Chunks within a batch run concurrently; the first error
// cancels the rest.
func (c *Client) runBatched(ctx context.Context, instrument string, n int, fetch func(ctx context.Context, i int) error) error {
	for start := 0; start < n; start += c.cfg.BatchSize {
		if start > 0 {
			select {
			case <-time.After(c.cfg.PauseBetweenBatches):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if err := c.waitForToken(ctx, instrument); err != nil {
			return err
		}

		end := start + c.cfg.BatchSize
		if end > n {
			end = n
		}

		var (
			wg       sync.WaitGroup
			mu       sync.Mutex
			firstErr error
		)
		batchCtx, cancel := context.WithCancel(ctx)
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				if err := fetch(batchCtx, i); err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
						cancel()
					}
					mu.Unlock()
				}
			}(i)
		}
		wg.Wait()
		cancel()
		if firstErr != nil {
			return firstErr
		}
	}
	return nil
}

// waitForToken blocks until the per-instrument bucket allows another batch.
func (c *Client) waitForToken(ctx context.Context, instrument string) error {
	capacity := float64(c.cfg.BatchSize)
	refill := capacity / c.cfg.PauseBetweenBatches.Seconds()
	for !c.limiter.Allow(instrument, capacity, refill) {
		select {
		case <-time.After(50 * time.Millisecond):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func splitWindow(w models.TimeWindow, step time.Duration) []models.TimeWindow {
	var chunks []models.TimeWindow
	for at := w.OpenAt; at.Before(w.CloseAt); at = at.Add(step) {
		end := at.Add(step)
		if end.After(w.CloseAt) {
			end = w.CloseAt
		}
		chunks = append(chunks, models.TimeWindow{OpenAt: at, CloseAt: end})
	}
	return chunks
}

func flatten[T any](parts [][]T) []T {
	total := 0
	for _, p := range parts {
		total += len(p)
	}
	out := make([]T, 0, total)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
