package repository

import (
	"context"

	"github.com/akal0/profitabledge-sub000/internal/domain/models"
)

// TradeStore provides read-only access to imported trades. The write side
// (CSV import, pagination, preferences) lives in the journal backend and is
// not part of this service.
type TradeStore interface {
	GetTrade(ctx context.Context, id string) (*models.TradeRecord, error)
	Health(ctx context.Context) error
	Close() error
}

// PriceSource queries the market data provider for historical prices.
// Implementations must treat the upstream as unreliable: an empty series is
// a normal answer, not an error. Errors are reserved for transport-level
// failures the caller may want to log.
type PriceSource interface {
	FetchBars(ctx context.Context, instrument string, side models.QuoteSide, window models.TimeWindow, tf Timeframe) ([]models.PriceBar, error)
	FetchTicks(ctx context.Context, instrument string, window models.TimeWindow) ([]models.Tick, error)
}

// Metrics records operational counters for the analyzer.
type Metrics interface {
	RecordFetch(kind, outcome string)
	RecordBranch(branch string)
	RecordLatency(op string, seconds float64)
}
