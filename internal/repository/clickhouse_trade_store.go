package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/akal0/profitabledge-sub000/internal/domain/models"
	domrepo "github.com/akal0/profitabledge-sub000/internal/domain/repository"
)

// ClickHouseTradeStore implements TradeStore for ClickHouse. The trades
// table is written by the CSV import pipeline; this service only reads it.
type ClickHouseTradeStore struct {
	db    *sql.DB
	table string
}

// NewClickHouseTradeStore creates a read-only trade store.
func NewClickHouseTradeStore(db *sql.DB, table string) domrepo.TradeStore {
	return &ClickHouseTradeStore{db: db, table: table}
}

func (s *ClickHouseTradeStore) GetTrade(ctx context.Context, id string) (*models.TradeRecord, error) {
	q := fmt.Sprintf(`SELECT id, symbol, type, entry_price, stop_loss, take_profit, close_price,
		volume, profit, open_time_raw, close_time_raw, duration_seconds, created_at
		FROM %s WHERE id = ? LIMIT 1`, s.table)

	row := s.db.QueryRowContext(ctx, q, id)

	var (
		t        models.TradeRecord
		stopLoss sql.NullFloat64
		takeProf sql.NullFloat64
		closeP   sql.NullFloat64
		duration sql.NullInt64
	)
	err := row.Scan(
		&t.ID, &t.Symbol, &t.Type, &t.EntryPrice, &stopLoss, &takeProf, &closeP,
		&t.Volume, &t.Profit, &t.OpenRaw, &t.CloseRaw, &duration, &t.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("trade %s not found", id)
		}
		return nil, fmt.Errorf("get trade %s: %w", id, err)
	}

	if stopLoss.Valid {
		t.StopLoss = &stopLoss.Float64
	}
	if takeProf.Valid {
		t.TakeProfit = &takeProf.Float64
	}
	if closeP.Valid {
		t.ClosePrice = &closeP.Float64
	}
	if duration.Valid {
		t.DurationSeconds = &duration.Int64
	}

	return &t, nil
}

func (s *ClickHouseTradeStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *ClickHouseTradeStore) Close() error {
	return nil // Managed by pkg
}
