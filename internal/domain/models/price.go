package models

import "time"

// InstrumentProfile describes how a broker symbol maps onto the data
// provider, and how its prices are normalized into pips and USD.
type InstrumentProfile struct {
	CanonicalID  string
	PipSize      float64
	ContractSize float64
}

// TimeWindow is the trade's lifetime in UTC instants.
// Invariant: CloseAt is strictly after OpenAt.
type TimeWindow struct {
	OpenAt  time.Time
	CloseAt time.Time
}

// AlignedToMinute returns the window floored/ceiled to minute boundaries,
// which is what the provider expects for minute-bar queries.
func (w TimeWindow) AlignedToMinute() TimeWindow {
	open := w.OpenAt.Truncate(time.Minute)
	close := w.CloseAt.Truncate(time.Minute)
	if close.Before(w.CloseAt) {
		close = close.Add(time.Minute)
	}
	return TimeWindow{OpenAt: open, CloseAt: close}
}

// Pad widens the window by d on both ends.
func (w TimeWindow) Pad(d time.Duration) TimeWindow {
	return TimeWindow{OpenAt: w.OpenAt.Add(-d), CloseAt: w.CloseAt.Add(d)}
}

// Range returns the window as [from, to] unix milliseconds, the form the
// dashboard displays as fetch provenance.
func (w TimeWindow) Range() [2]int64 {
	return [2]int64{w.OpenAt.UnixMilli(), w.CloseAt.UnixMilli()}
}

// PriceBar is one OHLC candle, bid/ask already resolved to a single series.
type PriceBar struct {
	Time  time.Time
	Open  float64
	High  float64
	Low   float64
	Close float64
}

// Tick is a single bid/ask observation, used only for the tick-level
// fallback pass.
type Tick struct {
	Time     time.Time
	BidPrice float64
	AskPrice float64
}
