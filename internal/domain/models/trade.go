package models

import (
	"math"
	"strings"
	"time"
)

// Side is the direction of a position.
type Side string

const (
	SideLong  Side = "long"
	SideShort Side = "short"
)

// QuoteSide selects which side of the quote a position exits against.
type QuoteSide string

const (
	QuoteBid QuoteSide = "bid"
	QuoteAsk QuoteSide = "ask"
)

// SideFromType derives the position side from a broker's free-text trade
// type. Anything containing "short" or "sell" is a short; everything else
// defaults to long.
func SideFromType(tradeType string) Side {
	t := strings.ToLower(tradeType)
	if strings.Contains(t, "short") || strings.Contains(t, "sell") {
		return SideShort
	}
	return SideLong
}

// QuoteSideFor returns the quote side adverse movement is measured against:
// bid for longs, ask for shorts.
func QuoteSideFor(side Side) QuoteSide {
	if side == SideShort {
		return QuoteAsk
	}
	return QuoteBid
}

// TradeRecord is one closed trade as imported from broker history.
// Owned by the persistence layer; read-only here. Raw timestamp strings are
// kept as imported because broker CSV formats are not guaranteed.
type TradeRecord struct {
	ID              string
	Symbol          string
	Type            string // free text, e.g. "Buy", "sell limit", "SHORT"
	EntryPrice      float64
	StopLoss        *float64
	TakeProfit      *float64
	ClosePrice      *float64
	Volume          float64
	Profit          float64
	OpenRaw         string
	CloseRaw        string
	DurationSeconds *int64
	CreatedAt       time.Time
}

// Side derives the direction from the record's type text.
func (t *TradeRecord) Side() Side { return SideFromType(t.Type) }

// HasStop reports whether the record carries a usable stop-loss.
// Zero, negative and non-finite stops are treated as absent.
func (t *TradeRecord) HasStop() bool {
	if t.StopLoss == nil {
		return false
	}
	sl := *t.StopLoss
	return sl > 0 && !math.IsNaN(sl) && !math.IsInf(sl, 0)
}
