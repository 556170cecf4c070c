package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/akal0/profitabledge-sub000/internal/domain/models"
	domrepo "github.com/akal0/profitabledge-sub000/internal/domain/repository"
	"github.com/akal0/profitabledge-sub000/internal/excursion"
	"github.com/akal0/profitabledge-sub000/internal/instrument"
	xlogger "github.com/akal0/profitabledge-sub000/pkg/logger"
)

// stopTolerancePips: a recorded close within half a pip of the stop is
// treated as the stop having been the exit.
const stopTolerancePips = 0.5

// Classifier branch names, emitted as structured events and metric labels.
const (
	branchNoStop       = "no_sl"
	branchExactStop    = "exact_sl_close"
	branchBreakeven    = "breakeven"
	branchClosedInDD   = "closed_in_drawdown"
	branchBarWalk      = "bar_walk"
	branchTickFallback = "tick_fallback"
	branchNoPriceData  = "no_price_data"
	branchInternal     = "internal_error"
)

// DrawdownAnalyzer orchestrates one adverse-excursion analysis per call:
// resolve the instrument and window, short-circuit on trades that need no
// price data, otherwise walk minute bars and, for winners that show no
// adverse movement at that granularity, re-walk raw ticks.
type DrawdownAnalyzer struct {
	trades  domrepo.TradeStore
	prices  *PriceHistory
	metrics domrepo.Metrics
	logger  *xlogger.Logger
}

func NewDrawdownAnalyzer(trades domrepo.TradeStore, prices *PriceHistory, metrics domrepo.Metrics, logger *xlogger.Logger) *DrawdownAnalyzer {
	return &DrawdownAnalyzer{trades: trades, prices: prices, metrics: metrics, logger: logger}
}

// ComputeDrawdown returns a valid DrawdownResult for every input: input
// inadequacy and provider unavailability resolve to documented fallback
// states, and unexpected failures are converted to a result with a non-empty
// Error field. The caller never sees a Go error from this operation.
func (a *DrawdownAnalyzer) ComputeDrawdown(ctx context.Context, tradeID string, tf domrepo.Timeframe, debug bool) (res models.DrawdownResult) {
	start := time.Now()
	res.ID = tradeID

	defer func() {
		a.metrics.RecordLatency("compute_drawdown", time.Since(start).Seconds())
		if r := recover(); r != nil {
			a.metrics.RecordBranch(branchInternal)
			a.logger.Error("drawdown analysis panicked",
				xlogger.String("trade_id", tradeID),
				xlogger.Any("panic", r))
			res = models.DrawdownResult{ID: tradeID, Hit: models.HitNone, Error: fmt.Sprintf("internal: %v", r)}
		}
	}()

	trade, err := a.trades.GetTrade(ctx, tradeID)
	if err != nil {
		a.metrics.RecordBranch(branchInternal)
		return models.DrawdownResult{ID: tradeID, Hit: models.HitNone, Error: fmt.Sprintf("load trade: %v", err)}
	}

	return a.classify(ctx, trade, tf, debug)
}

func (a *DrawdownAnalyzer) classify(ctx context.Context, trade *models.TradeRecord, tf domrepo.Timeframe, debug bool) models.DrawdownResult {
	// 1. No usable stop: nothing to measure against, no fetch.
	if !trade.HasStop() {
		a.decided(trade, branchNoStop, debug, nil)
		return models.DrawdownResult{ID: trade.ID, Hit: models.HitNone, Note: models.NoteNoStop}
	}

	profile := instrument.Resolve(trade.Symbol)
	stop := *trade.StopLoss
	entry := trade.EntryPrice
	tolerance := stopTolerancePips * profile.PipSize
	stopDistPips := math.Abs(entry-stop) / profile.PipSize

	// 2. Recorded close sits on the stop: the stop was the exit. A stop
	// parked at entry is a breakeven exit, not a loss.
	if trade.ClosePrice != nil && math.Abs(*trade.ClosePrice-stop) <= tolerance {
		hit := models.HitSL
		branch := branchExactStop
		if math.Abs(stop-entry) <= tolerance {
			hit = models.HitBE
			branch = branchBreakeven
		}
		res := models.DrawdownResult{
			ID:          trade.ID,
			Hit:         hit,
			AdversePips: models.Float64Ptr(stopDistPips),
			AdverseUsd:  models.Float64Ptr(stopDistPips * profile.ContractSize * trade.Volume),
			PctToSL:     models.Float64Ptr(100),
		}
		a.decided(trade, branch, debug, &res)
		return res
	}

	// 3. Losing trade with a recorded close: measure against the close
	// directly, no fetch needed.
	if trade.Profit < 0 && trade.ClosePrice != nil {
		adversePips := math.Abs(*trade.ClosePrice-entry) / profile.PipSize
		res := models.DrawdownResult{
			ID:          trade.ID,
			Hit:         models.HitClose,
			AdversePips: models.Float64Ptr(adversePips),
			AdverseUsd:  models.Float64Ptr(adversePips * profile.ContractSize * trade.Volume),
			PctToSL:     models.Float64Ptr(pctToStop(adversePips, stopDistPips)),
		}
		a.decided(trade, branchClosedInDD, debug, &res)
		return res
	}

	window, side, quote := ResolveWindow(trade)
	target := 0.0
	if trade.TakeProfit != nil {
		target = *trade.TakeProfit
	}

	// 4. Bar walk over the minute-aligned window.
	barWindow := window.AlignedToMinute()
	bars, queried := a.prices.FetchBars(ctx, profile.CanonicalID, quote, barWindow, tf)
	candleRange := queried.Range()

	// Cancelled analyses yield no computed result, not a partial one.
	if ctx.Err() != nil {
		return models.DrawdownResult{ID: trade.ID, Hit: models.HitNone, Error: ctx.Err().Error()}
	}

	if debug {
		a.logger.Debug("bar walk input",
			xlogger.String("trade_id", trade.ID),
			xlogger.String("instrument", profile.CanonicalID),
			xlogger.String("side", string(side)),
			xlogger.Int("bars", len(bars)),
			xlogger.Any("candle_range", candleRange))
	}

	walk := excursion.WalkBars(bars, side, entry, stop, target)
	if walk.Exit == excursion.ExitSL {
		res := a.stopHitResult(trade, profile, stopDistPips)
		res.CandleRange = &candleRange
		a.decided(trade, branchBarWalk, debug, &res)
		return res
	}

	barPips := walk.AdverseDelta / profile.PipSize
	barPct := pctToStop(barPips, stopDistPips)

	// 5. Tick fallback: a winner whose minute bars show no adverse movement
	// may still have dipped between bar boundaries.
	if barPct <= 0 && trade.Profit > 0 {
		ticks := a.prices.FetchTicks(ctx, profile.CanonicalID, window)
		tickRange := window.Range()

		if ctx.Err() != nil {
			return models.DrawdownResult{ID: trade.ID, Hit: models.HitNone, Error: ctx.Err().Error()}
		}

		if debug {
			a.logger.Debug("tick fallback input",
				xlogger.String("trade_id", trade.ID),
				xlogger.String("instrument", profile.CanonicalID),
				xlogger.Int("ticks", len(ticks)))
		}

		if len(ticks) > 0 {
			tickWalk := excursion.WalkTicks(ticks, side, entry, stop, target)
			if tickWalk.Exit == excursion.ExitSL {
				res := a.stopHitResult(trade, profile, stopDistPips)
				res.CandleRange = &candleRange
				res.TickRange = &tickRange
				a.decided(trade, branchTickFallback, debug, &res)
				return res
			}
			tickPips := tickWalk.AdverseDelta / profile.PipSize
			res := models.DrawdownResult{
				ID:          trade.ID,
				Hit:         models.HitClose,
				AdversePips: models.Float64Ptr(tickPips),
				AdverseUsd:  models.Float64Ptr(tickPips * profile.ContractSize * trade.Volume),
				PctToSL:     models.Float64Ptr(pctToStop(tickPips, stopDistPips)),
				CandleRange: &candleRange,
				TickRange:   &tickRange,
			}
			a.decided(trade, branchTickFallback, debug, &res)
			return res
		}

		// 6. Nothing at either granularity.
		if len(bars) == 0 {
			res := models.DrawdownResult{
				ID:          trade.ID,
				Hit:         models.HitNone,
				AdversePips: models.Float64Ptr(0),
				PctToSL:     models.Float64Ptr(0),
				CandleRange: &candleRange,
				TickRange:   &tickRange,
			}
			a.decided(trade, branchNoPriceData, debug, &res)
			return res
		}
	}

	// 7. No bars at all for a trade that never reached the tick path.
	if len(bars) == 0 {
		res := models.DrawdownResult{
			ID:          trade.ID,
			Hit:         models.HitNone,
			AdversePips: models.Float64Ptr(0),
			PctToSL:     models.Float64Ptr(0),
			CandleRange: &candleRange,
		}
		a.decided(trade, branchNoPriceData, debug, &res)
		return res
	}

	res := models.DrawdownResult{
		ID:          trade.ID,
		Hit:         models.HitClose,
		AdversePips: models.Float64Ptr(barPips),
		AdverseUsd:  models.Float64Ptr(barPips * profile.ContractSize * trade.Volume),
		PctToSL:     models.Float64Ptr(barPct),
		CandleRange: &candleRange,
	}
	a.decided(trade, branchBarWalk, debug, &res)
	return res
}

func (a *DrawdownAnalyzer) stopHitResult(trade *models.TradeRecord, profile models.InstrumentProfile, stopDistPips float64) models.DrawdownResult {
	return models.DrawdownResult{
		ID:          trade.ID,
		Hit:         models.HitSL,
		AdversePips: models.Float64Ptr(stopDistPips),
		AdverseUsd:  models.Float64Ptr(stopDistPips * profile.ContractSize * trade.Volume),
		PctToSL:     models.Float64Ptr(100),
	}
}

// decided emits one structured event per classifier decision.
func (a *DrawdownAnalyzer) decided(trade *models.TradeRecord, branch string, debug bool, res *models.DrawdownResult) {
	a.metrics.RecordBranch(branch)
	if !debug {
		return
	}
	fields := []xlogger.Field{
		xlogger.String("trade_id", trade.ID),
		xlogger.String("symbol", trade.Symbol),
		xlogger.String("branch", branch),
	}
	if res != nil {
		fields = append(fields, xlogger.String("hit", string(res.Hit)))
		if res.PctToSL != nil {
			fields = append(fields, xlogger.Float64("pct_to_sl", *res.PctToSL))
		}
	}
	a.logger.Debug("drawdown branch decided", fields...)
}

// pctToStop converts adverse pips into a 0-100 distance-to-stop ratio,
// clamped at both ends. A zero stop distance pins the ratio to 100: the
// market had nowhere to go before the stop.
func pctToStop(adversePips, stopDistPips float64) float64 {
	if stopDistPips <= 0 {
		return 100
	}
	pct := adversePips / stopDistPips * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
