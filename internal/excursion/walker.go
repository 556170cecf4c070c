// Package excursion implements the adverse-excursion path walk over a
// chronologically ordered price series. All functions are pure; fetching and
// classification live in the usecase layer.
package excursion

import "github.com/akal0/profitabledge-sub000/internal/domain/models"

// Exit marks how a walk terminated.
type Exit string

const (
	// ExitNone: the series ran out without touching stop or target.
	ExitNone Exit = ""
	// ExitSL: the stop level was crossed.
	ExitSL Exit = "SL"
	// ExitTP: the target was reached before any stop hit.
	ExitTP Exit = "TP"
)

// Result is the outcome of one walk: the worst price movement against the
// position (in price units, not pips) and the early-exit reason, if any.
type Result struct {
	AdverseDelta float64
	Exit         Exit
}

// WalkBars scans OHLC bars in order and tracks the running extreme against
// the position. A stop touch exits immediately with the adverse delta fixed
// at the full entry-to-stop distance: a crossed stop counts as fully hit,
// never partially. A target touch stops the scan with the excursion captured
// so far. stop <= 0 means no stop, target <= 0 means no target.
func WalkBars(series []models.PriceBar, side models.Side, entry, stop, target float64) Result {
	if side == models.SideShort {
		return walkBarsShort(series, entry, stop, target)
	}
	return walkBarsLong(series, entry, stop, target)
}

func walkBarsLong(series []models.PriceBar, entry, stop, target float64) Result {
	worst := entry
	for _, bar := range series {
		if stop > 0 && bar.Low <= stop {
			return Result{AdverseDelta: entry - stop, Exit: ExitSL}
		}
		if bar.Low < worst {
			worst = bar.Low
		}
		if target > 0 && bar.High >= target {
			return Result{AdverseDelta: entry - worst, Exit: ExitTP}
		}
	}
	return Result{AdverseDelta: entry - worst}
}

func walkBarsShort(series []models.PriceBar, entry, stop, target float64) Result {
	worst := entry
	for _, bar := range series {
		if stop > 0 && bar.High >= stop {
			return Result{AdverseDelta: stop - entry, Exit: ExitSL}
		}
		if bar.High > worst {
			worst = bar.High
		}
		if target > 0 && bar.Low <= target {
			return Result{AdverseDelta: worst - entry, Exit: ExitTP}
		}
	}
	return Result{AdverseDelta: worst - entry}
}

// WalkTicks is the same walk specialized to single prices: longs are judged
// against the bid, shorts against the ask.
func WalkTicks(ticks []models.Tick, side models.Side, entry, stop, target float64) Result {
	if side == models.SideShort {
		return walkTicksShort(ticks, entry, stop, target)
	}
	return walkTicksLong(ticks, entry, stop, target)
}

func walkTicksLong(ticks []models.Tick, entry, stop, target float64) Result {
	worst := entry
	for _, tk := range ticks {
		if stop > 0 && tk.BidPrice <= stop {
			return Result{AdverseDelta: entry - stop, Exit: ExitSL}
		}
		if tk.BidPrice < worst {
			worst = tk.BidPrice
		}
		if target > 0 && tk.BidPrice >= target {
			return Result{AdverseDelta: entry - worst, Exit: ExitTP}
		}
	}
	return Result{AdverseDelta: entry - worst}
}

func walkTicksShort(ticks []models.Tick, entry, stop, target float64) Result {
	worst := entry
	for _, tk := range ticks {
		if stop > 0 && tk.AskPrice >= stop {
			return Result{AdverseDelta: stop - entry, Exit: ExitSL}
		}
		if tk.AskPrice > worst {
			worst = tk.AskPrice
		}
		if target > 0 && tk.AskPrice <= target {
			return Result{AdverseDelta: worst - entry, Exit: ExitTP}
		}
	}
	return Result{AdverseDelta: worst - entry}
}
