package excursion

import (
	"testing"
	"time"

	"github.com/akal0/profitabledge-sub000/internal/domain/models"
)

func bars(ohlc ...[4]float64) []models.PriceBar {
	out := make([]models.PriceBar, len(ohlc))
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	for i, b := range ohlc {
		out[i] = models.PriceBar{
			Time:  base.Add(time.Duration(i) * time.Minute),
			Open:  b[0],
			High:  b[1],
			Low:   b[2],
			Close: b[3],
		}
	}
	return out
}

func TestWalkBarsLongStopHit(t *testing.T) {
	series := bars(
		[4]float64{1.1000, 1.1010, 1.0990, 1.1005},
		[4]float64{1.1005, 1.1008, 1.0940, 1.0950}, // low crosses the stop
		[4]float64{1.0950, 1.0970, 1.0945, 1.0960},
	)
	r := WalkBars(series, models.SideLong, 1.1000, 1.0950, 0)
	if r.Exit != ExitSL {
		t.Fatalf("exit = %q, want SL", r.Exit)
	}
	// Adverse is pinned to the full entry-stop distance, not the bar's low.
	if got, want := r.AdverseDelta, 1.1000-1.0950; !closeEnough(got, want) {
		t.Fatalf("adverse = %v, want %v", got, want)
	}
}

func TestWalkBarsLongNoStopHitTracksMinLow(t *testing.T) {
	series := bars(
		[4]float64{1.1000, 1.1010, 1.0980, 1.0990},
		[4]float64{1.0990, 1.1020, 1.0975, 1.1015},
		[4]float64{1.1015, 1.1030, 1.1010, 1.1025},
	)
	r := WalkBars(series, models.SideLong, 1.1000, 1.0950, 0)
	if r.Exit != ExitNone {
		t.Fatalf("exit = %q, want none", r.Exit)
	}
	if got, want := r.AdverseDelta, 1.1000-1.0975; !closeEnough(got, want) {
		t.Fatalf("adverse = %v, want %v", got, want)
	}
}

func TestWalkBarsLongTargetStopsScan(t *testing.T) {
	series := bars(
		[4]float64{1.1000, 1.1010, 1.0990, 1.1005},
		[4]float64{1.1005, 1.1060, 1.1000, 1.1055}, // high reaches the target
		[4]float64{1.1055, 1.1060, 1.0900, 1.0910}, // after-exit drop must be ignored
	)
	r := WalkBars(series, models.SideLong, 1.1000, 1.0950, 1.1050)
	if r.Exit != ExitTP {
		t.Fatalf("exit = %q, want TP", r.Exit)
	}
	if got, want := r.AdverseDelta, 1.1000-1.0990; !closeEnough(got, want) {
		t.Fatalf("adverse = %v, want %v", got, want)
	}
}

func TestWalkBarsStopWinsOverTargetInSameBar(t *testing.T) {
	series := bars(
		[4]float64{1.1000, 1.1060, 1.0940, 1.1050}, // both levels inside one bar
	)
	r := WalkBars(series, models.SideLong, 1.1000, 1.0950, 1.1050)
	if r.Exit != ExitSL {
		t.Fatalf("exit = %q, want SL", r.Exit)
	}
}

func TestWalkBarsShortStopHit(t *testing.T) {
	series := bars(
		[4]float64{1900.0, 1905.0, 1898.0, 1902.0},
		[4]float64{1902.0, 1912.0, 1901.0, 1908.0}, // high crosses the stop
	)
	r := WalkBars(series, models.SideShort, 1900.0, 1910.0, 0)
	if r.Exit != ExitSL {
		t.Fatalf("exit = %q, want SL", r.Exit)
	}
	if got, want := r.AdverseDelta, 10.0; !closeEnough(got, want) {
		t.Fatalf("adverse = %v, want %v", got, want)
	}
}

func TestWalkBarsShortTracksMaxHigh(t *testing.T) {
	series := bars(
		[4]float64{1900.0, 1905.0, 1898.0, 1902.0},
		[4]float64{1902.0, 1905.0, 1890.0, 1891.0},
	)
	r := WalkBars(series, models.SideShort, 1900.0, 1910.0, 0)
	if r.Exit != ExitNone {
		t.Fatalf("exit = %q, want none", r.Exit)
	}
	if got, want := r.AdverseDelta, 5.0; !closeEnough(got, want) {
		t.Fatalf("adverse = %v, want %v", got, want)
	}
}

func TestWalkBarsNoAdverseMovementIsZero(t *testing.T) {
	series := bars(
		[4]float64{1.1000, 1.1020, 1.1000, 1.1015},
		[4]float64{1.1015, 1.1040, 1.1010, 1.1035},
	)
	r := WalkBars(series, models.SideLong, 1.1000, 1.0950, 0)
	if r.AdverseDelta != 0 {
		t.Fatalf("adverse = %v, want 0", r.AdverseDelta)
	}
}

func TestWalkBarsEmptySeries(t *testing.T) {
	r := WalkBars(nil, models.SideLong, 1.1000, 1.0950, 0)
	if r.Exit != ExitNone || r.AdverseDelta != 0 {
		t.Fatalf("unexpected result %+v", r)
	}
}

func ticksAt(prices ...[2]float64) []models.Tick {
	out := make([]models.Tick, len(prices))
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	for i, p := range prices {
		out[i] = models.Tick{Time: base.Add(time.Duration(i) * time.Second), BidPrice: p[0], AskPrice: p[1]}
	}
	return out
}

func TestWalkTicksLongUsesBid(t *testing.T) {
	tks := ticksAt(
		[2]float64{1.1000, 1.1002},
		[2]float64{1.0998, 1.1000}, // bid dips 2 pips under entry
		[2]float64{1.1005, 1.1007},
	)
	r := WalkTicks(tks, models.SideLong, 1.1000, 1.0950, 0)
	if r.Exit != ExitNone {
		t.Fatalf("exit = %q, want none", r.Exit)
	}
	if got, want := r.AdverseDelta, 0.0002; !closeEnough(got, want) {
		t.Fatalf("adverse = %v, want %v", got, want)
	}
}

func TestWalkTicksShortUsesAskAndStops(t *testing.T) {
	tks := ticksAt(
		[2]float64{1899.5, 1900.0},
		[2]float64{1909.0, 1910.5}, // ask crosses the stop
		[2]float64{1880.0, 1880.5},
	)
	r := WalkTicks(tks, models.SideShort, 1900.0, 1910.0, 0)
	if r.Exit != ExitSL {
		t.Fatalf("exit = %q, want SL", r.Exit)
	}
	if got, want := r.AdverseDelta, 10.0; !closeEnough(got, want) {
		t.Fatalf("adverse = %v, want %v", got, want)
	}
}

func closeEnough(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-9
}
