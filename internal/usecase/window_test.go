package usecase

import (
	"testing"
	"time"

	"github.com/akal0/profitabledge-sub000/internal/domain/models"
)

func TestResolveWindowNaiveTimestampsAreUTC(t *testing.T) {
	tr := &models.TradeRecord{
		Type:     "Buy",
		OpenRaw:  "2024-03-01 10:15:30",
		CloseRaw: "2024-03-01 11:45:00",
	}
	w, side, quote := ResolveWindow(tr)
	if side != models.SideLong || quote != models.QuoteBid {
		t.Fatalf("side=%v quote=%v", side, quote)
	}
	wantOpen := time.Date(2024, 3, 1, 10, 15, 30, 0, time.UTC)
	wantClose := time.Date(2024, 3, 1, 11, 45, 0, 0, time.UTC)
	if !w.OpenAt.Equal(wantOpen) || !w.CloseAt.Equal(wantClose) {
		t.Fatalf("window = %+v", w)
	}
}

func TestResolveWindowExplicitZoneIsConverted(t *testing.T) {
	tr := &models.TradeRecord{
		Type:     "sell",
		OpenRaw:  "2024-03-01T10:00:00+02:00",
		CloseRaw: "2024-03-01T12:00:00+02:00",
	}
	w, side, quote := ResolveWindow(tr)
	if side != models.SideShort || quote != models.QuoteAsk {
		t.Fatalf("side=%v quote=%v", side, quote)
	}
	if !w.OpenAt.Equal(time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)) {
		t.Fatalf("open = %v", w.OpenAt)
	}
}

func TestResolveWindowMessyFormats(t *testing.T) {
	cases := map[string]time.Time{
		"2024-03-01 10:15":        time.Date(2024, 3, 1, 10, 15, 0, 0, time.UTC),
		"2024-03-01T10:15":        time.Date(2024, 3, 1, 10, 15, 0, 0, time.UTC),
		"2024-03-01 10:15:30.123": time.Date(2024, 3, 1, 10, 15, 30, 0, time.UTC),
		"[2024-03-01 10:15:30]":   time.Date(2024, 3, 1, 10, 15, 30, 0, time.UTC),
	}
	for raw, want := range cases {
		tr := &models.TradeRecord{Type: "buy", OpenRaw: raw, CloseRaw: "2024-03-01 22:00:00"}
		w, _, _ := ResolveWindow(tr)
		if !w.OpenAt.Equal(want) {
			t.Fatalf("ResolveWindow(%q) open = %v, want %v", raw, w.OpenAt, want)
		}
	}
}

func TestResolveWindowDurationIsAuthoritative(t *testing.T) {
	dur := int64(300)
	tr := &models.TradeRecord{
		Type:            "buy",
		OpenRaw:         "2024-03-01 10:00:00",
		CloseRaw:        "2024-03-01 18:00:00", // contradicted by duration
		DurationSeconds: &dur,
	}
	w, _, _ := ResolveWindow(tr)
	if !w.CloseAt.Equal(w.OpenAt.Add(5 * time.Minute)) {
		t.Fatalf("close = %v, want open+5m", w.CloseAt)
	}
}

func TestResolveWindowEnforcesMinimumSpan(t *testing.T) {
	tr := &models.TradeRecord{
		Type:     "buy",
		OpenRaw:  "2024-03-01 10:00:00",
		CloseRaw: "2024-03-01 09:00:00", // close before open
	}
	w, _, _ := ResolveWindow(tr)
	if !w.CloseAt.Equal(w.OpenAt.Add(time.Minute)) {
		t.Fatalf("close = %v, want open+60s", w.CloseAt)
	}
}

func TestResolveWindowFallsBackToCreatedAt(t *testing.T) {
	created := time.Date(2024, 5, 5, 12, 0, 0, 0, time.UTC)
	tr := &models.TradeRecord{Type: "buy", OpenRaw: "garbage", CloseRaw: "", CreatedAt: created}
	w, _, _ := ResolveWindow(tr)
	if !w.OpenAt.Equal(created) {
		t.Fatalf("open = %v, want createdAt", w.OpenAt)
	}
	if !w.CloseAt.Equal(created.Add(time.Minute)) {
		t.Fatalf("close = %v, want createdAt+60s", w.CloseAt)
	}
}

func TestAlignedToMinute(t *testing.T) {
	w := models.TimeWindow{
		OpenAt:  time.Date(2024, 3, 1, 10, 0, 30, 0, time.UTC),
		CloseAt: time.Date(2024, 3, 1, 10, 5, 1, 0, time.UTC),
	}
	a := w.AlignedToMinute()
	if !a.OpenAt.Equal(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("aligned open = %v", a.OpenAt)
	}
	if !a.CloseAt.Equal(time.Date(2024, 3, 1, 10, 6, 0, 0, time.UTC)) {
		t.Fatalf("aligned close = %v", a.CloseAt)
	}
}
