package models

// Hit classifies how the trade's risk played out.
type Hit string

const (
	// HitNone: no stop set, or no price data to judge against.
	HitNone Hit = "NONE"
	// HitClose: the trade closed in drawdown without touching the stop.
	HitClose Hit = "CLOSE"
	// HitSL: the stop level was crossed.
	HitSL Hit = "SL"
	// HitBE: the stop had been moved to breakeven and was hit there.
	HitBE Hit = "BE"
)

// NoteNoStop marks results for trades without a usable stop-loss. The
// dashboard renders it as its own state, not as a failure.
const NoteNoStop = "NO_SL"

// DrawdownResult is the output of one adverse-excursion analysis. Computed
// fresh per request, never persisted. Nullable numerics are pointers so the
// dashboard can distinguish "zero" from "not applicable".
type DrawdownResult struct {
	ID          string   `json:"id"`
	AdversePips *float64 `json:"adversePips"`
	AdverseUsd  *float64 `json:"adverseUsd,omitempty"`
	PctToSL     *float64 `json:"pctToSL"`
	Hit         Hit      `json:"hit"`
	Note        string   `json:"note,omitempty"`
	Error       string   `json:"error,omitempty"`

	// Fetch provenance: exact unix-ms windows queried, for reproducibility.
	CandleRange *[2]int64 `json:"candleRange,omitempty"`
	TickRange   *[2]int64 `json:"tickRange,omitempty"`
}

// Float64Ptr returns a pointer to v. Result fields are pointer-valued.
func Float64Ptr(v float64) *float64 { return &v }
