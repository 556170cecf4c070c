package repository

// Timeframe represents candle resolution buckets supported by the provider.
type Timeframe string

const (
	TF1m Timeframe = "1m"
	TF5m Timeframe = "5m"
)

// DefaultTimeframe returns the timeframe bar walks run on.
func DefaultTimeframe() Timeframe { return TF1m }

// NormalizeTimeframe converts a raw request string to a supported
// timeframe, falling back to the default.
func NormalizeTimeframe(s string) Timeframe {
	switch Timeframe(s) {
	case TF1m, TF5m:
		return Timeframe(s)
	default:
		return DefaultTimeframe()
	}
}
