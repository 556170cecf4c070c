package usecase

import (
	"regexp"
	"strings"
	"time"

	"github.com/akal0/profitabledge-sub000/internal/domain/models"
)

// Timestamp policy: broker exports rarely carry an offset, and the formats
// drift between platforms. Strings with an explicit zone are parsed as-is;
// naive strings are read as UTC wall-clock verbatim, uniformly at every
// call site. No broker-server offset is assumed.

// minWindow is the floor applied when close does not land after open.
const minWindow = 60 * time.Second

var (
	// characters allowed to survive timestamp normalization
	tsJunk = regexp.MustCompile(`[^0-9T:\- ]`)
	// YYYY-MM-DD[ T]HH:MM[:SS]
	tsNaive = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})[ T](\d{2}):(\d{2})(?::(\d{2}))?`)
)

// explicit-zone layouts tried before naive normalization kicks in.
var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05 -07:00",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02T15:04:05.000Z",
}

// ResolveWindow reconstructs a clean UTC open/close pair from the trade's
// raw timestamp strings, plus the side and quote side to query. When
// DurationSeconds is present it is authoritative and overrides any parsed
// close value.
func ResolveWindow(t *models.TradeRecord) (models.TimeWindow, models.Side, models.QuoteSide) {
	side := t.Side()
	quote := models.QuoteSideFor(side)

	openAt := parseRawTimestamp(t.OpenRaw, t.CreatedAt)
	closeAt := parseRawTimestamp(t.CloseRaw, t.CreatedAt)

	if t.DurationSeconds != nil && *t.DurationSeconds > 0 {
		closeAt = openAt.Add(time.Duration(*t.DurationSeconds) * time.Second)
	}
	if !closeAt.After(openAt) {
		closeAt = openAt.Add(minWindow)
	}

	return models.TimeWindow{OpenAt: openAt, CloseAt: closeAt}, side, quote
}

// parseRawTimestamp parses a broker timestamp of unknown format. Explicit
// zones win; otherwise the string is stripped to its digits and separators
// and read as naive UTC. Unparsable input falls back to the record's own
// creation instant so the analysis still has a window to work with.
func parseRawTimestamp(raw string, fallback time.Time) time.Time {
	s := strings.TrimSpace(raw)
	if s == "" {
		return fallback.UTC()
	}

	for _, layout := range zonedLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC()
		}
	}

	cleaned := tsJunk.ReplaceAllString(s, "")
	m := tsNaive.FindStringSubmatch(cleaned)
	if m == nil {
		return fallback.UTC()
	}

	layout := "2006-01-02 15:04:05"
	normalized := m[1] + "-" + m[2] + "-" + m[3] + " " + m[4] + ":" + m[5] + ":"
	if m[6] != "" {
		normalized += m[6]
	} else {
		normalized += "00"
	}

	ts, err := time.Parse(layout, normalized)
	if err != nil {
		return fallback.UTC()
	}
	return ts
}
