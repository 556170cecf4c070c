package instrument

import (
	"strings"

	"github.com/akal0/profitabledge-sub000/internal/domain/models"
)

// Resolution is total: every symbol maps to some profile. Unknown tokens
// pass through unchanged with FX defaults, so an unrecognized broker symbol
// still produces a usable (if approximate) analysis.

const (
	pipFX     = 0.0001
	pipJPY    = 0.01
	pipMetals = 0.01
	pipIndex  = 1.0

	contractFX     = 100000
	contractMetals = 100
	contractIndex  = 1
)

// suffixes brokers append to CFD variants of the same instrument.
var strippedSuffixes = []string{".cash", ".pro", ".mini", ".micro"}

// prefixes some charting exports carry.
var strippedPrefixes = []string{"fx:", "cfd:", "cfds:"}

// aliases maps cleaned broker shorthands to provider instrument ids.
// Forex majors pass through unchanged and are not listed.
var aliases = map[string]string{
	"gold":    "xauusd",
	"silver":  "xagusd",
	"nas100":  "usatechidxusd",
	"ustec":   "usatechidxusd",
	"us100":   "usatechidxusd",
	"ndx100":  "usatechidxusd",
	"nsdq100": "usatechidxusd",
	"spx500":  "usa500idxusd",
	"us500":   "usa500idxusd",
	"sp500":   "usa500idxusd",
	"us30":    "usa30idxusd",
	"dow30":   "usa30idxusd",
	"dj30":    "usa30idxusd",
	"ger30":   "deuidxeur",
	"ger40":   "deuidxeur",
	"de30":    "deuidxeur",
	"de40":    "deuidxeur",
	"dax40":   "deuidxeur",
	"uk100":   "gbridxgbp",
	"jpn225":  "jpnidxjpy",
	"jp225":   "jpnidxjpy",
}

// markers identifying index instruments after canonicalization.
var indexMarkers = []string{"idx", "us100", "us500", "us30", "ger30", "ger40"}

// Resolve maps a raw broker symbol to the provider instrument id plus the
// pip size and contract size used to normalize excursion distances.
// It never fails; see package note on totality.
func Resolve(rawSymbol string) models.InstrumentProfile {
	token := clean(rawSymbol)
	if mapped, ok := aliases[token]; ok {
		token = mapped
	}

	return models.InstrumentProfile{
		CanonicalID:  token,
		PipSize:      pipSizeFor(token),
		ContractSize: contractSizeFor(token),
	}
}

func clean(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	for _, p := range strippedPrefixes {
		s = strings.TrimPrefix(s, p)
	}
	for _, suf := range strippedSuffixes {
		s = strings.TrimSuffix(s, suf)
	}
	for _, sep := range []string{"-", "_", " "} {
		s = strings.ReplaceAll(s, sep, "")
	}
	return s
}

func pipSizeFor(id string) float64 {
	switch {
	case strings.Contains(id, "jpy"):
		return pipJPY
	case strings.Contains(id, "xau"), strings.Contains(id, "xag"):
		return pipMetals
	case isIndex(id):
		return pipIndex
	default:
		return pipFX
	}
}

func contractSizeFor(id string) float64 {
	switch {
	case strings.Contains(id, "xau"), strings.Contains(id, "xag"):
		return contractMetals
	case isIndex(id):
		return contractIndex
	default:
		return contractFX
	}
}

func isIndex(id string) bool {
	for _, m := range indexMarkers {
		if strings.Contains(id, m) {
			return true
		}
	}
	return false
}
