package forecast

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

const (
	// DefaultMoonRise is used when the provider omits sunrise.
	DefaultMoonRise = "06:00"
	// DefaultMoonSet is used when the provider omits sunset.
	DefaultMoonSet = "18:00"
	// LatestMoonRise seeds the earliest-rise fold for an empty sequence.
	LatestMoonRise = "23:59:59"

	// PhaseCount is the number of positional moon phases.
	PhaseCount = 8
	MaxPhase   = PhaseCount - 1
)

// PhaseIcons maps a moon phase index to its glyph.
var PhaseIcons = [PhaseCount]string{"🌑", "🌒", "🌓", "🌔", "🌕", "🌖", "🌗", "🌘"}

// Temperature is a number-like value kept exactly as the provider returned
// it: a JSON number or a JSON string. It re-encodes the same way it arrived.
type Temperature struct {
	raw    string
	quoted bool
}

// TempNumber is a temperature that arrived as a JSON number.
func TempNumber(raw string) Temperature { return Temperature{raw: raw} }

// TempString is a temperature that arrived as a JSON string.
func TempString(raw string) Temperature { return Temperature{raw: raw, quoted: true} }

// String returns the value as received, without quotes.
func (t Temperature) String() string { return t.raw }

// IsZero reports whether no value was received.
func (t Temperature) IsZero() bool { return t.raw == "" }

// UnmarshalJSON keeps the raw text of a number or the contents of a string.
func (t *Temperature) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*t = Temperature{}
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = TempString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("temperature must be a number or string: %w", err)
	}
	*t = TempNumber(n.String())
	return nil
}

// MarshalJSON writes the temperature in the form it was received. A number
// that is not a valid JSON number literal falls back to a string.
func (t Temperature) MarshalJSON() ([]byte, error) {
	if t.raw == "" && !t.quoted {
		return []byte("null"), nil
	}
	b := []byte(t.raw)
	if !t.quoted && (b[0] == '-' || (b[0] >= '0' && b[0] <= '9')) && json.Valid(b) {
		return b, nil
	}
	return json.Marshal(t.raw)
}

var decimalPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// Float coerces the temperature like a lenient decimal parser: leading
// whitespace is skipped and the longest decimal prefix is parsed. No prefix,
// or a value outside the float64 range, yields 0.
func (t Temperature) Float() float64 {
	m := decimalPrefix.FindString(strings.TrimLeftFunc(t.raw, unicode.IsSpace))
	if m == "" {
		return 0
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// RawRecord is one day of the provider's daily forecast.
type RawRecord struct {
	ValidDate string      `json:"valid_date" validate:"required"`
	Temp      Temperature `json:"temp" validate:"required"`
	Sunrise   string      `json:"sunrise,omitempty"`
	Sunset    string      `json:"sunset,omitempty"`
}

// DisplayRecord is the per-day row shown on the dashboard.
type DisplayRecord struct {
	Date           string      `json:"date"`
	Temp           Temperature `json:"temp"`
	MoonRise       string      `json:"moonRise"`
	MoonSet        string      `json:"moonSet"`
	MoonPhaseIndex int         `json:"moonPhaseIndex"`
	MoonPhaseIcon  string      `json:"moonPhaseIcon"`
}

// SummaryStats are derived from the full display sequence, never the filtered view.
type SummaryStats struct {
	Count            int     `json:"count"`
	AvgTemp          float64 `json:"avgTemp"`
	EarliestMoonRise string  `json:"earliestMoonRise"`
}

// State is the dashboard lifecycle state.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateLoading       State = "loading"
	StatePopulated     State = "populated"
)
