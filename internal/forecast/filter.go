package forecast

import "strings"

// Filter is the table's filter state. The zero value matches everything.
type Filter struct {
	Query    string `json:"q"`
	MinPhase int    `json:"phase"`
}

// Matches reports whether a single record passes the filter.
func (f Filter) Matches(r DisplayRecord) bool {
	return strings.Contains(r.Date, f.Query) && r.MoonPhaseIndex >= f.MinPhase
}

// Apply returns the records that pass the filter, in input order.
func (f Filter) Apply(records []DisplayRecord) []DisplayRecord {
	out := make([]DisplayRecord, 0, len(records))
	for _, r := range records {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}
