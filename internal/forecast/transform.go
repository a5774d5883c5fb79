package forecast

import "github.com/i474232898/astrodash/internal/common"

// Transform maps raw provider records to display records one to one.
// The moon phase is positional: index i gets phase i mod 8.
func Transform(raw []RawRecord) []DisplayRecord {
	out := make([]DisplayRecord, 0, len(raw))
	for i, r := range raw {
		phase := i % PhaseCount
		out = append(out, DisplayRecord{
			Date:           r.ValidDate,
			Temp:           r.Temp,
			MoonRise:       common.FirstNonEmpty(r.Sunrise, DefaultMoonRise),
			MoonSet:        common.FirstNonEmpty(r.Sunset, DefaultMoonSet),
			MoonPhaseIndex: phase,
			MoonPhaseIcon:  PhaseIcons[phase],
		})
	}
	return out
}
