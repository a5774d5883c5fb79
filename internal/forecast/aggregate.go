package forecast

// Summarize computes the dashboard stats over the full display sequence.
// An empty sequence yields a zero average and the LatestMoonRise sentinel.
func Summarize(records []DisplayRecord) SummaryStats {
	var sumTemp float64
	earliest := LatestMoonRise
	if len(records) > 0 {
		earliest = records[0].MoonRise
	}

	for _, r := range records {
		sumTemp += r.Temp.Float()
		if r.MoonRise < earliest {
			earliest = r.MoonRise
		}
	}

	n := len(records)
	if n == 0 {
		n = 1
	}

	return SummaryStats{
		Count:            len(records),
		AvgTemp:          sumTemp / float64(n),
		EarliestMoonRise: earliest,
	}
}
