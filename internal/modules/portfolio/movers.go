package portfolio

import (
	"sort"
)

// RankMovers orders positions by all-time yield percentage and splits them
// into gainers and losers. Membership is decided by the yield amount sign
// (not the percentage): positions with exactly zero yield appear in neither
// list. Losers are reversed so the worst performer comes first. The full
// ranked set is returned; truncation is a presentation concern.
func RankMovers(positions []NormalizedPosition) Movers {
	ranked := make([]NormalizedPosition, len(positions))
	copy(ranked, positions)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].YieldPercent > ranked[j].YieldPercent
	})

	var gainers, losers []NormalizedPosition
	for _, pos := range ranked {
		switch {
		case pos.Yield > 0:
			gainers = append(gainers, pos)
		case pos.Yield < 0:
			losers = append(losers, pos)
		}
	}

	// Worst percentage loss first.
	for i, j := 0, len(losers)-1; i < j; i, j = i+1, j-1 {
		losers[i], losers[j] = losers[j], losers[i]
	}

	return Movers{Gainers: gainers, Losers: losers}
}
