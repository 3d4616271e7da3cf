package journal

import "sort"

// Read-side aggregation over a snapshot of the trade collection. All
// functions are pure; a trade is counted as winning when its returns are
// non-negative, the same sign rule the status derivation uses.

const topTradeCount = 5

// Summary holds the headline account statistics.
type Summary struct {
	TotalTrades   int
	WinningTrades int
	LosingTrades  int
	WinRate       float64 // percent, 0 when there are no trades
	TotalReturns  float64
	AvgWin        float64 // 0 when there are no winners
	AvgLoss       float64 // 0 when there are no losers
	RiskReward    float64 // |AvgWin / AvgLoss|
	RiskRewardOK  bool    // false when either average is exactly 0
}

// Summarize computes the Summary for a collection.
func Summarize(trades []*Trade) Summary {
	var s Summary
	var winSum, lossSum float64

	s.TotalTrades = len(trades)
	for _, t := range trades {
		s.TotalReturns += t.Returns
		if t.Returns >= 0 {
			s.WinningTrades++
			winSum += t.Returns
		} else {
			s.LosingTrades++
			lossSum += t.Returns
		}
	}
	if s.TotalTrades > 0 {
		s.WinRate = float64(s.WinningTrades) / float64(s.TotalTrades) * 100
	}
	if s.WinningTrades > 0 {
		s.AvgWin = winSum / float64(s.WinningTrades)
	}
	if s.LosingTrades > 0 {
		s.AvgLoss = lossSum / float64(s.LosingTrades)
	}
	if s.AvgWin != 0 && s.AvgLoss != 0 {
		s.RiskReward = abs(s.AvgWin / s.AvgLoss)
		s.RiskRewardOK = true
	}
	return s
}

// CountBySetup groups trade counts by setup tag, for distribution charts.
func CountBySetup(trades []*Trade) map[string]int {
	counts := make(map[string]int)
	for _, t := range trades {
		counts[t.Setup]++
	}
	return counts
}

// DayStats is the per-day aggregate used by the calendar view.
type DayStats struct {
	Returns float64
	Trades  int
	Wins    int
}

// GroupByDay aggregates returns and counts per calendar day, keyed by the
// date in 2006-01-02 form.
func GroupByDay(trades []*Trade) map[string]DayStats {
	days := make(map[string]DayStats)
	for _, t := range trades {
		key := t.Date.Format(csvDateLayout)
		d := days[key]
		d.Returns += t.Returns
		d.Trades++
		if t.Returns >= 0 {
			d.Wins++
		}
		days[key] = d
	}
	return days
}

// EquityPoint is one step of the cumulative P&L series.
type EquityPoint struct {
	Date       string
	Cumulative float64
}

// EquityCurve returns the cumulative-returns series in date-ascending
// order, one point per trade. Trades on the same day keep their insertion
// order.
func EquityCurve(trades []*Trade) []EquityPoint {
	sorted := make([]*Trade, len(trades))
	copy(sorted, trades)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	points := make([]EquityPoint, 0, len(sorted))
	var cum float64
	for _, t := range sorted {
		cum += t.Returns
		points = append(points, EquityPoint{
			Date:       t.Date.Format(csvDateLayout),
			Cumulative: cum,
		})
	}
	return points
}

// BestTrades returns up to five trades with the highest returns. Ties keep
// insertion order.
func BestTrades(trades []*Trade) []*Trade {
	return topTrades(trades, func(a, b *Trade) bool { return a.Returns > b.Returns })
}

// WorstTrades returns up to five trades with the lowest returns.
func WorstTrades(trades []*Trade) []*Trade {
	return topTrades(trades, func(a, b *Trade) bool { return a.Returns < b.Returns })
}

func topTrades(trades []*Trade, less func(a, b *Trade) bool) []*Trade {
	sorted := make([]*Trade, len(trades))
	copy(sorted, trades)
	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
	if len(sorted) > topTradeCount {
		sorted = sorted[:topTradeCount]
	}
	return sorted
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
