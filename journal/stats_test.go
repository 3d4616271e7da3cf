package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statsTrade(day int, setup string, returns float64) *Trade {
	return NewTrade("", time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC),
		"", "EURUSD", 100, 110, 1, Long, setup, "entry1", returns, 0)
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	trades := []*Trade{
		statsTrade(1, "a", 100),
		statsTrade(2, "b", -50),
		statsTrade(3, "a", 25),
	}

	s := Summarize(trades)
	assert.Equal(t, 3, s.TotalTrades)
	assert.Equal(t, 2, s.WinningTrades)
	assert.Equal(t, 1, s.LosingTrades)
	assert.InDelta(t, 66.67, s.WinRate, 0.01)
	assert.InDelta(t, 75.0, s.TotalReturns, 1e-9)
	assert.InDelta(t, 62.5, s.AvgWin, 1e-9)
	assert.InDelta(t, -50.0, s.AvgLoss, 1e-9)
	require.True(t, s.RiskRewardOK)
	assert.InDelta(t, 1.25, s.RiskReward, 1e-9)
}

func TestSummarizeEmpty(t *testing.T) {
	t.Parallel()

	s := Summarize(nil)
	assert.Zero(t, s.TotalTrades)
	assert.Zero(t, s.WinRate)
	assert.Zero(t, s.AvgWin)
	assert.Zero(t, s.AvgLoss)
	assert.False(t, s.RiskRewardOK, "risk-reward is N/A without both averages")
}

func TestSummarizeRiskRewardUndefinedWithoutLosses(t *testing.T) {
	t.Parallel()

	s := Summarize([]*Trade{statsTrade(1, "a", 10), statsTrade(2, "a", 20)})
	assert.Equal(t, 2, s.WinningTrades)
	assert.False(t, s.RiskRewardOK)
}

func TestCountBySetup(t *testing.T) {
	t.Parallel()

	counts := CountBySetup([]*Trade{
		statsTrade(1, "breakout", 10),
		statsTrade(2, "breakout", -5),
		statsTrade(3, "reversal", 7),
	})
	assert.Equal(t, map[string]int{"breakout": 2, "reversal": 1}, counts)
}

func TestGroupByDay(t *testing.T) {
	t.Parallel()

	days := GroupByDay([]*Trade{
		statsTrade(5, "a", 100),
		statsTrade(5, "a", -30),
		statsTrade(6, "a", -10),
	})

	require.Len(t, days, 2)
	assert.Equal(t, DayStats{Returns: 70, Trades: 2, Wins: 1}, days["2024-01-05"])
	assert.Equal(t, DayStats{Returns: -10, Trades: 1, Wins: 0}, days["2024-01-06"])
}

func TestEquityCurveSortsByDate(t *testing.T) {
	t.Parallel()

	// Inserted out of date order on purpose.
	points := EquityCurve([]*Trade{
		statsTrade(10, "a", -20),
		statsTrade(2, "a", 50),
		statsTrade(5, "a", 30),
	})

	require.Len(t, points, 3)
	assert.Equal(t, EquityPoint{Date: "2024-01-02", Cumulative: 50}, points[0])
	assert.Equal(t, EquityPoint{Date: "2024-01-05", Cumulative: 80}, points[1])
	assert.Equal(t, EquityPoint{Date: "2024-01-10", Cumulative: 60}, points[2])
}

func TestBestAndWorstTrades(t *testing.T) {
	t.Parallel()

	trades := []*Trade{
		statsTrade(1, "a", 100),
		statsTrade(2, "a", -50),
		statsTrade(3, "a", 25),
	}

	best := BestTrades(trades)
	require.NotEmpty(t, best)
	assert.Equal(t, 100.0, best[0].Returns)

	worst := WorstTrades(trades)
	require.NotEmpty(t, worst)
	assert.Equal(t, -50.0, worst[0].Returns)
}

func TestTopTradesTruncatesToFive(t *testing.T) {
	t.Parallel()

	var trades []*Trade
	for i := 1; i <= 8; i++ {
		trades = append(trades, statsTrade(i, "a", float64(i)))
	}

	best := BestTrades(trades)
	require.Len(t, best, 5)
	assert.Equal(t, 8.0, best[0].Returns)
	assert.Equal(t, 4.0, best[4].Returns)

	// The input order is untouched.
	assert.Equal(t, 1.0, trades[0].Returns)
}

func TestTopTradesStableTieBreak(t *testing.T) {
	t.Parallel()

	first := statsTrade(1, "early", 10)
	second := statsTrade(2, "late", 10)

	best := BestTrades([]*Trade{first, second})
	require.Len(t, best, 2)
	assert.Same(t, first, best[0], "ties keep insertion order")
	assert.Same(t, second, best[1])
}
