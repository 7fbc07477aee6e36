package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleState() TrackerState {
	return TrackerState{
		"2024-01-15": {Date: "2024-01-15", Profit: 8, Trades: 2, Wins: 2},
		"2024-01-16": {Date: "2024-01-16", Profit: -4.8, Trades: 1, Wins: 0},
		"2024-01-17": {Date: "2024-01-17", Profit: 2, Trades: 3, Wins: 2},
		"2024-01-18": {Date: "2024-01-18", Profit: 0, Trades: 0, Wins: 0},
		"2024-02-01": {Date: "2024-02-01", Profit: -1.2, Trades: 1, Wins: 0},
	}
}

func TestComputeStats(t *testing.T) {
	t.Parallel()

	s := ComputeStats(sampleState(), 20)

	assert.Equal(t, 7, s.TotalTrades)
	assert.Equal(t, 4, s.TotalWins)
	assert.Equal(t, 3, s.TotalLosses)
	assert.InDelta(t, 4.0, s.NetPL, 1e-9)
	assert.InDelta(t, 10.0, s.GrossProfit, 1e-9)
	assert.InDelta(t, 6.0, s.GrossLoss, 1e-9)
	assert.InDelta(t, 10.0/6.0, s.ProfitFactor, 1e-9)
	assert.InDelta(t, 4.0/7.0*100, s.WinRate, 1e-9)
	assert.InDelta(t, 5.0, s.AvgWinDay, 1e-9)
	assert.InDelta(t, -3.0, s.AvgLossDay, 1e-9)
	assert.InDelta(t, 8.0, s.BestDay, 1e-9)
	assert.InDelta(t, -4.8, s.WorstDay, 1e-9)

	require.Len(t, s.EquityCurve, 6)
	assert.Equal(t, EquityPoint{Date: "Start", Balance: 20}, s.EquityCurve[0])
	assert.Equal(t, "2024-01-15", s.EquityCurve[1].Date)
	assert.InDelta(t, 28.0, s.EquityCurve[1].Balance, 1e-9)
	assert.Equal(t, "2024-02-01", s.EquityCurve[5].Date)
	assert.InDelta(t, 24.0, s.EquityCurve[5].Balance, 1e-9)
}

func TestComputeStatsEmpty(t *testing.T) {
	t.Parallel()

	s := ComputeStats(TrackerState{}, 100)
	assert.Zero(t, s.TotalTrades)
	assert.Zero(t, s.WinRate)
	assert.Zero(t, s.ProfitFactor)
	assert.Zero(t, s.BestDay)
	assert.Zero(t, s.WorstDay)
	assert.Equal(t, []EquityPoint{{Date: "Start", Balance: 100}}, s.EquityCurve)
}

func TestComputeStatsNoLosses(t *testing.T) {
	t.Parallel()

	st := TrackerState{"2024-03-01": {Date: "2024-03-01", Profit: 7.5, Trades: 1, Wins: 1}}
	s := ComputeStats(st, 0)
	assert.InDelta(t, 7.5, s.ProfitFactor, 1e-9)
	assert.InDelta(t, 100.0, s.WinRate, 1e-9)
}

func TestMonthlyProfit(t *testing.T) {
	t.Parallel()

	st := sampleState()
	assert.InDelta(t, 5.2, MonthlyProfit(st, 2024, time.January), 1e-9)
	assert.InDelta(t, -1.2, MonthlyProfit(st, 2024, time.February), 1e-9)
	assert.Zero(t, MonthlyProfit(st, 2023, time.January))
	assert.Len(t, st.Month(2024, time.January), 4)
}

func TestWeeklyTotals(t *testing.T) {
	t.Parallel()

	// January 2024 starts on a Monday: rows are
	// [1-6] [7-13] [14-20] [21-27] [28-31].
	weeks := WeeklyTotals(sampleState(), 2024, time.January)
	require.Len(t, weeks, 5)

	assert.Equal(t, "2024-01-01", weeks[0].Start)
	assert.Equal(t, "2024-01-06", weeks[0].End)
	assert.Zero(t, weeks[0].Days)

	assert.Equal(t, 3, weeks[2].Week)
	assert.Equal(t, "2024-01-14", weeks[2].Start)
	assert.Equal(t, 4, weeks[2].Days)
	assert.InDelta(t, 5.2, weeks[2].Profit, 1e-9)

	assert.Equal(t, "2024-01-31", weeks[4].End)
}

func TestWeeklyTotalsSixRows(t *testing.T) {
	t.Parallel()

	// March 2024 starts on a Friday and has 31 days.
	weeks := WeeklyTotals(TrackerState{}, 2024, time.March)
	assert.Len(t, weeks, 6)
	assert.Equal(t, "2024-03-01", weeks[0].Start)
	assert.Equal(t, "2024-03-02", weeks[0].End)
	assert.Equal(t, "2024-03-31", weeks[5].Start)
}
