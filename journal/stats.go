package journal

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

// EquityPoint is one point on the equity curve. The first point is labelled
// "Start" and carries the starting balance.
type EquityPoint struct {
	Date    string  `json:"date"`
	Balance float64 `json:"balance"`
}

// Stats aggregates the whole journal. Day-level figures (AvgWinDay, BestDay,
// ...) are computed over days, not individual results.
type Stats struct {
	TotalTrades  int     `json:"totalTrades"`
	TotalWins    int     `json:"totalWins"`
	TotalLosses  int     `json:"totalLosses"`
	NetPL        float64 `json:"netPL"`
	GrossProfit  float64 `json:"grossProfit"`
	GrossLoss    float64 `json:"grossLoss"`
	ProfitFactor float64 `json:"profitFactor"`
	WinRate      float64 `json:"winRate"` // percent
	AvgWinDay    float64 `json:"avgWinDay"`
	AvgLossDay   float64 `json:"avgLossDay"` // negative
	BestDay      float64 `json:"bestDay"`
	WorstDay     float64 `json:"worstDay"`

	EquityCurve []EquityPoint `json:"equityCurve"`
}

// SortedDates returns the journal dates in chronological order.
func (s TrackerState) SortedDates() []string {
	dates := make([]string, 0, len(s))
	for d := range s {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

func ComputeStats(st TrackerState, startBalance float64) Stats {
	var out Stats
	var winDays, lossDays int
	var winSum, lossSum float64

	dates := st.SortedDates()
	if len(dates) > 0 {
		out.BestDay = math.Inf(-1)
		out.WorstDay = math.Inf(1)
	}

	for _, d := range dates {
		e := st[d]
		out.TotalTrades += e.Trades
		out.TotalWins += e.Wins
		out.NetPL += e.Profit

		switch {
		case e.Profit > 0:
			out.GrossProfit += e.Profit
			winSum += e.Profit
			winDays++
		case e.Profit < 0:
			out.GrossLoss += -e.Profit
			lossSum += e.Profit
			lossDays++
		}

		out.BestDay = math.Max(out.BestDay, e.Profit)
		out.WorstDay = math.Min(out.WorstDay, e.Profit)
	}
	out.TotalLosses = out.TotalTrades - out.TotalWins

	if out.GrossLoss == 0 {
		out.ProfitFactor = out.GrossProfit
	} else {
		out.ProfitFactor = out.GrossProfit / out.GrossLoss
	}
	if out.TotalTrades > 0 {
		out.WinRate = float64(out.TotalWins) / float64(out.TotalTrades) * 100
	}
	if winDays > 0 {
		out.AvgWinDay = winSum / float64(winDays)
	}
	if lossDays > 0 {
		out.AvgLossDay = lossSum / float64(lossDays)
	}

	out.EquityCurve = EquityCurve(st, startBalance)
	return out
}

// EquityCurve accumulates daily profit onto startBalance in date order.
func EquityCurve(st TrackerState, startBalance float64) []EquityPoint {
	dates := st.SortedDates()
	curve := make([]EquityPoint, 0, len(dates)+1)
	curve = append(curve, EquityPoint{Date: "Start", Balance: startBalance})

	bal := startBalance
	for _, d := range dates {
		bal += st[d].Profit
		curve = append(curve, EquityPoint{Date: d, Balance: bal})
	}
	return curve
}

func monthPrefix(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d-", year, int(month))
}

// Month returns the entries in the given calendar month.
func (s TrackerState) Month(year int, month time.Month) TrackerState {
	p := monthPrefix(year, month)
	out := TrackerState{}
	for d, e := range s {
		if strings.HasPrefix(d, p) {
			out[d] = e
		}
	}
	return out
}

func MonthlyProfit(st TrackerState, year int, month time.Month) float64 {
	var sum float64
	for _, e := range st.Month(year, month) {
		sum += e.Profit
	}
	return sum
}

// WeekTotal sums one row of a Sunday-first month calendar.
type WeekTotal struct {
	Week   int     `json:"week"` // 1-based row of the month grid
	Start  string  `json:"start"`
	End    string  `json:"end"`
	Profit float64 `json:"profit"`
	Days   int     `json:"days"` // days with an entry
}

// WeeklyTotals splits the month into Sunday-started rows, matching a calendar
// grid. Days outside the month never contribute.
func WeeklyTotals(st TrackerState, year int, month time.Month) []WeekTotal {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysIn := first.AddDate(0, 1, -1).Day()
	offset := int(first.Weekday())
	rows := (daysIn + offset + 6) / 7

	out := make([]WeekTotal, rows)
	for i := range out {
		out[i].Week = i + 1
	}
	for day := 1; day <= daysIn; day++ {
		w := &out[(day+offset-1)/7]
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Format(DateLayout)
		if w.Start == "" {
			w.Start = date
		}
		w.End = date
		if e, ok := st[date]; ok {
			w.Profit += e.Profit
			w.Days++
		}
	}
	return out
}
