package journal

import (
	"fmt"
	"sort"
	"strings"
)

// FormatDayOrg renders a journal day as an Org-mode block suitable for pasting
// into a trading diary. Structured facts go in the PROPERTIES drawer; the
// plan steps resolved that day are listed below it.
func FormatDayOrg(d DailyTradeData, p PlanProgress) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("** Day: %s (%s)\n", d.Date, signed(d.Profit)))
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":DATE: %s\n", d.Date))
	b.WriteString(fmt.Sprintf(":PROFIT: %.2f\n", d.Profit))
	b.WriteString(fmt.Sprintf(":TRADES: %d\n", d.Trades))
	b.WriteString(fmt.Sprintf(":WINS: %d\n", d.Wins))
	b.WriteString(fmt.Sprintf(":LOSSES: %d\n", d.Losses()))
	b.WriteString(":END:\n")

	steps := stepsOn(p, d.Date)
	if len(steps) > 0 {
		b.WriteString("\n*** Plan steps\n")
		for _, id := range steps {
			r := p.History[id]
			b.WriteString(fmt.Sprintf("- S%d %s %s\n", id, r.Status, signed(r.Amount)))
		}
	}

	b.WriteString("\n*** Review\n- \n")
	return b.String()
}

// FormatDaysOrg renders every day of st in date order, separated by blank lines.
func FormatDaysOrg(st TrackerState, p PlanProgress) string {
	var b strings.Builder
	for i, date := range st.SortedDates() {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatDayOrg(st[date], p))
	}
	return b.String()
}

func stepsOn(p PlanProgress, date string) []int {
	var ids []int
	for id, r := range p.History {
		if r.Date == date {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

func signed(x float64) string {
	if x > 0 {
		return fmt.Sprintf("+%.2f", x)
	}
	return fmt.Sprintf("%.2f", x)
}
