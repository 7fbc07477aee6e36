package plan

// Summary is the headline outcome of a plan if every step is won.
type Summary struct {
	Steps        int     `json:"steps"`
	StartBalance float64 `json:"startBalance"`
	FinalBalance float64 `json:"finalBalance"`
	TotalProfit  float64 `json:"totalProfit"`
	GrowthPct    float64 `json:"growthPct"` // final / start * 100
	FinalLotSize float64 `json:"finalLotSize"`
}

func Summarize(s Settings, rows []Checkpoint) Summary {
	sum := Summary{StartBalance: s.StartAmount}
	if len(rows) == 0 {
		return sum
	}

	last := rows[len(rows)-1]
	sum.Steps = len(rows)
	sum.FinalBalance = last.Total
	sum.TotalProfit = Round2(last.Total - s.StartAmount)
	sum.FinalLotSize = last.LotSize
	if s.StartAmount != 0 {
		sum.GrowthPct = Round2(last.Total / s.StartAmount * 100)
	}
	return sum
}
