// Package plan projects a compounding trade plan: a fixed risk percentage of
// the running balance is risked at every checkpoint and a win pays
// risk × reward ratio, which is carried into the next checkpoint.
package plan

import (
	"math"

	"github.com/shopspring/decimal"
)

// MinLotSize is the smallest tradable lot.
const MinLotSize = 0.01

// Settings are the inputs of a projection run.
type Settings struct {
	StartAmount    float64 `json:"startAmount" yaml:"start_amount"`
	RiskPercentage float64 `json:"riskPercentage" yaml:"risk_percentage"` // 20 = 20%
	RewardRatio    float64 `json:"rewardRatio" yaml:"reward_ratio"`       // 1 = 1:1
	LotDivisor     float64 `json:"lotDivisor" yaml:"lot_divisor"`         // balance / divisor = lots
	Steps          int     `json:"steps" yaml:"steps"`
}

// DefaultSettings returns a 20% risk, 1:1 plan over 34 steps starting at $20.
func DefaultSettings() Settings {
	return Settings{
		StartAmount:    20,
		RiskPercentage: 20,
		RewardRatio:    1,
		LotDivisor:     1000,
		Steps:          34,
	}
}

// Checkpoint is one projected step of the plan. All values are rounded
// snapshots in the canonical currency.
type Checkpoint struct {
	ID         int     `json:"id"`
	Amount     float64 `json:"amount"`     // balance entering the step
	LotSize    float64 `json:"lotSize"`    // never below MinLotSize
	RiskAmount float64 `json:"riskAmount"` // lost on a LOSS
	Profit     float64 `json:"profit"`     // won on a WIN
	Total      float64 `json:"total"`      // balance entering the next step
}

// Generate projects settings.Steps checkpoints. The running balance keeps
// full precision; only emitted values are rounded, so rounding does not
// compound across steps. Steps <= 0 yields an empty plan.
func Generate(s Settings) []Checkpoint {
	if s.Steps <= 0 {
		return []Checkpoint{}
	}

	rows := make([]Checkpoint, 0, s.Steps)
	current := s.StartAmount

	for i := 1; i <= s.Steps; i++ {
		lot := Round2(current / s.LotDivisor)
		if lot < MinLotSize {
			lot = MinLotSize
		}

		risk := current * (s.RiskPercentage / 100)
		profit := risk * s.RewardRatio

		rows = append(rows, Checkpoint{
			ID:         i,
			Amount:     Round2(current),
			LotSize:    lot,
			RiskAmount: Round2(risk),
			Profit:     Round2(profit),
			Total:      Round2(current + profit),
		})

		current += profit
	}

	return rows
}

// Round2 rounds half away from zero to two decimal places.
func Round2(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	return decimal.NewFromFloat(x).Round(2).InexactFloat64()
}

// Find returns the checkpoint with the given id.
func Find(rows []Checkpoint, id int) (Checkpoint, bool) {
	if id >= 1 && id <= len(rows) && rows[id-1].ID == id {
		return rows[id-1], true
	}
	for _, r := range rows {
		if r.ID == id {
			return r, true
		}
	}
	return Checkpoint{}, false
}

// Payoff returns the signed realized amount for the step: +Profit for a win,
// -RiskAmount for a loss.
func (c Checkpoint) Payoff(win bool) float64 {
	if win {
		return c.Profit
	}
	return -c.RiskAmount
}
