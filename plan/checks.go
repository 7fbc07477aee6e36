package plan

import (
	"fmt"
	"math"
	"strings"
)

type Violation struct {
	Code string
	Msg  string
}

// Decision is the result of checking settings before a projection.
// Generate does not validate; callers run Check first.
type Decision struct {
	Allowed    bool
	Violations []Violation
}

func (d *Decision) add(code, msg string) {
	d.Violations = append(d.Violations, Violation{Code: code, Msg: msg})
	d.Allowed = false
}

// Err folds the violations into a single error, or nil when allowed.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	msgs := make([]string, 0, len(d.Violations))
	for _, v := range d.Violations {
		msgs = append(msgs, v.Msg)
	}
	return fmt.Errorf("invalid plan settings: %s", strings.Join(msgs, "; "))
}

// MaxSteps bounds the size of a projection.
const MaxSteps = 10000

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// Finite reports whether every emitted value of rows is a real number. Large
// risk and reward ratios can overflow float64 well inside MaxSteps.
func Finite(rows []Checkpoint) bool {
	for _, r := range rows {
		if !finite(r.Amount) || !finite(r.RiskAmount) || !finite(r.Profit) || !finite(r.Total) {
			return false
		}
	}
	return true
}

func Check(s Settings) Decision {
	d := Decision{Allowed: true}

	if !finite(s.StartAmount) || s.StartAmount <= 0 {
		d.add("START_NOT_POSITIVE",
			fmt.Sprintf("start amount %.2f must be positive", s.StartAmount))
	}
	// Risk above 100% is allowed by the engine but never makes sense as input.
	if !finite(s.RiskPercentage) || s.RiskPercentage < 0 || s.RiskPercentage > 100 {
		d.add("RISK_OUT_OF_RANGE",
			fmt.Sprintf("risk %.2f%% must be between 0 and 100", s.RiskPercentage))
	}
	if !finite(s.RewardRatio) || s.RewardRatio < 0 {
		d.add("REWARD_NEGATIVE",
			fmt.Sprintf("reward ratio %.2f must not be negative", s.RewardRatio))
	}
	if !finite(s.LotDivisor) || s.LotDivisor <= 0 {
		d.add("LOT_DIVISOR_NOT_POSITIVE",
			fmt.Sprintf("lot divisor %.2f must be positive", s.LotDivisor))
	}
	if s.Steps <= 0 {
		d.add("STEPS_NOT_POSITIVE",
			fmt.Sprintf("steps %d must be positive", s.Steps))
	}
	if s.Steps > MaxSteps {
		d.add("STEPS_TOO_MANY",
			fmt.Sprintf("steps %d must be at most %d", s.Steps, MaxSteps))
	}

	return d
}
