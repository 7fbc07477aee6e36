// Package journal holds the two persisted records of the planner: the plan
// progress cursor and the per-day calendar journal.
package journal

import (
	"fmt"
	"time"
)

// DateLayout is the canonical calendar-day key.
const DateLayout = "2006-01-02"

type Outcome string

const (
	Win  Outcome = "WIN"
	Loss Outcome = "LOSS"
)

func ParseOutcome(s string) (Outcome, error) {
	switch Outcome(s) {
	case Win, "win":
		return Win, nil
	case Loss, "loss":
		return Loss, nil
	default:
		return "", fmt.Errorf("unknown outcome %q (want WIN or LOSS)", s)
	}
}

func (o Outcome) Valid() bool { return o == Win || o == Loss }

// StepResult is the outcome of one resolved plan step.
type StepResult struct {
	Status Outcome `json:"status"`
	Date   string  `json:"date"`
	Amount float64 `json:"amount"` // signed realized P/L, canonical currency
}

// PlanProgress is the cursor through the plan. CurrentStep is the lowest
// unresolved step and History holds every step below it.
type PlanProgress struct {
	CurrentStep int                `json:"currentStep"`
	History     map[int]StepResult `json:"history"`
}

func DefaultProgress() PlanProgress {
	return PlanProgress{CurrentStep: 1, History: map[int]StepResult{}}
}

// Clone returns a copy whose History can be mutated independently.
func (p PlanProgress) Clone() PlanProgress {
	h := make(map[int]StepResult, len(p.History))
	for k, v := range p.History {
		h[k] = v
	}
	return PlanProgress{CurrentStep: p.CurrentStep, History: h}
}

// DailyTradeData aggregates one calendar day.
type DailyTradeData struct {
	Date   string  `json:"date"`
	Profit float64 `json:"profit"`
	Trades int     `json:"trades"`
	Wins   int     `json:"wins"`
}

func (d DailyTradeData) Losses() int { return d.Trades - d.Wins }

// Add returns d with one more result accumulated into it.
func (d DailyTradeData) Add(outcome Outcome, amount float64) DailyTradeData {
	d.Profit += amount
	d.Trades++
	if outcome == Win {
		d.Wins++
	}
	return d
}

// TrackerState is the full calendar journal keyed by date.
type TrackerState map[string]DailyTradeData

func (s TrackerState) Clone() TrackerState {
	out := make(TrackerState, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Today formats t's local calendar day.
func Today(t time.Time) string {
	return t.Format(DateLayout)
}

// ValidDate reports whether s is a real YYYY-MM-DD day.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}
