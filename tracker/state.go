package tracker

import "github.com/rustyeddy/compound/journal"

// State of a plan step relative to the progress cursor.
type State int

const (
	Locked State = iota
	Current
	Resolved
)

func (s State) String() string {
	switch s {
	case Current:
		return "CURRENT"
	case Resolved:
		return "RESOLVED"
	default:
		return "LOCKED"
	}
}

func StepState(p journal.PlanProgress, stepID int) State {
	switch {
	case stepID == p.CurrentStep:
		return Current
	case stepID < p.CurrentStep:
		return Resolved
	default:
		return Locked
	}
}
