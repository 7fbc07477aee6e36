// Package tracker applies WIN/LOSS registrations to the plan progress and the
// calendar journal and keeps the two records consistent.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rustyeddy/compound/internal/logger"
	"github.com/rustyeddy/compound/journal"
	"github.com/rustyeddy/compound/pkg/id"
	"github.com/rustyeddy/compound/plan"
	"github.com/rustyeddy/compound/store"
)

var (
	ErrStepMismatch   = errors.New("tracker: step is not the current step")
	ErrInvalidOutcome = errors.New("tracker: outcome must be WIN or LOSS")
	ErrInvalidDate    = errors.New("tracker: date must be YYYY-MM-DD")
	ErrInvalidEntry   = errors.New("tracker: invalid journal entry")
	ErrPlanComplete   = errors.New("tracker: every plan step is resolved")
)

// Notifier is told about every registered result. Failures are logged and
// never undo the registration.
type Notifier interface {
	NotifyResult(ctx context.Context, step int, outcome journal.Outcome, amount float64) error
}

type Option func(*Coordinator)

func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) { c.now = now }
}

func WithLogger(l *logger.Logger) Option {
	return func(c *Coordinator) { c.log = l }
}

func WithNotifier(n Notifier) Option {
	return func(c *Coordinator) { c.notifier = n }
}

// WithIDs replaces the ULID source for registration audit rows.
func WithIDs(next func(time.Time) string) Option {
	return func(c *Coordinator) { c.newID = next }
}

// Coordinator is the only writer of plan progress. Every mutating call is a
// single read-modify-write under mu.
type Coordinator struct {
	mu   sync.Mutex
	repo *journal.Repository

	now      func() time.Time
	log      *logger.Logger
	notifier Notifier
	newID    func(time.Time) string
}

func New(repo *journal.Repository, opts ...Option) *Coordinator {
	c := &Coordinator{
		repo:  repo,
		now:   time.Now,
		log:   logger.Discard(),
		newID: id.NewAt,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Result is the state after a registration.
type Result struct {
	Progress journal.PlanProgress  `json:"progress"`
	Entry    journal.DailyTradeData `json:"entry"`
}

func (c *Coordinator) Progress(ctx context.Context) (journal.PlanProgress, error) {
	return c.repo.LoadProgress(ctx)
}

func (c *Coordinator) Journal(ctx context.Context) (journal.TrackerState, error) {
	return c.repo.LoadJournal(ctx)
}

func (c *Coordinator) resolveDate(date string) (string, error) {
	if date == "" {
		return journal.Today(c.now()), nil
	}
	if !journal.ValidDate(date) {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return date, nil
}

// RegisterResult resolves stepID with outcome on date (today when empty),
// advancing the cursor by one and accumulating amount into the date's journal
// entry. stepID must be the current step; otherwise nothing is written.
func (c *Coordinator) RegisterResult(ctx context.Context, stepID int, outcome journal.Outcome, amount float64, date string) (Result, error) {
	if !outcome.Valid() {
		return Result{}, fmt.Errorf("%w: %q", ErrInvalidOutcome, outcome)
	}
	date, err := c.resolveDate(date)
	if err != nil {
		return Result{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	old, err := c.repo.LoadProgress(ctx)
	if err != nil {
		return Result{}, err
	}
	if stepID != old.CurrentStep {
		return Result{}, fmt.Errorf("%w: got %d, current is %d", ErrStepMismatch, stepID, old.CurrentStep)
	}

	st, err := c.repo.LoadJournal(ctx)
	if err != nil {
		return Result{}, err
	}

	next := old.Clone()
	next.History[stepID] = journal.StepResult{Status: outcome, Date: date, Amount: amount}
	next.CurrentStep = stepID + 1

	existing, ok := st[date]
	if !ok {
		existing = journal.DailyTradeData{Date: date}
	}
	entry := existing.Add(outcome, amount)
	entry.Date = date

	updated := st.Clone()
	updated[date] = entry

	if err := c.persist(ctx, old, next, updated); err != nil {
		return Result{}, err
	}

	c.log.Info("registered result",
		"step", stepID, "outcome", outcome, "amount", amount, "date", date)
	c.audit(ctx, stepID, outcome, amount, date)
	if c.notifier != nil {
		if err := c.notifier.NotifyResult(ctx, stepID, outcome, amount); err != nil {
			c.log.Warn("notify result failed", "step", stepID, "error", err)
		}
	}

	return Result{Progress: next, Entry: entry}, nil
}

// persist writes both records. Atomic stores get one batch. Otherwise
// progress goes first and is restored if the journal write fails.
func (c *Coordinator) persist(ctx context.Context, old, next journal.PlanProgress, st journal.TrackerState) error {
	if c.repo.Atomic() {
		return c.repo.SaveBoth(ctx, next, st)
	}

	if err := c.repo.SaveProgress(ctx, next); err != nil {
		return err
	}
	if err := c.repo.SaveJournal(ctx, st); err != nil {
		if rerr := c.repo.SaveProgress(ctx, old); rerr != nil {
			c.log.Error("progress rollback failed; progress and journal disagree",
				"step", old.CurrentStep, "error", rerr)
			return errors.Join(err, fmt.Errorf("rollback: %w", rerr))
		}
		return err
	}
	return nil
}

func (c *Coordinator) audit(ctx context.Context, step int, outcome journal.Outcome, amount float64, date string) {
	a, ok := c.repo.Store().(store.Auditor)
	if !ok {
		return
	}
	now := c.now()
	err := a.RecordRegistration(ctx, store.Registration{
		ID:        c.newID(now),
		Step:      step,
		Status:    string(outcome),
		Date:      date,
		Amount:    amount,
		CreatedAt: now.UTC(),
	})
	if err != nil {
		c.log.Warn("record registration failed", "step", step, "error", err)
	}
}

// RegisterOutcome resolves the current step of rows with its planned payoff:
// +profit for a win, -risk for a loss.
func (c *Coordinator) RegisterOutcome(ctx context.Context, rows []plan.Checkpoint, outcome journal.Outcome, date string) (Result, error) {
	p, err := c.repo.LoadProgress(ctx)
	if err != nil {
		return Result{}, err
	}
	row, ok := plan.Find(rows, p.CurrentStep)
	if !ok {
		return Result{}, fmt.Errorf("%w: current step %d, plan has %d", ErrPlanComplete, p.CurrentStep, len(rows))
	}
	return c.RegisterResult(ctx, row.ID, outcome, row.Payoff(outcome == journal.Win), date)
}

// FullReset clears both records and then writes explicit defaults, so a
// later read never sees a lingering value.
func (c *Coordinator) FullReset(ctx context.Context) (journal.PlanProgress, journal.TrackerState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	def, empty := journal.DefaultProgress(), journal.TrackerState{}

	if err := c.repo.ClearProgress(ctx); err != nil {
		return def, empty, err
	}
	if err := c.repo.ClearJournal(ctx); err != nil {
		return def, empty, err
	}
	if err := c.repo.SaveProgress(ctx, def); err != nil {
		return def, empty, err
	}
	if err := c.repo.SaveJournal(ctx, empty); err != nil {
		return def, empty, err
	}
	if a, ok := c.repo.Store().(store.Auditor); ok {
		if err := a.ClearRegistrations(ctx); err != nil {
			c.log.Warn("clear registrations failed", "error", err)
		}
	}

	c.log.Info("progress and journal reset")
	return def, empty, nil
}
