package journal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rustyeddy/compound/store"
)

const (
	TrackerKey  = "compound_calculator_tracker_data"
	ProgressKey = "compound_calculator_plan_progress"
)

// ErrCorrupt is returned when a stored record cannot be decoded.
var ErrCorrupt = errors.New("journal: corrupt record")

// Repository gives typed access to the two records in a Store. An absent
// record loads as its default; every other failure is returned.
type Repository struct {
	s store.Store
}

func NewRepository(s store.Store) *Repository {
	return &Repository{s: s}
}

func (r *Repository) Store() store.Store { return r.s }

func (r *Repository) LoadProgress(ctx context.Context) (PlanProgress, error) {
	p := DefaultProgress()
	found, err := r.load(ctx, ProgressKey, &p)
	if err != nil {
		return DefaultProgress(), fmt.Errorf("load plan progress: %w", err)
	}
	if !found {
		return DefaultProgress(), nil
	}
	if p.History == nil {
		p.History = map[int]StepResult{}
	}
	if p.CurrentStep < 1 {
		p.CurrentStep = 1
	}
	return p, nil
}

func (r *Repository) SaveProgress(ctx context.Context, p PlanProgress) error {
	b, err := encodeProgress(p)
	if err != nil {
		return err
	}
	if err := r.s.Set(ctx, ProgressKey, b); err != nil {
		return fmt.Errorf("save plan progress: %w", err)
	}
	return nil
}

func (r *Repository) ClearProgress(ctx context.Context) error {
	if err := r.s.Clear(ctx, ProgressKey); err != nil {
		return fmt.Errorf("clear plan progress: %w", err)
	}
	return nil
}

func (r *Repository) LoadJournal(ctx context.Context) (TrackerState, error) {
	st := TrackerState{}
	found, err := r.load(ctx, TrackerKey, &st)
	if err != nil {
		return TrackerState{}, fmt.Errorf("load tracker data: %w", err)
	}
	if !found || st == nil {
		return TrackerState{}, nil
	}
	return st, nil
}

func (r *Repository) SaveJournal(ctx context.Context, st TrackerState) error {
	b, err := encodeJournal(st)
	if err != nil {
		return err
	}
	if err := r.s.Set(ctx, TrackerKey, b); err != nil {
		return fmt.Errorf("save tracker data: %w", err)
	}
	return nil
}

func (r *Repository) ClearJournal(ctx context.Context) error {
	if err := r.s.Clear(ctx, TrackerKey); err != nil {
		return fmt.Errorf("clear tracker data: %w", err)
	}
	return nil
}

// Atomic reports whether SaveBoth writes both records in one batch.
func (r *Repository) Atomic() bool {
	_, ok := r.s.(store.Batcher)
	return ok
}

// SaveBoth writes progress and journal in one batch. It fails without
// writing anything when the store cannot batch; callers check Atomic first.
func (r *Repository) SaveBoth(ctx context.Context, p PlanProgress, st TrackerState) error {
	b, ok := r.s.(store.Batcher)
	if !ok {
		return fmt.Errorf("save both: store %T does not support batches", r.s)
	}

	pb, err := encodeProgress(p)
	if err != nil {
		return err
	}
	jb, err := encodeJournal(st)
	if err != nil {
		return err
	}

	err = b.SetBatch(ctx, []store.Entry{
		{Key: ProgressKey, Value: pb},
		{Key: TrackerKey, Value: jb},
	})
	if err != nil {
		return fmt.Errorf("save progress and tracker data: %w", err)
	}
	return nil
}

func (r *Repository) load(ctx context.Context, key string, v any) (bool, error) {
	b, err := r.s.Get(ctx, key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
	}
	return true, nil
}

func encodeProgress(p PlanProgress) ([]byte, error) {
	if p.History == nil {
		p.History = map[int]StepResult{}
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode plan progress: %w", err)
	}
	return b, nil
}

func encodeJournal(st TrackerState) ([]byte, error) {
	if st == nil {
		st = TrackerState{}
	}
	b, err := json.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("encode tracker data: %w", err)
	}
	return b, nil
}
