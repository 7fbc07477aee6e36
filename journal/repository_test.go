package journal

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/compound/store"
)

func TestRepositoryDefaults(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewRepository(store.NewMemory())

	p, err := repo.LoadProgress(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultProgress(), p)

	st, err := repo.LoadJournal(ctx)
	require.NoError(t, err)
	assert.Equal(t, TrackerState{}, st)
}

func TestRepositoryRoundTripSQLite(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "compound.db")
	s, err := store.NewSQLite(path)
	require.NoError(t, err)

	repo := NewRepository(s)
	p := PlanProgress{
		CurrentStep: 3,
		History: map[int]StepResult{
			1:  {Status: Win, Date: "2024-01-15", Amount: 4},
			2:  {Status: Loss, Date: "2024-01-16", Amount: -4.8},
			12: {Status: Win, Date: "2024-02-01", Amount: 0.125},
		},
	}
	st := TrackerState{
		"2024-01-15": {Date: "2024-01-15", Profit: 4, Trades: 1, Wins: 1},
		"2024-01-16": {Date: "2024-01-16", Profit: -4.8, Trades: 1},
	}
	require.NoError(t, repo.SaveProgress(ctx, p))
	require.NoError(t, repo.SaveJournal(ctx, st))
	require.NoError(t, s.Close())

	// Reopen: the records survive without any in-memory state.
	s2, err := store.NewSQLite(path)
	require.NoError(t, err)
	defer s2.Close()
	repo2 := NewRepository(s2)

	gotP, err := repo2.LoadProgress(ctx)
	require.NoError(t, err)
	assert.Equal(t, p, gotP)

	gotJ, err := repo2.LoadJournal(ctx)
	require.NoError(t, err)
	assert.Equal(t, st, gotJ)
}

func TestRepositoryReadFailureIsObservable(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := store.NewMemory()
	boom := errors.New("io error")
	m.FailGet[ProgressKey] = boom
	m.FailGet[TrackerKey] = boom
	repo := NewRepository(m)

	p, err := repo.LoadProgress(ctx)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, DefaultProgress(), p)

	st, err := repo.LoadJournal(ctx)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, st)
}

func TestRepositoryCorrupt(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := store.NewMemory()
	require.NoError(t, m.Set(ctx, ProgressKey, []byte("{not json")))
	repo := NewRepository(m)

	_, err := repo.LoadProgress(ctx)
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestRepositoryClearAndSaveBoth(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := store.NewMemory()
	repo := NewRepository(m)
	require.True(t, repo.Atomic())

	p := PlanProgress{CurrentStep: 2, History: map[int]StepResult{1: {Status: Win, Date: "2024-01-15", Amount: 4}}}
	st := TrackerState{"2024-01-15": {Date: "2024-01-15", Profit: 4, Trades: 1, Wins: 1}}
	require.NoError(t, repo.SaveBoth(ctx, p, st))

	gotP, err := repo.LoadProgress(ctx)
	require.NoError(t, err)
	assert.Equal(t, p, gotP)

	require.NoError(t, repo.ClearProgress(ctx))
	require.NoError(t, repo.ClearJournal(ctx))
	_, err = m.Get(ctx, ProgressKey)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = m.Get(ctx, TrackerKey)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestParseOutcome(t *testing.T) {
	t.Parallel()

	o, err := ParseOutcome("win")
	require.NoError(t, err)
	assert.Equal(t, Win, o)
	o, err = ParseOutcome("LOSS")
	require.NoError(t, err)
	assert.Equal(t, Loss, o)
	_, err = ParseOutcome("draw")
	assert.Error(t, err)
}

func TestDailyTradeDataAdd(t *testing.T) {
	t.Parallel()

	d := DailyTradeData{Date: "2024-01-15"}
	d = d.Add(Win, 4).Add(Loss, -4.8)
	assert.Equal(t, 2, d.Trades)
	assert.Equal(t, 1, d.Wins)
	assert.Equal(t, 1, d.Losses())
	assert.InDelta(t, -0.8, d.Profit, 1e-9)
}
