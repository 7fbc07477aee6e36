package tracker

import (
	"context"
	"fmt"

	"github.com/rustyeddy/compound/journal"
)

// SetDay overwrites one journal day, as a manual calendar edit does. Unlike
// RegisterResult it does not accumulate and does not touch plan progress.
func (c *Coordinator) SetDay(ctx context.Context, d journal.DailyTradeData) (journal.TrackerState, error) {
	if !journal.ValidDate(d.Date) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, d.Date)
	}
	if d.Trades < 0 || d.Wins < 0 || d.Wins > d.Trades {
		return nil, fmt.Errorf("%w: wins %d, trades %d", ErrInvalidEntry, d.Wins, d.Trades)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	st, err := c.repo.LoadJournal(ctx)
	if err != nil {
		return nil, err
	}
	st[d.Date] = d
	if err := c.repo.SaveJournal(ctx, st); err != nil {
		return nil, err
	}
	c.log.Info("journal day set", "date", d.Date, "profit", d.Profit, "trades", d.Trades)
	return st, nil
}

// DeleteDay removes one day from the journal. Deleting an absent day is a no-op.
func (c *Coordinator) DeleteDay(ctx context.Context, date string) (journal.TrackerState, error) {
	if !journal.ValidDate(date) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	st, err := c.repo.LoadJournal(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := st[date]; !ok {
		return st, nil
	}
	delete(st, date)
	if err := c.repo.SaveJournal(ctx, st); err != nil {
		return nil, err
	}
	c.log.Info("journal day deleted", "date", date)
	return st, nil
}

// ClearJournal empties the calendar journal and leaves plan progress alone.
func (c *Coordinator) ClearJournal(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.repo.ClearJournal(ctx); err != nil {
		return err
	}
	if err := c.repo.SaveJournal(ctx, journal.TrackerState{}); err != nil {
		return err
	}
	c.log.Info("journal cleared")
	return nil
}
