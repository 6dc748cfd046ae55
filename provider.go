package cashflow

import (
	"context"
	"fmt"
)

// Provider gives read-only access to the records of one user.
//
// Implementations do all the I/O, the engine only works on the Snapshot they return.
type Provider interface {
	Entries(ctx context.Context) ([]Entry, error)
	Holdings(ctx context.Context) ([]Holding, error)
	Goals(ctx context.Context) ([]Goal, error)
	Budgets(ctx context.Context) ([]Budget, error)
}

// Snapshot is an in-memory copy of a user's records at one point in time.
type Snapshot struct {
	Entries  []Entry
	Holdings []Holding
	Goals    []Goal // in the order the user recorded them.
	Budgets  []Budget
}

// Load reads a complete Snapshot from p.
func Load(ctx context.Context, p Provider) (Snapshot, error) {
	var s Snapshot
	var err error
	if s.Entries, err = p.Entries(ctx); err != nil {
		return Snapshot{}, fmt.Errorf("could not load ledger entries: %w", err)
	}
	if s.Holdings, err = p.Holdings(ctx); err != nil {
		return Snapshot{}, fmt.Errorf("could not load holdings: %w", err)
	}
	if s.Goals, err = p.Goals(ctx); err != nil {
		return Snapshot{}, fmt.Errorf("could not load goals: %w", err)
	}
	if s.Budgets, err = p.Budgets(ctx); err != nil {
		return Snapshot{}, fmt.Errorf("could not load budgets: %w", err)
	}
	return s, nil
}
