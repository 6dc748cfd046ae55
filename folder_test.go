package cashflow

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/etnz/cashflow/date"
)

func TestFolder_Empty(t *testing.T) {
	f := NewFolder(filepath.Join(t.TempDir(), "missing"), nil)
	s, err := Load(context.Background(), f)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(s.Entries)+len(s.Holdings)+len(s.Goals)+len(s.Budgets) != 0 {
		t.Errorf("Load() = %+v, want an empty snapshot", s)
	}
}

func TestFolder_AppendAndLoad(t *testing.T) {
	f := NewFolder(t.TempDir(), nil)

	entries := []Entry{
		NewIncome(day("2024-01-25"), JPY(300_000), "salary", ""),
		NewExpense(day("2024-01-27"), JPY(80_000), "rent", ""),
	}
	for _, e := range entries {
		if err := f.AppendEntry(e); err != nil {
			t.Fatalf("AppendEntry() error = %v", err)
		}
	}
	for _, g := range []Goal{
		{Name: "car", Target: JPY(2_000_000), TargetDate: day("2025-01-01")},
		{Name: "house", Target: JPY(9_000_000)},
	} {
		if err := f.AppendGoal(g); err != nil {
			t.Fatalf("AppendGoal() error = %v", err)
		}
	}
	if err := f.AppendBudget(Budget{Month: date.NewMonth(2024, 1), Category: "rent", Amount: JPY(90_000)}); err != nil {
		t.Fatalf("AppendBudget() error = %v", err)
	}
	if err := f.WriteHoldings([]Holding{NewHoldingValue("old", JPY(1))}); err != nil {
		t.Fatalf("WriteHoldings() error = %v", err)
	}
	if err := f.WriteHoldings([]Holding{NewHoldingValue("savings", JPY(500_000))}); err != nil {
		t.Fatalf("WriteHoldings() error = %v", err)
	}

	s, err := Load(context.Background(), f)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(s.Entries) != 2 || !s.Entries[1].Amount.Equal(JPY(80_000)) {
		t.Errorf("Load().Entries = %v, want the 2 appended entries", s.Entries)
	}
	if len(s.Goals) != 2 || s.Goals[0].Name != "car" || s.Goals[1].Name != "house" {
		t.Errorf("Load().Goals = %v, want car then house", s.Goals)
	}
	if len(s.Holdings) != 1 || s.Holdings[0].Name != "savings" {
		t.Errorf("Load().Holdings = %v, want savings only", s.Holdings)
	}
	if len(s.Budgets) != 1 {
		t.Errorf("Load().Budgets = %v, want 1 budget", s.Budgets)
	}
}

func TestFolder_Rejects(t *testing.T) {
	dir := t.TempDir()
	f := NewFolder(dir, nil)
	if err := f.AppendEntry(NewIncome(date.Date{}, JPY(1), "", "")); !errors.Is(err, ErrInvalidEntry) {
		t.Errorf("AppendEntry() error = %v, want ErrInvalidEntry", err)
	}
	if err := f.AppendGoal(Goal{Name: "nothing"}); !errors.Is(err, ErrInvalidGoal) {
		t.Errorf("AppendGoal() error = %v, want ErrInvalidGoal", err)
	}

	bad := `{"name":"car","target":100,"target_date":"2025-02-30x"}`
	if err := os.WriteFile(filepath.Join(dir, GoalsFile), []byte(bad), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := f.Goals(context.Background()); !errors.Is(err, ErrInvalidGoal) {
		t.Errorf("Goals() error = %v, want ErrInvalidGoal", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := f.Entries(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Entries() on a cancelled context error = %v, want context.Canceled", err)
	}
}
