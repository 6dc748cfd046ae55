package cashflow

import (
	"testing"

	"github.com/etnz/cashflow/date"
	"github.com/google/go-cmp/cmp"
)

func TestBudgetStatus(t *testing.T) {
	march := date.NewMonth(2024, 3)
	entries := []Entry{
		NewExpense(day("2024-03-03"), JPY(30_000), "food", ""),
		NewExpense(day("2024-03-20"), JPY(15_000), "food", ""),
		NewExpense(day("2024-03-21"), JPY(9_000), "travel", ""),
		NewExpense(day("2024-02-21"), JPY(99_000), "leisure", ""),
	}
	budgets := []Budget{
		{Month: march, Category: "food", Amount: JPY(40_000)},
		{Month: march, Category: "leisure", Amount: JPY(10_000)},
		{Month: date.NewMonth(2024, 2), Category: "food", Amount: JPY(1)},
	}

	got := BudgetStatus(entries, budgets, march)
	want := []BudgetLine{
		{Category: "food", Budget: JPY(40_000), Actual: JPY(45_000)},
		{Category: "leisure", Budget: JPY(10_000)},
		{Category: "travel", Actual: JPY(9_000)},
	}
	if diff := cmp.Diff(want, got, equateMoney); diff != "" {
		t.Fatalf("BudgetStatus() mismatch (-want +got):\n%s", diff)
	}

	if !got[0].Exceeded() {
		t.Errorf("food budget should be exceeded")
	}
	if r := got[0].Remaining(); !r.Equal(JPY(-5_000)) {
		t.Errorf("food Remaining() = %v, want -5000", r)
	}
	if got[1].Exceeded() {
		t.Errorf("leisure budget should not be exceeded")
	}
}
