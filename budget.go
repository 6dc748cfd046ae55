package cashflow

import (
	"cmp"
	"slices"

	"github.com/etnz/cashflow/date"
)

// Budget caps the expense of a category for one month.
type Budget struct {
	Month    date.Month
	Category string
	Amount   Money
}

// BudgetLine compares the budget of a category with its actual expense.
type BudgetLine struct {
	Category string
	Budget   Money // zero when the category has no budget.
	Actual   Money
}

// Remaining returns what is left to spend; negative when the budget is exceeded.
func (l BudgetLine) Remaining() Money { return l.Budget.Sub(l.Actual) }

// Exceeded reports whether the actual expense is above the budget.
func (l BudgetLine) Exceeded() bool { return l.Actual.GreaterThan(l.Budget) }

// BudgetStatus reports budgets against actual expenses for 'month'.
//
// Every category with a budget or an expense that month gets a line, sorted by category.
func BudgetStatus(entries []Entry, budgets []Budget, month date.Month) []BudgetLine {
	lines := make(map[string]*BudgetLine)
	line := func(category string) *BudgetLine {
		if category == "" {
			category = Uncategorized
		}
		l, ok := lines[category]
		if !ok {
			l = &BudgetLine{Category: category}
			lines[category] = l
		}
		return l
	}

	for _, b := range budgets {
		if b.Month != month {
			continue
		}
		l := line(b.Category)
		l.Budget = l.Budget.Add(b.Amount)
	}
	for _, t := range CategoryTotals(entries, Expense, month.Range()) {
		l := line(t.Category)
		l.Actual = l.Actual.Add(t.Amount)
	}

	result := make([]BudgetLine, 0, len(lines))
	for _, l := range lines {
		result = append(result, *l)
	}
	slices.SortFunc(result, func(a, b BudgetLine) int { return cmp.Compare(a.Category, b.Category) })
	return result
}
