package cashflow

import (
	"cmp"
	"slices"

	"github.com/etnz/cashflow/date"
)

// MonthlyFlow aggregates the entries of one calendar month.
type MonthlyFlow struct {
	Month   date.Month
	Income  Money
	Expense Money
}

// Net returns income minus expense.
func (f MonthlyFlow) Net() Money { return f.Income.Sub(f.Expense) }

// span returns the earliest and latest entry dates.
func span(entries []Entry) (first, last date.Date) {
	for i, e := range entries {
		if i == 0 || e.Date.Before(first) {
			first = e.Date
		}
		if i == 0 || e.Date.After(last) {
			last = e.Date
		}
	}
	return first, last
}

// totals returns the total income and the total expense of entries.
func totals(entries []Entry) (income, expense Money) {
	for _, e := range entries {
		switch e.Kind {
		case Income:
			income = income.Add(e.Amount)
		case Expense:
			expense = expense.Add(e.Amount)
		}
	}
	return income, expense
}

// NetProfit returns total income minus total expense.
func NetProfit(entries []Entry) Money {
	income, expense := totals(entries)
	return income.Sub(expense)
}

// MonthlyNetRate returns the average monthly net profit of the ledger.
//
// The net profit of all entries is divided by the number of whole calendar
// months between the earliest and the latest entry (see [date.MonthsBetween]),
// that span being at least 1. It is a plain linear average: no weighting, no
// seasonal adjustment. An empty ledger has a zero rate.
func MonthlyNetRate(entries []Entry) Money {
	if len(entries) == 0 {
		return Money{}
	}
	first, last := span(entries)
	months := max(date.MonthsBetween(first, last), 1)
	return NetProfit(entries).Div(Q(months))
}

// MonthlyFlows buckets entries by calendar month, from the earliest to the latest entry month.
//
// Months without entries are present with zero flows.
func MonthlyFlows(entries []Entry) []MonthlyFlow {
	if len(entries) == 0 {
		return nil
	}
	first, last := span(entries)
	return flowsBetween(entries, date.MonthOf(first), date.MonthOf(last))
}

// MaxMonths is the longest month series LastMonths returns: a century.
const MaxMonths = 1200

// LastMonths returns the flows of the n calendar months ending with today's month.
//
// n is capped to MaxMonths.
func LastMonths(entries []Entry, today date.Date, n int) []MonthlyFlow {
	if n <= 0 {
		return nil
	}
	n = min(n, MaxMonths)
	last := date.MonthOf(today)
	return flowsBetween(entries, last.Add(1-n), last)
}

// flowsBetween returns one flow per month from 'from' to 'to' included.
func flowsBetween(entries []Entry, from, to date.Month) []MonthlyFlow {
	flows := make([]MonthlyFlow, to.Sub(from)+1)
	for i := range flows {
		flows[i].Month = from.Add(i)
	}
	for _, e := range entries {
		i := date.MonthOf(e.Date).Sub(from)
		if i < 0 || i >= len(flows) {
			continue
		}
		switch e.Kind {
		case Income:
			flows[i].Income = flows[i].Income.Add(e.Amount)
		case Expense:
			flows[i].Expense = flows[i].Expense.Add(e.Amount)
		}
	}
	return flows
}

// Uncategorized is the category of entries recorded without one.
const Uncategorized = "uncategorized"

// CategoryTotal is the total amount of one category.
type CategoryTotal struct {
	Category string
	Amount   Money
}

// CategoryTotals sums the amounts of entries of kind 'kind' within 'r', per category.
//
// Totals are sorted by decreasing amount, then by category name.
func CategoryTotals(entries []Entry, kind Kind, r date.Range) []CategoryTotal {
	index := make(map[string]int)
	var result []CategoryTotal
	for _, e := range entries {
		if e.Kind != kind || !r.Contains(e.Date) {
			continue
		}
		category := e.Category
		if category == "" {
			category = Uncategorized
		}
		i, ok := index[category]
		if !ok {
			i = len(result)
			index[category] = i
			result = append(result, CategoryTotal{Category: category})
		}
		result[i].Amount = result[i].Amount.Add(e.Amount)
	}
	slices.SortFunc(result, func(a, b CategoryTotal) int {
		if c := b.Amount.Decimal().Cmp(a.Amount.Decimal()); c != 0 {
			return c
		}
		return cmp.Compare(a.Category, b.Category)
	})
	return result
}
