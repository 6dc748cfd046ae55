package renderer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/etnz/cashflow"
	"github.com/etnz/cashflow/date"
	"github.com/google/go-cmp/cmp"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// outline parses markdown and returns its headings and its number of tables.
func outline(t *testing.T, src string) (headings []string, tables int) {
	t.Helper()
	source := []byte(src)
	doc := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser().Parse(text.NewReader(source))
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindHeading:
			var b bytes.Buffer
			for c := n.FirstChild(); c != nil; c = c.NextSibling() {
				if txt, ok := c.(*ast.Text); ok {
					b.Write(txt.Segment.Value(source))
				}
			}
			headings = append(headings, b.String())
			return ast.WalkSkipChildren, nil
		case east.KindTable:
			tables++
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		t.Fatalf("walking markdown: %v", err)
	}
	return headings, tables
}

func jpy(v float64) cashflow.Money { return cashflow.M(v, "JPY") }

func TestForecastMarkdown(t *testing.T) {
	today := date.New(2024, 1, 15)
	goal, err := cashflow.NewGoal("car", jpy(2_000_000), "2024-11-15")
	if err != nil {
		t.Fatal(err)
	}
	entries := []cashflow.Entry{
		cashflow.NewIncome(date.New(2023, 11, 25), jpy(300_000), "salary", ""),
		cashflow.NewExpense(date.New(2023, 12, 25), jpy(200_000), "rent", ""),
	}
	f, err := cashflow.BuildForecast(entries, []cashflow.Holding{cashflow.NewHoldingValue("savings", jpy(1_000_000))}, []cashflow.Goal{goal}, 3, today)
	if err != nil {
		t.Fatalf("BuildForecast() error = %v", err)
	}

	got := ForecastMarkdown(f)
	headings, tables := outline(t, got)
	if diff := cmp.Diff([]string{"Forecast on 2024-01-15", "Projection", "Goal"}, headings); diff != "" {
		t.Errorf("ForecastMarkdown() headings mismatch (-want +got):\n%s", diff)
	}
	if tables != 2 {
		t.Errorf("ForecastMarkdown() has %d tables, want 2", tables)
	}
	for _, want := range []string{
		"| Current assets | ¥1,000,000 |",
		"| Monthly net rate | +¥100,000 |",
		"| 2024-02 | ¥1,100,000 |",
		"| 2024-04 | ¥1,300,000 |",
		"**car**: ¥2,000,000 by 2024-11-15",
		"*on-track*",
		f.Feedback,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("ForecastMarkdown() does not contain %q:\n%s", want, got)
		}
	}
}

func TestForecastMarkdown_NoGoal(t *testing.T) {
	f, err := cashflow.BuildForecast(nil, nil, nil, 0, date.New(2024, 1, 15))
	if err != nil {
		t.Fatalf("BuildForecast() error = %v", err)
	}
	got := ForecastMarkdown(f)
	for _, want := range []string{"No month projected.", "No goal configured", "*no-goal*"} {
		if !strings.Contains(got, want) {
			t.Errorf("ForecastMarkdown() does not contain %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "error") {
		t.Errorf("ForecastMarkdown() failed:\n%s", got)
	}
}

func TestMonthlyMarkdown(t *testing.T) {
	flows := []cashflow.MonthlyFlow{
		{Month: date.NewMonth(2024, 1), Income: jpy(300_000), Expense: jpy(120_000)},
		{Month: date.NewMonth(2024, 2), Expense: jpy(30_000)},
	}
	got := MonthlyMarkdown(flows, jpy(75_000))
	headings, tables := outline(t, got)
	if diff := cmp.Diff([]string{"Monthly Cash Flow"}, headings); diff != "" {
		t.Errorf("MonthlyMarkdown() headings mismatch (-want +got):\n%s", diff)
	}
	if tables != 1 {
		t.Errorf("MonthlyMarkdown() has %d tables, want 1:\n%s", tables, got)
	}
	for _, want := range []string{
		"| 2024-01 | ¥300,000 | ¥120,000 | +¥180,000 |",
		"| 2024-02 | 0 | ¥30,000 | -¥30,000 |",
		"| **Total** | ¥300,000 | ¥150,000 | +¥150,000 |",
		"+¥75,000",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("MonthlyMarkdown() does not contain %q:\n%s", want, got)
		}
	}

	if got := MonthlyMarkdown(nil, cashflow.Money{}); !strings.Contains(got, "No ledger entry.") {
		t.Errorf("MonthlyMarkdown(nil) = %q, want no entry", got)
	}
}

func TestCategoriesMarkdown(t *testing.T) {
	totals := []cashflow.CategoryTotal{
		{Category: "rent", Amount: jpy(75_000)},
		{Category: "food", Amount: jpy(25_000)},
	}
	got := CategoriesMarkdown(cashflow.Expense, date.NewMonth(2024, 3).Range(), totals)
	headings, tables := outline(t, got)
	if diff := cmp.Diff([]string{"Expense by category, 2024-03"}, headings); diff != "" {
		t.Errorf("CategoriesMarkdown() headings mismatch (-want +got):\n%s", diff)
	}
	if tables != 1 {
		t.Errorf("CategoriesMarkdown() has %d tables, want 1:\n%s", tables, got)
	}
	for _, want := range []string{"| rent | ¥75,000 | 75.0% |", "| food | ¥25,000 | 25.0% |", "| **Total** | ¥100,000 |  |"} {
		if !strings.Contains(got, want) {
			t.Errorf("CategoriesMarkdown() does not contain %q:\n%s", want, got)
		}
	}
}

func TestEntriesMarkdown(t *testing.T) {
	entries := []cashflow.Entry{
		cashflow.NewIncome(date.New(2024, 3, 1), jpy(300_000), "salary", ""),
		cashflow.NewExpense(date.New(2024, 3, 4), jpy(80_000), "rent", "march"),
	}
	got := EntriesMarkdown(date.NewMonth(2024, 3).Range(), entries)
	headings, tables := outline(t, got)
	if diff := cmp.Diff([]string{"Entries, 2024-03"}, headings); diff != "" {
		t.Errorf("EntriesMarkdown() headings mismatch (-want +got):\n%s", diff)
	}
	if tables != 1 {
		t.Errorf("EntriesMarkdown() has %d tables, want 1:\n%s", tables, got)
	}
	for _, want := range []string{
		"| 2024-03-01 | income | salary | +¥300,000 |  |",
		"| 2024-03-04 | expense | rent | -¥80,000 | march |",
		"| **Net** |  |  | +¥220,000 |  |",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("EntriesMarkdown() does not contain %q:\n%s", want, got)
		}
	}

	if got := EntriesMarkdown(date.Range{}, nil); !strings.Contains(got, "# Entries, all time") || !strings.Contains(got, "No ledger entry.") {
		t.Errorf("EntriesMarkdown(nil) = %q, want no entry", got)
	}
}

func TestBudgetMarkdown(t *testing.T) {
	lines := []cashflow.BudgetLine{
		{Category: "food", Budget: jpy(40_000), Actual: jpy(45_000)},
		{Category: "leisure", Budget: jpy(10_000)},
	}
	got := BudgetMarkdown(date.NewMonth(2024, 3), lines)
	headings, tables := outline(t, got)
	if diff := cmp.Diff([]string{"Budget for 2024-03"}, headings); diff != "" {
		t.Errorf("BudgetMarkdown() headings mismatch (-want +got):\n%s", diff)
	}
	if tables != 1 {
		t.Errorf("BudgetMarkdown() has %d tables, want 1:\n%s", tables, got)
	}
	for _, want := range []string{"| food | ¥40,000 | ¥45,000 | -¥5,000 | over |", "| leisure | ¥10,000 | 0 | ¥10,000 |  |"} {
		if !strings.Contains(got, want) {
			t.Errorf("BudgetMarkdown() does not contain %q:\n%s", want, got)
		}
	}

	if got := BudgetMarkdown(date.NewMonth(2024, 3), nil); !strings.Contains(got, "No budget and no expense this month.") {
		t.Errorf("BudgetMarkdown(nil) = %q", got)
	}
}
