package renderer

import (
	"bytes"
	"strings"

	"github.com/etnz/cashflow"
	"github.com/etnz/cashflow/date"
	md "github.com/nao1215/markdown"
	"github.com/shopspring/decimal"
)

// MonthlyMarkdown renders monthly flows and the average monthly net rate.
func MonthlyMarkdown(flows []cashflow.MonthlyFlow, rate cashflow.Money) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Monthly Cash Flow")
	doc.LF()
	if len(flows) == 0 {
		doc.PlainText("No ledger entry.")
		return doc.String()
	}

	var income, expense cashflow.Money
	rows := make([][]string, 0, len(flows)+1)
	for _, f := range flows {
		income, expense = income.Add(f.Income), expense.Add(f.Expense)
		rows = append(rows, []string{f.Month.String(), f.Income.Whole(), f.Expense.Whole(), f.Net().SignedString()})
	}
	rows = append(rows, []string{"**Total**", income.Whole(), expense.Whole(), income.Sub(expense).SignedString()})

	doc.Table(md.TableSet{
		Header:    []string{"Month", "Income", "Expense", "Net"},
		Rows:      rows,
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight},
	})
	doc.PlainTextf("Average monthly net rate: **%s**", rate.SignedString())
	return doc.String()
}

// CategoriesMarkdown renders the totals per category of one kind of entries within a range.
func CategoriesMarkdown(kind cashflow.Kind, r date.Range, totals []cashflow.CategoryTotal) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1f("%s by category, %s", titleCase(kind.String()), r)
	doc.LF()
	if len(totals) == 0 {
		doc.PlainTextf("No %s.", kind)
		return doc.String()
	}

	var total cashflow.Money
	for _, t := range totals {
		total = total.Add(t.Amount)
	}
	hundred := decimal.NewFromInt(100)
	rows := make([][]string, 0, len(totals))
	for _, t := range totals {
		share := "-"
		if !total.IsZero() {
			share = t.Amount.Decimal().Div(total.Decimal()).Mul(hundred).StringFixed(1) + "%"
		}
		rows = append(rows, []string{t.Category, t.Amount.Whole(), share})
	}
	rows = append(rows, []string{"**Total**", total.Whole(), ""})

	doc.Table(md.TableSet{
		Header:    []string{"Category", "Amount", "Share"},
		Rows:      rows,
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight},
	})
	return doc.String()
}

// EntriesMarkdown renders the entries of a range, one row per entry, and their net.
func EntriesMarkdown(r date.Range, entries []cashflow.Entry) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1f("Entries, %s", r)
	doc.LF()
	if len(entries) == 0 {
		doc.PlainText("No ledger entry.")
		return doc.String()
	}

	var net cashflow.Money
	rows := make([][]string, 0, len(entries)+1)
	for _, e := range entries {
		net = net.Add(e.Signed())
		rows = append(rows, []string{e.Date.String(), e.Kind.String(), e.Category, e.Signed().SignedString(), e.Memo})
	}
	rows = append(rows, []string{"**Net**", "", "", net.SignedString(), ""})

	doc.Table(md.TableSet{
		Header:    []string{"Date", "Type", "Category", "Amount", "Memo"},
		Rows:      rows,
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignLeft},
	})
	return doc.String()
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
