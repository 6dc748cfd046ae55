package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/cashflow"
	"github.com/etnz/cashflow/date"
	"github.com/etnz/cashflow/renderer"
	"github.com/google/subcommands"
)

// --- Monthly Command ---

type monthlyCmd struct {
	months int
	all    bool
}

func (*monthlyCmd) Name() string     { return "monthly" }
func (*monthlyCmd) Synopsis() string { return "display income, expense and net per month" }
func (*monthlyCmd) Usage() string {
	return `cfs monthly [-n <months>] [-all]

  Displays the income, expense and net of the last months, ending with the
  current month, and the average monthly net rate of the whole ledger.
`
}

func (c *monthlyCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.months, "n", 6, fmt.Sprintf("Number of months to display (at most %d)", cashflow.MaxMonths))
	f.BoolVar(&c.all, "all", false, "Display every month of the ledger")
}

func (c *monthlyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if (c.months <= 0 || c.months > cashflow.MaxMonths) && !c.all {
		f.Usage()
		return subcommands.ExitUsageError
	}
	entries, err := openFolder().Entries(ctx)
	if err != nil {
		return fail("Error loading ledger", err)
	}
	today, err := referenceDay()
	if err != nil {
		return fail("Error", err)
	}
	flows := cashflow.LastMonths(entries, today, c.months)
	if c.all {
		flows = cashflow.MonthlyFlows(entries)
	}
	printMarkdown(renderer.MonthlyMarkdown(flows, cashflow.MonthlyNetRate(entries)))
	return subcommands.ExitSuccess
}

// --- Categories Command ---

type categoriesCmd struct {
	kind   string
	period string
	from   string
	to     string
}

func (*categoriesCmd) Name() string     { return "categories" }
func (*categoriesCmd) Synopsis() string { return "display the totals per category" }
func (*categoriesCmd) Usage() string {
	return `cfs categories [-type <income|expense>] [-p <period> | -from <date>] [-to <date>]

  Displays the total of each category of income or expense within a range of days,
  from the start of the period (the month by default) containing the end date.
`
}

func (c *categoriesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.kind, "type", "expense", "Kind of entries: income or expense")
	f.StringVar(&c.period, "p", "month", "Period of the range (day, week, month, quarter, year)")
	f.StringVar(&c.from, "from", "", "First day of the range (YYYY-MM-DD). Overrides -p")
	f.StringVar(&c.to, "to", "", "Last day of the range (YYYY-MM-DD), today by default")
}

func (c *categoriesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	kind, err := cashflow.ParseKind(c.kind)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	to, err := dayFlag(c.to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing end date: %v\n", err)
		return subcommands.ExitUsageError
	}
	period, err := date.ParsePeriod(c.period)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing period: %v\n", err)
		return subcommands.ExitUsageError
	}
	from := period.Range(to).From
	if c.from != "" {
		if from, err = date.Parse(c.from); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing start date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	if to.Before(from) {
		fmt.Fprintf(os.Stderr, "Error: range %s to %s is empty\n", from, to)
		return subcommands.ExitUsageError
	}

	entries, err := openFolder().Entries(ctx)
	if err != nil {
		return fail("Error loading ledger", err)
	}
	r := date.Range{From: from, To: to}
	printMarkdown(renderer.CategoriesMarkdown(kind, r, cashflow.CategoryTotals(entries, kind, r)))
	return subcommands.ExitSuccess
}

// --- Entries Command ---

type entriesCmd struct {
	from     string
	to       string
	category string
	kind     string
}

func (*entriesCmd) Name() string     { return "entries" }
func (*entriesCmd) Synopsis() string { return "list the ledger entries" }
func (*entriesCmd) Usage() string {
	return `cfs entries [-from <date>] [-to <date>] [-c <category>] [-type <income|expense>]

  Lists the ledger entries by date, within a range of days, of a category or of a type.
  Without -from or -to the range is open on that side.
`
}

func (c *entriesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "First day of the range (YYYY-MM-DD)")
	f.StringVar(&c.to, "to", "", "Last day of the range (YYYY-MM-DD)")
	f.StringVar(&c.category, "c", "", "Category of the entries, "+cashflow.Uncategorized+" for entries without one")
	f.StringVar(&c.kind, "type", "", "Kind of entries: income or expense, both by default")
}

func (c *entriesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	filter := cashflow.EntryFilter{Category: c.category}
	if c.kind != "" {
		kind, err := cashflow.ParseKind(c.kind)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		filter.Kinds = []cashflow.Kind{kind}
	}
	var err error
	if c.from != "" {
		if filter.Range.From, err = date.Parse(c.from); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing start date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	if c.to != "" {
		if filter.Range.To, err = date.Parse(c.to); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing end date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	if r := filter.Range; !r.From.IsZero() && !r.To.IsZero() && r.To.Before(r.From) {
		fmt.Fprintf(os.Stderr, "Error: range %s to %s is empty\n", r.From, r.To)
		return subcommands.ExitUsageError
	}

	entries, err := openFolder().Entries(ctx)
	if err != nil {
		return fail("Error loading ledger", err)
	}
	printMarkdown(renderer.EntriesMarkdown(filter.Range, cashflow.FilterEntries(entries, filter)))
	return subcommands.ExitSuccess
}

// --- Budget Command ---

type budgetCmd struct {
	month    string
	set      bool
	category string
}

func (*budgetCmd) Name() string     { return "budget" }
func (*budgetCmd) Synopsis() string { return "display or set the monthly budgets" }
func (*budgetCmd) Usage() string {
	return `cfs budget [-month <YYYY-MM>]
cfs budget -set -month <YYYY-MM> -c <category> <amount>

  Compares the budget of each category with the actual expense of the month, or
  records a budget with -set.
`
}

func (c *budgetCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "month", "", "Month (YYYY-MM), the current month by default")
	f.BoolVar(&c.set, "set", false, "Record a budget")
	f.StringVar(&c.category, "c", "", "Category of the budget to record")
}

func (c *budgetCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	month, err := c.parseMonth()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing month: %v\n", err)
		return subcommands.ExitUsageError
	}
	folder := openFolder()

	if c.set {
		if c.category == "" || f.NArg() != 1 {
			f.Usage()
			return subcommands.ExitUsageError
		}
		amount, err := parseMoney(f.Arg(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		if err := folder.AppendBudget(cashflow.Budget{Month: month, Category: c.category, Amount: amount}); err != nil {
			return fail("Error recording budget", err)
		}
		fmt.Fprintf(stdout, "Budget of %s for %s set to %s\n", c.category, month, amount)
		return subcommands.ExitSuccess
	}

	entries, err := folder.Entries(ctx)
	if err != nil {
		return fail("Error loading ledger", err)
	}
	budgets, err := folder.Budgets(ctx)
	if err != nil {
		return fail("Error loading budgets", err)
	}
	printMarkdown(renderer.BudgetMarkdown(month, cashflow.BudgetStatus(entries, budgets, month)))
	return subcommands.ExitSuccess
}

func (c *budgetCmd) parseMonth() (date.Month, error) {
	if c.month != "" {
		return date.ParseMonth(c.month)
	}
	today, err := referenceDay()
	if err != nil {
		return date.Month{}, err
	}
	return date.MonthOf(today), nil
}
