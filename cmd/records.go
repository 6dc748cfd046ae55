package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/cashflow"
	"github.com/google/subcommands"
)

// --- Income and Expense Commands ---

// entryCmd records an entry of one kind.
type entryCmd struct {
	kind     cashflow.Kind
	date     string
	category string
	memo     string
}

func (c *entryCmd) Name() string     { return c.kind.String() }
func (c *entryCmd) Synopsis() string { return fmt.Sprintf("record an %s in the ledger", c.kind) }
func (c *entryCmd) Usage() string {
	return fmt.Sprintf(`cfs %s [-d <date>] [-c <category>] [-m <memo>] <amount>

  Appends an %s of <amount> in the reporting currency to the ledger.
`, c.kind, c.kind)
}

func (c *entryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Entry date (YYYY-MM-DD), today by default")
	f.StringVar(&c.category, "c", "", "An optional category")
	f.StringVar(&c.memo, "m", "", "An optional note")
}

func (c *entryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := dayFlag(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	amount, err := parseMoney(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	e := cashflow.Entry{Date: day, Kind: c.kind, Amount: amount, Category: c.category, Memo: c.memo}
	if err := openFolder().AppendEntry(e); err != nil {
		return fail("Error recording entry", err)
	}
	fmt.Fprintf(stdout, "Recorded %s of %s on %s\n", c.kind, amount, day)
	return subcommands.ExitSuccess
}

// --- Goal Command ---

type goalCmd struct {
	name string
	date string
}

func (*goalCmd) Name() string     { return "goal" }
func (*goalCmd) Synopsis() string { return "record a savings goal" }
func (*goalCmd) Usage() string {
	return `cfs goal -name <name> [-date <target date>] <target amount>

  Appends a goal after the existing ones. Without -date the goal has no deadline.
`
}

func (c *goalCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Name of the goal")
	f.StringVar(&c.date, "date", "", "Target date (YYYY-MM-DD)")
}

func (c *goalCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" || f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	target, err := parseMoney(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	g, err := cashflow.NewGoal(c.name, target, c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err := openFolder().AppendGoal(g); err != nil {
		return fail("Error recording goal", err)
	}
	fmt.Fprintf(stdout, "Recorded goal %q of %s\n", g.Name, g.Target)
	return subcommands.ExitSuccess
}

// --- Import Holdings Command ---

type importHoldingsCmd struct {
	query cashflow.HoldingsQuery
	dry   bool
}

func (*importHoldingsCmd) Name() string     { return "import-holdings" }
func (*importHoldingsCmd) Synopsis() string { return "replace the holdings with the positions of an export" }
func (*importHoldingsCmd) Usage() string {
	return `cfs import-holdings -items <path> -name <path> -price <path> [-quantity <path>] [-format json|xml] [-n] [<file>]

  Reads a JSON or XML export of a bank or a broker (stdin by default) and replaces
  all holdings with the positions it contains.

  JSON paths are JSONPath expressions, XML paths are element paths where a trailing
  /@attr selects an attribute.
`
}

func (c *importHoldingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.query.Format, "format", "", "Format of the export (json or xml), detected by default")
	f.StringVar(&c.query.Items, "items", "", "Path of the positions")
	f.StringVar(&c.query.Name, "name", "", "Path of the name, relative to a position")
	f.StringVar(&c.query.Quantity, "quantity", "", "Path of the quantity, relative to a position. Without it the price is the value of the position")
	f.StringVar(&c.query.Price, "price", "", "Path of the price, relative to a position")
	f.BoolVar(&c.dry, "n", false, "Print the holdings found without writing them")
}

func (c *importHoldingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.query.Items == "" || c.query.Name == "" || c.query.Price == "" || f.NArg() > 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	c.query.Currency = config.Currency

	var r io.Reader = os.Stdin
	if f.NArg() == 1 {
		file, err := os.Open(f.Arg(0))
		if err != nil {
			return fail("Error opening export", err)
		}
		defer file.Close()
		r = file
	}

	holdings, err := cashflow.ImportHoldings(r, c.query)
	if err != nil {
		return fail("Error importing holdings", err)
	}
	if c.dry {
		if err := cashflow.EncodeHoldings(stdout, holdings); err != nil {
			return fail("Error printing holdings", err)
		}
		return subcommands.ExitSuccess
	}
	if err := openFolder().WriteHoldings(holdings); err != nil {
		return fail("Error writing holdings", err)
	}
	fmt.Fprintf(stdout, "Imported %d holdings worth %s\n", len(holdings), cashflow.TotalAssets(holdings))
	return subcommands.ExitSuccess
}
