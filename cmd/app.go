// Package cmd implements the CLI application to track cash flows and forecast savings goals.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/cashflow"
	"github.com/etnz/cashflow/date"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	config Config
	logger = NewLogger(os.Stderr, "warning")

	stdout io.Writer = os.Stdout
)

// Register the subcommands and the global flags.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
//
// The global flags default to the values of 'cfg'.
func Register(c *subcommands.Commander, cfg Config) {
	config = cfg
	logger = NewLogger(os.Stderr, cfg.LogLevel)

	flag.StringVar(&config.Dir, "dir", cfg.Dir, "Folder of the records (entries, holdings, goals and budgets)")
	flag.StringVar(&config.Currency, "currency", cfg.Currency, "Reporting currency")

	c.Register(&forecastCmd{}, "forecast")
	c.Register(&projectCmd{}, "forecast")
	c.Register(&rateCmd{}, "forecast")
	c.Register(&diagnoseCmd{}, "forecast")

	c.Register(&monthlyCmd{}, "reports")
	c.Register(&categoriesCmd{}, "reports")
	c.Register(&entriesCmd{}, "reports")
	c.Register(&budgetCmd{}, "reports")

	c.Register(&entryCmd{kind: cashflow.Income}, "records")
	c.Register(&entryCmd{kind: cashflow.Expense}, "records")
	c.Register(&goalCmd{}, "records")
	c.Register(&importHoldingsCmd{}, "records")

	c.Register(&AssistCmd{}, "help")
	c.Register(&topicCmd{}, "help")
	c.Register(c.HelpCommand(), "help")
	c.Register(c.FlagsCommand(), "help")
}

// openFolder returns the folder of the records.
func openFolder() *cashflow.Folder { return cashflow.NewFolder(config.Dir, logger) }

// referenceDay returns the day computations are made for: CASHFLOW_TODAY if set, today otherwise.
func referenceDay() (date.Date, error) {
	if config.Today == "" {
		return date.Today(), nil
	}
	d, err := date.Parse(config.Today)
	if err != nil {
		return date.Date{}, fmt.Errorf("invalid CASHFLOW_TODAY: %w", err)
	}
	return d, nil
}

// parseMoney parses an amount in the reporting currency.
func parseMoney(s string) (cashflow.Money, error) {
	v, err := decimal.NewFromString(s)
	if err != nil {
		return cashflow.Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return cashflow.M(v, config.Currency), nil
}

// dayFlag parses a date flag, an empty value is the reference day.
func dayFlag(s string) (date.Date, error) {
	if s == "" {
		return referenceDay()
	}
	return date.Parse(s)
}

// fail prints err and returns ExitFailure.
func fail(format string, err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, format+": %v\n", err)
	logger.WithError(err).Debug("command failed")
	return subcommands.ExitFailure
}

// fields returns the log fields common to all commands.
func fields(cmd string) logrus.Fields {
	return logrus.Fields{"cmd": cmd, "dir": config.Dir, "currency": config.Currency}
}
