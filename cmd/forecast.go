package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/cashflow"
	"github.com/etnz/cashflow/notify"
	"github.com/etnz/cashflow/renderer"
	"github.com/google/subcommands"
)

// forecastFlags are the flags shared by commands computing a forecast.
type forecastFlags struct {
	periods    int
	goalPolicy string
	ledgerCash bool
}

func (c *forecastFlags) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.periods, "periods", cashflow.DefaultPeriods, "Number of months to project")
	f.StringVar(&c.goalPolicy, "goal-policy", "first", "Goal to diagnose: first, soonest or shortfall")
	f.BoolVar(&c.ledgerCash, "ledger-cash", false, "Add the net of the ledger to the current assets")
}

func (c *forecastFlags) forecaster() (*cashflow.Forecaster, error) {
	selector, err := cashflow.ParseGoalSelector(c.goalPolicy)
	if err != nil {
		return nil, err
	}
	if c.periods > cashflow.MaxMonths {
		return nil, fmt.Errorf("%w: %d, at most %d", cashflow.ErrInvalidPeriods, c.periods, cashflow.MaxMonths)
	}
	return &cashflow.Forecaster{
		Periods:           c.periods,
		Selector:          selector,
		Currency:          config.Currency,
		IncludeLedgerCash: c.ledgerCash,
	}, nil
}

// forecast loads the folder and computes its forecast on the reference day.
func (c *forecastFlags) forecast(ctx context.Context) (*cashflow.Forecast, error) {
	f, err := c.forecaster()
	if err != nil {
		return nil, err
	}
	s, err := cashflow.Load(ctx, openFolder())
	if err != nil {
		return nil, err
	}
	today, err := referenceDay()
	if err != nil {
		return nil, err
	}
	return f.Forecast(s, today)
}

// --- Forecast Command ---

type forecastCmd struct {
	forecastFlags
	json     bool
	mail     string
	schedule string
}

func (*forecastCmd) Name() string { return "forecast" }
func (*forecastCmd) Synopsis() string {
	return "project the balance and diagnose whether the goal is achievable"
}
func (*forecastCmd) Usage() string {
	return `cfs forecast [-periods <n>] [-goal-policy <policy>] [-ledger-cash] [-json] [-mail <to>] [-schedule <cron>]

  Computes the average monthly net rate of the ledger, the current assets, the
  projected balance of the next months and the diagnosis of one goal.

  With -schedule, the forecast is computed again on each tick of the cron expression
  (e.g. "0 8 1 * *") until interrupted.
`
}

func (c *forecastCmd) SetFlags(f *flag.FlagSet) {
	c.forecastFlags.SetFlags(f)
	f.BoolVar(&c.json, "json", false, "Print the forecast as JSON")
	f.StringVar(&c.mail, "mail", "", "Comma separated recipients to send the forecast to")
	f.StringVar(&c.schedule, "schedule", "", "Cron expression to compute the forecast periodically")
}

func (c *forecastCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if _, err := c.forecaster(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	var mailer *notify.Mailer
	if c.mail != "" {
		if !config.CanMail() {
			fmt.Fprintln(os.Stderr, "Error: -mail requires CASHFLOW_SMTP_HOST and CASHFLOW_MAIL_FROM")
			return subcommands.ExitUsageError
		}
		mailer = notify.NewMailer(config.SMTP(), config.MailFrom, logger)
	}

	if c.schedule == "" {
		if err := c.run(ctx, mailer); err != nil {
			return fail("Error computing forecast", err)
		}
		return subcommands.ExitSuccess
	}

	err := schedule(ctx, c.schedule, func(ctx context.Context) error { return c.run(ctx, mailer) })
	if err != nil {
		return fail("Error scheduling forecast", err)
	}
	return subcommands.ExitSuccess
}

// run computes, prints and mails the forecast.
func (c *forecastCmd) run(ctx context.Context, mailer *notify.Mailer) error {
	fc, err := c.forecast(ctx)
	if err != nil {
		return err
	}
	logger.WithFields(fields("forecast")).WithField("outcome", fc.Outcome).Info("forecast computed")

	if c.json {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(fc); err != nil {
			return fmt.Errorf("could not encode forecast: %w", err)
		}
	} else {
		printMarkdown(renderer.ForecastMarkdown(fc))
	}

	if mailer != nil {
		if err := mailer.SendForecast(recipients(c.mail), fc); err != nil {
			return err
		}
	}
	return nil
}

// recipients splits a comma separated list of addresses.
func recipients(list string) []string {
	var to []string
	for _, a := range strings.Split(list, ",") {
		if a = strings.TrimSpace(a); a != "" {
			to = append(to, a)
		}
	}
	return to
}

// --- Project Command ---

type projectCmd struct {
	forecastFlags
}

func (*projectCmd) Name() string     { return "project" }
func (*projectCmd) Synopsis() string { return "print the projected balance of the next months" }
func (*projectCmd) Usage() string {
	return `cfs project [-periods <n>] [-ledger-cash]

  Prints one projected balance per line: the current assets plus the monthly net
  rate times the number of months.
`
}

func (c *projectCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fc, err := c.forecast(ctx)
	if err != nil {
		return fail("Error computing projection", err)
	}
	for i, b := range fc.Projection {
		fmt.Fprintf(stdout, "%s\t%s\n", fc.Date.AddMonths(i+1).Format("2006-01"), b.Round(2))
	}
	return subcommands.ExitSuccess
}

// --- Rate Command ---

type rateCmd struct{}

func (*rateCmd) Name() string     { return "rate" }
func (*rateCmd) Synopsis() string { return "print the average monthly net rate of the ledger" }
func (*rateCmd) Usage() string {
	return `cfs rate

  Prints the total income minus the total expense, divided by the number of months
  the ledger spans.
`
}

func (*rateCmd) SetFlags(f *flag.FlagSet) {}

func (*rateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	entries, err := openFolder().Entries(ctx)
	if err != nil {
		return fail("Error loading ledger", err)
	}
	fmt.Fprintln(stdout, cashflow.MonthlyNetRate(entries).Round(2))
	return subcommands.ExitSuccess
}

// --- Diagnose Command ---

type diagnoseCmd struct {
	forecastFlags
}

func (*diagnoseCmd) Name() string     { return "diagnose" }
func (*diagnoseCmd) Synopsis() string { return "print whether the goal is achievable by its target date" }
func (*diagnoseCmd) Usage() string {
	return `cfs diagnose [-goal-policy <policy>] [-ledger-cash]

  Prints the feedback of the goal diagnosis. The exit status is 0 when the goal is
  on track and 1 otherwise.
`
}

func (c *diagnoseCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fc, err := c.forecast(ctx)
	if err != nil {
		return fail("Error diagnosing goal", err)
	}
	fmt.Fprintln(stdout, fc.Feedback)
	if !fc.Achievable() {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
