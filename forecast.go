package cashflow

import (
	"errors"
	"fmt"
	"strings"

	"github.com/etnz/cashflow/date"
)

var (
	// ErrCurrencyMismatch is returned when a snapshot mixes amounts that cannot be summed.
	ErrCurrencyMismatch = errors.New("currency mismatch")
	// ErrInvalidPeriods is returned for a negative projection horizon.
	ErrInvalidPeriods = errors.New("invalid number of periods")
)

// Forecast is the result of one forecast request: where the assets are heading and
// whether the selected goal is met on the way.
type Forecast struct {
	Date          date.Date // the reference day of the forecast.
	Currency      string
	MonthlyRate   Money
	Periods       int
	CurrentAssets Money
	Projection    []Money // one balance per month, starting one month from Date.
	Diagnosis
}

// MarshalJSON encodes the forecast as a flat record.
//
// An unreachable goal is reported with a delay_months of UnreachableDelay, use the
// outcome field to tell it apart from a real delay.
func (f Forecast) MarshalJSON() ([]byte, error) {
	projection := make([]Money, len(f.Projection))
	for i, p := range f.Projection {
		projection[i] = p.Round(2)
	}
	var w jsonObjectWriter
	w.Optional("date", f.Date)
	w.Optional("currency", f.Currency)
	w.Append("monthly_rate", f.MonthlyRate.Round(2))
	w.Append("periods", f.Periods)
	w.Append("feedback", f.Feedback)
	w.Append("current_assets", f.CurrentAssets.Round(2))
	w.Append("projection", projection)
	w.Append("shortfall", f.Shortfall.Round(2))
	w.Append("delay_months", f.DelayMonths())
	w.Append("achievable", f.Achievable())
	w.Append("outcome", f.Outcome)
	if f.Goal != nil {
		w.Append("goal", newGoalRecord(*f.Goal))
	}
	return w.MarshalJSON()
}

// GoalSelector picks the goal to diagnose among 'goals', or nil if there is none.
type GoalSelector func(goals []Goal, assets, rate Money, today date.Date) *Goal

// FirstGoal selects the first goal in list order.
func FirstGoal(goals []Goal, _, _ Money, _ date.Date) *Goal {
	if len(goals) == 0 {
		return nil
	}
	g := goals[0]
	return &g
}

// SoonestGoal selects the goal with the earliest target date.
//
// Goals without target date are skipped; if no goal has one, the first goal is selected.
func SoonestGoal(goals []Goal, assets, rate Money, today date.Date) *Goal {
	var soonest *Goal
	for _, g := range goals {
		if !g.HasDeadline() {
			continue
		}
		if soonest == nil || g.TargetDate.Before(soonest.TargetDate) {
			soonest = &g
		}
	}
	if soonest == nil {
		return FirstGoal(goals, assets, rate, today)
	}
	return soonest
}

// LargestShortfall selects the goal that falls short by the largest amount.
//
// Ties are won by the earliest goal in list order; if no goal falls short, the first goal is selected.
func LargestShortfall(goals []Goal, assets, rate Money, today date.Date) *Goal {
	var largest *Goal
	var shortfall Money
	for _, g := range goals {
		d := Diagnose(assets, rate, &g, today)
		if d.Shortfall.GreaterThan(shortfall) {
			largest, shortfall = &g, d.Shortfall
		}
	}
	if largest == nil {
		return FirstGoal(goals, assets, rate, today)
	}
	return largest
}

// ParseGoalSelector returns the selector named "first", "soonest" or "shortfall".
func ParseGoalSelector(name string) (GoalSelector, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "first":
		return FirstGoal, nil
	case "soonest":
		return SoonestGoal, nil
	case "shortfall", "largest-shortfall":
		return LargestShortfall, nil
	default:
		return nil, fmt.Errorf("unknown goal policy %q, want first, soonest or shortfall", name)
	}
}

// Forecaster builds forecasts from snapshots.
//
// Its zero value projects no period and diagnoses the first goal; use NewForecaster for the defaults.
type Forecaster struct {
	Periods  int          // number of months to project.
	Selector GoalSelector // nil means FirstGoal.
	Currency string       // reporting currency; empty means the snapshot's own.

	// IncludeLedgerCash adds the net of all ledger entries to the holdings value in the current assets.
	IncludeLedgerCash bool
}

// NewForecaster returns a Forecaster projecting DefaultPeriods months and diagnosing the first goal.
func NewForecaster() *Forecaster {
	return &Forecaster{Periods: DefaultPeriods, Selector: FirstGoal}
}

// Forecast computes the monthly rate, the current assets, the projection and the
// goal diagnosis of snapshot 's' as of 'today'.
//
// Malformed goals are rejected with ErrInvalidGoal, malformed entries with ErrInvalidEntry,
// mixed currencies with ErrCurrencyMismatch and a negative horizon with ErrInvalidPeriods.
// Everything else (empty ledger, no holdings, no goal) yields a well-defined forecast.
func (f *Forecaster) Forecast(s Snapshot, today date.Date) (*Forecast, error) {
	if f.Periods < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPeriods, f.Periods)
	}
	if err := validate(s); err != nil {
		return nil, err
	}
	currency, err := reportingCurrency(f.Currency, s)
	if err != nil {
		return nil, err
	}

	rate := MonthlyNetRate(s.Entries).in(currency)
	assets := TotalAssets(s.Holdings).in(currency)
	if f.IncludeLedgerCash {
		assets = assets.Add(NetProfit(s.Entries))
	}

	selector := f.Selector
	if selector == nil {
		selector = FirstGoal
	}
	goal := selector(s.Goals, assets, rate, today)
	diagnosis := Diagnose(assets, rate, goal, today)
	diagnosis.FutureValue = diagnosis.FutureValue.in(currency)
	diagnosis.Shortfall = diagnosis.Shortfall.in(currency)
	diagnosis.Remaining = diagnosis.Remaining.in(currency)

	return &Forecast{
		Date:          today,
		Currency:      currency,
		MonthlyRate:   rate,
		Periods:       f.Periods,
		CurrentAssets: assets,
		Projection:    Project(assets, rate, f.Periods),
		Diagnosis:     diagnosis,
	}, nil
}

// BuildForecast computes the forecast of the given records over 'periods' months,
// diagnosing the first goal.
func BuildForecast(entries []Entry, holdings []Holding, goals []Goal, periods int, today date.Date) (*Forecast, error) {
	f := NewForecaster()
	f.Periods = periods
	return f.Forecast(Snapshot{Entries: entries, Holdings: holdings, Goals: goals}, today)
}

// validate checks every entry and goal of the snapshot.
func validate(s Snapshot) error {
	var errs error
	for _, e := range s.Entries {
		if err := e.Validate(); err != nil {
			errs = errors.Join(errs, fmt.Errorf("entry on %s: %w", e.Date, err))
		}
	}
	for _, g := range s.Goals {
		errs = errors.Join(errs, g.Validate())
	}
	return errs
}

// reportingCurrency returns the single currency of all amounts in the snapshot.
//
// Amounts without currency are compatible with any. If 'want' is not empty, every
// amount must be in that currency.
func reportingCurrency(want string, s Snapshot) (string, error) {
	currency := want
	check := func(m Money, what string) error {
		switch {
		case m.cur == "":
		case currency == "":
			currency = m.cur
		case m.cur != currency:
			return fmt.Errorf("%w: %s is in %s, want %s", ErrCurrencyMismatch, what, m.cur, currency)
		}
		return nil
	}
	for _, e := range s.Entries {
		if err := check(e.Amount, fmt.Sprintf("%s entry on %s", e.Kind, e.Date)); err != nil {
			return "", err
		}
	}
	for _, h := range s.Holdings {
		if err := check(h.Price, fmt.Sprintf("holding %q", h.Name)); err != nil {
			return "", err
		}
	}
	for _, g := range s.Goals {
		if err := check(g.Target, fmt.Sprintf("goal %q", g.Name)); err != nil {
			return "", err
		}
	}
	for _, b := range s.Budgets {
		if err := check(b.Amount, fmt.Sprintf("budget %q for %s", b.Category, b.Month)); err != nil {
			return "", err
		}
	}
	return currency, nil
}
