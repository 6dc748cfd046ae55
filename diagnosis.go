package cashflow

import (
	"fmt"

	"github.com/etnz/cashflow/date"
)

// Outcome is the verdict of a goal diagnosis.
type Outcome int

const (
	// NoGoal means there was no goal to diagnose.
	NoGoal Outcome = iota
	// Undated means the goal has no target date, so its timing cannot be diagnosed.
	Undated
	// OnTrack means the goal is reached by its target date.
	OnTrack
	// Delayed means the goal is reached, but some months after its target date.
	Delayed
	// Unreachable means the goal is never reached on the current trajectory.
	Unreachable
)

func (o Outcome) String() string {
	switch o {
	case NoGoal:
		return "no-goal"
	case Undated:
		return "undated"
	case OnTrack:
		return "on-track"
	case Delayed:
		return "delayed"
	case Unreachable:
		return "unreachable"
	default:
		return "unknown"
	}
}

func (o Outcome) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// UnreachableDelay is the delay reported in flat records for an Unreachable goal.
//
// It is not a duration, always check the Outcome first.
const UnreachableDelay = 999

// Diagnosis tells whether a goal will be met by its target date and, if not, by how much it falls short.
type Diagnosis struct {
	Goal              *Goal // nil for NoGoal.
	Outcome           Outcome
	MonthsUntilTarget int   // at least 1 for dated goals.
	FutureValue       Money // projected assets on the target date.
	Shortfall         Money // target minus future value, zero unless Delayed or Unreachable.
	Delay             int   // months behind schedule, only for Delayed.
	Remaining         Money // target minus current assets, floored at zero.
	Feedback          string
}

// Achievable reports whether the goal is met by its target date.
func (d Diagnosis) Achievable() bool { return d.Outcome == OnTrack }

// DelayMonths returns the delay as a flat number: the delay for Delayed, UnreachableDelay for Unreachable, 0 otherwise.
func (d Diagnosis) DelayMonths() int {
	switch d.Outcome {
	case Delayed:
		return d.Delay
	case Unreachable:
		return UnreachableDelay
	default:
		return 0
	}
}

// comparisonPlaces is the number of decimal places amounts are rounded to before
// they are compared: a rate like 100000/3 is inexact, but 3 months of it reach 100000.
const comparisonPlaces = 10

// Diagnose decides whether 'goal' is met by its target date, given current 'assets'
// growing linearly by 'rate' per month from 'today'.
//
// The months until target are the whole calendar months between today and the
// target date, at least 1 (a target date today or in the past counts as one month).
// The goal is achievable when assets + rate × months reaches the target, equality
// included. Otherwise, with a positive rate, the delay is the number of extra months
// needed to close the gap, rounded up and at least 1; with a zero or negative rate the goal is
// Unreachable. A nil goal gives NoGoal, and a goal without target date gives Undated.
func Diagnose(assets, rate Money, goal *Goal, today date.Date) Diagnosis {
	d := Diagnosis{Goal: goal}
	if goal == nil {
		d.Outcome = NoGoal
		d.Feedback = feedback(d)
		return d
	}

	d.Remaining = goal.Target.Sub(assets).Max(Money{})
	if !goal.HasDeadline() {
		d.Outcome = Undated
		d.Feedback = feedback(d)
		return d
	}

	d.MonthsUntilTarget = max(date.MonthsBetween(today, goal.TargetDate), 1)
	d.FutureValue = assets.Add(rate.Mul(Q(d.MonthsUntilTarget))).Round(comparisonPlaces)

	switch {
	case d.FutureValue.GreaterThanOrEqual(goal.Target):
		d.Outcome = OnTrack
	case rate.IsPositive():
		d.Outcome = Delayed
		d.Shortfall = goal.Target.Sub(d.FutureValue)
		needed := goal.Target.Sub(assets).DivMoney(rate).Round(comparisonPlaces)
		d.Delay = max(int(needed.Sub(Q(d.MonthsUntilTarget)).Ceil()), 1)
	default:
		d.Outcome = Unreachable
		d.Shortfall = goal.Target.Sub(d.FutureValue)
	}
	d.Feedback = feedback(d)
	return d
}

// feedback returns a human readable summary of the diagnosis.
func feedback(d Diagnosis) string {
	if d.Goal == nil {
		return "No goal configured: add a goal with a target amount and date to get a diagnosis."
	}
	g := d.Goal
	switch d.Outcome {
	case Undated:
		return fmt.Sprintf("Goal %q has no target date: insufficient information to diagnose its timing (%s still to save).", g.Name, d.Remaining.Whole())
	case OnTrack:
		return fmt.Sprintf("Goal %q is on track: %s projected by %s for a target of %s.", g.Name, d.FutureValue.Whole(), g.TargetDate, g.Target.Whole())
	case Delayed:
		unit := "months"
		if d.Delay == 1 {
			unit = "month"
		}
		return fmt.Sprintf("Goal %q falls short by %s on %s: approximately %d %s behind schedule.", g.Name, d.Shortfall.Whole(), g.TargetDate, d.Delay, unit)
	case Unreachable:
		return fmt.Sprintf("Goal %q falls short by %s on %s: not achievable at the current savings rate.", g.Name, d.Shortfall.Whole(), g.TargetDate)
	default:
		return ""
	}
}
