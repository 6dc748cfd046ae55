package cashflow

import (
	"errors"
	"fmt"
	"strings"

	"github.com/etnz/cashflow/date"
)

// ErrInvalidGoal is returned for goal records that cannot be diagnosed.
var ErrInvalidGoal = errors.New("invalid goal data")

// Goal is a target amount to reach, optionally by a target date.
type Goal struct {
	Name       string
	Target     Money
	TargetDate date.Date // zero when the goal has no deadline.
}

// NewGoal creates a goal from its raw fields.
//
// An empty 'targetDate' means no deadline; any other value must be a valid date.
func NewGoal(name string, target Money, targetDate string) (Goal, error) {
	g := Goal{Name: name, Target: target}
	if s := strings.TrimSpace(targetDate); s != "" {
		on, err := date.Parse(s)
		if err != nil {
			return Goal{}, fmt.Errorf("%w: goal %q: %w", ErrInvalidGoal, name, err)
		}
		g.TargetDate = on
	}
	if err := g.Validate(); err != nil {
		return Goal{}, err
	}
	return g, nil
}

// HasDeadline reports whether the goal has a target date.
func (g Goal) HasDeadline() bool { return !g.TargetDate.IsZero() }

// Validate checks that the goal can be diagnosed.
func (g Goal) Validate() error {
	var errs error
	if strings.TrimSpace(g.Name) == "" {
		errs = errors.Join(errs, errors.New("name is missing"))
	}
	if !g.Target.IsPositive() {
		errs = errors.Join(errs, fmt.Errorf("target amount %s must be positive", g.Target.Decimal()))
	}
	if errs != nil {
		return fmt.Errorf("%w: goal %q: %w", ErrInvalidGoal, g.Name, errs)
	}
	return nil
}
