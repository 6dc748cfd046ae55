package date

import (
	"fmt"
	"strings"
	"time"
)

// Period is a calendar period: a day, a week, a month, a quarter or a year.
type Period int

const (
	Daily Period = iota
	Weekly
	Monthly
	Quarterly
	Yearly
)

func (p Period) String() string {
	switch p {
	case Daily:
		return "day"
	case Weekly:
		return "week"
	case Monthly:
		return "month"
	case Quarterly:
		return "quarter"
	case Yearly:
		return "year"
	default:
		return fmt.Sprintf("Period(%d)", int(p))
	}
}

// ParsePeriod parses a period name, like "month" or "monthly".
func ParsePeriod(p string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(p)) {
	case "daily", "day":
		return Daily, nil
	case "weekly", "week":
		return Weekly, nil
	case "monthly", "month":
		return Monthly, nil
	case "quarterly", "quarter":
		return Quarterly, nil
	case "yearly", "year":
		return Yearly, nil
	default:
		return Daily, fmt.Errorf("unknown period %q", p)
	}
}

// Range returns the period containing d. Weeks start on Monday.
func (p Period) Range(d Date) Range {
	switch p {
	case Weekly:
		from := d.Add(-((int(d.Weekday()) + 6) % 7))
		return Range{From: from, To: from.Add(6)}
	case Monthly:
		return MonthOf(d).Range()
	case Quarterly:
		first := time.Month((int(d.m)-1)/3*3 + 1)
		return Range{From: New(d.y, first, 1), To: New(d.y, first+3, 0)}
	case Yearly:
		return Range{From: New(d.y, time.January, 1), To: New(d.y, time.December, 31)}
	default:
		return Range{From: d, To: d}
	}
}
