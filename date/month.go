package date

import (
	"encoding/json"
	"fmt"
	"time"
)

// MonthFormat is the format used to represent calendar months as strings.
const MonthFormat = "2006-01"

// Month is a calendar month of a given year, like 2024-03.
type Month struct {
	y int
	m time.Month
}

// NewMonth returns a normalized Month: NewMonth(2024, 13) is 2025-01.
func NewMonth(year int, month time.Month) Month {
	d := New(year, month, 1)
	return Month{d.y, d.m}
}

// MonthOf returns the calendar month containing d.
func MonthOf(d Date) Month { return Month{d.y, d.m} }

// Year returns the year of the month.
func (m Month) Year() int { return m.y }

// Month returns the month of the year.
func (m Month) Month() time.Month { return m.m }

// index is the absolute number of months since year 0.
func (m Month) index() int { return m.y*12 + int(m.m) - 1 }

// Add returns the month i months after m.
func (m Month) Add(i int) Month { return NewMonth(m.y, m.m+time.Month(i)) }

// Before reports whether m is before x.
func (m Month) Before(x Month) bool { return m.index() < x.index() }

// After reports whether m is after x.
func (m Month) After(x Month) bool { return m.index() > x.index() }

// Sub returns the number of whole months from x to m (negative if m is before x).
func (m Month) Sub(x Month) int { return m.index() - x.index() }

// First returns the first day of the month.
func (m Month) First() Date { return New(m.y, m.m, 1) }

// Last returns the last day of the month.
func (m Month) Last() Date { return New(m.y, m.m+1, 0) }

// Range returns the range of days of the month.
func (m Month) Range() Range { return Range{From: m.First(), To: m.Last()} }

// String formats the month as "2006-01".
func (m Month) String() string { return m.First().Format(MonthFormat) }

// ParseMonth parses a month in the "2006-01" format (single-digit month accepted).
func ParseMonth(str string) (Month, error) {
	on, err := time.Parse("2006-1", str)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q want format %q: %w", str, MonthFormat, err)
	}
	return NewMonth(on.Year(), on.Month()), nil
}

// MonthsBetween returns the number of whole calendar months from 'from' to 'to'.
//
// Days of the month are ignored: only the year and month count, so
// 2024-01-31 to 2024-02-01 is 1 month and 2024-01-01 to 2024-01-31 is 0.
// The result is negative when 'to' is in an earlier month than 'from'.
func MonthsBetween(from, to Date) int { return MonthOf(to).Sub(MonthOf(from)) }

func (m *Month) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	v, err := ParseMonth(str)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

func (m Month) MarshalJSON() ([]byte, error) {
	str := m.String()
	return json.Marshal(&str)
}
