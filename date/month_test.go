package date

import (
	"testing"
	"time"
)

func TestMonthsBetween(t *testing.T) {
	testCases := []struct {
		name     string
		from, to string
		want     int
	}{
		{"same day", "2024-01-10", "2024-01-10", 0},
		{"same month", "2024-01-01", "2024-01-31", 0},
		{"month boundary", "2024-01-31", "2024-02-01", 1},
		{"day of month ignored", "2024-01-10", "2024-04-15", 3},
		{"earlier day in later month", "2024-01-20", "2024-03-05", 2},
		{"across year", "2023-11-15", "2024-02-15", 3},
		{"leap day", "2024-02-29", "2025-02-28", 12},
		{"backward", "2024-03-01", "2024-01-31", -2},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := MonthsBetween(MustParse(tc.from), MustParse(tc.to)); got != tc.want {
				t.Errorf("MonthsBetween(%s, %s) = %d, want %d", tc.from, tc.to, got, tc.want)
			}
		})
	}
}

func TestMonth(t *testing.T) {
	m := MonthOf(New(2024, time.February, 15))

	if got, want := m.String(), "2024-02"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got, want := m.First(), New(2024, time.February, 1); got != want {
		t.Errorf("First() = %v, want %v", got, want)
	}
	if got, want := m.Last(), New(2024, time.February, 29); got != want {
		t.Errorf("Last() = %v, want %v", got, want)
	}
	if got, want := m.Add(11), NewMonth(2025, time.January); got != want {
		t.Errorf("Add(11) = %v, want %v", got, want)
	}
	if got, want := m.Add(-2), NewMonth(2023, time.December); got != want {
		t.Errorf("Add(-2) = %v, want %v", got, want)
	}
	if !m.Before(m.Add(1)) || !m.Add(1).After(m) {
		t.Error("Before/After are inconsistent")
	}
}

func TestParseMonth(t *testing.T) {
	got, err := ParseMonth("2024-3")
	if err != nil {
		t.Fatalf("ParseMonth() error = %v", err)
	}
	if want := NewMonth(2024, time.March); got != want {
		t.Errorf("ParseMonth() = %v, want %v", got, want)
	}
	if _, err := ParseMonth("March"); err == nil {
		t.Error("ParseMonth(\"March\") should fail")
	}
}

func TestRange_Contains(t *testing.T) {
	r := MonthOf(New(2024, time.March, 1)).Range()
	testCases := []struct {
		on   Date
		want bool
	}{
		{New(2024, time.February, 29), false},
		{New(2024, time.March, 1), true},
		{New(2024, time.March, 31), true},
		{New(2024, time.April, 1), false},
	}
	for _, tc := range testCases {
		if got := r.Contains(tc.on); got != tc.want {
			t.Errorf("%v.Contains(%v) = %v, want %v", r, tc.on, got, tc.want)
		}
	}
	if !(Range{}).Contains(New(1999, time.January, 1)) {
		t.Error("an open range should contain every date")
	}
	if got, want := r.String(), "2024-03"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
