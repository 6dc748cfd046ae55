package cashflow

import (
	"github.com/etnz/cashflow/date"
	"github.com/google/go-cmp/cmp"
)

// JPY is a helper for test to create yen money from const
func JPY(v float64) Money { return M(v, "JPY") }

// EUR is a helper for test to create euro money from const
func EUR(v float64) Money { return M(v, "EUR") }

// NO is a helper for test to create money from const with no currency set
func NO(v float64) Money { return M(v, "") }

// day is a helper for test to parse dates from const
func day(s string) date.Date { return date.MustParse(s) }

// equateMoney compares Money values by amount and currency.
var equateMoney = cmp.Comparer(func(a, b Money) bool { return a.Equal(b) })
