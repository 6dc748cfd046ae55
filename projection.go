package cashflow

// DefaultPeriods is the number of months projected when the caller does not say otherwise.
const DefaultPeriods = 6

// Project extrapolates 'assets' forward by adding 'rate' once per month, for 'periods' months.
//
// The i-th balance (0-based) is assets + (i+1) × rate; the starting balance itself is
// not part of the result. It is purely linear: no compounding and no clamping, a negative
// rate drives balances below zero. No periods (or a negative number) yields an empty projection.
func Project(assets, rate Money, periods int) []Money {
	if periods <= 0 {
		return []Money{}
	}
	projection := make([]Money, 0, periods)
	balance := assets
	for range periods {
		balance = balance.Add(rate)
		projection = append(projection, balance)
	}
	return projection
}
