package cashflow

// Holding is one asset position with an already resolved market price.
type Holding struct {
	Name     string
	Ticker   string // optional
	Quantity Quantity
	Price    Money // price of one unit
}

// NewHolding creates a holding of 'quantity' units priced 'price'.
func NewHolding(name string, quantity Quantity, price Money) Holding {
	return Holding{Name: name, Quantity: quantity, Price: price}
}

// NewHoldingValue creates a holding known only by its current total value (cash, savings account).
func NewHoldingValue(name string, value Money) Holding {
	return Holding{Name: name, Quantity: Q(1), Price: value}
}

// Value returns the current market value of the holding: price × quantity.
func (h Holding) Value() Money { return h.Price.Mul(h.Quantity) }

// TotalAssets sums the current market value of all holdings.
//
// No holdings is worth zero.
func TotalAssets(holdings []Holding) Money {
	var total Money
	for _, h := range holdings {
		total = total.Add(h.Value())
	}
	return total
}
