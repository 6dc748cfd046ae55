package cashflow

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/etnz/cashflow/date"
)

// ErrInvalidEntry is returned for ledger entries that cannot be recorded.
var ErrInvalidEntry = errors.New("invalid ledger entry")

// Kind tells whether a ledger entry brings money in or takes it out.
type Kind int

const (
	Income Kind = iota
	Expense
)

func (k Kind) String() string {
	switch k {
	case Income:
		return "income"
	case Expense:
		return "expense"
	default:
		return "unknown"
	}
}

// ParseKind parses "income" or "expense" (case insensitive).
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income":
		return Income, nil
	case "expense":
		return Expense, nil
	default:
		return 0, fmt.Errorf("unknown entry kind %q, want income or expense", s)
	}
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Entry is one dated income or expense record of the ledger.
//
// Entries are immutable facts, the engine only reads them.
type Entry struct {
	Date     date.Date
	Kind     Kind
	Amount   Money  // never negative, the Kind gives the direction.
	Category string // optional
	Memo     string // optional
}

// NewIncome creates an income entry.
func NewIncome(on date.Date, amount Money, category, memo string) Entry {
	return Entry{Date: on, Kind: Income, Amount: amount, Category: category, Memo: memo}
}

// NewExpense creates an expense entry.
func NewExpense(on date.Date, amount Money, category, memo string) Entry {
	return Entry{Date: on, Kind: Expense, Amount: amount, Category: category, Memo: memo}
}

// Signed returns the entry's contribution to the net: positive for income, negative for expense.
func (e Entry) Signed() Money {
	if e.Kind == Expense {
		return e.Amount.Neg()
	}
	return e.Amount
}

// Validate checks that the entry can be part of a ledger.
func (e Entry) Validate() error {
	var errs error
	if e.Date.IsZero() {
		errs = errors.Join(errs, errors.New("date is missing"))
	}
	if e.Kind != Income && e.Kind != Expense {
		errs = errors.Join(errs, fmt.Errorf("unknown kind %d", e.Kind))
	}
	if e.Amount.IsNegative() {
		errs = errors.Join(errs, fmt.Errorf("amount %s is negative", e.Amount.Decimal()))
	}
	if errs != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEntry, errs)
	}
	return nil
}

// EntryFilter selects ledger entries. Its zero value selects every entry.
type EntryFilter struct {
	Range    date.Range // zero boundaries are open.
	Kinds    []Kind     // empty for every kind.
	Category string     // case insensitive, Uncategorized selects entries without one.
}

// Match returns true if 'e' is selected by the filter.
func (f EntryFilter) Match(e Entry) bool {
	if !f.Range.Contains(e.Date) {
		return false
	}
	if len(f.Kinds) > 0 && !slices.Contains(f.Kinds, e.Kind) {
		return false
	}
	if f.Category == "" {
		return true
	}
	category := e.Category
	if category == "" {
		category = Uncategorized
	}
	return strings.EqualFold(category, f.Category)
}

// FilterEntries returns the entries selected by 'f', sorted by date.
//
// Entries of the same day keep their ledger order.
func FilterEntries(entries []Entry, f EntryFilter) []Entry {
	var result []Entry
	for _, e := range entries {
		if f.Match(e) {
			result = append(result, e)
		}
	}
	slices.SortStableFunc(result, func(a, b Entry) int {
		switch {
		case a.Date.Before(b.Date):
			return -1
		case b.Date.Before(a.Date):
			return 1
		}
		return 0
	})
	return result
}
