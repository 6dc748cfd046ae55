package cashflow

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/etnz/cashflow/date"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// This file contains the JSONL codecs of the records: one JSON object per line,
// human-readable and git-friendly. Each record type has a dedicated local struct
// with the json tags, the domain types stay free of them.

// entryRecord is an Entry as persisted.
type entryRecord struct {
	Date     date.Date `json:"date"`
	Kind     Kind      `json:"type"`
	Amount   Money     `json:"amount"`
	Currency string    `json:"currency,omitempty"`
	Category string    `json:"category,omitempty"`
	Memo     string    `json:"memo,omitempty"`
}

func newEntryRecord(e Entry) entryRecord {
	return entryRecord{Date: e.Date, Kind: e.Kind, Amount: e.Amount, Currency: e.Amount.Currency(), Category: e.Category, Memo: e.Memo}
}

func (r entryRecord) entry() (Entry, error) {
	e := Entry{Date: r.Date, Kind: r.Kind, Amount: r.Amount.in(r.Currency), Category: r.Category, Memo: r.Memo}
	return e, e.Validate()
}

// holdingRecord is a Holding as persisted.
//
// A missing quantity means the price is the value of the whole position.
type holdingRecord struct {
	Name     string    `json:"name"`
	Ticker   string    `json:"ticker,omitempty"`
	Quantity *Quantity `json:"quantity,omitempty"`
	Price    Money     `json:"price"`
	Currency string    `json:"currency,omitempty"`
}

func newHoldingRecord(h Holding) holdingRecord {
	r := holdingRecord{Name: h.Name, Ticker: h.Ticker, Price: h.Price, Currency: h.Price.Currency()}
	if !h.Quantity.Equal(Q(1)) {
		q := h.Quantity
		r.Quantity = &q
	}
	return r
}

func (r holdingRecord) holding() (Holding, error) {
	h := Holding{Name: r.Name, Ticker: r.Ticker, Quantity: Q(1), Price: r.Price.in(r.Currency)}
	if r.Quantity != nil {
		h.Quantity = *r.Quantity
	}
	if h.Quantity.IsNegative() || h.Price.IsNegative() {
		return Holding{}, fmt.Errorf("holding %q: negative quantity or price", r.Name)
	}
	return h, nil
}

// goalRecord is a Goal as persisted.
//
// The target date is kept as a raw string so that an unparsable date is reported
// as invalid goal data rather than as a format error.
type goalRecord struct {
	Name       string `json:"name"`
	Target     Money  `json:"target"`
	Currency   string `json:"currency,omitempty"`
	TargetDate string `json:"target_date,omitempty"`
}

func newGoalRecord(g Goal) goalRecord {
	return goalRecord{Name: g.Name, Target: g.Target, Currency: g.Target.Currency(), TargetDate: g.TargetDate.String()}
}

func (r goalRecord) goal() (Goal, error) { return NewGoal(r.Name, r.Target.in(r.Currency), r.TargetDate) }

// budgetRecord is a Budget as persisted.
type budgetRecord struct {
	Month    date.Month `json:"month"`
	Category string     `json:"category"`
	Amount   Money      `json:"amount"`
	Currency string     `json:"currency,omitempty"`
}

func newBudgetRecord(b Budget) budgetRecord {
	return budgetRecord{Month: b.Month, Category: b.Category, Amount: b.Amount, Currency: b.Amount.Currency()}
}

func (r budgetRecord) budget() (Budget, error) {
	if r.Amount.IsNegative() {
		return Budget{}, fmt.Errorf("budget %q for %s: negative amount", r.Category, r.Month)
	}
	return Budget{Month: r.Month, Category: r.Category, Amount: r.Amount.in(r.Currency)}, nil
}

// decodeLines decodes each non blank line of 'r' into a record of type R, then into a T.
//
// 'name' is for error messages only, errors are reported as name:line.
func decodeLines[R, T any](name string, r io.Reader, convert func(R) (T, error)) ([]T, error) {
	var list []T
	scanner := bufio.NewScanner(r)
	for i := 1; scanner.Scan(); i++ {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var rec R
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("format error in %s:%d: %w", name, i, err)
		}
		v, err := convert(rec)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", name, i, err)
		}
		list = append(list, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read %s: %w", name, err)
	}
	return list, nil
}

// encodeLine writes 'v' as a single JSON line.
func encodeLine(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	return nil
}

// DecodeEntries decodes ledger entries in JSONL format.
func DecodeEntries(r io.Reader) ([]Entry, error) {
	return decodeLines("entries", r, entryRecord.entry)
}

// DecodeHoldings decodes holdings in JSONL format.
func DecodeHoldings(r io.Reader) ([]Holding, error) {
	return decodeLines("holdings", r, holdingRecord.holding)
}

// DecodeGoals decodes goals in JSONL format, keeping their order.
//
// A goal with a missing name, a non positive target or an unparsable target date fails with ErrInvalidGoal.
func DecodeGoals(r io.Reader) ([]Goal, error) {
	return decodeLines("goals", r, goalRecord.goal)
}

// DecodeBudgets decodes budgets in JSONL format.
func DecodeBudgets(r io.Reader) ([]Budget, error) {
	return decodeLines("budgets", r, budgetRecord.budget)
}

// EncodeEntry writes a single entry in JSONL format.
func EncodeEntry(w io.Writer, e Entry) error { return encodeLine(w, newEntryRecord(e)) }

// EncodeHolding writes a single holding in JSONL format.
func EncodeHolding(w io.Writer, h Holding) error { return encodeLine(w, newHoldingRecord(h)) }

// EncodeGoal writes a single goal in JSONL format.
func EncodeGoal(w io.Writer, g Goal) error { return encodeLine(w, newGoalRecord(g)) }

// EncodeBudget writes a single budget in JSONL format.
func EncodeBudget(w io.Writer, b Budget) error { return encodeLine(w, newBudgetRecord(b)) }

// EncodeHoldings writes all holdings in JSONL format.
func EncodeHoldings(w io.Writer, holdings []Holding) error {
	for _, h := range holdings {
		if err := EncodeHolding(w, h); err != nil {
			return err
		}
	}
	return nil
}
