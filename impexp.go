package cashflow

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
)

// this file contains functions to import holdings from the exports of a broker or a bank.

// HoldingsQuery locates the holdings in an exported document.
//
// For JSON documents, Items is a JSONPath expression selecting the list of
// positions, and Name, Quantity and Price are JSONPath expressions relative to one
// position (e.g. "$.label"). For XML documents they are etree paths, Items
// selects the position elements (e.g. "//Portfolio/Position") and the others are
// paths relative to it (e.g. "./Name", "./@qty").
//
// An empty Quantity means the Price is the value of the whole position.
type HoldingsQuery struct {
	Format   string // "json" or "xml"
	Items    string
	Name     string
	Quantity string
	Price    string
	Currency string // currency of the prices.
}

// ImportHoldings extracts holdings from the document read from 'r'.
func ImportHoldings(r io.Reader, q HoldingsQuery) ([]Holding, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("could not read holdings document: %w", err)
	}
	format := strings.ToLower(q.Format)
	if format == "" {
		format = "json"
		if t := bytes.TrimSpace(data); len(t) > 0 && t[0] == '<' {
			format = "xml"
		}
	}
	switch format {
	case "json":
		return importJSONHoldings(data, q)
	case "xml":
		return importXMLHoldings(data, q)
	default:
		return nil, fmt.Errorf("unsupported holdings format %q, want json or xml", q.Format)
	}
}

func importJSONHoldings(data []byte, q HoldingsQuery) ([]Holding, error) {
	var jobj any
	if err := json.Unmarshal(data, &jobj); err != nil {
		return nil, fmt.Errorf("invalid JSON document: %w", err)
	}
	jitems, err := jsonpath.Get(q.Items, jobj)
	if err != nil {
		return nil, fmt.Errorf("error selecting %q: %w", q.Items, err)
	}
	items, ok := jitems.([]any)
	if !ok {
		// a single position.
		items = []any{jitems}
	}

	holdings := make([]Holding, 0, len(items))
	for i, item := range items {
		get := func(path string) (string, error) {
			jval, err := jsonpath.Get(path, item)
			if err != nil {
				return "", fmt.Errorf("position %d: error reading %q: %w", i, path, err)
			}
			// jsonpath may return a list of one answer or the answer itself: keep the first one.
			if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
				jval = jlist[0]
			}
			switch v := jval.(type) {
			case string:
				return v, nil
			case float64:
				return strconv.FormatFloat(v, 'f', -1, 64), nil
			default:
				return "", fmt.Errorf("position %d: %q is neither a string nor a number: %v", i, path, jval)
			}
		}
		h, err := newImportedHolding(get, q)
		if err != nil {
			return nil, err
		}
		holdings = append(holdings, h)
	}
	return holdings, nil
}

func importXMLHoldings(data []byte, q HoldingsQuery) ([]Holding, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("invalid XML document: %w", err)
	}
	items := doc.FindElements(q.Items)
	if len(items) == 0 {
		return nil, fmt.Errorf("no position found at %q", q.Items)
	}

	holdings := make([]Holding, 0, len(items))
	for i, item := range items {
		get := func(path string) (string, error) {
			// attributes are selected with a trailing /@name.
			elementPath, attr, isAttr := strings.Cut(path, "/@")
			if isAttr {
				e := item
				if elementPath != "" && elementPath != "." {
					e = item.FindElement(elementPath)
				}
				if e == nil {
					return "", fmt.Errorf("position %d: %q not found", i, path)
				}
				a := e.SelectAttr(attr)
				if a == nil {
					return "", fmt.Errorf("position %d: attribute %q not found", i, path)
				}
				return a.Value, nil
			}
			e := item.FindElement(path)
			if e == nil {
				return "", fmt.Errorf("position %d: %q not found", i, path)
			}
			return e.Text(), nil
		}
		h, err := newImportedHolding(get, q)
		if err != nil {
			return nil, err
		}
		holdings = append(holdings, h)
	}
	return holdings, nil
}

// newImportedHolding builds a holding from the fields read by 'get'.
func newImportedHolding(get func(path string) (string, error), q HoldingsQuery) (Holding, error) {
	name, err := get(q.Name)
	if err != nil {
		return Holding{}, err
	}
	price, err := get(q.Price)
	if err != nil {
		return Holding{}, err
	}
	p, err := parseAmount(price)
	if err != nil {
		return Holding{}, fmt.Errorf("holding %q: invalid price: %w", name, err)
	}
	h := NewHoldingValue(strings.TrimSpace(name), M(p, q.Currency))
	if q.Quantity != "" {
		quantity, err := get(q.Quantity)
		if err != nil {
			return Holding{}, err
		}
		v, err := parseAmount(quantity)
		if err != nil {
			return Holding{}, fmt.Errorf("holding %q: invalid quantity: %w", name, err)
		}
		h.Quantity = Q(v)
	}
	return h, nil
}

// parseAmount parses a decimal number as found in exports: spaces and thousands
// separators are ignored. A single comma not followed by exactly three digits is a
// decimal separator ("12,5").
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	if _, frac, ok := strings.Cut(s, ","); ok && !strings.Contains(s, ".") && !strings.Contains(frac, ",") && len(frac) != 3 {
		s = strings.Replace(s, ",", ".", 1)
	}
	return decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
}
