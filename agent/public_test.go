package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/etnz/cashflow"
	"github.com/etnz/cashflow/date"
	"google.golang.org/genai"
)

// memory is a Provider of in-memory records.
type memory struct {
	cashflow.Snapshot
	err error
}

func (m *memory) Entries(context.Context) ([]cashflow.Entry, error)   { return m.Snapshot.Entries, m.err }
func (m *memory) Holdings(context.Context) ([]cashflow.Holding, error) { return m.Snapshot.Holdings, m.err }
func (m *memory) Goals(context.Context) ([]cashflow.Goal, error)       { return m.Snapshot.Goals, m.err }
func (m *memory) Budgets(context.Context) ([]cashflow.Budget, error)   { return m.Snapshot.Budgets, m.err }

func sample() *memory {
	jpy := func(v float64) cashflow.Money { return cashflow.M(v, "JPY") }
	return &memory{Snapshot: cashflow.Snapshot{
		Entries: []cashflow.Entry{
			cashflow.NewIncome(date.MustParse("2024-01-10"), jpy(300_000), "salary", ""),
			cashflow.NewExpense(date.MustParse("2024-02-10"), jpy(100_000), "rent", ""),
		},
		Holdings: []cashflow.Holding{cashflow.NewHoldingValue("savings", jpy(1_000_000))},
		Goals:    []cashflow.Goal{{Name: "car", Target: jpy(2_000_000), TargetDate: date.MustParse("2024-12-01")}},
	}}
}

var today = date.MustParse("2024-02-15")

func TestForecastFunc(t *testing.T) {
	fn := ForecastFunc(sample(), cashflow.NewForecaster(), today)

	resp := fn.Call(context.Background(), "1", map[string]any{"periods": float64(3)})
	out, ok := resp.Response["output"].(string)
	if !ok {
		t.Fatalf("Forecast() response = %v, want an output", resp.Response)
	}
	if resp.ID != "1" || resp.Name != "Forecast" {
		t.Errorf("Forecast() = %q %q, want 1 Forecast", resp.ID, resp.Name)
	}
	for _, want := range []string{"# Forecast on 2024-02-15", "car"} {
		if !strings.Contains(out, want) {
			t.Errorf("Forecast() output does not contain %q:\n%s", want, out)
		}
	}
}

func TestForecastFunc_errors(t *testing.T) {
	failing := sample()
	failing.err = errors.New("disk failure")

	tests := []struct {
		name string
		p    cashflow.Provider
		args map[string]any
	}{
		{"negative periods", sample(), map[string]any{"periods": float64(-1)}},
		{"fractional periods", sample(), map[string]any{"periods": 1.5}},
		{"string periods", sample(), map[string]any{"periods": "3"}},
		{"too many periods", sample(), map[string]any{"periods": float64(cashflow.MaxMonths + 1)}},
		{"unknown policy", sample(), map[string]any{"goal_policy": "random"}},
		{"provider failure", failing, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ForecastFunc(tt.p, cashflow.NewForecaster(), today).Call(context.Background(), "id", tt.args)
			if _, ok := resp.Response["error"]; !ok {
				t.Errorf("Forecast(%v) = %v, want an error", tt.args, resp.Response)
			}
		})
	}
}

func TestMonthlyFlowsFunc(t *testing.T) {
	resp := MonthlyFlowsFunc(sample(), today).Call(context.Background(), "id", map[string]any{"months": float64(2)})
	out, ok := resp.Response["output"].(string)
	if !ok {
		t.Fatalf("MonthlyFlows() response = %v, want an output", resp.Response)
	}
	for _, want := range []string{"2024-01", "2024-02", "¥300,000"} {
		if !strings.Contains(out, want) {
			t.Errorf("MonthlyFlows() output does not contain %q:\n%s", want, out)
		}
	}
}

func TestMonthlyFlowsFunc_tooManyMonths(t *testing.T) {
	resp := MonthlyFlowsFunc(sample(), today).Call(context.Background(), "id", map[string]any{"months": 1e12})
	if _, ok := resp.Response["error"]; !ok {
		t.Errorf("MonthlyFlows(1e12) = %v, want an error", resp.Response)
	}
}

func TestTopicFunc(t *testing.T) {
	fn := TopicFunc()
	resp := fn.Call(context.Background(), "id", map[string]any{"topic": "goals"})
	if _, ok := resp.Response["output"].(string); !ok {
		t.Errorf("Topic(goals) = %v, want an output", resp.Response)
	}
	resp = fn.Call(context.Background(), "id", map[string]any{"topic": "unknown"})
	if _, ok := resp.Response["error"]; !ok {
		t.Errorf("Topic(unknown) = %v, want an error", resp.Response)
	}
}

func TestNewLibrary(t *testing.T) {
	lib := NewLibrary([]Function{TopicFunc()})

	resp := lib(context.Background(), &genai.FunctionCall{ID: "a", Name: "Topic", Args: map[string]any{"topic": "forecast"}})
	if _, ok := resp.Response["output"]; !ok {
		t.Errorf("library call Topic = %v, want an output", resp.Response)
	}

	resp = lib(context.Background(), &genai.FunctionCall{ID: "b", Name: "Nope"})
	if resp.ID != "b" || resp.Name != "Nope" {
		t.Errorf("library call Nope = %q %q, want b Nope", resp.ID, resp.Name)
	}
	if _, ok := resp.Response["error"]; !ok {
		t.Errorf("library call Nope = %v, want an error", resp.Response)
	}
}

func TestExpert_Call(t *testing.T) {
	e := NewExpert("Accountant", "")
	resp := e.Call(context.Background(), "id", map[string]any{"question": 42})
	if _, ok := resp.Response["error"]; !ok {
		t.Errorf("Call(42) = %v, want an error", resp.Response)
	}
	// not started: no chat.
	resp = e.Call(context.Background(), "id", map[string]any{"question": "how much?"})
	if _, ok := resp.Response["error"]; !ok {
		t.Errorf("Call() on a stopped expert = %v, want an error", resp.Response)
	}
}

func TestNewAccountant(t *testing.T) {
	e := NewAccountant(sample(), cashflow.NewForecaster(), today)
	decls := e.Config.Tools[0].FunctionDeclarations
	var names []string
	for _, d := range decls {
		names = append(names, d.Name)
	}
	if got, want := strings.Join(names, ","), "Forecast,MonthlyFlows,Topic"; got != want {
		t.Errorf("NewAccountant() tools = %s, want %s", got, want)
	}
}
