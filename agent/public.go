package agent

import (
	"context"
	"fmt"

	"github.com/etnz/cashflow"
	"github.com/etnz/cashflow/date"
	"github.com/etnz/cashflow/docs"
	"github.com/etnz/cashflow/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user is here primarily to know whether their savings are on track for their goals,
			and what they could change to get there.

			Devise a plan of questions to ask to each experts and come up with the best response to the user's request.
			Figures must come from the Accountant, never make them up.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewAdvisor returns an expert in personal finance grounded with Google Search.
func NewAdvisor() *Expert {
	return &Expert{
		Name: "Advisor",
		Description: `This is a personal finance advisor,
		aware of saving strategies, usual household budgets and financial products.
		Ask the Advisor whenever you need general advice or recent information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert in personal finance. You leverage Google Search to
			ground your assertions in a solid truth.
			You never compute the user's figures yourself, they are given to you.
				`}}},
		},
	}
}

// NewAccountant returns the expert reading the user's records from 'p'.
//
// 'f' configures the forecasts, 'today' is the reference day of all computations.
func NewAccountant(p cashflow.Provider, f *cashflow.Forecaster, today date.Date) *Expert {
	lib := []Function{ForecastFunc(p, f, today), MonthlyFlowsFunc(p, today), TopicFunc()}

	return &Expert{
		Name: "Accountant",
		Description: `This is the Accountant. They are in charge of reading the user's ledger, holdings and goals.
		They compute the savings rate, the projected balances and whether a goal is achievable.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are an accountant in charge of the user's cash-flow records.
				You know how to use the Tools to extract relevant information about the user's savings.
				You are part of a team of experts, yours is everything about the user's figures. They might ask
				you questions in approximative language, figure out what they meant.

				Use the available tools to get
				  - the forecast: monthly net rate, current assets, projected balances and goal diagnosis
				  - the monthly income and expense
				  - the documentation of how figures are computed
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function
type Func struct {
	// Declare this function
	Decl *genai.FunctionDeclaration
	// Call this function
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// ForecastFunc declares the "Forecast" function computing the forecast of the records in 'p'.
func ForecastFunc(p cashflow.Provider, f *cashflow.Forecaster, today date.Date) *Func {
	const name = "Forecast"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: name,
			Description: `Forecast computes the average monthly net rate from the ledger, the current assets
			from the holdings, the projected balance of the next months and whether the user's goal
			is achievable by its target date.

			` + must(docs.GetTopic("forecast")),
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"periods": {
						Type:        genai.TypeInteger,
						Description: fmt.Sprintf("The number of months to project, %d by default.", f.Periods),
					},
					"goal_policy": {
						Type:        genai.TypeString,
						Enum:        []string{"first", "soonest", "shortfall"},
						Description: "How the goal to diagnose is selected when the user has several goals.",
					},
				},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown report of the forecast.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			fc := *f
			periods, err := monthsArg(args, "periods", f.Periods)
			if err != nil {
				return failure(id, name, err)
			}
			fc.Periods = periods
			if policy, ok := args["goal_policy"].(string); ok {
				if fc.Selector, err = cashflow.ParseGoalSelector(policy); err != nil {
					return failure(id, name, err)
				}
			}

			s, err := cashflow.Load(ctx, p)
			if err != nil {
				return failure(id, name, err)
			}
			forecast, err := fc.Forecast(s, today)
			if err != nil {
				return failure(id, name, err)
			}
			return success(id, name, renderer.ForecastMarkdown(forecast))
		},
	}
}

// MonthlyFlowsFunc declares the "MonthlyFlows" function listing the income and expense per month.
func MonthlyFlowsFunc(p cashflow.Provider, today date.Date) *Func {
	const name = "MonthlyFlows"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        name,
			Description: `MonthlyFlows lists the total income, total expense and net of the last months, ending with the current month.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"months": {
						Type:        genai.TypeInteger,
						Description: "The number of months to list, 6 by default.",
					},
				},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown table with one row per month.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			months, err := monthsArg(args, "months", 6)
			if err != nil {
				return failure(id, name, err)
			}
			entries, err := p.Entries(ctx)
			if err != nil {
				return failure(id, name, err)
			}
			flows := cashflow.LastMonths(entries, today, months)
			return success(id, name, renderer.MonthlyMarkdown(flows, cashflow.MonthlyNetRate(entries)))
		},
	}
}

// TopicFunc declares the "Topic" function reading the user documentation.
func TopicFunc() *Func {
	const name = "Topic"
	topics := must(docs.GetAllTopics())
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        name,
			Description: `Topic returns the user documentation about one topic.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"topic": {
						Type:        genai.TypeString,
						Enum:        topics,
						Description: "The topic to read.",
					},
				},
				Required: []string{"topic"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "The documentation in markdown.",
			},
		},
		Func: func(_ context.Context, id string, args map[string]any) *genai.FunctionResponse {
			topic, ok := args["topic"].(string)
			if !ok {
				return failure(id, name, fmt.Errorf("argument 'topic' is not a string as expected but %T", args["topic"]))
			}
			doc, err := docs.GetTopic(topic)
			if err != nil {
				return failure(id, name, err)
			}
			return success(id, name, doc)
		},
	}
}

// monthsArg reads the number of months 'key', or returns 'def' if it is missing.
//
// Numbers are decoded from JSON as float64. The value must be within 0 and cashflow.MaxMonths.
func monthsArg(args map[string]any, key string, def int) (int, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return def, nil
	}
	var n float64
	switch x := v.(type) {
	case float64:
		n = x
	case int:
		n = float64(x)
	default:
		return 0, fmt.Errorf("argument %q is not a number as expected but %T", key, v)
	}
	if n < 0 || n > cashflow.MaxMonths || n != float64(int(n)) {
		return 0, fmt.Errorf("argument %q must be an integer between 0 and %d, got %v", key, cashflow.MaxMonths, v)
	}
	return int(n), nil
}
