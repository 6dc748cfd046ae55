package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/etnz/cashflow"
	"github.com/etnz/cashflow/agent"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// AssistCmd is the subcommand for the AI assistant.
type AssistCmd struct{}

// Name returns the name of the command.
func (*AssistCmd) Name() string { return "assist" }

// Synopsis returns a short-one line synopsis of the command.
func (*AssistCmd) Synopsis() string { return "Start an interactive session with the AI assistant." }

// Usage returns a long-form usage string.
func (*AssistCmd) Usage() string {
	return `assist [<question>]:
  Start an interactive session with the AI assistant, about your savings and goals.
  Requires GEMINI_API_KEY.
`
}

// SetFlags sets the flags for the command.
func (*AssistCmd) SetFlags(_ *flag.FlagSet) {}

// Execute executes the command.
func (c *AssistCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if config.GeminiAPIKey == "" {
		fmt.Fprintln(os.Stderr, "Error: GEMINI_API_KEY is not set")
		return subcommands.ExitUsageError
	}
	today, err := referenceDay()
	if err != nil {
		return fail("Error", err)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: config.GeminiAPIKey, Backend: genai.BackendGeminiAPI})
	if err != nil {
		return fail("Error initializing Gemini's client", err)
	}

	forecaster := cashflow.NewForecaster()
	forecaster.Currency = config.Currency

	advisor := agent.NewAdvisor()
	accountant := agent.NewAccountant(openFolder(), forecaster, today)
	accountant.Logger = logger
	a := agent.New(os.Stdout, os.Stdin, advisor, accountant)
	a.Print = func(_ io.Writer, text string) { printMarkdown(text) }

	if err := a.Run(ctx, client, strings.Join(f.Args(), " ")); err != nil {
		return fail("Agent failed", err)
	}
	return subcommands.ExitSuccess
}
