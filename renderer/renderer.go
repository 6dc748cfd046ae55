package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/cashflow"
	"github.com/etnz/cashflow/date"
)

//go:embed templates/*.md
var templates embed.FS

// projectionRow is one projected month.
type projectionRow struct {
	Month   date.Month
	Balance cashflow.Money
}

// forecastView is the data of the forecast templates.
type forecastView struct {
	*cashflow.Forecast
	Rows []projectionRow
}

// ForecastMarkdown renders a forecast to a markdown string.
func ForecastMarkdown(f *cashflow.Forecast) string {
	view := forecastView{Forecast: f}
	start := date.MonthOf(f.Date)
	for i, balance := range f.Projection {
		view.Rows = append(view.Rows, projectionRow{Month: start.Add(i + 1), Balance: balance})
	}
	partials := map[string]string{
		"forecast_summary":    "forecast_summary.md",
		"forecast_projection": "forecast_projection.md",
		"forecast_goal":       "forecast_goal.md",
	}
	return renderTemplate("forecast", "forecast.md", partials, view)
}

// BudgetMarkdown renders the budget status of a month to a markdown string.
func BudgetMarkdown(month date.Month, lines []cashflow.BudgetLine) string {
	view := struct {
		Month date.Month
		Lines []cashflow.BudgetLine
	}{month, lines}
	return renderTemplate("budget", "budget.md", nil, view)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, "templates/"+mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		// An empty file name is a valid case, resulting in an empty template.
		if file != "" {
			var readErr error
			content, readErr = fs.ReadFile(templates, "templates/"+file)
			if readErr != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, readErr)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
