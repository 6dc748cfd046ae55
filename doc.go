// Package cashflow turns a personal ledger of income and expenses, and a snapshot
// of asset holdings, into a forward projection of the assets and a diagnosis of
// whether a financial goal will be met by its target date.
//
// The engine is made of pure functions over in-memory records:
//   - Ledger aggregation: [MonthlyNetRate], [MonthlyFlows], [CategoryTotals] and
//     [BudgetStatus] reduce ledger entries into rates and time series.
//   - Asset valuation: [TotalAssets] sums the market value of holdings.
//   - Projection: [Project] extrapolates the assets linearly, month by month.
//   - Goal diagnostics: [Diagnose] decides whether a goal is on track, delayed or
//     unreachable, and by how much it falls short.
//   - Forecast: a [Forecaster] composes all of the above into one [Forecast].
//
// Nothing is cached: every forecast is recomputed from a [Snapshot] that a
// [Provider] (e.g. a [Folder] of JSONL files) has already read, so concurrent
// forecasts never share mutable state.
//
// This package serves as the foundational logic for the `cfs` command-line tool.
package cashflow
