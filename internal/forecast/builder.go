package forecast

import (
	"time"

	"github.com/copperfin/runway/internal/model"
)

// Params are the caller-supplied knobs for one forecast run.
type Params struct {
	AsOf            time.Time // reference date; the horizon starts at its Monday
	ScenarioID      string
	HorizonWeeks    int
	LookbackWeeks   int
	WeeklyRevenue   float64
	StartingBalance *float64 // required; nil fails fast rather than assuming zero
}

// Inputs are the immutable data collections read once up front for a
// run. The engine never mutates them.
type Inputs struct {
	Actuals       []model.CashEvent
	Recurring     []model.RecurringObligation
	DebtRows      []model.DebtPaymentRow
	ExpectedLoans []string
}

// Result is one completed forecast run. Rows are owned by the run and
// never mutated after it returns.
type Result struct {
	ScenarioID      string
	Scenario        model.Scenario
	AsOf            time.Time
	StartingBalance float64
	WeeklyExpense   float64 // unscaled trailing average
	Rows            []model.WeeklyForecastRow
	RunwayWeek      *int // 1-based first week ending below zero; nil if none
	BurnRate        float64
	Flags           []model.RiskFlag
	Warnings        []ConfigurationError
}

// Engine runs weekly cash-flow forecasts. It is stateless apart from
// the injected scenario table; runs for different scenarios share no
// mutable state and may execute concurrently.
type Engine struct {
	resolver *Resolver
}

// NewEngine returns an engine using the given scenario resolver.
func NewEngine(resolver *Resolver) *Engine {
	return &Engine{resolver: resolver}
}

// Run validates params, builds the weekly rows, and derives the cash
// position. All validation happens before any week is computed.
func (e *Engine) Run(p Params, in Inputs) (*Result, error) {
	if err := validate(p); err != nil {
		return nil, err
	}

	scenario, err := e.resolver.Resolve(p.ScenarioID)
	if err != nil {
		return nil, err
	}

	weeks := Horizon(p.AsOf, p.HorizonWeeks)
	weeklyExpense := TrailingWeeklyExpense(in.Actuals, p.AsOf, p.LookbackWeeks)
	recurring, recWarnings := ExpandRecurring(in.Recurring, weeks)
	debt, debtWarnings := ProjectDebt(in.DebtRows, weeks, p.AsOf, in.ExpectedLoans)

	rows := make([]model.WeeklyForecastRow, len(weeks))
	for i, w := range weeks {
		revenue := p.WeeklyRevenue * scenario.RevenueMultiplier
		expenses := weeklyExpense * scenario.ExpenseMultiplier

		rows[i] = model.WeeklyForecastRow{
			WeekNumber:     w.Number,
			WeekStart:      w.Start,
			WeekEnd:        w.End,
			Revenue:        revenue,
			Expenses:       expenses,
			RecurringTotal: recurring[i].Total,
			RecurringNames: recurring[i].Names,
			DebtTotal:      debt[i].Total,
			DebtByType:     debt[i].ByType,
			NetCashFlow:    revenue - expenses + recurring[i].Total + debt[i].Total,
		}
	}

	ChainBalances(rows, *p.StartingBalance)
	runway := RunwayWeek(rows)

	res := &Result{
		ScenarioID:      p.ScenarioID,
		Scenario:        scenario,
		AsOf:            DateOnly(p.AsOf),
		StartingBalance: *p.StartingBalance,
		WeeklyExpense:   weeklyExpense,
		Rows:            rows,
		RunwayWeek:      runway,
		BurnRate:        BurnRate(rows),
		Flags:           AssessRisk(rows, runway),
	}
	res.Warnings = append(res.Warnings, recWarnings...)
	res.Warnings = append(res.Warnings, debtWarnings...)
	return res, nil
}

func validate(p Params) error {
	if p.AsOf.IsZero() {
		return &InvalidInputError{Field: "as_of", Reason: "reference date is required"}
	}
	if p.HorizonWeeks < 1 {
		return &InvalidInputError{Field: "horizon_weeks", Reason: "must be at least 1"}
	}
	if p.LookbackWeeks < 1 {
		return &InvalidInputError{Field: "lookback_weeks", Reason: "must be at least 1"}
	}
	if p.WeeklyRevenue < 0 {
		return &InvalidInputError{Field: "weekly_revenue", Reason: "must not be negative"}
	}
	if p.StartingBalance == nil {
		return &InvalidInputError{Field: "starting_balance", Reason: "required, refusing to assume zero"}
	}
	return nil
}
