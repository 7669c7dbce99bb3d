// Package forecast projects a future cash balance from the current balance,
// essential daily burn and upcoming fixed commitments.
package forecast

import (
	"math"
	"time"

	"github.com/JosephSijo/finhub/internal/ledger"
	"github.com/JosephSijo/finhub/internal/recurrence"
)

// burnWindowDays is the trailing window used to estimate essential burn.
const burnWindowDays = 60

// Risk classifies how exposed the projected balance is.
type Risk string

const (
	RiskLow    Risk = "low"
	RiskMedium Risk = "medium"
	RiskHigh   Risk = "high"
)

// Result is a cash-flow projection over a horizon of days.
type Result struct {
	Days             int
	ProjectedBalance float64
	FixedCommitments float64
	DailyBurnTotal   float64
	ExpectedIncome   float64
	RiskLevel        Risk
}

// Forecaster projects balances. The essential category set is configurable
// so callers and tests can substitute their own.
type Forecaster struct {
	essentials ledger.CategorySet
}

// New returns a Forecaster using the given essential categories, or the
// default set when nil.
func New(essentials ledger.CategorySet) *Forecaster {
	if essentials == nil {
		essentials = ledger.DefaultEssentialCategories()
	}

	return &Forecaster{essentials: essentials}
}

// DailyBurn estimates the mean per-day essential spend over the trailing
// 60-day window. Transfers never count as burn.
func (f *Forecaster) DailyBurn(expenses []ledger.Expense, today time.Time) float64 {
	cutoff := today.AddDate(0, 0, -burnWindowDays)

	var total float64

	for _, e := range expenses {
		if e.IsTransfer || e.Date.Before(cutoff) || e.Date.After(today) {
			continue
		}

		if f.essentials.Contains(e.Category) {
			total += e.Amount
		}
	}

	return total / burnWindowDays
}

// Forecast projects the balance over the horizon:
// projected = balance + inflows - outflows - dailyBurn*days.
func (f *Forecaster) Forecast(
	balance float64,
	expenses []ledger.Expense,
	commitments []ledger.RecurringCommitment,
	liabilities []ledger.Liability,
	days int,
	today time.Time,
) Result {
	dailyBurn := f.DailyBurn(expenses, today)
	outflows, inflows := projectCommitments(commitments, liabilities, days, today)

	burnTotal := dailyBurn * float64(days)
	projected := balance + inflows - outflows - burnTotal

	risk := RiskLow
	if projected < 0 {
		risk = RiskHigh
	} else if projected < balance*0.2 {
		risk = RiskMedium
	}

	return Result{
		Days:             days,
		ProjectedBalance: projected,
		FixedCommitments: outflows,
		DailyBurnTotal:   burnTotal,
		ExpectedIncome:   inflows,
		RiskLevel:        risk,
	}
}

// projectCommitments expands every live recurring rule over the horizon and
// adds one EMI charge per liability per elapsed 30-day block.
func projectCommitments(
	commitments []ledger.RecurringCommitment,
	liabilities []ledger.Liability,
	days int,
	today time.Time,
) (outflows, inflows float64) {
	horizon := today.AddDate(0, 0, days)

	for _, c := range commitments {
		if c.Status == ledger.CommitmentCancelled {
			continue
		}

		occurrences := recurrence.Project(recurrence.RuleFor(c), today, horizon)
		total := float64(len(occurrences)) * c.Amount

		if c.Type == ledger.FlowExpense {
			outflows += total
		} else {
			inflows += total
		}
	}

	months := int(math.Ceil(float64(days) / 30))

	for _, l := range liabilities {
		if l.Active && l.EMIAmount > 0 {
			outflows += l.EMIAmount * float64(months)
		}
	}

	return outflows, inflows
}
