package forecast_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/JosephSijo/finhub/internal/forecast"
	"github.com/JosephSijo/finhub/internal/ledger"
)

var today = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

// burnExpenses produces essential expenses totalling perDay for each of the
// trailing 60 days.
func burnExpenses(perDay float64) []ledger.Expense {
	expenses := make([]ledger.Expense, 0, 60)
	for i := 1; i <= 60; i++ {
		expenses = append(expenses, ledger.Expense{
			Amount:   perDay,
			Category: "Groceries",
			Date:     today.AddDate(0, 0, -i),
		})
	}

	return expenses
}

func TestForecaster_DailyBurn(t *testing.T) {
	f := forecast.New(nil)

	t.Run("MeanOverWindow", func(t *testing.T) {
		got := f.DailyBurn(burnExpenses(200), today)
		assert.InDelta(t, 200, got, 0.01)
	})

	t.Run("IgnoresNonEssential", func(t *testing.T) {
		expenses := []ledger.Expense{
			{Amount: 6000, Category: "Entertainment", Date: today.AddDate(0, 0, -5)},
		}
		assert.Zero(t, f.DailyBurn(expenses, today))
	})

	t.Run("IgnoresTransfersAndOldSpend", func(t *testing.T) {
		expenses := []ledger.Expense{
			{Amount: 6000, Category: "Groceries", Date: today.AddDate(0, 0, -5), IsTransfer: true},
			{Amount: 6000, Category: "Groceries", Date: today.AddDate(0, 0, -90)},
		}
		assert.Zero(t, f.DailyBurn(expenses, today))
	})

	t.Run("CustomCategorySet", func(t *testing.T) {
		custom := forecast.New(ledger.NewCategorySet("Coffee"))
		expenses := []ledger.Expense{
			{Amount: 60, Category: "Coffee", Date: today.AddDate(0, 0, -1)},
		}
		assert.InDelta(t, 1, custom.DailyBurn(expenses, today), 0.001)
	})
}

func TestForecaster_Forecast(t *testing.T) {
	f := forecast.New(nil)

	t.Run("BurnOnlyLowRisk", func(t *testing.T) {
		got := f.Forecast(10000, burnExpenses(200), nil, nil, 10, today)

		assert.Equal(t, 10, got.Days)
		assert.InDelta(t, 8000, got.ProjectedBalance, 0.01)
		assert.InDelta(t, 2000, got.DailyBurnTotal, 0.01)
		assert.Zero(t, got.FixedCommitments)
		assert.Zero(t, got.ExpectedIncome)
		assert.Equal(t, forecast.RiskLow, got.RiskLevel)
	})

	t.Run("NegativeProjectionIsHighRisk", func(t *testing.T) {
		got := f.Forecast(1000, burnExpenses(200), nil, nil, 10, today)

		assert.Less(t, got.ProjectedBalance, 0.0)
		assert.Equal(t, forecast.RiskHigh, got.RiskLevel)
	})

	t.Run("ThinMarginIsMediumRisk", func(t *testing.T) {
		// 2400 - 2000 = 400, below 20% of the current balance.
		got := f.Forecast(2400, burnExpenses(200), nil, nil, 10, today)

		assert.Greater(t, got.ProjectedBalance, 0.0)
		assert.Equal(t, forecast.RiskMedium, got.RiskLevel)
	})

	t.Run("RecurringOutflowsAndInflows", func(t *testing.T) {
		commitments := []ledger.RecurringCommitment{
			{
				Type:      ledger.FlowExpense,
				Amount:    500,
				Frequency: ledger.FreqMonthly,
				StartDate: today.AddDate(0, -6, 0),
				Status:    ledger.CommitmentActive,
			},
			{
				Type:      ledger.FlowIncome,
				Amount:    3000,
				Frequency: ledger.FreqMonthly,
				StartDate: today.AddDate(0, -6, 0),
				Status:    ledger.CommitmentActive,
			},
			{
				Type:      ledger.FlowExpense,
				Amount:    999,
				Frequency: ledger.FreqMonthly,
				StartDate: today.AddDate(0, -6, 0),
				Status:    ledger.CommitmentCancelled,
			},
		}

		got := f.Forecast(10000, nil, commitments, nil, 30, today)

		assert.InDelta(t, 500, got.FixedCommitments, 0.01)
		assert.InDelta(t, 3000, got.ExpectedIncome, 0.01)
		assert.InDelta(t, 12500, got.ProjectedBalance, 0.01)
	})

	t.Run("LiabilityEMIPerThirtyDayBlock", func(t *testing.T) {
		liabilities := []ledger.Liability{
			{EMIAmount: 1000, Active: true},
			{EMIAmount: 999, Active: false},
		}

		got := f.Forecast(10000, nil, nil, liabilities, 45, today)

		// ceil(45/30) = 2 blocks.
		assert.InDelta(t, 2000, got.FixedCommitments, 0.01)
		assert.InDelta(t, 8000, got.ProjectedBalance, 0.01)
	})
}
