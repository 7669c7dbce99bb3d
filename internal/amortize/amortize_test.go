package amortize_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/JosephSijo/finhub/internal/amortize"
)

func TestLoan(t *testing.T) {
	today := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	type testCase struct {
		name         string
		principal    float64
		rate         float64
		tenure       int
		start        time.Time
		wantEMI      float64
		wantInterest float64
		wantTotal    float64
		wantOutstand float64
	}

	tests := []testCase{
		{
			name:         "ReducingBalanceReference",
			principal:    100000,
			rate:         12,
			tenure:       12,
			wantEMI:      8884.88,
			wantInterest: 6618.55,
			wantTotal:    106618.55,
			wantOutstand: 100000,
		},
		{
			name:         "ZeroRateIsLinear",
			principal:    12000,
			rate:         0,
			tenure:       12,
			wantEMI:      1000,
			wantInterest: 0,
			wantTotal:    12000,
			wantOutstand: 12000,
		},
		{
			name:         "ZeroRateOutstandingAfterSixPayments",
			principal:    12000,
			rate:         0,
			tenure:       12,
			start:        time.Date(2023, 12, 10, 0, 0, 0, 0, time.UTC),
			wantEMI:      1000,
			wantInterest: 0,
			wantTotal:    12000,
			wantOutstand: 6000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := amortize.Loan(tt.principal, tt.rate, tt.tenure, tt.start, today)

			assert.InDelta(t, tt.wantEMI, got.EMI, 0.01)
			assert.InDelta(t, tt.wantInterest, got.TotalInterest, 0.01)
			assert.InDelta(t, tt.wantTotal, got.TotalPayment, 0.01)
			assert.InDelta(t, tt.wantOutstand, got.Outstanding, 0.01)
		})
	}
}

func TestLoan_InvalidInputsYieldZeros(t *testing.T) {
	today := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, amortize.LoanDetails{}, amortize.Loan(0, 12, 12, time.Time{}, today))
	assert.Equal(t, amortize.LoanDetails{}, amortize.Loan(-500, 12, 12, time.Time{}, today))
	assert.Equal(t, amortize.LoanDetails{}, amortize.Loan(100000, 12, 0, time.Time{}, today))
}

func TestLoan_ClosureDate(t *testing.T) {
	start := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	today := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	got := amortize.Loan(100000, 10, 24, start, today)
	assert.Equal(t, time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC), got.ClosureDate)
}

func TestLoan_FutureStartKeepsFullPrincipal(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	today := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	got := amortize.Loan(50000, 9, 36, start, today)
	assert.InDelta(t, 50000, got.Outstanding, 0.01)
}

func TestInvestment(t *testing.T) {
	got := amortize.Investment(100000, 12, 12)

	assert.InDelta(t, 1000, got.MonthlyYield, 0.01)
	assert.InDelta(t, 12000, got.TotalReturns, 0.01)
	assert.InDelta(t, 112000, got.MaturityValue, 0.01)

	assert.Equal(t, amortize.InvestmentDetails{}, amortize.Investment(0, 12, 12))
	assert.Equal(t, amortize.InvestmentDetails{}, amortize.Investment(1000, 12, 0))
}

func TestAnnualRate_RoundTripsLoan(t *testing.T) {
	today := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	loan := amortize.Loan(100000, 12, 12, time.Time{}, today)

	got := amortize.AnnualRate(100000, loan.EMI, 12)
	assert.InDelta(t, 12, got, 0.05)
}

func TestAnnualRate_NoInterestImplied(t *testing.T) {
	// EMI * tenure equal to principal means a zero-interest schedule.
	assert.Zero(t, amortize.AnnualRate(12000, 1000, 12))
	assert.Zero(t, amortize.AnnualRate(0, 1000, 12))
}

func TestTenure(t *testing.T) {
	today := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	loan := amortize.Loan(100000, 12, 12, time.Time{}, today)

	assert.Equal(t, 12, amortize.Tenure(100000, loan.EMI, 12))
	assert.Equal(t, 12, amortize.Tenure(12000, 1000, 0))

	// EMI that does not cover monthly interest never amortizes.
	assert.Zero(t, amortize.Tenure(100000, 500, 12))
}
