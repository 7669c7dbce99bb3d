package architect_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JosephSijo/finhub/internal/architect"
	"github.com/JosephSijo/finhub/internal/ledger"
)

var today = time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

// baseSnapshot has a healthy 60k income against 20k of groceries over the
// trailing month, insurance in place, and no debt of any kind.
func baseSnapshot() *ledger.Snapshot {
	return &ledger.Snapshot{
		Currency: "INR",
		Accounts: []ledger.Account{
			{ID: uuid.New(), Type: ledger.AccountBank, Balance: 200000},
		},
		Incomes: []ledger.Income{
			{Source: "Salary", Amount: 60000, IsRecurring: true, Date: today.AddDate(0, 0, -10)},
		},
		Expenses: []ledger.Expense{
			{Description: "Monthly groceries", Amount: 20000, Category: "Groceries", Date: today.AddDate(0, 0, -5)},
		},
		Goals: []ledger.Goal{
			{Name: "Term Insurance Fund", TargetAmount: 50000, CurrentAmount: 50000, Status: ledger.GoalCompleted},
			{Name: "House Downpayment", TargetAmount: 1000000, CurrentAmount: 100000, Status: ledger.GoalActive},
		},
	}
}

func findTrigger(triggers []architect.Trigger, id string) *architect.Trigger {
	for i := range triggers {
		if triggers[i].ID == id {
			return &triggers[i]
		}
	}

	return nil
}

func TestAnalyze_HighInterestDebtOutranksEverything(t *testing.T) {
	snap := baseSnapshot()
	snap.Liabilities = []ledger.Liability{
		{Name: "Credit Card", Type: "credit_card", Outstanding: 60000, InterestRate: 36, EMIAmount: 6000, Active: true},
		{Name: "Home Loan", Type: "loan", Outstanding: 2000000, InterestRate: 8.5, EMIAmount: 18000, Active: true},
	}
	// A pending IOU does not outrank compounding interest.
	snap.Debts = []ledger.Debt{
		{PersonName: "Ravi", Amount: 5000, Direction: ledger.DebtBorrowed, Status: ledger.DebtPending},
	}

	got := architect.Analyze(snap, 80, today)

	assert.Equal(t, 0, got.Priority)
	assert.Contains(t, got.Title, "Plug the Leak")
	assert.Contains(t, got.Message, "Credit Card")
	assert.Contains(t, got.NextMilestone, "Credit Card")

	require.NotNil(t, got.TradeOff)
	assert.Greater(t, got.TradeOff.TimeSavedMonths, 0)
	assert.Greater(t, got.TradeOff.PotentialGrowthAmount, 0.0)
}

func TestAnalyze_PersonalTrustWinsWithoutHighInterest(t *testing.T) {
	snap := baseSnapshot()
	snap.Debts = []ledger.Debt{
		{PersonName: "Ravi", Amount: 5000, Direction: ledger.DebtBorrowed, Status: ledger.DebtPending},
		{PersonName: "Meera", Amount: 15000, Direction: ledger.DebtBorrowed, Status: ledger.DebtPending},
		{PersonName: "Anil", Amount: 80000, Direction: ledger.DebtLent, Status: ledger.DebtPending},
		{PersonName: "Sunil", Amount: 90000, Direction: ledger.DebtBorrowed, Status: ledger.DebtSettled},
	}

	got := architect.Analyze(snap, 80, today)

	assert.Equal(t, 0, got.Priority)
	assert.Contains(t, got.Title, "Honor Personal Trust")
	// Largest pending borrowed IOU leads; lent and settled debts are ignored.
	assert.Equal(t, "Settle IOU to Meera", got.NextMilestone)
}

func TestAnalyze_MissingInsuranceIsPriorityOne(t *testing.T) {
	snap := baseSnapshot()
	snap.Goals = []ledger.Goal{
		{Name: "Vacation", TargetAmount: 100000, CurrentAmount: 10000, Status: ledger.GoalActive},
	}

	got := architect.Analyze(snap, 80, today)

	assert.Equal(t, 1, got.Priority)
	assert.Contains(t, got.Title, "Secure Survival")
	assert.Equal(t, "Establish Health & Term Insurance", got.NextMilestone)
}

func TestAnalyze_ThinBufferIsPriorityTwo(t *testing.T) {
	snap := baseSnapshot()

	// A health score of 20 reads as a two-month buffer.
	got := architect.Analyze(snap, 20, today)

	assert.Equal(t, 2, got.Priority)
	assert.Contains(t, got.Message, "2.0 months")
	assert.Equal(t, "3-Month Emergency Fund", got.NextMilestone)
	require.NotNil(t, got.TradeOff)
}

func TestAnalyze_GrowthFallthrough(t *testing.T) {
	snap := baseSnapshot()

	got := architect.Analyze(snap, 80, today)

	assert.Equal(t, 3, got.Priority)
	assert.Contains(t, got.Title, "Accelerate Freedom")

	require.NotNil(t, got.RealReturn)
	// 12% nominal deflated by 6% inflation.
	assert.InDelta(t, 0.0566, got.RealReturn.Value, 0.0001)

	require.NotNil(t, got.TradeOff)
	assert.Greater(t, got.TradeOff.PotentialGrowthAmount, 0.0)
}

func TestAnalyze_AllocationAlwaysSumsToWhole(t *testing.T) {
	snapshots := map[string]*ledger.Snapshot{
		"growth":    baseSnapshot(),
		"empty":     {},
		"insurance": {Expenses: []ledger.Expense{{Amount: 500, Category: "Shopping", Date: today.AddDate(0, 0, -1)}}},
	}

	for name, snap := range snapshots {
		t.Run(name, func(t *testing.T) {
			got := architect.Analyze(snap, 50, today)
			assert.Equal(t, 100, got.Allocation.Survival+got.Allocation.Leisure)
			assert.NotEmpty(t, got.Title)
			assert.NotEmpty(t, got.Message)
		})
	}
}

func TestDetectTriggers_SafetyBreach(t *testing.T) {
	snap := baseSnapshot()
	snap.Accounts = []ledger.Account{
		{Type: ledger.AccountBank, Balance: 10000},
	}

	triggers := architect.DetectTriggers(snap, today)

	breach := findTrigger(triggers, "safety_breach")
	require.NotNil(t, breach)
	assert.Equal(t, architect.SeverityCritical, breach.Severity)
	assert.Equal(t, architect.TriggerBreach, breach.Type)
}

func TestDetectTriggers_Windfall(t *testing.T) {
	snap := baseSnapshot()
	snap.Incomes = append(snap.Incomes, ledger.Income{
		Source: "Annual bonus",
		Amount: 150000,
		Date:   today.AddDate(0, 0, -2),
	})

	triggers := architect.DetectTriggers(snap, today)

	windfall := findTrigger(triggers, "windfall_alert")
	require.NotNil(t, windfall)
	assert.Equal(t, architect.SeveritySuccess, windfall.Severity)
	assert.Contains(t, windfall.Message, "150000")
}

func TestDetectTriggers_WindfallIgnoresRecurringAndTransfers(t *testing.T) {
	snap := baseSnapshot()
	snap.Incomes = append(snap.Incomes,
		ledger.Income{Source: "Salary", Amount: 200000, IsRecurring: true, Date: today.AddDate(0, 0, -1)},
		ledger.Income{Source: "Self transfer", Amount: 300000, IsTransfer: true, Date: today.AddDate(0, 0, -1)},
	)

	triggers := architect.DetectTriggers(snap, today)
	assert.Nil(t, findTrigger(triggers, "windfall_alert"))
}

func TestDetectTriggers_DebtSpikeOnFreshEMI(t *testing.T) {
	snap := baseSnapshot()
	snap.Expenses = append(snap.Expenses, ledger.Expense{
		Description: "Personal loan EMI",
		Amount:      8000,
		Category:    "EMI",
		Date:        today.AddDate(0, 0, -1),
	})

	triggers := architect.DetectTriggers(snap, today)

	spike := findTrigger(triggers, "debt_spike")
	require.NotNil(t, spike)
	assert.Equal(t, architect.SeverityCritical, spike.Severity)
}

func TestDetectTriggers_InflationAlertOnIdleCash(t *testing.T) {
	snap := baseSnapshot()
	snap.Accounts = []ledger.Account{
		{Type: ledger.AccountBank, Balance: 500000},
	}

	triggers := architect.DetectTriggers(snap, today)

	alert := findTrigger(triggers, "inflation_alert")
	require.NotNil(t, alert)
	assert.Equal(t, architect.SeverityWarning, alert.Severity)
}

func TestDetectTriggers_InvestmentsSuppressInflationAlert(t *testing.T) {
	snap := baseSnapshot()
	snap.Accounts = []ledger.Account{
		{Type: ledger.AccountBank, Balance: 500000},
		{Type: ledger.AccountInvestment, Balance: 200000},
	}

	triggers := architect.DetectTriggers(snap, today)
	assert.Nil(t, findTrigger(triggers, "inflation_alert"))
}

func TestDetectTriggers_DeadlineCloser(t *testing.T) {
	snap := baseSnapshot()
	snap.Goals = append(snap.Goals, ledger.Goal{
		Name:          "New Laptop",
		TargetAmount:  100000,
		CurrentAmount: 95000,
		Status:        ledger.GoalActive,
	})

	triggers := architect.DetectTriggers(snap, today)

	closer := findTrigger(triggers, "deadline_closer")
	require.NotNil(t, closer)
	assert.Contains(t, closer.Message, "New Laptop")
	assert.Equal(t, architect.SeverityInfo, closer.Severity)
}

func TestDetectTriggers_MilestoneShiftOnFundedInsurance(t *testing.T) {
	triggers := architect.DetectTriggers(baseSnapshot(), today)

	milestone := findTrigger(triggers, "milestone_shift")
	require.NotNil(t, milestone)
	assert.Equal(t, architect.SeveritySuccess, milestone.Severity)
}

func TestDetectTriggers_PenaltyPerLiability(t *testing.T) {
	card := ledger.Liability{
		ID: uuid.New(), Name: "Platinum Card", Type: "credit_card",
		Outstanding: 40000, InterestRate: 42, PenaltyApplied: true, Active: true,
	}
	loan := ledger.Liability{
		ID: uuid.New(), Name: "Bike Loan", Type: "loan",
		Outstanding: 30000, InterestRate: 14, PenaltyApplied: true, Active: true,
	}

	snap := baseSnapshot()
	snap.Liabilities = []ledger.Liability{card, loan}

	triggers := architect.DetectTriggers(snap, today)

	cardTrigger := findTrigger(triggers, "penalty_"+card.ID.String())
	require.NotNil(t, cardTrigger)
	assert.Equal(t, "Freeze Card", cardTrigger.ActionLabel)

	loanTrigger := findTrigger(triggers, "penalty_"+loan.ID.String())
	require.NotNil(t, loanTrigger)
	assert.Equal(t, "Immediate Settlement", loanTrigger.ActionLabel)
}

func TestDetectTriggers_QuietSnapshotStaysQuiet(t *testing.T) {
	snap := baseSnapshot()
	// Enough invested cover to avoid the idle-cash check.
	snap.Accounts = append(snap.Accounts, ledger.Account{Type: ledger.AccountInvestment, Balance: 100000})
	// Drop the funded insurance goal so no milestone fires.
	snap.Goals = []ledger.Goal{
		{Name: "Trip to Goa", TargetAmount: 100000, CurrentAmount: 20000, Status: ledger.GoalActive},
	}

	triggers := architect.DetectTriggers(snap, today)

	assert.Nil(t, findTrigger(triggers, "safety_breach"))
	assert.Nil(t, findTrigger(triggers, "debt_spike"))
	assert.Nil(t, findTrigger(triggers, "deadline_closer"))
	assert.Nil(t, findTrigger(triggers, "milestone_shift"))
}
