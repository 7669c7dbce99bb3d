// Package architect decides what matters most right now: a tiered waterfall
// over the full financial snapshot that emits one primary directive, plus an
// independent battery of advisory triggers.
package architect

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/JosephSijo/finhub/internal/ledger"
)

const (
	// Annual inflation assumed when quoting real returns.
	inflationRate = 0.06
	// CAGR assumed for money that could have been invested instead.
	growthCAGR = 0.12
	// Effective annual rate at or above which a liability is treated as
	// high-interest.
	highInterestCutoff = 0.10
	// Share of monthly surplus routed to the primary directive.
	surplusShare = 0.8
	// Emergency buffer target, in months of expenses.
	bufferTargetMonths = 3.0
	// Fallbacks when the snapshot has no history to average.
	defaultMonthlyExpense = 20000.0
	defaultMonthlyIncome  = 50000.0
)

// Allocation is the recommended split of the monthly surplus.
type Allocation struct {
	Survival int
	Leisure  int
}

// TradeOff quantifies what following the directive costs and saves.
type TradeOff struct {
	TimeSavedMonths       int
	PotentialGrowthAmount float64
	ComparisonMessage     string
}

// RealReturn is a nominal return deflated by the inflation assumption.
type RealReturn struct {
	Value   float64
	Message string
}

// Analysis is the architect's complete verdict.
type Analysis struct {
	Priority      int
	Title         string
	Message       string
	Allocation    Allocation
	NextMilestone string
	TradeOff      *TradeOff
	RealReturn    *RealReturn
	Triggers      []Trigger
}

// derived carries the snapshot-level intermediates shared by tiers and
// computed once per call.
type derived struct {
	snap           *ledger.Snapshot
	today          time.Time
	monthlyIncome  float64
	monthlyExpense float64
	surplus        float64
	allocation     float64
	liquidity      float64
	highInterest   []ledger.Liability // sorted by rate, highest first
	pendingIOUs    []ledger.Debt      // borrowed and pending, largest first
	healthScore    float64
}

// tier is one rung of the waterfall: the first predicate that holds builds
// the directive and the evaluation stops.
type tier struct {
	applies func(*derived) bool
	build   func(*derived) Analysis
}

// Tiers in waterfall order. Growth is the fallthrough, not listed here.
var tiers = []tier{
	{applies: hasPendingTrustDebt, build: buildPersonalTrust},
	{applies: hasHighInterestDebt, build: buildDebtLiquidation},
	{applies: lacksInsurance, build: buildInsurance},
	{applies: hasThinBuffer, build: buildBuffer},
}

// Analyze walks the waterfall over the snapshot and returns the first
// directive whose condition holds, with the trigger battery attached.
// healthScore feeds the emergency-buffer estimate (bufferMonths = score/10).
func Analyze(snap *ledger.Snapshot, healthScore float64, today time.Time) Analysis {
	d := derive(snap, healthScore, today)
	triggers := DetectTriggers(snap, today)

	for _, t := range tiers {
		if t.applies(d) {
			a := t.build(d)
			a.Triggers = triggers

			return a
		}
	}

	a := buildGrowth(d)
	a.Triggers = triggers

	return a
}

func derive(snap *ledger.Snapshot, healthScore float64, today time.Time) *derived {
	income := snap.MonthlyIncome(today)
	expense := snap.MonthlyExpense(today)
	surplus := math.Max(0, income-expense)

	var high []ledger.Liability

	for _, l := range snap.Liabilities {
		if l.Active && l.AnnualRate() >= highInterestCutoff {
			high = append(high, l)
		}
	}

	sort.Slice(high, func(i, j int) bool { return high[i].AnnualRate() > high[j].AnnualRate() })

	var ious []ledger.Debt

	for _, debt := range snap.Debts {
		if debt.Direction == ledger.DebtBorrowed && debt.Status == ledger.DebtPending {
			ious = append(ious, debt)
		}
	}

	sort.Slice(ious, func(i, j int) bool { return ious[i].Amount > ious[j].Amount })

	return &derived{
		snap:           snap,
		today:          today,
		monthlyIncome:  income,
		monthlyExpense: expense,
		surplus:        surplus,
		allocation:     surplus * surplusShare,
		liquidity:      snap.Liquidity(),
		highInterest:   high,
		pendingIOUs:    ious,
		healthScore:    healthScore,
	}
}

func hasPendingTrustDebt(d *derived) bool {
	return len(d.pendingIOUs) > 0 && len(d.highInterest) == 0
}

func buildPersonalTrust(d *derived) Analysis {
	top := d.pendingIOUs[0]

	return Analysis{
		Priority: 0,
		Title:    "Priority 0: Honor Personal Trust",
		Message: fmt.Sprintf(
			"You owe %.0f to %s. Personal debts carry no interest but cost trust; settle them before chasing growth.",
			top.Amount, top.PersonName),
		Allocation:    Allocation{Survival: 80, Leisure: 20},
		NextMilestone: fmt.Sprintf("Settle IOU to %s", top.PersonName),
	}
}

func hasHighInterestDebt(d *derived) bool {
	return len(d.highInterest) > 0
}

func buildDebtLiquidation(d *derived) Analysis {
	top := d.highInterest[0]
	ratePct := top.AnnualRate() * 100

	// Months to clear at the bare EMI, against months with the surplus
	// thrown in on top.
	monthsBase := top.Outstanding / 1000
	if top.EMIAmount > 0 {
		monthsBase = top.Outstanding / top.EMIAmount
	}

	monthsAccelerated := monthsBase

	if boosted := top.EMIAmount + d.allocation; boosted > 0 {
		monthsAccelerated = top.Outstanding / boosted
	}

	timeSaved := math.Max(0, monthsBase-monthsAccelerated)

	// What the surplus would have grown to if invested instead.
	monthlyGrowth := growthCAGR / 12
	potentialGrowth := d.allocation * (math.Pow(1+monthlyGrowth, monthsBase) - 1) / monthlyGrowth
	interestSaved := top.Outstanding * top.AnnualRate() * timeSaved / 12

	return Analysis{
		Priority: 0,
		Title:    "Priority 0: Plug the Leak",
		Message: fmt.Sprintf(
			"Your %s is at %.1f%%. Killing this debt is a guaranteed %.1f%% return on your money.",
			top.Name, ratePct, ratePct),
		Allocation:    Allocation{Survival: 80, Leisure: 20},
		NextMilestone: fmt.Sprintf("Liquidate %s", top.Name),
		TradeOff: &TradeOff{
			TimeSavedMonths:       int(math.Round(timeSaved)),
			PotentialGrowthAmount: math.Round(potentialGrowth),
			ComparisonMessage: fmt.Sprintf(
				"Every unit invested loses to %.2f in interest friction. Plugging this saves approximately %.0f in pure interest.",
				ratePct/12, interestSaved),
		},
	}
}

func lacksInsurance(d *derived) bool {
	return !hasInsuranceGoal(d.snap.Goals) && !hasInsuranceExpense(d.snap.Expenses)
}

func buildInsurance(d *derived) Analysis {
	return Analysis{
		Priority: 1,
		Title:    "Priority 1: Secure Survival",
		Message: "You lack visible health or term insurance. " +
			"One health crisis can reset your progress to zero.",
		Allocation:    Allocation{Survival: 80, Leisure: 20},
		NextMilestone: "Establish Health & Term Insurance",
	}
}

func hasThinBuffer(d *derived) bool {
	return d.healthScore/10 < bufferTargetMonths
}

func buildBuffer(d *derived) Analysis {
	bufferMonths := d.healthScore / 10

	monthlyExpense := d.monthlyExpense
	if monthlyExpense <= 0 {
		monthlyExpense = defaultMonthlyExpense
	}

	needed := monthlyExpense * (bufferTargetMonths - bufferMonths)

	divisor := d.allocation
	if divisor <= 0 {
		divisor = 1
	}

	timeToBuild := needed / divisor

	return Analysis{
		Priority: 2,
		Title:    "Priority 2: Build the Buffer",
		Message: fmt.Sprintf(
			"Your current liquid buffer is at %.1f months. We need %.0f months for absolute stability.",
			bufferMonths, bufferTargetMonths),
		Allocation:    Allocation{Survival: 80, Leisure: 20},
		NextMilestone: "3-Month Emergency Fund",
		TradeOff: &TradeOff{
			TimeSavedMonths:       int(math.Round(timeToBuild * 0.5)),
			PotentialGrowthAmount: math.Round(needed * 0.05),
			ComparisonMessage:     "Peace of mind is an unquantifiable asset. Build the buffer first.",
		},
	}
}

func buildGrowth(d *derived) Analysis {
	realReturn := (1+growthCAGR)/(1+inflationRate) - 1

	a := Analysis{
		Priority: 3,
		Title:    "Priority 3: Accelerate Freedom",
		Message: "Survival protocols are nominal. " +
			"It's time to aggressively scale your income-generating assets.",
		Allocation:    Allocation{Survival: 80, Leisure: 20},
		NextMilestone: "Diversified Asset Growth",
	}

	goal := activeGoal(d.snap.Goals)
	if goal == nil {
		return a
	}

	remaining := goal.TargetAmount - goal.CurrentAmount

	var timeSaved float64
	if remaining > 0 && goal.TargetAmount > 0 {
		timeSaved = d.allocation / goal.TargetAmount * 12
	}

	a.TradeOff = &TradeOff{
		TimeSavedMonths:       int(math.Round(timeSaved)),
		PotentialGrowthAmount: math.Round(remaining * growthCAGR),
		ComparisonMessage:     "You are in the Growth Zone. Compounding is your greatest ally now.",
	}
	a.RealReturn = &RealReturn{
		Value: realReturn,
		Message: fmt.Sprintf(
			"Your wealth is outrunning the cost of living by %.1f%%.", realReturn*100),
	}

	return a
}

func activeGoal(goals []ledger.Goal) *ledger.Goal {
	for i := range goals {
		if goals[i].Status == ledger.GoalActive {
			return &goals[i]
		}
	}

	if len(goals) > 0 {
		return &goals[0]
	}

	return nil
}
