package architect

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/JosephSijo/finhub/internal/ledger"
)

// TriggerType labels the family of condition a trigger detected.
type TriggerType string

const (
	TriggerBreach    TriggerType = "breach"
	TriggerWindfall  TriggerType = "windfall"
	TriggerSpike     TriggerType = "spike"
	TriggerCloser    TriggerType = "closer"
	TriggerMilestone TriggerType = "milestone"
)

// Severity grades a trigger for presentation.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
	SeveritySuccess  Severity = "success"
)

// Trigger is an advisory annotation attached to the primary directive. It
// never selects the directive itself.
type Trigger struct {
	ID          string
	Type        TriggerType
	Title       string
	Message     string
	ActionLabel string
	Severity    Severity
	Explanation string
}

const (
	// Liquid cover below this many months of spend is a safety breach.
	liquidityFloorMonths = 3
	// A non-recurring income above this share of average income is a windfall.
	windfallIncomeShare = 0.5
	// More high-interest liabilities than this reads as a debt spike.
	debtSpikeCount = 5
	// How many of the most recent expenses are scanned for fresh debt.
	recentExpenseScan = 10
	// Idle liquidity beyond this multiple of monthly spend decays to inflation.
	idleLiquidityFactor = 1.5
	// Hedged share of liquidity below this fraction counts as unprotected.
	hedgedShareFloor = 0.25
	// Goal completion at or past this fraction arms the deadline closer.
	closerProgress = 0.9
	// Minimum surplus for the closer sprint to be worth suggesting.
	closerSurplusFloor = 5000.0
)

// DetectTriggers runs the full battery of advisory checks over the
// snapshot. It is evaluated on every call, independent of which waterfall
// tier wins.
func DetectTriggers(snap *ledger.Snapshot, today time.Time) []Trigger {
	var triggers []Trigger

	monthlyIncome := snap.MonthlyIncome(today)
	monthlyExpense := snap.MonthlyExpense(today)
	surplus := monthlyIncome - monthlyExpense
	liquidity := snap.Liquidity()

	avgExpense := monthlyExpense
	if avgExpense <= 0 {
		avgExpense = defaultMonthlyExpense
	}

	avgIncome := monthlyIncome
	if avgIncome <= 0 {
		avgIncome = defaultMonthlyIncome
	}

	if t := liquidityBreach(liquidity, avgExpense); t != nil {
		triggers = append(triggers, *t)
	}

	if t := windfall(snap.Incomes, avgIncome); t != nil {
		triggers = append(triggers, *t)
	}

	if t := debtSpike(snap, today); t != nil {
		triggers = append(triggers, *t)
	}

	if t := idleCash(snap, liquidity, avgExpense); t != nil {
		triggers = append(triggers, *t)
	}

	if t := deadlineCloser(snap.Goals, surplus); t != nil {
		triggers = append(triggers, *t)
	}

	if t := insuranceMilestone(snap); t != nil {
		triggers = append(triggers, *t)
	}

	triggers = append(triggers, penaltySpikes(snap.Liabilities)...)

	return triggers
}

func liquidityBreach(liquidity, avgExpense float64) *Trigger {
	threshold := avgExpense * liquidityFloorMonths
	if liquidity >= threshold {
		return nil
	}

	return &Trigger{
		ID:          "safety_breach",
		Type:        TriggerBreach,
		Title:       "Safety Breach Detected",
		Message:     "Liquid buffer is below the 3-month survival threshold.",
		ActionLabel: "Pause Optional Goals",
		Severity:    SeverityCritical,
		Explanation: fmt.Sprintf(
			"Your liquidity (%.0f) is below the 3x monthly expense threshold (%.0f). High risk of emergency fund depletion.",
			liquidity, threshold),
	}
}

func windfall(incomes []ledger.Income, avgIncome float64) *Trigger {
	for _, in := range incomes {
		if in.IsRecurring || in.IsTransfer {
			continue
		}

		if in.Amount > avgIncome*windfallIncomeShare {
			return &Trigger{
				ID:          "windfall_alert",
				Type:        TriggerWindfall,
				Title:       "Windfall Detected",
				Message:     fmt.Sprintf("A significant credit of %.0f was detected. This is a rare opportunity for tier-skipping.", in.Amount),
				ActionLabel: "Calculate Strategic Split",
				Severity:    SeveritySuccess,
				Explanation: "Reinvesting this surplus instead of spending it could accelerate your plan by months.",
			}
		}
	}

	return nil
}

func debtSpike(snap *ledger.Snapshot, today time.Time) *Trigger {
	recent := make([]ledger.Expense, len(snap.Expenses))
	copy(recent, snap.Expenses)
	sort.Slice(recent, func(i, j int) bool { return recent[i].Date.After(recent[j].Date) })

	if len(recent) > recentExpenseScan {
		recent = recent[:recentExpenseScan]
	}

	var freshDebt bool

	for _, e := range recent {
		if e.Category == "EMI" || strings.Contains(strings.ToLower(e.Description), "loan") {
			freshDebt = true
			break
		}
	}

	var highInterest int

	for _, l := range snap.Liabilities {
		if l.Active && l.AnnualRate() >= highInterestCutoff {
			highInterest++
		}
	}

	if !freshDebt && highInterest <= debtSpikeCount {
		return nil
	}

	return &Trigger{
		ID:          "debt_spike",
		Type:        TriggerSpike,
		Title:       "Red Alert: Debt Spike",
		Message:     "New liability detected or interest burden increased. Priority shifted to aggressive liquidation.",
		ActionLabel: "Freeze Credit Spending",
		Severity:    SeverityCritical,
		Explanation: fmt.Sprintf(
			"Detected %d high-interest liabilities. Rates above 10%% compound faster than average market growth.",
			highInterest),
	}
}

func idleCash(snap *ledger.Snapshot, liquidity, avgExpense float64) *Trigger {
	if liquidity <= avgExpense*idleLiquidityFactor {
		return nil
	}

	if invested := snap.InvestedBalance(); invested >= liquidity*hedgedShareFloor {
		return nil
	}

	return &Trigger{
		ID:          "inflation_alert",
		Type:        TriggerSpike,
		Title:       "Inflation Alert: Purchasing Power Decay",
		Message:     "Significant idle liquidity detected with low inflation protection.",
		ActionLabel: "Shield Wealth",
		Severity:    SeverityWarning,
		Explanation: fmt.Sprintf(
			"Your liquid cash of %.0f is losing purchasing power at ~6%% annually, approximately %.0f in real value every year.",
			liquidity, liquidity*inflationRate),
	}
}

func deadlineCloser(goals []ledger.Goal, surplus float64) *Trigger {
	if surplus <= closerSurplusFloor {
		return nil
	}

	for _, g := range goals {
		progress := g.Progress()
		if progress >= closerProgress && g.CurrentAmount < g.TargetAmount {
			return &Trigger{
				ID:          "deadline_closer",
				Type:        TriggerCloser,
				Title:       "Deadline Closer",
				Message:     fmt.Sprintf("%q is %.0f%% complete. A focused sprint could finish this goal this month.", g.Name, progress*100),
				ActionLabel: "Execute Sprint",
				Severity:    SeverityInfo,
				Explanation: "Past the 90% threshold a temporary increase in allocation yields disproportionate momentum.",
			}
		}
	}

	return nil
}

func insuranceMilestone(snap *ledger.Snapshot) *Trigger {
	funded := false

	for _, g := range snap.Goals {
		if isInsuranceName(g.Name) && g.CurrentAmount >= g.TargetAmount && g.TargetAmount > 0 {
			funded = true
			break
		}
	}

	if !funded && !hasInsuranceExpense(snap.Expenses) {
		return nil
	}

	return &Trigger{
		ID:          "milestone_shift",
		Type:        TriggerMilestone,
		Title:       "Survival Protocol: Nominal",
		Message:     "Tier 1 (Protection) is verified. More aggressive growth strategies are now unlocked.",
		ActionLabel: "View Growth Strategies",
		Severity:    SeveritySuccess,
		Explanation: "With protection secured, the plan can shift from defense to offense.",
	}
}

func penaltySpikes(liabilities []ledger.Liability) []Trigger {
	var triggers []Trigger

	for _, l := range liabilities {
		if !l.PenaltyApplied {
			continue
		}

		action := "Immediate Settlement"
		if l.Type == "credit_card" {
			action = "Freeze Card"
		}

		triggers = append(triggers, Trigger{
			ID:          "penalty_" + l.ID.String(),
			Type:        TriggerSpike,
			Title:       "Interest Spike: Penalty Detected",
			Message:     fmt.Sprintf("A penalty has been applied to %s. Effective rate is now %.1f%%.", l.Name, l.AnnualRate()*100),
			ActionLabel: action,
			Severity:    SeverityCritical,
			Explanation: "Penalties trigger high-friction wealth decay. Stopping this leak comes first.",
		})
	}

	return triggers
}

func hasInsuranceGoal(goals []ledger.Goal) bool {
	for _, g := range goals {
		if isInsuranceName(g.Name) {
			return true
		}
	}

	return false
}

func hasInsuranceExpense(expenses []ledger.Expense) bool {
	for _, e := range expenses {
		if e.Category == "Healthcare" || e.Category == "Insurance" ||
			strings.Contains(strings.ToLower(e.Description), "insurance") {
			return true
		}
	}

	return false
}

func isInsuranceName(name string) bool {
	return strings.Contains(strings.ToLower(name), "insurance")
}
