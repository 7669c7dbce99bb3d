// Package goalpace compares a goal's required contribution pace against its
// observed pace and proposes corrective adjustments.
package goalpace

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JosephSijo/finhub/internal/ledger"
)

// behindThreshold marks a goal behind when actual pace is under 80% of the
// required pace.
const behindThreshold = 0.8

// daysPerMonth converts an observed day span into months.
const daysPerMonth = 30.44

// IncreaseSavings raises the monthly contribution to the required rate.
type IncreaseSavings struct {
	NewMonthly  float64
	ExtraNeeded float64
}

// ExtendDeadline pushes the target date to where the current pace completes
// the goal.
type ExtendDeadline struct {
	NewDate    time.Time
	MonthsMore int
}

// ReduceTarget lowers the target to what the current pace can reach by the
// existing deadline.
type ReduceTarget struct {
	NewTarget float64
	Reduction float64
}

// Adjustments are the three corrective options, always computed together.
type Adjustments struct {
	IncreaseSavings IncreaseSavings
	ExtendDeadline  ExtendDeadline
	ReduceTarget    ReduceTarget
}

// Analysis is the pacing verdict for one goal.
type Analysis struct {
	GoalID       uuid.UUID
	RequiredRate float64
	ActualRate   float64
	Drift        float64
	IsBehind     bool
	MonthsLeft   int
	Adjustments  Adjustments
}

// Analyze returns the pacing analysis for a goal, or nil when the goal has
// no positive target or is already completed.
func Analyze(goal ledger.Goal, expenses []ledger.Expense, today time.Time) *Analysis {
	if goal.TargetAmount <= 0 || goal.Status == ledger.GoalCompleted {
		return nil
	}

	remaining := math.Max(0, goal.TargetAmount-goal.CurrentAmount)

	// A passed deadline gets a half-month budget to force urgency.
	monthsLeft := 0.5
	if !goal.TargetDate.IsZero() && goal.TargetDate.After(today) {
		diff := (goal.TargetDate.Year()-today.Year())*12 + int(goal.TargetDate.Month()) - int(today.Month())
		monthsLeft = math.Max(1, float64(diff))
	}

	requiredRate := remaining / monthsLeft
	actualRate := observedRate(goal, expenses)

	drift := 1.0
	if requiredRate > 0 {
		drift = actualRate / requiredRate
	}

	// Extend: months needed to finish at the observed pace.
	monthsNeeded := monthsLeft * 2
	if actualRate > 0 {
		monthsNeeded = remaining / actualRate
	}

	extendDate := today.AddDate(0, int(math.Ceil(monthsNeeded)), 0)

	// A goal ahead of pace would otherwise get a "reduced" target above the
	// current one or an "increase" below the observed rate; clamp both.
	achievable := math.Min(goal.TargetAmount, goal.CurrentAmount+actualRate*monthsLeft)

	return &Analysis{
		GoalID:       goal.ID,
		RequiredRate: math.Round(requiredRate),
		ActualRate:   math.Round(actualRate),
		Drift:        drift,
		IsBehind:     drift < behindThreshold,
		MonthsLeft:   int(math.Round(monthsLeft)),
		Adjustments: Adjustments{
			IncreaseSavings: IncreaseSavings{
				NewMonthly:  math.Round(math.Max(requiredRate, actualRate)),
				ExtraNeeded: math.Max(0, math.Round(requiredRate-actualRate)),
			},
			ExtendDeadline: ExtendDeadline{
				NewDate:    extendDate,
				MonthsMore: int(math.Max(1, math.Ceil(monthsNeeded-monthsLeft))),
			},
			ReduceTarget: ReduceTarget{
				NewTarget: math.Round(achievable),
				Reduction: math.Round(goal.TargetAmount - achievable),
			},
		},
	}
}

// observedRate derives the mean monthly contribution from transactions
// tagged to the goal, over their observed date span. With no tagged history
// it falls back to the planned monthly contribution.
func observedRate(goal ledger.Goal, expenses []ledger.Expense) float64 {
	var tagged []ledger.Expense

	nameTag := strings.ToLower(goal.Name)

	for _, e := range expenses {
		if !hasTag(e.Tags, "goal") {
			continue
		}

		if (e.GoalID != nil && *e.GoalID == goal.ID) || hasTag(e.Tags, nameTag) {
			tagged = append(tagged, e)
		}
	}

	if len(tagged) == 0 {
		return goal.MonthlyContribution
	}

	sort.Slice(tagged, func(i, j int) bool { return tagged[i].Date.Before(tagged[j].Date) })

	span := tagged[len(tagged)-1].Date.Sub(tagged[0].Date)
	days := math.Max(1, span.Hours()/24)
	months := math.Max(0.5, days/daysPerMonth)

	var total float64
	for _, e := range tagged {
		total += e.Amount
	}

	return total / months
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}

	return false
}
