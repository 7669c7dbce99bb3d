// Package stress condenses five weighted risk factors into a single 0-100
// financial stress score.
package stress

import (
	"math"
	"time"

	"github.com/JosephSijo/finhub/internal/forecast"
	"github.com/JosephSijo/finhub/internal/ledger"
)

// Peaks at which each raw factor saturates its 0-100 scale.
const (
	emiRatioPeak   = 0.45 // debt-to-income
	commitmentPeak = 0.70 // fixed costs to income
	volatilityPeak = 1.5  // coefficient of variation
	runwayPeakDays = 90
)

// Weights of the five factors; they sum to 1.0.
const (
	weightEMILoad    = 0.25
	weightCommitment = 0.25
	weightVolatility = 0.20
	weightRunway     = 0.20
	weightGoalDrift  = 0.10
)

const volatilityWindowDays = 60

// Fewer essential expenses than this is too sparse to call volatile.
const minVolatilitySamples = 5

// Level buckets the score.
type Level string

const (
	LevelLow      Level = "low"
	LevelModerate Level = "moderate"
	LevelHigh     Level = "high"
	LevelCritical Level = "critical"
)

// Factors are the five normalized component scores.
type Factors struct {
	EMILoad         int
	CommitmentRatio int
	Volatility      int
	CashRunway      int
	GoalDrift       int
}

// Result is the composite stress verdict.
type Result struct {
	Score   int
	Factors Factors
	Level   Level
	Message string
}

// Scorer computes stress scores. The essential category set is shared with
// the forecaster so burn and volatility agree on what counts as essential.
type Scorer struct {
	essentials ledger.CategorySet
	forecaster *forecast.Forecaster
}

// New returns a Scorer over the given essential categories, defaulting when
// nil.
func New(essentials ledger.CategorySet) *Scorer {
	if essentials == nil {
		essentials = ledger.DefaultEssentialCategories()
	}

	return &Scorer{
		essentials: essentials,
		forecaster: forecast.New(essentials),
	}
}

// Score combines EMI load, commitment ratio, spending volatility, inverted
// cash runway and goal drift into one weighted score.
func (s *Scorer) Score(
	totalBalance, monthlyIncome float64,
	expenses []ledger.Expense,
	commitments []ledger.RecurringCommitment,
	liabilities []ledger.Liability,
	goals []ledger.Goal,
	today time.Time,
) Result {
	var totalEMI float64

	for _, l := range liabilities {
		if l.Active {
			totalEMI += l.EMIAmount
		}
	}

	// With no income at all, both income ratios are treated as fully loaded.
	emiRatio := 1.0
	commitmentRatio := 1.0

	if monthlyIncome > 0 {
		var fixedOutflows float64

		for _, c := range commitments {
			if c.Type == ledger.FlowExpense && c.Status != ledger.CommitmentCancelled {
				fixedOutflows += c.Amount
			}
		}

		emiRatio = totalEMI / monthlyIncome
		commitmentRatio = (fixedOutflows + totalEMI) / monthlyIncome
	}

	emiLoad := normalize(emiRatio, emiRatioPeak)
	commitment := normalize(commitmentRatio, commitmentPeak)
	volatility := s.volatilityScore(expenses, today)

	dailyBurn := s.forecaster.DailyBurn(expenses, today)

	runwayDays := 365.0
	if dailyBurn > 0 {
		runwayDays = totalBalance / dailyBurn
	}

	runway := 100 - normalize(runwayDays, runwayPeakDays)
	drift := goalDriftScore(goals, today)

	score := emiLoad*weightEMILoad +
		commitment*weightCommitment +
		volatility*weightVolatility +
		runway*weightRunway +
		drift*weightGoalDrift

	level, message := classify(score)

	return Result{
		Score: int(math.Round(score)),
		Factors: Factors{
			EMILoad:         int(math.Round(emiLoad)),
			CommitmentRatio: int(math.Round(commitment)),
			Volatility:      int(math.Round(volatility)),
			CashRunway:      int(math.Round(runway)),
			GoalDrift:       int(math.Round(drift)),
		},
		Level:   level,
		Message: message,
	}
}

// volatilityScore is the coefficient of variation of daily essential spend
// over the trailing window, normalized against the volatility peak.
func (s *Scorer) volatilityScore(expenses []ledger.Expense, today time.Time) float64 {
	cutoff := today.AddDate(0, 0, -volatilityWindowDays)
	daily := make(map[string]float64)

	var samples int

	for _, e := range expenses {
		if e.IsTransfer || e.Date.Before(cutoff) || e.Date.After(today) {
			continue
		}

		if !s.essentials.Contains(e.Category) {
			continue
		}

		daily[e.Date.Format(time.DateOnly)] += e.Amount
		samples++
	}

	if samples < minVolatilitySamples {
		return 0
	}

	var sum float64
	for _, v := range daily {
		sum += v
	}

	mean := sum / float64(len(daily))
	if mean == 0 {
		return 0
	}

	var variance float64
	for _, v := range daily {
		variance += (v - mean) * (v - mean)
	}

	variance /= float64(len(daily))
	cv := math.Sqrt(variance) / mean

	return normalize(cv, volatilityPeak)
}

// goalDriftScore is the percentage of active goals that are leaking or past
// their deadline while incomplete.
func goalDriftScore(goals []ledger.Goal, today time.Time) float64 {
	var active, behind int

	for _, g := range goals {
		if g.Status == ledger.GoalCompleted {
			continue
		}

		active++

		overdue := !g.TargetDate.IsZero() && g.TargetDate.Before(today) && g.CurrentAmount < g.TargetAmount
		if g.Status == ledger.GoalLeaking || overdue {
			behind++
		}
	}

	if active == 0 {
		return 0
	}

	return float64(behind) / float64(active) * 100
}

func classify(score float64) (Level, string) {
	switch {
	case score > 75:
		return LevelCritical, "Severe financial pressure detected. Review fixed costs immediately."
	case score > 50:
		return LevelHigh, "High stress levels. Consider building more cash runway."
	case score > 25:
		return LevelModerate, "Moderate turbulence. Watch your discretionary spending."
	default:
		return LevelLow, "Your financial weather is clear. Keep it up!"
	}
}

func normalize(value, peak float64) float64 {
	return math.Min(100, math.Max(0, value/peak*100))
}
