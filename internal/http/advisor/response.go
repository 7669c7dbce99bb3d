package advisor

import (
	"time"

	"github.com/google/uuid"

	"github.com/JosephSijo/finhub/internal/advisor"
	"github.com/JosephSijo/finhub/internal/amortize"
	"github.com/JosephSijo/finhub/internal/architect"
	"github.com/JosephSijo/finhub/internal/forecast"
	"github.com/JosephSijo/finhub/internal/goalpace"
	"github.com/JosephSijo/finhub/internal/stress"
	"github.com/JosephSijo/finhub/internal/subscription"
)

type forecastResponse struct {
	Days             int           `json:"days"`
	ProjectedBalance float64       `json:"projected_balance"`
	FixedCommitments float64       `json:"fixed_commitments"`
	DailyBurnTotal   float64       `json:"daily_burn_total"`
	ExpectedIncome   float64       `json:"expected_income"`
	RiskLevel        forecast.Risk `json:"risk_level"`
}

func toForecastResponse(r forecast.Result) forecastResponse {
	return forecastResponse{
		Days:             r.Days,
		ProjectedBalance: r.ProjectedBalance,
		FixedCommitments: r.FixedCommitments,
		DailyBurnTotal:   r.DailyBurnTotal,
		ExpectedIncome:   r.ExpectedIncome,
		RiskLevel:        r.RiskLevel,
	}
}

type stressFactorsResponse struct {
	EMILoad         int `json:"emi_load"`
	CommitmentRatio int `json:"commitment_ratio"`
	Volatility      int `json:"volatility"`
	CashRunway      int `json:"cash_runway"`
	GoalDrift       int `json:"goal_drift"`
}

type stressResponse struct {
	Score   int                   `json:"score"`
	Factors stressFactorsResponse `json:"factors"`
	Level   stress.Level          `json:"level"`
	Message string                `json:"message"`
}

func toStressResponse(r stress.Result) stressResponse {
	return stressResponse{
		Score: r.Score,
		Factors: stressFactorsResponse{
			EMILoad:         r.Factors.EMILoad,
			CommitmentRatio: r.Factors.CommitmentRatio,
			Volatility:      r.Factors.Volatility,
			CashRunway:      r.Factors.CashRunway,
			GoalDrift:       r.Factors.GoalDrift,
		},
		Level:   r.Level,
		Message: r.Message,
	}
}

type goalAdjustmentsResponse struct {
	IncreaseSavings struct {
		NewMonthly  float64 `json:"new_monthly"`
		ExtraNeeded float64 `json:"extra_needed"`
	} `json:"increase_savings"`
	ExtendDeadline struct {
		NewDate    time.Time `json:"new_date"`
		MonthsMore int       `json:"months_more"`
	} `json:"extend_deadline"`
	ReduceTarget struct {
		NewTarget float64 `json:"new_target"`
		Reduction float64 `json:"reduction"`
	} `json:"reduce_target"`
}

type goalResponse struct {
	GoalID       uuid.UUID               `json:"goal_id"`
	RequiredRate float64                 `json:"required_rate"`
	ActualRate   float64                 `json:"actual_rate"`
	Drift        float64                 `json:"drift"`
	IsBehind     bool                    `json:"is_behind"`
	MonthsLeft   int                     `json:"months_left"`
	Adjustments  goalAdjustmentsResponse `json:"adjustments"`
}

func toGoalResponse(a goalpace.Analysis) goalResponse {
	resp := goalResponse{
		GoalID:       a.GoalID,
		RequiredRate: a.RequiredRate,
		ActualRate:   a.ActualRate,
		Drift:        a.Drift,
		IsBehind:     a.IsBehind,
		MonthsLeft:   a.MonthsLeft,
	}

	resp.Adjustments.IncreaseSavings.NewMonthly = a.Adjustments.IncreaseSavings.NewMonthly
	resp.Adjustments.IncreaseSavings.ExtraNeeded = a.Adjustments.IncreaseSavings.ExtraNeeded
	resp.Adjustments.ExtendDeadline.NewDate = a.Adjustments.ExtendDeadline.NewDate
	resp.Adjustments.ExtendDeadline.MonthsMore = a.Adjustments.ExtendDeadline.MonthsMore
	resp.Adjustments.ReduceTarget.NewTarget = a.Adjustments.ReduceTarget.NewTarget
	resp.Adjustments.ReduceTarget.Reduction = a.Adjustments.ReduceTarget.Reduction

	return resp
}

func toGoalResponseList(analyses []goalpace.Analysis) []goalResponse {
	resp := make([]goalResponse, len(analyses))
	for i, a := range analyses {
		resp[i] = toGoalResponse(a)
	}

	return resp
}

type strategyResponse struct {
	OptimalDate time.Time            `json:"optimal_date"`
	Reason      string               `json:"reason"`
	Urgency     subscription.Urgency `json:"urgency"`
	Savings     float64              `json:"savings"`
	Message     string               `json:"message"`
	ActionType  subscription.Action  `json:"action_type"`
}

type subscriptionResponse struct {
	ID          uuid.UUID        `json:"id"`
	Description string           `json:"description"`
	Amount      float64          `json:"amount"`
	Strategy    strategyResponse `json:"strategy"`
}

func toSubscriptionResponse(a advisor.SubscriptionAdvice) subscriptionResponse {
	return subscriptionResponse{
		ID:          a.Commitment.ID,
		Description: a.Commitment.Description,
		Amount:      a.Commitment.Amount,
		Strategy: strategyResponse{
			OptimalDate: a.Strategy.OptimalDate,
			Reason:      a.Strategy.Reason,
			Urgency:     a.Strategy.Urgency,
			Savings:     a.Strategy.Savings,
			Message:     a.Strategy.Message,
			ActionType:  a.Strategy.ActionType,
		},
	}
}

func toSubscriptionResponseList(advice []advisor.SubscriptionAdvice) []subscriptionResponse {
	resp := make([]subscriptionResponse, len(advice))
	for i, a := range advice {
		resp[i] = toSubscriptionResponse(a)
	}

	return resp
}

type tradeOffResponse struct {
	TimeSavedMonths       int     `json:"time_saved_months"`
	PotentialGrowthAmount float64 `json:"potential_growth_amount"`
	ComparisonMessage     string  `json:"comparison_message"`
}

type realReturnResponse struct {
	Value   float64 `json:"value"`
	Message string  `json:"message"`
}

type triggerResponse struct {
	ID          string                `json:"id"`
	Type        architect.TriggerType `json:"type"`
	Title       string                `json:"title"`
	Message     string                `json:"message"`
	ActionLabel string                `json:"action_label"`
	Severity    architect.Severity    `json:"severity"`
	Explanation string                `json:"explanation"`
}

type architectResponse struct {
	Priority      int                 `json:"priority"`
	Title         string              `json:"title"`
	Message       string              `json:"message"`
	Allocation    allocationResponse  `json:"allocation"`
	NextMilestone string              `json:"next_milestone"`
	TradeOff      *tradeOffResponse   `json:"trade_off,omitempty"`
	RealReturn    *realReturnResponse `json:"real_return,omitempty"`
	Triggers      []triggerResponse   `json:"triggers"`
}

type allocationResponse struct {
	Survival int `json:"survival"`
	Leisure  int `json:"leisure"`
}

func toArchitectResponse(a architect.Analysis) architectResponse {
	resp := architectResponse{
		Priority: a.Priority,
		Title:    a.Title,
		Message:  a.Message,
		Allocation: allocationResponse{
			Survival: a.Allocation.Survival,
			Leisure:  a.Allocation.Leisure,
		},
		NextMilestone: a.NextMilestone,
		Triggers:      make([]triggerResponse, len(a.Triggers)),
	}

	if a.TradeOff != nil {
		resp.TradeOff = &tradeOffResponse{
			TimeSavedMonths:       a.TradeOff.TimeSavedMonths,
			PotentialGrowthAmount: a.TradeOff.PotentialGrowthAmount,
			ComparisonMessage:     a.TradeOff.ComparisonMessage,
		}
	}

	if a.RealReturn != nil {
		resp.RealReturn = &realReturnResponse{
			Value:   a.RealReturn.Value,
			Message: a.RealReturn.Message,
		}
	}

	for i, t := range a.Triggers {
		resp.Triggers[i] = triggerResponse{
			ID:          t.ID,
			Type:        t.Type,
			Title:       t.Title,
			Message:     t.Message,
			ActionLabel: t.ActionLabel,
			Severity:    t.Severity,
			Explanation: t.Explanation,
		}
	}

	return resp
}

type loanResponse struct {
	AnnualRate    float64    `json:"annual_rate"`
	TenureMonths  int        `json:"tenure_months"`
	EMI           float64    `json:"emi"`
	TotalInterest float64    `json:"total_interest"`
	TotalPayment  float64    `json:"total_payment"`
	Outstanding   float64    `json:"outstanding"`
	ClosureDate   *time.Time `json:"closure_date,omitempty"`
}

func toLoanResponse(d amortize.LoanDetails, rate float64, tenure int) loanResponse {
	resp := loanResponse{
		AnnualRate:    rate,
		TenureMonths:  tenure,
		EMI:           d.EMI,
		TotalInterest: d.TotalInterest,
		TotalPayment:  d.TotalPayment,
		Outstanding:   d.Outstanding,
	}

	if !d.ClosureDate.IsZero() {
		resp.ClosureDate = &d.ClosureDate
	}

	return resp
}

type bundleResponse struct {
	GeneratedAt   time.Time              `json:"generated_at"`
	Forecast      forecastResponse       `json:"forecast"`
	Stress        stressResponse         `json:"stress"`
	Goals         []goalResponse         `json:"goals"`
	Subscriptions []subscriptionResponse `json:"subscriptions"`
	Architect     architectResponse      `json:"architect"`
}

func toBundleResponse(b *advisor.Bundle) bundleResponse {
	return bundleResponse{
		GeneratedAt:   b.GeneratedAt,
		Forecast:      toForecastResponse(b.Forecast),
		Stress:        toStressResponse(b.Stress),
		Goals:         toGoalResponseList(b.Goals),
		Subscriptions: toSubscriptionResponseList(b.Subscriptions),
		Architect:     toArchitectResponse(b.Architect),
	}
}
