// Package subscription recommends when and whether to cancel a recurring
// subscription, driven by the provider's cancellation policy.
package subscription

import (
	"fmt"
	"time"

	"github.com/JosephSijo/finhub/internal/ledger"
)

// Urgency grades how soon the user must act.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// Action is the recommended move.
type Action string

const (
	ActionWait      Action = "wait"
	ActionCancelNow Action = "cancel_now"
	ActionMonitor   Action = "monitor"
)

// Strategy is the cancellation recommendation for one subscription.
type Strategy struct {
	OptimalDate time.Time
	Reason      string
	Urgency     Urgency
	Savings     float64
	Message     string
	ActionType  Action
}

// Extra safety-margin day on top of the grace period, for timezone and
// payment-gateway slack.
const safetyMarginDays = 1

// A cutoff this close means the renewal is effectively already upon us.
const imminentDays = 2

// Stale usage beyond this many days marks a prorated subscription as unused.
const staleUsageDays = 7

// customCycleDays approximates the billing cycle of custom-frequency rules.
// TODO: use the rule's CustomIntervalDays instead of a flat 28-day cycle.
const customCycleDays = 28

// Advise returns the cancellation strategy for a subscription, or nil when
// the commitment is not a live subscription. An unset policy is treated as
// end-of-cycle.
func Advise(sub ledger.RecurringCommitment, today time.Time) *Strategy {
	if sub.Kind != ledger.KindSubscription {
		return nil
	}

	if sub.Status != ledger.CommitmentActive && sub.Status != ledger.CommitmentCancellationPending {
		return nil
	}

	policy := sub.Policy
	if policy == "" {
		policy = ledger.PolicyEndOfCycle
	}

	nextBilling := NextBillingDate(sub, today)
	cutoff := nextBilling.AddDate(0, 0, -(sub.GraceDays + safetyMarginDays))

	switch policy {
	case ledger.PolicyImmediate:
		// Cancelling kills access instantly, so ride it out to the cutoff.
		return &Strategy{
			OptimalDate: cutoff,
			Reason:      "Retain Access",
			Urgency:     UrgencyMedium,
			Savings:     sub.Amount,
			Message:     fmt.Sprintf("Cancel on %s to keep access as long as possible.", cutoff.Format("Jan 2")),
			ActionType:  ActionMonitor,
		}

	case ledger.PolicyProrated:
		daysSinceUse := 30
		if sub.LastUsedAt != nil {
			daysSinceUse = daysBetween(*sub.LastUsedAt, today)
		}

		if daysSinceUse > staleUsageDays {
			return &Strategy{
				OptimalDate: today,
				Reason:      "Unused / Prorated Refund",
				Urgency:     UrgencyHigh,
				Savings:     sub.Amount,
				Message:     "Refund available! Cancel now to recover funds.",
				ActionType:  ActionCancelNow,
			}
		}

		return &Strategy{
			OptimalDate: today,
			Reason:      "Monitor Usage",
			Urgency:     UrgencyLow,
			Savings:     0,
			Message:     "Usage detected recently. Keep monitoring.",
			ActionType:  ActionMonitor,
		}

	default: // end_of_cycle
		if daysBetween(today, cutoff) <= imminentDays {
			return &Strategy{
				OptimalDate: today,
				Reason:      "Renewal Imminent",
				Urgency:     UrgencyHigh,
				Savings:     sub.Amount,
				Message:     fmt.Sprintf("Cancel immediately to avoid the %.2f charge on %s.", sub.Amount, nextBilling.Format("Jan 2")),
				ActionType:  ActionCancelNow,
			}
		}

		return &Strategy{
			OptimalDate: cutoff,
			Reason:      "Maximize Decision Window",
			Urgency:     UrgencyLow,
			Savings:     sub.Amount,
			Message:     fmt.Sprintf("You have until %s to cancel safely.", cutoff.Format("Jan 2")),
			ActionType:  ActionWait,
		}
	}
}

// NextBillingDate anchors to the subscription's day of month (or its start
// date's day) within the current month, rolling into next month when that
// day has already passed. Custom-frequency rules bill a flat 28 days after
// their last implied cycle start, regardless of their actual interval.
func NextBillingDate(sub ledger.RecurringCommitment, today time.Time) time.Time {
	if sub.Frequency == ledger.FreqCustom {
		elapsed := daysBetween(sub.StartDate, today)
		if elapsed < 0 {
			elapsed = 0
		}

		cycles := elapsed/customCycleDays + 1

		return dateOnly(sub.StartDate).AddDate(0, 0, cycles*customCycleDays)
	}

	day := sub.DayOfMonth
	if day <= 0 {
		day = sub.StartDate.Day()
	}

	next := clampToMonth(today.Year(), today.Month(), day)
	if next.Before(dateOnly(today)) {
		next = clampToMonth(today.Year(), today.Month()+1, day)
	}

	return next
}

func clampToMonth(year int, month time.Month, day int) time.Time {
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if day > last {
		day = last
	}

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(dateOnly(to).Sub(dateOnly(from)).Hours() / 24)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
