package subscription_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JosephSijo/finhub/internal/ledger"
	"github.com/JosephSijo/finhub/internal/subscription"
)

var today = time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

func activeSub(policy ledger.CancellationPolicy) ledger.RecurringCommitment {
	return ledger.RecurringCommitment{
		Type:      ledger.FlowExpense,
		Amount:    499,
		Kind:      ledger.KindSubscription,
		Status:    ledger.CommitmentActive,
		Policy:    policy,
		Frequency: ledger.FreqMonthly,
		StartDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestAdvise_NotApplicable(t *testing.T) {
	bill := activeSub(ledger.PolicyEndOfCycle)
	bill.Kind = ledger.KindBill
	assert.Nil(t, subscription.Advise(bill, today))

	cancelled := activeSub(ledger.PolicyEndOfCycle)
	cancelled.Status = ledger.CommitmentCancelled
	assert.Nil(t, subscription.Advise(cancelled, today))
}

func TestAdvise_EndOfCycle(t *testing.T) {
	t.Run("ImminentRenewal", func(t *testing.T) {
		sub := activeSub(ledger.PolicyEndOfCycle)
		sub.DayOfMonth = 11 // bills tomorrow, grace 0

		got := subscription.Advise(sub, today)
		require.NotNil(t, got)

		assert.Equal(t, subscription.UrgencyHigh, got.Urgency)
		assert.Equal(t, subscription.ActionCancelNow, got.ActionType)
		assert.InDelta(t, 499, got.Savings, 0.01)
		assert.Equal(t, today, got.OptimalDate)
	})

	t.Run("ComfortableWindow", func(t *testing.T) {
		sub := activeSub(ledger.PolicyEndOfCycle)
		sub.DayOfMonth = 25

		got := subscription.Advise(sub, today)
		require.NotNil(t, got)

		assert.Equal(t, subscription.UrgencyLow, got.Urgency)
		assert.Equal(t, subscription.ActionWait, got.ActionType)
		// Cutoff is one safety day before the billing date.
		assert.Equal(t, time.Date(2024, 6, 24, 0, 0, 0, 0, time.UTC), got.OptimalDate)
	})

	t.Run("GraceDaysWidenTheCutoff", func(t *testing.T) {
		sub := activeSub(ledger.PolicyEndOfCycle)
		sub.DayOfMonth = 25
		sub.GraceDays = 5

		got := subscription.Advise(sub, today)
		require.NotNil(t, got)
		assert.Equal(t, time.Date(2024, 6, 19, 0, 0, 0, 0, time.UTC), got.OptimalDate)
	})

	t.Run("UnsetPolicyDefaultsToEndOfCycle", func(t *testing.T) {
		sub := activeSub("")
		sub.DayOfMonth = 25

		got := subscription.Advise(sub, today)
		require.NotNil(t, got)
		assert.Equal(t, subscription.ActionWait, got.ActionType)
	})
}

func TestAdvise_Immediate(t *testing.T) {
	sub := activeSub(ledger.PolicyImmediate)
	sub.DayOfMonth = 25

	got := subscription.Advise(sub, today)
	require.NotNil(t, got)

	assert.Equal(t, subscription.UrgencyMedium, got.Urgency)
	assert.Equal(t, subscription.ActionMonitor, got.ActionType)
	assert.Equal(t, time.Date(2024, 6, 24, 0, 0, 0, 0, time.UTC), got.OptimalDate)
}

func TestAdvise_Prorated(t *testing.T) {
	t.Run("StaleUsageMeansRefund", func(t *testing.T) {
		sub := activeSub(ledger.PolicyProrated)
		lastUsed := today.AddDate(0, 0, -20)
		sub.LastUsedAt = &lastUsed

		got := subscription.Advise(sub, today)
		require.NotNil(t, got)

		assert.Equal(t, subscription.UrgencyHigh, got.Urgency)
		assert.Equal(t, subscription.ActionCancelNow, got.ActionType)
		assert.InDelta(t, 499, got.Savings, 0.01)
	})

	t.Run("NoUsageRecordCountsAsStale", func(t *testing.T) {
		sub := activeSub(ledger.PolicyProrated)

		got := subscription.Advise(sub, today)
		require.NotNil(t, got)
		assert.Equal(t, subscription.ActionCancelNow, got.ActionType)
	})

	t.Run("RecentUsageMeansMonitor", func(t *testing.T) {
		sub := activeSub(ledger.PolicyProrated)
		lastUsed := today.AddDate(0, 0, -2)
		sub.LastUsedAt = &lastUsed

		got := subscription.Advise(sub, today)
		require.NotNil(t, got)

		assert.Equal(t, subscription.UrgencyLow, got.Urgency)
		assert.Equal(t, subscription.ActionMonitor, got.ActionType)
		assert.Zero(t, got.Savings)
	})
}

func TestNextBillingDate(t *testing.T) {
	t.Run("AnchorStillAhead", func(t *testing.T) {
		sub := activeSub(ledger.PolicyEndOfCycle) // starts on the 15th
		got := subscription.NextBillingDate(sub, today)
		assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("AnchorPassedRollsToNextMonth", func(t *testing.T) {
		sub := activeSub(ledger.PolicyEndOfCycle)
		sub.DayOfMonth = 5

		got := subscription.NextBillingDate(sub, today)
		assert.Equal(t, time.Date(2024, 7, 5, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("AnchorClampsShortMonth", func(t *testing.T) {
		sub := activeSub(ledger.PolicyEndOfCycle)
		sub.DayOfMonth = 31

		got := subscription.NextBillingDate(sub, time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC))
		assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("CustomFrequencyUsesFlatCycle", func(t *testing.T) {
		sub := activeSub(ledger.PolicyEndOfCycle)
		sub.Frequency = ledger.FreqCustom
		sub.CustomIntervalDays = 45 // intentionally ignored
		sub.StartDate = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

		got := subscription.NextBillingDate(sub, today)
		assert.Equal(t, time.Date(2024, 6, 29, 0, 0, 0, 0, time.UTC), got)
	})
}
