package ledger

import (
	"time"

	"github.com/google/uuid"
)

// FlowType distinguishes money moving in from money moving out.
type FlowType string

const (
	FlowIncome  FlowType = "income"
	FlowExpense FlowType = "expense"
)

// AccountType represents the kind of account holding a balance.
type AccountType string

const (
	AccountBank       AccountType = "bank"
	AccountCash       AccountType = "cash"
	AccountCreditCard AccountType = "credit_card"
	AccountInvestment AccountType = "investment"
)

// Account is a balance-holding account.
type Account struct {
	ID        uuid.UUID
	Name      string
	Type      AccountType
	Balance   float64
	CreatedAt time.Time
}

// Expense is a single outgoing transaction.
type Expense struct {
	ID          uuid.UUID
	Description string
	Amount      float64
	Category    string
	Date        time.Time
	Tags        []string
	AccountID   uuid.UUID
	GoalID      *uuid.UUID
	RecurringID *uuid.UUID
	IsTransfer  bool
	CreatedAt   time.Time
}

// Income is a single incoming transaction.
type Income struct {
	ID          uuid.UUID
	Source      string
	Amount      float64
	Date        time.Time
	Tags        []string
	AccountID   uuid.UUID
	RecurringID *uuid.UUID
	IsRecurring bool
	IsTransfer  bool
	CreatedAt   time.Time
}

// DebtDirection says which way a personal IOU flows.
type DebtDirection string

const (
	DebtBorrowed DebtDirection = "borrowed"
	DebtLent     DebtDirection = "lent"
)

// DebtStatus is the settlement state of a personal IOU.
type DebtStatus string

const (
	DebtPending DebtStatus = "pending"
	DebtSettled DebtStatus = "settled"
)

// Debt is a personal IOU with a named counterparty.
type Debt struct {
	ID         uuid.UUID
	PersonName string
	Amount     float64
	Direction  DebtDirection
	Status     DebtStatus
	Date       time.Time
	CreatedAt  time.Time
}

// GoalStatus is the lifecycle state of a savings goal.
type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
	GoalLeaking   GoalStatus = "leaking"
)

// Goal is a savings target with an optional deadline.
type Goal struct {
	ID                  uuid.UUID
	Name                string
	TargetAmount        float64
	CurrentAmount       float64
	TargetDate          time.Time // zero means no deadline
	MonthlyContribution float64   // planned, 0 if unset
	Discretionary       bool
	Status              GoalStatus
	CreatedAt           time.Time
}

// Progress returns completion as a fraction of the target, 0 when the
// target is unset.
func (g Goal) Progress() float64 {
	if g.TargetAmount <= 0 {
		return 0
	}

	return g.CurrentAmount / g.TargetAmount
}

// Liability is an amortizing loan or credit line.
type Liability struct {
	ID             uuid.UUID
	Name           string
	Type           string // loan, credit_card
	Principal      float64
	Outstanding    float64
	InterestRate   float64 // nominal annual, percent
	EffectiveRate  float64 // annual fraction, 0 when unset
	EMIAmount      float64
	TenureMonths   int
	StartDate      time.Time
	MinPayment     float64
	PenaltyApplied bool
	Active         bool
	CreatedAt      time.Time
}

// AnnualRate returns the effective annual rate as a fraction, falling back
// to the nominal rate when no effective rate is recorded.
func (l Liability) AnnualRate() float64 {
	if l.EffectiveRate > 0 {
		return l.EffectiveRate
	}

	return l.InterestRate / 100
}

// Frequency is the recurrence cadence of a commitment.
type Frequency string

const (
	FreqDaily   Frequency = "daily"
	FreqWeekly  Frequency = "weekly"
	FreqMonthly Frequency = "monthly"
	FreqYearly  Frequency = "yearly"
	FreqCustom  Frequency = "custom"
)

// CommitmentKind distinguishes subscriptions from plain recurring bills.
type CommitmentKind string

const (
	KindBill         CommitmentKind = "bill"
	KindSubscription CommitmentKind = "subscription"
)

// CommitmentStatus is the lifecycle state of a recurring commitment.
type CommitmentStatus string

const (
	CommitmentActive              CommitmentStatus = "active"
	CommitmentCancellationPending CommitmentStatus = "cancellation_pending"
	CommitmentCancelled           CommitmentStatus = "cancelled"
)

// CancellationPolicy is how a provider treats a cancellation request.
type CancellationPolicy string

const (
	PolicyEndOfCycle CancellationPolicy = "end_of_cycle"
	PolicyImmediate  CancellationPolicy = "immediate"
	PolicyProrated   CancellationPolicy = "prorated"
)

// RecurringCommitment is a recurring expense or income rule.
type RecurringCommitment struct {
	ID                 uuid.UUID
	Type               FlowType
	Description        string
	Amount             float64
	Category           string
	AccountID          uuid.UUID
	Frequency          Frequency
	CustomIntervalDays int
	StartDate          time.Time
	EndDate            *time.Time
	DayOfMonth         int // 0 means anchor to StartDate's day
	LiabilityID        *uuid.UUID
	Kind               CommitmentKind
	Status             CommitmentStatus
	Policy             CancellationPolicy
	GraceDays          int
	ManualUsageCount   int
	LastUsedAt         *time.Time
	CreatedAt          time.Time
}
