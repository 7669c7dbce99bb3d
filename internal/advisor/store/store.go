// Package store loads financial snapshots from Postgres and records the
// occurrences the scheduler materializes.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JosephSijo/finhub/internal/ledger"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// LoadSnapshot reads every collection the advisory engines consume.
func (s *Store) LoadSnapshot(ctx context.Context) (*ledger.Snapshot, error) {
	snap := &ledger.Snapshot{Currency: "INR"}

	var err error

	if snap.Accounts, err = s.listAccounts(ctx); err != nil {
		return nil, err
	}

	if snap.Expenses, err = s.listExpenses(ctx); err != nil {
		return nil, err
	}

	if snap.Incomes, err = s.listIncomes(ctx); err != nil {
		return nil, err
	}

	if snap.Debts, err = s.listDebts(ctx); err != nil {
		return nil, err
	}

	if snap.Goals, err = s.listGoals(ctx); err != nil {
		return nil, err
	}

	if snap.Liabilities, err = s.listLiabilities(ctx); err != nil {
		return nil, err
	}

	if snap.Commitments, err = s.listCommitments(ctx); err != nil {
		return nil, err
	}

	return snap, nil
}

func (s *Store) listAccounts(ctx context.Context) ([]ledger.Account, error) {
	query := `SELECT id, name, type, balance, created_at FROM accounts ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	defer rows.Close()

	var accounts []ledger.Account

	for rows.Next() {
		var a ledger.Account

		var typeStr string

		if err := rows.Scan(&a.ID, &a.Name, &typeStr, &a.Balance, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}

		a.Type = ledger.AccountType(typeStr)
		accounts = append(accounts, a)
	}

	return accounts, rows.Err()
}

func scanExpense(sc scanner) (ledger.Expense, error) {
	var e ledger.Expense

	var tags sql.NullString

	if err := sc.Scan(
		&e.ID, &e.Description, &e.Amount, &e.Category, &e.Date, &tags,
		&e.AccountID, &e.GoalID, &e.RecurringID, &e.IsTransfer, &e.CreatedAt,
	); err != nil {
		return ledger.Expense{}, err
	}

	e.Tags = splitTags(tags)

	return e, nil
}

const selectExpenseColumns = `
	id, description, amount, category, date, tags,
	account_id, goal_id, recurring_id, is_transfer, created_at
`

func (s *Store) listExpenses(ctx context.Context) ([]ledger.Expense, error) {
	query := `SELECT ` + selectExpenseColumns + ` FROM expenses ORDER BY date DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	defer rows.Close()

	var expenses []ledger.Expense

	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning expense: %w", err)
		}

		expenses = append(expenses, e)
	}

	return expenses, rows.Err()
}

func (s *Store) listIncomes(ctx context.Context) ([]ledger.Income, error) {
	query := `
		SELECT id, source, amount, date, tags, account_id, recurring_id,
			is_recurring, is_transfer, created_at
		FROM incomes ORDER BY date DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing incomes: %w", err)
	}
	defer rows.Close()

	var incomes []ledger.Income

	for rows.Next() {
		var in ledger.Income

		var tags sql.NullString

		if err := rows.Scan(
			&in.ID, &in.Source, &in.Amount, &in.Date, &tags, &in.AccountID,
			&in.RecurringID, &in.IsRecurring, &in.IsTransfer, &in.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning income: %w", err)
		}

		in.Tags = splitTags(tags)
		incomes = append(incomes, in)
	}

	return incomes, rows.Err()
}

func (s *Store) listDebts(ctx context.Context) ([]ledger.Debt, error) {
	query := `SELECT id, person_name, amount, direction, status, date, created_at
		FROM debts ORDER BY date DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing debts: %w", err)
	}
	defer rows.Close()

	var debts []ledger.Debt

	for rows.Next() {
		var d ledger.Debt

		var direction, status string

		if err := rows.Scan(&d.ID, &d.PersonName, &d.Amount, &direction, &status, &d.Date, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning debt: %w", err)
		}

		d.Direction = ledger.DebtDirection(direction)
		d.Status = ledger.DebtStatus(status)
		debts = append(debts, d)
	}

	return debts, rows.Err()
}

func (s *Store) listGoals(ctx context.Context) ([]ledger.Goal, error) {
	query := `
		SELECT id, name, target_amount, current_amount, target_date,
			monthly_contribution, discretionary, status, created_at
		FROM goals ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing goals: %w", err)
	}
	defer rows.Close()

	var goals []ledger.Goal

	for rows.Next() {
		var g ledger.Goal

		var targetDate sql.NullTime

		var status string

		if err := rows.Scan(
			&g.ID, &g.Name, &g.TargetAmount, &g.CurrentAmount, &targetDate,
			&g.MonthlyContribution, &g.Discretionary, &status, &g.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning goal: %w", err)
		}

		g.TargetDate = targetDate.Time
		g.Status = ledger.GoalStatus(status)
		goals = append(goals, g)
	}

	return goals, rows.Err()
}

func (s *Store) listLiabilities(ctx context.Context) ([]ledger.Liability, error) {
	query := `
		SELECT id, name, type, principal, outstanding, interest_rate, effective_rate,
			emi_amount, tenure_months, start_date, min_payment, penalty_applied, active, created_at
		FROM liabilities ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing liabilities: %w", err)
	}
	defer rows.Close()

	var liabilities []ledger.Liability

	for rows.Next() {
		var l ledger.Liability

		if err := rows.Scan(
			&l.ID, &l.Name, &l.Type, &l.Principal, &l.Outstanding, &l.InterestRate,
			&l.EffectiveRate, &l.EMIAmount, &l.TenureMonths, &l.StartDate,
			&l.MinPayment, &l.PenaltyApplied, &l.Active, &l.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning liability: %w", err)
		}

		liabilities = append(liabilities, l)
	}

	return liabilities, rows.Err()
}

func scanCommitment(sc scanner) (ledger.RecurringCommitment, error) {
	var c ledger.RecurringCommitment

	var flow, freq, kind, status, policy string

	var endDate, lastUsed sql.NullTime

	if err := sc.Scan(
		&c.ID, &flow, &c.Description, &c.Amount, &c.Category, &c.AccountID,
		&freq, &c.CustomIntervalDays, &c.StartDate, &endDate, &c.DayOfMonth,
		&c.LiabilityID, &kind, &status, &policy, &c.GraceDays,
		&c.ManualUsageCount, &lastUsed, &c.CreatedAt,
	); err != nil {
		return ledger.RecurringCommitment{}, err
	}

	c.Type = ledger.FlowType(flow)
	c.Frequency = ledger.Frequency(freq)
	c.Kind = ledger.CommitmentKind(kind)
	c.Status = ledger.CommitmentStatus(status)
	c.Policy = ledger.CancellationPolicy(policy)

	if endDate.Valid {
		c.EndDate = &endDate.Time
	}

	if lastUsed.Valid {
		c.LastUsedAt = &lastUsed.Time
	}

	return c, nil
}

const selectCommitmentColumns = `
	id, type, description, amount, category, account_id,
	frequency, custom_interval_days, start_date, end_date, day_of_month,
	liability_id, kind, status, policy, grace_days,
	manual_usage_count, last_used_at, created_at
`

func (s *Store) listCommitments(ctx context.Context) ([]ledger.RecurringCommitment, error) {
	query := `SELECT ` + selectCommitmentColumns + ` FROM recurring_commitments ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing commitments: %w", err)
	}
	defer rows.Close()

	var commitments []ledger.RecurringCommitment

	for rows.Next() {
		c, err := scanCommitment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning commitment: %w", err)
		}

		commitments = append(commitments, c)
	}

	return commitments, rows.Err()
}

// ActiveCommitments lists the rules the scheduler may still materialize.
func (s *Store) ActiveCommitments(ctx context.Context) ([]ledger.RecurringCommitment, error) {
	query := `SELECT ` + selectCommitmentColumns + `
		FROM recurring_commitments
		WHERE status != 'cancelled'
		ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing active commitments: %w", err)
	}
	defer rows.Close()

	var commitments []ledger.RecurringCommitment

	for rows.Next() {
		c, err := scanCommitment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning commitment: %w", err)
		}

		commitments = append(commitments, c)
	}

	return commitments, rows.Err()
}

// HasOccurrence reports whether the rule already produced a transaction on
// the given date. Used to keep materialization idempotent.
func (s *Store) HasOccurrence(ctx context.Context, c ledger.RecurringCommitment, date time.Time) (bool, error) {
	table := "expenses"
	if c.Type == ledger.FlowIncome {
		table = "incomes"
	}

	query := `SELECT EXISTS (
		SELECT 1 FROM ` + table + ` WHERE recurring_id = $1 AND date = $2
	)`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, c.ID, date).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking occurrence: %w", err)
	}

	return exists, nil
}

// CreateOccurrence inserts the expense or income a rule produces on a date.
func (s *Store) CreateOccurrence(ctx context.Context, c ledger.RecurringCommitment, date time.Time) error {
	if c.Type == ledger.FlowIncome {
		query := `
			INSERT INTO incomes (id, source, amount, date, account_id, recurring_id, is_recurring, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, TRUE, NOW())`

		if _, err := s.db.ExecContext(ctx, query,
			uuid.New(), c.Description, c.Amount, date, c.AccountID, c.ID,
		); err != nil {
			return fmt.Errorf("creating income occurrence: %w", err)
		}

		return nil
	}

	query := `
		INSERT INTO expenses (id, description, amount, category, date, account_id, recurring_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())`

	if _, err := s.db.ExecContext(ctx, query,
		uuid.New(), c.Description, c.Amount, c.Category, date, c.AccountID, c.ID,
	); err != nil {
		return fmt.Errorf("creating expense occurrence: %w", err)
	}

	return nil
}

func splitTags(tags sql.NullString) []string {
	if !tags.Valid || tags.String == "" {
		return nil
	}

	return strings.Split(tags.String, ",")
}
