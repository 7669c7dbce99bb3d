package ledger

import "time"

// CategorySet is a lookup set of spend categories. Analyzers take a set
// instead of reading a package-level list so tests can substitute their own.
type CategorySet map[string]struct{}

// NewCategorySet builds a set from the given category names.
func NewCategorySet(names ...string) CategorySet {
	set := make(CategorySet, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}

	return set
}

// Contains reports whether the category belongs to the set.
func (s CategorySet) Contains(category string) bool {
	_, ok := s[category]
	return ok
}

// DefaultEssentialCategories are the spend categories treated as unavoidable
// when estimating daily burn.
func DefaultEssentialCategories() CategorySet {
	return NewCategorySet(
		"Groceries",
		"Food & Dining",
		"Transport",
		"Healthcare",
		"Bills & Utilities",
		"Insurance",
	)
}

// Snapshot is a read-only view of a user's finances at one instant.
// The advisory engine only ever reads it; the persistence layer owns it.
type Snapshot struct {
	Currency    string
	Accounts    []Account
	Expenses    []Expense
	Incomes     []Income
	Debts       []Debt
	Goals       []Goal
	Liabilities []Liability
	Commitments []RecurringCommitment
}

// Liquidity sums balances of accounts that can be spent directly.
// Credit cards are excluded.
func (s *Snapshot) Liquidity() float64 {
	var total float64

	for _, a := range s.Accounts {
		if a.Type != AccountCreditCard {
			total += a.Balance
		}
	}

	return total
}

// InvestedBalance sums balances held in investment accounts.
func (s *Snapshot) InvestedBalance() float64 {
	var total float64

	for _, a := range s.Accounts {
		if a.Type == AccountInvestment {
			total += a.Balance
		}
	}

	return total
}

// MonthlyIncome is the trailing 30-day income total, transfers excluded.
func (s *Snapshot) MonthlyIncome(today time.Time) float64 {
	cutoff := today.AddDate(0, 0, -30)

	var total float64

	for _, in := range s.Incomes {
		if !in.IsTransfer && !in.Date.Before(cutoff) && !in.Date.After(today) {
			total += in.Amount
		}
	}

	return total
}

// MonthlyExpense is the trailing 30-day expense total, transfers excluded.
func (s *Snapshot) MonthlyExpense(today time.Time) float64 {
	cutoff := today.AddDate(0, 0, -30)

	var total float64

	for _, e := range s.Expenses {
		if !e.IsTransfer && !e.Date.Before(cutoff) && !e.Date.After(today) {
			total += e.Amount
		}
	}

	return total
}

// TotalEMI sums the monthly installments of active liabilities.
func (s *Snapshot) TotalEMI() float64 {
	var total float64

	for _, l := range s.Liabilities {
		if l.Active {
			total += l.EMIAmount
		}
	}

	return total
}
