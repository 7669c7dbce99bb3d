// Package amortize holds the loan and investment formulas shared by the
// advisory engine and the loan query endpoint.
package amortize

import (
	"math"
	"time"
)

// LoanDetails is the breakdown of an amortizing loan.
type LoanDetails struct {
	EMI           float64
	TotalInterest float64
	TotalPayment  float64
	Outstanding   float64
	ClosureDate   time.Time // zero when no start date was given
}

// InvestmentDetails is the breakdown of a simple-yield investment.
type InvestmentDetails struct {
	MonthlyYield  float64
	TotalReturns  float64
	MaturityValue float64
}

// Loan computes EMI, total interest, total payment and the outstanding
// balance as of today, using the reducing-balance method. A zero rate
// degrades to linear amortization. Non-positive principal or tenure yields
// all-zero details rather than an error. Pass a zero startDate when the
// loan has not been disbursed; the outstanding then equals the principal.
func Loan(principal, annualRatePct float64, tenureMonths int, startDate, today time.Time) LoanDetails {
	if principal <= 0 || tenureMonths <= 0 {
		return LoanDetails{}
	}

	monthlyRate := annualRatePct / 12 / 100
	n := float64(tenureMonths)

	var emi float64
	if monthlyRate == 0 {
		emi = principal / n
	} else {
		pow := math.Pow(1+monthlyRate, n)
		emi = principal * monthlyRate * pow / (pow - 1)
	}

	totalPayment := emi * n
	totalInterest := totalPayment - principal

	outstanding := principal

	var closure time.Time

	if !startDate.IsZero() {
		closure = startDate.AddDate(0, tenureMonths, 0)

		if !startDate.After(today) {
			paid := monthsElapsed(startDate, today)
			if paid > tenureMonths {
				paid = tenureMonths
			}

			if monthlyRate == 0 {
				outstanding = principal - emi*float64(paid)
			} else {
				powN := math.Pow(1+monthlyRate, n)
				powP := math.Pow(1+monthlyRate, float64(paid))
				outstanding = principal * (powN - powP) / (powN - 1)
			}

			outstanding = math.Max(0, outstanding)
		}
	}

	return LoanDetails{
		EMI:           round2(emi),
		TotalInterest: round2(totalInterest),
		TotalPayment:  round2(totalPayment),
		Outstanding:   round2(outstanding),
		ClosureDate:   closure,
	}
}

// Investment computes simple monthly yield, total returns and maturity
// value. Non-positive principal or tenure yields all-zero details.
func Investment(principal, annualRatePct float64, tenureMonths int) InvestmentDetails {
	if principal <= 0 || tenureMonths <= 0 {
		return InvestmentDetails{}
	}

	monthlyYield := principal * (annualRatePct / 100) / 12
	totalReturns := monthlyYield * float64(tenureMonths)

	return InvestmentDetails{
		MonthlyYield:  round2(monthlyYield),
		TotalReturns:  round2(totalReturns),
		MaturityValue: round2(principal + totalReturns),
	}
}

// AnnualRate solves for the annual interest rate (percent) implied by a
// principal, EMI and tenure, via Newton-Raphson on the annuity equation.
// Returns 0 when the inputs describe no positive rate.
func AnnualRate(principal, emi float64, tenureMonths int) float64 {
	if principal <= 0 || emi <= 0 || tenureMonths <= 0 {
		return 0
	}

	n := float64(tenureMonths)
	if emi*n <= principal {
		return 0
	}

	r := 0.1 / 12

	for i := 0; i < 20; i++ {
		pow := math.Pow(1+r, n)
		f := emi*(pow-1) - principal*r*pow
		df := emi*n*math.Pow(1+r, n-1) - principal*(pow+r*n*math.Pow(1+r, n-1))

		next := r - f/df
		if math.Abs(next-r) < 1e-6 {
			r = next
			break
		}

		r = next
	}

	return round2(r * 12 * 100)
}

// Tenure solves for the number of monthly payments needed to amortize the
// principal at the given rate. Returns 0 when the EMI cannot cover the
// monthly interest.
func Tenure(principal, emi, annualRatePct float64) int {
	if principal <= 0 || emi <= 0 || annualRatePct < 0 {
		return 0
	}

	r := annualRatePct / 12 / 100
	if r == 0 {
		return int(math.Ceil(principal / emi))
	}

	if emi <= principal*r {
		return 0
	}

	n := math.Log(emi/(emi-principal*r)) / math.Log(1+r)

	return int(math.Ceil(n))
}

// monthsElapsed counts whole calendar months between two dates, the way a
// lender counts collected installments.
func monthsElapsed(start, today time.Time) int {
	months := (today.Year()-start.Year())*12 + int(today.Month()) - int(start.Month())
	if today.Day() < start.Day() {
		months--
	}

	if months < 0 {
		return 0
	}

	return months
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
