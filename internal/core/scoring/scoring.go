// Package scoring holds the pure loan arithmetic: interest rate,
// flat-interest monthly payment, overdue penalty and the pluggable
// credit score recomputation. Nothing in here touches the database.
package scoring

import (
	"time"
)

const (
	// MaxInterestRate is charged when the credit score is zero.
	MaxInterestRate = 100.0

	// PenaltyPerOverdueDay accrues for every day a payment is late.
	PenaltyPerOverdueDay = 0.1
)

// InterestRate computes the flat interest rate (percent) for a user.
// riskScore/creditScore*100, never negative. A zero credit score gets
// the maximum rate instead of a division by zero.
func InterestRate(creditScore, riskScore int) float64 {
	if creditScore == 0 {
		return MaxInterestRate
	}
	rate := float64(riskScore) / float64(creditScore) * 100
	if rate < 0 {
		return 0
	}
	return rate
}

// MonthsBetween returns the number of whole calendar months between
// application and repayment. Degenerate ranges collapse to 1 so that
// downstream division stays defined.
func MonthsBetween(application, repayment time.Time) int {
	months := (repayment.Year()-application.Year())*12 + int(repayment.Month()) - int(application.Month())
	if months <= 0 {
		return 1
	}
	return months
}

// MonthlyPayment computes the flat-interest monthly installment:
// the whole interest is added to the principal once, then split
// evenly across the months. Never negative.
func MonthlyPayment(amount, interestRate float64, numberOfMonths int) float64 {
	if numberOfMonths <= 0 {
		numberOfMonths = 1
	}
	payment := amount * (1 + interestRate/100) / float64(numberOfMonths)
	if payment < 0 {
		return 0
	}
	return payment
}

// MonthsElapsed returns the number of whole calendar months from
// `from` to `to`, floored at zero. Unlike MonthsBetween there is no
// 1-month floor: a loan in its first month has zero elapsed months.
func MonthsElapsed(from, to time.Time) int {
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if months < 0 {
		return 0
	}
	return months
}

// OverdueDays returns how many days the next expected installment is
// late: days elapsed since applicationDate advanced by the number of
// completed monthly payments. Zero or negative means on schedule.
func OverdueDays(applicationDate time.Time, paymentsCompleted int, now time.Time) int {
	due := applicationDate.AddDate(0, paymentsCompleted, 0)
	return int(now.Sub(due).Hours() / 24)
}

// Penalty computes the overdue penalty for the given number of
// overdue days, never negative.
func Penalty(overdueDays int) float64 {
	penalty := PenaltyPerOverdueDay * float64(overdueDays)
	if penalty < 0 {
		return 0
	}
	return penalty
}
