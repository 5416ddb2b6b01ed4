package pricing

import (
	"errors"
	"math"
)

var ErrInvalidLoanTerms = errors.New("invalid loan terms")

// Schedule is the priced outcome of a loan: equal monthly payments that
// retire principal plus interest over the term.
type Schedule struct {
	MonthlyPayment float64
	TotalAmount    float64
	TotalInterest  float64
}

// Amortize computes the annuity schedule for principal at annualRatePercent
// over termMonths.
//
// The monthly payment is rounded to the nearest whole currency unit once
// (rounding up instead when nearest would leave the total below the
// principal), and the totals are recomputed from the rounded payment.
// TotalAmount is
// therefore always an exact multiple of MonthlyPayment, so the scheduled
// payments reconcile with no drift; any small remainder is absorbed by the
// final payment, which the payment processor clamps.
func Amortize(principal, annualRatePercent float64, termMonths int) (Schedule, error) {
	if principal <= 0 || termMonths < 1 || annualRatePercent < 0 {
		return Schedule{}, ErrInvalidLoanTerms
	}

	monthlyRate := annualRatePercent / 100 / 12

	var monthly float64
	if monthlyRate == 0 {
		monthly = principal / float64(termMonths)
	} else {
		factor := math.Pow(1+monthlyRate, float64(termMonths))
		monthly = principal * (monthlyRate * factor) / (factor - 1)
	}

	rounded := math.Round(monthly)
	// Rounding down must never leave the schedule short of the principal
	// (tiny principals can even round to a zero payment). The unrounded
	// payment is always >= principal/term, so its ceiling restores
	// total >= principal and a payment of at least one whole unit.
	if rounded*float64(termMonths) < principal {
		rounded = math.Ceil(monthly)
	}
	monthly = rounded
	total := monthly * float64(termMonths)
	return Schedule{
		MonthlyPayment: monthly,
		TotalAmount:    total,
		TotalInterest:  total - principal,
	}, nil
}
