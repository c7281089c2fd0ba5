package service

import (
	"fmt"
	"math"

	"loan-sip-planner/domain"
)

// Amortize computes the fixed monthly payment of a loan and its schedule.
// The last month pays off whatever balance is left, so the schedule always
// ends at exactly zero.
func Amortize(
	principal float64,
	annualRate float64,
	tenureMonths int,
) (domain.AmortizationResult, error) {

	if tenureMonths <= 0 {
		return domain.AmortizationResult{}, fmt.Errorf("%w: tenure must be positive, got %d", domain.ErrInvalidInput, tenureMonths)
	}
	if tenureMonths > MaxTermMonths {
		return domain.AmortizationResult{}, fmt.Errorf("%w: tenure exceeds the maximum of %d months", domain.ErrInvalidInput, MaxTermMonths)
	}
	if !isFinite(principal) || principal < 0 {
		return domain.AmortizationResult{}, fmt.Errorf("%w: principal must be non-negative, got %v", domain.ErrInvalidInput, principal)
	}
	if !isFinite(annualRate) || annualRate < 0 {
		return domain.AmortizationResult{}, fmt.Errorf("%w: annual rate must be non-negative, got %v", domain.ErrInvalidInput, annualRate)
	}

	r := annualRate / 12
	n := float64(tenureMonths)

	var payment float64
	switch {
	case principal == 0:
		payment = 0
	case r == 0:
		payment = principal / n
	default:
		growth := math.Pow(1+r, n)
		payment = principal * r * growth / (growth - 1)
	}

	schedule := make([]domain.AmortizationEntry, tenureMonths)
	balance := principal
	for m := 1; m <= tenureMonths; m++ {
		interest := balance * r
		principalPaid := payment - interest
		if m == tenureMonths {
			principalPaid = balance
		}
		balance -= principalPaid

		schedule[m-1] = domain.AmortizationEntry{
			Month:         m,
			Interest:      interest,
			PrincipalPaid: principalPaid,
			Balance:       balance,
		}
	}

	return domain.AmortizationResult{
		PeriodicPayment: payment,
		Schedule:        schedule,
	}, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
