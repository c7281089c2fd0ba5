package service

import (
	"fmt"
	"math"

	"loan-sip-planner/domain"
)

var strategyOrder = []domain.StrategyTag{
	domain.StrategyBalanced,
	domain.StrategyAggressiveEMI,
	domain.StrategyAggressiveSIP,
}

var strategyLabels = map[domain.StrategyTag]struct {
	label       string
	description string
}{
	domain.StrategyBalanced:      {"Balanced Approach", "5-year tenure"},
	domain.StrategyAggressiveEMI: {"Aggressive EMI", "3-4 year tenure"},
	domain.StrategyAggressiveSIP: {"Aggressive SIP", "6-7 year tenure"},
}

// TenureFor maps a strategy to its loan tenure. The mapping is a fixed
// policy table and never looks at the numbers of a particular plan.
func TenureFor(tag domain.StrategyTag) (int, error) {
	switch tag {
	case domain.StrategyBalanced:
		return baseTenureMonths, nil
	case domain.StrategyAggressiveEMI:
		return max(minAggressiveEMIMonths, int(math.Floor(baseTenureMonths*aggressiveEMIRatio))), nil
	case domain.StrategyAggressiveSIP:
		return min(maxAggressiveSIPMonths, int(math.Floor(baseTenureMonths*aggressiveSIPRatio))), nil
	}
	return 0, fmt.Errorf("%w: unknown strategy %q", domain.ErrInvalidInput, tag)
}

// Strategies returns the policy table in display order.
func Strategies() []domain.Strategy {
	out := make([]domain.Strategy, 0, len(strategyOrder))
	for _, tag := range strategyOrder {
		tenure, _ := TenureFor(tag)
		labels := strategyLabels[tag]
		out = append(out, domain.Strategy{
			Tag:          tag,
			Label:        labels.label,
			Description:  labels.description,
			TenureMonths: tenure,
		})
	}
	return out
}

// LoanPrincipal is the financed amount: price minus down payment, never
// below zero.
func LoanPrincipal(price, downPayment float64) float64 {
	return math.Max(0, price-downPayment)
}
