package service

import (
	"fmt"
	"math"

	"loan-sip-planner/domain"
)

// Project compares repaying a loan against investing what the monthly budget
// leaves after the EMI. The investment keeps growing until the horizon, even
// after the loan is retired; policy decides what is invested from then on.
func Project(
	loan domain.LoanTerms,
	monthlyBudget float64,
	investment domain.InvestmentTerms,
	policy domain.ProjectionPolicy,
) (domain.StrategyResult, error) {

	if investment.HorizonMonths <= 0 {
		return domain.StrategyResult{}, fmt.Errorf("%w: horizon must be positive, got %d", domain.ErrInvalidInput, investment.HorizonMonths)
	}
	if !isFinite(monthlyBudget) || monthlyBudget < 0 {
		return domain.StrategyResult{}, fmt.Errorf("%w: monthly budget must be non-negative, got %v", domain.ErrInvalidInput, monthlyBudget)
	}
	if err := validateGrowth(investment, policy.Timing); err != nil {
		return domain.StrategyResult{}, err
	}
	if !policy.FreedPayment.IsValid() {
		return domain.StrategyResult{}, fmt.Errorf("%w: unknown freed payment policy %q", domain.ErrInvalidInput, policy.FreedPayment)
	}

	amortization, err := Amortize(loan.Principal, loan.AnnualRate, loan.TenureMonths)
	if err != nil {
		return domain.StrategyResult{}, err
	}

	payment := amortization.PeriodicPayment
	surplus := math.Max(0, monthlyBudget-payment)

	afterPayoff := surplus
	if policy.FreedPayment == domain.FreedPaymentRedirect {
		afterPayoff = surplus + payment
	}

	contribution := func(month int) float64 {
		if month <= loan.TenureMonths {
			return surplus
		}
		return afterPayoff
	}

	result := grow(investment, policy.Timing, contribution, amortization.BalanceAt)
	result.EMI = payment
	result.TotalInterest = amortization.TotalInterest()
	result.MonthlyContribution = surplus
	result.NetPosition = result.TotalInvestmentGrowth - result.TotalInterest

	return result, nil
}

// ProjectSIP projects a plain recurring investment of
// investment.MonthlyContribution, with no loan involved.
func ProjectSIP(
	investment domain.InvestmentTerms,
	timing domain.ContributionTiming,
) (domain.StrategyResult, error) {

	if investment.HorizonMonths <= 0 {
		return domain.StrategyResult{}, fmt.Errorf("%w: horizon must be positive, got %d", domain.ErrInvalidInput, investment.HorizonMonths)
	}
	if !isFinite(investment.MonthlyContribution) {
		return domain.StrategyResult{}, fmt.Errorf("%w: monthly contribution must be finite", domain.ErrInvalidInput)
	}
	if err := validateGrowth(investment, timing); err != nil {
		return domain.StrategyResult{}, err
	}

	monthly := math.Max(0, investment.MonthlyContribution)
	result := grow(
		investment,
		timing,
		func(int) float64 { return monthly },
		func(int) float64 { return 0 },
	)
	result.MonthlyContribution = monthly
	result.NetPosition = result.TotalInvestmentGrowth

	return result, nil
}

func validateGrowth(investment domain.InvestmentTerms, timing domain.ContributionTiming) error {
	if investment.HorizonMonths > MaxHorizonMonths {
		return fmt.Errorf("%w: horizon exceeds the maximum of %d months", domain.ErrInvalidInput, MaxHorizonMonths)
	}
	if !isFinite(investment.AnnualRate) || investment.AnnualRate < 0 {
		return fmt.Errorf("%w: investment rate must be non-negative, got %v", domain.ErrInvalidInput, investment.AnnualRate)
	}
	if !timing.IsValid() {
		return fmt.Errorf("%w: unknown contribution timing %q", domain.ErrInvalidInput, timing)
	}
	return nil
}

// grow compounds monthly contributions over the horizon and fills the
// timeline and investment totals of the result.
func grow(
	investment domain.InvestmentTerms,
	timing domain.ContributionTiming,
	contribution func(month int) float64,
	loanBalance func(month int) float64,
) domain.StrategyResult {

	g := investment.AnnualRate / 12
	timeline := make([]domain.TimelinePoint, investment.HorizonMonths)

	value := 0.0
	invested := 0.0
	for m := 1; m <= investment.HorizonMonths; m++ {
		c := contribution(m)
		if timing == domain.ContributionAtStart {
			value = (value + c) * (1 + g)
		} else {
			value = value*(1+g) + c
		}
		invested += c

		timeline[m-1] = domain.TimelinePoint{
			Month:        m,
			LoanBalance:  loanBalance(m),
			SIPValue:     value,
			Contribution: c,
		}
	}

	return domain.StrategyResult{
		TotalPrincipalInvested: invested,
		TotalInvestmentGrowth:  value - invested,
		FinalInvestmentValue:   value,
		Timeline:               timeline,
	}
}
