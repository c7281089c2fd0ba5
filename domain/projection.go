package domain

// InvestmentTerms describe a recurring investment. MonthlyContribution is
// only read by standalone SIP projections; loan comparisons derive it from
// the budget left after the EMI.
type InvestmentTerms struct {
	MonthlyContribution float64
	AnnualRate          float64
	HorizonMonths       int
}

type FreedPaymentPolicy string

const (
	// FreedPaymentRedirect invests surplus + EMI once the loan is retired.
	FreedPaymentRedirect FreedPaymentPolicy = "redirect"
	// FreedPaymentKeepSurplus keeps investing only the pre-payoff surplus.
	FreedPaymentKeepSurplus FreedPaymentPolicy = "keep-surplus"
)

func (p FreedPaymentPolicy) IsValid() bool {
	return p == FreedPaymentRedirect || p == FreedPaymentKeepSurplus
}

type ContributionTiming string

const (
	ContributionAtEnd   ContributionTiming = "end"
	ContributionAtStart ContributionTiming = "start"
)

func (t ContributionTiming) IsValid() bool {
	return t == ContributionAtEnd || t == ContributionAtStart
}

type ProjectionPolicy struct {
	FreedPayment FreedPaymentPolicy `json:"freedPayment"`
	Timing       ContributionTiming `json:"timing"`
}

// DefaultPolicy redirects the freed EMI and contributes at month end.
func DefaultPolicy() ProjectionPolicy {
	return ProjectionPolicy{
		FreedPayment: FreedPaymentRedirect,
		Timing:       ContributionAtEnd,
	}
}

type TimelinePoint struct {
	Month        int     `json:"month"`
	LoanBalance  float64 `json:"loanBalance"`
	SIPValue     float64 `json:"sipValue"`
	Contribution float64 `json:"contribution"`
}

type StrategyResult struct {
	EMI                    float64         `json:"emi"`
	TotalInterest          float64         `json:"totalInterest"`
	MonthlyContribution    float64         `json:"monthlyContribution"`
	TotalPrincipalInvested float64         `json:"totalPrincipalInvested"`
	TotalInvestmentGrowth  float64         `json:"totalInvestmentGrowth"`
	FinalInvestmentValue   float64         `json:"finalInvestmentValue"`
	NetPosition            float64         `json:"netPosition"`
	Timeline               []TimelinePoint `json:"timeline"`
}
