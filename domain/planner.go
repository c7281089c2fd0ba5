package domain

type StrategyTag string

const (
	StrategyBalanced      StrategyTag = "balanced"
	StrategyAggressiveEMI StrategyTag = "aggressive-emi"
	StrategyAggressiveSIP StrategyTag = "aggressive-sip"
)

// Strategy is one row of the tenure policy table.
type Strategy struct {
	Tag          StrategyTag `json:"tag"`
	Label        string      `json:"label"`
	Description  string      `json:"description"`
	TenureMonths int         `json:"tenureMonths"`
}

// PlannerInput replaces the mutable form state of a UI: every recomputation
// receives a fresh copy.
type PlannerInput struct {
	CarPrice      float64          `json:"carPrice"`
	DownPayment   float64          `json:"downPayment"`
	LoanRate      float64          `json:"loanRate"`
	MonthlyBudget float64          `json:"monthlyBudget"`
	SIPRate       float64          `json:"sipRate"`
	HorizonMonths int              `json:"horizonMonths"`
	Strategy      StrategyTag      `json:"strategy"`
	Policy        ProjectionPolicy `json:"policy"`
}

func DefaultPlannerInput() PlannerInput {
	return PlannerInput{
		CarPrice:      1_000_000,
		DownPayment:   200_000,
		LoanRate:      0.083,
		MonthlyBudget: 25_000,
		SIPRate:       0.12,
		HorizonMonths: 60,
		Strategy:      StrategyBalanced,
		Policy:        DefaultPolicy(),
	}
}

type Recommendation string

const (
	RecommendationPositive Recommendation = "positive"
	RecommendationNegative Recommendation = "negative"
)

type Guidance struct {
	Recommendation Recommendation `json:"recommendation"`
	Title          string         `json:"title"`
	Value          string         `json:"value"`
	Description    string         `json:"description"`
	Details        string         `json:"details"`
}

type PlanResult struct {
	Strategy      StrategyTag    `json:"strategy"`
	TenureMonths  int            `json:"tenureMonths"`
	LoanPrincipal float64        `json:"loanPrincipal"`
	Result        StrategyResult `json:"result"`
	Guidance      Guidance       `json:"guidance"`
}

type Comparison struct {
	ID    string       `json:"id"`
	Plans []PlanResult `json:"plans"`
	Best  StrategyTag  `json:"best"`
}
