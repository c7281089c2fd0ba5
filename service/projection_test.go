package service

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"loan-sip-planner/domain"
)

var carLoan = domain.LoanTerms{
	Principal:    800000,
	AnnualRate:   0.083,
	TenureMonths: 60,
}

func closeTo(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestProject_DefaultScenario(t *testing.T) {

	result, err := Project(carLoan, 25000, domain.InvestmentTerms{AnnualRate: 0.12, HorizonMonths: 60}, domain.DefaultPolicy())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	surplus := 25000 - result.EMI
	g := 0.01
	annuity := surplus * (math.Pow(1+g, 60) - 1) / g

	if result.MonthlyContribution != surplus {
		t.Errorf("expected contribution %v, got %v", surplus, result.MonthlyContribution)
	}
	if !closeTo(result.FinalInvestmentValue, annuity, 1e-6) {
		t.Errorf("expected final value %v, got %v", annuity, result.FinalInvestmentValue)
	}
	if !closeTo(result.FinalInvestmentValue, 707568.128566, 1e-4) {
		t.Errorf("expected final value ≈ 707568.13, got %.2f", result.FinalInvestmentValue)
	}
	if !closeTo(result.NetPosition, 7568.128566, 1e-3) {
		t.Errorf("expected net position ≈ 7568.13, got %.2f", result.NetPosition)
	}
	if result.NetPosition != result.TotalInvestmentGrowth-result.TotalInterest {
		t.Errorf("net position must equal growth minus interest")
	}
	if result.TotalInvestmentGrowth != result.FinalInvestmentValue-result.TotalPrincipalInvested {
		t.Errorf("growth must equal final value minus invested")
	}
	if len(result.Timeline) != 60 {
		t.Fatalf("expected 60 timeline points, got %d", len(result.Timeline))
	}
	if result.Timeline[59].LoanBalance != 0 {
		t.Errorf("expected loan retired at tenure, got %v", result.Timeline[59].LoanBalance)
	}
}

func TestProject_ZeroPrincipal(t *testing.T) {

	loan := domain.LoanTerms{Principal: 0, AnnualRate: 0.083, TenureMonths: 60}
	result, err := Project(loan, 10000, domain.InvestmentTerms{AnnualRate: 0.12, HorizonMonths: 24}, domain.DefaultPolicy())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.EMI != 0 || result.TotalInterest != 0 {
		t.Errorf("expected zero EMI and interest, got %v / %v", result.EMI, result.TotalInterest)
	}
	for _, p := range result.Timeline {
		if p.LoanBalance != 0 {
			t.Fatalf("month %d: expected zero loan balance, got %v", p.Month, p.LoanBalance)
		}
	}
	if result.MonthlyContribution != 10000 {
		t.Errorf("expected the whole budget invested, got %v", result.MonthlyContribution)
	}
}

func TestProject_RedirectAfterPayoff(t *testing.T) {

	inv := domain.InvestmentTerms{AnnualRate: 0.12, HorizonMonths: 72}
	result, err := Project(carLoan, 0, inv, domain.DefaultPolicy())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, p := range result.Timeline[:60] {
		if p.SIPValue != 0 {
			t.Fatalf("month %d: expected no investment before payoff, got %v", p.Month, p.SIPValue)
		}
	}
	if result.Timeline[60].SIPValue != result.EMI {
		t.Errorf("expected month 61 to hold the first freed EMI %v, got %v", result.EMI, result.Timeline[60].SIPValue)
	}
	for i := 61; i < 72; i++ {
		if result.Timeline[i].SIPValue <= result.Timeline[i-1].SIPValue {
			t.Fatalf("month %d: expected growth after payoff", i+1)
		}
	}
	if !closeTo(result.TotalPrincipalInvested, 12*result.EMI, 1e-6) {
		t.Errorf("expected 12 redirected EMIs invested, got %v", result.TotalPrincipalInvested)
	}
}

func TestProject_KeepSurplusAfterPayoff(t *testing.T) {

	policy := domain.ProjectionPolicy{
		FreedPayment: domain.FreedPaymentKeepSurplus,
		Timing:       domain.ContributionAtEnd,
	}
	result, err := Project(carLoan, 0, domain.InvestmentTerms{AnnualRate: 0.12, HorizonMonths: 72}, policy)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.FinalInvestmentValue != 0 {
		t.Errorf("expected nothing invested, got %v", result.FinalInvestmentValue)
	}
	if !closeTo(result.NetPosition, -result.TotalInterest, 0) {
		t.Errorf("expected net position to be minus the interest, got %v", result.NetPosition)
	}
}

func TestProject_RedirectInvestsFullBudget(t *testing.T) {

	result, err := Project(carLoan, 25000, domain.InvestmentTerms{AnnualRate: 0.12, HorizonMonths: 72}, domain.DefaultPolicy())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !closeTo(result.Timeline[65].Contribution, 25000, 1e-9) {
		t.Errorf("expected full budget invested after payoff, got %v", result.Timeline[65].Contribution)
	}
	if result.Timeline[10].Contribution != result.MonthlyContribution {
		t.Errorf("expected surplus invested before payoff")
	}
}

func TestProject_StartOfPeriodTiming(t *testing.T) {

	inv := domain.InvestmentTerms{AnnualRate: 0.12, HorizonMonths: 60}
	end, err := Project(carLoan, 25000, inv, domain.DefaultPolicy())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	start, err := Project(carLoan, 25000, inv, domain.ProjectionPolicy{
		FreedPayment: domain.FreedPaymentRedirect,
		Timing:       domain.ContributionAtStart,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !closeTo(start.FinalInvestmentValue, end.FinalInvestmentValue*1.01, 1e-6) {
		t.Errorf("expected start-of-period value to be one month of growth ahead: %v vs %v",
			start.FinalInvestmentValue, end.FinalInvestmentValue)
	}
	if start.TotalPrincipalInvested != end.TotalPrincipalInvested {
		t.Errorf("timing must not change the amount invested")
	}
}

func TestProject_BudgetBelowEMI(t *testing.T) {

	result, err := Project(carLoan, 1000, domain.InvestmentTerms{AnnualRate: 0.12, HorizonMonths: 60}, domain.DefaultPolicy())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.MonthlyContribution != 0 {
		t.Errorf("expected surplus clamped to 0, got %v", result.MonthlyContribution)
	}
	if result.FinalInvestmentValue != 0 {
		t.Errorf("expected no investment when horizon ≤ tenure, got %v", result.FinalInvestmentValue)
	}
}

func TestProject_MonotonicInvestment(t *testing.T) {

	result, err := Project(carLoan, 30000, domain.InvestmentTerms{AnnualRate: 0.12, HorizonMonths: 120}, domain.DefaultPolicy())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 1; i < len(result.Timeline); i++ {
		if result.Timeline[i].SIPValue < result.Timeline[i-1].SIPValue {
			t.Fatalf("month %d: investment value decreased", i+1)
		}
		if result.Timeline[i].LoanBalance > result.Timeline[i-1].LoanBalance {
			t.Fatalf("month %d: loan balance increased", i+1)
		}
	}
}

func TestProject_HorizonIndependence(t *testing.T) {

	short, err := Project(carLoan, 25000, domain.InvestmentTerms{AnnualRate: 0.12, HorizonMonths: 24}, domain.DefaultPolicy())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	long, err := Project(carLoan, 25000, domain.InvestmentTerms{AnnualRate: 0.12, HorizonMonths: 120}, domain.DefaultPolicy())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := range short.Timeline {
		if short.Timeline[i].LoanBalance != long.Timeline[i].LoanBalance {
			t.Fatalf("month %d: loan balance depends on horizon", i+1)
		}
	}
	if short.TotalInterest != long.TotalInterest {
		t.Errorf("total interest depends on horizon")
	}
}

func TestProject_Idempotent(t *testing.T) {

	inv := domain.InvestmentTerms{AnnualRate: 0.12, HorizonMonths: 96}
	a, err := Project(carLoan, 25000, inv, domain.DefaultPolicy())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Project(carLoan, 25000, inv, domain.DefaultPolicy())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(a, b) {
		t.Errorf("expected identical results for identical inputs")
	}
}

func TestProject_InvalidInput(t *testing.T) {
	inv := domain.InvestmentTerms{AnnualRate: 0.12, HorizonMonths: 60}

	cases := []struct {
		name   string
		loan   domain.LoanTerms
		budget float64
		inv    domain.InvestmentTerms
		policy domain.ProjectionPolicy
	}{
		{"zero horizon", carLoan, 25000, domain.InvestmentTerms{AnnualRate: 0.12}, domain.DefaultPolicy()},
		{"negative budget", carLoan, -1, inv, domain.DefaultPolicy()},
		{"negative sip rate", carLoan, 25000, domain.InvestmentTerms{AnnualRate: -0.1, HorizonMonths: 60}, domain.DefaultPolicy()},
		{"zero tenure", domain.LoanTerms{Principal: 1000, AnnualRate: 0.1}, 25000, inv, domain.DefaultPolicy()},
		{"unknown policy", carLoan, 25000, inv, domain.ProjectionPolicy{FreedPayment: "spend", Timing: domain.ContributionAtEnd}},
		{"unknown timing", carLoan, 25000, inv, domain.ProjectionPolicy{FreedPayment: domain.FreedPaymentRedirect}},
		{"horizon too long", carLoan, 25000, domain.InvestmentTerms{AnnualRate: 0.12, HorizonMonths: MaxHorizonMonths + 1}, domain.DefaultPolicy()},
		{"huge horizon", carLoan, 25000, domain.InvestmentTerms{AnnualRate: 0.12, HorizonMonths: math.MaxInt}, domain.DefaultPolicy()},
		{"huge tenure", domain.LoanTerms{Principal: 1000, AnnualRate: 0.1, TenureMonths: math.MaxInt}, 25000, inv, domain.DefaultPolicy()},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Project(c.loan, c.budget, c.inv, c.policy)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestProjectSIP(t *testing.T) {

	result, err := ProjectSIP(domain.InvestmentTerms{MonthlyContribution: 10000, AnnualRate: 0.12, HorizonMonths: 12}, domain.ContributionAtEnd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := 10000 * (math.Pow(1.01, 12) - 1) / 0.01
	if !closeTo(result.FinalInvestmentValue, expected, 1e-6) {
		t.Errorf("expected %v, got %v", expected, result.FinalInvestmentValue)
	}
	if result.TotalPrincipalInvested != 120000 {
		t.Errorf("expected 120000 invested, got %v", result.TotalPrincipalInvested)
	}
	if result.EMI != 0 || result.TotalInterest != 0 {
		t.Errorf("expected no loan figures")
	}
}

func TestProjectSIP_NegativeContributionClamped(t *testing.T) {

	result, err := ProjectSIP(domain.InvestmentTerms{MonthlyContribution: -500, AnnualRate: 0.12, HorizonMonths: 12}, domain.ContributionAtEnd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.MonthlyContribution != 0 || result.FinalInvestmentValue != 0 {
		t.Errorf("expected negative contribution clamped to zero, got %+v", result)
	}
}

func TestProjectSIP_HorizonLimit(t *testing.T) {

	if _, err := ProjectSIP(domain.InvestmentTerms{MonthlyContribution: 1000, AnnualRate: 0.12, HorizonMonths: MaxHorizonMonths}, domain.ContributionAtEnd); err != nil {
		t.Fatalf("expected the maximum horizon to be accepted, got %v", err)
	}

	for _, horizon := range []int{MaxHorizonMonths + 1, math.MaxInt} {
		_, err := ProjectSIP(domain.InvestmentTerms{MonthlyContribution: 1000, AnnualRate: 0.12, HorizonMonths: horizon}, domain.ContributionAtEnd)
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("horizon %d: expected ErrInvalidInput, got %v", horizon, err)
		}
	}
}
