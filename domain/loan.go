package domain

type LoanInput struct {
	Amount       float64
	InterestRate float64 // fracción anual, e.g. 0.083
	TermMonths   int
}

type LoanResult struct {
	MonthlyPayment float64
	TotalPayment   float64
	TotalInterest  float64
}

// LoanTerms are the inputs of an amortizing loan.
type LoanTerms struct {
	Principal    float64
	AnnualRate   float64
	TenureMonths int
}

type AmortizationEntry struct {
	Month         int
	Interest      float64
	PrincipalPaid float64
	Balance       float64
}

type AmortizationResult struct {
	PeriodicPayment float64
	Schedule        []AmortizationEntry
}

// TotalInterest sums the interest portion of every scheduled payment.
func (a AmortizationResult) TotalInterest() float64 {
	total := 0.0
	for _, e := range a.Schedule {
		total += e.Interest
	}
	return total
}

// BalanceAt returns the balance after the given month, 0 past the schedule.
func (a AmortizationResult) BalanceAt(month int) float64 {
	if month < 1 || month > len(a.Schedule) {
		return 0
	}
	return a.Schedule[month-1].Balance
}
