package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"

	"loan-sip-planner/domain"
	"loan-sip-planner/repository"
)

// roundTo2Decimals redondea un float64 a 2 decimales
func roundTo2Decimals(value float64) float64 {
	return math.Round(value*100) / 100
}

type LoanService struct {
	cache repository.CacheRepository
}

// NewLoanService creates a new LoanService backed by the given cache.
func NewLoanService(cache repository.CacheRepository) *LoanService {
	return &LoanService{cache: cache}
}

// CalculateLoan summarizes the EMI, total payment and total interest of a
// loan, rounded to 2 decimals.
func (s *LoanService) CalculateLoan(
	ctx context.Context,
	input domain.LoanInput,
) (domain.LoanResult, error) {

	terms := domain.LoanTerms{
		Principal:    input.Amount,
		AnnualRate:   input.InterestRate,
		TenureMonths: input.TermMonths,
	}
	if err := validateLoanTerms(terms); err != nil {
		return domain.LoanResult{}, err
	}

	key := fmt.Sprintf("loan:%v:%v:%d", input.Amount, input.InterestRate, input.TermMonths)
	var cached domain.LoanResult
	if readCache(ctx, s.cache, key, &cached) {
		return cached, nil
	}

	amortization, err := Amortize(terms.Principal, terms.AnnualRate, terms.TenureMonths)
	if err != nil {
		return domain.LoanResult{}, err
	}

	interest := amortization.TotalInterest()
	result := domain.LoanResult{
		MonthlyPayment: roundTo2Decimals(amortization.PeriodicPayment),
		TotalPayment:   roundTo2Decimals(input.Amount + interest),
		TotalInterest:  roundTo2Decimals(interest),
	}

	// Guardar en cache (no crítico si falla)
	writeCache(ctx, s.cache, key, result)

	return result, nil
}

// Schedule returns the full month-by-month amortization of a loan.
func (s *LoanService) Schedule(
	ctx context.Context,
	terms domain.LoanTerms,
) (domain.AmortizationResult, error) {

	if err := validateLoanTerms(terms); err != nil {
		return domain.AmortizationResult{}, err
	}
	return Amortize(terms.Principal, terms.AnnualRate, terms.TenureMonths)
}

func validateLoanTerms(terms domain.LoanTerms) error {
	if terms.Principal > MaxLoanAmount {
		return fmt.Errorf("%w: amount exceeds the maximum of %.2f", domain.ErrInvalidInput, MaxLoanAmount)
	}
	if terms.AnnualRate > MaxInterestRate {
		return fmt.Errorf("%w: interest rate exceeds the maximum of %.2f", domain.ErrInvalidInput, MaxInterestRate)
	}
	if terms.TenureMonths > MaxTermMonths {
		return fmt.Errorf("%w: term exceeds the maximum of %d months", domain.ErrInvalidInput, MaxTermMonths)
	}
	return nil
}

func readCache(ctx context.Context, cache repository.CacheRepository, key string, dst any) bool {
	if cache == nil {
		return false
	}
	raw, ok := cache.Get(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		log.Printf("Warning: discarding corrupt cache entry %s: %v", key, err)
		return false
	}
	return true
}

func writeCache(ctx context.Context, cache repository.CacheRepository, key string, v any) {
	if cache == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("Warning: failed to encode cache entry %s: %v", key, err)
		return
	}
	if err := cache.Set(ctx, key, string(data)); err != nil {
		log.Printf("Warning: failed to cache %s: %v", key, err)
	}
}
