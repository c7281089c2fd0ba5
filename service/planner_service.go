package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"loan-sip-planner/domain"
	"loan-sip-planner/repository"
)

// PlannerService runs the loan vs SIP projection for the strategies of the
// tenure policy table.
type PlannerService struct {
	cache         repository.CacheRepository
	guidance      *GuidanceService
	defaultPolicy domain.ProjectionPolicy
}

// NewPlannerService creates a PlannerService. defaultPolicy fills in the
// projection policy of inputs that leave it unset.
func NewPlannerService(
	cache repository.CacheRepository,
	guidance *GuidanceService,
	defaultPolicy domain.ProjectionPolicy,
) *PlannerService {
	return &PlannerService{
		cache:         cache,
		guidance:      guidance,
		defaultPolicy: defaultPolicy,
	}
}

// Plan projects a single strategy.
func (s *PlannerService) Plan(
	ctx context.Context,
	input domain.PlannerInput,
) (domain.PlanResult, error) {

	input = s.withDefaults(input)
	if err := validatePlannerInput(input); err != nil {
		return domain.PlanResult{}, err
	}

	tenure, err := TenureFor(input.Strategy)
	if err != nil {
		return domain.PlanResult{}, err
	}

	key, err := planCacheKey(input)
	if err != nil {
		return domain.PlanResult{}, err
	}
	var cached domain.PlanResult
	if readCache(ctx, s.cache, key, &cached) {
		return cached, nil
	}

	principal := LoanPrincipal(input.CarPrice, input.DownPayment)
	result, err := Project(
		domain.LoanTerms{
			Principal:    principal,
			AnnualRate:   input.LoanRate,
			TenureMonths: tenure,
		},
		input.MonthlyBudget,
		domain.InvestmentTerms{
			AnnualRate:    input.SIPRate,
			HorizonMonths: input.HorizonMonths,
		},
		input.Policy,
	)
	if err != nil {
		return domain.PlanResult{}, err
	}

	plan := domain.PlanResult{
		Strategy:      input.Strategy,
		TenureMonths:  tenure,
		LoanPrincipal: principal,
		Result:        result,
		Guidance:      s.guidance.Guidance(ctx, input.Strategy, tenure, result),
	}

	writeCache(ctx, s.cache, key, plan)

	return plan, nil
}

// Compare projects every strategy of the policy table concurrently. Plans
// keep the table order; Best is the one with the highest net position, the
// earlier one winning ties.
func (s *PlannerService) Compare(
	ctx context.Context,
	input domain.PlannerInput,
) (domain.Comparison, error) {

	plans := make([]domain.PlanResult, len(strategyOrder))

	g, gctx := errgroup.WithContext(ctx)
	for i, tag := range strategyOrder {
		in := input
		in.Strategy = tag
		g.Go(func() error {
			plan, err := s.Plan(gctx, in)
			if err != nil {
				return fmt.Errorf("%s: %w", tag, err)
			}
			plans[i] = plan
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.Comparison{}, err
	}

	best := 0
	for i := 1; i < len(plans); i++ {
		if plans[i].Result.NetPosition > plans[best].Result.NetPosition {
			best = i
		}
	}

	return domain.Comparison{
		ID:    uuid.NewString(),
		Plans: plans,
		Best:  plans[best].Strategy,
	}, nil
}

func (s *PlannerService) withDefaults(input domain.PlannerInput) domain.PlannerInput {
	if input.Strategy == "" {
		input.Strategy = domain.StrategyBalanced
	}
	if input.Policy.FreedPayment == "" {
		input.Policy.FreedPayment = s.defaultPolicy.FreedPayment
	}
	if input.Policy.Timing == "" {
		input.Policy.Timing = s.defaultPolicy.Timing
	}
	return input
}

func validatePlannerInput(input domain.PlannerInput) error {
	if !isFinite(input.CarPrice) || input.CarPrice < 0 {
		return fmt.Errorf("%w: car price must be non-negative", domain.ErrInvalidInput)
	}
	if input.CarPrice > MaxLoanAmount {
		return fmt.Errorf("%w: car price exceeds the maximum of %.2f", domain.ErrInvalidInput, MaxLoanAmount)
	}
	if !isFinite(input.DownPayment) || input.DownPayment < 0 {
		return fmt.Errorf("%w: down payment must be non-negative", domain.ErrInvalidInput)
	}
	if input.DownPayment > input.CarPrice {
		return fmt.Errorf("%w: down payment exceeds the car price", domain.ErrInvalidInput)
	}
	if input.LoanRate > MaxInterestRate || input.SIPRate > MaxInterestRate {
		return fmt.Errorf("%w: rates cannot exceed %.2f", domain.ErrInvalidInput, MaxInterestRate)
	}
	if input.MonthlyBudget > MaxMonthlyBudget {
		return fmt.Errorf("%w: monthly budget exceeds the maximum of %.2f", domain.ErrInvalidInput, MaxMonthlyBudget)
	}
	if input.HorizonMonths > MaxHorizonMonths {
		return fmt.Errorf("%w: horizon exceeds the maximum of %d months", domain.ErrInvalidInput, MaxHorizonMonths)
	}
	return nil
}

func planCacheKey(input domain.PlannerInput) (string, error) {
	data, err := json.Marshal(input)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return "plan:" + strconv.FormatUint(xxhash.Sum64(data), 16), nil
}
