package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"loan-sip-planner/domain"
	"loan-sip-planner/report"
	"loan-sip-planner/service"
)

var (
	flagPrincipal float64
	flagRate      float64
	flagTenure    int

	flagPrice         float64
	flagDown          float64
	flagLoanRate      float64
	flagBudget        float64
	flagSIPRate       float64
	flagHorizon       int
	flagStrategy      string
	flagKeepSurplus   bool
	flagStartOfPeriod bool
	flagStep          int
	flagJSON          bool
)

var amortizeCmd = &cobra.Command{
	Use:   "amortize",
	Short: "Print the amortization schedule of a loan",
	RunE: func(cmd *cobra.Command, args []string) error {
		loanService := service.NewLoanService(nil)
		result, err := loanService.Schedule(cmd.Context(), domain.LoanTerms{
			Principal:    flagPrincipal,
			AnnualRate:   flagRate,
			TenureMonths: flagTenure,
		})
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(result)
		}
		fmt.Println(report.ScheduleTable(result).Render())
		fmt.Printf("\nTotal interest: %s\n", report.FormatINR(result.TotalInterest()))
		return nil
	},
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Project one strategy: loan EMI against SIP growth",
	RunE: func(cmd *cobra.Command, args []string) error {
		planner, input, err := plannerFromFlags(cmd)
		if err != nil {
			return err
		}

		plan, err := planner.Plan(cmd.Context(), input)
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(plan)
		}
		fmt.Println(report.RenderPlan(plan))
		fmt.Println()
		fmt.Println(report.TimelineTable(plan.Result.Timeline, flagStep).Render())
		return nil
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Project every strategy and rank them by net position",
	RunE: func(cmd *cobra.Command, args []string) error {
		planner, input, err := plannerFromFlags(cmd)
		if err != nil {
			return err
		}

		comparison, err := planner.Compare(cmd.Context(), input)
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(comparison)
		}
		fmt.Println(report.ComparisonTable(comparison).Render())
		return nil
	},
}

var strategiesCmd = &cobra.Command{
	Use:   "strategies",
	Short: "List the tenure assigned to each strategy",
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagJSON {
			return printJSON(service.Strategies())
		}
		fmt.Println(report.StrategiesTable(service.Strategies()).Render())
		return nil
	},
}

func init() {
	defaults := domain.DefaultPlannerInput()

	amortizeCmd.Flags().Float64Var(&flagPrincipal, "principal", defaults.CarPrice-defaults.DownPayment, "loan principal")
	amortizeCmd.Flags().Float64Var(&flagRate, "rate", defaults.LoanRate, "annual interest rate as a fraction")
	amortizeCmd.Flags().IntVar(&flagTenure, "tenure", 60, "tenure in months")

	for _, cmd := range []*cobra.Command{planCmd, compareCmd} {
		addPlannerFlags(cmd.Flags(), defaults)
	}
	planCmd.Flags().StringVarP(&flagStrategy, "strategy", "s", string(defaults.Strategy), "balanced, aggressive-emi or aggressive-sip")
	planCmd.Flags().IntVar(&flagStep, "step", 12, "print every n-th month of the timeline")

	for _, cmd := range []*cobra.Command{amortizeCmd, planCmd, compareCmd, strategiesCmd} {
		cmd.Flags().BoolVar(&flagJSON, "json", false, "print JSON instead of tables")
	}
}

func addPlannerFlags(fs *pflag.FlagSet, defaults domain.PlannerInput) {
	fs.Float64Var(&flagPrice, "price", defaults.CarPrice, "car price")
	fs.Float64Var(&flagDown, "down", defaults.DownPayment, "down payment")
	fs.Float64Var(&flagLoanRate, "loan-rate", defaults.LoanRate, "annual loan rate as a fraction")
	fs.Float64VarP(&flagBudget, "budget", "b", defaults.MonthlyBudget, "monthly budget for EMI + SIP")
	fs.Float64Var(&flagSIPRate, "sip-rate", defaults.SIPRate, "expected annual SIP return as a fraction")
	fs.IntVar(&flagHorizon, "horizon", defaults.HorizonMonths, "analysis horizon in months")
	fs.BoolVar(&flagKeepSurplus, "keep-surplus", false, "do not reinvest the EMI once the loan is repaid")
	fs.BoolVar(&flagStartOfPeriod, "start-of-period", false, "invest at the start of each month")
}

// plannerFromFlags builds the planner and its input. Flags that were not set
// fall back to the configured projection policy.
func plannerFromFlags(cmd *cobra.Command) (*service.PlannerService, domain.PlannerInput, error) {
	policy, err := cfg.Planner.Policy()
	if err != nil {
		return nil, domain.PlannerInput{}, err
	}
	if cmd.Flags().Changed("keep-surplus") {
		policy.FreedPayment = domain.FreedPaymentRedirect
		if flagKeepSurplus {
			policy.FreedPayment = domain.FreedPaymentKeepSurplus
		}
	}
	if cmd.Flags().Changed("start-of-period") {
		policy.Timing = domain.ContributionAtEnd
		if flagStartOfPeriod {
			policy.Timing = domain.ContributionAtStart
		}
	}

	input := domain.PlannerInput{
		CarPrice:      flagPrice,
		DownPayment:   flagDown,
		LoanRate:      flagLoanRate,
		MonthlyBudget: flagBudget,
		SIPRate:       flagSIPRate,
		HorizonMonths: flagHorizon,
		Strategy:      domain.StrategyTag(flagStrategy),
		Policy:        policy,
	}

	planner := service.NewPlannerService(nil, newGuidanceService(), policy)
	return planner, input, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
