package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"loan-sip-planner/domain"
)

var (
	colorText   = lipgloss.Color("#E8E8E8")
	colorMuted  = lipgloss.Color("#707070")
	colorGold   = lipgloss.Color("#D4AF37")
	colorRed    = lipgloss.Color("#EF4444")
	colorBorder = lipgloss.Color("#3A3A3A")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorText)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorGold)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	valueStyle = lipgloss.NewStyle().
			Foreground(colorText)

	gainStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorGold)

	lossStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorRed)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)
)

// Table is a right-aligned text table with a bold header row.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

func (t Table) Render() string {
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	renderRow := func(cells []string, style lipgloss.Style) string {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = style.Width(widths[i]).Align(lipgloss.Right).Render(cell)
		}
		return strings.Join(parts, "  ")
	}

	var b strings.Builder
	if t.Title != "" {
		b.WriteString(titleStyle.Render(t.Title))
		b.WriteString("\n")
	}
	b.WriteString(renderRow(t.Headers, headerStyle))
	for _, row := range t.Rows {
		b.WriteString("\n")
		b.WriteString(renderRow(row, valueStyle))
	}
	return b.String()
}

func netStyle(v float64) lipgloss.Style {
	if v >= 0 {
		return gainStyle
	}
	return lossStyle
}

func signedINR(v float64) string {
	if v >= 0 {
		return "+" + FormatINR(v)
	}
	return FormatINR(v)
}

func keyValues(pairs [][2]string) string {
	width := 0
	for _, p := range pairs {
		width = max(width, lipgloss.Width(p[0]))
	}

	lines := make([]string, len(pairs))
	for i, p := range pairs {
		lines[i] = labelStyle.Width(width).Render(p[0]) + "  " + valueStyle.Render(p[1])
	}
	return strings.Join(lines, "\n")
}

// RenderPlan prints the headline banner, the EMI and SIP summaries and the
// guidance of one plan.
func RenderPlan(plan domain.PlanResult) string {
	res := plan.Result

	banner := netStyle(res.NetPosition).Render(signedINR(res.NetPosition)) + "\n" +
		labelStyle.Render(fmt.Sprintf("SIP Returns: %s • Loan Interest: %s • Tenure: %d months",
			FormatINR(res.TotalInvestmentGrowth), FormatINR(res.TotalInterest), plan.TenureMonths))

	emi := keyValues([][2]string{
		{"Monthly EMI", FormatINR(res.EMI)},
		{"Total Principal", FormatINR(plan.LoanPrincipal)},
		{"Total Interest", FormatINR(res.TotalInterest)},
		{"Loan Tenure", fmt.Sprintf("%d months", plan.TenureMonths)},
	})
	sip := keyValues([][2]string{
		{"Monthly SIP", FormatINR(res.MonthlyContribution)},
		{"Total Principal", FormatINR(res.TotalPrincipalInvested)},
		{"Total Returns", FormatINR(res.TotalInvestmentGrowth)},
		{"Final Value", FormatINR(res.FinalInvestmentValue)},
	})

	columns := lipgloss.JoinHorizontal(lipgloss.Top,
		boxStyle.Render(headerStyle.Render("EMI Details")+"\n"+emi),
		" ",
		boxStyle.Render(headerStyle.Render("SIP Details")+"\n"+sip),
	)

	g := plan.Guidance
	guidance := boxStyle.Render(
		netStyleFor(g.Recommendation).Render(g.Title) + "  " + labelStyle.Render(g.Value) + "\n" +
			valueStyle.Render(g.Description) + "\n" +
			labelStyle.Render(g.Details),
	)

	return lipgloss.JoinVertical(lipgloss.Left, boxStyle.Render(banner), columns, guidance)
}

func netStyleFor(r domain.Recommendation) lipgloss.Style {
	if r == domain.RecommendationNegative {
		return lossStyle
	}
	return gainStyle
}

// TimelineTable renders every step-th month of the timeline; the last month
// is always included.
func TimelineTable(timeline []domain.TimelinePoint, step int) Table {
	if step < 1 {
		step = 1
	}

	t := Table{
		Title:   "Timeline",
		Headers: []string{"Month", "Loan Balance", "SIP Value", "Invested"},
	}
	for i, p := range timeline {
		if (i+1)%step != 0 && i != len(timeline)-1 {
			continue
		}
		t.Rows = append(t.Rows, []string{
			fmt.Sprintf("%d", p.Month),
			FormatINR(p.LoanBalance),
			FormatINR(p.SIPValue),
			FormatINR(p.Contribution),
		})
	}
	return t
}

// ScheduleTable renders an amortization schedule.
func ScheduleTable(result domain.AmortizationResult) Table {
	t := Table{
		Title:   fmt.Sprintf("Amortization (EMI %s)", FormatINR(result.PeriodicPayment)),
		Headers: []string{"Month", "Interest", "Principal", "Balance"},
	}
	for _, e := range result.Schedule {
		t.Rows = append(t.Rows, []string{
			fmt.Sprintf("%d", e.Month),
			FormatINR(e.Interest),
			FormatINR(e.PrincipalPaid),
			FormatINR(e.Balance),
		})
	}
	return t
}

// ComparisonTable lines up every strategy of a comparison, marking the best.
func ComparisonTable(c domain.Comparison) Table {
	t := Table{
		Title:   "Strategy Comparison",
		Headers: []string{"Strategy", "Tenure", "EMI", "Interest", "SIP Returns", "Net Position"},
	}
	for _, p := range c.Plans {
		name := string(p.Strategy)
		if p.Strategy == c.Best {
			name = "★ " + name
		}
		t.Rows = append(t.Rows, []string{
			name,
			fmt.Sprintf("%d mo", p.TenureMonths),
			FormatINR(p.Result.EMI),
			FormatINR(p.Result.TotalInterest),
			FormatINR(p.Result.TotalInvestmentGrowth),
			signedINR(p.Result.NetPosition),
		})
	}
	return t
}

// StrategiesTable renders the tenure policy table.
func StrategiesTable(strategies []domain.Strategy) Table {
	t := Table{
		Title:   "Strategies",
		Headers: []string{"Tag", "Label", "Tenure", "Description"},
	}
	for _, s := range strategies {
		t.Rows = append(t.Rows, []string{
			string(s.Tag),
			s.Label,
			fmt.Sprintf("%d mo", s.TenureMonths),
			s.Description,
		})
	}
	return t
}
