package output

import (
	"fmt"
	"strings"

	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/projection"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	colorPrimary = lipgloss.Color("#2E86AB")
	colorMuted   = lipgloss.Color("#6C757D")
	colorBorder  = lipgloss.Color("#ADB5BD")

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	labelStyle  = lipgloss.NewStyle().Width(22)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
	firstCell   = lipgloss.NewStyle().Padding(0, 1)
)

// ConsoleFormatter renders the summary and the yearly table for a terminal.
type ConsoleFormatter struct{}

func (ConsoleFormatter) Name() string { return "console" }

func (ConsoleFormatter) Format(r *projection.Result) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("nil result")
	}
	cur := r.Currency()
	var b strings.Builder

	title := "SAVINGS PROJECTION"
	if r.ScenarioName != "" {
		title += ": " + r.ScenarioName
	}
	b.WriteString(titleStyle.Render(title) + "\n")
	meta := fmt.Sprintf("product %s", r.ProductID)
	if r.VariantID != "" {
		meta += ", variant " + r.VariantID
	}
	meta += fmt.Sprintf(", %s, %d periods", cur, r.Summary.Periods)
	if r.IsCorporate {
		meta += ", corporate holder"
	}
	b.WriteString(mutedStyle.Render(meta) + "\n\n")

	s := r.Summary
	summary := [][2]string{
		{"Total contributions", FormatCurrency(s.TotalContributions, cur)},
		{"Total costs", FormatCurrency(s.TotalCosts, cur)},
		{"Total bonus", FormatCurrency(s.TotalBonus, cur)},
		{"Total tax credit", FormatCurrency(s.TotalTaxCredit, cur)},
		{"Total withdrawals", FormatCurrency(s.TotalWithdrawals, cur)},
		{"End balance", FormatCurrency(s.EndBalance, cur)},
		{"Surrender value", FormatCurrency(s.SurrenderValue, cur)},
		{"Gross profit", FormatCurrency(s.GrossProfit, cur)},
		{"Tax deduction", FormatCurrency(s.TaxDeduction, cur)},
		{"Net balance", FormatCurrency(s.NetBalance, cur)},
		{"Effective tax rate", FormatPercentage(s.EffectiveTaxRate)},
		{"Cost ratio", FormatPercentage(s.CostRatio)},
	}
	for _, kv := range summary {
		b.WriteString(labelStyle.Render(kv[0]) + kv[1] + "\n")
	}
	b.WriteString("\n")

	net := netByYear(r)
	rows := make([][]string, 0, len(r.Rows))
	for _, row := range r.Rows {
		n := net[row.Year]
		rows = append(rows, []string{
			periodLabel(row),
			FormatCurrency(row.TotalContributions, cur),
			FormatCurrency(row.CostForYear, cur),
			FormatCurrency(row.WealthBonusForYear, cur),
			FormatCurrency(row.TaxCreditForYear, cur),
			FormatCurrency(row.WithdrawalForYear, cur),
			FormatCurrency(row.EndBalance, cur),
			FormatCurrency(row.SurrenderValue, cur),
			FormatCurrency(n.TaxDeduction, cur),
			FormatCurrency(n.NetBalance, cur),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return firstCell
			default:
				return cellStyle
			}
		}).
		Headers("Period", "Contributions", "Costs", "Bonus", "Tax credit", "Withdrawal", "End balance", "Surrender value", "Tax", "Net balance").
		Rows(rows...)
	b.WriteString(t.String() + "\n\n")

	b.WriteString(mutedStyle.Render("Assumptions") + "\n")
	for _, a := range DefaultAssumptions {
		b.WriteString("  - " + a + "\n")
	}
	return []byte(b.String()), nil
}
