package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/pkg/money"
	"github.com/shopspring/decimal"
)

// TableFormatter formats optimization results as a console table
type TableFormatter struct{}

// Format generates a formatted table for optimization result
func (tf *TableFormatter) Format(result *OptimizationResult) string {
	var sb strings.Builder
	cur := result.Metrics.Currency

	sb.WriteString("BREAK-EVEN OPTIMIZATION RESULTS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Optimization Target: %s\n", result.Request.Target))
	sb.WriteString(fmt.Sprintf("Optimization Goal:   %s\n", result.Request.Goal))
	sb.WriteString(fmt.Sprintf("Status:              %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:          %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:         %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("OPTIMAL PARAMETERS\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	if result.OptimalPayment != nil {
		sb.WriteString(fmt.Sprintf("Year 1 Payment:      %s (%s track)\n",
			money.Format(*result.OptimalPayment, cur), result.Request.Constraints.track()))
	}
	if result.OptimalYield != nil {
		sb.WriteString(fmt.Sprintf("Annual Yield:        %s%%\n", result.OptimalYield.StringFixed(2)))
	}
	if result.OptimalDuration != nil {
		sb.WriteString(fmt.Sprintf("Duration:            %d years\n", *result.OptimalDuration))
	}
	sb.WriteString("\n")

	m := result.Metrics
	sb.WriteString("PROJECTED RESULTS\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Contributions:       %s\n", money.Format(m.TotalContributions, cur)))
	sb.WriteString(fmt.Sprintf("Costs:               %s\n", money.Format(m.TotalCosts, cur)))
	sb.WriteString(fmt.Sprintf("End Balance:         %s\n", money.Format(m.EndBalance, cur)))
	sb.WriteString(fmt.Sprintf("Tax:                 %s\n", money.Format(m.TaxDeduction, cur)))
	sb.WriteString(fmt.Sprintf("Net Balance:         %s\n", money.Format(m.NetBalance, cur)))
	sb.WriteString(fmt.Sprintf("Net Gain:            %s\n", money.Format(m.NetGain, cur)))
	sb.WriteString("\n")

	if result.Base != nil {
		sb.WriteString("COMPARISON TO BASE SCENARIO\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		sb.WriteString(fmt.Sprintf("Base Net Balance:    %s\n", money.Format(result.Base.NetBalance, cur)))
		sb.WriteString(fmt.Sprintf("Net Balance Change:  %s%s\n", tf.deltaSymbol(m.NetDiffFromBase), money.Format(m.NetDiffFromBase, cur)))
		if !m.TaxDiffFromBase.IsZero() {
			sb.WriteString(fmt.Sprintf("Tax Impact:          %s%s\n", tf.deltaSymbol(m.TaxDiffFromBase), money.Format(m.TaxDiffFromBase, cur)))
		}
		sb.WriteString("\n")
	}

	if result.Request.Goal == GoalMatchNetBalance && result.Request.Constraints.TargetNetBalance != nil {
		target := *result.Request.Constraints.TargetNetBalance
		diff := m.NetBalance.Sub(target)
		sb.WriteString("TARGET NET BALANCE MATCH\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		sb.WriteString(fmt.Sprintf("Target:              %s\n", money.Format(target, cur)))
		sb.WriteString(fmt.Sprintf("Achieved:            %s\n", money.Format(m.NetBalance, cur)))
		sb.WriteString(fmt.Sprintf("Difference:          %s%s\n", tf.deltaSymbol(diff), money.Format(diff, cur)))
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatMultiDimensional formats results from multiple optimizations
func (tf *TableFormatter) FormatMultiDimensional(result *MultiDimensionalResult) string {
	var sb strings.Builder

	sb.WriteString("MULTI-DIMENSIONAL OPTIMIZATION RESULTS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n\n")

	sb.WriteString("SUMMARY OF ALL OPTIMIZATIONS\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("%-28s %-18s %14s %14s %10s\n", "Parameter", "Goal", "Net Balance", "Net Gain", "Cost Rate"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	for i := range result.Results {
		res := &result.Results[i]
		sb.WriteString(fmt.Sprintf("%-28s %-18s %14s %14s %10s\n",
			tf.truncate(res.Describe(), 28),
			tf.truncate(string(res.Request.Goal), 18),
			tf.formatShort(res.Metrics.NetBalance),
			tf.formatShort(res.Metrics.NetGain),
			money.Percent(res.CostRate()).StringFixed(2)+"%"))
	}
	sb.WriteString("\n")

	if len(result.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("* %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result *OptimizationResult) (string, error) {
	return jf.encode(result)
}

// FormatMultiDimensional formats multi-dimensional results as JSON
func (jf *JSONFormatter) FormatMultiDimensional(result *MultiDimensionalResult) (string, error) {
	return jf.encode(result)
}

func (jf *JSONFormatter) encode(v interface{}) (string, error) {
	var data []byte
	var err error
	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "Converged"
	}
	return "Did not converge"
}

func (tf *TableFormatter) formatShort(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		return d.Div(decimal.NewFromInt(1000000)).StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		return d.Div(decimal.NewFromInt(1000)).StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	}
	return ""
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
