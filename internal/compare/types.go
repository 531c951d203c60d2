package compare

import (
	"fmt"

	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/projection"
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/pkg/money"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents a single scenario comparison with calculated metrics
type ComparisonResult struct {
	ScenarioName string              `json:"scenarioName"`
	Description  string              `json:"description"`
	Currency     string              `json:"currency"`
	Summary      *projection.Summary `json:"summary,omitempty"`

	// Key Metrics
	TotalContributions decimal.Decimal `json:"totalContributions"`
	TotalCosts         decimal.Decimal `json:"totalCosts"`
	EndBalance         decimal.Decimal `json:"endBalance"`
	SurrenderValue     decimal.Decimal `json:"surrenderValue"`
	TaxDeduction       decimal.Decimal `json:"taxDeduction"`
	NetBalance         decimal.Decimal `json:"netBalance"`
	NetGain            decimal.Decimal `json:"netGain"` // net balance + withdrawals - contributions

	// Comparison to Base
	NetDiffFromBase  decimal.Decimal `json:"netDiffFromBase"`
	NetPctFromBase   decimal.Decimal `json:"netPctFromBase"`
	CostDiffFromBase decimal.Decimal `json:"costDiffFromBase"`
	TaxDiffFromBase  decimal.Decimal `json:"taxDiffFromBase"`
}

// ComparisonSet represents a collection of scenario comparisons
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath"`
}

// MetricsCalculator extracts key metrics from projection results
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes all comparison metrics for a projection
func (mc *MetricsCalculator) CalculateMetrics(result *projection.Result) ComparisonResult {
	s := result.Summary
	return ComparisonResult{
		ScenarioName:       result.ScenarioName,
		Currency:           s.Currency,
		Summary:            &s,
		TotalContributions: s.TotalContributions,
		TotalCosts:         s.TotalCosts,
		EndBalance:         s.EndBalance,
		SurrenderValue:     s.SurrenderValue,
		TaxDeduction:       s.TaxDeduction,
		NetBalance:         s.NetBalance,
		NetGain:            s.NetBalance.Add(s.TotalWithdrawals).Sub(s.TotalContributions),
	}
}

// CalculateComparison computes comparison metrics between a scenario and a base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.NetDiffFromBase = scenario.NetBalance.Sub(base.NetBalance)
	if !base.NetBalance.IsZero() {
		scenario.NetPctFromBase = money.Percent(scenario.NetDiffFromBase.Div(base.NetBalance))
	}
	scenario.CostDiffFromBase = scenario.TotalCosts.Sub(base.TotalCosts)
	scenario.TaxDiffFromBase = scenario.TaxDeduction.Sub(base.TaxDeduction)
	return scenario
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}
	base := compSet.BaseResult
	cur := base.Currency

	best := base
	for i := range compSet.AlternativeResults {
		if alt := &compSet.AlternativeResults[i]; alt.NetBalance.GreaterThan(best.NetBalance) {
			best = alt
		}
	}
	if best != base {
		recommendations = append(recommendations,
			fmt.Sprintf("Best Net Balance: %s ends %s higher than the base scenario",
				best.ScenarioName, money.Format(best.NetBalance.Sub(base.NetBalance), cur)))
	}

	cheapest := base
	for i := range compSet.AlternativeResults {
		if alt := &compSet.AlternativeResults[i]; alt.TotalCosts.LessThan(cheapest.TotalCosts) {
			cheapest = alt
		}
	}
	if cheapest != base {
		recommendations = append(recommendations,
			fmt.Sprintf("Lowest Costs: %s saves %s in charges",
				cheapest.ScenarioName, money.Format(base.TotalCosts.Sub(cheapest.TotalCosts), cur)))
	}

	lowestTax := base
	for i := range compSet.AlternativeResults {
		if alt := &compSet.AlternativeResults[i]; alt.TaxDeduction.LessThan(lowestTax.TaxDeduction) {
			lowestTax = alt
		}
	}
	if lowestTax != base {
		recommendations = append(recommendations,
			fmt.Sprintf("Lowest Taxes: %s saves %s in tax at maturity",
				lowestTax.ScenarioName, money.Format(base.TaxDeduction.Sub(lowestTax.TaxDeduction), cur)))
	}

	return recommendations
}
