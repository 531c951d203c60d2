package compare

import (
	"context"
	"strings"
	"testing"

	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/config"
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/domain"
	"github.com/shopspring/decimal"
)

func testConfig() *config.Configuration {
	yield := decimal.NewFromInt(6)
	lowYield := decimal.NewFromInt(2)
	return &config.Configuration{Scenarios: []domain.Scenario{
		{
			Name:               "base",
			Product:            "generic_unit_linked",
			DurationYears:      10,
			AnnualYieldPercent: &yield,
			Main:               domain.TrackSettings{BaseYear1Payment: decimal.NewFromInt(240_000)},
		},
		{
			Name:               "cautious",
			Product:            "generic_unit_linked",
			DurationYears:      10,
			AnnualYieldPercent: &lowYield,
			Main:               domain.TrackSettings{BaseYear1Payment: decimal.NewFromInt(240_000)},
		},
	}}
}

func TestCompareEngine_Templates(t *testing.T) {
	engine := NewCompareEngine(nil)

	compSet, err := engine.Compare(context.Background(), testConfig(), CompareOptions{
		Templates: []string{"yield_high", "payment_plus_10"},
	})
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}

	if compSet.BaseScenarioName != "base" {
		t.Errorf("Expected base scenario 'base', got %s", compSet.BaseScenarioName)
	}
	if len(compSet.AlternativeResults) != 2 {
		t.Fatalf("Expected 2 alternatives, got %d", len(compSet.AlternativeResults))
	}

	high := compSet.AlternativeResults[0]
	if high.ScenarioName != "base_yield_high" {
		t.Errorf("Expected name base_yield_high, got %s", high.ScenarioName)
	}
	if high.Description == "" {
		t.Error("Expected template description to be carried")
	}
	if !high.NetDiffFromBase.IsPositive() {
		t.Errorf("Expected a higher yield to raise the net balance, diff %s", high.NetDiffFromBase)
	}
	if !high.NetDiffFromBase.Equal(high.NetBalance.Sub(compSet.BaseResult.NetBalance)) {
		t.Error("NetDiffFromBase does not match the balances")
	}

	more := compSet.AlternativeResults[1]
	if !more.TotalContributions.GreaterThan(compSet.BaseResult.TotalContributions) {
		t.Error("Expected larger payments to raise contributions")
	}

	if len(compSet.Recommendations) == 0 || !strings.HasPrefix(compSet.Recommendations[0], "Best Net Balance:") {
		t.Errorf("Expected a best net balance recommendation, got %v", compSet.Recommendations)
	}
}

func TestCompareEngine_Errors(t *testing.T) {
	engine := NewCompareEngine(nil)
	ctx := context.Background()

	if _, err := engine.Compare(ctx, testConfig(), CompareOptions{BaseScenarioName: "missing"}); err == nil {
		t.Error("Expected error for missing base scenario")
	}
	if _, err := engine.Compare(ctx, testConfig(), CompareOptions{Templates: []string{"nope"}}); err == nil {
		t.Error("Expected error for unknown template")
	}
	if _, err := engine.CompareScenarios(ctx, testConfig(), "base", []string{"missing"}); err == nil {
		t.Error("Expected error for missing alternative")
	}

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := engine.Compare(canceled, testConfig(), CompareOptions{}); err == nil {
		t.Error("Expected error for canceled context")
	}
}

func TestCompareEngine_CompareScenarios(t *testing.T) {
	engine := NewCompareEngine(nil)

	compSet, err := engine.CompareScenarios(context.Background(), testConfig(), "base", []string{"cautious"})
	if err != nil {
		t.Fatalf("CompareScenarios failed: %v", err)
	}
	if len(compSet.AlternativeResults) != 1 {
		t.Fatalf("Expected 1 alternative, got %d", len(compSet.AlternativeResults))
	}
	cautious := compSet.AlternativeResults[0]
	if !cautious.NetDiffFromBase.IsNegative() {
		t.Errorf("Expected lower yield to reduce the net balance, diff %s", cautious.NetDiffFromBase)
	}
	if !cautious.TotalContributions.Equal(compSet.BaseResult.TotalContributions) {
		t.Error("Expected equal contributions")
	}
}

func TestMetricsCalculator_CalculateComparison(t *testing.T) {
	mc := NewMetricsCalculator()
	base := ComparisonResult{NetBalance: decimal.NewFromInt(1000), TotalCosts: decimal.NewFromInt(100), TaxDeduction: decimal.NewFromInt(50)}
	alt := ComparisonResult{NetBalance: decimal.NewFromInt(1100), TotalCosts: decimal.NewFromInt(80), TaxDeduction: decimal.NewFromInt(60)}

	got := mc.CalculateComparison(alt, base)
	if !got.NetDiffFromBase.Equal(decimal.NewFromInt(100)) {
		t.Errorf("Expected net diff 100, got %s", got.NetDiffFromBase)
	}
	if !got.NetPctFromBase.Equal(decimal.NewFromInt(10)) {
		t.Errorf("Expected 10%% change, got %s", got.NetPctFromBase)
	}
	if !got.CostDiffFromBase.Equal(decimal.NewFromInt(-20)) {
		t.Errorf("Expected cost diff -20, got %s", got.CostDiffFromBase)
	}
	if !got.TaxDiffFromBase.Equal(decimal.NewFromInt(10)) {
		t.Errorf("Expected tax diff 10, got %s", got.TaxDiffFromBase)
	}

	zeroBase := mc.CalculateComparison(alt, ComparisonResult{})
	if !zeroBase.NetPctFromBase.IsZero() {
		t.Error("Expected zero percent change against a zero base")
	}
}

func TestGenerateRecommendations(t *testing.T) {
	base := &ComparisonResult{ScenarioName: "base", Currency: "HUF",
		NetBalance: decimal.NewFromInt(1000), TotalCosts: decimal.NewFromInt(100), TaxDeduction: decimal.NewFromInt(50)}

	if recs := GenerateRecommendations(&ComparisonSet{BaseResult: base}); len(recs) != 0 {
		t.Errorf("Expected no recommendations without alternatives, got %v", recs)
	}

	recs := GenerateRecommendations(&ComparisonSet{
		BaseResult: base,
		AlternativeResults: []ComparisonResult{
			{ScenarioName: "rich", NetBalance: decimal.NewFromInt(2000), TotalCosts: decimal.NewFromInt(150), TaxDeduction: decimal.NewFromInt(70)},
			{ScenarioName: "lean", NetBalance: decimal.NewFromInt(900), TotalCosts: decimal.NewFromInt(40), TaxDeduction: decimal.NewFromInt(20)},
		},
	})
	if len(recs) != 3 {
		t.Fatalf("Expected 3 recommendations, got %v", recs)
	}
	if !strings.Contains(recs[0], "rich") || !strings.Contains(recs[1], "lean") || !strings.Contains(recs[2], "lean") {
		t.Errorf("Unexpected recommendations: %v", recs)
	}
}
