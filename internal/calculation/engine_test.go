package calculation

import (
	"errors"
	"testing"
	"time"

	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/domain"
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/product"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testProduct = "test_product"

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func f(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr(v decimal.Decimal) *decimal.Decimal { return &v }

func assertNear(t *testing.T, expected, actual decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, expected.Sub(actual).Abs().LessThan(f("0.01")),
		append([]interface{}{"expected %s, got %s", expected, actual}, msgAndArgs...)...)
}

type fixedResolver struct{ variant product.Variant }

func (r fixedResolver) Resolve(product.VariantOptions) (product.Variant, error) { return r.variant, nil }
func (r fixedResolver) Describe() product.Description {
	return product.Description{ID: r.variant.ProductID, DefaultVariant: r.variant.ID}
}

func engineWith(v product.Variant) *Engine {
	v.ProductID = testProduct
	if v.ID == "" {
		v.ID = "plain"
	}
	registry := product.NewRegistry()
	registry.Register(testProduct, fixedResolver{v})
	return NewEngineWithRegistry(registry)
}

func inputs(years int, payment int64) domain.DailyInputs {
	payments := make(map[int]decimal.Decimal, years)
	for y := 1; y <= years; y++ {
		payments[y] = d(payment)
	}
	return domain.DailyInputs{
		DurationYears:      years,
		Track:              domain.TrackMain,
		AnnualYieldPercent: ptr(decimal.Zero),
		PaymentsByYear:     payments,
	}
}

// TestLogger is a simple logger for testing
type TestLogger struct {
	messages []string
}

func (tl *TestLogger) Debugf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "DEBUG: "+format)
}

func (tl *TestLogger) Infof(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "INFO: "+format)
}

func (tl *TestLogger) Warnf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "WARN: "+format)
}

func (tl *TestLogger) Errorf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "ERROR: "+format)
}

func TestNewEngine(t *testing.T) {
	engine := NewEngine()

	assert.NotNil(t, engine.Products, "Should initialize product registry")
	assert.IsType(t, NopLogger{}, engine.Logger)
}

func TestEngine_SetLogger(t *testing.T) {
	engine := NewEngine()

	customLogger := &TestLogger{}
	engine.SetLogger(customLogger)
	assert.Equal(t, customLogger, engine.Logger)

	_, err := engine.Calculate(string(product.GenericUnitLinked), inputs(5, 100_000))
	require.NoError(t, err)
	assert.NotEmpty(t, customLogger.messages, "calculation should log through the custom logger")

	engine.SetLogger(nil)
	assert.IsType(t, NopLogger{}, engine.Logger)
}

func TestCalculate_Errors(t *testing.T) {
	engine := NewEngine()

	_, err := engine.Calculate("unknown", inputs(5, 1))
	assert.True(t, errors.Is(err, product.ErrUnknownProduct))

	_, err = engine.Calculate(string(product.GenericUnitLinked), inputs(0, 1))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "duration")

	in := inputs(5, 1)
	in.VariantID = "platinum"
	_, err = engine.Calculate(string(product.GenericUnitLinked), in)
	assert.True(t, errors.Is(err, product.ErrUnknownVariant))
}

func TestCalculate_NoCostsNoYield(t *testing.T) {
	result, err := engineWith(product.Variant{}).Calculate(testProduct, inputs(3, 100_000))
	require.NoError(t, err)
	require.Len(t, result.YearlyBreakdown, 3)

	for i, row := range result.YearlyBreakdown {
		assert.Equal(t, i+1, row.Year)
		assert.Equal(t, domain.PeriodYear, row.PeriodType)
		assert.Equal(t, 12, row.PeriodMonths)
		assert.Equal(t, 365, row.PeriodDays)
		assert.True(t, row.TotalContributions.Equal(d(int64(100_000*(i+1)))), "contributions are cumulative")
		assert.True(t, row.EndBalance.Equal(row.TotalContributions))
		assert.True(t, row.CostForYear.IsZero())
		assert.True(t, row.SurrenderValue.Equal(row.EndBalance))
	}
	assert.True(t, result.TotalContributions.Equal(d(300_000)))
	assert.True(t, result.EndBalance.Equal(d(300_000)))
	assert.Equal(t, DefaultCurrency, result.Currency)
}

func TestCalculate_Growth(t *testing.T) {
	in := inputs(2, 1_000_000)
	in.AnnualYieldPercent = ptr(d(10))
	in.YieldByYear = map[int]decimal.Decimal{2: d(0)}

	result, err := engineWith(product.Variant{}).Calculate(testProduct, in)
	require.NoError(t, err)

	first := result.YearlyBreakdown[0]
	assert.True(t, first.InterestForYear.Equal(d(100_000)))
	assert.True(t, first.EndBalance.Equal(d(1_100_000)))
	assert.True(t, first.Invested.InterestForYear.Equal(d(100_000)), "all net payment goes to invested by default")

	second := result.YearlyBreakdown[1]
	assert.True(t, second.InterestForYear.IsZero(), "per-year yield override")
	assert.True(t, second.EndBalance.Equal(d(2_100_000)))
	assert.True(t, result.TotalInterestNet.Equal(d(100_000)))
}

func TestCalculate_VariantDefaultYield(t *testing.T) {
	in := inputs(1, 1_000_000)
	in.AnnualYieldPercent = nil

	result, err := engineWith(product.Variant{DefaultYieldPercent: d(5)}).Calculate(testProduct, in)
	require.NoError(t, err)
	assert.True(t, result.EndBalance.Equal(d(1_050_000)))
}

func TestCalculate_UpfrontAndAssetBased(t *testing.T) {
	variant := product.Variant{
		Main: product.Costs{
			UpfrontCostPercent:   product.Percents(60, 0),
			AssetBasedFeePercent: product.Percents(1.5),
		},
		ManagementFeePercent: d(1),
	}
	result, err := engineWith(variant).Calculate(testProduct, inputs(2, 1_000_000))
	require.NoError(t, err)

	first := result.YearlyBreakdown[0]
	assert.True(t, first.UpfrontCostForYear.Equal(d(600_000)))
	assert.True(t, first.ManagementFeeCostForYear.Equal(d(4_000)))
	assert.True(t, first.AssetBasedCostForYear.Equal(d(6_000)))
	assert.True(t, first.CostForYear.Equal(d(610_000)))
	assert.True(t, first.EndBalance.Equal(d(390_000)))
	assert.True(t, first.TotalContributions.Equal(d(1_000_000)))
	assert.True(t, first.Invested.AssetBasedCostForYear.Equal(d(6_000)))
	assert.True(t, first.Invested.CostForYear.Equal(d(10_000)), "upfront is charged before the split")

	second := result.YearlyBreakdown[1]
	assert.True(t, second.UpfrontCostForYear.IsZero())
	assert.True(t, result.TotalAssetBasedCost.Equal(first.AssetBasedCostForYear.Add(second.AssetBasedCostForYear)))
	assert.True(t, result.TotalCosts.Equal(first.CostForYear.Add(second.CostForYear)))
}

func TestCalculate_CostCascade(t *testing.T) {
	variant := product.Variant{
		Main: product.Costs{
			UpfrontCostPercent: product.Percents(50),
			AdminFeeMonthly:    d(100),
		},
	}
	in := inputs(3, 1_000_000)
	in.Fees = domain.FeeOverrides{
		UpfrontCostPercentByYear: map[int]decimal.Decimal{2: d(10)},
		AdminFeeMonthly:          ptr(d(200)),
		AdminFeeByYear:           map[int]decimal.Decimal{3: d(300)},
	}

	result, err := engineWith(variant).Calculate(testProduct, in)
	require.NoError(t, err)
	rows := result.YearlyBreakdown

	assert.True(t, rows[0].UpfrontCostForYear.Equal(d(500_000)), "schedule")
	assert.True(t, rows[1].UpfrontCostForYear.Equal(d(100_000)), "per-year override")
	assert.True(t, rows[2].UpfrontCostForYear.Equal(d(500_000)), "schedule again")

	assert.True(t, rows[0].AdminCostForYear.Equal(d(2_400)), "scalar override beats schedule")
	assert.True(t, rows[2].AdminCostForYear.Equal(d(3_600)), "per-year override beats scalar")
}

func TestCalculate_FixedCostsSpillIntoClient(t *testing.T) {
	variant := product.Variant{Main: product.Costs{AdminFeeMonthly: d(1_000)}}
	in := inputs(1, 10_000)
	in.InvestedSharePercent = ptr(d(50))

	result, err := engineWith(variant).Calculate(testProduct, in)
	require.NoError(t, err)
	row := result.YearlyBreakdown[0]

	assert.True(t, row.AdminCostForYear.Equal(d(10_000)), "only what the accounts hold is charged")
	assert.True(t, row.Invested.CostForYear.Equal(d(5_000)))
	assert.True(t, row.Client.CostForYear.Equal(d(5_000)))
	assert.True(t, row.EndBalance.IsZero())
	assert.False(t, row.Client.EndBalance.IsNegative())
}

func TestCalculate_PlusCostAndRiskInsurance(t *testing.T) {
	variant := product.Variant{Main: product.Costs{PlusCost: product.Percents(1_000)}}
	in := inputs(2, 100_000)
	in.RiskInsurance = domain.RiskInsuranceSettings{Enabled: true, AnnualFee: d(12_000), IndexPercent: d(10)}

	result, err := engineWith(variant).Calculate(testProduct, in)
	require.NoError(t, err)

	assert.True(t, result.YearlyBreakdown[0].PlusCostForYear.Equal(d(1_000)))
	assert.True(t, result.YearlyBreakdown[0].Invested.PlusCostForYear.Equal(d(1_000)))
	assert.True(t, result.YearlyBreakdown[0].RiskInsuranceCostForYear.Equal(d(12_000)))
	assert.True(t, result.YearlyBreakdown[1].RiskInsuranceCostForYear.Equal(d(13_200)), "indexed yearly")
	assert.True(t, result.TotalRiskInsuranceCost.Equal(d(25_200)))
}

func TestCalculate_BonusTaxCreditWithdrawalSurrender(t *testing.T) {
	variant := product.Variant{
		Main: product.Costs{
			BonusPercent:           product.Percents(1),
			SurrenderChargePercent: product.Percents(20),
		},
		TaxCredit: &product.TaxCreditRule{RatePercent: d(20), CapPerYear: d(130_000)},
	}
	in := inputs(1, 1_000_000)
	in.TaxCredit = domain.TaxCreditSettings{Enabled: true}
	in.InvestedSharePercent = ptr(d(80))
	in.WithdrawalsByYear = map[int]decimal.Decimal{1: d(250_000)}

	result, err := engineWith(variant).Calculate(testProduct, in)
	require.NoError(t, err)
	row := result.YearlyBreakdown[0]

	assert.True(t, row.WealthBonusForYear.Equal(d(10_000)))
	assert.True(t, row.Invested.WealthBonusForYear.Equal(d(10_000)))
	assert.True(t, row.TaxCreditForYear.Equal(d(130_000)), "capped")
	assert.True(t, row.WithdrawalForYear.Equal(d(250_000)))

	// client 200k is emptied first, then 50k from invested (810k)
	assert.True(t, row.Client.EndBalance.IsZero())
	assert.True(t, row.Invested.EndBalance.Equal(d(760_000)))
	assert.True(t, row.TaxBonus.EndBalance.Equal(d(130_000)))
	assert.True(t, row.EndBalance.Equal(d(890_000)))
	assert.True(t, row.SurrenderCharge.Equal(d(178_000)))
	assert.True(t, row.SurrenderValue.Equal(d(712_000)))
	assert.True(t, row.EndingTaxBonusValue.Equal(row.TaxBonus.EndBalance))
	assert.True(t, result.TotalTaxCredit.Equal(d(130_000)))
	assert.True(t, result.TotalBonus.Equal(d(10_000)))
}

func TestCalculate_WithdrawalNeverBelowZero(t *testing.T) {
	in := inputs(1, 100_000)
	in.WithdrawalsByYear = map[int]decimal.Decimal{1: d(1_000_000)}

	result, err := engineWith(product.Variant{}).Calculate(testProduct, in)
	require.NoError(t, err)
	row := result.YearlyBreakdown[0]
	assert.True(t, row.WithdrawalForYear.Equal(d(100_000)))
	assert.True(t, row.EndBalance.IsZero())
}

func TestCalculate_TaxCreditStopYearAndDisabled(t *testing.T) {
	in := inputs(2, 100_000)
	in.TaxCredit = domain.TaxCreditSettings{Enabled: true, RatePercent: d(20), StopYear: 1}

	result, err := engineWith(product.Variant{}).Calculate(testProduct, in)
	require.NoError(t, err)
	assert.True(t, result.YearlyBreakdown[0].TaxCreditForYear.Equal(d(20_000)), "uncapped without a cap")
	assert.True(t, result.YearlyBreakdown[1].TaxCreditForYear.IsZero())

	in.TaxCredit.Enabled = false
	result, err = engineWith(product.Variant{}).Calculate(testProduct, in)
	require.NoError(t, err)
	assert.True(t, result.TotalTaxCredit.IsZero())
}

func TestCalculate_CustomEntries(t *testing.T) {
	in := inputs(2, 100_000)
	in.CustomEntries = []domain.CustomEntryDefinition{
		{ID: "fee", Kind: domain.EntryCost, ValueType: domain.ValueAmount, Value: d(100),
			Account: domain.AccountInvested, Frequency: domain.FrequencyMonthly},
		{ID: "loyalty", Kind: domain.EntryBonus, ValueType: domain.ValuePercent, Value: d(10),
			Account: domain.AccountMain, StartYear: 2},
		{ID: "eseti-only", Kind: domain.EntryCost, ValueType: domain.ValueAmount, Value: d(5_000),
			Account: domain.AccountEseti},
	}

	result, err := engineWith(product.Variant{}).Calculate(testProduct, in)
	require.NoError(t, err)

	first := result.YearlyBreakdown[0]
	assert.True(t, first.Invested.CustomEntriesByID["fee"].Equal(d(1_200)))
	_, hasLoyalty := first.Invested.CustomEntriesByID["loyalty"]
	assert.False(t, hasLoyalty, "starts in year 2")
	_, hasEseti := first.Invested.CustomEntriesByID["eseti-only"]
	assert.False(t, hasEseti, "eseti entries skip the main track")
	assert.True(t, first.CostForYear.Equal(d(1_200)))
	assert.True(t, first.EndBalance.Equal(d(98_800)))

	// year 2: 198 800 balance, fee 1 200 -> 197 600, bonus 10% -> 19 760
	second := result.YearlyBreakdown[1]
	assert.True(t, second.Invested.CustomEntriesByID["loyalty"].Equal(d(19_760)))
	assert.True(t, second.WealthBonusForYear.Equal(d(19_760)))
	assert.True(t, second.EndBalance.Equal(d(217_360)))
	assert.Equal(t, []string{"fee", "loyalty"}, second.CustomEntryIDs())

	in.Track = domain.TrackEseti
	result, err = engineWith(product.Variant{}).Calculate(testProduct, in)
	require.NoError(t, err)
	assert.True(t, result.YearlyBreakdown[0].Invested.CustomEntriesByID["eseti-only"].Equal(d(5_000)))
}

func TestCalculate_EsetiTrackUsesEsetiCosts(t *testing.T) {
	variant := product.Variant{
		Main:  product.Costs{UpfrontCostPercent: product.Percents(50)},
		Eseti: product.Costs{UpfrontCostPercent: product.Percents(2)},
	}
	in := inputs(1, 100_000)
	in.Track = domain.TrackEseti

	result, err := engineWith(variant).Calculate(testProduct, in)
	require.NoError(t, err)
	assert.True(t, result.YearlyBreakdown[0].UpfrontCostForYear.Equal(d(2_000)))
}

func TestCalculate_CalendarMode(t *testing.T) {
	start := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	in := inputs(2, 1_200_000)
	in.DurationYears = 1
	in.StartDate = &start
	in.CalendarMode = true

	result, err := engineWith(product.Variant{}).Calculate(testProduct, in)
	require.NoError(t, err)
	require.Len(t, result.YearlyBreakdown, 2)

	stub := result.YearlyBreakdown[0]
	assert.Equal(t, domain.PeriodPartial, stub.PeriodType)
	assert.Equal(t, 10, stub.PeriodMonths)
	assert.Equal(t, 292, stub.PeriodDays)
	assert.Equal(t, "2025.03.15–2025.12.31", stub.PeriodLabel)
	assertNear(t, d(1_000_000), stub.TotalContributions, "payment is prorated by months")

	last := result.YearlyBreakdown[1]
	assert.Equal(t, domain.PeriodPartial, last.PeriodType)
	assert.Equal(t, 2, last.PeriodMonths)
	assert.Equal(t, 73, last.PeriodDays)
	assert.True(t, last.TotalContributions.Equal(d(1_200_000)), "one policy year pays one year of premium, got %s", last.TotalContributions)
}

func TestCalculate_CalendarModeChargesTwelveMonthsPerYear(t *testing.T) {
	start := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	in := inputs(11, 120_000)
	in.DurationYears = 10
	in.StartDate = &start
	in.CalendarMode = true

	variant := product.Variant{Main: product.Costs{AdminFeeMonthly: d(1_000)}}
	result, err := engineWith(variant).Calculate(testProduct, in)
	require.NoError(t, err)
	require.Len(t, result.YearlyBreakdown, 11)

	months := 0
	admin := decimal.Zero
	for _, row := range result.YearlyBreakdown {
		months += row.PeriodMonths
		admin = admin.Add(row.AdminCostForYear)
	}
	last := result.YearlyBreakdown[len(result.YearlyBreakdown)-1]

	assert.Equal(t, 120, months)
	assert.True(t, last.TotalContributions.Equal(d(1_200_000)), "got %s", last.TotalContributions)
	assert.True(t, admin.Equal(d(120_000)), "got %s", admin)
	assert.True(t, result.YearlyBreakdown[0].TotalContributions.Equal(d(100_000)), "10/12 of a year prorates exactly")
}

func TestCalculate_PartialPeriodGrowthAndFees(t *testing.T) {
	start := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	in := inputs(2, 1_200_000)
	in.DurationYears = 1
	in.StartDate = &start
	in.CalendarMode = true
	in.AnnualYieldPercent = ptr(d(10))

	variant := product.Variant{Main: product.Costs{AssetBasedFeePercent: product.Percents(3.65)}}
	result, err := engineWith(variant).Calculate(testProduct, in)
	require.NoError(t, err)

	stub := result.YearlyBreakdown[0]
	assert.Equal(t, 184, stub.PeriodDays)
	assert.Equal(t, 6, stub.PeriodMonths)
	assertNear(t, d(600_000), stub.TotalContributions)

	// 600 000 grown by 1.1^(184/365) - 1
	assert.True(t, stub.InterestForYear.GreaterThan(d(28_000)))
	assert.True(t, stub.InterestForYear.LessThan(d(30_000)))
	// 3.65% a year accrues 0.01% a day
	expectedFee := stub.TotalContributions.Add(stub.InterestForYear).Mul(f("0.0184"))
	assertNear(t, expectedFee, stub.AssetBasedCostForYear)
}

func TestCalculate_CurrencyFromVariant(t *testing.T) {
	result, err := engineWith(product.Variant{Currency: "eur"}).Calculate(testProduct, inputs(1, 1))
	require.NoError(t, err)
	assert.Equal(t, "EUR", result.Currency)

	in := inputs(1, 1)
	in.Currency = "usd"
	result, err = engineWith(product.Variant{Currency: "EUR"}).Calculate(testProduct, in)
	require.NoError(t, err)
	assert.Equal(t, "USD", result.Currency)
}

func TestCalculate_BuiltInProductsStayNonNegative(t *testing.T) {
	engine := NewEngine()
	for _, id := range product.KnownIDs() {
		t.Run(string(id), func(t *testing.T) {
			in := inputs(12, 240_000)
			in.AnnualYieldPercent = ptr(d(-30))
			in.WithdrawalsByYear = map[int]decimal.Decimal{6: d(500_000)}
			in.TaxCredit.Enabled = true

			result, err := engine.Calculate(string(id), in)
			require.NoError(t, err)
			for _, row := range result.YearlyBreakdown {
				for _, acc := range row.Accounts() {
					assert.False(t, acc.EndBalance.IsNegative(), "year %d", row.Year)
				}
				assert.False(t, row.SurrenderValue.IsNegative())
			}
		})
	}
}
