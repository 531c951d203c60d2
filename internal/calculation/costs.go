package calculation

import (
	"math"

	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/domain"
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/product"
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/pkg/dateutil"
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/pkg/money"
	"github.com/shopspring/decimal"
)

var (
	one         = decimal.NewFromInt(1)
	twelve      = decimal.NewFromInt(12)
	daysPerYear = decimal.NewFromInt(dateutil.DaysPerYear)
)

// resolve applies the cost-base cascade: per-year override, then scalar
// override, then the product schedule (last entry carries forward), then zero.
func resolve(byYear map[int]decimal.Decimal, scalar *decimal.Decimal, schedule product.Schedule, year int) decimal.Decimal {
	if v, ok := byYear[year]; ok {
		return v
	}
	if scalar != nil {
		return *scalar
	}
	if v, ok := schedule.At(year); ok {
		return v
	}
	return decimal.Zero
}

// yearCosts are the resolved fee parameters of one policy year
type yearCosts struct {
	upfrontPercent     decimal.Decimal
	adminMonthly       decimal.Decimal
	maintenancePercent decimal.Decimal
	managementPercent  decimal.Decimal
	assetBasedPercent  decimal.Decimal
	plusCost           decimal.Decimal // annual amount
	bonusPercent       decimal.Decimal
	surrenderPercent   decimal.Decimal
}

func resolveYearCosts(fees domain.FeeOverrides, variant product.Variant, track domain.Track, year int) yearCosts {
	costs := variant.CostsFor(track)
	adminSchedule := product.Schedule{costs.AdminFeeMonthly}
	managementSchedule := product.Schedule{variant.ManagementFeePercent}

	return yearCosts{
		upfrontPercent:     resolve(fees.UpfrontCostPercentByYear, nil, costs.UpfrontCostPercent, year),
		adminMonthly:       resolve(fees.AdminFeeByYear, fees.AdminFeeMonthly, adminSchedule, year),
		maintenancePercent: resolve(fees.AccountMaintenancePercentByYear, nil, costs.AccountMaintenancePercent, year),
		managementPercent:  resolve(nil, fees.ManagementFeePercent, managementSchedule, year),
		assetBasedPercent:  resolve(fees.AssetBasedFeePercentByYear, nil, costs.AssetBasedFeePercent, year),
		plusCost:           resolve(fees.PlusCostByYear, nil, costs.PlusCost, year),
		bonusPercent:       resolve(fees.BonusPercentByYear, nil, costs.BonusPercent, year),
		surrenderPercent:   resolve(fees.SurrenderChargePercentByYear, nil, costs.SurrenderChargePercent, year),
	}
}

// yieldPercent resolves the yield of a year: per-year override, scenario
// yield, then the variant default.
func yieldPercent(in domain.DailyInputs, variant product.Variant, year int) decimal.Decimal {
	return resolve(in.YieldByYear, in.AnnualYieldPercent, product.Schedule{variant.DefaultYieldPercent}, year)
}

// growthFactor returns (1+yield)^(days/365). Full years stay exact.
func growthFactor(yieldPct decimal.Decimal, days int) decimal.Decimal {
	base := one.Add(money.Ratio(yieldPct))
	switch {
	case days <= 0:
		return one
	case days == dateutil.DaysPerYear:
		return base
	case !base.IsPositive():
		return decimal.Zero
	}
	f := math.Pow(base.InexactFloat64(), float64(days)/dateutil.DaysPerYear)
	return money.Numeric(f)
}

// fraction scales annual amounts to a part of the year. Amounts are
// multiplied before dividing so whole results stay exact.
type fraction struct {
	num, den decimal.Decimal
}

func (fr fraction) of(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(fr.num).Div(fr.den)
}

// dayFraction is days/365, the accrual share of an annual rate.
func dayFraction(days int) fraction {
	return fraction{num: decimal.NewFromInt(int64(days)), den: daysPerYear}
}

// monthFraction is months/12, the proration factor of annual amounts.
func monthFraction(months int) fraction {
	return fraction{num: decimal.NewFromInt(int64(months)), den: twelve}
}

// riskInsuranceFee returns the annual rider fee indexed to the given year.
func riskInsuranceFee(settings domain.RiskInsuranceSettings, year int) decimal.Decimal {
	if !settings.Enabled || year < 1 {
		return decimal.Zero
	}
	growth := one.Add(money.Ratio(settings.IndexPercent))
	return settings.AnnualFee.Mul(growth.Pow(decimal.NewFromInt(int64(year - 1))))
}

// taxCreditTerms returns the credit rate and cap, falling back to the
// variant's statutory rule for values the inputs leave at zero. A zero cap
// means uncapped.
func taxCreditTerms(settings domain.TaxCreditSettings, variant product.Variant) (rate, capPerYear decimal.Decimal) {
	rate = settings.RatePercent
	capPerYear = settings.CapPerYear
	if variant.TaxCredit != nil {
		if rate.IsZero() {
			rate = variant.TaxCredit.RatePercent
		}
		if capPerYear.IsZero() {
			capPerYear = variant.TaxCredit.CapPerYear
		}
	}
	return rate, capPerYear
}
