package calculation

import (
	"fmt"
	"strings"

	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/domain"
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/product"
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/pkg/dateutil"
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/pkg/money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when neither the inputs nor the variant name one.
const DefaultCurrency = "HUF"

// Engine projects one contribution track of a policy period by period
type Engine struct {
	Products *product.Registry
	Logger   Logger
}

// NewEngine creates an engine over the built-in product registry.
func NewEngine() *Engine {
	return NewEngineWithRegistry(product.DefaultRegistry())
}

// NewEngineWithRegistry creates an engine over a custom product registry.
func NewEngineWithRegistry(registry *product.Registry) *Engine {
	return &Engine{
		Products: registry,
		Logger:   NopLogger{},
	}
}

// SetLogger sets the logger for the engine. If nil is provided, a no-op logger is used.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// Periods returns the projection periods the inputs describe: calendar
// periods when calendar mode has a start date, full policy years otherwise.
func Periods(in domain.DailyInputs) []dateutil.Period {
	if in.CalendarMode && in.StartDate != nil {
		return dateutil.CalendarPeriods(*in.StartDate, in.DurationYears)
	}
	return dateutil.PolicyYears(in.DurationYears)
}

// Calculate runs the projection of one track. Errors are returned only for
// an unknown product, an unresolvable variant, or a non-positive duration.
func (e *Engine) Calculate(productID string, in domain.DailyInputs) (*domain.CalculationResult, error) {
	if in.DurationYears < 1 {
		return nil, fmt.Errorf("duration must be at least 1 year, got %d", in.DurationYears)
	}

	id := product.ID(strings.ToLower(strings.TrimSpace(productID)))
	variant, err := e.Products.Resolve(id, product.VariantOptions{
		VariantID:     in.VariantID,
		Currency:      in.Currency,
		DurationYears: in.DurationYears,
	})
	if err != nil {
		return nil, err
	}

	currency := in.Currency
	if currency == "" {
		currency = variant.Currency
	}
	if currency == "" {
		currency = DefaultCurrency
	}

	track := in.Track
	if track == "" {
		track = domain.TrackMain
	}

	periods := Periods(in)
	e.Logger.Debugf("calculating %s/%s track=%s periods=%d", id, variant.ID, track, len(periods))

	p := &projector{
		in:       in,
		variant:  variant,
		track:    track,
		logger:   e.Logger,
		accounts: &policyAccounts{},
	}

	result := &domain.CalculationResult{
		Currency:        strings.ToUpper(currency),
		YearlyBreakdown: make([]domain.YearRow, 0, len(periods)),
	}
	for _, period := range periods {
		row := p.step(period)
		result.YearlyBreakdown = append(result.YearlyBreakdown, row)
	}
	summarize(result)

	e.Logger.Debugf("calculated %s track=%s end balance %s", id, track, result.EndBalance.StringFixed(2))
	return result, nil
}

// projector carries the running state of one Calculate call
type projector struct {
	in            domain.DailyInputs
	variant       product.Variant
	track         domain.Track
	logger        Logger
	accounts      *policyAccounts
	contributions decimal.Decimal
}

func (p *projector) investedShare() decimal.Decimal {
	share := p.variant.InvestedSharePercent
	if p.in.InvestedSharePercent != nil {
		share = *p.in.InvestedSharePercent
	} else if share.IsZero() {
		share = decimal.NewFromInt(100)
	}
	return money.Ratio(decimal.Max(decimal.Zero, decimal.Min(share, decimal.NewFromInt(100))))
}

func (p *projector) step(period dateutil.Period) domain.YearRow {
	year := period.Index
	f := monthFraction(period.Months)
	costs := resolveYearCosts(p.in.Fees, p.variant, p.track, year)
	acc := p.accounts
	acc.startPeriod()

	row := domain.YearRow{
		Year:         year,
		PeriodType:   domain.PeriodYear,
		PeriodMonths: period.Months,
		PeriodDays:   period.Days,
		PeriodLabel:  period.Label(),
	}
	if period.Partial {
		row.PeriodType = domain.PeriodPartial
	}

	// 1. payment, upfront cost, split
	payment := f.of(money.Max0(p.in.PaymentsByYear[year]))
	upfront := payment.Mul(money.Ratio(costs.upfrontPercent))
	upfront = decimal.Max(decimal.Zero, decimal.Min(upfront, payment))
	net := payment.Sub(upfront)
	toInvested := net.Mul(p.investedShare())
	acc.invested.credit(toInvested)
	acc.client.credit(net.Sub(toInvested))
	p.contributions = p.contributions.Add(payment)
	row.UpfrontCostForYear = upfront

	// 2. growth
	g := growthFactor(yieldPercent(p.in, p.variant, year), period.Days).Sub(one)
	for _, a := range acc.all() {
		interest := a.balance.Mul(g)
		a.credit(interest)
		a.flows.InterestForYear = interest
		row.InterestForYear = row.InterestForYear.Add(interest)
	}

	// 3. asset-based costs
	accrual := dayFraction(period.Days)
	for _, a := range acc.all() {
		base := money.Max0(a.balance)
		management := a.charge(accrual.of(base.Mul(money.Ratio(costs.managementPercent))))
		assetBased := a.charge(accrual.of(base.Mul(money.Ratio(costs.assetBasedPercent))))
		maintenance := a.charge(accrual.of(base.Mul(money.Ratio(costs.maintenancePercent))))
		a.flows.AssetBasedCostForYear = assetBased
		row.ManagementFeeCostForYear = row.ManagementFeeCostForYear.Add(management)
		row.AssetBasedCostForYear = row.AssetBasedCostForYear.Add(assetBased)
		row.AccountMaintenanceCostForYear = row.AccountMaintenanceCostForYear.Add(maintenance)
	}

	// 4. fixed costs
	adminInv, adminCli := acc.chargeFixed(costs.adminMonthly.Mul(decimal.NewFromInt(int64(period.Months))))
	row.AdminCostForYear = adminInv.Add(adminCli)

	riskInv, riskCli := acc.chargeFixed(f.of(riskInsuranceFee(p.in.RiskInsurance, year)))
	row.RiskInsuranceCostForYear = riskInv.Add(riskCli)

	plusInv, plusCli := acc.chargeFixed(f.of(costs.plusCost))
	acc.invested.flows.PlusCostForYear = plusInv
	acc.client.flows.PlusCostForYear = plusCli
	row.PlusCostForYear = plusInv.Add(plusCli)

	// 5. bonus
	bonus := f.of(money.Max0(acc.client.balance.Add(acc.invested.balance)).
		Mul(money.Ratio(costs.bonusPercent)))
	acc.invested.credit(bonus)
	acc.invested.flows.WealthBonusForYear = bonus
	row.WealthBonusForYear = bonus

	// 6. custom entries
	customCosts := p.applyCustomEntries(year, period.Months, f, &row)

	// 7. tax credit
	row.TaxCreditForYear = p.taxCredit(year, payment, f)
	acc.taxBonus.credit(row.TaxCreditForYear)

	// 8. withdrawal
	row.WithdrawalForYear = acc.withdraw(p.in.WithdrawalsByYear[year])

	// 9. surrender
	row.TotalContributions = p.contributions
	row.EndBalance = acc.total()
	row.SurrenderCharge = money.Max0(row.EndBalance).Mul(money.Ratio(money.Max0(costs.surrenderPercent)))
	row.SurrenderValue = row.EndBalance.Sub(row.SurrenderCharge)

	row.CostForYear = money.Sum(
		row.UpfrontCostForYear,
		row.AdminCostForYear,
		row.AccountMaintenanceCostForYear,
		row.ManagementFeeCostForYear,
		row.AssetBasedCostForYear,
		row.PlusCostForYear,
		row.RiskInsuranceCostForYear,
		customCosts,
	)

	row.Client = acc.client.breakdown()
	row.Invested = acc.invested.breakdown()
	row.TaxBonus = acc.taxBonus.breakdown()
	row.EndingClientValue = row.Client.EndBalance
	row.EndingInvestedValue = row.Invested.EndBalance
	row.EndingTaxBonusValue = row.TaxBonus.EndBalance

	p.logger.Debugf("year %d (%s): payment=%s interest=%s cost=%s end=%s",
		year, row.PeriodLabel, payment.StringFixed(2), row.InterestForYear.StringFixed(2),
		row.CostForYear.StringFixed(2), row.EndBalance.StringFixed(2))
	return row
}

// applyCustomEntries applies the user-defined entries active in the year and
// returns the total charged as cost.
func (p *projector) applyCustomEntries(year, months int, f fraction, row *domain.YearRow) decimal.Decimal {
	charged := decimal.Zero
	for _, entry := range p.in.CustomEntries {
		if !entry.ActiveIn(year) {
			continue
		}
		target := p.accounts.target(entry.Account, p.track)
		if target == nil {
			continue
		}

		var amount decimal.Decimal
		switch entry.ValueType {
		case domain.ValuePercent:
			amount = f.of(money.Max0(target.balance).Mul(money.Ratio(entry.ValueFor(year))))
		default:
			if entry.Frequency == domain.FrequencyMonthly {
				amount = entry.ValueFor(year).Mul(decimal.NewFromInt(int64(months)))
			} else {
				amount = f.of(entry.ValueFor(year))
			}
		}
		amount = money.Max0(amount)

		if entry.Kind == domain.EntryBonus {
			target.credit(amount)
			target.flows.WealthBonusForYear = target.flows.WealthBonusForYear.Add(amount)
			row.WealthBonusForYear = row.WealthBonusForYear.Add(amount)
			target.recordEntry(entry.ID, amount)
			continue
		}

		taken := target.charge(amount)
		target.recordEntry(entry.ID, taken)
		charged = charged.Add(taken)
	}
	return charged
}

func (p *projector) taxCredit(year int, payment decimal.Decimal, f fraction) decimal.Decimal {
	settings := p.in.TaxCredit
	if !settings.Enabled || (settings.StopYear > 0 && year > settings.StopYear) {
		return decimal.Zero
	}
	rate, capPerYear := taxCreditTerms(settings, p.variant)
	credit := payment.Mul(money.Ratio(rate))
	if capPerYear.IsPositive() {
		credit = decimal.Min(credit, f.of(capPerYear))
	}
	return money.Max0(credit)
}

// summarize fills the result totals from the rows.
func summarize(result *domain.CalculationResult) {
	assetCharges := decimal.Zero
	interest := decimal.Zero
	for _, row := range result.YearlyBreakdown {
		result.TotalCosts = result.TotalCosts.Add(row.CostForYear)
		result.TotalBonus = result.TotalBonus.Add(row.WealthBonusForYear)
		result.TotalTaxCredit = result.TotalTaxCredit.Add(row.TaxCreditForYear)
		result.TotalAssetBasedCost = result.TotalAssetBasedCost.Add(row.AssetBasedCostForYear)
		result.TotalRiskInsuranceCost = result.TotalRiskInsuranceCost.Add(row.RiskInsuranceCostForYear)
		interest = interest.Add(row.InterestForYear)
		assetCharges = assetCharges.Add(money.Sum(
			row.ManagementFeeCostForYear,
			row.AssetBasedCostForYear,
			row.AccountMaintenanceCostForYear,
		))
	}
	result.TotalInterestNet = interest.Sub(assetCharges)
	if last := result.LastRow(); last != nil {
		result.TotalContributions = last.TotalContributions
		result.EndBalance = last.EndBalance
	}
}
