package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// PeriodType distinguishes full policy years from calendar stub periods
type PeriodType string

const (
	PeriodYear    PeriodType = "year"
	PeriodPartial PeriodType = "partial"
)

// AccountBreakdown is the reduced per-sub-account slice of a YearRow
type AccountBreakdown struct {
	EndBalance            decimal.Decimal `json:"endBalance"`
	InterestForYear       decimal.Decimal `json:"interestForYear"`
	CostForYear           decimal.Decimal `json:"costForYear"`
	AssetBasedCostForYear decimal.Decimal `json:"assetBasedCostForYear"`
	PlusCostForYear       decimal.Decimal `json:"plusCostForYear"`
	WealthBonusForYear    decimal.Decimal `json:"wealthBonusForYear"`

	// CustomEntriesByID holds user-defined cost/bonus amounts attributed to this sub-account.
	CustomEntriesByID map[string]decimal.Decimal `json:"customEntriesById,omitempty"`
}

// YearRow represents the engine result for a single projection period
type YearRow struct {
	Year         int        `json:"year"`
	PeriodType   PeriodType `json:"periodType"`
	PeriodMonths int        `json:"periodMonths"`
	PeriodDays   int        `json:"periodDays"` // 0 means unknown; consumers assume 365
	PeriodLabel  string     `json:"periodLabel,omitempty"`

	TotalContributions decimal.Decimal `json:"totalContributions"` // cumulative
	EndBalance         decimal.Decimal `json:"endBalance"`
	InterestForYear    decimal.Decimal `json:"interestForYear"`

	CostForYear                   decimal.Decimal `json:"costForYear"`
	UpfrontCostForYear            decimal.Decimal `json:"upfrontCostForYear"`
	AdminCostForYear              decimal.Decimal `json:"adminCostForYear"`
	AccountMaintenanceCostForYear decimal.Decimal `json:"accountMaintenanceCostForYear"`
	ManagementFeeCostForYear      decimal.Decimal `json:"managementFeeCostForYear"`
	AssetBasedCostForYear         decimal.Decimal `json:"assetBasedCostForYear"`
	PlusCostForYear               decimal.Decimal `json:"plusCostForYear"`
	RiskInsuranceCostForYear      decimal.Decimal `json:"riskInsuranceCostForYear"`

	WealthBonusForYear decimal.Decimal `json:"wealthBonusForYear"`
	TaxCreditForYear   decimal.Decimal `json:"taxCreditForYear"`
	WithdrawalForYear  decimal.Decimal `json:"withdrawalForYear"`
	SurrenderCharge    decimal.Decimal `json:"surrenderCharge"`
	SurrenderValue     decimal.Decimal `json:"surrenderValue"`

	EndingInvestedValue decimal.Decimal `json:"endingInvestedValue"`
	EndingClientValue   decimal.Decimal `json:"endingClientValue"`
	EndingTaxBonusValue decimal.Decimal `json:"endingTaxBonusValue"`

	Client   AccountBreakdown `json:"client"`
	Invested AccountBreakdown `json:"invested"`
	TaxBonus AccountBreakdown `json:"taxBonus"`
}

// IsPartial reports whether the row covers a calendar stub period
func (r *YearRow) IsPartial() bool {
	return r.PeriodType == PeriodPartial
}

// Accounts returns pointers to the three sub-accounts in client, invested, taxBonus order.
func (r *YearRow) Accounts() []*AccountBreakdown {
	return []*AccountBreakdown{&r.Client, &r.Invested, &r.TaxBonus}
}

// CustomEntryIDs returns the sorted union of custom entry ids across sub-accounts.
func (r *YearRow) CustomEntryIDs() []string {
	seen := make(map[string]struct{})
	for _, acc := range r.Accounts() {
		for id := range acc.CustomEntriesByID {
			seen[id] = struct{}{}
		}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// NetRow is the after-tax view of a YearRow
type NetRow struct {
	Year         int             `json:"year"`
	GrossBalance decimal.Decimal `json:"grossBalance"`
	GrossProfit  decimal.Decimal `json:"grossProfit"`
	TaxRate      decimal.Decimal `json:"taxRate"` // ratio, 0.28 for 28%
	TaxDeduction decimal.Decimal `json:"taxDeduction"`
	NetProfit    decimal.Decimal `json:"netProfit"`
	NetBalance   decimal.Decimal `json:"netBalance"`
}

// CalculationResult is the Calculation Engine output for one contribution track
type CalculationResult struct {
	Currency               string          `json:"currency"`
	TotalContributions     decimal.Decimal `json:"totalContributions"`
	TotalCosts             decimal.Decimal `json:"totalCosts"`
	TotalBonus             decimal.Decimal `json:"totalBonus"`
	TotalTaxCredit         decimal.Decimal `json:"totalTaxCredit"`
	TotalInterestNet       decimal.Decimal `json:"totalInterestNet"`
	TotalAssetBasedCost    decimal.Decimal `json:"totalAssetBasedCost"`
	TotalRiskInsuranceCost decimal.Decimal `json:"totalRiskInsuranceCost"`
	EndBalance             decimal.Decimal `json:"endBalance"`
	YearlyBreakdown        []YearRow       `json:"yearlyBreakdown"`
}

// LastRow returns the final period or nil for an empty breakdown.
func (cr *CalculationResult) LastRow() *YearRow {
	if cr == nil || len(cr.YearlyBreakdown) == 0 {
		return nil
	}
	return &cr.YearlyBreakdown[len(cr.YearlyBreakdown)-1]
}
