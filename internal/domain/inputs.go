package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind says whether a custom entry reduces or increases the balance
type EntryKind string

const (
	EntryCost  EntryKind = "cost"
	EntryBonus EntryKind = "bonus"
)

// EntryValueType says how a custom entry's value is interpreted
type EntryValueType string

const (
	ValuePercent EntryValueType = "percent" // percent of the target balance per year
	ValueAmount  EntryValueType = "amount"  // fixed amount per frequency unit
)

// EntryAccount names the ledger a custom entry is attributed to
type EntryAccount string

const (
	AccountClient   EntryAccount = "client"
	AccountInvested EntryAccount = "invested"
	AccountTaxBonus EntryAccount = "taxBonus"
	AccountMain     EntryAccount = "main"
	AccountEseti    EntryAccount = "eseti"
)

// EntryFrequency controls how an amount entry is repeated inside a period
type EntryFrequency string

const (
	FrequencyYearly  EntryFrequency = "yearly"
	FrequencyMonthly EntryFrequency = "monthly"
)

// CustomEntryDefinition is a user-authored recurring cost or bonus
type CustomEntryDefinition struct {
	ID          string                  `yaml:"id" json:"id"`
	Label       string                  `yaml:"label" json:"label"`
	Kind        EntryKind               `yaml:"kind" json:"kind"`
	ValueType   EntryValueType          `yaml:"value_type" json:"valueType"`
	Value       decimal.Decimal         `yaml:"value" json:"value"`
	ValueByYear map[int]decimal.Decimal `yaml:"value_by_year,omitempty" json:"valueByYear,omitempty"`
	Account     EntryAccount            `yaml:"account" json:"account"`
	Frequency   EntryFrequency          `yaml:"frequency,omitempty" json:"frequency,omitempty"`
	StartYear   int                     `yaml:"start_year,omitempty" json:"startYear,omitempty"` // 0 = from year 1
	StopYear    int                     `yaml:"stop_year,omitempty" json:"stopYear,omitempty"`   // 0 = until the end
}

// ActiveIn reports whether the entry applies in the given policy year.
func (c CustomEntryDefinition) ActiveIn(year int) bool {
	if c.StartYear > 0 && year < c.StartYear {
		return false
	}
	if c.StopYear > 0 && year > c.StopYear {
		return false
	}
	return true
}

// ValueFor returns the per-year override or the base value.
func (c CustomEntryDefinition) ValueFor(year int) decimal.Decimal {
	if v, ok := c.ValueByYear[year]; ok {
		return v
	}
	return c.Value
}

// TaxCreditSettings configures the pension tax credit credited to the taxBonus sub-account
type TaxCreditSettings struct {
	Enabled     bool            `yaml:"enabled" json:"enabled"`
	RatePercent decimal.Decimal `yaml:"rate_percent" json:"ratePercent"`
	CapPerYear  decimal.Decimal `yaml:"cap_per_year" json:"capPerYear"`
	StopYear    int             `yaml:"stop_year,omitempty" json:"stopYear,omitempty"`
}

// RiskInsuranceSettings configures the optional rider fee
type RiskInsuranceSettings struct {
	Enabled      bool            `yaml:"enabled" json:"enabled"`
	AnnualFee    decimal.Decimal `yaml:"annual_fee" json:"annualFee"`
	IndexPercent decimal.Decimal `yaml:"index_percent" json:"indexPercent"`
}

// FeeOverrides carries user overrides of the product fee tables.
// Per-year maps win over scalars, which win over the product schedule.
type FeeOverrides struct {
	UpfrontCostPercentByYear        map[int]decimal.Decimal `yaml:"upfront_cost_percent_by_year,omitempty" json:"upfrontCostPercentByYear,omitempty"`
	AdminFeeMonthly                 *decimal.Decimal        `yaml:"admin_fee_monthly,omitempty" json:"adminFeeMonthly,omitempty"`
	AdminFeeByYear                  map[int]decimal.Decimal `yaml:"admin_fee_by_year,omitempty" json:"adminFeeByYear,omitempty"`
	AccountMaintenancePercentByYear map[int]decimal.Decimal `yaml:"account_maintenance_percent_by_year,omitempty" json:"accountMaintenancePercentByYear,omitempty"`
	ManagementFeePercent            *decimal.Decimal        `yaml:"management_fee_percent,omitempty" json:"managementFeePercent,omitempty"`
	AssetBasedFeePercentByYear      map[int]decimal.Decimal `yaml:"asset_based_fee_percent_by_year,omitempty" json:"assetBasedFeePercentByYear,omitempty"`
	PlusCostByYear                  map[int]decimal.Decimal `yaml:"plus_cost_by_year,omitempty" json:"plusCostByYear,omitempty"`
	BonusPercentByYear              map[int]decimal.Decimal `yaml:"bonus_percent_by_year,omitempty" json:"bonusPercentByYear,omitempty"`
	SurrenderChargePercentByYear    map[int]decimal.Decimal `yaml:"surrender_charge_percent_by_year,omitempty" json:"surrenderChargePercentByYear,omitempty"`
}

// Clone returns a deep copy of the override maps.
func (f FeeOverrides) Clone() FeeOverrides {
	out := f
	out.UpfrontCostPercentByYear = cloneYearMap(f.UpfrontCostPercentByYear)
	out.AdminFeeByYear = cloneYearMap(f.AdminFeeByYear)
	out.AccountMaintenancePercentByYear = cloneYearMap(f.AccountMaintenancePercentByYear)
	out.AssetBasedFeePercentByYear = cloneYearMap(f.AssetBasedFeePercentByYear)
	out.PlusCostByYear = cloneYearMap(f.PlusCostByYear)
	out.BonusPercentByYear = cloneYearMap(f.BonusPercentByYear)
	out.SurrenderChargePercentByYear = cloneYearMap(f.SurrenderChargePercentByYear)
	return out
}

// DailyInputs is the fully resolved configuration consumed by the Calculation Engine.
// One DailyInputs describes one contribution track.
type DailyInputs struct {
	Currency      string     `json:"currency"`
	DurationYears int        `json:"durationYears"`
	StartDate     *time.Time `json:"startDate,omitempty"`
	CalendarMode  bool       `json:"calendarMode"`
	Track         Track      `json:"track"`
	VariantID     string     `json:"variantId,omitempty"`

	AnnualYieldPercent *decimal.Decimal        `json:"annualYieldPercent,omitempty"` // nil = variant default
	YieldByYear        map[int]decimal.Decimal `json:"yieldByYear,omitempty"`

	PaymentsByYear    map[int]decimal.Decimal `json:"paymentsByYear"`
	WithdrawalsByYear map[int]decimal.Decimal `json:"withdrawalsByYear"`

	Fees                 FeeOverrides     `json:"fees"`
	InvestedSharePercent *decimal.Decimal `json:"investedSharePercent,omitempty"`

	TaxCredit     TaxCreditSettings       `json:"taxCredit"`
	RiskInsurance RiskInsuranceSettings   `json:"riskInsurance"`
	CustomEntries []CustomEntryDefinition `json:"customEntries,omitempty"`
}
