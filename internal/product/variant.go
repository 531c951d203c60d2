package product

import (
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/domain"
	"github.com/shopspring/decimal"
)

// Schedule is a per-policy-year table starting at year 1. Years past the
// end of the table reuse the last entry.
type Schedule []decimal.Decimal

// At returns the scheduled value for a policy year. The second result is
// false when the schedule is empty.
func (s Schedule) At(year int) (decimal.Decimal, bool) {
	if len(s) == 0 {
		return decimal.Zero, false
	}
	if year < 1 {
		year = 1
	}
	if year > len(s) {
		return s[len(s)-1], true
	}
	return s[year-1], true
}

// Percents builds a schedule from float literals. Only for static tables.
func Percents(values ...float64) Schedule {
	s := make(Schedule, len(values))
	for i, v := range values {
		s[i] = decimal.NewFromFloat(v)
	}
	return s
}

// Costs are the fee and bonus tables of one contribution track
type Costs struct {
	UpfrontCostPercent        Schedule        `json:"upfrontCostPercent,omitempty"`
	AdminFeeMonthly           decimal.Decimal `json:"adminFeeMonthly"`
	AccountMaintenancePercent Schedule        `json:"accountMaintenancePercent,omitempty"`
	AssetBasedFeePercent      Schedule        `json:"assetBasedFeePercent,omitempty"`
	PlusCost                  Schedule        `json:"plusCost,omitempty"`
	BonusPercent              Schedule        `json:"bonusPercent,omitempty"`
	SurrenderChargePercent    Schedule        `json:"surrenderChargePercent,omitempty"`
}

// TaxCreditRule is the statutory tax credit a variant is eligible for
type TaxCreditRule struct {
	RatePercent decimal.Decimal `json:"ratePercent"`
	CapPerYear  decimal.Decimal `json:"capPerYear"`
}

// Variant is a fully resolved product configuration the engine consumes as plain data
type Variant struct {
	ProductID            ID              `json:"productId"`
	ID                   string          `json:"id"`
	Name                 string          `json:"name"`
	Currency             string          `json:"currency"`
	DefaultYieldPercent  decimal.Decimal `json:"defaultYieldPercent"`
	ManagementFeePercent decimal.Decimal `json:"managementFeePercent"`
	InvestedSharePercent decimal.Decimal `json:"investedSharePercent"`
	MinDurationYears     int             `json:"minDurationYears,omitempty"`
	Main                 Costs           `json:"main"`
	Eseti                Costs           `json:"eseti"`
	TaxCredit            *TaxCreditRule  `json:"taxCredit,omitempty"`
}

// CostsFor returns the tables of the given track.
func (v Variant) CostsFor(track domain.Track) Costs {
	if track == domain.TrackEseti {
		return v.Eseti
	}
	return v.Main
}

// TaxCreditEligible reports whether the variant carries a tax credit rule.
func (v Variant) TaxCreditEligible() bool {
	return v.TaxCredit != nil
}
