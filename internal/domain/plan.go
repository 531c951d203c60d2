package domain

import (
	"github.com/shopspring/decimal"
)

// Track identifies one of the two parallel contribution tracks
type Track string

const (
	TrackMain  Track = "main"
	TrackEseti Track = "eseti"
)

// PlanSettings is the input of the Period Planner
type PlanSettings struct {
	Years                  int                     `yaml:"years" json:"years"`
	BaseYear1Payment       decimal.Decimal         `yaml:"base_year1_payment" json:"baseYear1Payment"`
	BaseAnnualIndexPercent decimal.Decimal         `yaml:"base_annual_index_percent" json:"baseAnnualIndexPercent"`
	IndexByYear            map[int]decimal.Decimal `yaml:"index_by_year,omitempty" json:"indexByYear,omitempty"`
	PaymentByYear          map[int]decimal.Decimal `yaml:"payment_by_year,omitempty" json:"paymentByYear,omitempty"`
	WithdrawalByYear       map[int]decimal.Decimal `yaml:"withdrawal_by_year,omitempty" json:"withdrawalByYear,omitempty"`
}

// YearlyPlan is the dense, year-indexed output of the Period Planner (years 1..N)
type YearlyPlan struct {
	IndexEffective        map[int]decimal.Decimal `yaml:"index_effective" json:"indexEffective"`
	YearlyPaymentsPlan    map[int]decimal.Decimal `yaml:"yearly_payments_plan" json:"yearlyPaymentsPlan"`
	YearlyWithdrawalsPlan map[int]decimal.Decimal `yaml:"yearly_withdrawals_plan" json:"yearlyWithdrawalsPlan"`
}

// Years returns the number of planned years.
func (p YearlyPlan) Years() int {
	return len(p.YearlyPaymentsPlan)
}

// TotalPayments sums the planned payments.
func (p YearlyPlan) TotalPayments() decimal.Decimal {
	total := decimal.Zero
	for _, v := range p.YearlyPaymentsPlan {
		total = total.Add(v)
	}
	return total
}
