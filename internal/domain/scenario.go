package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrackSettings holds the base payment settings and sparse per-year overrides of one track
type TrackSettings struct {
	BaseYear1Payment       decimal.Decimal         `yaml:"base_year1_payment" json:"baseYear1Payment"`
	BaseAnnualIndexPercent decimal.Decimal         `yaml:"base_annual_index_percent" json:"baseAnnualIndexPercent"`
	IndexByYear            map[int]decimal.Decimal `yaml:"index_by_year,omitempty" json:"indexByYear,omitempty"`
	PaymentByYear          map[int]decimal.Decimal `yaml:"payment_by_year,omitempty" json:"paymentByYear,omitempty"`
	WithdrawalByYear       map[int]decimal.Decimal `yaml:"withdrawal_by_year,omitempty" json:"withdrawalByYear,omitempty"`

	// CompoundIndex opts into chaining the payment by the yearly index
	// instead of the flat carry-forward plan.
	CompoundIndex bool `yaml:"compound_index,omitempty" json:"compoundIndex,omitempty"`
}

// PlanSettings turns the track settings into Period Planner input.
func (ts TrackSettings) PlanSettings(years int) PlanSettings {
	return PlanSettings{
		Years:                  years,
		BaseYear1Payment:       ts.BaseYear1Payment,
		BaseAnnualIndexPercent: ts.BaseAnnualIndexPercent,
		IndexByYear:            ts.IndexByYear,
		PaymentByYear:          ts.PaymentByYear,
		WithdrawalByYear:       ts.WithdrawalByYear,
	}
}

// Clone returns a deep copy of the settings.
func (ts TrackSettings) Clone() TrackSettings {
	out := ts
	out.IndexByYear = cloneYearMap(ts.IndexByYear)
	out.PaymentByYear = cloneYearMap(ts.PaymentByYear)
	out.WithdrawalByYear = cloneYearMap(ts.WithdrawalByYear)
	return out
}

// Scenario is the top-level calculator configuration loaded from YAML
type Scenario struct {
	Name          string     `yaml:"name" json:"name"`
	Product       string     `yaml:"product" json:"product"`
	Variant       string     `yaml:"variant,omitempty" json:"variant,omitempty"`
	Currency      string     `yaml:"currency,omitempty" json:"currency,omitempty"`
	IsCorporate   bool       `yaml:"is_corporate" json:"isCorporate"`
	DurationYears int        `yaml:"duration_years" json:"durationYears"`
	StartDate     *time.Time `yaml:"start_date,omitempty" json:"startDate,omitempty"`
	CalendarMode  bool       `yaml:"calendar_mode" json:"calendarMode"`

	AnnualYieldPercent *decimal.Decimal        `yaml:"annual_yield_percent,omitempty" json:"annualYieldPercent,omitempty"`
	YieldByYear        map[int]decimal.Decimal `yaml:"yield_by_year,omitempty" json:"yieldByYear,omitempty"`

	Main  TrackSettings  `yaml:"main" json:"main"`
	Eseti *TrackSettings `yaml:"eseti,omitempty" json:"eseti,omitempty"`

	Fees                 FeeOverrides     `yaml:"fees,omitempty" json:"fees,omitempty"`
	EsetiFees            FeeOverrides     `yaml:"eseti_fees,omitempty" json:"esetiFees,omitempty"`
	InvestedSharePercent *decimal.Decimal `yaml:"invested_share_percent,omitempty" json:"investedSharePercent,omitempty"`

	TaxCredit     TaxCreditSettings       `yaml:"tax_credit,omitempty" json:"taxCredit,omitempty"`
	RiskInsurance RiskInsuranceSettings   `yaml:"risk_insurance,omitempty" json:"riskInsurance,omitempty"`
	CustomEntries []CustomEntryDefinition `yaml:"custom_entries,omitempty" json:"customEntries,omitempty"`
}

// HasEseti reports whether an extraordinary track is configured.
func (s *Scenario) HasEseti() bool {
	return s.Eseti != nil
}

// FeesFor returns the fee overrides of a track.
func (s *Scenario) FeesFor(track Track) FeeOverrides {
	if track == TrackEseti {
		return s.EsetiFees
	}
	return s.Fees
}

// TrackSettingsFor returns the settings of a track, or nil when absent.
func (s *Scenario) TrackSettingsFor(track Track) *TrackSettings {
	switch track {
	case TrackMain:
		return &s.Main
	case TrackEseti:
		return s.Eseti
	default:
		return nil
	}
}

// Clone returns a deep copy of the scenario's override maps so callers may mutate it.
func (s *Scenario) Clone() *Scenario {
	if s == nil {
		return nil
	}
	out := *s
	out.Main = s.Main.Clone()
	if s.Eseti != nil {
		e := s.Eseti.Clone()
		out.Eseti = &e
	}
	out.YieldByYear = cloneYearMap(s.YieldByYear)
	out.Fees = s.Fees.Clone()
	out.EsetiFees = s.EsetiFees.Clone()
	if s.CustomEntries != nil {
		out.CustomEntries = append([]CustomEntryDefinition(nil), s.CustomEntries...)
	}
	return &out
}

func cloneYearMap(m map[int]decimal.Decimal) map[int]decimal.Decimal {
	if m == nil {
		return nil
	}
	out := make(map[int]decimal.Decimal, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
