package projection

import (
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/domain"
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/pkg/money"
	"github.com/shopspring/decimal"
)

// TrackResult holds the plan, engine output and net rows of one contribution track
type TrackResult struct {
	Track       domain.Track              `json:"track"`
	Plan        domain.YearlyPlan         `json:"plan"`
	Calculation *domain.CalculationResult `json:"calculation"`
	NetRows     []domain.NetRow           `json:"netRows"`
}

// Rows returns the engine rows of the track, nil-safe.
func (t *TrackResult) Rows() []domain.YearRow {
	if t == nil || t.Calculation == nil {
		return nil
	}
	return t.Calculation.YearlyBreakdown
}

// Summary is the headline view of a projection
type Summary struct {
	Currency           string          `json:"currency"`
	Periods            int             `json:"periods"`
	TotalContributions decimal.Decimal `json:"totalContributions"`
	TotalCosts         decimal.Decimal `json:"totalCosts"`
	TotalBonus         decimal.Decimal `json:"totalBonus"`
	TotalTaxCredit     decimal.Decimal `json:"totalTaxCredit"`
	TotalWithdrawals   decimal.Decimal `json:"totalWithdrawals"`
	EndBalance         decimal.Decimal `json:"endBalance"`
	SurrenderValue     decimal.Decimal `json:"surrenderValue"`
	GrossProfit        decimal.Decimal `json:"grossProfit"`
	TaxDeduction       decimal.Decimal `json:"taxDeduction"`
	NetBalance         decimal.Decimal `json:"netBalance"`
	EffectiveTaxRate   decimal.Decimal `json:"effectiveTaxRate"` // ratio
	CostRatio          decimal.Decimal `json:"costRatio"`        // total costs / total contributions
}

// Result is the full output of a projection run
type Result struct {
	ScenarioName string                 `json:"scenarioName"`
	ProductID    string                 `json:"productId"`
	VariantID    string                 `json:"variantId,omitempty"`
	IsCorporate  bool                   `json:"isCorporate"`
	Main         TrackResult            `json:"main"`
	Eseti        *TrackResult           `json:"eseti,omitempty"`
	Rows         []domain.YearRow       `json:"rows"`
	Cumulative   map[int]domain.YearRow `json:"cumulative"`
	NetRows      []domain.NetRow        `json:"netRows"`
	Summary      Summary                `json:"summary"`
}

// Currency returns the currency of the projection.
func (r *Result) Currency() string {
	return r.Summary.Currency
}

// Tracks returns the computed tracks in main, eseti order.
func (r *Result) Tracks() []*TrackResult {
	tracks := []*TrackResult{&r.Main}
	if r.Eseti != nil {
		tracks = append(tracks, r.Eseti)
	}
	return tracks
}

func summarize(r *Result) Summary {
	s := Summary{
		Currency: r.Main.Calculation.Currency,
		Periods:  len(r.Rows),
	}
	for _, t := range r.Tracks() {
		c := t.Calculation
		s.TotalCosts = s.TotalCosts.Add(c.TotalCosts)
		s.TotalBonus = s.TotalBonus.Add(c.TotalBonus)
		s.TotalTaxCredit = s.TotalTaxCredit.Add(c.TotalTaxCredit)
	}
	for _, row := range r.Rows {
		s.TotalWithdrawals = s.TotalWithdrawals.Add(row.WithdrawalForYear)
	}
	if n := len(r.Rows); n > 0 {
		last := r.Rows[n-1]
		s.TotalContributions = last.TotalContributions
		s.EndBalance = last.EndBalance
		s.SurrenderValue = last.SurrenderValue
	}
	if n := len(r.NetRows); n > 0 {
		last := r.NetRows[n-1]
		s.GrossProfit = last.GrossProfit
		s.TaxDeduction = last.TaxDeduction
		s.NetBalance = last.NetBalance
		s.EffectiveTaxRate = last.TaxRate
	}
	s.CostRatio = money.SafeDiv(s.TotalCosts, s.TotalContributions)
	return s
}
