package aggregate

import (
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/domain"
	"github.com/shopspring/decimal"
)

type rowField func(*domain.YearRow) *decimal.Decimal

type accountField func(*domain.AccountBreakdown) *decimal.Decimal

// flowFields are the per-period flows that accumulate over time.
var flowFields = []rowField{
	func(r *domain.YearRow) *decimal.Decimal { return &r.InterestForYear },
	func(r *domain.YearRow) *decimal.Decimal { return &r.CostForYear },
	func(r *domain.YearRow) *decimal.Decimal { return &r.UpfrontCostForYear },
	func(r *domain.YearRow) *decimal.Decimal { return &r.AdminCostForYear },
	func(r *domain.YearRow) *decimal.Decimal { return &r.AccountMaintenanceCostForYear },
	func(r *domain.YearRow) *decimal.Decimal { return &r.ManagementFeeCostForYear },
	func(r *domain.YearRow) *decimal.Decimal { return &r.AssetBasedCostForYear },
	func(r *domain.YearRow) *decimal.Decimal { return &r.PlusCostForYear },
	func(r *domain.YearRow) *decimal.Decimal { return &r.RiskInsuranceCostForYear },
	func(r *domain.YearRow) *decimal.Decimal { return &r.WealthBonusForYear },
	func(r *domain.YearRow) *decimal.Decimal { return &r.TaxCreditForYear },
	func(r *domain.YearRow) *decimal.Decimal { return &r.WithdrawalForYear },
}

// stockFields are balances and values at period end. They sum across
// tracks but never across time.
var stockFields = []rowField{
	func(r *domain.YearRow) *decimal.Decimal { return &r.TotalContributions },
	func(r *domain.YearRow) *decimal.Decimal { return &r.EndBalance },
	func(r *domain.YearRow) *decimal.Decimal { return &r.SurrenderCharge },
	func(r *domain.YearRow) *decimal.Decimal { return &r.SurrenderValue },
	func(r *domain.YearRow) *decimal.Decimal { return &r.EndingInvestedValue },
	func(r *domain.YearRow) *decimal.Decimal { return &r.EndingClientValue },
	func(r *domain.YearRow) *decimal.Decimal { return &r.EndingTaxBonusValue },
}

var accountFlowFields = []accountField{
	func(a *domain.AccountBreakdown) *decimal.Decimal { return &a.InterestForYear },
	func(a *domain.AccountBreakdown) *decimal.Decimal { return &a.CostForYear },
	func(a *domain.AccountBreakdown) *decimal.Decimal { return &a.AssetBasedCostForYear },
	func(a *domain.AccountBreakdown) *decimal.Decimal { return &a.PlusCostForYear },
	func(a *domain.AccountBreakdown) *decimal.Decimal { return &a.WealthBonusForYear },
}

var accountStockFields = []accountField{
	func(a *domain.AccountBreakdown) *decimal.Decimal { return &a.EndBalance },
}

func addCustomEntries(dst map[string]decimal.Decimal, src map[string]decimal.Decimal) map[string]decimal.Decimal {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]decimal.Decimal, len(src))
	}
	for id, v := range src {
		dst[id] = dst[id].Add(v)
	}
	return dst
}

func copyCustomEntries(src map[string]decimal.Decimal) map[string]decimal.Decimal {
	if src == nil {
		return nil
	}
	out := make(map[string]decimal.Decimal, len(src))
	for id, v := range src {
		out[id] = v
	}
	return out
}

// RowPointers adapts a row slice to the nil-tolerant pointer form.
func RowPointers(rows []domain.YearRow) []*domain.YearRow {
	out := make([]*domain.YearRow, len(rows))
	for i := range rows {
		out[i] = &rows[i]
	}
	return out
}
