package plan

import (
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/domain"
	"github.com/shopspring/decimal"
)

// BuildYearlyPlan expands the base payment settings and sparse per-year
// overrides into a dense plan covering years 1..settings.Years.
//
// Years without a payment override repeat BaseYear1Payment as-is; the base
// payment is not compounded by the index here.
func BuildYearlyPlan(settings domain.PlanSettings) domain.YearlyPlan {
	years := settings.Years
	if years < 0 {
		years = 0
	}

	plan := domain.YearlyPlan{
		IndexEffective:        make(map[int]decimal.Decimal, years),
		YearlyPaymentsPlan:    make(map[int]decimal.Decimal, years),
		YearlyWithdrawalsPlan: make(map[int]decimal.Decimal, years),
	}

	for y := 1; y <= years; y++ {
		plan.IndexEffective[y] = valueOr(settings.IndexByYear, y, settings.BaseAnnualIndexPercent)
		plan.YearlyPaymentsPlan[y] = valueOr(settings.PaymentByYear, y, settings.BaseYear1Payment)
		plan.YearlyWithdrawalsPlan[y] = valueOr(settings.WithdrawalByYear, y, decimal.Zero)
	}

	return plan
}

// IndexedPayments compounds the year-1 payment forward by each year's
// effective index, honouring explicit payment overrides as new chain bases.
// It is the indexed alternative to the flat carry-forward plan and is used
// only when a scenario opts into it.
func IndexedPayments(settings domain.PlanSettings, p domain.YearlyPlan) map[int]decimal.Decimal {
	out := make(map[int]decimal.Decimal, p.Years())
	prev := decimal.Zero
	for y := 1; y <= p.Years(); y++ {
		if v, ok := settings.PaymentByYear[y]; ok {
			out[y] = v
		} else if y == 1 {
			out[y] = settings.BaseYear1Payment
		} else {
			growth := decimal.NewFromInt(1).Add(p.IndexEffective[y].Div(decimal.NewFromInt(100)))
			out[y] = prev.Mul(growth)
		}
		prev = out[y]
	}
	return out
}

func valueOr(m map[int]decimal.Decimal, year int, fallback decimal.Decimal) decimal.Decimal {
	if v, ok := m[year]; ok {
		return v
	}
	return fallback
}
