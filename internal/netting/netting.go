package netting

import (
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/domain"
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/pkg/money"
	"github.com/shopspring/decimal"
)

// periodDays falls back to a full year when the row carries no day count.
func periodDays(row domain.YearRow) int {
	if row.PeriodDays > 0 {
		return row.PeriodDays
	}
	return daysPerYear
}

func netRow(year int, grossBalance, grossProfit, rate, basis decimal.Decimal) domain.NetRow {
	deduction := money.Max0(grossProfit).Mul(rate)
	netProfit := grossProfit.Sub(deduction)
	return domain.NetRow{
		Year:         year,
		GrossBalance: grossBalance,
		GrossProfit:  grossProfit,
		TaxRate:      rate,
		TaxDeduction: deduction,
		NetProfit:    netProfit,
		NetBalance:   basis.Add(netProfit),
	}
}

// CalculateNetValuesMain nets the main account. Cumulative contributions are
// the tax-free basis and the rate depends on days elapsed since account start.
func CalculateNetValuesMain(rows []domain.YearRow, isCorporate bool) []domain.NetRow {
	out := make([]domain.NetRow, 0, len(rows))
	elapsed := 0
	for _, row := range rows {
		elapsed += periodDays(row)
		grossProfit := row.EndBalance.Sub(row.TotalContributions)
		rate := MainTaxRateByDays(elapsed, isCorporate)
		out = append(out, netRow(row.Year, row.EndBalance, grossProfit, rate, row.TotalContributions))
	}
	return out
}

// CalculateNetValuesEseti nets the extraordinary account using a lot ledger.
// Each positive increase in cumulative contributions opens a lot stamped with
// the elapsed day at the start of the period; the period's withdrawal then
// shrinks all lots pro rata.
func CalculateNetValuesEseti(rows []domain.YearRow, isCorporate bool) []domain.NetRow {
	out := make([]domain.NetRow, 0, len(rows))
	ledger := &LotLedger{}
	elapsed := 0
	prevContributions := decimal.Zero

	for _, row := range rows {
		periodStart := elapsed
		elapsed += periodDays(row)

		paymentThisYear := money.Max0(row.TotalContributions.Sub(prevContributions))
		prevContributions = row.TotalContributions
		ledger.Add(periodStart, paymentThisYear)

		ledger.Withdraw(row.WithdrawalForYear)

		remaining := ledger.Principal()
		grossProfit := row.EndBalance.Sub(remaining)
		rate := ledger.WeightedRate(elapsed, isCorporate)
		out = append(out, netRow(row.Year, row.EndBalance, grossProfit, rate, remaining))
	}
	return out
}

// CombineNetRows merges main and eseti net rows index by index. Missing rows
// count as zero; netProfit is recomputed from the summed fields and taxRate
// becomes the effective blended rate.
func CombineNetRows(mainRows, esetiRows []domain.NetRow) []domain.NetRow {
	n := len(mainRows)
	if len(esetiRows) > n {
		n = len(esetiRows)
	}

	out := make([]domain.NetRow, 0, n)
	for i := 0; i < n; i++ {
		var m, e domain.NetRow
		year := 0
		if i < len(mainRows) {
			m = mainRows[i]
			year = m.Year
		}
		if i < len(esetiRows) {
			e = esetiRows[i]
			if year == 0 {
				year = e.Year
			}
		}
		if year == 0 {
			year = i + 1
		}

		grossProfit := m.GrossProfit.Add(e.GrossProfit)
		deduction := m.TaxDeduction.Add(e.TaxDeduction)
		rate := decimal.Zero
		if grossProfit.IsPositive() {
			rate = deduction.Div(grossProfit)
		}

		out = append(out, domain.NetRow{
			Year:         year,
			GrossBalance: m.GrossBalance.Add(e.GrossBalance),
			GrossProfit:  grossProfit,
			TaxRate:      rate,
			TaxDeduction: deduction,
			NetProfit:    grossProfit.Sub(deduction),
			NetBalance:   m.NetBalance.Add(e.NetBalance),
		})
	}
	return out
}
