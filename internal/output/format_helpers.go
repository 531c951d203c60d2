package output

import (
	"sort"
	"strconv"

	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/domain"
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/projection"
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/pkg/money"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// FormatCurrency renders an amount in the projection currency.
func FormatCurrency(amount decimal.Decimal, currency string) string {
	return money.Format(amount, currency)
}

// FormatPercentage renders a ratio (0.28) as a percentage ("28.00%").
func FormatPercentage(ratio decimal.Decimal) string {
	return ratio.Mul(hundred).StringFixed(2) + "%"
}

// periodLabel names a row for tables: the calendar label when present,
// otherwise the policy year.
func periodLabel(row domain.YearRow) string {
	if row.PeriodLabel != "" {
		return row.PeriodLabel
	}
	return "Year " + strconv.Itoa(row.Year)
}

// netByYear indexes the combined net rows by year.
func netByYear(r *projection.Result) map[int]domain.NetRow {
	out := make(map[int]domain.NetRow, len(r.NetRows))
	for _, n := range r.NetRows {
		out[n.Year] = n
	}
	return out
}

// customEntryTotals sums a row's custom entry amounts across sub-accounts.
func customEntryTotals(row domain.YearRow) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for _, acc := range row.Accounts() {
		for id, v := range acc.CustomEntriesByID {
			out[id] = out[id].Add(v)
		}
	}
	return out
}

// customEntryIDs returns the sorted ids of every custom entry in the projection.
func customEntryIDs(r *projection.Result) []string {
	seen := make(map[string]bool)
	var ids []string
	for i := range r.Rows {
		for _, id := range r.Rows[i].CustomEntryIDs() {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	sort.Strings(ids)
	return ids
}
