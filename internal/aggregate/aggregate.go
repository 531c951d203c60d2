package aggregate

import (
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/domain"
	"github.com/shopspring/decimal"
)

// BuildCumulativeByYear folds the ordered rows into running totals keyed by
// year. Flow fields (interest, every cost category, bonus, tax credit,
// withdrawal) are replaced by their cumulative sums at the top level and in
// each sub-account; balances and values pass through unchanged. Nil rows are
// skipped without resetting the running totals.
func BuildCumulativeByYear(rows []*domain.YearRow) map[int]domain.YearRow {
	out := make(map[int]domain.YearRow, len(rows))

	var acc domain.YearRow
	for _, row := range rows {
		if row == nil {
			continue
		}

		for _, field := range flowFields {
			*field(&acc) = field(&acc).Add(*field(row))
		}
		accAccounts := acc.Accounts()
		rowAccounts := row.Accounts()
		for i := range accAccounts {
			for _, field := range accountFlowFields {
				*field(accAccounts[i]) = field(accAccounts[i]).Add(*field(rowAccounts[i]))
			}
			accAccounts[i].CustomEntriesByID = addCustomEntries(accAccounts[i].CustomEntriesByID, rowAccounts[i].CustomEntriesByID)
		}

		cumulative := *row
		for _, field := range flowFields {
			*field(&cumulative) = *field(&acc)
		}
		cumAccounts := cumulative.Accounts()
		for i := range cumAccounts {
			for _, field := range accountFlowFields {
				*field(cumAccounts[i]) = *field(accAccounts[i])
			}
			cumAccounts[i].CustomEntriesByID = copyCustomEntries(accAccounts[i].CustomEntriesByID)
		}
		out[row.Year] = cumulative
	}

	return out
}

// MergeYearRows combines the main and eseti rows of the same period. A nil
// row counts as all zero. Both tracks span the same calendar period, so a
// partial period takes the longer of the two spans instead of their sum.
func MergeYearRows(mainRow, esetiRow *domain.YearRow) domain.YearRow {
	var m, e domain.YearRow
	if mainRow != nil {
		m = *mainRow
	}
	if esetiRow != nil {
		e = *esetiRow
	}

	merged := domain.YearRow{Year: m.Year}
	if mainRow == nil {
		merged.Year = e.Year
	}

	if m.IsPartial() || e.IsPartial() {
		merged.PeriodType = domain.PeriodPartial
		merged.PeriodMonths = maxInt(m.PeriodMonths, e.PeriodMonths)
		merged.PeriodDays = maxInt(m.PeriodDays, e.PeriodDays)
	} else {
		merged.PeriodType = domain.PeriodYear
		merged.PeriodMonths = 12
		merged.PeriodDays = 365
		merged.PeriodLabel = m.PeriodLabel
		if merged.PeriodLabel == "" {
			merged.PeriodLabel = e.PeriodLabel
		}
	}

	for _, fields := range [][]rowField{flowFields, stockFields} {
		for _, field := range fields {
			*field(&merged) = sum(*field(&m), *field(&e))
		}
	}

	mergedAccounts := merged.Accounts()
	mAccounts := m.Accounts()
	eAccounts := e.Accounts()
	for i := range mergedAccounts {
		for _, fields := range [][]accountField{accountFlowFields, accountStockFields} {
			for _, field := range fields {
				*field(mergedAccounts[i]) = sum(*field(mAccounts[i]), *field(eAccounts[i]))
			}
		}
		entries := addCustomEntries(nil, mAccounts[i].CustomEntriesByID)
		mergedAccounts[i].CustomEntriesByID = addCustomEntries(entries, eAccounts[i].CustomEntriesByID)
	}

	return merged
}

// MergeTracks merges two row sequences index by index.
func MergeTracks(mainRows, esetiRows []domain.YearRow) []domain.YearRow {
	n := len(mainRows)
	if len(esetiRows) > n {
		n = len(esetiRows)
	}
	out := make([]domain.YearRow, 0, n)
	for i := 0; i < n; i++ {
		var m, e *domain.YearRow
		if i < len(mainRows) {
			m = &mainRows[i]
		}
		if i < len(esetiRows) {
			e = &esetiRows[i]
		}
		out = append(out, MergeYearRows(m, e))
	}
	return out
}

func sum(a, b decimal.Decimal) decimal.Decimal {
	return a.Add(b)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
