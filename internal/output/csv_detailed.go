package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/projection"
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/pkg/money"
	"github.com/shopspring/decimal"
)

// CSVFormatter exports one row per projection period with every cost
// component, the sub-account balances, the net values and one column per
// custom entry.
type CSVFormatter struct{}

func (CSVFormatter) Name() string { return "csv" }

func (CSVFormatter) Format(r *projection.Result) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("nil result")
	}
	cur := r.Currency()
	entryIDs := customEntryIDs(r)

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{
		"Year", "Period", "PeriodType", "Days", "Months",
		"TotalContributions", "Interest",
		"Cost", "UpfrontCost", "AdminCost", "AccountMaintenanceCost", "ManagementFee", "AssetBasedCost", "PlusCost", "RiskInsuranceCost",
		"Bonus", "TaxCredit", "Withdrawal",
		"InvestedBalance", "ClientBalance", "TaxBonusBalance", "EndBalance",
		"SurrenderCharge", "SurrenderValue",
		"GrossProfit", "TaxRate", "TaxDeduction", "NetBalance",
	}
	for _, id := range entryIDs {
		header = append(header, "Custom:"+id)
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	amount := func(d decimal.Decimal) string { return money.Round(d, cur).StringFixed(money.Decimals(cur)) }
	net := netByYear(r)
	for _, row := range r.Rows {
		n := net[row.Year]
		record := []string{
			strconv.Itoa(row.Year),
			periodLabel(row),
			string(row.PeriodType),
			strconv.Itoa(row.PeriodDays),
			strconv.Itoa(row.PeriodMonths),
			amount(row.TotalContributions),
			amount(row.InterestForYear),
			amount(row.CostForYear),
			amount(row.UpfrontCostForYear),
			amount(row.AdminCostForYear),
			amount(row.AccountMaintenanceCostForYear),
			amount(row.ManagementFeeCostForYear),
			amount(row.AssetBasedCostForYear),
			amount(row.PlusCostForYear),
			amount(row.RiskInsuranceCostForYear),
			amount(row.WealthBonusForYear),
			amount(row.TaxCreditForYear),
			amount(row.WithdrawalForYear),
			amount(row.EndingInvestedValue),
			amount(row.EndingClientValue),
			amount(row.EndingTaxBonusValue),
			amount(row.EndBalance),
			amount(row.SurrenderCharge),
			amount(row.SurrenderValue),
			amount(n.GrossProfit),
			n.TaxRate.StringFixed(4),
			amount(n.TaxDeduction),
			amount(n.NetBalance),
		}
		entries := customEntryTotals(row)
		for _, id := range entryIDs {
			record = append(record, amount(entries[id]))
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
