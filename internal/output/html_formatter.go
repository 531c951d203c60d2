package output

import (
	"bytes"
	"fmt"

	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/domain"
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/projection"
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/pkg/money"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/shopspring/decimal"
)

// HTMLFormatter renders an interactive chart page: balances over time and
// the yearly cost and credit flows.
type HTMLFormatter struct{}

func (HTMLFormatter) Name() string { return "html" }

func (HTMLFormatter) Format(r *projection.Result) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("nil result")
	}
	page := components.NewPage()
	page.PageTitle = "Savings projection " + r.ScenarioName
	page.AddCharts(balanceChart(r), flowChart(r))

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return buf.Bytes(), nil
}

func periodLabels(rows []domain.YearRow) []string {
	labels := make([]string, len(rows))
	for i, row := range rows {
		labels[i] = periodLabel(row)
	}
	return labels
}

func chartValue(d decimal.Decimal, currency string) float64 {
	return money.Round(d, currency).InexactFloat64()
}

func lineSeries(rows []domain.YearRow, currency string, pick func(domain.YearRow) decimal.Decimal) []opts.LineData {
	data := make([]opts.LineData, len(rows))
	for i, row := range rows {
		data[i] = opts.LineData{Value: chartValue(pick(row), currency)}
	}
	return data
}

func barSeries(rows []domain.YearRow, currency string, pick func(domain.YearRow) decimal.Decimal) []opts.BarData {
	data := make([]opts.BarData, len(rows))
	for i, row := range rows {
		data[i] = opts.BarData{Value: chartValue(pick(row), currency)}
	}
	return data
}

func balanceChart(r *projection.Result) *charts.Line {
	cur := r.Currency()
	net := netByYear(r)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "1100px", Height: "480px"}),
		charts.WithTitleOpts(opts.Title{Title: "Balance", Subtitle: fmt.Sprintf("%s, %s", r.ScenarioName, cur)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: true, Top: "bottom"}),
	)
	line.SetXAxis(periodLabels(r.Rows)).
		AddSeries("Contributions", lineSeries(r.Rows, cur, func(row domain.YearRow) decimal.Decimal { return row.TotalContributions })).
		AddSeries("End balance", lineSeries(r.Rows, cur, func(row domain.YearRow) decimal.Decimal { return row.EndBalance })).
		AddSeries("Surrender value", lineSeries(r.Rows, cur, func(row domain.YearRow) decimal.Decimal { return row.SurrenderValue })).
		AddSeries("Net balance", lineSeries(r.Rows, cur, func(row domain.YearRow) decimal.Decimal { return net[row.Year].NetBalance }))
	return line
}

func flowChart(r *projection.Result) *charts.Bar {
	cur := r.Currency()

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "1100px", Height: "420px"}),
		charts.WithTitleOpts(opts.Title{Title: "Yearly flows"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: true, Top: "bottom"}),
	)
	bar.SetXAxis(periodLabels(r.Rows)).
		AddSeries("Costs", barSeries(r.Rows, cur, func(row domain.YearRow) decimal.Decimal { return row.CostForYear })).
		AddSeries("Bonus", barSeries(r.Rows, cur, func(row domain.YearRow) decimal.Decimal { return row.WealthBonusForYear })).
		AddSeries("Tax credit", barSeries(r.Rows, cur, func(row domain.YearRow) decimal.Decimal { return row.TaxCreditForYear })).
		AddSeries("Withdrawal", barSeries(r.Rows, cur, func(row domain.YearRow) decimal.Decimal { return row.WithdrawalForYear }))
	return bar
}
