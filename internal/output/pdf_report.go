package output

import (
	"bytes"
	"fmt"
	"time"

	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/projection"
	"github.com/go-pdf/fpdf"
)

const (
	pageWidth    = 297.0 // A4 landscape
	marginLeft   = 12.0
	marginRight  = 12.0
	marginTop    = 12.0
	marginBottom = 15.0
	contentWidth = pageWidth - marginLeft - marginRight
)

// PDFFormatter renders a printable yearly report.
type PDFFormatter struct {
	// Now stamps the report; zero uses the current time.
	Now time.Time
}

func (PDFFormatter) Name() string { return "pdf" }

type pdfReport struct {
	pdf    *fpdf.Fpdf
	tr     func(string) string
	result *projection.Result
}

func (f PDFFormatter) Format(r *projection.Result) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("nil result")
	}
	now := f.Now
	if now.IsZero() {
		now = time.Now()
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(marginLeft, marginTop, marginRight)
	pdf.SetAutoPageBreak(true, marginBottom)
	pdf.SetCreationDate(now)

	report := &pdfReport{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor(""), result: r}
	report.addSummaryPage(now)
	report.addYearlyTable()

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (p *pdfReport) heading(text string) {
	p.pdf.SetFont("Arial", "B", 13)
	p.pdf.SetTextColor(0, 51, 102)
	p.pdf.CellFormat(contentWidth, 8, p.tr(text), "", 1, "L", false, 0, "")
	p.pdf.SetFont("Arial", "", 10)
	p.pdf.SetTextColor(50, 50, 50)
}

func (p *pdfReport) addSummaryPage(now time.Time) {
	r := p.result
	cur := r.Currency()
	p.pdf.AddPage()

	p.pdf.SetFont("Arial", "B", 22)
	p.pdf.SetTextColor(0, 51, 102)
	p.pdf.CellFormat(contentWidth, 12, p.tr("Savings Projection"), "", 1, "C", false, 0, "")
	p.pdf.SetFont("Arial", "", 12)
	p.pdf.SetTextColor(80, 80, 80)
	p.pdf.CellFormat(contentWidth, 8, p.tr(fmt.Sprintf("%s (%s)", r.ScenarioName, r.ProductID)), "", 1, "C", false, 0, "")
	p.pdf.SetFont("Arial", "I", 9)
	p.pdf.CellFormat(contentWidth, 6, fmt.Sprintf("Generated: %s", now.Format("2 January 2006")), "", 1, "C", false, 0, "")
	p.pdf.Ln(6)

	p.heading("Summary")
	s := r.Summary
	lines := [][2]string{
		{"Periods", fmt.Sprintf("%d", s.Periods)},
		{"Total contributions", FormatCurrency(s.TotalContributions, cur)},
		{"Total costs", FormatCurrency(s.TotalCosts, cur)},
		{"Total bonus", FormatCurrency(s.TotalBonus, cur)},
		{"Total tax credit", FormatCurrency(s.TotalTaxCredit, cur)},
		{"Total withdrawals", FormatCurrency(s.TotalWithdrawals, cur)},
		{"End balance", FormatCurrency(s.EndBalance, cur)},
		{"Surrender value", FormatCurrency(s.SurrenderValue, cur)},
		{"Tax deduction", FormatCurrency(s.TaxDeduction, cur)},
		{"Net balance", FormatCurrency(s.NetBalance, cur)},
		{"Effective tax rate", FormatPercentage(s.EffectiveTaxRate)},
		{"Cost ratio", FormatPercentage(s.CostRatio)},
	}
	p.pdf.SetFillColor(245, 247, 250)
	p.pdf.SetDrawColor(200, 200, 200)
	for i, kv := range lines {
		fill := i%2 == 0
		p.pdf.CellFormat(60, 6, p.tr(kv[0]), "1", 0, "L", fill, 0, "")
		p.pdf.CellFormat(50, 6, p.tr(kv[1]), "1", 1, "R", fill, 0, "")
	}
	p.pdf.Ln(6)

	p.heading("Assumptions")
	p.pdf.SetFont("Arial", "", 9)
	for _, a := range DefaultAssumptions {
		p.pdf.MultiCell(contentWidth, 5, p.tr("- "+a), "", "L", false)
	}
}

func (p *pdfReport) addYearlyTable() {
	r := p.result
	cur := r.Currency()
	p.pdf.AddPage()
	p.heading("Year by year")

	headers := []string{"Period", "Contributions", "Costs", "Bonus", "Tax credit", "Withdrawal", "End balance", "Surrender value", "Tax", "Net balance"}
	widths := []float64{45, 26, 24, 22, 22, 24, 28, 28, 24, 30}

	writeHeader := func() {
		p.pdf.SetFont("Arial", "B", 8)
		p.pdf.SetFillColor(0, 51, 102)
		p.pdf.SetTextColor(255, 255, 255)
		for i, h := range headers {
			p.pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
		}
		p.pdf.Ln(-1)
		p.pdf.SetFont("Arial", "", 8)
		p.pdf.SetTextColor(50, 50, 50)
	}
	writeHeader()

	_, pageHeight := p.pdf.GetPageSize()
	net := netByYear(r)
	for i, row := range r.Rows {
		if p.pdf.GetY()+6 > pageHeight-marginBottom {
			p.pdf.AddPage()
			writeHeader()
		}
		n := net[row.Year]
		cells := []string{
			periodLabel(row),
			FormatCurrency(row.TotalContributions, cur),
			FormatCurrency(row.CostForYear, cur),
			FormatCurrency(row.WealthBonusForYear, cur),
			FormatCurrency(row.TaxCreditForYear, cur),
			FormatCurrency(row.WithdrawalForYear, cur),
			FormatCurrency(row.EndBalance, cur),
			FormatCurrency(row.SurrenderValue, cur),
			FormatCurrency(n.TaxDeduction, cur),
			FormatCurrency(n.NetBalance, cur),
		}
		fill := i%2 == 1
		p.pdf.SetFillColor(245, 247, 250)
		for j, c := range cells {
			align := "R"
			if j == 0 {
				align = "L"
			}
			p.pdf.CellFormat(widths[j], 6, p.tr(c), "1", 0, align, fill, 0, "")
		}
		p.pdf.Ln(-1)
	}
}
