package output

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/domain"
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/projection"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult(t *testing.T) *projection.Result {
	t.Helper()
	scenario := &domain.Scenario{
		Name:          "sample",
		Product:       "generic_unit_linked",
		DurationYears: 6,
		Main:          domain.TrackSettings{BaseYear1Payment: decimal.NewFromInt(240_000)},
		Eseti:         &domain.TrackSettings{PaymentByYear: map[int]decimal.Decimal{1: decimal.NewFromInt(100_000)}},
		CustomEntries: []domain.CustomEntryDefinition{{
			ID: "advisor", Kind: domain.EntryCost, ValueType: domain.ValueAmount,
			Value: decimal.NewFromInt(1_000), Account: domain.AccountInvested,
		}},
	}
	result, err := projection.NewService(nil).Run(context.Background(), scenario)
	require.NoError(t, err)
	return result
}

func TestGetFormatterByName(t *testing.T) {
	tests := map[string]string{
		"console":      "console",
		"":             "console",
		" TABLE ":      "console",
		"json":         "json",
		"json-pretty":  "json",
		"csv-detailed": "csv",
		"chart":        "html",
		"pdf":          "pdf",
	}
	for in, want := range tests {
		f := GetFormatterByName(in)
		require.NotNil(t, f, in)
		assert.Equal(t, want, f.Name(), in)
	}
	assert.Nil(t, GetFormatterByName("xml"))

	assert.Equal(t, []string{"console", "csv", "html", "json", "pdf"}, AvailableFormatterNames())
	assert.Contains(t, AvailableFormatAliases(), "table")
	assert.NotContains(t, AvailableFormatAliases(), "")
}

func TestFormatters_NilResult(t *testing.T) {
	for _, f := range builtInFormatters {
		_, err := f.Format(nil)
		assert.Error(t, err, f.Name())
	}
}

func TestConsoleFormatter(t *testing.T) {
	r := sampleResult(t)
	out, err := ConsoleFormatter{}.Format(r)
	require.NoError(t, err)
	text := string(out)

	assert.Contains(t, text, "SAVINGS PROJECTION: sample")
	assert.Contains(t, text, "generic_unit_linked")
	assert.Contains(t, text, "Net balance")
	assert.Contains(t, text, "6. év")
	assert.Contains(t, text, FormatCurrency(r.Summary.EndBalance, "HUF"))
	assert.Contains(t, text, DefaultAssumptions[0])
}

func TestJSONFormatter(t *testing.T) {
	r := sampleResult(t)
	out, err := JSONFormatter{}.Format(r)
	require.NoError(t, err)

	var decoded projection.Result
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "sample", decoded.ScenarioName)
	assert.Len(t, decoded.Rows, 6)
	assert.True(t, decoded.Summary.NetBalance.Equal(r.Summary.NetBalance))
}

func TestCSVFormatter(t *testing.T) {
	r := sampleResult(t)
	out, err := CSVFormatter{}.Format(r)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 7)

	header := records[0]
	assert.Equal(t, "Year", header[0])
	assert.Equal(t, "Custom:advisor", header[len(header)-1])

	first := records[1]
	assert.Equal(t, "1", first[0])
	assert.Equal(t, "1. év", first[1])
	assert.Equal(t, "1000", first[len(first)-1])

	col := indexOf(header, "EndBalance")
	require.GreaterOrEqual(t, col, 0)
	assert.Equal(t, r.Rows[5].EndBalance.Round(0).StringFixed(0), records[6][col])
}

func indexOf(values []string, want string) int {
	for i, v := range values {
		if v == want {
			return i
		}
	}
	return -1
}

func TestHTMLFormatter(t *testing.T) {
	out, err := HTMLFormatter{}.Format(sampleResult(t))
	require.NoError(t, err)
	html := string(out)
	assert.Contains(t, html, "<html")
	assert.Contains(t, html, "echarts")
	assert.Contains(t, html, "End balance")
	assert.Contains(t, html, "Yearly flows")
}

func TestPDFFormatter(t *testing.T) {
	f := PDFFormatter{Now: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)}
	out, err := f.Format(sampleResult(t))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.True(t, strings.Contains(string(out[len(out)-16:]), "%%EOF"))
}

func TestWriteFormatted(t *testing.T) {
	dir := t.TempDir()
	name, err := WriteFormatted(ConsoleFormatter{}, sampleResult(t), dir)
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(name))
	assert.True(t, strings.HasSuffix(name, ".txt"))

	data, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Contains(t, string(data), "SAVINGS PROJECTION")

	assert.Equal(t, "pdf", Extension(PDFFormatter{}))
	custom := FormatterFunc{ID: "upper", F: func(r *projection.Result) ([]byte, error) {
		return []byte(strings.ToUpper(r.ScenarioName)), nil
	}}
	got, err := custom.Format(&projection.Result{ScenarioName: "x"})
	require.NoError(t, err)
	assert.Equal(t, "X", string(got))
	assert.Equal(t, "upper", Extension(custom))
}

func TestPeriodLabelFallback(t *testing.T) {
	assert.Equal(t, "Year 3", periodLabel(domain.YearRow{Year: 3}))
	assert.Equal(t, "2026", periodLabel(domain.YearRow{Year: 2, PeriodLabel: "2026"}))
	assert.Equal(t, "28.00%", FormatPercentage(decimal.RequireFromString("0.28")))
}
