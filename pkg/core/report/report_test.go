package report

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/language"

	"reit_valuation/pkg/core/valuation"
)

var referenceAsset = valuation.Assumptions{
	BaseRent:           60.73,
	RentGrowthRate:     0.0067,
	OccupancyRate:      0.98,
	OperatingCostRatio: 0.155,
	DiscountRate:       0.06,
	TerminalGrowthRate: 0.025,
	TermYears:          64,
	GrossFloorArea:     53606.58,
}

func newReferenceReport(t *testing.T, withScenarios bool) *Report {
	t.Helper()
	res, err := valuation.ComputeValuation(referenceAsset)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var set *valuation.ScenarioSet
	if withScenarios {
		s := valuation.ComputeScenarios(referenceAsset, 10)
		set = &s
	}
	return New("Tower A", referenceAsset, res, set)
}

// =============================================================================
// LOCALE / FORMAT
// =============================================================================

func TestMatchLocale(t *testing.T) {
	tests := []struct {
		in   string
		want language.Tag
	}{
		{"", language.SimplifiedChinese},
		{"zh-CN", language.SimplifiedChinese},
		{"zh", language.SimplifiedChinese},
		{"en", language.English},
		{"en-US", language.English},
		{"en-GB,en;q=0.8", language.English},
		{"###", language.SimplifiedChinese},
	}
	for _, tt := range tests {
		if got := MatchLocale(tt.in); got != tt.want {
			t.Errorf("MatchLocale(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatter_MoneyAmount(t *testing.T) {
	zh := NewFormatter("zh-CN")
	if got := zh.MoneyAmount(623_408_437.785); got != 62340.84 {
		t.Errorf("expected 62340.84 万元, got %v", got)
	}
	en := NewFormatter("en")
	if got := en.MoneyAmount(623_408_437.785); got != 623408437.79 {
		t.Errorf("expected 623408437.79, got %v", got)
	}
}

func TestFormatter_Strings(t *testing.T) {
	en := NewFormatter("en")
	if got := en.Money(1_234_567.891); got != "1,234,567.89" {
		t.Errorf("expected grouped money, got %q", got)
	}
	if got := en.Percent(0.025); got != "2.50%" {
		t.Errorf("expected 2.50%%, got %q", got)
	}

	zh := NewFormatter("zh-CN")
	if got := zh.Money(12_345_678); !strings.HasSuffix(got, " 万元") || !strings.HasPrefix(got, "1,234.57") {
		t.Errorf("expected 1,234.57 万元, got %q", got)
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{1.005, 1.01},
		{2.675, 2.68},
		{-1.005, -1.01},
		{100, 100},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// =============================================================================
// REPORT CONTENT
// =============================================================================

func TestNew(t *testing.T) {
	r := newReferenceReport(t, true)

	if r.ID == "" {
		t.Error("report ID should be set")
	}
	if len(r.NOIGrowth) != 63 {
		t.Errorf("expected 63 growth values, got %d", len(r.NOIGrowth))
	}
	if r.NOICAGR < 0.669 || r.NOICAGR > 0.671 {
		t.Errorf("expected NOI CAGR ≈ 0.67%%, got %.4f", r.NOICAGR)
	}
	if len(r.Scenarios) != 3 {
		t.Errorf("expected 3 scenario lines, got %d", len(r.Scenarios))
	}
	if len(r.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", r.Warnings)
	}
	if _, ok := r.growthFor(1); ok {
		t.Error("year 1 has no growth")
	}
	if _, ok := r.growthFor(64); !ok {
		t.Error("year 64 should have growth")
	}
}

func TestChart(t *testing.T) {
	res, _ := valuation.ComputeValuation(referenceAsset)
	c := Chart(res)

	if len(c.Years) != 64 || len(c.NOI) != 64 || len(c.PresentValue) != 64 || len(c.Rent) != 64 {
		t.Fatalf("expected 64 points per series, got %d/%d/%d/%d", len(c.Years), len(c.NOI), len(c.PresentValue), len(c.Rent))
	}
	if c.Years[0] != 1 || c.Years[63] != 64 {
		t.Errorf("unexpected year axis: %d..%d", c.Years[0], c.Years[63])
	}
	if c.NOI[0] != res.CashFlows[0].NOI || c.PresentValue[10] != res.CashFlows[10].PresentValue {
		t.Error("series should mirror the cash flows")
	}
}

func TestMarkdown_Chinese(t *testing.T) {
	r := newReferenceReport(t, true)
	out := Markdown(r, NewFormatter("zh-CN"))

	for _, want := range []string{
		"# Tower A · REITs 收益法估值报告",
		"62,340.84 万元",
		"## 情景对比",
		"| 乐观 |",
		"| 悲观 |",
		"## 年度现金流",
		r.ID,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected markdown to contain %q", want)
		}
	}

	rows := 0
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "| ") && strings.Count(line, "|") == 7 {
			rows++
		}
	}
	// Header, alignment row and one row per year.
	if rows != 66 {
		t.Errorf("expected 66 yearly table lines, got %d", rows)
	}
}

func TestMarkdown_EnglishWithFailedScenario(t *testing.T) {
	a := referenceAsset
	a.DiscountRate = 0.05
	a.TerminalGrowthRate = 0.045
	res, err := valuation.ComputeValuation(a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	set := valuation.ComputeScenarios(a, 10)
	out := Markdown(New("", a, res, &set), NewFormatter("en"))

	if !strings.Contains(out, "# REIT Income-Approach Valuation") {
		t.Error("expected English heading")
	}
	if !strings.Contains(out, "| Upside | not computable |") {
		t.Errorf("expected failed upside row, got:\n%s", out)
	}
	if !strings.Contains(out, "`terminal_growth_rate`") {
		t.Error("expected thin-spread warning to be listed")
	}
}

func TestHTML(t *testing.T) {
	r := newReferenceReport(t, true)
	page, err := HTML(r, NewFormatter("zh-CN"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		t.Fatalf("rendered page does not parse: %v", err)
	}
	if got := doc.Find("title").Text(); got != "Tower A · REITs 收益法估值报告" {
		t.Errorf("unexpected title %q", got)
	}
	if lang, _ := doc.Find("html").Attr("lang"); lang != "zh-Hans" {
		t.Errorf("expected lang zh-Hans, got %q", lang)
	}
	if n := doc.Find("table.valuation-table").Length(); n != 4 {
		t.Errorf("expected 4 tables, got %d", n)
	}
	if n := doc.Find("table.yearly tbody tr").Length(); n != 64 {
		t.Errorf("expected 64 yearly rows, got %d", n)
	}
	if doc.Find("table.summary td.num").Length() == 0 {
		t.Error("expected numeric cells to be tagged")
	}
	if !strings.Contains(doc.Find("table.summary").Text(), "62,340.84 万元") {
		t.Error("expected total value in summary table")
	}
}

func TestWriteCSV(t *testing.T) {
	r := newReferenceReport(t, true)

	var buf bytes.Buffer
	if err := WriteCSV(&buf, r, NewFormatter("en")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cr := csv.NewReader(&buf)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		t.Fatalf("csv does not parse: %v", err)
	}

	if records[0][0] != "Year" || records[0][2] != "NOI" {
		t.Errorf("unexpected header %v", records[0])
	}
	if records[1][0] != "1" || records[64][0] != "64" {
		t.Errorf("expected years 1..64, got %s..%s", records[1][0], records[64][0])
	}
	if records[1][3] != "" {
		t.Errorf("year 1 growth should be empty, got %q", records[1][3])
	}

	var total string
	for _, rec := range records {
		if len(rec) >= 2 && rec[0] == "Total value" {
			total = rec[1]
		}
	}
	if !strings.HasPrefix(total, "623408437.7") {
		t.Errorf("expected raw total value, got %q", total)
	}
	if !strings.HasPrefix(records[len(records)-1][0], "Scenario:Downside") {
		t.Errorf("expected scenarios at the end, got %v", records[len(records)-1])
	}
}
