package report

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const reportCSS = `body{font-family:-apple-system,"PingFang SC","Microsoft YaHei",sans-serif;margin:2rem auto;max-width:960px;color:#222}
table.valuation-table{border-collapse:collapse;width:100%;margin:1rem 0}
table.valuation-table th,table.valuation-table td{border:1px solid #ddd;padding:4px 8px}
table.valuation-table td.num{text-align:right;font-variant-numeric:tabular-nums}
table.summary tr:first-child td{background:#f3f8ff}`

// numericCell matches cells such as "1,234.56", "-0.67%", "62,340.84 万元".
var numericCell = regexp.MustCompile(`^-?[\d,]+(\.\d+)?(%|\s*\S*元)?$`)

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// HTML renders the report as a standalone HTML page.
func HTML(r *Report, f *Formatter) (string, error) {
	var body bytes.Buffer
	if err := md.Convert([]byte(Markdown(r, f)), &body); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}

	page := fmt.Sprintf(
		"<!DOCTYPE html><html lang=%q><head><meta charset=\"utf-8\"><title></title><style>%s</style></head><body><main class=\"valuation-report\">%s</main></body></html>",
		f.Tag.String(), reportCSS, body.String(),
	)
	return decorate(page, pageTitle(r, f))
}

func pageTitle(r *Report, f *Formatter) string {
	if r.Title != "" {
		return r.Title + " · " + f.Labels.Title
	}
	return f.Labels.Title
}

// decorate post-processes the rendered page: title, table classes and
// right-aligned numeric cells.
func decorate(page, title string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("failed to parse rendered html: %w", err)
	}

	doc.Find("title").SetText(title)

	tables := doc.Find("table")
	tables.AddClass("valuation-table")
	tables.First().AddClass("summary")
	tables.Last().AddClass("yearly")

	doc.Find("td").Each(func(_ int, td *goquery.Selection) {
		if numericCell.MatchString(strings.TrimSpace(td.Text())) {
			td.AddClass("num")
		}
	})

	out, err := doc.Html()
	if err != nil {
		return "", fmt.Errorf("failed to serialize html: %w", err)
	}
	return out, nil
}
