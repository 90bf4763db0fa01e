package report

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// tenThousand is the 万 divisor used for Chinese money display.
var tenThousand = decimal.NewFromInt(10_000)

// Formatter renders numbers for one locale.
type Formatter struct {
	Tag     language.Tag
	Labels  Labels
	printer *message.Printer
}

// NewFormatter builds a formatter for a locale string such as "zh-CN" or "en".
func NewFormatter(locale string) *Formatter {
	tag := MatchLocale(locale)
	return &Formatter{
		Tag:     tag,
		Labels:  labelsFor(tag),
		printer: message.NewPrinter(tag),
	}
}

// IsChinese reports whether money is shown in 万元.
func (f *Formatter) IsChinese() bool {
	return f.Tag != language.English
}

// Round2 rounds half away from zero to two decimals.
func Round2(v float64) float64 {
	out, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return out
}

// MoneyAmount converts a monetary value into display units (万元 for
// Chinese) rounded to two decimals.
func (f *Formatter) MoneyAmount(v float64) float64 {
	d := decimal.NewFromFloat(v)
	if f.IsChinese() {
		d = d.Div(tenThousand)
	}
	out, _ := d.Round(2).Float64()
	return out
}

// Money formats v with grouping and the locale's money unit.
func (f *Formatter) Money(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return "-"
	}
	s := f.printer.Sprintf("%.2f", f.MoneyAmount(v))
	if f.Labels.MoneyUnit != "" {
		s += " " + f.Labels.MoneyUnit
	}
	return s
}

// Number formats v with grouping and the given number of decimals.
func (f *Formatter) Number(v float64, decimals int32) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return "-"
	}
	rounded, _ := decimal.NewFromFloat(v).Round(decimals).Float64()
	switch decimals {
	case 0:
		return f.printer.Sprintf("%.0f", rounded)
	case 4:
		return f.printer.Sprintf("%.4f", rounded)
	default:
		return f.printer.Sprintf("%.2f", rounded)
	}
}

// Percent formats a fractional rate (0.025) as "2.50%".
func (f *Formatter) Percent(rate float64) string {
	return f.PercentPoints(rate * 100)
}

// PercentPoints formats an already-scaled percentage (2.5) as "2.50%".
func (f *Formatter) PercentPoints(pct float64) string {
	if math.IsInf(pct, 0) || math.IsNaN(pct) {
		return "-"
	}
	return f.printer.Sprintf("%.2f", Round2(pct)) + "%"
}

// Integer formats n with grouping.
func (f *Formatter) Integer(n int) string {
	return f.printer.Sprintf("%d", n)
}

// WithUnit appends a unit label separated by a space.
func WithUnit(value, unit string) string {
	if strings.TrimSpace(unit) == "" {
		return value
	}
	return value + " " + unit
}
