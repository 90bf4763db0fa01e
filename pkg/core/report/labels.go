package report

import (
	"strings"

	"golang.org/x/text/language"
)

// Labels holds every user-visible string of a report in one language.
type Labels struct {
	Title            string
	GeneratedAt      string
	ReportID         string
	SectionSummary   string
	SectionInputs    string
	SectionScenarios string
	SectionYearly    string
	SectionWarnings  string

	TotalValue    string
	PVCashFlows   string
	TerminalValue string
	PVTerminal    string
	TerminalShare string
	AverageNOI    string
	FirstYearNOI  string
	LastYearNOI   string
	NOICAGR       string

	BaseRent           string
	RentGrowthRate     string
	OccupancyRate      string
	OperatingCostRatio string
	DiscountRate       string
	TerminalGrowthRate string
	TermYears          string
	GrossFloorArea     string

	Year           string
	Rent           string
	NOI            string
	NOIGrowth      string
	DiscountFactor string
	PresentValue   string

	Scenario  string
	Change    string
	Failed    string
	Metric    string
	Value     string
	NoWarning string

	MoneyUnit string
	YearsUnit string
	AreaUnit  string
	RentUnit  string

	ScenarioNames map[string]string
}

var zhLabels = Labels{
	Title:            "REITs 收益法估值报告",
	GeneratedAt:      "生成时间",
	ReportID:         "报告编号",
	SectionSummary:   "估值结果",
	SectionInputs:    "估值参数",
	SectionScenarios: "情景对比",
	SectionYearly:    "年度现金流",
	SectionWarnings:  "参数提示",

	TotalValue:    "项目估值",
	PVCashFlows:   "预测期现值合计",
	TerminalValue: "终值",
	PVTerminal:    "终值现值",
	TerminalShare: "终值占比",
	AverageNOI:    "年度平均 NOI",
	FirstYearNOI:  "首年 NOI",
	LastYearNOI:   "末年 NOI",
	NOICAGR:       "NOI 复合增长率",

	BaseRent:           "起始租金",
	RentGrowthRate:     "租金年增长率",
	OccupancyRate:      "出租率",
	OperatingCostRatio: "运营成本率",
	DiscountRate:       "折现率",
	TerminalGrowthRate: "永续增长率",
	TermYears:          "收益年限",
	GrossFloorArea:     "建筑面积",

	Year:           "年份",
	Rent:           "租金收入",
	NOI:            "NOI",
	NOIGrowth:      "NOI 增长",
	DiscountFactor: "折现系数",
	PresentValue:   "现值",

	Scenario:  "情景",
	Change:    "较基准变动",
	Failed:    "无法计算",
	Metric:    "指标",
	Value:     "数值",
	NoWarning: "无",

	MoneyUnit: "万元",
	YearsUnit: "年",
	AreaUnit:  "㎡",
	RentUnit:  "元/㎡/月",

	ScenarioNames: map[string]string{
		"base":     "基准",
		"upside":   "乐观",
		"downside": "悲观",
	},
}

var enLabels = Labels{
	Title:            "REIT Income-Approach Valuation",
	GeneratedAt:      "Generated",
	ReportID:         "Report ID",
	SectionSummary:   "Valuation",
	SectionInputs:    "Assumptions",
	SectionScenarios: "Scenarios",
	SectionYearly:    "Yearly cash flows",
	SectionWarnings:  "Input warnings",

	TotalValue:    "Total value",
	PVCashFlows:   "PV of explicit cash flows",
	TerminalValue: "Terminal value",
	PVTerminal:    "PV of terminal value",
	TerminalShare: "Terminal share",
	AverageNOI:    "Average annual NOI",
	FirstYearNOI:  "Year-1 NOI",
	LastYearNOI:   "Final-year NOI",
	NOICAGR:       "NOI CAGR",

	BaseRent:           "Base rent",
	RentGrowthRate:     "Rent growth",
	OccupancyRate:      "Occupancy",
	OperatingCostRatio: "Operating cost ratio",
	DiscountRate:       "Discount rate",
	TerminalGrowthRate: "Terminal growth",
	TermYears:          "Term",
	GrossFloorArea:     "Gross floor area",

	Year:           "Year",
	Rent:           "Rent",
	NOI:            "NOI",
	NOIGrowth:      "NOI growth",
	DiscountFactor: "Discount factor",
	PresentValue:   "Present value",

	Scenario:  "Scenario",
	Change:    "Change vs base",
	Failed:    "not computable",
	Metric:    "Metric",
	Value:     "Value",
	NoWarning: "None",

	MoneyUnit: "",
	YearsUnit: "years",
	AreaUnit:  "m²",
	RentUnit:  "per m² per month",

	ScenarioNames: map[string]string{
		"base":     "Base",
		"upside":   "Upside",
		"downside": "Downside",
	},
}

var (
	supported = []language.Tag{language.SimplifiedChinese, language.English}
	matcher   = language.NewMatcher(supported)
)

// SupportedLocales lists the locale tags reports can be rendered in.
func SupportedLocales() []string {
	out := make([]string, len(supported))
	for i, t := range supported {
		out[i] = t.String()
	}
	return out
}

// MatchLocale resolves a locale string (or Accept-Language value) to a
// supported tag. Unknown input falls back to Simplified Chinese.
func MatchLocale(locale string) language.Tag {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return supported[0]
	}
	tags, _, err := language.ParseAcceptLanguage(locale)
	if err != nil || len(tags) == 0 {
		return supported[0]
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return supported[0]
	}
	return supported[idx]
}

func labelsFor(tag language.Tag) Labels {
	if tag == language.English {
		return enLabels
	}
	return zhLabels
}

// ScenarioName returns the localized name of a scenario label.
func (l Labels) ScenarioName(label string) string {
	if name, ok := l.ScenarioNames[label]; ok {
		return name
	}
	return label
}
