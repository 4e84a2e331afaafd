package models

// RevenuePoint is one entry of FinancialSummary.RevenueTrend
type RevenuePoint struct {
	Year  string  `json:"year"`
	Value float64 `json:"value"`
}

// ProfitPoint is one entry of FinancialSummary.ProfitTrend
type ProfitPoint struct {
	Year            string  `json:"year"`
	OperatingProfit float64 `json:"operating_profit"`
	NetProfit       float64 `json:"net_profit"`
}

// AssetPoint is one entry of FinancialSummary.AssetTrend
type AssetPoint struct {
	Year   string  `json:"year"`
	Assets float64 `json:"assets"`
	Debt   float64 `json:"debt"`
	Equity float64 `json:"equity"`
}

// DebtRatioPoint is one entry of FinancialSummary.DebtRatioTrend
type DebtRatioPoint struct {
	Year      string  `json:"year"`
	DebtRatio float64 `json:"debt_ratio"`
}

// KeyMetrics is the snapshot taken from the last year of a summary
type KeyMetrics struct {
	LatestYear      string  `json:"latest_year"`
	Revenue         float64 `json:"revenue"`
	OperatingProfit float64 `json:"operating_profit"`
	NetProfit       float64 `json:"net_profit"`
	TotalAssets     float64 `json:"total_assets"`
	DebtRatio       float64 `json:"debt_ratio"`
	OperatingMargin float64 `json:"operating_margin"`
	NetMargin       float64 `json:"net_margin"`
}

// FinancialSummary is the multi-year trend view fed to the narrative prompts.
// KeyMetrics is nil when no year had data.
type FinancialSummary struct {
	RevenueTrend   []RevenuePoint   `json:"revenue_trend"`
	ProfitTrend    []ProfitPoint    `json:"profit_trend"`
	AssetTrend     []AssetPoint     `json:"asset_trend"`
	DebtRatioTrend []DebtRatioPoint `json:"debt_ratio_trend"`
	KeyMetrics     *KeyMetrics      `json:"key_metrics"`
}

// KeyNumbers are the raw figures behind an InsightBundle
type KeyNumbers struct {
	Revenue         float64 `json:"revenue"`
	OperatingMargin float64 `json:"operating_margin"`
	NetMargin       float64 `json:"net_margin"`
	DebtRatio       float64 `json:"debt_ratio"`
}

// InsightBundle is the single-year qualitative assessment
type InsightBundle struct {
	RevenueScale       string     `json:"revenue_scale"`
	Profitability      string     `json:"profitability"`
	FinancialStability string     `json:"financial_stability"`
	OverallGrade       string     `json:"overall_grade"`
	Score              int        `json:"score"`
	KeyNumbers         KeyNumbers `json:"key_numbers"`
}

// CompanyMetrics pairs a company name with its key metrics for comparison prompts
type CompanyMetrics struct {
	CompanyName string      `json:"company_name"`
	KeyMetrics  *KeyMetrics `json:"key_metrics"`
}

// AnalysisResult is the outcome of a narrative request.
// On failure Analysis holds a fallback message and Error the provider error.
type AnalysisResult struct {
	Success      bool              `json:"success"`
	Analysis     string            `json:"analysis"`
	AnalysisHTML string            `json:"analysis_html,omitempty"`
	Summary      *FinancialSummary `json:"summary,omitempty"`
	Error        string            `json:"error,omitempty"`
}
