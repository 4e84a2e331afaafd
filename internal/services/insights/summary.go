package insights

import "github.com/ternarybob/dartview/internal/models"

// DeriveSummary builds trend arrays over years in the order given.
// Years without a statement are skipped. KeyMetrics is taken from the last
// entry, so callers must pass years chronologically; nothing here sorts them.
func DeriveSummary(statements map[string]*models.Statement, years []string) *models.FinancialSummary {
	summary := &models.FinancialSummary{
		RevenueTrend:   []models.RevenuePoint{},
		ProfitTrend:    []models.ProfitPoint{},
		AssetTrend:     []models.AssetPoint{},
		DebtRatioTrend: []models.DebtRatioPoint{},
	}

	var latest Figures
	var latestYear string

	for _, year := range years {
		statement := statements[year]
		if statement == nil {
			continue
		}

		f := ExtractFigures(statement)

		summary.RevenueTrend = append(summary.RevenueTrend, models.RevenuePoint{Year: year, Value: f.Revenue})
		summary.ProfitTrend = append(summary.ProfitTrend, models.ProfitPoint{
			Year:            year,
			OperatingProfit: f.OperatingProfit,
			NetProfit:       f.NetProfit,
		})
		summary.AssetTrend = append(summary.AssetTrend, models.AssetPoint{
			Year:   year,
			Assets: f.TotalAssets,
			Debt:   f.TotalLiabilities,
			Equity: f.TotalEquity,
		})
		summary.DebtRatioTrend = append(summary.DebtRatioTrend, models.DebtRatioPoint{
			Year:      year,
			DebtRatio: Percent(f.TotalLiabilities, f.TotalAssets),
		})

		latest = f
		latestYear = year
	}

	if len(summary.RevenueTrend) > 0 {
		summary.KeyMetrics = KeyMetricsFor(latestYear, latest)
	}

	return summary
}

// KeyMetricsFor builds the key metric snapshot of one year's figures
func KeyMetricsFor(year string, f Figures) *models.KeyMetrics {
	r := f.Ratios()
	return &models.KeyMetrics{
		LatestYear:      year,
		Revenue:         f.Revenue,
		OperatingProfit: f.OperatingProfit,
		NetProfit:       f.NetProfit,
		TotalAssets:     f.TotalAssets,
		DebtRatio:       r.DebtRatio,
		OperatingMargin: r.OperatingMargin,
		NetMargin:       r.NetMargin,
	}
}
