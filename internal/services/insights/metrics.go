// Package insights derives ratios, qualitative buckets and trend summaries from reshaped statements.
package insights

import "github.com/ternarybob/dartview/internal/models"

// Ratios holds the three percentages every assessment is built from
type Ratios struct {
	OperatingMargin float64
	NetMargin       float64
	DebtRatio       float64
}

// Figures are the key current-period accounts of one statement, in 억원
type Figures struct {
	Revenue          float64
	OperatingProfit  float64
	NetProfit        float64
	TotalAssets      float64
	TotalLiabilities float64
	TotalEquity      float64
}

// ExtractFigures reads the key accounts; missing accounts are 0
func ExtractFigures(statement *models.Statement) Figures {
	return Figures{
		Revenue:          statement.Current(models.SectionIncomeStatement, models.AccountRevenue),
		OperatingProfit:  statement.Current(models.SectionIncomeStatement, models.AccountOperatingProfit),
		NetProfit:        statement.Current(models.SectionIncomeStatement, models.AccountNetIncome),
		TotalAssets:      statement.Current(models.SectionBalanceSheet, models.AccountTotalAssets),
		TotalLiabilities: statement.Current(models.SectionBalanceSheet, models.AccountTotalLiabilities),
		TotalEquity:      statement.Current(models.SectionBalanceSheet, models.AccountTotalEquity),
	}
}

// Ratios computes margins over revenue and the debt ratio over assets
func (f Figures) Ratios() Ratios {
	return Ratios{
		OperatingMargin: Percent(f.OperatingProfit, f.Revenue),
		NetMargin:       Percent(f.NetProfit, f.Revenue),
		DebtRatio:       Percent(f.TotalLiabilities, f.TotalAssets),
	}
}

// Percent returns part/whole*100, or 0 when whole <= 0
func Percent(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return part / whole * 100
}
