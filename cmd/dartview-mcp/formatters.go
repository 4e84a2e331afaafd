package main

import (
	"fmt"
	"strings"

	"github.com/ternarybob/dartview/internal/models"
	"github.com/ternarybob/dartview/internal/services/llm"
)

// formatSearchResults formats search results as markdown
func formatSearchResults(query string, companies []*models.Company) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Search Results for \"%s\" (%d results)\n\n", query, len(companies)))

	if len(companies) == 0 {
		sb.WriteString("No results found.\n")
		return sb.String()
	}

	for i, c := range companies {
		sb.WriteString(fmt.Sprintf("%d. **%s** (%s)", i+1, c.CorpName, c.CorpCode))
		if c.IsListed() {
			sb.WriteString(fmt.Sprintf(" - stock code %s", c.StockCode))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatCompany formats a single company as markdown
func formatCompany(c *models.Company) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", c.CorpName))
	sb.WriteString(fmt.Sprintf("**Corp code:** %s\n", c.CorpCode))
	if c.CorpEngName != "" {
		sb.WriteString(fmt.Sprintf("**English name:** %s\n", c.CorpEngName))
	}
	if c.IsListed() {
		sb.WriteString(fmt.Sprintf("**Stock code:** %s\n", c.StockCode))
	} else {
		sb.WriteString("**Stock code:** unlisted\n")
	}
	if c.ModifyDate != "" {
		sb.WriteString(fmt.Sprintf("**Modified:** %s\n", c.ModifyDate))
	}
	return sb.String()
}

// formatInsights formats an insight bundle as markdown
func formatInsights(c *models.Company, year string, b *models.InsightBundle) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s %s insights\n\n", c.CorpName, year))
	sb.WriteString(fmt.Sprintf("**Overall grade:** %s (score %d)\n", b.OverallGrade, b.Score))
	sb.WriteString(fmt.Sprintf("**Revenue scale:** %s\n", b.RevenueScale))
	sb.WriteString(fmt.Sprintf("**Profitability:** %s\n", b.Profitability))
	sb.WriteString(fmt.Sprintf("**Financial stability:** %s\n\n", b.FinancialStability))
	sb.WriteString("## Key numbers\n\n")
	sb.WriteString(fmt.Sprintf("- Revenue: %s억원\n", llm.FormatAmount(b.KeyNumbers.Revenue)))
	sb.WriteString(fmt.Sprintf("- Operating margin: %.1f%%\n", b.KeyNumbers.OperatingMargin))
	sb.WriteString(fmt.Sprintf("- Net margin: %.1f%%\n", b.KeyNumbers.NetMargin))
	sb.WriteString(fmt.Sprintf("- Debt ratio: %.1f%%\n", b.KeyNumbers.DebtRatio))
	return sb.String()
}
