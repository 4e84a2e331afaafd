// Package statements reshapes raw OpenDART line items into consolidated statements.
package statements

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/ternarybob/dartview/internal/models"
)

// hundredMillion converts won into the 억원 unit used throughout the API
var hundredMillion = decimal.New(1, 8)

// Reshape keeps consolidated (CFS) items only and files them by section and account name.
// A repeated account overwrites the earlier one. Metadata is taken from the first item
// whatever its statement type.
func Reshape(items []models.LineItem) *models.Statement {
	statement := models.NewStatement()

	for i, item := range items {
		if i == 0 {
			statement.Metadata = &models.StatementMetadata{
				CorpCode:           item.CorpCode,
				StockCode:          item.StockCode,
				BusinessYear:       item.BusinessYear,
				ReportCode:         item.ReportCode,
				CurrentTermName:    item.CurrentTermName,
				PreviousTermName:   item.PreviousTermName,
				BeforePreviousName: item.BeforePreviousName,
			}
		}

		if item.StatementType != models.StatementConsolidated {
			continue
		}

		amounts := models.Amounts{
			Current:        ParseAmount(item.CurrentAmount),
			Previous:       ParseAmount(item.PreviousAmount),
			BeforePrevious: ParseAmount(item.BeforePreviousAmount),
		}

		switch item.Section {
		case models.SectionBalanceSheet:
			statement.BalanceSheet[item.AccountName] = amounts
		case models.SectionIncomeStatement:
			statement.IncomeStatement[item.AccountName] = amounts
		}
	}

	return statement
}

// ReshapeRange reshapes every year of a FetchRange result.
// Years with no line items map to nil.
func ReshapeRange(itemsByYear map[string][]models.LineItem) map[string]*models.Statement {
	out := make(map[string]*models.Statement, len(itemsByYear))
	for year, items := range itemsByYear {
		if len(items) == 0 {
			out[year] = nil
			continue
		}
		out[year] = Reshape(items)
	}
	return out
}

// ParseAmount converts a won amount such as "1,234,567,890" into 억원 rounded to two places.
// Empty, "-" and unparsable input yield 0.
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return 0
	}

	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return 0
	}

	v, _ := d.Div(hundredMillion).Round(2).Float64()
	return v
}
