// Package charts builds chart.js series from reshaped statements.
package charts

import (
	"errors"
	"fmt"

	"github.com/ternarybob/dartview/internal/models"
)

// Chart types
const (
	TypeRevenue = "revenue"
	TypeAsset   = "asset"
	TypeBalance = "balance"
)

// ErrUnknownChartType is returned for a chart type other than revenue, asset or balance
var ErrUnknownChartType = errors.New("unknown chart type")

// IsKnownType reports whether Build accepts chartType
func IsKnownType(chartType string) bool {
	switch chartType {
	case TypeRevenue, TypeAsset, TypeBalance:
		return true
	}
	return false
}

// rgb is a chart.js colour without its alpha channel
type rgb struct{ r, g, b int }

func (c rgb) alpha(a float64) string {
	return fmt.Sprintf("rgba(%d, %d, %d, %g)", c.r, c.g, c.b, a)
}

var (
	blue   = rgb{54, 162, 235}
	red    = rgb{255, 99, 132}
	teal   = rgb{75, 192, 192}
	purple = rgb{153, 102, 255}
	orange = rgb{255, 159, 64}
)

// series describes one dataset: its label, colour and how to read a value from a statement
type series struct {
	label string
	color rgb
	value func(*models.Statement) float64
}

func account(section, name string) func(*models.Statement) float64 {
	return func(s *models.Statement) float64 {
		return s.Current(section, name)
	}
}

var (
	revenue   = account(models.SectionIncomeStatement, models.AccountRevenue)
	opProfit  = account(models.SectionIncomeStatement, models.AccountOperatingProfit)
	netProfit = account(models.SectionIncomeStatement, models.AccountNetIncome)
	assets    = account(models.SectionBalanceSheet, models.AccountTotalAssets)
	debt      = account(models.SectionBalanceSheet, models.AccountTotalLiabilities)
	equity    = account(models.SectionBalanceSheet, models.AccountTotalEquity)
)

// Build returns the chart for chartType with one label per year in caller order.
// Years without a statement contribute 0 to every series.
func Build(chartType string, years []string, statements map[string]*models.Statement) (*models.ChartData, error) {
	chart := &models.ChartData{
		Labels:   append([]string{}, years...),
		Datasets: []models.ChartDataset{},
	}

	switch chartType {
	case TypeRevenue:
		for _, s := range []series{
			{models.AccountRevenue, blue, revenue},
			{models.AccountOperatingProfit, red, opProfit},
			{models.AccountNetIncome, teal, netProfit},
		} {
			chart.Datasets = append(chart.Datasets, bar(s, years, statements))
		}

	case TypeAsset:
		for _, s := range []series{
			{models.AccountTotalAssets, purple, assets},
			{models.AccountTotalLiabilities, orange, debt},
			{models.AccountTotalEquity, blue, equity},
		} {
			chart.Datasets = append(chart.Datasets, bar(s, years, statements))
		}

	case TypeBalance:
		debtPlusEquity := func(s *models.Statement) float64 { return debt(s) + equity(s) }

		assetLine := dataset(series{"자산총계 (A)", teal, assets}, years, statements, 0.6)
		assetLine.BorderWidth = 2
		assetLine.Type = "line"

		sumLine := dataset(series{"부채+자본 (B+C)", red, debtPlusEquity}, years, statements, 0.6)
		sumLine.BorderWidth = 2
		sumLine.Type = "line"
		sumLine.BorderDash = []int{5, 5}

		debtBar := dataset(series{"부채총계 (B)", orange, debt}, years, statements, 0.7)
		debtBar.Stack = "Stack 0"

		equityBar := dataset(series{"자본총계 (C)", blue, equity}, years, statements, 0.7)
		equityBar.Stack = "Stack 0"

		chart.Datasets = append(chart.Datasets, assetLine, sumLine, debtBar, equityBar)

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownChartType, chartType)
	}

	return chart, nil
}

func bar(s series, years []string, statements map[string]*models.Statement) models.ChartDataset {
	return dataset(s, years, statements, 0.8)
}

func dataset(s series, years []string, statements map[string]*models.Statement, background float64) models.ChartDataset {
	data := make([]float64, len(years))
	for i, year := range years {
		// nil statements read as 0
		data[i] = s.value(statements[year])
	}

	return models.ChartDataset{
		Label:           s.label,
		Data:            data,
		BackgroundColor: s.color.alpha(background),
		BorderColor:     s.color.alpha(1),
	}
}
