package main

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/dartview/internal/interfaces"
	"github.com/ternarybob/dartview/internal/models"
)

// stubStorage serves GetByCode from a map; other queries return nothing
type stubStorage struct {
	interfaces.CompanyStorage
	companies map[string]*models.Company
}

func (s *stubStorage) GetByCode(ctx context.Context, corpCode string) (*models.Company, error) {
	return s.companies[corpCode], nil
}

// stubFetcher returns result for every Fetch and records the last request
type stubFetcher struct {
	result     *models.FetchResult
	year       string
	reportCode string
}

func (f *stubFetcher) Fetch(ctx context.Context, corpCode, year, reportCode string) *models.FetchResult {
	f.year = year
	f.reportCode = reportCode
	return f.result
}

func (f *stubFetcher) FetchRange(ctx context.Context, corpCode string, years []string, reportCode string) map[string][]models.LineItem {
	out := make(map[string][]models.LineItem, len(years))
	for _, y := range years {
		out[y] = f.Fetch(ctx, corpCode, y, reportCode).Items
	}
	return out
}

func newStubStorage() *stubStorage {
	return &stubStorage{companies: map[string]*models.Company{
		"00126380": {CorpCode: "00126380", CorpName: "삼성전자", StockCode: "005930"},
	}}
}

func callTool(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) string {
	t.Helper()
	var request mcp.CallToolRequest
	request.Params.Arguments = args

	result, err := handler(context.Background(), request)
	require.NoError(t, err)
	require.Len(t, result.Content, 1)

	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	return text.Text
}

func item(section, account, amount string) models.LineItem {
	return models.LineItem{
		StatementType: models.StatementConsolidated,
		Section:       section,
		AccountName:   account,
		CurrentAmount: amount,
		BusinessYear:  "2022",
		ReportCode:    models.ReportAnnual,
	}
}

func TestHandleCompanyInsights(t *testing.T) {
	fetcher := &stubFetcher{result: &models.FetchResult{Success: true, Items: []models.LineItem{
		item(models.SectionIncomeStatement, models.AccountRevenue, "302,231,400,000,000"),
		item(models.SectionIncomeStatement, models.AccountOperatingProfit, "43,376,600,000,000"),
		item(models.SectionIncomeStatement, models.AccountNetIncome, "55,654,100,000,000"),
		item(models.SectionBalanceSheet, models.AccountTotalAssets, "448,424,500,000,000"),
		item(models.SectionBalanceSheet, models.AccountTotalLiabilities, "93,674,900,000,000"),
	}}}
	handler := handleCompanyInsights(newStubStorage(), fetcher, arbor.NewLogger())

	out := callTool(t, handler, map[string]any{"corp_code": "00126380", "year": "2022"})

	assert.Contains(t, out, "# 삼성전자 2022 insights")
	assert.Contains(t, out, "- Revenue: 3,022,314억원")
	assert.Contains(t, out, "**Overall grade:**")
	assert.Equal(t, "2022", fetcher.year)
	assert.Equal(t, models.ReportAnnual, fetcher.reportCode)
}

func TestHandleCompanyInsights_DefaultYear(t *testing.T) {
	fetcher := &stubFetcher{result: &models.FetchResult{Success: true}}
	handler := handleCompanyInsights(newStubStorage(), fetcher, arbor.NewLogger())

	callTool(t, handler, map[string]any{"corp_code": "00126380"})

	assert.Equal(t, "2022", fetcher.year)
}

func TestHandleCompanyInsights_Failures(t *testing.T) {
	tests := []struct {
		name   string
		args   map[string]any
		result *models.FetchResult
		want   string
	}{
		{"missing corp code", map[string]any{}, nil, "Error: corp_code parameter is required"},
		{"unknown company", map[string]any{"corp_code": "99999999"}, nil, "Company not found: 99999999"},
		{
			"no financial data",
			map[string]any{"corp_code": "00126380", "year": "2019"},
			&models.FetchResult{Success: false, Message: "조회된 데이터가 없습니다.", ErrorCode: "013"},
			"No financial data for 삼성전자 (2019): 조회된 데이터가 없습니다.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := &stubFetcher{result: tt.result}
			handler := handleCompanyInsights(newStubStorage(), fetcher, arbor.NewLogger())

			out := callTool(t, handler, tt.args)
			if out != tt.want {
				t.Errorf("expected %q, got %q", tt.want, out)
			}
		})
	}
}

func TestHandleGetCompany(t *testing.T) {
	handler := handleGetCompany(newStubStorage(), arbor.NewLogger())

	out := callTool(t, handler, map[string]any{"corp_code": "00126380"})
	assert.Contains(t, out, "# 삼성전자")
	assert.Contains(t, out, "**Stock code:** 005930")

	out = callTool(t, handler, map[string]any{"corp_code": "00000000"})
	assert.Equal(t, "Company not found: 00000000", out)
}
