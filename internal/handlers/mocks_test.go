package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/ternarybob/dartview/internal/models"
)

// mockSearchService implements interfaces.SearchService for testing
type mockSearchService struct {
	searchFunc func(ctx context.Context, query string, limit int) ([]*models.Company, error)
	lastLimit  int
}

func (m *mockSearchService) Search(ctx context.Context, query string, limit int) ([]*models.Company, error) {
	m.lastLimit = limit
	if m.searchFunc != nil {
		return m.searchFunc(ctx, query, limit)
	}
	return []*models.Company{}, nil
}

// mockCompanyStorage implements interfaces.CompanyStorage over an in-memory map
type mockCompanyStorage struct {
	companies map[string]*models.Company
	err       error
	lastLimit int
}

func (m *mockCompanyStorage) ExactMatches(ctx context.Context, query string, limit int) ([]*models.Company, error) {
	return nil, m.err
}

func (m *mockCompanyStorage) PartialMatches(ctx context.Context, query string, limit int, exclude []string) ([]*models.Company, error) {
	return nil, m.err
}

func (m *mockCompanyStorage) FullTextMatches(ctx context.Context, query string, limit int, exclude []string) ([]*models.Company, error) {
	return nil, m.err
}

func (m *mockCompanyStorage) GetByCode(ctx context.Context, corpCode string) (*models.Company, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.companies[corpCode], nil
}

func (m *mockCompanyStorage) Random(ctx context.Context, limit int) ([]*models.Company, error) {
	m.lastLimit = limit
	if m.err != nil {
		return nil, m.err
	}
	out := []*models.Company{}
	for _, c := range m.companies {
		if len(out) == limit {
			break
		}
		out = append(out, c)
	}
	return out, nil
}

func (m *mockCompanyStorage) Stats(ctx context.Context) (*models.DirectoryStats, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &models.DirectoryStats{TotalCompanies: len(m.companies), ListedCompanies: len(m.companies)}, nil
}

func (m *mockCompanyStorage) Count(ctx context.Context) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	return len(m.companies), nil
}

func (m *mockCompanyStorage) Ping(ctx context.Context) error {
	return m.err
}

// mockFetcher implements interfaces.StatementFetcher with per-year canned items
type mockFetcher struct {
	items      map[string][]models.LineItem
	failure    *models.FetchResult
	calls      []string
	reportCode string
}

func (m *mockFetcher) Fetch(ctx context.Context, corpCode, year, reportCode string) *models.FetchResult {
	m.calls = append(m.calls, corpCode+"/"+year)
	m.reportCode = reportCode
	if m.failure != nil {
		return m.failure
	}
	items, ok := m.items[year]
	if !ok || len(items) == 0 {
		return &models.FetchResult{Success: false, Message: "조회된 데이터가 없습니다.", ErrorCode: "013"}
	}
	return &models.FetchResult{Success: true, Items: items, Message: "재무 데이터를 성공적으로 가져왔습니다."}
}

func (m *mockFetcher) FetchRange(ctx context.Context, corpCode string, years []string, reportCode string) map[string][]models.LineItem {
	out := make(map[string][]models.LineItem, len(years))
	for _, year := range years {
		result := m.Fetch(ctx, corpCode, year, reportCode)
		if result.Success {
			out[year] = result.Items
		} else {
			out[year] = []models.LineItem{}
		}
	}
	return out
}

// mockNarrative implements interfaces.NarrativeService
type mockNarrative struct {
	result    *models.AnalysisResult
	lastYears []string
	compared  []models.CompanyMetrics
}

func (m *mockNarrative) Analyze(ctx context.Context, companyName string, statements map[string]*models.Statement, years []string) *models.AnalysisResult {
	m.lastYears = years
	return m.result
}

func (m *mockNarrative) Compare(ctx context.Context, companies []models.CompanyMetrics) *models.AnalysisResult {
	m.compared = companies
	return m.result
}

// Helper function to create the sample directory
func sampleStorage() *mockCompanyStorage {
	return &mockCompanyStorage{companies: map[string]*models.Company{
		"00126380": {CorpCode: "00126380", CorpName: "삼성전자", StockCode: "005930", ModifyDate: "20240315"},
		"00164779": {CorpCode: "00164779", CorpName: "SK하이닉스", StockCode: "000660", ModifyDate: "20240301"},
	}}
}

// Helper function to build consolidated line items worth revenue and assets (in 억원)
func lineItems(year string, revenue, operating, net, assets, debt, equity string) []models.LineItem {
	item := func(section, account, amount string) models.LineItem {
		return models.LineItem{
			BusinessYear:  year,
			CorpCode:      "00126380",
			ReportCode:    "11011",
			StatementType: models.StatementConsolidated,
			Section:       section,
			AccountName:   account,
			CurrentAmount: amount,
		}
	}
	return []models.LineItem{
		item(models.SectionIncomeStatement, models.AccountRevenue, revenue),
		item(models.SectionIncomeStatement, models.AccountOperatingProfit, operating),
		item(models.SectionIncomeStatement, models.AccountNetIncome, net),
		item(models.SectionBalanceSheet, models.AccountTotalAssets, assets),
		item(models.SectionBalanceSheet, models.AccountTotalLiabilities, debt),
		item(models.SectionBalanceSheet, models.AccountTotalEquity, equity),
	}
}

// Helper function to decode a JSON response body
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return body
}
