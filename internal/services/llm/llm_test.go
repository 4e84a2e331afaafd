package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/dartview/internal/common"
	"github.com/ternarybob/dartview/internal/models"
)

type mockGenerator struct {
	generateFunc func(ctx context.Context, req *ContentRequest) (*ContentResponse, error)
	requests     []*ContentRequest
}

func (m *mockGenerator) GenerateContent(ctx context.Context, req *ContentRequest) (*ContentResponse, error) {
	m.requests = append(m.requests, req)
	return m.generateFunc(ctx, req)
}

func statement(revenue, op, net, assets, debt float64) *models.Statement {
	s := models.NewStatement()
	s.IncomeStatement[models.AccountRevenue] = models.Amounts{Current: revenue}
	s.IncomeStatement[models.AccountOperatingProfit] = models.Amounts{Current: op}
	s.IncomeStatement[models.AccountNetIncome] = models.Amounts{Current: net}
	s.BalanceSheet[models.AccountTotalAssets] = models.Amounts{Current: assets}
	s.BalanceSheet[models.AccountTotalLiabilities] = models.Amounts{Current: debt}
	return s
}

func TestFormatAmount(t *testing.T) {
	tests := map[float64]string{
		0:          "0",
		999:        "999",
		1000:       "1,000",
		1234.5:     "1,235",
		3022313.6:  "3,022,314",
		-15.5:      "-16",
		-0.2:       "0",
		1000000000: "1,000,000,000",
	}
	for in, want := range tests {
		if got := FormatAmount(in); got != want {
			t.Errorf("FormatAmount(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestComposeAnalysisPrompt(t *testing.T) {
	summary := &models.FinancialSummary{
		RevenueTrend: []models.RevenuePoint{{Year: "2021", Value: 2796048.2}, {Year: "2022", Value: 3022313.6}},
		ProfitTrend:  []models.ProfitPoint{{Year: "2022", OperatingProfit: 433766.0, NetProfit: 556541.0}},
		DebtRatioTrend: []models.DebtRatioPoint{
			{Year: "2022", DebtRatio: 20.8897},
		},
		KeyMetrics: &models.KeyMetrics{
			LatestYear:      "2022",
			Revenue:         3022313.6,
			OperatingProfit: 433766,
			NetProfit:       556541,
			TotalAssets:     4484245,
			DebtRatio:       20.8897,
			OperatingMargin: 14.352,
			NetMargin:       18.414,
		},
	}

	prompt := ComposeAnalysisPrompt("삼성전자", summary, []string{"2020", "2021", "2022"})

	assert.Contains(t, prompt, "다음은 삼성전자의 2020년부터 2022년까지의 재무 데이터입니다.")
	assert.Contains(t, prompt, "📊 주요 재무 지표 (2022년 기준):")
	assert.Contains(t, prompt, "- 매출액: 3,022,314억원")
	assert.Contains(t, prompt, "- 자산총계: 4,484,245억원")
	assert.Contains(t, prompt, "- 부채비율: 20.9%")
	assert.Contains(t, prompt, "- 영업이익률: 14.4%")
	assert.Contains(t, prompt, "- 순이익률: 18.4%")
	assert.Contains(t, prompt, "- 2021년: 2,796,048억원")
	assert.Contains(t, prompt, "- 2022년: 영업이익 433,766억원, 순이익 556,541억원")
	assert.Contains(t, prompt, "- 2022년: 20.9%")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(prompt), "한글로 답변해주세요."))
	assert.NotContains(t, prompt, "%!")
}

func TestComposeAnalysisPrompt_NoData(t *testing.T) {
	prompt := ComposeAnalysisPrompt("다코", &models.FinancialSummary{}, []string{"2021", "2022"})

	assert.Contains(t, prompt, "(2022년 기준)")
	assert.Contains(t, prompt, "- 매출액: 0억원")
	assert.Contains(t, prompt, "- 부채비율: 0.0%")
	assert.NotContains(t, prompt, "%!")
}

func TestComposeComparisonPrompt_ListsEveryCompany(t *testing.T) {
	prompt := ComposeComparisonPrompt([]models.CompanyMetrics{
		{CompanyName: "삼성전자", KeyMetrics: &models.KeyMetrics{Revenue: 3022314, OperatingMargin: 14.32, NetMargin: 18.41, DebtRatio: 20.89}},
		{CompanyName: "SK하이닉스", KeyMetrics: &models.KeyMetrics{Revenue: 446216, OperatingMargin: 15.7, NetMargin: 9.1, DebtRatio: 33.6}},
		{CompanyName: "", KeyMetrics: nil},
	})

	assert.Contains(t, prompt, "다음 회사들의 재무 지표를 비교 분석해주세요:")
	assert.Contains(t, prompt, "삼성전자:\n- 매출액: 3,022,314억원\n- 영업이익률: 14.3%")
	assert.Contains(t, prompt, "SK하이닉스:\n- 매출액: 446,216억원")
	assert.Contains(t, prompt, "알 수 없음:\n- 매출액: 0억원")
	assert.Less(t, strings.Index(prompt, "삼성전자"), strings.Index(prompt, "SK하이닉스"))
}

func TestNarrativeService_Analyze(t *testing.T) {
	gen := &mockGenerator{generateFunc: func(ctx context.Context, req *ContentRequest) (*ContentResponse, error) {
		return &ContentResponse{Text: "## 📈 매출 성장성\n\n**꾸준히** 증가했어요.", Provider: ProviderGemini, Model: "gemini-2.0-flash"}, nil
	}}
	service := NewNarrativeService(gen, "", arbor.NewLogger())

	statements := map[string]*models.Statement{
		"2021": statement(1000, 100, 80, 2000, 800),
		"2022": statement(1200, 180, 120, 2400, 900),
	}
	result := service.Analyze(context.Background(), "테스트전자", statements, []string{"2021", "2022"})

	require.True(t, result.Success)
	assert.Contains(t, result.Analysis, "매출 성장성")
	assert.Contains(t, result.AnalysisHTML, "<h2")
	assert.Contains(t, result.AnalysisHTML, "<strong>꾸준히</strong>")
	require.NotNil(t, result.Summary)
	assert.Equal(t, "2022", result.Summary.KeyMetrics.LatestYear)
	assert.Empty(t, result.Error)

	require.Len(t, gen.requests, 1)
	assert.Contains(t, gen.requests[0].Prompt, "테스트전자의 2021년부터 2022년까지")
	assert.Contains(t, gen.requests[0].Prompt, "- 매출액: 1,200억원")
}

func TestNarrativeService_AnalyzeFallback(t *testing.T) {
	gen := &mockGenerator{generateFunc: func(ctx context.Context, req *ContentRequest) (*ContentResponse, error) {
		return nil, errors.New("quota exhausted")
	}}
	service := NewNarrativeService(gen, "", arbor.NewLogger())

	result := service.Analyze(context.Background(), "테스트전자", nil, []string{"2022"})

	assert.False(t, result.Success)
	assert.Equal(t, AnalysisFallback, result.Analysis)
	assert.Equal(t, "quota exhausted", result.Error)
	assert.Empty(t, result.AnalysisHTML)
	// Never retried
	assert.Len(t, gen.requests, 1)
}

func TestNarrativeService_Compare(t *testing.T) {
	gen := &mockGenerator{generateFunc: func(ctx context.Context, req *ContentRequest) (*ContentResponse, error) {
		return nil, errors.New("timeout")
	}}
	service := NewNarrativeService(gen, "claude-3-5-haiku-20241022", arbor.NewLogger())

	result := service.Compare(context.Background(), []models.CompanyMetrics{{CompanyName: "A"}, {CompanyName: "B"}})
	assert.False(t, result.Success)
	assert.Equal(t, ComparisonFallback, result.Analysis)
	assert.Equal(t, "claude-3-5-haiku-20241022", gen.requests[0].Model)

	gen.generateFunc = func(ctx context.Context, req *ContentRequest) (*ContentResponse, error) {
		return &ContentResponse{Text: "A가 더 안정적이에요."}, nil
	}
	result = service.Compare(context.Background(), []models.CompanyMetrics{{CompanyName: "A"}, {CompanyName: "B"}})
	assert.True(t, result.Success)
	assert.Nil(t, result.Summary)
	assert.Contains(t, result.AnalysisHTML, "<p>A가 더 안정적이에요.</p>")
}

func newTestFactory(provider common.LLMProvider) *ProviderFactory {
	config := common.NewDefaultConfig()
	config.LLM.DefaultProvider = provider
	return NewProviderFactory(&config.Gemini, &config.Claude, &config.LLM, arbor.NewLogger())
}

func TestProviderFactory_DetectProvider(t *testing.T) {
	f := newTestFactory(common.LLMProviderGemini)

	tests := map[string]ProviderType{
		"":                                 ProviderGemini,
		"claude-3-5-haiku-20241022":        ProviderClaude,
		"anthropic/claude-sonnet-4":        ProviderClaude,
		"gemini-2.0-flash":                 ProviderGemini,
		"google/gemini-2.5-pro":            ProviderGemini,
		"Claude/claude-3-5-haiku-20241022": ProviderClaude,
		"llama3":                           ProviderGemini,
	}
	for model, want := range tests {
		assert.Equal(t, want, f.DetectProvider(model), "model %q", model)
	}

	claudeDefault := newTestFactory(common.LLMProviderClaude)
	assert.Equal(t, ProviderClaude, claudeDefault.DetectProvider(""))
	assert.Equal(t, ProviderGemini, claudeDefault.DetectProvider("gemini-2.0-flash"))
}

func TestProviderFactory_NormalizeModel(t *testing.T) {
	f := newTestFactory(common.LLMProviderGemini)

	assert.Equal(t, "gemini-2.0-flash", f.NormalizeModel("gemini/gemini-2.0-flash"))
	assert.Equal(t, "claude-sonnet-4", f.NormalizeModel("anthropic/claude-sonnet-4"))
	assert.Equal(t, "claude-3-5-haiku-20241022", f.NormalizeModel("claude-3-5-haiku-20241022"))
	assert.Equal(t, "claude-3-5-haiku-20241022", f.GetDefaultModel(ProviderClaude))
	assert.Equal(t, "gemini-2.0-flash", f.GetDefaultModel(ProviderGemini))
}

func TestProviderFactory_MissingAPIKey(t *testing.T) {
	t.Setenv("DARTVIEW_GEMINI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("DARTVIEW_CLAUDE_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")

	f := newTestFactory(common.LLMProviderGemini)

	_, err := f.GenerateContent(context.Background(), &ContentRequest{Prompt: "안녕"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Gemini API key")

	_, err = f.GenerateContent(context.Background(), &ContentRequest{Prompt: "안녕", Model: "claude-3-5-haiku-20241022"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Anthropic API key")

	assert.NoError(t, f.Close())
}
