package llm

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
	"github.com/ternarybob/dartview/internal/models"
)

// analysisPromptTemplate is filled by ComposeAnalysisPrompt; %[n] verbs keep argument order explicit
const analysisPromptTemplate = `
다음은 %[1]s의 %[2]s년부터 %[3]s년까지의 재무 데이터입니다.
일반인도 쉽게 이해할 수 있도록 친근하고 명확한 언어로 분석해주세요.

📊 주요 재무 지표 (%[4]s년 기준):
- 매출액: %[5]s억원
- 영업이익: %[6]s억원
- 당기순이익: %[7]s억원
- 자산총계: %[8]s억원
- 부채비율: %.1[9]f%%
- 영업이익률: %.1[10]f%%
- 순이익률: %.1[11]f%%

📈 연도별 매출액 추이:
%[12]s

💰 연도별 수익성 추이 (영업이익, 순이익):
%[13]s

🏦 연도별 부채비율 추이:
%[14]s

다음 관점에서 분석해주세요:
1. **매출 성장성**: 매출액이 증가하고 있는지, 성장 속도는 어떤지
2. **수익성 분석**: 영업이익률과 순이익률이 양호한지, 개선되고 있는지
3. **재무 안정성**: 부채비율이 적정한 수준인지, 변화 추이는 어떤지
4. **종합 평가**: 이 회사의 전반적인 재무 건전성과 투자 매력도
5. **주의사항**: 투자 시 고려해야 할 리스크 요인

답변은 다음 형식으로 작성해주세요:
- 이모지를 적극 활용하여 시각적 효과 높이기
- 전문 용어 사용 시 괄호 안에 쉬운 설명 추가
- 구체적인 수치와 함께 설명
- 긍정적인 부분과 주의할 점을 균형있게 제시
- 일반 투자자도 이해할 수 있는 쉬운 언어 사용

한글로 답변해주세요.
`

const comparisonPromptTemplate = `
다음 회사들의 재무 지표를 비교 분석해주세요:

%s

비교 분석 관점:
1. **수익성**: 영업이익률과 순이익률 비교
2. **성장성**: 매출 규모와 성장 잠재력
3. **안정성**: 부채비율과 재무 안정성
4. **투자 매력도**: 각 회사의 강점과 약점
5. **투자 추천**: 어떤 회사가 더 매력적인지 (투자 조언이 아닌 단순 비교)

일반인도 이해하기 쉽게 설명해주세요.
`

const unknownCompany = "알 수 없음"

// ComposeAnalysisPrompt renders the single-company prompt for summary over years.
// Amounts are whole 억원 with thousands separators; percentages have one decimal.
func ComposeAnalysisPrompt(companyName string, summary *models.FinancialSummary, years []string) string {
	first, last := "", ""
	if len(years) > 0 {
		first, last = years[0], years[len(years)-1]
	}

	metrics := models.KeyMetrics{LatestYear: last}
	if summary != nil && summary.KeyMetrics != nil {
		metrics = *summary.KeyMetrics
	}
	if summary == nil {
		summary = &models.FinancialSummary{}
	}

	var revenue, profit, debt []string
	for _, p := range summary.RevenueTrend {
		revenue = append(revenue, fmt.Sprintf("- %s년: %s억원", p.Year, FormatAmount(p.Value)))
	}
	for _, p := range summary.ProfitTrend {
		profit = append(profit, fmt.Sprintf("- %s년: 영업이익 %s억원, 순이익 %s억원",
			p.Year, FormatAmount(p.OperatingProfit), FormatAmount(p.NetProfit)))
	}
	for _, p := range summary.DebtRatioTrend {
		debt = append(debt, fmt.Sprintf("- %s년: %.1f%%", p.Year, p.DebtRatio))
	}

	return fmt.Sprintf(analysisPromptTemplate,
		companyName, first, last,
		metrics.LatestYear,
		FormatAmount(metrics.Revenue),
		FormatAmount(metrics.OperatingProfit),
		FormatAmount(metrics.NetProfit),
		FormatAmount(metrics.TotalAssets),
		metrics.DebtRatio,
		metrics.OperatingMargin,
		metrics.NetMargin,
		trendBlock(revenue),
		trendBlock(profit),
		trendBlock(debt),
	)
}

// ComposeComparisonPrompt renders one block per company in the given order
func ComposeComparisonPrompt(companies []models.CompanyMetrics) string {
	blocks := make([]string, 0, len(companies))
	for _, c := range companies {
		name := c.CompanyName
		if name == "" {
			name = unknownCompany
		}
		m := models.KeyMetrics{}
		if c.KeyMetrics != nil {
			m = *c.KeyMetrics
		}

		blocks = append(blocks, fmt.Sprintf("\n%s:\n- 매출액: %s억원\n- 영업이익률: %.1f%%\n- 순이익률: %.1f%%\n- 부채비율: %.1f%%\n",
			name, FormatAmount(m.Revenue), m.OperatingMargin, m.NetMargin, m.DebtRatio))
	}

	return fmt.Sprintf(comparisonPromptTemplate, strings.Join(blocks, "\n"))
}

func trendBlock(lines []string) string {
	if len(lines) == 0 {
		return "- 데이터 없음"
	}
	return strings.Join(lines, "\n")
}

// FormatAmount renders v rounded to a whole number with comma thousands separators
func FormatAmount(v float64) string {
	return humanize.Comma(decimal.NewFromFloat(v).Round(0).IntPart())
}
