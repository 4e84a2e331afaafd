package insights

import "github.com/ternarybob/dartview/internal/models"

// band is one threshold of an ordered bucket table
type band struct {
	threshold float64
	label     string
}

// Revenue bands in 억원, highest first
var revenueBands = []band{
	{100000, "🏢 대기업 규모의 매출을 기록하고 있어요"},
	{10000, "🏭 중견기업 수준의 안정적인 매출 규모예요"},
	{1000, "🏪 중소기업 중에서는 큰 규모의 매출이에요"},
}

const revenueSmall = "🏬 소규모 기업의 매출 수준이에요"

// Operating margin bands, highest first
var profitabilityBands = []band{
	{20, "💰 매우 높은 수익성을 보이는 우수한 기업이에요"},
	{10, "📈 양호한 수익성을 유지하고 있어요"},
	{5, "📊 보통 수준의 수익성을 보여요"},
	{0, "⚠️ 수익성이 다소 낮은 편이에요"},
}

const profitabilityLoss = "❌ 영업손실을 기록하고 있어 주의가 필요해요"

// Debt ratio bands, lowest first (an upper bound per band)
var stabilityBands = []band{
	{30, "🛡️ 부채비율이 낮아 재무가 매우 안정적이에요"},
	{50, "✅ 적정 수준의 부채비율을 유지하고 있어요"},
	{70, "⚡ 부채비율이 다소 높은 편이에요"},
}

const stabilityHighRisk = "🚨 부채비율이 높아 재무 위험이 있어요"

func atLeast(bands []band, v float64, fallback string) string {
	for _, b := range bands {
		if v >= b.threshold {
			return b.label
		}
	}
	return fallback
}

func atMost(bands []band, v float64, fallback string) string {
	for _, b := range bands {
		if v <= b.threshold {
			return b.label
		}
	}
	return fallback
}

// RevenueScale describes the size of revenue in 억원
func RevenueScale(revenue float64) string {
	return atLeast(revenueBands, revenue, revenueSmall)
}

// Profitability describes the operating margin
func Profitability(operatingMargin float64) string {
	return atLeast(profitabilityBands, operatingMargin, profitabilityLoss)
}

// Stability describes the debt ratio
func Stability(debtRatio float64) string {
	return atMost(stabilityBands, debtRatio, stabilityHighRisk)
}

// DeriveInsights builds the single-year assessment of a reshaped statement
func DeriveInsights(statement *models.Statement) *models.InsightBundle {
	figures := ExtractFigures(statement)
	ratios := figures.Ratios()
	score := Score(ratios)

	return &models.InsightBundle{
		RevenueScale:       RevenueScale(figures.Revenue),
		Profitability:      Profitability(ratios.OperatingMargin),
		FinancialStability: Stability(ratios.DebtRatio),
		OverallGrade:       Grade(score),
		Score:              score,
		KeyNumbers: models.KeyNumbers{
			Revenue:         figures.Revenue,
			OperatingMargin: ratios.OperatingMargin,
			NetMargin:       ratios.NetMargin,
			DebtRatio:       ratios.DebtRatio,
		},
	}
}
