package insights

// Grade labels
const (
	GradeExcellent        = "⭐⭐⭐ 우수한 재무 상태"
	GradeGood             = "⭐⭐ 양호한 재무 상태"
	GradeAverage          = "⭐ 보통 수준의 재무 상태"
	GradeNeedsImprovement = "⚠️ 재무 상태 개선 필요"
)

// Grade thresholds on the composite score
const (
	ThresholdExcellent = 80
	ThresholdGood      = 60
	ThresholdAverage   = 40
)

// points is one row of a score table
type points struct {
	threshold float64
	score     int
}

var operatingMarginPoints = []points{{15, 30}, {10, 25}, {5, 20}, {0, 10}}

var netMarginPoints = []points{{10, 30}, {5, 25}, {3, 20}, {0, 10}}

// debtRatioPoints are upper bounds; anything above the last earns debtRatioFloor
var debtRatioPoints = []points{{30, 40}, {50, 30}, {70, 20}}

const debtRatioFloor = 10

// Score returns the composite 0-100 score.
//
// Operating margin: >=15 →30, >=10 →25, >=5 →20, >=0 →10, else 0
// Net margin:       >=10 →30, >=5 →25, >=3 →20, >=0 →10, else 0
// Debt ratio:       <=30 →40, <=50 →30, <=70 →20, else 10
func Score(r Ratios) int {
	total := 0

	for _, p := range operatingMarginPoints {
		if r.OperatingMargin >= p.threshold {
			total += p.score
			break
		}
	}

	for _, p := range netMarginPoints {
		if r.NetMargin >= p.threshold {
			total += p.score
			break
		}
	}

	debt := debtRatioFloor
	for _, p := range debtRatioPoints {
		if r.DebtRatio <= p.threshold {
			debt = p.score
			break
		}
	}

	return total + debt
}

// Grade maps a composite score to its label
func Grade(score int) string {
	switch {
	case score >= ThresholdExcellent:
		return GradeExcellent
	case score >= ThresholdGood:
		return GradeGood
	case score >= ThresholdAverage:
		return GradeAverage
	default:
		return GradeNeedsImprovement
	}
}
