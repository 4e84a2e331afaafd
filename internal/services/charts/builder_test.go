package charts

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/dartview/internal/models"
)

func sampleStatements() map[string]*models.Statement {
	s2021 := models.NewStatement()
	s2021.IncomeStatement["매출액"] = models.Amounts{Current: 2796048}
	s2021.IncomeStatement["영업이익"] = models.Amounts{Current: 516339}
	s2021.IncomeStatement["당기순이익"] = models.Amounts{Current: 399074}
	s2021.BalanceSheet["자산총계"] = models.Amounts{Current: 4266212}
	s2021.BalanceSheet["부채총계"] = models.Amounts{Current: 1217212}
	s2021.BalanceSheet["자본총계"] = models.Amounts{Current: 3049000}

	return map[string]*models.Statement{"2021": s2021, "2020": nil}
}

func TestBuild_Revenue(t *testing.T) {
	chart, err := Build(TypeRevenue, []string{"2020", "2021", "2022"}, sampleStatements())
	require.NoError(t, err)

	assert.Equal(t, []string{"2020", "2021", "2022"}, chart.Labels)
	require.Len(t, chart.Datasets, 3)

	revenue := chart.Datasets[0]
	assert.Equal(t, "매출액", revenue.Label)
	assert.Equal(t, []float64{0, 2796048, 0}, revenue.Data)
	assert.Equal(t, "rgba(54, 162, 235, 0.8)", revenue.BackgroundColor)
	assert.Equal(t, "rgba(54, 162, 235, 1)", revenue.BorderColor)
	assert.Zero(t, revenue.BorderWidth)

	assert.Equal(t, "영업이익", chart.Datasets[1].Label)
	assert.Equal(t, "rgba(255, 99, 132, 0.8)", chart.Datasets[1].BackgroundColor)
	assert.Equal(t, "당기순이익", chart.Datasets[2].Label)
	assert.Equal(t, "rgba(75, 192, 192, 1)", chart.Datasets[2].BorderColor)
}

func TestBuild_Asset(t *testing.T) {
	chart, err := Build(TypeAsset, []string{"2021"}, sampleStatements())
	require.NoError(t, err)
	require.Len(t, chart.Datasets, 3)

	assert.Equal(t, "자산총계", chart.Datasets[0].Label)
	assert.Equal(t, "rgba(153, 102, 255, 0.8)", chart.Datasets[0].BackgroundColor)
	assert.Equal(t, "부채총계", chart.Datasets[1].Label)
	assert.Equal(t, "rgba(255, 159, 64, 1)", chart.Datasets[1].BorderColor)
	assert.Equal(t, []float64{3049000}, chart.Datasets[2].Data)
}

func TestBuild_BalanceSumsDebtAndEquity(t *testing.T) {
	chart, err := Build(TypeBalance, []string{"2020", "2021"}, sampleStatements())
	require.NoError(t, err)
	require.Len(t, chart.Datasets, 4)

	assetLine := chart.Datasets[0]
	assert.Equal(t, "자산총계 (A)", assetLine.Label)
	assert.Equal(t, "line", assetLine.Type)
	assert.Equal(t, 2, assetLine.BorderWidth)
	assert.Equal(t, "rgba(75, 192, 192, 0.6)", assetLine.BackgroundColor)

	sumLine := chart.Datasets[1]
	assert.Equal(t, "부채+자본 (B+C)", sumLine.Label)
	assert.Equal(t, []int{5, 5}, sumLine.BorderDash)
	assert.Equal(t, []float64{0, 4266212}, sumLine.Data)

	assert.Equal(t, "Stack 0", chart.Datasets[2].Stack)
	assert.Equal(t, "rgba(255, 159, 64, 0.7)", chart.Datasets[2].BackgroundColor)
	assert.Equal(t, "자본총계 (C)", chart.Datasets[3].Label)
	assert.Equal(t, "Stack 0", chart.Datasets[3].Stack)
}

func TestBuild_UnknownType(t *testing.T) {
	_, err := Build("debt", []string{"2022"}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownChartType))
	assert.False(t, IsKnownType("debt"))
	assert.True(t, IsKnownType(TypeBalance))
}
