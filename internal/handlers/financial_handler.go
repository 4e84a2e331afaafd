package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/dartview/internal/interfaces"
	"github.com/ternarybob/dartview/internal/opendart"
	"github.com/ternarybob/dartview/internal/services/charts"
	"github.com/ternarybob/dartview/internal/services/statements"
)

// FinancialHandler serves the statement and chart routes
type FinancialHandler struct {
	storage interfaces.CompanyStorage
	fetcher interfaces.StatementFetcher
	logger  arbor.ILogger
}

// NewFinancialHandler creates a new financial handler with dependencies
func NewFinancialHandler(storage interfaces.CompanyStorage, fetcher interfaces.StatementFetcher, logger arbor.ILogger) *FinancialHandler {
	return &FinancialHandler{
		storage: storage,
		fetcher: fetcher,
		logger:  logger,
	}
}

// FinancialHandler handles GET /api/financial/{code}?year=&reprt_code=
func (h *FinancialHandler) FinancialHandler(w http.ResponseWriter, r *http.Request) {
	const errPrefix = "재무 데이터 조회 중 오류가 발생했습니다"

	params := yearQuery{
		Year:       GetQueryOr(r, "year", defaultYear),
		ReportCode: GetQueryOr(r, "reprt_code", defaultReportCode),
	}
	if err := validateQuery(params); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	company, ok := lookupCompany(w, r, h.storage, errPrefix)
	if !ok {
		return
	}

	result := h.fetcher.Fetch(r.Context(), company.CorpCode, params.Year, params.ReportCode)
	if !result.Success {
		h.logger.Warn().
			Str("corp_code", company.CorpCode).
			Str("year", params.Year).
			Str("error_code", result.ErrorCode).
			Msg(result.Message)
		WriteJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success":    false,
			"message":    result.Message,
			"error_code": result.ErrorCode,
		})
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"company":        company,
		"financial_data": statements.Reshape(result.Items),
		"raw_data":       result.Items,
	}, fmt.Sprintf("%s의 %s년 재무 데이터를 조회했습니다.", company.CorpName, params.Year))
}

// MultiYearHandler handles GET /api/financial/multi/{code}?years=&reprt_code=
// Years without data map to null.
func (h *FinancialHandler) MultiYearHandler(w http.ResponseWriter, r *http.Request) {
	const errPrefix = "다년도 재무 데이터 조회 중 오류가 발생했습니다"

	params := yearsQuery{
		Years:      SplitList(GetQueryOr(r, "years", defaultMultiYears)),
		ReportCode: GetQueryOr(r, "reprt_code", defaultReportCode),
	}
	if len(params.Years) > opendart.MaxRangeYears {
		WriteError(w, http.StatusBadRequest, msgTooManyYears)
		return
	}
	if err := validateQuery(params); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	company, ok := lookupCompany(w, r, h.storage, errPrefix)
	if !ok {
		return
	}

	raw := h.fetcher.FetchRange(r.Context(), company.CorpCode, params.Years, params.ReportCode)

	WriteSuccess(w, map[string]interface{}{
		"company":    company,
		"years_data": statements.ReshapeRange(raw),
		"years":      params.Years,
	}, fmt.Sprintf("%s의 %d개년 재무 데이터를 조회했습니다.", company.CorpName, len(params.Years)))
}

// ChartHandler handles GET /api/financial/chart/{code}?years=&type=
func (h *FinancialHandler) ChartHandler(w http.ResponseWriter, r *http.Request) {
	const errPrefix = "차트 데이터 생성 중 오류가 발생했습니다"

	chartType := GetQueryOr(r, "type", charts.TypeRevenue)
	params := yearsQuery{
		Years:      SplitList(GetQueryOr(r, "years", defaultChartYears)),
		ReportCode: defaultReportCode,
	}
	if err := validateQuery(params); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !charts.IsKnownType(chartType) {
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("지원하지 않는 차트 유형입니다: %s", chartType))
		return
	}

	company, ok := lookupCompany(w, r, h.storage, errPrefix)
	if !ok {
		return
	}

	raw := h.fetcher.FetchRange(r.Context(), company.CorpCode, params.Years, params.ReportCode)

	chart, err := charts.Build(chartType, params.Years, statements.ReshapeRange(raw))
	if err != nil {
		if errors.Is(err, charts.ErrUnknownChartType) {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error().Err(err).Str("corp_code", company.CorpCode).Msg("Chart build failed")
		WriteInternalError(w, errPrefix, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"company":    company,
		"chart_data": chart,
		"chart_type": chartType,
		"years":      params.Years,
	}, fmt.Sprintf("%s의 %s 차트 데이터를 생성했습니다.", company.CorpName, chartType))
}
