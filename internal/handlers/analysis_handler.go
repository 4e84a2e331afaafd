package handlers

import (
	"fmt"
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/dartview/internal/interfaces"
	"github.com/ternarybob/dartview/internal/models"
	"github.com/ternarybob/dartview/internal/opendart"
	"github.com/ternarybob/dartview/internal/services/insights"
	"github.com/ternarybob/dartview/internal/services/statements"
)

// AnalysisHandler serves the narrative and insight routes
type AnalysisHandler struct {
	storage   interfaces.CompanyStorage
	fetcher   interfaces.StatementFetcher
	narrative interfaces.NarrativeService
	logger    arbor.ILogger
}

// NewAnalysisHandler creates a new analysis handler with dependencies
func NewAnalysisHandler(
	storage interfaces.CompanyStorage,
	fetcher interfaces.StatementFetcher,
	narrative interfaces.NarrativeService,
	logger arbor.ILogger,
) *AnalysisHandler {
	return &AnalysisHandler{
		storage:   storage,
		fetcher:   fetcher,
		narrative: narrative,
		logger:    logger,
	}
}

// AnalysisHandler handles GET /api/ai-analysis/{code}?years=
func (h *AnalysisHandler) AnalysisHandler(w http.ResponseWriter, r *http.Request) {
	const errPrefix = "AI 분석 중 오류가 발생했습니다"

	params := yearsQuery{
		Years:      SplitList(GetQueryOr(r, "years", defaultAIYears)),
		ReportCode: defaultReportCode,
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

	reshaped := statements.ReshapeRange(h.fetcher.FetchRange(r.Context(), company.CorpCode, params.Years, params.ReportCode))
	if !anyStatement(reshaped) {
		WriteError(w, http.StatusBadRequest, msgNoFinancialData)
		return
	}

	result := h.narrative.Analyze(r.Context(), company.CorpName, reshaped, params.Years)
	if !result.Success {
		WriteJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": result.Analysis,
			"error":   result.Error,
		})
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"company":       company,
		"analysis":      result.Analysis,
		"analysis_html": result.AnalysisHTML,
		"summary":       result.Summary,
		"years":         params.Years,
	}, fmt.Sprintf("%s의 AI 재무 분석이 완료되었습니다.", company.CorpName))
}

// InsightsHandler handles GET /api/ai-insights/{code}?year=
func (h *AnalysisHandler) InsightsHandler(w http.ResponseWriter, r *http.Request) {
	const errPrefix = "인사이트 생성 중 오류가 발생했습니다"

	params := yearQuery{
		Year:       GetQueryOr(r, "year", defaultYear),
		ReportCode: defaultReportCode,
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
			Msg(result.Message)
		WriteError(w, http.StatusBadRequest, msgNoFinancialData)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"company":  company,
		"insights": insights.DeriveInsights(statements.Reshape(result.Items)),
		"year":     params.Year,
	}, fmt.Sprintf("%s의 %s년 재무 인사이트입니다.", company.CorpName, params.Year))
}

// CompareHandler handles GET /api/ai-compare?codes=a,b&year=
func (h *AnalysisHandler) CompareHandler(w http.ResponseWriter, r *http.Request) {
	const errPrefix = "회사 비교 분석 중 오류가 발생했습니다"

	params := compareQuery{
		Codes: SplitList(r.URL.Query().Get("codes")),
		Year:  GetQueryOr(r, "year", defaultYear),
	}
	if err := validateQuery(params); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	companies := make([]*models.Company, 0, len(params.Codes))
	metrics := make([]models.CompanyMetrics, 0, len(params.Codes))

	for _, code := range params.Codes {
		company, err := h.storage.GetByCode(r.Context(), code)
		if err != nil {
			WriteInternalError(w, errPrefix, err)
			return
		}
		if company == nil {
			WriteError(w, http.StatusNotFound, fmt.Sprintf("%s (%s)", msgCompanyNotFound, code))
			return
		}

		result := h.fetcher.Fetch(r.Context(), company.CorpCode, params.Year, defaultReportCode)
		if !result.Success {
			WriteError(w, http.StatusBadRequest, fmt.Sprintf("%s: %s", company.CorpName, msgNoFinancialData))
			return
		}

		figures := insights.ExtractFigures(statements.Reshape(result.Items))
		companies = append(companies, company)
		metrics = append(metrics, models.CompanyMetrics{
			CompanyName: company.CorpName,
			KeyMetrics:  insights.KeyMetricsFor(params.Year, figures),
		})
	}

	result := h.narrative.Compare(r.Context(), metrics)
	if !result.Success {
		WriteJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": result.Analysis,
			"error":   result.Error,
		})
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"companies":     companies,
		"metrics":       metrics,
		"analysis":      result.Analysis,
		"analysis_html": result.AnalysisHTML,
		"year":          params.Year,
	}, fmt.Sprintf("%d개 회사의 비교 분석이 완료되었습니다.", len(companies)))
}

func anyStatement(byYear map[string]*models.Statement) bool {
	for _, s := range byYear {
		if s != nil {
			return true
		}
	}
	return false
}
