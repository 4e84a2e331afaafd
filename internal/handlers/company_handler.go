package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/dartview/internal/interfaces"
	"github.com/ternarybob/dartview/internal/models"
)

// Search and random listing limits
const (
	defaultSearchLimit = 50
	maxSearchLimit     = 100
	defaultRandomLimit = 10
	maxRandomLimit     = 20
)

// CompanyHandler serves the company directory routes
type CompanyHandler struct {
	searchService interfaces.SearchService
	storage       interfaces.CompanyStorage
	logger        arbor.ILogger
}

// NewCompanyHandler creates a new company handler with dependencies
func NewCompanyHandler(searchService interfaces.SearchService, storage interfaces.CompanyStorage, logger arbor.ILogger) *CompanyHandler {
	return &CompanyHandler{
		searchService: searchService,
		storage:       storage,
		logger:        logger,
	}
}

// SearchHandler handles GET /api/search?q=query&limit=n
func (h *CompanyHandler) SearchHandler(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	limit := GetLimitParam(r, defaultSearchLimit, maxSearchLimit)

	if query == "" {
		WriteJSON(w, http.StatusOK, map[string]interface{}{
			"success": false,
			"message": msgEmptyQuery,
			"data":    []*models.Company{},
		})
		return
	}

	h.logger.Info().
		Str("query", query).
		Int("limit", limit).
		Msg("Search request received")

	results, err := h.searchService.Search(r.Context(), query, limit)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("query", query).
			Msg("Failed to execute search")
		WriteJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "검색 중 오류가 발생했습니다: " + err.Error(),
			"data":    []*models.Company{},
		})
		return
	}

	h.logger.Debug().
		Str("query", query).
		Int("results", len(results)).
		Msg("Search completed")

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": fmt.Sprintf("%d개의 검색 결과를 찾았습니다.", len(results)),
		"data":    results,
		"query":   query,
		"count":   len(results),
	})
}

// CompanyHandler handles GET /api/company/{code}
func (h *CompanyHandler) CompanyHandler(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")

	company, err := h.storage.GetByCode(r.Context(), code)
	if err != nil {
		h.logger.Error().Err(err).Str("corp_code", code).Msg("Company lookup failed")
		WriteInternalError(w, "조회 중 오류가 발생했습니다", err)
		return
	}
	if company == nil {
		WriteError(w, http.StatusNotFound, msgCompanyNotFound)
		return
	}

	WriteSuccess(w, company, "")
}

// RandomHandler handles GET /api/random?limit=n
func (h *CompanyHandler) RandomHandler(w http.ResponseWriter, r *http.Request) {
	limit := GetLimitParam(r, defaultRandomLimit, maxRandomLimit)

	companies, err := h.storage.Random(r.Context(), limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("Random listing failed")
		WriteJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "조회 중 오류가 발생했습니다: " + err.Error(),
			"data":    []*models.Company{},
		})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    companies,
		"count":   len(companies),
	})
}

// StatsHandler handles GET /api/stats
func (h *CompanyHandler) StatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := h.storage.Stats(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Stats query failed")
		WriteInternalError(w, "통계 조회 중 오류가 발생했습니다", err)
		return
	}

	WriteSuccess(w, stats, "")
}

// lookupCompany resolves the {code} path value, writing a 404 or 500 when it cannot
func lookupCompany(w http.ResponseWriter, r *http.Request, storage interfaces.CompanyStorage, errPrefix string) (*models.Company, bool) {
	company, err := storage.GetByCode(r.Context(), r.PathValue("code"))
	if err != nil {
		WriteInternalError(w, errPrefix, err)
		return nil, false
	}
	if company == nil {
		WriteError(w, http.StatusNotFound, msgCompanyNotFound)
		return nil, false
	}
	return company, true
}
