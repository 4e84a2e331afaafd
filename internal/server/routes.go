package server

import (
	"net/http"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// UI page and static files
	mux.HandleFunc("GET /{$}", s.app.PageHandler.IndexHandler)
	mux.HandleFunc("GET /static/", s.app.PageHandler.StaticFileHandler)

	// System
	mux.HandleFunc("GET /health", s.app.APIHandler.HealthHandler)
	mux.HandleFunc("GET /api/version", s.app.APIHandler.VersionHandler)

	// Company directory
	mux.HandleFunc("GET /api/search", s.app.CompanyHandler.SearchHandler)
	mux.HandleFunc("GET /api/company/{code}", s.app.CompanyHandler.CompanyHandler)
	mux.HandleFunc("GET /api/random", s.app.CompanyHandler.RandomHandler)
	mux.HandleFunc("GET /api/stats", s.app.CompanyHandler.StatsHandler)

	// Financial statements
	mux.HandleFunc("GET /api/financial/{code}", s.app.FinancialHandler.FinancialHandler)
	mux.HandleFunc("GET /api/financial/multi/{code}", s.app.FinancialHandler.MultiYearHandler)
	mux.HandleFunc("GET /api/financial/chart/{code}", s.app.FinancialHandler.ChartHandler)

	// Insights and narratives
	mux.HandleFunc("GET /api/ai-analysis/{code}", s.app.AnalysisHandler.AnalysisHandler)
	mux.HandleFunc("GET /api/ai-insights/{code}", s.app.AnalysisHandler.InsightsHandler)
	mux.HandleFunc("GET /api/ai-compare", s.app.AnalysisHandler.CompareHandler)

	// 404 handler for everything else
	mux.HandleFunc("/", s.app.APIHandler.NotFoundHandler)

	return mux
}
