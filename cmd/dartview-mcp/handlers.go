package main

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/dartview/internal/interfaces"
	"github.com/ternarybob/dartview/internal/models"
	"github.com/ternarybob/dartview/internal/services/insights"
	"github.com/ternarybob/dartview/internal/services/statements"
)

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

// handleSearchCompanies implements the search_companies tool
func handleSearchCompanies(searchService interfaces.SearchService, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := request.RequireString("query")
		if err != nil || query == "" {
			return textResult("Error: query parameter is required"), nil
		}

		limit := request.GetInt("limit", 10)
		if limit <= 0 {
			limit = 10
		}
		if limit > 100 {
			limit = 100
		}

		companies, err := searchService.Search(ctx, query, limit)
		if err != nil {
			logger.Error().Err(err).Str("query", query).Msg("Search failed")
			return textResult(fmt.Sprintf("Search error: %v", err)), nil
		}

		return textResult(formatSearchResults(query, companies)), nil
	}
}

// handleGetCompany implements the get_company tool
func handleGetCompany(storage interfaces.CompanyStorage, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		corpCode, err := request.RequireString("corp_code")
		if err != nil || corpCode == "" {
			return textResult("Error: corp_code parameter is required"), nil
		}

		company, err := storage.GetByCode(ctx, corpCode)
		if err != nil {
			logger.Error().Err(err).Str("corp_code", corpCode).Msg("GetByCode failed")
			return textResult(fmt.Sprintf("Lookup error: %v", err)), nil
		}
		if company == nil {
			return textResult(fmt.Sprintf("Company not found: %s", corpCode)), nil
		}

		return textResult(formatCompany(company)), nil
	}
}

// handleCompanyInsights implements the company_insights tool
func handleCompanyInsights(storage interfaces.CompanyStorage, fetcher interfaces.StatementFetcher, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		corpCode, err := request.RequireString("corp_code")
		if err != nil || corpCode == "" {
			return textResult("Error: corp_code parameter is required"), nil
		}
		year := request.GetString("year", "2022")

		company, err := storage.GetByCode(ctx, corpCode)
		if err != nil {
			logger.Error().Err(err).Str("corp_code", corpCode).Msg("GetByCode failed")
			return textResult(fmt.Sprintf("Lookup error: %v", err)), nil
		}
		if company == nil {
			return textResult(fmt.Sprintf("Company not found: %s", corpCode)), nil
		}

		result := fetcher.Fetch(ctx, company.CorpCode, year, models.ReportAnnual)
		if !result.Success {
			return textResult(fmt.Sprintf("No financial data for %s (%s): %s", company.CorpName, year, result.Message)), nil
		}

		bundle := insights.DeriveInsights(statements.Reshape(result.Items))
		return textResult(formatInsights(company, year, bundle)), nil
	}
}
