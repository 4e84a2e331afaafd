package main

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// createSearchCompaniesTool returns the search_companies tool definition
func createSearchCompaniesTool() mcp.Tool {
	return mcp.NewTool("search_companies",
		mcp.WithDescription("Search the Korean company directory by name (exact matches first, then partial, then full-text)"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Company name or fragment, e.g. 삼성"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum results to return (default: 10, max: 100)"),
		),
	)
}

// createGetCompanyTool returns the get_company tool definition
func createGetCompanyTool() mcp.Tool {
	return mcp.NewTool("get_company",
		mcp.WithDescription("Retrieve a company by its OpenDART corp code"),
		mcp.WithString("corp_code",
			mcp.Required(),
			mcp.Description("8-digit OpenDART corp code, e.g. 00126380"),
		),
	)
}

// createCompanyInsightsTool returns the company_insights tool definition
func createCompanyInsightsTool() mcp.Tool {
	return mcp.NewTool("company_insights",
		mcp.WithDescription("Fetch a company's annual statement from OpenDART and grade its scale, profitability and stability"),
		mcp.WithString("corp_code",
			mcp.Required(),
			mcp.Description("8-digit OpenDART corp code"),
		),
		mcp.WithString("year",
			mcp.Description("Business year (default: 2022)"),
		),
	)
}
