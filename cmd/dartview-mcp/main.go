package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"
	arbor_models "github.com/ternarybob/arbor/models"
	"github.com/ternarybob/dartview/internal/app"
	"github.com/ternarybob/dartview/internal/common"
	"github.com/ternarybob/dartview/internal/services/search"
	"github.com/ternarybob/dartview/internal/storage/sqlite"
)

func main() {
	configPath := os.Getenv("DARTVIEW_CONFIG")
	if configPath == "" {
		configPath = "dartview.toml"
	}

	var configFiles []string
	if _, err := os.Stat(configPath); err == nil {
		configFiles = append(configFiles, configPath)
	}

	config, err := common.LoadFromFiles(configFiles...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Minimal logging to avoid cluttering MCP stdio
	logger := arbor.NewLogger().WithConsoleWriter(arbor_models.WriterConfiguration{
		Type:             arbor_models.LogWriterTypeConsole,
		TimeFormat:       "15:04:05",
		DisableTimestamp: false,
	}).WithLevelFromString("warn")

	db, err := sqlite.NewSQLiteDB(logger, &config.Storage.SQLite)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to open company directory")
	}
	defer db.Close()

	storage := sqlite.NewCompanyStorage(db, logger)
	searchService := search.NewService(storage, logger)

	// Insights need OpenDART; the directory tools work without a key
	client, err := app.NewOpenDARTClient(config, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("OpenDART API key not configured, company_insights disabled")
	}

	mcpServer := server.NewMCPServer(
		"dartview",
		common.GetVersion(),
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(createSearchCompaniesTool(), handleSearchCompanies(searchService, logger))
	mcpServer.AddTool(createGetCompanyTool(), handleGetCompany(storage, logger))
	if client != nil {
		mcpServer.AddTool(createCompanyInsightsTool(), handleCompanyInsights(storage, client, logger))
	}

	// Blocks on stdio
	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Fatal().Err(err).Msg("MCP server failed")
	}
}
