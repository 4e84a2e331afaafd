package app

import (
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/dartview/internal/common"
	"github.com/ternarybob/dartview/internal/handlers"
	"github.com/ternarybob/dartview/internal/interfaces"
	"github.com/ternarybob/dartview/internal/opendart"
	"github.com/ternarybob/dartview/internal/services/llm"
	"github.com/ternarybob/dartview/internal/services/search"
	"github.com/ternarybob/dartview/internal/storage/sqlite"
)

// App holds all application components and dependencies
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	// Storage
	DB             *sqlite.SQLiteDB
	CompanyStorage interfaces.CompanyStorage

	// Services
	SearchService    interfaces.SearchService
	StatementFetcher interfaces.StatementFetcher
	ProviderFactory  *llm.ProviderFactory
	NarrativeService interfaces.NarrativeService

	// HTTP handlers
	APIHandler       *handlers.APIHandler
	CompanyHandler   *handlers.CompanyHandler
	FinancialHandler *handlers.FinancialHandler
	AnalysisHandler  *handlers.AnalysisHandler
	PageHandler      *handlers.PageHandler
}

// New initializes the application with all dependencies.
// A missing company directory is fatal; run "dartview ingest" first.
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	if err := app.initDatabase(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := app.initServices(); err != nil {
		app.DB.Close()
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	app.initHandlers()

	logger.Info().
		Str("llm_provider", string(cfg.LLM.DefaultProvider)).
		Str("opendart_base_url", cfg.OpenDART.BaseURL).
		Msg("Application initialization complete")

	return app, nil
}

// initDatabase opens the company directory
func (a *App) initDatabase() error {
	db, err := sqlite.NewSQLiteDB(a.Logger, &a.Config.Storage.SQLite)
	if err != nil {
		return err
	}

	a.DB = db
	a.CompanyStorage = sqlite.NewCompanyStorage(db, a.Logger)

	a.Logger.Debug().
		Str("storage", "sqlite").
		Str("path", a.Config.Storage.SQLite.Path).
		Msg("Storage layer initialized")

	return nil
}

// initServices initializes all business services in dependency order
func (a *App) initServices() error {
	a.SearchService = search.NewService(a.CompanyStorage, a.Logger)

	client, err := NewOpenDARTClient(a.Config, a.Logger)
	if err != nil {
		// Statement routes then report the API's own unregistered-key status
		a.Logger.Warn().Err(err).Msg("OpenDART API key not configured")
		client = opendart.NewClient("", opendartOptions(a.Config, a.Logger)...)
	}
	a.StatementFetcher = client

	a.ProviderFactory = llm.NewProviderFactory(&a.Config.Gemini, &a.Config.Claude, &a.Config.LLM, a.Logger)
	a.NarrativeService = llm.NewNarrativeService(a.ProviderFactory, "", a.Logger)

	return nil
}

// initHandlers initializes all HTTP handlers
func (a *App) initHandlers() {
	a.APIHandler = handlers.NewAPIHandler(a.CompanyStorage, a.Logger)
	a.CompanyHandler = handlers.NewCompanyHandler(a.SearchService, a.CompanyStorage, a.Logger)
	a.FinancialHandler = handlers.NewFinancialHandler(a.CompanyStorage, a.StatementFetcher, a.Logger)
	a.AnalysisHandler = handlers.NewAnalysisHandler(a.CompanyStorage, a.StatementFetcher, a.NarrativeService, a.Logger)
	a.PageHandler = handlers.NewPageHandler(a.Config.Web.Dir, a.Logger)
}

// NewOpenDARTClient builds the disclosure API client from config.
// The API key resolves from the environment first, then [opendart] api_key.
func NewOpenDARTClient(cfg *common.Config, logger arbor.ILogger) (*opendart.Client, error) {
	apiKey, err := common.ResolveAPIKey("opendart_api_key", cfg.OpenDART.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve OpenDART API key: %w", err)
	}

	return opendart.NewClient(apiKey, opendartOptions(cfg, logger)...), nil
}

func opendartOptions(cfg *common.Config, logger arbor.ILogger) []opendart.ClientOption {
	return []opendart.ClientOption{
		opendart.WithBaseURL(cfg.OpenDART.BaseURL),
		opendart.WithTimeout(common.ParseDurationOr(cfg.OpenDART.Timeout, opendart.DefaultTimeout)),
		opendart.WithRequestInterval(common.ParseDurationOr(cfg.OpenDART.RequestInterval, opendart.DefaultRequestInterval)),
		opendart.WithLogger(logger),
	}
}

// Close releases the database and provider clients
func (a *App) Close() error {
	if a.ProviderFactory != nil {
		a.ProviderFactory.Close()
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}
	a.Logger.Info().Msg("Application closed")
	return nil
}
