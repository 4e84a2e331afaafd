package common

import (
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/banner"
)

// PrintBanner displays the application banner and logs the resolved endpoints
func PrintBanner(config *Config, logger arbor.ILogger) {
	banner.Print("DartView", GetVersion())

	logger.Info().
		Str("version", GetFullVersion()).
		Str("environment", config.Environment).
		Str("database", config.Storage.SQLite.Path).
		Str("llm_provider", string(config.LLM.DefaultProvider)).
		Msg("DartView starting")
}
