package interfaces

import (
	"context"

	"github.com/ternarybob/dartview/internal/models"
)

// NarrativeService turns financial summaries into plain-language analysis
type NarrativeService interface {
	Analyze(ctx context.Context, companyName string, statements map[string]*models.Statement, years []string) *models.AnalysisResult
	Compare(ctx context.Context, companies []models.CompanyMetrics) *models.AnalysisResult
}
