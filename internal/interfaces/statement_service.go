package interfaces

import (
	"context"

	"github.com/ternarybob/dartview/internal/models"
)

// StatementFetcher pulls financial line items from the disclosure API
type StatementFetcher interface {
	// Fetch never returns an error; failures are reported through FetchResult
	Fetch(ctx context.Context, corpCode, year, reportCode string) *models.FetchResult

	// FetchRange fetches each year in order; failed years map to an empty slice
	FetchRange(ctx context.Context, corpCode string, years []string, reportCode string) map[string][]models.LineItem
}
