package interfaces

import (
	"context"

	"github.com/ternarybob/dartview/internal/models"
)

// CompanyStorage is the read side of the company directory.
// Tier queries take the remaining quota and the names already emitted by earlier tiers.
type CompanyStorage interface {
	// ExactMatches returns companies whose name equals query, ordered by name
	ExactMatches(ctx context.Context, query string, limit int) ([]*models.Company, error)

	// PartialMatches returns companies whose name contains query, prefix matches first,
	// then shorter names, then alphabetical. Exact matches and excluded names are skipped.
	PartialMatches(ctx context.Context, query string, limit int, exclude []string) ([]*models.Company, error)

	// FullTextMatches queries the FTS index ordered by relevance rank
	FullTextMatches(ctx context.Context, query string, limit int, exclude []string) ([]*models.Company, error)

	// GetByCode returns nil, nil when no company has the code
	GetByCode(ctx context.Context, corpCode string) (*models.Company, error)

	// Random returns up to limit listed companies in random order
	Random(ctx context.Context, limit int) ([]*models.Company, error)

	Stats(ctx context.Context) (*models.DirectoryStats, error)
	Count(ctx context.Context) (int, error)
	Ping(ctx context.Context) error
}

// CompanyLoader replaces the directory contents
type CompanyLoader interface {
	// Rebuild truncates the directory and repopulates it, returning the number of rows inserted
	Rebuild(ctx context.Context, companies []*models.Company) (int, error)
}
