package interfaces

import (
	"context"

	"github.com/ternarybob/dartview/internal/models"
)

// SearchService provides tiered company-name search
type SearchService interface {
	// Search returns at most limit companies with unique names, exact matches first
	Search(ctx context.Context, query string, limit int) ([]*models.Company, error)
}
