package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/dartview/internal/interfaces"
	"github.com/ternarybob/dartview/internal/models"
)

// FetchFunc returns up to limit candidates for query, skipping names in seen
type FetchFunc func(ctx context.Context, query string, limit int, seen []string) ([]*models.Company, error)

// Tier is one stage of the search pipeline.
// Optional tiers contribute nothing when they fail instead of failing the search.
type Tier struct {
	Name     string
	Fetch    FetchFunc
	Optional bool
}

// Service implements interfaces.SearchService as an ordered pipeline of tiers
type Service struct {
	tiers  []Tier
	logger arbor.ILogger
}

// NewService builds the exact, partial and full-text pipeline over storage
func NewService(storage interfaces.CompanyStorage, logger arbor.ILogger) *Service {
	return NewPipeline(logger,
		Tier{
			Name: "exact",
			Fetch: func(ctx context.Context, query string, limit int, _ []string) ([]*models.Company, error) {
				return storage.ExactMatches(ctx, query, limit)
			},
		},
		Tier{
			Name:  "partial",
			Fetch: storage.PartialMatches,
		},
		Tier{
			Name:     "fts",
			Fetch:    storage.FullTextMatches,
			Optional: true,
		},
	)
}

// NewPipeline creates a search service running tiers in the given order
func NewPipeline(logger arbor.ILogger, tiers ...Tier) *Service {
	return &Service{
		tiers:  tiers,
		logger: logger,
	}
}

// Search runs tiers in order while fewer than limit results are collected.
// Each tier receives the remaining quota and the names emitted so far; the first occurrence of a name wins.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]*models.Company, error) {
	query = strings.TrimSpace(query)
	results := []*models.Company{}
	if query == "" || limit <= 0 {
		return results, nil
	}

	seen := make(map[string]struct{})
	var seenNames []string

	for _, tier := range s.tiers {
		remaining := limit - len(results)
		if remaining <= 0 {
			break
		}

		candidates, err := tier.Fetch(ctx, query, remaining, seenNames)
		if err != nil {
			if tier.Optional {
				s.logger.Debug().
					Err(err).
					Str("tier", tier.Name).
					Str("query", query).
					Msg("Search tier skipped")
				continue
			}
			return nil, fmt.Errorf("%s search failed: %w", tier.Name, err)
		}

		for _, company := range candidates {
			if len(results) >= limit {
				break
			}
			if _, dup := seen[company.CorpName]; dup {
				continue
			}
			seen[company.CorpName] = struct{}{}
			seenNames = append(seenNames, company.CorpName)
			results = append(results, company)
		}
	}

	s.logger.Debug().
		Str("query", query).
		Int("limit", limit).
		Int("results", len(results)).
		Msg("Company search completed")

	return results, nil
}
