// Package registry rebuilds the company directory from the OpenDART corp code registry.
package registry

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/dartview/internal/interfaces"
	"github.com/ternarybob/dartview/internal/models"
)

// RegistrySource downloads the current corp registry XML
type RegistrySource interface {
	CorpCodes(ctx context.Context) ([]byte, error)
}

// Report summarises one ingestion run
type Report struct {
	Parsed   int           `json:"parsed"`
	Inserted int           `json:"inserted"`
	Total    int           `json:"total_companies"`
	Listed   int           `json:"listed_companies"`
	Duration time.Duration `json:"duration"`
}

// Service loads corp registry snapshots into the directory
type Service struct {
	loader  interfaces.CompanyLoader
	storage interfaces.CompanyStorage
	logger  arbor.ILogger
}

// NewService creates a registry ingestion service
func NewService(loader interfaces.CompanyLoader, storage interfaces.CompanyStorage, logger arbor.ILogger) *Service {
	return &Service{
		loader:  loader,
		storage: storage,
		logger:  logger,
	}
}

// IngestFile rebuilds the directory from a corp.xml file on disk
func (s *Service) IngestFile(ctx context.Context, path string) (*Report, error) {
	s.logger.Info().Str("path", path).Msg("Parsing corp registry")

	companies, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	return s.load(ctx, companies)
}

// IngestRemote downloads the registry from source and rebuilds the directory
func (s *Service) IngestRemote(ctx context.Context, source RegistrySource) (*Report, error) {
	s.logger.Info().Msg("Downloading corp registry")

	data, err := source.CorpCodes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to download corp registry: %w", err)
	}

	companies, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return s.load(ctx, companies)
}

func (s *Service) load(ctx context.Context, companies []*models.Company) (*Report, error) {
	start := time.Now()
	s.logger.Info().Int("companies", len(companies)).Msg("Corp registry parsed")

	inserted, err := s.loader.Rebuild(ctx, companies)
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild company directory: %w", err)
	}

	stats, err := s.storage.Stats(ctx)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Parsed:   len(companies),
		Inserted: inserted,
		Total:    stats.TotalCompanies,
		Listed:   stats.ListedCompanies,
		Duration: time.Since(start),
	}

	s.logger.Info().
		Int("total", report.Total).
		Int("listed", report.Listed).
		Dur("duration", report.Duration).
		Msg("Company directory ingestion complete")

	return report, nil
}
