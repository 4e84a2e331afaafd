package sqlite

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/dartview/internal/models"
)

// CompanyLoader implements interfaces.CompanyLoader.
// Rebuild is destructive: the directory is dropped and repopulated in one transaction.
type CompanyLoader struct {
	db     *SQLiteDB
	logger arbor.ILogger
}

// NewCompanyLoader creates a loader bound to db
func NewCompanyLoader(db *SQLiteDB, logger arbor.ILogger) *CompanyLoader {
	return &CompanyLoader{
		db:     db,
		logger: logger,
	}
}

// Rebuild drops the directory, recreates the schema, inserts companies and rebuilds the FTS index.
// Duplicate corp codes keep the first occurrence.
func (l *CompanyLoader) Rebuild(ctx context.Context, companies []*models.Company) (int, error) {
	tx, err := l.db.BeginTx(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, dropSchemaSQL); err != nil {
		return 0, fmt.Errorf("failed to drop schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, createSchemaSQL); err != nil {
		return 0, fmt.Errorf("failed to create schema: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO companies (corp_code, corp_name, corp_eng_name, stock_code, modify_date)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, c := range companies {
		result, err := stmt.ExecContext(ctx, c.CorpCode, c.CorpName, c.CorpEngName, c.StockCode, c.ModifyDate)
		if err != nil {
			return 0, fmt.Errorf("failed to insert company %s: %w", c.CorpCode, err)
		}
		if n, err := result.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}

	if _, err := tx.ExecContext(ctx, rebuildFTSSQL); err != nil {
		return 0, fmt.Errorf("failed to rebuild full-text index: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit rebuild: %w", err)
	}

	l.logger.Info().
		Int("records", len(companies)).
		Int("inserted", inserted).
		Msg("Company directory rebuilt")

	return inserted, nil
}
