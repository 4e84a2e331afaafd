package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/dartview/internal/models"
)

// CompanyStorage implements interfaces.CompanyStorage over the companies table
type CompanyStorage struct {
	db     *SQLiteDB
	logger arbor.ILogger
}

// NewCompanyStorage creates a new company storage instance
func NewCompanyStorage(db *SQLiteDB, logger arbor.ILogger) *CompanyStorage {
	return &CompanyStorage{
		db:     db,
		logger: logger,
	}
}

// ExactMatches returns companies whose name equals query
func (s *CompanyStorage) ExactMatches(ctx context.Context, query string, limit int) ([]*models.Company, error) {
	sqlQuery := `
		SELECT ` + companyColumns + `
		FROM companies c
		WHERE c.corp_name = ?
		ORDER BY c.corp_name
		LIMIT ?
	`

	rows, err := s.db.db.QueryContext(ctx, sqlQuery, query, limit)
	if err != nil {
		return nil, fmt.Errorf("exact match query failed: %w", err)
	}
	defer rows.Close()

	return scanCompanies(rows)
}

// PartialMatches returns companies whose name contains query as a literal substring.
// Prefix matches rank first, then shorter names, then alphabetical.
func (s *CompanyStorage) PartialMatches(ctx context.Context, query string, limit int, exclude []string) ([]*models.Company, error) {
	escaped := escapeLike(query)

	args := []interface{}{"%" + escaped + "%", query}
	notIn, notInArgs := notInClause("c.corp_name", exclude)
	args = append(args, notInArgs...)
	args = append(args, escaped+"%", limit)

	sqlQuery := `
		SELECT ` + companyColumns + `
		FROM companies c
		WHERE c.corp_name LIKE ? ESCAPE '\' AND c.corp_name != ?` + notIn + `
		ORDER BY
			CASE WHEN c.corp_name LIKE ? ESCAPE '\' THEN 1 ELSE 2 END,
			LENGTH(c.corp_name),
			c.corp_name
		LIMIT ?
	`

	rows, err := s.db.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("partial match query failed: %w", err)
	}
	defer rows.Close()

	return scanCompanies(rows)
}

// FullTextMatches queries companies_fts with query as an FTS5 MATCH expression.
// Errors include a missing index and malformed MATCH syntax; callers treat the tier as optional.
func (s *CompanyStorage) FullTextMatches(ctx context.Context, query string, limit int, exclude []string) ([]*models.Company, error) {
	args := []interface{}{query}
	notIn, notInArgs := notInClause("c.corp_name", exclude)
	args = append(args, notInArgs...)
	args = append(args, limit)

	sqlQuery := `
		SELECT ` + companyColumns + `
		FROM companies_fts fts
		INNER JOIN companies c ON c.id = fts.rowid
		WHERE companies_fts MATCH ?` + notIn + `
		ORDER BY rank
		LIMIT ?
	`

	rows, err := s.db.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("full-text query failed: %w", err)
	}
	defer rows.Close()

	return scanCompanies(rows)
}

// GetByCode returns the company with corpCode, or nil when absent
func (s *CompanyStorage) GetByCode(ctx context.Context, corpCode string) (*models.Company, error) {
	row := s.db.db.QueryRowContext(ctx, `
		SELECT `+companyColumns+`
		FROM companies c
		WHERE c.corp_code = ?
	`, corpCode)

	company := &models.Company{}
	err := row.Scan(&company.CorpCode, &company.CorpName, &company.CorpEngName, &company.StockCode, &company.ModifyDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get company %s: %w", corpCode, err)
	}
	return company, nil
}

// Random returns up to limit listed companies in random order
func (s *CompanyStorage) Random(ctx context.Context, limit int) ([]*models.Company, error) {
	rows, err := s.db.db.QueryContext(ctx, `
		SELECT `+companyColumns+`
		FROM companies c
		WHERE c.stock_code != ''
		ORDER BY RANDOM()
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("random listing query failed: %w", err)
	}
	defer rows.Close()

	return scanCompanies(rows)
}

// Stats returns total, listed and unlisted counts with the latest modify_date
func (s *CompanyStorage) Stats(ctx context.Context) (*models.DirectoryStats, error) {
	stats := &models.DirectoryStats{}
	err := s.db.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COUNT(CASE WHEN stock_code != '' THEN 1 END),
			COALESCE(MAX(modify_date), '')
		FROM companies
	`).Scan(&stats.TotalCompanies, &stats.ListedCompanies, &stats.LastModified)
	if err != nil {
		return nil, fmt.Errorf("failed to compute directory stats: %w", err)
	}

	stats.UnlistedCompanies = stats.TotalCompanies - stats.ListedCompanies
	return stats, nil
}

// Count returns the number of companies
func (s *CompanyStorage) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM companies").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count companies: %w", err)
	}
	return count, nil
}

// Ping verifies the database connection
func (s *CompanyStorage) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func scanCompanies(rows *sql.Rows) ([]*models.Company, error) {
	companies := []*models.Company{}
	for rows.Next() {
		company := &models.Company{}
		if err := rows.Scan(&company.CorpCode, &company.CorpName, &company.CorpEngName, &company.StockCode, &company.ModifyDate); err != nil {
			return nil, fmt.Errorf("failed to scan company row: %w", err)
		}
		companies = append(companies, company)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate company rows: %w", err)
	}
	return companies, nil
}

// notInClause renders " AND column NOT IN (?,?,...)" for a non-empty exclusion list
func notInClause(column string, values []string) (string, []interface{}) {
	if len(values) == 0 {
		return "", nil
	}
	args := make([]interface{}, len(values))
	for i, v := range values {
		args[i] = v
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(values)), ",")
	return fmt.Sprintf(" AND %s NOT IN (%s)", column, placeholders), args
}

// escapeLike escapes LIKE wildcards so the query matches literally
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
