package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/dartview/internal/common"
	_ "modernc.org/sqlite"
)

// ErrDirectoryUnavailable is returned when the database file or the companies table is missing
var ErrDirectoryUnavailable = errors.New("company directory unavailable")

// SQLiteDB manages the SQLite database connection
type SQLiteDB struct {
	db     *sql.DB
	logger arbor.ILogger
	config *common.SQLiteConfig
}

// NewSQLiteDB opens an existing company directory and verifies its schema.
// A missing file or companies table yields ErrDirectoryUnavailable.
func NewSQLiteDB(logger arbor.ILogger, config *common.SQLiteConfig) (*SQLiteDB, error) {
	if _, err := os.Stat(config.Path); err != nil {
		return nil, fmt.Errorf("%w: database file %s: %v", ErrDirectoryUnavailable, config.Path, err)
	}

	s, err := open(logger, config)
	if err != nil {
		return nil, err
	}

	if err := s.verifySchema(context.Background()); err != nil {
		s.db.Close()
		return nil, err
	}

	logger.Info().Str("path", config.Path).Msg("Company directory opened")
	return s, nil
}

// CreateSQLiteDB opens or creates the database file for ingestion without checking the schema
func CreateSQLiteDB(logger arbor.ILogger, config *common.SQLiteConfig) (*SQLiteDB, error) {
	dir := filepath.Dir(config.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	s, err := open(logger, config)
	if err != nil {
		return nil, err
	}

	logger.Info().Str("path", config.Path).Msg("SQLite database ready for ingestion")
	return s, nil
}

func open(logger arbor.ILogger, config *common.SQLiteConfig) (*SQLiteDB, error) {
	// modernc.org/sqlite uses "sqlite" driver name (not "sqlite3").
	// Pragmas go in the DSN so every pooled connection gets them.
	db, err := sql.Open("sqlite", dataSourceName(config))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", ErrDirectoryUnavailable, err)
	}

	return &SQLiteDB{
		db:     db,
		logger: logger,
		config: config,
	}, nil
}

// dataSourceName builds a modernc DSN carrying the configured pragmas
func dataSourceName(config *common.SQLiteConfig) string {
	pragmas := []string{
		fmt.Sprintf("busy_timeout(%d)", config.BusyTimeoutMS),
		"synchronous(NORMAL)",
	}
	if config.CacheSizeMB > 0 {
		pragmas = append(pragmas, fmt.Sprintf("cache_size(-%d)", config.CacheSizeMB*1024)) // Negative for KB
	}
	if config.WALMode {
		pragmas = append(pragmas, "journal_mode(WAL)")
	}

	query := url.Values{}
	for _, pragma := range pragmas {
		query.Add("_pragma", pragma)
	}
	return "file:" + config.Path + "?" + query.Encode()
}

// verifySchema checks that the companies table exists
func (s *SQLiteDB) verifySchema(ctx context.Context) error {
	var name string
	err := s.db.QueryRowContext(ctx,
		"SELECT name FROM sqlite_master WHERE type='table' AND name='companies'").Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: companies table does not exist, run the ingest command", ErrDirectoryUnavailable)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDirectoryUnavailable, err)
	}
	return nil
}

// DB returns the underlying database connection
func (s *SQLiteDB) DB() *sql.DB {
	return s.db
}

// Close closes the database connection
func (s *SQLiteDB) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// BeginTx starts a new transaction
func (s *SQLiteDB) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return s.db.BeginTx(ctx, nil)
}

// Ping verifies the database connection
func (s *SQLiteDB) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
