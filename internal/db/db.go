package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/quantmind-br/locrank/internal/core"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no stored analysis matches
var ErrNotFound = errors.New("analysis not found")

// ErrAmbiguous is returned when an id prefix matches more than one analysis
var ErrAmbiguous = errors.New("analysis id prefix is ambiguous")

// DB represents the database with separate read/write pools
type DB struct {
	write *sql.DB
	read  *sql.DB
	path  string
}

// New creates a new database instance with separate read/write pools
func New(ctx context.Context, dbPath string) (*DB, error) {
	connStr := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", dbPath)

	// Write pool: MUST be 1 connection only
	write, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open write connection: %w", err)
	}
	write.SetMaxOpenConns(1)
	write.SetMaxIdleConns(1)
	write.SetConnMaxIdleTime(time.Minute)
	write.SetConnMaxLifetime(time.Hour)

	read, err := sql.Open("sqlite", connStr)
	if err != nil {
		write.Close()
		return nil, fmt.Errorf("open read connection: %w", err)
	}
	read.SetMaxOpenConns(10)
	read.SetMaxIdleConns(5)
	read.SetConnMaxIdleTime(time.Minute)
	read.SetConnMaxLifetime(time.Hour)

	db := &DB{
		write: write,
		read:  read,
		path:  dbPath,
	}

	if err := db.initSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return db, nil
}

// Path returns the database file location
func (db *DB) Path() string {
	return db.path
}

// Close closes both database connections
func (db *DB) Close() error {
	writeErr := db.write.Close()
	readErr := db.read.Close()
	if writeErr != nil {
		return writeErr
	}
	return readErr
}

// Ping checks that both pools can reach the database
func (db *DB) Ping(ctx context.Context) error {
	if err := db.write.PingContext(ctx); err != nil {
		return fmt.Errorf("ping write pool: %w", err)
	}
	if err := db.read.PingContext(ctx); err != nil {
		return fmt.Errorf("ping read pool: %w", err)
	}
	return nil
}

type migration struct {
	version     int
	description string
	statements  string
}

var migrations = []migration{
	{
		version:     1,
		description: "analyses table",
		statements: `
CREATE TABLE IF NOT EXISTS analyses (
    analysis_id TEXT PRIMARY KEY,
    source TEXT NOT NULL,
    content_hash TEXT NOT NULL,
    cache_key TEXT NOT NULL,
    framework TEXT NOT NULL,
    include_accessibility INTEGER NOT NULL DEFAULT 1,
    element_count INTEGER NOT NULL DEFAULT 0,
    created_at DATETIME NOT NULL,
    results TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_analyses_cache_key ON analyses(cache_key);
CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses(created_at);
`,
	},
}

func (db *DB) initSchema(ctx context.Context) error {
	const bookkeeping = `
CREATE TABLE IF NOT EXISTS schema_migrations (
    version INTEGER PRIMARY KEY,
    applied_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    description TEXT
);`

	if _, err := db.write.ExecContext(ctx, bookkeeping); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	for _, m := range migrations {
		if _, err := db.write.ExecContext(ctx, m.statements); err != nil {
			return fmt.Errorf("apply migration %d: %w", m.version, err)
		}
		_, err := db.write.ExecContext(ctx,
			"INSERT OR IGNORE INTO schema_migrations (version, description) VALUES (?, ?)",
			m.version, m.description,
		)
		if err != nil {
			return fmt.Errorf("record migration %d: %w", m.version, err)
		}
	}

	return nil
}

// Analysis is one stored engine run
type Analysis struct {
	AnalysisID           string               `json:"analysisId"`
	Source               string               `json:"source"`
	ContentHash          string               `json:"contentHash"`
	CacheKey             string               `json:"-"`
	Framework            core.Framework       `json:"framework"`
	IncludeAccessibility bool                 `json:"includeAccessibility"`
	ElementCount         int                  `json:"elementCount"`
	CreatedAt            time.Time            `json:"createdAt"`
	Results              []core.LocatorResult `json:"results,omitempty"`
}

const summaryColumns = `analysis_id, source, content_hash, cache_key, framework, include_accessibility, element_count, created_at`

// Create stores a new analysis
func (db *DB) Create(ctx context.Context, a *Analysis) error {
	resultsJSON, err := json.Marshal(a.Results)
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}

	query := `
INSERT INTO analyses (` + summaryColumns + `, results)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = db.write.ExecContext(ctx, query,
		a.AnalysisID,
		a.Source,
		a.ContentHash,
		a.CacheKey,
		string(a.Framework),
		a.IncludeAccessibility,
		a.ElementCount,
		a.CreatedAt.UTC(),
		string(resultsJSON),
	)
	if err != nil {
		return fmt.Errorf("insert analysis: %w", err)
	}

	return nil
}

// Get retrieves an analysis with its results by exact id
func (db *DB) Get(ctx context.Context, analysisID string) (*Analysis, error) {
	query := `SELECT ` + summaryColumns + `, results FROM analyses WHERE analysis_id = ?`
	return db.getOne(ctx, query, analysisID)
}

// Resolve retrieves an analysis by exact id or by unique id prefix
func (db *DB) Resolve(ctx context.Context, idOrPrefix string) (*Analysis, error) {
	a, err := db.Get(ctx, idOrPrefix)
	if err == nil || !errors.Is(err, ErrNotFound) {
		return a, err
	}

	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(idOrPrefix)
	rows, err := db.read.QueryContext(ctx,
		`SELECT analysis_id FROM analyses WHERE analysis_id LIKE ? ESCAPE '\' LIMIT 2`,
		escaped+"%",
	)
	if err != nil {
		return nil, fmt.Errorf("query analysis prefix: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan analysis id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	switch len(ids) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	case 1:
		return db.Get(ctx, ids[0])
	default:
		return nil, fmt.Errorf("%w: %s", ErrAmbiguous, idOrPrefix)
	}
}

// FindByCacheKey returns the newest analysis stored under key
func (db *DB) FindByCacheKey(ctx context.Context, key string) (*Analysis, error) {
	query := `SELECT ` + summaryColumns + `, results FROM analyses WHERE cache_key = ? ORDER BY created_at DESC LIMIT 1`
	return db.getOne(ctx, query, key)
}

func (db *DB) getOne(ctx context.Context, query string, arg any) (*Analysis, error) {
	var a Analysis
	var framework, resultsJSON string

	err := db.read.QueryRowContext(ctx, query, arg).Scan(
		&a.AnalysisID,
		&a.Source,
		&a.ContentHash,
		&a.CacheKey,
		&framework,
		&a.IncludeAccessibility,
		&a.ElementCount,
		&a.CreatedAt,
		&resultsJSON,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, arg)
	}
	if err != nil {
		return nil, fmt.Errorf("query analysis: %w", err)
	}

	a.Framework = core.Framework(framework)
	if err := json.Unmarshal([]byte(resultsJSON), &a.Results); err != nil {
		return nil, fmt.Errorf("unmarshal results: %w", err)
	}

	return &a, nil
}

// List retrieves every stored analysis, newest first, without results
func (db *DB) List(ctx context.Context) ([]Analysis, error) {
	query := `SELECT ` + summaryColumns + ` FROM analyses ORDER BY created_at DESC`

	rows, err := db.read.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query analyses: %w", err)
	}
	defer rows.Close()

	var analyses []Analysis
	for rows.Next() {
		var a Analysis
		var framework string

		err := rows.Scan(
			&a.AnalysisID,
			&a.Source,
			&a.ContentHash,
			&a.CacheKey,
			&framework,
			&a.IncludeAccessibility,
			&a.ElementCount,
			&a.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan analysis: %w", err)
		}
		a.Framework = core.Framework(framework)

		analyses = append(analyses, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return analyses, nil
}

// Count returns the number of stored analyses
func (db *DB) Count(ctx context.Context) (int, error) {
	var n int
	if err := db.read.QueryRowContext(ctx, "SELECT COUNT(*) FROM analyses").Scan(&n); err != nil {
		return 0, fmt.Errorf("count analyses: %w", err)
	}
	return n, nil
}

// Delete removes one analysis
func (db *DB) Delete(ctx context.Context, analysisID string) error {
	result, err := db.write.ExecContext(ctx, "DELETE FROM analyses WHERE analysis_id = ?", analysisID)
	if err != nil {
		return fmt.Errorf("delete analysis: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, analysisID)
	}

	return nil
}

// DeleteAll removes every analysis and reports how many were removed
func (db *DB) DeleteAll(ctx context.Context) (int64, error) {
	result, err := db.write.ExecContext(ctx, "DELETE FROM analyses")
	if err != nil {
		return 0, fmt.Errorf("delete analyses: %w", err)
	}
	return result.RowsAffected()
}

// Prune removes analyses created before cutoff
func (db *DB) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := db.write.ExecContext(ctx, "DELETE FROM analyses WHERE created_at < ?", cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("prune analyses: %w", err)
	}
	return result.RowsAffected()
}
