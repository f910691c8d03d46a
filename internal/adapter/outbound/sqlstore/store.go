// Package sqlstore persists the animal collection as a single JSON snapshot row in a
// SQL database. SQLite (modernc.org/sqlite) and PostgreSQL (pgx) are supported.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/incognito1025/fauna-go/internal/adapter/outbound/animaljson"
	"github.com/incognito1025/fauna-go/internal/application/common/slogger"
	"github.com/incognito1025/fauna-go/internal/domain/entity"
	domainerrors "github.com/incognito1025/fauna-go/internal/domain/errors/domain"
	"github.com/incognito1025/fauna-go/internal/port/outbound"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
	_ "modernc.org/sqlite"             // pure go sqlite driver
)

// DefaultCollection is the snapshot row name used when none is configured.
const DefaultCollection = "animals"

var _ outbound.AnimalStore = (*Store)(nil)

// sqlOpen is swapped in tests.
var sqlOpen = sql.Open //nolint:gochecknoglobals // test seam

type dialect struct {
	driver     string
	createStmt string
	selectStmt string
	upsertStmt string
}

var sqliteDialect = dialect{
	driver: "sqlite",
	createStmt: `CREATE TABLE IF NOT EXISTS collections (
		name TEXT PRIMARY KEY,
		payload TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	selectStmt: `SELECT payload FROM collections WHERE name = ?`,
	upsertStmt: `INSERT INTO collections(name, payload, updated_at) VALUES(?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
}

var postgresDialect = dialect{
	driver: "pgx",
	createStmt: `CREATE TABLE IF NOT EXISTS collections (
		name TEXT PRIMARY KEY,
		payload TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	selectStmt: `SELECT payload FROM collections WHERE name = $1`,
	upsertStmt: `INSERT INTO collections(name, payload, updated_at) VALUES($1, $2, $3)
		ON CONFLICT(name) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`,
}

// Store keeps the whole collection in one row of the collections table.
type Store struct {
	db      *sql.DB
	dialect dialect
	name    string
}

// OpenSQLite opens (creating if needed) a SQLite database file at path.
func OpenSQLite(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("%w: create dirs: %w", domainerrors.ErrStorageRead, err)
		}
	}
	return open(ctx, sqliteDialect, path)
}

// OpenPostgres connects to PostgreSQL using a pgx DSN.
func OpenPostgres(ctx context.Context, dsn string) (*Store, error) {
	return open(ctx, postgresDialect, dsn)
}

func open(ctx context.Context, d dialect, dsn string) (*Store, error) {
	db, err := sqlOpen(d.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", domainerrors.ErrStorageRead, d.driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping %s: %w", domainerrors.ErrStorageRead, d.driver, err)
	}
	if _, err := db.ExecContext(ctx, d.createStmt); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: create collections table: %w", domainerrors.ErrStorageRead, err)
	}
	return &Store{db: db, dialect: d, name: DefaultCollection}, nil
}

// Load reads the snapshot row. A missing row yields an empty collection.
func (s *Store) Load(ctx context.Context) (entity.Collection, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, s.dialect.selectStmt, s.name).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.NewCollection(), nil
	}
	if err != nil {
		return entity.Collection{}, fmt.Errorf("%w: select snapshot: %w", domainerrors.ErrStorageRead, err)
	}

	collection, err := animaljson.Decode([]byte(payload))
	if err != nil {
		return entity.Collection{}, fmt.Errorf("%w: %w", domainerrors.ErrStorageRead, err)
	}

	slogger.Debug(ctx, "Loaded collection", slogger.Fields2("driver", s.dialect.driver, "count", collection.Len()))
	return collection, nil
}

// Save replaces the snapshot row inside a transaction.
func (s *Store) Save(ctx context.Context, collection entity.Collection) (retErr error) {
	data, err := animaljson.Encode(collection)
	if err != nil {
		return fmt.Errorf("%w: %w", domainerrors.ErrStorageWrite, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %w", domainerrors.ErrStorageWrite, err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, s.dialect.upsertStmt, s.name, string(data), s.timestamp()); err != nil {
		return fmt.Errorf("%w: upsert snapshot: %w", domainerrors.ErrStorageWrite, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %w", domainerrors.ErrStorageWrite, err)
	}

	slogger.Debug(ctx, "Saved collection", slogger.Fields2("driver", s.dialect.driver, "count", collection.Len()))
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) timestamp() interface{} {
	now := time.Now().UTC()
	if s.dialect.driver == sqliteDialect.driver {
		return now.Format(time.RFC3339Nano)
	}
	return now
}
