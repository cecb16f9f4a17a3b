package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Voltaic314/ShelfDB/ident"
	"github.com/jmoiron/sqlx"
	_ "github.com/marcboeker/go-duckdb"
)

// DB wraps one tenant's DuckDB file together with the locks that serialize
// schema changes and per-table writes.
type DB struct {
	conn *sqlx.DB
	path string

	schemaMu sync.Mutex

	mu      sync.Mutex
	tableMu map[string]*sync.Mutex
}

// NewDB opens (creating if absent) the DuckDB database at dbPath.
func NewDB(dbPath string) (*DB, error) {
	conn, err := sqlx.Open("duckdb", dbPath)
	if err != nil {
		return nil, err
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping %s: %w", dbPath, err)
	}

	return &DB{
		conn:    conn,
		path:    dbPath,
		tableMu: make(map[string]*sync.Mutex),
	}, nil
}

// Path returns the file the database was opened from.
func (db *DB) Path() string { return db.path }

// Close closes the underlying connection pool.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}
	return db.conn.Close()
}

// Exec runs a direct write query and returns the result.
func (db *DB) Exec(ctx context.Context, query string, params ...any) (sql.Result, error) {
	return db.conn.ExecContext(ctx, query, params...)
}

// QueryRow runs a single row query.
func (db *DB) QueryRow(ctx context.Context, query string, params ...any) *sqlx.Row {
	return db.conn.QueryRowxContext(ctx, query, params...)
}

// Select scans every result row into dest, which must be a pointer to a slice.
func (db *DB) Select(ctx context.Context, dest any, query string, params ...any) error {
	return db.conn.SelectContext(ctx, dest, query, params...)
}

// Get scans a single row into dest.
func (db *DB) Get(ctx context.Context, dest any, query string, params ...any) error {
	return db.conn.GetContext(ctx, dest, query, params...)
}

// InTx runs fn inside a transaction, rolling back when fn or the commit fails.
func (db *DB) InTx(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// CreateTable creates a table if it doesn't exist.
func CreateTable(ctx context.Context, ex sqlx.ExecerContext, table ident.Ident, schema string) error {
	query := "CREATE TABLE IF NOT EXISTS " + table.Quoted() + " (" + schema + ")"
	_, err := ex.ExecContext(ctx, query)
	return err
}

// DropTable removes a table if it exists.
func DropTable(ctx context.Context, ex sqlx.ExecerContext, table ident.Ident) error {
	query := "DROP TABLE IF EXISTS " + table.Quoted()
	_, err := ex.ExecContext(ctx, query)
	return err
}

// TableNames lists the base tables of the main schema in name order.
func (db *DB) TableNames(ctx context.Context) ([]string, error) {
	var names []string
	query := `SELECT table_name FROM information_schema.tables
		WHERE table_schema = 'main' AND table_type = 'BASE TABLE'
		ORDER BY table_name`
	if err := db.Select(ctx, &names, query); err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	return names, nil
}

// TableExists checks the schema catalog for table. The comparison ignores
// case, as DuckDB resolves identifiers case-insensitively.
func (db *DB) TableExists(ctx context.Context, table ident.Ident) (bool, error) {
	var n int
	query := `SELECT COUNT(*) FROM information_schema.tables
		WHERE table_schema = 'main' AND lower(table_name) = ?`
	if err := db.Get(ctx, &n, query, strings.ToLower(table.String())); err != nil {
		return false, fmt.Errorf("lookup table %s: %w", table, err)
	}
	return n > 0, nil
}

// CatalogName returns table spelled as the schema catalog stores it. DuckDB
// resolves identifiers case-insensitively, but names derived from a table
// (its sequence) must use the stored spelling. ok is false when the table
// does not exist.
func (db *DB) CatalogName(ctx context.Context, table ident.Ident) (name ident.Ident, ok bool, err error) {
	var stored string
	query := `SELECT table_name FROM information_schema.tables
		WHERE table_schema = 'main' AND lower(table_name) = ?
		ORDER BY table_name LIMIT 1`
	err = db.Get(ctx, &stored, query, strings.ToLower(table.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return ident.Ident{}, false, nil
	}
	if err != nil {
		return ident.Ident{}, false, fmt.Errorf("lookup table %s: %w", table, err)
	}
	name, ok = ident.Existing(stored)
	return name, ok, nil
}

// LockSchema serializes operations whose outcome depends on the set of
// existing tables (allocation and reset). The returned func releases it.
func (db *DB) LockSchema() func() {
	db.schemaMu.Lock()
	return db.schemaMu.Unlock
}

// LockTable serializes writes against a single table.
func (db *DB) LockTable(table ident.Ident) func() {
	key := strings.ToLower(table.String())

	db.mu.Lock()
	m, ok := db.tableMu[key]
	if !ok {
		m = &sync.Mutex{}
		db.tableMu[key] = m
	}
	db.mu.Unlock()

	m.Lock()
	return m.Unlock
}
