// Package sqlstore implements storage.Store on top of database/sql.
//
// Queries are written with '?' placeholders and rebound for dialects that
// use numbered parameters. Opening connections and running migrations is left
// to the driver packages (storage/sqlite, storage/postgres).
package sqlstore

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"github.com/mmynk/settleup/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Dialect captures the differences between SQL backends.
type Dialect struct {
	Name string

	// NumberedParams selects $1, $2, ... placeholders instead of '?'.
	NumberedParams bool

	// SnapshotTx are the options for the transaction behind LoadGroupLedger.
	SnapshotTx *sql.TxOptions
}

var (
	SQLite = Dialect{Name: "sqlite"}

	Postgres = Dialect{
		Name:           "postgres",
		NumberedParams: true,
		SnapshotTx:     &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true},
	}
)

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store implements storage.Store over an open *sql.DB whose schema has
// already been migrated.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

// New wraps db. The Store takes ownership of db and closes it on Close.
func New(db *sql.DB, dialect Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// rebind converts '?' placeholders to the dialect's parameter syntax.
func (s *Store) rebind(query string) string {
	if !s.dialect.NumberedParams {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
