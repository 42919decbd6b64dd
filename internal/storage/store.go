// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package storage

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/YassinCh/skilltest-buienradar/internal/logger"
)

const (
	loggerName = "skilltest:storage"

	driverName        = "sqlite"
	sqliteScheme      = "sqlite"
	memoryDatabase    = ":memory:"
	connectionPragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
)

//go:embed schema.sql
var schema string

// Store is the SQLite database holding stations and measurements.
type Store struct {
	db   *sql.DB
	echo bool
}

// Option customizes a Store.
type Option func(*Store)

// WithEcho logs every statement sent to the database at the INFO level.
func WithEcho(echo bool) Option {
	return func(s *Store) {
		s.echo = echo
	}
}

// Open connects to databaseURL and creates the missing tables.
// The url can be a plain file path or use the sqlite scheme, as in sqlite:///weather_data.db.
func Open(ctx context.Context, databaseURL string, opts ...Option) (*Store, error) {
	dsn, err := DataSourceName(databaseURL)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// a single connection keeps in-memory databases alive and serializes writers
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	for _, opt := range opts {
		opt(s)
	}

	s.echoStatement(ctx, schema, nil)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	logger.FromContext(ctx).WithName(loggerName).Debug("database ready", "dsn", dsn)
	return s, nil
}

// DataSourceName converts a database url into the data source name understood by the driver.
func DataSourceName(databaseURL string) (string, error) {
	path := databaseURL
	if scheme, rest, found := strings.Cut(databaseURL, "://"); found {
		if scheme != sqliteScheme {
			return "", fmt.Errorf("%w: %q", ErrUnsupportedDatabase, scheme)
		}
		path = strings.TrimPrefix(rest, "/")
	}

	if path == "" {
		path = memoryDatabase
	}

	separator := "?"
	if strings.Contains(path, "?") {
		separator = "&"
	}

	return path + separator + connectionPragmas, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// QueryContext runs a read query.
func (s *Store) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	s.echoStatement(ctx, query, args)
	return s.db.QueryContext(ctx, query, args...)
}

// QueryRowContext runs a read query expected to return at most one row.
func (s *Store) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	s.echoStatement(ctx, query, args)
	return s.db.QueryRowContext(ctx, query, args...)
}

// Begin opens a transaction used to merge entities.
func (s *Store) Begin(ctx context.Context) (*Tx, error) {
	s.echoStatement(ctx, "BEGIN", nil)
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}

	return &Tx{tx: tx, echo: s.echoLogger(ctx)}, nil
}

func (s *Store) echoStatement(ctx context.Context, query string, args []any) {
	echo(s.echoLogger(ctx), query, args)
}

// echoLogger returns the logger used to echo statements, nil when echo is disabled.
func (s *Store) echoLogger(ctx context.Context) logger.Logger {
	if !s.echo {
		return nil
	}

	return logger.FromContext(ctx).WithName(loggerName)
}

func echo(log logger.Logger, query string, args []any) {
	if log == nil {
		return
	}

	log.Info("executing statement",
		"sql", strings.Join(strings.Fields(query), " "),
		"args", args,
	)
}

// Tx is a transaction in which entities are merged one at a time.
type Tx struct {
	tx   *sql.Tx
	echo logger.Logger
}

// Merge inserts entity or updates the row sharing its primary key.
func (t *Tx) Merge(ctx context.Context, entity Entity) error {
	query, args := entity.MergeStatement()
	echo(t.echo, query, args)
	if _, err := t.tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("merging into %s: %w", entity.Table(), err)
	}

	return nil
}

// Commit makes every merge of the transaction durable.
func (t *Tx) Commit() error {
	echo(t.echo, "COMMIT", nil)
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// Rollback discards the transaction. It is a no-op after Commit.
func (t *Tx) Rollback() error {
	err := t.tx.Rollback()
	if err == nil {
		echo(t.echo, "ROLLBACK", nil)
	}

	return err
}
