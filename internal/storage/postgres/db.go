// Package postgres is the bun-backed Repository. The ledger's (user_id,
// pull_date) unique constraint is the authoritative once-per-day guard.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/logger"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"dailydraw/internal/storage"
)

const (
	defaultConnTimeout = 5 * time.Second
	defaultSlowQuery   = 200 * time.Millisecond

	uniqueViolation = "23505"
)

// Options configures the connection.
type Options struct {
	DSN        string
	PoolSize   int
	LogQueries bool
	SlowQuery  time.Duration
}

// Store implements storage.Repository on PostgreSQL.
type Store struct {
	db *bun.DB
}

var _ storage.Repository = (*Store)(nil)

// Open connects, verifies the connection and returns a Store. The schema is
// not touched; call InitSchema for that.
func Open(ctx context.Context, opts Options) (*Store, error) {
	connector := pgdriver.NewConnector(
		pgdriver.WithDSN(opts.DSN),
		pgdriver.WithTimeout(defaultConnTimeout),
	)
	sqldb := sql.OpenDB(connector)
	if opts.PoolSize > 0 {
		sqldb.SetMaxOpenConns(opts.PoolSize)
		sqldb.SetMaxIdleConns(opts.PoolSize)
	}

	db := bun.NewDB(sqldb, pgdialect.New())
	if opts.LogQueries {
		slow := opts.SlowQuery
		if slow <= 0 {
			slow = defaultSlowQuery
		}
		db.AddQueryHook(&queryHook{slow: slow})
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}
	return &Store{db: db}, nil
}

// NewWithDB wraps an existing bun.DB.
func NewWithDB(db *bun.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Close() error {
	return s.db.Close()
}

// InitSchema creates tables and indexes that do not exist yet.
func (s *Store) InitSchema(ctx context.Context) error {
	tables := []struct {
		model       any
		foreignKeys []string
	}{
		{model: (*itemRow)(nil)},
		{model: (*userRow)(nil)},
		{model: (*drawRow)(nil), foreignKeys: []string{
			`("user_id") REFERENCES "users" ("id")`,
			`("item_id") REFERENCES "items" ("id")`,
		}},
		{model: (*tallyRow)(nil), foreignKeys: []string{
			`("user_id") REFERENCES "users" ("id")`,
			`("item_id") REFERENCES "items" ("id")`,
		}},
	}

	for _, table := range tables {
		query := s.db.NewCreateTable().Model(table.model).IfNotExists()
		for _, fk := range table.foreignKeys {
			query = query.ForeignKey(fk)
		}
		if _, err := query.Exec(ctx); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	indexes := []string{
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_draw_records_user_day ON draw_records(user_id, pull_date);",
		"CREATE INDEX IF NOT EXISTS idx_draw_records_user_created ON draw_records(user_id, created_at DESC);",
		"CREATE INDEX IF NOT EXISTS idx_collection_tallies_user_count ON collection_tallies(user_id, count DESC);",
		"CREATE INDEX IF NOT EXISTS idx_items_rarity ON items(rarity);",
	}
	for _, idx := range indexes {
		if _, err := s.db.ExecContext(ctx, idx); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	logger.Info("Database schema is up to date")
	return nil
}

// RunInTx runs fn inside one database transaction.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context, uow storage.UnitOfWork) error) error {
	return s.db.RunInTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, func(ctx context.Context, tx bun.Tx) error {
		return fn(ctx, &unitOfWork{tx: tx})
	})
}

func isUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	return errors.As(err, &pgErr) && pgErr.Field('C') == uniqueViolation
}

// translate maps driver errors onto the storage sentinels.
func translate(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("%s: %w", what, storage.ErrNotFound)
	case isUniqueViolation(err):
		return fmt.Errorf("%s: %w", what, storage.ErrConflict)
	default:
		return fmt.Errorf("%s: %w", what, err)
	}
}
