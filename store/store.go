// Package store is the local data store of the vendor ledger: accounts,
// product catalogs, sales and the zone earnings reports built on them.
//
// Every public operation runs as its own transaction. SQLite (the default)
// is used through a single connection; PostgreSQL is supported for shared
// deployments.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"veneya/condb"
	"veneya/config"
)

// Store owns the vendor schema and its queries.
type Store struct {
	db           *sql.DB
	dialect      dialect
	log          *zap.Logger
	passwordCost int
}

// Option configures a Store.
type Option func(*Store)

// WithPasswordCost sets the bcrypt cost used for new accounts.
func WithPasswordCost(cost int) Option {
	return func(s *Store) { s.passwordCost = cost }
}

// New wraps an open database. driver is config.DriverSQLite or
// config.DriverPostgres. The schema is not touched; call Init.
func New(db *sql.DB, driver string, logger *zap.Logger, opts ...Option) (*Store, error) {
	d, err := dialectFor(driver)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		db:           db,
		dialect:      d,
		log:          logger.Named("store"),
		passwordCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Open connects to the configured database and initializes the schema.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger, opts ...Option) (*Store, error) {
	db, err := condb.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	s, err := New(db, cfg.Driver, logger, opts...)
	if err != nil {
		db.Close()
		return nil, err
	}
	if err := s.Init(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Init creates the accounts, products and sales tables and their indexes if
// they do not exist. All statements run in one transaction: either the whole
// schema is in place afterwards or an error is returned.
func (s *Store) Init(ctx context.Context) error {
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		for _, stmt := range s.dialect.schema {
			if _, err := tx.ExecContext(ctx, stmt.sql); err != nil {
				return fmt.Errorf("create %s: %w", stmt.name, err)
			}
			s.log.Debug("schema object ready", zap.String("name", stmt.name))
		}
		return nil
	})
	if err != nil {
		return s.fail("init schema", err)
	}
	s.log.Info("schema initialized", zap.String("driver", s.dialect.name))
	return nil
}

// Ping checks the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Driver returns the name of the active dialect.
func (s *Store) Driver() string { return s.dialect.name }

func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *Store) q(query string) string { return s.dialect.rebind(query) }
