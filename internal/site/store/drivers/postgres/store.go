// Package postgres is the GORM-backed store driver for PostgreSQL deployments.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/AkshatMishra0/Derivity-ai/internal/site/store"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Store struct {
	db    *gorm.DB
	sqlDB *sql.DB
}

// NewStore opens a pgx-backed *sql.DB for dsn and wraps it with GORM. Driver
// errors are translated, so unique violations surface as gorm.ErrDuplicatedKey.
func NewStore(ctx context.Context, dsn string) (*Store, error) {
	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	sqlDB := stdlib.OpenDB(*cfg)
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 8*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Discard,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	return &Store{db: db, sqlDB: sqlDB}, nil
}

// ApplyMigrations brings the schema up to date with the row models.
func (s *Store) ApplyMigrations() error {
	return s.db.AutoMigrate(allModels()...)
}

func (s *Store) Close() error { return s.sqlDB.Close() }

func (s *Store) Ping(ctx context.Context) error {
	return s.sqlDB.PingContext(ctx)
}

func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &txStore{db: tx}, nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

func (s *Store) Users() store.Users                     { return &usersRepo{db: s.db} }
func (s *Store) Profiles() store.Profiles               { return &profilesRepo{db: s.db} }
func (s *Store) SecurityEvents() store.SecurityEvents   { return &securityEventsRepo{db: s.db} }
func (s *Store) Sessions() store.Sessions               { return &sessionsRepo{db: s.db} }
func (s *Store) ContactMessages() store.ContactMessages { return &contactMessagesRepo{db: s.db} }
func (s *Store) Conversations() store.Conversations     { return &conversationsRepo{db: s.db} }

type txStore struct {
	db *gorm.DB
}

func (t *txStore) Commit() error   { return t.db.Commit().Error }
func (t *txStore) Rollback() error { return t.db.Rollback().Error }

func (t *txStore) Close() error                   { return nil }
func (t *txStore) Ping(ctx context.Context) error { return nil }
func (t *txStore) ApplyMigrations() error         { return nil }

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *txStore) Users() store.Users                     { return &usersRepo{db: t.db} }
func (t *txStore) Profiles() store.Profiles               { return &profilesRepo{db: t.db} }
func (t *txStore) SecurityEvents() store.SecurityEvents   { return &securityEventsRepo{db: t.db} }
func (t *txStore) Sessions() store.Sessions               { return &sessionsRepo{db: t.db} }
func (t *txStore) ContactMessages() store.ContactMessages { return &contactMessagesRepo{db: t.db} }
func (t *txStore) Conversations() store.Conversations     { return &conversationsRepo{db: t.db} }

func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return store.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return store.ErrAlreadyExists
	}
	return err
}

// requireAffected reports store.ErrNotFound when an update matched no row.
func requireAffected(res *gorm.DB) error {
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}
