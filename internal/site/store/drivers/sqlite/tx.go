package sqlite

import (
	"context"
	"database/sql"

	"github.com/AkshatMishra0/Derivity-ai/internal/site/store"
)

type txStore struct {
	tx *sql.Tx
}

func newTx(tx *sql.Tx) *txStore {
	return &txStore{tx: tx}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

// Close is a no-op; the caller commits or rolls back and the DB stays open.
func (t *txStore) Close() error { return nil }

// Ping is a no-op for transactions; the connection is already held.
func (t *txStore) Ping(ctx context.Context) error { return nil }

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *txStore) Users() store.Users                     { return &usersRepo{q: t.tx} }
func (t *txStore) Profiles() store.Profiles               { return &profilesRepo{q: t.tx} }
func (t *txStore) SecurityEvents() store.SecurityEvents   { return &securityEventsRepo{q: t.tx} }
func (t *txStore) Sessions() store.Sessions               { return &sessionsRepo{q: t.tx} }
func (t *txStore) ContactMessages() store.ContactMessages { return &contactMessagesRepo{q: t.tx} }
func (t *txStore) Conversations() store.Conversations     { return &conversationsRepo{q: t.tx} }

// ApplyMigrations is a no-op; migrations run before any transaction starts.
func (t *txStore) ApplyMigrations() error { return nil }
