// Package storage defines the persistence interfaces the services depend on:
// per-entity capabilities plus transaction management, so the PostgreSQL
// implementation stays swappable and mockable.
//
//go:generate mockgen -package mockstorage -source=interface.go -destination=mock/mockstorage.go *
package storage

import "context"

// AllStorage combines every per-entity storage capability the services use.
type AllStorage interface {
	UserStorage
	JobStorage
	ApplicationStorage
	ProfileStorage
	SearchStorage
	NotificationStorage
	ReportStorage
	MessageStorage
	GeoStorage
	QueueStorage
}

// TxStorage is a storage handle bound to an open transaction. The handle is
// unusable after Commit or Rollback.
type TxStorage interface {
	AllStorage

	// Commit finalizes the transaction, persisting all changes.
	Commit() error
	// Rollback aborts the transaction, discarding all uncommitted changes.
	Rollback() error
}

// Storage is the non-transactional handle the services hold. It can open
// transactions and owns the connection lifecycle.
type Storage interface {
	AllStorage

	// Close releases the underlying connection pool.
	Close() error

	// Begin opens a transaction and returns the handle bound to it.
	Begin(ctx context.Context) (TxStorage, error)
	// WithTx runs the callback inside a transaction, committing on nil and
	// rolling back on error.
	WithTx(ctx context.Context, cb func(storage AllStorage) error) error
}
