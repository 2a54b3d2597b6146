// Package storage defines the repository boundary used by the draw engine.
// Exactly one implementation is active per process, chosen by configuration.
package storage

//go:generate mockgen -destination=mock/repository.go -package=mock . Repository,UnitOfWork

import (
	"context"
	"errors"
	"time"

	"dailydraw/internal/models"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrDuplicateDraw is returned when a user already has a ledger row for
	// the calendar day. It is enforced by the store, not by callers.
	ErrDuplicateDraw = errors.New("draw already recorded for this calendar day")
	ErrConflict      = errors.New("conflicting record exists")
)

// Catalog is the read-mostly item store.
type Catalog interface {
	ListItems(ctx context.Context) ([]models.Item, error)
	GetItem(ctx context.Context, id int64) (*models.Item, error)
	// SeedItems inserts every item whose name is not present yet and returns
	// how many were inserted. Repeating a seed is a no-op.
	SeedItems(ctx context.Context, items []models.Item) (int, error)
	// AddItem appends a single item; a duplicate name yields ErrConflict.
	AddItem(ctx context.Context, item models.Item) (*models.Item, error)
}

// Users stores identity records provisioned by the upstream sign-in provider.
type Users interface {
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByFarcasterAddress(ctx context.Context, address string) (*models.User, error)
	GetUserByWalletAddress(ctx context.Context, address string) (*models.User, error)
	UpdateUserWallet(ctx context.Context, id int64, address string) (*models.User, error)
	UpdateUserFarcaster(ctx context.Context, id int64, address string) (*models.User, error)
}

// Ledger is the read side of the append-only draw history.
type Ledger interface {
	HasDrawnOn(ctx context.Context, userID int64, day models.Day) (bool, error)
	ListDrawsByUser(ctx context.Context, userID int64) ([]models.DrawWithItem, error)
	LatestDrawByUser(ctx context.Context, userID int64) (*models.DrawWithItem, error)
}

// Tallies is the read side of the per-user collection counts.
type Tallies interface {
	ListTalliesByUser(ctx context.Context, userID int64) ([]models.TallyWithItem, error)
	GetTally(ctx context.Context, userID, itemID int64) (*models.CollectionTally, error)
}

// UnitOfWork is the write side of a draw. Its operations become visible
// together when the enclosing transaction commits, or not at all.
type UnitOfWork interface {
	AppendDraw(ctx context.Context, userID, itemID int64, day models.Day, at time.Time) (*models.DrawRecord, error)
	IncrementTally(ctx context.Context, userID, itemID int64, at time.Time) (*models.CollectionTally, error)
}

// Repository is everything the services need from storage.
type Repository interface {
	Catalog
	Users
	Ledger
	Tallies
	// RunInTx runs fn in one transaction. A non-nil error from fn rolls
	// every write back.
	RunInTx(ctx context.Context, fn func(ctx context.Context, uow UnitOfWork) error) error
	Close() error
}
