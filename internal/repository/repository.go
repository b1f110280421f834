package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository aggregates all repository interfaces.
type Repository struct {
	db *gorm.DB

	User  UserRepository
	Block FeedingBlockRepository
	Entry FeedingEntryRepository
}

// NewRepository creates the Repository aggregate.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:    db,
		User:  NewUserRepo(db),
		Block: NewFeedingBlockRepo(db),
		Entry: NewFeedingEntryRepo(db),
	}
}

// Transaction runs fn with a Repository bound to a single database
// transaction; any error rolls back every write. Multi-row schedule
// operations (block creation, time shifts, volume cascades, deletion
// with renumbering) must go through here. A Repository assembled by
// hand without a gorm.DB (service tests) runs fn directly.
func (r *Repository) Transaction(ctx context.Context, fn func(txRepo *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
