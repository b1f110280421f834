package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/aubrey-sherman/baby-bootcamp-be/internal/model"
)

// FeedingEntryRepository is the feeding-entry data-access interface.
// All range queries are half-open: [start, end).
type FeedingEntryRepository interface {
	BatchCreate(ctx context.Context, entries []model.FeedingEntry) error
	GetByID(ctx context.Context, id string) (*model.FeedingEntry, error)
	ListByBlock(ctx context.Context, blockID string) ([]model.FeedingEntry, error)
	ListInRange(ctx context.Context, blockID string, start, end time.Time) ([]model.FeedingEntry, error)
	// ListFrom returns entries with feeding_time >= t, ordered by time.
	ListFrom(ctx context.Context, blockID string, t time.Time) ([]model.FeedingEntry, error)
	// MostRecentBefore returns the latest entry strictly before t.
	MostRecentBefore(ctx context.Context, blockID string, t time.Time) (*model.FeedingEntry, error)
	Update(ctx context.Context, entry *model.FeedingEntry) error
	Delete(ctx context.Context, id string) error
	DeleteByBlock(ctx context.Context, blockID string) error
}

type feedingEntryRepo struct {
	db *gorm.DB
}

// NewFeedingEntryRepo creates a FeedingEntryRepository instance.
func NewFeedingEntryRepo(db *gorm.DB) FeedingEntryRepository {
	return &feedingEntryRepo{db: db}
}

func (r *feedingEntryRepo) BatchCreate(ctx context.Context, entries []model.FeedingEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&entries).Error
}

func (r *feedingEntryRepo) GetByID(ctx context.Context, id string) (*model.FeedingEntry, error) {
	var entry model.FeedingEntry
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *feedingEntryRepo) ListByBlock(ctx context.Context, blockID string) ([]model.FeedingEntry, error) {
	var entries []model.FeedingEntry
	err := r.db.WithContext(ctx).
		Where("block_id = ?", blockID).
		Order("feeding_time ASC").
		Find(&entries).Error
	return entries, err
}

func (r *feedingEntryRepo) ListInRange(ctx context.Context, blockID string, start, end time.Time) ([]model.FeedingEntry, error) {
	var entries []model.FeedingEntry
	err := r.db.WithContext(ctx).
		Where("block_id = ? AND feeding_time >= ? AND feeding_time < ?", blockID, start, end).
		Order("feeding_time ASC").
		Find(&entries).Error
	return entries, err
}

func (r *feedingEntryRepo) ListFrom(ctx context.Context, blockID string, t time.Time) ([]model.FeedingEntry, error) {
	var entries []model.FeedingEntry
	err := r.db.WithContext(ctx).
		Where("block_id = ? AND feeding_time >= ?", blockID, t).
		Order("feeding_time ASC").
		Find(&entries).Error
	return entries, err
}

func (r *feedingEntryRepo) MostRecentBefore(ctx context.Context, blockID string, t time.Time) (*model.FeedingEntry, error) {
	var entry model.FeedingEntry
	err := r.db.WithContext(ctx).
		Where("block_id = ? AND feeding_time < ?", blockID, t).
		Order("feeding_time DESC").
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *feedingEntryRepo) Update(ctx context.Context, entry *model.FeedingEntry) error {
	return r.db.WithContext(ctx).
		Model(entry).
		Select("feeding_time", "feeding_day", "volume_in_ounces", "completed", "updated_at").
		Updates(entry).Error
}

func (r *feedingEntryRepo) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.FeedingEntry{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *feedingEntryRepo) DeleteByBlock(ctx context.Context, blockID string) error {
	return r.db.WithContext(ctx).
		Where("block_id = ?", blockID).
		Delete(&model.FeedingEntry{}).Error
}
