package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/aubrey-sherman/baby-bootcamp-be/internal/model"
)

// FeedingBlockRepository is the feeding-block data-access interface.
type FeedingBlockRepository interface {
	Create(ctx context.Context, block *model.FeedingBlock) error
	// GetOwned returns the block only when it belongs to username;
	// otherwise gorm.ErrRecordNotFound, indistinguishable from a
	// missing row.
	GetOwned(ctx context.Context, id, username string) (*model.FeedingBlock, error)
	ListByUsername(ctx context.Context, username string) ([]model.FeedingBlock, error)
	// MaxNumber returns the highest block number for a user, 0 when the
	// user has no blocks.
	MaxNumber(ctx context.Context, username string) (int, error)
	Update(ctx context.Context, block *model.FeedingBlock) error
	Delete(ctx context.Context, id string) error
	// DecrementNumbersAbove shifts every block of the user with a number
	// greater than n down by one, restoring dense numbering.
	DecrementNumbersAbove(ctx context.Context, username string, n int) error
}

type feedingBlockRepo struct {
	db *gorm.DB
}

// NewFeedingBlockRepo creates a FeedingBlockRepository instance.
func NewFeedingBlockRepo(db *gorm.DB) FeedingBlockRepository {
	return &feedingBlockRepo{db: db}
}

func (r *feedingBlockRepo) Create(ctx context.Context, block *model.FeedingBlock) error {
	return r.db.WithContext(ctx).Create(block).Error
}

func (r *feedingBlockRepo) GetOwned(ctx context.Context, id, username string) (*model.FeedingBlock, error) {
	var block model.FeedingBlock
	err := r.db.WithContext(ctx).
		Where("id = ? AND username = ?", id, username).
		First(&block).Error
	if err != nil {
		return nil, err
	}
	return &block, nil
}

func (r *feedingBlockRepo) ListByUsername(ctx context.Context, username string) ([]model.FeedingBlock, error) {
	var blocks []model.FeedingBlock
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		Order("number ASC").
		Find(&blocks).Error
	return blocks, err
}

func (r *feedingBlockRepo) MaxNumber(ctx context.Context, username string) (int, error) {
	var max int
	err := r.db.WithContext(ctx).
		Model(&model.FeedingBlock{}).
		Where("username = ?", username).
		Select("COALESCE(MAX(number), 0)").
		Scan(&max).Error
	return max, err
}

func (r *feedingBlockRepo) Update(ctx context.Context, block *model.FeedingBlock) error {
	return r.db.WithContext(ctx).
		Model(block).
		Select("is_eliminating", "elimination_start_date", "baseline_volume", "current_group", "number", "updated_at").
		Updates(block).Error
}

func (r *feedingBlockRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.FeedingBlock{}).Error
}

func (r *feedingBlockRepo) DecrementNumbersAbove(ctx context.Context, username string, n int) error {
	return r.db.WithContext(ctx).
		Model(&model.FeedingBlock{}).
		Where("username = ? AND number > ?", username, n).
		Update("number", gorm.Expr("number - 1")).Error
}
