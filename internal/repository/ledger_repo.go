package repository

import (
	"context"

	"NightSync/internal/model"

	"gorm.io/gorm"
)

// LedgerRepository 软删除台账仓储
type LedgerRepository interface {
	// ListDeletedIDs 拉取台账中全部文档ID（每次调用都重新读库，不做缓存——
	// 保证商家刚删除的活动立即从列表消失）
	ListDeletedIDs(ctx context.Context) (map[string]bool, error)
	// Create 写入台账行（copy-then-delete的copy步骤）
	Create(ctx context.Context, entry *model.DeletedPost) error
	// GetByPostID 按原始文档ID查台账行
	GetByPostID(ctx context.Context, postID string) (*model.DeletedPost, error)
	// Remove 删除台账行（重新发布时调用）
	Remove(ctx context.Context, postID string) error
}

type ledgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository 创建LedgerRepository实例
func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

// ListDeletedIDs 拉取台账中全部文档ID
func (r *ledgerRepository) ListDeletedIDs(ctx context.Context) (map[string]bool, error) {
	var ids []string
	if err := r.db.WithContext(ctx).Model(&model.DeletedPost{}).
		Pluck("post_id", &ids).Error; err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

// Create 写入台账行
func (r *ledgerRepository) Create(ctx context.Context, entry *model.DeletedPost) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// GetByPostID 按原始文档ID查台账行
func (r *ledgerRepository) GetByPostID(ctx context.Context, postID string) (*model.DeletedPost, error) {
	var entry model.DeletedPost
	if err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// Remove 删除台账行（硬删除，台账行本身不走软删除）
func (r *ledgerRepository) Remove(ctx context.Context, postID string) error {
	return r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Delete(&model.DeletedPost{}).Error
}
