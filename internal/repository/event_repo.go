package repository

import (
	"context"
	"fmt"

	"NightSync/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EventRepository 事件入库仓储（所有来源共用）
type EventRepository struct {
	db *gorm.DB
}

// NewEventRepository 创建EventRepository实例
func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

// SaveEvents 通用入库逻辑：按(collection, source_id)幂等upsert
// 每次同步整体重建记录内容，不做增量修补
func (r *EventRepository) SaveEvents(ctx context.Context, events []*model.Event) error {
	if len(events) == 0 {
		return nil
	}

	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("开启事务失败: %w", tx.Error)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
		}
	}()

	for i := range events {
		if events[i].EventUUID == "" {
			events[i].EventUUID = uuid.NewString() // 生成全局唯一ID
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "collection"}, {Name: "source_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"source", "title", "venue_name", "venue_alias", "venue_kind",
				"start_time", "end_time", "likes", "views", "comments",
				"status", "raw_doc", "updated_at",
			}),
		}).Create(events[i]).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("保存Event失败: %w, title: %s", err, events[i].Title)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("提交事务失败: %w", err)
	}
	return nil
}

// UpdateEngagement 回写单个事件的最新互动数据
func (r *EventRepository) UpdateEngagement(ctx context.Context, eventID uint64, likes, views, comments int) error {
	return r.db.WithContext(ctx).Model(&model.Event{}).
		Where("id = ?", eventID).
		Updates(map[string]interface{}{
			"likes":    likes,
			"views":    views,
			"comments": comments,
		}).Error
}

// MarkExpired 批量把事件标记为expired
func (r *EventRepository) MarkExpired(ctx context.Context, eventIDs []uint64) error {
	if len(eventIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&model.Event{}).
		Where("id IN ?", eventIDs).
		Update("status", model.StatusExpired).Error
}
