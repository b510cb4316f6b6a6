package service

import (
	"context"
	"fmt"
	"time"

	"NightSync/internal/model"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// DeletionService 软删除/重新发布服务
// 删除走copy-then-delete：先把原始文档拷入deleted_posts台账，再软删events行；
// 重新发布则删台账行并恢复events行
type DeletionService struct {
	db     *gorm.DB
	logger *logrus.Logger
}

// NewDeletionService 创建DeletionService
func NewDeletionService(db *gorm.DB, logger *logrus.Logger) *DeletionService {
	return &DeletionService{db: db, logger: logger}
}

// DeleteEvent 商家删除活动（copy-then-delete，事务内完成）
func (s *DeletionService) DeleteEvent(ctx context.Context, eventUUID, deletedBy string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event model.Event
		if err := tx.Where("event_uuid = ?", eventUUID).First(&event).Error; err != nil {
			return fmt.Errorf("查询事件失败: %w", err)
		}

		entry := &model.DeletedPost{
			PostID:             event.SourceID,
			OriginalCollection: event.Collection,
			DeletedBy:          deletedBy,
			DeletedAt:          time.Now(),
			Payload:            event.RawDoc,
		}
		if err := tx.Create(entry).Error; err != nil {
			return fmt.Errorf("写入删除台账失败: %w", err)
		}

		if err := tx.Delete(&event).Error; err != nil {
			return fmt.Errorf("软删除事件失败: %w", err)
		}

		s.logger.WithFields(logrus.Fields{
			"event_uuid": eventUUID,
			"post_id":    event.SourceID,
			"deleted_by": deletedBy,
		}).Info("活动已删除并记入台账")
		return nil
	})
}

// RepublishEvent 重新发布：删台账行 + 恢复事件行
func (s *DeletionService) RepublishEvent(ctx context.Context, eventUUID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event model.Event
		if err := tx.Unscoped().Where("event_uuid = ?", eventUUID).First(&event).Error; err != nil {
			return fmt.Errorf("查询事件失败: %w", err)
		}
		if !event.DeletedAt.Valid {
			return fmt.Errorf("事件%s未处于删除状态", eventUUID)
		}

		if err := tx.Where("post_id = ?", event.SourceID).Delete(&model.DeletedPost{}).Error; err != nil {
			return fmt.Errorf("删除台账行失败: %w", err)
		}

		if err := tx.Unscoped().Model(&model.Event{}).
			Where("id = ?", event.ID).
			Update("deleted_at", nil).Error; err != nil {
			return fmt.Errorf("恢复事件失败: %w", err)
		}

		s.logger.WithFields(logrus.Fields{
			"event_uuid": eventUUID,
			"post_id":    event.SourceID,
		}).Info("活动已重新发布")
		return nil
	})
}
