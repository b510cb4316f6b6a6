package service

import (
	"context"
	"fmt"

	"NightSync/internal/repository"

	"github.com/sirupsen/logrus"
)

// ExpiryService 过期清理服务：把已过结束时间仍为active的事件标记为expired
type ExpiryService struct {
	feedRepo  repository.FeedRepository
	eventRepo *repository.EventRepository
	logger    *logrus.Logger
}

// NewExpiryService 创建过期清理服务
func NewExpiryService(feedRepo repository.FeedRepository, eventRepo *repository.EventRepository, logger *logrus.Logger) *ExpiryService {
	return &ExpiryService{
		feedRepo:  feedRepo,
		eventRepo: eventRepo,
		logger:    logger,
	}
}

// Run 单批扫描并标记过期事件，返回标记数量
// 日期无法解析（start_time为空）的事件不在扫描范围内——保留可见
func (s *ExpiryService) Run(ctx context.Context, limit int) (int, error) {
	events, err := s.feedRepo.ListEventsEndedButActive(ctx, limit)
	if err != nil {
		return 0, fmt.Errorf("ListEventsEndedButActive: %w", err)
	}
	if len(events) == 0 {
		return 0, nil
	}

	ids := make([]uint64, 0, len(events))
	for _, e := range events {
		ids = append(ids, e.ID)
	}
	if err := s.eventRepo.MarkExpired(ctx, ids); err != nil {
		return 0, fmt.Errorf("标记过期失败: %w", err)
	}

	s.logger.WithField("expired", len(ids)).Info("过期清理完成")
	return len(ids), nil
}
