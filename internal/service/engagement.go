package service

import (
	"context"

	"NightSync/internal/interfaces"
	"NightSync/internal/repository"

	"github.com/sirupsen/logrus"
)

// EngagementService 互动数据刷新服务：定期从来源拉取进行中事件的最新likes/views/comments
// 热度榜的排序依据，刷新失败的单个事件跳过，不阻塞整次运行
type EngagementService struct {
	feedRepo  repository.FeedRepository
	eventRepo *repository.EventRepository
	// 集合名→互动数据拉取器的映射（目前仅Instagram_posts支持）
	fetchers map[string]interfaces.EngagementFetcher
	logger   *logrus.Logger
}

// NewEngagementService 创建互动数据刷新服务
func NewEngagementService(feedRepo repository.FeedRepository, eventRepo *repository.EventRepository, fetchers map[string]interfaces.EngagementFetcher, logger *logrus.Logger) *EngagementService {
	return &EngagementService{
		feedRepo:  feedRepo,
		eventRepo: eventRepo,
		fetchers:  fetchers,
		logger:    logger,
	}
}

// Run 刷新所有支持的集合，返回成功刷新的事件数
func (s *EngagementService) Run(ctx context.Context, limit int) (int, error) {
	if limit <= 0 {
		limit = 500
	}
	updated := 0
	for collection, fetcher := range s.fetchers {
		events, err := s.feedRepo.ListActiveByCollection(ctx, collection, limit)
		if err != nil {
			return updated, err
		}
		for _, ev := range events {
			row, err := fetcher.FetchEngagement(ctx, ev.SourceID)
			if err != nil {
				s.logger.WithError(err).WithFields(logrus.Fields{
					"event_id":  ev.ID,
					"source_id": ev.SourceID,
				}).Warn("互动数据拉取失败，跳过")
				continue
			}
			if err := s.eventRepo.UpdateEngagement(ctx, ev.ID, row.Likes, row.Views, row.Comments); err != nil {
				s.logger.WithError(err).WithField("event_id", ev.ID).Warn("互动数据回写失败，跳过")
				continue
			}
			updated++
		}
	}
	if updated > 0 {
		s.logger.WithField("updated", updated).Info("互动数据刷新完成")
	}
	return updated, nil
}
