package service

import (
	"context"
	"time"

	"NightSync/internal/model"
	"NightSync/internal/repository"

	"github.com/sirupsen/logrus"
)

// FilterVisible 可见性过滤（纯函数）：
// 1. 丢弃台账中出现的事件（商家软删除）
// 2. 丢弃结束时间（无结束时间则按开始时间）严格早于now的事件
// 3. 日期无法解析的事件保留——策略上倾向展示而非隐藏标错日期的活动
func FilterVisible(events []*model.Event, deletedIDs map[string]bool, now time.Time) []*model.Event {
	visible := make([]*model.Event, 0, len(events))
	for _, e := range events {
		if deletedIDs[e.SourceID] {
			continue
		}
		deadline := e.EndTime
		if deadline == nil {
			deadline = e.StartTime
		}
		if deadline != nil && deadline.Before(now) {
			continue
		}
		visible = append(visible, e)
	}
	return visible
}

// VisibilityService 可见性过滤服务：每次调用都重新读台账（不跨调用缓存），
// 避免商家刚删除的活动继续出现在列表里
type VisibilityService struct {
	ledgerRepo repository.LedgerRepository
	logger     *logrus.Logger
}

// NewVisibilityService 创建可见性过滤服务
func NewVisibilityService(ledgerRepo repository.LedgerRepository, logger *logrus.Logger) *VisibilityService {
	return &VisibilityService{ledgerRepo: ledgerRepo, logger: logger}
}

// Filter 读取最新台账并过滤事件列表
func (s *VisibilityService) Filter(ctx context.Context, events []*model.Event, now time.Time) ([]*model.Event, error) {
	deletedIDs, err := s.ledgerRepo.ListDeletedIDs(ctx)
	if err != nil {
		return nil, err
	}
	return FilterVisible(events, deletedIDs, now), nil
}
