package service

import (
	"context"
	"time"

	"NightSync/internal/classify"
	"NightSync/internal/model"
	"NightSync/internal/repository"

	"github.com/sirupsen/logrus"
)

// trendingTopN 热度榜展示条数
const trendingTopN = 3

// FeedService 面向前端的feed聚合服务：分栏（trending/favorites/explore）在内存完成，无分页
type FeedService struct {
	repo       repository.FeedRepository
	visibility *VisibilityService
	logger     *logrus.Logger
}

// NewFeedService 创建FeedService
func NewFeedService(repo repository.FeedRepository, visibility *VisibilityService, logger *logrus.Logger) *FeedService {
	return &FeedService{
		repo:       repo,
		visibility: visibility,
		logger:     logger,
	}
}

// EventSummary 列表页单个事件信息
type EventSummary struct {
	EventUUID string `json:"event_uuid"`
	Title     string `json:"title"`
	VenueName string `json:"venue_name"`
	VenueKind string `json:"venue_kind"`
	Source    string `json:"source"`
	StartTime int64  `json:"start_time"` // 开始时间戳（毫秒），0表示无日期
	EndTime   int64  `json:"end_time"`   // 结束时间戳（毫秒），0表示无
	Likes     int    `json:"likes"`
	Views     int    `json:"views"`
	Comments  int    `json:"comments"`
	Trending  bool   `json:"trending,omitempty"`
}

// FeedResult feed分栏返回
type FeedResult struct {
	Trending  []EventSummary `json:"trending"`
	Favorites []EventSummary `json:"favorites"`
	Explore   []EventSummary `json:"explore"`
}

// GetFeed 组合一次feed渲染所需的全部分栏：
// 拉取进行中事件 → 可见性过滤（台账每次新读）→ 热度榜 → 收藏 → 发现页（去重后按时间升序）
func (s *FeedService) GetFeed(ctx context.Context, venueKind string, favoriteNames []string) (*FeedResult, error) {
	events, err := s.repo.ListActiveEvents(ctx, venueKind, 0)
	if err != nil {
		return nil, err
	}

	visible, err := s.visibility.Filter(ctx, events, time.Now())
	if err != nil {
		return nil, err
	}

	result := &FeedResult{
		Trending:  []EventSummary{},
		Favorites: []EventSummary{},
		Explore:   []EventSummary{},
	}
	if len(visible) == 0 {
		return result, nil
	}

	// 热度榜：views降序、likes决胜，取前N
	sorted, picked := classify.RankTrending(visible, trendingTopN)
	for i, e := range sorted {
		if i >= trendingTopN {
			break
		}
		summary := toSummary(e)
		summary.Trending = true
		result.Trending = append(result.Trending, summary)
	}

	// 收藏：场地名或username别名精确匹配
	excluded := make(map[uint64]bool, len(picked))
	for id := range picked {
		excluded[id] = true
	}
	for _, e := range classify.MatchFavorites(visible, favoriteNames) {
		result.Favorites = append(result.Favorites, toSummary(e))
		excluded[e.ID] = true
	}

	// 发现页：开始时间升序（无日期排最后），排除已在上面两栏出现的事件
	for _, e := range classify.RankExplore(visible, excluded) {
		result.Explore = append(result.Explore, toSummary(e))
	}

	return result, nil
}

// FeedListResult 分页列表返回
type FeedListResult struct {
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
	Total    int64          `json:"total"`
	Items    []EventSummary `json:"items"`
}

// ListEvents 按条件分页返回事件列表
func (s *FeedService) ListEvents(ctx context.Context, filter repository.FeedFilter, page, pageSize int) (*FeedListResult, error) {
	events, total, err := s.repo.ListEvents(ctx, filter, page, pageSize)
	if err != nil {
		return nil, err
	}
	result := &FeedListResult{
		Page:     page,
		PageSize: pageSize,
		Total:    total,
		Items:    make([]EventSummary, 0, len(events)),
	}
	for _, e := range events {
		result.Items = append(result.Items, toSummary(e))
	}
	return result, nil
}

// EventDetail 详情页DTO
type EventDetail struct {
	EventSummary
	Collection string `json:"collection"`
	SourceID   string `json:"source_id"`
	Status     string `json:"status"`
}

// GetEventDetail 获取单个事件详情（媒体另走懒解析接口）
func (s *FeedService) GetEventDetail(ctx context.Context, eventUUID string) (*EventDetail, error) {
	event, err := s.repo.GetEventByUUID(ctx, eventUUID)
	if err != nil {
		return nil, err
	}
	return &EventDetail{
		EventSummary: toSummary(event),
		Collection:   event.Collection,
		SourceID:     event.SourceID,
		Status:       event.Status,
	}, nil
}

// toSummary 模型转列表DTO
func toSummary(e *model.Event) EventSummary {
	summary := EventSummary{
		EventUUID: e.EventUUID,
		Title:     e.Title,
		VenueName: e.VenueName,
		VenueKind: string(e.VenueKind),
		Source:    string(e.Source),
		Likes:     e.Likes,
		Views:     e.Views,
		Comments:  e.Comments,
	}
	if e.StartTime != nil {
		summary.StartTime = e.StartTime.UnixMilli()
	}
	if e.EndTime != nil {
		summary.EndTime = e.EndTime.UnixMilli()
	}
	return summary
}
