package repository

import (
	"context"
	"time"

	"NightSync/internal/model"

	"gorm.io/gorm"
)

// FeedFilter 列表筛选条件
type FeedFilter struct {
	VenueKind string // 场地分类：club / bar
	Status    string // 事件状态：active / expired
	Source    string // 可选：来源类型（scraped / company-created）
}

// FeedRepository 面向展示层聚合查询的仓储接口
type FeedRepository interface {
	// ListEvents 按过滤条件分页查询事件
	ListEvents(ctx context.Context, filter FeedFilter, page, pageSize int) ([]*model.Event, int64, error)
	// ListActiveEvents 拉取进行中事件（供feed内存聚合用，带limit）
	ListActiveEvents(ctx context.Context, venueKind string, limit int) ([]*model.Event, error)
	// ListEventsEndedButActive 已过结束时间仍为active的事件（供过期清理）
	ListEventsEndedButActive(ctx context.Context, limit int) ([]*model.Event, error)
	// ListActiveByCollection 按集合拉取进行中事件（供互动数据刷新）
	ListActiveByCollection(ctx context.Context, collection string, limit int) ([]*model.Event, error)
	// GetEventByUUID 通过event_uuid获取事件
	GetEventByUUID(ctx context.Context, eventUUID string) (*model.Event, error)
	// GetEventByUUIDUnscoped 含软删除记录的查询（重新发布用）
	GetEventByUUIDUnscoped(ctx context.Context, eventUUID string) (*model.Event, error)
	// GetSources 获取所有来源基础信息
	GetSources(ctx context.Context) ([]*model.Source, error)
}

type feedRepository struct {
	db *gorm.DB
}

// NewFeedRepository 创建FeedRepository实例
func NewFeedRepository(db *gorm.DB) FeedRepository {
	return &feedRepository{db: db}
}

// ListEvents 按过滤条件分页查询事件
func (r *feedRepository) ListEvents(ctx context.Context, filter FeedFilter, page, pageSize int) ([]*model.Event, int64, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	db := r.db.WithContext(ctx).Model(&model.Event{})

	if filter.VenueKind != "" {
		db = db.Where("venue_kind = ?", filter.VenueKind)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.Source != "" {
		db = db.Where("source = ?", filter.Source)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var events []*model.Event
	if err := db.
		Order("start_time ASC NULLS LAST").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&events).Error; err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

// ListActiveEvents 拉取进行中事件，供feed在内存里完成分栏与排序
func (r *feedRepository) ListActiveEvents(ctx context.Context, venueKind string, limit int) ([]*model.Event, error) {
	if limit <= 0 {
		limit = 2000
	}
	db := r.db.WithContext(ctx).Model(&model.Event{}).
		Where("status = ?", model.StatusActive)
	if venueKind != "" {
		db = db.Where("venue_kind = ?", venueKind)
	}
	var events []*model.Event
	if err := db.Order("start_time ASC NULLS LAST").Limit(limit).Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// ListEventsEndedButActive 已过end_time（无end_time时按start_time）且status=active的事件
func (r *feedRepository) ListEventsEndedButActive(ctx context.Context, limit int) ([]*model.Event, error) {
	if limit <= 0 {
		limit = 500
	}
	now := time.Now()
	var events []*model.Event
	if err := r.db.WithContext(ctx).Model(&model.Event{}).
		Where("status = ?", model.StatusActive).
		Where("(end_time IS NOT NULL AND end_time < ?) OR (end_time IS NULL AND start_time IS NOT NULL AND start_time < ?)", now, now).
		Limit(limit).Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// ListActiveByCollection 按集合拉取进行中事件
func (r *feedRepository) ListActiveByCollection(ctx context.Context, collection string, limit int) ([]*model.Event, error) {
	if limit <= 0 {
		limit = 500
	}
	var events []*model.Event
	if err := r.db.WithContext(ctx).Model(&model.Event{}).
		Where("status = ? AND collection = ?", model.StatusActive, collection).
		Limit(limit).Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// GetEventByUUID 通过event_uuid获取事件
func (r *feedRepository) GetEventByUUID(ctx context.Context, eventUUID string) (*model.Event, error) {
	var event model.Event
	if err := r.db.WithContext(ctx).
		Where("event_uuid = ?", eventUUID).
		First(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// GetEventByUUIDUnscoped 含软删除记录查询（重新发布时需要找回已删事件）
func (r *feedRepository) GetEventByUUIDUnscoped(ctx context.Context, eventUUID string) (*model.Event, error) {
	var event model.Event
	if err := r.db.WithContext(ctx).Unscoped().
		Where("event_uuid = ?", eventUUID).
		First(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// GetSources 获取所有来源基础信息
func (r *feedRepository) GetSources(ctx context.Context) ([]*model.Source, error) {
	var sources []*model.Source
	if err := r.db.WithContext(ctx).
		Find(&sources).Error; err != nil {
		return nil, err
	}
	return sources, nil
}
