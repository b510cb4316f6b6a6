package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SourceType 事件来源类型枚举
type SourceType string

const (
	SourceScraped SourceType = "scraped"         // 爬取的帖子（Instagram_posts中的第三方数据）
	SourceCompany SourceType = "company-created" // 商家自建活动
)

// VenueKind 场地分类枚举（club/bar）
type VenueKind string

const (
	VenueClub VenueKind = "club"
	VenueBar  VenueKind = "bar"
)

// 事件状态
const (
	StatusActive  = "active"  // 进行中/未开始
	StatusExpired = "expired" // 已过结束时间
)

// Event 统一的活动模型（抹平两个集合的字段差异）
// 每次同步从原始文档整体重建，不做增量修补；raw_doc保留原始文档供媒体懒解析用
type Event struct {
	ID         uint64         `gorm:"column:id;primaryKey;autoIncrement"`
	EventUUID  string         `gorm:"column:event_uuid;type:varchar(64);uniqueIndex;not null"`                       // 全局唯一ID
	Collection string         `gorm:"column:collection;type:varchar(64);not null;uniqueIndex:uk_collection_source"` // 来源集合名
	SourceID   string         `gorm:"column:source_id;type:varchar(128);not null;uniqueIndex:uk_collection_source"` // 集合内原始文档ID
	Source     SourceType     `gorm:"column:source;type:varchar(32);index;not null"`                                // 来源类型
	Title      string         `gorm:"column:title;type:varchar(256);not null"`                                      // 活动标题
	VenueName  string         `gorm:"column:venue_name;type:varchar(128)"`                                          // 场地名称
	VenueAlias string         `gorm:"column:venue_alias;type:varchar(128)"`                                         // username别名（收藏匹配用）
	VenueKind  VenueKind      `gorm:"column:venue_kind;type:varchar(16);index"`                                     // 分类：club/bar
	StartTime  *time.Time     `gorm:"column:start_time;type:timestamp"`                                             // 开始时间（可空：日期解析失败仍保留事件）
	EndTime    *time.Time     `gorm:"column:end_time;type:timestamp"`                                               // 结束时间（可空：单时刻事件）
	Likes      int            `gorm:"column:likes;type:int;default:0"`                                              // 点赞数
	Views      int            `gorm:"column:views;type:int;default:0"`                                              // 浏览数
	Comments   int            `gorm:"column:comments;type:int;default:0"`                                           // 评论数
	Status     string         `gorm:"column:status;type:varchar(16);default:active"`                                // 状态：active/expired
	RawDoc     datatypes.JSON `gorm:"column:raw_doc;type:jsonb;not null"`                                           // 原始文档（媒体懒解析依据）
	CreatedAt  time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt  gorm.DeletedAt `gorm:"column:deleted_at;index"` // 软删除（配合deleted_posts台账）
}

// TableName 指定统一活动表名
func (Event) TableName() string { return "events" }

// MediaKind 媒体类型
type MediaKind string

const (
	MediaVideo MediaKind = "video"
	MediaImage MediaKind = "image"
)

// MediaItem 单个可展示媒体（懒解析产物，不落库）
type MediaItem struct {
	Kind       MediaKind `json:"kind"`        // video/image
	URL        string    `json:"url"`         // 媒体地址（可能是data URL）
	NeedsProxy bool      `json:"needs_proxy"` // 第三方CDN地址，需走代理函数
}
