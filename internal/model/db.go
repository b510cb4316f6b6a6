package model

import (
	"time"

	"gorm.io/datatypes"
)

// Source 对应 sources 表：已接入的文档集合（类似平台注册表）
type Source struct {
	ID              uint64     `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	Name            string     `gorm:"column:name;type:varchar(32);uniqueIndex;not null;comment:来源名称（instagram/companyevents）"`
	Collection      string     `gorm:"column:collection;type:varchar(64);not null;comment:文档集合名"`
	Type            SourceType `gorm:"column:type;type:varchar(32);not null;comment:来源类型：scraped/company-created"`
	BaseURL         string     `gorm:"column:base_url;type:varchar(256);comment:文档存储API地址"`
	ApiLimit        int        `gorm:"column:api_limit;type:int;default:600;comment:API调用限额"`
	CurrentApiUsage int        `gorm:"column:current_api_usage;type:int;default:0;comment:已调用次数"`
	IsEnabled       bool       `gorm:"column:is_enabled;type:boolean;default:true;comment:是否启用"`
	CreatedAt       time.Time  `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间"`
	UpdatedAt       time.Time  `gorm:"column:updated_at;type:timestamp;default:now();comment:更新时间"`
}

func (Source) TableName() string { return "sources" }

// DeletedPost 对应 deleted_posts 表：软删除台账
// 商家删除活动时先把原始文档复制到这里再删除（copy-then-delete）；
// 台账行创建后不再修改，重新发布时整行删除
type DeletedPost struct {
	ID                 uint64         `gorm:"column:id;primaryKey;autoIncrement"`
	PostID             string         `gorm:"column:post_id;type:varchar(128);uniqueIndex;not null"` // 原始文档ID
	OriginalCollection string         `gorm:"column:original_collection;type:varchar(64);not null"`  // 原集合名
	DeletedBy          string         `gorm:"column:deleted_by;type:varchar(128)"`                   // 操作者（商家标识）
	DeletedAt          time.Time      `gorm:"column:deleted_at;type:timestamp;not null"`
	Payload            datatypes.JSON `gorm:"column:payload;type:jsonb;not null"` // 被删文档的完整拷贝
}

func (DeletedPost) TableName() string { return "deleted_posts" }
