package interfaces

import (
	"context"

	"NightSync/internal/config"
	"NightSync/internal/model"

	"github.com/sirupsen/logrus"
)

// SourceAdapter 所有文档来源必须实现的核心接口
type SourceAdapter interface {
	GetName() string                                                 // 来源名称
	FetchDocuments(ctx context.Context) ([]model.RawDocument, error) // 拉取集合内全部原始文档
}

// Factory 来源适配器工厂函数签名
// 入参：来源配置、日志实例
// 出参：实现SourceAdapter接口的适配器实例
type Factory func(cfg *config.SourceConfig, logger *logrus.Logger) SourceAdapter

// DocumentRepository 通用事件入库接口
type DocumentRepository interface {
	SaveEvents(ctx context.Context, events []*model.Event) error
}
