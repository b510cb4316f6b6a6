package service

import (
	"context"
	"fmt"

	"NightSync/internal/adapter"
	"NightSync/internal/classify"
	"NightSync/internal/config"
	"NightSync/internal/interfaces"
	"NightSync/internal/metrics"
	"NightSync/internal/model"
	"NightSync/internal/normalize"
	"NightSync/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SyncService 文档同步服务：拉取→归一化→分类→入库
type SyncService struct {
	db         *gorm.DB
	logger     *logrus.Logger
	repo       interfaces.DocumentRepository
	cfg        *config.Config
	registry   *adapter.SourceRegistry
	classifier *classify.Classifier
}

// NewSyncService 创建SyncService
func NewSyncService(db *gorm.DB, logger *logrus.Logger, cfg *config.Config, registry *adapter.SourceRegistry) *SyncService {
	return &SyncService{
		db:         db,
		logger:     logger,
		repo:       repository.NewEventRepository(db),
		cfg:        cfg,
		registry:   registry,
		classifier: classify.NewClassifier(cfg.Venues.Clubs),
	}
}

// SyncSource 通用同步方法（支持所有已注册来源）
func (s *SyncService) SyncSource(ctx context.Context, sourceName string) error {
	// 1. 查询来源配置行
	var source model.Source
	if err := s.db.WithContext(ctx).Where("name = ?", sourceName).First(&source).Error; err != nil {
		metrics.SyncRuns.WithLabelValues(sourceName, "error").Inc()
		return fmt.Errorf("查询%s配置失败: %w", sourceName, err)
	}
	if !source.IsEnabled {
		metrics.SyncRuns.WithLabelValues(sourceName, "disabled").Inc()
		return fmt.Errorf("%s来源已禁用", sourceName)
	}

	// 2. 从实例注册表取适配器
	sourceAdapter, err := s.registry.GetAdapter(sourceName)
	if err != nil {
		metrics.SyncRuns.WithLabelValues(sourceName, "error").Inc()
		return err
	}

	// 3. 拉取原始文档
	docs, err := sourceAdapter.FetchDocuments(ctx)
	if err != nil {
		metrics.SyncRuns.WithLabelValues(sourceName, "error").Inc()
		return fmt.Errorf("%s拉取文档失败: %w", sourceName, err)
	}
	metrics.DocumentsFetched.WithLabelValues(sourceName).Add(float64(len(docs)))
	if len(docs) == 0 {
		s.logger.Warnf("%s未拉取到文档", sourceName)
		metrics.SyncRuns.WithLabelValues(sourceName, "empty").Inc()
		return nil
	}

	// 4. 归一化：无稳定ID的文档fail closed丢弃并计数
	var events []*model.Event
	dropped := 0
	for _, doc := range docs {
		event := normalize.Normalize(doc, source.Collection, source.Type)
		if event == nil {
			dropped++
			continue
		}
		// 场地分类在入库前确定（静态名称表，进程内加载一次）
		event.VenueKind = s.classifier.Classify(event.VenueName)
		events = append(events, event)
	}
	if dropped > 0 {
		metrics.NormalizeDropped.WithLabelValues(sourceName).Add(float64(dropped))
		s.logger.WithFields(logrus.Fields{
			"source":  sourceName,
			"dropped": dropped,
		}).Warn("部分文档缺少稳定ID，已丢弃")
	}

	// 5. 通用入库
	if err := s.repo.SaveEvents(ctx, events); err != nil {
		metrics.SyncRuns.WithLabelValues(sourceName, "error").Inc()
		return fmt.Errorf("%s入库失败: %w", sourceName, err)
	}
	metrics.EventsUpserted.WithLabelValues(sourceName).Add(float64(len(events)))
	metrics.SyncRuns.WithLabelValues(sourceName, "ok").Inc()

	s.logger.Infof("%s同步完成，共%d个事件（丢弃%d）", sourceName, len(events), dropped)
	return nil
}
