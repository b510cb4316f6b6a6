package service

import (
	"context"
	"encoding/json"

	"NightSync/internal/media"
	"NightSync/internal/metrics"
	"NightSync/internal/model"
	"NightSync/internal/repository"

	"github.com/sirupsen/logrus"
)

// MediaService 媒体懒解析服务：渲染前才解析候选并按需走代理函数
type MediaService struct {
	repo   repository.FeedRepository
	proxy  *media.ProxyClient
	logger *logrus.Logger
}

// NewMediaService 创建MediaService
func NewMediaService(repo repository.FeedRepository, proxy *media.ProxyClient, logger *logrus.Logger) *MediaService {
	return &MediaService{
		repo:   repo,
		proxy:  proxy,
		logger: logger,
	}
}

// GetMedia 解析事件的可展示媒体列表
// 代理失败按"尝试下一候选"降级；所有候选耗尽返回占位图——解析环节绝不向接口层抛错
func (s *MediaService) GetMedia(ctx context.Context, eventUUID string) ([]model.MediaItem, error) {
	event, err := s.repo.GetEventByUUID(ctx, eventUUID)
	if err != nil {
		return nil, err
	}

	var doc model.RawDocument
	if err := json.Unmarshal(event.RawDoc, &doc); err != nil {
		s.logger.WithError(err).WithField("event_uuid", eventUUID).Warn("原始文档反序列化失败，返回占位图")
		return []model.MediaItem{{Kind: model.MediaImage, URL: media.PlaceholderURL}}, nil
	}

	candidates := media.Resolve(doc)
	resolved := make([]model.MediaItem, 0, len(candidates))
	for _, item := range candidates {
		if !item.NeedsProxy {
			resolved = append(resolved, item)
			continue
		}
		proxied, ok := s.proxyItem(ctx, item)
		if !ok {
			// 代理失败：跳过该候选，继续下一个
			continue
		}
		resolved = append(resolved, proxied)
	}

	if len(resolved) == 0 {
		resolved = append(resolved, model.MediaItem{Kind: model.MediaImage, URL: media.PlaceholderURL})
	}
	return resolved, nil
}

// proxyItem 按媒体类型调用代理函数，返回可直接加载的媒体项
func (s *MediaService) proxyItem(ctx context.Context, item model.MediaItem) (model.MediaItem, bool) {
	var (
		value string
		err   error
	)
	switch item.Kind {
	case model.MediaVideo:
		value, err = s.proxy.ProxyVideo(ctx, item.URL)
	default:
		value, err = s.proxy.ProxyImage(ctx, item.URL)
	}
	if err != nil {
		metrics.ProxyRequests.WithLabelValues(string(item.Kind), "error").Inc()
		s.logger.WithError(err).WithFields(logrus.Fields{
			"kind": item.Kind,
			"url":  item.URL,
		}).Warn("媒体代理失败，尝试下一候选")
		return model.MediaItem{}, false
	}
	metrics.ProxyRequests.WithLabelValues(string(item.Kind), "ok").Inc()
	return model.MediaItem{Kind: item.Kind, URL: value, NeedsProxy: false}, true
}
