package companyevents

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"NightSync/internal/adapter"
	"NightSync/internal/config"
	"NightSync/internal/interfaces"
	"NightSync/internal/model"
	"NightSync/internal/utils/httpclient"

	"github.com/sirupsen/logrus"
)

// SourceName 来源名称（与config.yaml中的sources键一致）
const SourceName = "companyevents"

// defaultCollection 旧版商家活动集合名
const defaultCollection = "company-events"

func init() {
	adapter.Register(SourceName, NewCompanyEventsAdapter)
}

// Adapter company-events集合适配器
// 旧版接口无分页，整集合一次返回纯JSON数组
type Adapter struct {
	cfg        *config.SourceConfig
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewCompanyEventsAdapter 创建company-events集合适配器
func NewCompanyEventsAdapter(cfg *config.SourceConfig, logger *logrus.Logger) interfaces.SourceAdapter {
	return &Adapter{
		cfg:        cfg,
		httpClient: httpclient.NewHTTPClient(cfg, logger),
		logger:     logger,
	}
}

// GetName ========== 实现SourceAdapter接口 ==========
func (a *Adapter) GetName() string {
	return SourceName
}

// FetchDocuments 拉取整个集合（旧接口一次性返回）
func (a *Adapter) FetchDocuments(ctx context.Context) ([]model.RawDocument, error) {
	collection := a.cfg.Collection
	if collection == "" {
		collection = defaultCollection
	}
	listURL := fmt.Sprintf("%s/%s", a.cfg.BaseURL, url.PathEscape(collection))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, listURL, nil)
	if err != nil {
		return nil, fmt.Errorf("构造请求失败: %w", err)
	}
	if a.cfg.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+a.cfg.AuthToken)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("拉取%s失败: %w", collection, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("文档存储返回状态%d", resp.StatusCode)
	}

	var docs []model.RawDocument
	if err := json.NewDecoder(resp.Body).Decode(&docs); err != nil {
		return nil, fmt.Errorf("解析文档数组失败: %w", err)
	}

	a.logger.WithFields(logrus.Fields{
		"source":    SourceName,
		"documents": len(docs),
	}).Info("文档拉取完成")
	return docs, nil
}
