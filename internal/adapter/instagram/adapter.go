package instagram

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
const SourceName = "instagram"

// defaultCollection 未配置collection时的默认集合名
const defaultCollection = "Instagram_posts"

func init() {
	adapter.Register(SourceName, NewInstagramAdapter)
}

// Adapter Instagram_posts集合适配器：分页拉取爬取/商家帖子文档
type Adapter struct {
	cfg        *config.SourceConfig
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewInstagramAdapter 创建Instagram_posts集合适配器
func NewInstagramAdapter(cfg *config.SourceConfig, logger *logrus.Logger) interfaces.SourceAdapter {
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

// listResponse 文档存储的分页列表响应
type listResponse struct {
	Documents     []model.RawDocument `json:"documents"`
	NextPageToken string              `json:"nextPageToken"`
}

// FetchDocuments 分页拉取集合内全部文档
func (a *Adapter) FetchDocuments(ctx context.Context) ([]model.RawDocument, error) {
	collection := a.cfg.Collection
	if collection == "" {
		collection = defaultCollection
	}
	pageSize := a.cfg.PageSize
	if pageSize <= 0 {
		pageSize = 100
	}

	var docs []model.RawDocument
	pageToken := ""
	for {
		listURL := fmt.Sprintf("%s/collections/%s/documents?pageSize=%d", a.cfg.BaseURL, url.PathEscape(collection), pageSize)
		if pageToken != "" {
			listURL += "&pageToken=" + url.QueryEscape(pageToken)
		}

		page, err := a.fetchPage(ctx, listURL)
		if err != nil {
			return nil, fmt.Errorf("拉取%s文档失败: %w", collection, err)
		}
		docs = append(docs, page.Documents...)

		if page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken
	}

	a.logger.WithFields(logrus.Fields{
		"source":    SourceName,
		"documents": len(docs),
	}).Info("文档拉取完成")
	return docs, nil
}

// fetchPage 拉取单页文档
func (a *Adapter) fetchPage(ctx context.Context, listURL string) (*listResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, listURL, nil)
	if err != nil {
		return nil, fmt.Errorf("构造请求失败: %w", err)
	}
	if a.cfg.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+a.cfg.AuthToken)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("文档存储返回状态%d", resp.StatusCode)
	}

	var page listResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("解析文档列表失败: %w", err)
	}
	return &page, nil
}

// FetchEngagement 实现EngagementFetcher：按文档ID拉取最新互动数据
func (a *Adapter) FetchEngagement(ctx context.Context, sourceID string) (*interfaces.EngagementRow, error) {
	collection := a.cfg.Collection
	if collection == "" {
		collection = defaultCollection
	}
	docURL := fmt.Sprintf("%s/collections/%s/documents/%s", a.cfg.BaseURL, url.PathEscape(collection), url.PathEscape(sourceID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, docURL, nil)
	if err != nil {
		return nil, fmt.Errorf("构造请求失败: %w", err)
	}
	if a.cfg.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+a.cfg.AuthToken)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("拉取文档%s失败: %w", sourceID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("文档存储返回状态%d", resp.StatusCode)
	}

	var doc model.RawDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("解析文档失败: %w", err)
	}

	return &interfaces.EngagementRow{
		Likes:    doc.Int("likesCount"),
		Views:    doc.Int("videoViewCount"),
		Comments: doc.Int("commentsCount"),
	}, nil
}
