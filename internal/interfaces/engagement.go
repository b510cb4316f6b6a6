package interfaces

import "context"

// EngagementRow 单个文档的最新互动数据（热度排序依据）
type EngagementRow struct {
	Likes    int
	Views    int
	Comments int
}

// EngagementFetcher 按文档ID拉取当前互动数据（用于定期刷新events表的likes/views/comments）
type EngagementFetcher interface {
	FetchEngagement(ctx context.Context, sourceID string) (*EngagementRow, error)
}
