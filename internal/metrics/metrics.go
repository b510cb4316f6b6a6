package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// 同步与代理调用的核心指标（/metrics暴露）
var (
	SyncRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "nightsync_sync_runs_total",
		Help: "同步任务执行次数（按来源与结果分类）",
	}, []string{"source", "status"})

	DocumentsFetched = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "nightsync_documents_fetched_total",
		Help: "从文档存储拉取的原始文档数",
	}, []string{"source"})

	NormalizeDropped = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "nightsync_normalize_dropped_total",
		Help: "因缺少稳定ID被丢弃的文档数",
	}, []string{"source"})

	EventsUpserted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "nightsync_events_upserted_total",
		Help: "入库（upsert）的事件数",
	}, []string{"source"})

	ProxyRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "nightsync_proxy_requests_total",
		Help: "媒体代理函数调用次数（按媒体类型与结果分类）",
	}, []string{"kind", "status"})
)

func init() {
	prometheus.MustRegister(SyncRuns, DocumentsFetched, NormalizeDropped, EventsUpserted, ProxyRequests)
}
