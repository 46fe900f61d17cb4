package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	MatchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "commander_match_duration_seconds",
		Help:    "单次匹配耗时",
		Buckets: prometheus.DefBuckets,
	})

	MatchResults = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "commander_match_results",
		Help: "最近一次发布的匹配结果数量",
	})

	BulkItems = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "commander_bulk_items_total",
		Help: "批量操作逐条结果",
	}, []string{"operation", "kind", "outcome"})

	HydrationFallbacks = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "commander_hydration_fallbacks_total",
		Help: "详情拉取失败、退回摘要的次数",
	}, []string{"kind"})
)

// MustRegister 注册指标，可在 main 中调用。
func MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(MatchDuration, MatchResults, BulkItems, HydrationFallbacks)
}
