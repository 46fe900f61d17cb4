// Package hydrate 用有界并发为摘要记录补全详情，单条失败时退回摘要本身。
package hydrate

import (
	"context"
	"sync"

	"commander/internal/logging"
	"commander/internal/metrics"
	"go.uber.org/zap"
)

const defaultConcurrency = 8

// Fetcher 拉取单条摘要对应的详情。
type Fetcher[S, D any] func(ctx context.Context, summary S) (D, error)

// Hydrated 是摘要与可选详情的组合。Detail 为 nil 时 Err 记录了失败原因。
type Hydrated[S, D any] struct {
	Summary S
	Detail  *D
	Err     error
}

// Enriched 表示详情是否拉取成功。
func (h Hydrated[S, D]) Enriched() bool {
	return h.Detail != nil
}

// Hydrator 保存并发上限与 logger，可被多个调用点复用。
type Hydrator struct {
	concurrency int
	logger      *zap.Logger
}

// New 构建 Hydrator，concurrency <= 0 时使用默认值。
func New(concurrency int, logger *zap.Logger) *Hydrator {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &Hydrator{concurrency: concurrency, logger: logging.OrNop(logger)}
}

// Concurrency 返回并发上限。
func (h *Hydrator) Concurrency() int {
	return h.concurrency
}

// Hydrate 并发拉取每条摘要的详情，等待全部完成后返回，每条输入恰好对应一条输出。
// 输出按完成顺序排列，需要稳定顺序的调用方自行排序。ctx 取消后尚未开始的摘要直接退回。
func Hydrate[S, D any](ctx context.Context, h *Hydrator, kind string, summaries []S, fetch Fetcher[S, D]) []Hydrated[S, D] {
	if len(summaries) == 0 {
		return nil
	}
	if h == nil {
		h = New(0, nil)
	}

	jobs := make(chan S, len(summaries))
	for _, s := range summaries {
		jobs <- s
	}
	close(jobs)

	workers := h.concurrency
	if workers > len(summaries) {
		workers = len(summaries)
	}

	results := make(chan Hydrated[S, D], len(summaries))
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for summary := range jobs {
				results <- fetchOne(ctx, h, kind, summary, fetch)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	out := make([]Hydrated[S, D], 0, len(summaries))
	failed := 0
	for r := range results {
		if r.Err != nil {
			failed++
		}
		out = append(out, r)
	}
	if failed > 0 {
		h.logger.Warn("hydration finished with fallbacks",
			zap.String("kind", kind),
			zap.Int("total", len(summaries)),
			zap.Int("failed", failed))
	}
	return out
}

func fetchOne[S, D any](ctx context.Context, h *Hydrator, kind string, summary S, fetch Fetcher[S, D]) Hydrated[S, D] {
	if err := ctx.Err(); err != nil {
		metrics.HydrationFallbacks.WithLabelValues(kind).Inc()
		return Hydrated[S, D]{Summary: summary, Err: err}
	}
	detail, err := fetch(ctx, summary)
	if err != nil {
		metrics.HydrationFallbacks.WithLabelValues(kind).Inc()
		h.logger.Debug("detail fetch failed, keep summary", zap.String("kind", kind), zap.Error(err))
		return Hydrated[S, D]{Summary: summary, Err: err}
	}
	return Hydrated[S, D]{Summary: summary, Detail: &detail}
}
