// Package bulk 顺序执行批量远程调用，逐条记录结果，单条失败不会中断整批。
package bulk

import (
	"context"
	"fmt"
	"time"

	"commander/internal/domain"
	"commander/internal/logging"
	"commander/internal/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OperationResult 是批量操作中单条记录的结果。
type OperationResult struct {
	ItemName     string `json:"item_name"`
	Success      bool   `json:"success"`
	Error        string `json:"error,omitempty"`
	FromCategory string `json:"from_category,omitempty"`
	ToCategory   string `json:"to_category,omitempty"`
}

// Report 汇总一次批量运行，Results 与输入一一对应且顺序一致。
type Report struct {
	RunID        string            `json:"run_id"`
	Operation    domain.Operation  `json:"operation"`
	Kind         domain.RecordKind `json:"kind,omitempty"`
	Results      []OperationResult `json:"results"`
	SuccessCount int               `json:"success_count"`
	FailureCount int               `json:"failure_count"`
	StartedAt    time.Time         `json:"started_at"`
	FinishedAt   time.Time         `json:"finished_at"`
}

// Clean 表示整批没有失败。
func (r Report) Clean() bool {
	return r.FailureCount == 0
}

// Summary 返回面向用户的状态文本。
func (r Report) Summary() string {
	verb := "processed"
	switch r.Operation {
	case domain.OpCreate:
		verb = "created"
	case domain.OpMove:
		verb = "moved"
	case domain.OpDelete:
		verb = "deleted"
	}
	if r.FailureCount == 0 {
		return fmt.Sprintf("Completed: %d %s", r.SuccessCount, verb)
	}
	return fmt.Sprintf("Completed: %d %s, %d failed", r.SuccessCount, verb, r.FailureCount)
}

func (r *Report) add(res OperationResult) {
	r.Results = append(r.Results, res)
	if res.Success {
		r.SuccessCount++
	} else {
		r.FailureCount++
	}
}

// SleepFunc 在两次调用之间等待，ctx 取消时提前返回。
type SleepFunc func(ctx context.Context, d time.Duration) error

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// pacer 负责逐条顺序调用，并在每次调用后固定等待 delay。
type pacer struct {
	delay  time.Duration
	sleep  SleepFunc
	logger *zap.Logger
}

func newPacer(delay time.Duration, logger *zap.Logger) pacer {
	return pacer{delay: delay, sleep: sleepContext, logger: logging.OrNop(logger)}
}

// run 对 items 逐条执行 call。ctx 取消后剩余条目不再调用，直接记为失败。
func run[T any](ctx context.Context, p pacer, report *Report, items []T, name func(T) string, call func(context.Context, T) OperationResult) {
	report.RunID = uuid.NewString()
	report.StartedAt = time.Now()
	report.Results = make([]OperationResult, 0, len(items))

	for _, item := range items {
		var res OperationResult
		if err := ctx.Err(); err != nil {
			res = OperationResult{ItemName: name(item), Error: err.Error()}
		} else {
			res = call(ctx, item)
			// 无论成败都等待。
			_ = p.sleep(ctx, p.delay)
		}
		report.add(res)

		outcome := "success"
		if !res.Success {
			outcome = "failure"
			p.logger.Warn("bulk item failed",
				zap.String("run_id", report.RunID),
				zap.String("operation", string(report.Operation)),
				zap.String("item", res.ItemName),
				zap.String("error", res.Error))
		}
		metrics.BulkItems.WithLabelValues(string(report.Operation), string(report.Kind), outcome).Inc()
	}

	report.FinishedAt = time.Now()
	p.logger.Info("bulk run finished",
		zap.String("run_id", report.RunID),
		zap.String("operation", string(report.Operation)),
		zap.String("kind", string(report.Kind)),
		zap.Int("succeeded", report.SuccessCount),
		zap.Int("failed", report.FailureCount),
		zap.Duration("duration", report.FinishedAt.Sub(report.StartedAt)))
}

func resultFor(name string, err error) OperationResult {
	if err != nil {
		return OperationResult{ItemName: name, Error: err.Error()}
	}
	return OperationResult{ItemName: name, Success: true}
}
