package job

import (
	"context"
	"strings"
	"sync"
	"time"

	"commander/internal/logging"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler 按 cron 表达式周期执行刷新任务，同一时刻只允许一轮在跑。
type Scheduler struct {
	cronExpr    string
	logger      *zap.Logger
	cron        *cron.Cron
	refreshFunc func(context.Context) error
	parent      context.Context
	mu          sync.Mutex
	running     bool
}

// NewScheduler 构建调度器。cron 表达式为空时返回 nil，表示不启用定时刷新。
func NewScheduler(expr string, refreshFunc func(context.Context) error, logger *zap.Logger) *Scheduler {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil
	}
	return &Scheduler{cronExpr: expr, logger: logging.OrNop(logger), refreshFunc: refreshFunc}
}

// Start 启动调度器，返回用于停止任务的函数。
func (s *Scheduler) Start(parent context.Context) context.CancelFunc {
	if s == nil {
		return func() {}
	}
	s.parent = parent
	c := cron.New()
	id, err := c.AddFunc(s.cronExpr, s.runOnce)
	if err != nil {
		s.logger.Error("failed to register cron job", zap.String("cron", s.cronExpr), zap.Error(err))
		return func() {}
	}
	s.cron = c
	c.Start()
	entry := c.Entry(id)
	s.logger.Info("refresh scheduler started", zap.String("cron", s.cronExpr), zap.Time("next", entry.Next))

	var once sync.Once
	stop := func() {
		once.Do(func() {
			ctx := s.cron.Stop()
			<-ctx.Done()
			s.logger.Info("refresh scheduler stopped")
		})
	}

	go func() {
		<-parent.Done()
		stop()
	}()

	return stop
}

func (s *Scheduler) runOnce() {
	if s.refreshFunc == nil {
		s.logger.Warn("refresh function not configured")
		return
	}
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		s.logger.Warn("previous refresh still running, skip current schedule")
		return
	}
	s.running = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	runCtx := context.Background()
	if s.parent != nil {
		if s.parent.Err() != nil {
			s.logger.Info("scheduler context cancelled, skip refresh")
			return
		}
		runCtx = s.parent
	}
	start := time.Now()
	err := s.refreshFunc(runCtx)
	elapsed := time.Since(start)
	if err != nil {
		s.logger.Error("scheduled refresh failed", zap.Duration("duration", elapsed), zap.Error(err))
		return
	}
	s.logger.Info("scheduled refresh completed", zap.Duration("duration", elapsed))
}
