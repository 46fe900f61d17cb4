package ioc

import (
	"context"

	"commander/internal/app"
	"commander/internal/job"
	"go.uber.org/zap"
)

// InitScheduler 构建定时刷新调度器，未配置 cron 时返回 nil。
func InitScheduler(cfg app.Config, svc *app.Service, logger *zap.Logger) *job.Scheduler {
	var refresh func(context.Context) error
	if svc != nil {
		refresh = svc.Refresh
	}
	return job.NewScheduler(cfg.Matching.RefreshCron, refresh, logger.Named("job"))
}
