package ioc

import (
	"commander/internal/app"
	"commander/pkg/logging"
	"go.uber.org/zap"
)

// InitLogger 构建全局 logger，清理函数负责刷出缓冲。
func InitLogger(cfg app.Config) (*zap.Logger, func(), error) {
	logger, err := logging.NewZapLogger(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { _ = logger.Sync() }, nil
}
