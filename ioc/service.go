package ioc

import (
	"commander/internal/app"
	"commander/internal/inventory"
	"commander/internal/jamf"
	"go.uber.org/zap"
)

// InitStore 构建导入文件存储。
func InitStore(cfg app.Config) (*inventory.Store, error) {
	return inventory.NewStore(cfg.Storage.Dir)
}

// InitAppService 构建会话服务。
func InitAppService(cfg app.Config, client jamf.Client, store *inventory.Store, logger *zap.Logger) (*app.Service, error) {
	return app.NewService(cfg, client, store, logger)
}
