package ioc

import (
	"commander/internal/app"
	"commander/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// InitConsoleHandler 构建控制台 HTTP 处理器。
func InitConsoleHandler(svc *app.Service, logger *zap.Logger) *router.ConsoleHandler {
	return router.NewConsoleHandler(svc, logger.Named("http"))
}

// InitRecordHandler 构建记录管理 HTTP 处理器。
func InitRecordHandler(svc *app.Service, logger *zap.Logger) *router.RecordHandler {
	return router.NewRecordHandler(svc, logger.Named("http"))
}

// InitGinEngine 构建 gin 引擎。
func InitGinEngine(console *router.ConsoleHandler, records *router.RecordHandler, gatherer prometheus.Gatherer) *gin.Engine {
	return router.NewEngine(console, records, gatherer)
}
