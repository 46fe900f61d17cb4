//go:build wireinject

package main

import (
	"commander/ioc"
	"commander/pkg/server"
	"github.com/google/wire"
)

func InitApp() (*server.HTTPServer, func(), error) {
	panic(wire.Build(
		ioc.InitConfig,
		ioc.InitLogger,
		ioc.InitJamfClient,
		ioc.InitStore,
		ioc.InitAppService,
		ioc.InitMetricsRegistry,
		ioc.InitConsoleHandler,
		ioc.InitRecordHandler,
		ioc.InitGinEngine,
		ioc.InitScheduler,
		server.NewHTTPServer,
	))
}
