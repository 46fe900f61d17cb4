package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"commander/internal/app"
	"commander/internal/job"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HTTPServer 封装 HTTP 服务运行所需的依赖。
type HTTPServer struct {
	Engine  *gin.Engine
	Logger  *zap.Logger
	Config  app.Config
	Service *app.Service
	Job     *job.Scheduler
}

// NewHTTPServer 构建 HTTPServer。
func NewHTTPServer(engine *gin.Engine, logger *zap.Logger, cfg app.Config, svc *app.Service, scheduler *job.Scheduler) *HTTPServer {
	return &HTTPServer{
		Engine:  engine,
		Logger:  logger,
		Config:  cfg,
		Service: svc,
		Job:     scheduler,
	}
}

// Run 恢复上次保存的导入文件，启动定时刷新与 HTTP 服务，ctx 取消后优雅退出。
func (s *HTTPServer) Run(ctx context.Context) error {
	if s.Job != nil {
		cancelJob := s.Job.Start(ctx)
		defer cancelJob()
	}

	if s.Service != nil {
		if res, err := s.Service.Restore(ctx); err != nil {
			s.Logger.Error("restore saved inventory failed", zap.Error(err))
		} else if res.Ran {
			s.Logger.Info("saved inventory matched on startup", zap.Int("matches", res.Matched))
		}
	}

	srv := &http.Server{Addr: s.Config.HTTP.Listen, Handler: s.Engine}
	errCh := make(chan error, 1)
	go func() {
		s.Logger.Info("http server starting", zap.String("listen", s.Config.HTTP.Listen))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.Logger.Info("http server shutting down")
	return srv.Shutdown(shutdownCtx)
}

// Shutdown 释放资源。
func (s *HTTPServer) Shutdown() {
	if s.Service != nil {
		if err := s.Service.Close(); err != nil {
			s.Logger.Warn("close app service failed", zap.Error(err))
		}
	}
	_ = s.Logger.Sync()
}
