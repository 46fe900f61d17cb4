package app

import (
	"context"

	"commander/internal/matching"
	"go.uber.org/zap"
)

// RunMatching 检查输入后运行一轮匹配，发布后清空选择。
func (s *Service) RunMatching(ctx context.Context) ([]matching.MatchResult, error) {
	if err := s.matcher.CanRun(); err != nil {
		return nil, err
	}
	results, err := s.matcher.Run(ctx)
	if err != nil {
		return nil, err
	}
	s.resetSelection()
	return results, nil
}

// Refresh 重新读取存储中的导入文件，输入有变化时重新匹配。供定时任务调用。
func (s *Service) Refresh(ctx context.Context) error {
	in, _, err := s.store.Load()
	if err != nil {
		return err
	}
	if !in.Ready() {
		s.logger.Debug("refresh skipped, inputs incomplete")
		return nil
	}
	if !s.matcher.Stale(in) {
		s.logger.Debug("refresh skipped, inputs unchanged")
		return nil
	}
	s.matcher.SetInputs(in)
	s.resetSelection()
	results, err := s.RunMatching(ctx)
	if err != nil {
		return err
	}
	s.logger.Info("inventory refreshed", zap.Int("matches", len(results)))
	return nil
}
