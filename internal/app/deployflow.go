package app

import (
	"context"

	"commander/internal/bulk"
	"go.uber.org/zap"
)

// Deploy 为当前已选条目逐条创建安装策略。整批无失败时清空选择，否则保留以便重试。
func (s *Service) Deploy(ctx context.Context, opts bulk.DeployOptions) (bulk.Report, error) {
	if err := opts.Validate(); err != nil {
		return bulk.Report{}, err
	}
	s.mu.Lock()
	selected := s.selectedLocked()
	s.mu.Unlock()
	if len(selected) == 0 {
		return bulk.Report{}, ErrNothingSelected
	}

	if err := s.beginBulk(); err != nil {
		return bulk.Report{}, err
	}
	defer s.endBulk()

	items := make([]bulk.DeployItem, 0, len(selected))
	for _, item := range selected {
		items = append(items, bulk.DeployItem{Name: item.DisplayName(), Label: item.Label})
	}
	s.logger.Info("deployment started",
		zap.Int("items", len(items)),
		zap.String("category", opts.Category),
		zap.String("script_id", opts.ScriptID))

	report := s.deployer.Run(ctx, items, opts)
	if report.Clean() {
		s.resetSelection()
	}
	return report, nil
}
