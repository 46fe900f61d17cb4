package app

import (
	"context"
	"fmt"

	"commander/internal/inventory"
	"go.uber.org/zap"
)

// RestoreResult 描述启动时从存储恢复的内容。
type RestoreResult struct {
	Restored []inventory.Source `json:"restored"`
	Matched  int                `json:"matched"`
	Ran      bool               `json:"ran"`
}

// Restore 读取上次保存的导入文件；输入完整且开启自动运行时直接匹配，不做任何确认。
func (s *Service) Restore(ctx context.Context) (RestoreResult, error) {
	in, present, err := s.store.Load()
	if err != nil {
		return RestoreResult{}, fmt.Errorf("恢复已保存的导入文件失败: %w", err)
	}
	res := RestoreResult{Restored: present}
	if len(present) == 0 {
		s.logger.Info("no saved inventory found", zap.String("dir", s.store.Dir()))
		return res, nil
	}
	s.matcher.SetInputs(in)
	s.resetSelection()
	s.logger.Info("saved inventory restored",
		zap.Int("sources", len(present)),
		zap.Int("labels", len(in.Catalogue)),
		zap.Int("mac_apps", len(in.MacApps)),
		zap.Int("windows_apps", len(in.WindowsApps)))

	if !in.Ready() || !s.cfg.AutoRun() {
		return res, nil
	}
	results, err := s.RunMatching(ctx)
	if err != nil {
		return res, err
	}
	res.Ran = true
	res.Matched = len(results)
	return res, nil
}
