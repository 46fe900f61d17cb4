package app

import (
	"context"
	"fmt"

	"commander/internal/inventory"
	"go.uber.org/zap"
)

// ImportResult 汇总导入后的输入规模。
type ImportResult struct {
	Source      inventory.Source `json:"source"`
	Labels      int              `json:"labels"`
	MacApps     int              `json:"mac_apps"`
	WindowsApps int              `json:"windows_apps"`
	Ready       bool             `json:"ready"`
}

// Import 原样保存导入内容，解析后整体替换对应输入，并清空选择。
func (s *Service) Import(ctx context.Context, source inventory.Source, content string) (ImportResult, error) {
	if err := ctx.Err(); err != nil {
		return ImportResult{}, err
	}
	if err := s.store.Save(source, content); err != nil {
		return ImportResult{}, fmt.Errorf("保存导入文件失败: %w", err)
	}
	in := s.matcher.Inputs()
	source.Apply(&in, content)
	s.matcher.SetInputs(in)
	s.resetSelection()

	res := ImportResult{
		Source:      source,
		Labels:      len(in.Catalogue),
		MacApps:     len(in.MacApps),
		WindowsApps: len(in.WindowsApps),
		Ready:       in.Ready(),
	}
	s.logger.Info("inventory imported",
		zap.String("source", string(source)),
		zap.Int("labels", res.Labels),
		zap.Int("mac_apps", res.MacApps),
		zap.Int("windows_apps", res.WindowsApps))
	return res, nil
}
