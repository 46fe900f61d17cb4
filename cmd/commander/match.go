package main

import (
	"fmt"
	"io"

	"commander/internal/app"
	"commander/internal/domain"
	"commander/internal/matching"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newMatchCmd(opts *rootOptions) *cobra.Command {
	var (
		mode   string
		filter matching.Filter
	)
	cmd := &cobra.Command{
		Use:   "match",
		Short: "对已保存的导入文件运行匹配并输出分组结果",
		RunE: func(cmd *cobra.Command, args []string) error {
			viewMode, err := domain.ParseViewMode(mode)
			if err != nil {
				return err
			}
			s, err := openSession(opts)
			if err != nil {
				return err
			}
			defer s.close()
			if _, err := s.svc.Restore(cmd.Context()); err != nil {
				return err
			}
			if _, err := s.svc.RunMatching(cmd.Context()); err != nil {
				return err
			}
			s.svc.SetMode(viewMode)
			s.svc.SetFilter(filter)
			return printView(cmd.OutOrStdout(), s.svc.View())
		},
	}
	cmd.Flags().StringVar(&mode, "mode", string(domain.ViewMatched), "视图模式: matched 或 all")
	cmd.Flags().StringVar(&filter.Search, "search", "", "按名称或 label 搜索")
	cmd.Flags().StringVar(&filter.Platform, "platform", matching.PlatformAll, "平台过滤: All、macOS、Windows 或 Installomator")
	return cmd
}

func printView(w io.Writer, v app.View) error {
	for _, g := range v.Groups {
		fmt.Fprintf(w, "%s (%d)\n", g.Key, len(g.Items))
		table := tablewriter.NewTable(w)
		table.Header("Name", "Label", "ID")
		for _, item := range g.Items {
			if err := table.Append(item.DisplayName, item.Label, item.ID); err != nil {
				return err
			}
		}
		if err := table.Render(); err != nil {
			return err
		}
	}
	fmt.Fprintf(w, "%d of %d items shown\n", v.Visible, v.Total)
	return nil
}
