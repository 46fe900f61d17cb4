package main

import (
	"fmt"
	"strings"

	"commander/internal/bulk"
	"commander/internal/domain"
	"github.com/spf13/cobra"
)

func newDeployCmd(opts *rootOptions) *cobra.Command {
	var (
		deployOpts bulk.DeployOptions
		labels     []string
		all        bool
	)
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "为匹配到的应用逐条创建安装策略",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := deployOpts.Validate(); err != nil {
				return err
			}
			if !all && len(labels) == 0 {
				return fmt.Errorf("either --label or --all is required")
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

			if all {
				for _, g := range s.svc.View().Groups {
					if err := s.svc.ToggleGroup(g.Key); err != nil {
						return err
					}
				}
			}
			for _, label := range labels {
				if err := s.svc.Toggle(itemID(strings.TrimSpace(label))); err != nil {
					return err
				}
			}

			report, err := s.svc.Deploy(cmd.Context(), deployOpts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, res := range report.Results {
				if res.Success {
					fmt.Fprintf(out, "ok    %s\n", res.ItemName)
				} else {
					fmt.Fprintf(out, "fail  %s: %s\n", res.ItemName, res.Error)
				}
			}
			fmt.Fprintln(out, report.Summary())
			if !report.Clean() {
				return fmt.Errorf("%d of %d deployments failed", report.FailureCount, len(report.Results))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&deployOpts.Category, "category", "", "策略分类")
	cmd.Flags().StringVar(&deployOpts.ScriptID, "script-id", "", "安装脚本 id")
	cmd.Flags().BoolVar(&deployOpts.FeatureOnMainPage, "feature", false, "在自助服务首页推荐")
	cmd.Flags().BoolVar(&deployOpts.DisplayInCategory, "display-in-category", true, "在分类中展示")
	cmd.Flags().StringSliceVar(&labels, "label", nil, "要部署的 label，可重复")
	cmd.Flags().BoolVar(&all, "all", false, "部署全部匹配结果")
	return cmd
}

// itemID 接受裸 label 或完整的条目 id。
func itemID(arg string) string {
	if prefix, _, ok := domain.SplitKey(arg); ok && (prefix == domain.PrefixMatch || prefix == domain.PrefixLabel) {
		return arg
	}
	return domain.MakeKey(domain.PrefixMatch, arg)
}
