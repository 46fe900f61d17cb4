package main

import (
	"fmt"
	"os"

	"commander/internal/inventory"
	"github.com/spf13/cobra"
)

func newImportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <labels|mac|windows> <file>",
		Short: "保存一份导入文件，下次启动自动载入",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := inventory.ParseSource(args[0])
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("读取 %s 失败: %w", args[1], err)
			}
			s, err := openSession(opts)
			if err != nil {
				return err
			}
			defer s.close()
			if _, err := s.svc.Restore(cmd.Context()); err != nil {
				return err
			}
			res, err := s.svc.Import(cmd.Context(), source, string(data))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %s: %d labels, %d macOS apps, %d Windows apps\n",
				res.Source, res.Labels, res.MacApps, res.WindowsApps)
			if !res.Ready {
				fmt.Fprintln(cmd.OutOrStdout(), "matching needs a label catalogue and at least one application list")
			}
			return nil
		},
	}
}
