package main

import (
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newDashboardCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "输出各类远端记录的数量",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts)
			if err != nil {
				return err
			}
			defer s.close()
			d, loadErr := s.svc.Dashboard(cmd.Context())

			table := tablewriter.NewTable(cmd.OutOrStdout())
			table.Header("Kind", "Count")
			rows := [][]string{
				{"computers", strconv.Itoa(d.Computers)},
				{"policies", strconv.Itoa(d.Policies)},
				{"profiles", strconv.Itoa(d.Profiles)},
				{"scripts", strconv.Itoa(d.Scripts)},
				{"categories", strconv.Itoa(d.Categories)},
			}
			if err := table.Bulk(rows); err != nil {
				return err
			}
			if err := table.Render(); err != nil {
				return err
			}
			return loadErr
		},
	}
}
