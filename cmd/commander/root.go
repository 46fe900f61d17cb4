package main

import (
	"fmt"

	"commander/internal/app"
	"commander/internal/inventory"
	"commander/internal/jamf"
	"commander/ioc"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootOptions struct {
	configPath string
	dryRun     bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "commander",
		Short:         "Reconcile an app inventory against the installer label catalogue and deploy in bulk",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "configs/config.yaml", "配置文件路径")
	cmd.PersistentFlags().BoolVar(&opts.dryRun, "dry-run", false, "使用内存客户端，不调用远端")

	cmd.AddCommand(
		newImportCmd(opts),
		newMatchCmd(opts),
		newDeployCmd(opts),
		newDashboardCmd(opts),
	)
	return cmd
}

type session struct {
	svc    *app.Service
	client jamf.Client
	logger *zap.Logger
	close  func()
}

// openSession 按配置装配一次命令行会话。
func openSession(opts *rootOptions) (*session, error) {
	cfg, err := app.LoadConfig(opts.configPath)
	if err != nil {
		return nil, err
	}
	logger, cleanup, err := ioc.InitLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("初始化日志失败: %w", err)
	}
	var client jamf.Client = &jamf.StaticClient{}
	if !opts.dryRun {
		client, err = ioc.InitJamfClient(cfg, logger)
		if err != nil {
			cleanup()
			return nil, err
		}
	}
	store, err := inventory.NewStore(cfg.Storage.Dir)
	if err != nil {
		cleanup()
		return nil, err
	}
	svc, err := app.NewService(cfg, client, store, logger)
	if err != nil {
		cleanup()
		return nil, err
	}
	return &session{svc: svc, client: client, logger: logger, close: cleanup}, nil
}
