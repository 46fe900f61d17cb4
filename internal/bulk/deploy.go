package bulk

import (
	"context"
	"errors"
	"strings"
	"time"

	"commander/internal/domain"
	"commander/internal/jamf"
	"go.uber.org/zap"
)

// DefaultDeployDelay 是两次创建策略之间的固定间隔。
const DefaultDeployDelay = 500 * time.Millisecond

// PolicyCreator 是部署所需的远程调用能力。
type PolicyCreator interface {
	CreatePolicy(ctx context.Context, policy jamf.InstallPolicy) error
}

// DeployItem 是一条待部署的记录。
type DeployItem struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

// DeployOptions 是整批共享的部署参数。
type DeployOptions struct {
	Category          string `json:"category"`
	ScriptID          string `json:"script_id"`
	FeatureOnMainPage bool   `json:"feature_on_main_page"`
	DisplayInCategory bool   `json:"display_in_category"`
}

// Validate 检查部署前必须选好的参数。
func (o DeployOptions) Validate() error {
	if strings.TrimSpace(o.Category) == "" {
		return errors.New("deployment category is required")
	}
	if strings.TrimSpace(o.ScriptID) == "" {
		return errors.New("installer script is required")
	}
	return nil
}

// Deployer 逐条创建安装策略。
type Deployer struct {
	creator PolicyCreator
	pacer   pacer
}

// NewDeployer 构建 Deployer，delay 为负时视为 0。
func NewDeployer(creator PolicyCreator, delay time.Duration, logger *zap.Logger) *Deployer {
	if delay < 0 {
		delay = 0
	}
	return &Deployer{creator: creator, pacer: newPacer(delay, logger)}
}

// WithSleep 替换等待函数，便于测试。
func (d *Deployer) WithSleep(sleep SleepFunc) *Deployer {
	d.pacer.sleep = sleep
	return d
}

// Run 对每条记录恰好调用一次 CreatePolicy，不重试也不因失败中止。
func (d *Deployer) Run(ctx context.Context, items []DeployItem, opts DeployOptions) Report {
	report := Report{Operation: domain.OpCreate, Kind: domain.RecordPolicy}
	run(ctx, d.pacer, &report, items,
		func(item DeployItem) string { return item.Name },
		func(ctx context.Context, item DeployItem) OperationResult {
			err := d.creator.CreatePolicy(ctx, jamf.InstallPolicy{
				AppName:           item.Name,
				Label:             item.Label,
				CategoryName:      opts.Category,
				ScriptID:          opts.ScriptID,
				FeatureOnMainPage: opts.FeatureOnMainPage,
				DisplayInCategory: opts.DisplayInCategory,
			})
			return resultFor(item.Name, err)
		})
	return report
}
