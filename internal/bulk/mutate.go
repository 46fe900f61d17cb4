package bulk

import (
	"context"
	"fmt"
	"time"

	"commander/internal/domain"
	"commander/internal/jamf"
	"go.uber.org/zap"
)

// RecordMutator 是移动与删除记录所需的远程调用能力。
type RecordMutator interface {
	MovePolicy(ctx context.Context, id, categoryID int) error
	DeletePolicy(ctx context.Context, id int) error
	MoveProfile(ctx context.Context, id, categoryID int) error
	DeleteProfile(ctx context.Context, id int) error
}

// MutateItem 是一条待变更的记录，Category 为变更前的分类名。
type MutateItem struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// Mutator 逐条移动或删除远端记录。
type Mutator struct {
	client RecordMutator
	pacer  pacer
}

// NewMutator 构建 Mutator，delay 默认 0。
func NewMutator(client RecordMutator, delay time.Duration, logger *zap.Logger) *Mutator {
	if delay < 0 {
		delay = 0
	}
	return &Mutator{client: client, pacer: newPacer(delay, logger)}
}

// WithSleep 替换等待函数，便于测试。
func (m *Mutator) WithSleep(sleep SleepFunc) *Mutator {
	m.pacer.sleep = sleep
	return m
}

// Move 把每条记录移动到 target，结果中记录前后分类。
func (m *Mutator) Move(ctx context.Context, kind domain.RecordKind, items []MutateItem, target jamf.Category) Report {
	report := Report{Operation: domain.OpMove, Kind: kind}
	run(ctx, m.pacer, &report, items,
		func(item MutateItem) string { return item.Name },
		func(ctx context.Context, item MutateItem) OperationResult {
			var err error
			switch kind {
			case domain.RecordPolicy:
				err = m.client.MovePolicy(ctx, item.ID, target.ID)
			case domain.RecordProfile:
				err = m.client.MoveProfile(ctx, item.ID, target.ID)
			default:
				err = fmt.Errorf("unsupported record kind %q", kind)
			}
			res := resultFor(item.Name, err)
			res.FromCategory = displayCategory(item.Category)
			res.ToCategory = target.Name
			return res
		})
	return report
}

// Delete 逐条删除记录。
func (m *Mutator) Delete(ctx context.Context, kind domain.RecordKind, items []MutateItem) Report {
	report := Report{Operation: domain.OpDelete, Kind: kind}
	run(ctx, m.pacer, &report, items,
		func(item MutateItem) string { return item.Name },
		func(ctx context.Context, item MutateItem) OperationResult {
			var err error
			switch kind {
			case domain.RecordPolicy:
				err = m.client.DeletePolicy(ctx, item.ID)
			case domain.RecordProfile:
				err = m.client.DeleteProfile(ctx, item.ID)
			default:
				err = fmt.Errorf("unsupported record kind %q", kind)
			}
			return resultFor(item.Name, err)
		})
	return report
}

func displayCategory(name string) string {
	if name == "" {
		return jamf.NoCategory
	}
	return name
}
